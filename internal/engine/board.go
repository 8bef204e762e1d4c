package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	BoardColumns = 8
	HomeRows     = 2
	RosterSize   = BoardColumns * HomeRows
	BoardRows    = 8
)

const columnLetters = "ABCDEFGH"

// Coord is a board square. Col is 0-based (A=0), Row is 1-based like chess ranks.
type Coord struct {
	Col int
	Row int
}

func (c Coord) Valid() bool {
	return c.Col >= 0 && c.Col < BoardColumns && c.Row >= 1 && c.Row <= BoardRows
}

func (c Coord) String() string {
	if !c.Valid() {
		return fmt.Sprintf("coord(%d,%d)", c.Col, c.Row)
	}
	return fmt.Sprintf("%c%d", columnLetters[c.Col], c.Row)
}

func ParseCoord(s string) (Coord, error) {
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	col := strings.IndexByte(columnLetters, strings.ToUpper(s[:1])[0])
	row := int(s[1] - '0')
	c := Coord{Col: col, Row: row}
	if col < 0 || !c.Valid() {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	return c, nil
}

func (c Coord) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *Coord) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCoord(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SlotToCoord maps a roster slot onto the side's home rows. The first
// BoardColumns slots sit on the row nearest the middle of the board.
func SlotToCoord(slot int, side Side) Coord {
	col := slot % BoardColumns
	front := slot < BoardColumns
	switch {
	case side == White && front:
		return Coord{Col: col, Row: 2}
	case side == White:
		return Coord{Col: col, Row: 1}
	case front:
		return Coord{Col: col, Row: BoardRows - 1}
	default:
		return Coord{Col: col, Row: BoardRows}
	}
}

// CoordToSlot is the inverse of SlotToCoord. Squares outside both home
// areas have no slot.
func CoordToSlot(c Coord) (int, bool) {
	if !c.Valid() {
		return 0, false
	}
	switch c.Row {
	case 2, BoardRows - 1:
		return c.Col, true
	case 1, BoardRows:
		return BoardColumns + c.Col, true
	default:
		return 0, false
	}
}

// BackRow is the row a side has to reach to score.
func BackRow(side Side) int {
	if side == White {
		return BoardRows
	}
	return 1
}

func Forward(from, to Coord, side Side) bool {
	if side == White {
		return to.Row > from.Row
	}
	return to.Row < from.Row
}

func Chebyshev(a, b Coord) int {
	return max(abs(a.Col-b.Col), abs(a.Row-b.Row))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
