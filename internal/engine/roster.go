package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Slot is one roster cell: either empty or holding a piece.
type Slot struct {
	kind  Kind
	taken bool
}

func Empty() Slot { return Slot{} }

func Of(k Kind) Slot { return Slot{kind: k, taken: true} }

func (s Slot) Piece() (Kind, bool) { return s.kind, s.taken }

func (s Slot) IsEmpty() bool { return !s.taken }

type wirePiece struct {
	Type *Kind `json:"type"`
}

func (s Slot) MarshalJSON() ([]byte, error) {
	if !s.taken {
		return []byte("null"), nil
	}
	return json.Marshal(wirePiece{Type: &s.kind})
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Empty()
		return nil
	}
	var p wirePiece
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Type == nil {
		return fmt.Errorf("%w: piece without a type", ErrBadRoster)
	}
	*s = Of(*p.Type)
	return nil
}

// Roster is a player's home area, indexed by slot.
type Roster [RosterSize]Slot

func (r Roster) FirstEmpty() (int, bool) {
	for i, s := range r {
		if s.IsEmpty() {
			return i, true
		}
	}
	return 0, false
}

func (r Roster) Full() bool {
	_, ok := r.FirstEmpty()
	return !ok
}

func (r Roster) Count() int {
	n := 0
	for _, s := range r {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

// Kinds counts the pieces by kind.
func (r Roster) Kinds() map[Kind]int {
	out := map[Kind]int{}
	for _, s := range r {
		if k, ok := s.Piece(); ok {
			out[k]++
		}
	}
	return out
}

func (r Roster) MarshalJSON() ([]byte, error) {
	return json.Marshal([RosterSize]Slot(r))
}

// UnmarshalJSON rejects rosters of the wrong length instead of padding them.
func (r *Roster) UnmarshalJSON(data []byte) error {
	var slots []Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRoster, err)
	}
	if len(slots) != RosterSize {
		return fmt.Errorf("%w: want %d slots, got %d", ErrBadRoster, RosterSize, len(slots))
	}
	copy(r[:], slots)
	return nil
}
