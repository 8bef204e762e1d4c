package engine

type Occupant struct {
	Side Side
	Kind Kind
}

// Position is the working board of one battle.
type Position map[Coord]Occupant

func NewPosition(white, black Roster) Position {
	pos := Position{}
	for side, r := range map[Side]Roster{White: white, Black: black} {
		for slot, s := range r {
			if k, ok := s.Piece(); ok {
				pos[SlotToCoord(slot, side)] = Occupant{Side: side, Kind: k}
			}
		}
	}
	return pos
}

// Pieces re-indexes one side's pieces by slot. Pieces that have left the
// home rows have no slot and are not included.
func (p Position) Pieces(side Side) Roster {
	var r Roster
	for c, o := range p {
		if o.Side != side {
			continue
		}
		if slot, ok := CoordToSlot(c); ok {
			r[slot] = Of(o.Kind)
		}
	}
	return r
}

func (p Position) CountOnRow(side Side, row int) int {
	n := 0
	for c, o := range p {
		if o.Side == side && c.Row == row {
			n++
		}
	}
	return n
}

// IsAttack reports whether m lands on a piece of the other side.
func (p Position) IsAttack(m Move, mover Side) bool {
	o, ok := p[m.To]
	return ok && o.Side != mover
}

// Apply moves a piece. Pawns reaching the far row become queens.
func (p Position) Apply(m Move) {
	o, ok := p[m.From]
	if !ok {
		return
	}
	delete(p, m.From)
	if o.Kind == Pawn && m.To.Row == BackRow(o.Side) {
		o.Kind = Queen
	}
	p[m.To] = o
}
