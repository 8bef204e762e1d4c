package engine

import (
	"context"
)

// StallLimit is how many consecutive passes end a battle.
const StallLimit = 2

const DefaultMaxTurns = 512

type SideView struct {
	Name   string `json:"name"`
	Health int    `json:"health"`
	Pieces Roster `json:"pieces"`
}

type Snapshot struct {
	White SideView `json:"white"`
	Black SideView `json:"black"`
}

type Result struct {
	WhitePoints int
	BlackPoints int
	Moves       int
	Turns       int
	// Capped is set when MaxTurns stopped the battle before the stall rule.
	Capped bool
}

// WhiteDamage is the health white loses: one per black piece that escaped.
func (r Result) WhiteDamage() int { return r.BlackPoints }

func (r Result) BlackDamage() int { return r.WhitePoints }

// Observer receives a battle as it is played.
type Observer interface {
	Started(Snapshot)
	Moved(Move)
	Finished(Result)
}

type NopObserver struct{}

func (NopObserver) Started(Snapshot) {}
func (NopObserver) Moved(Move)       {}
func (NopObserver) Finished(Result)  {}

type Simulator struct {
	MaxTurns int
}

// Run plays a pairing out. White moves first; a side with no admissible
// move passes, and two passes in a row end the battle. The contenders are
// not modified; callers apply Result damage themselves.
func (s Simulator) Run(ctx context.Context, p Pairing, r Rand, obs Observer) (Result, error) {
	if obs == nil {
		obs = NopObserver{}
	}
	maxTurns := s.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	pos := NewPosition(p.White.Roster, p.Black.Roster)
	obs.Started(Snapshot{
		White: SideView{Name: p.White.Name, Health: p.White.Health, Pieces: pos.Pieces(White)},
		Black: SideView{Name: p.Black.Name, Health: p.Black.Health, Pieces: pos.Pieces(Black)},
	})

	var res Result
	turn := White
	stall := StallLimit
	for stall > 0 {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if res.Turns >= maxTurns {
			res.Capped = true
			break
		}
		res.Turns++

		m, ok, err := pickMove(pos, turn, r)
		if err != nil {
			return res, err
		}
		if ok {
			pos.Apply(m)
			obs.Moved(m)
			res.Moves++
			stall = StallLimit
		} else {
			stall--
		}
		turn = turn.Opposite()
	}

	res.WhitePoints = pos.CountOnRow(White, BackRow(White))
	res.BlackPoints = pos.CountOnRow(Black, BackRow(Black))
	obs.Finished(res)
	return res, nil
}

// pickMove prefers a random admissible capture, then a random admissible
// quiet move.
func pickMove(pos Position, turn Side, r Rand) (Move, bool, error) {
	legal, err := LegalMoves(pos, turn)
	if err != nil {
		return Move{}, false, err
	}
	var attacks, quiet []Move
	for _, m := range legal {
		if !Admissible(m, turn) {
			continue
		}
		if pos.IsAttack(m, turn) {
			attacks = append(attacks, m)
		} else {
			quiet = append(quiet, m)
		}
	}
	switch {
	case len(attacks) > 0:
		return choose(r, attacks), true, nil
	case len(quiet) > 0:
		return choose(r, quiet), true, nil
	default:
		return Move{}, false, nil
	}
}
