package session

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"time"

	"github.com/DoyleJ11/autochess-backend/internal/engine"
	"github.com/DoyleJ11/autochess-backend/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recordTimeout = 5 * time.Second

type outcome struct {
	pairing engine.Pairing
	feed    *feed
	result  engine.Result
	err     error
}

// battle plays every pairing of the round in parallel and applies the
// damage once all of them are done.
func (s *Session) battle() {
	s.phase = PhaseBattle
	s.round++

	contenders := make([]engine.Contender, len(s.players))
	for i, p := range s.players {
		contenders[i] = p.contender()
	}
	pairs := engine.Pair(contenders, s.rng)
	s.log.Info("battle round", zap.Int("round", s.round), zap.Int("pairings", len(pairs)))

	outcomes := make([]outcome, len(pairs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, pair := range pairs {
		// drawn up front so a seed replays the same battles whatever the
		// goroutine schedule
		rng := engine.NewRand(uint64(s.rng.IntN(math.MaxInt)))
		f := s.feed(pair)
		outcomes[i] = outcome{pairing: pair, feed: f}
		g.Go(func() error {
			res, err := s.opts.Simulator.Run(s.ctx, pair, rng, f)
			outcomes[i].result, outcomes[i].err = res, err
			if err != nil {
				return fmt.Errorf("%s vs %s: %w", pair.White.Name, pair.Black.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if s.ctx.Err() != nil {
			return
		}
		s.log.Error("battle failed", zap.Int("round", s.round), zap.Error(err))
	}

	for _, o := range outcomes {
		s.slow = append(s.slow, o.feed.dropped()...)
		if o.err != nil {
			// the battle is void; its players only hear that it is over
			for _, id := range o.feed.clientIDs {
				s.send(id, BattleEnd{})
			}
			continue
		}
		s.damage(o.pairing.White, o.result.WhiteDamage())
		s.damage(o.pairing.Black, o.result.BlackDamage())
	}
	s.settle()
}

func (s *Session) damage(c engine.Contender, points int) {
	if c.Bot || points == 0 {
		return
	}
	if p := s.playerByID(c.ID); p != nil {
		p.Health -= points
	}
}

// settle ranks the round, drops everyone at zero health and moves on.
func (s *Session) settle() {
	standings := make([]engine.Standing, len(s.players))
	for i, p := range s.players {
		standings[i] = engine.Standing{ID: p.ID, Health: p.Health}
	}
	for _, st := range engine.Rank(standings) {
		s.playerByID(st.ID).Rank = st.Rank
	}

	var alive []*Player
	for _, p := range s.players {
		if p.Health > 0 {
			alive = append(alive, p)
			continue
		}
		s.log.Info("player eliminated", zap.String("player", p.ID), zap.Int("rank", p.Rank))
		s.send(p.ClientID, Lose{Rank: p.Rank})
		s.placements = append(s.placements, store.Placement{Name: p.Name, Rank: p.Rank, Health: p.Health})
		delete(s.byClient, p.ClientID)
	}
	s.players = alive

	switch len(alive) {
	case 0:
		s.finish()
	case 1:
		s.crown(alive[0])
		s.finish()
	default:
		s.shop()
	}
}

func (s *Session) crown(p *Player) {
	p.Rank = 1
	s.log.Info("player won", zap.String("player", p.ID), zap.Int("round", s.round))
	s.send(p.ClientID, Win{Rank: p.Rank})
	s.placements = append(s.placements, store.Placement{Name: p.Name, Rank: p.Rank, Health: p.Health})
}

func (s *Session) finish() {
	s.phase = PhaseEnded
	if s.opts.Results == nil || len(s.placements) == 0 {
		return
	}

	placements := slices.Clone(s.placements)
	slices.SortStableFunc(placements, func(a, b store.Placement) int { return cmp.Compare(a.Rank, b.Rank) })
	res := store.GameResult{
		Session:    s.code,
		Rounds:     s.round,
		FinishedAt: time.Now().UTC(),
		Placements: placements,
	}

	ctx, cancel := context.WithTimeout(s.ctx, recordTimeout)
	defer cancel()
	if err := s.opts.Results.Record(ctx, res); err != nil {
		s.log.Error("record result", zap.Error(err))
	}
}

// feed forwards one battle to the connections of its human players. It
// runs on the battle goroutine and never blocks: a full outbox stops the
// feed for that client and the session drops it afterwards.
type feed struct {
	clientIDs []string
	outs      []chan Event
	full      []bool
}

func (s *Session) feed(pair engine.Pairing) *feed {
	f := &feed{}
	for _, c := range []engine.Contender{pair.White, pair.Black} {
		if c.Bot {
			continue
		}
		p := s.playerByID(c.ID)
		if p == nil {
			continue
		}
		ch, ok := s.clients[p.ClientID]
		if !ok {
			continue
		}
		f.clientIDs = append(f.clientIDs, p.ClientID)
		f.outs = append(f.outs, ch)
		f.full = append(f.full, false)
	}
	return f
}

func (f *feed) emit(ev Event) {
	for i, ch := range f.outs {
		if f.full[i] {
			continue
		}
		select {
		case ch <- ev:
		default:
			f.full[i] = true
		}
	}
}

func (f *feed) Started(snap engine.Snapshot) { f.emit(BattlePhase{Snapshot: snap}) }

func (f *feed) Moved(m engine.Move) { f.emit(MoveMade{Move: m}) }

func (f *feed) Finished(engine.Result) { f.emit(BattleEnd{}) }

func (f *feed) dropped() []string {
	var out []string
	for i, full := range f.full {
		if full {
			out = append(out, f.clientIDs[i])
		}
	}
	return out
}
