package session

import (
	"github.com/DoyleJ11/autochess-backend/internal/engine"
)

type Player struct {
	ID       string
	Name     string
	ClientID string
	Roster   engine.Roster
	Pool     []engine.Kind
	Tier     int
	MaxGold  int
	Gold     int
	Health   int
	Ready    bool
	Rank     int

	// what the current shop phase started from; client rosters are
	// validated against these
	shopRoster engine.Roster
	shopPool   []engine.Kind
}

func (p *Player) ShopTier() int { return p.Tier }

func (p *Player) SetOffers(k []engine.Kind) { p.Pool = k }

func (p *Player) contender() engine.Contender {
	return engine.Contender{ID: p.ID, Name: p.Name, Health: p.Health, Roster: p.Roster}
}

func (p *Player) shopView() ShopPhase {
	return ShopPhase{
		Gold:   p.Gold,
		Health: p.Health,
		Tier:   p.Tier,
		Pool:   append([]engine.Kind(nil), p.Pool...),
		Pieces: p.Roster,
	}
}

// PlayerView is a copy of a player safe to hand outside the actor.
type PlayerView struct {
	ID     string
	Name   string
	Health int
	Gold   int
	Tier   int
	Ready  bool
	Rank   int
	Roster engine.Roster
	Pool   []engine.Kind
}

func (p *Player) view() PlayerView {
	return PlayerView{
		ID:     p.ID,
		Name:   p.Name,
		Health: p.Health,
		Gold:   p.Gold,
		Tier:   p.Tier,
		Ready:  p.Ready,
		Rank:   p.Rank,
		Roster: p.Roster,
		Pool:   append([]engine.Kind(nil), p.Pool...),
	}
}
