package session

import "github.com/DoyleJ11/autochess-backend/internal/engine"

// Event is everything a session sends to a connection.
type Event interface{ isEvent() }

type LobbyUpdate struct {
	Players []string
}

type ShopPhase struct {
	Gold   int
	Health int
	Tier   int
	Pool   []engine.Kind
	Pieces engine.Roster
}

type BattlePhase struct {
	engine.Snapshot
}

type MoveMade struct {
	engine.Move
}

type BattleEnd struct{}

type Lose struct{ Rank int }

type Win struct{ Rank int }

// Reload tells the client to throw away its state and start over.
type Reload struct{}

// Rejected answers an intent that was not applied.
type Rejected struct{ Reason string }

func (LobbyUpdate) isEvent() {}
func (ShopPhase) isEvent()   {}
func (BattlePhase) isEvent() {}
func (MoveMade) isEvent()    {}
func (BattleEnd) isEvent()   {}
func (Lose) isEvent()        {}
func (Win) isEvent()         {}
func (Reload) isEvent()      {}
func (Rejected) isEvent()    {}
