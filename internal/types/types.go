package types

import "github.com/DoyleJ11/autochess-backend/internal/engine"

// Client intents.
const (
	TypeJoin  = "join"
	TypeStart = "start"
	TypeBuy   = "buy"
	TypePlace = "place"
	TypeReady = "ready"
)

// Server events.
const (
	TypeLobby       = "lobby"
	TypeShopPhase   = "shop_phase"
	TypeBattlePhase = "battle_phase"
	TypeMove        = "move"
	TypeGameEnd     = "game_end"
	TypeLose        = "lose"
	TypeWin         = "win"
	TypeReload      = "reload"
	TypeError       = "error"
)

type ClientMessage struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Index *int   `json:"index,omitempty"`
	From  *int   `json:"from,omitempty"`
	To    *int   `json:"to,omitempty"`
	// Pieces is decoded strictly: 16 entries of null or {"type": kind}.
	Pieces *engine.Roster `json:"pieces,omitempty"`
}

type ServerMessage struct {
	Type    string           `json:"type"`
	Players []string         `json:"players,omitempty"`
	Gold    *int             `json:"gold,omitempty"`
	Health  *int             `json:"health,omitempty"`
	Tier    *int             `json:"tier,omitempty"`
	Pool    *[]engine.Kind   `json:"pool,omitempty"`
	Pieces  *engine.Roster   `json:"pieces,omitempty"`
	White   *engine.SideView `json:"white,omitempty"`
	Black   *engine.SideView `json:"black,omitempty"`
	From    *engine.Coord    `json:"from,omitempty"`
	To      *engine.Coord    `json:"to,omitempty"`
	Rank    *int             `json:"rank,omitempty"`
	Error   string           `json:"error,omitempty"`
}
