package session

import "github.com/DoyleJ11/autochess-backend/internal/engine"

type Msg interface{ isSessionMsg() }

// Connect registers a connection. Nothing is sent until it joins.
type Connect struct {
	ClientID string
	Outbox   chan Event // closed by the session when it lets go of the client
}

// Disconnect is sent by the transport when a connection goes away.
type Disconnect struct{ ClientID string }

type Join struct {
	ClientID string
	Name     string
}

type Start struct{ ClientID string }

type Buy struct {
	ClientID string
	Index    int
}

type Place struct {
	ClientID string
	From, To int
}

// Ready ends the player's shop phase. Pieces, when set, replaces the
// roster after it has been checked against the phase's offers and gold.
type Ready struct {
	ClientID string
	Pieces   *engine.Roster
}

type GetState struct {
	Reply chan View
}

type Shutdown struct{}

func (Connect) isSessionMsg()    {}
func (Disconnect) isSessionMsg() {}
func (Join) isSessionMsg()       {}
func (Start) isSessionMsg()      {}
func (Buy) isSessionMsg()        {}
func (Place) isSessionMsg()      {}
func (Ready) isSessionMsg()      {}
func (GetState) isSessionMsg()   {}
func (Shutdown) isSessionMsg()   {}

type Phase string

const (
	PhaseLobby  Phase = "lobby"
	PhaseShop   Phase = "shop"
	PhaseBattle Phase = "battle"
	PhaseEnded  Phase = "ended"
)

type View struct {
	Code       string
	Phase      Phase
	Round      int
	NumClients int
	Players    []PlayerView
}
