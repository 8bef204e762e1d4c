package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DoyleJ11/autochess-backend/internal/engine"
	"github.com/DoyleJ11/autochess-backend/internal/session"
	"github.com/DoyleJ11/autochess-backend/internal/types"
)

var (
	ErrUnknownType  = errors.New("unknown message type")
	ErrMissingField = errors.New("missing field")
)

// Decode turns one client frame into a session message. Rosters are
// validated here so the session only ever sees well formed ones.
func Decode(data []byte, clientID string) (session.Msg, error) {
	var cm types.ClientMessage
	if err := json.Unmarshal(data, &cm); err != nil {
		return nil, fmt.Errorf("bad message: %w", err)
	}
	return toSessionMsg(cm, clientID)
}

func toSessionMsg(m types.ClientMessage, clientID string) (session.Msg, error) {
	switch m.Type {
	case types.TypeJoin:
		return session.Join{ClientID: clientID, Name: m.Name}, nil
	case types.TypeStart:
		return session.Start{ClientID: clientID}, nil
	case types.TypeBuy:
		if m.Index == nil {
			return nil, fmt.Errorf("%w: index", ErrMissingField)
		}
		return session.Buy{ClientID: clientID, Index: *m.Index}, nil
	case types.TypePlace:
		if m.From == nil || m.To == nil {
			return nil, fmt.Errorf("%w: from, to", ErrMissingField)
		}
		return session.Place{ClientID: clientID, From: *m.From, To: *m.To}, nil
	case types.TypeReady:
		return session.Ready{ClientID: clientID, Pieces: m.Pieces}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
}

func Encode(ev session.Event) types.ServerMessage {
	switch e := ev.(type) {
	case session.LobbyUpdate:
		return types.ServerMessage{Type: types.TypeLobby, Players: e.Players}
	case session.ShopPhase:
		pool := e.Pool
		if pool == nil {
			pool = []engine.Kind{}
		}
		return types.ServerMessage{
			Type:   types.TypeShopPhase,
			Gold:   &e.Gold,
			Health: &e.Health,
			Tier:   &e.Tier,
			Pool:   &pool,
			Pieces: &e.Pieces,
		}
	case session.BattlePhase:
		return types.ServerMessage{Type: types.TypeBattlePhase, White: &e.White, Black: &e.Black}
	case session.MoveMade:
		return types.ServerMessage{Type: types.TypeMove, From: &e.From, To: &e.To}
	case session.BattleEnd:
		return types.ServerMessage{Type: types.TypeGameEnd}
	case session.Lose:
		return types.ServerMessage{Type: types.TypeLose, Rank: &e.Rank}
	case session.Win:
		return types.ServerMessage{Type: types.TypeWin, Rank: &e.Rank}
	case session.Reload:
		return types.ServerMessage{Type: types.TypeReload}
	case session.Rejected:
		return types.ServerMessage{Type: types.TypeError, Error: e.Reason}
	default:
		return types.ServerMessage{Type: types.TypeError, Error: fmt.Sprintf("unsupported event %T", ev)}
	}
}
