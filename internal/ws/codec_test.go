package ws

import (
	"encoding/json"
	"testing"

	"github.com/DoyleJ11/autochess-backend/internal/engine"
	"github.com/DoyleJ11/autochess-backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	var pawn engine.Roster
	pawn[0] = engine.Of(engine.Pawn)

	cases := []struct {
		name string
		in   string
		want session.Msg
	}{
		{"join", `{"type":"join","name":"alice"}`, session.Join{ClientID: "c1", Name: "alice"}},
		{"start", `{"type":"start"}`, session.Start{ClientID: "c1"}},
		{"buy", `{"type":"buy","index":0}`, session.Buy{ClientID: "c1", Index: 0}},
		{"place", `{"type":"place","from":3,"to":11}`, session.Place{ClientID: "c1", From: 3, To: 11}},
		{"ready without roster", `{"type":"ready"}`, session.Ready{ClientID: "c1"}},
		{
			"ready with roster",
			`{"type":"ready","pieces":[{"type":"pawn"},null,null,null,null,null,null,null,null,null,null,null,null,null,null,null]}`,
			session.Ready{ClientID: "c1", Pieces: &pawn},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode([]byte(tc.in), "c1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"unknown type", `{"type":"dance"}`, ErrUnknownType},
		{"buy without index", `{"type":"buy"}`, ErrMissingField},
		{"place without to", `{"type":"place","from":1}`, ErrMissingField},
		{"short roster", `{"type":"ready","pieces":[null]}`, engine.ErrBadRoster},
		{"untyped piece", `{"type":"ready","pieces":[{},null,null,null,null,null,null,null,null,null,null,null,null,null,null,null]}`, engine.ErrBadRoster},
		{"unknown kind", `{"type":"ready","pieces":[{"type":"dragon"},null,null,null,null,null,null,null,null,null,null,null,null,null,null,null]}`, engine.ErrUnknownKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.in), "c1")
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Decode([]byte("not json"), "c1")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	move := session.MoveMade{Move: engine.Move{From: engine.Coord{Col: 0, Row: 2}, To: engine.Coord{Col: 0, Row: 4}}}

	cases := []struct {
		name string
		in   session.Event
		want string
	}{
		{"lobby", session.LobbyUpdate{Players: []string{"alice", "bob"}}, `{"type":"lobby","players":["alice","bob"]}`},
		{"move", move, `{"type":"move","from":"A2","to":"A4"}`},
		{"game end", session.BattleEnd{}, `{"type":"game_end"}`},
		{"lose", session.Lose{Rank: 3}, `{"type":"lose","rank":3}`},
		{"win", session.Win{Rank: 1}, `{"type":"win","rank":1}`},
		{"reload", session.Reload{}, `{"type":"reload"}`},
		{"error", session.Rejected{Reason: "nope"}, `{"type":"error","error":"nope"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(Encode(tc.in))
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}

func TestEncodeShopPhase(t *testing.T) {
	var r engine.Roster
	r[0] = engine.Of(engine.King)
	data, err := json.Marshal(Encode(session.ShopPhase{
		Gold:   0,
		Health: 30,
		Tier:   1,
		Pool:   []engine.Kind{engine.Pawn, engine.Bishop},
		Pieces: r,
	}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "shop_phase", got["type"])
	assert.EqualValues(t, 0, got["gold"])
	assert.EqualValues(t, 30, got["health"])
	assert.Equal(t, []any{"pawn", "bishop"}, got["pool"])
	pieces := got["pieces"].([]any)
	require.Len(t, pieces, engine.RosterSize)
	assert.Equal(t, map[string]any{"type": "king"}, pieces[0])
	assert.Nil(t, pieces[1])
}

func TestEncodeShopPhaseAlwaysSendsPool(t *testing.T) {
	data, err := json.Marshal(Encode(session.ShopPhase{Health: 30, Tier: 1}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Contains(t, got, "pool")
	assert.Equal(t, []any{}, got["pool"])

	data, err = json.Marshal(Encode(session.Reload{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"reload"}`, string(data))
}
