package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterJSON(entries ...string) string {
	out := make([]string, RosterSize)
	for i := range out {
		out[i] = "null"
	}
	copy(out, entries)
	return "[" + strings.Join(out, ",") + "]"
}

func TestRoster_DecodesNamesAndLegacyIndices(t *testing.T) {
	var r Roster
	require.NoError(t, json.Unmarshal([]byte(rosterJSON(`{"type":"pawn"}`, `null`, `{"type":3}`)), &r))

	k, ok := r[0].Piece()
	require.True(t, ok)
	assert.Equal(t, Pawn, k)
	assert.True(t, r[1].IsEmpty())
	k, ok = r[2].Piece()
	require.True(t, ok)
	assert.Equal(t, Rook, k)
	assert.Equal(t, 2, r.Count())
}

func TestRoster_RejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"too short", `[null, null]`},
		{"too long", "[" + strings.Repeat("null,", RosterSize) + "null]"},
		{"unknown name", rosterJSON(`{"type":"dragon"}`)},
		{"index out of range", rosterJSON(`{"type":9}`)},
		{"not an array", `{"type":"pawn"}`},
		{"piece without type", rosterJSON(`{}`)},
		{"misspelled type key", rosterJSON(`{"typ":"queen"}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r Roster
			err := json.Unmarshal([]byte(tc.data), &r)
			assert.ErrorIs(t, err, ErrBadRoster)
		})
	}
}

func TestRoster_EncodesNullForEmpty(t *testing.T) {
	var r Roster
	r[1] = Of(Knight)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, rosterJSON(`null`, `{"type":"knight"}`), string(data))
}

func TestKind_LettersAndTiers(t *testing.T) {
	assert.Equal(t, byte('N'), Knight.Letter(White))
	assert.Equal(t, byte('n'), Knight.Letter(Black))

	k, side, ok := KindFromLetter('Q')
	require.True(t, ok)
	assert.Equal(t, Queen, k)
	assert.Equal(t, White, side)

	assert.Equal(t, []Kind{Pawn, Bishop}, KindsForTier(1))
	assert.Equal(t, []Kind{Knight, Rook}, KindsForTier(2))
	assert.Equal(t, []Kind{Queen}, KindsForTier(3))
	assert.Zero(t, King.Tier())

	for _, k := range AllKinds {
		parsed, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}
}
