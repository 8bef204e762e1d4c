package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRoster() Roster {
	var r Roster
	for i := range r {
		r[i] = Of(Pawn)
	}
	return r
}

func TestIsBuyable(t *testing.T) {
	cases := []struct {
		name   string
		gold   int
		roster Roster
		want   bool
	}{
		{"empty roster enough gold", 3, Roster{}, true},
		{"empty roster not enough gold", 2, Roster{}, false},
		{"no gold", 0, Roster{}, false},
		{"full roster lots of gold", 99, fullRoster(), false},
		{"one free slot", 3, func() Roster { r := fullRoster(); r[15] = Empty(); return r }(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsBuyable(tc.gold, tc.roster))
		})
	}
}

func TestBuy(t *testing.T) {
	var r Roster
	r[0] = Of(King)
	p := Purchase{Roster: r, Offers: []Kind{Pawn, Bishop}, Gold: 3}

	next, err := Buy(p, 1)
	require.NoError(t, err)
	k, ok := next.Roster[1].Piece()
	require.True(t, ok)
	assert.Equal(t, Bishop, k)
	assert.Equal(t, []Kind{Pawn}, next.Offers)
	assert.Equal(t, 0, next.Gold)
	assert.Equal(t, []Kind{Pawn, Bishop}, p.Offers, "input offers must not change")

	_, err = Buy(next, 0)
	assert.ErrorIs(t, err, ErrNotBuyable)

	_, err = Buy(p, 5)
	assert.ErrorIs(t, err, ErrBadOffer)
}

func TestPlace(t *testing.T) {
	var r Roster
	r[0] = Of(King)
	moved, err := Place(r, 0, 12)
	require.NoError(t, err)
	assert.True(t, moved[0].IsEmpty())
	k, _ := moved[12].Piece()
	assert.Equal(t, King, k)

	_, err = Place(r, 0, RosterSize)
	assert.ErrorIs(t, err, ErrBadSlot)
}

func TestValidatePurchase(t *testing.T) {
	var start Roster
	start[0] = Of(King)

	swapKingForPawn := Roster{}
	swapKingForPawn[0] = Of(Pawn)

	twoPawns := start
	twoPawns[1] = Of(Pawn)
	twoPawns[2] = Of(Pawn)

	stolenQueen := start
	stolenQueen[3] = Of(Queen)

	cases := []struct {
		name    string
		after   Roster
		offers  []Kind
		gold    int
		wantErr error
		cost    int
	}{
		{"unchanged", start, nil, 0, nil, 0},
		{"drop king buy pawn", swapKingForPawn, []Kind{Pawn}, 3, nil, 3},
		{"piece not offered", stolenQueen, []Kind{Pawn}, 9, ErrUnpaidPieces, 0},
		{"offered once bought twice", twoPawns, []Kind{Pawn, Bishop}, 9, ErrUnpaidPieces, 0},
		{"over budget", twoPawns, []Kind{Pawn, Pawn}, 3, ErrOverBudget, 0},
		{"within budget", twoPawns, []Kind{Pawn, Pawn}, 6, nil, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cost, err := ValidatePurchase(start, tc.after, tc.offers, tc.gold)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cost, cost)
		})
	}
}
