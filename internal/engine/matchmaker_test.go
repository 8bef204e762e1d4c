package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contenders(n int) []Contender {
	out := make([]Contender, n)
	for i := range out {
		out[i] = Contender{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("player %d", i), Health: 30 - i}
	}
	return out
}

func TestPair_EvenCountHasNoBot(t *testing.T) {
	pairs := Pair(contenders(4), NewRand(1))
	require.Len(t, pairs, 2)

	seen := map[string]int{}
	for _, p := range pairs {
		assert.False(t, p.White.Bot)
		assert.False(t, p.Black.Bot)
		seen[p.White.ID]++
		seen[p.Black.ID]++
	}
	assert.Len(t, seen, 4)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestPair_OddCountAddsOneBot(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		in := contenders(3)
		pairs := Pair(in, NewRand(seed))
		require.Len(t, pairs, 2)

		bots := 0
		humans := map[string]int{}
		for _, p := range pairs {
			for _, c := range []Contender{p.White, p.Black} {
				if c.Bot {
					bots++
					assert.Equal(t, BotName, c.Name)
					continue
				}
				humans[c.ID]++
			}
		}
		assert.Equal(t, 1, bots)
		assert.Len(t, humans, 3)
		for id, n := range humans {
			assert.Equal(t, 1, n, id)
		}
		assert.Equal(t, "player 0", in[0].Name, "input must not be modified")
	}
}

func TestPair_BotCopiesRosterAndHealth(t *testing.T) {
	in := []Contender{{ID: "solo", Name: "solo", Health: 12, Roster: rosterWith(map[int]Kind{0: Rook})}}
	pairs := Pair(in, NewRand(1))
	require.Len(t, pairs, 1)
	bot := pairs[0].Black
	assert.True(t, bot.Bot)
	assert.Equal(t, 12, bot.Health)
	assert.Equal(t, in[0].Roster, bot.Roster)
}
