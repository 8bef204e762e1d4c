package main

import (
	"testing"

	"github.com/DoyleJ11/autochess-backend/internal/config"
	"github.com/DoyleJ11/autochess-backend/internal/engine"
	"github.com/DoyleJ11/autochess-backend/internal/session"
	"github.com/DoyleJ11/autochess-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionOptionsFromRules(t *testing.T) {
	cfg := config.Config{DisconnectPolicy: "reset", Rules: config.DefaultRules()}
	results := store.NewMemoryResults()

	options, err := sessionOptions(cfg, results, zap.NewNop())
	require.NoError(t, err)

	opts := options("ABC123")
	assert.Equal(t, "ABC123", opts.Code)
	assert.Equal(t, 30, opts.StartingHealth)
	assert.Equal(t, 3, opts.StartingGold)
	assert.Equal(t, 1, opts.StartingTier)
	assert.Equal(t, engine.Of(engine.King), opts.StartingRoster[0])
	assert.Equal(t, 1, opts.StartingRoster.Count())
	assert.Equal(t, [engine.Tiers]int{16, 10, 8}, opts.Pools.Sizes)
	assert.Equal(t, session.ResetSession, opts.OnDisconnect)
	assert.Equal(t, engine.Simulator{MaxTurns: engine.DefaultMaxTurns}, opts.Simulator)
	assert.Same(t, results, opts.Results)
}

func TestSeededSessionsAreReproducible(t *testing.T) {
	cfg := config.Config{DisconnectPolicy: "remove", Seed: 42, Rules: config.DefaultRules()}

	draw := func() []int {
		options, err := sessionOptions(cfg, store.NewMemoryResults(), zap.NewNop())
		require.NoError(t, err)
		var out []int
		for _, code := range []string{"A", "B"} {
			out = append(out, options(code).Rand.IntN(1000))
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestSessionOptionsRejectBadRules(t *testing.T) {
	rules := config.DefaultRules()
	rules.StartingPieces = map[int]string{0: "dragon"}
	_, err := sessionOptions(config.Config{Rules: rules}, store.NewMemoryResults(), zap.NewNop())
	assert.Error(t, err)
}
