package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShopper struct {
	tier   int
	offers []Kind
}

func (f *fakeShopper) ShopTier() int      { return f.tier }
func (f *fakeShopper) SetOffers(k []Kind) { f.offers = k }

func overlaps(a, b Window) bool {
	return a.Tier == b.Tier && a.Start < b.End && b.Start < a.End
}

func TestPools_NewUsesTierKinds(t *testing.T) {
	p := NewPools(DefaultPoolConfig(), NewRand(1))
	for tier := 1; tier <= Tiers; tier++ {
		pool := p.Tier(tier)
		assert.Len(t, pool, DefaultPoolConfig().Sizes[tier-1])
		for _, k := range pool {
			assert.Equal(t, tier, k.Tier(), "tier %d got %s", tier, k)
		}
	}
}

func TestPools_DisjointWindowsNeverOverlap(t *testing.T) {
	p := NewPools(DefaultPoolConfig(), NewRand(2))
	tiers := []int{3, 1, 2, 3, 1}
	windows := p.windows(tiers)

	var all []Window
	for _, ws := range windows {
		all = append(all, ws...)
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			assert.False(t, overlaps(all[i], all[j]), "%+v overlaps %+v", all[i], all[j])
		}
	}
}

// The legacy allocator advanced a single offset by one per player, so
// neighbouring players share most of a tier's slice. Kept selectable.
func TestPools_LegacyWindowsOverlapForNeighbours(t *testing.T) {
	cfg := DefaultPoolConfig()
	cfg.Strategy = OffersLegacy
	p := NewPools(cfg, NewRand(3))

	windows := p.windows([]int{1, 1})
	require.Len(t, windows, 2)
	assert.Equal(t, Window{Tier: 1, Start: 0, End: 4}, windows[0][0])
	assert.Equal(t, Window{Tier: 1, Start: 1, End: 5}, windows[1][0])
	assert.True(t, overlaps(windows[0][0], windows[1][0]))
}

func TestPools_WindowsClampAtPoolEnd(t *testing.T) {
	p := NewPools(DefaultPoolConfig(), NewRand(4))
	// tier 3 pool has 8 pieces and a slice size of 6
	windows := p.windows([]int{3, 3, 3})

	tier3 := func(ws []Window) (Window, bool) {
		for _, w := range ws {
			if w.Tier == 3 {
				return w, true
			}
		}
		return Window{}, false
	}
	w0, ok := tier3(windows[0])
	require.True(t, ok)
	assert.Equal(t, 6, w0.End-w0.Start)
	w1, ok := tier3(windows[1])
	require.True(t, ok)
	assert.Equal(t, 2, w1.End-w1.Start)
	_, ok = tier3(windows[2])
	assert.False(t, ok)
}

func TestPools_RefreshHandsOutOffersPerTier(t *testing.T) {
	p := NewPools(DefaultPoolConfig(), NewRand(5))
	low := &fakeShopper{tier: 1}
	high := &fakeShopper{tier: 2}

	p.Refresh([]Shopper{low, high}, NewRand(6))

	assert.Len(t, low.offers, p.OfferCount(1))
	assert.Len(t, high.offers, p.OfferCount(1)+p.OfferCount(2))
	for _, k := range high.offers[p.OfferCount(1):] {
		assert.Equal(t, 2, k.Tier())
	}
}

func TestPools_RefreshIsReproducibleWithSeed(t *testing.T) {
	run := func() []Kind {
		p := NewPools(DefaultPoolConfig(), NewRand(7))
		s := &fakeShopper{tier: 3}
		p.Refresh([]Shopper{s}, NewRand(8))
		return s.offers
	}
	assert.Equal(t, run(), run())
}
