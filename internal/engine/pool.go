package engine

const (
	Tiers          = 3
	UnitPrice      = 3
	BaseOfferCount = 3
)

type OfferStrategy string

const (
	// OffersDisjoint gives every tier its own running offset that moves by
	// the slice size, so players never share a slice of the same tier.
	OffersDisjoint OfferStrategy = "disjoint"
	// OffersLegacy moves a single offset by one per player. Neighbouring
	// players see overlapping slices.
	OffersLegacy OfferStrategy = "legacy"
)

type PoolConfig struct {
	Sizes          [Tiers]int
	BaseOfferCount int
	Strategy       OfferStrategy
	// Kinds overrides which kinds a tier draws from. Nil uses KindsForTier.
	Kinds map[int][]Kind
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Sizes:          [Tiers]int{16, 10, 8},
		BaseOfferCount: BaseOfferCount,
		Strategy:       OffersDisjoint,
	}
}

// Shopper is anything that receives shop offers.
type Shopper interface {
	ShopTier() int
	SetOffers([]Kind)
}

// Pools holds the shared per-tier supply. Only Refresh mutates it.
type Pools struct {
	tiers [Tiers][]Kind
	cfg   PoolConfig
}

func NewPools(cfg PoolConfig, r Rand) *Pools {
	if cfg.BaseOfferCount <= 0 {
		cfg.BaseOfferCount = BaseOfferCount
	}
	if cfg.Strategy == "" {
		cfg.Strategy = OffersDisjoint
	}
	p := &Pools{cfg: cfg}
	for t := 1; t <= Tiers; t++ {
		kinds := cfg.Kinds[t]
		if len(kinds) == 0 {
			kinds = KindsForTier(t)
		}
		pool := make([]Kind, cfg.Sizes[t-1])
		for i := range pool {
			pool[i] = choose(r, kinds)
		}
		p.tiers[t-1] = pool
	}
	return p
}

// Tier returns a copy of one tier's pool in its current order.
func (p *Pools) Tier(tier int) []Kind {
	return append([]Kind(nil), p.tiers[tier-1]...)
}

// OfferCount is how many pieces a tier contributes to one player's offer.
func (p *Pools) OfferCount(tier int) int {
	return p.cfg.BaseOfferCount + tier
}

// Refresh shuffles every tier and hands each shopper, in order, a slice
// of every tier up to their own. Slices that run past a pool's end are
// cut short.
func (p *Pools) Refresh(shoppers []Shopper, r Rand) {
	for t := range p.tiers {
		Shuffle(r, p.tiers[t])
	}

	tiers := make([]int, len(shoppers))
	for i, s := range shoppers {
		tiers[i] = s.ShopTier()
	}
	for i, ws := range p.windows(tiers) {
		var offers []Kind
		for _, w := range ws {
			offers = append(offers, p.tiers[w.Tier-1][w.Start:w.End]...)
		}
		shoppers[i].SetOffers(offers)
	}
}

// Window is a half-open index range into one tier's pool.
type Window struct {
	Tier       int
	Start, End int
}

func (p *Pools) windows(shopperTiers []int) [][]Window {
	out := make([][]Window, len(shopperTiers))
	var offsets [Tiers]int
	for i, tier := range shopperTiers {
		for t := 1; t <= min(tier, Tiers); t++ {
			n := p.OfferCount(t)
			start := i
			if p.cfg.Strategy != OffersLegacy {
				start = offsets[t-1]
				offsets[t-1] += n
			}
			size := len(p.tiers[t-1])
			w := Window{Tier: t, Start: min(start, size), End: min(start+n, size)}
			if w.End > w.Start {
				out[i] = append(out[i], w)
			}
		}
	}
	return out
}
