package config

import (
	"fmt"
	"os"

	"github.com/DoyleJ11/autochess-backend/internal/engine"
	"gopkg.in/yaml.v3"
)

// Rules holds the game balance. Zero values fall back to defaults.
type Rules struct {
	StartingHealth int `yaml:"starting_health"`
	StartingGold   int `yaml:"starting_gold"`
	StartingTier   int `yaml:"starting_tier"`
	// StartingPieces maps roster slot to piece name. Leave unset for a
	// king on slot 0; set to {} for an empty roster.
	StartingPieces map[int]string   `yaml:"starting_pieces"`
	PoolSizes      []int            `yaml:"pool_sizes"`
	PoolKinds      map[int][]string `yaml:"pool_kinds"`
	BaseOfferCount int              `yaml:"base_offer_count"`
	OfferStrategy  string           `yaml:"offer_strategy"`
	MinPlayers     int              `yaml:"min_players"`
	MaxBattleTurns int              `yaml:"max_battle_turns"`
}

func DefaultRules() Rules {
	r := Rules{}
	r.ApplyDefaults()
	return r
}

func (r *Rules) ApplyDefaults() {
	if r.StartingHealth == 0 {
		r.StartingHealth = 30
	}
	if r.StartingGold == 0 {
		r.StartingGold = 3
	}
	if r.StartingTier == 0 {
		r.StartingTier = 1
	}
	if r.StartingPieces == nil {
		r.StartingPieces = map[int]string{0: "king"}
	}
	if len(r.PoolSizes) == 0 {
		r.PoolSizes = []int{16, 10, 8}
	}
	if r.BaseOfferCount == 0 {
		r.BaseOfferCount = engine.BaseOfferCount
	}
	if r.OfferStrategy == "" {
		r.OfferStrategy = string(engine.OffersDisjoint)
	}
	if r.MinPlayers == 0 {
		r.MinPlayers = 1
	}
	if r.MaxBattleTurns == 0 {
		r.MaxBattleTurns = engine.DefaultMaxTurns
	}
}

func LoadRules(path string) (Rules, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules: %w", err)
	}
	var r Rules
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Rules{}, fmt.Errorf("parse rules %s: %w", path, err)
	}
	r.ApplyDefaults()
	if _, err := r.PoolConfig(); err != nil {
		return Rules{}, err
	}
	if _, err := r.StartingRoster(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

func (r Rules) PoolConfig() (engine.PoolConfig, error) {
	cfg := engine.DefaultPoolConfig()
	if len(r.PoolSizes) != engine.Tiers {
		return cfg, fmt.Errorf("pool_sizes: want %d tiers, got %d", engine.Tiers, len(r.PoolSizes))
	}
	for tier, size := range r.PoolSizes {
		if size < 0 {
			return cfg, fmt.Errorf("pool_sizes: tier %d has negative size %d", tier+1, size)
		}
	}
	copy(cfg.Sizes[:], r.PoolSizes)
	cfg.BaseOfferCount = r.BaseOfferCount

	switch engine.OfferStrategy(r.OfferStrategy) {
	case engine.OffersDisjoint, engine.OffersLegacy:
		cfg.Strategy = engine.OfferStrategy(r.OfferStrategy)
	default:
		return cfg, fmt.Errorf("offer_strategy: unknown strategy %q", r.OfferStrategy)
	}

	for tier, names := range r.PoolKinds {
		if tier < 1 || tier > engine.Tiers {
			return cfg, fmt.Errorf("pool_kinds: no tier %d", tier)
		}
		kinds := make([]engine.Kind, 0, len(names))
		for _, n := range names {
			k, ok := engine.ParseKind(n)
			if !ok {
				return cfg, fmt.Errorf("pool_kinds: %w: %q", engine.ErrUnknownKind, n)
			}
			kinds = append(kinds, k)
		}
		if cfg.Kinds == nil {
			cfg.Kinds = map[int][]engine.Kind{}
		}
		cfg.Kinds[tier] = kinds
	}
	return cfg, nil
}

func (r Rules) StartingRoster() (engine.Roster, error) {
	var roster engine.Roster
	for slot, name := range r.StartingPieces {
		if slot < 0 || slot >= engine.RosterSize {
			return roster, fmt.Errorf("starting_pieces: %w: %d", engine.ErrBadSlot, slot)
		}
		k, ok := engine.ParseKind(name)
		if !ok {
			return roster, fmt.Errorf("starting_pieces: %w: %q", engine.ErrUnknownKind, name)
		}
		roster[slot] = engine.Of(k)
	}
	return roster, nil
}
