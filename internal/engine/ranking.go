package engine

import (
	"cmp"
	"slices"
)

type Standing struct {
	ID     string
	Health int
	Rank   int
}

// Rank orders standings by descending health and assigns competition
// ranks: ties share a rank and the next lower health gets one plus the
// number of standings ahead of it.
func Rank(standings []Standing) []Standing {
	out := append([]Standing(nil), standings...)
	slices.SortStableFunc(out, func(a, b Standing) int {
		return cmp.Compare(b.Health, a.Health)
	})
	for i := range out {
		if i > 0 && out[i].Health == out[i-1].Health {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
