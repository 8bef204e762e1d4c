package engine

import "fmt"

// IsBuyable reports whether a player with this gold and roster can buy
// any piece at all.
func IsBuyable(gold int, r Roster) bool {
	if gold < UnitPrice {
		return false
	}
	return !r.Full()
}

type Purchase struct {
	Roster Roster
	Offers []Kind
	Gold   int
}

// Buy moves offers[idx] into the first free slot.
func Buy(p Purchase, idx int) (Purchase, error) {
	if idx < 0 || idx >= len(p.Offers) {
		return p, fmt.Errorf("%w: %d", ErrBadOffer, idx)
	}
	if !IsBuyable(p.Gold, p.Roster) {
		return p, ErrNotBuyable
	}
	slot, _ := p.Roster.FirstEmpty()

	next := p
	next.Roster[slot] = Of(p.Offers[idx])
	next.Offers = append(append([]Kind(nil), p.Offers[:idx]...), p.Offers[idx+1:]...)
	next.Gold -= UnitPrice
	return next, nil
}

// Place swaps two roster slots; either may be empty.
func Place(r Roster, from, to int) (Roster, error) {
	for _, s := range []int{from, to} {
		if s < 0 || s >= RosterSize {
			return r, fmt.Errorf("%w: %d", ErrBadSlot, s)
		}
	}
	r[from], r[to] = r[to], r[from]
	return r, nil
}

// ValidatePurchase checks a client-submitted roster against the roster the
// shop phase started with. Every piece added must come from the offers and
// the additions must fit the budget. Dropping pieces is allowed.
func ValidatePurchase(before, after Roster, offers []Kind, gold int) (int, error) {
	have := before.Kinds()
	available := map[Kind]int{}
	for _, k := range offers {
		available[k]++
	}

	bought := 0
	for k, n := range after.Kinds() {
		added := n - have[k]
		if added <= 0 {
			continue
		}
		if added > available[k] {
			return 0, fmt.Errorf("%w: %d extra %s", ErrUnpaidPieces, added, k)
		}
		bought += added
	}
	cost := bought * UnitPrice
	if cost > gold {
		return 0, fmt.Errorf("%w: %d > %d", ErrOverBudget, cost, gold)
	}
	return cost, nil
}
