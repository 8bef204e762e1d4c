package engine

import "errors"

var (
	ErrUnknownKind     = errors.New("unknown piece kind")
	ErrBadCoord        = errors.New("bad coordinate")
	ErrBadRoster       = errors.New("malformed roster")
	ErrNotBuyable      = errors.New("piece not buyable")
	ErrBadOffer        = errors.New("no such offer")
	ErrBadSlot         = errors.New("no such slot")
	ErrUnpaidPieces    = errors.New("roster holds pieces that were not offered")
	ErrOverBudget      = errors.New("roster costs more gold than available")
	ErrIllegalPosition = errors.New("illegal position")
)
