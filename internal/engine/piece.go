package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Kind uint8

const (
	Pawn Kind = iota
	Bishop
	Knight
	Rook
	Queen
	King
)

var AllKinds = []Kind{Pawn, Bishop, Knight, Rook, Queen, King}

var kindNames = [...]string{"pawn", "bishop", "knight", "rook", "queen", "king"}
var kindLetters = [...]byte{'p', 'b', 'n', 'r', 'q', 'k'}

// Tier 0 means the kind is never offered in a shop pool.
var kindTiers = [...]int{1, 1, 2, 2, 3, 0}

func (k Kind) Valid() bool { return int(k) < len(kindNames) }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindNames[k]
}

// Letter returns the notation letter, uppercase for white.
func (k Kind) Letter(side Side) byte {
	l := kindLetters[k]
	if side == White {
		return l - 'a' + 'A'
	}
	return l
}

func (k Kind) Tier() int { return kindTiers[k] }

// KindsForTier lists the kinds a pool of the given tier draws from.
func KindsForTier(tier int) []Kind {
	var out []Kind
	for _, k := range AllKinds {
		if k.Tier() == tier {
			out = append(out, k)
		}
	}
	return out
}

func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	// "castle" is what the first clients called the rook.
	if s == "castle" {
		return Rook, true
	}
	return 0, false
}

func KindFromLetter(b byte) (Kind, Side, bool) {
	side := Black
	if b >= 'A' && b <= 'Z' {
		side = White
		b = b - 'A' + 'a'
	}
	for i, l := range kindLetters {
		if l == b {
			return Kind(i), side, true
		}
	}
	return 0, side, false
}

func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	return json.Marshal(kindNames[k])
}

// UnmarshalJSON accepts the piece name or the legacy numeric index.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, ok := ParseKind(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKind, name)
		}
		*k = parsed
		return nil
	}
	var idx int
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownKind, data)
	}
	if idx < 0 || idx >= len(kindNames) {
		return fmt.Errorf("%w: %d", ErrUnknownKind, idx)
	}
	*k = Kind(idx)
	return nil
}

type Side uint8

const (
	White Side = iota
	Black
)

func (s Side) Opposite() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}
