package workout

import (
	"errors"
	"fmt"
)

// Tier is one of the three prescribed difficulty levels an athlete trains at.
type Tier string

const (
	TierMED Tier = "MED"
	TierLRG Tier = "LRG"
	TierXL  Tier = "XL"
)

// AllTiers is the stable iteration order used whenever all tiers are
// resolved together.
var AllTiers = [3]Tier{TierMED, TierLRG, TierXL}

// fallbackOrder is the fixed substitution chain per requested tier. The
// first entry is always the requested tier itself.
var fallbackOrder = map[Tier][3]Tier{
	TierMED: {TierMED, TierLRG, TierXL},
	TierLRG: {TierLRG, TierMED, TierXL},
	TierXL:  {TierXL, TierLRG, TierMED},
}

var (
	ErrUnknownTier   = errors.New("unknown tier")
	ErrNoTierVariant = errors.New("workout has no usable tier variant")
)

func KnownTier(t Tier) bool {
	_, ok := fallbackOrder[t]
	return ok
}

// ParseTier normalizes a wire-format tier name.
func ParseTier(raw string) (Tier, error) {
	t := Tier(raw)
	if !KnownTier(t) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, raw)
	}
	return t, nil
}

// ResolveTier picks the best available variant for the requested tier under
// the fixed fallback chain and reports which tier actually supplied it, so
// callers can tell a direct hit from a substitution. A workout exposing no
// variant along the whole chain is corrupt data.
func ResolveTier(w Workout, requested Tier) (Variant, Tier, error) {
	order, ok := fallbackOrder[requested]
	if !ok {
		return Variant{}, "", fmt.Errorf("%w: %q", ErrUnknownTier, requested)
	}

	for _, tier := range order {
		if variant, ok := w.Tiers[tier]; ok {
			return variant, tier, nil
		}
	}

	return Variant{}, "", fmt.Errorf("%w: workout=%s requested=%s", ErrNoTierVariant, w.Key(), requested)
}
