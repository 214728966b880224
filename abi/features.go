package abi

// GameFeatureFlags is the bitset of optional capabilities a game
// implementation declares. Table entries for unset features are nil so
// the host statically knows which capabilities exist.
type GameFeatureFlags struct {
	Options           bool
	Print             bool
	RandomMoves       bool
	HiddenInformation bool
	BigMoves          bool
}

// Bits packs the flags for transport across the boundary.
func (f GameFeatureFlags) Bits() uint64 {
	var b uint64
	if f.Options {
		b |= 1 << 0
	}
	if f.Print {
		b |= 1 << 1
	}
	if f.RandomMoves {
		b |= 1 << 2
	}
	if f.HiddenInformation {
		b |= 1 << 3
	}
	if f.BigMoves {
		b |= 1 << 4
	}
	return b
}

// GameFeaturesFromBits unpacks a transported bitset.
func GameFeaturesFromBits(b uint64) GameFeatureFlags {
	return GameFeatureFlags{
		Options:           b&(1<<0) != 0,
		Print:             b&(1<<1) != 0,
		RandomMoves:       b&(1<<2) != 0,
		HiddenInformation: b&(1<<3) != 0,
		BigMoves:          b&(1<<4) != 0,
	}
}

// FrontendFeatureFlags is the bitset of optional frontend capabilities.
type FrontendFeatureFlags struct {
	Options bool
}
