package abi

// BufSizer declares the upper bounds the host trusts for buffer sizing.
// A game returns it from create; the bridge validates it before storing
// it on the handle. String sizes include the trailing terminator, so an
// enabled feature's size must never be zero.
type BufSizer struct {
	PlayerCount      uint8
	MaxPlayersToMove uint8
	MaxMoves         uint32
	MaxActions       uint32
	MaxResults       uint8

	StateStr   uint64
	MoveStr    uint64
	OptionsStr uint64
	PrintStr   uint64
}

// Validate panics when a bound required by the enabled feature set is
// zero. A zero bound is a contract violation by the implementer, not a
// runtime condition; continuing would risk host-visible memory
// corruption, so this is deliberately fatal.
func (s *BufSizer) Validate(features GameFeatureFlags) {
	const failure = "abi: string buffer length must not be 0"

	if s.StateStr == 0 {
		panic(failure)
	}
	if s.MoveStr == 0 {
		panic(failure)
	}
	if features.Options && s.OptionsStr == 0 {
		panic(failure)
	}
	if features.Print && s.PrintStr == 0 {
		panic(failure)
	}
	if features.HiddenInformation && s.MaxActions == 0 {
		panic("abi: max actions must not be 0 with hidden information enabled")
	}
}
