package abi

// ErrorCode is the return-value convention of every fallible table entry.
// Zero means success; any other value instructs the host to read the
// instance's last-error message before issuing further calls.
type ErrorCode uint32

const (
	ErrOK ErrorCode = iota
	ErrStateUnrecoverable
	ErrStateCorrupted
	ErrOutOfMemory
	ErrFeatureUnsupported
	ErrMissingHiddenState
	ErrInvalidInput
	ErrInvalidPlayer
	ErrInvalidMove
	ErrInvalidOptions
	ErrInvalidLegacy
	ErrInvalidState
	ErrUnenumerable
	ErrUnstablePosition
	ErrSyncCounterMismatch
	ErrRetry
	ErrCustomAny

	errEnumMax
)

var codeNames = [...]string{
	ErrOK:                  "ok",
	ErrStateUnrecoverable:  "state_unrecoverable",
	ErrStateCorrupted:      "state_corrupted",
	ErrOutOfMemory:         "out_of_memory",
	ErrFeatureUnsupported:  "feature_unsupported",
	ErrMissingHiddenState:  "missing_hidden_state",
	ErrInvalidInput:        "invalid_input",
	ErrInvalidPlayer:       "invalid_player",
	ErrInvalidMove:         "invalid_move",
	ErrInvalidOptions:      "invalid_options",
	ErrInvalidLegacy:       "invalid_legacy",
	ErrInvalidState:        "invalid_state",
	ErrUnenumerable:        "unenumerable",
	ErrUnstablePosition:    "unstable_position",
	ErrSyncCounterMismatch: "sync_counter_mismatch",
	ErrRetry:               "retry",
	ErrCustomAny:           "custom",
}

// String returns the protocol name of the code.
func (c ErrorCode) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// IsOK reports whether the code signals success.
func (c ErrorCode) IsOK() bool { return c == ErrOK }

// Valid reports whether the code is inside the defined range.
func (c ErrorCode) Valid() bool { return c < errEnumMax }
