package errors

import (
	"fmt"
	"strings"

	"github.com/playmesh/plugbridge/abi"
)

// Phase indicates which bridge operation the error occurred in.
type Phase string

const (
	PhaseCreate       Phase = "create"       // instance construction
	PhaseClone        Phase = "clone"        // instance duplication
	PhaseDestroy      Phase = "destroy"      // instance teardown
	PhaseDecode       Phase = "decode"       // wire to safe values
	PhaseEncode       Phase = "encode"       // safe values to wire
	PhaseQuery        Phase = "query"        // read-only table entries
	PhaseMutate       Phase = "mutate"       // state-changing table entries
	PhaseDispatch     Phase = "dispatch"     // frontend event/input dispatch
	PhaseRegistration Phase = "registration" // plugin registration
	PhaseHost         Phase = "host"         // host-side driving
)

// Kind categorizes the error. Each kind maps onto one wire error code.
type Kind string

const (
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidPlayer       Kind = "invalid_player"
	KindInvalidMove         Kind = "invalid_move"
	KindInvalidOptions      Kind = "invalid_options"
	KindInvalidLegacy       Kind = "invalid_legacy"
	KindInvalidState        Kind = "invalid_state"
	KindUnsupported         Kind = "unsupported"
	KindMissingHiddenState  Kind = "missing_hidden_state"
	KindSyncCounterMismatch Kind = "sync_counter_mismatch"
	KindUnenumerable        Kind = "unenumerable"
	KindUnstablePosition    Kind = "unstable_position"
	KindStateUnrecoverable  Kind = "state_unrecoverable"
	KindStateCorrupted      Kind = "state_corrupted"
	KindOutOfMemory         Kind = "out_of_memory"
	KindVersionMismatch     Kind = "version_mismatch"
	KindNotFound            Kind = "not_found"
	KindRegistration        Kind = "registration"
	KindRetry               Kind = "retry"
	KindInternal            Kind = "internal"
)

var kindCodes = map[Kind]abi.ErrorCode{
	KindInvalidInput:        abi.ErrInvalidInput,
	KindInvalidPlayer:       abi.ErrInvalidPlayer,
	KindInvalidMove:         abi.ErrInvalidMove,
	KindInvalidOptions:      abi.ErrInvalidOptions,
	KindInvalidLegacy:       abi.ErrInvalidLegacy,
	KindInvalidState:        abi.ErrInvalidState,
	KindUnsupported:         abi.ErrFeatureUnsupported,
	KindMissingHiddenState:  abi.ErrMissingHiddenState,
	KindSyncCounterMismatch: abi.ErrSyncCounterMismatch,
	KindUnenumerable:        abi.ErrUnenumerable,
	KindUnstablePosition:    abi.ErrUnstablePosition,
	KindStateUnrecoverable:  abi.ErrStateUnrecoverable,
	KindStateCorrupted:      abi.ErrStateCorrupted,
	KindOutOfMemory:         abi.ErrOutOfMemory,
	KindVersionMismatch:     abi.ErrCustomAny,
	KindNotFound:            abi.ErrCustomAny,
	KindRegistration:        abi.ErrCustomAny,
	KindRetry:               abi.ErrRetry,
	KindInternal:            abi.ErrCustomAny,
}

var codeKinds = map[abi.ErrorCode]Kind{
	abi.ErrInvalidInput:        KindInvalidInput,
	abi.ErrInvalidPlayer:       KindInvalidPlayer,
	abi.ErrInvalidMove:         KindInvalidMove,
	abi.ErrInvalidOptions:      KindInvalidOptions,
	abi.ErrInvalidLegacy:       KindInvalidLegacy,
	abi.ErrInvalidState:        KindInvalidState,
	abi.ErrFeatureUnsupported:  KindUnsupported,
	abi.ErrMissingHiddenState:  KindMissingHiddenState,
	abi.ErrSyncCounterMismatch: KindSyncCounterMismatch,
	abi.ErrUnenumerable:        KindUnenumerable,
	abi.ErrUnstablePosition:    KindUnstablePosition,
	abi.ErrStateUnrecoverable:  KindStateUnrecoverable,
	abi.ErrStateCorrupted:      KindStateCorrupted,
	abi.ErrOutOfMemory:         KindOutOfMemory,
	abi.ErrRetry:               KindRetry,
	abi.ErrCustomAny:           KindInternal,
}

// Error is the structured error type used throughout the bridge.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the cause chain.
func (e *Error) Unwrap() error { return e.Cause }

// Code returns the wire error code for the error's kind.
func (e *Error) Code() abi.ErrorCode {
	if c, ok := kindCodes[e.Kind]; ok {
		return c
	}
	return abi.ErrCustomAny
}

// CodeOf maps any error onto its wire code. Non-bridge errors map to the
// catch-all custom code; nil maps to success.
func CodeOf(err error) abi.ErrorCode {
	if err == nil {
		return abi.ErrOK
	}
	if e, ok := err.(*Error); ok {
		return e.Code()
	}
	return abi.ErrCustomAny
}

// FromCode reconstructs an *Error from a wire (code, message) pair, as
// read back through the error channel.
func FromCode(phase Phase, code abi.ErrorCode, message string) *Error {
	kind, ok := codeKinds[code]
	if !ok {
		kind = KindInternal
	}
	return &Error{Phase: phase, Kind: kind, Detail: message}
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidInput creates a malformed-input error.
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindInvalidInput).Detail(detail, args...).Build()
}

// InvalidMove creates an illegal-move error.
func InvalidMove(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindInvalidMove).Detail(detail, args...).Build()
}

// InvalidOptions creates a semantically-rejected options error.
func InvalidOptions(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindInvalidOptions).Detail(detail, args...).Build()
}

// Unsupported creates an unsupported-feature error.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a lookup failure error.
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// VersionMismatch creates a version negotiation failure.
func VersionMismatch(phase Phase, want, got uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindVersionMismatch,
		Detail: fmt.Sprintf("ABI version mismatch: host %d, plugin %d", want, got),
		Value:  got,
	}
}

// SyncMismatch creates a stale-move error for hidden-information games.
func SyncMismatch(phase Phase, want, got uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSyncCounterMismatch,
		Detail: fmt.Sprintf("sync counter mismatch: expected %d, got %d", want, got),
		Value:  got,
	}
}
