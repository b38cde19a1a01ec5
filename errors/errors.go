package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // container to entities
	PhaseEncode Phase = "encode" // entities to container
	PhaseMerge  Phase = "merge"  // cross-unit folding
	PhaseStore  Phase = "store"  // corpus persistence
	PhaseConfig Phase = "config" // configuration loading
	PhaseBuild  Phase = "build"  // discovery and orchestration
)

// Kind categorizes the error
type Kind string

const (
	KindBadSignature          Kind = "bad_signature"
	KindVersionMismatch       Kind = "version_mismatch"
	KindMalformedStream       Kind = "malformed_stream"
	KindInvalidTopLevelBlock  Kind = "invalid_top_level_block"
	KindInvalidAttachment     Kind = "invalid_attachment"
	KindInvalidEnumValue      Kind = "invalid_enum_value"
	KindIntegerOverflow       Kind = "integer_overflow"
	KindBadIdentifierLength   Kind = "bad_identifier_length"
	KindTooManyReturnsNodes   Kind = "too_many_returns_nodes"
	KindConflictingEntityKind Kind = "conflicting_entity_kind"
	KindNotFound              Kind = "not_found"
	KindInvalidInput          Kind = "invalid_input"
	KindIO                    Kind = "io"
)

// Sentinels match any error of their kind regardless of phase.
var (
	ErrBadSignature          = &Error{Kind: KindBadSignature}
	ErrVersionMismatch       = &Error{Kind: KindVersionMismatch}
	ErrMalformedStream       = &Error{Kind: KindMalformedStream}
	ErrInvalidTopLevelBlock  = &Error{Kind: KindInvalidTopLevelBlock}
	ErrInvalidAttachment     = &Error{Kind: KindInvalidAttachment}
	ErrInvalidEnumValue      = &Error{Kind: KindInvalidEnumValue}
	ErrIntegerOverflow       = &Error{Kind: KindIntegerOverflow}
	ErrBadIdentifierLength   = &Error{Kind: KindBadIdentifierLength}
	ErrTooManyReturnsNodes   = &Error{Kind: KindTooManyReturnsNodes}
	ErrConflictingEntityKind = &Error{Kind: KindConflictingEntityKind}
	ErrNotFound              = &Error{Kind: KindNotFound}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Unit   string // container the error came from
	Symbol string // hex identifier of the affected entity
	Detail string
	Path   []string // block path inside the container
	Offset int      // byte offset, valid when HasOffset is set

	HasOffset bool
}

// Error implements the error interface
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
	if e.HasOffset {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}
	if e.Unit != "" {
		b.WriteString(" in ")
		b.WriteString(e.Unit)
	}
	if e.Symbol != "" {
		b.WriteString(" for ")
		b.WriteString(e.Symbol)
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

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the block path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Unit sets the container name
func (b *Builder) Unit(unit string) *Builder {
	b.err.Unit = unit
	return b
}

// Symbol sets the affected identifier
func (b *Builder) Symbol(symbol string) *Builder {
	b.err.Symbol = symbol
	return b
}

// Offset sets the byte offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	b.err.HasOffset = true
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// As returns err as *Error when it is one or wraps one.
func As(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

// Is is errors.Is from the standard library, re-exported so callers importing
// this package need not alias it.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

// Convenience constructors for common error patterns

// BadSignature creates a signature mismatch error
func BadSignature(got []byte) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindBadSignature,
		Detail:    fmt.Sprintf("unexpected signature %q", got),
		Value:     got,
		HasOffset: true,
	}
}

// VersionMismatch creates a schema version error
func VersionMismatch(got, want uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindVersionMismatch,
		Detail: fmt.Sprintf("schema version %d, expected %d", got, want),
		Value:  got,
	}
}

// Malformed creates a malformed stream error at a byte offset
func Malformed(offset int, format string, args ...any) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindMalformedStream,
		Detail:    fmt.Sprintf(format, args...),
		Offset:    offset,
		HasOffset: true,
	}
}

// InvalidTopLevelBlock creates an error for a child-only block at top level
func InvalidTopLevelBlock(block string, offset int) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindInvalidTopLevelBlock,
		Detail:    fmt.Sprintf("block %s is not allowed at top level", block),
		Value:     block,
		Offset:    offset,
		HasOffset: true,
	}
}

// InvalidAttachment creates an error for an owner/child pairing the schema lacks
func InvalidAttachment(owner, child string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidAttachment,
		Detail: fmt.Sprintf("cannot attach %s to %s", child, owner),
	}
}

// InvalidEnumValue creates an invalid discriminant error
func InvalidEnumValue(path []string, value uint64, enumType string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEnumValue,
		Path:   path,
		Detail: fmt.Sprintf("invalid %s value %d", enumType, value),
		Value:  value,
	}
}

// IntegerOverflow creates an overflow error
func IntegerOverflow(path []string, value uint64, targetType string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindIntegerOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %d overflows %s", value, targetType),
		Value:  value,
	}
}

// BadIdentifierLength creates an identifier width error
func BadIdentifierLength(path []string, got, want int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBadIdentifierLength,
		Path:   path,
		Detail: fmt.Sprintf("identifier length %d, expected %d", got, want),
		Value:  got,
	}
}

// TooManyReturns creates an error for a second returns node
func TooManyReturns(path []string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTooManyReturnsNodes,
		Path:   path,
		Detail: "more than one returns node",
	}
}

// ConflictingEntityKind creates a merge error for an identifier seen with two kinds
func ConflictingEntityKind(symbol, first, other string) *Error {
	return &Error{
		Phase:  PhaseMerge,
		Kind:   KindConflictingEntityKind,
		Symbol: symbol,
		Detail: fmt.Sprintf("entity is %s in one unit and %s in another", first, other),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IO wraps a filesystem or database failure
func IO(phase Phase, detail string, cause error) *Error {
	return Wrap(phase, KindIO, cause, detail)
}
