package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // descriptor validation
	PhaseCompose  Phase = "compose"  // address assignment
	PhaseEmit     Phase = "emit"     // artifact emission
	PhaseLoad     Phase = "load"     // configuration loading
	PhaseParse    Phase = "parse"    // artifact/blob parsing
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidAlignment Kind = "invalid_alignment"
	KindOriginMisaligned Kind = "origin_misaligned"
	KindDuplicateRegion  Kind = "duplicate_region"
	KindNegativeExtent   Kind = "negative_extent"
	KindInvalidData      Kind = "invalid_data"
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
	KindUnsupported      Kind = "unsupported"
)

// Error is the structured configuration error used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Reg    string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Reg != "" {
		b.WriteString(" in region ")
		b.WriteString(e.Reg)
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
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

// Region sets the offending region name
func (b *Builder) Region(name string) *Builder {
	b.err.Reg = name
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

// Convenience constructors for common error patterns

// InvalidAlignment creates an invalid alignment error
func InvalidAlignment(phase Phase, region string, align uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidAlignment,
		Reg:    region,
		Detail: fmt.Sprintf("alignment %d is not a power of two", align),
		Value:  align,
	}
}

// OriginMisaligned creates an origin misalignment error
func OriginMisaligned(origin, align uint64, region string) *Error {
	return &Error{
		Phase:  PhaseCompose,
		Kind:   KindOriginMisaligned,
		Reg:    region,
		Detail: fmt.Sprintf("origin %#x violates first-region alignment %d", origin, align),
		Value:  origin,
	}
}

// DuplicateRegion creates a duplicate region name error
func DuplicateRegion(phase Phase, region string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateRegion,
		Reg:    region,
		Detail: "region name declared more than once",
	}
}

// NegativeExtent creates a reversed-extent error
func NegativeExtent(phase Phase, region string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNegativeExtent,
		Reg:    region,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, region string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Reg:    region,
		Detail: detail,
	}
}

// NotFound creates a lookup failure error
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: what,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
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
