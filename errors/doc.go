// Package errors provides structured error types for the mem-layout library.
//
// Every failure in this library is a configuration error raised before an
// image exists; there is no runtime failure mode. Errors are categorized by
// Phase (where the error occurred) and Kind (error category), and carry the
// offending region name so the build operator can find the bad descriptor.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompose, errors.KindInvalidAlignment).
//		Region("bss").
//		Detail("alignment %d is not a power of two", 24).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidAlignment(errors.PhaseValidate, "bss", 24)
//	err := errors.DuplicateRegion(errors.PhaseCompose, "data")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
