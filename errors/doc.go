// Package errors provides structured error types for the doccorpus module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the block path, byte offset, unit and symbol involved, plus
// the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidEnumValue).
//		Path("record", "tag_type").
//		Offset(412).
//		Value(uint64(9)).
//		Detail("unknown tag kind").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.VersionMismatch(4, 3)
//	err := errors.InvalidAttachment("enum", "template")
//
// Kind sentinels such as ErrVersionMismatch match any error of that kind through
// errors.Is, whatever the phase.
package errors
