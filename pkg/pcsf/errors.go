package pcsf

import "errors"

// Sentinel errors every Solve failure wraps via fmt.Errorf("...: %w", ...),
// matching the teacher's own error taxonomy style elsewhere in this module.
var (
	ErrInvalidArgument = errors.New("pcsf: invalid argument")
	ErrIndexOutOfRange = errors.New("pcsf: index out of range")
	ErrInternal        = errors.New("pcsf: internal consistency violation")
)
