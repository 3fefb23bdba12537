package genedist

import "errors"

// Sentinel errors, wrapped with context via %w at the point they occur.
// These are the four error kinds of the engine's public contract: a failure
// reading a file, a catalogue line that cannot be parsed, a cost table that
// would not fit in available memory, and a caller argument that violates a
// precondition (mismatched mask lengths, a bad command-line flag, and so on).
var (
	ErrIO                 = errors.New("genedist: io error")
	ErrMalformedCatalogue = errors.New("genedist: malformed catalogue")
	ErrOutOfMemory        = errors.New("genedist: out of memory")
	ErrInvalidArguments   = errors.New("genedist: invalid arguments")
)
