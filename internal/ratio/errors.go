package ratio

import "errors"

var (
	// ErrInvalidRatio is returned for zero, negative, malformed or oversized ratios.
	ErrInvalidRatio = errors.New("ratio: invalid ratio")

	// ErrUnsupportedPrimeFactor is returned when a value has a prime factor
	// outside the prime list it is expressed over.
	ErrUnsupportedPrimeFactor = errors.New("ratio: unsupported prime factor")

	// ErrLengthMismatch is returned when a monzo and a prime list (or two monzos) differ in length.
	ErrLengthMismatch = errors.New("ratio: length mismatch")

	// ErrOverflow is returned when reconstructing a ratio exceeds 64 bits.
	ErrOverflow = errors.New("ratio: value overflows 64 bits")
)
