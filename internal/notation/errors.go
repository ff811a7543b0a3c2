package notation

import "errors"

var (
	// ErrInvalidGenerator is returned when the generators cannot produce a
	// seven-letter scale filling the octave.
	ErrInvalidGenerator = errors.New("notation: invalid generator")
	// ErrUnreachableDegree is returned when some degree gets no spelling.
	ErrUnreachableDegree = errors.New("notation: unreachable degree")
)
