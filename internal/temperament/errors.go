package temperament

import "errors"

var (
	// ErrInvalidStepCount is returned when the number of steps per octave is not positive.
	ErrInvalidStepCount = errors.New("temperament: step count must be positive")

	// ErrInvalidSubgroup is returned for empty prime lists, non-primes and duplicates.
	ErrInvalidSubgroup = errors.New("temperament: invalid subgroup")
)
