// Package notation names the degrees of an equal temperament with letters and
// accidentals derived from a primary/secondary generator pair.
package notation

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/edotune/internal/temperament"
)

// Letters is the reference letter order. D sits on degree 0.
var Letters = [7]string{"D", "E", "F", "G", "A", "B", "C"}

// gapPriority lists which gaps become secondary steps first. Gap i lies
// between Letters[i] and Letters[i+1].
var gapPriority = [7]int{
	5, // B-C
	1, // E-F
	4, // A-B
	0, // D-E
	3, // G-A
	6, // C-D
	2, // F-G
}

// GeneratorSpec describes the two step sizes between neighbouring letters and
// the size of one accidental, all in EDO steps.
type GeneratorSpec struct {
	Primary    int `toml:"primary" yaml:"primary" validate:"gt=0"`
	Secondary  int `toml:"secondary" yaml:"secondary" validate:"gt=0"`
	Accidental int `toml:"accidental" yaml:"accidental"`
}

func (g GeneratorSpec) String() string {
	return fmt.Sprintf("primary %d, secondary %d, accidental %d", g.Primary, g.Secondary, g.Accidental)
}

// Spelling is a letter with a signed number of accidentals. Positive counts
// are sharps.
type Spelling struct {
	Letter      string
	Accidentals int
}

func (s Spelling) String() string {
	switch {
	case s.Accidentals > 0:
		return s.Letter + strings.Repeat("#", s.Accidentals)
	case s.Accidentals < 0:
		return s.Letter + strings.Repeat("b", -s.Accidentals)
	default:
		return s.Letter
	}
}

// Spec maps every degree of the octave to one or more spellings.
type Spec struct {
	steps      int
	generators GeneratorSpec
	degrees    [][]Spelling
}

// Steps returns the number of degrees.
func (s Spec) Steps() int { return s.steps }

// Generators returns the generator spec the notation was built from.
func (s Spec) Generators() GeneratorSpec { return s.generators }

// Spellings returns a copy of the spellings of degree, reduced modulo the
// octave.
func (s Spec) Spellings(degree int) []Spelling {
	if s.steps == 0 {
		return nil
	}
	return append([]Spelling(nil), s.degrees[temperament.Degree(degree, s.steps)]...)
}

// Name joins the spellings of degree with "/", e.g. "D#/Eb".
func (s Spec) Name(degree int) string {
	spellings := s.Spellings(degree)
	parts := make([]string, len(spellings))
	for i, sp := range spellings {
		parts[i] = sp.String()
	}
	return strings.Join(parts, "/")
}

// Names returns the name of every degree in order.
func (s Spec) Names() []string {
	names := make([]string, s.steps)
	for degree := range names {
		names[degree] = s.Name(degree)
	}
	return names
}

// Naturals returns the degree of each letter, in Letters order.
func (s Spec) Naturals() [7]int {
	var out [7]int
	for degree, spellings := range s.degrees {
		for _, sp := range spellings {
			if sp.Accidentals != 0 {
				continue
			}
			for i, letter := range Letters {
				if letter == sp.Letter {
					out[i] = degree
				}
			}
		}
	}
	return out
}

// Build names every degree of t. Either all degrees are named or an error is
// returned.
func Build(t temperament.Temperament, g GeneratorSpec) (Spec, error) {
	steps := t.Steps()
	naturals, err := naturalDegrees(steps, g)
	if err != nil {
		return Spec{}, err
	}

	degrees := make([][]Spelling, steps)
	for i, degree := range naturals {
		degrees[degree] = []Spelling{{Letter: Letters[i]}}
	}
	unnamed := steps - len(naturals)

	for k := 1; k <= steps && unnamed > 0; k++ {
		level := make(map[int][]Spelling)
		for i, degree := range naturals {
			sharp := temperament.Degree(degree+k*g.Accidental, steps)
			if degrees[sharp] == nil {
				level[sharp] = append(level[sharp], Spelling{Letter: Letters[i], Accidentals: k})
			}
		}
		for i, degree := range naturals {
			flat := temperament.Degree(degree-k*g.Accidental, steps)
			if degrees[flat] == nil {
				level[flat] = append(level[flat], Spelling{Letter: Letters[i], Accidentals: -k})
			}
		}
		for degree, spellings := range level {
			degrees[degree] = spellings
			unnamed--
		}
	}

	if unnamed > 0 {
		var missing []int
		for degree, spellings := range degrees {
			if spellings == nil {
				missing = append(missing, degree)
			}
		}
		return Spec{}, fmt.Errorf("%w: %d-EDO with %s leaves degrees %v unnamed", ErrUnreachableDegree, steps, g, missing)
	}
	return Spec{steps: steps, generators: g, degrees: degrees}, nil
}

// naturalDegrees places the seven letters. The number of secondary gaps b
// solves (7-b)*Primary + b*Secondary = steps.
func naturalDegrees(steps int, g GeneratorSpec) ([7]int, error) {
	var naturals [7]int
	if g.Primary <= 0 || g.Secondary <= 0 {
		return naturals, fmt.Errorf("%w: steps must be positive (%s)", ErrInvalidGenerator, g)
	}
	secondaryGaps := -1
	for b := 0; b <= 7; b++ {
		if (7-b)*g.Primary+b*g.Secondary == steps {
			secondaryGaps = b
			break
		}
	}
	if secondaryGaps < 0 {
		return naturals, fmt.Errorf("%w: %w: %s does not divide %d-EDO into seven letters", ErrInvalidGenerator, ErrUnreachableDegree, g, steps)
	}

	var gaps [7]int
	for i := range gaps {
		gaps[i] = g.Primary
	}
	for _, gap := range gapPriority[:secondaryGaps] {
		gaps[gap] = g.Secondary
	}
	for i := 1; i < len(naturals); i++ {
		naturals[i] = naturals[i-1] + gaps[i-1]
	}
	return naturals, nil
}

// DefaultGenerators picks meantone generators derived from the patent fifth
// when both steps are positive, porcupine generators otherwise.
func DefaultGenerators(t temperament.Temperament) GeneratorSpec {
	steps := t.Steps()
	fifth := t.Fifth()
	primary := 2*fifth - steps
	secondary := 3*steps - 5*fifth
	if primary <= 0 || secondary <= 0 {
		primary = (steps - 1) / 6
		secondary = steps - 6*primary
	}
	accidental := primary - secondary
	if accidental == 0 {
		accidental = 1
	}
	return GeneratorSpec{Primary: primary, Secondary: secondary, Accidental: accidental}
}
