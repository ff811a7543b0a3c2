package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/temperament"
)

func mustTemperament(t *testing.T, steps int) temperament.Temperament {
	t.Helper()
	tm, err := temperament.New(steps, []int{2, 3, 5})
	if err != nil {
		t.Fatalf("New(%d): %v", steps, err)
	}
	return tm
}

func TestDefaultSpec13EDO(t *testing.T) {
	tm := mustTemperament(t, 13)
	spec := DefaultSpec(notation.DefaultGenerators(tm))
	if spec != (Spec{RowGen: 1, ColGen: 2, Rows: 5, Cols: 12}) {
		t.Fatalf("DefaultSpec = %+v", spec)
	}
	l, err := Build(tm, spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.Rows() != 5 || l.Cols() != 12 {
		t.Fatalf("size = %dx%d", l.Rows(), l.Cols())
	}
	if got := fmt.Sprint(l.Cells[0]); got != "[0 2 4 6 8 10 12 1 3 5 7 9]" {
		t.Fatalf("row 0 = %s", got)
	}
	if got := fmt.Sprint(l.Cells[1][:3]); got != "[1 3 5]" {
		t.Fatalf("row 1 = %s", got)
	}
}

func TestBuildNegativeGenerators(t *testing.T) {
	tm := mustTemperament(t, 12)
	l, err := Build(tm, Spec{RowGen: -5, ColGen: -7, Rows: 3, Cols: 3, Origin: -1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, row := range l.Cells {
		for _, d := range row {
			if d < 0 || d >= 12 {
				t.Fatalf("degree %d out of range", d)
			}
		}
	}
	if l.At(0, 0) != 11 || l.At(1, 1) != 11 || l.At(0, 1) != 4 {
		t.Fatalf("unexpected cells %v", l.Cells)
	}
}

func TestBuildTranslationInvariance(t *testing.T) {
	for _, steps := range []int{5, 12, 13, 19, 31} {
		tm := mustTemperament(t, steps)
		spec := Spec{RowGen: 3, ColGen: 2, Rows: 6, Cols: 9}
		base, err := Build(tm, spec)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		for r := 0; r < spec.Rows; r++ {
			for c := 0; c < spec.Cols; c++ {
				if c+1 < spec.Cols && temperament.Degree(base.At(r, c+1)-base.At(r, c), steps) != temperament.Degree(spec.ColGen, steps) {
					t.Fatalf("%d-EDO: column step at (%d,%d) is not %d", steps, r, c, spec.ColGen)
				}
				if r+1 < spec.Rows && temperament.Degree(base.At(r+1, c)-base.At(r, c), steps) != temperament.Degree(spec.RowGen, steps) {
					t.Fatalf("%d-EDO: row step at (%d,%d) is not %d", steps, r, c, spec.RowGen)
				}
			}
		}
		for shift := 1; shift < steps; shift++ {
			moved := spec
			moved.Origin = shift
			l, err := Build(tm, moved)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			for r := range l.Cells {
				for c := range l.Cells[r] {
					if l.At(r, c) != temperament.Degree(base.At(r, c)+shift, steps) {
						t.Fatalf("%d-EDO: origin shift %d broke cell (%d,%d)", steps, shift, r, c)
					}
				}
			}
		}
	}
}

func TestBuildInvalidDimensions(t *testing.T) {
	tm := mustTemperament(t, 12)
	for _, spec := range []Spec{{Rows: 0, Cols: 4}, {Rows: 4, Cols: 0}, {Rows: -1, Cols: -1}} {
		if _, err := Build(tm, spec); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("Build(%+v) error = %v, want ErrInvalidDimensions", spec, err)
		}
	}
}
