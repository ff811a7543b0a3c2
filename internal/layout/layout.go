// Package layout builds isomorphic keyboard grids for an equal temperament.
package layout

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/temperament"
)

// ErrInvalidDimensions is returned for a grid without rows or columns.
var ErrInvalidDimensions = errors.New("layout: invalid dimensions")

// Spec places degrees on a grid: moving one column adds ColGen steps, moving
// one row adds RowGen steps.
type Spec struct {
	RowGen int `toml:"row_gen" yaml:"row_gen"`
	ColGen int `toml:"col_gen" yaml:"col_gen"`
	Rows   int `toml:"rows" yaml:"rows" validate:"gt=0,lte=64"`
	Cols   int `toml:"cols" yaml:"cols" validate:"gt=0,lte=64"`
	Origin int `toml:"origin" yaml:"origin"`
}

// DefaultSpec lays primary steps along a row and secondary steps down the
// columns on a 5x12 grid.
func DefaultSpec(g notation.GeneratorSpec) Spec {
	return Spec{
		RowGen: g.Secondary,
		ColGen: g.Primary,
		Rows:   5,
		Cols:   12,
		Origin: 0,
	}
}

// Layout is a grid of degrees in [0, Steps).
type Layout struct {
	Steps int
	Cells [][]int
}

// Build fills the grid for t.
func Build(t temperament.Temperament, spec Spec) (Layout, error) {
	if spec.Rows <= 0 || spec.Cols <= 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, spec.Rows, spec.Cols)
	}
	steps := t.Steps()
	cells := make([][]int, spec.Rows)
	for r := range cells {
		row := make([]int, spec.Cols)
		for c := range row {
			row[c] = temperament.Degree(spec.Origin+r*spec.RowGen+c*spec.ColGen, steps)
		}
		cells[r] = row
	}
	return Layout{Steps: steps, Cells: cells}, nil
}

// Rows returns the number of rows.
func (l Layout) Rows() int { return len(l.Cells) }

// Cols returns the number of columns.
func (l Layout) Cols() int {
	if len(l.Cells) == 0 {
		return 0
	}
	return len(l.Cells[0])
}

// At returns the degree at row r, column c.
func (l Layout) At(r, c int) int { return l.Cells[r][c] }
