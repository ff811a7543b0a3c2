// Package report assembles the analysis of one temperament and renders it as
// text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/layout"
	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/ratio"
	"github.com/verte-zerg/edotune/internal/temperament"
)

// Options tune what Build computes. Nil generators or layout fall back to
// the defaults derived from the temperament.
type Options struct {
	Generators *notation.GeneratorSpec
	Layout     *layout.Spec
	// Ratios are located in addition to the reference ratios.
	Ratios []ratio.Ratio
}

// Report contains precomputed data for rendering.
type Report struct {
	Temperament temperament.Temperament
	Errors      temperament.ErrorReport
	Commas      []comma.Comma
	Locations   []temperament.Location

	Generators  notation.GeneratorSpec
	Notation    notation.Spec
	NotationErr error

	Layout    layout.Layout
	LayoutErr error
}

// Build analyses t against cat. Notation and layout failures are kept in the
// report rather than returned.
func Build(t temperament.Temperament, cat *comma.Catalog, opts Options) Report {
	rep := Report{
		Temperament: t,
		Errors:      temperament.Analyze(t),
	}
	if cat != nil {
		rep.Commas = comma.TemperedOut(t, cat)
	}
	for _, r := range append(temperament.ReferenceRatios(), opts.Ratios...) {
		rep.Locations = append(rep.Locations, temperament.Locate(t, r))
	}

	rep.Generators = notation.DefaultGenerators(t)
	if opts.Generators != nil {
		rep.Generators = *opts.Generators
	}
	rep.Notation, rep.NotationErr = notation.Build(t, rep.Generators)

	spec := layout.DefaultSpec(rep.Generators)
	if opts.Layout != nil {
		spec = *opts.Layout
	}
	rep.Layout, rep.LayoutErr = layout.Build(t, spec)
	return rep
}

// Write renders every section of rep.
func Write(w io.Writer, rep Report) error {
	var lines []string
	lines = append(lines, PropertyLines(rep)...)
	lines = append(lines, "")
	lines = append(lines, ValLines(rep)...)
	lines = append(lines, "")
	lines = append(lines, CommaLines(rep)...)
	lines = append(lines, "")
	lines = append(lines, LocationLines(rep)...)
	lines = append(lines, "")
	lines = append(lines, NotationLines(rep)...)
	lines = append(lines, "")
	lines = append(lines, LayoutLines(rep)...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PropertyLines renders the header with step size and fret constant.
func PropertyLines(rep Report) []string {
	steps := rep.Temperament.Steps()
	return []string{
		fmt.Sprintf("---- Properties of %d-EDO ----", steps),
		"",
		fmt.Sprintf("- step size: %.3fc", rep.Temperament.StepSizeCents()),
		fmt.Sprintf("- fret constant: %.3f", temperament.FretConstant(steps)),
	}
}

// ValLines renders the patent val block.
func ValLines(rep Report) []string {
	subgroup := "none"
	if accurate := rep.Errors.AccurateSubgroup(); len(accurate) > 0 {
		subgroup = ratio.FormatPrimes(accurate)
	}
	return []string{
		fmt.Sprintf("-- Patent val (%d-limit) --", rep.Temperament.Limit()),
		"val: " + rep.Temperament.Val().String(),
		"errors (absolute): " + formatSigned(rep.Errors.AbsoluteCents(), "c"),
		"errors (relative): " + formatSigned(rep.Errors.RelativePercent(), "%"),
		fmt.Sprintf("TE simple badness: %.3f‰", rep.Errors.TESimpleBadness),
		"subgroup: " + subgroup,
	}
}

// CommaLines renders tempered commas grouped by limit.
func CommaLines(rep Report) []string {
	lines := []string{"-- Tempered commas --"}
	if len(rep.Commas) == 0 {
		return append(lines, "- none")
	}
	for _, group := range comma.GroupByLimit(rep.Commas) {
		for _, c := range group.Commas {
			lines = append(lines, fmt.Sprintf("- tempers out %s %s (%s)", c.LimitLabel(), c.Ratio, c.Name))
		}
	}
	return lines
}

// LocationLines renders tempered vs. patent locations.
func LocationLines(rep Report) []string {
	lines := []string{"-- Tempered vs. patent locations --"}
	for _, loc := range rep.Locations {
		lines = append(lines, fmt.Sprintf("Tempered vs. patent location of %s: %s", loc.Ratio, formatLocation(loc)))
	}
	return lines
}

func formatLocation(loc temperament.Location) string {
	if !loc.HasTempered {
		return fmt.Sprintf("n/a vs %d", loc.PatentDegree)
	}
	out := fmt.Sprintf("%d vs %d", loc.TemperedDegree, loc.PatentDegree)
	if loc.Tempered != loc.TemperedDegree || loc.Patent != loc.PatentDegree {
		out += fmt.Sprintf(" (raw %d vs %d)", loc.Tempered, loc.Patent)
	}
	return out
}

// NotationLines renders generator sizes and the name of every degree.
func NotationLines(rep Report) []string {
	g := rep.Generators
	lines := []string{
		"-- Notation --",
		"primary step: " + stepCount(g.Primary),
		"secondary step: " + stepCount(g.Secondary),
		"accidental: " + stepCount(g.Accidental),
	}
	if rep.NotationErr != nil {
		return append(lines, "notation unavailable: "+rep.NotationErr.Error())
	}
	width := len(strconv.Itoa(rep.Notation.Steps() - 1))
	for degree, name := range rep.Notation.Names() {
		lines = append(lines, fmt.Sprintf(" %*d. %s", width, degree, name))
	}
	return lines
}

// LayoutLines renders the keyboard grid, top row first.
func LayoutLines(rep Report) []string {
	lines := []string{"-- Keyboard layout --"}
	if rep.LayoutErr != nil {
		return append(lines, "layout unavailable: "+rep.LayoutErr.Error())
	}
	width := len(strconv.Itoa(rep.Layout.Steps - 1))
	for _, row := range rep.Layout.Cells {
		cells := make([]string, len(row))
		for i, degree := range row {
			cells[i] = padCell(strconv.Itoa(degree), width, true)
		}
		lines = append(lines, " "+strings.Join(cells, " "))
	}
	return lines
}

func formatSigned(values []float64, unit string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == 0 {
			// print -0 as +0
			v = 0
		}
		parts[i] = fmt.Sprintf("%+.1f%s", v, unit)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func stepCount(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d EDO-step", n)
	}
	return fmt.Sprintf("%d EDO-steps", n)
}
