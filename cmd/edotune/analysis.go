package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/edotune/internal/config"
	"github.com/verte-zerg/edotune/internal/layout"
	"github.com/verte-zerg/edotune/internal/model"
	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/report"
	"github.com/verte-zerg/edotune/internal/temperament"
	"github.com/verte-zerg/edotune/internal/tui"
)

// notationFlags and layoutFlags hold the per-command generator and keyboard
// settings. Zero means "derive from the temperament".
type notationFlags struct {
	primary    int
	secondary  int
	accidental int
}

type layoutFlags struct {
	rows   int
	cols   int
	rowGen int
	colGen int
	origin int
}

var (
	estNotation notationFlags
	estLayout   layoutFlags
	estRatios   []string
)

func newEstCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "est EDO",
		Short: "Print the full analysis of an equal temperament",
		Args:  cobra.ExactArgs(1),
		RunE:  runEstCmd,
	}
	addNotationFlags(cmd, &estNotation)
	addLayoutFlags(cmd, &estLayout)
	cmd.Flags().StringSliceVar(&estRatios, "ratio", nil, "extra ratios to locate (repeatable)")
	return cmd
}

func addNotationFlags(cmd *cobra.Command, f *notationFlags) {
	cmd.Flags().IntVar(&f.primary, "primary", 0, "primary step between letters in EDO steps")
	cmd.Flags().IntVar(&f.secondary, "secondary", 0, "secondary step between letters in EDO steps")
	cmd.Flags().IntVar(&f.accidental, "accidental", 0, "size of one sharp in EDO steps (default primary-secondary)")
}

func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	cmd.Flags().IntVar(&f.rows, "rows", defaultRows, "keyboard rows")
	cmd.Flags().IntVar(&f.cols, "cols", defaultCols, "keyboard columns")
	cmd.Flags().IntVar(&f.rowGen, "row-gen", 0, "steps per keyboard row (default secondary step)")
	cmd.Flags().IntVar(&f.colGen, "col-gen", 0, "steps per keyboard column (default primary step)")
	cmd.Flags().IntVar(&f.origin, "origin", 0, "degree of the top-left key")
}

func applyNotationConfig(cmd *cobra.Command, f *notationFlags, cfg config.NotationConfig) {
	applyIntConfig(cmd, "primary", &f.primary, cfg.Primary)
	applyIntConfig(cmd, "secondary", &f.secondary, cfg.Secondary)
	applyIntConfig(cmd, "accidental", &f.accidental, cfg.Accidental)
}

func applyLayoutConfig(cmd *cobra.Command, f *layoutFlags, cfg config.LayoutConfig) {
	applyIntConfig(cmd, "rows", &f.rows, cfg.Rows)
	applyIntConfig(cmd, "cols", &f.cols, cfg.Cols)
	applyIntConfig(cmd, "row-gen", &f.rowGen, cfg.RowGen)
	applyIntConfig(cmd, "col-gen", &f.colGen, cfg.ColGen)
	applyIntConfig(cmd, "origin", &f.origin, cfg.Origin)
}

// generators returns nil when no notation setting was given. An accidental
// alone adjusts the default generators of t.
func (f notationFlags) generators(t temperament.Temperament) (*notation.GeneratorSpec, error) {
	switch {
	case f.primary == 0 && f.secondary == 0:
		if f.accidental == 0 {
			return nil, nil
		}
		g := notation.DefaultGenerators(t)
		g.Accidental = f.accidental
		return &g, nil
	case f.primary == 0 || f.secondary == 0:
		return nil, fmt.Errorf("--primary and --secondary must be given together")
	}
	g := notation.GeneratorSpec{Primary: f.primary, Secondary: f.secondary, Accidental: f.accidental}
	if g.Accidental == 0 {
		g.Accidental = g.Primary - g.Secondary
		if g.Accidental == 0 {
			g.Accidental = 1
		}
	}
	return &g, nil
}

// spec returns nil when every setting is at its default, so the report
// derives the keyboard from the notation generators.
func (f layoutFlags) spec(t temperament.Temperament, g *notation.GeneratorSpec) *layout.Spec {
	if f.rows == defaultRows && f.cols == defaultCols && f.rowGen == 0 && f.colGen == 0 && f.origin == 0 {
		return nil
	}
	gens := notation.DefaultGenerators(t)
	if g != nil {
		gens = *g
	}
	spec := layout.DefaultSpec(gens)
	spec.Rows = f.rows
	spec.Cols = f.cols
	spec.Origin = f.origin
	if f.rowGen != 0 {
		spec.RowGen = f.rowGen
	}
	if f.colGen != 0 {
		spec.ColGen = f.colGen
	}
	return &spec
}

// buildDescriptor resolves the temperament and its notation and keyboard
// settings from flags and config.
func buildDescriptor(steps int, nf notationFlags, lf layoutFlags, ratios []string) (model.Descriptor, temperament.Temperament, error) {
	primes, limit := subgroupArgs()
	desc := model.Descriptor{
		Steps:  steps,
		Primes: primes,
		Limit:  limit,
		Ratios: ratios,
	}
	t, err := desc.Temperament()
	if err != nil {
		return model.Descriptor{}, temperament.Temperament{}, err
	}
	desc.Generators, err = nf.generators(t)
	if err != nil {
		return model.Descriptor{}, temperament.Temperament{}, err
	}
	desc.Layout = lf.spec(t, desc.Generators)
	if err := desc.Validate(); err != nil {
		return model.Descriptor{}, temperament.Temperament{}, err
	}
	return desc, t, nil
}

func runEstCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyNotationConfig(cmd, &estNotation, fileCfg.Notation)
	applyLayoutConfig(cmd, &estLayout, fileCfg.Layout)

	steps, err := parseSteps(args[0])
	if err != nil {
		return err
	}
	desc, t, err := buildDescriptor(steps, estNotation, estLayout, estRatios)
	if err != nil {
		return err
	}
	ratios, err := desc.ParsedRatios()
	if err != nil {
		return fmt.Errorf("invalid --ratio: %w", err)
	}
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	rep := report.Build(t, cat, report.Options{
		Generators: desc.Generators,
		Layout:     desc.Layout,
		Ratios:     ratios,
	})
	if err := report.Write(cmd.OutOrStdout(), rep); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLocationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "location EDO RATIO...",
		Short: "Compare tempered and patent locations of ratios",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runLocationCmd,
	}
}

func runLocationCmd(cmd *cobra.Command, args []string) error {
	steps, err := parseSteps(args[0])
	if err != nil {
		return err
	}
	primes, limit := subgroupArgs()
	desc := model.Descriptor{Steps: steps, Primes: primes, Limit: limit, Ratios: args[1:]}
	t, err := desc.Temperament()
	if err != nil {
		return err
	}
	ratios, err := desc.ParsedRatios()
	if err != nil {
		return err
	}
	rep := report.Report{Temperament: t}
	for _, r := range ratios {
		rep.Locations = append(rep.Locations, temperament.Locate(t, r))
	}
	out := cmd.OutOrStdout()
	for _, line := range report.LocationLines(rep) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [EDO]",
		Short: "Browse temperaments in a terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExploreCmd,
	}
}

func runExploreCmd(cmd *cobra.Command, args []string) error {
	steps := 12
	if len(args) == 1 {
		parsed, err := parseSteps(args[0])
		if err != nil {
			return err
		}
		steps = parsed
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	var nf notationFlags
	if len(args) == 1 {
		nf = notationFlags{
			primary:    derefInt(fileCfg.Notation.Primary),
			secondary:  derefInt(fileCfg.Notation.Secondary),
			accidental: derefInt(fileCfg.Notation.Accidental),
		}
	}
	desc, _, err := buildDescriptor(steps, nf, layoutFlags{rows: defaultRows, cols: defaultCols}, nil)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(cat, desc), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
