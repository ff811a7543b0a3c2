package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/edotune/internal/model"
	"github.com/verte-zerg/edotune/internal/mos"
	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/ratio"
	"github.com/verte-zerg/edotune/internal/report"
	"github.com/verte-zerg/edotune/internal/temperament"
)

var (
	mosLarge int
	mosSmall int
)

func newMosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mos EDO [GENERATOR]",
		Short: "Find MOS scales from a generator or generators from step sizes",
		Long: "With a GENERATOR (EDO steps or a ratio such as 3/2) list the MOS scales along its chain.\n" +
			"Without one, list the generators reaching --large/--small steps (default: the notation generators).",
		Args: cobra.RangeArgs(1, 2),
		RunE: runMosCmd,
	}
	cmd.Flags().IntVar(&mosLarge, "large", 0, "large step in EDO steps")
	cmd.Flags().IntVar(&mosSmall, "small", 0, "small step in EDO steps")
	return cmd
}

func runMosCmd(cmd *cobra.Command, args []string) error {
	steps, err := parseSteps(args[0])
	if err != nil {
		return err
	}
	primes, limit := subgroupArgs()
	t, err := model.Descriptor{Steps: steps, Primes: primes, Limit: limit}.Temperament()
	if err != nil {
		return err
	}
	if len(args) == 2 {
		gen, err := parseGenerator(t, args[1])
		if err != nil {
			return err
		}
		return writeMosChain(cmd, steps, gen)
	}

	g := notation.DefaultGenerators(t)
	if mosLarge != 0 || mosSmall != 0 {
		g = notation.GeneratorSpec{Primary: mosLarge, Secondary: mosSmall, Accidental: mosLarge - mosSmall}
	}
	matches, err := mos.FindGenerators(steps, g)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{strconv.Itoa(m.Generator), strconv.Itoa(m.Scale.Notes), m.Scale.Name(), m.Scale.Pattern})
	}
	header := fmt.Sprintf("Generators of %d-EDO with large step %d and small step %d:", steps, g.Primary, g.Secondary)
	return writeMosTable(cmd, header, []string{"Generator", "Notes", "MOS", "Pattern"}, rows)
}

// parseGenerator accepts a step count or a ratio, which maps to its patent
// location.
func parseGenerator(t temperament.Temperament, arg string) (int, error) {
	if !strings.Contains(arg, "/") {
		gen, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return 0, fmt.Errorf("invalid generator %q: expected steps or a ratio", arg)
		}
		return gen, nil
	}
	r, err := ratio.Parse(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid generator %q: %w", arg, err)
	}
	return temperament.Locate(t, r).PatentDegree, nil
}

func writeMosChain(cmd *cobra.Command, steps, gen int) error {
	scales, err := mos.Chain(steps, gen)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(scales))
	for _, s := range scales {
		rows = append(rows, []string{
			strconv.Itoa(s.Notes),
			s.Name(),
			strconv.Itoa(s.Large),
			strconv.Itoa(s.Small),
			s.Pattern,
		})
	}
	header := fmt.Sprintf("MOS scales of %d-EDO generated by %d steps:", steps, gen)
	return writeMosTable(cmd, header, []string{"Notes", "MOS", "L", "s", "Pattern"}, rows)
}

func writeMosTable(cmd *cobra.Command, header string, columns []string, rows [][]string) error {
	out := cmd.OutOrStdout()
	lines := []string{header}
	if len(rows) == 0 {
		lines = append(lines, "- none")
	} else {
		lines = append(lines, report.Table(columns, rows, map[int]bool{0: true, 1: true})...)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
