package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/model"
	"github.com/verte-zerg/edotune/internal/ratio"
	"github.com/verte-zerg/edotune/internal/report"
)

var commasMaxLimit int

func newCommasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commas",
		Short: "Manage the comma catalog",
	}
	cmd.AddCommand(newCommasListCmd())
	cmd.AddCommand(newCommasImportCmd())
	cmd.AddCommand(newCommasRemoveCmd())
	cmd.AddCommand(newCommasMatchCmd())
	return cmd
}

func newCommasListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog commas (within --primes when given)",
		Args:  cobra.NoArgs,
		RunE:  runCommasListCmd,
	}
	cmd.Flags().IntVar(&commasMaxLimit, "max-limit", 0, "only list commas up to this prime limit (0 for all)")
	return cmd
}

func runCommasListCmd(cmd *cobra.Command, _ []string) error {
	if commasMaxLimit < 0 {
		return fmt.Errorf("--max-limit must be >= 0")
	}
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	all := cat.Commas()
	if analysisPrimes != "" {
		primes, err := model.SubgroupPrimes(analysisPrimes, 0)
		if err != nil {
			return err
		}
		all = comma.Expressible(cat, primes)
	}
	var commas []comma.Comma
	for _, c := range all {
		if commasMaxLimit > 0 && c.Limit > commasMaxLimit {
			continue
		}
		commas = append(commas, c)
	}
	return writeCommaTable(cmd, commas)
}

func writeCommaTable(cmd *cobra.Command, commas []comma.Comma) error {
	out := cmd.OutOrStdout()
	if len(commas) == 0 {
		if _, err := fmt.Fprintln(out, "No commas."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	rows := make([][]string, 0, len(commas))
	for _, c := range commas {
		rows = append(rows, []string{
			c.LimitLabel(),
			c.Ratio.String(),
			strconv.FormatFloat(c.Ratio.Cents(), 'f', 2, 64),
			c.Name,
			c.Monzo.String(),
		})
	}
	lines := report.Table([]string{"Limit", "Ratio", "Cents", "Name", "Monzo"}, rows, map[int]bool{2: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newCommasImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE|URL",
		Short: "Add commas from a .toml, .yaml or .txt catalog to the database",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommasImportCmd,
	}
}

func runCommasImportCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	var records []comma.Record
	var err error
	if comma.IsURL(path) {
		records, err = comma.Fetch(cmd.Context(), path)
	} else {
		records, err = comma.LoadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if len(records) == 0 {
		logErrln("No commas found in", path)
		return fmt.Errorf("catalog is empty")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if _, err := st.Seed(cmd.Context()); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	n, err := st.InsertCommas(cmd.Context(), records, path)
	if err != nil {
		return fmt.Errorf("failed to import commas: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d commas from %s\n", n, path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCommasRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove RATIO",
		Short: "Remove a comma from the database",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommasRemoveCmd,
	}
}

func runCommasRemoveCmd(cmd *cobra.Command, args []string) error {
	r, err := ratio.Parse(args[0])
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	removed, err := st.DeleteComma(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("failed to remove comma: %w", err)
	}
	if !removed {
		return fmt.Errorf("comma %s not found", r)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", r); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCommasMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match EDO",
		Short: "List the commas an EDO tempers out",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommasMatchCmd,
	}
}

func runCommasMatchCmd(cmd *cobra.Command, args []string) error {
	steps, err := parseSteps(args[0])
	if err != nil {
		return err
	}
	primes, limit := subgroupArgs()
	t, err := model.Descriptor{Steps: steps, Primes: primes, Limit: limit}.Temperament()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	return writeCommaTable(cmd, comma.TemperedOut(t, cat))
}
