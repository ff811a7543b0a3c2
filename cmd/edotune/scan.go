package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/edotune/internal/model"
	"github.com/verte-zerg/edotune/internal/ratio"
	"github.com/verte-zerg/edotune/internal/report"
	"github.com/verte-zerg/edotune/internal/scan"
)

var (
	scanFrom       int
	scanTo         int
	scanTop        int
	scanWorkers    int
	scanPlot       bool
	scanPlotHeight int
	scanColor      bool
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Rank a range of EDOs by TE simple badness",
		Args:  cobra.NoArgs,
		RunE:  runScanCmd,
	}
	cmd.Flags().IntVar(&scanFrom, "from", defaultScanFrom, "smallest EDO")
	cmd.Flags().IntVar(&scanTo, "to", defaultScanTo, "largest EDO")
	cmd.Flags().IntVar(&scanTop, "top", defaultScanTop, "rows in the ranking (0 for all)")
	cmd.Flags().IntVar(&scanWorkers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&scanPlot, "plot", true, "draw badness over the range")
	cmd.Flags().IntVar(&scanPlotHeight, "plot-height", defaultPlotHeight, "plot height in rows")
	cmd.Flags().BoolVar(&scanColor, "color", false, "force a colored plot (NO_COLOR still wins)")
	return cmd
}

func runScanCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "from", &scanFrom, fileCfg.Scan.From)
	applyIntConfig(cmd, "to", &scanTo, fileCfg.Scan.To)
	applyIntConfig(cmd, "top", &scanTop, fileCfg.Scan.Top)
	applyIntConfig(cmd, "workers", &scanWorkers, fileCfg.Scan.Workers)
	applyIntConfig(cmd, "plot-height", &scanPlotHeight, fileCfg.Scan.PlotHeight)
	applyBoolConfig(cmd, "plot", &scanPlot, fileCfg.Scan.Plot)
	if scanPlot && scanPlotHeight <= 0 {
		return fmt.Errorf("--plot-height must be > 0")
	}

	primes, limit := subgroupArgs()
	cfg := model.ScanConfig{
		From:    scanFrom,
		To:      scanTo,
		Primes:  primes,
		Limit:   limit,
		Top:     scanTop,
		Workers: scanWorkers,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	results, err := scan.Run(cmd.Context(), cfg, cat)
	if err != nil {
		return fmt.Errorf("failed to scan: %w", err)
	}

	out := cmd.OutOrStdout()
	top := scan.Top(results, cfg.Top)
	rows := make([][]string, 0, len(top))
	for i, res := range top {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d-EDO", res.Steps),
			strconv.FormatFloat(res.Badness, 'f', 3, 64),
			strconv.Itoa(res.Tempered),
			ratio.FormatPrimes(res.Accurate),
			res.Val.String(),
		})
	}
	lines := report.Table([]string{"#", "EDO", "Badness", "Commas", "Accurate", "Val"}, rows, map[int]bool{0: true, 2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if !scanPlot || len(results) < 2 {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	title := fmt.Sprintf("TE simple badness, %d..%d-EDO", cfg.From, cfg.To)
	plot := scan.Plot
	if scanColor {
		plot = scan.PlotWithColor
	}
	if err := plot(out, title, results, 0, scanPlotHeight); err != nil {
		return fmt.Errorf("failed to plot: %w", err)
	}
	return nil
}
