// Package main provides the CLI entrypoint for edotune.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/config"
	"github.com/verte-zerg/edotune/internal/store"
)

const (
	defaultLimit      = 13
	defaultRows       = 5
	defaultCols       = 12
	defaultScanFrom   = 5
	defaultScanTo     = 72
	defaultScanTop    = 10
	defaultPlotHeight = 10
)

var (
	analysisLimit   int
	analysisPrimes  string
	analysisCatalog string
	analysisDB      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "edotune",
		Short:         "Analyse equal divisions of the octave",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "config" {
				return nil
			}
			return applyAnalysisConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&analysisLimit, "limit", defaultLimit, "prime limit of the subgroup")
	flags.StringVar(&analysisPrimes, "primes", "", "explicit subgroup, e.g. 2.5.11.13 (overrides --limit)")
	flags.StringVar(&analysisCatalog, "catalog", "", "comma catalog file (.toml, .yaml, .txt) used instead of the database")
	flags.StringVar(&analysisDB, "db", "", "comma database path")

	rootCmd.AddCommand(newEstCmd())
	rootCmd.AddCommand(newLocationCmd())
	rootCmd.AddCommand(newCommasCmd())
	rootCmd.AddCommand(newMosCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadFileConfig reads the user config. Errors are fatal so typos surface.
func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func applyAnalysisConfig(cmd *cobra.Command) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "limit", &analysisLimit, fileCfg.Analysis.Limit)
	applyStringConfig(cmd, "primes", &analysisPrimes, fileCfg.Analysis.Primes)
	applyStringConfig(cmd, "catalog", &analysisCatalog, fileCfg.Analysis.Catalog)
	applyStringConfig(cmd, "db", &analysisDB, fileCfg.Analysis.DB)
	if cmd.Flags().Changed("limit") && !cmd.Flags().Changed("primes") {
		analysisPrimes = ""
	}
	return nil
}

// subgroupArgs returns the primes/limit pair for a descriptor. An explicit
// prime list wins over the limit.
func subgroupArgs() (string, int) {
	if analysisPrimes != "" {
		return analysisPrimes, 0
	}
	return "", analysisLimit
}

func dbPath() string {
	if analysisDB != "" {
		return analysisDB
	}
	return config.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	st, err := store.Open(dbPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

// loadCatalog reads the --catalog file when given, the database otherwise.
func loadCatalog(ctx context.Context) (*comma.Catalog, error) {
	if analysisCatalog != "" {
		records, err := comma.LoadFile(analysisCatalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", analysisCatalog, err)
		}
		return comma.NewCatalog(records)
	}
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	cat, err := st.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func parseSteps(arg string) (int, error) {
	steps, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(arg)), "-edo"))
	if err != nil {
		return 0, fmt.Errorf("invalid EDO %q: expected a step count such as 13 or 13-EDO", arg)
	}
	return steps, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
