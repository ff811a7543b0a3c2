package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/edotune/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# edotune configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# limit = %d              # Prime limit of the subgroup
# primes = "2.3.5"        # Explicit subgroup, overrides limit
# catalog = ""            # Comma catalog file (.toml, .yaml, .txt)
# db = ""                 # Comma database path

[notation]
# primary = 2             # Primary step between letters
# secondary = 1           # Secondary step between letters
# accidental = 1          # Size of one sharp

[layout]
# rows = %d
# cols = %d
# row-gen = 1             # Steps per keyboard row
# col-gen = 2             # Steps per keyboard column
# origin = 0              # Degree of the top-left key

[scan]
# from = %d
# to = %d
# top = %d                # Rows in the ranking table
# workers = 0             # Parallel workers (0 = GOMAXPROCS)
# plot = true             # Draw the badness plot
# plot-height = %d
`,
		defaultLimit,
		defaultRows,
		defaultCols,
		defaultScanFrom,
		defaultScanTo,
		defaultScanTop,
		defaultPlotHeight,
	)
}
