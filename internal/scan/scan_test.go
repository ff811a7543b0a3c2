package scan

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/model"
)

func TestRunOrdersByStepCount(t *testing.T) {
	cat, err := comma.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	results, err := Run(context.Background(), model.ScanConfig{From: 5, To: 31, Limit: 5, Workers: 3}, cat)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 27 {
		t.Fatalf("expected 27 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Steps != 5+i {
			t.Fatalf("result %d has steps %d", i, res.Steps)
		}
	}
	twelve := results[12-5]
	if math.Abs(twelve.Badness-29.272) > 0.001 {
		t.Fatalf("12-EDO badness = %.4f", twelve.Badness)
	}
	if twelve.Tempered != 7 {
		t.Fatalf("12-EDO tempers out %d commas, want 7", twelve.Tempered)
	}
	if twelve.Val.String() != "<12, 19, 28|" {
		t.Fatalf("12-EDO val = %s", twelve.Val)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, model.ScanConfig{From: 5, To: 60, Limit: 7}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunRejectsInvalidRange(t *testing.T) {
	if _, err := Run(context.Background(), model.ScanConfig{From: 12, To: 5, Limit: 5}, nil); err == nil {
		t.Fatalf("expected error for reversed range")
	}
}

func TestTop(t *testing.T) {
	results, err := Run(context.Background(), model.ScanConfig{From: 5, To: 31, Limit: 5}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	top := Top(results, 4)
	got := [4]int{top[0].Steps, top[1].Steps, top[2].Steps, top[3].Steps}
	if got != [4]int{31, 22, 19, 12} {
		t.Fatalf("unexpected ranking %v", got)
	}
	if len(Top(results, 100)) != len(results) {
		t.Fatalf("Top should cap at the number of results")
	}
	if Top(results, 0) != nil {
		t.Fatalf("Top(0) should be empty")
	}
}

func TestPlot(t *testing.T) {
	results, err := Run(context.Background(), model.ScanConfig{From: 5, To: 31, Limit: 5}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var buf bytes.Buffer
	if err := Plot(&buf, "Badness by EDO", results, 30, 4); err != nil {
		t.Fatalf("Plot: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plot to a buffer should not be colored")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1+4+1 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Badness by EDO" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasSuffix(lines[5], "31-EDO") || !strings.Contains(lines[5], "5") {
		t.Fatalf("unexpected axis %q", lines[5])
	}
	if !strings.Contains(lines[1], "│") {
		t.Fatalf("expected axis separator in %q", lines[1])
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80, 5); got != 80-5-3 {
		t.Fatalf("PlotWidthFor(80) = %d", got)
	}
	if got := PlotWidthFor(0, 5); got != minPlotWidth {
		t.Fatalf("PlotWidthFor(0) = %d", got)
	}
}

func TestPlotWithColor(t *testing.T) {
	results, err := Run(context.Background(), model.ScanConfig{From: 5, To: 12, Limit: 5}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	if err := PlotWithColor(&buf, "", results, 20, 3); err != nil {
		t.Fatalf("PlotWithColor: %v", err)
	}
	if !strings.Contains(buf.String(), colorBadness) || !strings.Contains(buf.String(), colorReset) {
		t.Fatalf("expected forced color codes, got:\n%q", buf.String())
	}

	t.Setenv("NO_COLOR", "1")
	buf.Reset()
	if err := PlotWithColor(&buf, "", results, 20, 3); err != nil {
		t.Fatalf("PlotWithColor: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("NO_COLOR should disable color, got:\n%q", buf.String())
	}
}
