package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/model"
	"github.com/verte-zerg/edotune/internal/notation"
)

func newTestModel(t *testing.T, desc model.Descriptor) *Model {
	t.Helper()
	cat, err := comma.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	m := NewModel(cat, desc)
	m.Update(tea.WindowSizeMsg{Width: 110, Height: 40})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOverviewShowsAnalysis(t *testing.T) {
	m := newTestModel(t, model.Descriptor{Steps: 13, Limit: 13})
	out := m.View()
	if !containsAll(out, []string{"Overview", "Keyboard", "13-EDO", "100.661", "7/6: 2 vs 3"}) {
		t.Fatalf("overview missing expected segments:\n%s", out)
	}
}

func TestArrowKeysChangeSteps(t *testing.T) {
	m := newTestModel(t, model.Descriptor{
		Steps:      13,
		Limit:      13,
		Generators: &notation.GeneratorSpec{Primary: 2, Secondary: 1, Accidental: 1},
	})
	m.Update(key("right"))
	if m.Steps() != 14 {
		t.Fatalf("steps = %d, want 14", m.Steps())
	}
	if m.desc.Generators != nil {
		t.Fatalf("explicit generators should be dropped when the EDO changes")
	}
	m.Update(key("left"))
	m.Update(key("left"))
	if m.Steps() != 12 {
		t.Fatalf("steps = %d, want 12", m.Steps())
	}
	if !strings.Contains(m.View(), "12-EDO") {
		t.Fatalf("view should show 12-EDO")
	}

	one := newTestModel(t, model.Descriptor{Steps: 1, Limit: 5})
	one.Update(key("left"))
	if one.Steps() != 1 {
		t.Fatalf("steps should stay at 1, got %d", one.Steps())
	}
}

func TestTypedStepCount(t *testing.T) {
	m := newTestModel(t, model.Descriptor{Steps: 12, Limit: 5})
	m.Update(key(":"))
	if !m.inputMode {
		t.Fatalf("expected input mode")
	}
	m.Update(key("backspace"))
	m.Update(key("backspace"))
	m.Update(key("0"))
	m.Update(key("enter"))
	if m.inputError == "" || !m.inputMode {
		t.Fatalf("0 should be rejected")
	}
	m.Update(key("backspace"))
	m.Update(key("31"))
	m.Update(key("enter"))
	if m.inputMode {
		t.Fatalf("input mode should close after a valid entry")
	}
	if m.Steps() != 31 {
		t.Fatalf("steps = %d, want 31", m.Steps())
	}
}

func TestTabsCycle(t *testing.T) {
	m := newTestModel(t, model.Descriptor{Steps: 13, Limit: 13})
	m.Update(key("tab"))
	if m.activeTab != tabCommas {
		t.Fatalf("active tab = %d", m.activeTab)
	}
	if out := m.View(); !containsAll(out, []string{"semicomma", "2109375/2097152", "Monzo"}) {
		t.Fatalf("commas view missing rows:\n%s", out)
	}
	m.Update(key("tab"))
	if out := m.View(); !containsAll(out, []string{"primary step: 2 EDO-steps", "D#/Eb"}) {
		t.Fatalf("notation view missing names:\n%s", out)
	}
	m.Update(key("tab"))
	if out := m.View(); !containsAll(out, []string{"-- Keyboard layout --", "-- Keyboard names --"}) {
		t.Fatalf("keyboard view missing grid:\n%s", out)
	}
	m.Update(key("tab"))
	if m.activeTab != tabOverview {
		t.Fatalf("tabs should wrap around, got %d", m.activeTab)
	}
}

func TestInvalidDescriptorShowsError(t *testing.T) {
	m := newTestModel(t, model.Descriptor{Steps: 12, Primes: "2.4"})
	if m.errMsg == "" {
		t.Fatalf("expected an error message")
	}
	if !strings.Contains(m.View(), "Failed to analyse temperament.") {
		t.Fatalf("view should report the failure")
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("Temperament: 13-EDO", 10); got != "Tempera..." {
		t.Fatalf("truncateLine = %q", got)
	}
	if got := truncateLine("short", 10); got != "short" {
		t.Fatalf("truncateLine = %q", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func TestNilCatalog(t *testing.T) {
	m := NewModel(nil, model.Descriptor{Steps: 12, Limit: 5})
	m.Update(tea.WindowSizeMsg{Width: 110, Height: 40})
	out := m.View()
	if !containsAll(out, []string{"12-EDO", "commas=0"}) {
		t.Fatalf("unexpected view:\n%s", out)
	}
}

func TestNotationTabListsNaturals(t *testing.T) {
	m := newTestModel(t, model.Descriptor{Steps: 12, Limit: 5})
	m.Update(key("tab"))
	m.Update(key("tab"))
	if m.activeTab != tabNotation {
		t.Fatalf("expected notation tab, got %d", m.activeTab)
	}
	if out := m.View(); !strings.Contains(out, "naturals: D=0 E=2 F=3 G=5 A=7 B=9 C=10") {
		t.Fatalf("expected naturals line, got:\n%s", out)
	}
}
