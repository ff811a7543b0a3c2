// Package tui provides the Bubble Tea temperament explorer.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/model"
	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/report"
)

const (
	tabOverview = iota
	tabCommas
	tabNotation
	tabKeyboard
)

const maxSteps = 10000

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea explorer. Left/right step through EDOs,
// tab switches views.
type Model struct {
	catalog *comma.Catalog
	desc    model.Descriptor

	report report.Report
	errMsg string

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	commaTable table.Model

	width  int
	height int

	inputMode  bool
	input      textinput.Model
	inputError string
}

// NewModel constructs an explorer starting at desc.
func NewModel(cat *comma.Catalog, desc model.Descriptor) *Model {
	m := &Model{
		catalog: cat,
		desc:    desc,
		tabs:    []string{"Overview", "Commas", "Notation", "Keyboard"},
	}
	m.input = textinput.New()
	m.input.Prompt = "EDO: "
	m.input.Placeholder = "31"
	m.input.CharLimit = 5
	m.input.Cursor.SetMode(cursor.CursorBlink)
	m.commaTable = table.New(
		table.WithColumns(commaColumns()),
		table.WithHeight(1),
	)
	m.commaTable.SetStyles(commaTableStyles())
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.inputMode {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "shift+tab":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "left", "h", "-":
			m.setSteps(m.desc.Steps - 1)
			return m, nil
		case "right", "l", "=":
			m.setSteps(m.desc.Steps + 1)
			return m, nil
		case ":", "enter":
			m.inputMode = true
			m.inputError = ""
			m.input.SetValue(strconv.Itoa(m.desc.Steps))
			m.input.CursorEnd()
			return m, m.input.Focus()
		case "g", "home":
			if m.activeTab == tabCommas {
				m.commaTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabCommas {
				m.commaTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabCommas {
				m.commaTable, cmd = m.commaTable.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Steps returns the EDO currently shown.
func (m *Model) Steps() int {
	return m.desc.Steps
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		steps, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil || steps < 1 || steps > maxSteps {
			m.inputError = fmt.Sprintf("enter a step count between 1 and %d", maxSteps)
			return m, nil
		}
		m.inputMode = false
		m.input.Blur()
		m.setSteps(steps)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// setSteps moves to another EDO. Generators and keyboard steps set for the
// previous EDO rarely fit the next one, so both fall back to defaults.
func (m *Model) setSteps(steps int) {
	if steps < 1 || steps > maxSteps || steps == m.desc.Steps {
		return
	}
	m.desc.Steps = steps
	m.desc.Generators = nil
	m.desc.Layout = nil
	m.refreshReport()
	m.updateLayout()
}

func (m *Model) refreshReport() {
	t, err := m.desc.Temperament()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	ratios, err := m.desc.ParsedRatios()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.report = report.Build(t, m.catalog, report.Options{
		Generators: m.desc.Generators,
		Layout:     m.desc.Layout,
		Ratios:     ratios,
	})
	m.commaTable.SetRows(commaRows(m.report.Commas))
	m.commaTable.GotoTop()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to analyse temperament.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabNotation].SetContent(renderNotation(m.report))
	m.viewports[tabKeyboard].SetContent(renderKeyboard(m.report))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.inputMode || m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.commaTable.SetWidth(m.width)
	m.commaTable.SetHeight(max(bodyHeight-1, 1))
	m.input.Width = max(10, m.width-lipgloss.Width(m.input.Prompt)-2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabCommas {
		m.commaTable.Focus()
	} else {
		m.commaTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	subgroup := m.desc.Primes
	if subgroup == "" {
		subgroup = fmt.Sprintf("%d-limit", m.desc.Limit)
	}
	catalogSize := 0
	if m.catalog != nil {
		catalogSize = m.catalog.Len()
	}
	summary := truncateLine(fmt.Sprintf("Temperament: %d-EDO  subgroup=%s  commas=%d", m.desc.Steps, subgroup, catalogSize), m.width)
	return tabs + "\n" + headerStyle.Render(summary)
}

func (m *Model) renderBody() string {
	if m.activeTab == tabCommas && m.errMsg == "" {
		if len(m.report.Commas) == 0 {
			return "No catalog comma is tempered out."
		}
		return tableMutedStyle.Render(m.commaTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("EDO: left/right or : to type  Views: tab/shift+tab  Scroll: up/down/pgup/pgdn  Quit: q")
	if m.inputMode {
		line := m.input.View()
		if m.inputError != "" {
			line += "  " + errorStyle.Render(m.inputError)
		}
		return headerStyle.Render("enter: apply  esc: cancel") + "\n" + line
	}
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func renderOverview(rep report.Report, width int) string {
	cards := []string{
		metricCard("Step size", fmt.Sprintf("%.3fc", rep.Temperament.StepSizeCents())),
		metricCard("TE badness", fmt.Sprintf("%.3f‰", rep.Errors.TESimpleBadness)),
		metricCard("Tempered commas", strconv.Itoa(len(rep.Commas))),
	}
	summary := strings.Join(cards, "\n")
	if width >= 60 {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	sections := [][]string{
		report.PropertyLines(rep),
		report.ValLines(rep),
		report.LocationLines(rep),
	}
	var b strings.Builder
	b.WriteString(summary)
	for _, lines := range sections {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String()
}

// renderNotation lists every degree name, then where the naturals sit.
func renderNotation(rep report.Report) string {
	lines := report.NotationLines(rep)
	if rep.NotationErr != nil {
		return strings.Join(lines, "\n")
	}
	naturals := rep.Notation.Naturals()
	parts := make([]string, len(naturals))
	for i, degree := range naturals {
		parts[i] = fmt.Sprintf("%s=%d", notation.Letters[i], degree)
	}
	lines = append(lines, "", "naturals: "+strings.Join(parts, " "))
	return strings.Join(lines, "\n")
}

// renderKeyboard shows the degree grid followed by the same grid spelled
// with note names.
func renderKeyboard(rep report.Report) string {
	lines := report.LayoutLines(rep)
	if rep.LayoutErr != nil || rep.NotationErr != nil {
		return strings.Join(lines, "\n")
	}
	rows := make([][]string, 0, rep.Layout.Rows())
	for _, row := range rep.Layout.Cells {
		names := make([]string, len(row))
		for i, degree := range row {
			names[i] = rep.Notation.Spellings(degree)[0].String()
		}
		rows = append(rows, names)
	}
	lines = append(lines, "", "-- Keyboard names --")
	for _, line := range report.Table(nil, rows, nil) {
		lines = append(lines, " "+line)
	}
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func commaColumns() []table.Column {
	return []table.Column{
		{Title: "Limit", Width: 6},
		{Title: "Ratio", Width: 16},
		{Title: "Cents", Width: 7},
		{Title: "Name", Width: 26},
		{Title: "Monzo", Width: 22},
	}
}

func commaRows(commas []comma.Comma) []table.Row {
	rows := make([]table.Row, 0, len(commas))
	for _, group := range comma.GroupByLimit(commas) {
		for _, c := range group.Commas {
			rows = append(rows, table.Row{
				strconv.Itoa(c.Limit),
				c.Ratio.String(),
				fmt.Sprintf("%.3f", c.Ratio.Cents()),
				c.Name,
				c.Monzo.String(),
			})
		}
	}
	return rows
}

func commaTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
