package scan

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisSeparator       = " │ "
	colorBadness        = "\x1b[36m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// Plot draws badness against step count as a braille line chart. A
// non-positive width fits the terminal.
func Plot(w io.Writer, title string, results []Result, width, height int) error {
	return plot(w, title, results, width, height, false)
}

// PlotWithColor is Plot with color forced on unless NO_COLOR is set.
func PlotWithColor(w io.Writer, title string, results []Result, width, height int) error {
	return plot(w, title, results, width, height, true)
}

func plot(w io.Writer, title string, results []Result, width, height int, forceColor bool) error {
	if len(results) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}

	minVal, maxVal := badnessRange(results)
	top := fmt.Sprintf("%.1f", maxVal)
	bottom := fmt.Sprintf("%.1f", minVal)
	labelWidth := max(runewidth.StringWidth(top), runewidth.StringWidth(bottom))
	if width <= 0 {
		width = PlotWidthFor(terminalWidth(), labelWidth)
	}
	width = max(width, minPlotWidth)

	c := newCanvas(width, height)
	prevX, prevY := -1, -1
	for i, res := range results {
		x := 0
		if len(results) > 1 {
			x = int(math.Round(float64(i) * float64(c.dotsWide()-1) / float64(len(results)-1)))
		}
		y := valueToDot(res.Badness, minVal, maxVal, c.dotsHigh())
		if prevX >= 0 {
			drawLine(prevX, prevY, x, y, c.set)
		} else {
			c.set(x, y)
		}
		prevX, prevY = x, y
	}

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y, row := range c.rows() {
		label := ""
		switch y {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}
		if useColor {
			row = colorBadness + row + colorReset
		}
		if _, err := fmt.Fprintf(w, "%*s%s%s\n", labelWidth, label, axisSeparator, row); err != nil {
			return err
		}
	}
	first := fmt.Sprintf("%d", results[0].Steps)
	last := fmt.Sprintf("%d-EDO", results[len(results)-1].Steps)
	gap := max(width-len(first)-len(last), 1)
	axis := strings.Repeat(" ", labelWidth+runewidth.StringWidth(axisSeparator)) + first + strings.Repeat(" ", gap) + last
	if _, err := fmt.Fprintln(w, axis); err != nil {
		return err
	}
	return nil
}

// PlotWidthFor computes a plot width that fits within totalWidth next to
// axis labels of the given width.
func PlotWidthFor(totalWidth, labelWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-labelWidth-runewidth.StringWidth(axisSeparator), minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func badnessRange(results []Result) (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, res := range results {
		minVal = math.Min(minVal, res.Badness)
		maxVal = math.Max(maxVal, res.Badness)
	}
	if maxVal-minVal < 1e-9 {
		minVal--
		maxVal++
	}
	return minVal, maxVal
}

// valueToDot maps v onto a dot row, 0 being the top.
func valueToDot(v, minVal, maxVal float64, dots int) int {
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(dots-1)))
	return min(max(row, 0), dots-1)
}

// canvas is a grid of braille cells, each holding 2x4 dots.
type canvas struct {
	cells [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &canvas{cells: cells}
}

func (c *canvas) dotsWide() int { return len(c.cells[0]) * 2 }
func (c *canvas) dotsHigh() int { return len(c.cells) * 4 }

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 || x >= c.dotsWide() || y >= c.dotsHigh() {
		return
	}
	c.cells[y/4][x/2] |= brailleDotMask(x%2, y%4)
}

func (c *canvas) rows() []string {
	out := make([]string, len(c.cells))
	for y, row := range c.cells {
		var b strings.Builder
		for _, mask := range row {
			b.WriteRune(rune(0x2800 + int(mask)))
		}
		out[y] = b.String()
	}
	return out
}

// brailleDotMask returns the bit of dot (x, y) in a braille cell.
func brailleDotMask(x, y int) uint8 {
	masks := [2][4]uint8{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	return masks[x][y]
}

// drawLine plots a Bresenham line between two dots.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
