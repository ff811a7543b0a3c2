package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/layout"
	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/ratio"
	"github.com/verte-zerg/edotune/internal/temperament"
)

const golden13EDO = `---- Properties of 13-EDO ----

- step size: 92.308c
- fret constant: 19.259

-- Patent val (13-limit) --
val: <13, 21, 30, 36, 45, 48|
errors (absolute): [+0.0c, +36.5c, -17.1c, -45.7c, +2.5c, -9.8c]
errors (relative): [+0.0%, +39.5%, -18.5%, -49.6%, +2.7%, -10.6%]
TE simple badness: 100.661‰
subgroup: 2.5.11.13

-- Tempered commas --
- tempers out 5-limit 2109375/2097152 (semicomma)
- tempers out 5-limit 25/24 (chromatic semitone)
- tempers out 7-limit 3136/3125 (hemimean comma)
- tempers out 7-limit 64/63 (septimal comma)
- tempers out 11-limit 441/440 (werckisma)
- tempers out 11-limit 121/120 (biyatisma)
- tempers out 13-limit 4096/4095 (schismina)
- tempers out 13-limit 1001/1000 (sinbadma)
- tempers out 13-limit 847/845 (cuthbert comma)
- tempers out 13-limit 169/168 (buzurgisma)
- tempers out 13-limit 105/104 (animist comma)
- tempers out 13-limit 40/39 (tridecimal minor diesis)

-- Tempered vs. patent locations --
Tempered vs. patent location of 3/2: 8 vs 8
Tempered vs. patent location of 5/4: 4 vs 4
Tempered vs. patent location of 6/5: 4 vs 3
Tempered vs. patent location of 7/4: 10 vs 10
Tempered vs. patent location of 7/6: 2 vs 3
Tempered vs. patent location of 9/8: 3 vs 2
Tempered vs. patent location of 11/8: 6 vs 6
Tempered vs. patent location of 13/8: 9 vs 9

-- Notation --
primary step: 2 EDO-steps
secondary step: 1 EDO-step
accidental: 1 EDO-step
  0. D
  1. D#/Eb
  2. E
  3. E#/Fb
  4. F
  5. F#/Gb
  6. G
  7. G#/Ab
  8. A
  9. A#/Bb
 10. B
 11. C
 12. C#/Db

-- Keyboard layout --
  0  2  4  6  8 10 12  1  3  5  7  9
  1  3  5  7  9 11  0  2  4  6  8 10
  2  4  6  8 10 12  1  3  5  7  9 11
  3  5  7  9 11  0  2  4  6  8 10 12
  4  6  8 10 12  1  3  5  7  9 11  0
`

func mustCatalog(t *testing.T) *comma.Catalog {
	t.Helper()
	cat, err := comma.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	return cat
}

func TestWrite13EDOGolden(t *testing.T) {
	tm, err := temperament.NewWithLimit(13, 13)
	if err != nil {
		t.Fatalf("NewWithLimit: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, Build(tm, mustCatalog(t), Options{})); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != golden13EDO {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", got, golden13EDO)
	}
}

func TestBuildKeepsNotationFailure(t *testing.T) {
	tm, err := temperament.New(12, []int{2, 3, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bad := notation.GeneratorSpec{Primary: 5, Secondary: 5, Accidental: 1}
	rep := Build(tm, mustCatalog(t), Options{Generators: &bad})
	if !errors.Is(rep.NotationErr, notation.ErrInvalidGenerator) {
		t.Fatalf("NotationErr = %v", rep.NotationErr)
	}
	lines := NotationLines(rep)
	if !strings.HasPrefix(lines[len(lines)-1], "notation unavailable: ") {
		t.Fatalf("unexpected notation lines: %q", lines)
	}

	zero := layout.Spec{Rows: 0, Cols: 3}
	rep = Build(tm, nil, Options{Layout: &zero})
	if !errors.Is(rep.LayoutErr, layout.ErrInvalidDimensions) {
		t.Fatalf("LayoutErr = %v", rep.LayoutErr)
	}
	if lines := CommaLines(rep); len(lines) != 2 || lines[1] != "- none" {
		t.Fatalf("unexpected comma lines: %q", lines)
	}
}

func TestLocationLinesOutsideSubgroup(t *testing.T) {
	tm, err := temperament.New(12, []int{2, 3, 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rep := Build(tm, nil, Options{Ratios: []ratio.Ratio{ratio.MustParse("3/1")}})
	lines := LocationLines(rep)
	if lines[4] != "Tempered vs. patent location of 7/4: n/a vs 10" {
		t.Fatalf("unexpected 7/4 line: %q", lines[4])
	}
	if last := lines[len(lines)-1]; last != "Tempered vs. patent location of 3: 7 vs 7 (raw 19 vs 19)" {
		t.Fatalf("unexpected 3/1 line: %q", last)
	}
}

func TestTableAlignsColumns(t *testing.T) {
	headers := []string{"EDO", "badness", "subgroup"}
	rows := [][]string{
		{"12", "29.272", "2.3.5"},
		{"5", "100.000", "2.3"},
	}
	lines := Table(headers, rows, map[int]bool{0: true, 1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "EDO badness subgroup" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 12  29.272 2.3.5" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "  5 100.000 2.3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
