// Package overlay draws a floating block, such as the help window, on top of
// an already rendered screen.
package overlay

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Placement controls overlay alignment. The zero value is the top-left
// corner; margins push away from the aligned edge.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Compose draws foreground over background, a width x height screen. Cells
// left of the overlay keep their styling; cells right of it are re-emitted
// as plain text.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bg := normalize(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n")
	}

	fg := strings.Split(foreground, "\n")
	fgWidth := 0
	for _, line := range fg {
		fgWidth = max(fgWidth, ansi.PrintableRuneWidth(line))
	}
	fgWidth = min(fgWidth, width)
	fgHeight := min(len(fg), height)

	x := offset(placement.Horizontal, placement.MarginX, width, fgWidth)
	y := offset(placement.Vertical, placement.MarginY, height, fgHeight)

	for row := 0; row < fgHeight; row++ {
		base := bg[y+row]
		line := pad(truncate.String(fg[row], uint(fgWidth)), fgWidth)
		bg[y+row] = pad(truncate.String(base, uint(x)), x) + line + skip(base, x+fgWidth)
	}
	return strings.Join(bg, "\n")
}

func offset(pos lipgloss.Position, margin, total, size int) int {
	at := int(float64(total-size) * float64(pos))
	switch {
	case pos <= lipgloss.Left:
		at += margin
	case pos >= lipgloss.Right:
		at -= margin
	}
	return max(0, min(at, total-size))
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(truncate.String(lines[i], uint(max(width, 0))), width)
	}
	return lines
}

func pad(s string, width int) string {
	if w := ansi.PrintableRuneWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

var escapes = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

// skip returns s without its first n cells, as plain text. A wide rune
// straddling the cut becomes a space.
func skip(s string, n int) string {
	plain := escapes.ReplaceAllString(s, "")
	var b strings.Builder
	seen := 0
	for _, r := range plain {
		w := ansi.PrintableRuneWidth(string(r))
		switch {
		case seen >= n:
			b.WriteRune(r)
		case seen+w > n:
			b.WriteString(strings.Repeat(" ", seen+w-n))
		}
		seen += w
	}
	return b.String()
}
