package scene

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Canvas is a depth-buffered pixel grid drawn with half-block characters:
// every terminal cell carries two vertically stacked pixels.
type Canvas struct {
	cols, rows int
	color      []colorful.Color
	depth      []float32
}

// NewCanvas returns a canvas covering cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the buffers. Negative sizes are treated as zero.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	n := cols * rows * 2
	c.color = make([]colorful.Color, n)
	c.depth = make([]float32, n)
	c.Clear()
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Width returns the width in pixels.
func (c *Canvas) Width() int { return c.cols }

// Height returns the height in pixels.
func (c *Canvas) Height() int { return c.rows * 2 }

// Clear empties the depth buffer.
func (c *Canvas) Clear() {
	inf := math32.Inf(1)
	for i := range c.depth {
		c.depth[i] = inf
	}
}

// Plot writes col at (x, y) when depth is nearer than what is there.
func (c *Canvas) Plot(x, y int, depth float32, col colorful.Color) bool {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return false
	}
	i := y*c.cols + x
	if depth >= c.depth[i] {
		return false
	}
	c.depth[i] = depth
	c.color[i] = col
	return true
}

// Lit counts pixels that hold a colour.
func (c *Canvas) Lit() int {
	n := 0
	for _, d := range c.depth {
		if !math32.IsInf(d, 1) {
			n++
		}
	}
	return n
}

func (c *Canvas) pixel(x, y int) (colorful.Color, bool) {
	i := y*c.cols + x
	if math32.IsInf(c.depth[i], 1) {
		return colorful.Color{}, false
	}
	return c.color[i], true
}

// Render draws the canvas using profile for colour output. Empty cells are
// spaces so the terminal background shows through.
func (c *Canvas) Render(profile termenv.Profile) string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.cols; x++ {
			top, hasTop := c.pixel(x, row*2)
			bottom, hasBottom := c.pixel(x, row*2+1)
			switch {
			case hasTop && hasBottom:
				b.WriteString(profile.String("▀").
					Foreground(profile.FromColor(top)).
					Background(profile.FromColor(bottom)).
					String())
			case hasTop:
				b.WriteString(profile.String("▀").Foreground(profile.FromColor(top)).String())
			case hasBottom:
				b.WriteString(profile.String("▄").Foreground(profile.FromColor(bottom)).String())
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
