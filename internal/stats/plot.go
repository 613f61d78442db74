package stats

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Series is one named line of a plot.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 10
	minPlotWidth      = 10
	axisLabelWidth    = 5
	axisSeparator     = " │ "
	colorReset        = "\x1b[0m"
)

type dashPattern struct {
	name   string
	period int
	on     int
}

func (p dashPattern) draws(x int) bool {
	if p.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%p.period < p.on
}

var dashPatterns = []dashPattern{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var seriesColors = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

// brailleBits maps a dot at (x%2, y%4) inside a cell to its braille bit.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
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

func (c *canvas) set(x, y int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(c.cells) || cx >= len(c.cells[cy]) {
		return
	}
	c.cells[cy][cx] |= brailleBits[y%4][x%2]
}

// line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm, skipping
// the dots the dash pattern leaves out.
func (c *canvas) line(x0, y0, x1, y1 int, dash dashPattern) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	step := dx + dy
	for {
		if dash.draws(x0) {
			c.set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * step
		if e2 >= dy {
			step += dy
			x0 += sx
		}
		if e2 <= dx {
			step += dx
			y0 += sy
		}
	}
}

// PlotWidthFor returns the plot area width that fits into totalWidth
// columns next to the axis.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-axisLabelWidth-utf8.RuneCountInString(axisSeparator), minPlotWidth)
}

// PlotSeriesWithColor draws the series as braille lines on a shared scale
// from zero to the largest value. width is the plot area in columns; each
// column holds two points, so only the most recent 2*width values are
// drawn. height is the number of text rows.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, useColor bool) error {
	var drawn []Series
	for _, s := range series {
		if len(s.Values) > 0 {
			drawn = append(drawn, s)
		}
	}
	if len(drawn) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	width = max(width, minPlotWidth)

	dotsX, dotsY := width*2, height*4
	top := 0.0
	for i, s := range drawn {
		if len(s.Values) > dotsX {
			drawn[i].Values = s.Values[len(s.Values)-dotsX:]
		}
		for _, v := range drawn[i].Values {
			top = max(top, v)
		}
	}
	if top <= 0 {
		top = 1
	}

	canvases := make([]*canvas, len(drawn))
	for si, s := range drawn {
		c := newCanvas(width, height)
		dash := dashPatterns[si%len(dashPatterns)]
		n := len(s.Values)
		prevX, prevY := -1, -1
		for i, v := range s.Values {
			x := 0
			if n > 1 {
				x = i * (dotsX - 1) / (n - 1)
			}
			y := dotRow(v, top, dotsY)
			if prevX < 0 {
				c.set(x, y)
			} else {
				c.line(prevX, prevY, x, y, dash)
			}
			prevX, prevY = x, y
		}
		canvases[si] = c
	}

	var lines []string
	if title != "" {
		lines = append(lines, title)
	}
	for y := range height {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", axisLabelWidth, axisLabel(y, height, top), axisSeparator)
		for x := range width {
			var mask uint8
			owner := -1
			for si, c := range canvases {
				if bits := c.cells[y][x]; bits != 0 {
					mask |= bits
					if owner < 0 {
						owner = si
					}
				}
			}
			ch := string(rune(0x2800 + int(mask)))
			if useColor && owner >= 0 {
				ch = seriesColors[owner%len(seriesColors)] + ch + colorReset
			}
			row.WriteString(ch)
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, legend(drawn, useColor))

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func dotRow(v, top float64, dots int) int {
	if dots <= 1 {
		return 0
	}
	frac := min(max(v/top, 0), 1)
	return int((1-frac)*float64(dots-1) + 0.5)
}

func axisLabel(row, height int, top float64) string {
	switch {
	case row == 0:
		return fmt.Sprintf("%.0f", top)
	case row == height-1:
		return "0"
	case height > 2 && row == height/2:
		return fmt.Sprintf("%.0f", top/2)
	}
	return ""
}

func legend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%s (%s)", s.Name, dashPatterns[i%len(dashPatterns)].name)
		if useColor {
			label = seriesColors[i%len(seriesColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return strings.Repeat(" ", axisLabelWidth) + axisSeparator + strings.Join(parts, "  ")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
