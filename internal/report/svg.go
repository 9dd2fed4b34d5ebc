package report

import (
	"bytes"
	"fmt"
	"html"
)

// Panel geometry for the SVG chart grid. Two columns; rows grow with the
// number of charts.
const (
	panelWidth   = 560
	panelHeight  = 320
	panelPadding = 20
	plotTop      = 56  // below the panel title
	plotBottom   = 40  // above the label row
	headerHeight = 48  // overall report title
	maxBarLabel  = 12  // label characters before truncation
)

// RenderSVG draws the chart grid as a standalone SVG document.
// An empty chart list still yields a valid (title-only) image.
func RenderSVG(title string, charts []Chart) []byte {
	cols := 2
	rows := (len(charts) + cols - 1) / cols
	width := cols * panelWidth
	height := headerHeight + rows*panelHeight
	if rows == 0 {
		height = headerHeight + panelPadding
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="Helvetica, Arial, sans-serif">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)
	fmt.Fprintf(&buf, `<text x="%d" y="30" text-anchor="middle" font-size="18" font-weight="bold" fill="#2c3e50">%s</text>`+"\n",
		width/2, html.EscapeString(title))

	for i, chart := range charts {
		x := (i % cols) * panelWidth
		y := headerHeight + (i/cols)*panelHeight
		renderPanel(&buf, chart, x, y)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderPanel(buf *bytes.Buffer, chart Chart, x, y int) {
	fmt.Fprintf(buf, `<text x="%d" y="%d" text-anchor="middle" font-size="13" font-weight="bold" fill="#2c3e50">%s</text>`+"\n",
		x+panelWidth/2, y+34, html.EscapeString(chart.Title))

	plotX := x + panelPadding
	plotY := y + plotTop
	plotW := panelWidth - 2*panelPadding
	plotH := panelHeight - plotTop - plotBottom

	// Baseline
	fmt.Fprintf(buf, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#d0d0d0"/>`+"\n",
		plotX, plotY+plotH, plotX+plotW, plotY+plotH)

	if len(chart.Points) == 0 {
		fmt.Fprintf(buf, `<text x="%d" y="%d" text-anchor="middle" font-size="11" fill="#888888">no data</text>`+"\n",
			x+panelWidth/2, plotY+plotH/2)
		return
	}

	maxVal := 0
	for _, p := range chart.Points {
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	switch chart.Kind {
	case KindLine:
		renderLine(buf, chart, plotX, plotY, plotW, plotH, maxVal)
	default:
		renderBars(buf, chart, plotX, plotY, plotW, plotH, maxVal)
	}
}

func renderBars(buf *bytes.Buffer, chart Chart, plotX, plotY, plotW, plotH, maxVal int) {
	n := len(chart.Points)
	slot := float64(plotW) / float64(n)
	barW := slot * 0.7

	for i, p := range chart.Points {
		barH := float64(plotH) * float64(p.Value) / float64(maxVal)
		bx := float64(plotX) + float64(i)*slot + (slot-barW)/2
		by := float64(plotY+plotH) - barH

		fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.85"/>`+"\n",
			bx, by, barW, barH, chart.Color)
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="10" fill="#444444">%d</text>`+"\n",
			bx+barW/2, by-4, p.Value)
		fmt.Fprintf(buf, `<text x="%.1f" y="%d" text-anchor="middle" font-size="9" fill="#555555">%s</text>`+"\n",
			bx+barW/2, plotY+plotH+16, html.EscapeString(truncateLabel(p.Label)))
	}
}

func renderLine(buf *bytes.Buffer, chart Chart, plotX, plotY, plotW, plotH, maxVal int) {
	n := len(chart.Points)
	step := 0.0
	if n > 1 {
		step = float64(plotW) / float64(n-1)
	}

	var points bytes.Buffer
	for i, p := range chart.Points {
		px := float64(plotX) + float64(i)*step
		if n == 1 {
			px = float64(plotX + plotW/2)
		}
		py := float64(plotY+plotH) - float64(plotH)*float64(p.Value)/float64(maxVal)
		fmt.Fprintf(&points, "%.1f,%.1f ", px, py)

		fmt.Fprintf(buf, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", px, py, chart.Color)
		fmt.Fprintf(buf, `<text x="%.1f" y="%d" text-anchor="middle" font-size="9" fill="#555555">%s</text>`+"\n",
			px, plotY+plotH+16, html.EscapeString(truncateLabel(p.Label)))
	}

	if n > 1 {
		fmt.Fprintf(buf, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2.5"/>`+"\n",
			bytes.TrimSpace(points.Bytes()), chart.Color)
	}
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= maxBarLabel {
		return s
	}
	return string(runes[:maxBarLabel-1]) + "…"
}
