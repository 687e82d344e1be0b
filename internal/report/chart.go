package report

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	chartWidth  = 800
	chartHeight = 400
	chartMargin = 50.0
)

// maxChartCategories is the x-axis cardinality above which only the
// ten largest categories by summed y-value are kept.
const maxChartCategories = 15

var chartPalette = [][3]float64{
	{0.886, 0.290, 0.200},
	{0.204, 0.541, 0.741},
	{0.596, 0.306, 0.639},
	{0.467, 0.467, 0.471},
	{0.984, 0.757, 0.369},
	{0.557, 0.729, 0.259},
	{0.302, 0.686, 0.663},
	{0.839, 0.373, 0.373},
}

// Series is one named line on a line chart.
type Series struct {
	Name   string
	Values []float64
}

// aggregateChart sums yField by distinct xField value in first-seen
// order. When the cardinality exceeds maxChartCategories, only the ten
// largest sums survive; ties keep first-seen order.
func aggregateChart(rows []Row, xField, yField string) ([]string, []float64) {
	var labels []string
	var values []float64
	index := make(map[string]int)
	for _, row := range rows {
		key := cellString(row[xField])
		y, ok := toFloat(row[yField])
		if !ok {
			y = 0
		}
		i, seen := index[key]
		if !seen {
			i = len(labels)
			index[key] = i
			labels = append(labels, key)
			values = append(values, 0)
		}
		values[i] += y
	}

	if len(labels) > maxChartCategories {
		order := make([]int, len(labels))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return values[order[a]] > values[order[b]]
		})
		order = order[:10]
		topLabels := make([]string, len(order))
		topValues := make([]float64, len(order))
		for i, idx := range order {
			topLabels[i] = labels[idx]
			topValues[i] = values[idx]
		}
		return topLabels, topValues
	}
	return labels, values
}

// RenderChart renders one chart type to PNG bytes.
func RenderChart(chartType, title string, labels []string, values []float64) ([]byte, error) {
	switch chartType {
	case "bar":
		return renderBars(title, labels, values)
	case "pie":
		return renderPie(title, labels, values)
	case "line":
		return RenderLineChart(title, labels, []Series{{Name: title, Values: values}})
	default:
		return nil, fmt.Errorf("unknown chart type %q", chartType)
	}
}

func newChartContext(title string) *gg.Context {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored(title, chartWidth/2, 18, 0.5, 0.5)
	return dc
}

func renderBars(title string, labels []string, values []float64) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no data to chart")
	}
	dc := newChartContext(title)
	plotW := float64(chartWidth) - 2*chartMargin
	plotH := float64(chartHeight) - 2*chartMargin

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	drawAxes(dc)
	slot := plotW / float64(len(labels))
	barW := slot * 0.7
	for i, v := range values {
		h := (v / maxVal) * plotH
		if h < 0 {
			h = 0
		}
		x := chartMargin + float64(i)*slot + (slot-barW)/2
		y := chartMargin + plotH - h
		c := chartPalette[i%len(chartPalette)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawRectangle(x, y, barW, h)
		dc.Fill()
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(truncateLabel(labels[i]), x+barW/2, chartMargin+plotH+14, 0.5, 0.5)
	}
	return encodePNG(dc)
}

func renderPie(title string, labels []string, values []float64) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no data to chart")
	}
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("no positive values to chart")
	}

	dc := newChartContext(title)
	cx, cy := float64(chartWidth)/2, float64(chartHeight)/2+10
	radius := math.Min(float64(chartWidth), float64(chartHeight))/2 - chartMargin

	angle := -math.Pi / 2
	for i, v := range values {
		if v <= 0 {
			continue
		}
		frac := v / total
		end := angle + frac*2*math.Pi
		c := chartPalette[i%len(chartPalette)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, end)
		dc.ClosePath()
		dc.Fill()

		mid := (angle + end) / 2
		lx := cx + math.Cos(mid)*radius*1.15
		ly := cy + math.Sin(mid)*radius*1.15
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(fmt.Sprintf("%s %.1f%%", truncateLabel(labels[i]), frac*100), lx, ly, 0.5, 0.5)
		angle = end
	}
	return encodePNG(dc)
}

// RenderLineChart draws one or more marker-connected series over a
// shared x-axis. The summary trend charts reuse it.
func RenderLineChart(title string, labels []string, series []Series) ([]byte, error) {
	if len(labels) == 0 || len(series) == 0 {
		return nil, fmt.Errorf("no data to chart")
	}
	dc := newChartContext(title)
	plotW := float64(chartWidth) - 2*chartMargin
	plotH := float64(chartHeight) - 2*chartMargin

	minVal, maxVal := 0.0, 0.0
	for _, s := range series {
		for _, v := range s.Values {
			if v > maxVal {
				maxVal = v
			}
			if v < minVal {
				minVal = v
			}
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	drawAxes(dc)
	step := plotW
	if len(labels) > 1 {
		step = plotW / float64(len(labels)-1)
	}
	toXY := func(i int, v float64) (float64, float64) {
		x := chartMargin + float64(i)*step
		y := chartMargin + plotH - ((v-minVal)/(maxVal-minVal))*plotH
		return x, y
	}

	for si, s := range series {
		c := chartPalette[si%len(chartPalette)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.SetLineWidth(2)
		for i := 1; i < len(s.Values) && i < len(labels); i++ {
			x0, y0 := toXY(i-1, s.Values[i-1])
			x1, y1 := toXY(i, s.Values[i])
			dc.DrawLine(x0, y0, x1, y1)
			dc.Stroke()
		}
		for i := 0; i < len(s.Values) && i < len(labels); i++ {
			x, y := toXY(i, s.Values[i])
			dc.DrawCircle(x, y, 3)
			dc.Fill()
		}
		dc.DrawStringAnchored(s.Name, chartMargin+float64(si)*180, chartHeight-12, 0, 0.5)
	}

	labelEvery := len(labels)/10 + 1
	dc.SetRGB(0.2, 0.2, 0.2)
	for i := 0; i < len(labels); i += labelEvery {
		x := chartMargin + float64(i)*step
		dc.DrawStringAnchored(truncateLabel(labels[i]), x, chartMargin+plotH+14, 0.5, 0.5)
	}
	return encodePNG(dc)
}

func drawAxes(dc *gg.Context) {
	plotW := float64(chartWidth) - 2*chartMargin
	plotH := float64(chartHeight) - 2*chartMargin
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawLine(chartMargin, chartMargin, chartMargin, chartMargin+plotH)
	dc.DrawLine(chartMargin, chartMargin+plotH, chartMargin+plotW, chartMargin+plotH)
	dc.Stroke()
}

func truncateLabel(s string) string {
	if len(s) > 14 {
		return s[:12] + ".."
	}
	return s
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
