package handlers

import (
	"fmt"
	"math"
	"strings"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
)

// Cash-flow chart geometry, in SVG user units.
const (
	chartWidth   = 640
	chartHeight  = 320
	chartPadding = 48
)

// chartBar is one period: the projected dividend with the terminal value
// stacked on top. Negative figures extend below the zero line.
type chartBar struct {
	Label          string
	X, Width       float64
	DividendY      float64
	DividendHeight float64
	TerminalY      float64
	TerminalHeight float64
}

// chartView is the precomputed SVG for the dashboard: stacked bars for the
// dividend and terminal value, and a line for the present value.
type chartView struct {
	Width, Height int
	Bars          []chartBar
	PVPoints      string
	PVDots        []chartPoint
	AxisY         float64 // zero line
	LabelY        float64 // baseline of the year labels
	MaxLabel      string
	MinLabel      string // empty unless some figure is negative
}

type chartPoint struct {
	X, Y float64
}

func newChartView(schedule ddm.Schedule) chartView {
	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)

	var hi, lo float64
	for _, p := range schedule {
		hi = max(hi, p.Dividend, p.Dividend+p.TerminalValue, p.PresentValue)
		lo = min(lo, p.Dividend, p.Dividend+p.TerminalValue, p.PresentValue)
	}
	if hi-lo <= 0 {
		hi = 1
	}
	scale := plotH / (hi - lo)
	axisY := float64(chartPadding) + hi*scale
	y := func(v float64) float64 { return axisY - v*scale }

	view := chartView{
		Width:    chartWidth,
		Height:   chartHeight,
		AxisY:    axisY,
		LabelY:   float64(chartHeight - chartPadding),
		MaxLabel: fmt.Sprintf("%.2f", hi),
	}
	if lo < 0 {
		view.MinLabel = fmt.Sprintf("%.2f", lo)
	}

	slot := plotW / float64(len(schedule))
	points := make([]string, 0, len(schedule))
	for i, p := range schedule {
		x := float64(chartPadding) + float64(i)*slot
		top := p.Dividend + p.TerminalValue
		view.Bars = append(view.Bars, chartBar{
			Label:          p.DividendDate.Format("2006"),
			X:              x + slot*0.2,
			Width:          slot * 0.6,
			DividendY:      min(y(0), y(p.Dividend)),
			DividendHeight: math.Abs(p.Dividend) * scale,
			TerminalY:      min(y(p.Dividend), y(top)),
			TerminalHeight: math.Abs(p.TerminalValue) * scale,
		})

		cx := x + slot/2
		cy := y(p.PresentValue)
		view.PVDots = append(view.PVDots, chartPoint{X: cx, Y: cy})
		points = append(points, fmt.Sprintf("%.1f,%.1f", cx, cy))
	}
	view.PVPoints = strings.Join(points, " ")

	return view
}
