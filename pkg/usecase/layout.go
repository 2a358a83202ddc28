package usecase

import (
	"fmt"
	"math"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
)

const (
	// barPadding is the fraction of each band left empty around a bar
	barPadding = 0.2

	// segmentLabelMinHeight is the segment height in pixels below which the
	// in-bar label renders empty. Tiny segments would otherwise stack
	// unreadable text on top of each other; zero-height segments always
	// fall under this.
	segmentLabelMinHeight = 14.0

	// donutInnerRatio is the inner/outer radius ratio producing the ring
	donutInnerRatio = 0.6
)

// formatThousands renders an ACV figure as integer thousands, e.g. "$648K"
func formatThousands(v float64) string {
	return fmt.Sprintf("$%dK", int(math.Round(v/1000)))
}

// formatShare renders a 0..1 share as a one-decimal percentage, e.g. "74.3%"
func formatShare(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

// LayoutStackedBars maps a time series onto stacked rectangles: one band per
// quarter, segments stacked bottom-up in category order, a linear value
// scale from 0 to the largest quarter total. Pure and deterministic; the
// same input always produces bit-identical geometry.
func LayoutStackedBars(ts model.TimeSeries, dims model.ChartDims, palette Palette) model.StackedBarLayout {
	layout := model.StackedBarLayout{Dims: dims}

	for _, row := range ts.Rows {
		if row.Total > layout.MaxValue {
			layout.MaxValue = row.Total
		}
	}

	// pixels per ACV unit; zero when there is nothing to scale against
	scale := 0.0
	if layout.MaxValue > 0 {
		scale = dims.Height / layout.MaxValue
	}

	band := 0.0
	if len(ts.Rows) > 0 {
		band = dims.Width / float64(len(ts.Rows))
	}
	barWidth := band * (1 - barPadding)

	for i, row := range ts.Rows {
		bar := model.BarStack{
			Quarter:    row.Quarter,
			X:          float64(i)*band + band*barPadding/2,
			Width:      barWidth,
			Total:      row.Total,
			TotalLabel: formatThousands(row.Total),
		}

		stacked := 0.0
		for j, v := range row.Values {
			height := v * scale
			seg := model.BarSegment{
				Category: ts.Categories[j],
				Color:    palette.Color(j),
				X:        bar.X,
				Y:        dims.Height - (stacked+v)*scale,
				Width:    barWidth,
				Height:   height,
				Value:    v,
			}
			if height >= segmentLabelMinHeight {
				seg.Label = formatThousands(v)
			}
			bar.Segments = append(bar.Segments, seg)
			stacked += v
		}

		layout.Bars = append(layout.Bars, bar)
	}

	for j, c := range ts.Categories {
		layout.Legend = append(layout.Legend, model.LegendEntry{
			Category: c,
			Color:    palette.Color(j),
		})
	}

	return layout
}

// LayoutDonut maps category totals onto ring arcs in category order. Angles
// run clockwise from twelve o'clock; the center label carries the grand
// total in thousands. When the grand total is zero every arc collapses to a
// zero-width slice rather than erroring.
func LayoutDonut(ct model.CategoryTotals, dims model.ChartDims, palette Palette) model.DonutLayout {
	outer := math.Min(dims.Width, dims.Height) / 2

	layout := model.DonutLayout{
		Dims:        dims,
		CenterX:     dims.Width / 2,
		CenterY:     dims.Height / 2,
		InnerRadius: outer * donutInnerRatio,
		OuterRadius: outer,
	}

	total := 0.0
	for _, e := range ct.Entries {
		total += e.ACV
	}
	layout.CenterLabel = formatThousands(total)

	angle := 0.0
	for i, e := range ct.Entries {
		arc := model.DonutArc{
			Category:   e.Category,
			Color:      palette.Color(i),
			StartAngle: angle,
			EndAngle:   angle + e.Share*2*math.Pi,
			Share:      e.Share,
			Label:      formatShare(e.Share),
		}
		layout.Arcs = append(layout.Arcs, arc)
		angle = arc.EndAngle

		layout.Legend = append(layout.Legend, model.LegendEntry{
			Category: e.Category,
			Color:    palette.Color(i),
		})
	}

	return layout
}
