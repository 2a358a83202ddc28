package model

import "github.com/candlelight-lab/quarterdeck/pkg/domain/types"

// ChartDims is the drawing area handed to the layout functions
type ChartDims struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LegendEntry pairs a category with its assigned color. Legend order equals
// stacking order equals donut slice order for the same dataset.
type LegendEntry struct {
	Category string           `json:"category"`
	Color    types.ColorToken `json:"color"`
}

// BarSegment is one stacked rectangle. Label is empty when the segment is
// too short to carry readable text.
type BarSegment struct {
	Category string           `json:"category"`
	Color    types.ColorToken `json:"color"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Value    float64          `json:"value"`
	Label    string           `json:"label"`
}

// BarStack is one quarter's bar: segments stacked bottom-up in category order
type BarStack struct {
	Quarter    types.FiscalQuarter `json:"quarter"`
	X          float64             `json:"x"`
	Width      float64             `json:"width"`
	Total      float64             `json:"total"`
	TotalLabel string              `json:"totalLabel"`
	Segments   []BarSegment        `json:"segments"`
}

// StackedBarLayout is the declarative geometry for the stacked-bar chart
type StackedBarLayout struct {
	Dims     ChartDims     `json:"dims"`
	MaxValue float64       `json:"maxValue"`
	Bars     []BarStack    `json:"bars"`
	Legend   []LegendEntry `json:"legend"`
}

// DonutArc is one ring segment. Angles are radians measured clockwise from
// twelve o'clock, so StartAngle of the first arc is always 0.
type DonutArc struct {
	Category   string           `json:"category"`
	Color      types.ColorToken `json:"color"`
	StartAngle float64          `json:"startAngle"`
	EndAngle   float64          `json:"endAngle"`
	Share      float64          `json:"share"`
	Label      string           `json:"label"`
}

// DonutLayout is the declarative geometry for the donut chart
type DonutLayout struct {
	Dims        ChartDims     `json:"dims"`
	CenterX     float64       `json:"centerX"`
	CenterY     float64       `json:"centerY"`
	InnerRadius float64       `json:"innerRadius"`
	OuterRadius float64       `json:"outerRadius"`
	CenterLabel string        `json:"centerLabel"`
	Arcs        []DonutArc    `json:"arcs"`
	Legend      []LegendEntry `json:"legend"`
}
