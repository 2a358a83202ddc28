package model

import "github.com/candlelight-lab/quarterdeck/pkg/domain/types"

// AggregatedCell is one (quarter, category) cell after the zero-fill join:
// every pair in the cross product of observed quarters and the category
// universe gets a cell, defaulting to zero when no record matched.
type AggregatedCell struct {
	Quarter  types.FiscalQuarter `json:"quarter"`
	Category string              `json:"category"`
	Count    int                 `json:"count"`
	ACV      float64             `json:"acv"`
}

// QuarterTotal sums all categories for one quarter
type QuarterTotal struct {
	Quarter types.FiscalQuarter `json:"quarter"`
	Count   int                 `json:"count"`
	ACV     float64             `json:"acv"`
}

// GrandTotal sums all quarters
type GrandTotal struct {
	Count int     `json:"count"`
	ACV   float64 `json:"acv"`
}

// TimeSeriesRow carries the stacked per-category ACV vector for one quarter.
// Values align index-for-index with TimeSeries.Categories.
type TimeSeriesRow struct {
	Quarter types.FiscalQuarter `json:"quarter"`
	Values  []float64           `json:"values"`
	Total   float64             `json:"total"`
}

// TimeSeries is the exact input a stacked-bar layout consumes: quarters in
// ascending order, each with a per-category vector in a fixed category order.
type TimeSeries struct {
	Categories []string        `json:"categories"`
	Rows       []TimeSeriesRow `json:"rows"`
}

// CategoryTotal is one donut slice: total ACV for a category and its share
// of the grand total (0 when the grand total is 0).
type CategoryTotal struct {
	Category string  `json:"category"`
	ACV      float64 `json:"acv"`
	Share    float64 `json:"share"`
}

// CategoryTotals lists one entry per category in the fixed category order
type CategoryTotals struct {
	Entries []CategoryTotal `json:"entries"`
}

// PivotCell holds one pivot table cell
type PivotCell struct {
	Count           int     `json:"count"`
	ACV             float64 `json:"acv"`
	PctOfQuarterACV float64 `json:"pctOfQuarterAcv"`
}

// PivotRow is one category row: one cell per quarter plus a Total cell
type PivotRow struct {
	Category string      `json:"category"`
	Cells    []PivotCell `json:"cells"`
	Total    PivotCell   `json:"total"`
}

// PivotTable pivots categories against quarters. The TotalRow carries the
// quarter totals with 100% in every percent column by construction.
type PivotTable struct {
	Quarters []types.FiscalQuarter `json:"quarters"`
	Rows     []PivotRow            `json:"rows"`
	TotalRow PivotRow              `json:"totalRow"`
}

// Aggregation is the full derived output for one dataset. It is recomputed
// from scratch on every load; nothing persists across loads.
type Aggregation struct {
	Kind           types.DatasetKind     `json:"kind"`
	Quarters       []types.FiscalQuarter `json:"quarters"`
	Categories     []string              `json:"categories"`
	Cells          []AggregatedCell      `json:"cells"`
	QuarterTotals  []QuarterTotal        `json:"quarterTotals"`
	GrandTotal     GrandTotal            `json:"grandTotal"`
	TimeSeries     TimeSeries            `json:"timeSeries"`
	CategoryTotals CategoryTotals        `json:"categoryTotals"`
	Pivot          PivotTable            `json:"pivot"`
}
