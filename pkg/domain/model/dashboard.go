package model

import "github.com/candlelight-lab/quarterdeck/pkg/domain/types"

// DashboardView is the full response for one dataset: load state plus the
// derived aggregation and chart geometry when the state is ready.
type DashboardView struct {
	Kind        types.DatasetKind    `json:"kind"`
	State       types.DashboardState `json:"state"`
	Error       string               `json:"error,omitempty"`
	DroppedRows int                  `json:"droppedRows"`

	Aggregation *Aggregation      `json:"aggregation,omitempty"`
	StackedBars *StackedBarLayout `json:"stackedBars,omitempty"`
	Donut       *DonutLayout      `json:"donut,omitempty"`
}

// DrillDownSelection is the category picked from a donut segment click,
// together with the color the chart assigned to it.
type DrillDownSelection struct {
	Category string           `json:"category"`
	Color    types.ColorToken `json:"color"`
}

// DrillDownView exposes the raw record subset for the selected category,
// sorted by quarter ascending.
type DrillDownView struct {
	Selection DrillDownSelection `json:"selection"`
	Records   []Record           `json:"records"`
}
