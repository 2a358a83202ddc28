package interfaces

import (
	"context"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
)

// Dashboard drives the dataset load lifecycle and exposes the derived views
type Dashboard interface {
	// Load starts an asynchronous fetch-and-aggregate for the kind. A newer
	// Load supersedes an outstanding one (last-request-wins).
	Load(ctx context.Context, kind types.DatasetKind) error

	// View returns the current view for the kind
	View(ctx context.Context, kind types.DatasetKind, dims model.ChartDims) (*model.DashboardView, error)

	// RawRows returns the raw rows for the kind straight from the backend
	RawRows(ctx context.Context, kind types.DatasetKind) ([]model.RawRow, error)
}

// DrillDown is the selection state machine behind the detail table
type DrillDown interface {
	// Select opens the drill-down for a category, replacing any prior selection
	Select(ctx context.Context, selection model.DrillDownSelection) error

	// Dismiss closes the drill-down
	Dismiss(ctx context.Context)

	// Current returns the open view, or nil when closed
	Current(ctx context.Context) *model.DrillDownView
}
