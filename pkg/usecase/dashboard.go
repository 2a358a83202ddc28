package usecase

import (
	"context"
	"sync"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/interfaces"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/candlelight-lab/quarterdeck/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Dispatcher runs a load in the background. Swapped for a synchronous
// runner in tests.
type Dispatcher func(ctx context.Context, fn func(ctx context.Context) error)

// Dashboard owns the load lifecycle of the currently selected dataset. One
// dataset is current at a time; a Load for a new kind supersedes any
// outstanding fetch, and a late-arriving result whose LoadID is no longer
// current is discarded (last-request-wins, no queue).
type Dashboard struct {
	repo     interfaces.DatasetRepository
	palette  Palette
	drill    *DrillDown
	dispatch Dispatcher

	mu      sync.RWMutex
	kind    types.DatasetKind
	loadID  types.LoadID
	state   types.DashboardState
	loadErr error
	agg     *model.Aggregation
	records []model.Record
	dropped int
}

// DashboardOption configures a Dashboard
type DashboardOption func(*Dashboard)

// WithPalette overrides the default color palette
func WithPalette(p Palette) DashboardOption {
	return func(d *Dashboard) {
		if len(p) > 0 {
			d.palette = p
		}
	}
}

// WithDispatcher overrides background dispatch (used by tests to run loads
// synchronously)
func WithDispatcher(dispatch Dispatcher) DashboardOption {
	return func(d *Dashboard) {
		d.dispatch = dispatch
	}
}

// NewDashboard creates a dashboard over a dataset backend
func NewDashboard(repo interfaces.DatasetRepository, drill *DrillDown, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{
		repo:     repo,
		palette:  DefaultPalette(),
		drill:    drill,
		dispatch: async.Dispatch,
		state:    types.StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ interfaces.Dashboard = (*Dashboard)(nil)

// Load starts an asynchronous fetch-and-aggregate for the kind. The selected
// kind and a fresh LoadID become current immediately; the previous dataset's
// views are gone once loading starts, never shown against the new kind.
func (d *Dashboard) Load(ctx context.Context, kind types.DatasetKind) error {
	if !kind.IsValid() {
		return goerr.Wrap(model.ErrUnknownDatasetKind, "load rejected",
			goerr.V("kind", kind))
	}

	d.mu.Lock()
	id := types.NewLoadID()
	d.kind = kind
	d.loadID = id
	d.state = types.StateLoading
	d.loadErr = nil
	d.agg = nil
	d.records = nil
	d.dropped = 0
	d.mu.Unlock()

	d.dispatch(ctx, func(ctx context.Context) error {
		return d.runLoad(ctx, kind, id)
	})

	return nil
}

// runLoad performs the fetch and aggregation, then applies the result only
// if this load is still the current one.
func (d *Dashboard) runLoad(ctx context.Context, kind types.DatasetKind, id types.LoadID) error {
	rows, err := d.repo.Fetch(ctx, kind)

	var records []model.Record
	var dropped int
	var agg *model.Aggregation
	if err == nil {
		records, dropped = NormalizeAll(ctx, rows, kind)
		agg = Aggregate(records, kind)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loadID != id {
		ctxlog.From(ctx).Debug("Discarding stale load result",
			"kind", kind,
			"loadID", id,
			"currentLoadID", d.loadID,
		)
		return nil
	}

	if err != nil {
		d.state = types.StateFailed
		d.loadErr = goerr.Wrap(err, "dataset load failed", goerr.V("kind", kind))
		return d.loadErr
	}

	d.state = types.StateReady
	d.agg = agg
	d.records = records
	d.dropped = dropped
	if d.drill != nil {
		d.drill.SetRecords(records)
	}

	ctxlog.From(ctx).Info("Dataset loaded",
		"kind", kind,
		"rows", len(rows),
		"dropped", dropped,
		"quarters", len(agg.Quarters),
		"categories", len(agg.Categories),
	)
	return nil
}

// View returns the current view for the kind. Requesting a kind other than
// the currently selected one reports idle; the caller triggers a Load to
// switch. Chart geometry is computed on the fly from the aggregation, so it
// is always consistent with the dims the caller asked for.
func (d *Dashboard) View(ctx context.Context, kind types.DatasetKind, dims model.ChartDims) (*model.DashboardView, error) {
	if !kind.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownDatasetKind, "view rejected",
			goerr.V("kind", kind))
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	view := &model.DashboardView{Kind: kind, State: types.StateIdle}
	if kind != d.kind {
		return view, nil
	}

	view.State = d.state
	view.DroppedRows = d.dropped

	switch d.state {
	case types.StateFailed:
		view.Error = d.loadErr.Error()
	case types.StateReady:
		view.Aggregation = d.agg
		bars := LayoutStackedBars(d.agg.TimeSeries, dims, d.palette)
		donut := LayoutDonut(d.agg.CategoryTotals, dims, d.palette)
		view.StackedBars = &bars
		view.Donut = &donut
	}

	return view, nil
}

// RawRows returns the raw rows for a kind straight from the backend. This is
// the four-endpoint data surface; it bypasses the load lifecycle entirely.
func (d *Dashboard) RawRows(ctx context.Context, kind types.DatasetKind) ([]model.RawRow, error) {
	if !kind.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownDatasetKind, "fetch rejected",
			goerr.V("kind", kind))
	}
	rows, err := d.repo.Fetch(ctx, kind)
	if err != nil {
		return nil, goerr.Wrap(err, "raw fetch failed", goerr.V("kind", kind))
	}
	return rows, nil
}

// Preload fetches every dataset kind concurrently to verify availability and
// warm backend caches at startup. Failures are logged, not fatal: the
// dashboard still starts and surfaces the error on demand.
func (d *Dashboard) Preload(ctx context.Context) {
	eg, ctx := errgroup.WithContext(ctx)

	for _, kind := range types.AllDatasetKinds() {
		eg.Go(func() error {
			rows, err := d.repo.Fetch(ctx, kind)
			if err != nil {
				ctxlog.From(ctx).Warn("Preload failed",
					"kind", kind,
					"error", err,
				)
				return nil
			}
			ctxlog.From(ctx).Debug("Preloaded dataset",
				"kind", kind,
				"rows", len(rows),
			)
			return nil
		})
	}

	_ = eg.Wait()
}
