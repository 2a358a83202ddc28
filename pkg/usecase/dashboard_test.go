package usecase_test

import (
	"context"
	"testing"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/candlelight-lab/quarterdeck/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// stubRepo serves canned rows per kind and can be told to fail
type stubRepo struct {
	rows map[types.DatasetKind][]model.RawRow
	err  error
}

func (r *stubRepo) Fetch(ctx context.Context, kind types.DatasetKind) ([]model.RawRow, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rows[kind], nil
}

func (r *stubRepo) Close() error { return nil }

// queueDispatcher collects dispatched loads so tests control completion order
type queueDispatcher struct {
	queue []func(ctx context.Context) error
}

func (q *queueDispatcher) dispatch(ctx context.Context, fn func(ctx context.Context) error) {
	q.queue = append(q.queue, fn)
}

func (q *queueDispatcher) runAll(ctx context.Context) {
	for _, fn := range q.queue {
		_ = fn(ctx)
	}
	q.queue = nil
}

func syncDispatch(ctx context.Context, fn func(ctx context.Context) error) {
	_ = fn(ctx)
}

func testRepo() *stubRepo {
	return &stubRepo{rows: map[types.DatasetKind][]model.RawRow{
		types.KindCustomerType: {
			{Count: 23, ACV: 647821.48, ClosedFiscalQuarter: "2024-Q1", CustType: "Existing Customer"},
			{Count: 6, ACV: 224643.30, ClosedFiscalQuarter: "2024-Q1", CustType: "New Customer"},
		},
		types.KindTeam: {
			{Count: 4, ACV: 9000, ClosedFiscalQuarter: "2024-Q1", Team: "EMEA"},
			{Count: 1, ACV: 1000, Team: "APAC"}, // missing quarter, dropped
		},
	}}
}

var viewDims = model.ChartDims{Width: 800, Height: 400}

func TestDashboardLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("load then view is ready with derived output", func(t *testing.T) {
		d := usecase.NewDashboard(testRepo(), usecase.NewDrillDown(),
			usecase.WithDispatcher(syncDispatch))

		gt.NoError(t, d.Load(ctx, types.KindCustomerType))

		view, err := d.View(ctx, types.KindCustomerType, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.State, types.StateReady)
		gt.V(t, view.Aggregation).NotNil()
		gt.Equal(t, view.Aggregation.GrandTotal.Count, 29)
		gt.V(t, view.StackedBars).NotNil()
		gt.V(t, view.Donut).NotNil()
	})

	t.Run("dropped rows are counted but invisible in totals", func(t *testing.T) {
		d := usecase.NewDashboard(testRepo(), usecase.NewDrillDown(),
			usecase.WithDispatcher(syncDispatch))

		gt.NoError(t, d.Load(ctx, types.KindTeam))
		view, err := d.View(ctx, types.KindTeam, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.DroppedRows, 1)
		gt.Equal(t, view.Aggregation.GrandTotal.Count, 4)
	})

	t.Run("view of a non-current kind reports idle", func(t *testing.T) {
		d := usecase.NewDashboard(testRepo(), usecase.NewDrillDown(),
			usecase.WithDispatcher(syncDispatch))

		gt.NoError(t, d.Load(ctx, types.KindTeam))
		view, err := d.View(ctx, types.KindCustomerType, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.State, types.StateIdle)
		gt.V(t, view.Aggregation).Nil()
	})

	t.Run("view while loading", func(t *testing.T) {
		q := &queueDispatcher{}
		d := usecase.NewDashboard(testRepo(), usecase.NewDrillDown(),
			usecase.WithDispatcher(q.dispatch))

		gt.NoError(t, d.Load(ctx, types.KindTeam))
		view, err := d.View(ctx, types.KindTeam, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.State, types.StateLoading)
		gt.V(t, view.Aggregation).Nil()

		q.runAll(ctx)
		view, err = d.View(ctx, types.KindTeam, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.State, types.StateReady)
	})

	t.Run("late result for a superseded load is discarded", func(t *testing.T) {
		q := &queueDispatcher{}
		d := usecase.NewDashboard(testRepo(), usecase.NewDrillDown(),
			usecase.WithDispatcher(q.dispatch))

		gt.NoError(t, d.Load(ctx, types.KindCustomerType))
		first := q.queue[0]
		q.queue = nil

		gt.NoError(t, d.Load(ctx, types.KindTeam))
		q.runAll(ctx)  // second load completes first
		_ = first(ctx) // stale first load arrives late

		view, err := d.View(ctx, types.KindTeam, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.State, types.StateReady)
		gt.Equal(t, view.Aggregation.Kind, types.KindTeam)

		// the stale customer-type result must not have taken over
		view, err = d.View(ctx, types.KindCustomerType, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.State, types.StateIdle)
	})

	t.Run("fetch failure surfaces as failed state without retry", func(t *testing.T) {
		repo := testRepo()
		repo.err = goerr.Wrap(model.ErrFetchFailed, "backend down")
		d := usecase.NewDashboard(repo, usecase.NewDrillDown(),
			usecase.WithDispatcher(syncDispatch))

		gt.NoError(t, d.Load(ctx, types.KindTeam))
		view, err := d.View(ctx, types.KindTeam, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.State, types.StateFailed)
		gt.S(t, view.Error).Contains("dataset load failed")
		gt.V(t, view.Aggregation).Nil()

		// recovery requires an explicit new load
		repo.err = nil
		gt.NoError(t, d.Load(ctx, types.KindTeam))
		view, err = d.View(ctx, types.KindTeam, viewDims)
		gt.NoError(t, err)
		gt.Equal(t, view.State, types.StateReady)
	})

	t.Run("invalid kind is rejected", func(t *testing.T) {
		d := usecase.NewDashboard(testRepo(), usecase.NewDrillDown(),
			usecase.WithDispatcher(syncDispatch))
		gt.Error(t, d.Load(ctx, types.DatasetKind("region")))
		_, err := d.View(ctx, types.DatasetKind("region"), viewDims)
		gt.Error(t, err)
	})

	t.Run("completed load feeds the drill-down snapshot", func(t *testing.T) {
		drill := usecase.NewDrillDown()
		d := usecase.NewDashboard(testRepo(), drill,
			usecase.WithDispatcher(syncDispatch))

		gt.NoError(t, d.Load(ctx, types.KindTeam))
		gt.NoError(t, drill.Select(ctx, model.DrillDownSelection{Category: "EMEA", Color: "#4F46E5"}))

		view := drill.Current(ctx)
		gt.V(t, view).NotNil()
		gt.A(t, view.Records).Length(1)
		gt.Equal(t, view.Records[0].Count, 4)
	})
}

func TestDashboardRawRows(t *testing.T) {
	ctx := context.Background()
	d := usecase.NewDashboard(testRepo(), usecase.NewDrillDown(),
		usecase.WithDispatcher(syncDispatch))

	rows, err := d.RawRows(ctx, types.KindCustomerType)
	gt.NoError(t, err)
	gt.A(t, rows).Length(2)

	_, err = d.RawRows(ctx, types.DatasetKind("bogus"))
	gt.Error(t, err)
}

func TestDashboardPreload(t *testing.T) {
	ctx := context.Background()

	t.Run("warms every kind without failing", func(t *testing.T) {
		d := usecase.NewDashboard(testRepo(), usecase.NewDrillDown(),
			usecase.WithDispatcher(syncDispatch))
		d.Preload(ctx) // kinds without data return empty row sets, not errors
	})

	t.Run("backend errors are tolerated", func(t *testing.T) {
		repo := testRepo()
		repo.err = goerr.Wrap(model.ErrFetchFailed, "backend down")
		d := usecase.NewDashboard(repo, usecase.NewDrillDown(),
			usecase.WithDispatcher(syncDispatch))
		d.Preload(ctx)
	})
}
