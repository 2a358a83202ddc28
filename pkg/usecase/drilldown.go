package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/interfaces"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DrillDown holds the single detail-inspection selection. Two states:
// closed, or open on one (category, color) pair. A new selection overwrites
// the previous one; there is no queue.
type DrillDown struct {
	mu        sync.RWMutex
	selection *model.DrillDownSelection
	records   []model.Record
}

// NewDrillDown creates a closed drill-down controller
func NewDrillDown() *DrillDown {
	return &DrillDown{}
}

var _ interfaces.DrillDown = (*DrillDown)(nil)

// SetRecords replaces the record snapshot the controller filters from. The
// dashboard calls this when a load completes; a stale open selection over a
// replaced dataset simply filters the new snapshot.
func (d *DrillDown) SetRecords(records []model.Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = records
}

// Select opens the drill-down for a category, replacing any prior selection
func (d *DrillDown) Select(ctx context.Context, selection model.DrillDownSelection) error {
	if selection.Category == "" && selection.Color == "" {
		return goerr.New("empty drill-down selection")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = &selection

	ctxlog.From(ctx).Debug("Drill-down opened",
		"category", selection.Category,
		"color", selection.Color,
	)
	return nil
}

// Dismiss closes the drill-down
func (d *DrillDown) Dismiss(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = nil
}

// Current returns the open view with the selected category's records across
// all quarters, sorted by quarter ascending. Nil while closed.
func (d *DrillDown) Current(ctx context.Context) *model.DrillDownView {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.selection == nil {
		return nil
	}

	view := &model.DrillDownView{Selection: *d.selection}
	for _, rec := range d.records {
		if rec.Category == view.Selection.Category {
			view.Records = append(view.Records, rec)
		}
	}
	sort.SliceStable(view.Records, func(i, j int) bool {
		return view.Records[i].Quarter < view.Records[j].Quarter
	})

	return view
}
