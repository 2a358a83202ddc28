package usecase

import (
	"sort"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
)

// pct returns a*100/b, or 0 when b is 0. Zero denominators are defined as 0
// everywhere in the pipeline; no NaN ever leaves the aggregator.
func pct(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b * 100
}

// ratio returns a/b, or 0 when b is 0
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Aggregate turns a flat record list into every derived view the dashboard
// renders. It is a pure function of (records, kind): no side effects, no
// errors, and empty input yields empty universes with a zero grand total.
//
// Duplicate (quarter, category) rows are resolved first-occurrence-wins;
// later duplicates are ignored, never summed.
func Aggregate(records []model.Record, kind types.DatasetKind) *model.Aggregation {
	// Index records by quarter then category, collecting both universes in
	// input order as we go.
	index := make(map[types.FiscalQuarter]map[string]model.Record)
	var quarters []types.FiscalQuarter
	var observed []string
	seenCat := make(map[string]bool)

	for _, rec := range records {
		byCat, ok := index[rec.Quarter]
		if !ok {
			byCat = make(map[string]model.Record)
			index[rec.Quarter] = byCat
			quarters = append(quarters, rec.Quarter)
		}
		if _, dup := byCat[rec.Category]; !dup {
			byCat[rec.Category] = rec
		}
		if !seenCat[rec.Category] {
			seenCat[rec.Category] = true
			observed = append(observed, rec.Category)
		}
	}

	// Quarter labels are zero-padded, so lexical sort is chronological
	sort.Slice(quarters, func(i, j int) bool { return quarters[i] < quarters[j] })

	categories := OrderCategories(CategoryUniverse(observed, kind), kind)

	agg := &model.Aggregation{
		Kind:       kind,
		Quarters:   quarters,
		Categories: categories,
	}

	// Zero-fill join over the full quarters x categories cross product
	catACV := make(map[string]float64, len(categories))
	catCount := make(map[string]int, len(categories))
	for _, q := range quarters {
		qt := model.QuarterTotal{Quarter: q}
		for _, c := range categories {
			cell := model.AggregatedCell{Quarter: q, Category: c}
			if rec, ok := index[q][c]; ok {
				cell.Count = rec.Count
				cell.ACV = rec.ACV
			}
			agg.Cells = append(agg.Cells, cell)
			qt.Count += cell.Count
			qt.ACV += cell.ACV
			catCount[c] += cell.Count
			catACV[c] += cell.ACV
		}
		agg.QuarterTotals = append(agg.QuarterTotals, qt)
		agg.GrandTotal.Count += qt.Count
		agg.GrandTotal.ACV += qt.ACV
	}

	agg.TimeSeries = buildTimeSeries(agg)
	agg.CategoryTotals = buildCategoryTotals(agg, catACV)
	agg.Pivot = buildPivot(agg, catACV, catCount)

	return agg
}

// buildTimeSeries lays the cells out as one stacked vector per quarter, in
// the fixed category order.
func buildTimeSeries(agg *model.Aggregation) model.TimeSeries {
	ts := model.TimeSeries{Categories: agg.Categories}

	for i, q := range agg.Quarters {
		row := model.TimeSeriesRow{
			Quarter: q,
			Values:  make([]float64, len(agg.Categories)),
			Total:   agg.QuarterTotals[i].ACV,
		}
		base := i * len(agg.Categories)
		for j := range agg.Categories {
			row.Values[j] = agg.Cells[base+j].ACV
		}
		ts.Rows = append(ts.Rows, row)
	}

	return ts
}

func buildCategoryTotals(agg *model.Aggregation, catACV map[string]float64) model.CategoryTotals {
	var ct model.CategoryTotals
	for _, c := range agg.Categories {
		ct.Entries = append(ct.Entries, model.CategoryTotal{
			Category: c,
			ACV:      catACV[c],
			Share:    ratio(catACV[c], agg.GrandTotal.ACV),
		})
	}
	return ct
}

func buildPivot(agg *model.Aggregation, catACV map[string]float64, catCount map[string]int) model.PivotTable {
	pivot := model.PivotTable{Quarters: agg.Quarters}

	for i, c := range agg.Categories {
		row := model.PivotRow{Category: c}
		for j := range agg.Quarters {
			cell := agg.Cells[j*len(agg.Categories)+i]
			row.Cells = append(row.Cells, model.PivotCell{
				Count:           cell.Count,
				ACV:             cell.ACV,
				PctOfQuarterACV: pct(cell.ACV, agg.QuarterTotals[j].ACV),
			})
		}
		row.Total = model.PivotCell{
			Count:           catCount[c],
			ACV:             catACV[c],
			PctOfQuarterACV: pct(catACV[c], agg.GrandTotal.ACV),
		}
		pivot.Rows = append(pivot.Rows, row)
	}

	total := model.PivotRow{Category: "Total"}
	for _, qt := range agg.QuarterTotals {
		total.Cells = append(total.Cells, model.PivotCell{
			Count:           qt.Count,
			ACV:             qt.ACV,
			PctOfQuarterACV: pct(qt.ACV, qt.ACV),
		})
	}
	total.Total = model.PivotCell{
		Count:           agg.GrandTotal.Count,
		ACV:             agg.GrandTotal.ACV,
		PctOfQuarterACV: pct(agg.GrandTotal.ACV, agg.GrandTotal.ACV),
	}
	pivot.TotalRow = total

	return pivot
}
