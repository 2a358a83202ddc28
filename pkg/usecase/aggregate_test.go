package usecase_test

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/candlelight-lab/quarterdeck/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{Quarter: "2024-Q1", Category: "Existing Customer", Count: 23, ACV: 647821.48},
		{Quarter: "2024-Q1", Category: "New Customer", Count: 6, ACV: 224643.30},
		{Quarter: "2024-Q2", Category: "Existing Customer", Count: 18, ACV: 512398.11},
		{Quarter: "2024-Q2", Category: "New Customer", Count: 9, ACV: 301220.50},
		{Quarter: "2023-Q4", Category: "Existing Customer", Count: 30, ACV: 701003.00},
	}
}

func TestAggregateTotals(t *testing.T) {
	agg := usecase.Aggregate(sampleRecords(), types.KindCustomerType)

	t.Run("cells sum to grand total", func(t *testing.T) {
		var acv float64
		var count int
		for _, cell := range agg.Cells {
			acv += cell.ACV
			count += cell.Count
		}
		gt.Equal(t, count, agg.GrandTotal.Count)
		gt.B(t, math.Abs(acv-agg.GrandTotal.ACV) < 1e-6).True()
	})

	t.Run("cells sum to each quarter total", func(t *testing.T) {
		for _, qt := range agg.QuarterTotals {
			var acv float64
			var count int
			for _, cell := range agg.Cells {
				if cell.Quarter == qt.Quarter {
					acv += cell.ACV
					count += cell.Count
				}
			}
			gt.Equal(t, count, qt.Count)
			gt.B(t, math.Abs(acv-qt.ACV) < 1e-6).True()
		}
	})

	t.Run("quarters ascend", func(t *testing.T) {
		gt.A(t, agg.Quarters).Length(3)
		gt.Equal(t, agg.Quarters[0], types.FiscalQuarter("2023-Q4"))
		gt.Equal(t, agg.Quarters[2], types.FiscalQuarter("2024-Q2"))
	})

	t.Run("end-to-end 2024-Q1 scenario", func(t *testing.T) {
		var qt model.QuarterTotal
		for _, q := range agg.QuarterTotals {
			if q.Quarter == "2024-Q1" {
				qt = q
			}
		}
		gt.Equal(t, qt.Count, 29)
		gt.B(t, math.Abs(qt.ACV-872464.78) < 1e-6).True()

		var existing model.CategoryTotal
		for _, e := range agg.CategoryTotals.Entries {
			if e.Category == "Existing Customer" {
				existing = e
			}
		}
		// share over all three quarters, not just Q1
		gt.B(t, existing.Share > 0).True()

		q1 := usecase.Aggregate(sampleRecords()[:2], types.KindCustomerType)
		gt.B(t, math.Abs(q1.CategoryTotals.Entries[0].Share-0.7426) < 1e-3).True()
	})
}

func TestAggregateShares(t *testing.T) {
	t.Run("shares sum to one when grand total positive", func(t *testing.T) {
		agg := usecase.Aggregate(sampleRecords(), types.KindCustomerType)
		sum := 0.0
		for _, e := range agg.CategoryTotals.Entries {
			sum += e.Share
		}
		gt.B(t, math.Abs(sum-1.0) < 1e-9).True()
	})

	t.Run("all shares zero when grand total is zero", func(t *testing.T) {
		records := []model.Record{
			{Quarter: "2024-Q1", Category: "Alpha", Count: 0, ACV: 0},
			{Quarter: "2024-Q1", Category: "Beta", Count: 0, ACV: 0},
		}
		agg := usecase.Aggregate(records, types.KindTeam)
		for _, e := range agg.CategoryTotals.Entries {
			gt.Equal(t, e.Share, 0.0)
		}
	})
}

func TestAggregateZeroFill(t *testing.T) {
	t.Run("customer type universe is always two entries", func(t *testing.T) {
		records := []model.Record{
			{Quarter: "2024-Q1", Category: "New Customer", Count: 5, ACV: 1000},
		}
		agg := usecase.Aggregate(records, types.KindCustomerType)

		gt.A(t, agg.Categories).Length(2)
		gt.Equal(t, agg.Categories[0], "Existing Customer")
		gt.Equal(t, agg.Categories[1], "New Customer")

		var existing model.AggregatedCell
		found := false
		for _, cell := range agg.Cells {
			if cell.Quarter == "2024-Q1" && cell.Category == "Existing Customer" {
				existing = cell
				found = true
			}
		}
		gt.B(t, found).True()
		gt.Equal(t, existing.Count, 0)
		gt.Equal(t, existing.ACV, 0.0)
	})

	t.Run("cross product fills missing quarters", func(t *testing.T) {
		records := []model.Record{
			{Quarter: "2024-Q1", Category: "EMEA", Count: 1, ACV: 10},
			{Quarter: "2024-Q2", Category: "APAC", Count: 2, ACV: 20},
		}
		agg := usecase.Aggregate(records, types.KindTeam)
		gt.A(t, agg.Cells).Length(4)
	})
}

func TestAggregateDuplicates(t *testing.T) {
	records := []model.Record{
		{Quarter: "2024-Q1", Category: "EMEA", Count: 7, ACV: 100},
		{Quarter: "2024-Q1", Category: "EMEA", Count: 99, ACV: 9999},
	}
	agg := usecase.Aggregate(records, types.KindTeam)

	// first occurrence wins, the later duplicate is ignored, never summed
	gt.A(t, agg.Cells).Length(1)
	gt.Equal(t, agg.Cells[0].Count, 7)
	gt.Equal(t, agg.Cells[0].ACV, 100.0)
	gt.Equal(t, agg.GrandTotal.Count, 7)
}

func TestAggregateShuffleIdempotence(t *testing.T) {
	base := usecase.Aggregate(sampleRecords(), types.KindCustomerType)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := sampleRecords()
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		agg := usecase.Aggregate(shuffled, types.KindCustomerType)
		gt.B(t, reflect.DeepEqual(agg, base)).True()
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	t.Run("no records", func(t *testing.T) {
		agg := usecase.Aggregate(nil, types.KindTeam)
		gt.A(t, agg.Quarters).Length(0)
		gt.A(t, agg.Categories).Length(0)
		gt.A(t, agg.Cells).Length(0)
		gt.Equal(t, agg.GrandTotal, model.GrandTotal{})
	})

	t.Run("customer type keeps fixed universe without quarters", func(t *testing.T) {
		agg := usecase.Aggregate(nil, types.KindCustomerType)
		gt.A(t, agg.Categories).Length(2)
		gt.A(t, agg.Cells).Length(0)
	})
}

func TestAggregatePivot(t *testing.T) {
	agg := usecase.Aggregate(sampleRecords(), types.KindCustomerType)
	pivot := agg.Pivot

	t.Run("shape", func(t *testing.T) {
		gt.A(t, pivot.Rows).Length(2)
		gt.A(t, pivot.Rows[0].Cells).Length(3)
		gt.A(t, pivot.TotalRow.Cells).Length(3)
	})

	t.Run("row order matches category order", func(t *testing.T) {
		for i, row := range pivot.Rows {
			gt.Equal(t, row.Category, agg.Categories[i])
		}
	})

	t.Run("total row is 100 percent in every column", func(t *testing.T) {
		for _, cell := range pivot.TotalRow.Cells {
			gt.Equal(t, cell.PctOfQuarterACV, 100.0)
		}
		gt.Equal(t, pivot.TotalRow.Total.PctOfQuarterACV, 100.0)
	})

	t.Run("column percentages sum to 100 per quarter", func(t *testing.T) {
		for j := range pivot.Quarters {
			sum := 0.0
			for _, row := range pivot.Rows {
				sum += row.Cells[j].PctOfQuarterACV
			}
			gt.B(t, math.Abs(sum-100.0) < 1e-9).True()
		}
	})

	t.Run("zero-acv quarter yields zero percent, not NaN", func(t *testing.T) {
		records := []model.Record{
			{Quarter: "2024-Q1", Category: "EMEA", Count: 3, ACV: 0},
		}
		p := usecase.Aggregate(records, types.KindTeam).Pivot
		gt.Equal(t, p.Rows[0].Cells[0].PctOfQuarterACV, 0.0)
		gt.Equal(t, p.TotalRow.Cells[0].PctOfQuarterACV, 0.0)
	})
}

func TestAggregateOrderingConsistency(t *testing.T) {
	records := []model.Record{
		{Quarter: "2024-Q1", Category: "Retail", Count: 1, ACV: 10},
		{Quarter: "2024-Q1", Category: "Banking", Count: 2, ACV: 20},
		{Quarter: "2024-Q2", Category: "Aerospace", Count: 3, ACV: 30},
	}
	agg := usecase.Aggregate(records, types.KindIndustry)

	// same category, same index, across time series, donut input, and pivot
	gt.Equal(t, agg.TimeSeries.Categories, agg.Categories)
	for i, e := range agg.CategoryTotals.Entries {
		gt.Equal(t, e.Category, agg.Categories[i])
	}
	for i, row := range agg.Pivot.Rows {
		gt.Equal(t, row.Category, agg.Categories[i])
	}
}
