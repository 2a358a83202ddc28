package usecase_test

import (
	"context"
	"testing"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/candlelight-lab/quarterdeck/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestNormalize(t *testing.T) {
	t.Run("maps the kind-specific field to category", func(t *testing.T) {
		row := model.RawRow{
			Count:               3,
			ACV:                 1500.5,
			ClosedFiscalQuarter: "2024-Q1",
			CustType:            "New Customer",
			Team:                "ignored for this kind",
		}

		rec, ok := usecase.Normalize(row, types.KindCustomerType)
		gt.B(t, ok).True()
		gt.Equal(t, rec.Quarter, types.FiscalQuarter("2024-Q1"))
		gt.Equal(t, rec.Category, "New Customer")
		gt.Equal(t, rec.Count, 3)
		gt.Equal(t, rec.ACV, 1500.5)
	})

	t.Run("missing category becomes empty bucket, not a drop", func(t *testing.T) {
		row := model.RawRow{Count: 2, ACV: 100, ClosedFiscalQuarter: "2024-Q2"}
		rec, ok := usecase.Normalize(row, types.KindTeam)
		gt.B(t, ok).True()
		gt.Equal(t, rec.Category, "")
	})

	t.Run("missing quarter drops the row", func(t *testing.T) {
		row := model.RawRow{Count: 2, ACV: 100, Team: "EMEA"}
		_, ok := usecase.Normalize(row, types.KindTeam)
		gt.B(t, ok).False()
	})

	t.Run("negative values pass through unclamped", func(t *testing.T) {
		row := model.RawRow{Count: -4, ACV: -250.75, ClosedFiscalQuarter: "2024-Q3", AcctIndustry: "Retail"}
		rec, ok := usecase.Normalize(row, types.KindIndustry)
		gt.B(t, ok).True()
		gt.Equal(t, rec.Count, -4)
		gt.Equal(t, rec.ACV, -250.75)
	})
}

func TestNormalizeAll(t *testing.T) {
	rows := []model.RawRow{
		{Count: 1, ACV: 10, ClosedFiscalQuarter: "2024-Q1", ACVRange: "$0-$10K"},
		{Count: 2, ACV: 20, ACVRange: "$10K-$50K"}, // no quarter, dropped
		{Count: 3, ACV: 30, ClosedFiscalQuarter: "2024-Q2", ACVRange: "$50K-$100K"},
	}

	records, dropped := usecase.NormalizeAll(context.Background(), rows, types.KindACVRange)
	gt.A(t, records).Length(2)
	gt.Equal(t, dropped, 1)
	gt.Equal(t, records[0].Category, "$0-$10K")
	gt.Equal(t, records[1].Category, "$50K-$100K")
}
