package usecase

import (
	"context"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

// categoryOf extracts the dataset-specific dimension value from a raw row.
// An explicit mapping per kind, so adding a dataset means adding a case here
// rather than reaching into row fields by name.
func categoryOf(row model.RawRow, kind types.DatasetKind) string {
	switch kind {
	case types.KindCustomerType:
		return row.CustType
	case types.KindTeam:
		return row.Team
	case types.KindIndustry:
		return row.AcctIndustry
	case types.KindACVRange:
		return row.ACVRange
	}
	return ""
}

// Normalize validates one raw row into a canonical record. The second return
// value is false when the row must be dropped (missing fiscal quarter). A
// missing category field is NOT a drop: the row lands in the empty-string
// bucket and still counts toward totals.
func Normalize(row model.RawRow, kind types.DatasetKind) (model.Record, bool) {
	if row.ClosedFiscalQuarter == "" {
		return model.Record{}, false
	}

	return model.Record{
		Quarter:  types.FiscalQuarter(row.ClosedFiscalQuarter),
		Category: categoryOf(row, kind),
		Count:    int(row.Count.Float()),
		ACV:      row.ACV.Float(),
	}, true
}

// NormalizeAll normalizes every row, returning the kept records and the
// number of dropped rows. Drops are logged for observability but never
// surface to the API consumer.
func NormalizeAll(ctx context.Context, rows []model.RawRow, kind types.DatasetKind) ([]model.Record, int) {
	records := make([]model.Record, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		rec, ok := Normalize(row, kind)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		ctxlog.From(ctx).Debug("Dropped rows during normalization",
			"kind", kind,
			"dropped", dropped,
			"kept", len(records),
		)
	}

	return records, dropped
}
