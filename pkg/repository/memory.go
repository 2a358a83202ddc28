package repository

import (
	"context"
	"sync"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/interfaces"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory serves datasets from seeded in-memory rows. Used in tests and as
// the fallback backend when neither a data directory nor Firestore is
// configured.
type Memory struct {
	mu   sync.RWMutex
	rows map[types.DatasetKind][]model.RawRow
}

// NewMemory creates a memory repository over seeded rows
func NewMemory(rows map[types.DatasetKind][]model.RawRow) interfaces.DatasetRepository {
	if rows == nil {
		rows = make(map[types.DatasetKind][]model.RawRow)
	}
	return &Memory{rows: rows}
}

// Fetch returns a copy of the seeded rows in seed order
func (m *Memory) Fetch(ctx context.Context, kind types.DatasetKind) ([]model.RawRow, error) {
	if !kind.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownDatasetKind, "fetch rejected",
			goerr.V("kind", kind))
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.RawRow, len(m.rows[kind]))
	copy(out, m.rows[kind])
	return out, nil
}

// Close is a no-op for the memory backend
func (m *Memory) Close() error {
	return nil
}

// SampleRows returns a small seeded dataset for local development
func SampleRows() map[types.DatasetKind][]model.RawRow {
	return map[types.DatasetKind][]model.RawRow{
		types.KindCustomerType: {
			{Count: 23, ACV: 647821.48, ClosedFiscalQuarter: "2024-Q1", CustType: "Existing Customer"},
			{Count: 6, ACV: 224643.30, ClosedFiscalQuarter: "2024-Q1", CustType: "New Customer"},
			{Count: 19, ACV: 531042.99, ClosedFiscalQuarter: "2024-Q2", CustType: "Existing Customer"},
			{Count: 11, ACV: 298716.40, ClosedFiscalQuarter: "2024-Q2", CustType: "New Customer"},
		},
		types.KindTeam: {
			{Count: 12, ACV: 310450.00, ClosedFiscalQuarter: "2024-Q1", Team: "Enterprise East"},
			{Count: 9, ACV: 287300.75, ClosedFiscalQuarter: "2024-Q1", Team: "Enterprise West"},
			{Count: 14, ACV: 402188.20, ClosedFiscalQuarter: "2024-Q2", Team: "Enterprise East"},
		},
		types.KindIndustry: {
			{Count: 8, ACV: 215000.00, ClosedFiscalQuarter: "2024-Q1", AcctIndustry: "Manufacturing"},
			{Count: 5, ACV: 143750.30, ClosedFiscalQuarter: "2024-Q1", AcctIndustry: "Transportation"},
			{Count: 7, ACV: 199420.00, ClosedFiscalQuarter: "2024-Q2", AcctIndustry: "Manufacturing"},
		},
		types.KindACVRange: {
			{Count: 31, ACV: 128340.50, ClosedFiscalQuarter: "2024-Q1", ACVRange: "$0-$10K"},
			{Count: 12, ACV: 301200.00, ClosedFiscalQuarter: "2024-Q1", ACVRange: "$10K-$50K"},
			{Count: 4, ACV: 388012.00, ClosedFiscalQuarter: "2024-Q1", ACVRange: "$50K-$100K"},
		},
	}
}
