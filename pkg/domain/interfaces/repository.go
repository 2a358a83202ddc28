package interfaces

import (
	"context"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
)

// DatasetRepository defines the interface for dataset backends. Backends are
// read-only; rows come back in raw (pre-normalization) form and in source
// order, which matters for the first-occurrence-wins duplicate rule.
type DatasetRepository interface {
	// Fetch returns all raw rows for one dataset kind
	Fetch(ctx context.Context, kind types.DatasetKind) ([]model.RawRow, error)

	// Close closes the backend connection
	Close() error
}
