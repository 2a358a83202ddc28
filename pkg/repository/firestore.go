package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/interfaces"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	datasetsCollection = "datasets"
	rowsCollection     = "rows"

	// fieldSeq orders rows by their position in the source export, so the
	// first-occurrence-wins duplicate rule sees the same order the file
	// backend would.
	fieldSeq = "seq"
)

// firestoreRow mirrors model.RawRow with Firestore field tags
type firestoreRow struct {
	Count               float64 `firestore:"count"`
	ACV                 float64 `firestore:"acv"`
	ClosedFiscalQuarter string  `firestore:"closed_fiscal_quarter"`
	CustType            string  `firestore:"Cust_Type"`
	Team                string  `firestore:"Team"`
	AcctIndustry        string  `firestore:"Acct_Industry"`
	ACVRange            string  `firestore:"ACV_Range"`
}

// Firestore serves datasets from a Firestore database: one document per raw
// row under datasets/<kind>/rows.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a Firestore-backed dataset repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.DatasetRepository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on bad credentials; an empty collection is fine
	_, err = client.Collection(datasetsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore dataset repository initialized",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{client: client}, nil
}

// Fetch reads all rows for one dataset kind in source order
func (f *Firestore) Fetch(ctx context.Context, kind types.DatasetKind) ([]model.RawRow, error) {
	if !kind.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownDatasetKind, "fetch rejected",
			goerr.V("kind", kind))
	}

	iter := f.client.Collection(datasetsCollection).
		Doc(kind.String()).
		Collection(rowsCollection).
		OrderBy(fieldSeq, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var rows []model.RawRow
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.ErrFetchFailed, "failed to iterate dataset rows",
				goerr.V("kind", kind),
				goerr.V("cause", err.Error()),
			)
		}

		var row firestoreRow
		if err := doc.DataTo(&row); err != nil {
			return nil, goerr.Wrap(model.ErrFetchFailed, "failed to decode dataset row",
				goerr.V("kind", kind),
				goerr.V("doc", doc.Ref.ID),
				goerr.V("cause", err.Error()),
			)
		}
		rows = append(rows, model.RawRow{
			Count:               model.Number(row.Count),
			ACV:                 model.Number(row.ACV),
			ClosedFiscalQuarter: row.ClosedFiscalQuarter,
			CustType:            row.CustType,
			Team:                row.Team,
			AcctIndustry:        row.AcctIndustry,
			ACVRange:            row.ACVRange,
		})
	}

	return rows, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}
