package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/interfaces"
	"github.com/candlelight-lab/quarterdeck/pkg/repository"
)

// Data holds dataset backend configuration. Backends are tried in order:
// Firestore when a project is set, the local JSON directory when set, and a
// seeded in-memory sample otherwise.
type Data struct {
	Dir               string
	FirestoreProject  string
	FirestoreDatabase string
}

// Flags returns CLI flags for Data configuration
func (d *Data) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory holding <kind>.json dataset files",
			Category:    "Data",
			Sources:     cli.EnvVars("QUARTERDECK_DATA_DIR"),
			Destination: &d.Dir,
		},
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for the Firestore dataset backend",
			Category:    "Data",
			Sources:     cli.EnvVars("QUARTERDECK_FIRESTORE_PROJECT"),
			Destination: &d.FirestoreProject,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Data",
			Value:       "(default)",
			Sources:     cli.EnvVars("QUARTERDECK_FIRESTORE_DATABASE"),
			Destination: &d.FirestoreDatabase,
		},
	}
}

// Configure creates the dataset repository for the active backend
func (d *Data) Configure(ctx context.Context) (interfaces.DatasetRepository, error) {
	logger := ctxlog.From(ctx)

	if d.FirestoreProject != "" {
		repo, err := repository.NewFirestore(ctx, d.FirestoreProject, d.FirestoreDatabase)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore backend",
				goerr.V("project", d.FirestoreProject),
				goerr.V("database", d.FirestoreDatabase),
			)
		}
		return repo, nil
	}

	if d.Dir != "" {
		repo, err := repository.NewFile(d.Dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init file backend",
				goerr.V("dir", d.Dir))
		}
		return repo, nil
	}

	logger.Warn("No dataset backend configured, serving built-in sample data")
	return repository.NewMemory(repository.SampleRows()), nil
}

// LogValue returns structured log value
func (d Data) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", d.Dir),
		slog.String("firestoreProject", d.FirestoreProject),
		slog.String("firestoreDatabase", d.FirestoreDatabase),
	)
}
