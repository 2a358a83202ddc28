package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/interfaces"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// File serves datasets from static JSON files: one <kind>.json per dataset
// kind, each holding an array of raw rows. Files are read on every fetch;
// they are small and never mutated by this service.
type File struct {
	dir string
}

// NewFile creates a file-backed dataset repository over a directory
func NewFile(dir string) (interfaces.DatasetRepository, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "data directory not accessible",
			goerr.V("dir", dir))
	}
	if !info.IsDir() {
		return nil, goerr.New("data path is not a directory", goerr.V("dir", dir))
	}

	return &File{dir: dir}, nil
}

// Fetch reads and decodes the JSON file for one dataset kind
func (f *File) Fetch(ctx context.Context, kind types.DatasetKind) ([]model.RawRow, error) {
	if !kind.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownDatasetKind, "fetch rejected",
			goerr.V("kind", kind))
	}

	path := filepath.Join(f.dir, kind.String()+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(model.ErrFetchFailed, "failed to read dataset file",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}

	var rows []model.RawRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, goerr.Wrap(model.ErrFetchFailed, "failed to parse dataset file",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}

	return rows, nil
}

// Close is a no-op for the file backend
func (f *File) Close() error {
	return nil
}
