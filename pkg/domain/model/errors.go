package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrFetchFailed        = goerr.New("dataset fetch failed")
	ErrUnknownDatasetKind = goerr.New("unknown dataset kind")
)
