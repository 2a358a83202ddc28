package types

import (
	"regexp"

	"github.com/google/uuid"
)

// DatasetKind identifies which dimension a dataset is split by
type DatasetKind string

const (
	KindCustomerType DatasetKind = "customer-type"
	KindTeam         DatasetKind = "team"
	KindIndustry     DatasetKind = "industry"
	KindACVRange     DatasetKind = "acv-range"
)

// AllDatasetKinds lists every supported dataset kind
func AllDatasetKinds() []DatasetKind {
	return []DatasetKind{KindCustomerType, KindTeam, KindIndustry, KindACVRange}
}

// String returns the string representation
func (k DatasetKind) String() string {
	return string(k)
}

// IsValid reports whether the kind is one of the four supported datasets
func (k DatasetKind) IsValid() bool {
	switch k {
	case KindCustomerType, KindTeam, KindIndustry, KindACVRange:
		return true
	}
	return false
}

// ParseDatasetKind parses a URL slug into a DatasetKind
func ParseDatasetKind(s string) (DatasetKind, bool) {
	k := DatasetKind(s)
	return k, k.IsValid()
}

// FiscalQuarter is a YYYY-Q[1-4] period label. Zero-padded year-quarter
// strings sort chronologically under plain string comparison, which the
// aggregation pipeline relies on.
type FiscalQuarter string

var fiscalQuarterPattern = regexp.MustCompile(`^\d{4}-Q[1-4]$`)

// String returns the string representation
func (q FiscalQuarter) String() string {
	return string(q)
}

// IsValid reports whether the label matches YYYY-Q[1-4]
func (q FiscalQuarter) IsValid() bool {
	return fiscalQuarterPattern.MatchString(string(q))
}

// LoadID identifies one dataset load request. A completed fetch only
// applies when its LoadID is still the current one (last-request-wins).
type LoadID string

// String returns the string representation
func (id LoadID) String() string {
	return string(id)
}

// NewLoadID creates a new LoadID
func NewLoadID() LoadID {
	return LoadID(uuid.New().String())
}

// ColorToken is a hex color assigned to a category by ordering position
type ColorToken string

// String returns the string representation
func (c ColorToken) String() string {
	return string(c)
}

// DashboardState represents the load lifecycle of the selected dataset
type DashboardState string

const (
	StateIdle    DashboardState = "idle"
	StateLoading DashboardState = "loading"
	StateReady   DashboardState = "ready"
	StateFailed  DashboardState = "failed"
)

// String returns the string representation
func (s DashboardState) String() string {
	return string(s)
}
