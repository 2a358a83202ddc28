package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
)

// Number is a float64 that tolerates sloppy JSON input. Strings holding a
// numeric value decode to that value; anything else decodes to 0 instead of
// failing the whole row.
type Number float64

// UnmarshalJSON implements lenient numeric decoding
func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Number(f)
			return nil
		}
	}

	*n = 0
	return nil
}

// Float returns the float64 representation
func (n Number) Float() float64 {
	return float64(n)
}

// RawRow is one row as returned by a dataset backend, before normalization.
// Exactly one of the dimension fields is populated depending on the dataset
// kind; the others stay empty.
type RawRow struct {
	Count               Number `json:"count"`
	ACV                 Number `json:"acv"`
	ClosedFiscalQuarter string `json:"closed_fiscal_quarter"`

	CustType     string `json:"Cust_Type,omitempty"`
	Team         string `json:"Team,omitempty"`
	AcctIndustry string `json:"Acct_Industry,omitempty"`
	ACVRange     string `json:"ACV_Range,omitempty"`
}

// Record is a normalized input row. Category may be empty (absent source
// values still participate in aggregation under the empty bucket); negative
// numeric values pass through unclamped.
type Record struct {
	Quarter  types.FiscalQuarter `json:"quarter"`
	Category string              `json:"category"`
	Count    int                 `json:"count"`
	ACV      float64             `json:"acv"`
}
