package usecase

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
)

// Palette is the color cycle for category coloring. When there are more
// categories than colors, assignment wraps around.
type Palette []types.ColorToken

// DefaultPalette returns the built-in color cycle
func DefaultPalette() Palette {
	return Palette{
		"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
		"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
	}
}

// Color returns the color for the Nth category in ordering position
func (p Palette) Color(n int) types.ColorToken {
	if len(p) == 0 {
		return ""
	}
	return p[n%len(p)]
}

// customerTypeUniverse is fixed: both entries appear in every derived view
// even when the data contains only one of them.
var customerTypeUniverse = []string{"Existing Customer", "New Customer"}

// CategoryUniverse resolves the full category set for a dataset. For
// customer type the universe is fixed regardless of the data; for the other
// kinds it is the distinct observed values, in first-appearance order.
func CategoryUniverse(observed []string, kind types.DatasetKind) []string {
	if kind == types.KindCustomerType {
		out := make([]string, len(customerTypeUniverse))
		copy(out, customerTypeUniverse)
		return out
	}

	out := make([]string, len(observed))
	copy(out, observed)
	return out
}

var acvRangeToken = regexp.MustCompile(`^\$(\d+)`)

// acvRangeRank parses the leading dollar amount out of a range label, so
// "$10K-$50K" ranks 10 and "$0-$10K" ranks 0. Labels without a parseable
// token rank as 0.
func acvRangeRank(label string) int {
	m := acvRangeToken.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// OrderCategories returns the total category order used consistently across
// stacking, donut slices, legend, and pivot rows. The same category must end
// up at the same index everywhere or bar colors will not match the legend.
func OrderCategories(categories []string, kind types.DatasetKind) []string {
	out := make([]string, len(categories))
	copy(out, categories)

	switch kind {
	case types.KindCustomerType:
		// universe is already in fixed order
	case types.KindACVRange:
		// ascending by dollar token; stable, so ties keep input order
		sort.SliceStable(out, func(i, j int) bool {
			return acvRangeRank(out[i]) < acvRangeRank(out[j])
		})
	default:
		sort.Strings(out)
	}

	return out
}
