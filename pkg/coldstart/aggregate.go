package coldstart

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/younsl/initcost/internal/models"
)

// Aggregate orders records by monthly cost descending and sums the total.
// Equal costs keep discovery order. The input slice is not modified.
func Aggregate(records []models.FunctionColdStartRecord) ([]models.FunctionColdStartRecord, decimal.Decimal) {
	sorted := make([]models.FunctionColdStartRecord, len(records))
	copy(sorted, records)

	// Workers may finish out of order, so restore discovery order before the stable cost sort
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MonthlyCostUSD.GreaterThan(sorted[j].MonthlyCostUSD)
	})

	total := decimal.Zero
	for _, r := range sorted {
		total = total.Add(r.MonthlyCostUSD)
	}

	return sorted, total
}
