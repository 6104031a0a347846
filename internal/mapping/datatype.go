package mapping

import "strings"

// DataType labels a dataset as row-per-sale, pre-aggregated, or unclear.
type DataType string

const (
	// Transaction datasets have one row per sale.
	Transaction DataType = "transaction"
	// Summary datasets have one row per pre-aggregated period (daily totals
	// and the like); per-transaction analyses are not applicable to them.
	Summary DataType = "summary"
	// Mixed means the column names gave no clear signal either way.
	Mixed DataType = "mixed"
)

var (
	summaryIndicators     = []string{"total", "sum", "average", "count", "daily", "weekly", "monthly"}
	transactionIndicators = []string{"order_id", "transaction_id", "timestamp", "receipt"}
)

// DetectDataType counts how many column names contain summary indicators
// versus transaction indicators; the strictly greater count wins, ties
// (including zero-zero) are Mixed. Deterministic for a given column set.
func DetectDataType(columns []string) DataType {
	var summaryScore, transactionScore int
	for _, c := range columns {
		name := strings.ToLower(strings.TrimSpace(c))
		if containsAny(name, summaryIndicators) {
			summaryScore++
		}
		if containsAny(name, transactionIndicators) {
			transactionScore++
		}
	}
	switch {
	case summaryScore > transactionScore:
		return Summary
	case transactionScore > summaryScore:
		return Transaction
	default:
		return Mixed
	}
}
