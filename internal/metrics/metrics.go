// Package metrics computes descriptive analytics over a mapped dataset:
// revenue summaries, temporal breakdowns, per-item and per-order
// aggregations, data quality scoring, and trend classification.
//
// Every operation degrades gracefully: when the fields it needs are not
// mapped it returns a result whose Status says so, never an error. Callers
// branch on Status, not on error values.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/poslens/poslens-cli/internal/dataset"
	"github.com/poslens/poslens-cli/internal/mapping"
)

// Status distinguishes computed, skipped, and failed analysis sections.
// A skipped section is a normal outcome (insufficient columns or not
// applicable to the data type); an errored section carries a diagnostic.
type Status struct {
	Skipped  string `json:"skipped,omitempty"`
	SkipKind string `json:"skip_kind,omitempty"`
	Error    string `json:"error,omitempty"`
}

// OK reports whether the section was actually computed.
func (s Status) OK() bool { return s.Skipped == "" && s.Error == "" }

// SkipMissingColumns marks a section skipped because required mapped fields
// are absent.
func SkipMissingColumns(what string) Status {
	return Status{Skipped: "missing required columns for " + what, SkipKind: "missing_columns"}
}

// SkipNotApplicable marks a section skipped because the analysis does not
// apply to the detected data type.
func SkipNotApplicable(what string) Status {
	return Status{Skipped: what + " not applicable for summary data", SkipKind: "summary_data"}
}

// ErrorStatus marks a section that failed mid-computation.
func ErrorStatus(op string, cause any) Status {
	return Status{Error: fmt.Sprintf("%s failed: %v", op, cause)}
}

// BasicResult summarizes the price column across all rows.
type BasicResult struct {
	Status
	TotalRevenue     float64 `json:"total_revenue"`
	TransactionCount int     `json:"transaction_count"`
	Average          float64 `json:"average_transaction"`
	Median           float64 `json:"median_transaction"`
	Max              float64 `json:"max_transaction"`
	Min              float64 `json:"min_transaction"`
	Std              float64 `json:"std_transaction"`
}

// BasicMetrics computes revenue summaries over the mapped price column.
// Cells are cleaned of currency punctuation before parsing; unparseable
// values are excluded from aggregation rather than treated as zero.
func BasicMetrics(ds *dataset.Dataset, m mapping.Mapping) BasicResult {
	priceCol, ok := m.Column(mapping.FieldPrice)
	if !ok || !ds.HasColumn(priceCol) {
		return BasicResult{Status: SkipMissingColumns("basic metrics")}
	}
	vals := ds.CurrencyColumn(priceCol)
	lo, hi := minMax(vals)
	return BasicResult{
		TotalRevenue:     sum(vals),
		TransactionCount: ds.NumRows(),
		Average:          mean(vals),
		Median:           median(vals),
		Max:              hi,
		Min:              lo,
		Std:              sampleStd(vals),
	}
}

// BucketStats aggregates prices within one time bucket.
type BucketStats struct {
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// DateRange bounds the parseable dates of a dataset.
type DateRange struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	TotalDays int    `json:"total_days"`
}

// TemporalResult breaks revenue down by hour of day, day of week, and
// calendar date.
type TemporalResult struct {
	Status
	DateRange     DateRange              `json:"date_range"`
	HourlySales   map[int]BucketStats    `json:"hourly_sales"`
	WeekdaySales  map[string]BucketStats `json:"weekday_sales"`
	DailyTotals   map[string]float64     `json:"daily_totals"`
	DailyAverage  float64                `json:"daily_average"`
	PeakHour      int                    `json:"peak_hour"`
	PeakHourSales float64                `json:"peak_hour_sales"`
	BestDay       string                 `json:"best_day"`
	BestDaySales  float64                `json:"best_day_sales"`
	TotalRevenue  float64                `json:"total_revenue"`
}

var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TemporalPatterns buckets revenue by time. Rows whose date or price fails
// to parse are dropped. Tie-break for peak buckets is deterministic: the
// smallest hour, the earliest weekday (Monday first), the lexicographically
// first date.
func TemporalPatterns(ds *dataset.Dataset, m mapping.Mapping) TemporalResult {
	dateCol, okDate := m.Column(mapping.FieldDate)
	priceCol, okPrice := m.Column(mapping.FieldPrice)
	if !okDate || !okPrice || !ds.HasColumn(dateCol) || !ds.HasColumn(priceCol) {
		return TemporalResult{Status: SkipMissingColumns("sales trend analysis")}
	}
	dateIdx := ds.ColumnIndex(dateCol)
	priceIdx := ds.ColumnIndex(priceCol)

	hourly := map[int]BucketStats{}
	weekday := map[string]BucketStats{}
	daily := map[string]float64{}
	var total float64
	var minDate, maxDate time.Time
	var seen bool

	for i := range ds.Rows {
		rawDate, ok := ds.Cell(i, dateIdx)
		if !ok {
			continue
		}
		rawPrice, ok := ds.Cell(i, priceIdx)
		if !ok {
			continue
		}
		t, ok := dataset.ParseDate(rawDate)
		if !ok {
			continue
		}
		price, ok := dataset.ParseCurrency(rawPrice)
		if !ok {
			continue
		}
		day := t.Format("2006-01-02")
		addBucket(hourly, t.Hour(), price)
		addBucket(weekday, t.Weekday().String(), price)
		daily[day] += price
		total += price
		if !seen || t.Before(minDate) {
			minDate = t
		}
		if !seen || t.After(maxDate) {
			maxDate = t
		}
		seen = true
	}
	if !seen {
		return TemporalResult{Status: SkipMissingColumns("sales trend analysis")}
	}

	res := TemporalResult{
		HourlySales:  hourly,
		WeekdaySales: weekday,
		DailyTotals:  daily,
		TotalRevenue: total,
		DateRange: DateRange{
			Start:     minDate.Format("2006-01-02"),
			End:       maxDate.Format("2006-01-02"),
			TotalDays: int(maxDate.Sub(minDate).Hours() / 24),
		},
	}

	dailyVals := make([]float64, 0, len(daily))
	for _, v := range daily {
		dailyVals = append(dailyVals, v)
	}
	res.DailyAverage = mean(dailyVals)

	// peak hour: max summed value, smallest hour on ties
	firstHour := true
	for h := 0; h < 24; h++ {
		b, ok := hourly[h]
		if !ok {
			continue
		}
		if firstHour || b.Sum > res.PeakHourSales {
			res.PeakHour = h
			res.PeakHourSales = b.Sum
			firstHour = false
		}
	}
	for _, name := range weekdayOrder {
		b, ok := weekday[name]
		if !ok {
			continue
		}
		if res.BestDay == "" || b.Sum > res.BestDaySales {
			res.BestDay = name
			res.BestDaySales = b.Sum
		}
	}
	return res
}

func addBucket[K comparable](buckets map[K]BucketStats, key K, v float64) {
	b := buckets[key]
	b.Sum += v
	b.Count++
	b.Mean = b.Sum / float64(b.Count)
	buckets[key] = b
}

// ItemCount counts orders of one menu item.
type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// ItemRevenue aggregates revenue for one menu item.
type ItemRevenue struct {
	Item  string  `json:"item"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// FrequencyDistribution classifies items by how often they were ordered.
type FrequencyDistribution struct {
	OrderedOnce  int `json:"ordered_once"`
	Ordered2To5  int `json:"ordered_2_5_times"`
	OrderedOver5 int `json:"ordered_more_than_5"`
}

// ItemResult analyzes per-item demand and revenue.
type ItemResult struct {
	Status
	UniqueItems      int                   `json:"total_unique_items"`
	MostOrdered      []ItemCount           `json:"most_ordered_items"`
	Frequency        FrequencyDistribution `json:"item_frequency_distribution"`
	TopRevenue       []ItemRevenue         `json:"top_revenue_items,omitempty"`
	HighestAvgPrice  []ItemRevenue         `json:"highest_avg_price_items,omitempty"`
	AverageItemPrice float64               `json:"average_item_price,omitempty"`
}

var titleCaser = cases.Title(language.English)

// normalizeItem trims and title-cases an item name so "pizza" and "Pizza "
// group together.
func normalizeItem(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

const topN = 10

// ItemPerformance groups rows by normalized item name. Revenue rankings are
// included only when a price column is mapped. Ties rank alphabetically.
func ItemPerformance(ds *dataset.Dataset, m mapping.Mapping) ItemResult {
	itemCol, ok := m.Column(mapping.FieldItemName)
	if !ok || !ds.HasColumn(itemCol) {
		return ItemResult{Status: SkipMissingColumns("menu analysis")}
	}
	itemIdx := ds.ColumnIndex(itemCol)

	counts := map[string]int{}
	for i := range ds.Rows {
		raw, ok := ds.Cell(i, itemIdx)
		if !ok {
			continue
		}
		counts[normalizeItem(raw)]++
	}

	res := ItemResult{UniqueItems: len(counts)}
	for _, c := range counts {
		switch {
		case c == 1:
			res.Frequency.OrderedOnce++
		case c <= 5:
			res.Frequency.Ordered2To5++
		default:
			res.Frequency.OrderedOver5++
		}
	}
	ordered := make([]ItemCount, 0, len(counts))
	for item, c := range counts {
		ordered = append(ordered, ItemCount{Item: item, Count: c})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Count == ordered[j].Count {
			return ordered[i].Item < ordered[j].Item
		}
		return ordered[i].Count > ordered[j].Count
	})
	if len(ordered) > topN {
		ordered = ordered[:topN]
	}
	res.MostOrdered = ordered

	priceCol, ok := m.Column(mapping.FieldPrice)
	if !ok || !ds.HasColumn(priceCol) {
		return res
	}
	priceIdx := ds.ColumnIndex(priceCol)

	type acc struct {
		sum   float64
		count int
	}
	revenue := map[string]*acc{}
	var allPrices []float64
	for i := range ds.Rows {
		rawItem, ok := ds.Cell(i, itemIdx)
		if !ok {
			continue
		}
		rawPrice, ok := ds.Cell(i, priceIdx)
		if !ok {
			continue
		}
		price, ok := dataset.ParseCurrency(rawPrice)
		if !ok {
			continue
		}
		item := normalizeItem(rawItem)
		a := revenue[item]
		if a == nil {
			a = &acc{}
			revenue[item] = a
		}
		a.sum += price
		a.count++
		allPrices = append(allPrices, price)
	}
	res.AverageItemPrice = mean(allPrices)

	rows := make([]ItemRevenue, 0, len(revenue))
	for item, a := range revenue {
		rows = append(rows, ItemRevenue{Item: item, Sum: a.sum, Mean: a.sum / float64(a.count), Count: a.count})
	}
	res.TopRevenue = topBy(rows, func(r ItemRevenue) float64 { return r.Sum })
	res.HighestAvgPrice = topBy(rows, func(r ItemRevenue) float64 { return r.Mean })
	return res
}

func topBy(rows []ItemRevenue, key func(ItemRevenue) float64) []ItemRevenue {
	cp := make([]ItemRevenue, len(rows))
	copy(cp, rows)
	sort.Slice(cp, func(i, j int) bool {
		ki, kj := key(cp[i]), key(cp[j])
		if ki == kj {
			return cp[i].Item < cp[j].Item
		}
		return ki > kj
	})
	if len(cp) > topN {
		cp = cp[:topN]
	}
	return cp
}

// OrderValueStats summarizes monetary order totals.
type OrderValueStats struct {
	Average float64 `json:"average_order_value"`
	Median  float64 `json:"median_order_value"`
	Largest float64 `json:"largest_order_value"`
}

// OrderResult analyzes order composition: how many line items make up a
// typical order and, when prices are available, what orders are worth.
type OrderResult struct {
	Status
	TotalOrders      int              `json:"total_orders"`
	AvgItemsPerOrder float64          `json:"average_items_per_order"`
	MedianItems      float64          `json:"median_items_per_order"`
	MaxItemsInOrder  int              `json:"max_items_in_order"`
	SingleItemOrders int              `json:"single_item_orders"`
	OrderValues      *OrderValueStats `json:"order_values,omitempty"`
}

// OrderComposition groups rows by order id. Line items per order are counted
// from the price column when mapped, otherwise from the item column, falling
// back to plain row counts. Rows with a missing order id are dropped.
func OrderComposition(ds *dataset.Dataset, m mapping.Mapping) OrderResult {
	orderCol, ok := m.Column(mapping.FieldOrderID)
	if !ok || !ds.HasColumn(orderCol) {
		return OrderResult{Status: SkipMissingColumns("order analysis")}
	}
	orderIdx := ds.ColumnIndex(orderCol)

	countIdx := -1
	if col, ok := m.Column(mapping.FieldPrice); ok && ds.HasColumn(col) {
		countIdx = ds.ColumnIndex(col)
	} else if col, ok := m.Column(mapping.FieldItemName); ok && ds.HasColumn(col) {
		countIdx = ds.ColumnIndex(col)
	}

	priceIdx := -1
	if col, ok := m.Column(mapping.FieldPrice); ok && ds.HasColumn(col) {
		priceIdx = ds.ColumnIndex(col)
	}

	items := map[string]int{}
	values := map[string]float64{}
	for i := range ds.Rows {
		id, ok := ds.Cell(i, orderIdx)
		if !ok {
			continue
		}
		n := 1
		if countIdx >= 0 {
			if _, ok := ds.Cell(i, countIdx); !ok {
				n = 0
			}
		}
		items[id] += n
		if priceIdx >= 0 {
			if raw, ok := ds.Cell(i, priceIdx); ok {
				if price, ok := dataset.ParseCurrency(raw); ok {
					values[id] += price
				}
			}
		}
	}
	if len(items) == 0 {
		return OrderResult{Status: SkipMissingColumns("order analysis")}
	}

	itemCounts := make([]float64, 0, len(items))
	res := OrderResult{TotalOrders: len(items)}
	for _, n := range items {
		itemCounts = append(itemCounts, float64(n))
		if n > res.MaxItemsInOrder {
			res.MaxItemsInOrder = n
		}
		if n == 1 {
			res.SingleItemOrders++
		}
	}
	res.AvgItemsPerOrder = mean(itemCounts)
	res.MedianItems = median(itemCounts)

	if priceIdx >= 0 {
		totals := make([]float64, 0, len(values))
		for _, v := range values {
			totals = append(totals, v)
		}
		_, hi := minMax(totals)
		res.OrderValues = &OrderValueStats{
			Average: mean(totals),
			Median:  median(totals),
			Largest: hi,
		}
	}
	return res
}

// QualityResult scores dataset hygiene on a 0-100 scale.
type QualityResult struct {
	Status
	TotalRecords   int                `json:"total_records"`
	TotalColumns   int                `json:"total_columns"`
	MissingData    map[string]int     `json:"missing_data"`
	MissingPct     map[string]float64 `json:"missing_percentage"`
	Duplicates     int                `json:"duplicates"`
	QualityScore   float64            `json:"quality_score"`
	Issues         []string           `json:"issues"`
	NumericColumns []string           `json:"numeric_columns"`
}

// DataQuality counts missing values per column and duplicate rows, then
// derives a score: start at 100, subtract up to 20 points for the duplicate
// ratio and up to 30 for the missing-value ratio, floor at zero.
func DataQuality(ds *dataset.Dataset) QualityResult {
	rows := ds.NumRows()
	cols := ds.NumColumns()
	res := QualityResult{
		TotalRecords:   rows,
		TotalColumns:   cols,
		MissingData:    map[string]int{},
		MissingPct:     map[string]float64{},
		NumericColumns: ds.NumericColumns(),
		Issues:         []string{},
	}

	totalMissing := 0
	for ci, name := range ds.Columns {
		missing := 0
		for ri := range ds.Rows {
			if _, ok := ds.Cell(ri, ci); !ok {
				missing++
			}
		}
		res.MissingData[name] = missing
		if rows > 0 {
			res.MissingPct[name] = float64(missing) / float64(rows) * 100
		}
		totalMissing += missing
	}

	seen := map[string]int{}
	for _, row := range ds.Rows {
		key := strings.Join(row, "\x1f")
		seen[key]++
	}
	for _, n := range seen {
		if n > 1 {
			res.Duplicates += n - 1
		}
	}

	score := 100.0
	if res.Duplicates > 0 && rows > 0 {
		score -= minf(20, float64(res.Duplicates)/float64(rows)*100)
		res.Issues = append(res.Issues, fmt.Sprintf("%d duplicate records found", res.Duplicates))
	}
	if totalMissing > 0 && rows > 0 && cols > 0 {
		missingRatio := float64(totalMissing) / float64(rows*cols)
		score -= minf(30, missingRatio*100)
		res.Issues = append(res.Issues, fmt.Sprintf("%d missing values across dataset", totalMissing))
	}
	if score < 0 {
		score = 0
	}
	res.QualityScore = roundTo(score, 1)
	return res
}

// ColumnMetric is the per-column statistical summary that feeds the
// recommendation rules.
type ColumnMetric struct {
	Column  string  `json:"column"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Std     float64 `json:"std"`
	Trend   Trend   `json:"trend"`
}

// SummaryResult holds one ColumnMetric per numeric column, in column order.
type SummaryResult struct {
	Status
	Metrics []ColumnMetric `json:"metrics"`
}

// SummaryMetrics computes totals, averages, and trends for every numeric
// column. Works for both summary-style and transaction-style datasets; the
// trend is over values in row order.
func SummaryMetrics(ds *dataset.Dataset) SummaryResult {
	numeric := ds.NumericColumns()
	if len(numeric) == 0 {
		return SummaryResult{Status: Status{Skipped: "no numeric columns found for analysis", SkipKind: "missing_columns"}}
	}
	res := SummaryResult{Metrics: make([]ColumnMetric, 0, len(numeric))}
	for _, col := range numeric {
		vals := ds.FloatColumn(col)
		if len(vals) == 0 {
			continue
		}
		lo, hi := minMax(vals)
		res.Metrics = append(res.Metrics, ColumnMetric{
			Column:  col,
			Total:   sum(vals),
			Average: mean(vals),
			Max:     hi,
			Min:     lo,
			Std:     sampleStd(vals),
			Trend:   ClassifyTrend(vals),
		})
	}
	return res
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func roundTo(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}
