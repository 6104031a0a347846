package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/poslens/poslens-cli/internal/mapping"
	"github.com/poslens/poslens-cli/internal/metrics"
)

// Text renders a compact human-readable summary of the report, suitable for
// terminal output.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[ANALYSIS SUMMARY]\n")
	fmt.Fprintf(&b, "Source: %s\n", r.Source)
	fmt.Fprintf(&b, "Data type: %s\n", r.DataType)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("[COLUMN MAPPING]\n")
	mapped := 0
	for _, f := range mapping.Fields() {
		if col, ok := r.ColumnMapping[string(f)]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", f, col)
			mapped++
		}
	}
	if mapped == 0 {
		b.WriteString("- (no columns detected)\n")
	}
	b.WriteString("\n")

	if q := r.DataQuality; q.OK() {
		b.WriteString("[DATA QUALITY]\n")
		fmt.Fprintf(&b, "Score: %.1f/100 (%d rows, %d columns, %d duplicates)\n",
			q.QualityScore, q.TotalRecords, q.TotalColumns, q.Duplicates)
		for _, issue := range q.Issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
		b.WriteString("\n")
	}

	writeBasic(&b, r.BasicMetrics)
	writeTrends(&b, r.SalesTrends)
	writeMenu(&b, r.MenuPerformance)
	writeSummaryMetrics(&b, r.SummaryMetrics)
	writeOpportunities(&b, r)
	writeProjections(&b, r)
	return b.String()
}

func writeBasic(b *strings.Builder, m metrics.BasicResult) {
	if !m.OK() {
		return
	}
	b.WriteString("[SALES]\n")
	fmt.Fprintf(b, "Total revenue: $%.2f over %d transactions\n", m.TotalRevenue, m.TransactionCount)
	fmt.Fprintf(b, "Average $%.2f, median $%.2f, range $%.2f-$%.2f\n\n", m.Average, m.Median, m.Min, m.Max)
}

func writeTrends(b *strings.Builder, t metrics.TemporalResult) {
	if !t.OK() {
		if t.Skipped != "" {
			fmt.Fprintf(b, "[SALES TRENDS]\nskipped: %s\n\n", t.Skipped)
		}
		return
	}
	b.WriteString("[SALES TRENDS]\n")
	fmt.Fprintf(b, "Period: %s to %s (%d days)\n", t.DateRange.Start, t.DateRange.End, t.DateRange.TotalDays)
	fmt.Fprintf(b, "Daily average: $%.2f\n", t.DailyAverage)
	fmt.Fprintf(b, "Peak hour: %d:00 ($%.2f)\n", t.PeakHour, t.PeakHourSales)
	fmt.Fprintf(b, "Best day: %s ($%.2f)\n\n", t.BestDay, t.BestDaySales)
}

func writeMenu(b *strings.Builder, m metrics.ItemResult) {
	if !m.OK() {
		if m.Skipped != "" {
			fmt.Fprintf(b, "[MENU]\nskipped: %s\n\n", m.Skipped)
		}
		return
	}
	b.WriteString("[MENU]\n")
	fmt.Fprintf(b, "Unique items: %d\n", m.UniqueItems)
	if len(m.TopRevenue) > 0 {
		names := make([]string, 0, 3)
		for i, it := range m.TopRevenue {
			if i == 3 {
				break
			}
			names = append(names, it.Item)
		}
		fmt.Fprintf(b, "Top items: %s\n", strings.Join(names, ", "))
	}
	b.WriteString("\n")
}

func writeSummaryMetrics(b *strings.Builder, s metrics.SummaryResult) {
	if !s.OK() || len(s.Metrics) == 0 {
		return
	}
	b.WriteString("[METRICS]\n")
	sorted := make([]metrics.ColumnMetric, len(s.Metrics))
	copy(sorted, s.Metrics)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Total > sorted[j].Total })
	for i, c := range sorted {
		if i == 3 {
			break
		}
		fmt.Fprintf(b, "- %s: %.0f total, %.0f avg (%s)\n", c.Column, c.Total, c.Average, c.Trend)
	}
	b.WriteString("\n")
}

func writeOpportunities(b *strings.Builder, r *Report) {
	if len(r.Opportunities) > 0 {
		b.WriteString("[OPPORTUNITIES]\n")
		for _, o := range r.Opportunities {
			fmt.Fprintf(b, "- [%s] %s: %s (impact $%.0f)\n", o.Priority, o.Type, o.Issue, o.Impact)
		}
		b.WriteString("\n")
	}
	if len(r.Recommendations.ImmediateActions) > 0 {
		b.WriteString("[IMMEDIATE ACTIONS]\n")
		for i, a := range r.Recommendations.ImmediateActions {
			fmt.Fprintf(b, "%d. %s\n", i+1, a)
		}
		b.WriteString("\n")
	}
}

func writeProjections(b *strings.Builder, r *Report) {
	if len(r.RevenueProjections) == 0 {
		return
	}
	b.WriteString("[PROJECTED IMPACT]\n")
	for _, s := range r.RevenueProjections {
		fmt.Fprintf(b, "- %s: +$%.0f/month ($%.0f/year) via %s\n",
			s.Name, s.MonthlyImpact, s.AnnualImpact, s.Strategy)
	}
	b.WriteString("\n")
}
