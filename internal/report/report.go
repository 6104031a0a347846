// Package report assembles the full analysis pipeline output into a single
// exportable document: mapping, data type, metrics, recommendations, and
// revenue projections.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/poslens/poslens-cli/internal/dataset"
	"github.com/poslens/poslens-cli/internal/mapping"
	"github.com/poslens/poslens-cli/internal/metrics"
	"github.com/poslens/poslens-cli/internal/recommend"
	"github.com/poslens/poslens-cli/internal/utils"
)

// Report is the complete result of one analysis pass. It owns no external
// resources and is safe to discard and regenerate. Consumers must tolerate
// new or missing keys; there is no schema versioning.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`

	ColumnMapping map[string]string `json:"column_mapping"`
	DataType      string            `json:"data_type"`

	DataQuality        metrics.QualityResult   `json:"data_quality"`
	SummaryMetrics     metrics.SummaryResult   `json:"summary_analysis"`
	BasicMetrics       metrics.BasicResult     `json:"basic_metrics"`
	SalesTrends        metrics.TemporalResult  `json:"sales_trends"`
	MenuPerformance    metrics.ItemResult      `json:"menu_performance"`
	OrderComposition   metrics.OrderResult     `json:"order_analysis"`
	Opportunities      []recommend.Opportunity `json:"business_opportunities"`
	Recommendations    recommend.Plan          `json:"strategic_recommendations"`
	RevenueProjections []recommend.Scenario    `json:"revenue_impact_projections"`
}

// Build runs every analysis section over the dataset and mapping. It is a
// pure function of its inputs: no state is shared between calls, so several
// independent analyses can run without cross-contamination.
//
// Sections are isolated: a panic inside one is converted into that section's
// error status and never aborts the others. Summary-labeled datasets skip
// the per-transaction temporal and per-item analyses as not applicable.
func Build(ds *dataset.Dataset, m mapping.Mapping, label mapping.DataType, now time.Time) *Report {
	r := &Report{
		ID:            uuid.NewString(),
		GeneratedAt:   now,
		Source:        ds.Name,
		ColumnMapping: m.Names(),
		DataType:      string(label),
	}

	runSection("data quality analysis", &r.DataQuality.Status, func() {
		r.DataQuality = metrics.DataQuality(ds)
	})
	runSection("summary analysis", &r.SummaryMetrics.Status, func() {
		r.SummaryMetrics = metrics.SummaryMetrics(ds)
	})
	runSection("basic metrics", &r.BasicMetrics.Status, func() {
		r.BasicMetrics = metrics.BasicMetrics(ds, m)
	})

	if label == mapping.Summary {
		r.SalesTrends = metrics.TemporalResult{Status: metrics.SkipNotApplicable("sales trend analysis")}
		r.MenuPerformance = metrics.ItemResult{Status: metrics.SkipNotApplicable("menu analysis")}
	} else {
		runSection("sales trend analysis", &r.SalesTrends.Status, func() {
			r.SalesTrends = metrics.TemporalPatterns(ds, m)
		})
		runSection("menu analysis", &r.MenuPerformance.Status, func() {
			r.MenuPerformance = metrics.ItemPerformance(ds, m)
		})
	}
	runSection("order analysis", &r.OrderComposition.Status, func() {
		r.OrderComposition = metrics.OrderComposition(ds, m)
	})

	cols := r.SummaryMetrics.Metrics
	r.Opportunities = recommend.Opportunities(cols)
	r.Recommendations = recommend.BuildPlan(cols, r.DataQuality, ds.NumRows())
	r.RevenueProjections = recommend.RevenueProjections(cols)
	return r
}

// runSection invokes fn and converts a panic into an error status on st.
// One section's failure never aborts the rest of the report.
func runSection(name string, st *metrics.Status, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			*st = metrics.ErrorStatus(name, p)
		}
	}()
	fn()
}

// Save writes the report as indented JSON, atomically (temp file + rename).
func (r *Report) Save(path string) error {
	b, err := utils.PrettyJSON(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}

// Load reads a previously saved report. Unknown keys are ignored.
func Load(path string) (*Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
