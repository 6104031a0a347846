package recommend

import (
	"math"
	"strings"
	"testing"

	"github.com/poslens/poslens-cli/internal/metrics"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestOpportunitiesDecliningRevenue(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "daily_sales", Total: 50000, Average: 1666, Trend: metrics.TrendDecreasing},
	}
	ops := Opportunities(cols)
	if len(ops) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(ops))
	}
	op := ops[0]
	if op.Type != TypeRevenueRecovery || op.Priority != PriorityHigh {
		t.Errorf("got %s/%s, want revenue_recovery/HIGH", op.Type, op.Priority)
	}
	if !approx(op.Impact, 50000) {
		t.Errorf("Impact = %v, want the metric total", op.Impact)
	}
}

func TestOpportunitiesGrowthPotential(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "revenue", Total: 10000, Average: 1000, Std: 50, Trend: metrics.TrendStable},
	}
	ops := Opportunities(cols)
	if len(ops) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(ops))
	}
	if ops[0].Type != TypeGrowthPotential || ops[0].Priority != PriorityMedium {
		t.Errorf("got %s/%s", ops[0].Type, ops[0].Priority)
	}
	if !approx(ops[0].Impact, 1500) {
		t.Errorf("Impact = %v, want 15%% of total", ops[0].Impact)
	}
}

func TestOpportunitiesStableButVolatileIsNotGrowth(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "revenue", Total: 10000, Average: 1000, Std: 500, Trend: metrics.TrendStable},
	}
	if ops := Opportunities(cols); len(ops) != 0 {
		t.Errorf("high-variation stable metric should not trigger growth: %+v", ops)
	}
}

func TestOpportunitiesLowCustomerVolume(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "guest_count", Total: 840, Average: 120, Trend: metrics.TrendStable},
	}
	ops := Opportunities(cols)
	if len(ops) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(ops))
	}
	op := ops[0]
	if op.Type != TypeCustomerAcquisition || op.Priority != PriorityHigh {
		t.Errorf("got %s/%s", op.Type, op.Priority)
	}
	// (250 - 120) guests/day over a 4-week month.
	if !approx(op.Impact, 130*7*4) {
		t.Errorf("Impact = %v, want %v", op.Impact, 130.0*7*4)
	}
}

func TestOpportunitiesIgnoresUnrelatedColumns(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "table_number", Total: 500, Average: 10, Trend: metrics.TrendDecreasing},
	}
	if ops := Opportunities(cols); len(ops) != 0 {
		t.Errorf("non-revenue, non-customer columns must not match rules: %+v", ops)
	}
}

func TestBuildPlanDecliningAndLowTraffic(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "guest_count", Total: 700, Average: 100, Trend: metrics.TrendStable},
		{Column: "daily_sales", Total: 20000, Average: 2857, Trend: metrics.TrendDecreasing},
	}
	quality := metrics.QualityResult{QualityScore: 100}
	p := BuildPlan(cols, quality, 7)

	if len(p.ImmediateActions) < 3 {
		t.Fatalf("ImmediateActions = %v", p.ImmediateActions)
	}
	if !strings.Contains(p.ImmediateActions[0], "URGENT") {
		t.Errorf("first action should flag the declining metric: %q", p.ImmediateActions[0])
	}
	found := false
	for _, a := range p.ImmediateActions {
		if strings.Contains(a, "flash promotion") {
			found = true
		}
	}
	if !found {
		t.Error("guests under 150/day should trigger a flash promotion")
	}
	if len(p.MarketingStrategies) != 3 || !strings.Contains(p.MarketingStrategies[0], "social media") {
		t.Errorf("MarketingStrategies = %v", p.MarketingStrategies)
	}
	if len(p.OperationalImprovements) != 3 {
		t.Errorf("7 rows of data should enable operational improvements: %v", p.OperationalImprovements)
	}
	if len(p.RevenueOptimization) == 0 || !strings.Contains(p.RevenueOptimization[0], "$3000") {
		t.Errorf("RevenueOptimization = %v", p.RevenueOptimization)
	}
	if len(p.LongTermStrategy) != 5 {
		t.Errorf("LongTermStrategy = %v", p.LongTermStrategy)
	}
}

func TestBuildPlanPremiumTrackForStrongTraffic(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "guest_count", Total: 2800, Average: 400, Trend: metrics.TrendStable},
	}
	p := BuildPlan(cols, metrics.QualityResult{QualityScore: 100}, 7)
	if len(p.MarketingStrategies) != 3 || !strings.Contains(p.MarketingStrategies[0], "premium") {
		t.Errorf("MarketingStrategies = %v", p.MarketingStrategies)
	}
}

func TestBuildPlanDataHygieneFirst(t *testing.T) {
	p := BuildPlan(nil, metrics.QualityResult{QualityScore: 75}, 3)
	if len(p.ImmediateActions) == 0 || !strings.Contains(p.ImmediateActions[0], "data collection") {
		t.Errorf("low quality score must prepend a hygiene action: %v", p.ImmediateActions)
	}
	if len(p.OperationalImprovements) != 0 {
		t.Errorf("under 7 rows should skip operational set: %v", p.OperationalImprovements)
	}
}

func TestBuildPlanBucketsAlwaysPresent(t *testing.T) {
	p := BuildPlan(nil, metrics.QualityResult{QualityScore: 100}, 0)
	for name, bucket := range map[string][]string{
		"immediate":   p.ImmediateActions,
		"marketing":   p.MarketingStrategies,
		"operational": p.OperationalImprovements,
		"revenue":     p.RevenueOptimization,
	} {
		if bucket == nil {
			t.Errorf("%s bucket is nil, want empty slice for stable JSON", name)
		}
	}
}

func TestRevenueProjections(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "daily_sales", Total: 10000, Average: 1428, Trend: metrics.TrendStable},
	}
	scenarios := RevenueProjections(cols)
	if len(scenarios) != 4 {
		t.Fatalf("got %d scenarios, want 4", len(scenarios))
	}
	want := map[string]float64{
		"customer_acquisition_25%":   2500,
		"average_ticket_15%":         1500,
		"operational_efficiency_10%": 1000,
		"combined_impact":            5000,
	}
	for _, s := range scenarios {
		monthly, ok := want[s.Name]
		if !ok {
			t.Errorf("unexpected scenario %q", s.Name)
			continue
		}
		if !approx(s.MonthlyImpact, monthly) {
			t.Errorf("%s monthly = %v, want %v", s.Name, s.MonthlyImpact, monthly)
		}
		if !approx(s.AnnualImpact, monthly*12) {
			t.Errorf("%s annual = %v, want %v", s.Name, s.AnnualImpact, monthly*12)
		}
	}
}

func TestRevenueProjectionsWithoutBaseline(t *testing.T) {
	if got := RevenueProjections(nil); got != nil {
		t.Errorf("no revenue baseline should yield no projections, got %v", got)
	}
}

func TestBaselineUsesLastRevenueColumn(t *testing.T) {
	cols := []metrics.ColumnMetric{
		{Column: "lunch_sales", Total: 4000},
		{Column: "dinner_sales", Total: 6000},
	}
	_, total := collectBaselines(cols)
	if !approx(total, 6000) {
		t.Errorf("baseline = %v, want the last matching column's total", total)
	}
}
