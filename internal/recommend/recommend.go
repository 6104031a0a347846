// Package recommend turns column metrics into prioritized, rule-based
// business recommendations and fixed-percentage revenue projections. It is a
// deterministic rule table: the same metrics always produce the same output,
// and every threshold is a named constant.
package recommend

import (
	"fmt"
	"strings"

	"github.com/poslens/poslens-cli/internal/metrics"
)

// Priority levels for opportunities.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
)

// Opportunity types.
const (
	TypeRevenueRecovery     = "revenue_recovery"
	TypeGrowthPotential     = "growth_potential"
	TypeCustomerAcquisition = "customer_acquisition"
)

// Rule thresholds. These are illustrative heuristics, not calibrated models.
const (
	// lowTrafficDaily is the daily guest average below which customer
	// acquisition becomes a high-priority opportunity.
	lowTrafficDaily = 200.0
	// targetDailyGuests sizes the acquisition opportunity:
	// (target - average) guests/day over a 4-week month.
	targetDailyGuests = 250.0
	// stableStdRatio: a stable revenue metric with std below this fraction
	// of its mean counts as untapped growth potential.
	stableStdRatio = 0.10
	// growthPotentialPct sizes the growth opportunity as a fraction of the
	// metric's total.
	growthPotentialPct = 0.15
	// flashPromoDaily is the guest average that triggers an immediate
	// promotion recommendation.
	flashPromoDaily = 150.0
	// strongTrafficDaily switches marketing advice from acquisition to
	// premium positioning.
	strongTrafficDaily = 300.0
	// qualityActionScore is the data quality score below which data hygiene
	// jumps to the top of the action list.
	qualityActionScore = 90.0
)

// Opportunity is a single detected business opportunity.
type Opportunity struct {
	Type           string  `json:"type"`
	Priority       string  `json:"priority"`
	Issue          string  `json:"issue"`
	Impact         float64 `json:"impact"`
	Recommendation string  `json:"recommendation"`
}

func isRevenueMetric(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "sales") || strings.Contains(n, "revenue")
}

func isCustomerMetric(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "guest") || strings.Contains(n, "customer")
}

// Opportunities applies the rule table to column metrics:
//   - a declining revenue metric is a HIGH revenue_recovery opportunity sized
//     at its total,
//   - a stable revenue metric with low variation is a MEDIUM growth_potential
//     opportunity sized at 15% of its total,
//   - a customer metric averaging under 200/day is a HIGH customer_acquisition
//     opportunity sized at (250 - average) x 7 x 4.
func Opportunities(cols []metrics.ColumnMetric) []Opportunity {
	var out []Opportunity
	for _, c := range cols {
		if !isRevenueMetric(c.Column) {
			continue
		}
		switch {
		case c.Trend == metrics.TrendDecreasing:
			out = append(out, Opportunity{
				Type:           TypeRevenueRecovery,
				Priority:       PriorityHigh,
				Issue:          fmt.Sprintf("%s is declining", c.Column),
				Impact:         c.Total,
				Recommendation: "Implement immediate revenue recovery strategies",
			})
		case c.Trend == metrics.TrendStable && c.Std < c.Average*stableStdRatio:
			out = append(out, Opportunity{
				Type:           TypeGrowthPotential,
				Priority:       PriorityMedium,
				Issue:          fmt.Sprintf("%s has low variation - untapped potential", c.Column),
				Impact:         c.Total * growthPotentialPct,
				Recommendation: "Focus on growth initiatives",
			})
		}
	}
	for _, c := range cols {
		if !isCustomerMetric(c.Column) {
			continue
		}
		if c.Average < lowTrafficDaily {
			out = append(out, Opportunity{
				Type:           TypeCustomerAcquisition,
				Priority:       PriorityHigh,
				Issue:          fmt.Sprintf("Low customer volume (%.0f/day)", c.Average),
				Impact:         (targetDailyGuests - c.Average) * 7 * 4,
				Recommendation: "Launch customer acquisition campaigns",
			})
		}
	}
	return out
}

// Plan groups actionable recommendations by horizon.
type Plan struct {
	ImmediateActions        []string `json:"immediate_actions"`
	MarketingStrategies     []string `json:"marketing_strategies"`
	OperationalImprovements []string `json:"operational_improvements"`
	RevenueOptimization     []string `json:"revenue_optimization"`
	LongTermStrategy        []string `json:"long_term_strategy"`
}

// BuildPlan fills each bucket from the rule table. rowCount is the number of
// dataset rows; with a week or more of rows the operational set applies.
func BuildPlan(cols []metrics.ColumnMetric, quality metrics.QualityResult, rowCount int) Plan {
	p := Plan{
		ImmediateActions:        []string{},
		MarketingStrategies:     []string{},
		OperationalImprovements: []string{},
		RevenueOptimization:     []string{},
		LongTermStrategy:        []string{},
	}

	var declining []metrics.ColumnMetric
	for _, c := range cols {
		if c.Trend == metrics.TrendDecreasing {
			declining = append(declining, c)
		}
	}
	if len(declining) > 0 {
		p.ImmediateActions = append(p.ImmediateActions,
			fmt.Sprintf("URGENT: Address declining %s - implement daily monitoring", declining[0].Column),
			"Conduct immediate staff meeting to identify causes of performance decline",
		)
	}
	for _, c := range cols {
		if strings.Contains(strings.ToLower(c.Column), "guest") && c.Average < flashPromoDaily {
			p.ImmediateActions = append(p.ImmediateActions,
				"Launch flash promotion this week - customer count below optimal threshold")
		}
	}

	customerAvgs, totalRevenue := collectBaselines(cols)
	if len(customerAvgs) > 0 && customerAvgs[0] < lowTrafficDaily {
		p.MarketingStrategies = append(p.MarketingStrategies,
			"Implement social media advertising campaign - target 25% customer increase",
			"Create loyalty program to increase repeat visits by 30%",
			"Launch email marketing to inactive customers from your POS database",
		)
	} else if len(customerAvgs) > 0 && customerAvgs[0] > strongTrafficDaily {
		p.MarketingStrategies = append(p.MarketingStrategies,
			"Focus on premium offerings - you have strong customer base",
			"Upselling training for staff to increase average ticket size",
			"Implement VIP program for high-value customers",
		)
	}

	if rowCount >= 7 {
		p.OperationalImprovements = append(p.OperationalImprovements,
			"Analyze daily patterns to optimize staff scheduling",
			"Review menu performance - identify low-performing items to remove",
			"Implement peak-hour operational efficiency improvements",
		)
	}

	if totalRevenue > 0 {
		p.RevenueOptimization = append(p.RevenueOptimization,
			fmt.Sprintf("Target 15%% revenue increase = $%.0f monthly potential", totalRevenue*0.15),
			"Focus on high-margin items - conduct menu engineering analysis",
			"Optimize payment processing - reduce transaction times by 20%",
			"Implement strategic upselling - beverages and appetizers",
		)
	}

	p.LongTermStrategy = append(p.LongTermStrategy,
		"Implement advanced POS analytics for real-time decision making",
		"Consider expansion opportunities based on current performance trends",
		"Automate inventory management to reduce waste by 10-15%",
		"Develop staff performance incentives tied to customer satisfaction",
		"Create quarterly business reviews using data-driven insights",
	)

	if quality.QualityScore < qualityActionScore {
		p.ImmediateActions = append(
			[]string{"Improve data collection processes - clean data drives better decisions"},
			p.ImmediateActions...,
		)
	}
	return p
}

// collectBaselines extracts customer averages (in column order) and a total
// revenue baseline. The baseline keeps the last matching revenue column's
// total when several match.
func collectBaselines(cols []metrics.ColumnMetric) (customerAvgs []float64, totalRevenue float64) {
	for _, c := range cols {
		switch {
		case isCustomerMetric(c.Column):
			customerAvgs = append(customerAvgs, c.Average)
		case isRevenueMetric(c.Column):
			totalRevenue = c.Total
		}
	}
	return customerAvgs, totalRevenue
}

// Scenario is one fixed-percentage revenue improvement projection.
type Scenario struct {
	Name          string  `json:"name"`
	MonthlyImpact float64 `json:"monthly_impact"`
	AnnualImpact  float64 `json:"annual_impact"`
	Strategy      string  `json:"strategy"`
}

// RevenueProjections applies fixed improvement percentages to the revenue
// baseline: 25% customer growth, 15% average ticket growth, 10% efficiency
// gain, and their combined effect. These are illustrative estimates, not
// statistically derived. Without a revenue baseline the slice is empty.
func RevenueProjections(cols []metrics.ColumnMetric) []Scenario {
	_, totalRevenue := collectBaselines(cols)
	if totalRevenue <= 0 {
		return nil
	}
	mk := func(name string, pct float64, strategy string) Scenario {
		monthly := totalRevenue * pct
		return Scenario{Name: name, MonthlyImpact: monthly, AnnualImpact: monthly * 12, Strategy: strategy}
	}
	return []Scenario{
		mk("customer_acquisition_25%", 0.25, "Marketing campaigns and promotions"),
		mk("average_ticket_15%", 0.15, "Upselling and menu optimization"),
		mk("operational_efficiency_10%", 0.10, "Improved processes and waste reduction"),
		mk("combined_impact", 0.50, "All recommendations implemented"),
	}
}
