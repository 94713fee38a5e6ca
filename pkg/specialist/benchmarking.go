package specialist

import "github.com/aretw0/triage/pkg/domain"

// Benchmarking answers questions about compliance analytics: peer benchmarks, trends,
// risk heatmaps, indicators and reports.
func Benchmarking() *Specialist {
	return &Specialist{
		Name:   "benchmarking",
		Domain: domain.DomainAnalytics,
		Keywords: []string{
			"benchmark", "benchmarks", "peer", "peers", "industry", "trend", "trends", "trending",
			"metric", "metrics", "kpi", "heatmap", "dashboard", "report",
		},
		Branches: []Branch{
			{
				Name:        "benchmark",
				Trigger:     Trigger{Phrases: []string{"benchmark", "benchmarks", "peer", "peers", "industry", "compare", "comparison", "percentile"}},
				Subcategory: "Industry Benchmarks",
				Answer: "Benchmarks compare your section scores with anonymized organizations of similar size and " +
					"product class. The report shows your percentile per section and the median of your peer group, " +
					"so you can see where you lead and where you trail.",
				Sources: []string{"Compliance Benchmark Report"},
				ActionItems: []string{
					"Pick the peer group that matches your product class",
					"Focus on sections below the peer median",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.85,
			},
			{
				Name:        "trends",
				Trigger:     Trigger{Phrases: []string{"trend", "trends", "trending", "over time", "declining", "improving", "history"}},
				Subcategory: "Compliance Trends",
				Answer: "Trends plot each section score across your completed assessments. A drop of more than ten " +
					"points between two assessments is flagged, which usually points at staff turnover, an expired " +
					"policy or a new product line that is not yet covered.",
				Sources: []string{"Compliance Trend Dashboard"},
				ActionItems: []string{
					"Investigate every flagged drop with the section owner",
					"Compare the trend with recent organizational changes",
				},
				Impact:     domain.ImpactMedium,
				Confidence: 0.85,
			},
			{
				Name:        "heatmap",
				Trigger:     Trigger{Phrases: []string{"heatmap", "heat map", "risk map", "hotspot", "hotspots"}},
				Subcategory: "Risk Heatmap",
				Answer: "The risk heatmap crosses the impact of each open gap with its likelihood of being cited. Cells " +
					"in the upper right are the gaps most likely to block a submission and should be remediated first.",
				Sources: []string{"Compliance Trend Dashboard", "NIST AI Risk Management Framework"},
				ActionItems: []string{
					"Remediate gaps in the high impact, high likelihood cells first",
				},
				Impact:     domain.ImpactHigh,
				Confidence: 0.85,
			},
			{
				Name:        "kpi",
				Trigger:     Trigger{Phrases: []string{"kpi", "kpis", "metric", "metrics", "indicator", "indicators", "measure"}},
				Subcategory: "Compliance KPIs",
				Answer: "Useful indicators are overall readiness, open critical gaps, median days to close a gap, the " +
					"share of models with current validation reports and the share of staff with completed training.",
				Sources: []string{"Compliance Metrics Catalogue"},
				ActionItems: []string{
					"Choose three to five indicators and review them monthly",
				},
				Impact:     domain.ImpactLow,
				Confidence: 0.8,
			},
			{
				Name:        "reporting",
				Trigger:     Trigger{Phrases: []string{"report", "reports", "reporting", "export", "dashboard"}},
				Subcategory: "Compliance Reporting",
				Answer: "Reports can be exported per assessment or per period. The executive summary covers readiness, " +
					"trend and the top open gaps; the detailed report lists every control with its evidence.",
				Sources: []string{"Compliance Benchmark Report"},
				ActionItems: []string{
					"Share the executive summary with leadership after each assessment",
				},
				Impact:     domain.ImpactLow,
				Confidence: 0.8,
			},
		},
	}
}
