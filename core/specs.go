package core

import (
	"fmt"

	"github.com/openforest/millpulse/schema"
)

// Fixed report policy. Windows and horizons are deliberately constants, not
// configuration: the narrative templates name them ("7-day average", "over
// the next week"), so changing one without the other would make the report
// lie. Classification edges are overridable from the config file.
const (
	ProductionBaselineDays = 7
	ShipmentWindowDays     = 30
	FinanceBaselineMonths  = 3

	DiagnosticDays   = 30
	DiagnosticMonths = 6

	YieldHorizonSteps  = 7
	OtifHorizonSteps   = 30
	MarginHorizonSteps = 3
)

func formatPct(v float64) string   { return fmt.Sprintf("%.1f%%", v*100) }
func formatHours(v float64) string { return fmt.Sprintf("%.2f", v) }
func formatDays(v float64) string  { return fmt.Sprintf("%.1f", v) }

// Policy fixes the metric tables for one report run. The tables drive the
// generic narrator; the three domains differ only in data, not control flow.
type Policy struct {
	ProductionSpecs []schema.MetricSpec
	ShipmentSpecs   []schema.MetricSpec
	FinanceSpecs    []schema.MetricSpec
}

// DefaultPolicy returns the standard per-domain metric tables.
func DefaultPolicy() *Policy {
	return &Policy{
		ProductionSpecs: []schema.MetricSpec{
			{
				Name:           schema.YieldMetric,
				Column:         "yield_pct",
				Agg:            schema.MeanAgg,
				Edge:           2,
				HigherIsBetter: true,
				Format:         formatPct,
				Degraded:       "- Yield decreased to %s (%s vs 7-day average).",
				Improved:       "- Yield improved to %s (%s vs 7-day average).",
				Stable:         "- Yield is stable around %s vs 7-day average.",
			},
			{
				Name:           schema.OutputMetric,
				Column:         "output_volume_m3",
				Agg:            schema.SumAgg,
				Edge:           5,
				HigherIsBetter: true,
				Format:         FormatThousands,
				Degraded:       "- Total output softened to %s m³ (%s vs 7-day average).",
				Improved:       "- Total output increased to %s m³ (%s vs 7-day average).",
				Stable:         "- Total output is broadly in line with the 7-day average (%s m³).",
			},
			{
				Name:           schema.DowntimeMetric,
				Column:         "downtime_hours",
				Agg:            schema.MeanAgg,
				Edge:           10,
				HigherIsBetter: false,
				Format:         formatHours,
				Degraded:       "- Downtime increased to %s hrs/day (%s vs 7-day average).",
				Improved:       "- Downtime improved to %s hrs/day (%s vs 7-day average).",
				Stable:         "- Downtime is roughly stable at %s hrs/day.",
			},
		},
		ShipmentSpecs: []schema.MetricSpec{
			{
				Name:           schema.OtifMetric,
				Column:         "otif_flag",
				Agg:            schema.MeanAgg,
				Edge:           3,
				HigherIsBetter: true,
				Format:         formatPct,
				Degraded:       "- OTIF dropped to %s (%s vs prior 30 days).",
				Improved:       "- OTIF improved to %s (%s vs prior 30 days).",
				Stable:         "- OTIF remains stable around %s vs prior 30 days.",
			},
			{
				Name:           schema.LeadTimeMetric,
				Column:         "lead_time_days",
				Agg:            schema.MeanAgg,
				Edge:           5,
				HigherIsBetter: false,
				Format:         formatDays,
				Degraded:       "- Average lead time increased to %s days (%s vs baseline).",
				Improved:       "- Average lead time improved to %s days (%s vs baseline).",
				Stable:         "- Lead time is broadly stable at %s days.",
			},
		},
		FinanceSpecs: []schema.MetricSpec{
			{
				// Report-only: revenue is stated, never classified.
				Name:   schema.RevenueMetric,
				Column: "revenue_nzd",
				Agg:    schema.SumAgg,
				Format: FormatThousands,
			},
			{
				Name:           schema.GrossMarginMetric,
				Column:         "gross_margin_pct",
				Agg:            schema.MeanAgg,
				Edge:           3,
				HigherIsBetter: true,
				Format:         formatPct,
				Degraded:       "- Gross margin eased to %s (%s vs prior months).",
				Improved:       "- Gross margin improved to %s (%s vs prior months).",
				Stable:         "- Gross margin is stable around %s versus recent months.",
			},
			{
				Name:           schema.EbitdaMarginMetric,
				Column:         "ebitda_margin_pct",
				Agg:            schema.MeanAgg,
				Edge:           3,
				HigherIsBetter: true,
				Format:         formatPct,
				Degraded:       "- EBITDA margin softened to %s (%s vs prior months).",
				Improved:       "- EBITDA margin strengthened to %s (%s vs prior months).",
				Stable:         "- EBITDA margin is broadly stable at %s.",
			},
		},
	}
}

// ApplyEdges overrides classification edges by metric name. Unknown names
// are ignored; a zero or negative override keeps the default.
func (p *Policy) ApplyEdges(edges map[string]float64) {
	tables := [][]schema.MetricSpec{p.ProductionSpecs, p.ShipmentSpecs, p.FinanceSpecs}
	for _, table := range tables {
		for i := range table {
			if table[i].Edge == 0 {
				continue // report-only metrics stay unclassified
			}
			if edge, ok := edges[table[i].Name]; ok && edge > 0 {
				table[i].Edge = edge
			}
		}
	}
}

// prescriptiveActions is the static rule table rendered in the copilot
// report. No computation feeds it.
var prescriptiveActions = []string{
	"- Run a short root-cause session on the weakest mill: focus on top 1–2 downtime drivers and quick maintenance wins.",
	"- Sit down with the lowest-OTIF customer and map their order-to-delivery steps: agree on cut-off times and booking rules.",
	"- For the weakest-margin region, review price vs cost-to-serve and consider a small price uplift or a product mix shift.",
	"- Feed these patterns back into planning: use the forecast as a simple early-warning signal rather than a hard budget.",
}
