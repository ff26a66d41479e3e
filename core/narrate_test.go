package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openforest/millpulse/schema"
)

var narrateSpec = schema.MetricSpec{
	Name:           "yield",
	Column:         "yield_pct",
	Agg:            schema.MeanAgg,
	Edge:           2,
	HigherIsBetter: true,
	Format:         formatPct,
	Degraded:       "- Yield decreased to %s (%s vs 7-day average).",
	Improved:       "- Yield improved to %s (%s vs 7-day average).",
	Stable:         "- Yield is stable around %s vs 7-day average.",
}

// TestNarrateTemplates verifies the template picked for each classification.
func TestNarrateTemplates(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		baseline *float64
		expected string
	}{
		{
			name:     "degraded line",
			current:  ptr(0.80),
			baseline: ptr(0.90),
			expected: "- Yield decreased to 80.0% (-11.1% vs 7-day average).",
		},
		{
			name:     "improved line",
			current:  ptr(0.90),
			baseline: ptr(0.80),
			expected: "- Yield improved to 90.0% (+12.5% vs 7-day average).",
		},
		{
			name:     "stable line",
			current:  ptr(0.85),
			baseline: ptr(0.849),
			expected: "- Yield is stable around 85.0% vs 7-day average.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := schema.KpiSnapshot{"yield_pct": tt.current}
			baseline := schema.KpiSnapshot{"yield_pct": tt.baseline}

			lines := Narrate(current, baseline, []schema.MetricSpec{narrateSpec})

			assert.Equal(t, []string{tt.expected}, lines)
		})
	}
}

// TestNarrateSuppressesUnknown verifies metrics with an undefined comparison
// are omitted entirely.
func TestNarrateSuppressesUnknown(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		baseline *float64
	}{
		{name: "nil current", current: nil, baseline: ptr(0.85)},
		{name: "nil baseline", current: ptr(0.85), baseline: nil},
		{name: "zero baseline", current: ptr(0.85), baseline: ptr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := schema.KpiSnapshot{"yield_pct": tt.current}
			baseline := schema.KpiSnapshot{"yield_pct": tt.baseline}

			lines := Narrate(current, baseline, []schema.MetricSpec{narrateSpec})

			assert.Empty(t, lines)
		})
	}
}

// TestNarrateSkipsReportOnlySpecs verifies zero-edge specs never narrate.
func TestNarrateSkipsReportOnlySpecs(t *testing.T) {
	revenueSpec := schema.MetricSpec{
		Name: "revenue", Column: "revenue_nzd", Agg: schema.SumAgg, Format: FormatThousands,
	}
	current := schema.KpiSnapshot{"revenue_nzd": ptr(500000)}
	baseline := schema.KpiSnapshot{"revenue_nzd": ptr(400000)}

	lines := Narrate(current, baseline, []schema.MetricSpec{revenueSpec})

	assert.Empty(t, lines)
}

// TestRankEntities verifies worst/best selection and the cohort mean being
// the mean of per-entity means.
func TestRankEntities(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "Kaituna", map[string]*float64{"yield_pct": ptr(0.90)}),
		record(day(2), "Kaituna", map[string]*float64{"yield_pct": ptr(0.90)}),
		record(day(1), "Napier", map[string]*float64{"yield_pct": ptr(0.60)}),
	}

	ranking, ok := RankEntities(ds, "yield_pct", schema.Interval(day(1), day(2)), true)

	assert.True(t, ok)
	assert.Equal(t, 2, ranking.Entities)
	assert.Equal(t, "Napier", ranking.Worst.Entity)
	assert.InDelta(t, 0.60, ranking.Worst.Value, 0.0001)
	assert.Equal(t, "Kaituna", ranking.Best.Entity)
	// Mean of means, so Kaituna's two rows do not outweigh Napier's one.
	assert.InDelta(t, 0.75, ranking.CohortMean, 0.0001)
}

// TestRankEntitiesLowerIsBetter verifies the inversion for downtime-style
// metrics where the highest value is the worst performer.
func TestRankEntitiesLowerIsBetter(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "Kaituna", map[string]*float64{"downtime_hours": ptr(0.5)}),
		record(day(1), "Napier", map[string]*float64{"downtime_hours": ptr(3.0)}),
	}

	ranking, ok := RankEntities(ds, "downtime_hours", schema.Interval(day(1), day(1)), false)

	assert.True(t, ok)
	assert.Equal(t, "Napier", ranking.Worst.Entity)
	assert.Equal(t, "Kaituna", ranking.Best.Entity)
}

// TestRankEntitiesTieBreak verifies ties resolve by entity name so output is
// deterministic.
func TestRankEntitiesTieBreak(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "Zed", map[string]*float64{"yield_pct": ptr(0.80)}),
		record(day(1), "Alpha", map[string]*float64{"yield_pct": ptr(0.80)}),
	}

	ranking, ok := RankEntities(ds, "yield_pct", schema.Interval(day(1), day(1)), true)

	assert.True(t, ok)
	assert.Equal(t, "Alpha", ranking.Worst.Entity)
	assert.Equal(t, "Zed", ranking.Best.Entity)
}

// TestRankEntitiesNoData verifies absence when nothing falls in the window.
func TestRankEntitiesNoData(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "Kaituna", map[string]*float64{"yield_pct": nil}),
	}

	_, ok := RankEntities(ds, "yield_pct", schema.Interval(day(1), day(1)), true)

	assert.False(t, ok)
}

// TestFormatDelta verifies the explicit sign rendering.
func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+3.4%", FormatDelta(3.42))
	assert.Equal(t, "-5.3%", FormatDelta(-5.26))
	assert.Equal(t, "+0.0%", FormatDelta(0))
}

// TestFormatThousands verifies rounding and comma grouping.
func TestFormatThousands(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "millions", value: 1234567.8, expected: "1,234,568"},
		{name: "thousands", value: 12345, expected: "12,345"},
		{name: "below grouping", value: 999.4, expected: "999"},
		{name: "negative", value: -1234567.8, expected: "-1,234,568"},
		{name: "zero", value: 0, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatThousands(tt.value))
		})
	}
}
