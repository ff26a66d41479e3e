// Package schema has configs, models and constants for all parts of millpulse.
package schema

import "time"

// Record is one row of a domain dataset as returned by the warehouse.
// Period is the row's date (or first-of-month for finance), Entity is the
// reporting entity (mill, customer, region), and Values maps a metric column
// to its numeric value. A nil value means the column was NULL for this row.
type Record struct {
	Period time.Time
	Entity string
	Values map[string]*float64
}

// Dataset is a tabular query result for one domain.
type Dataset []Record

// KpiSnapshot maps a metric column to its aggregated value for one window.
// A nil entry means no rows matched the window for that metric.
type KpiSnapshot map[string]*float64

// SeriesPoint is one (period, value) observation in a metric series.
type SeriesPoint struct {
	Period time.Time
	Value  *float64
}

// MetricSeries is a time-ordered sequence of observations, sorted ascending
// by period with unique periods.
type MetricSeries []SeriesPoint

// ChangeResult is the outcome of comparing a current value to a baseline.
// DeltaPct is nil when the baseline is nil, zero, or NaN, in which case
// Class is UnknownChange.
type ChangeResult struct {
	DeltaPct *float64
	Class    Classification
}

// ForecastResult is a single trend extrapolation.
// DeltaPctVsLatest compares the prediction to the last observed value.
type ForecastResult struct {
	Predicted        float64
	HorizonSteps     int
	DeltaPctVsLatest *float64
}

// EntityStat is the aggregated value of one metric for one entity over a
// trailing window, used by the diagnostic ranking.
type EntityStat struct {
	Entity string
	Value  float64
}

// Ranking holds the best and worst entities for a metric plus the cohort
// mean, where the cohort mean is the mean of the per-entity means.
type Ranking struct {
	Worst      EntityStat
	Best       EntityStat
	CohortMean float64
	Entities   int
}

// KpiRow is one rendered row of the KPI snapshot table: a metric's current
// and baseline aggregates with the classification outcome.
type KpiRow struct {
	Domain   Domain         `json:"domain"`
	Metric   string         `json:"metric"`
	Current  *float64       `json:"current"`
	Baseline *float64       `json:"baseline"`
	DeltaPct *float64       `json:"delta_pct"`
	Class    Classification `json:"classification"`
}

// MetricSpec fixes the policy for one metric: which column to aggregate and
// how, the classification band edge (in percentage points), the direction
// sense, the display format, and the three narrative templates.
//
// Degraded and Improved templates take two %s verbs (formatted value, signed
// delta); Stable takes one (formatted value). A zero Edge disables
// classification for the metric.
type MetricSpec struct {
	Name           string
	Column         string
	Agg            AggKind
	Edge           float64
	HigherIsBetter bool
	Format         func(float64) string

	Degraded string
	Improved string
	Stable   string
}
