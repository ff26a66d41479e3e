// Package core has the KPI comparison and forecasting engine: windowed
// aggregation, change classification, trend forecasting, narration and the
// two report composers.
package core

import (
	"math"

	"github.com/openforest/millpulse/schema"
)

// Aggregate computes one aggregated value per metric spec over the records
// whose period falls inside the window. Null values are skipped; a metric
// with zero matching non-null rows yields a nil entry, not zero. The result
// does not depend on row order.
func Aggregate(ds schema.Dataset, specs []schema.MetricSpec, w schema.Window) schema.KpiSnapshot {
	sums := make(map[string]float64, len(specs))
	counts := make(map[string]int, len(specs))

	for _, rec := range ds {
		if !w.Contains(rec.Period) {
			continue
		}
		for _, spec := range specs {
			v := rec.Values[spec.Column]
			if v == nil || math.IsNaN(*v) {
				continue
			}
			sums[spec.Column] += *v
			counts[spec.Column]++
		}
	}

	snap := make(schema.KpiSnapshot, len(specs))
	for _, spec := range specs {
		n := counts[spec.Column]
		if n == 0 {
			snap[spec.Column] = nil
			continue
		}
		value := sums[spec.Column]
		if spec.Agg == schema.MeanAgg {
			value /= float64(n)
		}
		snap[spec.Column] = &value
	}
	return snap
}
