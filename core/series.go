package core

import (
	"math"
	"sort"
	"time"

	"github.com/openforest/millpulse/schema"
)

// SeriesByPeriod collapses a dataset into a per-period mean series for one
// column, sorted ascending by period. Periods are unique in the result; a
// period whose rows are all null keeps a nil value so the forecaster can
// drop it.
func SeriesByPeriod(ds schema.Dataset, column string) schema.MetricSeries {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	seen := make(map[time.Time]struct{})
	var order []time.Time

	for _, rec := range ds {
		if _, ok := seen[rec.Period]; !ok {
			seen[rec.Period] = struct{}{}
			order = append(order, rec.Period)
		}
		v := rec.Values[column]
		if v == nil || math.IsNaN(*v) {
			continue
		}
		sums[rec.Period] += *v
		counts[rec.Period]++
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	series := make(schema.MetricSeries, 0, len(order))
	for _, p := range order {
		if counts[p] == 0 {
			series = append(series, schema.SeriesPoint{Period: p})
			continue
		}
		mean := sums[p] / float64(counts[p])
		series = append(series, schema.SeriesPoint{Period: p, Value: &mean})
	}
	return series
}

// LatestPeriod returns the maximum period in the dataset. The second return
// is false when the dataset is empty.
func LatestPeriod(ds schema.Dataset) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, rec := range ds {
		if !found || rec.Period.After(latest) {
			latest = rec.Period
			found = true
		}
	}
	return latest, found
}
