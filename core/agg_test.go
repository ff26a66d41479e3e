package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openforest/millpulse/schema"
)

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func record(period time.Time, entity string, values map[string]*float64) schema.Record {
	return schema.Record{Period: period, Entity: entity, Values: values}
}

var yieldMeanSpec = schema.MetricSpec{
	Name: "yield", Column: "yield_pct", Agg: schema.MeanAgg,
}

var outputSumSpec = schema.MetricSpec{
	Name: "output", Column: "output_volume_m3", Agg: schema.SumAgg,
}

// TestAggregateMeanAndSum verifies both aggregation kinds over one window.
func TestAggregateMeanAndSum(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "Kaituna", map[string]*float64{"yield_pct": ptr(0.80), "output_volume_m3": ptr(100)}),
		record(day(2), "Kaituna", map[string]*float64{"yield_pct": ptr(0.90), "output_volume_m3": ptr(200)}),
		record(day(3), "Napier", map[string]*float64{"yield_pct": ptr(0.70), "output_volume_m3": ptr(300)}),
	}

	snap := Aggregate(ds, []schema.MetricSpec{yieldMeanSpec, outputSumSpec}, schema.Interval(day(1), day(3)))

	assert.InDelta(t, 0.80, *snap["yield_pct"], 0.0001)
	assert.InDelta(t, 600, *snap["output_volume_m3"], 0.0001)
}

// TestAggregateWindowFilter verifies records outside the window are ignored.
func TestAggregateWindowFilter(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "Kaituna", map[string]*float64{"output_volume_m3": ptr(100)}),
		record(day(2), "Kaituna", map[string]*float64{"output_volume_m3": ptr(200)}),
		record(day(9), "Kaituna", map[string]*float64{"output_volume_m3": ptr(900)}),
	}

	snap := Aggregate(ds, []schema.MetricSpec{outputSumSpec}, schema.Interval(day(1), day(2)))

	assert.InDelta(t, 300, *snap["output_volume_m3"], 0.0001)
}

// TestAggregateSkipsNulls verifies null and NaN values neither contribute to
// the sum nor inflate the mean's denominator.
func TestAggregateSkipsNulls(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "Kaituna", map[string]*float64{"yield_pct": ptr(0.80)}),
		record(day(2), "Kaituna", map[string]*float64{"yield_pct": nil}),
		record(day(3), "Kaituna", map[string]*float64{"yield_pct": ptr(math.NaN())}),
		record(day(4), "Kaituna", map[string]*float64{"yield_pct": ptr(0.60)}),
	}

	snap := Aggregate(ds, []schema.MetricSpec{yieldMeanSpec}, schema.Interval(day(1), day(4)))

	assert.InDelta(t, 0.70, *snap["yield_pct"], 0.0001)
}

// TestAggregateEmptyWindowYieldsNil verifies a metric with no matching
// non-null rows produces a nil entry rather than zero.
func TestAggregateEmptyWindowYieldsNil(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "Kaituna", map[string]*float64{"yield_pct": ptr(0.80)}),
	}

	snap := Aggregate(ds, []schema.MetricSpec{yieldMeanSpec}, schema.Interval(day(10), day(20)))

	assert.Contains(t, snap, "yield_pct")
	assert.Nil(t, snap["yield_pct"])
}

// TestAggregateOrderInvariance verifies row order does not change the result.
func TestAggregateOrderInvariance(t *testing.T) {
	forward := schema.Dataset{
		record(day(1), "A", map[string]*float64{"yield_pct": ptr(0.81)}),
		record(day(2), "B", map[string]*float64{"yield_pct": ptr(0.92)}),
		record(day(3), "C", map[string]*float64{"yield_pct": ptr(0.73)}),
	}
	reversed := schema.Dataset{forward[2], forward[1], forward[0]}
	window := schema.Interval(day(1), day(3))
	specs := []schema.MetricSpec{yieldMeanSpec}

	a := Aggregate(forward, specs, window)
	b := Aggregate(reversed, specs, window)

	assert.InDelta(t, *a["yield_pct"], *b["yield_pct"], 0.0000001)
}

// TestAggregatePeriodSetWindow verifies explicit period keys select exactly
// the named periods, as used by the month-based finance baseline.
func TestAggregatePeriodSetWindow(t *testing.T) {
	ds := schema.Dataset{
		record(day(1), "North Island", map[string]*float64{"output_volume_m3": ptr(10)}),
		record(day(2), "North Island", map[string]*float64{"output_volume_m3": ptr(20)}),
		record(day(3), "North Island", map[string]*float64{"output_volume_m3": ptr(40)}),
	}

	snap := Aggregate(ds, []schema.MetricSpec{outputSumSpec}, schema.PeriodSet(day(1), day(3)))

	assert.InDelta(t, 50, *snap["output_volume_m3"], 0.0001)
}
