package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/openforest/millpulse/schema"
)

// Narrate renders one comparison line per metric spec, selecting the
// degraded, improved or stable template from the classification outcome.
// Metrics whose change is unknown (missing current value, or a null/zero/NaN
// baseline) are omitted entirely rather than rendered half-empty. Specs with
// a zero edge are report-only and skipped here.
func Narrate(current, baseline schema.KpiSnapshot, specs []schema.MetricSpec) []string {
	var lines []string
	for _, spec := range specs {
		if spec.Edge == 0 {
			continue
		}
		cur := current[spec.Column]
		result := Classify(cur, baseline[spec.Column], spec.Edge, spec.HigherIsBetter)
		if result.Class == schema.UnknownChange || cur == nil {
			continue
		}

		value := spec.Format(*cur)
		switch result.Class {
		case schema.DegradedChange:
			lines = append(lines, fmt.Sprintf(spec.Degraded, value, FormatDelta(*result.DeltaPct)))
		case schema.ImprovedChange:
			lines = append(lines, fmt.Sprintf(spec.Improved, value, FormatDelta(*result.DeltaPct)))
		default:
			lines = append(lines, fmt.Sprintf(spec.Stable, value))
		}
	}
	return lines
}

// RankEntities computes the per-entity mean of one column over a window and
// identifies the worst and best performers. The cohort mean is the mean of
// the per-entity means, so small entities weigh the same as large ones.
// Ties break on entity name for deterministic output. The second return is
// false when no entity has a non-null value inside the window.
func RankEntities(ds schema.Dataset, column string, w schema.Window, higherIsBetter bool) (schema.Ranking, bool) {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, rec := range ds {
		if !w.Contains(rec.Period) {
			continue
		}
		v := rec.Values[column]
		if v == nil || math.IsNaN(*v) {
			continue
		}
		sums[rec.Entity] += *v
		counts[rec.Entity]++
	}

	if len(counts) == 0 {
		return schema.Ranking{}, false
	}

	stats := make([]schema.EntityStat, 0, len(counts))
	var total float64
	for entity, n := range counts {
		mean := sums[entity] / float64(n)
		stats = append(stats, schema.EntityStat{Entity: entity, Value: mean})
		total += mean
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Value != stats[j].Value {
			return stats[i].Value < stats[j].Value
		}
		return stats[i].Entity < stats[j].Entity
	})

	lowest := stats[0]
	highest := stats[len(stats)-1]
	ranking := schema.Ranking{
		CohortMean: total / float64(len(stats)),
		Entities:   len(stats),
	}
	if higherIsBetter {
		ranking.Worst = lowest
		ranking.Best = highest
	} else {
		ranking.Worst = highest
		ranking.Best = lowest
	}
	return ranking, true
}

// FormatDelta renders a percent change with an explicit sign, e.g. "+3.4%"
// or "-5.3%".
func FormatDelta(delta float64) string {
	return fmt.Sprintf("%+.1f%%", delta)
}

// FormatThousands renders a value rounded to the nearest integer with comma
// grouping, e.g. 1234567.8 -> "1,234,568".
func FormatThousands(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
