package core

import (
	"math"

	"github.com/openforest/millpulse/schema"
)

// PercentChange returns the signed percent change from baseline to current,
// or nil when either value is missing or the baseline is zero or NaN. The
// nil result propagates through classification and narration rather than
// becoming an error.
func PercentChange(current, baseline *float64) *float64 {
	if current == nil || baseline == nil {
		return nil
	}
	if *baseline == 0 || math.IsNaN(*baseline) || math.IsNaN(*current) {
		return nil
	}
	delta := (*current - *baseline) / *baseline * 100.0
	return &delta
}

// Classify maps the percent change between current and baseline onto a
// classification using a symmetric band edge in percentage points. A delta
// above +edge improves and below -edge degrades; higherIsBetter=false
// inverts that mapping (more downtime or lead time is worse). An undefined
// delta classifies as unknown.
func Classify(current, baseline *float64, edge float64, higherIsBetter bool) schema.ChangeResult {
	delta := PercentChange(current, baseline)
	if delta == nil {
		return schema.ChangeResult{Class: schema.UnknownChange}
	}

	class := schema.StableChange
	switch {
	case *delta > edge:
		class = schema.ImprovedChange
	case *delta < -edge:
		class = schema.DegradedChange
	}

	if !higherIsBetter {
		switch class {
		case schema.ImprovedChange:
			class = schema.DegradedChange
		case schema.DegradedChange:
			class = schema.ImprovedChange
		}
	}

	return schema.ChangeResult{DeltaPct: delta, Class: class}
}
