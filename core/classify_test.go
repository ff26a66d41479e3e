package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openforest/millpulse/schema"
)

func ptr(v float64) *float64 { return &v }

// TestPercentChange tests the delta calculation and its null propagation.
func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		baseline *float64
		expected *float64
	}{
		{
			name:     "simple increase",
			current:  ptr(110),
			baseline: ptr(100),
			expected: ptr(10),
		},
		{
			name:     "simple decrease",
			current:  ptr(90),
			baseline: ptr(100),
			expected: ptr(-10),
		},
		{
			name:     "nil current",
			current:  nil,
			baseline: ptr(100),
			expected: nil,
		},
		{
			name:     "nil baseline",
			current:  ptr(100),
			baseline: nil,
			expected: nil,
		},
		{
			name:     "zero baseline",
			current:  ptr(100),
			baseline: ptr(0),
			expected: nil,
		},
		{
			name:     "NaN baseline",
			current:  ptr(100),
			baseline: ptr(math.NaN()),
			expected: nil,
		},
		{
			name:     "NaN current",
			current:  ptr(math.NaN()),
			baseline: ptr(100),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentChange(tt.current, tt.baseline)
			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.InDelta(t, *tt.expected, *result, 0.0001)
			}
		})
	}
}

// TestPercentChangeAntisymmetry verifies swapping a gain for the equivalent
// loss flips the sign but not the magnitude relative to the same baseline.
func TestPercentChangeAntisymmetry(t *testing.T) {
	up := PercentChange(ptr(105), ptr(100))
	down := PercentChange(ptr(95), ptr(100))

	assert.NotNil(t, up)
	assert.NotNil(t, down)
	assert.InDelta(t, *up, -*down, 0.0001)
}

// TestClassify tests band classification including direction inversion.
func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		current        *float64
		baseline       *float64
		edge           float64
		higherIsBetter bool
		expected       schema.Classification
	}{
		{
			name:           "above edge improves",
			current:        ptr(110),
			baseline:       ptr(100),
			edge:           5,
			higherIsBetter: true,
			expected:       schema.ImprovedChange,
		},
		{
			name:           "below edge degrades",
			current:        ptr(90),
			baseline:       ptr(100),
			edge:           5,
			higherIsBetter: true,
			expected:       schema.DegradedChange,
		},
		{
			name:           "inside band is stable",
			current:        ptr(102),
			baseline:       ptr(100),
			edge:           5,
			higherIsBetter: true,
			expected:       schema.StableChange,
		},
		{
			name:           "exactly at edge is stable",
			current:        ptr(105),
			baseline:       ptr(100),
			edge:           5,
			higherIsBetter: true,
			expected:       schema.StableChange,
		},
		{
			name:           "more downtime degrades",
			current:        ptr(2.4),
			baseline:       ptr(2.0),
			edge:           10,
			higherIsBetter: false,
			expected:       schema.DegradedChange,
		},
		{
			name:           "less downtime improves",
			current:        ptr(1.6),
			baseline:       ptr(2.0),
			edge:           10,
			higherIsBetter: false,
			expected:       schema.ImprovedChange,
		},
		{
			name:           "otif slide past the band degrades",
			current:        ptr(0.90),
			baseline:       ptr(0.95),
			edge:           3,
			higherIsBetter: true,
			expected:       schema.DegradedChange,
		},
		{
			name:           "nil current is unknown",
			current:        nil,
			baseline:       ptr(100),
			edge:           5,
			higherIsBetter: true,
			expected:       schema.UnknownChange,
		},
		{
			name:           "zero baseline is unknown",
			current:        ptr(100),
			baseline:       ptr(0),
			edge:           5,
			higherIsBetter: true,
			expected:       schema.UnknownChange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.current, tt.baseline, tt.edge, tt.higherIsBetter)
			assert.Equal(t, tt.expected, result.Class)
			if tt.expected == schema.UnknownChange {
				assert.Nil(t, result.DeltaPct)
			} else {
				assert.NotNil(t, result.DeltaPct)
			}
		})
	}
}

// TestClassifyOtifDelta checks the delta value behind the OTIF example above.
func TestClassifyOtifDelta(t *testing.T) {
	result := Classify(ptr(0.90), ptr(0.95), 3, true)

	assert.Equal(t, schema.DegradedChange, result.Class)
	assert.InDelta(t, -5.26, *result.DeltaPct, 0.01)
}
