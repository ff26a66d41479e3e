package core

import (
	"errors"
	"math"

	"github.com/openforest/millpulse/schema"
)

// ErrInsufficientHistory is returned when a series has too few non-null
// points to fit a trend. Callers render a fallback sentence instead of
// aborting the report.
var ErrInsufficientHistory = errors.New("not enough history to fit a trend")

// MinForecastPoints is the minimum number of non-null observations needed
// before a trend line is fit.
const MinForecastPoints = 5

// Forecast fits an ordinary-least-squares line over the series and
// extrapolates stepsAhead steps past the last observation. Each surviving
// point gets an integer index 0..n-1 in chronological order; the index is a
// rank, not elapsed time, so calendar gaps between periods are ignored.
// The model is refit from scratch on every call.
func Forecast(series schema.MetricSeries, stepsAhead int) (schema.ForecastResult, error) {
	values := make([]float64, 0, len(series))
	for _, p := range series {
		if p.Value == nil || math.IsNaN(*p.Value) {
			continue
		}
		values = append(values, *p.Value)
	}

	n := len(values)
	if n < MinForecastPoints {
		return schema.ForecastResult{}, ErrInsufficientHistory
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	var slope float64
	if denom := fn*sumXX - sumX*sumX; denom != 0 {
		slope = (fn*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / fn

	predicted := slope*float64(n-1+stepsAhead) + intercept
	latest := values[n-1]

	return schema.ForecastResult{
		Predicted:        predicted,
		HorizonSteps:     stepsAhead,
		DeltaPctVsLatest: PercentChange(&predicted, &latest),
	}, nil
}
