package service

import (
	"errors"
	"math"
)

// HoltEstimator is a double-exponential-smoothing forecaster. It picks
// its smoothing parameters by a coarse grid search over the one-step
// in-sample error, which is plenty for weekly spending series.
type HoltEstimator struct{}

func (HoltEstimator) Name() string { return "holt" }

// Forecast fits level and trend components and extrapolates them. It
// refuses series shorter than 20 points or containing non-finite values.
func (HoltEstimator) Forecast(series []float64, periods int) ([]float64, error) {
	if len(series) < 20 {
		return nil, errors.New("series too short for smoothing")
	}
	for _, x := range series {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.New("series contains non-finite values")
		}
	}

	grid := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	bestErr := math.Inf(1)
	var bestLevel, bestTrend float64
	for _, alpha := range grid {
		for _, beta := range grid {
			level, trend, sse := fitHolt(series, alpha, beta)
			if sse < bestErr {
				bestErr = sse
				bestLevel, bestTrend = level, trend
			}
		}
	}

	out := make([]float64, periods)
	for h := 1; h <= periods; h++ {
		v := bestLevel + float64(h)*bestTrend
		if v < 0 {
			v = 0
		}
		out[h-1] = v
	}
	return out, nil
}

// fitHolt runs one smoothing pass and returns the final level, final
// trend and the sum of squared one-step errors.
func fitHolt(series []float64, alpha, beta float64) (level, trend, sse float64) {
	level = series[0]
	trend = series[1] - series[0]
	for _, x := range series[1:] {
		forecast := level + trend
		err := x - forecast
		sse += err * err

		prevLevel := level
		level = alpha*x + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}
	return level, trend, sse
}
