// Package reduce collapses per-core and per-channel counter series into one
// scalar. Every reduction either returns a finite value or an error wrapping
// statserrors.ErrRUndefined; NaN and Inf never escape.
package reduce

import (
	"fmt"
	"math"

	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/montanaflynn/stats"
	"golang.org/x/exp/constraints"
)

// ErrUndefined is returned when a reduction has no defined value.
var ErrUndefined = statserrors.ErrRUndefined

type Number interface {
	constraints.Integer | constraints.Float
}

// Floats converts a numeric series to float64.
func Floats[T Number](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// Mean is the arithmetic mean.
func Mean(series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, fmt.Errorf("mean of empty series: %w", ErrUndefined)
	}
	m, err := stats.Mean(series)
	if err != nil {
		return 0, fmt.Errorf("mean: %v: %w", err, ErrUndefined)
	}
	return finite(m)
}

// Sum adds the series; an empty series sums to zero.
func Sum(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	s, _ := stats.Sum(series)
	return s
}

// Max is the largest element.
func Max(series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, fmt.Errorf("max of empty series: %w", ErrUndefined)
	}
	m, err := stats.Max(series)
	if err != nil {
		return 0, fmt.Errorf("max: %v: %w", err, ErrUndefined)
	}
	return m, nil
}

// Geomean is the geometric mean. A zero element yields zero; a negative one is
// undefined.
func Geomean(series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, fmt.Errorf("geomean of empty series: %w", ErrUndefined)
	}
	logSum := 0.0
	for _, v := range series {
		switch {
		case v < 0 || math.IsNaN(v):
			return 0, fmt.Errorf("geomean over %v: %w", v, statserrors.ErrRNonPositive)
		case v == 0:
			return 0, nil
		}
		logSum += math.Log(v)
	}
	if len(series) == 1 {
		return series[0], nil
	}
	g, err := stats.GeometricMean(series)
	if err != nil || math.IsInf(g, 0) || math.IsNaN(g) || g == 0 {
		// product over- or underflowed; fall back to the log-domain form
		g = math.Exp(logSum / float64(len(series)))
	}
	return finite(g)
}

// Ratio divides num by den, undefined for a zero denominator.
func Ratio(num, den float64) (float64, error) {
	if den == 0 {
		return 0, fmt.Errorf("%v / 0: %w", num, ErrUndefined)
	}
	return finite(num / den)
}

// PairwiseRatios divides num[i] by scale*den[i] over the common prefix of the
// two series. Any zero denominator makes the whole series undefined.
func PairwiseRatios(num, den []float64, scale float64) ([]float64, error) {
	n := len(num)
	if len(den) < n {
		n = len(den)
	}
	if n == 0 {
		return nil, fmt.Errorf("no paired values: %w", ErrUndefined)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		r, err := Ratio(num[i], scale*den[i])
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		out[i] = r
	}
	return out, nil
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	r, err := stats.Round(v, places)
	if err != nil {
		return v
	}
	return r
}

// Percentages scales each bucket to its share of the bucket total, in percent.
func Percentages(buckets []float64) ([]float64, error) {
	total := Sum(buckets)
	if total == 0 {
		return nil, fmt.Errorf("distribution total is zero: %w", ErrUndefined)
	}
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b * 100 / total
	}
	return out, nil
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite result %v: %w", v, ErrUndefined)
	}
	return v, nil
}
