package render

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/interp"

	"github.com/sargas/network-rank/pkg/plot"
)

// curveSamples is the number of points a smoothed curve is evaluated at.
const curveSamples = 200

// monotonic sorts points by x and averages y over equal x, which spline and
// bezier fitting both require.
func monotonic(xs, ys []float64) ([]float64, []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	outX := make([]float64, 0, len(xs))
	outY := make([]float64, 0, len(ys))
	for i := 0; i < len(idx); {
		x := xs[idx[i]]
		sum, n := 0.0, 0
		for ; i < len(idx) && xs[idx[i]] == x; i++ {
			sum += ys[idx[i]]
			n++
		}
		outX = append(outX, x)
		outY = append(outY, sum/float64(n))
	}
	return outX, outY
}

// smooth returns the connecting curve through (xs, ys). With SmoothNone the
// points are returned in input order, joined by straight segments.
func smooth(xs, ys []float64, method plot.Smoothing, samples int) ([]float64, []float64) {
	if method == plot.SmoothNone || method == "" || len(xs) < 2 {
		return xs, ys
	}

	mx, my := monotonic(xs, ys)
	if len(mx) < 2 {
		return mx, my
	}

	switch method {
	case plot.SmoothCSplines:
		if len(mx) < 3 {
			return mx, my
		}
		var nc interp.NaturalCubic
		if err := nc.Fit(mx, my); err != nil {
			return mx, my
		}
		return evaluate(mx[0], mx[len(mx)-1], samples, nc.Predict)
	case plot.SmoothBezier:
		return bezier(mx, my, samples)
	default:
		return mx, my
	}
}

func evaluate(lo, hi float64, samples int, f func(float64) float64) ([]float64, []float64) {
	if samples < 2 {
		samples = 2
	}
	xs := make([]float64, samples)
	ys := make([]float64, samples)
	step := (hi - lo) / float64(samples-1)
	for i := range xs {
		x := lo + step*float64(i)
		if i == samples-1 {
			x = hi
		}
		xs[i] = x
		ys[i] = f(x)
	}
	return xs, ys
}

// bezier evaluates the Bézier curve that uses every point as a control point,
// by de Casteljau's algorithm.
func bezier(xs, ys []float64, samples int) ([]float64, []float64) {
	if samples < 2 {
		samples = 2
	}
	n := len(xs)
	bx := make([]float64, n)
	by := make([]float64, n)
	outX := make([]float64, samples)
	outY := make([]float64, samples)

	for s := 0; s < samples; s++ {
		t := float64(s) / float64(samples-1)
		copy(bx, xs)
		copy(by, ys)
		for k := n - 1; k > 0; k-- {
			for i := 0; i < k; i++ {
				bx[i] = (1-t)*bx[i] + t*bx[i+1]
				by[i] = (1-t)*by[i] + t*by[i+1]
			}
		}
		outX[s] = bx[0]
		outY[s] = by[0]
	}
	return outX, outY
}

// resample evaluates a curve at n evenly spaced x positions across its span.
func resample(xs, ys []float64, n int) []float64 {
	mx, my := monotonic(xs, ys)
	if len(mx) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = my[0]
		}
		return out
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(mx, my); err != nil {
		return my
	}
	_, out := evaluate(mx[0], mx[len(mx)-1], n, pl.Predict)
	return out
}

// secondsSince converts dates into float seconds relative to origin, which
// keeps spline fitting well conditioned.
func secondsSince(origin time.Time, dates []time.Time) []float64 {
	xs := make([]float64, len(dates))
	for i, d := range dates {
		xs[i] = d.Sub(origin).Seconds()
	}
	return xs
}

func datesFrom(origin time.Time, xs []float64) []time.Time {
	out := make([]time.Time, len(xs))
	for i, x := range xs {
		out[i] = origin.Add(time.Duration(x * float64(time.Second)))
	}
	return out
}
