// Package interp evaluates tabulated performance curves.
//
// PCHIP: Piecewise Cubic Hermite Interpolating Polynomial
//
// Description:
//
//	Constraint curves (required T/W against W/S) are sampled on a grid that is
//	not guaranteed to be evenly spaced. A shape-preserving interpolant is
//	needed so that the evaluated curve never overshoots the tabulated values
//	between samples; an overshoot would falsely pass or fail a design point.
//
// Algorithm Outline:
//  1. Drop every (x, y) pair with a non-finite coordinate. Require n ≥ 2
//     remaining samples with strictly increasing x.
//  2. Secants: h[k] = x[k+1]-x[k], δ[k] = (y[k+1]-y[k]) / h[k].
//  3. Interior tangents: d[k] = 0 when δ[k-1] and δ[k] differ in sign or
//     either is zero; otherwise the weighted harmonic mean
//     (w1+w2) / (w1/δ[k-1] + w2/δ[k]) with w1 = 2h[k]+h[k-1],
//     w2 = h[k]+2h[k-1], limited to 3·min(|δ[k-1]|, |δ[k]|).
//  4. End tangents: the one-sided three-point estimate, forced to 0 when its
//     sign disagrees with the end secant and limited to 3·δ when the first
//     two secants disagree in sign. With two samples the curve is linear.
//  5. Evaluate the cubic Hermite basis on the bracketing interval. Queries
//     outside [x[0], x[n-1]] reuse the first or last interval's cubic.
//
// Complexity:
//
//	Build  = O(n)
//	Query  = O(log n)
//	Memory = O(n)
//
// Errors:
//   - ErrLengthMismatch: xs and ys differ in length.
//   - ErrTooFewPoints: fewer than two finite samples.
//   - ErrNotIncreasing: finite xs are not strictly increasing.
//   - ErrNonFiniteQuery: the query x is NaN or infinite.
package interp

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrLengthMismatch indicates xs and ys have different lengths.
	ErrLengthMismatch = errors.New("interp: xs and ys differ in length")

	// ErrTooFewPoints indicates fewer than two finite samples remain.
	ErrTooFewPoints = errors.New("interp: fewer than two finite samples")

	// ErrNotIncreasing indicates the finite xs are not strictly increasing.
	ErrNotIncreasing = errors.New("interp: sample x values must be strictly increasing")

	// ErrNonFiniteQuery indicates the query x is NaN or ±Inf.
	ErrNonFiniteQuery = errors.New("interp: query x is not finite")
)

// MonotoneCubic is a built PCHIP interpolant. It is immutable and safe for
// concurrent use.
type MonotoneCubic struct {
	xs []float64
	ys []float64
	ds []float64 // tangent at each knot
}

// NewMonotoneCubic filters the samples and derives the knot tangents.
func NewMonotoneCubic(xs, ys []float64) (*MonotoneCubic, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}

	fx := make([]float64, 0, len(xs))
	fy := make([]float64, 0, len(ys))
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		fx = append(fx, xs[i])
		fy = append(fy, ys[i])
	}
	if len(fx) < 2 {
		return nil, ErrTooFewPoints
	}
	for i := 1; i < len(fx); i++ {
		if !(fx[i] > fx[i-1]) {
			return nil, ErrNotIncreasing
		}
	}

	return &MonotoneCubic{xs: fx, ys: fy, ds: tangents(fx, fy)}, nil
}

// At evaluates the interpolant at x. Outside the sampled domain the boundary
// interval's cubic is extended.
func (m *MonotoneCubic) At(x float64) float64 {
	n := len(m.xs)
	// k is the left knot of the bracketing interval, clamped to [0, n-2].
	k := sort.SearchFloat64s(m.xs, x) - 1
	if k < 0 {
		k = 0
	}
	if k > n-2 {
		k = n - 2
	}

	h := m.xs[k+1] - m.xs[k]
	t := (x - m.xs[k]) / h
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*m.ys[k] + h10*h*m.ds[k] + h01*m.ys[k+1] + h11*h*m.ds[k+1]
}

// Knots returns copies of the filtered sample coordinates.
func (m *MonotoneCubic) Knots() (xs, ys []float64) {
	xs = append([]float64(nil), m.xs...)
	ys = append([]float64(nil), m.ys...)
	return xs, ys
}

// PCHIP builds an interpolant over (xs, ys) and evaluates it at x.
func PCHIP(xs, ys []float64, x float64) (float64, error) {
	if !finite(x) {
		return math.NaN(), ErrNonFiniteQuery
	}
	m, err := NewMonotoneCubic(xs, ys)
	if err != nil {
		return math.NaN(), err
	}
	return m.At(x), nil
}

func tangents(x, y []float64) []float64 {
	n := len(x)
	h := make([]float64, n-1)
	del := make([]float64, n-1)
	for k := 0; k < n-1; k++ {
		h[k] = x[k+1] - x[k]
		del[k] = (y[k+1] - y[k]) / h[k]
	}

	d := make([]float64, n)
	if n == 2 {
		d[0], d[1] = del[0], del[0]
		return d
	}

	for k := 1; k < n-1; k++ {
		a, b := del[k-1], del[k]
		if a*b <= 0 {
			d[k] = 0
			continue
		}
		w1 := 2*h[k] + h[k-1]
		w2 := h[k] + 2*h[k-1]
		dk := (w1 + w2) / (w1/a + w2/b)
		limit := 3 * math.Min(math.Abs(a), math.Abs(b))
		if math.Abs(dk) > limit {
			dk = math.Copysign(limit, dk)
		}
		d[k] = dk
	}

	d[0] = endTangent(h[0], h[1], del[0], del[1])
	d[n-1] = endTangent(h[n-2], h[n-3], del[n-2], del[n-3])
	return d
}

// endTangent is the shape-preserving one-sided three-point estimate at an end
// knot. h0/del0 belong to the end interval, h1/del1 to its neighbour.
func endTangent(h0, h1, del0, del1 float64) float64 {
	d := ((2*h0+h1)*del0 - h0*del1) / (h0 + h1)
	switch {
	case sign(d) != sign(del0):
		return 0
	case sign(del0) != sign(del1) && math.Abs(d) > math.Abs(3*del0):
		return 3 * del0
	default:
		return d
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
