package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDegenerate is returned when a regression line is undefined: fewer
// than two points, or every x identical.
var ErrDegenerate = errors.New("cannot calculate a linear regression")

// tiny keeps the t statistic finite for a perfect fit.
const tiny = 1.0e-20

// Regression is an ordinary least-squares fit of y on x.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R         float64 `json:"r"`
	RSquared  float64 `json:"rSquared"`
	PValue    float64 `json:"pValue"`
	StdErr    float64 `json:"stdErr"` // standard error of the slope
	N         int     `json:"n"`
}

// LinearRegression fits y = Slope*x + Intercept. PValue is two-sided for
// the null hypothesis of zero slope (Student t, N-2 degrees of freedom).
func LinearRegression(x, y []float64) (Regression, error) {
	if len(x) != len(y) {
		return Regression{}, fmt.Errorf("x and y differ in length: %d != %d", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return Regression{}, fmt.Errorf("%w: need at least 2 points, have %d", ErrDegenerate, n)
	}
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			return Regression{}, fmt.Errorf("%w: point %d is not finite", ErrDegenerate, i)
		}
	}

	xm, ym := stat.Mean(x, nil), stat.Mean(y, nil)
	var ssx, ssy, ssxy float64
	for i := range x {
		dx, dy := x[i]-xm, y[i]-ym
		ssx += dx * dx
		ssy += dy * dy
		ssxy += dx * dy
	}
	if ssx == 0 {
		return Regression{}, fmt.Errorf("%w: all x values are identical", ErrDegenerate)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	var r float64
	if ssy != 0 {
		r = ssxy / math.Sqrt(ssx*ssy)
		r = math.Max(-1, math.Min(1, r))
	}

	reg := Regression{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		RSquared:  r * r,
		N:         n,
	}

	df := float64(n - 2)
	if n == 2 {
		if y[0] == y[1] {
			reg.PValue = 1
		}
		return reg, nil
	}

	t := r * math.Sqrt(df/((1-r+tiny)*(1+r+tiny)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	reg.PValue = 2 * dist.Survival(math.Abs(t))
	reg.StdErr = math.Sqrt((1 - r*r) * ssy / ssx / df)
	return reg, nil
}

// Predict evaluates the fitted line at each x.
func (r Regression) Predict(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = r.Slope*x + r.Intercept
	}
	return out
}

// Linspace returns n evenly spaced values over [lo, hi], both ends included.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := floats.Span(make([]float64, n), lo, hi)
	out[n-1] = hi
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
