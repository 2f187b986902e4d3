package indicator

import "math"

// series is an intermediate float column with a validity mask, shared by the
// rolling helpers. Invalid cells poison any window that contains them, which
// matches how NaNs propagate through rolling computations upstream.
type series struct {
	values []float64
	valid  []bool
}

func newSeries(n int) series {
	return series{values: make([]float64, n), valid: make([]bool, n)}
}

func validSeries(values []float64) series {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return series{values: values, valid: valid}
}

func (s series) set(i int, v float64) {
	s.values[i] = v
	s.valid[i] = true
}

// windowOK reports whether every cell of the w-window ending at i is valid.
func (s series) windowOK(i, w int) bool {
	if i+1 < w {
		return false
	}
	for j := i - w + 1; j <= i; j++ {
		if !s.valid[j] {
			return false
		}
	}
	return true
}

// rollingMean is the arithmetic mean over a trailing window of w cells;
// undefined until the window is full.
func rollingMean(s series, w int) series {
	out := newSeries(len(s.values))
	for i := range s.values {
		if !s.windowOK(i, w) {
			continue
		}
		sum := 0.0
		for j := i - w + 1; j <= i; j++ {
			sum += s.values[j]
		}
		out.set(i, sum/float64(w))
	}
	return out
}

// rollingSum sums a trailing window of w cells.
func rollingSum(s series, w int) series {
	out := newSeries(len(s.values))
	for i := range s.values {
		if !s.windowOK(i, w) {
			continue
		}
		sum := 0.0
		for j := i - w + 1; j <= i; j++ {
			sum += s.values[j]
		}
		out.set(i, sum)
	}
	return out
}

// rollingStd is the sample standard deviation (n-1 denominator) over a
// trailing window of w cells.
func rollingStd(s series, w int) series {
	out := newSeries(len(s.values))
	if w < 2 {
		return out
	}
	for i := range s.values {
		if !s.windowOK(i, w) {
			continue
		}
		sum := 0.0
		for j := i - w + 1; j <= i; j++ {
			sum += s.values[j]
		}
		mean := sum / float64(w)
		var acc float64
		for j := i - w + 1; j <= i; j++ {
			d := s.values[j] - mean
			acc += d * d
		}
		out.set(i, math.Sqrt(acc/float64(w-1)))
	}
	return out
}

// rollingMax returns the maximum over a trailing window of w cells.
func rollingMax(s series, w int) series {
	out := newSeries(len(s.values))
	for i := range s.values {
		if !s.windowOK(i, w) {
			continue
		}
		m := math.Inf(-1)
		for j := i - w + 1; j <= i; j++ {
			if s.values[j] > m {
				m = s.values[j]
			}
		}
		out.set(i, m)
	}
	return out
}

// rollingMin returns the minimum over a trailing window of w cells.
func rollingMin(s series, w int) series {
	out := newSeries(len(s.values))
	for i := range s.values {
		if !s.windowOK(i, w) {
			continue
		}
		m := math.Inf(1)
		for j := i - w + 1; j <= i; j++ {
			if s.values[j] < m {
				m = s.values[j]
			}
		}
		out.set(i, m)
	}
	return out
}

// emaSeries is the recursive exponential smoothing with alpha = 2/(span+1),
// seeded with the first value, no bias adjustment.
func emaSeries(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

func (s series) column(name string) Column {
	return Column{Name: name, Values: s.values, Valid: s.valid}
}
