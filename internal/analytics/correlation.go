package analytics

import "math"

// Pearson computes the Pearson correlation coefficient of two equal-length
// series. The second return value is false when the correlation is
// undefined (fewer than 2 points, length mismatch, or a zero-variance
// series).
func Pearson(a, b []float64) (float64, bool) {
	n := len(a)
	if n != len(b) || n < 2 {
		return 0, false
	}

	var sumA, sumB float64
	for i := 0; i < n; i++ {
		sumA += a[i]
		sumB += b[i]
	}
	meanA := sumA / float64(n)
	meanB := sumB / float64(n)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0, false
	}

	r := cov / math.Sqrt(varA*varB)
	// Guard against floating-point drift past the valid range.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}

// Correlate builds the pairwise Pearson matrix over every column pair.
// Undefined correlations are nil, not 0. Columns of unequal lengths are
// compared over nothing and come out nil.
func Correlate(t Table) CorrelationMatrix {
	m := CorrelationMatrix{
		Columns: make([]string, len(t.Columns)),
		Cells:   make([][]*float64, len(t.Columns)),
	}
	for i, c := range t.Columns {
		m.Columns[i] = c.Name
		m.Cells[i] = make([]*float64, len(t.Columns))
	}

	for i := range t.Columns {
		for j := i; j < len(t.Columns); j++ {
			if r, ok := Pearson(t.Columns[i].Values, t.Columns[j].Values); ok {
				v := r
				m.Cells[i][j] = &v
				m.Cells[j][i] = &v
			}
		}
	}
	return m
}
