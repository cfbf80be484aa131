package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Matrix is a symmetric Pearson correlation matrix over a fixed field
// ordering. Coefficient conventions follow gonum: a zero-variance field
// yields NaN for every off-diagonal coefficient involving it, while the
// diagonal is forced to exactly 1.
type Matrix struct {
	Fields []Field
	Coeffs [][]float64
}

// At returns the coefficient for the (i, j) field pair.
func (m Matrix) At(i, j int) float64 { return m.Coeffs[i][j] }

// Correlate builds the Pearson correlation matrix over the selected fields,
// using only rows where every selected field is non-missing (row-wise
// complete-case, not pairwise-complete).
func Correlate(v View, fields []Field) Matrix {
	m := Matrix{Fields: fields, Coeffs: make([][]float64, len(fields))}
	var data []float64
	rows := 0
	for i := 0; i < v.Len(); i++ {
		e := v.At(i)
		complete := true
		for _, f := range fields {
			if math.IsNaN(fieldValue(e, f)) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for _, f := range fields {
			data = append(data, fieldValue(e, f))
		}
		rows++
	}
	if rows == 0 {
		for i := range m.Coeffs {
			m.Coeffs[i] = make([]float64, len(fields))
			for j := range m.Coeffs[i] {
				m.Coeffs[i][j] = math.NaN()
			}
		}
		return m
	}
	x := mat.NewDense(rows, len(fields), data)
	dst := mat.NewSymDense(len(fields), nil)
	stat.CorrelationMatrix(dst, x, nil)
	for i := range m.Coeffs {
		m.Coeffs[i] = make([]float64, len(fields))
		for j := range m.Coeffs[i] {
			m.Coeffs[i][j] = dst.At(i, j)
		}
	}
	return m
}
