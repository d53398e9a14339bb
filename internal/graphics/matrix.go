package graphics

import (
	"math"

	"eps2pdf/internal/backend"
	"eps2pdf/internal/errors"
)

// Matrix is re-exported from backend so operator handlers only need to
// import this package.
type Matrix = backend.Matrix

func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

// Multiply composes m1 then m2: a point transformed by m1 and then by m2
// equals the point transformed by Multiply(m1, m2). This matches
// PostScript `concat`, which sets CTM = matrix × CTM (matrix applied
// first).
func Multiply(m1, m2 Matrix) Matrix {
	return Matrix{
		m1[0]*m2[0] + m1[1]*m2[2],
		m1[0]*m2[1] + m1[1]*m2[3],
		m1[2]*m2[0] + m1[3]*m2[2],
		m1[2]*m2[1] + m1[3]*m2[3],
		m1[4]*m2[0] + m1[5]*m2[2] + m2[4],
		m1[4]*m2[1] + m1[5]*m2[3] + m2[5],
	}
}

// Invert returns the inverse matrix; fails with rangecheck on a singular
// matrix.
func Invert(m Matrix) (Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return Matrix{}, errors.New(errors.RangeCheck, "invertmatrix")
	}
	inv := 1 / det
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	ia := d * inv
	ib := -b * inv
	ic := -c * inv
	id := a * inv
	ie := -(e*ia + f*ic)
	ifv := -(e*ib + f*id)
	return Matrix{ia, ib, ic, id, ie, ifv}, nil
}

func TransformPoint(m Matrix, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformDistance applies the matrix's linear part only, ignoring
// translation.
func TransformDistance(m Matrix, dx, dy float64) (float64, float64) {
	return m[0]*dx + m[2]*dy, m[1]*dx + m[3]*dy
}

func ScaleMatrix(sx, sy float64) Matrix     { return Matrix{sx, 0, 0, sy, 0, 0} }
func TranslateMatrix(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }
func RotateMatrix(radians float64) Matrix {
	c, s := math.Cos(radians), math.Sin(radians)
	return Matrix{c, s, -s, c, 0, 0}
}

// cosDeg/sinDeg take degrees, the unit PostScript's arc operator uses for
// its start/end angles.
func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
