package raster

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrices are row-major 2x3:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]

func identity() f64.Aff3 { return f64.Aff3{1, 0, 0, 0, 1, 0} }

func translate(x, y float64) f64.Aff3 { return f64.Aff3{1, 0, x, 0, 1, y} }

func scale(x, y float64) f64.Aff3 { return f64.Aff3{x, 0, 0, 0, y, 0} }

func rotate(a float64) f64.Aff3 {
	s, c := math.Sincos(a)
	return f64.Aff3{c, -s, 0, s, c, 0}
}

// mul returns m*o, i.e. o applied first.
func mul(m, o f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*o[0] + m[1]*o[3],
		m[0]*o[1] + m[1]*o[4],
		m[0]*o[2] + m[1]*o[5] + m[2],
		m[3]*o[0] + m[4]*o[3],
		m[3]*o[1] + m[4]*o[4],
		m[3]*o[2] + m[4]*o[5] + m[5],
	}
}

// chain multiplies left to right, so the last matrix is applied first.
func chain(ms ...f64.Aff3) f64.Aff3 {
	out := identity()
	for _, m := range ms {
		out = mul(out, m)
	}
	return out
}

func apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// invert reports false for singular matrices.
func invert(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-12 {
		return f64.Aff3{}, false
	}
	inv := 1 / det
	return f64.Aff3{
		m[4] * inv,
		-m[1] * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		-m[3] * inv,
		m[0] * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
	}, true
}
