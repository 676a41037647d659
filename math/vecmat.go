// math/vecmat.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// point / vector operations

func Sub2f(a [2]float64, b [2]float64) [2]float64 {
	return [2]float64{a[0] - b[0], a[1] - b[1]}
}

func Dot2f(a [2]float64, b [2]float64) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

func Scale2f(a [2]float64, s float64) [2]float64 {
	return [2]float64{s * a[0], s * a[1]}
}

func Length2f(v [2]float64) float64 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

// SinCos returns the sine and cosine of the given angle, expressed in
// radians, as the two elements of the returned vector.
func SinCos(a float64) [2]float64 {
	return [2]float64{Sin(a), Cos(a)}
}
