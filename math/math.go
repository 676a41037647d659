// math/math.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Unit conversion factors for the quantities that appear in task files:
// wind and start speeds arrive in knots, cloud base in feet.
const (
	KtsToMS  = 0.514444
	FtToM    = 0.3048
	KtsToKMH = 1.852
)

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float64) float64 {
	return r * 180 / gomath.Pi
}

// Radians converts an angle expressed in degrees to radians
func Radians(d float64) float64 {
	return d / 180 * gomath.Pi
}

// This package shadows the standard library's math, so the handful of
// functions from it that we use are re-exported here; this way callers
// don't need to import both under an alias.

func Sin(a float64) float64 {
	return gomath.Sin(a)
}

func Cos(a float64) float64 {
	return gomath.Cos(a)
}

func Atan2(y, x float64) float64 {
	return gomath.Atan2(y, x)
}

func Sqrt(a float64) float64 {
	return gomath.Sqrt(a)
}

func Mod(a, b float64) float64 {
	return gomath.Mod(a, b)
}

func Round(a float64) float64 {
	return gomath.Round(a)
}

func IsNaN(a float64) bool {
	return gomath.IsNaN(a)
}

// IsInf reports whether a is an infinity of either sign.
func IsInf(a float64) bool {
	return gomath.IsInf(a, 0)
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
