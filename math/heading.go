// math/heading.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and directions

// VectorHeading returns the heading expressed by the given direction
// vector, where x is east and y is north.
func VectorHeading(v [2]float64) float64 {
	// Note that atan2() normally measures w.r.t. the +x axis and angles
	// are positive for counter-clockwise. We want to measure w.r.t. +y and
	// to have positive angles be clockwise. Happily, swapping the order of
	// values passed to atan2()--passing (x,y), gives what we want.
	return NormalizeHeading(Degrees(Atan2(v[0], v[1])))
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float64, b float64) float64 {
	var d float64
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ShortCompass converts a heading expressed in degrees into an
// abbreviated string corresponding to the closest of the sixteen compass
// directions.
func ShortCompass(heading float64) string {
	h := NormalizeHeading(heading + 11.25) // now [0,22.5] is north, etc...
	idx := int(h / 22.5)
	return [...]string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}[idx]
}

// Reduces it to [0,360).
func NormalizeHeading(h float64) float64 {
	if h < 0 {
		return 360 - NormalizeHeading(-h)
	}
	return Mod(h, 360)
}

func OppositeHeading(h float64) float64 {
	return NormalizeHeading(h + 180)
}
