// strategy/polar.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package strategy

import "github.com/mmp/thermal/util"

// polar summarizes a glider's performance: best glide ratio, the speed in
// knots that achieves it, and a nominal inter-thermal cruise speed.
type polar struct {
	BestGlide int
	BestLDKts int
	CruiseKts int
}

// defaultPolar stands in for aircraft without a table entry; it is
// deliberately conservative.
var defaultPolar = polar{38, 59, 80}

var polars = map[string]polar{
	"StdCirrus":                  {38, 59, 80},
	"LS4, DuoDiscus, DuoDiscusT": {40, 60, 85},
	"LS8":                        {44, 65, 90},
	"Discus2":                    {43, 62, 88},
	"ASW28":                      {46, 65, 92},
	"Nimbus4":                    {56, 70, 100},
	"Ventus2":                    {50, 68, 95},
	"DuoDiscusXL":                {42, 62, 88},
	"Blanik":                     {28, 55, 70},
}

func init() {
	var err error
	if polars, err = util.CommaKeyExpand(polars); err != nil {
		panic(err)
	}
}

// AircraftNames returns the names of all aircraft with built-in
// performance data, sorted alphabetically.
func AircraftNames() []string {
	return util.SortedMapKeys(polars)
}

func aircraftPolar(name string) polar {
	if p, ok := polars[name]; ok {
		return p
	}
	return defaultPolar
}
