// task/task.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package task defines the normalized description of a soaring race: the
// landscape, weather, aircraft, timing, and turnpoint sequence that
// together determine one flight plan. Raw task descriptions (usually JSON
// files) are validated and defaulted via RawTask.Normalize; the resulting
// Task is immutable as far as the rest of the system is concerned.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmp/thermal/math"
)

type Task struct {
	Landscape           string
	CondorVersion       int
	Date                time.Time
	StartTimeHour       int
	StartTimeWindowMins int
	RaceStartDelayMins  int
	Aircraft            string
	Skin                string
	StartType           StartType
	StartHeightM        float64
	MinFinishHeightM    float64
	MaxStartSpeedKts    float64
	Weather             Weather
	// Airport is the physical launch airfield, if one was given separately
	// from the start gate. When nil, the start gate location doubles as
	// the airfield.
	Airport     *Airport
	Turnpoints  []Turnpoint
	Penalties   Penalties
	Description string
}

// Turnpoint is a named waypoint with a position in landscape coordinates
// (meters, X east and Y north, Z elevation) and the sector a competitor
// must cross.
type Turnpoint struct {
	Name       string
	X, Y, Z    float64
	RadiusM    float64
	AngleDeg   float64
	SectorType int
	SectorDir  int
}

// Pos returns the turnpoint's ground position as an (east, north) vector.
func (tp *Turnpoint) Pos() [2]float64 {
	return [2]float64{tp.X, tp.Y}
}

type Airport struct {
	Name    string
	X, Y, Z float64
}

type Weather struct {
	WindDirDeg      float64
	WindSpeedKts    float64
	CloudBaseFt     float64
	Overdevelopment float64
	ThermalStrength int
	ThermalActivity int
}

// Penalties gives the point deductions for rule infringements; the zero
// value is not useful, so these are filled in by Normalize.
type Penalties struct {
	CloudFlying    int
	PlaneRecovery  int
	HeightRecovery int
	Airspace       int
}

// Distance returns the racing task distance in kilometers, summed over
// the legs between consecutive turnpoints. The airport marker added at
// render time is not part of the race and does not contribute.
func (t *Task) Distance() float64 {
	var dist float64
	for i := 0; i < len(t.Turnpoints)-1; i++ {
		a, b := &t.Turnpoints[i], &t.Turnpoints[i+1]
		dist += math.Length2f(math.Sub2f(b.Pos(), a.Pos()))
	}
	return dist / 1000
}

///////////////////////////////////////////////////////////////////////////
// StartType

// StartType identifies how the race begins. Airborne and aerotow starts
// share a flight plan code; the distinction is kept here so that callers
// can still report which one was requested.
type StartType int

const (
	StartGate StartType = iota
	StartLine
	StartAirborne
	StartTow
)

func (st StartType) String() string {
	return [...]string{"gate", "line", "airborne", "tow"}[st]
}

var startTypeCode = [...]int{0, 1, 2, 2}

// Code returns the integer start type code used in the flight plan format.
func (st StartType) Code() int {
	return startTypeCode[st]
}

var startTypes = map[string]StartType{
	"gate":     StartGate,
	"line":     StartLine,
	"airborne": StartAirborne,
	"tow":      StartTow,
}

func ParseStartType(s string) (StartType, error) {
	if st, ok := startTypes[strings.ToLower(s)]; ok {
		return st, nil
	}
	return StartAirborne, fmt.Errorf("%q: unknown start type", s)
}
