// fpl/fpl.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package fpl renders a normalized task into the simulator's flight plan
// file format. The output is a Windows INI-style document; key order,
// section order, and CRLF line endings all follow the reference files the
// simulator writes itself, since it rejects plans that deviate.
package fpl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/thermal/math"
	"github.com/mmp/thermal/rand"
	"github.com/mmp/thermal/task"
	"github.com/mmp/thermal/util"
)

// RenderError indicates that a task cannot be expressed in the flight
// plan format. No partial output is ever returned alongside one.
type RenderError struct {
	msg string
}

func (e *RenderError) Error() string { return e.msg }

func renderErrorf(format string, args ...interface{}) *RenderError {
	return &RenderError{msg: fmt.Sprintf(format, args...)}
}

type Options struct {
	// Rand supplies the source for the plan's RandSeed entry. If nil, a
	// time-seeded source is used; pass one explicitly for reproducible
	// output.
	Rand *rand.Rand
}

// Render returns the complete flight plan document for t. The task is
// not modified. Rendering is all-or-nothing: any error means no output.
func Render(t *task.Task, opts Options) (string, error) {
	if len(t.Turnpoints) == 0 {
		return "", renderErrorf("task has no turnpoints")
	}
	if err := checkFinite(t); err != nil {
		return "", err
	}

	var r rand.Rand
	if opts.Rand != nil {
		r = *opts.Rand
	} else {
		r = rand.Make()
	}

	var doc Doc

	sec := doc.AddSection("Version")
	sec.Set("Condor version", strconv.Itoa(t.CondorVersion))

	tps := expandTurnpoints(t)

	sec = doc.AddSection("Task")
	sec.Set("Landscape", t.Landscape)
	sec.Set("Count", strconv.Itoa(len(tps)))
	for i, tp := range tps {
		n := strconv.Itoa(i)
		// Index 0 is always the airport marker; everything else keeps
		// the sector geometry it was supplied with.
		airport := "0"
		if i == 0 {
			airport = "1"
		}
		sec.Set("TPName"+n, tp.Name)
		sec.Set("TPPosX"+n, num(tp.X))
		sec.Set("TPPosY"+n, num(tp.Y))
		sec.Set("TPPosZ"+n, num(tp.Z))
		sec.Set("TPAirport"+n, airport)
		sec.Set("TPSectorType"+n, strconv.Itoa(tp.SectorType))
		sec.Set("TPSectorDirection"+n, strconv.Itoa(tp.SectorDir))
		sec.Set("TPRadius"+n, num(tp.RadiusM))
		sec.Set("TPAngle"+n, num(tp.AngleDeg))
		sec.Set("TPAltitude"+n, "1500")
		sec.Set("TPWidth"+n, "0")
		sec.Set("TPHeight"+n, "10000")
		sec.Set("TPAzimuth"+n, "0")
	}
	sec.Set("PZCount", "0")
	sec.Set("DisabledAirspaces", "")

	sec = doc.AddSection("Weather")
	sec.Set("RandomizeWeatherOnEachFlight", "0")
	sec.Set("WZCount", "1")

	wx := &t.Weather
	sec = doc.AddSection("WeatherZone0")
	sec.Set("Name", "Base")
	sec.Set("PointCount", "0")
	sec.Set("MoveDir", "0")
	sec.Set("MoveSpeed", "0")
	sec.Set("BorderWidth", "0")
	sec.Set("WindDir", num(wx.WindDirDeg))
	sec.Setf("WindSpeed", "%.6f", wx.WindSpeedKts*math.KtsToMS)
	sec.Set("WindUpperSpeed", "0")
	sec.Set("WindDirVariation", "1")
	sec.Set("WindSpeedVariation", "1")
	sec.Set("WindTurbulence", "2")
	sec.Set("ThermalsTemp", "22")
	sec.Set("ThermalsTempVariation", "1")
	sec.Set("ThermalsDew", "10")
	sec.Set("ThermalsStrength", strconv.Itoa(wx.ThermalStrength))
	sec.Set("ThermalsStrengthVariation", "1")
	sec.Set("ThermalsInversionheight", strconv.Itoa(int(math.Round(wx.CloudBaseFt*math.FtToM))))
	sec.Set("ThermalsOverdevelopment", decimal(wx.Overdevelopment))
	sec.Set("ThermalsWidth", "2")
	sec.Set("ThermalsWidthVariation", "1")
	sec.Set("ThermalsActivity", strconv.Itoa(wx.ThermalActivity))
	sec.Set("ThermalsActivityVariation", "1")
	sec.Set("ThermalsTurbulence", "2")
	sec.Set("ThermalsFlatsActivity", "2")
	sec.Set("ThermalsStreeting", "0")
	sec.Set("ThermalsBugs", "2")
	sec.Set("WavesStability", "5")
	sec.Set("WavesMoisture", "8")
	sec.Set("HighCloudsCoverage", "2")

	sec = doc.AddSection("Plane")
	sec.Set("Class", "All")
	sec.Set("Name", t.Aircraft)
	sec.Set("Skin", t.Skin)
	sec.Set("Water", "0")
	sec.Set("FixedMass", "0")
	sec.Set("CGBias", "0")
	sec.Set("Seat", "1")
	sec.Set("Bugwipers", "0")

	sec = doc.AddSection("GameOptions")
	sec.Set("TaskDate", strconv.Itoa(SerialDate(t.Date)))
	sec.Set("StartTime", strconv.Itoa(t.StartTimeHour))
	sec.Setf("StartTimeWindow", "%.17f", float64(t.StartTimeWindowMins)/60)
	sec.Setf("RaceStartDelay", "%.17f", float64(t.RaceStartDelayMins)/60)
	sec.Set("AATTime", "3")
	sec.Set("IconsVisibleRange", "20")
	sec.Set("ThermalHelpersRange", "0")
	sec.Set("TurnpointHelpersRange", "0")
	sec.Set("AAT", "0")
	sec.Set("AllowBugwipers", "1")
	sec.Set("AllowPDA", "1")
	sec.Set("AllowRealtimeScoring", "1")
	sec.Set("AllowExternalView", "1")
	sec.Set("AllowPadlockView", "1")
	sec.Set("AllowSmoke", "1")
	sec.Set("AllowPlaneRecovery", "0")
	sec.Set("AllowHeightRecovery", "0")
	sec.Set("AllowMidairCollisionRecovery", "0")
	sec.Set("AllowInstructorActions", "0")
	sec.Set("PenaltyCloudFlying", strconv.Itoa(t.Penalties.CloudFlying))
	sec.Set("PenaltyPlaneRecovery", strconv.Itoa(t.Penalties.PlaneRecovery))
	sec.Set("PenaltyHeightRecovery", strconv.Itoa(t.Penalties.HeightRecovery))
	sec.Set("PenaltyWrongWindowEnterance", "100")
	sec.Set("PenaltyWindowCollision", "100")
	sec.Set("PenaltyAirspaceEnterance", strconv.Itoa(t.Penalties.Airspace))
	sec.Set("PenaltyPenaltyZoneEnterance", "100")
	sec.Set("PenaltyThermalHelpers", "0")
	sec.Set("MaxStartGroundSpeed", strconv.Itoa(int(math.Round(t.MaxStartSpeedKts*math.KtsToKMH))))
	sec.Set("PenaltyStartSpeed", "1")
	sec.Set("PenaltyHighStart", "1")
	sec.Set("PenaltyLowFinish", "1")
	sec.Set("RandSeed", strconv.Itoa(int(r.Int31())))
	sec.Set("StartType", strconv.Itoa(t.StartType.Code()))
	sec.Set("StartHeight", num(t.StartHeightM))
	sec.Set("BreakProb", "0")
	sec.Set("RopeLength", "50")
	sec.Set("MaxWingLoading", "0")
	sec.Set("MaxTeams", "0")
	sec.Set("AcroFlight", "0")

	sec = doc.AddSection("Description")
	sec.Set("Text", t.Description)

	return doc.String(), nil
}

// expandTurnpoints returns the rendered turnpoint list: a synthetic
// airport marker at index 0, then the task's turnpoints exactly as
// supplied. The airport marker is the task's airport if one was given
// (with the standard 3000 m wide sector), otherwise a copy of the first
// turnpoint keeping its radius. Either way its sector angle is forced to
// 90 and its sector geometry cleared. The task's own slice is never
// modified.
func expandTurnpoints(t *task.Task) []task.Turnpoint {
	airport := t.Turnpoints[0]
	if t.Airport != nil {
		airport = task.Turnpoint{
			Name:    t.Airport.Name,
			X:       t.Airport.X,
			Y:       t.Airport.Y,
			Z:       t.Airport.Z,
			RadiusM: 3000,
		}
	}
	airport.AngleDeg = 90
	airport.SectorType = 0
	airport.SectorDir = 0

	return util.InsertSliceElement(util.DuplicateSlice(t.Turnpoints), 0, airport)
}

// checkFinite rejects tasks holding NaN or infinite values before any of
// them reaches a numeric conversion.
func checkFinite(t *task.Task) error {
	check := func(what string, vals ...float64) error {
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v) {
				return renderErrorf("%s: non-finite value", what)
			}
		}
		return nil
	}

	if err := check("weather", t.Weather.WindDirDeg, t.Weather.WindSpeedKts,
		t.Weather.CloudBaseFt, t.Weather.Overdevelopment); err != nil {
		return err
	}
	if err := check("max_start_speed_kts", t.MaxStartSpeedKts); err != nil {
		return err
	}
	if err := check("start_height_m", t.StartHeightM); err != nil {
		return err
	}
	if t.Airport != nil {
		if err := check("airport_tp", t.Airport.X, t.Airport.Y, t.Airport.Z); err != nil {
			return err
		}
	}
	for i, tp := range t.Turnpoints {
		if err := check("turnpoint "+strconv.Itoa(i), tp.X, tp.Y, tp.Z, tp.RadiusM, tp.AngleDeg); err != nil {
			return err
		}
	}
	return nil
}

// num formats a float in the shortest fixed decimal form that round-trips;
// the file format never uses exponent notation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decimal is num but always keeps a fractional part, so an integral value
// renders as "2.0" rather than "2". The reference files use this form for
// the overdevelopment entry.
func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
