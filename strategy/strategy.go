// strategy/strategy.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package strategy produces a plain-text pre-flight briefing for a task:
// expected conditions, McCready-scaled cruise speed suggestions, a
// per-leg wind analysis with routing notes, and thermal exit altitude
// targets. The briefing is console output with LF line endings; it is not
// part of the flight plan file.
package strategy

import (
	"fmt"
	"strings"

	"github.com/mmp/thermal/math"
	"github.com/mmp/thermal/task"
)

const width = 66

func rule(ch string) string {
	return strings.Repeat(ch, width)
}

// Estimated achievable climb rate in m/s for each thermal strength level.
var climbRate = map[int]float64{1: 0.8, 2: 1.5, 3: 2.5, 4: 3.5, 5: 5.0}

// Cruise speed scale factor per thermal strength level: stronger expected
// climbs justify faster inter-thermal cruise.
var mcFactor = map[int]float64{1: 0.87, 2: 0.93, 3: 1.00, 4: 1.07, 5: 1.15}

type leg struct {
	idx      int
	from, to string
	distM    float64
	distKM   float64
	bearing  float64
	tailKts  float64
	crossKts float64
}

// Generate returns the strategy briefing for t.
func Generate(t *task.Task) string {
	wx := t.Weather
	cloudM := int(math.Round(wx.CloudBaseFt * math.FtToM))

	climbMS, ok := climbRate[wx.ThermalStrength]
	if !ok {
		climbMS = 2.0
	}
	factor, ok := mcFactor[wx.ThermalStrength]
	if !ok {
		factor = 1.0
	}

	pol := aircraftPolar(t.Aircraft)
	cruiseKts := int(math.Round(float64(pol.CruiseKts) * factor))
	cruiseMS := float64(cruiseKts) * math.KtsToMS

	// Wind velocity as an (east, north) vector in kts. WindDirDeg is the
	// direction the wind blows from, so the motion vector is opposite.
	wind := math.Scale2f(math.SinCos(math.Radians(wx.WindDirDeg)), -wx.WindSpeedKts)

	var out []string

	title := "FLIGHT STRATEGY"
	if t.Description != "" {
		title = "FLIGHT STRATEGY  —  " + t.Description
	}
	out = append(out, rule("═"), title, rule("═"))

	out = append(out, "", "CONDITIONS", rule("─"))
	out = append(out, fmt.Sprintf("  Wind:       %.0f° @ %.0f kts  (%s)",
		wx.WindDirDeg, wx.WindSpeedKts, math.ShortCompass(wx.WindDirDeg)))
	out = append(out, fmt.Sprintf("  Cloud base: %.0f ft  (%d m)", wx.CloudBaseFt, cloudM))
	out = append(out, fmt.Sprintf("  Thermals:   Strength %d/5,  Activity %d/5  (~%.1f m/s climbs)",
		wx.ThermalStrength, wx.ThermalActivity, climbMS))
	out = append(out, fmt.Sprintf("  Aircraft:   %s  (best glide ~%d:1)", t.Aircraft, pol.BestGlide))

	out = append(out, "", "SUGGESTED CRUISE SPEED", rule("─"))
	out = append(out, fmt.Sprintf("  Inter-thermal:  %d kts  (McCready %d — thermal strength %d/5)",
		cruiseKts, wx.ThermalStrength, wx.ThermalStrength))
	out = append(out, fmt.Sprintf("  Headwind legs:  %d–%d kts  (fly faster to minimise time fighting headwind)",
		cruiseKts+5, cruiseKts+10))
	out = append(out, fmt.Sprintf("  Tailwind legs:  %d–%d kts  (slower — ground speed is already high)",
		math.Max(cruiseKts-5, pol.BestLDKts), cruiseKts))

	if len(t.Turnpoints) < 2 {
		out = append(out, "", "(Not enough turnpoints for leg analysis.)")
		return strings.Join(out, "\n")
	}

	out = append(out, "", "LEG-BY-LEG ANALYSIS", rule("─"))
	out = append(out, fmt.Sprintf("  %-3s %-22s %-22s %6s  %8s  %8s  Assessment",
		"#", "From", "To", "Dist", "Bearing", "Wind"))
	out = append(out, "  "+rule("─"))

	var legs []leg
	for i := range len(t.Turnpoints) - 1 {
		a, b := &t.Turnpoints[i], &t.Turnpoints[i+1]
		d := math.Sub2f(b.Pos(), a.Pos())
		distM := math.Length2f(d)
		bearing := math.VectorHeading(d)

		var e [2]float64
		if distM > 0 {
			e = math.Scale2f(d, 1/distM)
		}
		// Along-track component is positive for tailwind; cross-track is
		// signed left/right of the leg.
		tail := math.Dot2f(wind, e)
		cross := math.Dot2f(wind, [2]float64{-e[1], e[0]})

		assess := "Crosswind — neutral"
		if tail > 5 {
			assess = "Tailwind  — favourable"
		} else if tail < -5 {
			assess = "Headwind  — difficult"
		}

		out = append(out, fmt.Sprintf("  %-3d %-22s %-22s %5.1fkm  %s %3.0f°  %+6.0f kts  %s",
			i+1, a.Name, b.Name, distM/1000, math.ShortCompass(bearing), bearing, tail, assess))

		legs = append(legs, leg{idx: i + 1, from: a.Name, to: b.Name, distM: distM,
			distKM: distM / 1000, bearing: bearing, tailKts: tail, crossKts: cross})
	}

	out = append(out, "", "ROUTING NOTES", rule("─"))

	var totalTW, totalDist float64
	for _, l := range legs {
		totalTW += l.tailKts * l.distKM
		totalDist += l.distKM
	}
	var avgTW float64
	if totalDist > 0 {
		avgTW = totalTW / totalDist
	}

	if avgTW > 3 {
		out = append(out,
			"  Overall: Downwind-dominant task. Expect faster-than-nominal task times.",
			"           Build height early — a strong final glide is achievable.")
	} else if avgTW < -3 {
		out = append(out,
			"  Overall: Headwind-dominant task. Expect slower-than-nominal task times.",
			"           Stay high, fly fast, and minimise detours from the optimal track.")
	} else {
		out = append(out, "  Overall: Wind effects roughly balanced across the task.")
	}
	out = append(out, "")

	windToDir := math.OppositeHeading(wx.WindDirDeg)
	windToCmp := math.ShortCompass(windToDir)
	streetsLikely := wx.WindSpeedKts > 12 && wx.ThermalStrength >= 2

	for _, l := range legs {
		var notes []string

		if l.tailKts > 8 {
			notes = append(notes, "Strong tailwind — use dolphin technique through weaker thermals; "+
				"accept lower exit heights to maintain ground speed.")
		} else if l.tailKts < -8 {
			notes = append(notes, "Strong headwind — fly faster, stay on the optimal track, and "+
				"only circle in strong climbs (>McCready setting).")
		} else if xw := math.Abs(l.crossKts); xw > 10 {
			notes = append(notes, fmt.Sprintf("Crosswind ~%.0f kts — offset slightly to the %s "+
				"(upwind) side of the direct track to compensate for drift "+
				"and find better lift along the windward slope.",
				xw, math.ShortCompass(l.bearing-90)))
		}

		if streetsLikely && math.HeadingDifference(windToDir, l.bearing) < 35 {
			notes = append(notes, "Wind broadly aligned with this leg — cloud streets are likely. "+
				"Look for a street and dolphin straight through rather than circling.")
		}

		if l.tailKts < -3 {
			notes = append(notes, fmt.Sprintf("Headwind leg: look for orographic and convergence lift on the "+
				"%s (upwind) side of ridges and high ground.", windToCmp))
		}

		if len(notes) == 0 {
			notes = append(notes, "Standard thermal task. Follow cloud shadows and "+
				"look for blue thermals near sun-facing slopes.")
		}

		out = append(out, fmt.Sprintf("  Leg %d (%s → %s):", l.idx, l.from, l.to))
		for _, note := range notes {
			out = append(out, "    • "+note)
		}
	}

	out = append(out, "", "THERMAL EXIT ALTITUDES  (height above destination TP)", rule("─"))
	out = append(out, fmt.Sprintf("  Cloud base %d m  |  best glide %d:1  |  cruise %d kts",
		cloudM, pol.BestGlide, cruiseKts))
	out = append(out, "")
	out = append(out, fmt.Sprintf("  %-3s %-22s %6s  %9s  %9s  Note",
		"#", "Destination", "Dist", "Minimum", "Target"))
	out = append(out, "  "+rule("─"))

	// Minimum exit heights include a 300 m arrival margin over the
	// destination; targets add a 30% buffer on top of that, capped 200 m
	// below cloud base.
	const arrivalM = 300
	const buffer = 1.30

	for _, l := range legs {
		twMS := l.tailKts * math.KtsToMS
		effGlide := float64(pol.BestGlide)
		if cruiseMS != 0 {
			effGlide *= 1 + twMS/cruiseMS
		}
		effGlide = math.Max(effGlide, float64(pol.BestGlide)*0.25)

		minM := l.distM/effGlide + arrivalM
		tgtM := math.Min(minM*buffer, float64(cloudM-200))
		min10 := int(math.Round(minM/10)) * 10
		tgt10 := int(math.Round(tgtM/10)) * 10

		note := ""
		if min10 > cloudM {
			note = "⚠ may need intermediate thermal"
		} else if tgt10 >= cloudM-250 {
			note = "near cloud base"
		}

		out = append(out, fmt.Sprintf("  %-3d %-22s %5.1fkm  %7d m    %7d m  %s",
			l.idx, l.to, l.distKM, min10, tgt10, note))
	}

	out = append(out, "", rule("═"))
	return strings.Join(out, "\n")
}
