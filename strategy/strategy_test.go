// strategy/strategy_test.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package strategy

import (
	"slices"
	"strings"
	"testing"

	"github.com/mmp/thermal/task"
)

func tp(name string, x, y float64) task.Turnpoint {
	return task.Turnpoint{Name: name, X: x, Y: y}
}

func flatTask(aircraft string, windDir, windKts float64, strength int, tps ...task.Turnpoint) *task.Task {
	return &task.Task{
		Aircraft: aircraft,
		Weather: task.Weather{WindDirDeg: windDir, WindSpeedKts: windKts,
			CloudBaseFt: 6000, ThermalStrength: strength, ThermalActivity: 3},
		Turnpoints: tps,
	}
}

func wantLine(t *testing.T, out, line string) {
	t.Helper()
	if !slices.Contains(strings.Split(out, "\n"), line) {
		t.Errorf("missing line %q", line)
	}
}

func wantText(t *testing.T, out, s string) {
	t.Helper()
	if !strings.Contains(out, s) {
		t.Errorf("missing %q", s)
	}
}

func TestGenerateDownwind(t *testing.T) {
	// Due north then due east, 10 km each, with a 10 kt wind from the
	// south: the first leg is all tailwind, the second pure crosswind.
	out := Generate(flatTask("LS8", 180, 10, 3,
		tp("A", 0, 0), tp("B", 0, 10000), tp("C", 10000, 10000)))
	lines := strings.Split(out, "\n")

	if lines[0] != strings.Repeat("═", 66) || lines[1] != "FLIGHT STRATEGY" {
		t.Errorf("unexpected header: %q %q", lines[0], lines[1])
	}
	if lines[len(lines)-1] != strings.Repeat("═", 66) || lines[len(lines)-2] != "" {
		t.Errorf("unexpected footer")
	}

	wantLine(t, out, "  Wind:       180° @ 10 kts  (S)")
	wantLine(t, out, "  Cloud base: 6000 ft  (1829 m)")
	wantLine(t, out, "  Thermals:   Strength 3/5,  Activity 3/5  (~2.5 m/s climbs)")
	wantLine(t, out, "  Aircraft:   LS8  (best glide ~44:1)")

	wantLine(t, out, "  Inter-thermal:  90 kts  (McCready 3 — thermal strength 3/5)")
	wantLine(t, out, "  Headwind legs:  95–100 kts  (fly faster to minimise time fighting headwind)")
	wantLine(t, out, "  Tailwind legs:  85–90 kts  (slower — ground speed is already high)")

	wantLine(t, out, "  1   A"+strings.Repeat(" ", 22)+"B"+strings.Repeat(" ", 23)+
		"10.0km  N   0°     +10 kts  Tailwind  — favourable")
	wantLine(t, out, "  2   B"+strings.Repeat(" ", 22)+"C"+strings.Repeat(" ", 23)+
		"10.0km  E  90°      -0 kts  Crosswind — neutral")

	wantLine(t, out, "  Overall: Downwind-dominant task. Expect faster-than-nominal task times.")
	wantLine(t, out, "           Build height early — a strong final glide is achievable.")

	wantLine(t, out, "  Leg 1 (A → B):")
	wantLine(t, out, "    • Strong tailwind — use dolphin technique through weaker thermals; "+
		"accept lower exit heights to maintain ground speed.")
	wantLine(t, out, "  Leg 2 (B → C):")
	wantLine(t, out, "    • Standard thermal task. Follow cloud shadows and "+
		"look for blue thermals near sun-facing slopes.")

	wantLine(t, out, "  Cloud base 1829 m  |  best glide 44:1  |  cruise 90 kts")
	wantLine(t, out, "  1   B"+strings.Repeat(" ", 23)+"10.0km      500 m        660 m  ")
	wantLine(t, out, "  2   C"+strings.Repeat(" ", 23)+"10.0km      530 m        690 m  ")
}

func TestGenerateHeadwind(t *testing.T) {
	out := Generate(flatTask("LS8", 0, 20, 3, tp("A", 0, 0), tp("B", 0, 10000)))

	wantText(t, out, "   -20 kts  Headwind  — difficult")
	wantLine(t, out, "  Overall: Headwind-dominant task. Expect slower-than-nominal task times.")
	wantLine(t, out, "           Stay high, fly fast, and minimise detours from the optimal track.")
	wantLine(t, out, "    • Strong headwind — fly faster, stay on the optimal track, and "+
		"only circle in strong climbs (>McCready setting).")
	wantLine(t, out, "    • Headwind leg: look for orographic and convergence lift on the "+
		"S (upwind) side of ridges and high ground.")
	wantLine(t, out, "  1   B"+strings.Repeat(" ", 23)+"10.0km      590 m        770 m  ")
}

func TestGenerateCrosswind(t *testing.T) {
	// Unknown aircraft fall back to the conservative default polar.
	out := Generate(flatTask("ASK21", 90, 15, 2, tp("A", 0, 0), tp("B", 0, 20000)))

	wantLine(t, out, "  Aircraft:   ASK21  (best glide ~38:1)")
	wantLine(t, out, "  Inter-thermal:  74 kts  (McCready 2 — thermal strength 2/5)")
	wantLine(t, out, "  Tailwind legs:  69–74 kts  (slower — ground speed is already high)")
	wantText(t, out, "Crosswind — neutral")
	wantLine(t, out, "  Overall: Wind effects roughly balanced across the task.")
	wantLine(t, out, "    • Crosswind ~15 kts — offset slightly to the W "+
		"(upwind) side of the direct track to compensate for drift "+
		"and find better lift along the windward slope.")
	wantLine(t, out, "  1   B"+strings.Repeat(" ", 23)+"20.0km      830 m       1070 m  ")
}

func TestGenerateStreets(t *testing.T) {
	tk := flatTask("LS4", 0, 15, 2, tp("A", 0, 10000), tp("B", 0, 0))
	tk.Description = "Ridge Day"
	out := Generate(tk)

	wantLine(t, out, "FLIGHT STRATEGY  —  Ridge Day")
	wantText(t, out, "S 180°     +15 kts  Tailwind  — favourable")

	// A strong tailwind leg aligned with the wind gets both the dolphin
	// and the cloud street note, in that order.
	dolphin := strings.Index(out, "dolphin technique")
	street := strings.Index(out, "cloud streets are likely")
	if dolphin == -1 || street == -1 || dolphin > street {
		t.Errorf("expected dolphin note followed by street note (indices %d, %d)", dolphin, street)
	}
	wantLine(t, out, "    • Wind broadly aligned with this leg — cloud streets are likely. "+
		"Look for a street and dolphin straight through rather than circling.")
}

func TestGenerateAltitudeWarnings(t *testing.T) {
	tk := flatTask("Blanik", 0, 0, 2,
		tp("A", 0, 0), tp("B", 0, 30000), tp("C", 0, 110000))
	tk.Weather.CloudBaseFt = 4921
	out := Generate(tk)

	wantLine(t, out, "  Cloud base 1500 m  |  best glide 28:1  |  cruise 65 kts")
	wantLine(t, out, "  1   B"+strings.Repeat(" ", 23)+"30.0km     1370 m       1300 m  near cloud base")
	wantLine(t, out, "  2   C"+strings.Repeat(" ", 23)+"80.0km     3160 m       1300 m  ⚠ may need intermediate thermal")
	wantLine(t, out, "  Overall: Wind effects roughly balanced across the task.")
}

func TestGenerateNotEnoughTurnpoints(t *testing.T) {
	out := Generate(flatTask("LS8", 0, 0, 3, tp("A", 0, 0)))

	if !strings.HasSuffix(out, "(Not enough turnpoints for leg analysis.)") {
		t.Errorf("expected early return for single turnpoint")
	}
	if strings.Contains(out, "LEG-BY-LEG ANALYSIS") {
		t.Errorf("leg analysis present for single turnpoint")
	}
}

func TestGenerateTemplate(t *testing.T) {
	tk, err := task.Template().Normalize()
	if err != nil {
		t.Fatalf("template does not normalize: %v", err)
	}
	out := Generate(tk)

	wantLine(t, out, "FLIGHT STRATEGY  —  SGC Spring 2026 Race 1")
	wantLine(t, out, "  Wind:       90° @ 13 kts  (E)")
	wantLine(t, out, "  Cloud base: 4921 ft  (1500 m)")
	wantLine(t, out, "  Aircraft:   Blanik  (best glide ~28:1)")
	wantLine(t, out, "  Inter-thermal:  65 kts  (McCready 2 — thermal strength 2/5)")
}

func TestAircraftNames(t *testing.T) {
	names := AircraftNames()

	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	if len(names) != 11 {
		t.Errorf("got %d names, expected 11: %v", len(names), names)
	}
	for _, n := range []string{"LS4", "DuoDiscus", "DuoDiscusT", "Blanik"} {
		if !slices.Contains(names, n) {
			t.Errorf("%s missing from %v", n, names)
		}
	}
	for _, n := range names {
		if strings.ContainsAny(n, ", ") {
			t.Errorf("unexpanded name %q", n)
		}
	}
}
