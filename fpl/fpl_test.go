// fpl/fpl_test.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fpl

import (
	gomath "math"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mmp/thermal/rand"
	"github.com/mmp/thermal/task"

	"github.com/brunoga/deep"
)

func templateTask(t *testing.T) *task.Task {
	t.Helper()
	tk, err := task.Template().Normalize()
	if err != nil {
		t.Fatalf("template does not normalize: %v", err)
	}
	return tk
}

func render(t *testing.T, tk *task.Task) string {
	t.Helper()
	r := rand.MakeWithSeed(1)
	doc, err := Render(tk, Options{Rand: &r})
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	return doc
}

// value returns the value of key within [section], failing the test if the
// key is absent.
func value(t *testing.T, doc, section, key string) string {
	t.Helper()
	in := false
	for _, line := range strings.Split(doc, "\r\n") {
		if strings.HasPrefix(line, "[") {
			in = line == "["+section+"]"
		} else if in {
			if k, v, ok := strings.Cut(line, "="); ok && k == key {
				return v
			}
		}
	}
	t.Errorf("%s not found in [%s]", key, section)
	return ""
}

func TestRenderTemplate(t *testing.T) {
	doc := render(t, templateTask(t))

	for _, c := range []struct{ section, key, value string }{
		{"Version", "Condor version", "3100"},
		{"Task", "Landscape", "Centro_Italia3"},
		{"Task", "Count", "4"},
		{"Task", "TPName0", "Rieti"},
		{"Task", "TPPosX0", "183917.75"},
		{"Task", "TPAirport0", "1"},
		{"Task", "TPRadius0", "3000"},
		{"Task", "TPAngle0", "90"},
		{"Task", "TPName1", "Cittaducalepiazz"},
		{"Task", "TPPosX1", "175684.546875"},
		{"Task", "TPPosZ1", "478"},
		{"Task", "TPAirport1", "0"},
		{"Task", "TPRadius1", "5000"},
		{"Task", "TPAngle1", "180"},
		{"Task", "TPName3", "Rieti"},
		{"Task", "TPRadius3", "1000"},
		{"Task", "PZCount", "0"},
		{"Task", "DisabledAirspaces", ""},
		{"Weather", "WZCount", "1"},
		{"WeatherZone0", "WindDir", "90"},
		{"WeatherZone0", "WindSpeed", "6.687772"},
		{"WeatherZone0", "ThermalsStrength", "2"},
		{"WeatherZone0", "ThermalsInversionheight", "1500"},
		{"WeatherZone0", "ThermalsOverdevelopment", "0.0"},
		{"WeatherZone0", "ThermalsActivity", "3"},
		{"Plane", "Class", "All"},
		{"Plane", "Name", "Blanik"},
		{"Plane", "Skin", "Default"},
		{"GameOptions", "TaskDate", "46194"},
		{"GameOptions", "StartTime", "13"},
		{"GameOptions", "StartTimeWindow", "0.08333333333333333"},
		{"GameOptions", "RaceStartDelay", "0.08333333333333333"},
		{"GameOptions", "PenaltyCloudFlying", "100"},
		{"GameOptions", "PenaltyAirspaceEnterance", "100"},
		{"GameOptions", "MaxStartGroundSpeed", "150"},
		{"GameOptions", "StartType", "2"},
		{"GameOptions", "StartHeight", "1000"},
		{"Description", "Text", "SGC Spring 2026 Race 1"},
	} {
		if got := value(t, doc, c.section, c.key); got != c.value {
			t.Errorf("[%s] %s = %q, expected %q", c.section, c.key, got, c.value)
		}
	}

	seed, err := strconv.Atoi(value(t, doc, "GameOptions", "RandSeed"))
	if err != nil || seed < 0 || seed > 2147483647 {
		t.Errorf("RandSeed = %q, expected integer in [0, 2^31-1]", value(t, doc, "GameOptions", "RandSeed"))
	}
}

func TestRenderLayout(t *testing.T) {
	doc := render(t, templateTask(t))

	if strings.Count(doc, "\n") != strings.Count(doc, "\r\n") {
		t.Errorf("document contains bare newlines")
	}
	if !strings.HasSuffix(doc, "Text=SGC Spring 2026 Race 1\r\n") {
		t.Errorf("document does not end with a single CRLF after the last entry")
	}

	prev := -1
	for _, section := range []string{"[Version]", "[Task]", "[Weather]", "[WeatherZone0]",
		"[Plane]", "[GameOptions]", "[Description]"} {
		idx := strings.Index(doc, "\r\n"+section+"\r\n")
		if section == "[Version]" {
			idx = strings.Index(doc, section+"\r\n")
		}
		if idx == -1 {
			t.Errorf("%s missing", section)
		} else if idx <= prev {
			t.Errorf("%s out of order", section)
		}
		prev = idx
	}

	// Keys come out in the order they went in.
	if strings.Index(doc, "Landscape=") > strings.Index(doc, "Count=") ||
		strings.Index(doc, "Count=") > strings.Index(doc, "TPName0=") ||
		strings.Index(doc, "TPName0=") > strings.Index(doc, "TPName1=") {
		t.Errorf("[Task] keys out of order")
	}
}

func TestRenderLegacyAirport(t *testing.T) {
	tk := templateTask(t)
	tk.Airport = nil
	tk.Turnpoints[0].SectorType = 1
	tk.Turnpoints[0].SectorDir = 2

	doc := render(t, tk)

	// With no explicit airport the first turnpoint also serves as the
	// airport marker, keeping its radius but with the wide 90 degree
	// sector and no sector geometry.
	for _, c := range []struct{ key, value string }{
		{"Count", "4"},
		{"TPName0", "Cittaducalepiazz"},
		{"TPAirport0", "1"},
		{"TPRadius0", "5000"},
		{"TPAngle0", "90"},
		{"TPSectorType0", "0"},
		{"TPSectorDirection0", "0"},
		{"TPName1", "Cittaducalepiazz"},
		{"TPAirport1", "0"},
		{"TPRadius1", "5000"},
		{"TPAngle1", "180"},
		{"TPSectorType1", "1"},
		{"TPSectorDirection1", "2"},
	} {
		if got := value(t, doc, "Task", c.key); got != c.value {
			t.Errorf("%s = %q, expected %q", c.key, got, c.value)
		}
	}
}

func TestRenderDeterminism(t *testing.T) {
	tk := templateTask(t)

	ra := rand.MakeWithSeed(42)
	a, err := Render(tk, Options{Rand: &ra})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rb := rand.MakeWithSeed(42)
	b, err := Render(tk, Options{Rand: &rb})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("same seed produced different documents")
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(&task.Task{}, Options{}); err == nil {
		t.Errorf("expected error for task with no turnpoints")
	} else if _, ok := err.(*RenderError); !ok {
		t.Errorf("expected *RenderError, got %T", err)
	}

	tk := templateTask(t)
	tk.Weather.WindSpeedKts = gomath.NaN()
	if _, err := Render(tk, Options{}); err == nil {
		t.Errorf("expected error for NaN wind speed")
	} else if !strings.Contains(err.Error(), "weather") {
		t.Errorf("error does not identify the weather field: %v", err)
	}

	tk = templateTask(t)
	tk.Turnpoints[1].X = gomath.Inf(1)
	if _, err := Render(tk, Options{}); err == nil {
		t.Errorf("expected error for infinite coordinate")
	} else if !strings.Contains(err.Error(), "turnpoint 1") {
		t.Errorf("error does not identify the turnpoint: %v", err)
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	tk := templateTask(t)
	tps := deep.MustCopy(tk.Turnpoints)
	airport := deep.MustCopy(*tk.Airport)
	weather := tk.Weather
	date := tk.Date

	render(t, tk)

	if !reflect.DeepEqual(tps, tk.Turnpoints) {
		t.Errorf("Render modified the turnpoint list")
	}
	if !reflect.DeepEqual(airport, *tk.Airport) {
		t.Errorf("Render modified the airport")
	}
	if weather != tk.Weather {
		t.Errorf("Render modified the weather")
	}
	if !date.Equal(tk.Date) {
		t.Errorf("Render modified the date")
	}
}

func TestSerialDate(t *testing.T) {
	for _, c := range []struct {
		date   time.Time
		serial int
	}{
		{time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 45292},
		{time.Date(2026, time.June, 21, 0, 0, 0, 0, time.UTC), 46194},
		// Time of day and zone are ignored.
		{time.Date(2026, time.June, 21, 23, 30, 0, 0, time.FixedZone("X", -5*3600)), 46194},
	} {
		if got := SerialDate(c.date); got != c.serial {
			t.Errorf("SerialDate(%v) = %d, expected %d", c.date, got, c.serial)
		}
	}
}

func TestNumberFormatting(t *testing.T) {
	for _, c := range []struct {
		v float64
		s string
	}{
		{183917.75, "183917.75"},
		{389, "389"},
		{0.1, "0.1"},
		{10000000, "10000000"},
	} {
		if got := num(c.v); got != c.s {
			t.Errorf("num(%v) = %q, expected %q", c.v, got, c.s)
		}
	}

	for _, c := range []struct {
		v float64
		s string
	}{
		{0, "0.0"},
		{2, "2.0"},
		{0.35, "0.35"},
	} {
		if got := decimal(c.v); got != c.s {
			t.Errorf("decimal(%v) = %q, expected %q", c.v, got, c.s)
		}
	}
}
