// cmd/thermal/interactive.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// Interactive task entry: a sequence of terminal forms that walks through
// the fields of a task description, then writes the flight plan and
// optionally the task JSON next to it.

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mmp/thermal/fpl"
	"github.com/mmp/thermal/log"
	"github.com/mmp/thermal/rand"
	"github.com/mmp/thermal/strategy"
	"github.com/mmp/thermal/task"
	"github.com/mmp/thermal/wx"

	"github.com/charmbracelet/huh"
)

// interactiveTask holds the form state; the numeric fields are entered as
// text and are validated before the form will advance, so the conversions
// when the task is assembled cannot fail.
type interactiveTask struct {
	landscape   string
	date        string
	startTime   string
	window      string
	delay       string
	aircraft    string
	startType   string
	startHeight string
	maxSpeed    string

	windDir   string
	windSpeed string
	cloudBase string
	overdev   string
	strength  int
	activity  int

	aptName string
	aptX    string
	aptY    string
	aptZ    string

	description string
}

type tpEntry struct {
	name    string
	x, y, z string
	radius  string
	angle   string
}

func runInteractive(lg *log.Logger) {
	it := makeInteractiveTask(lg)

	runForm(taskForm(&it), lg)

	var tps []task.RawTurnpoint
	for {
		entry := tpEntry{radius: "3000", angle: "180"}
		runForm(turnpointForm(&entry, len(tps)), lg)
		tps = append(tps, entry.rawTurnpoint())

		if len(tps) >= 2 {
			more := false
			runForm(huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Add another turnpoint after %s?", strings.TrimSpace(entry.name))).
					Affirmative("Yes").
					Negative("No, finish there").
					Value(&more),
			)), lg)
			if !more {
				break
			}
		}
	}

	raw := it.rawTask(tps)
	t, err := raw.Normalize()
	if err != nil {
		fatalError(lg, err)
	}

	fmt.Printf("Calculated task distance: %.1f km\n", t.Distance())

	outName := rand.AdjectiveNoun(rand.Make()) + ".fpl"
	saveJSON := true
	runForm(huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Description").Value(&it.description),
		huh.NewInput().Title("Output filename").Value(&outName).Validate(requiredString),
		huh.NewConfirm().Title("Save the task as JSON too?").Value(&saveJSON),
	)), lg)

	raw.Description = &it.description
	t, err = raw.Normalize()
	if err != nil {
		fatalError(lg, err)
	}

	content, err := fpl.Render(t, renderOptions())
	if err != nil {
		fatalError(lg, err)
	}

	outName = strings.TrimSpace(outName)
	if filepath.Ext(outName) == "" {
		outName += ".fpl"
	}
	if err := os.WriteFile(outName, []byte(content), 0o644); err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}
	fmt.Printf("Written: %s\n", outName)

	if saveJSON {
		jsonName := strings.TrimSuffix(outName, filepath.Ext(outName)) + ".json"
		b, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		b = append(b, '\n')
		if err := os.WriteFile(jsonName, b, 0o644); err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		fmt.Printf("Task JSON saved: %s\n", jsonName)
	}

	if *showStrategy {
		fmt.Println()
		fmt.Println(strategy.Generate(t))
	}
}

// makeInteractiveTask seeds the form with the template task's values so
// that hitting return all the way through gives something flyable. If a
// METAR was given on the command line, its wind and cloud base replace the
// template weather.
func makeInteractiveTask(lg *log.Logger) interactiveTask {
	tpl := task.Template()

	it := interactiveTask{
		landscape:   *tpl.Landscape,
		date:        *tpl.TaskDate,
		startTime:   strconv.Itoa(*tpl.StartTime),
		window:      strconv.Itoa(*tpl.StartTimeWindow),
		delay:       strconv.Itoa(*tpl.RaceStartDelayMins),
		aircraft:    *tpl.Aircraft,
		startType:   *tpl.StartType,
		startHeight: fnum(*tpl.StartHeightM),
		maxSpeed:    fnum(*tpl.MaxStartSpeedKts),
		windDir:     fnum(*tpl.Weather.WindDirDeg),
		windSpeed:   fnum(*tpl.Weather.WindSpeedKts),
		cloudBase:   fnum(*tpl.Weather.CloudBaseFt),
		overdev:     fnum(*tpl.Weather.Overdevelopment),
		strength:    *tpl.Weather.ThermalStrength,
		activity:    *tpl.Weather.ThermalActivity,
	}

	if *metarReport != "" {
		m, err := wx.ParseMETAR(*metarReport)
		if err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		w := task.Weather{
			WindDirDeg:   *tpl.Weather.WindDirDeg,
			WindSpeedKts: *tpl.Weather.WindSpeedKts,
			CloudBaseFt:  *tpl.Weather.CloudBaseFt,
		}
		m.ApplyWeather(&w)
		it.windDir = fnum(w.WindDirDeg)
		it.windSpeed = fnum(w.WindSpeedKts)
		it.cloudBase = fnum(w.CloudBaseFt)
		fmt.Printf("Weather prefilled from METAR %s\n", m.Station)
	}

	return it
}

func taskForm(it *interactiveTask) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Landscape").Value(&it.landscape).Validate(requiredString),
			huh.NewInput().Title("Task date").Description("YYYY-MM-DD").Value(&it.date).Validate(validDate),
			huh.NewInput().Title("Start time").Description("Local hour, 24h clock").Value(&it.startTime).
				Validate(validIntRange(0, 23)),
			huh.NewInput().Title("Start window (mins)").Value(&it.window).Validate(validIntRange(0, 120)),
			huh.NewInput().Title("Race start delay (mins)").Value(&it.delay).Validate(validIntRange(0, 120)),
			huh.NewInput().Title("Aircraft").Suggestions(strategy.AircraftNames()).Value(&it.aircraft).
				Validate(requiredString),
			huh.NewSelect[string]().
				Title("Start type").
				Options(
					huh.NewOption("Airborne", "airborne"),
					huh.NewOption("Aerotow", "tow"),
					huh.NewOption("Start gate", "gate"),
					huh.NewOption("Start line", "line"),
				).
				Value(&it.startType),
			huh.NewInput().Title("Start height (m AGL)").Value(&it.startHeight).Validate(validFloat),
			huh.NewInput().Title("Max start speed (kts)").Value(&it.maxSpeed).Validate(validFloat),
		).Title("Task"),
		huh.NewGroup(
			huh.NewInput().Title("Wind direction (°)").Value(&it.windDir).Validate(validFloat),
			huh.NewInput().Title("Wind speed (kts)").Value(&it.windSpeed).Validate(validFloat),
			huh.NewInput().Title("Cloud base (ft)").Value(&it.cloudBase).Validate(validFloat),
			huh.NewInput().Title("Overdevelopment").Description("0.0 to 1.0").Value(&it.overdev).
				Validate(validFloat),
			huh.NewSelect[int]().
				Title("Thermal strength").
				Options(
					huh.NewOption("1 (weak)", 1),
					huh.NewOption("2 (moderate)", 2),
					huh.NewOption("3 (good)", 3),
					huh.NewOption("4 (strong)", 4),
					huh.NewOption("5 (booming)", 5),
				).
				Value(&it.strength),
			huh.NewSelect[int]().
				Title("Thermal activity").
				Options(
					huh.NewOption("1", 1),
					huh.NewOption("2", 2),
					huh.NewOption("3", 3),
					huh.NewOption("4", 4),
					huh.NewOption("5", 5),
				).
				Value(&it.activity),
		).Title("Weather"),
		huh.NewGroup(
			huh.NewInput().Title("Airfield name").Value(&it.aptName).Validate(requiredString),
			huh.NewInput().Title("X (m)").Value(&it.aptX).Validate(validFloat),
			huh.NewInput().Title("Y (m)").Value(&it.aptY).Validate(validFloat),
			huh.NewInput().Title("Z elevation (m)").Value(&it.aptZ).Validate(validFloat),
		).Title("Launch airfield"),
	)
}

func turnpointForm(entry *tpEntry, idx int) *huh.Form {
	title := "Start gate"
	desc := "The first turnpoint is the start gate; the last one entered is the finish."
	if idx > 0 {
		title = fmt.Sprintf("Turnpoint %d", idx+1)
		desc = ""
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Description(desc).Value(&entry.name).Validate(requiredString),
		huh.NewInput().Title("X (m)").Value(&entry.x).Validate(validFloat),
		huh.NewInput().Title("Y (m)").Value(&entry.y).Validate(validFloat),
		huh.NewInput().Title("Z elevation (m)").Value(&entry.z).Validate(validFloat),
		huh.NewInput().Title("Sector radius (m)").Value(&entry.radius).Validate(validFloat),
		huh.NewInput().Title("Sector angle (°)").Value(&entry.angle).Validate(validFloat),
	).Title(title))
}

func runForm(f *huh.Form, lg *log.Logger) {
	if err := f.Run(); err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			lg.Errorf("%v", err)
		}
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////
// Field validation and conversion

func requiredString(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must be specified")
	}
	return nil
}

func validFloat(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("%q: expected a number", strings.TrimSpace(s))
	}
	return nil
}

func validIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%q: expected an integer", strings.TrimSpace(s))
		}
		if v < lo || v > hi {
			return fmt.Errorf("%d: expected %d to %d", v, lo, hi)
		}
		return nil
	}
}

func validDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("%q: expected YYYY-MM-DD", strings.TrimSpace(s))
	}
	return nil
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func atof(s string) *float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return &v
}

func atoi(s string) *int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return &v
}

func (e *tpEntry) rawTurnpoint() task.RawTurnpoint {
	return task.RawTurnpoint{
		Name:     strings.TrimSpace(e.name),
		X:        atof(e.x),
		Y:        atof(e.y),
		Z:        atof(e.z),
		RadiusM:  atof(e.radius),
		AngleDeg: atof(e.angle),
	}
}

func (it *interactiveTask) rawTask(tps []task.RawTurnpoint) *task.RawTask {
	str := func(s string) *string {
		s = strings.TrimSpace(s)
		return &s
	}
	return &task.RawTask{
		Landscape:          str(it.landscape),
		TaskDate:           str(it.date),
		StartTime:          atoi(it.startTime),
		StartTimeWindow:    atoi(it.window),
		RaceStartDelayMins: atoi(it.delay),
		Aircraft:           str(it.aircraft),
		StartType:          str(it.startType),
		AirportTP: &task.RawAirport{
			Name: str(it.aptName),
			X:    atof(it.aptX),
			Y:    atof(it.aptY),
			Z:    atof(it.aptZ),
		},
		StartHeightM:     atof(it.startHeight),
		MaxStartSpeedKts: atof(it.maxSpeed),
		Weather: &task.RawWeather{
			WindDirDeg:      atof(it.windDir),
			WindSpeedKts:    atof(it.windSpeed),
			CloudBaseFt:     atof(it.cloudBase),
			Overdevelopment: atof(it.overdev),
			ThermalStrength: &it.strength,
			ThermalActivity: &it.activity,
		},
		Turnpoints: tps,
	}
}
