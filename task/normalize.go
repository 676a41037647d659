// task/normalize.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"strconv"
	"strings"
	"time"

	"github.com/mmp/thermal/util"

	"github.com/brunoga/deep"
)

// RawTask mirrors the task JSON layout. Optional fields are pointers so
// that an absent field can be told apart from an explicit zero; Normalize
// applies the documented defaults only for absent ones.
type RawTask struct {
	Landscape           *string        `json:"landscape,omitempty"`
	CondorVersion       *int           `json:"condor_version,omitempty"`
	TaskDate            *string        `json:"task_date,omitempty"`
	StartTime           *int           `json:"start_time,omitempty"`
	StartTimeWindow     *int           `json:"start_time_window,omitempty"`
	RaceStartDelayMins  *int           `json:"race_start_delay_mins,omitempty"`
	Aircraft            *string        `json:"aircraft,omitempty"`
	Skin                *string        `json:"skin,omitempty"`
	StartType           *string        `json:"start_type,omitempty"`
	AirportTP           *RawAirport    `json:"airport_tp,omitempty"`
	StartHeightM        *float64       `json:"start_height_m,omitempty"`
	MinFinishHeightM    *float64       `json:"min_finish_height_m,omitempty"`
	MaxStartSpeedKts    *float64       `json:"max_start_speed_kts,omitempty"`
	Weather             *RawWeather    `json:"weather,omitempty"`
	Turnpoints          []RawTurnpoint `json:"turnpoints"`
	Penalties           *RawPenalties  `json:"penalties,omitempty"`
	Description         *string        `json:"description,omitempty"`
}

type RawAirport struct {
	Name *string  `json:"name,omitempty"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Z    *float64 `json:"z,omitempty"`
}

type RawWeather struct {
	WindDirDeg      *float64 `json:"wind_dir_deg,omitempty"`
	WindSpeedKts    *float64 `json:"wind_speed_kts,omitempty"`
	CloudBaseFt     *float64 `json:"cloud_base_ft,omitempty"`
	Overdevelopment *float64 `json:"overdevelopment,omitempty"`
	ThermalStrength *int     `json:"thermal_strength,omitempty"`
	ThermalActivity *int     `json:"thermal_activity,omitempty"`
}

type RawTurnpoint struct {
	Name       string   `json:"name"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Z          *float64 `json:"z,omitempty"`
	RadiusM    *float64 `json:"radius_m,omitempty"`
	AngleDeg   *float64 `json:"angle_deg,omitempty"`
	SectorType *int     `json:"sector_type,omitempty"`
	SectorDir  *int     `json:"sector_dir,omitempty"`
}

type RawPenalties struct {
	CloudFlying    *int `json:"cloud_flying,omitempty"`
	PlaneRecovery  *int `json:"plane_recovery,omitempty"`
	HeightRecovery *int `json:"height_recovery,omitempty"`
	Airspace       *int `json:"airspace,omitempty"`
}

// ValidationError reports everything found wrong with a raw task; all
// fields are checked before it is returned, so a single round trip is
// enough to see the full list.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "\n")
}

// Normalize validates the raw task description, fills in defaults for
// absent optional fields, and returns the normalized Task. It has no side
// effects; on failure the returned error is a *ValidationError that
// carries one entry per problem found.
func (r *RawTask) Normalize() (*Task, error) {
	var e util.ErrorLogger
	t := r.normalize(&e)
	if e.HaveErrors() {
		return nil, &ValidationError{Problems: e.Errors()}
	}
	return t, nil
}

func (r *RawTask) normalize(e *util.ErrorLogger) *Task {
	defer e.CheckDepth(e.CurrentDepth())

	t := &Task{
		CondorVersion:    3100,
		Skin:             "Default",
		StartHeightM:     1000,
		MaxStartSpeedKts: 81,
		Weather: Weather{
			CloudBaseFt:     4921,
			ThermalStrength: 2,
			ThermalActivity: 3,
		},
		Penalties: Penalties{
			CloudFlying:    100,
			PlaneRecovery:  100,
			HeightRecovery: 100,
			Airspace:       100,
		},
	}

	requireString := func(key string, s *string) string {
		e.Push(key)
		defer e.Pop()
		if s == nil || *s == "" {
			e.ErrorString("must be specified")
			return ""
		}
		return *s
	}

	t.Landscape = requireString("landscape", r.Landscape)
	t.Aircraft = requireString("aircraft", r.Aircraft)

	e.Push("task_date")
	if r.TaskDate == nil || *r.TaskDate == "" {
		e.ErrorString("must be specified")
	} else if d, err := time.Parse("2006-01-02", *r.TaskDate); err != nil {
		e.ErrorString("%q: expected YYYY-MM-DD", *r.TaskDate)
	} else {
		t.Date = d
	}
	e.Pop()

	e.Push("start_time")
	if r.StartTime == nil {
		e.ErrorString("must be specified")
	} else if *r.StartTime < 0 || *r.StartTime > 23 {
		e.ErrorString("%d: expected hour in 0-23", *r.StartTime)
	} else {
		t.StartTimeHour = *r.StartTime
	}
	e.Pop()

	e.Push("start_type")
	if r.StartType == nil {
		e.ErrorString("must be specified")
	} else if st, err := ParseStartType(*r.StartType); err != nil {
		e.Error(err)
	} else {
		t.StartType = st
	}
	e.Pop()

	if r.CondorVersion != nil {
		t.CondorVersion = *r.CondorVersion
	}
	if r.Skin != nil && *r.Skin != "" {
		t.Skin = *r.Skin
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.StartHeightM != nil {
		t.StartHeightM = *r.StartHeightM
	}
	if r.MinFinishHeightM != nil {
		t.MinFinishHeightM = *r.MinFinishHeightM
	}

	e.Push("start_time_window")
	if r.StartTimeWindow != nil {
		if *r.StartTimeWindow < 0 {
			e.ErrorString("%d: must not be negative", *r.StartTimeWindow)
		} else {
			t.StartTimeWindowMins = *r.StartTimeWindow
		}
	}
	e.Pop()

	e.Push("race_start_delay_mins")
	if r.RaceStartDelayMins != nil {
		if *r.RaceStartDelayMins < 0 {
			e.ErrorString("%d: must not be negative", *r.RaceStartDelayMins)
		} else {
			t.RaceStartDelayMins = *r.RaceStartDelayMins
		}
	}
	e.Pop()

	e.Push("max_start_speed_kts")
	if r.MaxStartSpeedKts != nil {
		if *r.MaxStartSpeedKts < 0 {
			e.ErrorString("%v: must not be negative", *r.MaxStartSpeedKts)
		} else {
			t.MaxStartSpeedKts = *r.MaxStartSpeedKts
		}
	}
	e.Pop()

	if r.Weather != nil {
		e.Push("weather")
		w := r.Weather
		if w.WindDirDeg != nil {
			t.Weather.WindDirDeg = *w.WindDirDeg
		}
		e.Push("wind_speed_kts")
		if w.WindSpeedKts != nil {
			if *w.WindSpeedKts < 0 {
				e.ErrorString("%v: must not be negative", *w.WindSpeedKts)
			} else {
				t.Weather.WindSpeedKts = *w.WindSpeedKts
			}
		}
		e.Pop()
		if w.CloudBaseFt != nil {
			t.Weather.CloudBaseFt = *w.CloudBaseFt
		}
		if w.Overdevelopment != nil {
			t.Weather.Overdevelopment = *w.Overdevelopment
		}
		if w.ThermalStrength != nil {
			t.Weather.ThermalStrength = *w.ThermalStrength
		}
		if w.ThermalActivity != nil {
			t.Weather.ThermalActivity = *w.ThermalActivity
		}
		e.Pop()
	}

	coord := func(key string, v *float64) float64 {
		e.Push(key)
		defer e.Pop()
		if v == nil {
			e.ErrorString("must be specified")
			return 0
		}
		return *v
	}

	if r.AirportTP != nil {
		e.Push("airport_tp")
		t.Airport = &Airport{
			Name: requireString("name", r.AirportTP.Name),
			X:    coord("x", r.AirportTP.X),
			Y:    coord("y", r.AirportTP.Y),
			Z:    coord("z", r.AirportTP.Z),
		}
		e.Pop()
	}

	e.Push("turnpoints")
	if len(r.Turnpoints) == 0 {
		e.ErrorString("at least one turnpoint must be specified")
	}
	for i := range r.Turnpoints {
		e.Push(strconv.Itoa(i))
		rtp := &r.Turnpoints[i]
		tp := Turnpoint{Name: rtp.Name}
		if tp.Name == "" {
			e.Push("name")
			e.ErrorString("must be specified")
			e.Pop()
		}

		tp.X = coord("x", rtp.X)
		tp.Y = coord("y", rtp.Y)
		tp.Z = coord("z", rtp.Z)

		e.Push("radius_m")
		if rtp.RadiusM == nil {
			e.ErrorString("must be specified")
		} else if *rtp.RadiusM < 0 {
			e.ErrorString("%v: must not be negative", *rtp.RadiusM)
		} else {
			tp.RadiusM = *rtp.RadiusM
		}
		e.Pop()

		e.Push("angle_deg")
		if rtp.AngleDeg == nil {
			e.ErrorString("must be specified")
		} else {
			tp.AngleDeg = *rtp.AngleDeg
		}
		e.Pop()

		if rtp.SectorType != nil {
			tp.SectorType = *rtp.SectorType
		}
		if rtp.SectorDir != nil {
			tp.SectorDir = *rtp.SectorDir
		}

		t.Turnpoints = append(t.Turnpoints, tp)
		e.Pop()
	}
	e.Pop()

	if r.Penalties != nil {
		if r.Penalties.CloudFlying != nil {
			t.Penalties.CloudFlying = *r.Penalties.CloudFlying
		}
		if r.Penalties.PlaneRecovery != nil {
			t.Penalties.PlaneRecovery = *r.Penalties.PlaneRecovery
		}
		if r.Penalties.HeightRecovery != nil {
			t.Penalties.HeightRecovery = *r.Penalties.HeightRecovery
		}
		if r.Penalties.Airspace != nil {
			t.Penalties.Airspace = *r.Penalties.Airspace
		}
	}

	return t
}

///////////////////////////////////////////////////////////////////////////
// Template

var template = RawTask{
	Landscape:          ptr("Centro_Italia3"),
	CondorVersion:      ptr(3100),
	TaskDate:           ptr("2026-06-21"),
	StartTime:          ptr(13),
	StartTimeWindow:    ptr(5),
	RaceStartDelayMins: ptr(5),
	Aircraft:           ptr("Blanik"),
	Skin:               ptr("Default"),
	StartType:          ptr("airborne"),
	AirportTP: &RawAirport{
		Name: ptr("Rieti"),
		X:    ptr(183917.75),
		Y:    ptr(229719.265625),
		Z:    ptr(389.0),
	},
	StartHeightM:     ptr(1000.0),
	MinFinishHeightM: ptr(0.0),
	MaxStartSpeedKts: ptr(81.0),
	Weather: &RawWeather{
		WindDirDeg:      ptr(90.0),
		WindSpeedKts:    ptr(13.0),
		CloudBaseFt:     ptr(4921.0),
		Overdevelopment: ptr(0.0),
		ThermalStrength: ptr(2),
		ThermalActivity: ptr(3),
	},
	Turnpoints: []RawTurnpoint{
		{Name: "Cittaducalepiazz", X: ptr(175684.546875), Y: ptr(224619.90625), Z: ptr(478.0),
			RadiusM: ptr(5000.0), AngleDeg: ptr(180.0), SectorType: ptr(0), SectorDir: ptr(0)},
		{Name: "Galleria S Rocco", X: ptr(146981.578125), Y: ptr(205843.515625), Z: ptr(1314.0),
			RadiusM: ptr(3000.0), AngleDeg: ptr(90.0), SectorType: ptr(0), SectorDir: ptr(0)},
		{Name: "Rieti", X: ptr(183917.75), Y: ptr(229719.265625), Z: ptr(389.0),
			RadiusM: ptr(1000.0), AngleDeg: ptr(180.0), SectorType: ptr(0), SectorDir: ptr(0)},
	},
	Penalties: &RawPenalties{
		CloudFlying:    ptr(100),
		PlaneRecovery:  ptr(100),
		HeightRecovery: ptr(100),
		Airspace:       ptr(100),
	},
	Description: ptr("SGC Spring 2026 Race 1"),
}

// Template returns a complete example task, suitable for writing out as a
// starting point for hand-edited task files. Each call returns an
// independent copy, so callers are free to modify the result.
func Template() *RawTask {
	t := deep.MustCopy(template)
	return &t
}

func ptr[T any](v T) *T {
	return &v
}
