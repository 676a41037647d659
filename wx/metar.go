// wx/metar.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package wx imports weather observations into task weather. The only
// source currently supported is raw METAR text.
package wx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/thermal/task"
	"github.com/mmp/thermal/util"
)

// METAR is as much of an observation as task weather needs.
type METAR struct {
	Station   string
	WindDir   *int // nil for variable winds, otherwise heading 0-360
	WindSpeed int  // kts
	WindGust  *int // kts, nil if not reported
	Raw       string
}

// ParseMETAR extracts the station and wind group from raw METAR text. The
// rest of the report is kept unparsed in Raw and scanned on demand.
func ParseMETAR(raw string) (METAR, error) {
	m := METAR{Raw: strings.TrimSpace(raw)}

	fields := strings.Fields(m.Raw)
	if len(fields) > 0 && (fields[0] == "METAR" || fields[0] == "SPECI") {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return m, fmt.Errorf("empty METAR")
	}
	m.Station = fields[0]

	for _, f := range fields[1:] {
		if wind, ok := strings.CutSuffix(f, "KT"); ok {
			return m, m.parseWind(wind)
		}
	}
	return m, fmt.Errorf("%s: no wind group found", m.Raw)
}

// parseWind handles the dddff, dddffGgg, and VRBff forms, without the KT
// suffix.
func (m *METAR) parseWind(s string) error {
	if len(s) < 5 {
		return fmt.Errorf("%sKT: wind group too short", s)
	}
	dir, rest := s[:3], s[3:]

	speed, gust, hasGust := strings.Cut(rest, "G")
	if speed == "" || !util.IsAllNumbers(speed) {
		return fmt.Errorf("%sKT: bad wind speed %q", s, speed)
	}
	m.WindSpeed, _ = strconv.Atoi(speed)

	if hasGust {
		if gust == "" || !util.IsAllNumbers(gust) {
			return fmt.Errorf("%sKT: bad wind gust %q", s, gust)
		}
		g, _ := strconv.Atoi(gust)
		m.WindGust = &g
	}

	if dir != "VRB" {
		if !util.IsAllNumbers(dir) {
			return fmt.Errorf("%sKT: bad wind direction %q", s, dir)
		}
		d, _ := strconv.Atoi(dir)
		if d > 360 {
			return fmt.Errorf("wind direction out of range: %d", d)
		}
		m.WindDir = &d
	}
	return nil
}

// CloudBase returns the height in feet AGL of the lowest reported cloud
// layer. Few and scattered layers count: for thermal soaring the cumulus
// base matters, not the ceiling.
func (m METAR) CloudBase() (int, bool) {
	for _, f := range strings.Fields(m.Raw) {
		for _, layer := range []string{"FEW", "SCT", "BKN", "OVC"} {
			if strings.HasPrefix(f, layer) && len(f) >= 6 {
				if alt, err := strconv.Atoi(f[3:6]); err == nil {
					return alt * 100, true
				}
			}
		}
	}
	return 0, false
}

// ApplyWeather copies the observation's wind and cloud base into w. A
// variable wind updates only the speed, and if no cloud layer was
// reported the existing cloud base is kept.
func (m METAR) ApplyWeather(w *task.Weather) {
	if m.WindDir != nil {
		w.WindDirDeg = float64(*m.WindDir)
	}
	w.WindSpeedKts = float64(m.WindSpeed)
	if base, ok := m.CloudBase(); ok {
		w.CloudBaseFt = float64(base)
	}
}
