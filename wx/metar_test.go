// wx/metar_test.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"testing"

	"github.com/mmp/thermal/task"
)

func TestParseMETAR(t *testing.T) {
	m, err := ParseMETAR("METAR LIQN 211350Z 27010KT 9999 SCT045 28/12 Q1018")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Station != "LIQN" {
		t.Errorf("station %q, expected LIQN", m.Station)
	}
	if m.WindDir == nil || *m.WindDir != 270 {
		t.Errorf("wind direction %v, expected 270", m.WindDir)
	}
	if m.WindSpeed != 10 {
		t.Errorf("wind speed %d, expected 10", m.WindSpeed)
	}
	if m.WindGust != nil {
		t.Errorf("unexpected gust %v", *m.WindGust)
	}

	m, err = ParseMETAR("KRNO 211756Z 29015G25KT 10SM FEW080 SCT110 30/08 A3002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.WindDir == nil || *m.WindDir != 290 || m.WindSpeed != 15 {
		t.Errorf("got %v/%d, expected 290/15", m.WindDir, m.WindSpeed)
	}
	if m.WindGust == nil || *m.WindGust != 25 {
		t.Errorf("gust %v, expected 25", m.WindGust)
	}

	m, err = ParseMETAR("LOWI 211350Z VRB03KT CAVOK 25/10 Q1020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.WindDir != nil {
		t.Errorf("expected nil direction for variable wind, got %d", *m.WindDir)
	}
	if m.WindSpeed != 3 {
		t.Errorf("wind speed %d, expected 3", m.WindSpeed)
	}

	// Calm winds
	m, err = ParseMETAR("EDDM 211350Z 00000KT 9999 BKN035 22/14 Q1015")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.WindDir == nil || *m.WindDir != 0 || m.WindSpeed != 0 {
		t.Errorf("got %v/%d, expected 0/0", m.WindDir, m.WindSpeed)
	}
}

func TestParseMETARErrors(t *testing.T) {
	for _, raw := range []string{
		"",
		"LIQN 211350Z 9999 28/12 Q1018",
		"LIQN 211350Z 2701KT",
		"LIQN 211350Z 40010KT",
		"LIQN 211350Z 27A10KT",
		"LIQN 211350Z 270G15KT",
	} {
		if _, err := ParseMETAR(raw); err == nil {
			t.Errorf("no error for %q", raw)
		}
	}
}

func TestCloudBase(t *testing.T) {
	for _, c := range []struct {
		raw  string
		base int
		ok   bool
	}{
		{"LIQN 211350Z 27010KT 9999 SCT045 28/12 Q1018", 4500, true},
		{"KRNO 211756Z 29015G25KT 10SM FEW080 SCT110 30/08 A3002", 8000, true},
		{"LIQN 211350Z 27010KT 9999 SCT045CB 28/12 Q1018", 4500, true},
		{"EDDM 211350Z 00000KT 9999 BKN035 22/14 Q1015", 3500, true},
		{"LOWI 211350Z VRB03KT CAVOK 25/10 Q1020", 0, false},
		{"LIQN 211350Z 27010KT 9999 CLR 28/12", 0, false},
	} {
		m, err := ParseMETAR(c.raw)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.raw, err)
		}
		base, ok := m.CloudBase()
		if base != c.base || ok != c.ok {
			t.Errorf("%s: got %d, %v, expected %d, %v", c.raw, base, ok, c.base, c.ok)
		}
	}
}

func TestApplyWeather(t *testing.T) {
	w := task.Weather{WindDirDeg: 90, WindSpeedKts: 13, CloudBaseFt: 4921}

	m, err := ParseMETAR("KRNO 211756Z 29015G25KT 10SM FEW080 SCT110 30/08 A3002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.ApplyWeather(&w)
	if w.WindDirDeg != 290 || w.WindSpeedKts != 15 || w.CloudBaseFt != 8000 {
		t.Errorf("unexpected weather after apply: %+v", w)
	}

	// Variable wind and no cloud layer leave direction and cloud base
	// alone.
	m, err = ParseMETAR("LOWI 211350Z VRB03KT CAVOK 25/10 Q1020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.ApplyWeather(&w)
	if w.WindDirDeg != 290 || w.WindSpeedKts != 3 || w.CloudBaseFt != 8000 {
		t.Errorf("unexpected weather after apply: %+v", w)
	}
}
