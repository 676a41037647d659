// fpl/date.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fpl

import "time"

// The file format stores the task date as a spreadsheet-style serial day
// count where day 1 is 1899-12-31.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialDate returns the serial day number for t's calendar date. Only the
// date is considered; the time of day and location are ignored.
func SerialDate(t time.Time) int {
	y, m, d := t.Date()
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(u.Sub(serialEpoch) / (24 * time.Hour))
}
