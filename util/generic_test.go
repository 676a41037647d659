// util/generic_test.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"testing"
)

func TestMapSlice(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	b := MapSlice[int, float64](a, func(i int) float64 { return 2 * float64(i) })
	if len(a) != len(b) {
		t.Errorf("lengths mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if float64(2*a[i]) != b[i] {
			t.Errorf("value %d mismatch %f vs %f", i, float64(2*a[i]), b[i])
		}
	}
}

func TestInsertSliceElement(t *testing.T) {
	a := []int{1, 2, 4, 5}
	a = InsertSliceElement(a, 2, 3)
	if !slices.Equal(a, []int{1, 2, 3, 4, 5}) {
		t.Errorf("Slice insert incorrect: %v", a)
	}
	a = InsertSliceElement(a, 0, 0)
	if !slices.Equal(a, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("Slice insert at front incorrect: %v", a)
	}
	a = InsertSliceElement(a, len(a), 6)
	if !slices.Equal(a, []int{0, 1, 2, 3, 4, 5, 6}) {
		t.Errorf("Slice insert at end incorrect: %v", a)
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"Ventus2": 1, "ASW28": 2, "LS8": 3}
	if got := SortedMapKeys(m); !slices.Equal(got, []string{"ASW28", "LS8", "Ventus2"}) {
		t.Errorf("SortedMapKeys returned %v", got)
	}
}

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 {
		t.Errorf("Select true incorrect")
	}
	if Select(false, 1, 2) != 2 {
		t.Errorf("Select false incorrect")
	}
}
