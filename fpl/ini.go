// fpl/ini.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fpl

import (
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// Section is a single [Name] block of an INI-style document. Keys are
// emitted in the order they were first set.
type Section struct {
	Name string
	keys *orderedmap.OrderedMap
}

func (s *Section) Set(key, value string) {
	s.keys.Set(key, value)
}

func (s *Section) Setf(key, format string, args ...interface{}) {
	s.keys.Set(key, fmt.Sprintf(format, args...))
}

// Get returns the value stored for key and whether it is present.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.keys.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Doc is an ordered collection of Sections, rendered in the order they
// were added.
type Doc struct {
	sections []*Section
}

// AddSection appends a new empty section and returns it.
func (d *Doc) AddSection(name string) *Section {
	s := &Section{Name: name, keys: orderedmap.New()}
	d.sections = append(d.sections, s)
	return s
}

// String renders the document with CRLF line terminators. Each section is
// separated from the next by a blank line and the document ends with a
// single CRLF; the consuming simulator is picky about both.
func (d *Doc) String() string {
	var lines []string
	for _, s := range d.sections {
		lines = append(lines, "["+s.Name+"]")
		for _, k := range s.keys.Keys() {
			v, _ := s.keys.Get(k)
			lines = append(lines, k+"="+v.(string))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\r\n")
}
