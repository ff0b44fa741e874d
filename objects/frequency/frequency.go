// /home/krylon/go/src/github.com/blicero/kidtrack/objects/frequency/frequency.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-09-29 20:14:07 krylon>

// Package frequency contains symbolic constants
// to specify at what intervals a Reminder
// goes off.
package frequency

import "strings"

// Frequency describes how a Reminder is advanced once its time of day has passed.
type Frequency uint8

// Once means a Reminder is meant to go off only once.
// Daily means it is repeated every day.
// Weekly means it is repeated every seven days.
// Monthly means it is repeated on the same day of every calendar month.
// Invalid is what unrecognized input parses to; for scheduling purposes it
// behaves like Daily.
const (
	Once Frequency = iota
	Daily
	Weekly
	Monthly
	Invalid
)

var names = [...]string{
	"once",
	"daily",
	"weekly",
	"monthly",
	"invalid",
}

func (f Frequency) String() string {
	if int(f) < len(names) {
		return names[f]
	}

	return names[Invalid]
} // func (f Frequency) String() string

// Parse returns the Frequency named by s. The comparison is case-insensitive,
// unknown names yield Invalid.
func Parse(s string) Frequency {
	s = strings.ToLower(strings.TrimSpace(s))

	for i, n := range names[:Invalid] {
		if n == s {
			return Frequency(i)
		}
	}

	return Invalid
} // func Parse(s string) Frequency

// Recurring returns true if a Reminder with this Frequency goes off more than once.
func (f Frequency) Recurring() bool {
	return f != Once
} // func (f Frequency) Recurring() bool

// MarshalText implements encoding.TextMarshaler
func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
} // func (f Frequency) MarshalText() ([]byte, error)

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Frequency) UnmarshalText(b []byte) error {
	*f = Parse(string(b))
	return nil
} // func (f *Frequency) UnmarshalText(b []byte) error
