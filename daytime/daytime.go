// /home/krylon/go/src/github.com/blicero/kidtrack/daytime/daytime.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-03 16:20:51 krylon>

// Package daytime converts between the wall clock representations the
// user deals with (date strings, time-of-day strings) and the two forms
// used internally: an absolute day (local midnight) and the number of
// minutes since midnight.
package daytime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a (regular) day.
// The valid range for a time of day in minutes is [0, MinutesPerDay).
const MinutesPerDay = 24 * 60

// Formats used to parse and render dates and times.
const (
	DateFormat        = "2006-01-02"
	TimeFormat        = "15:04"
	DisplayDateFormat = "02 Jan 2006"
	DisplayTimeFormat = "03:04 PM"
)

// FormatError indicates a malformed date or time of day.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date/time %q: %s",
		e.Input,
		e.Reason)
} // func (e *FormatError) Error() string

// ToMinutes converts a time of day into minutes since midnight.
func ToMinutes(hh, mm int) (int, error) {
	if hh < 0 || hh > 23 {
		return 0, &FormatError{
			Input:  fmt.Sprintf("%02d:%02d", hh, mm),
			Reason: "hour must be between 0 and 23",
		}
	} else if mm < 0 || mm > 59 {
		return 0, &FormatError{
			Input:  fmt.Sprintf("%02d:%02d", hh, mm),
			Reason: "minute must be between 0 and 59",
		}
	}

	return hh*60 + mm, nil
} // func ToMinutes(hh, mm int) (int, error)

// FromMinutes is the inverse of ToMinutes.
func FromMinutes(minutes int) (int, int, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return 0, 0, &FormatError{
			Input:  strconv.Itoa(minutes),
			Reason: "minutes since midnight must be between 0 and 1439",
		}
	}

	return minutes / 60, minutes % 60, nil
} // func FromMinutes(minutes int) (int, int, error)

// ParseTime parses a time of day in HH:mm format (24 hours) and returns
// it as minutes since midnight.
func ParseTime(s string) (int, error) {
	var (
		err    error
		hh, mm int
		parts  = strings.Split(s, ":")
	)

	if len(parts) != 2 {
		return 0, &FormatError{Input: s, Reason: "expected HH:mm"}
	} else if hh, err = strconv.Atoi(parts[0]); err != nil {
		return 0, &FormatError{Input: s, Reason: "hour is not a number"}
	} else if mm, err = strconv.Atoi(parts[1]); err != nil {
		return 0, &FormatError{Input: s, Reason: "minute is not a number"}
	}

	var minutes int

	if minutes, err = ToMinutes(hh, mm); err != nil {
		return 0, &FormatError{Input: s, Reason: err.(*FormatError).Reason}
	}

	return minutes, nil
} // func ParseTime(s string) (int, error)

// FormatMinutes renders minutes since midnight as HH:mm.
// Values outside the valid range yield an empty string.
func FormatMinutes(minutes int) string {
	var hh, mm, err = FromMinutes(minutes)

	if err != nil {
		return ""
	}

	return fmt.Sprintf("%02d:%02d", hh, mm)
} // func FormatMinutes(minutes int) string

// DisplayTime renders minutes since midnight on a 12 hour clock,
// e.g. "02:30 PM".
func DisplayTime(minutes int) string {
	var hh, mm, err = FromMinutes(minutes)

	if err != nil {
		return ""
	}

	return time.Date(2000, 1, 1, hh, mm, 0, 0, time.UTC).Format(DisplayTimeFormat)
} // func DisplayTime(minutes int) string

// ParseDate parses a date in yyyy-MM-dd format and returns midnight of
// that day in the given location. Parsing is strict: dates that do not
// exist on the calendar are rejected rather than normalized.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	var parts = strings.Split(s, "-")

	if len(parts) != 3 {
		return time.Time{}, &FormatError{Input: s, Reason: "expected yyyy-MM-dd"}
	}

	for _, p := range parts {
		if _, err := strconv.ParseUint(p, 10, 32); err != nil {
			return time.Time{}, &FormatError{Input: s, Reason: "date fields must be numeric"}
		}
	}

	if loc == nil {
		loc = time.Local
	}

	var day, err = time.ParseInLocation(DateFormat, s, loc)

	if err != nil {
		return time.Time{}, &FormatError{Input: s, Reason: err.Error()}
	}

	return day, nil
} // func ParseDate(s string, loc *time.Location) (time.Time, error)

// FormatDate renders the date part of t as yyyy-MM-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
} // func FormatDate(t time.Time) string

// DisplayDate renders the date part of t as e.g. "15 Jan 2026".
func DisplayDate(t time.Time) string {
	return t.Format(DisplayDateFormat)
} // func DisplayDate(t time.Time) string

// Midnight returns the start of the calendar day t falls on, in t's location.
func Midnight(t time.Time) time.Time {
	var y, m, d = t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
} // func Midnight(t time.Time) time.Time

// At returns the instant on day's calendar date at the given number of
// minutes since midnight. Seconds and sub-seconds are zero.
func At(day time.Time, minutes int) time.Time {
	var y, m, d = day.Date()

	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location())
} // func At(day time.Time, minutes int) time.Time

// DayStamp returns the absolute day t falls on as Unix seconds.
func DayStamp(t time.Time) int64 {
	return Midnight(t).Unix()
} // func DayStamp(t time.Time) int64

// FromDayStamp is the inverse of DayStamp. A stamp of 0 yields the zero Time.
func FromDayStamp(stamp int64, loc *time.Location) time.Time {
	if stamp == 0 {
		return time.Time{}
	} else if loc == nil {
		loc = time.Local
	}

	return Midnight(time.Unix(stamp, 0).In(loc))
} // func FromDayStamp(stamp int64, loc *time.Location) time.Time
