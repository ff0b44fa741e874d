// /home/krylon/go/src/github.com/blicero/kidtrack/objects/01_nextfire_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-09 19:52:30 krylon>

package objects

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/objects/frequency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func berlin(t *testing.T) *time.Location {
	var loc, err = time.LoadLocation("Europe/Berlin")

	require.NoError(t, err, "Cannot load time zone")
	return loc
} // func berlin(t *testing.T) *time.Location

func TestNextFire(t *testing.T) {
	type testCase struct {
		name   string
		r      Reminder
		now    time.Time
		expect time.Time
	}

	var (
		loc  = berlin(t)
		date = func(y int, m time.Month, d, hh, mm int) time.Time {
			return time.Date(y, m, d, hh, mm, 0, 0, loc)
		}
	)

	var cases = []testCase{
		{
			name:   "daily, later today",
			r:      Reminder{TimeMinutes: 480, Frequency: frequency.Daily},
			now:    date(2026, 3, 10, 7, 0),
			expect: date(2026, 3, 10, 8, 0),
		},
		{
			name:   "daily, passed",
			r:      Reminder{TimeMinutes: 480, Frequency: frequency.Daily},
			now:    date(2026, 3, 10, 10, 0),
			expect: date(2026, 3, 11, 8, 0),
		},
		{
			name:   "daily, exactly now",
			r:      Reminder{TimeMinutes: 600, Frequency: frequency.Daily},
			now:    date(2026, 3, 10, 10, 0),
			expect: date(2026, 3, 11, 10, 0),
		},
		{
			name:   "daily, across DST change",
			r:      Reminder{TimeMinutes: 480, Frequency: frequency.Daily},
			now:    date(2026, 3, 28, 10, 0),
			expect: date(2026, 3, 29, 8, 0),
		},
		{
			name:   "weekly, passed",
			r:      Reminder{TimeMinutes: 1020, Frequency: frequency.Weekly},
			now:    date(2026, 5, 6, 18, 30),
			expect: date(2026, 5, 13, 17, 0),
		},
		{
			name:   "monthly, passed",
			r:      Reminder{TimeMinutes: 450, Frequency: frequency.Monthly},
			now:    date(2026, 4, 15, 9, 0),
			expect: date(2026, 5, 15, 7, 30),
		},
		{
			name:   "monthly, end of month normalizes",
			r:      Reminder{TimeMinutes: 480, Frequency: frequency.Monthly},
			now:    date(2026, 1, 31, 10, 0),
			expect: date(2026, 3, 3, 8, 0),
		},
		{
			name:   "once, passed",
			r:      Reminder{TimeMinutes: 480, Frequency: frequency.Once},
			now:    date(2026, 3, 10, 10, 0),
			expect: date(2026, 3, 11, 8, 0),
		},
		{
			name:   "unrecognized, passed",
			r:      Reminder{TimeMinutes: 480, Frequency: frequency.Invalid},
			now:    date(2026, 3, 10, 10, 0),
			expect: date(2026, 3, 11, 8, 0),
		},
		{
			name: "same day offset is not anchored",
			r: Reminder{
				TimeMinutes: 480,
				Frequency:   frequency.Daily,
				EventDate:   date(2026, 6, 1, 0, 0),
				DaysBefore:  0,
			},
			now:    date(2026, 3, 10, 10, 0),
			expect: date(2026, 3, 11, 8, 0),
		},
		{
			name: "anchored, ahead",
			r: Reminder{
				TimeMinutes: 540,
				Frequency:   frequency.Once,
				EventDate:   date(2026, 3, 20, 0, 0),
				DaysBefore:  2,
			},
			now:    date(2026, 3, 10, 10, 0),
			expect: date(2026, 3, 18, 9, 0),
		},
		{
			name: "anchored, across DST change",
			r: Reminder{
				TimeMinutes: 540,
				Frequency:   frequency.Daily,
				EventDate:   date(2026, 3, 30, 0, 0),
				DaysBefore:  3,
			},
			now:    date(2026, 3, 10, 10, 0),
			expect: date(2026, 3, 27, 9, 0),
		},
		{
			name: "anchored, passed",
			r: Reminder{
				TimeMinutes: 540,
				Frequency:   frequency.Once,
				EventDate:   date(2026, 3, 11, 0, 0),
				DaysBefore:  1,
			},
			now:    date(2026, 3, 10, 14, 0),
			expect: date(2026, 3, 10, 14, 1),
		},
	}

	for _, c := range cases {
		var due = c.r.NextFire(c.now)

		assert.True(t,
			due.Equal(c.expect),
			`Unexpected due time from Test case %s:
Expected:       %s
Got:            %s`,
			c.name,
			c.expect.Format(common.TimestampFormatSubSecond),
			due.Format(common.TimestampFormatSubSecond))
	}
} // func TestNextFire(t *testing.T)

// TestNextFireRecurring checks that recurring Reminders never go off
// in the past, land on their time of day, and advance by at most one unit.
func TestNextFireRecurring(t *testing.T) {
	var (
		loc   = berlin(t)
		start = time.Date(2026, 10, 20, 0, 0, 0, 0, loc)
		freqs = []frequency.Frequency{
			frequency.Once,
			frequency.Daily,
			frequency.Weekly,
			frequency.Monthly,
		}
	)

	for _, f := range freqs {
		for tm := 0; tm < 1440; tm += 97 {
			for offset := 0; offset < 1440; offset += 131 {
				var (
					now = start.Add(time.Duration(offset) * time.Minute).Add(17 * time.Second)
					r   = Reminder{TimeMinutes: tm, Frequency: f}
					due = r.NextFire(now)
				)

				require.True(t, due.After(now), "%s @ %d: %s is not after %s", f, tm, due, now)
				require.Equal(t, tm/60, due.Hour())
				require.Equal(t, tm%60, due.Minute())
				require.Zero(t, due.Second())

				var today = time.Date(now.Year(), now.Month(), now.Day(), tm/60, tm%60, 0, 0, loc)

				if today.After(now) {
					require.True(t, due.Equal(today))
					continue
				}

				switch f {
				case frequency.Weekly:
					require.True(t, due.Equal(today.AddDate(0, 0, 7)))
				case frequency.Monthly:
					require.True(t, due.Equal(today.AddDate(0, 1, 0)))
				default:
					require.True(t, due.Equal(today.AddDate(0, 0, 1)))
				}
			}
		}
	}
} // func TestNextFireRecurring(t *testing.T)

func TestNextFireAnchoredPassed(t *testing.T) {
	var (
		loc = berlin(t)
		now = time.Date(2026, 10, 18, 14, 0, 42, 0, loc)
		r   = Reminder{
			TimeMinutes: 540,
			Frequency:   frequency.Once,
			EventDate:   time.Date(2026, 10, 19, 0, 0, 0, 0, loc),
			DaysBefore:  1,
		}
	)

	require.True(t, r.IsEventAnchored())

	var due = r.NextFire(now)

	assert.True(t, due.After(now))
	assert.LessOrEqual(t, due.Sub(now), time.Minute)
} // func TestNextFireAnchoredPassed(t *testing.T)

func TestNextAfterFire(t *testing.T) {
	var (
		loc   = berlin(t)
		fired = time.Date(2026, 10, 18, 8, 0, 0, 0, loc)
		early = fired.Add(-300 * time.Millisecond)
		r     = Reminder{TimeMinutes: 480, Frequency: frequency.Daily}
	)

	for _, ts := range []time.Time{fired, early} {
		var next, ok = r.NextAfterFire(ts)

		require.True(t, ok)
		assert.True(t, next.Equal(time.Date(2026, 10, 19, 8, 0, 0, 0, loc)),
			"Unexpected next fire for %s: %s",
			ts.Format(common.TimestampFormatSubSecond),
			next.Format(common.TimestampFormatSubSecond))
	}

	r.Frequency = frequency.Once
	_, ok := r.NextAfterFire(fired)
	assert.False(t, ok, "Reminder set to go off once was re-armed")

	r.Frequency = frequency.Weekly
	r.EventDate = time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
	r.DaysBefore = 1
	_, ok = r.NextAfterFire(fired)
	assert.False(t, ok, "Event-anchored Reminder was re-armed")
} // func TestNextAfterFire(t *testing.T)

func TestLabel(t *testing.T) {
	var r = Reminder{ID: 7}

	assert.Equal(t, "Reminder for Swimming", r.Label("Swimming"))
	assert.Equal(t, "Reminder #7", r.Label("  "))

	r.Name = "Pack the gym bag"
	assert.Equal(t, "Pack the gym bag", r.Label("Swimming"))
} // func TestLabel(t *testing.T)
