// /home/krylon/go/src/github.com/blicero/kidtrack/objects/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-09 19:40:22 krylon>

package objects

import (
	"fmt"
	"strings"
	"time"

	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/objects/frequency"
)

//go:generate ffjson reminder.go

// Reminder is ... a reminder.
//
// A Reminder whose EventDate is set and whose DaysBefore is positive is
// event-anchored: it goes off once, DaysBefore days ahead of the event.
// All other Reminders recur according to their Frequency.
type Reminder struct {
	ID          int64
	Name        string
	TimeMinutes int
	Frequency   frequency.Frequency
	ActivityID  int64
	ProfileID   int64
	DaysBefore  int
	EventDate   time.Time
	Snooze      bool
	UUID        string
	Changed     time.Time
}

// IsEventAnchored returns true if the Reminder's fire date is derived from
// the date of its Activity.
func (r *Reminder) IsEventAnchored() bool {
	return !r.EventDate.IsZero() && r.DaysBefore > 0
} // func (r *Reminder) IsEventAnchored() bool

// IsRecurring is the complement of IsEventAnchored.
func (r *Reminder) IsRecurring() bool {
	return !r.IsEventAnchored()
} // func (r *Reminder) IsRecurring() bool

// NextFire returns the next point in time the Reminder should go off,
// relative to now. All calendar arithmetic happens in now's Location.
func (r *Reminder) NextFire(now time.Time) time.Time {
	var (
		loc    = now.Location()
		hh, mm = r.TimeMinutes / 60, r.TimeMinutes % 60
		y, d   int
		m      time.Month
	)

	if r.IsEventAnchored() {
		y, m, d = r.EventDate.In(loc).Date()

		var due = time.Date(y, m, d-r.DaysBefore, hh, mm, 0, 0, loc)

		if !due.After(now) {
			// The event is over or about to begin, there is nothing to
			// recur on. Go off right away instead of not at all.
			return now.Add(time.Minute)
		}

		return due
	}

	y, m, d = now.Date()

	var due = time.Date(y, m, d, hh, mm, 0, 0, loc)

	if due.After(now) {
		return due
	}

	switch r.Frequency {
	case frequency.Weekly:
		return due.AddDate(0, 0, 7)
	case frequency.Monthly:
		return due.AddDate(0, 1, 0)
	default:
		return due.AddDate(0, 0, 1)
	}
} // func (r *Reminder) NextFire(now time.Time) time.Time

// NextAfterFire returns the point in time a Reminder that just went off at
// firedAt should be scheduled for next. The second return value is false
// if the Reminder is done, i.e. it is event-anchored or meant to go off once.
func (r *Reminder) NextAfterFire(firedAt time.Time) (time.Time, bool) {
	if r.IsEventAnchored() || !r.Frequency.Recurring() {
		return time.Time{}, false
	}

	// Timers may go off a little early, so look past the minute the
	// Reminder fired in.
	return r.NextFire(firedAt.Add(time.Minute)), true
} // func (r *Reminder) NextAfterFire(firedAt time.Time) (time.Time, bool)

// Label returns the Reminder's name, or a generated label if the name is blank.
func (r *Reminder) Label(category string) string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	} else if category = strings.TrimSpace(category); category != "" {
		return "Reminder for " + category
	}

	return fmt.Sprintf("Reminder #%d", r.ID)
} // func (r *Reminder) Label(category string) string

// TimeString returns the Reminder's time of day as HH:mm.
func (r *Reminder) TimeString() string {
	return daytime.FormatMinutes(r.TimeMinutes)
} // func (r *Reminder) TimeString() string

// Payload returns what is carried by the trigger that makes the Reminder go off.
func (r *Reminder) Payload() FireReminder {
	return FireReminder{
		ReminderID:  r.ID,
		ActivityID:  r.ActivityID,
		TimeMinutes: r.TimeMinutes,
		DaysBefore:  r.DaysBefore,
	}
} // func (r *Reminder) Payload() FireReminder

// UniqueID returns an identifier that is unique across instances.
// I.e. a UUID.
func (r *Reminder) UniqueID() string {
	return r.UUID
} // func (r *Reminder) UniqueID() string

// IsNewer returns true if the receiver's Changed stamp is
// more recent than the argument's.
func (r *Reminder) IsNewer(other *Reminder) bool {
	return r.Changed.After(other.Changed)
} // func (r *Reminder) IsNewer(other *Reminder) bool
