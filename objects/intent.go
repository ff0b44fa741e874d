// /home/krylon/go/src/github.com/blicero/kidtrack/objects/intent.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-04 21:03:18 krylon>

package objects

import "fmt"

// Intent is what a timer or a notification action hands back to the
// application when it goes off. The set of Intents is closed, it consists
// of FireReminder and SnoozeReminder.
type Intent interface {
	fmt.Stringer
	intent()
}

// FireReminder is delivered when a Reminder's trigger goes off.
// TimeMinutes is the time of day the trigger was scheduled for, or -1
// if the trigger was set manually (i.e. by snoozing).
type FireReminder struct {
	ReminderID  int64
	ActivityID  int64
	TimeMinutes int
	DaysBefore  int
}

func (FireReminder) intent() {}

func (f FireReminder) String() string {
	return fmt.Sprintf("FireReminder{Reminder: %d, Activity: %d, Time: %d, DaysBefore: %d}",
		f.ReminderID,
		f.ActivityID,
		f.TimeMinutes,
		f.DaysBefore)
} // func (f FireReminder) String() string

// Manual returns true if the trigger does not carry a time of day.
func (f FireReminder) Manual() bool {
	return f.TimeMinutes < 0
} // func (f FireReminder) Manual() bool

// SnoozeReminder is delivered when the user asks to be reminded again a
// little later.
type SnoozeReminder struct {
	ReminderID int64
	ActivityID int64
}

func (SnoozeReminder) intent() {}

func (s SnoozeReminder) String() string {
	return fmt.Sprintf("SnoozeReminder{Reminder: %d, Activity: %d}",
		s.ReminderID,
		s.ActivityID)
} // func (s SnoozeReminder) String() string
