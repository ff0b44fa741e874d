// /home/krylon/go/src/github.com/blicero/kidtrack/objects/activity.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-02 18:11:46 krylon>

package objects

import (
	"time"

	"github.com/blicero/kidtrack/daytime"
)

//go:generate ffjson activity.go

// Activity is something a child did or is going to do.
// Date is the day the Activity takes place on (midnight, local time),
// TimeMinutes the time of day.
type Activity struct {
	ID          int64
	Category    string
	Description string
	Notes       string
	Date        time.Time
	TimeMinutes int
	ProfileID   int64
	UUID        string
	Changed     time.Time
}

// Start returns the point in time the Activity begins.
func (a *Activity) Start() time.Time {
	return daytime.At(a.Date, a.TimeMinutes)
} // func (a *Activity) Start() time.Time

// IsNewer returns true if the receiver's Changed stamp is
// more recent than the argument's.
func (a *Activity) IsNewer(other *Activity) bool {
	return a.Changed.After(other.Changed)
} // func (a *Activity) IsNewer(other *Activity) bool

// Profile is a child whose Activities are tracked.
type Profile struct {
	ID       int64
	Name     string
	Age      int
	PhotoURL string
	UUID     string
	Changed  time.Time
}
