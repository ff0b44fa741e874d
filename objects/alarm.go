// /home/krylon/go/src/github.com/blicero/kidtrack/objects/alarm.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-01 17:48:55 krylon>

package objects

import "time"

// Alarm is a pending wake-up, identified by its request Code.
// When it is Due, Payload is delivered to the application.
type Alarm struct {
	Code    int64
	Due     time.Time
	Payload FireReminder
	Created time.Time
}

// IsDue returns true if the Alarm's due time has passed.
func (a *Alarm) IsDue(now time.Time) bool {
	return !a.Due.After(now)
} // func (a *Alarm) IsDue(now time.Time) bool
