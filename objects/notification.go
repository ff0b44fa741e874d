// /home/krylon/go/src/github.com/blicero/kidtrack/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-04 21:09:40 krylon>

// Package objects provides the data types used by the application.
package objects

// Notification is the common interface for items the user should be
// notified about.
type Notification interface {
	Payload() (string, string)
	Snoozable() bool
}

// Notice is a message shown to the user.
// If Snooze is set, the user is offered to be reminded again later,
// in which case ReminderID and ActivityID identify what to snooze.
type Notice struct {
	Title      string
	Body       string
	ReminderID int64
	ActivityID int64
	Snooze     bool
}

// Payload returns the Notice's Title and Body.
func (n *Notice) Payload() (string, string) {
	return n.Title, n.Body
} // func (n *Notice) Payload() (string, string)

// Snoozable returns true if the Notice offers a snooze action.
func (n *Notice) Snoozable() bool {
	return n.Snooze && n.ReminderID > 0
} // func (n *Notice) Snoozable() bool

// SnoozeIntent returns the Intent to deliver when the user snoozes the Notice.
func (n *Notice) SnoozeIntent() SnoozeReminder {
	return SnoozeReminder{
		ReminderID: n.ReminderID,
		ActivityID: n.ActivityID,
	}
} // func (n *Notice) SnoozeIntent() SnoozeReminder
