// /home/krylon/go/src/github.com/blicero/kidtrack/snooze/snooze.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 20:31:08 krylon>

// Package snooze postpones a Reminder the user is not ready to act on, yet.
package snooze

import (
	"context"
	"log"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/metrics"
	"github.com/blicero/kidtrack/objects"
)

// Delay is how long a snoozed Reminder is postponed.
const Delay = 10 * time.Minute

// Scheduler registers the trigger for a snoozed Reminder.
type Scheduler interface {
	Snooze(ctx context.Context, reminderID int64, at time.Time, payload objects.FireReminder) error
}

// Notifier tells the user how snoozing went.
type Notifier interface {
	Post(ctx context.Context, n *objects.Notice) error
}

// Handler handles requests to snooze a Reminder.
type Handler struct {
	log      *log.Logger
	sched    Scheduler
	notifier Notifier
	now      func() time.Time
}

// New creates a Handler.
func New(sched Scheduler, n Notifier) (*Handler, error) {
	var (
		err error
		h   = &Handler{
			sched:    sched,
			notifier: n,
			now:      time.Now,
		}
	)

	if h.log, err = common.GetLogger(logdomain.Snooze); err != nil {
		return nil, err
	}

	return h, nil
} // func New(sched Scheduler, n Notifier) (*Handler, error)

// Snooze registers a trigger for the Reminder Delay from now and tells the
// user about the outcome. A failure to schedule is reported to the user,
// it is returned only so the caller may log it.
func (h *Handler) Snooze(ctx context.Context, s objects.SnoozeReminder) error {
	var (
		err     error
		at      = h.now().Add(Delay)
		payload = objects.FireReminder{
			ReminderID:  s.ReminderID,
			ActivityID:  s.ActivityID,
			TimeMinutes: -1,
		}
		notice = &objects.Notice{
			Title:      common.AppName,
			ReminderID: s.ReminderID,
			ActivityID: s.ActivityID,
		}
	)

	if err = h.sched.Snooze(ctx, s.ReminderID, at, payload); err != nil {
		h.log.Printf("[ERROR] Cannot snooze Reminder %d: %s\n",
			s.ReminderID,
			err.Error())
		notice.Body = "Failed to snooze reminder: " + err.Error()
	} else {
		h.log.Printf("[INFO] Reminder %d snoozed until %s\n",
			s.ReminderID,
			at.Format(common.TimestampFormatTime))
		notice.Body = "Reminder snoozed for 10 minutes"
	}

	metrics.Snoozed(err == nil)

	if perr := h.notifier.Post(ctx, notice); perr != nil {
		h.log.Printf("[ERROR] Cannot tell user about snoozing Reminder %d: %s\n",
			s.ReminderID,
			perr.Error())
	}

	return err
} // func (h *Handler) Snooze(ctx context.Context, s objects.SnoozeReminder) error
