// /home/krylon/go/src/github.com/blicero/kidtrack/registry/registry.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 20:03:11 krylon>

// Package registry associates Reminders with pending triggers.
//
// Each Reminder has at most one trigger per namespace: one for the time it
// is scheduled for, and one for when it has been snoozed. The request code
// of a trigger is the namespace plus the Reminder's ID.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blicero/kidtrack/alarm"
	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/metrics"
	"github.com/blicero/kidtrack/objects"
)

// Namespaces for request codes. Reminder IDs must be smaller than namespaceWidth.
const (
	namespaceWidth  int64 = 1 << 32
	FireNamespace         = 1 * namespaceWidth
	SnoozeNamespace       = 2 * namespaceWidth
)

// ErrPermissionDenied is returned if exact scheduling is not permitted.
// The Registry never falls back to inexact timing.
var ErrPermissionDenied = errors.New("exact alarms not permitted")

// ErrInvalidID is returned for Reminder IDs that do not fit into a namespace.
var ErrInvalidID = errors.New("invalid reminder id")

// SchedulingError indicates that the timer facility refused to register a
// trigger for some reason other than a lack of permission.
type SchedulingError struct {
	ReminderID int64
	Err        error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("cannot schedule reminder %d: %s",
		e.ReminderID,
		e.Err.Error())
} // func (e *SchedulingError) Error() string

func (e *SchedulingError) Unwrap() error {
	return e.Err
} // func (e *SchedulingError) Unwrap() error

// Facility is the timer facility triggers are registered with.
type Facility interface {
	CanScheduleExact() bool
	SetExactWake(ctx context.Context, code int64, at time.Time, payload objects.FireReminder) error
	Cancel(ctx context.Context, code int64) error
	Pending(code int64) bool
}

// State describes whether a Reminder has a pending trigger.
type State uint8

// Unscheduled means there is no pending trigger for a Reminder.
// Scheduled means the Reminder is going to go off at its regular time.
// Snoozed means the Reminder is only going to go off because it was snoozed.
const (
	Unscheduled State = iota
	Scheduled
	Snoozed
)

func (s State) String() string {
	switch s {
	case Unscheduled:
		return "Unscheduled"
	case Scheduled:
		return "Scheduled"
	case Snoozed:
		return "Snoozed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
} // func (s State) String() string

// RequestCode returns the request code for the Reminder in the given namespace.
func RequestCode(ns, reminderID int64) int64 {
	return ns + reminderID
} // func RequestCode(ns, reminderID int64) int64

// SplitRequestCode is the inverse of RequestCode.
func SplitRequestCode(code int64) (ns, reminderID int64) {
	return (code / namespaceWidth) * namespaceWidth, code % namespaceWidth
} // func SplitRequestCode(code int64) (ns, reminderID int64)

// NamespaceName returns a human-readable name for a namespace.
func NamespaceName(ns int64) string {
	switch ns {
	case FireNamespace:
		return "fire"
	case SnoozeNamespace:
		return "snooze"
	default:
		return "unknown"
	}
} // func NamespaceName(ns int64) string

// Registry registers, cancels and replaces triggers for Reminders.
type Registry struct {
	log *log.Logger
	fac Facility
}

// New creates a Registry on top of the given timer Facility.
func New(fac Facility) (*Registry, error) {
	var (
		err error
		r   = &Registry{fac: fac}
	)

	if r.log, err = common.GetLogger(logdomain.Registry); err != nil {
		return nil, err
	}

	return r, nil
} // func New(fac Facility) (*Registry, error)

// CanScheduleExact returns true if triggers can be registered.
func (r *Registry) CanScheduleExact() bool {
	return r.fac.CanScheduleExact()
} // func (r *Registry) CanScheduleExact() bool

func (r *Registry) register(ctx context.Context, ns, reminderID int64, at time.Time, payload objects.FireReminder) error {
	var err error

	if reminderID <= 0 || reminderID >= namespaceWidth {
		return ErrInvalidID
	} else if !r.fac.CanScheduleExact() {
		r.log.Printf("[WARN] Cannot schedule Reminder %d: no permission for exact alarms\n",
			reminderID)
		metrics.SchedulingFailed("permission")
		return ErrPermissionDenied
	}

	if err = r.fac.SetExactWake(ctx, RequestCode(ns, reminderID), at, payload); err != nil {
		if errors.Is(err, alarm.ErrNotPermitted) {
			metrics.SchedulingFailed("permission")
			return ErrPermissionDenied
		} else if errors.Is(err, alarm.ErrQuotaExceeded) {
			metrics.SchedulingFailed("quota")
		} else {
			metrics.SchedulingFailed("facility")
		}

		r.log.Printf("[ERROR] Cannot schedule Reminder %d (%s) for %s: %s\n",
			reminderID,
			NamespaceName(ns),
			at.Format(common.TimestampFormat),
			err.Error())
		return &SchedulingError{ReminderID: reminderID, Err: err}
	}

	metrics.TriggerScheduled(NamespaceName(ns))
	r.log.Printf("[DEBUG] Reminder %d (%s) scheduled for %s\n",
		reminderID,
		NamespaceName(ns),
		at.Format(common.TimestampFormat))

	return nil
} // func (r *Registry) register(...) error

// Schedule registers a trigger for the Reminder at the given time. A trigger
// that is already pending for the Reminder is replaced.
func (r *Registry) Schedule(ctx context.Context, reminderID int64, at time.Time, payload objects.FireReminder) error {
	return r.register(ctx, FireNamespace, reminderID, at, payload)
} // func (r *Registry) Schedule(...) error

// Snooze registers a trigger for a snoozed Reminder. It does not touch
// the Reminder's regular trigger.
func (r *Registry) Snooze(ctx context.Context, reminderID int64, at time.Time, payload objects.FireReminder) error {
	return r.register(ctx, SnoozeNamespace, reminderID, at, payload)
} // func (r *Registry) Snooze(...) error

// Cancel removes all pending triggers for the Reminder. Cancelling a
// Reminder that has no pending trigger is not an error.
func (r *Registry) Cancel(ctx context.Context, reminderID int64) error {
	var (
		errs    []error
		removed bool
	)

	for _, ns := range []int64{FireNamespace, SnoozeNamespace} {
		var (
			code    = RequestCode(ns, reminderID)
			pending = r.fac.Pending(code)
		)

		if err := r.fac.Cancel(ctx, code); err != nil {
			r.log.Printf("[ERROR] Cannot cancel %s trigger of Reminder %d: %s\n",
				NamespaceName(ns),
				reminderID,
				err.Error())
			errs = append(errs, err)
		} else if pending {
			removed = true
		}
	}

	if removed {
		metrics.TriggerCancelled()
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
} // func (r *Registry) Cancel(ctx context.Context, reminderID int64) error

// Reschedule cancels any pending trigger for the Reminder and registers a
// new one. Afterwards, there is at most one trigger for the Reminder.
func (r *Registry) Reschedule(ctx context.Context, reminderID int64, at time.Time, payload objects.FireReminder) error {
	if err := r.Cancel(ctx, reminderID); err != nil {
		return &SchedulingError{ReminderID: reminderID, Err: err}
	}

	return r.Schedule(ctx, reminderID, at, payload)
} // func (r *Registry) Reschedule(...) error

// Rearm is called after a Reminder's trigger went off at firedAt.
// Recurring Reminders are scheduled for their next occurrence, one-shot
// Reminders are left unscheduled.
func (r *Registry) Rearm(ctx context.Context, rem *objects.Reminder, firedAt time.Time) error {
	var next, ok = rem.NextAfterFire(firedAt)

	if !ok {
		r.log.Printf("[DEBUG] Reminder %d (%s) is done\n",
			rem.ID,
			rem.Frequency)
		return nil
	}

	return r.Schedule(ctx, rem.ID, next, rem.Payload())
} // func (r *Registry) Rearm(ctx context.Context, rem *objects.Reminder, firedAt time.Time) error

// State returns the scheduling state of the Reminder.
func (r *Registry) State(reminderID int64) State {
	if r.fac.Pending(RequestCode(FireNamespace, reminderID)) {
		return Scheduled
	} else if r.fac.Pending(RequestCode(SnoozeNamespace, reminderID)) {
		return Snoozed
	}

	return Unscheduled
} // func (r *Registry) State(reminderID int64) State
