// /home/krylon/go/src/github.com/blicero/kidtrack/dispatch/dispatch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 18:22:40 krylon>

// Package dispatch turns triggers that went off into notifications.
//
// A Dispatcher receives the Intents delivered by the timer facility and by
// notification actions. It never does any I/O on the goroutine that
// delivers an Intent; each one is handled on a goroutine of its own.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/database"
	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/metrics"
	"github.com/blicero/kidtrack/objects"
)

// DefaultTimeout is the time a single dispatch may take when none is given.
const DefaultTimeout = 30 * time.Second

// FallbackTitle is used when a Reminder has no name or cannot be found.
const FallbackTitle = common.AppName + " Reminder"

// Notifier shows Notices to the user.
type Notifier interface {
	Post(ctx context.Context, n *objects.Notice) error
}

// Rearmer schedules a Reminder that went off for its next occurrence.
type Rearmer interface {
	Rearm(ctx context.Context, rem *objects.Reminder, firedAt time.Time) error
}

// Snoozer handles requests to snooze a Reminder.
type Snoozer interface {
	Snooze(ctx context.Context, s objects.SnoozeReminder) error
}

// Dispatcher handles Intents.
type Dispatcher struct {
	log      *log.Logger
	pool     *database.Pool
	notifier Notifier
	reg      Rearmer
	snoozer  Snoozer
	timeout  time.Duration
	ctx      context.Context
	wg       sync.WaitGroup
	now      func() time.Time
}

// New creates a Dispatcher. Dispatches in flight are cancelled when ctx is.
func New(ctx context.Context, pool *database.Pool, n Notifier, reg Rearmer, s Snoozer, timeout time.Duration) (*Dispatcher, error) {
	var (
		err error
		d   = &Dispatcher{
			pool:     pool,
			notifier: n,
			reg:      reg,
			snoozer:  s,
			timeout:  timeout,
			ctx:      ctx,
			now:      time.Now,
		}
	)

	if d.timeout <= 0 {
		d.timeout = DefaultTimeout
	}

	if d.log, err = common.GetLogger(logdomain.Dispatch); err != nil {
		return nil, err
	}

	return d, nil
} // func New(...) (*Dispatcher, error)

// SetLocation sets the time zone recurring Reminders are re-armed in.
func (d *Dispatcher) SetLocation(loc *time.Location) {
	d.now = func() time.Time { return time.Now().In(loc) }
} // func (d *Dispatcher) SetLocation(loc *time.Location)

// Deliver hands an Intent to the Dispatcher. It returns immediately.
func (d *Dispatcher) Deliver(i objects.Intent) {
	d.wg.Add(1)
	go d.handle(i)
} // func (d *Dispatcher) Deliver(i objects.Intent)

// Wait blocks until all dispatches in flight have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
} // func (d *Dispatcher) Wait()

func (d *Dispatcher) handle(i objects.Intent) {
	var (
		err         error
		ctx, cancel = context.WithTimeout(d.ctx, d.timeout)
	)

	defer d.wg.Done()
	defer cancel()
	defer func() {
		if x := recover(); x != nil {
			metrics.DispatchFailed()
			d.log.Printf("[CRITICAL] Panic while handling %s: %v\n%s\n",
				i,
				x,
				debug.Stack())
		}
	}()

	switch v := i.(type) {
	case objects.FireReminder:
		err = d.fire(ctx, v)
	case objects.SnoozeReminder:
		err = d.snoozer.Snooze(ctx, v)
	default:
		err = fmt.Errorf("unexpected Intent %T", i)
	}

	if err != nil {
		metrics.DispatchFailed()
		d.log.Printf("[ERROR] Failed to handle %s: %s\n",
			i,
			err.Error())
	}
} // func (d *Dispatcher) handle(i objects.Intent)

func (d *Dispatcher) fire(ctx context.Context, p objects.FireReminder) error {
	var (
		err     error
		firedAt = d.now()
		rem     *objects.Reminder
		act     *objects.Activity
		notice  *objects.Notice
	)

	if p.ReminderID <= 0 || p.ActivityID <= 0 {
		d.log.Printf("[WARN] Dropping malformed %s\n", p)
		return nil
	}

	metrics.TriggerFired(p.Manual())

	if rem, act, err = d.lookup(ctx, p); err != nil {
		d.log.Printf("[ERROR] Cannot look up Reminder %d / Activity %d: %s\n",
			p.ReminderID,
			p.ActivityID,
			err.Error())
		notice = Compose(p, nil, nil)
	} else {
		notice = Compose(p, rem, act)
	}

	metrics.NotificationPosted(act == nil)

	if err = d.notifier.Post(ctx, notice); err != nil {
		d.log.Printf("[ERROR] Cannot post notification for Reminder %d: %s\n",
			p.ReminderID,
			err.Error())
	}

	if rem == nil || p.Manual() {
		return err
	} else if rerr := d.reg.Rearm(ctx, rem, firedAt); rerr != nil {
		d.log.Printf("[ERROR] Cannot re-arm Reminder %d: %s\n",
			rem.ID,
			rerr.Error())
		return rerr
	}

	return err
} // func (d *Dispatcher) fire(ctx context.Context, p objects.FireReminder) error

// lookup fetches the Reminder and Activity a payload refers to.
// Records that do not exist are returned as nil without an error.
func (d *Dispatcher) lookup(ctx context.Context, p objects.FireReminder) (*objects.Reminder, *objects.Activity, error) {
	var (
		err error
		db  *database.Database
		rem *objects.Reminder
		act *objects.Activity
	)

	if db, err = d.pool.GetContext(ctx); err != nil {
		return nil, nil, err
	}

	defer d.pool.Put(db)

	if rem, err = db.ReminderGetByID(p.ReminderID); err != nil {
		return nil, nil, err
	} else if act, err = db.ActivityGetByID(p.ActivityID); err != nil {
		return nil, nil, err
	}

	if rem == nil {
		d.log.Printf("[INFO] Reminder %d went off, but it does not exist anymore\n",
			p.ReminderID)
	}

	return rem, act, nil
} // func (d *Dispatcher) lookup(...) (*objects.Reminder, *objects.Activity, error)

// Compose builds the Notice for a trigger that went off. rem and act may
// be nil if they could not be found.
func Compose(p objects.FireReminder, rem *objects.Reminder, act *objects.Activity) *objects.Notice {
	var n = &objects.Notice{
		Title:      FallbackTitle,
		ReminderID: p.ReminderID,
		ActivityID: p.ActivityID,
		Snooze:     true,
	}

	if rem != nil {
		n.Snooze = rem.Snooze
		if name := strings.TrimSpace(rem.Name); name != "" {
			n.Title = name
		}
	}

	if act != nil {
		var suffix string

		if p.DaysBefore > 0 {
			suffix = " (Tomorrow)"
		}

		n.Body = fmt.Sprintf("Activity: %s - %s%s\nScheduled: %s at %s",
			act.Category,
			act.Description,
			suffix,
			daytime.FormatDate(act.Date),
			daytime.FormatMinutes(act.TimeMinutes))
	} else {
		n.Body = "You have a scheduled activity at " + daytime.FormatMinutes(p.TimeMinutes)
	}

	return n
} // func Compose(...) *objects.Notice
