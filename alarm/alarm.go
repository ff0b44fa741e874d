// /home/krylon/go/src/github.com/blicero/kidtrack/alarm/alarm.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 18:37:09 krylon>

// Package alarm provides exact, persistent wake-ups. Each wake-up is
// identified by a request code; setting a wake-up for a code that is
// already pending replaces it. Pending wake-ups are stored in the database
// so they survive a restart of the process.
package alarm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/database"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/metrics"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/krylib"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// ErrQuotaExceeded is returned if setting a wake-up would exceed the maximum
// number of pending wake-ups.
var ErrQuotaExceeded = errors.New("too many pending alarms")

// ErrNotPermitted is returned if exact wake-ups are not allowed.
var ErrNotPermitted = errors.New("exact alarms are not permitted")

// DefaultMaxPending is the maximum number of pending wake-ups used when
// none is given.
const DefaultMaxPending = 500

// Wake-ups that are due within this margin go off immediately.
const immediateMargin = time.Second

const fireTimeout = 5 * time.Second

// Receiver is what a Clock hands the payload of a wake-up to.
// Deliver must not block.
type Receiver interface {
	Deliver(objects.Intent)
}

type entry struct {
	job   uuid.UUID
	alarm objects.Alarm
	gen   uint64
}

// Clock keeps track of pending wake-ups.
type Clock struct {
	log        *log.Logger
	pool       *database.Pool
	sched      gocron.Scheduler
	lock       sync.Mutex
	jobs       map[int64]entry
	gen        uint64
	exact      atomic.Bool
	maxPending int
	recv       Receiver
	now        func() time.Time
}

// New creates a Clock that persists its wake-ups in the database behind pool.
// exact is the initial permission to schedule exact wake-ups, maxPending
// the maximum number of pending wake-ups.
func New(pool *database.Pool, exact bool, maxPending int) (*Clock, error) {
	var (
		err error
		c   = &Clock{
			pool:       pool,
			jobs:       make(map[int64]entry),
			maxPending: maxPending,
			now:        time.Now,
		}
	)

	if c.maxPending <= 0 {
		c.maxPending = DefaultMaxPending
	}

	if c.log, err = common.GetLogger(logdomain.Alarm); err != nil {
		return nil, err
	} else if c.sched, err = gocron.NewScheduler(gocron.WithLocation(time.Local)); err != nil {
		c.log.Printf("[ERROR] Cannot create scheduler: %s\n",
			err.Error())
		return nil, err
	}

	c.exact.Store(exact)

	return c, nil
} // func New(pool *database.Pool, exact bool, maxPending int) (*Clock, error)

// SetReceiver sets the Receiver wake-ups are delivered to.
func (c *Clock) SetReceiver(r Receiver) {
	c.lock.Lock()
	c.recv = r
	c.lock.Unlock()
} // func (c *Clock) SetReceiver(r Receiver)

// CanScheduleExact returns true if the Clock is allowed to set exact wake-ups.
func (c *Clock) CanScheduleExact() bool {
	return c.exact.Load()
} // func (c *Clock) CanScheduleExact() bool

// SetExactPermission grants or revokes the permission to set exact wake-ups.
// Wake-ups that are already pending are not affected.
func (c *Clock) SetExactPermission(allowed bool) {
	if old := c.exact.Swap(allowed); old != allowed {
		c.log.Printf("[INFO] Permission to schedule exact alarms changed to %t\n",
			allowed)
	}
} // func (c *Clock) SetExactPermission(allowed bool)

// Start loads the pending wake-ups from the database, arms them, and starts
// the scheduler. Wake-ups whose time has passed while the process was not
// running go off right away.
func (c *Clock) Start(ctx context.Context) error {
	krylib.Trace()
	defer c.log.Printf("[TRACE] EXIT %s\n",
		krylib.TraceInfo())

	var (
		err    error
		db     *database.Database
		alarms []*objects.Alarm
	)

	if db, err = c.pool.GetContext(ctx); err != nil {
		return err
	}

	alarms, err = db.AlarmGetAll()
	c.pool.Put(db)

	if err != nil {
		c.log.Printf("[ERROR] Cannot load pending alarms: %s\n",
			err.Error())
		return err
	}

	c.lock.Lock()
	for _, a := range alarms {
		if err = c.arm(*a); err != nil {
			c.log.Printf("[ERROR] Cannot restore alarm %d: %s\n",
				a.Code,
				err.Error())
		}
	}
	metrics.SetPending(len(c.jobs))
	c.lock.Unlock()

	c.log.Printf("[INFO] Restored %d pending alarms\n",
		len(alarms))

	c.sched.Start()
	return nil
} // func (c *Clock) Start(ctx context.Context) error

// Shutdown stops the scheduler. Pending wake-ups stay in the database.
func (c *Clock) Shutdown() error {
	krylib.Trace()
	return c.sched.Shutdown()
} // func (c *Clock) Shutdown() error

// SetExactWake arranges for payload to be delivered at the given time.
// A pending wake-up with the same code is replaced.
func (c *Clock) SetExactWake(ctx context.Context, code int64, at time.Time, payload objects.FireReminder) error {
	var (
		err    error
		db     *database.Database
		exists bool
		prev   entry
		a      = objects.Alarm{
			Code:    code,
			Due:     at,
			Payload: payload,
			Created: c.now(),
		}
	)

	if !c.exact.Load() {
		return ErrNotPermitted
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if prev, exists = c.jobs[code]; !exists && len(c.jobs) >= c.maxPending {
		return ErrQuotaExceeded
	} else if db, err = c.pool.GetContext(ctx); err != nil {
		return err
	}

	defer c.pool.Put(db)

	if err = db.AlarmSave(&a); err != nil {
		return fmt.Errorf("cannot persist alarm %d: %w", code, err)
	}

	if exists {
		c.removeJob(prev.job)
		delete(c.jobs, code)
	}

	if err = c.arm(a); err != nil {
		c.log.Printf("[ERROR] Cannot arm alarm %d: %s\n",
			code,
			err.Error())
		if e2 := db.AlarmDelete(code); e2 != nil {
			c.log.Printf("[ERROR] Cannot remove alarm %d from database: %s\n",
				code,
				e2.Error())
		}
		return err
	}

	metrics.SetPending(len(c.jobs))

	if common.Debug {
		c.log.Printf("[DEBUG] Alarm %d set for %s\n",
			code,
			at.Format(common.TimestampFormat))
	}

	return nil
} // func (c *Clock) SetExactWake(ctx context.Context, code int64, at time.Time, payload objects.FireReminder) error

// arm registers a job for the Alarm. The caller must hold the lock.
func (c *Clock) arm(a objects.Alarm) error {
	var (
		err error
		job gocron.Job
		def gocron.JobDefinition
	)

	c.gen++

	if a.Due.Before(c.now().Add(immediateMargin)) {
		def = gocron.OneTimeJob(gocron.OneTimeJobStartImmediately())
	} else {
		def = gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(a.Due))
	}

	if job, err = c.sched.NewJob(
		def,
		gocron.NewTask(c.fire, a.Code, c.gen),
		gocron.WithName(fmt.Sprintf("alarm-%d", a.Code)),
		gocron.WithTags(strconv.FormatInt(a.Code, 10)),
	); err != nil {
		return err
	}

	c.jobs[a.Code] = entry{
		job:   job.ID(),
		alarm: a,
		gen:   c.gen,
	}

	return nil
} // func (c *Clock) arm(a objects.Alarm) error

func (c *Clock) removeJob(id uuid.UUID) {
	if err := c.sched.RemoveJob(id); err != nil && !errors.Is(err, gocron.ErrJobNotFound) {
		c.log.Printf("[ERROR] Cannot remove job %s: %s\n",
			id,
			err.Error())
	}
} // func (c *Clock) removeJob(id uuid.UUID)

// fire is run by the scheduler when a wake-up is due.
func (c *Clock) fire(code int64, gen uint64) {
	var (
		e  entry
		ok bool
		r  Receiver
	)

	c.lock.Lock()
	if e, ok = c.jobs[code]; !ok || e.gen != gen {
		// Cancelled or replaced in the meantime.
		c.lock.Unlock()
		return
	}

	delete(c.jobs, code)
	r = c.recv

	var ctx, cancel = context.WithTimeout(context.Background(), fireTimeout)
	if db, err := c.pool.GetContext(ctx); err != nil {
		c.log.Printf("[ERROR] Cannot get database to remove fired alarm %d: %s\n",
			code,
			err.Error())
	} else {
		if err = db.AlarmDelete(code); err != nil {
			c.log.Printf("[ERROR] Cannot remove fired alarm %d from database: %s\n",
				code,
				err.Error())
		}
		c.pool.Put(db)
	}
	cancel()

	metrics.SetPending(len(c.jobs))
	c.lock.Unlock()

	// The job is done, but gocron keeps it around until it is removed.
	go c.removeJob(e.job)

	c.log.Printf("[TRACE] Alarm %d went off, delivering %s\n",
		code,
		e.alarm.Payload)

	if r == nil {
		c.log.Printf("[ERROR] No receiver for alarm %d, dropping %s\n",
			code,
			e.alarm.Payload)
		return
	}

	r.Deliver(e.alarm.Payload)
} // func (c *Clock) fire(code int64, gen uint64)

// Cancel removes the wake-up for the given code. Cancelling a code that
// is not pending is not an error.
func (c *Clock) Cancel(ctx context.Context, code int64) error {
	var (
		err error
		db  *database.Database
	)

	c.lock.Lock()
	defer c.lock.Unlock()

	if e, ok := c.jobs[code]; ok {
		c.removeJob(e.job)
		delete(c.jobs, code)
		metrics.SetPending(len(c.jobs))
	}

	if db, err = c.pool.GetContext(ctx); err != nil {
		return err
	}

	defer c.pool.Put(db)

	if err = db.AlarmDelete(code); err != nil {
		return fmt.Errorf("cannot remove alarm %d: %w", code, err)
	}

	return nil
} // func (c *Clock) Cancel(ctx context.Context, code int64) error

// Pending returns true if a wake-up for the given code is pending.
func (c *Clock) Pending(code int64) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	var _, ok = c.jobs[code]
	return ok
} // func (c *Clock) Pending(code int64) bool

// Due returns the time the wake-up for the given code is due.
// The second return value is false if there is no such wake-up.
func (c *Clock) Due(code int64) (time.Time, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if e, ok := c.jobs[code]; ok {
		return e.alarm.Due, true
	}

	return time.Time{}, false
} // func (c *Clock) Due(code int64) (time.Time, bool)

// Count returns the number of pending wake-ups.
func (c *Clock) Count() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return len(c.jobs)
} // func (c *Clock) Count() int
