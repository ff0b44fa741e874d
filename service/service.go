// /home/krylon/go/src/github.com/blicero/kidtrack/service/service.go
// -*- mode: go; coding: utf-8; -*-
// Created on 27. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 19:02:11 krylon>

// Package service implements the workflows the user interface triggers:
// creating, editing and deleting Profiles, Activities and Reminders, and
// keeping the triggers of Reminders in line with what is stored.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/database"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/registry"
)

// MsgPermissionDenied is what the user is told when a Reminder could not be
// scheduled for lack of the exact alarm permission.
const MsgPermissionDenied = "Please allow exact alarm scheduling in settings"

// ErrRecordNotFound is returned when a Profile, Activity or Reminder does
// not exist.
var ErrRecordNotFound = errors.New("record not found")

// ValidationError indicates that user input was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
} // func (e *ValidationError) Error() string

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
} // func invalid(field, msg string) error

// Scheduler manages the triggers of Reminders.
type Scheduler interface {
	Schedule(ctx context.Context, reminderID int64, at time.Time, payload objects.FireReminder) error
	Reschedule(ctx context.Context, reminderID int64, at time.Time, payload objects.FireReminder) error
	Cancel(ctx context.Context, reminderID int64) error
}

// Outcome describes how an operation that changed some record went.
// The record is kept even if scheduling its trigger failed, in which case
// Err holds the reason and Message tells the user about it.
type Outcome struct {
	ID        int64
	Message   string
	Scheduled bool
	FireAt    time.Time
	Err       error
}

// Service ties the database and the trigger registry together.
//
// Methods never hold on to a database connection while talking to the
// Scheduler.
type Service struct {
	log  *log.Logger
	pool *database.Pool
	reg  Scheduler
	now  func() time.Time
}

// New creates a Service.
func New(pool *database.Pool, reg Scheduler) (*Service, error) {
	var (
		err error
		s   = &Service{
			pool: pool,
			reg:  reg,
			now:  time.Now,
		}
	)

	if s.log, err = common.GetLogger(logdomain.Service); err != nil {
		return nil, err
	}

	return s, nil
} // func New(pool *database.Pool, reg Scheduler) (*Service, error)

// SetLocation makes the Service compute fire times in the given time zone.
func (s *Service) SetLocation(loc *time.Location) {
	s.now = func() time.Time { return time.Now().In(loc) }
} // func (s *Service) SetLocation(loc *time.Location)

// view runs fn with a database connection from the pool.
func (s *Service) view(ctx context.Context, fn func(db *database.Database) error) error {
	var db, err = s.pool.GetContext(ctx)

	if err != nil {
		return err
	}

	defer s.pool.Put(db)

	return fn(db)
} // func (s *Service) view(ctx context.Context, fn func(db *database.Database) error) error

// update runs fn inside a transaction. If fn returns an error, the
// transaction is rolled back.
func (s *Service) update(ctx context.Context, fn func(db *database.Database) error) error {
	return s.view(ctx, func(db *database.Database) error {
		var err error

		if err = db.Begin(); err != nil {
			return err
		} else if err = fn(db); err != nil {
			if rerr := db.Rollback(); rerr != nil {
				s.log.Printf("[CRITICAL] Cannot roll back transaction: %s\n",
					rerr.Error())
			}
			return err
		}

		return db.Commit()
	})
} // func (s *Service) update(ctx context.Context, fn func(db *database.Database) error) error

// schedule registers the trigger for a Reminder at its next fire time.
// If replace is true, pending triggers are replaced.
func (s *Service) schedule(ctx context.Context, rem *objects.Reminder, replace bool, res *Outcome) {
	var (
		err error
		at  = rem.NextFire(s.now())
	)

	if replace {
		err = s.reg.Reschedule(ctx, rem.ID, at, rem.Payload())
	} else {
		err = s.reg.Schedule(ctx, rem.ID, at, rem.Payload())
	}

	if err != nil {
		s.log.Printf("[ERROR] Reminder %d was saved, but could not be scheduled: %s\n",
			rem.ID,
			err.Error())
		if res.Err == nil {
			res.Err = err
			if errors.Is(err, registry.ErrPermissionDenied) {
				res.Message = MsgPermissionDenied
			} else {
				res.Message = err.Error()
			}
		}
		return
	}

	if !res.Scheduled || at.Before(res.FireAt) {
		res.FireAt = at
	}
	res.Scheduled = true
} // func (s *Service) schedule(...)

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrRecordNotFound)
} // func notFound(kind string, id int64) error

// cancel removes the triggers of the given Reminders. It carries on after
// failures and returns the first one.
func (s *Service) cancel(ctx context.Context, reminders []*objects.Reminder) error {
	var first error

	for _, r := range reminders {
		if err := s.reg.Cancel(ctx, r.ID); err != nil {
			s.log.Printf("[ERROR] Cannot cancel trigger of Reminder %d: %s\n",
				r.ID,
				err.Error())
			if first == nil {
				first = err
			}
		}
	}

	return first
} // func (s *Service) cancel(ctx context.Context, reminders []*objects.Reminder) error
