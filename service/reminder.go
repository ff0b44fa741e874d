// /home/krylon/go/src/github.com/blicero/kidtrack/service/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 19:44:08 krylon>

package service

import (
	"context"
	"strings"

	"github.com/blicero/kidtrack/database"
	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/objects"
)

// validateReminder checks the Reminder and fills in the fields derived from
// its Activity.
func validateReminder(db *database.Database, r *objects.Reminder) error {
	var (
		err error
		act *objects.Activity
	)

	switch {
	case r.TimeMinutes < 0 || r.TimeMinutes >= daytime.MinutesPerDay:
		return invalid("time", "Invalid time format. Use HH:mm")
	case r.DaysBefore < 0:
		return invalid("days_before", "Days before cannot be negative")
	case r.ActivityID <= 0:
		return invalid("activity", "Please select a valid activity")
	}

	if act, err = db.ActivityGetByID(r.ActivityID); err != nil {
		return err
	} else if act == nil {
		return invalid("activity", "Please select a valid activity")
	}

	r.ProfileID = act.ProfileID
	r.Name = strings.TrimSpace(r.Name)

	// A generated label may need the Reminder's ID, which a new Reminder
	// does not have, yet.
	if r.Name == "" && (r.ID != 0 || strings.TrimSpace(act.Category) != "") {
		r.Name = r.Label(act.Category)
	}

	return nil
} // func validateReminder(db *database.Database, r *objects.Reminder) error

// CreateReminder adds a new Reminder and schedules it.
func (s *Service) CreateReminder(ctx context.Context, r *objects.Reminder) (*Outcome, error) {
	var (
		err error
		res = &Outcome{Message: "Reminder added successfully"}
	)

	if err = s.update(ctx, func(db *database.Database) error {
		var xerr error

		if xerr = validateReminder(db, r); xerr != nil {
			return xerr
		} else if xerr = db.ReminderAdd(r); xerr != nil {
			return xerr
		}

		if r.Name == "" {
			r.Name = r.Label("")
			return db.ReminderUpdate(r)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	res.ID = r.ID
	s.schedule(ctx, r, false, res)
	return res, nil
} // func (s *Service) CreateReminder(ctx context.Context, r *objects.Reminder) (*Outcome, error)

// UpdateReminder saves the changes to a Reminder and replaces its trigger.
func (s *Service) UpdateReminder(ctx context.Context, r *objects.Reminder) (*Outcome, error) {
	var (
		err error
		res = &Outcome{ID: r.ID, Message: "Reminder updated successfully"}
	)

	if err = s.update(ctx, func(db *database.Database) error {
		var (
			xerr error
			old  *objects.Reminder
		)

		if old, xerr = db.ReminderGetByID(r.ID); xerr != nil {
			return xerr
		} else if old == nil {
			return notFound("Reminder", r.ID)
		} else if xerr = validateReminder(db, r); xerr != nil {
			return xerr
		}

		if r.UUID == "" {
			r.UUID = old.UUID
		}

		return db.ReminderUpdate(r)
	}); err != nil {
		return nil, err
	}

	s.schedule(ctx, r, true, res)
	return res, nil
} // func (s *Service) UpdateReminder(ctx context.Context, r *objects.Reminder) (*Outcome, error)

// DeleteReminder cancels the Reminder's triggers and deletes it.
func (s *Service) DeleteReminder(ctx context.Context, id int64) (*Outcome, error) {
	var (
		err error
		rem *objects.Reminder
		res = &Outcome{ID: id, Message: "Reminder deleted successfully"}
	)

	if rem, err = s.Reminder(ctx, id); err != nil {
		return nil, err
	}

	res.Err = s.cancel(ctx, []*objects.Reminder{rem})

	if err = s.view(ctx, func(db *database.Database) error {
		return db.ReminderDelete(rem)
	}); err != nil {
		return nil, err
	}

	return res, nil
} // func (s *Service) DeleteReminder(ctx context.Context, id int64) (*Outcome, error)

// Reminder returns the Reminder with the given ID.
func (s *Service) Reminder(ctx context.Context, id int64) (*objects.Reminder, error) {
	var r *objects.Reminder

	var err = s.view(ctx, func(db *database.Database) (err error) {
		if r, err = db.ReminderGetByID(id); err == nil && r == nil {
			err = notFound("Reminder", id)
		}
		return
	})

	return r, err
} // func (s *Service) Reminder(ctx context.Context, id int64) (*objects.Reminder, error)

// Reminders returns all Reminders, or those of one Activity if activityID
// is not zero.
func (s *Service) Reminders(ctx context.Context, activityID int64) ([]*objects.Reminder, error) {
	var list []*objects.Reminder

	var err = s.view(ctx, func(db *database.Database) (err error) {
		if activityID != 0 {
			list, err = db.ReminderGetByActivity(activityID)
		} else {
			list, err = db.ReminderGetAll()
		}
		return
	})

	return list, err
} // func (s *Service) Reminders(ctx context.Context, activityID int64) ([]*objects.Reminder, error)
