// /home/krylon/go/src/github.com/blicero/kidtrack/service/activity.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 19:27:34 krylon>

package service

import (
	"context"
	"strings"
	"time"

	"github.com/blicero/kidtrack/database"
	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/objects/frequency"
)

// Every new Activity gets a Reminder that goes off at DefaultReminderTime
// the day before.
const (
	DefaultReminderTime       = 9 * 60
	DefaultReminderDaysBefore = 1
)

func (s *Service) validateActivity(db *database.Database, a *objects.Activity) error {
	a.Category = strings.TrimSpace(a.Category)
	a.Description = strings.TrimSpace(a.Description)

	switch {
	case a.Category == "":
		return invalid("category", "Category cannot be empty")
	case a.Description == "":
		return invalid("description", "Description cannot be empty")
	case a.Date.IsZero():
		return invalid("date", "Date cannot be empty")
	case a.TimeMinutes < 0 || a.TimeMinutes >= daytime.MinutesPerDay:
		return invalid("time", "Invalid time format. Use HH:mm")
	case a.ProfileID < 0:
		return invalid("profile", "Please select a valid profile")
	}

	a.Date = daytime.Midnight(a.Date)

	if a.ProfileID > 0 {
		if p, err := db.ProfileGetByID(a.ProfileID); err != nil {
			return err
		} else if p == nil {
			return invalid("profile", "Please select a valid profile")
		}
	}

	return nil
} // func (s *Service) validateActivity(db *database.Database, a *objects.Activity) error

// defaultReminder returns the Reminder that is created along with an Activity.
func defaultReminder(a *objects.Activity, snooze bool) *objects.Reminder {
	var r = &objects.Reminder{
		TimeMinutes: DefaultReminderTime,
		Frequency:   frequency.Once,
		ActivityID:  a.ID,
		ProfileID:   a.ProfileID,
		DaysBefore:  DefaultReminderDaysBefore,
		EventDate:   a.Date,
		Snooze:      snooze,
	}

	r.Name = r.Label(a.Category)
	return r
} // func defaultReminder(a *objects.Activity, snooze bool) *objects.Reminder

// CreateActivity adds a new Activity together with its default Reminder,
// and schedules the Reminder.
func (s *Service) CreateActivity(ctx context.Context, a *objects.Activity, snooze bool) (*Outcome, error) {
	var (
		err error
		rem *objects.Reminder
		res = &Outcome{Message: "Activity and reminder added successfully"}
	)

	if err = s.update(ctx, func(db *database.Database) error {
		var xerr error

		if xerr = s.validateActivity(db, a); xerr != nil {
			return xerr
		} else if xerr = db.ActivityAdd(a); xerr != nil {
			return xerr
		}

		rem = defaultReminder(a, snooze)
		return db.ReminderAdd(rem)
	}); err != nil {
		return nil, err
	}

	res.ID = a.ID
	s.log.Printf("[INFO] Added Activity %d (%s) with Reminder %d\n",
		a.ID,
		a.Category,
		rem.ID)

	s.schedule(ctx, rem, false, res)
	return res, nil
} // func (s *Service) CreateActivity(ctx context.Context, a *objects.Activity, snooze bool) (*Outcome, error)

// UpdateActivity saves the changes to an Activity, moves the event date of
// its Reminders to the Activity's new date and reschedules them.
func (s *Service) UpdateActivity(ctx context.Context, a *objects.Activity) (*Outcome, error) {
	var (
		err       error
		reminders []*objects.Reminder
		res       = &Outcome{ID: a.ID, Message: "Activity and reminder updated"}
	)

	if err = s.update(ctx, func(db *database.Database) error {
		var (
			xerr error
			old  *objects.Activity
		)

		if old, xerr = db.ActivityGetByID(a.ID); xerr != nil {
			return xerr
		} else if old == nil {
			return notFound("Activity", a.ID)
		} else if xerr = s.validateActivity(db, a); xerr != nil {
			return xerr
		}

		if a.UUID == "" {
			a.UUID = old.UUID
		}

		if xerr = db.ActivityUpdate(a); xerr != nil {
			return xerr
		} else if _, xerr = db.ReminderSetEventDate(a); xerr != nil {
			return xerr
		}

		reminders, xerr = db.ReminderGetByActivity(a.ID)
		return xerr
	}); err != nil {
		return nil, err
	}

	for _, r := range reminders {
		s.schedule(ctx, r, true, res)
	}

	return res, nil
} // func (s *Service) UpdateActivity(ctx context.Context, a *objects.Activity) (*Outcome, error)

// DeleteActivity cancels the triggers of an Activity's Reminders, then
// deletes the Reminders and the Activity.
func (s *Service) DeleteActivity(ctx context.Context, id int64) (*Outcome, error) {
	var (
		err       error
		act       *objects.Activity
		reminders []*objects.Reminder
		res       = &Outcome{ID: id, Message: "Activity deleted"}
	)

	if err = s.view(ctx, func(db *database.Database) error {
		var xerr error

		if act, xerr = db.ActivityGetByID(id); xerr != nil {
			return xerr
		} else if act == nil {
			return notFound("Activity", id)
		}

		reminders, xerr = db.ReminderGetByActivity(id)
		return xerr
	}); err != nil {
		return nil, err
	}

	res.Err = s.cancel(ctx, reminders)

	if err = s.update(ctx, func(db *database.Database) error {
		if _, xerr := db.ReminderDeleteByActivity(id); xerr != nil {
			return xerr
		}

		return db.ActivityDelete(act)
	}); err != nil {
		return nil, err
	}

	s.log.Printf("[INFO] Deleted Activity %d (%s) and %d Reminders\n",
		act.ID,
		act.Category,
		len(reminders))

	return res, nil
} // func (s *Service) DeleteActivity(ctx context.Context, id int64) (*Outcome, error)

// Activity returns the Activity with the given ID.
func (s *Service) Activity(ctx context.Context, id int64) (*objects.Activity, error) {
	var a *objects.Activity

	var err = s.view(ctx, func(db *database.Database) (err error) {
		if a, err = db.ActivityGetByID(id); err == nil && a == nil {
			err = notFound("Activity", id)
		}
		return
	})

	return a, err
} // func (s *Service) Activity(ctx context.Context, id int64) (*objects.Activity, error)

// Activities returns all Activities, or those of one Profile if profileID
// is not zero.
func (s *Service) Activities(ctx context.Context, profileID int64) ([]*objects.Activity, error) {
	var list []*objects.Activity

	var err = s.view(ctx, func(db *database.Database) (err error) {
		if profileID != 0 {
			list, err = db.ActivityGetByProfile(profileID)
		} else {
			list, err = db.ActivityGetAll()
		}
		return
	})

	return list, err
} // func (s *Service) Activities(ctx context.Context, profileID int64) ([]*objects.Activity, error)

// Upcoming returns the Activities taking place within the given number of
// days from today.
func (s *Service) Upcoming(ctx context.Context, days int) ([]*objects.Activity, error) {
	var (
		list  []*objects.Activity
		begin = daytime.Midnight(s.now())
		end   = begin.AddDate(0, 0, days)
	)

	var err = s.view(ctx, func(db *database.Database) (err error) {
		list, err = db.ActivityGetByRange(begin, end)
		return
	})

	return list, err
} // func (s *Service) Upcoming(ctx context.Context, days int) ([]*objects.Activity, error)

// Report sums up all Activities on record relative to now.
func (s *Service) Report(ctx context.Context, now time.Time) (*objects.Report, error) {
	var list []*objects.Activity

	if err := s.view(ctx, func(db *database.Database) (err error) {
		list, err = db.ActivityGetAll()
		return
	}); err != nil {
		return nil, err
	}

	return objects.NewReport(list, now), nil
} // func (s *Service) Report(ctx context.Context, now time.Time) (*objects.Report, error)
