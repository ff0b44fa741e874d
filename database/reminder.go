// /home/krylon/go/src/github.com/blicero/kidtrack/database/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-08 19:11:02 krylon>

package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/database/query"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/objects/frequency"
)

// ReminderAdd adds a new Reminder to the database.
func (db *Database) ReminderAdd(r *objects.Reminder) error {
	const qid query.ID = query.ReminderAdd
	var (
		err error
		id  int64
		now = time.Now()
	)

	if r.UUID == "" {
		r.UUID = common.GetUUID()
	}

	if id, err = db.insert(qid,
		r.Name,
		r.TimeMinutes,
		r.Frequency.String(),
		r.ActivityID,
		r.ProfileID,
		r.DaysBefore,
		stamp(r.EventDate),
		r.Snooze,
		r.UUID,
		now.Unix()); err != nil {
		db.log.Printf("[ERROR] Cannot add Reminder %q: %s\n",
			r.Name,
			err.Error())
		return err
	}

	r.ID = id
	r.Changed = now
	return nil
} // func (db *Database) ReminderAdd(r *objects.Reminder) error

// ReminderUpdate writes the Reminder's fields back to the database.
func (db *Database) ReminderUpdate(r *objects.Reminder) error {
	const qid query.ID = query.ReminderUpdate
	var (
		err error
		now = time.Now()
	)

	if err = db.change(qid,
		r.Name,
		r.TimeMinutes,
		r.Frequency.String(),
		r.ActivityID,
		r.ProfileID,
		r.DaysBefore,
		stamp(r.EventDate),
		r.Snooze,
		now.Unix(),
		r.ID); err != nil {
		db.log.Printf("[ERROR] Cannot update Reminder %d: %s\n",
			r.ID,
			err.Error())
		return err
	}

	r.Changed = now
	return nil
} // func (db *Database) ReminderUpdate(r *objects.Reminder) error

// ReminderGetByID looks up a Reminder by its ID. If no such Reminder
// exists, nil is returned, without an error.
func (db *Database) ReminderGetByID(id int64) (*objects.Reminder, error) {
	const qid query.ID = query.ReminderGetByID
	var (
		err                error
		rows               *sql.Rows
		freq               string
		eventDate, changed int64
	)

	if rows, err = db.query(qid, id); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var r = &objects.Reminder{ID: id}

		if err = rows.Scan(
			&r.Name,
			&r.TimeMinutes,
			&freq,
			&r.ActivityID,
			&r.ProfileID,
			&r.DaysBefore,
			&eventDate,
			&r.Snooze,
			&r.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		r.Frequency = frequency.Parse(freq)
		r.EventDate = unstamp(eventDate)
		r.Changed = time.Unix(changed, 0)
		return r, nil
	}

	return nil, rows.Err()
} // func (db *Database) ReminderGetByID(id int64) (*objects.Reminder, error)

func (db *Database) reminderList(qid query.ID, args ...any) ([]*objects.Reminder, error) {
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.query(qid, args...); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var list = make([]*objects.Reminder, 0, 16)

	for rows.Next() {
		var (
			freq               string
			eventDate, changed int64
			r                  = new(objects.Reminder)
		)

		if err = rows.Scan(
			&r.ID,
			&r.Name,
			&r.TimeMinutes,
			&freq,
			&r.ActivityID,
			&r.ProfileID,
			&r.DaysBefore,
			&eventDate,
			&r.Snooze,
			&r.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		r.Frequency = frequency.Parse(freq)
		r.EventDate = unstamp(eventDate)
		r.Changed = time.Unix(changed, 0)
		list = append(list, r)
	}

	return list, rows.Err()
} // func (db *Database) reminderList(qid query.ID, args ...any) ([]*objects.Reminder, error)

// ReminderGetAll returns all Reminders, ordered by time of day.
func (db *Database) ReminderGetAll() ([]*objects.Reminder, error) {
	return db.reminderList(query.ReminderGetAll)
} // func (db *Database) ReminderGetAll() ([]*objects.Reminder, error)

// ReminderGetByActivity returns all Reminders attached to the given Activity.
func (db *Database) ReminderGetByActivity(activityID int64) ([]*objects.Reminder, error) {
	return db.reminderList(query.ReminderGetByActivity, activityID)
} // func (db *Database) ReminderGetByActivity(activityID int64) ([]*objects.Reminder, error)

// ReminderGetByProfile returns all Reminders belonging to the given Profile.
func (db *Database) ReminderGetByProfile(profileID int64) ([]*objects.Reminder, error) {
	return db.reminderList(query.ReminderGetByProfile, profileID)
} // func (db *Database) ReminderGetByProfile(profileID int64) ([]*objects.Reminder, error)

// ReminderSetEventDate copies the date and the Profile of an Activity into all
// of its Reminders.
// It returns the number of Reminders that were updated.
func (db *Database) ReminderSetEventDate(a *objects.Activity) (int64, error) {
	const qid query.ID = query.ReminderSetEventDate
	var (
		err error
		res sql.Result
	)

	if res, err = db.exec(qid, stamp(a.Date), a.ProfileID, time.Now().Unix(), a.ID); err != nil {
		db.log.Printf("[ERROR] Cannot set event date and profile for Reminders of Activity %d: %s\n",
			a.ID,
			err.Error())
		return 0, err
	}

	return res.RowsAffected()
} // func (db *Database) ReminderSetEventDate(a *objects.Activity) (int64, error)

// ReminderDelete removes a Reminder from the database.
func (db *Database) ReminderDelete(r *objects.Reminder) error {
	const qid query.ID = query.ReminderDelete
	var err error

	if err = db.change(qid, r.ID); err != nil {
		if !errors.Is(err, ErrNoRowsAffected) {
			db.log.Printf("[ERROR] Cannot delete Reminder %d: %s\n",
				r.ID,
				err.Error())
		}
		return err
	}

	return nil
} // func (db *Database) ReminderDelete(r *objects.Reminder) error

// ReminderDeleteByActivity removes all Reminders attached to the given Activity.
func (db *Database) ReminderDeleteByActivity(activityID int64) (int64, error) {
	const qid query.ID = query.ReminderDeleteByActivity
	var (
		err error
		res sql.Result
	)

	if res, err = db.exec(qid, activityID); err != nil {
		return 0, err
	}

	return res.RowsAffected()
} // func (db *Database) ReminderDeleteByActivity(activityID int64) (int64, error)

// ReminderDeleteByProfile removes all Reminders belonging to the given Profile.
func (db *Database) ReminderDeleteByProfile(profileID int64) (int64, error) {
	const qid query.ID = query.ReminderDeleteByProfile
	var (
		err error
		res sql.Result
	)

	if res, err = db.exec(qid, profileID); err != nil {
		return 0, err
	}

	return res.RowsAffected()
} // func (db *Database) ReminderDeleteByProfile(profileID int64) (int64, error)
