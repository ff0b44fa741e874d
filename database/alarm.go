// /home/krylon/go/src/github.com/blicero/kidtrack/database/alarm.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-01 18:02:44 krylon>

package database

import (
	"database/sql"
	"time"

	"github.com/blicero/kidtrack/database/query"
	"github.com/blicero/kidtrack/objects"
)

// AlarmSave stores a pending Alarm. An existing Alarm with the same Code
// is replaced.
func (db *Database) AlarmSave(a *objects.Alarm) error {
	const qid query.ID = query.AlarmSave
	var err error

	if a.Created.IsZero() {
		a.Created = time.Now()
	}

	if _, err = db.exec(qid,
		a.Code,
		a.Due.Unix(),
		a.Payload.ReminderID,
		a.Payload.ActivityID,
		a.Payload.TimeMinutes,
		a.Payload.DaysBefore,
		a.Created.Unix()); err != nil {
		db.log.Printf("[ERROR] Cannot save Alarm %d: %s\n",
			a.Code,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) AlarmSave(a *objects.Alarm) error

// AlarmDelete removes the Alarm with the given Code. Removing an Alarm that
// does not exist is not an error.
func (db *Database) AlarmDelete(code int64) error {
	const qid query.ID = query.AlarmDelete
	var err error

	if _, err = db.exec(qid, code); err != nil {
		db.log.Printf("[ERROR] Cannot delete Alarm %d: %s\n",
			code,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) AlarmDelete(code int64) error

// AlarmGetAll returns all pending Alarms, ordered by due time.
func (db *Database) AlarmGetAll() ([]*objects.Alarm, error) {
	const qid query.ID = query.AlarmGetAll
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.query(qid); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var list = make([]*objects.Alarm, 0, 16)

	for rows.Next() {
		var (
			due, created int64
			a            = new(objects.Alarm)
		)

		if err = rows.Scan(
			&a.Code,
			&due,
			&a.Payload.ReminderID,
			&a.Payload.ActivityID,
			&a.Payload.TimeMinutes,
			&a.Payload.DaysBefore,
			&created); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		a.Due = time.Unix(due, 0)
		a.Created = time.Unix(created, 0)
		list = append(list, a)
	}

	return list, rows.Err()
} // func (db *Database) AlarmGetAll() ([]*objects.Alarm, error)

// AlarmGetByCode looks up the Alarm with the given Code. If there is none,
// nil is returned, without an error.
func (db *Database) AlarmGetByCode(code int64) (*objects.Alarm, error) {
	const qid query.ID = query.AlarmGetByCode
	var (
		err          error
		rows         *sql.Rows
		due, created int64
	)

	if rows, err = db.query(qid, code); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var a = &objects.Alarm{Code: code}

		if err = rows.Scan(
			&due,
			&a.Payload.ReminderID,
			&a.Payload.ActivityID,
			&a.Payload.TimeMinutes,
			&a.Payload.DaysBefore,
			&created); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		a.Due = time.Unix(due, 0)
		a.Created = time.Unix(created, 0)
		return a, nil
	}

	return nil, rows.Err()
} // func (db *Database) AlarmGetByCode(code int64) (*objects.Alarm, error)

// AlarmCount returns the number of pending Alarms.
func (db *Database) AlarmCount() (int, error) {
	const qid query.ID = query.AlarmCount
	var (
		err  error
		rows *sql.Rows
		cnt  int
	)

	if rows, err = db.query(qid); err != nil {
		return 0, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		if err = rows.Scan(&cnt); err != nil {
			return 0, err
		}
	}

	return cnt, rows.Err()
} // func (db *Database) AlarmCount() (int, error)
