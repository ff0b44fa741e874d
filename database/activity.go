// /home/krylon/go/src/github.com/blicero/kidtrack/database/activity.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-08 18:47:39 krylon>

package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/database/query"
	"github.com/blicero/kidtrack/objects"
)

// ActivityAdd adds a new Activity to the database.
func (db *Database) ActivityAdd(a *objects.Activity) error {
	const qid query.ID = query.ActivityAdd
	var (
		err error
		id  int64
		now = time.Now()
	)

	if a.UUID == "" {
		a.UUID = common.GetUUID()
	}

	if id, err = db.insert(qid,
		a.Category,
		a.Description,
		a.Notes,
		a.Date.Unix(),
		a.TimeMinutes,
		a.ProfileID,
		a.UUID,
		now.Unix()); err != nil {
		db.log.Printf("[ERROR] Cannot add Activity %q: %s\n",
			a.Category,
			err.Error())
		return err
	}

	a.ID = id
	a.Changed = now
	return nil
} // func (db *Database) ActivityAdd(a *objects.Activity) error

// ActivityUpdate writes the Activity's fields back to the database.
func (db *Database) ActivityUpdate(a *objects.Activity) error {
	const qid query.ID = query.ActivityUpdate
	var (
		err error
		now = time.Now()
	)

	if err = db.change(qid,
		a.Category,
		a.Description,
		a.Notes,
		a.Date.Unix(),
		a.TimeMinutes,
		a.ProfileID,
		now.Unix(),
		a.ID); err != nil {
		db.log.Printf("[ERROR] Cannot update Activity %d: %s\n",
			a.ID,
			err.Error())
		return err
	}

	a.Changed = now
	return nil
} // func (db *Database) ActivityUpdate(a *objects.Activity) error

// ActivityGetByID looks up an Activity by its ID. If no such Activity
// exists, nil is returned, without an error.
func (db *Database) ActivityGetByID(id int64) (*objects.Activity, error) {
	const qid query.ID = query.ActivityGetByID
	var (
		err           error
		rows          *sql.Rows
		date, changed int64
	)

	if rows, err = db.query(qid, id); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var a = &objects.Activity{ID: id}

		if err = rows.Scan(
			&a.Category,
			&a.Description,
			&a.Notes,
			&date,
			&a.TimeMinutes,
			&a.ProfileID,
			&a.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		a.Date = time.Unix(date, 0)
		a.Changed = time.Unix(changed, 0)
		return a, nil
	}

	return nil, rows.Err()
} // func (db *Database) ActivityGetByID(id int64) (*objects.Activity, error)

func (db *Database) activityList(qid query.ID, args ...any) ([]*objects.Activity, error) {
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.query(qid, args...); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var list = make([]*objects.Activity, 0, 16)

	for rows.Next() {
		var (
			date, changed int64
			a             = new(objects.Activity)
		)

		if err = rows.Scan(
			&a.ID,
			&a.Category,
			&a.Description,
			&a.Notes,
			&date,
			&a.TimeMinutes,
			&a.ProfileID,
			&a.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		a.Date = time.Unix(date, 0)
		a.Changed = time.Unix(changed, 0)
		list = append(list, a)
	}

	return list, rows.Err()
} // func (db *Database) activityList(qid query.ID, args ...any) ([]*objects.Activity, error)

// ActivityGetAll returns all Activities, ordered by date and time.
func (db *Database) ActivityGetAll() ([]*objects.Activity, error) {
	return db.activityList(query.ActivityGetAll)
} // func (db *Database) ActivityGetAll() ([]*objects.Activity, error)

// ActivityGetByProfile returns all Activities belonging to the given Profile.
func (db *Database) ActivityGetByProfile(profileID int64) ([]*objects.Activity, error) {
	return db.activityList(query.ActivityGetByProfile, profileID)
} // func (db *Database) ActivityGetByProfile(profileID int64) ([]*objects.Activity, error)

// ActivityGetByRange returns all Activities taking place on a day between
// begin and end, inclusively.
func (db *Database) ActivityGetByRange(begin, end time.Time) ([]*objects.Activity, error) {
	return db.activityList(query.ActivityGetByRange, begin.Unix(), end.Unix())
} // func (db *Database) ActivityGetByRange(begin, end time.Time) ([]*objects.Activity, error)

// ActivityDelete removes an Activity from the database. Its Reminders go with it.
func (db *Database) ActivityDelete(a *objects.Activity) error {
	const qid query.ID = query.ActivityDelete
	var err error

	if err = db.change(qid, a.ID); err != nil {
		if !errors.Is(err, ErrNoRowsAffected) {
			db.log.Printf("[ERROR] Cannot delete Activity %d: %s\n",
				a.ID,
				err.Error())
		}
		return err
	}

	return nil
} // func (db *Database) ActivityDelete(a *objects.Activity) error

// ActivityDeleteByProfile removes all Activities belonging to the given Profile.
// It returns the number of Activities deleted.
func (db *Database) ActivityDeleteByProfile(profileID int64) (int64, error) {
	const qid query.ID = query.ActivityDeleteByProfile
	var (
		err error
		res sql.Result
	)

	if res, err = db.exec(qid, profileID); err != nil {
		return 0, err
	}

	return res.RowsAffected()
} // func (db *Database) ActivityDeleteByProfile(profileID int64) (int64, error)
