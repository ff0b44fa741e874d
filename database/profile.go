// /home/krylon/go/src/github.com/blicero/kidtrack/database/profile.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-05 19:02:18 krylon>

package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/database/query"
	"github.com/blicero/kidtrack/objects"
)

// ProfileAdd adds a new Profile to the database.
func (db *Database) ProfileAdd(p *objects.Profile) error {
	const qid query.ID = query.ProfileAdd
	var (
		err error
		id  int64
		now = time.Now()
	)

	if p.UUID == "" {
		p.UUID = common.GetUUID()
	}

	if id, err = db.insert(qid, p.Name, p.Age, p.PhotoURL, p.UUID, now.Unix()); err != nil {
		db.log.Printf("[ERROR] Cannot add Profile %q: %s\n",
			p.Name,
			err.Error())
		return err
	}

	p.ID = id
	p.Changed = now
	return nil
} // func (db *Database) ProfileAdd(p *objects.Profile) error

// ProfileGetByID looks up a Profile by its ID. If no such Profile exists,
// nil is returned, without an error.
func (db *Database) ProfileGetByID(id int64) (*objects.Profile, error) {
	const qid query.ID = query.ProfileGetByID
	var (
		err     error
		rows    *sql.Rows
		changed int64
	)

	if rows, err = db.query(qid, id); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var p = &objects.Profile{ID: id}

		if err = rows.Scan(&p.Name, &p.Age, &p.PhotoURL, &p.UUID, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		p.Changed = time.Unix(changed, 0)
		return p, nil
	}

	return nil, rows.Err()
} // func (db *Database) ProfileGetByID(id int64) (*objects.Profile, error)

// ProfileGetAll returns all Profiles, ordered by name.
func (db *Database) ProfileGetAll() ([]*objects.Profile, error) {
	const qid query.ID = query.ProfileGetAll
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.query(qid); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var list = make([]*objects.Profile, 0, 8)

	for rows.Next() {
		var (
			changed int64
			p       = new(objects.Profile)
		)

		if err = rows.Scan(&p.ID, &p.Name, &p.Age, &p.PhotoURL, &p.UUID, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		}

		p.Changed = time.Unix(changed, 0)
		list = append(list, p)
	}

	return list, rows.Err()
} // func (db *Database) ProfileGetAll() ([]*objects.Profile, error)

// ProfileDelete removes a Profile from the database.
// Activities and Reminders that belong to it are not touched, the caller
// is expected to take care of those first.
func (db *Database) ProfileDelete(p *objects.Profile) error {
	const qid query.ID = query.ProfileDelete
	var err error

	if err = db.change(qid, p.ID); err != nil {
		if !errors.Is(err, ErrNoRowsAffected) {
			db.log.Printf("[ERROR] Cannot delete Profile %d (%s): %s\n",
				p.ID,
				p.Name,
				err.Error())
		}
		return err
	}

	return nil
} // func (db *Database) ProfileDelete(p *objects.Profile) error
