// /home/krylon/go/src/github.com/blicero/kidtrack/service/profile.go
// -*- mode: go; coding: utf-8; -*-
// Created on 27. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 18:40:55 krylon>

package service

import (
	"context"
	"strings"

	"github.com/blicero/kidtrack/database"
	"github.com/blicero/kidtrack/objects"
)

const (
	maxNameLength = 50
	maxAge        = 120
)

func validateProfile(p *objects.Profile) error {
	p.Name = strings.TrimSpace(p.Name)

	switch {
	case p.Name == "":
		return invalid("name", "Name cannot be empty")
	case len(p.Name) > maxNameLength:
		return invalid("name", "Name cannot exceed 50 characters")
	case p.Age < 0:
		return invalid("age", "Age cannot be negative")
	case p.Age == 0:
		return invalid("age", "Age must be greater than 0")
	case p.Age > maxAge:
		return invalid("age", "Age must be realistic")
	}

	return nil
} // func validateProfile(p *objects.Profile) error

// CreateProfile adds a new Profile.
func (s *Service) CreateProfile(ctx context.Context, p *objects.Profile) (*Outcome, error) {
	var err error

	if err = validateProfile(p); err != nil {
		return nil, err
	} else if err = s.view(ctx, func(db *database.Database) error {
		return db.ProfileAdd(p)
	}); err != nil {
		return nil, err
	}

	s.log.Printf("[INFO] Added Profile %d (%s)\n",
		p.ID,
		p.Name)

	return &Outcome{ID: p.ID, Message: "Profile added successfully"}, nil
} // func (s *Service) CreateProfile(ctx context.Context, p *objects.Profile) (*Outcome, error)

// Profiles returns all Profiles.
func (s *Service) Profiles(ctx context.Context) ([]*objects.Profile, error) {
	var list []*objects.Profile

	var err = s.view(ctx, func(db *database.Database) (err error) {
		list, err = db.ProfileGetAll()
		return
	})

	return list, err
} // func (s *Service) Profiles(ctx context.Context) ([]*objects.Profile, error)

// DeleteProfile deletes a Profile along with its Activities and Reminders.
// The triggers of the Reminders are cancelled first.
func (s *Service) DeleteProfile(ctx context.Context, id int64) (*Outcome, error) {
	var (
		err       error
		p         *objects.Profile
		reminders []*objects.Reminder
		res       = &Outcome{ID: id, Message: "Profile deleted"}
	)

	if id <= 0 {
		return nil, invalid("id", "Please select a valid profile")
	}

	if err = s.view(ctx, func(db *database.Database) error {
		var (
			xerr  error
			acts  []*objects.Activity
			rems  []*objects.Reminder
			known = make(map[int64]bool)
		)

		if p, xerr = db.ProfileGetByID(id); xerr != nil {
			return xerr
		} else if p == nil {
			return notFound("Profile", id)
		} else if rems, xerr = db.ReminderGetByProfile(id); xerr != nil {
			return xerr
		} else if acts, xerr = db.ActivityGetByProfile(id); xerr != nil {
			return xerr
		}

		for _, a := range acts {
			var arems []*objects.Reminder

			if arems, xerr = db.ReminderGetByActivity(a.ID); xerr != nil {
				return xerr
			}
			rems = append(rems, arems...)
		}

		for _, r := range rems {
			if !known[r.ID] {
				known[r.ID] = true
				reminders = append(reminders, r)
			}
		}

		return nil
	}); err != nil {
		return nil, err
	}

	res.Err = s.cancel(ctx, reminders)

	if err = s.update(ctx, func(db *database.Database) error {
		var xerr error

		if _, xerr = db.ReminderDeleteByProfile(id); xerr != nil {
			return xerr
		} else if _, xerr = db.ActivityDeleteByProfile(id); xerr != nil {
			return xerr
		}

		return db.ProfileDelete(p)
	}); err != nil {
		return nil, err
	}

	s.log.Printf("[INFO] Deleted Profile %d (%s) with %d Reminders\n",
		p.ID,
		p.Name,
		len(reminders))

	return res, nil
} // func (s *Service) DeleteProfile(ctx context.Context, id int64) (*Outcome, error)
