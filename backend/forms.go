// /home/krylon/go/src/github.com/blicero/kidtrack/backend/forms.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 22:47:30 krylon>

package backend

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/objects/frequency"
	"github.com/blicero/kidtrack/service"
)

// Form fields that are missing are treated as zero values, malformed ones
// as validation errors.

func formInt(r *http.Request, key string, def int64) (int64, error) {
	var s = strings.TrimSpace(r.PostFormValue(key))

	if s == "" {
		return def, nil
	}

	var n, err = strconv.ParseInt(s, 10, 64)

	if err != nil {
		return 0, &service.ValidationError{
			Field:   key,
			Message: "Invalid number " + strconv.Quote(s),
		}
	}

	return n, nil
} // func formInt(r *http.Request, key string, def int64) (int64, error)

func formBool(r *http.Request, key string, def bool) (bool, error) {
	var s = strings.TrimSpace(r.PostFormValue(key))

	if s == "" {
		return def, nil
	}

	var b, err = strconv.ParseBool(s)

	if err != nil {
		return false, &service.ValidationError{
			Field:   key,
			Message: "Invalid flag " + strconv.Quote(s),
		}
	}

	return b, nil
} // func formBool(r *http.Request, key string, def bool) (bool, error)

// queryInt reads an integer from the URL's query string.
func queryInt(r *http.Request, key string, def int64) (int64, error) {
	var s = strings.TrimSpace(r.URL.Query().Get(key))

	if s == "" {
		return def, nil
	}

	var n, err = strconv.ParseInt(s, 10, 64)

	if err != nil {
		return 0, &service.ValidationError{
			Field:   key,
			Message: "Invalid number " + strconv.Quote(s),
		}
	}

	return n, nil
} // func queryInt(r *http.Request, key string, def int64) (int64, error)

func profileFromForm(r *http.Request) (*objects.Profile, error) {
	var (
		err error
		age int64
		p   objects.Profile
	)

	if err = r.ParseForm(); err != nil {
		return nil, err
	} else if age, err = formInt(r, "age", 0); err != nil {
		return nil, err
	}

	p.Name = r.PostFormValue("name")
	p.Age = int(age)
	p.PhotoURL = r.PostFormValue("photo")

	return &p, nil
} // func profileFromForm(r *http.Request) (*objects.Profile, error)

func (d *Daemon) activityFromForm(r *http.Request) (*objects.Activity, bool, error) {
	var (
		err     error
		snooze  bool
		profile int64
		a       objects.Activity
	)

	if err = r.ParseForm(); err != nil {
		return nil, false, err
	} else if a.Date, err = daytime.ParseDate(r.PostFormValue("date"), d.loc); err != nil {
		return nil, false, err
	} else if a.TimeMinutes, err = daytime.ParseTime(r.PostFormValue("time")); err != nil {
		return nil, false, err
	} else if profile, err = formInt(r, "profile", 0); err != nil {
		return nil, false, err
	} else if snooze, err = formBool(r, "snooze", true); err != nil {
		return nil, false, err
	}

	a.Category = r.PostFormValue("category")
	a.Description = r.PostFormValue("description")
	a.Notes = r.PostFormValue("notes")
	a.ProfileID = profile

	return &a, snooze, nil
} // func (d *Daemon) activityFromForm(r *http.Request) (*objects.Activity, bool, error)

func (d *Daemon) reminderFromForm(r *http.Request) (*objects.Reminder, error) {
	var (
		err        error
		activityID int64
		daysBefore int64
		rem        = objects.Reminder{Name: r.PostFormValue("name")}
	)

	if err = r.ParseForm(); err != nil {
		return nil, err
	} else if rem.TimeMinutes, err = daytime.ParseTime(r.PostFormValue("time")); err != nil {
		return nil, err
	} else if activityID, err = formInt(r, "activity", 0); err != nil {
		return nil, err
	} else if daysBefore, err = formInt(r, "days_before", 0); err != nil {
		return nil, err
	} else if rem.Snooze, err = formBool(r, "snooze", true); err != nil {
		return nil, err
	}

	if s := r.PostFormValue("frequency"); s != "" {
		rem.Frequency = frequency.Parse(s)
	}

	if s := strings.TrimSpace(r.PostFormValue("event_date")); s != "" {
		if rem.EventDate, err = daytime.ParseDate(s, d.loc); err != nil {
			return nil, err
		}
	}

	rem.ActivityID = activityID
	rem.DaysBefore = int(daysBefore)

	return &rem, nil
} // func (d *Daemon) reminderFromForm(r *http.Request) (*objects.Reminder, error)
