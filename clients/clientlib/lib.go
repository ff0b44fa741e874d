// /home/krylon/go/src/github.com/blicero/kidtrack/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 15:02:44 krylon>

// Package clientlib provides the basic framework for building clients
// that talk to the KidTrack backend.
package clientlib

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/objects/uistate"
	"github.com/pquerna/ffjson/ffjson"
)

const requestTimeout = time.Second * 10

// RequestError is returned when the backend rejects a request.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s",
		e.Status,
		e.Message)
} // func (e *RequestError) Error() string

// Client is the basic implementation of a KidTrack client,
// it implements the fundamental communication with the Server.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client talking to the backend at srv.
// srv may be a URL or just host:port.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: requestTimeout,
			},
		}
	)

	if !strings.Contains(srv, "://") {
		srv = "http://" + srv
	}

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's Logger.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) endpoint(path string, query url.Values) string {
	var u = *c.Server

	u.Path = path
	u.RawQuery = ""

	if query != nil {
		u.RawQuery = query.Encode()
	}

	return u.String()
} // func (c *Client) endpoint(path string, query url.Values) string

func (c *Client) do(req *http.Request) (int, []byte, error) {
	var (
		err    error
		hres   *http.Response
		rcvBuf bytes.Buffer
	)

	if hres, err = c.Client.Do(req); err != nil {
		c.log.Printf("[ERROR] Failed to send request to %s: %s\n",
			req.URL,
			err.Error())
		return 0, nil, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			req.URL,
			err.Error())
		return 0, nil, err
	}

	return hres.StatusCode, rcvBuf.Bytes(), nil
} // func (c *Client) do(req *http.Request) (int, []byte, error)

// post submits a form and decodes the Response. A Response whose Status
// is false is returned along with a RequestError.
func (c *Client) post(ctx context.Context, path string, values url.Values) (*objects.Response, error) {
	var (
		err    error
		req    *http.Request
		status int
		buf    []byte
		ores   objects.Response
	)

	if req, err = http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint(path, nil),
		strings.NewReader(values.Encode())); err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if status, buf, err = c.do(req); err != nil {
		return nil, err
	} else if err = ffjson.Unmarshal(buf, &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s (%d): %s\n",
			req.URL,
			status,
			err.Error())
		return nil, &RequestError{Status: status, Message: string(buf)}
	} else if status != http.StatusOK || !ores.Status {
		err = &RequestError{Status: status, Message: ores.Message}
		c.log.Printf("[ERROR] Request to %s failed: %s\n",
			req.URL,
			err.Error())
		return &ores, err
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		req.URL,
		ores.Message)

	return &ores, nil
} // func (c *Client) post(ctx context.Context, path string, values url.Values) (*objects.Response, error)

// query fetches a uistate.Envelope and returns its data.
func query[T any](ctx context.Context, c *Client, path string, q url.Values) (T, error) {
	var (
		err    error
		req    *http.Request
		status int
		buf    []byte
		zero   T
		env    uistate.Envelope[T]
	)

	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil); err != nil {
		return zero, err
	} else if status, buf, err = c.do(req); err != nil {
		return zero, err
	} else if err = ffjson.Unmarshal(buf, &env); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Envelope from %s (%d): %s\n",
			req.URL,
			status,
			err.Error())
		return zero, &RequestError{Status: status, Message: string(buf)}
	}

	switch s := env.Unwrap().(type) {
	case uistate.Success[T]:
		return s.Data, nil
	case uistate.Failure[T]:
		return zero, &RequestError{Status: status, Message: s.Message}
	default:
		return zero, &RequestError{Status: status, Message: "unexpected state " + string(env.State)}
	}
} // func query[T any](ctx context.Context, c *Client, path string, q url.Values) (T, error)

func idPath(kind string, id int64, action string) string {
	var p = "/" + kind + "/" + strconv.FormatInt(id, 10)

	if action != "" {
		p += "/" + action
	}

	return p
} // func idPath(kind string, id int64, action string) string

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Profiles /////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

// AddProfile creates a new Profile.
func (c *Client) AddProfile(ctx context.Context, p *objects.Profile) (*objects.Response, error) {
	var values = url.Values{
		"name":  {p.Name},
		"age":   {strconv.Itoa(p.Age)},
		"photo": {p.PhotoURL},
	}

	return c.post(ctx, "/profile/add", values)
} // func (c *Client) AddProfile(ctx context.Context, p *objects.Profile) (*objects.Response, error)

// Profiles fetches all Profiles.
func (c *Client) Profiles(ctx context.Context) ([]*objects.Profile, error) {
	return query[[]*objects.Profile](ctx, c, "/profile/all", nil)
} // func (c *Client) Profiles(ctx context.Context) ([]*objects.Profile, error)

// DeleteProfile removes a Profile along with its Activities and Reminders.
func (c *Client) DeleteProfile(ctx context.Context, id int64) (*objects.Response, error) {
	return c.post(ctx, idPath("profile", id, "delete"), url.Values{})
} // func (c *Client) DeleteProfile(ctx context.Context, id int64) (*objects.Response, error)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Activities ///////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func activityValues(a *objects.Activity) url.Values {
	return url.Values{
		"category":    {a.Category},
		"description": {a.Description},
		"notes":       {a.Notes},
		"date":        {daytime.FormatDate(a.Date)},
		"time":        {daytime.FormatMinutes(a.TimeMinutes)},
		"profile":     {strconv.FormatInt(a.ProfileID, 10)},
	}
} // func activityValues(a *objects.Activity) url.Values

// AddActivity creates a new Activity and its default Reminder.
func (c *Client) AddActivity(ctx context.Context, a *objects.Activity, snooze bool) (*objects.Response, error) {
	var values = activityValues(a)

	values.Set("snooze", strconv.FormatBool(snooze))

	return c.post(ctx, "/activity/add", values)
} // func (c *Client) AddActivity(ctx context.Context, a *objects.Activity, snooze bool) (*objects.Response, error)

// UpdateActivity saves changes to an Activity.
func (c *Client) UpdateActivity(ctx context.Context, a *objects.Activity) (*objects.Response, error) {
	return c.post(ctx, idPath("activity", a.ID, "update"), activityValues(a))
} // func (c *Client) UpdateActivity(ctx context.Context, a *objects.Activity) (*objects.Response, error)

// DeleteActivity removes an Activity and its Reminders.
func (c *Client) DeleteActivity(ctx context.Context, id int64) (*objects.Response, error) {
	return c.post(ctx, idPath("activity", id, "delete"), url.Values{})
} // func (c *Client) DeleteActivity(ctx context.Context, id int64) (*objects.Response, error)

// Activity fetches a single Activity.
func (c *Client) Activity(ctx context.Context, id int64) (*objects.Activity, error) {
	return query[*objects.Activity](ctx, c, idPath("activity", id, ""), nil)
} // func (c *Client) Activity(ctx context.Context, id int64) (*objects.Activity, error)

// Activities fetches the Activities of a Profile, or all of them if
// profileID is 0.
func (c *Client) Activities(ctx context.Context, profileID int64) ([]*objects.Activity, error) {
	var q url.Values

	if profileID != 0 {
		q = url.Values{"profile": {strconv.FormatInt(profileID, 10)}}
	}

	return query[[]*objects.Activity](ctx, c, "/activity/all", q)
} // func (c *Client) Activities(ctx context.Context, profileID int64) ([]*objects.Activity, error)

// Upcoming fetches the Activities taking place within the next days days.
func (c *Client) Upcoming(ctx context.Context, days int) ([]*objects.Activity, error) {
	var q = url.Values{"days": {strconv.Itoa(days)}}

	return query[[]*objects.Activity](ctx, c, "/activity/upcoming", q)
} // func (c *Client) Upcoming(ctx context.Context, days int) ([]*objects.Activity, error)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Reminders ////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func reminderValues(r *objects.Reminder) url.Values {
	var values = url.Values{
		"name":        {r.Name},
		"time":        {daytime.FormatMinutes(r.TimeMinutes)},
		"frequency":   {r.Frequency.String()},
		"activity":    {strconv.FormatInt(r.ActivityID, 10)},
		"days_before": {strconv.Itoa(r.DaysBefore)},
		"snooze":      {strconv.FormatBool(r.Snooze)},
	}

	if !r.EventDate.IsZero() {
		values.Set("event_date", daytime.FormatDate(r.EventDate))
	}

	return values
} // func reminderValues(r *objects.Reminder) url.Values

// AddReminder creates a new Reminder and schedules it.
func (c *Client) AddReminder(ctx context.Context, r *objects.Reminder) (*objects.Response, error) {
	return c.post(ctx, "/reminder/add", reminderValues(r))
} // func (c *Client) AddReminder(ctx context.Context, r *objects.Reminder) (*objects.Response, error)

// UpdateReminder saves changes to a Reminder and reschedules it.
func (c *Client) UpdateReminder(ctx context.Context, r *objects.Reminder) (*objects.Response, error) {
	return c.post(ctx, idPath("reminder", r.ID, "update"), reminderValues(r))
} // func (c *Client) UpdateReminder(ctx context.Context, r *objects.Reminder) (*objects.Response, error)

// DeleteReminder cancels and removes a Reminder.
func (c *Client) DeleteReminder(ctx context.Context, id int64) (*objects.Response, error) {
	return c.post(ctx, idPath("reminder", id, "delete"), url.Values{})
} // func (c *Client) DeleteReminder(ctx context.Context, id int64) (*objects.Response, error)

// Snooze postpones a Reminder by ten minutes.
func (c *Client) Snooze(ctx context.Context, id int64) (*objects.Response, error) {
	return c.post(ctx, idPath("reminder", id, "snooze"), url.Values{})
} // func (c *Client) Snooze(ctx context.Context, id int64) (*objects.Response, error)

// Reminder fetches a single Reminder.
func (c *Client) Reminder(ctx context.Context, id int64) (*objects.Reminder, error) {
	return query[*objects.Reminder](ctx, c, idPath("reminder", id, ""), nil)
} // func (c *Client) Reminder(ctx context.Context, id int64) (*objects.Reminder, error)

// Reminders fetches the Reminders of an Activity, or all of them if
// activityID is 0.
func (c *Client) Reminders(ctx context.Context, activityID int64) ([]*objects.Reminder, error) {
	var q url.Values

	if activityID != 0 {
		q = url.Values{"activity": {strconv.FormatInt(activityID, 10)}}
	}

	return query[[]*objects.Reminder](ctx, c, "/reminder/all", q)
} // func (c *Client) Reminders(ctx context.Context, activityID int64) ([]*objects.Reminder, error)

// ReminderState tells which triggers are pending for a Reminder.
func (c *Client) ReminderState(ctx context.Context, id int64) (string, error) {
	return query[string](ctx, c, idPath("reminder", id, "state"), nil)
} // func (c *Client) ReminderState(ctx context.Context, id int64) (string, error)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Misc /////////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

// Report fetches the weekly activity report.
func (c *Client) Report(ctx context.Context) (*objects.Report, error) {
	return query[*objects.Report](ctx, c, "/report", nil)
} // func (c *Client) Report(ctx context.Context) (*objects.Report, error)

// ExactAlarms asks the backend if it may schedule exact alarms.
func (c *Client) ExactAlarms(ctx context.Context) (bool, error) {
	return query[bool](ctx, c, "/alarm/permission", nil)
} // func (c *Client) ExactAlarms(ctx context.Context) (bool, error)

// SetExactAlarms grants or revokes the backend's permission to schedule
// exact alarms.
func (c *Client) SetExactAlarms(ctx context.Context, allowed bool) (*objects.Response, error) {
	var values = url.Values{"allowed": {strconv.FormatBool(allowed)}}

	return c.post(ctx, "/alarm/permission", values)
} // func (c *Client) SetExactAlarms(ctx context.Context, allowed bool) (*objects.Response, error)
