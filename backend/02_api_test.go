// /home/krylon/go/src/github.com/blicero/kidtrack/backend/02_api_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 17:36:12 krylon>

package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/blicero/kidtrack/clients/clientlib"
	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/objects/frequency"
	"github.com/blicero/kidtrack/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	profileID  int64
	activityID int64
	reminderID int64
)

func requestStatus(t *testing.T, err error) int {
	var re *clientlib.RequestError

	require.Error(t, err)
	require.True(t, errors.As(err, &re), "unexpected error type %T: %s", err, err)

	return re.Status
} // func requestStatus(t *testing.T, err error) int

func TestProfileAPI(t *testing.T) {
	if client == nil {
		t.SkipNow()
	}

	var (
		err  error
		res  *objects.Response
		list []*objects.Profile
		ctx  = context.Background()
	)

	res, err = client.AddProfile(ctx, &objects.Profile{Name: "Alice", Age: 7})
	require.NoError(t, err)
	assert.True(t, res.Status)
	assert.Equal(t, "Profile added successfully", res.Message)
	require.Greater(t, res.ID, int64(0))
	profileID = res.ID

	_, err = client.AddProfile(ctx, &objects.Profile{Name: "Bob"})
	assert.Equal(t, http.StatusBadRequest, requestStatus(t, err))
	assert.Contains(t, err.Error(), "Age must be greater than 0")

	list, err = client.Profiles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].Name)
} // func TestProfileAPI(t *testing.T)

func TestActivityAPI(t *testing.T) {
	if client == nil || profileID == 0 {
		t.SkipNow()
	}

	var (
		err   error
		res   *objects.Response
		act   *objects.Activity
		rems  []*objects.Reminder
		state string
		ctx   = context.Background()
		day   = daytime.Midnight(time.Now()).AddDate(0, 0, 3)
	)

	res, err = client.AddActivity(ctx, &objects.Activity{
		Category:    "Sports",
		Description: "Swimming lesson",
		Date:        day,
		TimeMinutes: 15*60 + 30,
		ProfileID:   profileID,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "Activity and reminder added successfully", res.Message)
	assert.True(t, res.Scheduled)
	assert.True(t, daytime.At(day.AddDate(0, 0, -1), 9*60).Equal(res.FireAt),
		"unexpected fire time %s", res.FireAt)
	activityID = res.ID

	act, err = client.Activity(ctx, activityID)
	require.NoError(t, err)
	assert.Equal(t, "Swimming lesson", act.Description)
	assert.Equal(t, profileID, act.ProfileID)

	rems, err = client.Reminders(ctx, activityID)
	require.NoError(t, err)
	require.Len(t, rems, 1)
	assert.Equal(t, frequency.Once, rems[0].Frequency)
	assert.Equal(t, 1, rems[0].DaysBefore)
	reminderID = rems[0].ID

	state, err = client.ReminderState(ctx, reminderID)
	require.NoError(t, err)
	assert.Equal(t, "Scheduled", state)

	_, err = client.Activity(ctx, activityID+1000)
	assert.Equal(t, http.StatusNotFound, requestStatus(t, err))

	_, err = client.AddActivity(ctx, &objects.Activity{
		Category:    "Sports",
		Description: "No time",
		Date:        day,
		TimeMinutes: -1,
	}, true)
	assert.Equal(t, http.StatusBadRequest, requestStatus(t, err))
} // func TestActivityAPI(t *testing.T)

func TestReminderAPI(t *testing.T) {
	if client == nil || reminderID == 0 {
		t.SkipNow()
	}

	var (
		err   error
		res   *objects.Response
		rem   *objects.Reminder
		state string
		ctx   = context.Background()
	)

	res, err = client.Snooze(ctx, reminderID)
	require.NoError(t, err)
	assert.Equal(t, "Reminder snoozed for 10 minutes", res.Message)

	rem, err = client.Reminder(ctx, reminderID)
	require.NoError(t, err)

	rem.Name = "Pack the swimming gear"
	rem.TimeMinutes = 18 * 60
	res, err = client.UpdateReminder(ctx, rem)
	require.NoError(t, err)
	assert.Equal(t, "Reminder updated successfully", res.Message)
	assert.Equal(t, 18, res.FireAt.Hour())

	// Without the permission, the Reminder is saved but not scheduled.
	_, err = client.SetExactAlarms(ctx, false)
	require.NoError(t, err)

	res, err = client.AddReminder(ctx, &objects.Reminder{
		Name:        "Daily practice",
		TimeMinutes: 17 * 60,
		Frequency:   frequency.Daily,
		ActivityID:  activityID,
		Snooze:      true,
	})
	require.NoError(t, err)
	assert.False(t, res.Scheduled)
	assert.Contains(t, res.Message, "exact alarm")

	state, err = client.ReminderState(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unscheduled", state)

	_, err = client.SetExactAlarms(ctx, true)
	require.NoError(t, err)

	res, err = client.DeleteReminder(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reminder deleted successfully", res.Message)

	_, err = client.AddReminder(ctx, &objects.Reminder{
		TimeMinutes: 17 * 60,
		ActivityID:  activityID + 1000,
	})
	assert.Equal(t, http.StatusBadRequest, requestStatus(t, err))
	assert.Contains(t, err.Error(), "Please select a valid activity")
} // func TestReminderAPI(t *testing.T)

func TestReportAPI(t *testing.T) {
	if client == nil || activityID == 0 {
		t.SkipNow()
	}

	var rep, err = client.Report(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, rep.Total)
	assert.Equal(t, 1, rep.Categories["Sports"])
} // func TestReportAPI(t *testing.T)

func TestMetrics(t *testing.T) {
	if web == nil {
		t.SkipNow()
	}

	var res, err = web.Client().Get(web.URL + "/metrics")

	require.NoError(t, err)
	defer res.Body.Close() // nolint: errcheck

	var body []byte
	body, err = io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "kidtrack_triggers_scheduled_total")
} // func TestMetrics(t *testing.T)

func TestDeleteProfileAPI(t *testing.T) {
	if client == nil || profileID == 0 {
		t.SkipNow()
	}

	var (
		err   error
		res   *objects.Response
		acts  []*objects.Activity
		state string
		ctx   = context.Background()
	)

	res, err = client.DeleteProfile(ctx, profileID)
	require.NoError(t, err)
	assert.Equal(t, "Profile deleted", res.Message)

	acts, err = client.Activities(ctx, profileID)
	require.NoError(t, err)
	assert.Empty(t, acts)

	_, err = client.Reminder(ctx, reminderID)
	assert.Equal(t, http.StatusNotFound, requestStatus(t, err))

	state, err = client.ReminderState(ctx, reminderID)
	assert.Equal(t, http.StatusNotFound, requestStatus(t, err))
	assert.Empty(t, state)
	assert.Equal(t, registry.Unscheduled, back.reg.State(reminderID))
} // func TestDeleteProfileAPI(t *testing.T)
