// /home/krylon/go/src/github.com/blicero/kidtrack/database/02_database_crud_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-08 19:30:27 krylon>

package database

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/objects/frequency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	activityCnt = 16
	maxOffset   = 30 // days
)

var (
	profile    *objects.Profile
	activities []*objects.Activity
	reminders  []*objects.Reminder
)

func init() {
	activities = make([]*objects.Activity, activityCnt)

	var today = daytime.Midnight(time.Now())

	for i := range activities {
		activities[i] = &objects.Activity{
			Category:    []string{"Sports", "Music", "School", "Health"}[i%4],
			Description: fmt.Sprintf("Test activity #%02d", i),
			Date:        today.AddDate(0, 0, rand.Intn(maxOffset*2)-maxOffset),
			TimeMinutes: rand.Intn(daytime.MinutesPerDay),
		}
	}
}

func TestProfileAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	profile = &objects.Profile{Name: "Emma", Age: 7}

	require.NoError(t, db.ProfileAdd(profile))
	require.NotZero(t, profile.ID)
	require.NotEmpty(t, profile.UUID)

	var p, err = db.ProfileGetByID(profile.ID)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Emma", p.Name)
	assert.Equal(t, 7, p.Age)

	p, err = db.ProfileGetByID(profile.ID + 1000)
	assert.NoError(t, err)
	assert.Nil(t, p)
} // func TestProfileAdd(t *testing.T)

func TestActivityAdd(t *testing.T) {
	if db == nil || profile == nil {
		t.SkipNow()
	}

	for _, a := range activities {
		a.ProfileID = profile.ID

		if err := db.ActivityAdd(a); err != nil {
			t.Fatalf("Cannot add Activity %s: %s",
				a.Description,
				err.Error())
		} else if a.ID == 0 {
			t.Errorf("ID of Activity %q is 0", a.Description)
		}
	}

	var list, err = db.ActivityGetAll()

	require.NoError(t, err)
	require.Equal(t, len(activities), len(list))

	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].Date.Before(list[i-1].Date), "Activities are not sorted by date")
	}
} // func TestActivityAdd(t *testing.T)

func TestReminderAdd(t *testing.T) {
	if db == nil || activities[0].ID == 0 {
		t.SkipNow()
	}

	reminders = make([]*objects.Reminder, 0, len(activities)*2)

	for _, a := range activities {
		var rems = []*objects.Reminder{
			{
				Name:        "",
				TimeMinutes: 540,
				Frequency:   frequency.Once,
				ActivityID:  a.ID,
				ProfileID:   a.ProfileID,
				DaysBefore:  1,
				EventDate:   a.Date,
				Snooze:      true,
			},
			{
				Name:        "Every day",
				TimeMinutes: a.TimeMinutes,
				Frequency:   frequency.Daily,
				ActivityID:  a.ID,
				ProfileID:   a.ProfileID,
			},
		}

		for _, r := range rems {
			require.NoError(t, db.ReminderAdd(r))
			require.NotZero(t, r.ID)
			reminders = append(reminders, r)
		}
	}

	var r, err = db.ReminderGetByID(reminders[0].ID)

	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, frequency.Once, r.Frequency)
	assert.True(t, r.Snooze)
	assert.True(t, r.EventDate.Equal(activities[0].Date))
	assert.True(t, r.IsEventAnchored())

	r, err = db.ReminderGetByID(reminders[1].ID)
	require.NoError(t, err)
	assert.False(t, r.Snooze)
	assert.True(t, r.EventDate.IsZero())
	assert.Equal(t, frequency.Daily, r.Frequency)
} // func TestReminderAdd(t *testing.T)

func TestReminderForeignKey(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var r = &objects.Reminder{
		TimeMinutes: 60,
		ActivityID:  999999,
	}

	assert.Error(t, db.ReminderAdd(r), "Reminder for non-existent Activity was accepted")
} // func TestReminderForeignKey(t *testing.T)

func TestReminderUpdate(t *testing.T) {
	if len(reminders) == 0 {
		t.SkipNow()
	}

	var r = reminders[1]

	r.Name = "Every week"
	r.Frequency = frequency.Weekly
	r.Snooze = true

	require.NoError(t, db.ReminderUpdate(r))

	var r2, err = db.ReminderGetByID(r.ID)

	require.NoError(t, err)
	assert.Equal(t, "Every week", r2.Name)
	assert.Equal(t, frequency.Weekly, r2.Frequency)
	assert.True(t, r2.Snooze)
} // func TestReminderUpdate(t *testing.T)

func TestActivityUpdateEventDate(t *testing.T) {
	if len(reminders) == 0 {
		t.SkipNow()
	}

	var (
		err  error
		cnt  int64
		a    = activities[2]
		rems []*objects.Reminder
	)

	a.Date = a.Date.AddDate(0, 0, 3)
	require.NoError(t, db.ActivityUpdate(a))

	cnt, err = db.ReminderSetEventDate(a)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)

	rems, err = db.ReminderGetByActivity(a.ID)
	require.NoError(t, err)
	require.Len(t, rems, 2)

	for _, r := range rems {
		assert.True(t, r.EventDate.Equal(a.Date))
		assert.Equal(t, a.ProfileID, r.ProfileID)
	}
} // func TestActivityUpdateEventDate(t *testing.T)

func TestActivityDeleteCascade(t *testing.T) {
	if len(reminders) == 0 {
		t.SkipNow()
	}

	var (
		err  error
		a    = activities[0]
		rems []*objects.Reminder
	)

	require.NoError(t, db.ActivityDelete(a))

	rems, err = db.ReminderGetByActivity(a.ID)
	require.NoError(t, err)
	assert.Empty(t, rems, "Reminders of deleted Activity are still around")

	assert.ErrorIs(t, db.ActivityDelete(a), ErrNoRowsAffected)
} // func TestActivityDeleteCascade(t *testing.T)

func TestTransactionRollback(t *testing.T) {
	if len(reminders) < 4 {
		t.SkipNow()
	}

	var r = reminders[3]

	require.NoError(t, db.Begin())
	assert.ErrorIs(t, db.Begin(), ErrTxInProgress)
	require.NoError(t, db.ReminderDelete(r))
	require.NoError(t, db.Rollback())
	assert.ErrorIs(t, db.Rollback(), ErrNoTxInProgress)

	var r2, err = db.ReminderGetByID(r.ID)

	require.NoError(t, err)
	assert.NotNil(t, r2, "Deleted Reminder was not restored by rollback")
} // func TestTransactionRollback(t *testing.T)

func TestProfileDeleteCascade(t *testing.T) {
	if profile == nil || len(reminders) == 0 {
		t.SkipNow()
	}

	var (
		err  error
		cnt  int64
		acts []*objects.Activity
	)

	require.NoError(t, db.Begin())

	_, err = db.ReminderDeleteByProfile(profile.ID)
	require.NoError(t, err)

	cnt, err = db.ActivityDeleteByProfile(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(activityCnt-1), cnt)

	require.NoError(t, db.ProfileDelete(profile))
	require.NoError(t, db.Commit())

	acts, err = db.ActivityGetByProfile(profile.ID)
	require.NoError(t, err)
	assert.Empty(t, acts)

	var rems []*objects.Reminder
	rems, err = db.ReminderGetAll()
	require.NoError(t, err)
	assert.Empty(t, rems)
} // func TestProfileDeleteCascade(t *testing.T)
