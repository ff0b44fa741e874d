// /home/krylon/go/src/github.com/blicero/kidtrack/dispatch/dispatch_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 18:49:03 krylon>

package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/database"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/objects/frequency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("kidtrack_dispatch_test_%d", time.Now().UnixNano()))

	if err := common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	}

	var result = m.Run()

	if result == 0 {
		_ = os.RemoveAll(baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

type fakeNotifier struct {
	lock    sync.Mutex
	notices []*objects.Notice
	panicky bool
}

func (f *fakeNotifier) Post(_ context.Context, n *objects.Notice) error {
	if f.panicky {
		panic("notification daemon went away")
	}

	f.lock.Lock()
	f.notices = append(f.notices, n)
	f.lock.Unlock()
	return nil
}

type fakeRearmer struct {
	lock  sync.Mutex
	rearm []int64
}

func (f *fakeRearmer) Rearm(_ context.Context, rem *objects.Reminder, _ time.Time) error {
	f.lock.Lock()
	f.rearm = append(f.rearm, rem.ID)
	f.lock.Unlock()
	return nil
}

type fakeSnoozer struct {
	lock    sync.Mutex
	snoozed []objects.SnoozeReminder
}

func (f *fakeSnoozer) Snooze(_ context.Context, s objects.SnoozeReminder) error {
	f.lock.Lock()
	f.snoozed = append(f.snoozed, s)
	f.lock.Unlock()
	return nil
}

type fixture struct {
	d   *Dispatcher
	n   *fakeNotifier
	r   *fakeRearmer
	s   *fakeSnoozer
	act *objects.Activity
	rem *objects.Reminder
}

func setup(t *testing.T) *fixture {
	var (
		err  error
		pool *database.Pool
		db   *database.Database
		f    = &fixture{
			n: new(fakeNotifier),
			r: new(fakeRearmer),
			s: new(fakeSnoozer),
		}
	)

	pool, err = database.NewPool(filepath.Join(t.TempDir(), "dispatch.db"), 2)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() }) // nolint: errcheck

	db = pool.Get()
	defer pool.Put(db)

	f.act = &objects.Activity{
		Category:    "Sports",
		Description: "Swimming lesson",
		Date:        time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local),
		TimeMinutes: 16*60 + 30,
	}
	require.NoError(t, db.ActivityAdd(f.act))

	f.rem = &objects.Reminder{
		Name:        "Pack swimsuit",
		TimeMinutes: 18 * 60,
		Frequency:   frequency.Weekly,
		ActivityID:  f.act.ID,
		Snooze:      false,
	}
	require.NoError(t, db.ReminderAdd(f.rem))

	f.d, err = New(context.Background(), pool, f.n, f.r, f.s, time.Second*5)
	require.NoError(t, err)

	return f
} // func setup(t *testing.T) *fixture

func TestCompose(t *testing.T) {
	type testCase struct {
		name    string
		p       objects.FireReminder
		rem     *objects.Reminder
		act     *objects.Activity
		title   string
		body    string
		snooze  bool
		snoozer bool
	}

	var (
		act = &objects.Activity{
			Category:    "School",
			Description: "Field trip",
			Date:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local),
			TimeMinutes: 8*60 + 15,
		}
		named   = &objects.Reminder{ID: 1, Name: "Sign permission slip", Snooze: true}
		unnamed = &objects.Reminder{ID: 2, Name: "   ", Snooze: false}
	)

	var cases = []testCase{
		{
			name:    "full",
			p:       objects.FireReminder{ReminderID: 1, ActivityID: 1, TimeMinutes: 540, DaysBefore: 1},
			rem:     named,
			act:     act,
			title:   "Sign permission slip",
			body:    "Activity: School - Field trip (Tomorrow)\nScheduled: 2026-03-05 at 08:15",
			snooze:  true,
			snoozer: true,
		},
		{
			name:  "blank name, same day",
			p:     objects.FireReminder{ReminderID: 2, ActivityID: 1, TimeMinutes: 540},
			rem:   unnamed,
			act:   act,
			title: FallbackTitle,
			body:  "Activity: School - Field trip\nScheduled: 2026-03-05 at 08:15",
		},
		{
			name:    "nothing found",
			p:       objects.FireReminder{ReminderID: 3, ActivityID: 4, TimeMinutes: 7*60 + 5},
			title:   FallbackTitle,
			body:    "You have a scheduled activity at 07:05",
			snooze:  true,
			snoozer: true,
		},
		{
			name:    "snoozed, nothing found",
			p:       objects.FireReminder{ReminderID: 3, ActivityID: 4, TimeMinutes: -1},
			title:   FallbackTitle,
			body:    "You have a scheduled activity at ",
			snooze:  true,
			snoozer: true,
		},
		{
			name:  "activity gone",
			p:     objects.FireReminder{ReminderID: 2, ActivityID: 4, TimeMinutes: 600},
			rem:   unnamed,
			title: FallbackTitle,
			body:  "You have a scheduled activity at 10:00",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var n = Compose(c.p, c.rem, c.act)

			assert.Equal(t, c.title, n.Title)
			assert.Equal(t, c.body, n.Body)
			assert.Equal(t, c.snooze, n.Snooze)
			assert.Equal(t, c.snoozer, n.Snoozable())
			assert.Equal(t, c.p.ReminderID, n.ReminderID)
			assert.Equal(t, c.p.ActivityID, n.ActivityID)
		})
	}
} // func TestCompose(t *testing.T)

func TestDeliverFire(t *testing.T) {
	var f = setup(t)

	f.d.Deliver(f.rem.Payload())
	f.d.Wait()

	require.Len(t, f.n.notices, 1)
	assert.Equal(t, "Pack swimsuit", f.n.notices[0].Title)
	assert.Equal(t,
		"Activity: Sports - Swimming lesson\nScheduled: 2026-10-20 at 16:30",
		f.n.notices[0].Body)
	assert.False(t, f.n.notices[0].Snoozable())
	assert.Equal(t, []int64{f.rem.ID}, f.r.rearm)
} // func TestDeliverFire(t *testing.T)

func TestDeliverManual(t *testing.T) {
	var (
		f = setup(t)
		p = f.rem.Payload()
	)

	p.TimeMinutes = -1
	f.d.Deliver(p)
	f.d.Wait()

	require.Len(t, f.n.notices, 1)
	assert.Equal(t, "Pack swimsuit", f.n.notices[0].Title)
	assert.Empty(t, f.r.rearm, "A snoozed trigger must not re-arm the Reminder")
} // func TestDeliverManual(t *testing.T)

func TestDeliverDeleted(t *testing.T) {
	var f = setup(t)

	f.d.Deliver(objects.FireReminder{
		ReminderID:  f.rem.ID + 100,
		ActivityID:  f.act.ID + 100,
		TimeMinutes: 9 * 60,
	})
	f.d.Wait()

	require.Len(t, f.n.notices, 1)
	assert.Equal(t, FallbackTitle, f.n.notices[0].Title)
	assert.Equal(t, "You have a scheduled activity at 09:00", f.n.notices[0].Body)
	assert.True(t, f.n.notices[0].Snoozable())
	assert.Empty(t, f.r.rearm)
} // func TestDeliverDeleted(t *testing.T)

func TestDeliverMalformed(t *testing.T) {
	var f = setup(t)

	f.d.Deliver(objects.FireReminder{ReminderID: 0, ActivityID: 1})
	f.d.Deliver(objects.FireReminder{ReminderID: 1, ActivityID: -1})
	f.d.Wait()

	assert.Empty(t, f.n.notices)
} // func TestDeliverMalformed(t *testing.T)

func TestDeliverSnooze(t *testing.T) {
	var (
		f = setup(t)
		s = objects.SnoozeReminder{ReminderID: f.rem.ID, ActivityID: f.act.ID}
	)

	f.d.Deliver(s)
	f.d.Wait()

	assert.Equal(t, []objects.SnoozeReminder{s}, f.s.snoozed)
	assert.Empty(t, f.n.notices)
} // func TestDeliverSnooze(t *testing.T)

func TestDeliverPanic(t *testing.T) {
	var f = setup(t)

	f.n.panicky = true

	require.NotPanics(t, func() {
		f.d.Deliver(f.rem.Payload())
		f.d.Wait()
	})
	assert.Empty(t, f.r.rearm)
} // func TestDeliverPanic(t *testing.T)
