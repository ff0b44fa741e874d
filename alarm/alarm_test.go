// /home/krylon/go/src/github.com/blicero/kidtrack/alarm/alarm_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-13 18:52:40 krylon>

package alarm

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("kidtrack_alarm_test_%d", time.Now().UnixNano()))

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

type recorder struct {
	lock    sync.Mutex
	intents []objects.Intent
}

func (r *recorder) Deliver(i objects.Intent) {
	r.lock.Lock()
	r.intents = append(r.intents, i)
	r.lock.Unlock()
}

func (r *recorder) received() []objects.Intent {
	r.lock.Lock()
	defer r.lock.Unlock()

	var list = make([]objects.Intent, len(r.intents))
	copy(list, r.intents)
	return list
}

func openPool(t *testing.T, path string) *database.Pool {
	var pool, err = database.NewPool(path, 2)

	require.NoError(t, err, "Cannot open database pool")
	t.Cleanup(func() { pool.Close() }) // nolint: errcheck
	return pool
} // func openPool(t *testing.T, path string) *database.Pool

func rowCount(t *testing.T, pool *database.Pool) int {
	var db = pool.Get()
	defer pool.Put(db)

	var cnt, err = db.AlarmCount()

	require.NoError(t, err)
	return cnt
} // func rowCount(t *testing.T, pool *database.Pool) int

func TestSetExactWakeReplaces(t *testing.T) {
	var (
		err  error
		ctx  = context.Background()
		pool = openPool(t, filepath.Join(t.TempDir(), "alarm.db"))
		now  = time.Now().Truncate(time.Second)
		clk  *Clock
	)

	clk, err = New(pool, true, 3)
	require.NoError(t, err)
	require.NoError(t, clk.Start(ctx))
	defer clk.Shutdown() // nolint: errcheck

	require.NoError(t, clk.SetExactWake(ctx, 1, now.Add(time.Hour), objects.FireReminder{ReminderID: 1}))
	require.NoError(t, clk.SetExactWake(ctx, 1, now.Add(2*time.Hour), objects.FireReminder{ReminderID: 1}))

	assert.Equal(t, 1, clk.Count())
	assert.Equal(t, 1, rowCount(t, pool))

	var due, ok = clk.Due(1)

	require.True(t, ok)
	assert.True(t, due.Equal(now.Add(2*time.Hour)))

	require.NoError(t, clk.SetExactWake(ctx, 2, now.Add(time.Hour), objects.FireReminder{ReminderID: 2}))
	require.NoError(t, clk.SetExactWake(ctx, 3, now.Add(time.Hour), objects.FireReminder{ReminderID: 3}))

	err = clk.SetExactWake(ctx, 4, now.Add(time.Hour), objects.FireReminder{ReminderID: 4})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.False(t, clk.Pending(4))

	// Replacing a pending wake-up does not count against the quota.
	assert.NoError(t, clk.SetExactWake(ctx, 3, now.Add(3*time.Hour), objects.FireReminder{ReminderID: 3}))

	require.NoError(t, clk.Cancel(ctx, 2))
	assert.False(t, clk.Pending(2))
	assert.NoError(t, clk.Cancel(ctx, 2), "Cancelling twice must not fail")
	assert.NoError(t, clk.Cancel(ctx, 12345), "Cancelling an unknown code must not fail")
	assert.Equal(t, 2, rowCount(t, pool))

	clk.SetExactPermission(false)
	assert.False(t, clk.CanScheduleExact())
	err = clk.SetExactWake(ctx, 5, now.Add(time.Hour), objects.FireReminder{ReminderID: 5})
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.True(t, clk.Pending(1), "Revoking the permission must not touch pending alarms")
} // func TestSetExactWakeReplaces(t *testing.T)

func TestFire(t *testing.T) {
	var (
		err  error
		ctx  = context.Background()
		pool = openPool(t, filepath.Join(t.TempDir(), "alarm.db"))
		rec  = new(recorder)
		clk  *Clock
		pl   = objects.FireReminder{
			ReminderID:  7,
			ActivityID:  3,
			TimeMinutes: 480,
			DaysBefore:  1,
		}
	)

	clk, err = New(pool, true, 0)
	require.NoError(t, err)
	defer clk.Shutdown() // nolint: errcheck

	clk.SetReceiver(rec)
	require.NoError(t, clk.Start(ctx))

	require.NoError(t, clk.SetExactWake(ctx, 7, time.Now().Add(-time.Minute), pl))
	require.NoError(t, clk.SetExactWake(ctx, 8, time.Now().Add(1500*time.Millisecond), objects.FireReminder{ReminderID: 8}))

	require.Eventually(t,
		func() bool { return len(rec.received()) == 2 },
		10*time.Second,
		50*time.Millisecond,
		"Alarms did not go off")

	var got = rec.received()

	assert.Equal(t, pl, got[0])
	assert.Equal(t, objects.FireReminder{ReminderID: 8}, got[1])
	assert.False(t, clk.Pending(7))
	assert.Zero(t, clk.Count())
	assert.Zero(t, rowCount(t, pool))
} // func TestFire(t *testing.T)

func TestCancelledDoesNotFire(t *testing.T) {
	var (
		err  error
		ctx  = context.Background()
		pool = openPool(t, filepath.Join(t.TempDir(), "alarm.db"))
		rec  = new(recorder)
		clk  *Clock
	)

	clk, err = New(pool, true, 0)
	require.NoError(t, err)
	defer clk.Shutdown() // nolint: errcheck

	clk.SetReceiver(rec)
	require.NoError(t, clk.Start(ctx))

	require.NoError(t, clk.SetExactWake(ctx, 9, time.Now().Add(2*time.Second), objects.FireReminder{ReminderID: 9}))
	require.NoError(t, clk.Cancel(ctx, 9))

	time.Sleep(3 * time.Second)
	assert.Empty(t, rec.received())
} // func TestCancelledDoesNotFire(t *testing.T)

func TestRestore(t *testing.T) {
	var (
		err  error
		ctx  = context.Background()
		path = filepath.Join(t.TempDir(), "alarm.db")
		pool = openPool(t, path)
		rec  = new(recorder)
		clk  *Clock
	)

	clk, err = New(pool, true, 0)
	require.NoError(t, err)
	require.NoError(t, clk.Start(ctx))
	require.NoError(t, clk.SetExactWake(ctx, 21, time.Now().Add(time.Hour), objects.FireReminder{ReminderID: 21}))
	require.NoError(t, clk.Shutdown())

	// An alarm that went due while nobody was listening
	var db = pool.Get()
	require.NoError(t, db.AlarmSave(&objects.Alarm{
		Code:    22,
		Due:     time.Now().Add(-time.Hour),
		Payload: objects.FireReminder{ReminderID: 22, TimeMinutes: -1},
	}))
	pool.Put(db)

	clk, err = New(pool, true, 0)
	require.NoError(t, err)
	defer clk.Shutdown() // nolint: errcheck

	clk.SetReceiver(rec)
	require.NoError(t, clk.Start(ctx))

	assert.True(t, clk.Pending(21), "Alarm was not restored")

	require.Eventually(t,
		func() bool { return len(rec.received()) == 1 },
		5*time.Second,
		50*time.Millisecond,
		"Overdue alarm did not go off after restart")

	assert.Equal(t, objects.FireReminder{ReminderID: 22, TimeMinutes: -1}, rec.received()[0])
	assert.Equal(t, 1, rowCount(t, pool))
} // func TestRestore(t *testing.T)
