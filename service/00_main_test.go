// /home/krylon/go/src/github.com/blicero/kidtrack/service/00_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 29. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 20:03:37 krylon>

package service

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
	"github.com/blicero/kidtrack/registry"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("kidtrack_service_test_%d", time.Now().UnixNano()))

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

// fakeScheduler keeps track of pending triggers per Reminder.
type fakeScheduler struct {
	lock      sync.Mutex
	pending   map[int64]time.Time
	cancelled []int64
	denied    bool
}

func (f *fakeScheduler) Schedule(_ context.Context, id int64, at time.Time, _ objects.FireReminder) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.denied {
		return registry.ErrPermissionDenied
	}

	f.pending[id] = at
	return nil
}

func (f *fakeScheduler) Reschedule(ctx context.Context, id int64, at time.Time, p objects.FireReminder) error {
	if err := f.Cancel(ctx, id); err != nil {
		return err
	}

	return f.Schedule(ctx, id, at, p)
}

func (f *fakeScheduler) Cancel(_ context.Context, id int64) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	delete(f.pending, id)
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeScheduler) due(id int64) (time.Time, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()

	var at, ok = f.pending[id]
	return at, ok
}

// testNow is a Wednesday.
var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func setup(t *testing.T) (*Service, *fakeScheduler, *database.Pool) {
	var (
		err  error
		pool *database.Pool
		srv  *Service
		fake = &fakeScheduler{pending: make(map[int64]time.Time)}
	)

	pool, err = database.NewPool(filepath.Join(t.TempDir(), "service.db"), 2)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() }) // nolint: errcheck

	srv, err = New(pool, fake)
	require.NoError(t, err)
	srv.now = func() time.Time { return testNow }

	return srv, fake, pool
} // func setup(t *testing.T) (*Service, *fakeScheduler, *database.Pool)
