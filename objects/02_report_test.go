// /home/krylon/go/src/github.com/blicero/kidtrack/objects/02_report_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-03 22:58:12 krylon>

package objects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	var (
		loc = time.UTC
		// Wednesday
		now = time.Date(2026, 10, 14, 15, 0, 0, 0, loc)
		day = func(d int) time.Time {
			return time.Date(2026, 10, d, 0, 0, 0, 0, loc)
		}
		acts = []*Activity{
			{ID: 1, Category: "Sports", Date: day(1)},
			{ID: 2, Category: "Music", Date: day(12)},
			{ID: 3, Category: "Sports", Date: day(13)},
			{ID: 4, Category: "School", Date: day(14), TimeMinutes: 480},
			{ID: 5, Category: "Sports", Date: day(14), TimeMinutes: 900},
			{ID: 6, Category: "Music", Date: day(18)},
			{ID: 7, Category: "Music", Date: day(19)},
		}
	)

	var r = NewReport(acts, now)

	require.NotNil(t, r)
	assert.Equal(t, 7, r.Total)
	assert.Equal(t, 3, r.Completed)
	assert.Equal(t, 42, r.CompletionRate)
	assert.Equal(t, 5, r.ThisWeek)
	assert.Equal(t, map[string]int{"Sports": 3, "Music": 3, "School": 1}, r.Categories)
	require.Len(t, r.Recent, RecentCount)

	var ids = make([]int64, len(r.Recent))
	for i, a := range r.Recent {
		ids[i] = a.ID
	}

	assert.Equal(t, []int64{7, 6, 5, 4, 3}, ids)

	var empty = NewReport(nil, now)
	assert.Zero(t, empty.CompletionRate)
	assert.Empty(t, empty.Recent)
} // func TestReport(t *testing.T)
