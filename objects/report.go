// /home/krylon/go/src/github.com/blicero/kidtrack/objects/report.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-03 22:41:17 krylon>

package objects

import (
	"sort"
	"time"

	"github.com/blicero/kidtrack/daytime"
)

//go:generate ffjson report.go

// RecentCount is the number of Activities listed in a Report's Recent field.
const RecentCount = 5

// Report sums up the Activities on record.
// An Activity counts as completed once the day it took place on is over.
type Report struct {
	Total          int
	Completed      int
	ThisWeek       int
	CompletionRate int
	Categories     map[string]int
	Recent         []*Activity
	Generated      time.Time
}

// NewReport computes a Report over the given Activities relative to now.
// Weeks start on Monday.
func NewReport(activities []*Activity, now time.Time) *Report {
	var (
		today     = daytime.Midnight(now)
		weekStart = today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
		weekEnd   = weekStart.AddDate(0, 0, 7)
		r         = &Report{
			Total:      len(activities),
			Categories: make(map[string]int),
			Generated:  now,
		}
	)

	for _, a := range activities {
		var day = daytime.Midnight(a.Date.In(now.Location()))

		if day.Before(today) {
			r.Completed++
		}

		if !day.Before(weekStart) && day.Before(weekEnd) {
			r.ThisWeek++
		}

		r.Categories[a.Category]++
	}

	if r.Total > 0 {
		r.CompletionRate = r.Completed * 100 / r.Total
	}

	var sorted = make([]*Activity, len(activities))
	copy(sorted, activities)

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].TimeMinutes > sorted[j].TimeMinutes
	})

	if len(sorted) > RecentCount {
		sorted = sorted[:RecentCount]
	}

	r.Recent = sorted

	return r
} // func NewReport(activities []*Activity, now time.Time) *Report
