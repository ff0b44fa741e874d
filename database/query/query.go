// /home/krylon/go/src/github.com/blicero/kidtrack/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-05 18:22:14 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

// ID identifies a query.
type ID uint8

// The queries the Database knows about.
const (
	ProfileAdd ID = iota
	ProfileGetByID
	ProfileGetAll
	ProfileDelete
	ActivityAdd
	ActivityUpdate
	ActivityGetByID
	ActivityGetAll
	ActivityGetByProfile
	ActivityGetByRange
	ActivityDelete
	ActivityDeleteByProfile
	ReminderAdd
	ReminderUpdate
	ReminderGetByID
	ReminderGetAll
	ReminderGetByActivity
	ReminderGetByProfile
	ReminderSetEventDate
	ReminderDelete
	ReminderDeleteByActivity
	ReminderDeleteByProfile
	AlarmSave
	AlarmDelete
	AlarmGetAll
	AlarmGetByCode
	AlarmCount
)
