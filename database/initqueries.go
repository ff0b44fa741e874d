// /home/krylon/go/src/github.com/blicero/kidtrack/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-05 18:30:51 krylon>

package database

// Profiles and Activities use 0 to mean "no profile", so there is no
// foreign key on profile_id. Reminders go away with their Activity.
var initQueries = []string{
	`
CREATE TABLE profile (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    age         INTEGER NOT NULL DEFAULT 0,
    photo_url   TEXT NOT NULL DEFAULT '',
    uuid        TEXT UNIQUE NOT NULL,
    changed     INTEGER NOT NULL,
    CHECK (age >= 0)
)
`,
	`
CREATE TABLE activity (
    id           INTEGER PRIMARY KEY,
    category     TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    notes        TEXT NOT NULL DEFAULT '',
    date         INTEGER NOT NULL,
    time_minutes INTEGER NOT NULL,
    profile_id   INTEGER NOT NULL DEFAULT 0,
    uuid         TEXT UNIQUE NOT NULL,
    changed      INTEGER NOT NULL,
    CHECK (time_minutes BETWEEN 0 AND 1439)
)
`,
	"CREATE INDEX act_date_idx ON activity (date)",
	"CREATE INDEX act_prof_idx ON activity (profile_id)",
	`
CREATE TABLE reminder (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL DEFAULT '',
    time_minutes INTEGER NOT NULL,
    frequency    TEXT NOT NULL DEFAULT 'once',
    activity_id  INTEGER NOT NULL,
    profile_id   INTEGER NOT NULL DEFAULT 0,
    days_before  INTEGER NOT NULL DEFAULT 0,
    event_date   INTEGER NOT NULL DEFAULT 0,
    snooze       INTEGER NOT NULL DEFAULT 1,
    uuid         TEXT UNIQUE NOT NULL,
    changed      INTEGER NOT NULL,
    FOREIGN KEY (activity_id) REFERENCES activity (id)
        ON UPDATE RESTRICT
        ON DELETE CASCADE,
    CHECK (time_minutes BETWEEN 0 AND 1439),
    CHECK (days_before >= 0)
)
`,
	"CREATE INDEX rem_act_idx ON reminder (activity_id)",
	"CREATE INDEX rem_prof_idx ON reminder (profile_id)",
	`
CREATE TABLE alarm (
    code         INTEGER PRIMARY KEY,
    due          INTEGER NOT NULL,
    reminder_id  INTEGER NOT NULL,
    activity_id  INTEGER NOT NULL,
    time_minutes INTEGER NOT NULL DEFAULT -1,
    days_before  INTEGER NOT NULL DEFAULT 0,
    created      INTEGER NOT NULL
)
`,
	"CREATE INDEX alarm_due_idx ON alarm (due)",
}
