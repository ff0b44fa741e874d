// /home/krylon/go/src/github.com/blicero/kidtrack/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-05 18:41:27 krylon>

package database

import "github.com/blicero/kidtrack/database/query"

var dbQueries = map[query.ID]string{
	query.ProfileAdd: `
INSERT INTO profile (name, age, photo_url, uuid, changed)
VALUES              (   ?,   ?,         ?,    ?,       ?)
`,
	query.ProfileGetByID: `
SELECT
    name,
    age,
    photo_url,
    uuid,
    changed
FROM profile
WHERE id = ?
`,
	query.ProfileGetAll: `
SELECT
    id,
    name,
    age,
    photo_url,
    uuid,
    changed
FROM profile
ORDER BY name, id
`,
	query.ProfileDelete: "DELETE FROM profile WHERE id = ?",
	query.ActivityAdd: `
INSERT INTO activity (category, description, notes, date, time_minutes, profile_id, uuid, changed)
VALUES               (       ?,           ?,     ?,    ?,            ?,          ?,    ?,       ?)
`,
	query.ActivityUpdate: `
UPDATE activity
SET category = ?,
    description = ?,
    notes = ?,
    date = ?,
    time_minutes = ?,
    profile_id = ?,
    changed = ?
WHERE id = ?
`,
	query.ActivityGetByID: `
SELECT
    category,
    description,
    notes,
    date,
    time_minutes,
    profile_id,
    uuid,
    changed
FROM activity
WHERE id = ?
`,
	query.ActivityGetAll: `
SELECT
    id,
    category,
    description,
    notes,
    date,
    time_minutes,
    profile_id,
    uuid,
    changed
FROM activity
ORDER BY date, time_minutes, id
`,
	query.ActivityGetByProfile: `
SELECT
    id,
    category,
    description,
    notes,
    date,
    time_minutes,
    profile_id,
    uuid,
    changed
FROM activity
WHERE profile_id = ?
ORDER BY date, time_minutes, id
`,
	query.ActivityGetByRange: `
SELECT
    id,
    category,
    description,
    notes,
    date,
    time_minutes,
    profile_id,
    uuid,
    changed
FROM activity
WHERE date BETWEEN ? AND ?
ORDER BY date, time_minutes, id
`,
	query.ActivityDelete:          "DELETE FROM activity WHERE id = ?",
	query.ActivityDeleteByProfile: "DELETE FROM activity WHERE profile_id = ?",
	query.ReminderAdd: `
INSERT INTO reminder (name, time_minutes, frequency, activity_id, profile_id, days_before, event_date, snooze, uuid, changed)
VALUES               (   ?,            ?,         ?,           ?,          ?,           ?,          ?,      ?,    ?,       ?)
`,
	query.ReminderUpdate: `
UPDATE reminder
SET name = ?,
    time_minutes = ?,
    frequency = ?,
    activity_id = ?,
    profile_id = ?,
    days_before = ?,
    event_date = ?,
    snooze = ?,
    changed = ?
WHERE id = ?
`,
	query.ReminderGetByID: `
SELECT
    name,
    time_minutes,
    frequency,
    activity_id,
    profile_id,
    days_before,
    event_date,
    snooze,
    uuid,
    changed
FROM reminder
WHERE id = ?
`,
	query.ReminderGetAll: `
SELECT
    id,
    name,
    time_minutes,
    frequency,
    activity_id,
    profile_id,
    days_before,
    event_date,
    snooze,
    uuid,
    changed
FROM reminder
ORDER BY time_minutes, id
`,
	query.ReminderGetByActivity: `
SELECT
    id,
    name,
    time_minutes,
    frequency,
    activity_id,
    profile_id,
    days_before,
    event_date,
    snooze,
    uuid,
    changed
FROM reminder
WHERE activity_id = ?
ORDER BY time_minutes, id
`,
	query.ReminderGetByProfile: `
SELECT
    id,
    name,
    time_minutes,
    frequency,
    activity_id,
    profile_id,
    days_before,
    event_date,
    snooze,
    uuid,
    changed
FROM reminder
WHERE profile_id = ?
ORDER BY time_minutes, id
`,
	query.ReminderSetEventDate: `
UPDATE reminder
SET event_date = ?,
    profile_id = ?,
    changed = ?
WHERE activity_id = ?
`,
	query.ReminderDelete:           "DELETE FROM reminder WHERE id = ?",
	query.ReminderDeleteByActivity: "DELETE FROM reminder WHERE activity_id = ?",
	query.ReminderDeleteByProfile:  "DELETE FROM reminder WHERE profile_id = ?",
	query.AlarmSave: `
INSERT INTO alarm (code, due, reminder_id, activity_id, time_minutes, days_before, created)
VALUES            (   ?,   ?,           ?,           ?,            ?,           ?,       ?)
ON CONFLICT (code) DO UPDATE
SET due = excluded.due,
    reminder_id = excluded.reminder_id,
    activity_id = excluded.activity_id,
    time_minutes = excluded.time_minutes,
    days_before = excluded.days_before,
    created = excluded.created
`,
	query.AlarmDelete: "DELETE FROM alarm WHERE code = ?",
	query.AlarmGetAll: `
SELECT
    code,
    due,
    reminder_id,
    activity_id,
    time_minutes,
    days_before,
    created
FROM alarm
ORDER BY due, code
`,
	query.AlarmGetByCode: `
SELECT
    due,
    reminder_id,
    activity_id,
    time_minutes,
    days_before,
    created
FROM alarm
WHERE code = ?
`,
	query.AlarmCount: "SELECT COUNT(code) FROM alarm",
}
