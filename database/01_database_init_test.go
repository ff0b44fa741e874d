// /home/krylon/go/src/github.com/blicero/kidtrack/database/01_database_init_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-07 20:41:55 krylon>

package database

import (
	"testing"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/database/query"
	"github.com/stretchr/testify/assert"
)

var db *Database

func TestCreateDatabase(t *testing.T) {
	var err error

	if db, err = Open(common.DbPath); err != nil {
		db = nil
		t.Fatalf("Cannot open database at %s: %s",
			common.DbPath,
			err.Error())
	}
} // func TestCreateDatabase(t *testing.T)

// We prepare each query once to make sure there are no syntax errors in the SQL.
func TestPrepareQueries(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for id := range dbQueries {
		var err error
		if _, err = db.getQuery(id); err != nil {
			t.Errorf("Cannot prepare query %s: %s",
				id,
				err.Error())
		}
	}
} // func TestPrepareQueries(t *testing.T)

func TestQueryCatalogue(t *testing.T) {
	for id := query.ProfileAdd; id <= query.AlarmCount; id++ {
		_, found := dbQueries[id]
		assert.True(t, found, "No SQL for query %s", id)
	}
} // func TestQueryCatalogue(t *testing.T)
