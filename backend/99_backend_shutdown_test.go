// /home/krylon/go/src/github.com/blicero/kidtrack/backend/99_backend_shutdown_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 16:55:48 krylon>

package backend

import "testing"

func TestBanish(t *testing.T) {
	if back == nil {
		t.SkipNow()
	} else if !back.IsAlive() {
		t.SkipNow()
	}

	if web != nil {
		web.Close()
	}

	var err error

	if err = back.Banish(); err != nil {
		t.Errorf("Failed to banish Daemon: %s", err.Error())
	}

	if back.IsAlive() {
		t.Error("Daemon is still alive after being banished")
	}
} // func TestBanish(t *testing.T)
