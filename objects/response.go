// /home/krylon/go/src/github.com/blicero/kidtrack/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-06 20:17:02 krylon>

package objects

import "time"

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
// For requests that (re)schedule a Reminder, Scheduled tells if a trigger
// was registered and FireAt when it is going to go off.
type Response struct {
	ID        int64
	Status    bool
	Message   string
	Scheduled bool
	FireAt    time.Time
}
