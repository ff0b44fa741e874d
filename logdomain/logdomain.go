// /home/krylon/go/src/github.com/blicero/kidtrack/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-02 19:41:12 krylon>

//go:generate stringer -type=ID

// Package logdomain provides constants for log sources.
package logdomain

// ID represents an area of concern.
type ID uint8

// These constants identify the various logging domains.
const (
	Common ID = iota
	Backend
	Database
	DBPool
	Alarm
	Registry
	Dispatch
	Snooze
	Notify
	Service
	Web
	Client
	Config
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Database,
		DBPool,
		Alarm,
		Registry,
		Dispatch,
		Snooze,
		Notify,
		Service,
		Web,
		Client,
		Config,
	}
} // func AllDomains() []ID
