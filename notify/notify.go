// /home/krylon/go/src/github.com/blicero/kidtrack/notify/notify.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 19:12:30 krylon>

// Package notify shows Notices to the user. Bus does so via the desktop's
// notification daemon on the DBus session bus, Log just writes them to the log.
package notify

import (
	"context"
	"log"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/objects"
)

// Action key and label of the snooze button.
const (
	SnoozeAction = "snooze"
	SnoozeLabel  = "Snooze 10min"
)

// Receiver is handed the Intent of an action the user invoked on a Notice.
type Receiver interface {
	Deliver(objects.Intent)
}

// Notifier shows Notices to the user.
type Notifier interface {
	Post(ctx context.Context, n *objects.Notice) error
	Close() error
}

// Log is a Notifier that only writes Notices to the log.
type Log struct {
	log *log.Logger
}

// NewLog creates a Log Notifier.
func NewLog() (*Log, error) {
	var (
		err error
		l   = new(Log)
	)

	if l.log, err = common.GetLogger(logdomain.Notify); err != nil {
		return nil, err
	}

	return l, nil
} // func NewLog() (*Log, error)

// Post writes the Notice to the log.
func (l *Log) Post(_ context.Context, n *objects.Notice) error {
	var title, body = n.Payload()

	l.log.Printf("[INFO] %s -- %s (snooze: %t)\n",
		title,
		body,
		n.Snoozable())
	return nil
} // func (l *Log) Post(_ context.Context, n *objects.Notice) error

// Close does nothing.
func (l *Log) Close() error { return nil }
