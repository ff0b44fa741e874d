// /home/krylon/go/src/github.com/blicero/kidtrack/notify/bus.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-14 19:40:06 krylon>

package notify

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/objects"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyIntf   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = notifyIntf + ".Notify"
	sigAction    = notifyIntf + ".ActionInvoked"
	sigClosed    = notifyIntf + ".NotificationClosed"
	sigDepth     = 16
)

// Bus posts Notices to the desktop's notification daemon and passes the
// actions the user invokes on them to a Receiver.
type Bus struct {
	log     *log.Logger
	conn    *dbus.Conn
	lock    sync.Mutex
	posted  map[uint32]objects.Notice
	recv    Receiver
	signals chan *dbus.Signal
	done    chan struct{}
}

// NewBus connects to the DBus session bus.
func NewBus() (*Bus, error) {
	var (
		err error
		b   = &Bus{
			posted:  make(map[uint32]objects.Notice),
			signals: make(chan *dbus.Signal, sigDepth),
			done:    make(chan struct{}),
		}
	)

	if b.log, err = common.GetLogger(logdomain.Notify); err != nil {
		return nil, err
	} else if b.conn, err = dbus.ConnectSessionBus(); err != nil {
		b.log.Printf("[ERROR] Failed to connect to DBus Session bus: %s\n",
			err.Error())
		return nil, err
	} else if err = b.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(notifyPath),
		dbus.WithMatchInterface(notifyIntf),
	); err != nil {
		b.log.Printf("[ERROR] Cannot subscribe to notification signals: %s\n",
			err.Error())
		b.conn.Close() // nolint: errcheck
		return nil, err
	}

	b.conn.Signal(b.signals)

	go b.signalLoop()

	return b, nil
} // func NewBus() (*Bus, error)

// SetReceiver sets the Receiver invoked actions are delivered to.
func (b *Bus) SetReceiver(r Receiver) {
	b.lock.Lock()
	b.recv = r
	b.lock.Unlock()
} // func (b *Bus) SetReceiver(r Receiver)

// Close disconnects from the session bus.
func (b *Bus) Close() error {
	close(b.done)
	b.conn.RemoveSignal(b.signals)
	return b.conn.Close()
} // func (b *Bus) Close() error

// Post shows the Notice, with a snooze button if the Notice is snoozable.
func (b *Bus) Post(ctx context.Context, n *objects.Notice) error {
	var (
		err        error
		id         uint32
		obj        = b.conn.Object(notifyObj, notifyPath)
		head, body = n.Payload()
		actions    = []string{}
	)

	if obj == nil {
		err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		b.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	if n.Snoozable() {
		actions = append(actions, SnoozeAction, SnoozeLabel)
	}

	var res = obj.CallWithContext(
		ctx,
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		actions,
		map[string]dbus.Variant{},
		int32(-1),
	)

	if res.Err != nil {
		b.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	} else if err = res.Store(&id); err != nil {
		b.log.Printf("[ERROR] Cannot get ID of Notification %q: %s\n",
			head,
			err.Error())
		return err
	}

	if n.Snoozable() {
		b.lock.Lock()
		b.posted[id] = *n
		b.lock.Unlock()
	}

	return nil
} // func (b *Bus) Post(ctx context.Context, n *objects.Notice) error

func (b *Bus) signalLoop() {
	defer b.log.Println("[TRACE] Quitting signalLoop")

	for {
		select {
		case <-b.done:
			return
		case sig, ok := <-b.signals:
			if !ok {
				return
			}
			b.handleSignal(sig)
		}
	}
} // func (b *Bus) signalLoop()

func (b *Bus) handleSignal(sig *dbus.Signal) {
	var (
		id     uint32
		ok     bool
		action string
		n      objects.Notice
		r      Receiver
	)

	if sig == nil || len(sig.Body) < 2 {
		return
	} else if id, ok = sig.Body[0].(uint32); !ok {
		b.log.Printf("[ERROR] Unexpected type of notification ID in signal %s: %T\n",
			sig.Name,
			sig.Body[0])
		return
	}

	switch sig.Name {
	case sigClosed:
		b.lock.Lock()
		delete(b.posted, id)
		b.lock.Unlock()
	case sigAction:
		if action, ok = sig.Body[1].(string); !ok || action != SnoozeAction {
			return
		}

		b.lock.Lock()
		n, ok = b.posted[id]
		delete(b.posted, id)
		r = b.recv
		b.lock.Unlock()

		if !ok {
			b.log.Printf("[DEBUG] Snooze requested for unknown Notification %d\n",
				id)
			return
		} else if r == nil {
			b.log.Printf("[ERROR] No receiver for snooze of Reminder %d\n",
				n.ReminderID)
			return
		}

		b.log.Printf("[DEBUG] User snoozed Reminder %d\n",
			n.ReminderID)
		r.Deliver(n.SnoozeIntent())
	}
} // func (b *Bus) handleSignal(sig *dbus.Signal)
