// /home/krylon/go/src/github.com/blicero/kidtrack/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 21:14:52 krylon>

// Package backend implements the ... backend of the application, the part
// that ties the database, the timer facility, the notification daemon and
// the HTTP API together.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/kidtrack/alarm"
	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/config"
	"github.com/blicero/kidtrack/database"
	"github.com/blicero/kidtrack/dispatch"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/blicero/kidtrack/notify"
	"github.com/blicero/kidtrack/registry"
	"github.com/blicero/kidtrack/service"
	"github.com/blicero/kidtrack/snooze"
	"github.com/blicero/krylib"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
)

const (
	poolSize        = 4
	shutdownTimeout = time.Second * 3
)

// Daemon is the centerpiece of the backend, coordinating between the
// database, the timer facility, the notification daemon, and the clients.
type Daemon struct {
	log      *log.Logger
	cfg      *config.Config
	loc      *time.Location
	pool     *database.Pool
	clock    *alarm.Clock
	reg      *registry.Registry
	notifier notify.Notifier
	snoozer  *snooze.Handler
	disp     *dispatch.Dispatcher
	srv      *service.Service
	lock     sync.RWMutex
	active   bool
	ctx      context.Context
	cancel   context.CancelFunc
	web      http.Server
	router   *mux.Router
	dnssd    *zeroconf.Server
	hostname string
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
// The HTTP server is started only if serve is true.
func Summon(cfg *config.Config, serve bool) (*Daemon, error) {
	krylib.Trace()

	var (
		err error
		d   = &Daemon{
			cfg:    cfg,
			active: true,
			router: mux.NewRouter(),
		}
	)

	d.ctx, d.cancel = context.WithCancel(context.Background())

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.loc, err = cfg.Loc(); err != nil {
		d.log.Printf("[ERROR] %s\n", err.Error())
		return nil, err
	} else if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot query hostname: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(common.DbPath, poolSize); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.clock, err = alarm.New(d.pool, cfg.ExactAlarms(), cfg.Alarm.MaxPending); err != nil {
		d.log.Printf("[ERROR] Cannot create alarm clock: %s\n",
			err.Error())
		return nil, err
	} else if d.reg, err = registry.New(d.clock); err != nil {
		return nil, err
	} else if err = d.initNotifier(); err != nil {
		return nil, err
	} else if d.snoozer, err = snooze.New(d.reg, d.notifier); err != nil {
		return nil, err
	} else if d.disp, err = dispatch.New(d.ctx, d.pool, d.notifier, d.reg, d.snoozer, cfg.Dispatch.Timeout); err != nil {
		return nil, err
	} else if d.srv, err = service.New(d.pool, d.reg); err != nil {
		return nil, err
	}

	d.srv.SetLocation(d.loc)
	d.disp.SetLocation(d.loc)
	d.clock.SetReceiver(d.disp)

	if bus, ok := d.notifier.(*notify.Bus); ok {
		bus.SetReceiver(d.disp)
	}

	d.web.Addr = cfg.HTTP.Address
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	} else if err = d.clock.Start(d.ctx); err != nil {
		d.log.Printf("[ERROR] Cannot start alarm clock: %s\n",
			err.Error())
		return nil, err
	}

	if err = cfg.Watch(d.configChanged); err != nil {
		d.log.Printf("[DEBUG] Not watching configuration: %s\n",
			err.Error())
	}

	if serve {
		go d.serveHTTP()

		if cfg.DNSSD.Enabled {
			if err = d.initDNSSd(); err != nil {
				d.log.Printf("[ERROR] Cannot advertise API via DNS-SD: %s\n",
					err.Error())
			}
		}
	}

	return d, nil
} // func Summon(cfg *config.Config, serve bool) (*Daemon, error)

func (d *Daemon) initNotifier() error {
	var err error

	if d.cfg.Notify.Backend == config.BackendDBus {
		var bus *notify.Bus

		if bus, err = notify.NewBus(); err == nil {
			d.notifier = bus
			return nil
		}

		d.log.Printf("[WARN] Cannot use DBus for notifications, writing them to the log: %s\n",
			err.Error())
	}

	if d.notifier, err = notify.NewLog(); err != nil {
		d.log.Printf("[ERROR] Cannot create notifier: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (d *Daemon) initNotifier() error

func (d *Daemon) configChanged(c *config.Config) {
	d.clock.SetExactPermission(c.ExactAlarms())

	if err := common.SetLogLevel(c.Log.Level); err != nil {
		d.log.Printf("[ERROR] Cannot set log level: %s\n",
			err.Error())
	}
} // func (d *Daemon) configChanged(c *config.Config)

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag and shuts down all of its components.
// Pending alarms stay in the database and are picked up the next time a
// Daemon is summoned.
func (d *Daemon) Banish() error {
	krylib.Trace()
	defer d.log.Printf("[TRACE] EXIT %s\n",
		krylib.TraceInfo())

	var (
		err, e2     error
		ctx, cancel = context.WithTimeout(context.Background(), shutdownTimeout)
	)
	defer cancel()

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()

	if d.dnssd != nil {
		d.dnssd.Shutdown()
	}

	if err = d.web.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	} else {
		err = nil
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	if e2 = d.clock.Shutdown(); e2 != nil {
		d.log.Printf("[ERROR] Failed to shut down alarm clock: %s\n",
			e2.Error())
		err = errors.Join(err, e2)
	}

	d.disp.Wait()
	d.cancel()

	if e2 = d.notifier.Close(); e2 != nil {
		d.log.Printf("[ERROR] Failed to close notifier: %s\n",
			e2.Error())
	}

	if e2 = d.cfg.Close(); e2 != nil {
		d.log.Printf("[ERROR] Failed to stop watching configuration: %s\n",
			e2.Error())
	}

	if e2 = d.pool.Close(); e2 != nil {
		d.log.Printf("[ERROR] Failed to close database pool: %s\n",
			e2.Error())
		err = errors.Join(err, e2)
	}

	return err
} // func (d *Daemon) Banish() error
