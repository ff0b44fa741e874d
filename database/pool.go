// /home/krylon/go/src/github.com/blicero/kidtrack/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-07 20:26:15 krylon>

package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/logdomain"
)

// ErrPoolClosed is returned when a Database is requested from a Pool that
// has been closed.
var ErrPoolClosed = errors.New("database pool is closed")

// Pool is a fixed-size set of open Database connections that can be shared
// between goroutines. A Database obtained from the Pool must be returned
// with Put once the caller is done with it.
type Pool struct {
	path   string
	cnt    int
	log    *log.Logger
	pool   chan *Database
	lock   sync.RWMutex
	closed bool
}

// NewPool opens cnt connections to the database at path.
func NewPool(path string, cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			path: path,
			cnt:  cnt,
			pool: make(chan *Database, cnt),
		}
	)

	if cnt < 1 {
		return nil, fmt.Errorf("invalid pool size %d", cnt)
	} else if pool.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(path); err != nil {
			pool.log.Printf("[ERROR] Cannot open database #%d at %s: %s\n",
				i,
				path,
				err.Error())
			pool.Close() // nolint: errcheck
			return nil, err
		}

		pool.pool <- db
	}

	return pool, nil
} // func NewPool(path string, cnt int) (*Pool, error)

// Close closes all Database connections currently in the Pool.
// Connections that are handed out at the time are closed as they are
// returned.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.closed {
		return nil
	}

	pool.closed = true

	var err error

	for {
		select {
		case db := <-pool.pool:
			if e := db.Close(); e != nil {
				pool.log.Printf("[ERROR] Cannot close database: %s\n",
					e.Error())
				err = e
			}
		default:
			return err
		}
	}
} // func (pool *Pool) Close() error

// Get returns a Database from the Pool, blocking until one is available.
func (pool *Pool) Get() *Database {
	var db, _ = pool.GetContext(context.Background())
	return db
} // func (pool *Pool) Get() *Database

// GetContext returns a Database from the Pool. If none is available, it
// waits until one is returned or the Context is done.
func (pool *Pool) GetContext(ctx context.Context) (*Database, error) {
	pool.lock.RLock()
	var closed = pool.closed
	pool.lock.RUnlock()

	if closed {
		return nil, ErrPoolClosed
	}

	select {
	case db := <-pool.pool:
		return db, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
} // func (pool *Pool) GetContext(ctx context.Context) (*Database, error)

// Put returns a Database to the Pool.
func (pool *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	if db.tx != nil {
		pool.log.Printf("[CANTHAPPEN] Database#%d returned to pool with a pending transaction, rolling back\n",
			db.id)
		db.Rollback() // nolint: errcheck
	}

	pool.lock.RLock()
	defer pool.lock.RUnlock()

	if pool.closed {
		db.Close() // nolint: errcheck
		return
	}

	pool.pool <- db
} // func (pool *Pool) Put(db *Database)
