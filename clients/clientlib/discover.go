// /home/krylon/go/src/github.com/blicero/kidtrack/clients/clientlib/discover.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 15:20:11 krylon>

package clientlib

import (
	"context"
	"fmt"
	"strings"

	"github.com/blicero/kidtrack/common"
	"github.com/grandcat/zeroconf"
)

func rrStr(rr *zeroconf.ServiceEntry) string {
	return fmt.Sprintf("%s:%d",
		strings.TrimSuffix(rr.HostName, "."),
		rr.Port)
} // func rrStr(rr *zeroconf.ServiceEntry) string

// isBackend returns true if the instance name of a service entry is one
// advertised by the backend. zeroconf escapes the @ in instance names.
func isBackend(rr *zeroconf.ServiceEntry) bool {
	var inst = strings.ReplaceAll(rr.Instance, "\\", "")

	return strings.HasPrefix(inst, common.AppName+"@")
} // func isBackend(rr *zeroconf.ServiceEntry) bool

// Discover browses the local network for backends until ctx is done and
// returns their addresses as host:port.
func Discover(ctx context.Context) ([]string, error) {
	var (
		err      error
		resolver *zeroconf.Resolver
		peers    []string
		seen     = make(map[string]bool)
		entries  = make(chan *zeroconf.ServiceEntry)
	)

	if resolver, err = zeroconf.NewResolver(nil); err != nil {
		return nil, err
	} else if err = resolver.Browse(ctx, common.DNSSDService, common.DNSSDDomain, entries); err != nil {
		return nil, err
	}

	for {
		var (
			entry *zeroconf.ServiceEntry
			ok    bool
		)

		select {
		case <-ctx.Done():
			return peers, nil
		case entry, ok = <-entries:
			if !ok {
				return peers, nil
			}
		}

		if !isBackend(entry) {
			continue
		}

		var addr = rrStr(entry)

		if !seen[addr] {
			seen[addr] = true
			peers = append(peers, addr)
		}
	}
} // func Discover(ctx context.Context) ([]string, error)
