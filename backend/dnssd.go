// /home/krylon/go/src/github.com/blicero/kidtrack/backend/dnssd.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 22:51:03 krylon>

package backend

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/blicero/kidtrack/common"
	"github.com/grandcat/zeroconf"
)

var addrPat = regexp.MustCompile(`:(\d+)$`)

// initDNSSd advertises the HTTP API on the local network, so clients can
// find it without being told the address.
func (d *Daemon) initDNSSd() error {
	var (
		err   error
		match []string
		port  int64
		srv   *zeroconf.Server
	)

	if match = addrPat.FindStringSubmatch(d.web.Addr); match == nil {
		return fmt.Errorf("cannot find port in server address %q", d.web.Addr)
	} else if port, err = strconv.ParseInt(match[1], 10, 16); err != nil {
		d.log.Printf("[ERROR] Cannot parse HTTP port from server address %q: %s\n",
			d.web.Addr,
			err.Error())
		return err
	}

	var txt = []string{
		"version=" + common.Version,
		"path=/",
	}

	var instanceName = fmt.Sprintf("%s@%s",
		common.AppName,
		d.hostname)

	if srv, err = zeroconf.Register(
		instanceName,
		common.DNSSDService,
		common.DNSSDDomain,
		int(port),
		txt,
		nil); err != nil {
		d.log.Printf("[ERROR] Cannot register service with DNS-SD: %s\n",
			err.Error())
		return err
	}

	d.log.Printf("[INFO] Advertising %s on port %d\n",
		instanceName,
		port)

	d.dnssd = srv
	return nil
} // func (d *Daemon) initDNSSd() error
