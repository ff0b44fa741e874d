// /home/krylon/go/src/github.com/blicero/kidtrack/backend/00_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 16:41:09 krylon>

package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/kidtrack/common"
)

func TestMain(m *testing.M) {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("kidtrack_backend_test_%d", time.Now().UnixNano()))

	if err := common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	}

	var result = m.Run()

	if result == 0 {
		_ = os.RemoveAll(baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)
