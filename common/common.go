// /home/krylon/go/src/github.com/blicero/kidtrack/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-11 18:02:37 krylon>

// Package common contains constants, variables and functions used
// throughout the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blicero/kidtrack/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug indicates whether to emit additional log messages and perform
// additional sanity checks.
// Version is the version number to display.
// AppName is the name of the application.
// DefaultPort is the TCP port the HTTP API listens on by default.
const (
	Debug       = true
	Version     = "0.2.1"
	AppName     = "KidTrack"
	DefaultPort = 7203
)

// DNSSDService and DNSSDDomain are used to advertise and find the HTTP API
// on the local network.
const (
	DNSSDService = "_http._tcp"
	DNSSDDomain  = "local."
)

// TimestampFormat is the format string used to format and parse
// timestamps in log messages and the like.
const (
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatDate      = "2006-01-02"
)

// BuildStamp is the time the binary was built. It is overwritten at link time.
var BuildStamp = "(unknown)"

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines minimum log levels per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(LogLevels))

// MinLogLevel is the minimum level a message must have to be written.
var MinLogLevel logutils.LogLevel = "TRACE"

func init() {
	for _, id := range logdomain.AllDomains() {
		PackageLevels[id] = MinLogLevel
	}
}

var (
	// BaseDir is the folder where all application-specific files are stored.
	BaseDir = filepath.Join(os.Getenv("HOME"), "."+strings.ToLower(AppName))
	// LogPath is the log file.
	LogPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".log")
	// DbPath is the database holding profiles, activities, reminders and alarms.
	DbPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".db")
	// ConfigPath is the path of the (optional) configuration file.
	ConfigPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".yaml")
)

var (
	logLock sync.Mutex
	logFile *os.File
)

// SetBaseDir sets the application's base directory. This should only be done
// during initialization.
// Once the log file and the database are opened, this is useless at best
// and opens a world of confusion at worst.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BASE_DIR to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".log")
	DbPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".db")
	ConfigPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".yaml")

	logLock.Lock()
	if logFile != nil {
		logFile.Close() // nolint: errcheck
		logFile = nil
	}
	logLock.Unlock()

	if err := InitApp(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// SetLogLevel sets the minimum level for all log domains.
func SetLogLevel(lvl string) error {
	var level = logutils.LogLevel(strings.ToUpper(lvl))

	for _, l := range LogLevels {
		if l == level {
			logLock.Lock()
			MinLogLevel = level
			for id := range PackageLevels {
				PackageLevels[id] = level
			}
			logLock.Unlock()
			return nil
		}
	}

	return fmt.Errorf("invalid log level %q", lvl)
} // func SetLogLevel(lvl string) error

// InitApp performs some basic preparations for the application to run.
// Currently, this means creating the BaseDir folder.
func InitApp() error {
	if err := os.MkdirAll(BaseDir, 0700); err != nil {
		return fmt.Errorf("cannot create base directory %s: %w",
			BaseDir,
			err)
	}

	return nil
} // func InitApp() error

// GetLogger returns a Logger that writes both to stdout and to the log file
// in BaseDir, filtered by the minimum level of its domain.
// If the log file cannot be opened, the Logger writes to stdout only.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		writer  io.Writer = os.Stdout
		logName = fmt.Sprintf("%s.%s ",
			AppName,
			dom)
	)

	logLock.Lock()
	defer logLock.Unlock()

	if logFile == nil {
		if err = InitApp(); err == nil {
			logFile, err = os.OpenFile(LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr,
				"Cannot open log file %s, logging to stdout only: %s\n",
				LogPath,
				err.Error())
			logFile = nil
		}
	}

	if logFile != nil {
		writer = io.MultiWriter(os.Stdout, logFile)
	}

	var lvl, ok = PackageLevels[dom]

	if !ok {
		lvl = MinLogLevel
	}

	filter := &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: lvl,
		Writer:   writer,
	}

	return log.New(filter, logName, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a randomized UUID.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
