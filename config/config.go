// /home/krylon/go/src/github.com/blicero/kidtrack/config/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 16:48:20 krylon>

// Package config assembles the daemon's configuration from built-in
// defaults, an optional YAML file, environment variables and command line
// flags, in ascending order of precedence.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables that are picked up.
// Nested keys are separated by a double underscore, e.g.
// KIDTRACK_ALARM__MAX_PENDING sets alarm.max_pending.
const EnvPrefix = "KIDTRACK_"

// Notification backends.
const (
	BackendDBus = "dbus"
	BackendLog  = "log"
)

// Config holds the daemon's settings.
type Config struct {
	BaseDir  string         `koanf:"basedir"`
	Location string         `koanf:"location"`
	Log      LogConfig      `koanf:"log"`
	HTTP     HTTPConfig     `koanf:"http"`
	Alarm    AlarmConfig    `koanf:"alarm"`
	Dispatch DispatchConfig `koanf:"dispatch"`
	Notify   NotifyConfig   `koanf:"notify"`
	DNSSD    DNSSDConfig    `koanf:"dnssd"`

	path  string
	flags *pflag.FlagSet
	fp    *file.File
	watch bool
	lock  sync.Mutex
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `koanf:"level"`
}

// HTTPConfig sets where the API listens.
type HTTPConfig struct {
	Address string `koanf:"address"`
}

// AlarmConfig controls the timer facility. Exact is the permission to
// schedule exact wake-ups.
type AlarmConfig struct {
	Exact      bool `koanf:"exact"`
	MaxPending int  `koanf:"max_pending"`
}

// DispatchConfig limits how long handling a single trigger may take.
type DispatchConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// NotifyConfig selects how notifications are shown, BackendDBus or BackendLog.
type NotifyConfig struct {
	Backend string `koanf:"backend"`
}

// DNSSDConfig controls whether the API is advertised via DNS-SD.
type DNSSDConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"basedir":           common.BaseDir,
		"location":          "Local",
		"log.level":         "DEBUG",
		"http.address":      fmt.Sprintf("localhost:%d", common.DefaultPort),
		"alarm.exact":       true,
		"alarm.max_pending": 500,
		"dispatch.timeout":  "30s",
		"notify.backend":    BackendDBus,
		"dnssd.enabled":     false,
	}
} // func Defaults() map[string]any

// RegisterFlags adds a command line flag for every setting to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	var d = Defaults()

	fs.String("basedir", d["basedir"].(string), "Directory for the database, log file and config file")
	fs.String("location", d["location"].(string), "Time zone reminders are scheduled in")
	fs.String("log.level", d["log.level"].(string), "Minimum level of log messages")
	fs.String("http.address", d["http.address"].(string), "Address the HTTP API listens on")
	fs.Bool("alarm.exact", d["alarm.exact"].(bool), "Allow scheduling exact alarms")
	fs.Int("alarm.max_pending", d["alarm.max_pending"].(int), "Maximum number of pending alarms")
	fs.Duration("dispatch.timeout", 30*time.Second, "Maximum time to handle a single reminder")
	fs.String("notify.backend", d["notify.backend"].(string), "How to show notifications (dbus, log)")
	fs.Bool("dnssd.enabled", d["dnssd.enabled"].(bool), "Advertise the HTTP API via DNS-SD")
} // func RegisterFlags(fs *pflag.FlagSet)

func envKey(s string) string {
	return strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
		"__",
		".")
} // func envKey(s string) string

// Load reads the configuration. A config file that does not exist is not
// an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	var (
		err error
		cfg = &Config{path: path, flags: flags}
	)

	if err = cfg.load(); err != nil {
		return nil, err
	}

	return cfg, nil
} // func Load(path string, flags *pflag.FlagSet) (*Config, error)

func (c *Config) load() error {
	var (
		err error
		k   = koanf.New(".")
	)

	if err = k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	if c.path != "" {
		if _, err = os.Stat(c.path); err == nil {
			if c.fp == nil {
				c.fp = file.Provider(c.path)
			}
			if err = k.Load(c.fp, yaml.Parser()); err != nil {
				return fmt.Errorf("failed to load config file %s: %w", c.path, err)
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config file %s: %w", c.path, err)
		}
	}

	if err = k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	if c.flags != nil {
		if err = k.Load(posflag.Provider(c.flags, ".", k), nil); err != nil {
			return fmt.Errorf("failed to load command line flags: %w", err)
		}
	}

	var next Config

	if err = k.Unmarshal("", &next); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	} else if err = next.Validate(); err != nil {
		return err
	}

	c.lock.Lock()
	c.BaseDir = next.BaseDir
	c.Location = next.Location
	c.Log = next.Log
	c.HTTP = next.HTTP
	c.Alarm = next.Alarm
	c.Dispatch = next.Dispatch
	c.Notify = next.Notify
	c.DNSSD = next.DNSSD
	c.lock.Unlock()

	return nil
} // func (c *Config) load() error

// Validate checks the settings for plausibility.
func (c *Config) Validate() error {
	var (
		errs  []error
		level = logutils.LogLevel(strings.ToUpper(c.Log.Level))
		known bool
	)

	for _, l := range common.LogLevels {
		if l == level {
			known = true
			break
		}
	}

	if !known {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}

	if c.BaseDir == "" {
		errs = append(errs, errors.New("base directory is missing"))
	}

	if c.HTTP.Address == "" {
		errs = append(errs, errors.New("HTTP address is missing"))
	}

	if c.Alarm.MaxPending <= 0 {
		errs = append(errs, fmt.Errorf("alarm.max_pending must be positive, not %d", c.Alarm.MaxPending))
	}

	if c.Dispatch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("dispatch.timeout must be positive, not %s", c.Dispatch.Timeout))
	}

	switch c.Notify.Backend {
	case BackendDBus, BackendLog:
	default:
		errs = append(errs, fmt.Errorf("unknown notification backend %q", c.Notify.Backend))
	}

	if _, err := c.Loc(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
} // func (c *Config) Validate() error

// Loc returns the time zone reminders are scheduled in.
func (c *Config) Loc() (*time.Location, error) {
	switch c.Location {
	case "", "Local":
		return time.Local, nil
	default:
		var loc, err = time.LoadLocation(c.Location)
		if err != nil {
			return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
		}
		return loc, nil
	}
} // func (c *Config) Loc() (*time.Location, error)

// ExactAlarms returns the current permission to schedule exact wake-ups.
func (c *Config) ExactAlarms() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.Alarm.Exact
} // func (c *Config) ExactAlarms() bool

// Watch reloads the configuration whenever the config file changes and
// passes it to cb. If the new configuration is invalid, the old one is
// kept. It is an error to call Watch if there is no config file.
func (c *Config) Watch(cb func(*Config)) error {
	var (
		err error
		l   *log.Logger
	)

	if c.fp == nil {
		return fmt.Errorf("no config file to watch at %s", c.path)
	} else if l, err = common.GetLogger(logdomain.Config); err != nil {
		return err
	}

	if err = c.fp.Watch(func(_ any, werr error) {
		if werr != nil {
			l.Printf("[ERROR] Error watching config file %s: %s\n",
				c.path,
				werr.Error())
			return
		} else if werr = c.load(); werr != nil {
			l.Printf("[ERROR] Cannot reload config file %s, keeping old configuration: %s\n",
				c.path,
				werr.Error())
			return
		}

		l.Printf("[INFO] Reloaded configuration from %s\n", c.path)
		cb(c)
	}); err != nil {
		return err
	}

	c.watch = true
	return nil
} // func (c *Config) Watch(cb func(*Config)) error

// Close stops watching the config file.
func (c *Config) Close() error {
	if !c.watch {
		return nil
	}

	c.watch = false
	return c.fp.Unwatch()
} // func (c *Config) Close() error
