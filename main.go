// /home/krylon/go/src/github.com/blicero/kidtrack/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 18:20:45 krylon>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/blicero/kidtrack/backend"
	"github.com/blicero/kidtrack/clients/clientlib"
	"github.com/blicero/kidtrack/common"
	"github.com/blicero/kidtrack/config"
	"github.com/blicero/kidtrack/daytime"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
} // func main()

type rootContext struct {
	ctx     context.Context
	cfgPath string
	server  string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	var (
		ctx, cancel = signal.NotifyContext(
			context.Background(),
			os.Interrupt,
			syscall.SIGTERM,
			syscall.SIGQUIT)
		rc = &rootContext{ctx: ctx}
	)

	var cmd = &cobra.Command{
		Use:          "kidtrack",
		Short:        "Keeps track of kids' activities and reminds you of them",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE:      rc.loadConfig,
		RunE:         rc.runDaemon,
		PersistentPostRun: func(*cobra.Command, []string) {
			cancel()
		},
	}

	cmd.Flags().StringVar(
		&rc.cfgPath,
		"config",
		"",
		"Path of the configuration file (default: config file in the base directory)")
	config.RegisterFlags(cmd.Flags())

	cmd.PersistentFlags().StringVar(
		&rc.server,
		"server",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"Address of the backend the client commands talk to")

	cmd.AddCommand(
		newVersionCmd(),
		newDiscoverCmd(rc),
		newSnoozeCmd(rc),
		newUpcomingCmd(rc),
		newPermissionCmd(rc),
	)

	return cmd
} // func newRootCmd() *cobra.Command

func (rc *rootContext) loadConfig(cmd *cobra.Command, _ []string) error {
	var err error

	if cmd.Flags().Changed("basedir") {
		var dir, _ = cmd.Flags().GetString("basedir")

		if err = common.SetBaseDir(dir); err != nil {
			return err
		}
	}

	if rc.cfgPath == "" {
		rc.cfgPath = common.ConfigPath
	}

	if rc.cfg, err = config.Load(rc.cfgPath, cmd.Flags()); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot load configuration from %s: %s\n",
			rc.cfgPath,
			err.Error())
		return err
	}

	if rc.cfg.BaseDir != common.BaseDir {
		if err = common.SetBaseDir(rc.cfg.BaseDir); err != nil {
			return err
		}
	}

	return common.SetLogLevel(rc.cfg.Log.Level)
} // func (rc *rootContext) loadConfig(cmd *cobra.Command, _ []string) error

func (rc *rootContext) runDaemon(_ *cobra.Command, _ []string) error {
	var (
		err    error
		daemon *backend.Daemon
	)

	fmt.Printf("%s %s (built %s)\n",
		common.AppName,
		common.Version,
		common.BuildStamp)

	if daemon, err = backend.Summon(rc.cfg, true); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to initialize backend: %s\n",
			err.Error())
		return err
	}

	<-rc.ctx.Done()
	fmt.Println("Quitting on signal")

	return daemon.Banish()
} // func (rc *rootContext) runDaemon(_ *cobra.Command, _ []string) error

func (rc *rootContext) client() (*clientlib.Client, error) {
	return clientlib.NewClient(rc.server)
} // func (rc *rootContext) client() (*clientlib.Client, error)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Printf("%s %s (built %s)\n",
				common.AppName,
				common.Version,
				common.BuildStamp)
		},
	}
} // func newVersionCmd() *cobra.Command

func newDiscoverCmd(rc *rootContext) *cobra.Command {
	var timeout time.Duration

	var cmd = &cobra.Command{
		Use:   "discover",
		Short: "Look for backends on the local network",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			var ctx, cancel = context.WithTimeout(rc.ctx, timeout)
			defer cancel()

			var peers, err = clientlib.Discover(ctx)

			if err != nil {
				return err
			}

			for _, p := range peers {
				fmt.Println(p)
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "How long to wait for answers")

	return cmd
} // func newDiscoverCmd(rc *rootContext) *cobra.Command

func newSnoozeCmd(rc *rootContext) *cobra.Command {
	return &cobra.Command{
		Use:   "snooze REMINDER-ID",
		Short: "Postpone a reminder by ten minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var (
				err error
				id  int64
				c   *clientlib.Client
			)

			if id, err = strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("invalid reminder ID %q: %w", args[0], err)
			} else if c, err = rc.client(); err != nil {
				return err
			}

			var res, serr = c.Snooze(rc.ctx, id)

			if res != nil {
				fmt.Println(res.Message)
			}

			return serr
		},
	}
} // func newSnoozeCmd(rc *rootContext) *cobra.Command

func newUpcomingCmd(rc *rootContext) *cobra.Command {
	var days int

	var cmd = &cobra.Command{
		Use:   "upcoming",
		Short: "List the activities of the next few days",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			var c, err = rc.client()

			if err != nil {
				return err
			}

			var list, lerr = c.Upcoming(rc.ctx, days)

			if lerr != nil {
				return lerr
			}

			for _, a := range list {
				fmt.Printf("%s %s  %-12s %s\n",
					daytime.FormatDate(a.Date),
					daytime.FormatMinutes(a.TimeMinutes),
					a.Category,
					a.Description)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to look ahead")

	return cmd
} // func newUpcomingCmd(rc *rootContext) *cobra.Command

func newPermissionCmd(rc *rootContext) *cobra.Command {
	return &cobra.Command{
		Use:       "permission [on|off]",
		Short:     "Show or change the permission to schedule exact alarms",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(_ *cobra.Command, args []string) error {
			var c, err = rc.client()

			if err != nil {
				return err
			} else if len(args) == 0 {
				var allowed bool

				if allowed, err = c.ExactAlarms(rc.ctx); err != nil {
					return err
				}

				fmt.Printf("Exact alarms allowed: %t\n", allowed)
				return nil
			}

			var res, serr = c.SetExactAlarms(rc.ctx, args[0] == "on")

			if res != nil {
				fmt.Println(res.Message)
			}

			return serr
		},
	}
} // func newPermissionCmd(rc *rootContext) *cobra.Command
