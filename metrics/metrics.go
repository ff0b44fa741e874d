// /home/krylon/go/src/github.com/blicero/kidtrack/metrics/metrics.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-10 17:55:48 krylon>

// Package metrics provides the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kidtrack"

var (
	triggersScheduled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "triggers_scheduled_total",
		Help:      "Number of triggers registered, by namespace.",
	}, []string{"namespace"})

	triggersCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "triggers_cancelled_total",
		Help:      "Number of Reminders whose triggers were cancelled.",
	})

	schedulingFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "scheduling_failures_total",
		Help:      "Number of failed attempts to register a trigger, by reason.",
	}, []string{"reason"})

	triggersFired = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "triggers_fired_total",
		Help:      "Number of triggers delivered to the dispatcher, by kind (scheduled or manual).",
	}, []string{"kind"})

	pendingAlarms = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "alarm",
		Name:      "pending",
		Help:      "Number of alarms waiting to go off.",
	})

	notificationsPosted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "notifications_posted_total",
		Help:      "Number of notifications shown to the user, by content source.",
	}, []string{"source"})

	dispatchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "failures_total",
		Help:      "Number of dispatches that ended in an error or a panic.",
	})

	snoozes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snooze",
		Name:      "requests_total",
		Help:      "Number of snooze requests, by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		triggersScheduled,
		triggersCancelled,
		schedulingFailures,
		triggersFired,
		pendingAlarms,
		notificationsPosted,
		dispatchFailures,
		snoozes,
	)
}

// TriggerScheduled counts a trigger registered in the given namespace.
func TriggerScheduled(ns string) {
	triggersScheduled.WithLabelValues(ns).Inc()
}

// TriggerCancelled counts a cancelled Reminder.
func TriggerCancelled() {
	triggersCancelled.Inc()
}

// SchedulingFailed counts a failure to register a trigger.
func SchedulingFailed(reason string) {
	schedulingFailures.WithLabelValues(reason).Inc()
}

// TriggerFired counts a trigger that went off. Manual triggers are those
// set by snoozing.
func TriggerFired(manual bool) {
	if manual {
		triggersFired.WithLabelValues("manual").Inc()
	} else {
		triggersFired.WithLabelValues("scheduled").Inc()
	}
}

// SetPending records the number of pending alarms.
func SetPending(n int) {
	pendingAlarms.Set(float64(n))
}

// NotificationPosted counts a notification. Fallback is true if the
// Reminder or its Activity could not be resolved.
func NotificationPosted(fallback bool) {
	if fallback {
		notificationsPosted.WithLabelValues("fallback").Inc()
	} else {
		notificationsPosted.WithLabelValues("record").Inc()
	}
}

// DispatchFailed counts a dispatch that did not end in a notification.
func DispatchFailed() {
	dispatchFailures.Inc()
}

// Snoozed counts a snooze request.
func Snoozed(ok bool) {
	if ok {
		snoozes.WithLabelValues("scheduled").Inc()
	} else {
		snoozes.WithLabelValues("failed").Inc()
	}
}
