// /home/krylon/go/src/github.com/blicero/kidtrack/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 22:40:19 krylon>

package backend

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/blicero/kidtrack/daytime"
	"github.com/blicero/kidtrack/objects"
	"github.com/blicero/kidtrack/objects/uistate"
	"github.com/blicero/kidtrack/service"
	"github.com/blicero/kidtrack/snooze"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultUpcomingDays = 7

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/profile/add", d.handleProfileAdd).Methods(http.MethodPost)
	d.router.HandleFunc("/profile/all", d.handleProfileGetAll).Methods(http.MethodGet)
	d.router.HandleFunc("/profile/{id:(?:\\d+)}/delete", d.handleProfileDelete).Methods(http.MethodPost)

	d.router.HandleFunc("/activity/add", d.handleActivityAdd).Methods(http.MethodPost)
	d.router.HandleFunc("/activity/all", d.handleActivityGetAll).Methods(http.MethodGet)
	d.router.HandleFunc("/activity/upcoming", d.handleActivityGetUpcoming).Methods(http.MethodGet)
	d.router.HandleFunc("/activity/{id:(?:\\d+)}", d.handleActivityGet).Methods(http.MethodGet)
	d.router.HandleFunc("/activity/{id:(?:\\d+)}/update", d.handleActivityUpdate).Methods(http.MethodPost)
	d.router.HandleFunc("/activity/{id:(?:\\d+)}/delete", d.handleActivityDelete).Methods(http.MethodPost)

	d.router.HandleFunc("/reminder/add", d.handleReminderAdd).Methods(http.MethodPost)
	d.router.HandleFunc("/reminder/all", d.handleReminderGetAll).Methods(http.MethodGet)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}", d.handleReminderGet).Methods(http.MethodGet)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/state", d.handleReminderState).Methods(http.MethodGet)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/update", d.handleReminderUpdate).Methods(http.MethodPost)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/delete", d.handleReminderDelete).Methods(http.MethodPost)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/snooze", d.handleReminderSnooze).Methods(http.MethodPost)

	d.router.HandleFunc("/report", d.handleReport).Methods(http.MethodGet)

	d.router.HandleFunc("/alarm/permission", d.handlePermissionGet).Methods(http.MethodGet)
	d.router.HandleFunc("/alarm/permission", d.handlePermissionSet).Methods(http.MethodPost)

	d.router.Handle("/metrics", promhttp.Handler())

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web frontend is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) trace(r *http.Request) {
	d.log.Printf("[TRACE] Handle %s %s from %s\n",
		r.Method,
		r.URL,
		r.RemoteAddr)
} // func (d *Daemon) trace(r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Profiles /////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleProfileAdd(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		p   *objects.Profile
		res *service.Outcome
	)

	if p, err = profileFromForm(r); err == nil {
		res, err = d.srv.CreateProfile(r.Context(), p)
	}

	d.sendOutcome(w, res, err)
} // func (d *Daemon) handleProfileAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleProfileGetAll(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var list, err = d.srv.Profiles(r.Context())

	sendState(d, w, list, err)
} // func (d *Daemon) handleProfileGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleProfileDelete(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		id  int64
		res *service.Outcome
	)

	if id, err = pathID(r); err == nil {
		res, err = d.srv.DeleteProfile(r.Context(), id)
	}

	d.sendOutcome(w, res, err)
} // func (d *Daemon) handleProfileDelete(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Activities ///////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleActivityAdd(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err    error
		a      *objects.Activity
		snooze bool
		res    *service.Outcome
	)

	if a, snooze, err = d.activityFromForm(r); err == nil {
		res, err = d.srv.CreateActivity(r.Context(), a, snooze)
	}

	d.sendOutcome(w, res, err)
} // func (d *Daemon) handleActivityAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleActivityGetAll(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err       error
		profileID int64
		list      []*objects.Activity
	)

	if profileID, err = queryInt(r, "profile", 0); err == nil {
		list, err = d.srv.Activities(r.Context(), profileID)
	}

	sendState(d, w, list, err)
} // func (d *Daemon) handleActivityGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleActivityGetUpcoming(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err  error
		days int64
		list []*objects.Activity
	)

	if days, err = queryInt(r, "days", defaultUpcomingDays); err == nil {
		list, err = d.srv.Upcoming(r.Context(), int(days))
	}

	sendState(d, w, list, err)
} // func (d *Daemon) handleActivityGetUpcoming(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleActivityGet(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		id  int64
		a   *objects.Activity
	)

	if id, err = pathID(r); err == nil {
		a, err = d.srv.Activity(r.Context(), id)
	}

	sendState(d, w, a, err)
} // func (d *Daemon) handleActivityGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleActivityUpdate(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		id  int64
		a   *objects.Activity
		res *service.Outcome
	)

	if id, err = pathID(r); err != nil {
		goto SEND_RESPONSE
	} else if a, _, err = d.activityFromForm(r); err != nil {
		goto SEND_RESPONSE
	}

	a.ID = id
	res, err = d.srv.UpdateActivity(r.Context(), a)

SEND_RESPONSE:
	d.sendOutcome(w, res, err)
} // func (d *Daemon) handleActivityUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleActivityDelete(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		id  int64
		res *service.Outcome
	)

	if id, err = pathID(r); err == nil {
		res, err = d.srv.DeleteActivity(r.Context(), id)
	}

	d.sendOutcome(w, res, err)
} // func (d *Daemon) handleActivityDelete(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Reminders ////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleReminderAdd(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		rem *objects.Reminder
		res *service.Outcome
	)

	if rem, err = d.reminderFromForm(r); err == nil {
		res, err = d.srv.CreateReminder(r.Context(), rem)
	}

	d.sendOutcome(w, res, err)
} // func (d *Daemon) handleReminderAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGetAll(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err        error
		activityID int64
		list       []*objects.Reminder
	)

	if activityID, err = queryInt(r, "activity", 0); err == nil {
		list, err = d.srv.Reminders(r.Context(), activityID)
	}

	sendState(d, w, list, err)
} // func (d *Daemon) handleReminderGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGet(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		id  int64
		rem *objects.Reminder
	)

	if id, err = pathID(r); err == nil {
		rem, err = d.srv.Reminder(r.Context(), id)
	}

	sendState(d, w, rem, err)
} // func (d *Daemon) handleReminderGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderState(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err   error
		id    int64
		state string
	)

	if id, err = pathID(r); err != nil {
		goto SEND_RESPONSE
	} else if _, err = d.srv.Reminder(r.Context(), id); err != nil {
		goto SEND_RESPONSE
	}

	state = d.reg.State(id).String()

SEND_RESPONSE:
	sendState(d, w, state, err)
} // func (d *Daemon) handleReminderState(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderUpdate(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		id  int64
		rem *objects.Reminder
		res *service.Outcome
	)

	if id, err = pathID(r); err != nil {
		goto SEND_RESPONSE
	} else if rem, err = d.reminderFromForm(r); err != nil {
		goto SEND_RESPONSE
	}

	rem.ID = id
	res, err = d.srv.UpdateReminder(r.Context(), rem)

SEND_RESPONSE:
	d.sendOutcome(w, res, err)
} // func (d *Daemon) handleReminderUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		id  int64
		res *service.Outcome
	)

	if id, err = pathID(r); err == nil {
		res, err = d.srv.DeleteReminder(r.Context(), id)
	}

	d.sendOutcome(w, res, err)
} // func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderSnooze(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err error
		id  int64
		rem *objects.Reminder
		res objects.Response
	)

	if id, err = pathID(r); err != nil {
		goto SEND_ERROR
	} else if rem, err = d.srv.Reminder(r.Context(), id); err != nil {
		goto SEND_ERROR
	}

	res.ID = rem.ID

	if err = d.snoozer.Snooze(r.Context(), objects.SnoozeReminder{
		ReminderID: rem.ID,
		ActivityID: rem.ActivityID,
	}); err != nil {
		res.Message = "Failed to snooze reminder: " + err.Error()
	} else {
		res.Status = true
		res.Scheduled = true
		res.FireAt = time.Now().In(d.loc).Add(snooze.Delay)
		res.Message = "Reminder snoozed for 10 minutes"
	}

	d.sendResponseJSON(w, http.StatusOK, &res)
	return

SEND_ERROR:
	d.sendOutcome(w, nil, err)
} // func (d *Daemon) handleReminderSnooze(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Reports and settings /////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) handleReport(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var rep, err = d.srv.Report(r.Context(), time.Now().In(d.loc))

	sendState(d, w, rep, err)
} // func (d *Daemon) handleReport(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePermissionGet(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	sendState(d, w, d.reg.CanScheduleExact(), nil)
} // func (d *Daemon) handlePermissionGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePermissionSet(w http.ResponseWriter, r *http.Request) {
	d.trace(r)

	var (
		err     error
		allowed bool
		res     objects.Response
	)

	if err = r.ParseForm(); err != nil {
		goto SEND_ERROR
	} else if allowed, err = formBool(r, "allowed", true); err != nil {
		goto SEND_ERROR
	}

	d.clock.SetExactPermission(allowed)
	res.Status = true

	if allowed {
		res.Message = "Exact alarms are allowed"
	} else {
		res.Message = service.MsgPermissionDenied
	}

	d.sendResponseJSON(w, http.StatusOK, &res)
	return

SEND_ERROR:
	d.sendOutcome(w, nil, err)
} // func (d *Daemon) handlePermissionSet(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

// statusFor maps an error to the HTTP status sent to the client.
func statusFor(err error) int {
	var (
		fe *daytime.FormatError
		ve *service.ValidationError
	)

	switch {
	case errors.As(err, &fe), errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
} // func statusFor(err error) int

func pathID(r *http.Request) (int64, error) {
	var (
		vars  = mux.Vars(r)
		idstr = vars["id"]
	)

	var id, err = strconv.ParseInt(idstr, 10, 64)
	if err != nil {
		return 0, &service.ValidationError{
			Field:   "id",
			Message: "Invalid ID " + strconv.Quote(idstr),
		}
	}

	return id, nil
} // func pathID(r *http.Request) (int64, error)

func (d *Daemon) sendOutcome(w http.ResponseWriter, res *service.Outcome, err error) {
	var (
		status   = http.StatusOK
		response objects.Response
	)

	if err != nil {
		status = statusFor(err)
		response.Message = err.Error()
		d.log.Printf("[ERROR] Request failed (%d): %s\n",
			status,
			err.Error())
	} else {
		response.ID = res.ID
		response.Status = true
		response.Message = res.Message
		response.Scheduled = res.Scheduled
		response.FireAt = res.FireAt
	}

	d.sendResponseJSON(w, status, &response)
} // func (d *Daemon) sendOutcome(w http.ResponseWriter, res *service.Outcome, err error)

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, status int, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, status int, res *objects.Response)

// sendState sends the outcome of a query wrapped in a uistate.Envelope.
func sendState[T any](d *Daemon, w http.ResponseWriter, data T, err error) {
	var (
		buf    []byte
		status = http.StatusOK
		env    = uistate.Wrap[T](uistate.Of(data, err))
	)

	if err != nil {
		status = statusFor(err)
		d.log.Printf("[ERROR] Query failed (%d): %s\n",
			status,
			err.Error())
	}

	if buf, err = ffjson.Marshal(&env); err != nil {
		d.log.Printf("[ERROR] Cannot serialize %T: %s\n",
			data,
			err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf) // nolint: errcheck
} // func sendState[T any](d *Daemon, w http.ResponseWriter, data T, err error)
