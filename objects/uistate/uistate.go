// /home/krylon/go/src/github.com/blicero/kidtrack/objects/uistate/uistate.go
// -*- mode: go; coding: utf-8; -*-
// Created on 23. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-06 20:31:44 krylon>

// Package uistate provides the states a view of the data can be in
// while a client waits for it: Loading, Success, or Failure.
package uistate

// Kind names a State.
type Kind string

// The Kinds of State.
const (
	KindLoading Kind = "loading"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// State is one of Loading, Success or Failure.
type State[T any] interface {
	Kind() Kind
	state()
}

// Loading means the data has been requested but is not available, yet.
type Loading[T any] struct{}

// Kind implements State
func (Loading[T]) Kind() Kind { return KindLoading }
func (Loading[T]) state()     {}

// Success carries the requested data.
type Success[T any] struct {
	Data T
}

// Kind implements State
func (Success[T]) Kind() Kind { return KindSuccess }
func (Success[T]) state()     {}

// Failure means the data could not be retrieved.
type Failure[T any] struct {
	Message string
	Err     error
}

// Kind implements State
func (Failure[T]) Kind() Kind { return KindError }
func (Failure[T]) state()     {}

// Of returns Success if err is nil, Failure otherwise.
func Of[T any](data T, err error) State[T] {
	if err != nil {
		return Failure[T]{Message: err.Error(), Err: err}
	}

	return Success[T]{Data: data}
} // func Of[T any](data T, err error) State[T]

// Envelope is the wire form of a State.
type Envelope[T any] struct {
	State   Kind
	Data    *T     `json:",omitempty"`
	Message string `json:",omitempty"`
}

// Wrap converts a State into its Envelope.
func Wrap[T any](s State[T]) Envelope[T] {
	switch v := s.(type) {
	case Success[T]:
		return Envelope[T]{State: KindSuccess, Data: &v.Data}
	case Failure[T]:
		return Envelope[T]{State: KindError, Message: v.Message}
	default:
		return Envelope[T]{State: KindLoading}
	}
} // func Wrap[T any](s State[T]) Envelope[T]

// Unwrap is the inverse of Wrap. Errors are restored as their message only.
func (e Envelope[T]) Unwrap() State[T] {
	switch e.State {
	case KindSuccess:
		var data T
		if e.Data != nil {
			data = *e.Data
		}
		return Success[T]{Data: data}
	case KindError:
		return Failure[T]{Message: e.Message}
	default:
		return Loading[T]{}
	}
} // func (e Envelope[T]) Unwrap() State[T]
