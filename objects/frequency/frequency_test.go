// /home/krylon/go/src/github.com/blicero/kidtrack/objects/frequency/frequency_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 09. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-09-29 20:15:31 krylon>

package frequency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	var cases = map[string]Frequency{
		"once":     Once,
		"ONCE":     Once,
		"Daily":    Daily,
		" weekly ": Weekly,
		"MonThly":  Monthly,
		"yearly":   Invalid,
		"":         Invalid,
		"invalid":  Invalid,
	}

	for input, expect := range cases {
		assert.Equal(t, expect, Parse(input), "Parse(%q)", input)
	}
} // func TestParse(t *testing.T)

func TestText(t *testing.T) {
	var f Frequency

	assert.NoError(t, f.UnmarshalText([]byte("Weekly")))
	assert.Equal(t, Weekly, f)

	var b, err = Monthly.MarshalText()

	assert.NoError(t, err)
	assert.Equal(t, "monthly", string(b))
	assert.Equal(t, "invalid", Frequency(42).String())
	assert.False(t, Once.Recurring())
	assert.True(t, Invalid.Recurring())
} // func TestText(t *testing.T)
