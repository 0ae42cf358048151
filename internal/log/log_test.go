// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{in: "trace", want: log.DebugLevel},
		{in: "DEBUG", want: log.DebugLevel},
		{in: "info", want: log.InfoLevel},
		{in: "warn", want: log.WarnLevel},
		{in: "fatal", want: log.FatalLevel},
		{in: "", want: log.ErrorLevel},
		{in: "bogus", want: log.ErrorLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "trace")
	defer InitLoggerTo(&buf, "error")

	Debugf("loaded %d files", 2)
	Tracef("walk %s", "a.b")
	log.WithField("path", "x").Warn("skipped")

	out := buf.String()
	assert.Regexp(t, `(?m)^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} D loaded 2 files$`, out)
	assert.Regexp(t, `(?m) T walk a\.b$`, out)
	assert.Regexp(t, `(?m) W skipped path=x$`, out)
}

func TestHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "error")

	Infof("quiet")
	Errorf("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), " E loud")
}
