/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package ulogger implements interfaces.Logger. Messages are written as single
// lines to a log file, stdout, or any io.Writer, and the log file is rotated
// daily with old files removed after the retention period.
package ulogger

import (
	"io"

	"github.com/coinsage/coinsage/common/interfaces"
)

// This package implements interfaces.Logger
var _ interfaces.Logger = (*ULogger)(nil)

// Option is a function that configures a ULogger
type Option func(*ULogger) error

// New creates a new instance of ULogger with the provided options
func New(options ...Option) (*ULogger, error) {
	u := &ULogger{retainDays: 30}

	for _, option := range options {
		if err := option(u); err != nil {
			return nil, err
		}
	}

	return u.open()
}

// WithPrefix sets a process name or similar short identifier
func WithPrefix(prefix string) Option {
	return func(u *ULogger) error {
		u.prefix = prefix
		return nil
	}
}

// WithLogFile sets the log file
func WithLogFile(logfile string) Option {
	return func(u *ULogger) error {
		u.logfile = logfile
		return nil
	}
}

// WithLogStdout enables or disables logging to stdout
func WithLogStdout(logStdout bool) Option {
	return func(u *ULogger) error {
		u.logStdout = logStdout
		return nil
	}
}

// WithWriter sends log lines to w in addition to any file. Tests use it to
// capture output.
func WithWriter(w io.Writer) Option {
	return func(u *ULogger) error {
		u.writer = w
		return nil
	}
}

// WithDebug enables or disables debug logging
func WithDebug(debug bool) Option {
	return func(u *ULogger) error {
		u.debug = debug
		return nil
	}
}

// WithRetention sets the number of days to retain logs
func WithRetention(retainDays int) Option {
	return func(u *ULogger) error {
		u.retainDays = retainDays
		return nil
	}
}
