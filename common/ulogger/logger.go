//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/coinsage/coinsage/common/interfaces"
)

type ULogger struct {
	mu             sync.Mutex
	fileHandle     *os.File
	writer         io.Writer
	logfile        string
	logStdout      bool
	debug          bool
	prefix         string
	retainDays     int
	currentLogDate string
}

// open prepares the log file if one was requested
func (u *ULogger) open() (*ULogger, error) {
	if u.logfile == "" {
		// With nowhere else to write, force stdout logging
		if u.writer == nil {
			u.logStdout = true
		}
		return u, nil
	}

	u.logfile = filepath.Clean(u.logfile)

	dir := filepath.Dir(u.logfile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Rotation is keyed off the date the current file was last written
	if fileInfo, err := os.Stat(u.logfile); err == nil {
		u.currentLogDate = fileInfo.ModTime().Format("20060102")
	} else {
		u.currentLogDate = time.Now().Format("20060102")
	}

	fh, err := os.OpenFile(u.logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		// If unable to log to file, force stdout logging
		u.fileHandle = nil
		u.logStdout = true
		return u, nil
	}
	u.fileHandle = fh
	return u, nil
}

// Close flushes and closes the log file
func (u *ULogger) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.fileHandle != nil {
		_ = u.fileHandle.Sync()
		_ = u.fileHandle.Close()
		u.fileHandle = nil
	}
}

// formatMessage formats the log message with a timestamp
func (u *ULogger) formatMessage(eid uint32, level string, message string, fields interfaces.Fields) string {
	msg := fmt.Sprintf("%s %s [%s] %04d %s",
		time.Now().Format("2006-01-02 15:04:05"),
		u.prefix, level, eid, message)

	if fields != nil {
		if text := fields.ToText(); text != "" {
			msg += ": " + text
		}
	}
	return msg
}

// writeLog writes a log message and handles rotation if necessary
func (u *ULogger) writeLog(eid uint32, level string, message string, fields interfaces.Fields) {
	if level == "DEBUG" && !u.debug {
		return
	}

	tmp := u.formatMessage(eid, level, message, fields) + "\n"

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.rotateLogs(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "log rotation error: %s\n", err.Error())
	}

	if u.fileHandle != nil {
		_, _ = u.fileHandle.WriteString(tmp)
	}

	if u.writer != nil {
		_, _ = io.WriteString(u.writer, tmp)
	}

	if u.logStdout {
		_, _ = os.Stdout.WriteString(tmp)
	}
}

func (u *ULogger) Debug(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "DEBUG", message, fields)
}

func (u *ULogger) Info(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "INFO", message, fields)
}

func (u *ULogger) Warning(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "WARNING", message, fields)
}

func (u *ULogger) Error(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "ERROR", message, fields)
}

func (u *ULogger) Fatal(eid uint32, message string, fields interfaces.Fields) {
	u.writeLog(eid, "FATAL", message, fields)
}

func (u *ULogger) Debugf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "DEBUG", fmt.Sprintf(format, v...), nil)
}

func (u *ULogger) Infof(eid uint32, format string, v ...any) {
	u.writeLog(eid, "INFO", fmt.Sprintf(format, v...), nil)
}

func (u *ULogger) Warningf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "WARNING", fmt.Sprintf(format, v...), nil)
}

func (u *ULogger) Errorf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "ERROR", fmt.Sprintf(format, v...), nil)
}

func (u *ULogger) Fatalf(eid uint32, format string, v ...any) {
	u.writeLog(eid, "FATAL", fmt.Sprintf(format, v...), nil)
}
