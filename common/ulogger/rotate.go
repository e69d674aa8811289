/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package ulogger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// rotateLogs renames the log file when the day changes. Caller holds u.mu.
func (u *ULogger) rotateLogs() error {
	if u.logfile == "" || u.fileHandle == nil {
		return nil
	}

	currentDate := time.Now().Format("20060102")
	if u.currentLogDate == currentDate {
		return nil
	}

	previousLogDate := u.currentLogDate

	_ = u.fileHandle.Sync()
	_ = u.fileHandle.Close()
	u.fileHandle = nil

	if err := os.Rename(u.logfile, fmt.Sprintf("%s-%s", u.logfile, previousLogDate)); err != nil {
		u.logStdout = true
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	fh, err := os.OpenFile(u.logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		u.logStdout = true
		return fmt.Errorf("failed to open new log file after rotating: %w", err)
	}
	u.fileHandle = fh
	u.currentLogDate = currentDate

	return u.deleteOldLogs(time.Now())
}

// deleteOldLogs deletes rotated log files older than retainDays
func (u *ULogger) deleteOldLogs(now time.Time) error {
	if u.retainDays <= 1 {
		return nil
	}

	cutoffDate := now.AddDate(0, 0, -u.retainDays).Format("20060102")
	logDir := filepath.Dir(u.logfile)
	base := filepath.Base(u.logfile) + "-"

	files, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasPrefix(file.Name(), base) {
			continue
		}
		fileDate := strings.TrimPrefix(file.Name(), base)
		if len(fileDate) != 8 {
			continue
		}
		if fileDate < cutoffDate {
			if err = os.Remove(filepath.Join(logDir, file.Name())); err != nil {
				return fmt.Errorf("failed to delete old log file: %w", err)
			}
		}
	}
	return nil
}
