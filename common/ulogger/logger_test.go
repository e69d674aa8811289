//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package ulogger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coinsage/coinsage/common/fields"
)

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(WithPrefix("coinsage"), WithWriter(&buf))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	l.Info(4001, "cache hit", fields.NewFields(fields.NewField("key", "price:pepe")))
	line := buf.String()

	for _, want := range []string{"coinsage", "[INFO]", "4001", "cache hit: key=price:pepe"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestDebugGating(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(WithWriter(&buf))
	l.Debugf(1, "hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug line written with debug disabled: %q", buf.String())
	}

	l, _ = New(WithWriter(&buf), WithDebug(true))
	l.Debugf(1, "shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Fatalf("debug line missing with debug enabled: %q", buf.String())
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "coinsage.log")
	l, err := New(WithLogFile(path), WithLogStdout(false))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.Warningf(7, "upstream slow")
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "[WARNING] 0007 upstream slow") {
		t.Errorf("unexpected log contents %q", data)
	}
}

func TestDeleteOldLogs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coinsage.log")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	old := path + "-" + now.AddDate(0, 0, -40).Format("20060102")
	recent := path + "-" + now.AddDate(0, 0, -2).Format("20060102")
	for _, f := range []string{old, recent} {
		if err := os.WriteFile(f, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	u := &ULogger{logfile: path, retainDays: 30}
	if err := u.deleteOldLogs(now); err != nil {
		t.Fatalf("deleteOldLogs() error: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("old log %s not removed", old)
	}
	if _, err := os.Stat(recent); err != nil {
		t.Errorf("recent log %s removed: %v", recent, err)
	}
}
