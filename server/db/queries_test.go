//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package db

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/coinsage/coinsage/common/null"
	"github.com/coinsage/coinsage/common/schema"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"), null.Logger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func TestAddQueryAssignsIDAndTime(t *testing.T) {
	d := openTest(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	d.setClock(func() time.Time { return fixed })

	q, err := d.AddQuery(schema.QueryLog{UserID: "42", Command: schema.CommandPrice, TokenID: "PEPE"})
	if err != nil {
		t.Fatalf("AddQuery: %v", err)
	}
	if !strings.HasPrefix(q.ID, "Q-") {
		t.Errorf("ID = %q, want Q- prefix", q.ID)
	}
	if !q.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", q.CreatedAt, fixed)
	}

	if _, err := d.AddQuery(schema.QueryLog{Command: "bogus"}); err == nil {
		t.Error("expected error for invalid command")
	}
}

func TestRecentQueriesNewestFirst(t *testing.T) {
	d := openTest(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	add := func(offset time.Duration, cmd, addr, id string) {
		t.Helper()
		_, err := d.AddQuery(schema.QueryLog{
			ID: id, Command: cmd, TokenAddress: addr, TokenID: id, CreatedAt: base.Add(offset),
			Response: map[string]any{"price": "1.00"},
		})
		if err != nil {
			t.Fatalf("AddQuery: %v", err)
		}
	}
	add(1*time.Minute, schema.CommandPrice, "0xaaa", "A")
	add(3*time.Minute, schema.CommandPrice, "0xbbb", "B")
	add(2*time.Minute, schema.CommandPrice, "0xaaa", "C")
	add(4*time.Minute, schema.CommandAnalyze, "0xaaa", "D")

	ids := func(qs []schema.QueryLog) []string {
		var r []string
		for _, q := range qs {
			r = append(r, q.ID)
		}
		return r
	}

	all, err := d.RecentQueries(schema.QueryFilter{Command: schema.CommandPrice})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"B", "C", "A"}, ids(all)); diff != "" {
		t.Errorf("price queries mismatch (-want +got):\n%s", diff)
	}

	byAddr, _ := d.RecentQueries(schema.QueryFilter{Command: schema.CommandPrice, TokenAddress: "0xaaa"})
	if diff := cmp.Diff([]string{"C", "A"}, ids(byAddr)); diff != "" {
		t.Errorf("filtered queries mismatch (-want +got):\n%s", diff)
	}

	limited, _ := d.RecentQueries(schema.QueryFilter{Command: schema.CommandPrice, Limit: 1})
	if diff := cmp.Diff([]string{"B"}, ids(limited)); diff != "" {
		t.Errorf("limited queries mismatch (-want +got):\n%s", diff)
	}

	if got := all[0].Response["price"]; got != "1.00" {
		t.Errorf("response round trip = %v", got)
	}

	empty, err := openTest(t).RecentQueries(schema.QueryFilter{Command: schema.CommandAnalyze})
	if err != nil || len(empty) != 0 {
		t.Errorf("empty db = %v, %v", empty, err)
	}
}

func TestPruneQueries(t *testing.T) {
	d := openTest(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	d.setClock(func() time.Time { return now })

	for i, age := range []int{100, 91, 89, 1} {
		_, err := d.AddQuery(schema.QueryLog{
			ID:        string(rune('a' + i)),
			Command:   schema.CommandAnalyze,
			CreatedAt: now.AddDate(0, 0, -age),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	removed, err := d.PruneQueries(90)
	if err != nil {
		t.Fatalf("PruneQueries: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	left, _ := d.RecentQueries(schema.QueryFilter{Command: schema.CommandAnalyze})
	if len(left) != 2 {
		t.Errorf("remaining = %d, want 2", len(left))
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := Open(path, null.Logger())
	if err != nil {
		t.Fatal(err)
	}
	if _, err = d.AddQuery(schema.QueryLog{Command: schema.CommandPrice}); err != nil {
		t.Fatal(err)
	}
	d.Close()

	d, err = Open(path, null.Logger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d.Close()
	qs, _ := d.RecentQueries(schema.QueryFilter{Command: schema.CommandPrice})
	if len(qs) != 1 {
		t.Errorf("got %d queries after reopen, want 1", len(qs))
	}
}
