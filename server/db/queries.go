//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/coinsage/coinsage/common/schema"
)

var errStop = errors.New("stop")

// AddQuery adds a query to the database. Each command has its own child bucket and the
// creation time plus the query ID is used as the key.
func (d *DB) AddQuery(q schema.QueryLog) (schema.QueryLog, error) {
	if !schema.ValidCommand(q.Command) {
		return q, fmt.Errorf("invalid command %q", q.Command)
	}

	// Generate a UUID for the query ID if it is not set
	if q.ID == "" {
		q.ID = "Q-" + uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = d.now().UTC()
	}

	err := d.db.Update(func(tx *bbolt.Tx) error {

		// Get or create the parent bucket
		parentBucket, err := tx.CreateBucketIfNotExists([]byte(BucketQueries))
		if err != nil {
			return fmt.Errorf("failed to create parent bucket: %w", err)
		}

		// Get or create the child bucket for the command
		childBucket, err := parentBucket.CreateBucketIfNotExists([]byte(q.Command))
		if err != nil {
			return fmt.Errorf("failed to create child bucket: %w", err)
		}

		data, err := d.serialize(q)
		if err != nil {
			return fmt.Errorf("failed to serialize query: %w", err)
		}

		return childBucket.Put(queryKey(q.CreatedAt, q.ID), data)
	})
	return q, err
}

// ForEachQuery calls fn for each query matching the filter, newest first,
// until fn returns false or the filter limit is reached
func (d *DB) ForEachQuery(filter schema.QueryFilter, fn func(schema.QueryLog) bool) error {
	if !schema.ValidCommand(filter.Command) {
		return fmt.Errorf("invalid command %q", filter.Command)
	}

	count := 0
	err := d.db.View(func(tx *bbolt.Tx) error {
		parentBucket := tx.Bucket([]byte(BucketQueries))
		if parentBucket == nil {
			return fmt.Errorf("parent bucket not found")
		}

		// No queries of this kind have been recorded
		childBucket := parentBucket.Bucket([]byte(filter.Command))
		if childBucket == nil {
			return nil
		}

		c := childBucket.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var q schema.QueryLog
			if err := d.deserialize(v, &q); err != nil {
				return fmt.Errorf("failed to deserialize query: %w", err)
			}
			if !filter.Matches(q) {
				continue
			}
			if !fn(q) {
				return errStop
			}
			count++
			if filter.Limit > 0 && count >= filter.Limit {
				return errStop
			}
		}
		return nil
	})
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}

// RecentQueries returns queries matching the filter, newest first
func (d *DB) RecentQueries(filter schema.QueryFilter) ([]schema.QueryLog, error) {
	queries := []schema.QueryLog{}
	err := d.ForEachQuery(filter, func(q schema.QueryLog) bool {
		queries = append(queries, q)
		return true
	})
	return queries, err
}

// PruneQueries removes queries older than the specified number of days and
// returns the number removed
func (d *DB) PruneQueries(days int) (int, error) {
	cutoff := d.now().AddDate(0, 0, -days)
	removed := 0

	err := d.db.Update(func(tx *bbolt.Tx) error {

		// Get the parent bucket
		parentBucket := tx.Bucket([]byte(BucketQueries))
		if parentBucket == nil {
			return fmt.Errorf("parent bucket not found")
		}

		// Iterate over all child buckets
		return parentBucket.ForEach(func(command, _ []byte) error {
			childBucket := parentBucket.Bucket(command)
			if childBucket == nil {
				return nil
			}

			// Keys are time ordered, so stop at the first one inside the window
			var keysToDelete [][]byte
			c := childBucket.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				t, err := keyTime(k)
				if err != nil {
					return err
				}
				if !t.Before(cutoff) {
					break
				}
				keysToDelete = append(keysToDelete, append([]byte(nil), k...))
			}

			// Delete the collected keys
			for _, k := range keysToDelete {
				if err := childBucket.Delete(k); err != nil {
					return fmt.Errorf("failed to delete query: %w", err)
				}
			}
			removed += len(keysToDelete)
			return nil
		})
	})
	return removed, err
}

// setClock replaces the time source
func (d *DB) setClock(now func() time.Time) {
	d.now = now
}
