//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package queue provides a simple in-memory queue for query-log records. Chat
// handlers add records without blocking and a single writer drains them into
// storage.
package queue

import (
	"context"
	"sync"

	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
	"github.com/coinsage/coinsage/common/schema"
)

// Sink stores query-log records
type Sink interface {
	LogQuery(q schema.QueryLog)
}

// Queue holds the channel used as memory queue. Once Run has flushed on
// shutdown the queue is closed and later records are dropped with a warning.
type Queue struct {
	mu       sync.Mutex
	closed   bool
	messages chan schema.QueryLog
	logger   interfaces.Logger
}

// New creates a queue with a buffered channel for QueryLog records
func New(bufferSize int, logger interfaces.Logger) *Queue {
	if bufferSize < 1 {
		bufferSize = 1
	}
	if logger == nil {
		logger = null.Logger()
	}
	return &Queue{
		messages: make(chan schema.QueryLog, bufferSize),
		logger:   logger,
	}
}

// LogQuery adds a record to the queue. When the queue is full the record is
// dropped so that a slow database never delays a reply.
func (q *Queue) LogQuery(rec schema.QueryLog) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		q.dropped(3022, "query queue closed, record dropped", rec)
		return
	}

	select {
	case q.messages <- rec:
	default:
		q.dropped(3020, "query queue full, record dropped", rec)
	}
}

func (q *Queue) dropped(eid uint32, msg string, rec schema.QueryLog) {
	q.logger.Warning(eid, msg, fields.NewFields(
		fields.NewField("command", rec.Command),
		fields.NewField("user", rec.UserID),
		fields.NewField("token_id", rec.TokenID)))
}

// Read is a non-blocking function that returns an item from the queue
func (q *Queue) Read() (schema.QueryLog, bool) {
	select {
	case rec := <-q.messages:
		return rec, true
	default:
		return schema.QueryLog{}, false
	}
}

// Size returns the number of records currently in the queue
func (q *Queue) Size() int {
	return len(q.messages)
}

// Run writes queued records to sink until ctx is cancelled, then closes the
// queue and flushes whatever is still buffered. Cancel ctx only after every
// producer has stopped.
func (q *Queue) Run(ctx context.Context, sink Sink) {
	for {
		select {
		case rec := <-q.messages:
			sink.LogQuery(rec)
		case <-ctx.Done():
			q.flush(sink)
			return
		}
	}
}

func (q *Queue) flush(sink Sink) {
	// No send can start once closed is set, so the drain below sees every record
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	n := 0
	for {
		rec, ok := q.Read()
		if !ok {
			break
		}
		sink.LogQuery(rec)
		n++
	}
	if n > 0 {
		q.logger.Debugf(3021, "flushed %d queued query records", n)
	}
}
