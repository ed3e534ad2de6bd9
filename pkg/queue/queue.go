// Package queue moves background work through redis, so a capture
// scheduled in one process can be handled by workers in another and
// survives a restart in between.
package queue

import (
	"context"
	"encoding/json"
	"time"
)

// Publisher enqueues a task for asynchronous handling.
type Publisher interface {
	Publish(ctx context.Context, kind string, payload interface{}) error
}

// Handler consumes tasks of a single kind.
type Handler interface {
	// Kind returns the task kind this handler owns.
	Kind() string

	// Handle processes one task payload.
	Handle(ctx context.Context, payload json.RawMessage) error
}

// Config bounds the worker pool and the retry policy.
type Config struct {
	Workers    int
	RetryLimit int
	RetryDelay time.Duration
}

// Task is the wire form of one unit of queued work. The payload stays
// raw JSON end to end; only the handler that owns the kind decodes it.
type Task struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
	Enqueued time.Time       `json:"enqueued"`
}
