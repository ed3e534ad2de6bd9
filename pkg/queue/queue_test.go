package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
)

type captureHandler struct {
	kind string
	got  []string
}

func (h *captureHandler) Kind() string { return h.kind }

func (h *captureHandler) Handle(ctx context.Context, payload json.RawMessage) error {
	h.got = append(h.got, string(payload))
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestRegisterIgnoresDuplicateKind(t *testing.T) {
	q := NewRedisQueue(testLogger(t), Config{}, nil)
	first := &captureHandler{kind: "snapshot.capture"}
	second := &captureHandler{kind: "snapshot.capture"}

	q.Register(first)
	q.Register(second)

	q.run(Task{ID: "t1", Kind: "snapshot.capture", Payload: json.RawMessage(`{}`)})

	if len(first.got) != 1 {
		t.Errorf("first handler calls = %d, want 1", len(first.got))
	}
	if len(second.got) != 0 {
		t.Errorf("second handler calls = %d, want 0", len(second.got))
	}
}

func TestRunDispatchesByKind(t *testing.T) {
	q := NewRedisQueue(testLogger(t), Config{}, nil)
	capture := &captureHandler{kind: "snapshot.capture"}
	other := &captureHandler{kind: "report.build"}
	q.Register(capture)
	q.Register(other)

	q.run(Task{ID: "t1", Kind: "report.build", Payload: json.RawMessage(`{"n":1}`)})

	if len(capture.got) != 0 {
		t.Errorf("capture handler calls = %d, want 0", len(capture.got))
	}
	if len(other.got) != 1 || other.got[0] != `{"n":1}` {
		t.Errorf("report handler got %v", other.got)
	}
}

func TestRunUnknownKindDoesNotPanic(t *testing.T) {
	q := NewRedisQueue(testLogger(t), Config{}, nil)

	q.run(Task{ID: "t1", Kind: "nobody.home"})
}

func TestPublishRequiresStart(t *testing.T) {
	q := NewRedisQueue(testLogger(t), Config{}, nil)

	if err := q.Publish(context.Background(), "snapshot.capture", struct{}{}); err == nil {
		t.Fatal("Publish() on a stopped queue should fail")
	}
}
