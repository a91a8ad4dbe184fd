package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"

	"report-portal/internal/telemetry/domain"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewKafkaProducer_Disabled(t *testing.T) {
	if p := NewKafkaProducer(nil, "topic"); p != nil {
		t.Error("no brokers should disable the producer")
	}
	if p := NewKafkaProducer([]string{"localhost:9092"}, ""); p != nil {
		t.Error("empty topic should disable the producer")
	}
	var p *KafkaProducer
	if err := p.Emit(context.Background(), &domain.Event{}); err != nil {
		t.Errorf("nil producer Emit: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("nil producer Close: %v", err)
	}
}

func TestKafkaProducer_EmitKeysByWorkspace(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaProducer{writer: w, topic: "portal-telemetry"}

	if err := p.Emit(context.Background(), &domain.Event{WorkspaceID: "ws-9", EventType: domain.EventTypeGRPCRequest}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "ws-9" {
		t.Errorf("key = %q, want ws-9", w.msgs[0].Key)
	}
	ev, err := domain.Unmarshal(w.msgs[0].Value)
	if err != nil {
		t.Fatalf("value does not decode: %v", err)
	}
	if ev.EventType != domain.EventTypeGRPCRequest {
		t.Errorf("eventType = %q", ev.EventType)
	}
	if err := p.Close(); err != nil || !w.closed {
		t.Errorf("Close: err=%v closed=%v", err, w.closed)
	}
}

func TestKafkaProducer_EmitError(t *testing.T) {
	want := errors.New("leader not available")
	p := &KafkaProducer{writer: &fakeWriter{err: want}}
	if err := p.Emit(context.Background(), &domain.Event{WorkspaceID: "ws-1"}); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}
