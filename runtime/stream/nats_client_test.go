package stream

import (
	"errors"
	"testing"
)

func TestNatsBridge_NotConnected(t *testing.T) {
	nb := NewNatsBridge("nats://127.0.0.1:1", "rtsim.snapshot", "rtsim.board")
	if nb.IsConnected() {
		t.Fatalf("bridge should start disconnected")
	}
	if err := nb.Publish([]byte(`{}`)); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if err := nb.Close(); err != nil {
		t.Fatalf("close without run: %v", err)
	}
}

func TestNatsBridge_RunUnreachable(t *testing.T) {
	nb := NewNatsBridge("nats://127.0.0.1:1", "rtsim.snapshot", "rtsim.board")
	if err := nb.Run(func([]byte) {}); err == nil {
		t.Fatalf("expected a connect error")
	}
}
