package container

import (
	"context"
	"errors"
	"testing"

	"mahjong-rtsim/common/config"
	"mahjong-rtsim/runtime/kifu"
)

func TestNewSimContainer_WithoutStores(t *testing.T) {
	conf := config.Default()
	c, err := NewSimContainer(context.Background(), conf)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if c.Worker == nil || c.BaseContainer != nil || c.Worker.Bridge != nil {
		t.Fatalf("kifu and nats are off by default")
	}
	if err := c.Worker.Recorder.Start(context.Background()); !errors.Is(err, kifu.ErrRecordingDisabled) {
		t.Fatalf("expected ErrRecordingDisabled, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
