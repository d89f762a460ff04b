package export

import (
	"context"
	"testing"

	"github.com/sceneforge/sceneport/pkg/download"
)

func TestStatePredicates(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		wantIdle   bool
		wantFailed bool
	}{
		{"zero value", State{}, true, false},
		{"busy", State{Busy: true}, false, false},
		{"failed", State{Error: "bad node"}, true, true},
		{"busy with stale error", State{Busy: true, Error: "bad node"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Idle(); got != tt.wantIdle {
				t.Errorf("Idle() = %v, want %v", got, tt.wantIdle)
			}
			if got := tt.state.Failed(); got != tt.wantFailed {
				t.Errorf("Failed() = %v, want %v", got, tt.wantFailed)
			}
		})
	}
}

func TestSubscribeCancel(t *testing.T) {
	discard := download.SinkFunc(func(context.Context, download.Payload) error { return nil })
	c := NewController(discard)

	updates, cancel := c.Subscribe()

	c.ClearError()
	select {
	case _, ok := <-updates:
		if !ok {
			t.Fatal("channel closed before cancel")
		}
	default:
		t.Fatal("expected a state update after ClearError")
	}

	cancel()
	if _, ok := <-updates; ok {
		t.Error("channel must close after cancel")
	}
	// Cancelling twice is harmless.
	cancel()
}
