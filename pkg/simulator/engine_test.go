package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngineStopIsIdempotent(t *testing.T) {
	engine := NewEngine(tickTestState(t), time.Second)

	engine.Stop()
	assert.NotPanics(t, func() { engine.Stop() })
	assert.Nil(t, engine.Latest())
}

func TestEngineRunPublishesAndStops(t *testing.T) {
	engine := NewEngine(tickTestState(t), 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		engine.Run()
		close(done)
	}()

	// Even outside service hours a tick publishes an (empty) snapshot
	assert.Eventually(t, func() bool {
		return engine.Latest() != nil
	}, time.Second, 10*time.Millisecond)

	engine.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}
