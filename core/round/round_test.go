package round

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quorumkit/tendermint/core/cstime"
	"github.com/quorumkit/tendermint/core/message"
)

func TestNewStartsAtProposeStep(t *testing.T) {
	d := New(0, cstime.New(0), 1)
	require.Equal(t, message.StepPropose, d.Step)
}

func TestSetTimeoutFiresAndAck(t *testing.T) {
	start := cstime.New(0)
	d := &Data{Number: 0, Step: message.StepPropose, Start: start, blockTime: 0,
		timeouts: make(map[message.Step]*time.Timer), fired: make(chan message.Step, 3)}

	// Force an already-elapsed deadline by backdating Start far into the past.
	d.Start = cstime.Instant{}
	d.SetTimeout(message.StepPropose)

	select {
	case step := <-d.Fired():
		require.Equal(t, message.StepPropose, step)
	case <-time.After(time.Second):
		t.Fatal("timeout never fired")
	}
	d.Ack(message.StepPropose)
}

func TestCancelTimeoutPreventsFiring(t *testing.T) {
	d := New(0, cstime.New(0), 1)
	d.SetTimeout(message.StepPropose)
	d.CancelTimeout(message.StepPropose)

	select {
	case <-d.Fired():
		t.Fatal("cancelled timeout must not fire")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWaitUntilEndReturnsOnCancellation(t *testing.T) {
	d := New(0, cstime.New(0), 1000000)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.WaitUntilEnd(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitUntilEnd did not observe context cancellation")
	}
}
