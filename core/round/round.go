// Package round holds per-round state: the round number, current step, its
// derived end time, and the armed step timeouts, exposed as a single
// future that fires at the earliest pending one.
package round

import (
	"context"
	"time"

	"github.com/quorumkit/tendermint/core/cstime"
	"github.com/quorumkit/tendermint/core/message"
	"github.com/quorumkit/tendermint/ext"
)

// Data is the mutable state of one round within a height.
type Data struct {
	Number ext.RoundNumber
	Step   message.Step
	Start  cstime.Instant

	blockTime uint64
	timeouts  map[message.Step]*time.Timer
	fired     chan message.Step
}

// New starts round `number`, anchored at `start`.
func New(number ext.RoundNumber, start cstime.Instant, blockTime uint64) *Data {
	return &Data{
		Number:    number,
		Step:      message.StepPropose,
		Start:     start,
		blockTime: blockTime,
		timeouts:  make(map[message.Step]*time.Timer),
		// Buffered so a timer that fires after the round has already moved
		// on (and stopped being read) never leaks a blocked goroutine.
		fired: make(chan message.Step, 3),
	}
}

// EndTime is end_time(r) for this round (spec §4.2).
func (d *Data) EndTime() cstime.Instant {
	return cstime.EndTime(d.blockTime, d.Number, d.Start)
}

func (d *Data) deadline(step message.Step) cstime.Instant {
	switch step {
	case message.StepPropose:
		return cstime.ProposeDeadline(d.blockTime, d.Number, d.Start)
	case message.StepPrevote:
		return cstime.PrevoteDeadline(d.blockTime, d.Number, d.Start)
	default:
		return cstime.PrecommitDeadline(d.blockTime, d.Number, d.Start)
	}
}

// SetTimeout arms the timer for step, replacing any existing one for the
// same step. A step whose deadline has already elapsed fires immediately.
func (d *Data) SetTimeout(step message.Step) {
	if t, ok := d.timeouts[step]; ok {
		t.Stop()
	}
	dur := time.Until(d.deadline(step).WallClock())
	if dur < 0 {
		dur = 0
	}
	d.timeouts[step] = time.AfterFunc(dur, func() {
		d.fired <- step
	})
}

// CancelTimeout disarms step's timer, if any, without waiting for it to fire.
func (d *Data) CancelTimeout(step message.Step) {
	if t, ok := d.timeouts[step]; ok {
		t.Stop()
		delete(d.timeouts, step)
	}
}

// Fired returns a channel that yields a Step each time one of its armed
// timeouts elapses. The caller must call Ack after consuming a value so the
// timeout entry does not persist once it fires, matching the original `run`
// loop's handling. Values are not filtered: a step whose timer fired before
// SetTimeout replaced it is still delivered.
func (d *Data) Fired() <-chan message.Step {
	return d.fired
}

// Ack removes step's timeout entry once its firing has been processed.
func (d *Data) Ack(step message.Step) {
	delete(d.timeouts, step)
}

// Stop disarms every outstanding timer, used when the round is abandoned
// (height reset, or a jump to a later round).
func (d *Data) Stop() {
	for _, t := range d.timeouts {
		t.Stop()
	}
}

// WaitUntilEnd blocks until this round's wall-clock end time has passed or
// ctx is cancelled.
func (d *Data) WaitUntilEnd(ctx context.Context) {
	dur := time.Until(d.EndTime().WallClock())
	if dur <= 0 {
		return
	}
	timer := time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
