// Package core drives a single Tendermint BFT instance to agreement, one
// height at a time, against the Network contract a host supplies. It is a
// single-goroutine state machine: every mutation of a height's block.Data
// happens inside Machine.Run, so nothing here needs a lock.
package core

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/quorumkit/tendermint/config"
	"github.com/quorumkit/tendermint/core/block"
	"github.com/quorumkit/tendermint/core/cserr"
	"github.com/quorumkit/tendermint/core/cstime"
	"github.com/quorumkit/tendermint/core/message"
	"github.com/quorumkit/tendermint/core/round"
	"github.com/quorumkit/tendermint/ext"
)

// LastBlock describes the height the machine is about to build on: its
// number and the canonical end time its own round finalized in, which
// anchors round 0 of the new height (spec §4.2).
type LastBlock struct {
	Number  ext.BlockNumber
	EndTime uint64
}

// Machine is one running instance of the consensus core for a single chain.
// New creates it once; when a height finalizes, the same Machine replaces
// its per-height block.Data and carries on with the next height. Callers
// drive it by calling Run in its own goroutine and interacting with it only
// through the returned Handle.
type Machine struct {
	network Network
	signer  ext.Signer
	scheme  ext.SignatureScheme
	weights ext.Weights
	cfg     *config.Config
	logger  log.Logger

	blk *block.Data

	// queue holds this node's own messages, staged for signing and
	// broadcast; Run drains it after an externally reported finalization but
	// ahead of step timeouts and inbound messages, so a locally produced vote
	// is always sent before the machine reacts to further network input
	// (spec §5).
	queue []message.Message

	messages chan message.SignedMessage
	steps    chan StepEvent

	// Debug gates the commit self-check (VerifyCommit) this node performs
	// against commits it assembled itself; it is not part of the protocol
	// and exists only to catch a broken SignatureScheme or Weights
	// implementation in testing.
	Debug bool
}

// StepEvent notifies a Machine that a block for its height has finalized by
// some means other than its own consensus round (for example, a lagging
// node catching up via state sync): the commit that finalized it and the
// block this node should propose next.
type StepEvent struct {
	Commit   ext.Commit
	Proposal ext.Block
}

// Handle is the caller-facing interface to a running Machine: feeding it
// inbound signed messages and external finalization events. It is safe to
// use from any goroutine; Machine.Run is the only goroutine that touches
// Machine's state directly.
type Handle struct {
	messages chan<- message.SignedMessage
	steps    chan<- StepEvent

	// Machine is exposed so a host can start Run and read Debug/height
	// bookkeeping; the channels above are the only way to push events in.
	Machine *Machine
}

// Deliver hands an inbound signed message to the machine. It blocks until
// accepted or ctx is done.
func (h *Handle) Deliver(ctx context.Context, msg message.SignedMessage) {
	select {
	case h.messages <- msg:
	case <-ctx.Done():
	}
}

// Sync notifies the machine that its height finalized externally.
func (h *Handle) Sync(ctx context.Context, ev StepEvent) {
	select {
	case h.steps <- ev:
	case <-ctx.Done():
	}
}

// New waits until the previous height's end time has passed, then builds
// and returns a Machine for `last.Number + 1` together with its Handle. The
// caller must run Handle.Machine.Run in its own goroutine to drive it.
func New(ctx context.Context, network Network, cfg *config.Config, last LastBlock, proposal ext.Block) *Handle {
	waitUntil(ctx, cstime.SysTime(last.EndTime))

	signer := network.Signer()
	m := &Machine{
		network:  network,
		signer:   signer,
		scheme:   network.SignatureScheme(),
		weights:  network.Weights(),
		cfg:      cfg,
		logger:   log.New("module", "tendermint", "number", last.Number+1),
		messages: make(chan message.SignedMessage),
		steps:    make(chan StepEvent),
	}

	validatorID, isValidator := signer.ValidatorID()
	m.blk = block.New(last.Number+1, validatorID, isValidator, proposal, m.weights, cfg.BlockTime)
	m.round(ctx, 0, cstimeInstant(last.EndTime))

	return &Handle{messages: m.messages, steps: m.steps, Machine: m}
}

func cstimeInstant(canonical uint64) *cstime.Instant {
	i := cstime.New(canonical)
	return &i
}

func waitUntil(ctx context.Context, t time.Time) {
	dur := time.Until(t)
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

// broadcast stages data as this node's own message for the current round,
// to be signed and sent out the next time Run drains its queue. It is a
// no-op for an observer node.
func (m *Machine) broadcast(data message.Data) {
	if !m.blk.IsValidator {
		return
	}
	m.blk.Round.Step = data.Step()
	m.queue = append(m.queue, message.Message{
		Sender: m.blk.ValidatorID,
		Number: m.blk.Number,
		Round:  m.blk.Round.Number,
		Data:   data,
	})
}

// round starts round r. If start is nil, r's start instant is derived from
// the previous round's end time, which must already be known. It arms the
// propose timeout unless this node is r's proposer, in which case it
// immediately proposes (the node's valid block if set, else its own
// candidate) and returns true.
func (m *Machine) round(ctx context.Context, r ext.RoundNumber, start *cstime.Instant) bool {
	if r != 0 {
		m.blk.PopulateEndTime(r)
	}

	var startInstant cstime.Instant
	if start != nil {
		startInstant = *start
	} else {
		startInstant = m.blk.EndTime[r-1]
	}

	rd := round.New(r, startInstant, m.cfg.BlockTime)
	m.blk.Round = rd
	m.blk.EndTime[r] = rd.EndTime()

	m.logger.Debug("starting round", "round", r)

	proposer := m.weights.Proposer(m.blk.Number, r)
	if m.blk.IsValidator && proposer == m.blk.ValidatorID {
		if m.blk.Valid != nil {
			vr := m.blk.Valid.Round
			m.broadcast(&message.Proposal{ValidRound: &vr, Block: m.blk.Valid.Block})
		} else {
			m.broadcast(&message.Proposal{ValidRound: nil, Block: m.blk.Proposal})
		}
		return true
	}

	rd.SetTimeout(message.StepPropose)
	return false
}

// reset tears down the current height once commit is known for round
// endRound, waits out the rest of that round's wall-clock duration (so a
// fast validator doesn't start the next height's round 0 before its peers'
// clocks reach the same canonical instant), then starts height+1 proposing
// proposal.
func (m *Machine) reset(ctx context.Context, endRound ext.RoundNumber, proposal ext.Block) {
	m.blk.PopulateEndTime(endRound)
	endTime, ok := m.blk.EndTime[endRound]
	if !ok {
		cserr.Fatalf("reset: end time for round %d is unknown", endRound)
	}

	m.blk.Round.Stop()
	waitUntil(ctx, endTime.WallClock())

	// Strays left in the outgoing queue from the height that just finalized
	// are dropped; anything genuinely for the new height is queued fresh by
	// round() below.
	kept := m.queue[:0]
	for _, msg := range m.queue {
		if msg.Number != m.blk.Number {
			kept = append(kept, msg)
		}
	}
	m.queue = kept

	validatorID, isValidator := m.signer.ValidatorID()
	m.logger.Info("finalized height", "number", m.blk.Number, "end_round", endRound)
	m.blk = block.New(m.blk.Number+1, validatorID, isValidator, proposal, m.weights, m.cfg.BlockTime)
	m.round(ctx, 0, &endTime)
}

// resetByCommit locates the round whose end_time equals commit's, walking
// forward or backward from the current round as needed, and resets onto
// that round (spec §4.2: end_time is injective across a height's rounds so
// this search always terminates at a unique round).
func (m *Machine) resetByCommit(ctx context.Context, commit ext.Commit, proposal ext.Block) {
	r := m.blk.Round.Number
	for {
		m.blk.PopulateEndTime(r + 1)
		if m.blk.EndTime[r].Canonical() >= commit.EndTime {
			break
		}
		r++
	}
	for m.blk.EndTime[r].Canonical() > commit.EndTime {
		if r == 0 {
			cserr.Fatalf("resetByCommit: commit does not correspond to any round of height %d", m.blk.Number)
		}
		r--
	}
	m.reset(ctx, r, proposal)
}

// slash reports validator to the host, but only the first time this height,
// so the host's Network.Slash need not be idempotent within a height.
func (m *Machine) slash(ctx context.Context, validator ext.ValidatorID) {
	if m.blk.Slash(validator) {
		m.logger.Warn("slashing validator", "validator", validator)
		m.network.Slash(ctx, validator)
	}
}

// assembleCommit builds the aggregate Commit for id once its precommits
// have reached threshold in round r.
func (m *Machine) assembleCommit(r ext.RoundNumber, id ext.BlockID) ext.Commit {
	validators, sigs := m.blk.Log.Precommits(r, id)
	endTime := m.blk.EndTime[r]
	commit := ext.Commit{
		EndTime:    endTime.Canonical(),
		Validators: validators,
		Signature:  m.scheme.Aggregate(sigs),
	}
	if m.Debug && !m.network.VerifyCommit(id, commit) {
		cserr.Fatalf("assembled commit for block %s failed self-verification", id)
	}
	return commit
}
