package core

import (
	"context"

	"github.com/quorumkit/tendermint/core/cserr"
	"github.com/quorumkit/tendermint/core/message"
	"github.com/quorumkit/tendermint/ext"
)

// Run drives the machine until ctx is cancelled. It must be called exactly
// once, from its own goroutine; every other interaction happens through the
// Handle returned by New.
//
// Each iteration picks its next event in strict priority order (spec §5):
// an externally reported finalization first, then this node's own queued
// messages, then an elapsed step timeout, and only once none of those are
// ready does it block waiting on any of the three plus inbound network
// messages. This keeps a self-produced vote or an already-known
// finalization from being delayed behind a backlog of inbound traffic.
func (m *Machine) Run(ctx context.Context) {
	defer m.blk.Round.Stop()

	for {
		if ctx.Err() != nil {
			return
		}

		select {
		case ev := <-m.steps:
			m.resetByCommit(ctx, ev.Commit, ev.Proposal)
			continue
		default:
		}

		if len(m.queue) > 0 {
			msg := m.queue[0]
			m.queue = m.queue[1:]
			m.processLocal(ctx, msg)
			continue
		}

		select {
		case step := <-m.blk.Round.Fired():
			m.handleTimeout(ctx, step)
			continue
		default:
		}

		select {
		case ev := <-m.steps:
			m.resetByCommit(ctx, ev.Commit, ev.Proposal)
		case step := <-m.blk.Round.Fired():
			m.handleTimeout(ctx, step)
		case sm := <-m.messages:
			m.handleInbound(ctx, sm)
		case <-ctx.Done():
			return
		}
	}
}

// processLocal signs and broadcasts msg, this node's own vote, after
// running it through the same state-transition logic an inbound message
// gets. A self-produced message failing that logic is a bug in this package
// or the host, not a condition the protocol defines a recovery for.
func (m *Machine) processLocal(ctx context.Context, msg message.Message) {
	finalized, err := m.message(ctx, msg)
	if err != nil {
		cserr.Fatalf("own message rejected by message handling: %v", err)
	}

	sig, err := m.signer.Sign(ctx, msg.Encode())
	if err != nil {
		cserr.Fatalf("signing own message: %v", err)
	}

	m.network.Broadcast(ctx, message.SignedMessage{Msg: msg, Sig: sig})
	m.handleFinalized(ctx, msg.Round, finalized)
}

// handleInbound verifies sm's signature and, if it checks out, runs it
// through message handling. A message whose signature does not verify is
// dropped silently: it cannot be attributed to its claimed sender with
// enough confidence to slash them, and an honest relay can always retry.
func (m *Machine) handleInbound(ctx context.Context, sm message.SignedMessage) {
	if !sm.VerifySignature(m.scheme) {
		return
	}

	finalized, err := m.message(ctx, sm.Msg)
	if err != nil {
		if v, ok := cserr.AsMalicious(err); ok {
			m.slash(ctx, v)
		}
		// cserr.ErrTemporal, or anything else message() can return, is
		// dropped silently.
		return
	}
	m.handleFinalized(ctx, sm.Msg.Round, finalized)
}

// handleFinalized assembles and applies the commit for a round message()
// reported as finalized, handing the host the block plus its commit and
// resetting onto the height it returns as the next proposal.
func (m *Machine) handleFinalized(ctx context.Context, round ext.RoundNumber, finalized ext.Block) {
	if finalized == nil {
		return
	}
	commit := m.assembleCommit(round, finalized.ID())
	next := m.network.AddBlock(ctx, finalized, commit)
	m.reset(ctx, round, next)
}

func (m *Machine) handleTimeout(ctx context.Context, step message.Step) {
	m.blk.Round.Ack(step)

	switch step {
	case message.StepPropose:
		if m.blk.Round.Step == message.StepPropose {
			// The round's proposer stayed silent through its own deadline;
			// spec §4.4 event loop item 3 slashes it before voting nil.
			m.slash(ctx, m.weights.Proposer(m.blk.Number, m.blk.Round.Number))
			m.broadcast(&message.Prevote{BlockID: nil})
		}
	case message.StepPrevote:
		if m.blk.Round.Step == message.StepPrevote {
			m.broadcast(&message.Precommit{BlockID: nil})
		}
	case message.StepPrecommit:
		m.blk.Round.Stop()
		m.round(ctx, m.blk.Round.Number+1, nil)
	}
}
