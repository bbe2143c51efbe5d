package core

import (
	"context"

	"github.com/quorumkit/tendermint/core/block"
	"github.com/quorumkit/tendermint/core/cserr"
	"github.com/quorumkit/tendermint/core/message"
	"github.com/quorumkit/tendermint/ext"
)

// message processes one inbound message against the current height. A nil,
// non-nil Block return means the round in msg finalized: the caller is
// responsible for assembling the commit and resetting. A non-nil error is
// either *cserr.MaliciousError (the caller slashes msg.Sender, or whichever
// validator the error names) or cserr.ErrTemporal (the caller drops the
// message silently); anything else is not expected to occur and indicates a
// bug in the host or this package.
func (m *Machine) message(ctx context.Context, msg message.Message) (ext.Block, error) {
	blk := m.blk

	if msg.Number != blk.Number {
		return nil, cserr.ErrTemporal
	}

	if err := m.verifyDeferredPrecommit(msg); err != nil {
		return nil, err
	}

	if _, ok := msg.Data.(*message.Proposal); ok {
		if proposer := m.weights.Proposer(blk.Number, msg.Round); msg.Sender != proposer {
			return nil, cserr.Malicious(msg.Sender)
		}
	}

	isNew, err := blk.Log.Log(msg.Sender, msg.Round, msg.Data)
	if err != nil {
		return nil, err
	}
	if !isNew {
		return nil, nil
	}

	// 49-52: a proposal plus a matching precommit quorum in the same round
	// finalizes that round's block, regardless of which round the core is
	// currently in.
	if finalized := m.checkFinalized(msg.Round); finalized != nil {
		return finalized, nil
	}

	if msg.Round < blk.Round.Number {
		return nil, nil
	}
	if msg.Round > blk.Round.Number {
		// A round jump that lands us as the new proposer has nothing left
		// to do against msg: round() already broadcast our own proposal.
		// Otherwise spec §4.4 item 6 says to continue, applying the normal
		// rules below against msg and the round we just jumped to.
		becameProposer, err := m.maybeSkipToRound(ctx, msg.Round)
		if err != nil {
			return nil, err
		}
		if becameProposer || blk.Round.Number != msg.Round {
			return nil, nil
		}
	}

	m.applyPrevoteRules(msg)
	m.armPrecommitTimeout(msg)
	m.voteOnProposal(ctx, msg)

	return nil, nil
}

// verifyDeferredPrecommit checks a precommit's signature against
// CommitMsg(end_time, id) if end_time for its round is already known.
// end_time is not always known yet when a precommit for a future round
// first arrives; in that case verification is deferred until the round
// skip logic (maybeSkipToRound) re-checks it once the round starts.
func (m *Machine) verifyDeferredPrecommit(msg message.Message) error {
	pc, ok := msg.Data.(*message.Precommit)
	if !ok || pc.BlockID == nil {
		return nil
	}
	endTime, ok := m.blk.EndTime[msg.Round]
	if !ok {
		return nil
	}
	if !m.scheme.Verify(msg.Sender, message.CommitMsg(endTime.Canonical(), *pc.BlockID), pc.Signature) {
		return cserr.Malicious(msg.Sender)
	}
	return nil
}

// checkFinalized reports the finalized block for `round`, if the round's
// proposer has a logged Proposal and its block's precommits have reached
// threshold.
func (m *Machine) checkFinalized(round ext.RoundNumber) ext.Block {
	blk := m.blk
	proposer := m.weights.Proposer(blk.Number, round)
	d, ok := blk.Log.Get(round, proposer, message.StepPropose)
	if !ok {
		return nil
	}
	prop := d.(*message.Proposal)
	id := prop.Block.ID()
	if blk.Log.HasConsensus(round, &message.Precommit{BlockID: &id}) {
		return prop.Block
	}
	return nil
}

// maybeSkipToRound implements the round-skip rule (spec §4.4, paper lines
// 55-56): once participation in a later round proves at least one honest
// validator has moved on, this node jumps there too, first re-verifying any
// precommit signatures from that round whose end_time was unknown when they
// first arrived. It reports whether round r's proposal was this node's own
// (in which case the caller has nothing left to apply), which is always
// false if the round skip didn't happen at all.
func (m *Machine) maybeSkipToRound(ctx context.Context, r ext.RoundNumber) (becameProposer bool, err error) {
	blk := m.blk
	if blk.Log.RoundParticipation(r) <= ext.FaultThreshold(m.weights) {
		return false, nil
	}

	// Populate end_time up to and including r before re-checking precommit
	// signatures against it: those precommits may have arrived, and been
	// logged with verification deferred, before this height ever reached
	// round r.
	blk.PopulateEndTime(r + 1)

	for sender, pc := range blk.Log.RoundPrecommits(r) {
		if pc.BlockID == nil {
			continue
		}
		endTime, ok := blk.EndTime[r]
		if !ok {
			continue
		}
		if !m.scheme.Verify(sender, message.CommitMsg(endTime.Canonical(), *pc.BlockID), pc.Signature) {
			m.slash(ctx, sender)
		}
	}

	return m.round(ctx, r, nil), nil
}

// applyPrevoteRules implements paper lines 34-35 and 44-46. Line 34-35: the
// first time any-value prevote participation in the current round reaches
// threshold while still at the prevote step, arm the prevote timeout. Line
// 44-46: the first time a round reaches prevote quorum on nil, broadcast a
// nil precommit for it; "first time" is enforced by the Step < Precommit
// guard, since broadcast(Precommit) advances Round.Step to Precommit.
func (m *Machine) applyPrevoteRules(msg message.Message) {
	blk := m.blk
	if _, ok := msg.Data.(*message.Prevote); !ok {
		return
	}

	if blk.Round.Step == message.StepPrevote {
		participation, _ := blk.Log.MessageInstances(blk.Round.Number, &message.Prevote{})
		if participation >= ext.Threshold(m.weights) {
			blk.Round.SetTimeout(message.StepPrevote)
		}
	}

	if blk.Round.Step < message.StepPrecommit && blk.Log.HasConsensus(blk.Round.Number, &message.Prevote{BlockID: nil}) {
		m.broadcast(&message.Precommit{BlockID: nil})
	}
}

// armPrecommitTimeout implements paper lines 47-48: once total precommit
// participation in the current round reaches threshold, arm the precommit
// timeout.
func (m *Machine) armPrecommitTimeout(msg message.Message) {
	blk := m.blk
	if _, ok := msg.Data.(*message.Precommit); !ok {
		return
	}
	participation, _ := blk.Log.MessageInstances(blk.Round.Number, &message.Precommit{})
	if participation >= ext.Threshold(m.weights) {
		blk.Round.SetTimeout(message.StepPrecommit)
	}
}

// voteOnProposal implements the bulk of the algorithm's upon-proposal rules
// for the current round: first-vote (lines 22-33) while still in Propose,
// and, at any later step, set-valid (lines 36-43) once a prevote quorum for
// the proposed block is seen; lock and precommit follow only while the step
// is still Prevote.
func (m *Machine) voteOnProposal(ctx context.Context, msg message.Message) {
	blk := m.blk
	proposer := m.weights.Proposer(blk.Number, blk.Round.Number)
	d, ok := blk.Log.Get(blk.Round.Number, proposer, message.StepPropose)
	if !ok {
		return
	}
	prop := d.(*message.Proposal)

	if blk.Round.Step == message.StepPropose {
		m.firstVote(ctx, msg, prop, proposer)
		return
	}

	if blk.Valid != nil && blk.Valid.Round == blk.Round.Number {
		return
	}
	id := prop.Block.ID()
	if !blk.Log.HasConsensus(blk.Round.Number, &message.Prevote{BlockID: &id}) {
		return
	}

	if err := m.network.Validate(ctx, prop.Block); err != nil {
		if blockErrorIs(err, ext.BlockErrorFatal) {
			m.slash(ctx, proposer)
		}
		return
	}

	blk.Valid = &block.Valid{Round: blk.Round.Number, Block: prop.Block}
	if blk.Round.Step != message.StepPrevote {
		return
	}

	blk.Locked = &block.Locked{Round: blk.Round.Number, ID: id}
	endTime := blk.EndTime[blk.Round.Number]
	sig, err := m.signer.Sign(ctx, message.CommitMsg(endTime.Canonical(), id))
	if err != nil {
		cserr.Fatalf("signing precommit: %v", err)
	}
	m.broadcast(&message.Precommit{BlockID: &id, Signature: sig})
}

// firstVote implements lines 22-33: the first time this round's proposal is
// seen while still in Propose, the node casts its one prevote for the
// round: for the block if it is valid and the node is not locked on another
// block, or if the proposal cites a valid round with a prevote quorum for
// the block and the lock is no later than that round; nil otherwise. A
// proposal citing a valid round without such a quorum gets no prevote.
func (m *Machine) firstVote(ctx context.Context, msg message.Message, prop *message.Proposal, proposer ext.ValidatorID) {
	blk := m.blk

	valid := true
	deferredMalicious := false
	if err := m.network.Validate(ctx, prop.Block); err != nil {
		valid = false
		if blockErrorIs(err, ext.BlockErrorFatal) {
			deferredMalicious = true
		}
	}

	var vote *ext.BlockID
	if valid {
		id := prop.Block.ID()
		vote = &id
	}
	if blk.Locked != nil && blk.Locked.ID != prop.Block.ID() {
		vote = nil
	}

	if prop.ValidRound != nil {
		vr := *prop.ValidRound
		if vr >= blk.Round.Number {
			// This is not reported through message()'s error return:
			// firstVote only runs after Log() already accepted the triggering
			// message, and it has no error result to pass back. Slash
			// directly instead.
			m.slash(ctx, msg.Sender)
			return
		}
		id := prop.Block.ID()
		if !blk.Log.HasConsensus(vr, &message.Prevote{BlockID: &id}) {
			return
		}
		if blk.Locked != nil && blk.Locked.Round <= vr {
			vote = &id
			if !valid {
				vote = nil
			}
		}
	}

	m.broadcast(&message.Prevote{BlockID: vote})
	if deferredMalicious {
		m.slash(ctx, proposer)
	}
}

// blockErrorIs reports whether err is the given ext.BlockError classification.
func blockErrorIs(err error, target ext.BlockError) bool {
	be, ok := err.(ext.BlockError)
	return ok && be == target
}
