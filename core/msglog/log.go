// Package msglog implements the per-height signed message log: memoized
// storage of one message per (round, validator, step), Byzantine
// equivocation detection, and the weight-sum queries the consensus core
// uses to decide when a quorum has been reached.
package msglog

import (
	"golang.org/x/exp/slices"

	"github.com/quorumkit/tendermint/core/cserr"
	"github.com/quorumkit/tendermint/core/message"
	"github.com/quorumkit/tendermint/ext"
)

type senderSteps map[message.Step]message.Data

// Log is the message log for a single height. It is discarded wholesale
// when the height changes (spec §3: "contains only messages for the
// current height").
type Log struct {
	weights ext.Weights

	// precommitted tracks, per validator, the one block id they have ever
	// precommitted to in this height, independent of round: a second,
	// different id is equivocation even across rounds (spec §3).
	precommitted map[ext.ValidatorID]ext.BlockID

	// byRound[round][sender][step] = data
	byRound map[ext.RoundNumber]map[ext.ValidatorID]senderSteps
}

// New builds an empty log backed by weights for the current height.
func New(weights ext.Weights) *Log {
	return &Log{
		weights:      weights,
		precommitted: make(map[ext.ValidatorID]ext.BlockID),
		byRound:      make(map[ext.RoundNumber]map[ext.ValidatorID]senderSteps),
	}
}

// Log inserts msg, returning true iff it is genuinely new. A replayed,
// identical message returns (false, nil). A second, distinct message for
// the same (round, sender, step), or a precommit naming a different block
// id than one already recorded for sender in this height, is equivocation
// and returns a *cserr.MaliciousError.
func (l *Log) Log(sender ext.ValidatorID, round ext.RoundNumber, data message.Data) (bool, error) {
	round_, ok := l.byRound[round]
	if !ok {
		round_ = make(map[ext.ValidatorID]senderSteps)
		l.byRound[round] = round_
	}
	steps, ok := round_[sender]
	if !ok {
		steps = make(senderSteps)
		round_[sender] = steps
	}

	step := data.Step()
	if existing, ok := steps[step]; ok {
		if !existing.Equal(data) {
			return false, cserr.Malicious(sender)
		}
		return false, nil
	}

	if pc, ok := data.(*message.Precommit); ok && pc.BlockID != nil {
		if prev, ok := l.precommitted[sender]; ok && prev != *pc.BlockID {
			return false, cserr.Malicious(sender)
		}
		l.precommitted[sender] = *pc.BlockID
	}

	steps[step] = data
	return true, nil
}

// Get returns the data sender sent at step in round, if any.
func (l *Log) Get(round ext.RoundNumber, sender ext.ValidatorID, step message.Step) (message.Data, bool) {
	round_, ok := l.byRound[round]
	if !ok {
		return nil, false
	}
	steps, ok := round_[sender]
	if !ok {
		return nil, false
	}
	d, ok := steps[step]
	return d, ok
}

// MessageInstances sums the weight of every sender who sent any message at
// data.Step() in round ("participating"), and separately the weight of
// those whose message equals data ("matching").
func (l *Log) MessageInstances(round ext.RoundNumber, data message.Data) (participating, matching uint64) {
	round_, ok := l.byRound[round]
	if !ok {
		return 0, 0
	}
	for _, senders := range orderedSenders(round_) {
		steps := round_[senders]
		d, ok := steps[data.Step()]
		if !ok {
			continue
		}
		w := l.weights.Weight(senders)
		participating += w
		if d.Equal(data) {
			matching += w
		}
	}
	return participating, matching
}

// RoundParticipation sums the weight of every sender with any message at
// all in round, across every step.
func (l *Log) RoundParticipation(round ext.RoundNumber) uint64 {
	round_, ok := l.byRound[round]
	if !ok {
		return 0
	}
	var weight uint64
	for sender := range round_ {
		weight += l.weights.Weight(sender)
	}
	return weight
}

// HasConsensus reports whether data's matching weight in round meets
// threshold.
func (l *Log) HasConsensus(round ext.RoundNumber, data message.Data) bool {
	_, matching := l.MessageInstances(round, data)
	return matching >= ext.Threshold(l.weights)
}

// Precommits returns the validators whose round precommit names id,
// together with their signatures in the same order, used to assemble a
// Commit once that round's precommits reach threshold.
func (l *Log) Precommits(round ext.RoundNumber, id ext.BlockID) (validators []ext.ValidatorID, sigs []ext.Signature) {
	round_, ok := l.byRound[round]
	if !ok {
		return nil, nil
	}
	for _, sender := range orderedSenders(round_) {
		steps := round_[sender]
		d, ok := steps[message.StepPrecommit]
		if !ok {
			continue
		}
		pc := d.(*message.Precommit)
		if pc.BlockID == nil || *pc.BlockID != id {
			continue
		}
		validators = append(validators, sender)
		sigs = append(sigs, pc.Signature)
	}
	return validators, sigs
}

// RoundPrecommits returns every Precommit datum recorded in round, keyed by
// sender, for the deferred-signature re-verification a round skip performs
// (spec §4.4 "round skip").
func (l *Log) RoundPrecommits(round ext.RoundNumber) map[ext.ValidatorID]*message.Precommit {
	round_, ok := l.byRound[round]
	if !ok {
		return nil
	}
	out := make(map[ext.ValidatorID]*message.Precommit)
	for sender, steps := range round_ {
		if d, ok := steps[message.StepPrecommit]; ok {
			out[sender] = d.(*message.Precommit)
		}
	}
	return out
}

// orderedSenders returns round's senders in a fixed, deterministic order so
// weight summation never depends on Go's randomized map iteration.
func orderedSenders(round_ map[ext.ValidatorID]senderSteps) []ext.ValidatorID {
	senders := make([]ext.ValidatorID, 0, len(round_))
	for s := range round_ {
		senders = append(senders, s)
	}
	slices.SortFunc(senders, func(a, b ext.ValidatorID) bool {
		return a.Hex() < b.Hex()
	})
	return senders
}
