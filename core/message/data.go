// Package message defines the signed consensus message wire model: the
// per-step Data variants, the Message envelope, its SignedMessage wrapper,
// and the canonical byte encodings signatures are computed over.
package message

import (
	"github.com/quorumkit/tendermint/ext"
)

// Step is the strictly ordered stage within a round a Data value belongs to.
type Step uint8

const (
	StepPropose Step = iota
	StepPrevote
	StepPrecommit
)

func (s Step) String() string {
	switch s {
	case StepPropose:
		return "propose"
	case StepPrevote:
		return "prevote"
	case StepPrecommit:
		return "precommit"
	default:
		return "unknown"
	}
}

// Data is the tagged payload of a consensus Message. Two Data values are
// Equal when their Step and block-id (or nilness) match, and for a Proposal
// also its ValidRound; a Precommit's
// signature is deliberately excluded from Equal so a replayed precommit
// with an identical id is accepted while a differing id is equivocation.
type Data interface {
	Step() Step
	Equal(other Data) bool
}

// Proposal is only ever sent by the proposer of (height, round). ValidRound
// is the "valid round" witness from line 22/28 of the Tendermint paper: nil
// means the proposer has no prior quorum to point to.
type Proposal struct {
	ValidRound *ext.RoundNumber
	Block      ext.Block
}

func (p *Proposal) Step() Step { return StepPropose }

func (p *Proposal) Equal(other Data) bool {
	o, ok := other.(*Proposal)
	if !ok {
		return false
	}
	if (p.ValidRound == nil) != (o.ValidRound == nil) {
		return false
	}
	if p.ValidRound != nil && *p.ValidRound != *o.ValidRound {
		return false
	}
	return p.Block.ID() == o.Block.ID()
}

// Prevote is a vote for BlockID, or a nil-prevote when BlockID is nil.
type Prevote struct {
	BlockID *ext.BlockID
}

func (p *Prevote) Step() Step { return StepPrevote }

func (p *Prevote) Equal(other Data) bool {
	o, ok := other.(*Prevote)
	if !ok {
		return false
	}
	return equalBlockIDPtr(p.BlockID, o.BlockID)
}

// Precommit is a commitment to BlockID backed by Signature over
// CommitMsg(end_time, BlockID), or a nil-precommit when BlockID is nil.
type Precommit struct {
	BlockID   *ext.BlockID
	Signature ext.Signature
}

func (p *Precommit) Step() Step { return StepPrecommit }

func (p *Precommit) Equal(other Data) bool {
	o, ok := other.(*Precommit)
	if !ok {
		return false
	}
	return equalBlockIDPtr(p.BlockID, o.BlockID)
}

func equalBlockIDPtr(a, b *ext.BlockID) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
