// Package block holds the per-height arena: everything the consensus core
// mutates while deciding a single height, replaced wholesale when that
// height finalizes.
package block

import (
	"github.com/quorumkit/tendermint/core/cstime"
	"github.com/quorumkit/tendermint/core/msglog"
	"github.com/quorumkit/tendermint/core/round"
	"github.com/quorumkit/tendermint/ext"
)

// Locked is the (round, block id) a validator has precommitted to; it
// restricts which value future prevotes may name.
type Locked struct {
	Round ext.RoundNumber
	ID    ext.BlockID
}

// Valid is the (round, block) for which a prevote quorum has been observed;
// it is what the validator proposes if it becomes the next proposer.
type Valid struct {
	Round ext.RoundNumber
	Block ext.Block
}

// Data is the per-height state: the height itself, the local validator id
// (if any), the block this node would propose, the message log, the set of
// already-slashed validators, the end-time cache, the active round, and the
// locked/valid records.
type Data struct {
	Number      ext.BlockNumber
	ValidatorID ext.ValidatorID
	IsValidator bool
	Proposal    ext.Block

	Log     *msglog.Log
	Slashes map[ext.ValidatorID]struct{}
	EndTime map[ext.RoundNumber]cstime.Instant

	Round *round.Data

	Locked *Locked
	Valid  *Valid

	blockTime uint64
}

// New creates the arena for `number`, proposing `proposal` if and when this
// node becomes a proposer.
func New(number ext.BlockNumber, validatorID ext.ValidatorID, isValidator bool, proposal ext.Block, weights ext.Weights, blockTime uint64) *Data {
	return &Data{
		Number:      number,
		ValidatorID: validatorID,
		IsValidator: isValidator,
		Proposal:    proposal,
		Log:         msglog.New(weights),
		Slashes:     make(map[ext.ValidatorID]struct{}),
		EndTime:     make(map[ext.RoundNumber]cstime.Instant),
		blockTime:   blockTime,
	}
}

// PopulateEndTime fills in EndTime for every round strictly between the
// current round and `upTo` (exclusive of upTo itself, which the caller sets
// once it starts that round), deriving each from its predecessor per spec
// §4.2. It is a no-op if Round is nil (before the first round starts).
func (d *Data) PopulateEndTime(upTo ext.RoundNumber) {
	if d.Round == nil {
		return
	}
	for r := d.Round.Number + 1; r < upTo; r++ {
		prev := d.EndTime[r-1]
		d.EndTime[r] = cstime.EndTime(d.blockTime, r, prev)
	}
}

// Slash records validator as slashed for this height, reporting whether
// this is the first time (the caller is expected to notify the host only
// on that first occurrence, per spec's idempotent Slash).
func (d *Data) Slash(validator ext.ValidatorID) (first bool) {
	if _, already := d.Slashes[validator]; already {
		return false
	}
	d.Slashes[validator] = struct{}{}
	return true
}
