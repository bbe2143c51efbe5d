// Package ext defines the external contracts the Tendermint consensus core
// consumes from, and exposes to, its host: the pluggable Network, the
// SignatureScheme, the weighted validator set, and the opaque Block it
// drives to agreement.
//
// Nothing in this package depends on the state machine; it exists so the
// core can be built, tested, and reasoned about against interfaces rather
// than a concrete chain implementation.
package ext

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ValidatorID identifies a consensus participant. Validators are compared,
// hashed, and sorted, so the concrete type must support all three cheaply;
// an Ethereum-style address satisfies the "small hashable identity" of the
// spec while staying consistent with the teacher's committee-member model.
type ValidatorID = common.Address

// BlockID identifies a Block without exposing its contents to the core.
type BlockID = common.Hash

// BlockNumber is the height of a block being decided. Kept distinct from
// RoundNumber so the two can never be confused at a call site.
type BlockNumber uint32

// RoundNumber is the re-attempt counter within a height.
type RoundNumber uint16

// Block is opaque to the core: it is only ever identified, validated, and
// handed back to the host. Encode returns its self-delimiting canonical
// bytes, used only when a Proposal carrying this block is signed.
type Block interface {
	ID() BlockID
	Encode() []byte
}

// BlockError classifies why Network.Validate rejected a block.
type BlockError int

const (
	// BlockErrorFatal means the block is malformed; the proposer who sent it
	// must be slashed.
	BlockErrorFatal BlockError = iota + 1
	// BlockErrorTemporal means the block may become valid once more chain
	// state (e.g. a parent block) is available; no one is at fault.
	BlockErrorTemporal
)

func (e BlockError) Error() string {
	switch e {
	case BlockErrorFatal:
		return "block is fatally invalid"
	case BlockErrorTemporal:
		return "block cannot be validated yet"
	default:
		return "unknown block error"
	}
}

// Network.Validate signals validity with a nil error and invalidity with
// one of the two BlockError values above, rather than a Result<(), E> sum
// type.

// Signature is an opaque, self-delimiting signature produced by a Signer and
// checked by a SignatureScheme. It is carried as raw bytes so it can be RLP
// encoded without a scheme-specific decoder; concrete schemes (see
// crypto/bls) fix its length and interpretation.
type Signature []byte

// Signer produces signatures for the local validator, if this node holds
// one. Observers run the same machine with Signer.ValidatorID returning
// false.
type Signer interface {
	// ValidatorID returns the local validator id. ok is false for an
	// observer node that participates in consensus without voting.
	ValidatorID() (id ValidatorID, ok bool)
	Sign(ctx context.Context, msg []byte) (Signature, error)
}

// SignatureScheme verifies signatures from any validator and aggregates a
// batch of them into a single Signature, independent of order.
type SignatureScheme interface {
	Verify(validator ValidatorID, msg []byte, sig Signature) bool
	Aggregate(sigs []Signature) Signature
}

// Weights is the quorum arithmetic contract: total and per-validator
// weight, the derived thresholds, and the weighted round-robin proposer
// selection, which must be a pure function of (height, round) so that every
// honest node computes the same proposer.
type Weights interface {
	TotalWeight() uint64
	Weight(v ValidatorID) uint64

	// Proposer deterministically selects the validator responsible for
	// proposing at (number, round).
	Proposer(number BlockNumber, round RoundNumber) ValidatorID
}

// Threshold is the minimum weight (>2/3 of total) required for consensus on
// a value: floor(2*total/3)+1.
func Threshold(w Weights) uint64 {
	return (w.TotalWeight()*2)/3 + 1
}

// FaultThreshold is the smallest participating weight that proves at least
// one honest validator is present: total - threshold + 1.
func FaultThreshold(w Weights) uint64 {
	return w.TotalWeight() - Threshold(w) + 1
}

// Commit is the externally verifiable output of a finalized height: the
// canonical end time of the round it finalized in, the validators whose
// precommits are aggregated, and the aggregate signature itself.
type Commit struct {
	EndTime    uint64
	Validators []ValidatorID
	Signature  Signature
}

// The Network contract (validate/broadcast/add_block/slash/verify_commit,
// spec §6) is declared in package core rather than here: broadcasting a
// signed consensus message needs the core/message.SignedMessage type, and
// ext must not import core/message without creating an import cycle back
// into ext itself.

// ErrNotAValidator is returned by helpers that require a local signer when
// the node is running as an observer.
var ErrNotAValidator = errors.New("ext: local node is not a validator")
