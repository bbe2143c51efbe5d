package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/quorumkit/tendermint/core/message"
	"github.com/quorumkit/tendermint/ext"
)

// fakeBlock is a minimal ext.Block for tests: its id and encoding are both
// derived from an arbitrary label so distinct test blocks never collide.
type fakeBlock struct {
	label string
	id    ext.BlockID
}

func newFakeBlock(label string) fakeBlock {
	return fakeBlock{label: label, id: common.BytesToHash([]byte(label))}
}

func (b fakeBlock) ID() ext.BlockID { return b.id }
func (b fakeBlock) Encode() []byte  { return []byte(b.label) }

// fakeWeights is a simple equal-weight validator set.
type fakeWeights struct {
	ids    []ext.ValidatorID
	weight uint64
}

func newFakeWeights(weight uint64, ids ...ext.ValidatorID) *fakeWeights {
	return &fakeWeights{ids: ids, weight: weight}
}

func (w *fakeWeights) TotalWeight() uint64 { return w.weight * uint64(len(w.ids)) }
func (w *fakeWeights) Weight(ext.ValidatorID) uint64 { return w.weight }
func (w *fakeWeights) Proposer(number ext.BlockNumber, round ext.RoundNumber) ext.ValidatorID {
	return w.ids[(uint64(number)+uint64(round))%uint64(len(w.ids))]
}

// fakeScheme treats a signature as valid iff it is exactly
// "sig:<validator>:<msg>", letting tests construct valid/invalid signatures
// without real cryptography.
type fakeScheme struct{}

func (fakeScheme) Verify(validator ext.ValidatorID, msg []byte, sig ext.Signature) bool {
	return string(sig) == fakeSig(validator, msg)
}

func (fakeScheme) Aggregate(sigs []ext.Signature) ext.Signature {
	var out []byte
	for _, s := range sigs {
		out = append(out, s...)
	}
	return ext.Signature(out)
}

func fakeSig(validator ext.ValidatorID, msg []byte) string {
	return fmt.Sprintf("sig:%s:%x", validator.Hex(), msg)
}

// fakeSigner signs messages in the format fakeScheme accepts.
type fakeSigner struct {
	id ext.ValidatorID
	ok bool
}

func (s fakeSigner) ValidatorID() (ext.ValidatorID, bool) { return s.id, s.ok }

func (s fakeSigner) Sign(_ context.Context, msg []byte) (ext.Signature, error) {
	return ext.Signature(fakeSig(s.id, msg)), nil
}

// fakeNetwork is a minimal, concurrency-safe Network double recording every
// broadcast, slash and finalized block for assertions.
type fakeNetwork struct {
	mu sync.Mutex

	blockTime uint64
	weights   ext.Weights
	signer    ext.Signer
	scheme    ext.SignatureScheme

	validateErr func(ext.Block) error
	nextBlock   func(ext.Block) ext.Block

	broadcasts []message.SignedMessage
	slashed    []ext.ValidatorID
	finalized  []ext.Block
	commits    []ext.Commit
}

func (n *fakeNetwork) Weights() ext.Weights               { return n.weights }
func (n *fakeNetwork) Signer() ext.Signer                 { return n.signer }
func (n *fakeNetwork) SignatureScheme() ext.SignatureScheme { return n.scheme }

func (n *fakeNetwork) Broadcast(_ context.Context, signed message.SignedMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcasts = append(n.broadcasts, signed)
}

func (n *fakeNetwork) Slash(_ context.Context, v ext.ValidatorID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.slashed = append(n.slashed, v)
}

func (n *fakeNetwork) Validate(_ context.Context, blk ext.Block) error {
	if n.validateErr != nil {
		return n.validateErr(blk)
	}
	return nil
}

func (n *fakeNetwork) AddBlock(_ context.Context, blk ext.Block, commit ext.Commit) ext.Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.finalized = append(n.finalized, blk)
	n.commits = append(n.commits, commit)
	if n.nextBlock != nil {
		return n.nextBlock(blk)
	}
	return newFakeBlock(blk.ID().Hex() + "-next")
}

func (n *fakeNetwork) VerifyCommit(ext.BlockID, ext.Commit) bool { return true }

func (n *fakeNetwork) snapshot() (broadcasts []message.SignedMessage, slashed []ext.ValidatorID, finalized []ext.Block) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]message.SignedMessage(nil), n.broadcasts...),
		append([]ext.ValidatorID(nil), n.slashed...),
		append([]ext.Block(nil), n.finalized...)
}
