package core

import (
	"context"

	"github.com/quorumkit/tendermint/core/message"
	"github.com/quorumkit/tendermint/ext"
)

// Network is the host contract the consensus core is driven against (spec
// §6). It lives here rather than in package ext because Broadcast needs the
// wire SignedMessage type, and ext must stay free of a dependency back on
// core/message.
//
// Every method is called from the single consensus goroutine; none may
// block indefinitely, and Validate/AddBlock are expected not to fail
// internally (a host that can fail must retry before returning, per spec
// §7's "Network is infallible by contract").
type Network interface {
	Weights() ext.Weights
	Signer() ext.Signer
	SignatureScheme() ext.SignatureScheme

	// Broadcast fire-and-forget sends signed to every peer.
	Broadcast(ctx context.Context, signed message.SignedMessage)
	// Slash reports validator as having committed a provable protocol
	// violation. The core only ever calls this once per validator per
	// height (core/block.Data.Slash tracks that).
	Slash(ctx context.Context, validator ext.ValidatorID)

	// Validate reports whether block may be proposed/finalized. A nil
	// error means valid; otherwise the returned error is an ext.BlockError.
	Validate(ctx context.Context, block ext.Block) error
	// AddBlock appends block with its commit to the chain and returns the
	// block this node proposes for the next height.
	AddBlock(ctx context.Context, block ext.Block, commit ext.Commit) ext.Block

	// VerifyCommit is used only for the debug self-check (Machine.Debug) on
	// commits this node assembled itself.
	VerifyCommit(block ext.BlockID, commit ext.Commit) bool
}
