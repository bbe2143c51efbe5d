// Package bls is a concrete ext.SignatureScheme backed by BLS12-381
// signatures (github.com/supranational/blst), giving commits an aggregate
// signature whose size does not grow with the number of validators behind
// it, per spec §6's "aggregate(&[Signature]) -> Signature".
package bls

import (
	"context"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/quorumkit/tendermint/ext"
)

// dst is the domain separation tag required by the IETF BLS signature
// draft; it scopes signatures to this protocol so they can never be
// replayed against an unrelated BLS-signing application.
var dst = []byte("TENDERMINT-CORE-BLS12381G2-SHA256-SSWU-RO_")

type secretKey = blst.SecretKey
type publicKey = blst.P1Affine
type signature = blst.P2Affine

// PrivateKey is a validator's BLS signing key.
type PrivateKey struct {
	sk *secretKey
	pk *publicKey
}

// GenerateKey derives a PrivateKey from at least 32 bytes of key material.
func GenerateKey(ikm []byte) (*PrivateKey, error) {
	if len(ikm) < 32 {
		return nil, fmt.Errorf("bls: ikm must be at least 32 bytes, got %d", len(ikm))
	}
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return nil, fmt.Errorf("bls: key generation failed")
	}
	pk := new(publicKey).From(sk)
	return &PrivateKey{sk: sk, pk: pk}, nil
}

// PublicKeyBytes returns the compressed (48-byte) public key.
func (k *PrivateKey) PublicKeyBytes() []byte {
	return k.pk.Compress()
}

// Signer adapts a PrivateKey to ext.Signer for a single local validator.
type Signer struct {
	id ext.ValidatorID
	sk *PrivateKey
}

// NewSigner builds a Signer for the validating node identified by id.
func NewSigner(id ext.ValidatorID, sk *PrivateKey) *Signer {
	return &Signer{id: id, sk: sk}
}

func (s *Signer) ValidatorID() (ext.ValidatorID, bool) {
	if s == nil {
		return ext.ValidatorID{}, false
	}
	return s.id, true
}

func (s *Signer) Sign(_ context.Context, msg []byte) (ext.Signature, error) {
	sig := new(signature).Sign(s.sk.sk, msg, dst)
	if sig == nil {
		return nil, fmt.Errorf("bls: signing failed")
	}
	return ext.Signature(sig.Compress()), nil
}

// ObserverSigner is a no-op Signer for a node that runs the machine without
// holding a validator key.
type ObserverSigner struct{}

func (ObserverSigner) ValidatorID() (ext.ValidatorID, bool) { return ext.ValidatorID{}, false }

func (ObserverSigner) Sign(context.Context, []byte) (ext.Signature, error) {
	return nil, ext.ErrNotAValidator
}

// Scheme verifies and aggregates BLS signatures given a lookup from
// validator id to its compressed public key.
type Scheme struct {
	pubKey func(ext.ValidatorID) ([]byte, bool)
}

// NewScheme builds a Scheme backed by pubKey, a lookup from validator id to
// its compressed (48-byte) BLS public key.
func NewScheme(pubKey func(ext.ValidatorID) ([]byte, bool)) *Scheme {
	return &Scheme{pubKey: pubKey}
}

func (s *Scheme) Verify(validator ext.ValidatorID, msg []byte, sig ext.Signature) bool {
	raw, ok := s.pubKey(validator)
	if !ok {
		return false
	}
	pk := new(publicKey).Uncompress(raw)
	if pk == nil {
		return false
	}
	sigPt := new(signature).Uncompress(sig)
	if sigPt == nil {
		return false
	}
	return sigPt.Verify(true, pk, true, msg, dst)
}

// Aggregate combines sigs into a single order-independent BLS aggregate
// signature. Aggregation alone does not imply the messages agreed; callers
// only aggregate signatures already known to cover the same commit message
// (spec §3's Commit).
func (s *Scheme) Aggregate(sigs []ext.Signature) ext.Signature {
	if len(sigs) == 0 {
		return nil
	}
	points := make([]*signature, 0, len(sigs))
	for _, raw := range sigs {
		pt := new(signature).Uncompress(raw)
		if pt == nil {
			continue
		}
		points = append(points, pt)
	}
	var agg blst.P2Aggregate
	if !agg.Aggregate(points, true) {
		return nil
	}
	return ext.Signature(agg.ToAffine().Compress())
}
