package bls

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quorumkit/tendermint/ext"
)

func fixedIKM(b byte) []byte {
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = b
	}
	return ikm
}

func TestSignAndVerify(t *testing.T) {
	sk, err := GenerateKey(fixedIKM(1))
	require.NoError(t, err)

	id := ext.ValidatorID{1}
	signer := NewSigner(id, sk)
	gotID, ok := signer.ValidatorID()
	require.True(t, ok)
	require.Equal(t, id, gotID)

	msg := []byte("commit-message")
	sig, err := signer.Sign(context.Background(), msg)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	scheme := NewScheme(func(v ext.ValidatorID) ([]byte, bool) {
		if v == id {
			return sk.PublicKeyBytes(), true
		}
		return nil, false
	})
	require.True(t, scheme.Verify(id, msg, sig))
	require.False(t, scheme.Verify(id, []byte("other message"), sig))
}

func TestAggregateVerifiesEachSignerIndependently(t *testing.T) {
	skA, err := GenerateKey(fixedIKM(2))
	require.NoError(t, err)
	skB, err := GenerateKey(fixedIKM(3))
	require.NoError(t, err)

	idA, idB := ext.ValidatorID{0xa}, ext.ValidatorID{0xb}
	pubKeys := map[ext.ValidatorID][]byte{
		idA: skA.PublicKeyBytes(),
		idB: skB.PublicKeyBytes(),
	}
	scheme := NewScheme(func(v ext.ValidatorID) ([]byte, bool) {
		k, ok := pubKeys[v]
		return k, ok
	})

	msg := []byte("same-commit-message")
	sigA, err := NewSigner(idA, skA).Sign(context.Background(), msg)
	require.NoError(t, err)
	sigB, err := NewSigner(idB, skB).Sign(context.Background(), msg)
	require.NoError(t, err)

	require.True(t, scheme.Verify(idA, msg, sigA))
	require.True(t, scheme.Verify(idB, msg, sigB))

	agg := scheme.Aggregate([]ext.Signature{sigA, sigB})
	require.NotEmpty(t, agg)
	require.False(t, bytes.Equal(agg, sigA), "an aggregate of two signatures must differ from either alone")
}

func TestObserverSignerCannotSign(t *testing.T) {
	var s ObserverSigner
	_, ok := s.ValidatorID()
	require.False(t, ok)

	_, err := s.Sign(context.Background(), []byte("x"))
	require.ErrorIs(t, err, ext.ErrNotAValidator)
}

func TestGenerateKeyRejectsShortIKM(t *testing.T) {
	_, err := GenerateKey(make([]byte, 16))
	require.Error(t, err)
}
