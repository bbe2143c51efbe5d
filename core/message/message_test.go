package message

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/quorumkit/tendermint/ext"
)

type fakeBlock struct {
	id   ext.BlockID
	data []byte
}

func (b fakeBlock) ID() ext.BlockID { return b.id }
func (b fakeBlock) Encode() []byte  { return b.data }

func TestProposalEqual(t *testing.T) {
	blk := fakeBlock{id: common.HexToHash("0x1"), data: []byte("a")}
	other := fakeBlock{id: common.HexToHash("0x1"), data: []byte("a")}
	differentBlk := fakeBlock{id: common.HexToHash("0x2"), data: []byte("b")}

	vr := ext.RoundNumber(2)
	p1 := &Proposal{ValidRound: &vr, Block: blk}
	p2 := &Proposal{ValidRound: &vr, Block: other}
	require.True(t, p1.Equal(p2))

	p3 := &Proposal{Block: blk}
	require.False(t, p1.Equal(p3), "differing ValidRound nilness must not be equal")

	p4 := &Proposal{ValidRound: &vr, Block: differentBlk}
	require.False(t, p1.Equal(p4))
}

func TestPrevoteEqual(t *testing.T) {
	id := common.HexToHash("0x1")
	require.True(t, (&Prevote{BlockID: &id}).Equal(&Prevote{BlockID: &id}))
	require.True(t, (&Prevote{}).Equal(&Prevote{}))
	require.False(t, (&Prevote{}).Equal(&Prevote{BlockID: &id}))
}

func TestPrecommitEqualIgnoresSignature(t *testing.T) {
	id := common.HexToHash("0x1")
	a := &Precommit{BlockID: &id, Signature: ext.Signature("sig-a")}
	b := &Precommit{BlockID: &id, Signature: ext.Signature("sig-b")}
	require.True(t, a.Equal(b), "signature must not affect equality")

	otherID := common.HexToHash("0x2")
	c := &Precommit{BlockID: &otherID}
	require.False(t, a.Equal(c))
}

func TestMessageEncodeDistinguishesVariants(t *testing.T) {
	blk := fakeBlock{id: common.HexToHash("0x1"), data: []byte("block-bytes")}
	id := blk.ID()

	msgs := []Message{
		{Sender: common.HexToAddress("0xaa"), Number: 1, Round: 0, Data: &Proposal{Block: blk}},
		{Sender: common.HexToAddress("0xaa"), Number: 1, Round: 0, Data: &Prevote{BlockID: &id}},
		{Sender: common.HexToAddress("0xaa"), Number: 1, Round: 0, Data: &Precommit{BlockID: &id, Signature: ext.Signature("sig")}},
	}
	seen := make(map[string]bool)
	for _, msg := range msgs {
		enc := msg.Encode()
		require.NotEmpty(t, enc)
		require.False(t, seen[string(enc)], "encodings of distinct step variants must not collide")
		seen[string(enc)] = true
	}
}

func TestCommitMsgIsLittleEndianAndBitExact(t *testing.T) {
	id := common.HexToHash("0x1")
	got := CommitMsg(0x0102030405060708, id)
	require.Len(t, got, 8+len(id))
	require.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, got[:8])
	require.Equal(t, id[:], got[8:])
}
