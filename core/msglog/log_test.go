package msglog

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/quorumkit/tendermint/core/cserr"
	"github.com/quorumkit/tendermint/core/message"
	"github.com/quorumkit/tendermint/ext"
)

type equalWeights map[ext.ValidatorID]uint64

func (w equalWeights) TotalWeight() uint64 {
	var total uint64
	for _, v := range w {
		total += v
	}
	return total
}
func (w equalWeights) Weight(v ext.ValidatorID) uint64 { return w[v] }
func (w equalWeights) Proposer(ext.BlockNumber, ext.RoundNumber) ext.ValidatorID {
	return ext.ValidatorID{}
}

var (
	alice = common.HexToAddress("0x1")
	bob   = common.HexToAddress("0x2")
	carol = common.HexToAddress("0x3")
)

func threeValidators() equalWeights {
	return equalWeights{alice: 1, bob: 1, carol: 1}
}

func TestLogNewVsReplay(t *testing.T) {
	l := New(threeValidators())
	id := common.HexToHash("0x1")

	isNew, err := l.Log(alice, 0, &message.Prevote{BlockID: &id})
	require.NoError(t, err)
	require.True(t, isNew)

	isNew, err = l.Log(alice, 0, &message.Prevote{BlockID: &id})
	require.NoError(t, err)
	require.False(t, isNew, "an identical replay is not new")
}

func TestLogEquivocationSameStep(t *testing.T) {
	l := New(threeValidators())
	id1 := common.HexToHash("0x1")
	id2 := common.HexToHash("0x2")

	_, err := l.Log(alice, 0, &message.Prevote{BlockID: &id1})
	require.NoError(t, err)

	_, err = l.Log(alice, 0, &message.Prevote{BlockID: &id2})
	v, ok := cserr.AsMalicious(err)
	require.True(t, ok)
	require.Equal(t, alice, v)
}

func TestLogEquivocationAcrossRoundsOnPrecommit(t *testing.T) {
	l := New(threeValidators())
	id1 := common.HexToHash("0x1")
	id2 := common.HexToHash("0x2")

	_, err := l.Log(alice, 0, &message.Precommit{BlockID: &id1})
	require.NoError(t, err)

	_, err = l.Log(alice, 1, &message.Precommit{BlockID: &id2})
	_, ok := cserr.AsMalicious(err)
	require.True(t, ok, "a second distinct precommit block id in a later round is still equivocation")
}

func TestMessageInstancesAndConsensus(t *testing.T) {
	l := New(threeValidators())
	id := common.HexToHash("0x1")

	_, _ = l.Log(alice, 0, &message.Prevote{BlockID: &id})
	_, _ = l.Log(bob, 0, &message.Prevote{BlockID: &id})
	_, _ = l.Log(carol, 0, &message.Prevote{})

	participating, matching := l.MessageInstances(0, &message.Prevote{BlockID: &id})
	require.Equal(t, uint64(3), participating)
	require.Equal(t, uint64(2), matching)

	require.False(t, l.HasConsensus(0, &message.Prevote{BlockID: &id}), "2 of 3 is below threshold 3")

	_, _ = l.Log(carol, 1, &message.Precommit{BlockID: &id})
	require.Equal(t, uint64(1), l.RoundParticipation(1))
}

func TestPrecommitsForBlock(t *testing.T) {
	l := New(threeValidators())
	id := common.HexToHash("0x1")
	sigA := ext.Signature("sig-a")
	sigB := ext.Signature("sig-b")

	_, _ = l.Log(alice, 0, &message.Precommit{BlockID: &id, Signature: sigA})
	_, _ = l.Log(bob, 0, &message.Precommit{BlockID: &id, Signature: sigB})
	_, _ = l.Log(carol, 0, &message.Precommit{})

	validators, sigs := l.Precommits(0, id)
	require.Len(t, validators, 2)
	require.Len(t, sigs, 2)
	require.ElementsMatch(t, []ext.ValidatorID{alice, bob}, validators)
}
