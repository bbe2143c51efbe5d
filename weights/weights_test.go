package weights

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/quorumkit/tendermint/ext"
)

func TestTotalAndIndividualWeight(t *testing.T) {
	alice := common.HexToAddress("0x1")
	bob := common.HexToAddress("0x2")
	w := New(map[ext.ValidatorID]uint64{alice: 3, bob: 5})

	require.Equal(t, uint64(8), w.TotalWeight())
	require.Equal(t, uint64(3), w.Weight(alice))
	require.Equal(t, uint64(5), w.Weight(bob))
	require.Equal(t, uint64(0), w.Weight(common.HexToAddress("0x3")))
}

func TestProposerIsDeterministicAndOneOfTheSet(t *testing.T) {
	ids := map[ext.ValidatorID]uint64{
		common.HexToAddress("0x1"): 1,
		common.HexToAddress("0x2"): 2,
		common.HexToAddress("0x3"): 3,
	}
	w1 := New(ids)
	w2 := New(ids)

	for r := ext.RoundNumber(0); r < 20; r++ {
		p1 := w1.Proposer(5, r)
		p2 := w2.Proposer(5, r)
		require.Equal(t, p1, p2, "proposer must be a pure function of (number, round)")
		require.Contains(t, ids, p1)
	}
}

func TestProposerVariesAcrossRounds(t *testing.T) {
	ids := map[ext.ValidatorID]uint64{
		common.HexToAddress("0x1"): 1,
		common.HexToAddress("0x2"): 1,
		common.HexToAddress("0x3"): 1,
		common.HexToAddress("0x4"): 1,
	}
	w := New(ids)

	seen := make(map[ext.ValidatorID]bool)
	for r := ext.RoundNumber(0); r < 50; r++ {
		seen[w.Proposer(1, r)] = true
	}
	require.Greater(t, len(seen), 1, "round-robin across many rounds should hit more than one validator")
}

func TestEmptySetProposerIsZeroValue(t *testing.T) {
	w := New(map[ext.ValidatorID]uint64{})
	require.Equal(t, ext.ValidatorID{}, w.Proposer(0, 0))
	require.Equal(t, uint64(0), w.TotalWeight())
}
