// Package weights provides a concrete ext.Weights: a static weight table
// plus the deterministic weighted round-robin proposer selection every
// honest node must compute identically.
package weights

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/exp/slices"

	"github.com/quorumkit/tendermint/ext"
)

// Static is an immutable, weighted validator set.
type Static struct {
	ids     []ext.ValidatorID
	weight  map[ext.ValidatorID]uint64
	total   uint64
	cumUpTo []uint64 // cumUpTo[i] = sum of weight[ids[0..i]] inclusive
}

// New builds a Static set from a weight table. Validators are ordered
// lexicographically by id, which is both the deterministic tie-break spec
// §4.1 requires and the iteration order used to build the cumulative
// weight table the proposer lookup walks.
func New(table map[ext.ValidatorID]uint64) *Static {
	ids := make([]ext.ValidatorID, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b ext.ValidatorID) bool {
		return a.Hex() < b.Hex()
	})

	s := &Static{
		ids:     ids,
		weight:  make(map[ext.ValidatorID]uint64, len(table)),
		cumUpTo: make([]uint64, len(ids)),
	}
	var running uint64
	for i, id := range ids {
		w := table[id]
		s.weight[id] = w
		running += w
		s.cumUpTo[i] = running
	}
	s.total = running
	return s
}

func (s *Static) TotalWeight() uint64 { return s.total }

func (s *Static) Weight(v ext.ValidatorID) uint64 { return s.weight[v] }

// Proposer selects a validator for (number, round) with probability
// proportional to weight: it hashes (number, round) into the weight range
// [0, total) and returns whichever validator's cumulative-weight bucket
// contains that point. Because the hash and the cumulative table are both
// pure functions of public inputs, every honest node lands on the same
// validator.
func (s *Static) Proposer(number ext.BlockNumber, round ext.RoundNumber) ext.ValidatorID {
	if s.total == 0 || len(s.ids) == 0 {
		return ext.ValidatorID{}
	}
	point := seed(number, round) % s.total
	i, _ := slices.BinarySearch(s.cumUpTo, point+1)
	if i >= len(s.ids) {
		i = len(s.ids) - 1
	}
	return s.ids[i]
}

// seed mixes (number, round) into a uniform 64-bit value via Keccak256, so
// consecutive rounds of the same height don't cluster in a narrow band of
// the weight range.
func seed(number ext.BlockNumber, round ext.RoundNumber) uint64 {
	var buf [6]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(number))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(round))
	h := crypto.Keccak256(buf[:])
	return binary.LittleEndian.Uint64(h[:8])
}
