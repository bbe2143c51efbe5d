package message

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/quorumkit/tendermint/ext"
)

// Message is the unsigned consensus message: who sent it, for which
// (number, round), and what it says.
type Message struct {
	Sender ext.ValidatorID
	Number ext.BlockNumber
	Round  ext.RoundNumber
	Data   Data
}

// wireProposal, wirePrevote and wirePrecommit are the flat, RLP-friendly
// shapes of each Data variant. RLP has no native Option, so an "IsNil"
// companion field stands in for it, mirroring the teacher's own
// ValidRound/IsValidRoundNil pattern in messages/messages.go.
type wireProposal struct {
	HasValidRound bool
	ValidRound    uint16
	Block         []byte
}

type wirePrevote struct {
	HasBlockID bool
	BlockID    ext.BlockID
}

type wirePrecommit struct {
	HasBlockID bool
	BlockID    ext.BlockID
	Signature  []byte
}

type wireMessage struct {
	Sender ext.ValidatorID
	Number uint32
	Round  uint16
	Step   uint8
	Body   []byte
}

// Encode produces the canonical, deterministic byte encoding of the
// message: a tagged, self-delimiting RLP structure, used both as the bytes
// a Signer signs and the bytes a SignatureScheme verifies against. Integers
// are written in RLP's minimal big-endian form, not at a fixed width.
func (m Message) Encode() []byte {
	var body []byte
	switch d := m.Data.(type) {
	case *Proposal:
		w := wireProposal{Block: d.Block.Encode()}
		if d.ValidRound != nil {
			w.HasValidRound = true
			w.ValidRound = uint16(*d.ValidRound)
		}
		body = mustEncode(w)
	case *Prevote:
		w := wirePrevote{}
		if d.BlockID != nil {
			w.HasBlockID = true
			w.BlockID = *d.BlockID
		}
		body = mustEncode(w)
	case *Precommit:
		w := wirePrecommit{Signature: []byte(d.Signature)}
		if d.BlockID != nil {
			w.HasBlockID = true
			w.BlockID = *d.BlockID
		}
		body = mustEncode(w)
	default:
		panic(fmt.Sprintf("message: unknown data variant %T", m.Data))
	}

	wm := wireMessage{
		Sender: m.Sender,
		Number: uint32(m.Number),
		Round:  uint16(m.Round),
		Step:   uint8(m.Data.Step()),
		Body:   body,
	}
	return mustEncode(wm)
}

func mustEncode(v interface{}) []byte {
	b, err := rlp.EncodeToBytes(v)
	if err != nil {
		// Every wire* struct above only holds fixed-width ints, bools, byte
		// slices and arrays: RLP cannot fail to encode them.
		panic(fmt.Sprintf("message: unreachable rlp encode failure: %v", err))
	}
	return b
}

// SignedMessage is a Message together with the signature covering its
// canonical encoding.
type SignedMessage struct {
	Msg Message
	Sig ext.Signature
}

// VerifySignature checks Sig against Msg's canonical encoding under scheme.
func (sm SignedMessage) VerifySignature(scheme ext.SignatureScheme) bool {
	return scheme.Verify(sm.Msg.Sender, sm.Msg.Encode(), sm.Sig)
}

// CommitMsg is the bit-exact byte string a Precommit signature, and a
// Commit's aggregate signature, are computed over: the little-endian
// end-time followed directly by the block id bytes, with no length prefix
// or separator so every implementation of the protocol agrees byte for
// byte.
func CommitMsg(endTime uint64, id ext.BlockID) []byte {
	buf := make([]byte, 8+len(id))
	binary.LittleEndian.PutUint64(buf, endTime)
	copy(buf[8:], id[:])
	return buf
}
