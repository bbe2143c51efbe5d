// Hand-written in the shape MockGen produces.
// Source: ext/ext.go, core/network.go

// Package mocks provides gomock doubles for the ext and core contracts,
// written in the shape of the teacher's own backend_mock.go.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	message "github.com/quorumkit/tendermint/core/message"
	ext "github.com/quorumkit/tendermint/ext"
)

// MockBlock is a mock of the ext.Block interface.
type MockBlock struct {
	ctrl     *gomock.Controller
	recorder *MockBlockMockRecorder
}

type MockBlockMockRecorder struct {
	mock *MockBlock
}

func NewMockBlock(ctrl *gomock.Controller) *MockBlock {
	mock := &MockBlock{ctrl: ctrl}
	mock.recorder = &MockBlockMockRecorder{mock}
	return mock
}

func (m *MockBlock) EXPECT() *MockBlockMockRecorder {
	return m.recorder
}

func (m *MockBlock) ID() ext.BlockID {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ID")
	ret0, _ := ret[0].(ext.BlockID)
	return ret0
}

func (mr *MockBlockMockRecorder) ID() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ID", reflect.TypeOf((*MockBlock)(nil).ID))
}

func (m *MockBlock) Encode() []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Encode")
	ret0, _ := ret[0].([]byte)
	return ret0
}

func (mr *MockBlockMockRecorder) Encode() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Encode", reflect.TypeOf((*MockBlock)(nil).Encode))
}

// MockSigner is a mock of the ext.Signer interface.
type MockSigner struct {
	ctrl     *gomock.Controller
	recorder *MockSignerMockRecorder
}

type MockSignerMockRecorder struct {
	mock *MockSigner
}

func NewMockSigner(ctrl *gomock.Controller) *MockSigner {
	mock := &MockSigner{ctrl: ctrl}
	mock.recorder = &MockSignerMockRecorder{mock}
	return mock
}

func (m *MockSigner) EXPECT() *MockSignerMockRecorder {
	return m.recorder
}

func (m *MockSigner) ValidatorID() (ext.ValidatorID, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidatorID")
	ret0, _ := ret[0].(ext.ValidatorID)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (mr *MockSignerMockRecorder) ValidatorID() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidatorID", reflect.TypeOf((*MockSigner)(nil).ValidatorID))
}

func (m *MockSigner) Sign(ctx context.Context, msg []byte) (ext.Signature, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sign", ctx, msg)
	ret0, _ := ret[0].(ext.Signature)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSignerMockRecorder) Sign(ctx, msg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sign", reflect.TypeOf((*MockSigner)(nil).Sign), ctx, msg)
}

// MockSignatureScheme is a mock of the ext.SignatureScheme interface.
type MockSignatureScheme struct {
	ctrl     *gomock.Controller
	recorder *MockSignatureSchemeMockRecorder
}

type MockSignatureSchemeMockRecorder struct {
	mock *MockSignatureScheme
}

func NewMockSignatureScheme(ctrl *gomock.Controller) *MockSignatureScheme {
	mock := &MockSignatureScheme{ctrl: ctrl}
	mock.recorder = &MockSignatureSchemeMockRecorder{mock}
	return mock
}

func (m *MockSignatureScheme) EXPECT() *MockSignatureSchemeMockRecorder {
	return m.recorder
}

func (m *MockSignatureScheme) Verify(validator ext.ValidatorID, msg []byte, sig ext.Signature) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Verify", validator, msg, sig)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockSignatureSchemeMockRecorder) Verify(validator, msg, sig interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Verify", reflect.TypeOf((*MockSignatureScheme)(nil).Verify), validator, msg, sig)
}

func (m *MockSignatureScheme) Aggregate(sigs []ext.Signature) ext.Signature {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Aggregate", sigs)
	ret0, _ := ret[0].(ext.Signature)
	return ret0
}

func (mr *MockSignatureSchemeMockRecorder) Aggregate(sigs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Aggregate", reflect.TypeOf((*MockSignatureScheme)(nil).Aggregate), sigs)
}

// MockWeights is a mock of the ext.Weights interface.
type MockWeights struct {
	ctrl     *gomock.Controller
	recorder *MockWeightsMockRecorder
}

type MockWeightsMockRecorder struct {
	mock *MockWeights
}

func NewMockWeights(ctrl *gomock.Controller) *MockWeights {
	mock := &MockWeights{ctrl: ctrl}
	mock.recorder = &MockWeightsMockRecorder{mock}
	return mock
}

func (m *MockWeights) EXPECT() *MockWeightsMockRecorder {
	return m.recorder
}

func (m *MockWeights) TotalWeight() uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TotalWeight")
	ret0, _ := ret[0].(uint64)
	return ret0
}

func (mr *MockWeightsMockRecorder) TotalWeight() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TotalWeight", reflect.TypeOf((*MockWeights)(nil).TotalWeight))
}

func (m *MockWeights) Weight(v ext.ValidatorID) uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Weight", v)
	ret0, _ := ret[0].(uint64)
	return ret0
}

func (mr *MockWeightsMockRecorder) Weight(v interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Weight", reflect.TypeOf((*MockWeights)(nil).Weight), v)
}

func (m *MockWeights) Proposer(number ext.BlockNumber, round ext.RoundNumber) ext.ValidatorID {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Proposer", number, round)
	ret0, _ := ret[0].(ext.ValidatorID)
	return ret0
}

func (mr *MockWeightsMockRecorder) Proposer(number, round interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Proposer", reflect.TypeOf((*MockWeights)(nil).Proposer), number, round)
}

// MockNetwork is a mock of the core.Network interface.
type MockNetwork struct {
	ctrl     *gomock.Controller
	recorder *MockNetworkMockRecorder
}

type MockNetworkMockRecorder struct {
	mock *MockNetwork
}

func NewMockNetwork(ctrl *gomock.Controller) *MockNetwork {
	mock := &MockNetwork{ctrl: ctrl}
	mock.recorder = &MockNetworkMockRecorder{mock}
	return mock
}

func (m *MockNetwork) EXPECT() *MockNetworkMockRecorder {
	return m.recorder
}

func (m *MockNetwork) Weights() ext.Weights {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Weights")
	ret0, _ := ret[0].(ext.Weights)
	return ret0
}

func (mr *MockNetworkMockRecorder) Weights() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Weights", reflect.TypeOf((*MockNetwork)(nil).Weights))
}

func (m *MockNetwork) Signer() ext.Signer {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Signer")
	ret0, _ := ret[0].(ext.Signer)
	return ret0
}

func (mr *MockNetworkMockRecorder) Signer() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Signer", reflect.TypeOf((*MockNetwork)(nil).Signer))
}

func (m *MockNetwork) SignatureScheme() ext.SignatureScheme {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SignatureScheme")
	ret0, _ := ret[0].(ext.SignatureScheme)
	return ret0
}

func (mr *MockNetworkMockRecorder) SignatureScheme() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SignatureScheme", reflect.TypeOf((*MockNetwork)(nil).SignatureScheme))
}

func (m *MockNetwork) Broadcast(ctx context.Context, signed message.SignedMessage) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Broadcast", ctx, signed)
}

func (mr *MockNetworkMockRecorder) Broadcast(ctx, signed interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Broadcast", reflect.TypeOf((*MockNetwork)(nil).Broadcast), ctx, signed)
}

func (m *MockNetwork) Slash(ctx context.Context, validator ext.ValidatorID) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Slash", ctx, validator)
}

func (mr *MockNetworkMockRecorder) Slash(ctx, validator interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Slash", reflect.TypeOf((*MockNetwork)(nil).Slash), ctx, validator)
}

func (m *MockNetwork) Validate(ctx context.Context, block ext.Block) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Validate", ctx, block)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockNetworkMockRecorder) Validate(ctx, block interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Validate", reflect.TypeOf((*MockNetwork)(nil).Validate), ctx, block)
}

func (m *MockNetwork) AddBlock(ctx context.Context, block ext.Block, commit ext.Commit) ext.Block {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddBlock", ctx, block, commit)
	ret0, _ := ret[0].(ext.Block)
	return ret0
}

func (mr *MockNetworkMockRecorder) AddBlock(ctx, block, commit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddBlock", reflect.TypeOf((*MockNetwork)(nil).AddBlock), ctx, block, commit)
}

func (m *MockNetwork) VerifyCommit(block ext.BlockID, commit ext.Commit) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "VerifyCommit", block, commit)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockNetworkMockRecorder) VerifyCommit(block, commit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "VerifyCommit", reflect.TypeOf((*MockNetwork)(nil).VerifyCommit), block, commit)
}
