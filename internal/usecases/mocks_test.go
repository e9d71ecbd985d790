package usecases_test

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"
	"transfer-flow.backend/internal/domain/entities"
	"transfer-flow.backend/internal/infrastructure/blockchain"
	"transfer-flow.backend/internal/infrastructure/wallet"
	"transfer-flow.backend/internal/usecases"
)

// MockWalletGateway mocks the wallet provider boundary
type MockWalletGateway struct {
	mock.Mock
}

func (m *MockWalletGateway) RequestAccounts(ctx context.Context) (entities.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Account), args.Error(1)
}

func (m *MockWalletGateway) GetAccounts(ctx context.Context) (entities.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Account), args.Error(1)
}

func (m *MockWalletGateway) SendTransaction(ctx context.Context, params wallet.TxParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

// MockContractClient mocks the registry contract client
type MockContractClient struct {
	mock.Mock
}

func (m *MockContractClient) PublishTransaction(ctx context.Context, from entities.Account, to string, amount *big.Int, memo string, kind entities.TransferKind) (usecases.PendingHandle, error) {
	args := m.Called(ctx, from, to, amount, memo, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecases.PendingHandle), args.Error(1)
}

// MockPendingHandle mocks a broadcast submission awaiting finality
type MockPendingHandle struct {
	mock.Mock
}

func (m *MockPendingHandle) Hash() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPendingHandle) AwaitConfirmation(ctx context.Context) (*blockchain.Confirmation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blockchain.Confirmation), args.Error(1)
}

// MockUserRecordRepository mocks user record persistence
type MockUserRecordRepository struct {
	mock.Mock
}

func (m *MockUserRecordRepository) Upsert(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockUserRecordRepository) GetByAddress(ctx context.Context, address string) (*entities.UserRecord, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserRecord), args.Error(1)
}

func (m *MockUserRecordRepository) AppendTransaction(ctx context.Context, address, txHash string) error {
	args := m.Called(ctx, address, txHash)
	return args.Error(0)
}

// MockTransactionRecordRepository mocks transaction record persistence
type MockTransactionRecordRepository struct {
	mock.Mock
}

func (m *MockTransactionRecordRepository) Upsert(ctx context.Context, record *entities.TransactionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransactionRecordRepository) GetByHash(ctx context.Context, hash string) (*entities.TransactionRecord, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionRecord), args.Error(1)
}

func (m *MockTransactionRecordRepository) ListByUser(ctx context.Context, address string) ([]*entities.TransactionRecord, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TransactionRecord), args.Error(1)
}
