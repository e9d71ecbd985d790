package handlers

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"
	"transfer-flow.backend/internal/domain/entities"
	"transfer-flow.backend/internal/infrastructure/blockchain"
	"transfer-flow.backend/internal/infrastructure/wallet"
	"transfer-flow.backend/internal/usecases"
)

type mockWalletGateway struct {
	mock.Mock
}

func (m *mockWalletGateway) RequestAccounts(ctx context.Context) (entities.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Account), args.Error(1)
}

func (m *mockWalletGateway) GetAccounts(ctx context.Context) (entities.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Account), args.Error(1)
}

func (m *mockWalletGateway) SendTransaction(ctx context.Context, params wallet.TxParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

type mockContractClient struct {
	mock.Mock
}

func (m *mockContractClient) PublishTransaction(ctx context.Context, from entities.Account, to string, amount *big.Int, memo string, kind entities.TransferKind) (usecases.PendingHandle, error) {
	args := m.Called(ctx, from, to, amount, memo, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecases.PendingHandle), args.Error(1)
}

type mockPendingHandle struct {
	mock.Mock
}

func (m *mockPendingHandle) Hash() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockPendingHandle) AwaitConfirmation(ctx context.Context) (*blockchain.Confirmation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blockchain.Confirmation), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Upsert(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockUserRepo) GetByAddress(ctx context.Context, address string) (*entities.UserRecord, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserRecord), args.Error(1)
}

func (m *mockUserRepo) AppendTransaction(ctx context.Context, address, txHash string) error {
	args := m.Called(ctx, address, txHash)
	return args.Error(0)
}

type mockTxRepo struct {
	mock.Mock
}

func (m *mockTxRepo) Upsert(ctx context.Context, record *entities.TransactionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockTxRepo) GetByHash(ctx context.Context, hash string) (*entities.TransactionRecord, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionRecord), args.Error(1)
}

func (m *mockTxRepo) ListByUser(ctx context.Context, address string) ([]*entities.TransactionRecord, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TransactionRecord), args.Error(1)
}

type mockHistoryService struct {
	mock.Mock
}

func (m *mockHistoryService) GetUser(ctx context.Context, address string) (*entities.UserRecord, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserRecord), args.Error(1)
}

func (m *mockHistoryService) GetHistory(ctx context.Context, address string) (*entities.UserHistory, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserHistory), args.Error(1)
}
