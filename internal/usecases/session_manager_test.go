package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"transfer-flow.backend/internal/domain/entities"
	"transfer-flow.backend/internal/usecases"
)

func newManagerFixture(gateway *MockWalletGateway, users *MockUserRecordRepository) *usecases.SessionManager {
	return usecases.NewSessionManager(func() *usecases.TransactionOrchestrator {
		return usecases.NewTransactionOrchestrator(gateway, new(MockContractClient), users, new(MockTransactionRecordRepository))
	})
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	gateway := new(MockWalletGateway)
	users := new(MockUserRecordRepository)
	gateway.On("GetAccounts", mock.Anything).Return(entities.Account(""), nil)

	manager := newManagerFixture(gateway, users)
	id, orchestrator := manager.Create(context.Background())

	require.NotEmpty(t, id)
	require.NotNil(t, orchestrator)

	got, ok := manager.Get(id)
	assert.True(t, ok)
	assert.Same(t, orchestrator, got)
}

func TestSessionManager_CreateAttemptsSilentReconnect(t *testing.T) {
	gateway := new(MockWalletGateway)
	users := new(MockUserRecordRepository)
	gateway.On("GetAccounts", mock.Anything).Return(entities.Account("0xABC"), nil).Once()
	users.On("Upsert", mock.Anything, "0xABC").Return(nil).Once()

	manager := newManagerFixture(gateway, users)
	_, orchestrator := manager.Create(context.Background())

	assert.Equal(t, entities.StateConnected, orchestrator.State())
	assert.Equal(t, entities.Account("0xABC"), orchestrator.Account())
}

func TestSessionManager_CreateSurvivesReconnectFailure(t *testing.T) {
	gateway := new(MockWalletGateway)
	users := new(MockUserRecordRepository)
	gateway.On("GetAccounts", mock.Anything).Return(entities.Account(""), errors.New("provider unreachable")).Once()

	manager := newManagerFixture(gateway, users)
	id, orchestrator := manager.Create(context.Background())

	require.NotNil(t, orchestrator)
	assert.Equal(t, entities.StateDisconnected, orchestrator.State())

	_, ok := manager.Get(id)
	assert.True(t, ok)
}

func TestSessionManager_SessionsAreIsolated(t *testing.T) {
	gateway := new(MockWalletGateway)
	users := new(MockUserRecordRepository)
	gateway.On("GetAccounts", mock.Anything).Return(entities.Account(""), nil)

	manager := newManagerFixture(gateway, users)
	idA, orchestratorA := manager.Create(context.Background())
	idB, orchestratorB := manager.Create(context.Background())

	require.NotEqual(t, idA, idB)
	require.NotSame(t, orchestratorA, orchestratorB)

	require.NoError(t, orchestratorA.UpdateForm("addressTo", "0xDEF"))
	assert.Empty(t, orchestratorB.FormData().AddressTo)
}

func TestSessionManager_Delete(t *testing.T) {
	gateway := new(MockWalletGateway)
	users := new(MockUserRecordRepository)
	gateway.On("GetAccounts", mock.Anything).Return(entities.Account(""), nil)

	manager := newManagerFixture(gateway, users)
	id, _ := manager.Create(context.Background())

	manager.Delete(id)
	_, ok := manager.Get(id)
	assert.False(t, ok)
}

func TestSessionManager_ReapIdle(t *testing.T) {
	gateway := new(MockWalletGateway)
	users := new(MockUserRecordRepository)
	gateway.On("GetAccounts", mock.Anything).Return(entities.Account(""), nil)

	manager := newManagerFixture(gateway, users)
	id, _ := manager.Create(context.Background())

	assert.Equal(t, 0, manager.ReapIdle(time.Hour))
	_, ok := manager.Get(id)
	assert.True(t, ok)

	assert.Equal(t, 1, manager.ReapIdle(0))
	_, ok = manager.Get(id)
	assert.False(t, ok)
}

func TestSessionManager_GetUnknownID(t *testing.T) {
	manager := newManagerFixture(new(MockWalletGateway), new(MockUserRecordRepository))
	_, ok := manager.Get("nope")
	assert.False(t, ok)
}
