package usecases

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"transfer-flow.backend/pkg/logger"
	"transfer-flow.backend/pkg/utils"
)

// OrchestratorFactory builds a fresh orchestrator for a new session.
type OrchestratorFactory func() *TransactionOrchestrator

// SessionManager maps session IDs to orchestrator instances, one per
// browser tab. Orchestrator state lives in memory for the lifetime of
// the session.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*TransactionOrchestrator
	lastSeen map[string]time.Time
	factory  OrchestratorFactory
	now      func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(factory OrchestratorFactory) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*TransactionOrchestrator),
		lastSeen: make(map[string]time.Time),
		factory:  factory,
		now:      time.Now,
	}
}

// Create starts a new session and attempts a silent reconnect so a
// previously authorized wallet comes back without a prompt.
func (m *SessionManager) Create(ctx context.Context) (string, *TransactionOrchestrator) {
	// Time-ordered IDs keep session listings in creation order in logs.
	id := utils.GenerateUUIDv7().String()
	orchestrator := m.factory()

	if _, err := orchestrator.ReconnectSilently(ctx); err != nil {
		// A provider fault here only means no silent reconnect; the
		// user can still connect interactively.
		logger.Debug(ctx, "silent reconnect failed", zap.String("session_id", id), zap.Error(err))
	}

	m.mu.Lock()
	m.sessions[id] = orchestrator
	m.lastSeen[id] = m.now()
	m.mu.Unlock()
	return id, orchestrator
}

// Get returns the orchestrator for a session ID and marks it active
func (m *SessionManager) Get(id string) (*TransactionOrchestrator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orchestrator, ok := m.sessions[id]
	if ok {
		m.lastSeen[id] = m.now()
	}
	return orchestrator, ok
}

// Delete removes a session
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.lastSeen, id)
}

// ReapIdle drops sessions not touched within maxIdle and returns how
// many were removed. A session mid-submission counts as active because
// the HTTP request that drives it touched it at submit time; maxIdle is
// expected to exceed the confirmation timeout.
func (m *SessionManager) ReapIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	reaped := 0
	for id, seen := range m.lastSeen {
		if seen.Before(cutoff) {
			delete(m.sessions, id)
			delete(m.lastSeen, id)
			reaped++
		}
	}
	return reaped
}
