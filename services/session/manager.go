package session

import (
	"sync"

	reviewRepo "blissdrive/database/repository/review"

	"go.uber.org/zap"
)

// Manager hands out one Engine per student context, enforcing the invariant
// that at most one active session exists per student at a time.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine

	Payments PaymentHandler
	Reviews  reviewRepo.ReviewRepository
	Logger   *zap.Logger
}

func NewManager(payments PaymentHandler, reviews reviewRepo.ReviewRepository, logger *zap.Logger) *Manager {
	return &Manager{
		engines:  make(map[string]*Engine),
		Payments: payments,
		Reviews:  reviews,
		Logger:   logger,
	}
}

// EngineFor returns the student's engine, creating an Idle one on first use.
func (m *Manager) EngineFor(studentID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	engine, ok := m.engines[studentID]
	if !ok {
		engine = NewEngine(m.Payments, m.Reviews, m.Logger)
		m.engines[studentID] = engine
	}
	return engine
}

// Close releases every engine's tick source on shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, engine := range m.engines {
		engine.Close()
	}
}
