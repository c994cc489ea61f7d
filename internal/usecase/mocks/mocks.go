// Package mocks provides hand-written test doubles for the usecase
// interfaces. Each mock delegates to an optional func field, so a test only
// wires the calls it cares about.
package mocks

import (
	"context"
	"time"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// MockTransaction implements usecase.Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	CommitCalls   int
	RollbackCalls int
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	m.CommitCalls++
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	m.RollbackCalls++
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager implements usecase.TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockClockRepository implements usecase.ClockRepository.
type MockClockRepository struct {
	GetFunc   func(ctx context.Context) (*domain.Clock, error)
	GetTxFunc func(ctx context.Context, tx usecase.Transaction) (*domain.Clock, error)
	SaveFunc  func(ctx context.Context, tx usecase.Transaction, clock *domain.Clock) error
}

func (m *MockClockRepository) Get(ctx context.Context) (*domain.Clock, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return nil, nil
}

func (m *MockClockRepository) GetTx(ctx context.Context, tx usecase.Transaction) (*domain.Clock, error) {
	if m.GetTxFunc != nil {
		return m.GetTxFunc(ctx, tx)
	}
	return nil, nil
}

func (m *MockClockRepository) Save(ctx context.Context, tx usecase.Transaction, clock *domain.Clock) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, clock)
	}
	return nil
}

// MockLedgerRepository implements usecase.LedgerRepository.
type MockLedgerRepository struct {
	ListByEntityFunc   func(ctx context.Context, entityID string) ([]*domain.LedgerEntry, error)
	ListByEntityTxFunc func(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.LedgerEntry, error)
	AppendFunc         func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	UpdateFunc         func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
}

func (m *MockLedgerRepository) ListByEntity(ctx context.Context, entityID string) ([]*domain.LedgerEntry, error) {
	if m.ListByEntityFunc != nil {
		return m.ListByEntityFunc(ctx, entityID)
	}
	return nil, nil
}

func (m *MockLedgerRepository) ListByEntityTx(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.LedgerEntry, error) {
	if m.ListByEntityTxFunc != nil {
		return m.ListByEntityTxFunc(ctx, tx, entityID)
	}
	return nil, nil
}

func (m *MockLedgerRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, entry)
	}
	return nil
}

func (m *MockLedgerRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}
	return nil
}

// MockOrderRepository implements usecase.OrderRepository.
type MockOrderRepository struct {
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Order, error)
	GetByIDTxFunc      func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error)
	ListByEntityFunc   func(ctx context.Context, entityID string) ([]*domain.Order, error)
	ListByEntityTxFunc func(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.Order, error)
	AppendFunc         func(ctx context.Context, tx usecase.Transaction, order *domain.Order) error
	UpdateFunc         func(ctx context.Context, tx usecase.Transaction, order *domain.Order) error
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, tx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) ListByEntity(ctx context.Context, entityID string) ([]*domain.Order, error) {
	if m.ListByEntityFunc != nil {
		return m.ListByEntityFunc(ctx, entityID)
	}
	return nil, nil
}

func (m *MockOrderRepository) ListByEntityTx(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.Order, error) {
	if m.ListByEntityTxFunc != nil {
		return m.ListByEntityTxFunc(ctx, tx, entityID)
	}
	return nil, nil
}

func (m *MockOrderRepository) Append(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, order)
	}
	return nil
}

func (m *MockOrderRepository) Update(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, order)
	}
	return nil
}

// MockPortfolioRepository implements usecase.PortfolioRepository.
type MockPortfolioRepository struct {
	ListByEntityFunc   func(ctx context.Context, entityID string) ([]*domain.Holding, error)
	ListByEntityTxFunc func(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.Holding, error)
	AppendFunc         func(ctx context.Context, tx usecase.Transaction, holding *domain.Holding) error
	RemoveFunc         func(ctx context.Context, tx usecase.Transaction, id string) error
}

func (m *MockPortfolioRepository) ListByEntity(ctx context.Context, entityID string) ([]*domain.Holding, error) {
	if m.ListByEntityFunc != nil {
		return m.ListByEntityFunc(ctx, entityID)
	}
	return nil, nil
}

func (m *MockPortfolioRepository) ListByEntityTx(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.Holding, error) {
	if m.ListByEntityTxFunc != nil {
		return m.ListByEntityTxFunc(ctx, tx, entityID)
	}
	return nil, nil
}

func (m *MockPortfolioRepository) Append(ctx context.Context, tx usecase.Transaction, holding *domain.Holding) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, holding)
	}
	return nil
}

func (m *MockPortfolioRepository) Remove(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, tx, id)
	}
	return nil
}

// MockAuditRepository implements usecase.AuditRepository.
type MockAuditRepository struct {
	ListByEntityFunc func(ctx context.Context, entityID string) ([]*domain.AuditEntry, error)
	AppendFunc       func(ctx context.Context, tx usecase.Transaction, entry *domain.AuditEntry) error

	Appended []*domain.AuditEntry
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entityID string) ([]*domain.AuditEntry, error) {
	if m.ListByEntityFunc != nil {
		return m.ListByEntityFunc(ctx, entityID)
	}
	return nil, nil
}

func (m *MockAuditRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.AuditEntry) error {
	m.Appended = append(m.Appended, entry)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, entry)
	}
	return nil
}

// MockPolicyRepository implements usecase.PolicyRepository.
type MockPolicyRepository struct {
	GetByEntityFunc func(ctx context.Context, entityID string) (*domain.Policy, error)
	SaveFunc        func(ctx context.Context, tx usecase.Transaction, entityID string, policy *domain.Policy) error
}

func (m *MockPolicyRepository) GetByEntity(ctx context.Context, entityID string) (*domain.Policy, error) {
	if m.GetByEntityFunc != nil {
		return m.GetByEntityFunc(ctx, entityID)
	}
	return nil, domain.ErrPolicyNotFound
}

func (m *MockPolicyRepository) Save(ctx context.Context, tx usecase.Transaction, entityID string, policy *domain.Policy) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, entityID, policy)
	}
	return nil
}

// MockEntityRepository implements usecase.EntityRepository.
type MockEntityRepository struct {
	ListFunc    func(ctx context.Context) ([]*domain.Entity, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.Entity, error)
	SaveFunc    func(ctx context.Context, tx usecase.Transaction, entity *domain.Entity) error
}

func (m *MockEntityRepository) List(ctx context.Context) ([]*domain.Entity, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockEntityRepository) GetByID(ctx context.Context, id string) (*domain.Entity, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrEntityNotFound
}

func (m *MockEntityRepository) Save(ctx context.Context, tx usecase.Transaction, entity *domain.Entity) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, entity)
	}
	return nil
}

// StubIDGenerator hands out sequential IDs with a fixed prefix.
type StubIDGenerator struct {
	Prefix string
	next   int
}

func (g *StubIDGenerator) Generate() string {
	g.next++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return prefix + "-" + itoa(g.next)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// MockSessionStore implements usecase.SessionStore in memory.
type MockSessionStore struct {
	Sessions map[string]*domain.Session
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{Sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionStore) Put(_ context.Context, token string, session *domain.Session, _ time.Duration) error {
	m.Sessions[token] = session
	return nil
}

func (m *MockSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	session, ok := m.Sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionStore) Delete(_ context.Context, token string) error {
	delete(m.Sessions, token)
	return nil
}
