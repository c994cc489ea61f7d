package usecase

import (
	"context"
	"time"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// Transaction represents a unit of work spanning multiple store mutations.
// Either every staged write is persisted on Commit, or none is.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager begins transactions against the document store.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// ClockRepository persists the virtual business clock.
type ClockRepository interface {
	Get(ctx context.Context) (*domain.Clock, error)
	GetTx(ctx context.Context, tx Transaction) (*domain.Clock, error)
	Save(ctx context.Context, tx Transaction, clock *domain.Clock) error
}

// LedgerRepository persists cash ledger entries. The ledger is append-only
// except for status advances on existing entries.
type LedgerRepository interface {
	ListByEntity(ctx context.Context, entityID string) ([]*domain.LedgerEntry, error)
	ListByEntityTx(ctx context.Context, tx Transaction, entityID string) ([]*domain.LedgerEntry, error)
	Append(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	Update(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
}

// OrderRepository persists investment orders.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Order, error)
	ListByEntity(ctx context.Context, entityID string) ([]*domain.Order, error)
	ListByEntityTx(ctx context.Context, tx Transaction, entityID string) ([]*domain.Order, error)
	Append(ctx context.Context, tx Transaction, order *domain.Order) error
	Update(ctx context.Context, tx Transaction, order *domain.Order) error
}

// PortfolioRepository persists active holdings. Matured holdings are removed.
type PortfolioRepository interface {
	ListByEntity(ctx context.Context, entityID string) ([]*domain.Holding, error)
	ListByEntityTx(ctx context.Context, tx Transaction, entityID string) ([]*domain.Holding, error)
	Append(ctx context.Context, tx Transaction, holding *domain.Holding) error
	Remove(ctx context.Context, tx Transaction, id string) error
}

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	ListByEntity(ctx context.Context, entityID string) ([]*domain.AuditEntry, error)
	Append(ctx context.Context, tx Transaction, entry *domain.AuditEntry) error
}

// PolicyRepository persists per-entity investment policies.
type PolicyRepository interface {
	GetByEntity(ctx context.Context, entityID string) (*domain.Policy, error)
	Save(ctx context.Context, tx Transaction, entityID string, policy *domain.Policy) error
}

// EntityRepository persists the onboarded business entities.
type EntityRepository interface {
	List(ctx context.Context) ([]*domain.Entity, error)
	GetByID(ctx context.Context, id string) (*domain.Entity, error)
	Save(ctx context.Context, tx Transaction, entity *domain.Entity) error
}

// SessionStore keeps login sessions with a TTL, outside the document store.
type SessionStore interface {
	Put(ctx context.Context, token string, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// IDGenerator generates unique identifiers for new records.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore tracks processed request keys for safe retries.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string) (existing []byte, isNew bool, err error)
	Update(ctx context.Context, key string, response []byte) error
}
