package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// AuthUsecase issues and resolves demo login sessions. There is no password
// verification; any email logs in against the default entity, the way a demo
// environment seeds its users.
type AuthUsecase struct {
	sessions   SessionStore
	auditRepo  AuditRepository
	entityRepo EntityRepository
	txManager  TransactionManager
	idGen      IDGenerator
	sessionTTL time.Duration
}

func NewAuthUsecase(
	sessions SessionStore,
	auditRepo AuditRepository,
	entityRepo EntityRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		sessions:   sessions,
		auditRepo:  auditRepo,
		entityRepo: entityRepo,
		txManager:  txManager,
		idGen:      idGen,
		sessionTTL: sessionTTL,
	}
}

type LoginInput struct {
	Email    string
	Name     string
	Role     string
	EntityID string
}

// LoginResult carries the issued token alongside the session it names.
type LoginResult struct {
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
}

// Login creates a session scoped to the given entity and records the login in
// the audit trail.
func (u *AuthUsecase) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if _, err := u.entityRepo.GetByID(ctx, input.EntityID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		UserID:    u.idGen.Generate(),
		Email:     input.Email,
		Name:      input.Name,
		Role:      input.Role,
		EntityID:  input.EntityID,
		LoginTime: now,
	}

	token := u.idGen.Generate()
	if err := u.sessions.Put(ctx, token, session, u.sessionTTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	audit := &domain.AuditEntry{
		ID:       u.idGen.Generate(),
		EntityID: input.EntityID,
		Actor:    input.Email,
		Action:   domain.AuditUserLogin,
		Details: domain.MarshalDetails(map[string]any{
			"email": input.Email,
			"role":  input.Role,
		}),
		CreatedAt: now,
	}
	if err := u.auditRepo.Append(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &LoginResult{Token: token, Session: session}, nil
}

// Resolve returns the session for a token.
func (u *AuthUsecase) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	return u.sessions.Get(ctx, token)
}

// Logout drops the session.
func (u *AuthUsecase) Logout(ctx context.Context, token string) error {
	return u.sessions.Delete(ctx, token)
}
