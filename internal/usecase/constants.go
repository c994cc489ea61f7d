package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single unit of work against the store.
	DefaultTransactionTimeout = 10 * time.Second

	// OrderFeeBasisPoints is the flat execution fee charged on order value.
	OrderFeeBasisPoints = 5
)
