package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// PortfolioUsecase is the read side over active holdings.
type PortfolioUsecase struct {
	portfolioRepo PortfolioRepository
}

func NewPortfolioUsecase(portfolioRepo PortfolioRepository) *PortfolioUsecase {
	return &PortfolioUsecase{portfolioRepo: portfolioRepo}
}

// PortfolioSummary aggregates the entity's active holdings.
type PortfolioSummary struct {
	Holdings          []*domain.Holding `json:"holdings"`
	TotalPrincipal    decimal.Decimal   `json:"totalPrincipal"`
	ProjectedInterest decimal.Decimal   `json:"projectedInterest"`
}

// List returns the entity's active holdings.
func (u *PortfolioUsecase) List(ctx context.Context, entityID string) ([]*domain.Holding, error) {
	holdings, err := u.portfolioRepo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	return holdings, nil
}

// Summary returns the holdings with principal and projected-interest totals.
func (u *PortfolioUsecase) Summary(ctx context.Context, entityID string) (*PortfolioSummary, error) {
	holdings, err := u.portfolioRepo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}

	summary := &PortfolioSummary{Holdings: holdings}
	for _, h := range holdings {
		summary.TotalPrincipal = summary.TotalPrincipal.Add(h.Principal)
		summary.ProjectedInterest = summary.ProjectedInterest.Add(h.Interest())
	}
	return summary, nil
}
