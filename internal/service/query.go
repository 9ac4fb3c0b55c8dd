package service

import (
	"context"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/repository"
)

type queryService struct {
	itemRepo repository.ItemRepository
	loanRepo repository.LoanRepository
}

func NewQueryService(itemRepo repository.ItemRepository, loanRepo repository.LoanRepository) QueryService {
	return &queryService{
		itemRepo: itemRepo,
		loanRepo: loanRepo,
	}
}

func (s *queryService) ListAvailableItems(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.List(ctx, domain.ItemStatusAvailable)
}

func (s *queryService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	if filter.Status != "" && filter.Status != domain.LoanStatusIssued && filter.Status != domain.LoanStatusReturned {
		return nil, &domain.ValidationError{Field: "status", Reason: "must be ISSUED or RETURNED"}
	}
	return s.loanRepo.List(ctx, filter)
}

func (s *queryService) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}
