package service

import (
	"context"
	"strings"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/repository"
)

type catalogService struct {
	itemRepo repository.ItemRepository
}

func NewCatalogService(itemRepo repository.ItemRepository) CatalogService {
	return &catalogService{itemRepo: itemRepo}
}

func (s *catalogService) AddItem(ctx context.Context, title, author string) (*domain.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "required"}
	}

	item := &domain.Item{
		Title:  title,
		Author: strings.TrimSpace(author),
		Status: domain.ItemStatusAvailable,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *catalogService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// UpdateItem applies a partial update to descriptive fields. Nil means
// "leave unchanged".
func (s *catalogService) UpdateItem(ctx context.Context, id string, title, author *string) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "cannot be empty"}
		}
		item.Title = trimmed
	}
	if author != nil {
		item.Author = strings.TrimSpace(*author)
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem refuses to delete an issued item; removing it would orphan
// the active loan.
func (s *catalogService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Status == domain.ItemStatusIssued {
		return &domain.ConflictError{Reason: "item is currently issued and cannot be deleted"}
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *catalogService) ListItems(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error) {
	if status != "" && status != domain.ItemStatusAvailable && status != domain.ItemStatusIssued {
		return nil, &domain.ValidationError{Field: "status", Reason: "must be AVAILABLE or ISSUED"}
	}
	return s.itemRepo.List(ctx, status)
}
