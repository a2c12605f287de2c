package service

import (
	"context"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/port"
)

// SettingsService defines the operator settings contract.
type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, updates domain.SettingsUpdate) (domain.Settings, error)
}

type settingsService struct {
	repo port.SettingsRepository
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(repo port.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Load(ctx)
}

func (s *settingsService) Update(ctx context.Context, updates domain.SettingsUpdate) (domain.Settings, error) {
	current, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	merged := current.Merge(updates)
	if err := s.repo.Save(ctx, merged); err != nil {
		return domain.Settings{}, err
	}
	return merged, nil
}
