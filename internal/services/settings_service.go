package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableside/internal/caching"
	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, update *models.SettingsUpdate) (*models.Settings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	cacheService caching.CacheService
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, cacheService caching.CacheService) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, cacheService: cacheService}
}

// Get returns the stored settings, falling back to defaults while no row
// exists yet.
func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	// Try to get from cache first
	if cached, err := s.cacheService.GetSettings(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		fmt.Printf("Cache error for settings: %v\n", err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		settings = models.DefaultSettings()
	}

	if cacheErr := s.cacheService.SetSettings(ctx, settings, 15*time.Minute); cacheErr != nil {
		fmt.Printf("Failed to cache settings: %v\n", cacheErr)
	}
	return settings, nil
}

// Update upserts only the provided fields on top of the current settings.
func (s *settingsService) Update(ctx context.Context, update *models.SettingsUpdate) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		settings = models.DefaultSettings()
	}

	if update.RestaurantName != nil {
		settings.RestaurantName = *update.RestaurantName
	}
	if update.Currency != nil {
		settings.Currency = *update.Currency
	}
	if update.TaxRate != nil {
		settings.TaxRate = *update.TaxRate
	}
	if update.ServiceFee != nil {
		settings.ServiceFee = *update.ServiceFee
	}
	if update.OpenHours != nil {
		settings.OpenHours = *update.OpenHours
	}
	if update.LogoURL != nil {
		settings.LogoURL = *update.LogoURL
	}
	if update.BannerText != nil {
		settings.BannerText = *update.BannerText
	}
	settings.ID = models.SettingsID

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.DeleteSettings(ctx); cacheErr != nil {
		fmt.Printf("Failed to invalidate settings cache: %v\n", cacheErr)
	}
	return settings, nil
}
