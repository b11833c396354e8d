package repositories

import (
	"context"
	"errors"
	"fmt"

	"tableside/internal/common"
	"tableside/internal/models"

	"github.com/jackc/pgx/v5"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, settings *models.Settings) error
}

type settingsRepo struct {
	db DB
}

func NewSettingsRepo(db DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{}
	query := `
		SELECT id, restaurant_name, currency, tax_rate, service_fee, open_hours, logo_url, banner_text
		FROM settings
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, models.SettingsID).Scan(
		&settings.ID, &settings.RestaurantName, &settings.Currency,
		&settings.TaxRate, &settings.ServiceFee, &settings.OpenHours,
		&settings.LogoURL, &settings.BannerText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, settings *models.Settings) error {
	query := `
		INSERT INTO settings (id, restaurant_name, currency, tax_rate, service_fee, open_hours, logo_url, banner_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET restaurant_name = $2, currency = $3, tax_rate = $4, service_fee = $5, open_hours = $6, logo_url = $7, banner_text = $8
	`
	_, err := r.db.Exec(ctx, query,
		settings.ID, settings.RestaurantName, settings.Currency,
		settings.TaxRate, settings.ServiceFee, settings.OpenHours,
		settings.LogoURL, settings.BannerText)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
