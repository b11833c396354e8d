package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableside/internal/common"
	"tableside/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.MenuItem, error)
	ListAvailable(ctx context.Context) ([]*models.MenuItem, error)
	DeleteAll(ctx context.Context) error
}

type menuItemRepo struct {
	db DB
}

func NewMenuItemRepo(db DB) MenuItemRepository {
	return &menuItemRepo{db: db}
}

const menuItemColumns = `id, category_id, name, description, price, image_url, is_available, allergens, modifiers, sort_order`

func (r *menuItemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, category_id, name, description, price, image_url, is_available, allergens, modifiers, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	allergens, modifiers, err := marshalMenuItemFields(item)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query,
		item.ID, item.CategoryID, item.Name, item.Description, item.Price,
		item.ImageURL, item.IsAvailable, allergens, modifiers, item.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *menuItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE id = $1
	`
	item, err := scanMenuItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (r *menuItemRepo) Update(ctx context.Context, item *models.MenuItem) error {
	query := `
		UPDATE menu_items
		SET category_id = $1, name = $2, description = $3, price = $4, image_url = $5, is_available = $6, allergens = $7, modifiers = $8, sort_order = $9
		WHERE id = $10
	`
	allergens, modifiers, err := marshalMenuItemFields(item)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query,
		item.CategoryID, item.Name, item.Description, item.Price,
		item.ImageURL, item.IsAvailable, allergens, modifiers, item.SortOrder, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *menuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM menu_items WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *menuItemRepo) List(ctx context.Context) ([]*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		ORDER BY sort_order ASC, name ASC
	`
	return r.queryItems(ctx, query)
}

func (r *menuItemRepo) ListAvailable(ctx context.Context) ([]*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE is_available = true
		ORDER BY sort_order ASC, name ASC
	`
	return r.queryItems(ctx, query)
}

func (r *menuItemRepo) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM menu_items`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to delete menu items: %w", err)
	}
	return nil
}

func (r *menuItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]*models.MenuItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func marshalMenuItemFields(item *models.MenuItem) ([]byte, []byte, error) {
	allergens, err := json.Marshal(item.Allergens)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal allergens: %w", err)
	}
	modifiers, err := json.Marshal(item.Modifiers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal modifiers: %w", err)
	}
	return allergens, modifiers, nil
}

func scanMenuItem(row interface{ Scan(dest ...any) error }) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	var allergens, modifiers []byte
	err := row.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price,
		&item.ImageURL, &item.IsAvailable, &allergens, &modifiers, &item.SortOrder)
	if err != nil {
		return nil, err
	}
	if len(allergens) > 0 {
		if err := json.Unmarshal(allergens, &item.Allergens); err != nil {
			return nil, fmt.Errorf("failed to unmarshal allergens: %w", err)
		}
	}
	if len(modifiers) > 0 {
		if err := json.Unmarshal(modifiers, &item.Modifiers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal modifiers: %w", err)
		}
	}
	return item, nil
}
