package repositories

import (
	"context"
	"errors"
	"fmt"

	"tableside/internal/common"
	"tableside/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	Update(ctx context.Context, table *models.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Table, error)
	ListActive(ctx context.Context) ([]*models.Table, error)
	DeleteAll(ctx context.Context) error
}

type tableRepo struct {
	db DB
}

func NewTableRepo(db DB) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) Create(ctx context.Context, table *models.Table) error {
	query := `
		INSERT INTO tables (id, number, label, active)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, table.ID, table.Number, table.Label, table.Active)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (r *tableRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	table := &models.Table{}
	query := `
		SELECT id, number, label, active
		FROM tables
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&table.ID, &table.Number, &table.Label, &table.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return table, nil
}

func (r *tableRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	table := &models.Table{}
	query := `
		SELECT id, number, label, active
		FROM tables
		WHERE id = $1 AND active = true
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&table.ID, &table.Number, &table.Label, &table.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return table, nil
}

func (r *tableRepo) Update(ctx context.Context, table *models.Table) error {
	query := `
		UPDATE tables
		SET number = $1, label = $2, active = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, table.Number, table.Label, table.Active, table.ID)
	if err != nil {
		return fmt.Errorf("failed to update table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *tableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tables WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *tableRepo) List(ctx context.Context) ([]*models.Table, error) {
	query := `
		SELECT id, number, label, active
		FROM tables
		ORDER BY number ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.Number, &table.Label, &table.Active); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *tableRepo) ListActive(ctx context.Context) ([]*models.Table, error) {
	query := `
		SELECT id, number, label, active
		FROM tables
		WHERE active = true
		ORDER BY number ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.Number, &table.Label, &table.Active); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *tableRepo) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM tables`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to delete tables: %w", err)
	}
	return nil
}
