package services

import (
	"context"
	"fmt"
	"strings"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"

	"github.com/google/uuid"
)

// TableService manages the physical tables diners order from. Only active
// tables are visible to diners.
type TableService interface {
	List(ctx context.Context) ([]*models.Table, error)
	ListActive(ctx context.Context) ([]*models.Table, error)
	GetActive(ctx context.Context, id uuid.UUID) (*models.Table, error)
	Create(ctx context.Context, table *models.Table) error
	Update(ctx context.Context, table *models.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tableService struct {
	tableRepo repositories.TableRepository
}

func NewTableService(tableRepo repositories.TableRepository) TableService {
	return &tableService{tableRepo: tableRepo}
}

// List returns every table, deactivated ones included.
func (s *tableService) List(ctx context.Context) ([]*models.Table, error) {
	return s.tableRepo.List(ctx)
}

func (s *tableService) ListActive(ctx context.Context) ([]*models.Table, error) {
	return s.tableRepo.ListActive(ctx)
}

func (s *tableService) GetActive(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return s.tableRepo.GetActiveByID(ctx, id)
}

// Create registers a new table. Tables start active; deactivate via Update.
func (s *tableService) Create(ctx context.Context, table *models.Table) error {
	if table.Number <= 0 {
		return common.NewValidationError("table number must be positive")
	}
	if strings.TrimSpace(table.Label) == "" {
		table.Label = fmt.Sprintf("Table %d", table.Number)
	}

	table.ID = uuid.New()
	table.Active = true
	return s.tableRepo.Create(ctx, table)
}

func (s *tableService) Update(ctx context.Context, table *models.Table) error {
	if table.Number <= 0 {
		return common.NewValidationError("table number must be positive")
	}
	return s.tableRepo.Update(ctx, table)
}

func (s *tableService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tableRepo.Delete(ctx, id)
}
