package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tableside/internal/common"
	"tableside/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, status *models.OrderStatus, limit int) ([]*models.Order, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next models.OrderStatus, updatedAt time.Time) (bool, error)
	ListStalePendingIDs(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, order_number, table_id, table_number, status, customer_name, customer_phone, notes, items, subtotal, tax, total, created_at, updated_at`

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, order_number, table_id, table_number, status, customer_name, customer_phone, notes, items, subtotal, tax, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	_, err = r.db.Exec(ctx, query,
		order.ID, order.OrderNumber, order.TableID, order.TableNumber, string(order.Status),
		order.CustomerName, order.CustomerPhone, order.Notes, items,
		order.Subtotal, order.Tax, order.Total, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (r *orderRepo) List(ctx context.Context, status *models.OrderStatus, limit int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
	`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateStatusIf moves an order to next only while the stored status still
// equals expected. It reports false when no row was updated, either because
// the order is gone or because a concurrent writer changed the status first.
func (r *orderRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next models.OrderStatus, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, string(next), updatedAt, id, string(expected))
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepo) ListStalePendingIDs(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM orders
		WHERE status = $1 AND created_at < $2
	`
	rows, err := r.db.Query(ctx, query, string(models.StatusPending), cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale pending orders: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	order := &models.Order{}
	var status string
	var items []byte
	err := row.Scan(&order.ID, &order.OrderNumber, &order.TableID, &order.TableNumber, &status,
		&order.CustomerName, &order.CustomerPhone, &order.Notes, &items,
		&order.Subtotal, &order.Tax, &order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatus(status)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
	}
	return order, nil
}
