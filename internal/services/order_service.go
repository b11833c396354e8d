package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"tableside/internal/common"
	"tableside/internal/events"
	"tableside/internal/models"
	"tableside/internal/repositories"

	"github.com/google/uuid"
)

// listOrdersLimit caps admin order listings.
const listOrdersLimit = 500

type OrderService interface {
	PlaceOrder(ctx context.Context, draft *models.OrderDraft) (*models.Order, error)
	Transition(ctx context.Context, orderID uuid.UUID, requested models.OrderStatus) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, statusFilter string) ([]*models.Order, error)
	CancelStale(ctx context.Context, olderThan time.Duration) (int, error)
}

type orderService struct {
	orders    repositories.OrderRepository
	tables    repositories.TableRepository
	menuItems repositories.MenuItemRepository
	settings  SettingsService
	publisher events.Publisher
}

func NewOrderService(
	orders repositories.OrderRepository,
	tables repositories.TableRepository,
	menuItems repositories.MenuItemRepository,
	settings SettingsService,
	publisher events.Publisher,
) OrderService {
	return &orderService{
		orders:    orders,
		tables:    tables,
		menuItems: menuItems,
		settings:  settings,
		publisher: publisher,
	}
}

// PlaceOrder resolves the draft against the menu, freezes names and prices
// into the order lines, computes totals from the current settings and
// persists the order as pending. The new_order event goes out only after the
// insert committed.
func (s *orderService) PlaceOrder(ctx context.Context, draft *models.OrderDraft) (*models.Order, error) {
	if len(draft.Items) == 0 {
		return nil, common.NewValidationError("order must contain at least one item")
	}

	table, err := s.tables.GetByID(ctx, draft.TableID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewValidationError("invalid table")
		}
		return nil, err
	}

	lines, err := s.resolveLines(ctx, draft.Items)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * settings.TaxRate)
	total := round2(subtotal + tax + settings.ServiceFee)

	now := time.Now().UTC()
	id := uuid.New()
	order := &models.Order{
		ID:            id,
		OrderNumber:   strings.ToUpper(id.String()[:8]),
		TableID:       table.ID,
		TableNumber:   table.Number,
		Status:        models.StatusPending,
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		Notes:         draft.Notes,
		Items:         lines,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publisher.Publish(events.AdminTopic, events.NewOrder{Order: order})
	return order, nil
}

func (s *orderService) resolveLines(ctx context.Context, drafts []models.OrderLineDraft) ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0, len(drafts))
	for i, draft := range drafts {
		if draft.Quantity <= 0 {
			return nil, common.NewValidationError("item %d: quantity must be positive", i)
		}
		item, err := s.menuItems.GetByID(ctx, draft.MenuItemID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.NewValidationError("item %d: unknown menu item %s", i, draft.MenuItemID)
			}
			return nil, err
		}

		price := item.Price
		chosen := make([]models.ModifierChoice, 0, len(draft.Modifiers))
		seen := make(map[string]bool, len(draft.Modifiers))
		for _, selection := range draft.Modifiers {
			if seen[selection.Name] {
				return nil, common.NewValidationError("item %d: duplicate modifier %q", i, selection.Name)
			}
			seen[selection.Name] = true
			option, ok := item.FindModifierOption(selection.Name, selection.Option)
			if !ok {
				return nil, common.NewValidationError("item %d: unknown modifier option %s/%s", i, selection.Name, selection.Option)
			}
			price += option.Price
			chosen = append(chosen, models.ModifierChoice{
				Name:       selection.Name,
				Option:     selection.Option,
				PriceDelta: option.Price,
			})
		}
		if len(chosen) == 0 {
			chosen = nil
		}

		lines = append(lines, models.OrderLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      round2(price),
			Quantity:   draft.Quantity,
			Notes:      draft.Notes,
			Modifiers:  chosen,
		})
	}
	return lines, nil
}

// Transition applies a status change with the previously read status as the
// write precondition. A lost race is retried once against the re-read state;
// losing again, or the request no longer applying to the fresh state, is a
// conflict. Events go out only after the row updated.
func (s *orderService) Transition(ctx context.Context, orderID uuid.UUID, requested models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := models.ValidateTransition(order.Status, requested); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		updatedAt := time.Now().UTC()
		applied, err := s.orders.UpdateStatusIf(ctx, order.ID, order.Status, requested, updatedAt)
		if err != nil {
			return nil, err
		}
		if applied {
			order.Status = requested
			order.UpdatedAt = updatedAt
			s.publisher.Publish(events.OrderTopic(order.ID), events.StatusUpdate{Status: requested, Order: order})
			s.publisher.Publish(events.AdminTopic, events.OrderUpdated{Order: order})
			return order, nil
		}
		if attempt == 1 {
			return nil, common.ErrConflict
		}

		order, err = s.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if err := models.ValidateTransition(order.Status, requested); err != nil {
			// a concurrent writer moved the order somewhere the request
			// no longer applies to
			return nil, common.ErrConflict
		}
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, statusFilter string) ([]*models.Order, error) {
	var status *models.OrderStatus
	if statusFilter != "" && statusFilter != "all" {
		parsed, err := models.ParseOrderStatus(statusFilter)
		if err != nil {
			return nil, common.NewValidationError("unknown status %q", statusFilter)
		}
		status = &parsed
	}
	return s.orders.List(ctx, status, listOrdersLimit)
}

// CancelStale cancels pending orders older than the cutoff through the
// normal transition path, so subscribers see the cancellation. Orders a
// staff member picked up between the listing and the write are skipped.
func (s *orderService) CancelStale(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	ids, err := s.orders.ListStalePendingIDs(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, id := range ids {
		if _, err := s.Transition(ctx, id, models.StatusCancelled); err != nil {
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
