package models

import (
	"time"

	"github.com/google/uuid"
)

// ModifierChoice is one selected modifier option, snapshotted onto an order
// line at placement time.
type ModifierChoice struct {
	Name       string  `json:"name"`
	Option     string  `json:"option"`
	PriceDelta float64 `json:"priceDelta"`
}

// OrderLine is a single menu item within an order. Name and price are
// denormalized from the menu at placement time and never change afterwards;
// the price already includes the selected modifier deltas.
type OrderLine struct {
	MenuItemID uuid.UUID        `json:"menuItemId"`
	Name       string           `json:"name"`
	Price      float64          `json:"price"`
	Quantity   int              `json:"quantity"`
	Notes      *string          `json:"notes,omitempty"`
	Modifiers  []ModifierChoice `json:"modifiers,omitempty"`
}

type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	OrderNumber   string      `json:"orderNumber" db:"order_number"`
	TableID       uuid.UUID   `json:"tableId" db:"table_id"`
	TableNumber   int         `json:"tableNumber" db:"table_number"`
	Status        OrderStatus `json:"status" db:"status"`
	CustomerName  *string     `json:"customerName" db:"customer_name"`
	CustomerPhone *string     `json:"customerPhone" db:"customer_phone"`
	Notes         *string     `json:"notes" db:"notes"`
	Items         []OrderLine `json:"items" db:"items"`
	Subtotal      float64     `json:"subtotal" db:"subtotal"`
	Tax           float64     `json:"tax" db:"tax"`
	Total         float64     `json:"total" db:"total"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// ModifierSelection names a modifier group and the chosen option label.
type ModifierSelection struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

type OrderLineDraft struct {
	MenuItemID uuid.UUID           `json:"menuItemId"`
	Quantity   int                 `json:"quantity"`
	Notes      *string             `json:"notes,omitempty"`
	Modifiers  []ModifierSelection `json:"modifiers,omitempty"`
}

// OrderDraft is the customer-facing placement request. Clients never send
// prices; every line is resolved against the menu when the order is placed.
type OrderDraft struct {
	TableID       uuid.UUID        `json:"tableId"`
	CustomerName  *string          `json:"customerName"`
	CustomerPhone *string          `json:"customerPhone"`
	Notes         *string          `json:"notes"`
	Items         []OrderLineDraft `json:"items"`
}
