// Package events carries order lifecycle changes from the order service to
// every connected SSE stream through an in-memory topic bus.
package events

import (
	"tableside/internal/models"

	"github.com/google/uuid"
)

// AdminTopic carries every order placed or updated; order topics carry a
// single order's lifecycle.
const AdminTopic = "admin:orders"

func OrderTopic(orderID uuid.UUID) string {
	return "order:" + orderID.String()
}

// Event is one of a closed set of stream event variants. Name is the SSE
// event field, Payload the JSON body of the data field.
type Event interface {
	Name() string
	Payload() any
}

// Publisher is the write side of the bus.
type Publisher interface {
	Publish(topic string, event Event)
}

// Connected opens every stream. Order streams carry the order id plus a
// current snapshot when the order exists, so a reconnecting client resyncs
// without a separate fetch; the admin stream carries a greeting message.
type Connected struct {
	OrderID *uuid.UUID    `json:"orderId,omitempty"`
	Order   *models.Order `json:"order,omitempty"`
	Message string        `json:"message,omitempty"`
}

func (Connected) Name() string   { return "connected" }
func (e Connected) Payload() any { return e }

// Ping keeps idle streams alive.
type Ping struct {
	Time string `json:"time"`
}

func (Ping) Name() string   { return "ping" }
func (e Ping) Payload() any { return e }

// NewOrder announces a freshly placed order on the admin stream.
type NewOrder struct {
	Order *models.Order
}

func (NewOrder) Name() string   { return "new_order" }
func (e NewOrder) Payload() any { return e.Order }

// OrderUpdated announces a status change on the admin stream with the full
// updated order.
type OrderUpdated struct {
	Order *models.Order
}

func (OrderUpdated) Name() string   { return "order_updated" }
func (e OrderUpdated) Payload() any { return e.Order }

// StatusUpdate announces a status change on the order's own stream.
type StatusUpdate struct {
	Status models.OrderStatus `json:"status"`
	Order  *models.Order      `json:"order"`
}

func (StatusUpdate) Name() string   { return "status_update" }
func (e StatusUpdate) Payload() any { return e }
