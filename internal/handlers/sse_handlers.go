package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tableside/internal/common"
	"tableside/internal/events"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// SSEHandlers streams order lifecycle events to browsers over Server-Sent
// Events. Streams are unauthenticated: EventSource cannot attach headers, and
// order ids are unguessable UUIDs.
type SSEHandlers struct {
	bus          *events.Bus
	orderService services.OrderService
	pingInterval time.Duration
	retryMS      int
}

func NewSSEHandlers(bus *events.Bus, orderService services.OrderService, pingInterval time.Duration, retryMS int) *SSEHandlers {
	return &SSEHandlers{
		bus:          bus,
		orderService: orderService,
		pingInterval: pingInterval,
		retryMS:      retryMS,
	}
}

// OrderStream handles GET /sse/orders/:id
func (h *SSEHandlers) OrderStream(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	// Streams open before the order exists are legal; the snapshot rides
	// along only when there is one.
	connected := events.Connected{OrderID: &id}
	if order, err := h.orderService.GetOrder(c.Request().Context(), id); err == nil {
		connected.Order = order
	}

	return h.stream(c, connected, events.OrderTopic(id))
}

// AdminStream handles GET /admin/sse/orders
func (h *SSEHandlers) AdminStream(c echo.Context) error {
	connected := events.Connected{Message: "Connected to admin orders stream"}
	return h.stream(c, connected, events.AdminTopic)
}

func (h *SSEHandlers) stream(c echo.Context, connected events.Connected, topics ...string) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)

	conn := h.bus.Subscribe(topics...)
	defer h.bus.Unsubscribe(conn)

	// The retry hint must precede any event so even a first-frame disconnect
	// reconnects at our pace.
	if _, err := fmt.Fprintf(res, "retry: %d\n\n", h.retryMS); err != nil {
		return nil
	}
	if err := writeEvent(res, connected); err != nil {
		return nil
	}
	res.Flush()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-conn.Done():
			return nil
		case event := <-conn.Events():
			if err := writeEvent(res, event); err != nil {
				return nil
			}
			res.Flush()
		case <-ticker.C:
			ping := events.Ping{Time: time.Now().UTC().Format(time.RFC3339)}
			if err := writeEvent(res, ping); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeEvent(w io.Writer, event events.Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name(), data)
	return err
}
