package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"tableside/internal/common"
	"tableside/internal/events"
	"tableside/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// streamRecorder is a concurrency-safe ResponseWriter for streaming
// handlers. Each Write is mirrored onto a channel so tests can wait for a
// specific frame before acting, and the body is only read after the handler
// returns.
type streamRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   bytes.Buffer
	status int
	writes chan string
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{
		header: make(http.Header),
		writes: make(chan string, 64),
	}
}

func (r *streamRecorder) Header() http.Header { return r.header }

func (r *streamRecorder) WriteHeader(code int) {
	r.mu.Lock()
	r.status = code
	r.mu.Unlock()
}

func (r *streamRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	n, err := r.body.Write(p)
	r.mu.Unlock()
	select {
	case r.writes <- string(p):
	default:
	}
	return n, err
}

func (r *streamRecorder) Flush() {}

func (r *streamRecorder) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *streamRecorder) BodyString() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

type SSEHandlersTestSuite struct {
	suite.Suite
	echo         *echo.Echo
	bus          *events.Bus
	orderService *MockOrderService
	handlers     *SSEHandlers

	orderID uuid.UUID
}

func (suite *SSEHandlersTestSuite) SetupTest() {
	suite.echo = echo.New()
	suite.bus = events.NewBus(8)
	suite.orderService = &MockOrderService{}
	// A long ping interval keeps pings out of tests that do not want them.
	suite.handlers = NewSSEHandlers(suite.bus, suite.orderService, time.Minute, 5000)
	suite.orderID = uuid.New()
}

func (suite *SSEHandlersTestSuite) TearDownTest() {
	suite.bus.Close()
	suite.orderService.AssertExpectations(suite.T())
}

func (suite *SSEHandlersTestSuite) streamOrder(status models.OrderStatus) *models.Order {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Order{
		ID:          suite.orderID,
		OrderNumber: strings.ToUpper(suite.orderID.String()[:8]),
		TableNumber: 7,
		Status:      status,
		Subtotal:    10.00,
		Tax:         0.80,
		Total:       10.80,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// waitForWrite consumes writes until one contains substr or the deadline
// passes.
func (suite *SSEHandlersTestSuite) waitForWrite(rec *streamRecorder, substr string) string {
	deadline := time.After(2 * time.Second)
	for {
		select {
		case w := <-rec.writes:
			if strings.Contains(w, substr) {
				return w
			}
		case <-deadline:
			suite.FailNow("timed out waiting for write containing " + substr)
			return ""
		}
	}
}

func (suite *SSEHandlersTestSuite) startOrderStream(rec *streamRecorder) (context.CancelFunc, chan error) {
	req := httptest.NewRequest(http.MethodGet, "/api/sse/orders/"+suite.orderID.String(), nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)

	c := suite.echo.NewContext(req, rec)
	c.SetPath("/api/sse/orders/:id")
	c.SetParamNames("id")
	c.SetParamValues(suite.orderID.String())

	done := make(chan error, 1)
	go func() {
		done <- suite.handlers.OrderStream(c)
	}()
	return cancel, done
}

func (suite *SSEHandlersTestSuite) TestOrderStream_ConnectedWithSnapshot() {
	existing := suite.streamOrder(models.StatusPending)
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).Return(existing, nil).Once()

	rec := newStreamRecorder()
	cancel, done := suite.startOrderStream(rec)

	connected := suite.waitForWrite(rec, "event: connected")
	cancel()
	assert.NoError(suite.T(), <-done)

	assert.Contains(suite.T(), connected, `"orderId":"`+suite.orderID.String()+`"`)
	assert.Contains(suite.T(), connected, `"status":"pending"`)

	body := rec.BodyString()
	retryAt := strings.Index(body, "retry: 5000\n\n")
	connectedAt := strings.Index(body, "event: connected")
	assert.NotEqual(suite.T(), -1, retryAt)
	assert.NotEqual(suite.T(), -1, connectedAt)
	assert.Less(suite.T(), retryAt, connectedAt)

	assert.Equal(suite.T(), http.StatusOK, rec.Status())
	assert.Equal(suite.T(), "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(suite.T(), "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(suite.T(), "no", rec.Header().Get("X-Accel-Buffering"))
}

func (suite *SSEHandlersTestSuite) TestOrderStream_ConnectedWithoutSnapshot() {
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).Return(nil, common.ErrNotFound).Once()

	rec := newStreamRecorder()
	cancel, done := suite.startOrderStream(rec)

	connected := suite.waitForWrite(rec, "event: connected")
	cancel()
	assert.NoError(suite.T(), <-done)

	assert.Contains(suite.T(), connected, `"orderId"`)
	assert.NotContains(suite.T(), connected, `"order":`)
}

func (suite *SSEHandlersTestSuite) TestOrderStream_DeliversStatusUpdates() {
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).
		Return(suite.streamOrder(models.StatusPending), nil).Once()

	rec := newStreamRecorder()
	cancel, done := suite.startOrderStream(rec)

	suite.waitForWrite(rec, "event: connected")

	accepted := suite.streamOrder(models.StatusAccepted)
	suite.bus.Publish(events.OrderTopic(suite.orderID), events.StatusUpdate{Status: models.StatusAccepted, Order: accepted})
	frame := suite.waitForWrite(rec, "event: status_update")
	assert.Contains(suite.T(), frame, `"status":"accepted"`)

	preparing := suite.streamOrder(models.StatusPreparing)
	suite.bus.Publish(events.OrderTopic(suite.orderID), events.StatusUpdate{Status: models.StatusPreparing, Order: preparing})
	frame = suite.waitForWrite(rec, `"status":"preparing"`)
	assert.Contains(suite.T(), frame, "event: status_update")

	cancel()
	assert.NoError(suite.T(), <-done)

	// Commit order is preserved on the wire.
	body := rec.BodyString()
	assert.Less(suite.T(), strings.Index(body, `"status":"accepted"`), strings.Index(body, `"status":"preparing"`))
}

func (suite *SSEHandlersTestSuite) TestOrderStream_IgnoresOtherOrders() {
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).
		Return(suite.streamOrder(models.StatusPending), nil).Once()

	rec := newStreamRecorder()
	cancel, done := suite.startOrderStream(rec)

	suite.waitForWrite(rec, "event: connected")

	otherID := uuid.New()
	other := suite.streamOrder(models.StatusReady)
	other.ID = otherID
	suite.bus.Publish(events.OrderTopic(otherID), events.StatusUpdate{Status: models.StatusReady, Order: other})

	mine := suite.streamOrder(models.StatusAccepted)
	suite.bus.Publish(events.OrderTopic(suite.orderID), events.StatusUpdate{Status: models.StatusAccepted, Order: mine})
	suite.waitForWrite(rec, `"status":"accepted"`)

	cancel()
	assert.NoError(suite.T(), <-done)

	assert.NotContains(suite.T(), rec.BodyString(), `"status":"ready"`)
}

func (suite *SSEHandlersTestSuite) TestOrderStream_InvalidID() {
	req := httptest.NewRequest(http.MethodGet, "/api/sse/orders/nope", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := suite.handlers.OrderStream(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), 0, suite.bus.Stats().Connections)
}

func (suite *SSEHandlersTestSuite) TestOrderStream_UnsubscribesOnDisconnect() {
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).
		Return(suite.streamOrder(models.StatusPending), nil).Once()

	rec := newStreamRecorder()
	cancel, done := suite.startOrderStream(rec)

	suite.waitForWrite(rec, "event: connected")
	assert.Equal(suite.T(), 1, suite.bus.Stats().Connections)

	cancel()
	assert.NoError(suite.T(), <-done)
	assert.Equal(suite.T(), 0, suite.bus.Stats().Connections)
}

func (suite *SSEHandlersTestSuite) TestAdminStream_ConnectedAndNewOrder() {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/sse/orders", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	rec := newStreamRecorder()
	c := suite.echo.NewContext(req, rec)

	done := make(chan error, 1)
	go func() {
		done <- suite.handlers.AdminStream(c)
	}()

	connected := suite.waitForWrite(rec, "event: connected")
	assert.Contains(suite.T(), connected, "Connected to admin orders stream")

	placed := suite.streamOrder(models.StatusPending)
	suite.bus.Publish(events.AdminTopic, events.NewOrder{Order: placed})
	frame := suite.waitForWrite(rec, "event: new_order")
	assert.Contains(suite.T(), frame, `"orderNumber":"`+placed.OrderNumber+`"`)

	updated := suite.streamOrder(models.StatusAccepted)
	suite.bus.Publish(events.AdminTopic, events.OrderUpdated{Order: updated})
	frame = suite.waitForWrite(rec, "event: order_updated")
	assert.Contains(suite.T(), frame, `"status":"accepted"`)

	cancel()
	assert.NoError(suite.T(), <-done)
}

func (suite *SSEHandlersTestSuite) TestStream_SendsPings() {
	suite.handlers = NewSSEHandlers(suite.bus, suite.orderService, 5*time.Millisecond, 5000)
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).
		Return(suite.streamOrder(models.StatusPending), nil).Once()

	rec := newStreamRecorder()
	cancel, done := suite.startOrderStream(rec)

	suite.waitForWrite(rec, "event: connected")
	suite.waitForWrite(rec, "event: ping")

	cancel()
	assert.NoError(suite.T(), <-done)
}

func (suite *SSEHandlersTestSuite) TestStream_EndsWhenBusCloses() {
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).
		Return(suite.streamOrder(models.StatusPending), nil).Once()

	rec := newStreamRecorder()
	cancel, done := suite.startOrderStream(rec)
	defer cancel()

	suite.waitForWrite(rec, "event: connected")
	suite.bus.Close()

	select {
	case err := <-done:
		assert.NoError(suite.T(), err)
	case <-time.After(2 * time.Second):
		suite.FailNow("stream did not end after bus close")
	}
}

func TestSSEHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(SSEHandlersTestSuite))
}
