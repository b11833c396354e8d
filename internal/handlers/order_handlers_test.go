package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tableside/internal/common"
	"tableside/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockOrderService is a mock implementation of services.OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, draft *models.OrderDraft) (*models.Order, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) Transition(ctx context.Context, orderID uuid.UUID, requested models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, statusFilter string) ([]*models.Order, error) {
	args := m.Called(ctx, statusFilter)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderService) CancelStale(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

type OrderHandlersTestSuite struct {
	suite.Suite
	echo         *echo.Echo
	orderService *MockOrderService
	handlers     *OrderHandlers

	orderID uuid.UUID
	tableID uuid.UUID
}

func (suite *OrderHandlersTestSuite) SetupTest() {
	suite.echo = echo.New()
	suite.orderService = &MockOrderService{}
	suite.handlers = NewOrderHandlers(suite.orderService)
	suite.orderID = uuid.New()
	suite.tableID = uuid.New()
}

func (suite *OrderHandlersTestSuite) TearDownTest() {
	suite.orderService.AssertExpectations(suite.T())
}

func (suite *OrderHandlersTestSuite) sampleOrder(status models.OrderStatus) *models.Order {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Order{
		ID:          suite.orderID,
		OrderNumber: strings.ToUpper(suite.orderID.String()[:8]),
		TableID:     suite.tableID,
		TableNumber: 7,
		Status:      status,
		Items: []models.OrderLine{
			{MenuItemID: uuid.New(), Name: "Garden Salad", Price: 5.00, Quantity: 2},
		},
		Subtotal:  10.00,
		Tax:       0.80,
		Total:     10.80,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (suite *OrderHandlersTestSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return suite.echo.NewContext(req, rec), rec
}

func (suite *OrderHandlersTestSuite) TestPlaceOrder_Created() {
	expected := suite.sampleOrder(models.StatusPending)
	suite.orderService.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*models.OrderDraft")).
		Return(expected, nil).Once().
		Run(func(args mock.Arguments) {
			draft := args.Get(1).(*models.OrderDraft)
			assert.Equal(suite.T(), suite.tableID, draft.TableID)
			assert.Len(suite.T(), draft.Items, 1)
			assert.Equal(suite.T(), 2, draft.Items[0].Quantity)
		})

	body := `{"tableId":"` + suite.tableID.String() + `","items":[{"menuItemId":"` + uuid.NewString() + `","quantity":2}]}`
	c, rec := suite.newContext(http.MethodPost, "/api/orders", body)

	err := suite.handlers.PlaceOrder(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	var got models.Order
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(suite.T(), expected.ID, got.ID)
	assert.Equal(suite.T(), models.StatusPending, got.Status)
	assert.Equal(suite.T(), expected.OrderNumber, got.OrderNumber)
}

func (suite *OrderHandlersTestSuite) TestPlaceOrder_MalformedBody() {
	c, rec := suite.newContext(http.MethodPost, "/api/orders", `{not json`)

	err := suite.handlers.PlaceOrder(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	suite.orderService.AssertNumberOfCalls(suite.T(), "PlaceOrder", 0)
}

func (suite *OrderHandlersTestSuite) TestPlaceOrder_ValidationError() {
	suite.orderService.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*models.OrderDraft")).
		Return(nil, common.NewValidationError("order must contain at least one item")).Once()

	body := `{"tableId":"` + suite.tableID.String() + `","items":[]}`
	c, rec := suite.newContext(http.MethodPost, "/api/orders", body)

	err := suite.handlers.PlaceOrder(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "CLIENT_ERROR")
	assert.Contains(suite.T(), rec.Body.String(), "order must contain at least one item")
}

func (suite *OrderHandlersTestSuite) TestGetOrder_Found() {
	expected := suite.sampleOrder(models.StatusPreparing)
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).Return(expected, nil).Once()

	c, rec := suite.newContext(http.MethodGet, "/api/orders/"+suite.orderID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(suite.orderID.String())

	err := suite.handlers.GetOrder(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var got models.Order
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(suite.T(), expected.ID, got.ID)
	assert.Equal(suite.T(), models.StatusPreparing, got.Status)
}

func (suite *OrderHandlersTestSuite) TestGetOrder_InvalidID() {
	c, rec := suite.newContext(http.MethodGet, "/api/orders/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := suite.handlers.GetOrder(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	suite.orderService.AssertNumberOfCalls(suite.T(), "GetOrder", 0)
}

func (suite *OrderHandlersTestSuite) TestGetOrder_NotFound() {
	suite.orderService.On("GetOrder", mock.Anything, suite.orderID).Return(nil, common.ErrNotFound).Once()

	c, rec := suite.newContext(http.MethodGet, "/api/orders/"+suite.orderID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(suite.orderID.String())

	err := suite.handlers.GetOrder(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Order not found")
}

func (suite *OrderHandlersTestSuite) TestListOrders_PassesStatusFilter() {
	expected := suite.sampleOrder(models.StatusPending)
	suite.orderService.On("ListOrders", mock.Anything, "pending").
		Return([]*models.Order{expected}, nil).Once()

	c, rec := suite.newContext(http.MethodGet, "/api/admin/orders?status=pending", "")

	err := suite.handlers.ListOrders(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var got []*models.Order
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(suite.T(), got, 1)
	assert.Equal(suite.T(), expected.ID, got[0].ID)
}

func (suite *OrderHandlersTestSuite) TestListOrders_EmptyIsArray() {
	suite.orderService.On("ListOrders", mock.Anything, "").
		Return([]*models.Order(nil), nil).Once()

	c, rec := suite.newContext(http.MethodGet, "/api/admin/orders", "")

	err := suite.handlers.ListOrders(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "[]\n", rec.Body.String())
}

func (suite *OrderHandlersTestSuite) TestListOrders_UnknownStatus() {
	suite.orderService.On("ListOrders", mock.Anything, "bogus").
		Return([]*models.Order(nil), common.NewValidationError(`unknown status "bogus"`)).Once()

	c, rec := suite.newContext(http.MethodGet, "/api/admin/orders?status=bogus", "")

	err := suite.handlers.ListOrders(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *OrderHandlersTestSuite) TestUpdateOrderStatus_Success() {
	expected := suite.sampleOrder(models.StatusAccepted)
	suite.orderService.On("Transition", mock.Anything, suite.orderID, models.StatusAccepted).
		Return(expected, nil).Once()

	c, rec := suite.newContext(http.MethodPatch, "/api/admin/orders/"+suite.orderID.String()+"/status", `{"status":"accepted"}`)
	c.SetParamNames("id")
	c.SetParamValues(suite.orderID.String())

	err := suite.handlers.UpdateOrderStatus(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var got models.Order
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(suite.T(), models.StatusAccepted, got.Status)
}

func (suite *OrderHandlersTestSuite) TestUpdateOrderStatus_UnknownStatus() {
	c, rec := suite.newContext(http.MethodPatch, "/api/admin/orders/"+suite.orderID.String()+"/status", `{"status":"bogus"}`)
	c.SetParamNames("id")
	c.SetParamValues(suite.orderID.String())

	err := suite.handlers.UpdateOrderStatus(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "VALIDATION_ERROR")
	suite.orderService.AssertNumberOfCalls(suite.T(), "Transition", 0)
}

func (suite *OrderHandlersTestSuite) TestUpdateOrderStatus_InvalidTransition() {
	suite.orderService.On("Transition", mock.Anything, suite.orderID, models.StatusReady).
		Return(nil, &models.InvalidTransitionError{From: models.StatusPending, To: models.StatusReady}).Once()

	c, rec := suite.newContext(http.MethodPatch, "/api/admin/orders/"+suite.orderID.String()+"/status", `{"status":"ready"}`)
	c.SetParamNames("id")
	c.SetParamValues(suite.orderID.String())

	err := suite.handlers.UpdateOrderStatus(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "INVALID_TRANSITION")
	assert.Contains(suite.T(), rec.Body.String(), "invalid status transition from pending to ready")
}

func (suite *OrderHandlersTestSuite) TestUpdateOrderStatus_Conflict() {
	suite.orderService.On("Transition", mock.Anything, suite.orderID, models.StatusAccepted).
		Return(nil, common.ErrConflict).Once()

	c, rec := suite.newContext(http.MethodPatch, "/api/admin/orders/"+suite.orderID.String()+"/status", `{"status":"accepted"}`)
	c.SetParamNames("id")
	c.SetParamValues(suite.orderID.String())

	err := suite.handlers.UpdateOrderStatus(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "CONFLICT")
}

func (suite *OrderHandlersTestSuite) TestUpdateOrderStatus_NotFound() {
	suite.orderService.On("Transition", mock.Anything, suite.orderID, models.StatusCompleted).
		Return(nil, common.ErrNotFound).Once()

	c, rec := suite.newContext(http.MethodPatch, "/api/admin/orders/"+suite.orderID.String()+"/status", `{"status":"completed"}`)
	c.SetParamNames("id")
	c.SetParamValues(suite.orderID.String())

	err := suite.handlers.UpdateOrderStatus(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func TestOrderHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlersTestSuite))
}
