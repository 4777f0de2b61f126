package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"burgero/internal/models"
	"burgero/internal/repository"
	"burgero/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubOrderService struct {
	orders       map[uint]*models.Order
	nextID       uint
	statusErr    error
	updateResult bool
}

func newStubOrderService() *stubOrderService {
	return &stubOrderService{orders: make(map[uint]*models.Order), updateResult: true}
}

func (s *stubOrderService) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.CustomerName == "" || order.Phone == "" || order.OrderDetails == "" || order.OrderTime == "" {
		return services.ErrMissingFields
	}
	s.nextID++
	order.ID = s.nextID
	order.Status = string(models.OrderPending)
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderService) GetOrderByID(id uint) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderService) GetOrdersByStatus(status string) ([]models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, services.ErrInvalidStatus
	}
	var out []models.Order
	for _, order := range s.orders {
		if order.Status == status {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubOrderService) GetAllOrders() ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (bool, error) {
	if s.statusErr != nil {
		return false, s.statusErr
	}
	return s.updateResult, nil
}

func (s *stubOrderService) DeleteOrder(ctx context.Context, id uint) (bool, error) {
	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

func (s *stubOrderService) GetOrderStats(ctx context.Context) (*repository.OrderStats, error) {
	return &repository.OrderStats{}, nil
}

func newOrderRouter(service services.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewOrderHandler(service)
	router := gin.New()
	router.POST("/api/orders", handler.CreateOrder)
	router.GET("/api/orders", handler.GetAllOrders)
	router.GET("/api/orders/:id", handler.GetOrderByID)
	router.GET("/api/orders/status/:status", handler.GetOrdersByStatus)
	router.PUT("/api/orders/:id/status", handler.UpdateOrderStatus)
	router.DELETE("/api/orders/:id", handler.DeleteOrder)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed), "response body must be JSON")
	return rec, parsed
}

func TestCreateOrderReturns201(t *testing.T) {
	router := newOrderRouter(newStubOrderService())

	rec, body := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"customer_name": "Alice",
		"phone":         "555-1234",
		"order_details": "2x Classic Burger",
		"order_time":    "18:30",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
}

func TestCreateOrderMissingFieldsReturns400(t *testing.T) {
	router := newOrderRouter(newStubOrderService())

	rec, body := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"customer_name": "Alice",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "All fields are required", body["message"])
}

func TestGetOrderByIDNotFoundReturns404(t *testing.T) {
	router := newOrderRouter(newStubOrderService())

	rec, body := doJSON(t, router, http.MethodGet, "/api/orders/42", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestGetOrderByIDBadID(t *testing.T) {
	router := newOrderRouter(newStubOrderService())

	rec, _ := doJSON(t, router, http.MethodGet, "/api/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrdersByStatusInvalidReturns400(t *testing.T) {
	router := newOrderRouter(newStubOrderService())

	rec, body := doJSON(t, router, http.MethodGet, "/api/orders/status/burnt", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", body["message"])
}

func TestUpdateStatusInvalidTransitionReturns409(t *testing.T) {
	service := newStubOrderService()
	service.statusErr = fmt.Errorf("%w: ready -> pending", services.ErrInvalidTransition)
	router := newOrderRouter(service)

	rec, body := doJSON(t, router, http.MethodPut, "/api/orders/1/status", gin.H{"status": "pending"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "ready -> pending")
}

func TestUpdateStatusInvalidStatusReturns400(t *testing.T) {
	service := newStubOrderService()
	service.statusErr = services.ErrInvalidStatus
	router := newOrderRouter(service)

	rec, _ := doJSON(t, router, http.MethodPut, "/api/orders/1/status", gin.H{"status": "burnt"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusMissingOrderReturns404(t *testing.T) {
	service := newStubOrderService()
	service.updateResult = false
	router := newOrderRouter(service)

	rec, _ := doJSON(t, router, http.MethodPut, "/api/orders/99/status", gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteOrderLifecycle(t *testing.T) {
	service := newStubOrderService()
	router := newOrderRouter(service)

	_, body := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"customer_name": "Alice",
		"phone":         "555-1234",
		"order_details": "2x Classic Burger",
		"order_time":    "18:30",
	})
	id := body["data"].(map[string]interface{})["id"].(float64)

	rec, _ := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/orders/%d", int(id)), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/orders/%d", int(id)), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
