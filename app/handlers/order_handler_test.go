package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amalbenali/glowshop/app/helpers"
	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/models/migrations"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/amalbenali/glowshop/app/services"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func newOrderTestHandler(t *testing.T) (*OrderHandler, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	orderRepo := repositories.NewOrderRepository(db)
	checkoutSvc := services.NewCheckoutService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewShippingRateRepository(db),
		orderRepo,
		repositories.NewOrderItemRepository(db),
	)
	h := NewOrderHandler(
		render.New(),
		checkoutSvc,
		services.NewOrderService(orderRepo),
		services.NewPaymentService(snap.Client{}, orderRepo),
		validator.New(),
	)
	return h, db
}

func seedCatalog(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:  "Rose Water Toner",
		Slug:  "rose-water-toner",
		Price: decimal.RequireFromString("57.00"),
	}
	require.NoError(t, db.Create(product).Error)
	require.NoError(t, db.Create(&models.ShippingRate{
		City:   "Casablanca",
		Price:  decimal.RequireFromString("20.00"),
		Active: true,
	}).Error)
	return product
}

func createOrderBody(productID string) string {
	return fmt.Sprintf(`{
		"full_name": "Amal Benali",
		"phone": "0600000000",
		"city": "Casablanca",
		"address": "12 Rue des Fleurs",
		"payment_method": "cod",
		"items": [{"product_id": %q, "quantity": 2}]
	}`, productID)
}

func TestCreateOrderHandler(t *testing.T) {
	h, db := newOrderTestHandler(t)
	product := seedCatalog(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(createOrderBody(product.ID)))
	w := httptest.NewRecorder()
	h.CreateOrder(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID                string `json:"id"`
		OrderCode         string `json:"order_code"`
		Status            string `json:"status"`
		GrandTotalDisplay string `json:"grand_total_display"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderStatusPending, resp.Status)
	assert.True(t, strings.HasPrefix(resp.OrderCode, "GS-"))
	assert.Contains(t, resp.GrandTotalDisplay, "134")
	assert.Contains(t, resp.GrandTotalDisplay, "DH")
}

func TestCreateOrderHandler_ValidationFailure(t *testing.T) {
	h, db := newOrderTestHandler(t)
	product := seedCatalog(t, db)

	body := strings.Replace(createOrderBody(product.ID), `"city": "Casablanca",`, "", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.CreateOrder(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "city")
}

func TestCreateOrderHandler_MalformedBody(t *testing.T) {
	h, _ := newOrderTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.CreateOrder(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func placeTestOrder(t *testing.T, h *OrderHandler, db *gorm.DB) string {
	t.Helper()

	product := seedCatalog(t, db)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(createOrderBody(product.ID)))
	w := httptest.NewRecorder()
	h.CreateOrder(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestChangeStatusHandler(t *testing.T) {
	h, db := newOrderTestHandler(t)
	orderID := placeTestOrder(t, h, db)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+orderID+"/status",
		strings.NewReader(`{"status": "paid"}`))
	req = mux.SetURLVars(req, map[string]string{"id": orderID})
	w := httptest.NewRecorder()
	h.ChangeStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"paid"`)
}

func TestChangeStatusHandler_InvalidStatus(t *testing.T) {
	h, db := newOrderTestHandler(t)
	orderID := placeTestOrder(t, h, db)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+orderID+"/status",
		strings.NewReader(`{"status": "returned"}`))
	req = mux.SetURLVars(req, map[string]string{"id": orderID})
	w := httptest.NewRecorder()
	h.ChangeStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderHandler_OwnershipHidesForeignOrders(t *testing.T) {
	h, db := newOrderTestHandler(t)
	orderID := placeTestOrder(t, h, db)

	// Another customer asking for a guest order gets a 404, not a 403, so
	// order IDs cannot be probed.
	ctx := context.WithValue(context.Background(), helpers.ContextKeyUserID, uuid.New().String())
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID, nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"id": orderID})
	w := httptest.NewRecorder()
	h.GetOrder(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderHandler_AdminSeesAll(t *testing.T) {
	h, db := newOrderTestHandler(t)
	orderID := placeTestOrder(t, h, db)

	ctx := context.WithValue(context.Background(), helpers.ContextKeyRole, models.RoleAdmin)
	ctx = context.WithValue(ctx, helpers.ContextKeyUserID, uuid.New().String())
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID, nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"id": orderID})
	w := httptest.NewRecorder()
	h.GetOrder(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
