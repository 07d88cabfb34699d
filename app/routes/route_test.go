package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amalbenali/glowshop/app/configs"
	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/models/migrations"
	"github.com/amalbenali/glowshop/app/utils/sessions"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func newTestRouter(t *testing.T) (*mux.Router, *gorm.DB, *configs.SessionKeys) {
	t.Helper()

	keys := &configs.SessionKeys{
		AuthKey: securecookie.GenerateRandomKey(64),
		EncKey:  securecookie.GenerateRandomKey(32),
	}
	db := newTestDB(t)
	return NewRouter(db, keys), db, keys
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	user := &models.User{
		FirstName: "Amal",
		Email:     role + "-" + uuid.New().String() + "@example.com",
		Password:  "irrelevant",
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPendingOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderCode:     "GS-20260829-" + uuid.New().String()[:8],
		FullName:      "Amal Benali",
		Phone:         "0600000000",
		City:          "Casablanca",
		Address:       "12 Rue des Fleurs",
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
		ShippingPrice: decimal.RequireFromString("20.00"),
		ItemsTotal:    decimal.RequireFromString("114.00"),
		GrandTotal:    decimal.RequireFromString("134.00"),
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

// sessionCookie builds a login cookie the router's session middleware accepts.
func sessionCookie(t *testing.T, keys *configs.SessionKeys, userID string) *http.Cookie {
	t.Helper()

	store := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, store.SetUserID(w, r, userID))

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "glowshop-session" {
			return cookie
		}
	}
	t.Fatal("session cookie was not set")
	return nil
}

func TestAdminStatusChange_EndToEnd(t *testing.T) {
	router, db, keys := newTestRouter(t)
	admin := seedUser(t, db, models.RoleAdmin)
	order := seedPendingOrder(t, db)
	login := sessionCookie(t, keys, admin.ID)

	// Any admin GET hands back the CSRF token and its cookie.
	getReq := httptest.NewRequest(http.MethodGet, "/api/admin/shipping-rates", nil)
	getReq.AddCookie(login)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	require.Equal(t, http.StatusOK, getRec.Code)
	token := getRec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)
	require.NotEmpty(t, getRec.Result().Cookies())

	putReq := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+order.ID+"/status",
		strings.NewReader(`{"status": "paid"}`))
	putReq.AddCookie(login)
	for _, cookie := range getRec.Result().Cookies() {
		putReq.AddCookie(cookie)
	}
	putReq.Header.Set("X-CSRF-Token", token)
	putRec := httptest.NewRecorder()
	router.ServeHTTP(putRec, putReq)

	require.Equal(t, http.StatusOK, putRec.Code)
	assert.Contains(t, putRec.Body.String(), `"status":"paid"`)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, stored.Status)
	assert.Equal(t, 1, stored.LockVersion)
}

func TestAdminMutation_RejectedWithoutCSRFToken(t *testing.T) {
	router, db, keys := newTestRouter(t)
	admin := seedUser(t, db, models.RoleAdmin)
	order := seedPendingOrder(t, db)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+order.ID+"/status",
		strings.NewReader(`{"status": "paid"}`))
	req.AddCookie(sessionCookie(t, keys, admin.ID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	router, db, keys := newTestRouter(t)
	customer := seedUser(t, db, models.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/shipping-rates", nil)
	req.AddCookie(sessionCookie(t, keys, customer.ID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	anon := httptest.NewRequest(http.MethodGet, "/api/admin/shipping-rates", nil)
	anonRec := httptest.NewRecorder()
	router.ServeHTTP(anonRec, anon)
	assert.Equal(t, http.StatusUnauthorized, anonRec.Code)
}

func TestPublicCheckoutRoute(t *testing.T) {
	router, db, _ := newTestRouter(t)

	product := &models.Product{
		Name:  "Rose Water Toner",
		Slug:  "rose-water-toner",
		Price: decimal.RequireFromString("57.00"),
	}
	require.NoError(t, db.Create(product).Error)

	body := fmt.Sprintf(`{
		"full_name": "Amal Benali",
		"phone": "0600000000",
		"city": "Casablanca",
		"address": "12 Rue des Fleurs",
		"payment_method": "cod",
		"items": [{"product_id": %q, "quantity": 1}]
	}`, product.ID)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}
