package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/models/migrations"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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

func newCheckoutService(db *gorm.DB) *CheckoutService {
	return NewCheckoutService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewShippingRateRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
	)
}

func seedProduct(t *testing.T, db *gorm.DB, product *models.Product) *models.Product {
	t.Helper()
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedShippingRate(t *testing.T, db *gorm.DB, city, price string) {
	t.Helper()
	require.NoError(t, db.Create(&models.ShippingRate{
		City:   city,
		Price:  d(price),
		Active: true,
	}).Error)
}

func checkoutInput(city string, items ...CheckoutItem) CheckoutInput {
	return CheckoutInput{
		FullName:      "Amal Benali",
		Email:         "amal@example.com",
		Phone:         "0600000000",
		City:          city,
		Address:       "12 Rue des Fleurs",
		PaymentMethod: models.PaymentMethodCOD,
		Items:         items,
	}
}

func TestCreateOrder_Totals(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)
	ctx := context.Background()

	product := seedProduct(t, db, &models.Product{
		Name:  "Rose Water Toner",
		Slug:  "rose-water-toner",
		Price: d("57.00"),
	})
	seedShippingRate(t, db, "Casablanca", "20.00")

	order, err := svc.CreateOrder(ctx, checkoutInput("Casablanca", CheckoutItem{
		ProductID: product.ID,
		Quantity:  2,
	}))
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "114.00", order.ItemsTotal.StringFixed(2))
	assert.Equal(t, "20.00", order.ShippingPrice.StringFixed(2))
	assert.Equal(t, "134.00", order.GrandTotal.StringFixed(2))
	assert.True(t, strings.HasPrefix(order.OrderCode, "GS-"))

	require.Len(t, order.OrderItems, 1)
	item := order.OrderItems[0]
	assert.Equal(t, "Rose Water Toner", item.Name)
	assert.Equal(t, "57.00", item.UnitPrice.StringFixed(2))
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "114.00", item.LineTotal.StringFixed(2))
}

func TestCreateOrder_PromoVariantPricing(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)
	ctx := context.Background()

	product := seedProduct(t, db, &models.Product{
		Name:     "Argan Glow Serum",
		Slug:     "argan-glow-serum",
		Price:    d("100.00"),
		NewPrice: dp("80.00"),
		Variants: []models.ProductVariant{
			{ID: "v1", Label: "50 ml", SizeML: intPtr(50), Price: d("35.00")},
			{ID: "v2", Label: "250 ml", SizeML: intPtr(250), Price: d("40.00")},
		},
	})
	seedShippingRate(t, db, "Rabat", "25.00")

	order, err := svc.CreateOrder(ctx, checkoutInput("Rabat",
		CheckoutItem{ProductID: product.ID, VariantID: "v2", Quantity: 1},
		CheckoutItem{ProductID: product.ID, VariantID: "v1", Quantity: 1},
	))
	require.NoError(t, err)

	require.Len(t, order.OrderItems, 2)
	// 20% promo lands on the biggest variant only.
	assert.Equal(t, "32.00", order.OrderItems[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "250 ml", order.OrderItems[0].VariantLabel)
	assert.Equal(t, "35.00", order.OrderItems[1].UnitPrice.StringFixed(2))
	assert.Equal(t, "67.00", order.ItemsTotal.StringFixed(2))
	assert.Equal(t, "92.00", order.GrandTotal.StringFixed(2))
}

func TestCreateOrder_UnknownCityShipsFree(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)
	ctx := context.Background()

	product := seedProduct(t, db, &models.Product{
		Name:  "Clay Mask",
		Slug:  "clay-mask",
		Price: d("45.00"),
	})
	seedShippingRate(t, db, "Casablanca", "20.00")

	order, err := svc.CreateOrder(ctx, checkoutInput("Essaouira", CheckoutItem{
		ProductID: product.ID,
		Quantity:  1,
	}))
	require.NoError(t, err)

	assert.Equal(t, "0.00", order.ShippingPrice.StringFixed(2))
	assert.Equal(t, "45.00", order.GrandTotal.StringFixed(2))
}

func TestCreateOrder_CityLookupIgnoresCase(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)
	ctx := context.Background()

	product := seedProduct(t, db, &models.Product{
		Name:  "Lip Balm",
		Slug:  "lip-balm",
		Price: d("15.00"),
	})
	seedShippingRate(t, db, "Casablanca", "20.00")

	order, err := svc.CreateOrder(ctx, checkoutInput("  cAsAbLaNcA ", CheckoutItem{
		ProductID: product.ID,
		Quantity:  1,
	}))
	require.NoError(t, err)
	assert.Equal(t, "20.00", order.ShippingPrice.StringFixed(2))
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CheckoutInput)
		field  string
	}{
		{"empty cart", func(in *CheckoutInput) { in.Items = nil }, "items"},
		{"zero quantity", func(in *CheckoutInput) { in.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"missing full name", func(in *CheckoutInput) { in.FullName = " " }, "full_name"},
		{"missing city", func(in *CheckoutInput) { in.City = "" }, "city"},
		{"bad payment method", func(in *CheckoutInput) { in.PaymentMethod = "crypto" }, "payment_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := checkoutInput("Casablanca", CheckoutItem{ProductID: "p", Quantity: 1})
			tt.mutate(&input)

			_, err := svc.CreateOrder(ctx, input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	_, err := svc.CreateOrder(context.Background(), checkoutInput("Casablanca", CheckoutItem{
		ProductID: uuid.New().String(),
		Quantity:  1,
	}))
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCreateOrder_UnknownVariant(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	product := seedProduct(t, db, &models.Product{
		Name:  "Night Cream",
		Slug:  "night-cream",
		Price: d("60.00"),
	})

	_, err := svc.CreateOrder(context.Background(), checkoutInput("Casablanca", CheckoutItem{
		ProductID: product.ID,
		VariantID: "no-such-variant",
		Quantity:  1,
	}))
	assert.ErrorIs(t, err, ErrInvalidReference)
}

type failingOrderItemRepo struct{}

func (failingOrderItemRepo) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	return errors.New("disk full")
}

func (failingOrderItemRepo) FindByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return nil, nil
}

func TestCreateOrder_RollsBackWhenItemsFail(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewShippingRateRepository(db),
		repositories.NewOrderRepository(db),
		failingOrderItemRepo{},
	)

	product := seedProduct(t, db, &models.Product{
		Name:  "Hair Oil",
		Slug:  "hair-oil",
		Price: d("30.00"),
	})

	_, err := svc.CreateOrder(context.Background(), checkoutInput("Casablanca", CheckoutItem{
		ProductID: product.ID,
		Quantity:  1,
	}))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create order items", perr.Op)

	// The order header must not survive the failed item insert.
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrder_GuestHasNoUser(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	product := seedProduct(t, db, &models.Product{
		Name:  "Body Lotion",
		Slug:  "body-lotion",
		Price: d("25.50"),
	})

	order, err := svc.CreateOrder(context.Background(), checkoutInput("Casablanca", CheckoutItem{
		ProductID: product.ID,
		Quantity:  3,
	}))
	require.NoError(t, err)

	assert.Nil(t, order.UserID)
	assert.Equal(t, "76.50", order.ItemsTotal.StringFixed(2))

	var stored decimal.Decimal
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Pluck("items_total", &stored).Error)
	assert.Equal(t, "76.50", stored.StringFixed(2))
}
