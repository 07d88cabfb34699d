package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/amalbenali/glowshop/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutItem is one cart line as submitted by the storefront.
type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutInput carries everything needed to materialize an order. UserID is
// nil for guest checkout.
type CheckoutInput struct {
	UserID        *string
	FullName      string
	Email         string
	Phone         string
	City          string
	Address       string
	Notes         string
	PaymentMethod string
	Items         []CheckoutItem
}

type CheckoutService struct {
	db            *gorm.DB
	productRepo   repositories.ProductRepositoryImpl
	shippingRepo  repositories.ShippingRateRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	shippingRepo repositories.ShippingRateRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		productRepo:   productRepo,
		shippingRepo:  shippingRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

// CreateOrder prices every cart line against the current catalog, snapshots
// the result, and persists the order and its items as one transaction.
// Nothing is written when any part of the operation fails.
func (s *CheckoutService) CreateOrder(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	if err := validateCheckoutInput(input); err != nil {
		return nil, err
	}

	items, itemsTotal, err := s.buildOrderItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	shippingPrice := decimal.Zero
	rate, err := s.shippingRepo.FindActiveByCity(ctx, input.City)
	if err != nil {
		return nil, &PersistenceError{Op: "shipping rate lookup", Err: err}
	}
	if rate != nil {
		shippingPrice = rate.Price
	}

	order := &models.Order{
		OrderCode:     fmt.Sprintf("GS-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8]),
		UserID:        input.UserID,
		FullName:      strings.TrimSpace(input.FullName),
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		City:          strings.TrimSpace(input.City),
		Address:       strings.TrimSpace(input.Address),
		Notes:         input.Notes,
		PaymentMethod: input.PaymentMethod,
		Status:        models.OrderStatusPending,
		ShippingPrice: shippingPrice,
		ItemsTotal:    itemsTotal,
		GrandTotal:    calc.CalculateGrandTotal(itemsTotal, shippingPrice),
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, &PersistenceError{Op: "begin transaction", Err: tx.Error}
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Op: "create order", Err: err}
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.BulkCreate(ctx, tx, items); err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Op: "create order items", Err: err}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Op: "commit order", Err: err}
	}

	order.OrderItems = items
	return order, nil
}

// buildOrderItems resolves each cart line to a priced snapshot and returns
// the rounded items total alongside.
func (s *CheckoutService) buildOrderItems(ctx context.Context, cartItems []CheckoutItem) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(cartItems))
	itemsTotal := decimal.Zero

	// Products are fetched once per distinct ID so repeated lines in the
	// same cart price against the same catalog snapshot.
	products := make(map[string]*models.Product)

	for _, cartItem := range cartItems {
		product, ok := products[cartItem.ProductID]
		if !ok {
			var err error
			product, err = s.productRepo.GetByID(ctx, cartItem.ProductID)
			if err != nil {
				return nil, decimal.Zero, &PersistenceError{Op: "load product", Err: err}
			}
			if product == nil {
				return nil, decimal.Zero, fmt.Errorf("%w: product %s", ErrInvalidReference, cartItem.ProductID)
			}
			products[cartItem.ProductID] = product
		}

		unitPrice, err := UnitPriceFor(product, product.Variants, cartItem.VariantID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("%w: variant %s of product %s", ErrInvalidReference, cartItem.VariantID, cartItem.ProductID)
		}

		variantLabel := ""
		var variantID *string
		if cartItem.VariantID != "" {
			for i := range product.Variants {
				if product.Variants[i].ID == cartItem.VariantID {
					variantLabel = product.Variants[i].Label
					break
				}
			}
			id := cartItem.VariantID
			variantID = &id
		}

		lineTotal := calc.LineTotal(unitPrice, cartItem.Quantity)
		productID := cartItem.ProductID
		items = append(items, models.OrderItem{
			ProductID:    &productID,
			VariantID:    variantID,
			Name:         product.Name,
			VariantLabel: variantLabel,
			UnitPrice:    unitPrice,
			Quantity:     cartItem.Quantity,
			LineTotal:    lineTotal,
		})
		itemsTotal = itemsTotal.Add(lineTotal)
	}

	return items, itemsTotal.Round(2), nil
}

func validateCheckoutInput(input CheckoutInput) error {
	verr := NewValidationError()

	if len(input.Items) == 0 {
		verr.Add("items", "at least one cart item is required")
	}
	for i, item := range input.Items {
		if item.ProductID == "" {
			verr.Add(fmt.Sprintf("items[%d].product_id", i), "required")
		}
		if item.Quantity < 1 {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
	}

	if strings.TrimSpace(input.FullName) == "" {
		verr.Add("full_name", "required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		verr.Add("phone", "required")
	}
	if strings.TrimSpace(input.City) == "" {
		verr.Add("city", "required")
	}
	if strings.TrimSpace(input.Address) == "" {
		verr.Add("address", "required")
	}
	if !models.IsValidPaymentMethod(input.PaymentMethod) {
		verr.Add("payment_method", "must be cod or card")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
