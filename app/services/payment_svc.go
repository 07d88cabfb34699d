package services

import (
	"context"
	"fmt"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// PaymentService creates Snap transactions for card orders. COD orders never
// touch the gateway.
type PaymentService struct {
	snapClient snap.Client
	orderRepo  repositories.OrderRepository
}

func NewPaymentService(snapClient snap.Client, orderRepo repositories.OrderRepository) *PaymentService {
	return &PaymentService{
		snapClient: snapClient,
		orderRepo:  orderRepo,
	}
}

// CreateCardPayment returns the hosted payment page URL for an order paid by
// card. The order snapshot itself is never mutated here.
func (s *PaymentService) CreateCardPayment(ctx context.Context, orderID string) (string, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return "", &PersistenceError{Op: "load order", Err: err}
	}
	if order == nil {
		return "", fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	if order.PaymentMethod != models.PaymentMethodCard {
		return "", NewValidationError().Add("payment_method", "order is not payable by card")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderCode,
			GrossAmt: order.GrandTotal.Round(0).IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: order.FullName,
			Email: order.Email,
			Phone: order.Phone,
		},
	}

	resp, snapErr := s.snapClient.CreateTransaction(req)
	if snapErr != nil {
		return "", fmt.Errorf("failed to create payment transaction: %w", snapErr)
	}
	return resp.RedirectURL, nil
}
