package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/amalbenali/glowshop/app/helpers"
	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/services"
	"github.com/amalbenali/glowshop/app/utils/format"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render      *render.Render
	checkoutSvc *services.CheckoutService
	orderSvc    *services.OrderService
	paymentSvc  *services.PaymentService
	validator   *validator.Validate
}

func NewOrderHandler(
	r *render.Render,
	checkoutSvc *services.CheckoutService,
	orderSvc *services.OrderService,
	paymentSvc *services.PaymentService,
	v *validator.Validate,
) *OrderHandler {
	return &OrderHandler{
		render:      r,
		checkoutSvc: checkoutSvc,
		orderSvc:    orderSvc,
		paymentSvc:  paymentSvc,
		validator:   v,
	}
}

type createOrderRequest struct {
	FullName      string                  `json:"full_name" validate:"required,max=120"`
	Email         string                  `json:"email" validate:"omitempty,email"`
	Phone         string                  `json:"phone" validate:"required,max=32"`
	City          string                  `json:"city" validate:"required,max=120"`
	Address       string                  `json:"address" validate:"required,max=255"`
	Notes         string                  `json:"notes"`
	PaymentMethod string                  `json:"payment_method" validate:"required,oneof=cod card"`
	Items         []services.CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

type orderResponse struct {
	*models.Order
	ItemsTotalDisplay string `json:"items_total_display"`
	GrandTotalDisplay string `json:"grand_total_display"`
	PaymentURL        string `json:"payment_url,omitempty"`
}

func newOrderResponse(order *models.Order) orderResponse {
	return orderResponse{
		Order:             order,
		ItemsTotalDisplay: format.FormatDH(order.ItemsTotal),
		GrandTotalDisplay: format.FormatDH(order.GrandTotal),
	}
}

// CreateOrder handles POST /api/orders. Guests may order: the user
// association is only set when a session is present.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	var userID *string
	if id := helpers.GetUserIDFromContext(r.Context()); id != "" {
		userID = &id
	}

	order, err := h.checkoutSvc.CreateOrder(r.Context(), services.CheckoutInput{
		UserID:        userID,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		City:          req.City,
		Address:       req.Address,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		Items:         req.Items,
	})
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	resp := newOrderResponse(order)
	if order.PaymentMethod == models.PaymentMethodCard {
		paymentURL, payErr := h.paymentSvc.CreateCardPayment(r.Context(), order.ID)
		if payErr != nil {
			// The order itself is committed; payment can be retried via
			// the payments endpoint.
			log.Printf("CreateOrder: payment transaction failed for order %s: %v", order.ID, payErr)
		} else {
			resp.PaymentURL = paymentURL
		}
	}

	_ = h.render.JSON(w, http.StatusCreated, resp)
}

// ListOrders handles GET /api/orders: admins see everything, customers see
// their own orders.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := helpers.GetUserIDFromContext(r.Context())

	var (
		orders []models.Order
		err    error
	)
	if helpers.GetRoleFromContext(r.Context()) == models.RoleAdmin {
		orders, err = h.orderSvc.ListAll(r.Context())
	} else {
		orders, err = h.orderSvc.ListForUser(r.Context(), userID)
	}
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i := range orders {
		resp[i] = newOrderResponse(&orders[i])
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

// GetOrder handles GET /api/orders/{id}. Customers may only read their own.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	order, err := h.orderSvc.GetByID(r.Context(), orderID)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	if helpers.GetRoleFromContext(r.Context()) != models.RoleAdmin {
		userID := helpers.GetUserIDFromContext(r.Context())
		if order.UserID == nil || *order.UserID != userID {
			renderServiceError(h.render, w, services.ErrNotFound)
			return
		}
	}

	_ = h.render.JSON(w, http.StatusOK, newOrderResponse(order))
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus handles PUT /api/admin/orders/{id}/status.
func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	order, err := h.orderSvc.SetStatus(r.Context(), orderID, req.Status)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newOrderResponse(order))
}

// CreatePayment handles POST /api/payments/create for card orders.
func (h *OrderHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"order_id" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	paymentURL, err := h.paymentSvc.CreateCardPayment(r.Context(), req.OrderID)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"payment_url": paymentURL})
}
