package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/amalbenali/glowshop/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ShippingHandler struct {
	render       *render.Render
	shippingRepo repositories.ShippingRateRepository
	validator    *validator.Validate
}

func NewShippingHandler(r *render.Render, shippingRepo repositories.ShippingRateRepository, v *validator.Validate) *ShippingHandler {
	return &ShippingHandler{
		render:       r,
		shippingRepo: shippingRepo,
		validator:    v,
	}
}

// ListPublicRates handles GET /api/shipping-rates: active rates only, with
// an optional ?q= city filter. The storefront uses this to show delivery
// prices before checkout.
func (h *ShippingHandler) ListPublicRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.shippingRepo.GetActive(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, rates)
}

// ListAdminRates handles GET /api/admin/shipping-rates: includes inactive rows.
func (h *ShippingHandler) ListAdminRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.shippingRepo.GetAll(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, rates)
}

type shippingRateRequest struct {
	City   string          `json:"city" validate:"required,max=120"`
	Price  decimal.Decimal `json:"price" validate:"required"`
	Active *bool           `json:"active"`
}

// CreateRate handles POST /api/admin/shipping-rates.
func (h *ShippingHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	var req shippingRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	rate := &models.ShippingRate{
		City:   req.City,
		Price:  req.Price,
		Active: active,
	}
	if err := h.shippingRepo.Create(r.Context(), rate); err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, rate)
}

// UpdateRate handles PUT /api/admin/shipping-rates/{id}.
func (h *ShippingHandler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.shippingRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if rate == nil {
		renderServiceError(h.render, w, services.ErrNotFound)
		return
	}

	var req shippingRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	rate.City = req.City
	rate.Price = req.Price
	if req.Active != nil {
		rate.Active = *req.Active
	}
	if err := h.shippingRepo.Update(r.Context(), rate); err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, rate)
}

// DeleteRate handles DELETE /api/admin/shipping-rates/{id}.
func (h *ShippingHandler) DeleteRate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rate, err := h.shippingRepo.GetByID(r.Context(), id)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if rate == nil {
		renderServiceError(h.render, w, services.ErrNotFound)
		return
	}

	if err := h.shippingRepo.Delete(r.Context(), id); err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
