package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amalbenali/glowshop/app/helpers"
	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/amalbenali/glowshop/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type WishlistHandler struct {
	render       *render.Render
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepositoryImpl
}

func NewWishlistHandler(r *render.Render, wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepositoryImpl) *WishlistHandler {
	return &WishlistHandler{
		render:       r,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// ListWishlist handles GET /api/wishlist for the authenticated user.
func (h *WishlistHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	userID := helpers.GetUserIDFromContext(r.Context())

	items, err := h.wishlistRepo.FindByUserID(r.Context(), userID)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, items)
}

// Toggle handles POST /api/wishlist/toggle: adds the product when absent,
// removes it when present, and reports the resulting state plus the new
// wishlist size.
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := helpers.GetUserIDFromContext(r.Context())

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		renderBadRequest(h.render, w, "product_id required")
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), req.ProductID)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if product == nil {
		renderServiceError(h.render, w, services.ErrNotFound)
		return
	}

	existing, err := h.wishlistRepo.Find(r.Context(), userID, req.ProductID)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	state := "added"
	if existing != nil {
		if err := h.wishlistRepo.Delete(r.Context(), existing.ID, userID); err != nil {
			renderServiceError(h.render, w, err)
			return
		}
		state = "removed"
	} else {
		item := &models.WishlistItem{UserID: userID, ProductID: req.ProductID}
		if err := h.wishlistRepo.Create(r.Context(), item); err != nil {
			renderServiceError(h.render, w, err)
			return
		}
	}

	total, err := h.wishlistRepo.CountByUserID(r.Context(), userID)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
		"total": total,
	})
}

// Delete handles DELETE /api/wishlist/{id}.
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := helpers.GetUserIDFromContext(r.Context())

	if err := h.wishlistRepo.Delete(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
