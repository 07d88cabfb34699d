package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/amalbenali/glowshop/app/services"
	"github.com/amalbenali/glowshop/app/utils/format"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
	validator   *validator.Validate
}

func NewProductHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl, v *validator.Validate) *ProductHandler {
	return &ProductHandler{
		render:      r,
		productRepo: productRepo,
		validator:   v,
	}
}

// productResponse augments the stored product with the computed promotion
// fields the storefront renders (badge percent, which variant the promo
// applies to and at what price).
type productResponse struct {
	*models.Product
	PriceDisplay         string           `json:"price_display"`
	HasDiscount          bool             `json:"has_discount"`
	DiscountPercent      int64            `json:"discount_percent"`
	PromoVariantID       string           `json:"promo_variant_id,omitempty"`
	PromoVariantOldPrice *decimal.Decimal `json:"promo_variant_old_price,omitempty"`
	PromoVariantNewPrice *decimal.Decimal `json:"promo_variant_new_price,omitempty"`
}

func newProductResponse(product *models.Product) productResponse {
	resp := productResponse{
		Product:         product,
		PriceDisplay:    format.FormatDH(product.Price),
		HasDiscount:     services.HasPromotion(product),
		DiscountPercent: services.DiscountPercent(product),
	}

	if promo := services.ResolvePromotion(product, product.Variants); promo != nil {
		resp.PromoVariantID = promo.VariantID
		for i := range product.Variants {
			if product.Variants[i].ID == promo.VariantID {
				old := product.Variants[i].Price
				resp.PromoVariantOldPrice = &old
				break
			}
		}
		discounted := promo.DiscountedPrice
		resp.PromoVariantNewPrice = &discounted
	}
	return resp
}

// ListProducts handles GET /api/products with category/brand/search filters.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	category := query.Get("category")
	if category == "" {
		category = query.Get("type")
	}

	products, err := h.productRepo.GetProducts(r.Context(), repositories.ProductFilters{
		Category: category,
		Brand:    query.Get("brand"),
		Search:   query.Get("search"),
	})
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	resp := make([]productResponse, len(products))
	for i := range products {
		resp[i] = newProductResponse(&products[i])
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /api/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.productRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if product == nil {
		renderServiceError(h.render, w, services.ErrNotFound)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newProductResponse(product))
}

// ListBrands handles GET /api/brands.
func (h *ProductHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.productRepo.GetBrands(r.Context())
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, brands)
}

type variantRequest struct {
	Label   string          `json:"label" validate:"required,max=80"`
	SizeML  *int            `json:"size_ml"`
	Price   decimal.Decimal `json:"price" validate:"required"`
	InStock *bool           `json:"in_stock"`
	Sku     string          `json:"sku"`
}

type productRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Brand       string           `json:"brand" validate:"max=120"`
	Description string           `json:"description"`
	Category    string           `json:"category" validate:"max=30"`
	Price       decimal.Decimal  `json:"price" validate:"required"`
	NewPrice    *decimal.Decimal `json:"new_price"`
	Stock       bool             `json:"stock"`
	ImagePath   string           `json:"image_path"`
	Variants    []variantRequest `json:"variants" validate:"dive"`
}

func (req *productRequest) toVariants() []models.ProductVariant {
	variants := make([]models.ProductVariant, 0, len(req.Variants))
	for _, v := range req.Variants {
		inStock := true
		if v.InStock != nil {
			inStock = *v.InStock
		}
		variants = append(variants, models.ProductVariant{
			Label:   v.Label,
			SizeML:  v.SizeML,
			Price:   v.Price,
			InStock: inStock,
			Sku:     v.Sku,
		})
	}
	return variants
}

// CreateProduct handles POST /api/admin/products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}

	product := &models.Product{
		Name:        req.Name,
		Slug:        slug.Make(req.Name + "-" + uuid.NewString()[:6]),
		Brand:       req.Brand,
		Description: req.Description,
		Category:    category,
		Price:       req.Price,
		NewPrice:    req.NewPrice,
		Stock:       req.Stock,
		ImagePath:   req.ImagePath,
		Variants:    req.toVariants(),
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	created, err := h.productRepo.GetByID(r.Context(), product.ID)
	if err != nil || created == nil {
		_ = h.render.JSON(w, http.StatusCreated, newProductResponse(product))
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, newProductResponse(created))
}

// UpdateProduct handles PUT /api/admin/products/{id}. Submitting variants
// replaces the whole variant list, matching the admin form semantics.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.productRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if product == nil {
		renderServiceError(h.render, w, services.ErrNotFound)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	product.Name = req.Name
	product.Brand = req.Brand
	product.Description = req.Description
	if req.Category != "" {
		product.Category = req.Category
	}
	product.Price = req.Price
	product.NewPrice = req.NewPrice
	product.Stock = req.Stock
	if req.ImagePath != "" {
		product.ImagePath = req.ImagePath
	}
	product.Variants = nil

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if req.Variants != nil {
		if err := h.productRepo.ReplaceVariants(r.Context(), product.ID, req.toVariants()); err != nil {
			renderServiceError(h.render, w, err)
			return
		}
	}

	updated, err := h.productRepo.GetByID(r.Context(), product.ID)
	if err != nil || updated == nil {
		_ = h.render.JSON(w, http.StatusOK, newProductResponse(product))
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newProductResponse(updated))
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if product == nil {
		renderServiceError(h.render, w, services.ErrNotFound)
		return
	}

	if err := h.productRepo.Delete(r.Context(), id); err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
