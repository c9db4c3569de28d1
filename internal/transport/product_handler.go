package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductRequest is the product ingestion payload
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	CategoryID  string  `json:"category_id" validate:"required,uuid"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// ProductResponse wraps a single product
type ProductResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Product *domain.Product `json:"product"`
}

// ProductListResponse wraps a product collection
type ProductListResponse struct {
	Success  bool              `json:"success"`
	Total    int               `json:"total,omitempty"`
	Products []*domain.Product `json:"products"`
}

// CountResponse wraps the catalog's total product count
type CountResponse struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
}

// ProductHandler handles HTTP requests for catalog products
type ProductHandler struct {
	catalog      service.CatalogService
	logger       *zap.Logger
	relatedLimit int
	pageSize     int
}

// NewProductHandler creates a new ProductHandler. relatedLimit caps the
// related-product endpoint's result set.
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger, relatedLimit int) *ProductHandler {
	return &ProductHandler{
		catalog:      catalog,
		logger:       logger,
		relatedLimit: relatedLimit,
		pageSize:     6,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/product", func(r chi.Router) {
		r.Get("/get-product/{slug}", h.GetProduct)
		r.Get("/related-product/{pid}/{cid}", h.GetRelatedProducts)
		r.Get("/product-photo/{pid}", h.GetProductPhoto)
		r.Get("/product-list/{page}", h.ListProducts)
		r.Get("/product-count", h.CountProducts)
		r.Get("/search/{keyword}", h.SearchProducts)
		r.Post("/create-product", h.CreateProduct)
	})
}

// GetProduct returns a single product by slug, category included
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.String("slug", slug), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{
		Success: true,
		Message: "single product fetched",
		Product: product,
	})
}

// GetRelatedProducts returns products sharing a category with the given
// product, excluding the product itself, capped at the configured limit
func (h *ProductHandler) GetRelatedProducts(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	categoryID, err := uuid.Parse(chi.URLParam(r, "cid"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	reference := &domain.Product{
		ID:       productID,
		Category: domain.Category{ID: categoryID},
	}

	products, err := h.catalog.Related(r.Context(), reference, h.relatedLimit)
	if err != nil {
		h.logger.Error("Failed to get related products",
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get related products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Success:  true,
		Products: products,
	})
}

// GetProductPhoto resolves a product id to its image by redirecting to the
// stored image URL; the binary itself lives with the image service
func (h *ProductHandler) GetProductPhoto(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalog.GetProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to resolve product photo",
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to resolve product photo")
		return
	}

	if product.ImageURL == "" {
		middleware.RespondWithError(w, http.StatusNotFound, "product has no photo")
		return
	}

	http.Redirect(w, r, product.ImageURL, http.StatusFound)
}

// ListProducts returns one page of the catalog, newest first
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		page = 1
	}

	products, total, err := h.catalog.ListProducts(r.Context(), nil, page, h.pageSize)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Int("page", page), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Success:  true,
		Total:    total,
		Products: products,
	})
}

// CountProducts returns the catalog's total product count
func (h *ProductHandler) CountProducts(w http.ResponseWriter, r *http.Request) {
	total, err := h.catalog.CountProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to count products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to count products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CountResponse{
		Success: true,
		Total:   total,
	})
}

// SearchProducts searches products by keyword over name and description
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	keyword := chi.URLParam(r, "keyword")

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	products, total, err := h.catalog.SearchProducts(r.Context(), keyword, page, h.pageSize)
	if err != nil {
		h.logger.Error("Failed to search products", zap.String("keyword", keyword), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Success:  true,
		Total:    total,
		Products: products,
	})
}

// CreateProduct ingests a new product into the catalog
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  categoryID,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProduct):
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product payload")
		case errors.Is(err, repository.ErrCategoryNotFound):
			middleware.RespondWithError(w, http.StatusBadRequest, "category does not exist")
		case errors.Is(err, repository.ErrProductSlugTaken):
			middleware.RespondWithError(w, http.StatusConflict, "product with this slug already exists")
		default:
			h.logger.Error("Failed to create product", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		}
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, ProductResponse{
		Success: true,
		Message: "product created",
		Product: product,
	})
}
