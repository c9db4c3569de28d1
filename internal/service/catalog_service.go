package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidProduct = errors.New("invalid product payload")
)

// CreateProductInput is the ingestion payload for a new product. Validation
// happens here so that every product the store hands back downstream is
// guaranteed to carry a non-empty name, a non-negative price, and a real
// category.
type CreateProductInput struct {
	Name        string    `validate:"required"`
	Description string    `validate:"required"`
	Price       float64   `validate:"gte=0"`
	CategoryID  uuid.UUID `validate:"required"`
	ImageURL    string    `validate:"omitempty,url"`
	Stock       int       `validate:"gte=0"`
}

// CatalogService defines the catalog business operations
type CatalogService interface {
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Related(ctx context.Context, product *domain.Product, limit int) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	ListProducts(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]*domain.Product, int, error)
	SearchProducts(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
	CountProducts(ctx context.Context) (int, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	validate     *validator.Validate
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		validate:     validator.New(),
	}
}

// GetProductBySlug retrieves a product by slug. The returned product always
// has its category resolved; repository.ErrProductNotFound is returned when
// no product has the slug.
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.productRepo.FindBySlug(ctx, slug)
}

// GetProductByID retrieves a product by its opaque identifier
func (s *catalogService) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// Related returns up to limit products sharing the product's category,
// excluding the product itself. A non-positive limit short-circuits to an
// empty result without querying, and a product with no resolved category is a
// recoverable presentation condition rather than an error.
func (s *catalogService) Related(ctx context.Context, product *domain.Product, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		return []*domain.Product{}, nil
	}
	if product == nil || product.Category.ID == uuid.Nil {
		return []*domain.Product{}, nil
	}

	return s.productRepo.FindRelated(ctx, product.ID, product.Category.ID, limit)
}

// CreateProduct validates and ingests a new product, deriving its slug from
// the name
func (s *catalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	category, err := s.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Slug:        Slugify(input.Name),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    *category,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts retrieves a page of products, optionally filtered by category
func (s *catalogService) ListProducts(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]*domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 6
	}
	return s.productRepo.List(ctx, categoryID, page, pageSize)
}

// SearchProducts searches products by keyword over name and description
func (s *catalogService) SearchProducts(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 6
	}
	return s.productRepo.Search(ctx, query, page, pageSize)
}

// CountProducts returns the catalog's total product count
func (s *catalogService) CountProducts(ctx context.Context) (int, error) {
	return s.productRepo.Count(ctx)
}

// Slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen, producing a URL-safe stable key.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
