package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"resty.dev/v3"
)

var (
	// ErrNotFound means no product exists for the requested slug. Terminal
	// for that view; retrying will not help.
	ErrNotFound = errors.New("product not found")
	// ErrFetchFailed covers transient transport and server failures.
	ErrFetchFailed = errors.New("catalog fetch failed")
)

// CatalogClient consumes the storefront catalog REST API.
type CatalogClient interface {
	GetProduct(ctx context.Context, slug string) (*domain.Product, error)
	GetRelatedProducts(ctx context.Context, productID, categoryID uuid.UUID) ([]*domain.Product, error)
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type relatedResponse struct {
	Success  bool              `json:"success"`
	Products []*domain.Product `json:"products"`
}

type catalogClient struct {
	baseURL    string
	httpClient *resty.Client
}

// NewCatalogClient creates a client for the catalog API at baseURL.
func NewCatalogClient(baseURL string) CatalogClient {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &catalogClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// GetProduct fetches a single product by slug, category included.
func (c *catalogClient) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	var body productResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("/api/v1/product/get-product/%s", slug))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.IsError() || body.Product == nil {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode())
	}

	return body.Product, nil
}

// GetRelatedProducts fetches products sharing categoryID, excluding
// productID. The server applies its configured cap.
func (c *catalogClient) GetRelatedProducts(ctx context.Context, productID, categoryID uuid.UUID) ([]*domain.Product, error) {
	var body relatedResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("/api/v1/product/related-product/%s/%s", productID, categoryID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode())
	}

	if body.Products == nil {
		return []*domain.Product{}, nil
	}
	return body.Products, nil
}
