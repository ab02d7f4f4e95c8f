package ports

import (
	"context"

	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/google/uuid"
)

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	List(ctx context.Context, category string, limit, offset int) ([]*product.Product, error)
	ListTopRated(ctx context.Context, limit int) ([]*product.Product, error)
	Update(ctx context.Context, p *product.Product) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, numReviews int) error
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogService defines product business operations.
type CatalogService interface {
	CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error)
	ListProducts(ctx context.Context, category string, limit, offset int) ([]*product.Product, error)
	TopRatedProducts(ctx context.Context, limit int) ([]*product.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *product.UpdateProductRequest) (*product.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
