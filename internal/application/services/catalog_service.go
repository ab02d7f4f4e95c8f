package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/cartline/storefront/go/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CatalogService struct {
	repo   ports.ProductRepository
	logger *logrus.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger *logrus.Logger) ports.CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	p := &product.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Category:    req.Category,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"product_id": p.ID, "category": p.Category}).Info("product created")
	}
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, category string, limit, offset int) ([]*product.Product, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, category, limit, offset)
}

func (s *CatalogService) TopRatedProducts(ctx context.Context, limit int) ([]*product.Product, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return s.repo.ListTopRated(ctx, limit)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *product.UpdateProductRequest) (*product.Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents <= 0 {
			return nil, fmt.Errorf("price must be positive")
		}
		current.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		current.Stock = *req.Stock
	}
	if req.Category != nil {
		current.Category = *req.Category
	}
	current.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return current, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"product_id": id}).Info("product deleted")
	}
	return nil
}
