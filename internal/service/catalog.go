package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prudhivi99/storefront/internal/models"
)

// CatalogService is plain product CRUD.
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("product", id)
	}
	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, invalid("name", "name is required")
	}
	if req.Price == nil {
		return nil, invalid("price", "price is required")
	}
	if req.Price.IsNegative() {
		return nil, invalid("price", "price must not be negative")
	}

	return s.products.Create(ctx, req.Name, *req.Price)
}

// Update handles PUT (full=true, every field required) and PATCH
// (full=false, missing fields keep their value).
func (s *CatalogService) Update(ctx context.Context, id int64, req *models.UpdateProductRequest, full bool) (*models.Product, error) {
	if full {
		if req.Name == nil {
			return nil, invalid("name", "name is required")
		}
		if req.Price == nil {
			return nil, invalid("price", "price is required")
		}
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, invalid("price", "price must not be negative")
	}
	if req.Name != nil && *req.Name == "" {
		return nil, invalid("name", "name must not be empty")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("product", id)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("product", id)
		}
		return nil, err
	}

	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("product", id)
		}
		return err
	}
	return nil
}
