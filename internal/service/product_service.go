package service

import (
	"context"
	"strings"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	loader      Loader
	logger      zerolog.Logger
}

// NewProductService creates a new product service. loader makes sure the
// listings have been fetched before the first read.
func NewProductService(productRepo repository.ProductRepository, loader Loader, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		loader:      loader,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns products matching query and category.
func (s *productService) List(ctx context.Context, query, category string) ([]model.Product, error) {
	category = strings.TrimSpace(category)
	if category != "" && !model.IsCategory(category) {
		s.logger.Debug().Str("category", category).Msg("unknown category")
		return nil, model.ErrInvalidCategory
	}

	s.loader.EnsureLoaded(ctx)

	products := filterCategory(s.productRepo.Search(query), category)
	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("query", query).
		Str("category", category).
		Msg("listed products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	s.loader.EnsureLoaded(ctx)

	product, ok := s.productRepo.FindByID(id)
	if !ok {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return &product, nil
}
