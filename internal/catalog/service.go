// Package catalog provides a session-scoped read-through cache over the
// remote product catalog, plus the admin product mutations. Any mutation
// invalidates the cache so the next read refetches authoritative state.
package catalog

import (
	"context"
	"sync"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/models"
)

// Service caches product reads for a single session. It must not be shared
// across sessions; each caller identity gets its own instance.
type Service struct {
	client backend.Client

	mu     sync.Mutex
	loaded bool
	list   []models.Product
	byID   map[models.ProductID]models.Product
}

// NewService creates a catalog service for one session.
func NewService(client backend.Client) *Service {
	return &Service{client: client}
}

// Products returns all products, fetching from the remote service on the
// first read after creation or invalidation.
func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]models.Product, len(s.list))
	copy(out, s.list)
	return out, nil
}

// Product returns the cached product for id, or nil when the product does
// not exist (deleted products resolve to nil, not an error).
func (s *Service) Product(ctx context.Context, id models.ProductID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if p, ok := s.byID[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

// ensureLoaded refetches the catalog when the cache is cold. Caller holds mu.
func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	list, err := s.client.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	s.list = list
	s.byID = make(map[models.ProductID]models.Product, len(list))
	for _, p := range list {
		s.byID[p.ID] = p
	}
	s.loaded = true
	return nil
}

// Invalidate drops the cache; the next read refetches.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.list = nil
	s.byID = nil
}

// AddProduct creates a product via the remote service and invalidates the
// cache. Admin-only; authorization is enforced remotely.
func (s *Service) AddProduct(ctx context.Context, p models.Product) (models.ProductID, error) {
	id, err := s.client.AddProduct(ctx, p)
	if err != nil {
		return 0, err
	}
	s.Invalidate()
	return id, nil
}

// UpdateProduct replaces a product and invalidates the cache.
func (s *Service) UpdateProduct(ctx context.Context, id models.ProductID, p models.Product) error {
	if err := s.client.UpdateProduct(ctx, id, p); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// DeleteProduct removes a product and invalidates the cache.
func (s *Service) DeleteProduct(ctx context.Context, id models.ProductID) error {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}
