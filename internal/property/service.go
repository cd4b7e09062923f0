package property

import (
	"context"
	"errors"
	"time"

	"estateweb/internal/querycache"
)

const (
	listStaleTime     = 2 * time.Minute
	featuredStaleTime = 5 * time.Minute
	searchStaleTime   = time.Minute
)

// Service provides listing lookups backed by the shared query cache.
type Service struct {
	repo  Repository
	cache *querycache.Client
}

// NewService creates a new property service.
func NewService(repo Repository, cache *querycache.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

// CollectionKey is the cache key of the unfiltered listing.
func CollectionKey() string {
	return querycache.Key("properties")
}

func detailKey(id int) string {
	return querycache.Key("property", id)
}

// List returns the listings matching f.
func (s *Service) List(ctx context.Context, f Filters) ([]Property, error) {
	key := CollectionKey()
	if !f.IsZero() {
		key = querycache.Key("properties", f)
	}
	return querycache.Query(ctx, s.cache, key, func(ctx context.Context) ([]Property, error) {
		return s.repo.List(ctx, f)
	}, querycache.WithStaleTime(listStaleTime))
}

// Get returns one listing, reusing the cached full listing when it holds id.
func (s *Service) Get(ctx context.Context, id int) (Property, error) {
	p, err := querycache.Query(ctx, s.cache, detailKey(id), func(ctx context.Context) (Property, error) {
		return querycache.FindFirst(ctx, s.cache, CollectionKey(), id, propertyID, s.fetch)
	})
	if err != nil {
		if errors.Is(err, querycache.ErrNotFound) {
			return Property{}, ErrNotFound
		}
		return Property{}, err
	}
	return p, nil
}

// Featured returns up to limit featured listings; limit <= 0 means
// DefaultFeaturedLimit.
func (s *Service) Featured(ctx context.Context, limit int) ([]Property, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	key := querycache.Key("properties", "featured", limit)
	return querycache.Query(ctx, s.cache, key, func(ctx context.Context) ([]Property, error) {
		return s.repo.Featured(ctx, limit)
	}, querycache.WithStaleTime(featuredStaleTime))
}

// SearchByLocation matches listings by location. Queries shorter than
// MinSearchLength fail with ErrQueryTooShort without reaching the repository.
func (s *Service) SearchByLocation(ctx context.Context, q string) ([]Property, error) {
	q, err := validSearch(q)
	if err != nil {
		return nil, err
	}
	key := querycache.Key("properties", "search", q)
	return querycache.Query(ctx, s.cache, key, func(ctx context.Context) ([]Property, error) {
		return s.repo.SearchByLocation(ctx, q)
	}, querycache.WithStaleTime(searchStaleTime))
}

func (s *Service) Create(ctx context.Context, in Payload) (Property, error) {
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return Property{}, err
	}
	s.cache.InvalidateQueries("properties")
	s.cache.SetQueryData(detailKey(p.ID), p)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int, in Payload) (Property, error) {
	p, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return Property{}, err
	}
	s.cache.InvalidateQueries("properties")
	s.cache.SetQueryData(detailKey(id), p)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateQueries("properties")
	s.cache.Invalidate(detailKey(id))
	return nil
}

func (s *Service) fetch(ctx context.Context, id int) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func propertyID(p Property) int { return p.ID }
