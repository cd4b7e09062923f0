package project

import (
	"context"
	"errors"

	"estateweb/internal/querycache"
)

// Service provides project lookups backed by the shared query cache.
type Service struct {
	repo  Repository
	cache *querycache.Client
}

// NewService creates a new project service.
func NewService(repo Repository, cache *querycache.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

// CollectionKey is the cache key of the unfiltered project list.
func CollectionKey() string {
	return querycache.Key("projects")
}

func listKey(f ListFilter) string {
	if f.IsZero() {
		return CollectionKey()
	}
	return querycache.Key("projects", f)
}

// List returns the projects matching f. No matches is an empty slice.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Project, error) {
	return querycache.Query(ctx, s.cache, listKey(f), func(ctx context.Context) ([]Project, error) {
		return s.repo.List(ctx, f)
	})
}

// ByCategory lists one category in catalog order.
func (s *Service) ByCategory(ctx context.Context, c Category) ([]Project, error) {
	return s.List(ctx, ListFilter{Category: c})
}

// Get returns one project, reusing the cached full list when it holds id.
func (s *Service) Get(ctx context.Context, id int) (Project, error) {
	p, err := querycache.Query(ctx, s.cache, querycache.Key("project", id), func(ctx context.Context) (Project, error) {
		return querycache.FindFirst(ctx, s.cache, CollectionKey(), id, projectID, s.fetch)
	})
	if err != nil {
		if errors.Is(err, querycache.ErrNotFound) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (s *Service) fetch(ctx context.Context, id int) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func projectID(p Project) int { return p.ID }
