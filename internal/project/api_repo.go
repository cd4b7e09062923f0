package project

import (
	"context"
	"net/url"
	"strconv"

	"estateweb/internal/platform/apiclient"
)

// APIClient is the subset of apiclient.Client used by APIRepo.
type APIClient interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

// APIRepo reads projects from the content backend.
type APIRepo struct {
	client APIClient
}

func NewAPIRepo(client APIClient) *APIRepo {
	return &APIRepo{client: client}
}

func (r *APIRepo) List(ctx context.Context, f ListFilter) ([]Project, error) {
	q := url.Values{}
	if f.Category != "" && f.Category != CategoryAll {
		q.Set("category", string(f.Category))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	out := []Project{}
	if err := r.client.Get(ctx, "/projects", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *APIRepo) GetByID(ctx context.Context, id int) (Project, error) {
	var p Project
	if err := r.client.Get(ctx, "/projects/"+strconv.Itoa(id), nil, &p); err != nil {
		if apiclient.IsNotFound(err) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}
