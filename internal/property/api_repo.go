package property

import (
	"context"
	"net/url"
	"strconv"

	"estateweb/internal/platform/apiclient"
)

// APIClient is the subset of apiclient.Client used by APIRepo.
type APIClient interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// APIRepo reads and writes listings through the backend REST API.
type APIRepo struct {
	client APIClient
}

func NewAPIRepo(client APIClient) *APIRepo {
	return &APIRepo{client: client}
}

func (r *APIRepo) List(ctx context.Context, f Filters) ([]Property, error) {
	out := []Property{}
	if err := r.client.Get(ctx, "/properties", f.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *APIRepo) GetByID(ctx context.Context, id int) (Property, error) {
	var p Property
	if err := r.client.Get(ctx, propertyPath(id), nil, &p); err != nil {
		return Property{}, mapNotFound(err)
	}
	return p, nil
}

func (r *APIRepo) Featured(ctx context.Context, limit int) ([]Property, error) {
	out := []Property{}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := r.client.Get(ctx, "/properties/featured", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *APIRepo) SearchByLocation(ctx context.Context, query string) ([]Property, error) {
	out := []Property{}
	if err := r.client.Get(ctx, "/properties/search", url.Values{"q": {query}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *APIRepo) Create(ctx context.Context, in Payload) (Property, error) {
	var p Property
	if err := r.client.Post(ctx, "/properties", in, &p); err != nil {
		return Property{}, err
	}
	return p, nil
}

func (r *APIRepo) Update(ctx context.Context, id int, in Payload) (Property, error) {
	var p Property
	if err := r.client.Put(ctx, propertyPath(id), in, &p); err != nil {
		return Property{}, mapNotFound(err)
	}
	return p, nil
}

func (r *APIRepo) Delete(ctx context.Context, id int) error {
	return mapNotFound(r.client.Delete(ctx, propertyPath(id)))
}

func propertyPath(id int) string {
	return "/properties/" + strconv.Itoa(id)
}

func mapNotFound(err error) error {
	if apiclient.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
