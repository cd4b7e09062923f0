package enquiry

import (
	"context"
)

// APIPoster is the subset of apiclient.Client used by APIRepo.
type APIPoster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// APIRepo forwards enquiries to the backend REST API.
type APIRepo struct {
	client APIPoster
}

func NewAPIRepo(client APIPoster) *APIRepo {
	return &APIRepo{client: client}
}

func (r *APIRepo) Create(ctx context.Context, e *Enquiry) error {
	var stored Enquiry
	if err := r.client.Post(ctx, "/enquiries", e, &stored); err != nil {
		return err
	}
	if !stored.CreatedAt.IsZero() {
		e.CreatedAt = stored.CreatedAt
	}
	return nil
}
