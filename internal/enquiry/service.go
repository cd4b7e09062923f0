package enquiry

import (
	"context"
	"fmt"
	"log"

	"estateweb/internal/httpx"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	newID func() uuid.UUID
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.New}
}

// Submit validates in and stores it. Validation failures are returned as
// *InvalidError and never reach the repository.
func (s *Service) Submit(ctx context.Context, in Input, source Source) (Enquiry, error) {
	in = in.Normalize()
	if errs := httpx.ValidateStruct(in); len(errs) > 0 {
		return Enquiry{}, &InvalidError{Fields: errs}
	}

	e := Enquiry{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		ProjectID: in.ProjectID,
		Source:    source,
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return Enquiry{}, fmt.Errorf("store enquiry: %w", err)
	}
	log.Printf("enquiry received id=%s source=%s", e.ID, e.Source)
	return e, nil
}
