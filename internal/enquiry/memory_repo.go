package enquiry

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"
)

// MemoryRepo keeps enquiries for the life of the process. It backs the
// site when no database is configured.
type MemoryRepo struct {
	mu        sync.Mutex
	enquiries []Enquiry
	now       func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{now: time.Now}
}

func (r *MemoryRepo) Create(ctx context.Context, e *Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.CreatedAt = r.now().UTC()
	r.enquiries = append(r.enquiries, *e)
	log.Printf("enquiry stored in memory id=%s source=%s", e.ID, e.Source)
	return nil
}

// All returns the stored enquiries, oldest first.
func (r *MemoryRepo) All() []Enquiry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.enquiries)
}
