package enquiry

import (
	"context"
)

// Repository stores enquiries.
type Repository interface {
	Create(ctx context.Context, e *Enquiry) error
}
