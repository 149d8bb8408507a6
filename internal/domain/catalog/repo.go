package catalog

import "context"

// ListFilter narrows the service listing.
type ListFilter struct {
	Level      string
	ActiveOnly bool
}

type Repository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id int64) (*Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Service, int, error)
}
