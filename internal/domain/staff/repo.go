package staff

import "context"

// ListFilter narrows the staff listing.
type ListFilter struct {
	Role       string
	BranchID   int64
	ActiveOnly bool
}

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id int64) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	Update(ctx context.Context, m *Member) error
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Member, int, error)
}
