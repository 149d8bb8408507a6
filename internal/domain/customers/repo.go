package customers

import "context"

// ListFilter narrows the customer listing. Search matches name or phone.
type ListFilter struct {
	Search   string
	Status   string
	BranchID int64
}

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id int64) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Customer, int, error)
	Stats(ctx context.Context) (*Stats, error)
}
