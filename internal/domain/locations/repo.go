package locations

import "context"

type BranchRepository interface {
	Create(ctx context.Context, b *Branch) error
	GetByID(ctx context.Context, id int64) (*Branch, error)
	Update(ctx context.Context, b *Branch) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Branch, int, error)
}

type ReferenceRepository interface {
	ListProvinces(ctx context.Context) ([]*Province, error)
	ListWards(ctx context.Context, provinceCode string) ([]*Ward, error)
}
