package locations

import (
	"context"
	"fmt"
)

type Service struct {
	branches BranchRepository
	refs     ReferenceRepository
}

func NewService(branches BranchRepository, refs ReferenceRepository) *Service {
	return &Service{branches: branches, refs: refs}
}

func (s *Service) CreateBranch(ctx context.Context, b *Branch) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.branches.Create(ctx, b)
}

func (s *Service) GetBranch(ctx context.Context, id int64) (*Branch, error) {
	return s.branches.GetByID(ctx, id)
}

func (s *Service) UpdateBranch(ctx context.Context, b *Branch) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.branches.Update(ctx, b)
}

func (s *Service) DeleteBranch(ctx context.Context, id int64) error {
	return s.branches.Delete(ctx, id)
}

func (s *Service) ListBranches(ctx context.Context, activeOnly bool, limit, offset int) ([]*Branch, int, error) {
	return s.branches.List(ctx, activeOnly, limit, offset)
}

func (s *Service) ListProvinces(ctx context.Context) ([]*Province, error) {
	return s.refs.ListProvinces(ctx)
}

func (s *Service) ListWards(ctx context.Context, provinceCode string) ([]*Ward, error) {
	if provinceCode == "" {
		return nil, fmt.Errorf("province code is required")
	}
	return s.refs.ListWards(ctx, provinceCode)
}
