package catalog

import (
	"context"
	"fmt"
)

// defaultDurationMinutes is applied when a service is created without an
// explicit duration. Matches one booking slot.
const defaultDurationMinutes = 30

type Svc struct {
	repo Repository
}

func NewService(repo Repository) *Svc {
	return &Svc{repo: repo}
}

func (s *Svc) Create(ctx context.Context, svc *Service) error {
	if svc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if svc.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if svc.DurationMinutes == 0 {
		svc.DurationMinutes = defaultDurationMinutes
	}
	if svc.DurationMinutes < 0 {
		return fmt.Errorf("duration_minutes cannot be negative")
	}
	return s.repo.Create(ctx, svc)
}

func (s *Svc) Get(ctx context.Context, id int64) (*Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Svc) Update(ctx context.Context, svc *Service) error {
	if svc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if svc.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return s.repo.Update(ctx, svc)
}

func (s *Svc) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Svc) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Service, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}
