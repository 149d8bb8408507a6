package staff

import (
	"context"
	"fmt"

	"github.com/dentalx/clinic-api/internal/platform/auth"
)

var validRoles = map[string]bool{
	auth.RoleAdmin:        true,
	auth.RoleManager:      true,
	auth.RoleDoctor:       true,
	auth.RoleReceptionist: true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, m *Member) error {
	if m.FirstName == "" || m.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if m.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !validRoles[m.Role] {
		return fmt.Errorf("invalid role: %s", m.Role)
	}
	if existing, err := s.repo.GetByEmail(ctx, m.Email); err == nil && existing != nil {
		return fmt.Errorf("email %s is already registered", m.Email)
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id int64) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, m *Member) error {
	if m.Role != "" && !validRoles[m.Role] {
		return fmt.Errorf("invalid role: %s", m.Role)
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Member, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// ListDoctors returns all active doctors in the compact calendar shape.
func (s *Service) ListDoctors(ctx context.Context, branchID int64) ([]Doctor, error) {
	members, _, err := s.repo.List(ctx, ListFilter{Role: auth.RoleDoctor, BranchID: branchID, ActiveOnly: true}, maxDoctors, 0)
	if err != nil {
		return nil, err
	}
	doctors := make([]Doctor, 0, len(members))
	for _, m := range members {
		doctors = append(doctors, m.AsDoctor())
	}
	return doctors, nil
}

// maxDoctors bounds the unpaginated doctor listing used by calendar screens.
const maxDoctors = 500
