package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type mockRepo struct {
	services map[int64]*Service
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{services: make(map[int64]*Service)}
}

func (m *mockRepo) Create(_ context.Context, s *Service) error {
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	m.services[s.ID] = s
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (m *mockRepo) Update(_ context.Context, s *Service) error {
	m.services[s.ID] = s
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	delete(m.services, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, f ListFilter, limit, offset int) ([]*Service, int, error) {
	var result []*Service
	for _, s := range m.services {
		if f.ActiveOnly && !s.Active {
			continue
		}
		if f.Level != "" && (s.Level == nil || *s.Level != f.Level) {
			continue
		}
		result = append(result, s)
	}
	return result, len(result), nil
}

func newTestSvc() *Svc {
	return NewService(newMockRepo())
}

func TestCreateService_Defaults(t *testing.T) {
	svc := newTestSvc()
	s := &Service{Name: "Scaling", Price: 300000}
	if err := svc.Create(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DurationMinutes != defaultDurationMinutes {
		t.Errorf("expected default duration %d, got %d", defaultDurationMinutes, s.DurationMinutes)
	}
}

func TestCreateService_Validation(t *testing.T) {
	svc := newTestSvc()
	tests := []struct {
		name string
		in   *Service
	}{
		{"missing name", &Service{Price: 100}},
		{"negative price", &Service{Name: "Filling", Price: -1}},
		{"negative duration", &Service{Name: "Filling", DurationMinutes: -30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tt.in); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestListServices_FilterByLevel(t *testing.T) {
	svc := newTestSvc()
	basic := "basic"
	advanced := "advanced"
	svc.Create(context.Background(), &Service{Name: "Cleaning", Level: &basic, Active: true})
	svc.Create(context.Background(), &Service{Name: "Implant", Level: &advanced, Active: true})

	items, total, err := svc.List(context.Background(), ListFilter{Level: "basic"}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || items[0].Name != "Cleaning" {
		t.Errorf("expected only Cleaning, got %d items", total)
	}
}

func TestUpdateService_Validation(t *testing.T) {
	svc := newTestSvc()
	s := &Service{Name: "Whitening", Price: 100, DurationMinutes: 60}
	svc.Create(context.Background(), s)

	s.DurationMinutes = 0
	if err := svc.Update(context.Background(), s); err == nil {
		t.Error("expected error for zero duration on update")
	}
}

func TestDeleteService(t *testing.T) {
	svc := newTestSvc()
	s := &Service{Name: "Extraction"}
	svc.Create(context.Background(), s)

	if err := svc.Delete(context.Background(), s.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), s.ID); err == nil {
		t.Error("expected not-found after delete")
	}
}
