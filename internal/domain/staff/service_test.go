package staff

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type mockRepo struct {
	members map[int64]*Member
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{members: make(map[int64]*Member)}
}

func (m *mockRepo) Create(_ context.Context, mem *Member) error {
	m.nextID++
	mem.ID = m.nextID
	mem.CreatedAt = time.Now()
	mem.UpdatedAt = time.Now()
	m.members[mem.ID] = mem
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Member, error) {
	mem, ok := m.members[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return mem, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Member, error) {
	for _, mem := range m.members {
		if mem.Email == email {
			return mem, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, mem *Member) error {
	m.members[mem.ID] = mem
	return nil
}

func (m *mockRepo) Deactivate(_ context.Context, id int64) error {
	if mem, ok := m.members[id]; ok {
		mem.Active = false
	}
	return nil
}

func (m *mockRepo) List(_ context.Context, f ListFilter, limit, offset int) ([]*Member, int, error) {
	var result []*Member
	for _, mem := range m.members {
		if f.Role != "" && mem.Role != f.Role {
			continue
		}
		if f.BranchID != 0 && (mem.BranchID == nil || *mem.BranchID != f.BranchID) {
			continue
		}
		if f.ActiveOnly && !mem.Active {
			continue
		}
		result = append(result, mem)
	}
	return result, len(result), nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func TestCreateMember(t *testing.T) {
	svc := newTestService()
	m := &Member{FirstName: "An", LastName: "Nguyen", Email: "an@clinic.vn", Role: "doctor", Active: true}
	if err := svc.Create(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == 0 {
		t.Error("expected id to be assigned")
	}
}

func TestCreateMember_Validation(t *testing.T) {
	svc := newTestService()
	tests := []struct {
		name string
		in   *Member
	}{
		{"missing name", &Member{Email: "x@clinic.vn", Role: "doctor"}},
		{"missing email", &Member{FirstName: "An", LastName: "Nguyen", Role: "doctor"}},
		{"bad role", &Member{FirstName: "An", LastName: "Nguyen", Email: "x@clinic.vn", Role: "janitor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tt.in); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateMember_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	m := &Member{FirstName: "An", LastName: "Nguyen", Email: "an@clinic.vn", Role: "doctor"}
	if err := svc.Create(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dup := &Member{FirstName: "Binh", LastName: "Tran", Email: "an@clinic.vn", Role: "receptionist"}
	if err := svc.Create(context.Background(), dup); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestDeactivate(t *testing.T) {
	svc := newTestService()
	m := &Member{FirstName: "An", LastName: "Nguyen", Email: "an@clinic.vn", Role: "doctor", Active: true}
	svc.Create(context.Background(), m)

	if err := svc.Deactivate(context.Background(), m.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(context.Background(), m.ID)
	if got.Active {
		t.Error("expected member to be inactive")
	}
}

func TestListDoctors_ColorIndex(t *testing.T) {
	svc := newTestService()
	repo := svc.repo.(*mockRepo)
	// Force a doctor with id 12 to check palette wrap-around.
	repo.nextID = 11
	m := &Member{FirstName: "Chi", LastName: "Le", Email: "chi@clinic.vn", Role: "doctor", Active: true}
	svc.Create(context.Background(), m)

	doctors, err := svc.ListDoctors(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doctors) != 1 {
		t.Fatalf("expected 1 doctor, got %d", len(doctors))
	}
	if doctors[0].ColorIndex != 2 {
		t.Errorf("expected color index 2 for id 12, got %d", doctors[0].ColorIndex)
	}
	if doctors[0].DisplayName != "Chi Le" {
		t.Errorf("expected display name 'Chi Le', got %q", doctors[0].DisplayName)
	}
}

func TestListDoctors_ExcludesInactiveAndOtherRoles(t *testing.T) {
	svc := newTestService()
	svc.Create(context.Background(), &Member{FirstName: "A", LastName: "B", Email: "a@clinic.vn", Role: "doctor", Active: true})
	svc.Create(context.Background(), &Member{FirstName: "C", LastName: "D", Email: "c@clinic.vn", Role: "doctor", Active: false})
	svc.Create(context.Background(), &Member{FirstName: "E", LastName: "F", Email: "e@clinic.vn", Role: "receptionist", Active: true})

	doctors, err := svc.ListDoctors(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doctors) != 1 {
		t.Errorf("expected 1 active doctor, got %d", len(doctors))
	}
}
