package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/dentalx/clinic-api/internal/platform/calendar"
)

// Appointment report groupings.
const (
	GroupByDoctor = "doctor"
	GroupByStatus = "status"
	GroupByDay    = "day"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// window resolves the report range, defaulting to the current month. Both
// bounds accept DD/MM/YYYY and ISO input.
func (s *Service) window(from, to string) (string, string, error) {
	now := s.now()
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if to == "" {
		to = now.Format("2006-01-02")
	}
	fd, err := calendar.ParseDate(from)
	if err != nil {
		return "", "", err
	}
	td, err := calendar.ParseDate(to)
	if err != nil {
		return "", "", err
	}
	if td.Before(fd) {
		return "", "", fmt.Errorf("end is before start")
	}
	return fd.String(), td.String(), nil
}

func (s *Service) Revenue(ctx context.Context, from, to string) (*Report, error) {
	from, to, err := s.window(from, to)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.RevenueByService(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &Report{From: from, To: to, GroupBy: "service", Rows: rows}, nil
}

func (s *Service) Appointments(ctx context.Context, from, to, groupBy string) (*Report, error) {
	from, to, err := s.window(from, to)
	if err != nil {
		return nil, err
	}
	if groupBy == "" {
		groupBy = GroupByDoctor
	}
	var rows interface{}
	switch groupBy {
	case GroupByDoctor:
		rows, err = s.repo.AppointmentsByDoctor(ctx, from, to)
	case GroupByStatus:
		rows, err = s.repo.AppointmentsByStatus(ctx, from, to)
	case GroupByDay:
		rows, err = s.repo.AppointmentsByDay(ctx, from, to)
	default:
		return nil, fmt.Errorf("invalid group_by: %s", groupBy)
	}
	if err != nil {
		return nil, err
	}
	return &Report{From: from, To: to, GroupBy: groupBy, Rows: rows}, nil
}

func (s *Service) Customers(ctx context.Context) (*Report, error) {
	rows, err := s.repo.CustomersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &Report{GroupBy: "status", Rows: rows}, nil
}

func (s *Service) Expenses(ctx context.Context, from, to string) (*Report, error) {
	from, to, err := s.window(from, to)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ExpensesByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &Report{From: from, To: to, GroupBy: "category", Rows: rows}, nil
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	today := now.Format("2006-01-02")
	// Week starts Monday.
	offset := (int(now.Weekday()) + 6) % 7
	weekStart := now.AddDate(0, 0, -offset).Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	return s.repo.Dashboard(ctx, today, weekStart, monthStart)
}
