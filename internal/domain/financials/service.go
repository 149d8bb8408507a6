package financials

import (
	"context"
	"fmt"
	"time"

	"github.com/dentalx/clinic-api/internal/platform/calendar"
)

const defaultStatsMonths = 12

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func canonicalDate(s string) (string, error) {
	d, err := calendar.ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func (s *Service) validatePayment(p *Payment) error {
	if p.CustomerID == 0 {
		return fmt.Errorf("customer_id is required")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if p.PaidAmount < 0 {
		return fmt.Errorf("paid_amount cannot be negative")
	}
	if p.Method == "" {
		p.Method = MethodCash
	}
	if !validMethods[p.Method] {
		return fmt.Errorf("invalid method: %s", p.Method)
	}
	var err error
	if p.PaymentDate, err = canonicalDate(p.PaymentDate); err != nil {
		return err
	}
	return nil
}

func (s *Service) CreatePayment(ctx context.Context, p *Payment) error {
	if err := s.validatePayment(p); err != nil {
		return err
	}
	return s.repo.CreatePayment(ctx, p)
}

func (s *Service) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) UpdatePayment(ctx context.Context, p *Payment) error {
	if err := s.validatePayment(p); err != nil {
		return err
	}
	return s.repo.UpdatePayment(ctx, p)
}

func (s *Service) DeletePayment(ctx context.Context, id int64) error {
	return s.repo.DeletePayment(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context, f PaymentFilter, limit, offset int) ([]*Payment, int, error) {
	var err error
	if f.From != "" {
		if f.From, err = canonicalDate(f.From); err != nil {
			return nil, 0, err
		}
	}
	if f.To != "" {
		if f.To, err = canonicalDate(f.To); err != nil {
			return nil, 0, err
		}
	}
	if f.Status != "" && f.Status != StatusPending && f.Status != StatusPartial && f.Status != StatusPaid {
		return nil, 0, fmt.Errorf("invalid status: %s", f.Status)
	}
	return s.repo.ListPayments(ctx, f, limit, offset)
}

// RecordPayment adds money against an existing bill. The derived status
// moves on its own once paid_amount crosses the total.
func (s *Service) RecordPayment(ctx context.Context, id int64, amount float64) (*Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	p.PaidAmount += amount
	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) validateExpense(e *Expense) error {
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if !validCategories[e.Category] {
		return fmt.Errorf("invalid category: %s", e.Category)
	}
	var err error
	if e.ExpenseDate, err = canonicalDate(e.ExpenseDate); err != nil {
		return err
	}
	return nil
}

func (s *Service) CreateExpense(ctx context.Context, e *Expense) error {
	if err := s.validateExpense(e); err != nil {
		return err
	}
	return s.repo.CreateExpense(ctx, e)
}

func (s *Service) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) UpdateExpense(ctx context.Context, e *Expense) error {
	if err := s.validateExpense(e); err != nil {
		return err
	}
	return s.repo.UpdateExpense(ctx, e)
}

func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	return s.repo.DeleteExpense(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context, f ExpenseFilter, limit, offset int) ([]*Expense, int, error) {
	var err error
	if f.From != "" {
		if f.From, err = canonicalDate(f.From); err != nil {
			return nil, 0, err
		}
	}
	if f.To != "" {
		if f.To, err = canonicalDate(f.To); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.ListExpenses(ctx, f, limit, offset)
}

// Summary reports the window's financial position. Defaults to the current
// month when no range is given.
func (s *Service) Summary(ctx context.Context, from, to string) (*Summary, error) {
	now := s.now()
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if to == "" {
		to = now.Format("2006-01-02")
	}
	var err error
	if from, err = canonicalDate(from); err != nil {
		return nil, err
	}
	if to, err = canonicalDate(to); err != nil {
		return nil, err
	}
	return s.repo.Summary(ctx, from, to)
}

func (s *Service) MonthlyStats(ctx context.Context, months int) ([]MonthlyStat, error) {
	if months <= 0 || months > 36 {
		months = defaultStatsMonths
	}
	return s.repo.MonthlyStats(ctx, months)
}
