package financials

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dentalx/clinic-api/internal/platform/calendar"
)

type mockRepo struct {
	payments map[int64]*Payment
	expenses map[int64]*Expense
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		payments: make(map[int64]*Payment),
		expenses: make(map[int64]*Expense),
	}
}

func (m *mockRepo) CreatePayment(_ context.Context, p *Payment) error {
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.payments[p.ID] = p
	return nil
}

func (m *mockRepo) GetPayment(_ context.Context, id int64) (*Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) UpdatePayment(_ context.Context, p *Payment) error {
	m.payments[p.ID] = p
	return nil
}

func (m *mockRepo) DeletePayment(_ context.Context, id int64) error {
	delete(m.payments, id)
	return nil
}

func (m *mockRepo) ListPayments(_ context.Context, f PaymentFilter, limit, offset int) ([]*Payment, int, error) {
	var result []*Payment
	for _, p := range m.payments {
		if f.From != "" && p.PaymentDate < f.From {
			continue
		}
		if f.To != "" && p.PaymentDate > f.To {
			continue
		}
		if f.Method != "" && p.Method != f.Method {
			continue
		}
		if f.Status != "" && p.Status() != f.Status {
			continue
		}
		if f.CustomerID != 0 && p.CustomerID != f.CustomerID {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) CreateExpense(_ context.Context, e *Expense) error {
	m.nextID++
	e.ID = m.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	m.expenses[e.ID] = e
	return nil
}

func (m *mockRepo) GetExpense(_ context.Context, id int64) (*Expense, error) {
	e, ok := m.expenses[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return e, nil
}

func (m *mockRepo) UpdateExpense(_ context.Context, e *Expense) error {
	m.expenses[e.ID] = e
	return nil
}

func (m *mockRepo) DeleteExpense(_ context.Context, id int64) error {
	delete(m.expenses, id)
	return nil
}

func (m *mockRepo) ListExpenses(_ context.Context, f ExpenseFilter, limit, offset int) ([]*Expense, int, error) {
	var result []*Expense
	for _, e := range m.expenses {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		result = append(result, e)
	}
	return result, len(result), nil
}

func (m *mockRepo) Summary(_ context.Context, from, to string) (*Summary, error) {
	s := &Summary{From: from, To: to}
	for _, p := range m.payments {
		if p.PaymentDate < from || p.PaymentDate > to {
			continue
		}
		s.Revenue += p.Amount
		collected := p.PaidAmount
		if collected > p.Amount {
			collected = p.Amount
		}
		s.Collected += collected
		s.Outstanding += p.Outstanding()
	}
	for _, e := range m.expenses {
		if e.ExpenseDate < from || e.ExpenseDate > to {
			continue
		}
		s.Expenses += e.Amount
	}
	s.Net = s.Collected - s.Expenses
	return s, nil
}

func (m *mockRepo) MonthlyStats(_ context.Context, months int) ([]MonthlyStat, error) {
	return make([]MonthlyStat, months), nil
}

func newTestService(repo *mockRepo) *Service {
	s := NewService(repo)
	s.now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestPaymentStatus_Derived(t *testing.T) {
	cases := []struct {
		amount, paid float64
		want         string
	}{
		{100, 0, StatusPending},
		{100, 40, StatusPartial},
		{100, 100, StatusPaid},
		{100, 120, StatusPaid},
	}
	for _, tc := range cases {
		p := &Payment{Amount: tc.amount, PaidAmount: tc.paid}
		if got := p.Status(); got != tc.want {
			t.Errorf("amount=%.0f paid=%.0f: expected %s, got %s", tc.amount, tc.paid, tc.want, got)
		}
	}
}

func TestCreatePayment_NormalizesDate(t *testing.T) {
	s := newTestService(newMockRepo())
	p := &Payment{CustomerID: 1, Amount: 500, PaymentDate: "15/03/2024"}
	if err := s.CreatePayment(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.PaymentDate != "2024-03-15" {
		t.Errorf("expected canonical date, got %s", p.PaymentDate)
	}
	if p.Method != MethodCash {
		t.Errorf("expected default method cash, got %s", p.Method)
	}
}

func TestCreatePayment_RejectsBadInput(t *testing.T) {
	s := newTestService(newMockRepo())
	if err := s.CreatePayment(context.Background(), &Payment{CustomerID: 1, Amount: -5, PaymentDate: "2024-03-15"}); err == nil {
		t.Error("expected error on negative amount")
	}
	if err := s.CreatePayment(context.Background(), &Payment{CustomerID: 1, Amount: 100, Method: "crypto", PaymentDate: "2024-03-15"}); err == nil {
		t.Error("expected error on unknown method")
	}
	err := s.CreatePayment(context.Background(), &Payment{CustomerID: 1, Amount: 100, PaymentDate: "soon"})
	if !errors.Is(err, calendar.ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestRecordPayment_MovesStatus(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	p := &Payment{CustomerID: 1, Amount: 100, PaymentDate: "2024-03-15"}
	if err := s.CreatePayment(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.RecordPayment(context.Background(), p.ID, 40)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if got.Status() != StatusPartial {
		t.Errorf("expected partial after 40/100, got %s", got.Status())
	}

	got, err = s.RecordPayment(context.Background(), p.ID, 60)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if got.Status() != StatusPaid {
		t.Errorf("expected paid after 100/100, got %s", got.Status())
	}
	if _, err := s.RecordPayment(context.Background(), p.ID, 0); err == nil {
		t.Error("expected error on zero amount")
	}
}

func TestListPayments_StatusFilter(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	for _, p := range []*Payment{
		{CustomerID: 1, Amount: 100, PaidAmount: 0, PaymentDate: "2024-03-10"},
		{CustomerID: 2, Amount: 100, PaidAmount: 50, PaymentDate: "2024-03-11"},
		{CustomerID: 3, Amount: 100, PaidAmount: 100, PaymentDate: "2024-03-12"},
	} {
		if err := s.CreatePayment(context.Background(), p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, _, err := s.ListPayments(context.Background(), PaymentFilter{Status: StatusPartial}, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].CustomerID != 2 {
		t.Errorf("expected only the partial payment, got %+v", items)
	}

	if _, _, err := s.ListPayments(context.Background(), PaymentFilter{Status: "overdue"}, 20, 0); err == nil {
		t.Error("expected error on unknown status filter")
	}
}

func TestCreateExpense_Defaults(t *testing.T) {
	s := newTestService(newMockRepo())
	e := &Expense{Title: "Gloves", Amount: 30, ExpenseDate: "15/03/2024"}
	if err := s.CreateExpense(context.Background(), e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Category != CategoryOther {
		t.Errorf("expected default category other, got %s", e.Category)
	}
	if e.ExpenseDate != "2024-03-15" {
		t.Errorf("expected canonical date, got %s", e.ExpenseDate)
	}
	if err := s.CreateExpense(context.Background(), &Expense{Title: "X", Amount: 5, Category: "fun", ExpenseDate: "2024-03-15"}); err == nil {
		t.Error("expected error on unknown category")
	}
}

func TestSummary_DefaultsToCurrentMonth(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	repo.CreatePayment(context.Background(), &Payment{CustomerID: 1, Amount: 200, PaidAmount: 150, PaymentDate: "2024-03-05"})
	repo.CreatePayment(context.Background(), &Payment{CustomerID: 2, Amount: 100, PaidAmount: 100, PaymentDate: "2024-02-20"})
	repo.CreateExpense(context.Background(), &Expense{Title: "Rent", Category: CategoryRent, Amount: 80, ExpenseDate: "2024-03-01"})

	sum, err := s.Summary(context.Background(), "", "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.From != "2024-03-01" || sum.To != "2024-03-15" {
		t.Errorf("expected current-month window, got %s..%s", sum.From, sum.To)
	}
	if sum.Revenue != 200 || sum.Collected != 150 || sum.Outstanding != 50 {
		t.Errorf("revenue figures wrong: %+v", sum)
	}
	if sum.Expenses != 80 || sum.Net != 70 {
		t.Errorf("expense figures wrong: %+v", sum)
	}
}

func TestMonthlyStats_ClampsMonths(t *testing.T) {
	s := newTestService(newMockRepo())
	stats, err := s.MonthlyStats(context.Background(), 0)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != defaultStatsMonths {
		t.Errorf("expected %d months by default, got %d", defaultStatsMonths, len(stats))
	}
}
