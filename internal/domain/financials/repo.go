package financials

import "context"

// PaymentFilter narrows payment listing. Status filters on the derived
// settlement state. Dates are canonical "YYYY-MM-DD"; zero values mean
// unfiltered.
type PaymentFilter struct {
	From       string
	To         string
	CustomerID int64
	Method     string
	Status     string
}

// ExpenseFilter narrows expense listing.
type ExpenseFilter struct {
	From     string
	To       string
	Category string
	BranchID int64
}

type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id int64) (*Payment, error)
	UpdatePayment(ctx context.Context, p *Payment) error
	DeletePayment(ctx context.Context, id int64) error
	ListPayments(ctx context.Context, f PaymentFilter, limit, offset int) ([]*Payment, int, error)

	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, f ExpenseFilter, limit, offset int) ([]*Expense, int, error)

	Summary(ctx context.Context, from, to string) (*Summary, error)
	MonthlyStats(ctx context.Context, months int) ([]MonthlyStat, error)
}
