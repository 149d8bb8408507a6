package financials

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentalx/clinic-api/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const paymentCols = `id, customer_id, appointment_id, amount, paid_amount, method,
	to_char(payment_date, 'YYYY-MM-DD'), notes, created_at, updated_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.CustomerID, &p.AppointmentID, &p.Amount, &p.PaidAmount,
		&p.Method, &p.PaymentDate, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) CreatePayment(ctx context.Context, p *Payment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO payments (customer_id, appointment_id, amount, paid_amount, method, payment_date, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		p.CustomerID, p.AppointmentID, p.Amount, p.PaidAmount, p.Method, p.PaymentDate, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	return scanPayment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE id = $1`, id))
}

func (r *repoPG) UpdatePayment(ctx context.Context, p *Payment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE payments SET customer_id=$2, appointment_id=$3, amount=$4, paid_amount=$5,
			method=$6, payment_date=$7, notes=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.CustomerID, p.AppointmentID, p.Amount, p.PaidAmount, p.Method, p.PaymentDate, p.Notes)
	return err
}

func (r *repoPG) DeletePayment(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

// statusPredicates maps each derived status to the paid-amount test that
// defines it.
var statusPredicates = map[string]string{
	StatusPending: `paid_amount <= 0`,
	StatusPartial: `paid_amount > 0 AND paid_amount < amount`,
	StatusPaid:    `paid_amount >= amount`,
}

func (r *repoPG) ListPayments(ctx context.Context, f PaymentFilter, limit, offset int) ([]*Payment, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1
	add := func(clause string, val interface{}) {
		where += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}
	if f.From != "" {
		add(` AND payment_date >= $%d`, f.From)
	}
	if f.To != "" {
		add(` AND payment_date <= $%d`, f.To)
	}
	if f.CustomerID != 0 {
		add(` AND customer_id = $%d`, f.CustomerID)
	}
	if f.Method != "" {
		add(` AND method = $%d`, f.Method)
	}
	if pred, ok := statusPredicates[f.Status]; f.Status != "" && ok {
		where += ` AND ` + pred
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + paymentCols + ` FROM payments` + where +
		fmt.Sprintf(` ORDER BY payment_date DESC, id DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

const expenseCols = `id, title, category, amount, to_char(expense_date, 'YYYY-MM-DD'),
	branch_id, notes, created_at, updated_at`

func scanExpense(row pgx.Row) (*Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.Title, &e.Category, &e.Amount, &e.ExpenseDate,
		&e.BranchID, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *repoPG) CreateExpense(ctx context.Context, e *Expense) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO expenses (title, category, amount, expense_date, branch_id, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		e.Title, e.Category, e.Amount, e.ExpenseDate, e.BranchID, e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *repoPG) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	return scanExpense(r.conn(ctx).QueryRow(ctx,
		`SELECT `+expenseCols+` FROM expenses WHERE id = $1`, id))
}

func (r *repoPG) UpdateExpense(ctx context.Context, e *Expense) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE expenses SET title=$2, category=$3, amount=$4, expense_date=$5,
			branch_id=$6, notes=$7, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.Title, e.Category, e.Amount, e.ExpenseDate, e.BranchID, e.Notes)
	return err
}

func (r *repoPG) DeleteExpense(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListExpenses(ctx context.Context, f ExpenseFilter, limit, offset int) ([]*Expense, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1
	add := func(clause string, val interface{}) {
		where += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}
	if f.From != "" {
		add(` AND expense_date >= $%d`, f.From)
	}
	if f.To != "" {
		add(` AND expense_date <= $%d`, f.To)
	}
	if f.Category != "" {
		add(` AND category = $%d`, f.Category)
	}
	if f.BranchID != 0 {
		add(` AND branch_id = $%d`, f.BranchID)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM expenses`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + expenseCols + ` FROM expenses` + where +
		fmt.Sprintf(` ORDER BY expense_date DESC, id DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Summary(ctx context.Context, from, to string) (*Summary, error) {
	s := &Summary{From: from, To: to}
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0),
		       COALESCE(SUM(LEAST(paid_amount, amount)), 0),
		       COALESCE(SUM(GREATEST(amount - paid_amount, 0)), 0)
		FROM payments WHERE payment_date >= $1 AND payment_date <= $2`,
		from, to,
	).Scan(&s.Revenue, &s.Collected, &s.Outstanding); err != nil {
		return nil, err
	}
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses WHERE expense_date >= $1 AND expense_date <= $2`,
		from, to,
	).Scan(&s.Expenses); err != nil {
		return nil, err
	}
	s.Net = s.Collected - s.Expenses
	return s, nil
}

func (r *repoPG) MonthlyStats(ctx context.Context, months int) ([]MonthlyStat, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		WITH series AS (
			SELECT to_char(date_trunc('month', NOW()) - (n || ' month')::interval, 'YYYY-MM') AS month
			FROM generate_series(0, $1 - 1) AS n
		),
		rev AS (
			SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM') AS month,
			       SUM(paid_amount) AS total
			FROM payments GROUP BY 1
		),
		exp AS (
			SELECT to_char(date_trunc('month', expense_date), 'YYYY-MM') AS month,
			       SUM(amount) AS total
			FROM expenses GROUP BY 1
		)
		SELECT series.month, COALESCE(rev.total, 0), COALESCE(exp.total, 0)
		FROM series
		LEFT JOIN rev ON rev.month = series.month
		LEFT JOIN exp ON exp.month = series.month
		ORDER BY series.month`, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stats []MonthlyStat
	for rows.Next() {
		var m MonthlyStat
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Expenses); err != nil {
			return nil, err
		}
		stats = append(stats, m)
	}
	return stats, rows.Err()
}
