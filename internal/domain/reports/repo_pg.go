package reports

import (
	"context"

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

func (r *repoPG) RevenueByService(ctx context.Context, from, to string) ([]RevenueRow, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT s.id, COALESCE(s.name, 'unassigned'), COUNT(a.id), COALESCE(SUM(p.paid_amount), 0)
		FROM appointments a
		LEFT JOIN services s ON s.id = a.service_id
		LEFT JOIN payments p ON p.appointment_id = a.id
		WHERE a.appointment_date >= $1 AND a.appointment_date <= $2
		GROUP BY s.id, s.name
		ORDER BY 4 DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RevenueRow
	for rows.Next() {
		var row RevenueRow
		if err := rows.Scan(&row.ServiceID, &row.ServiceName, &row.Appointments, &row.Revenue); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repoPG) AppointmentsByDoctor(ctx context.Context, from, to string) ([]DoctorRow, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.doctor_id, COALESCE(st.first_name || ' ' || st.last_name, ''), COUNT(*)
		FROM appointments a
		LEFT JOIN staff st ON st.id = a.doctor_id
		WHERE a.appointment_date >= $1 AND a.appointment_date <= $2
		GROUP BY a.doctor_id, st.first_name, st.last_name
		ORDER BY 3 DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DoctorRow
	for rows.Next() {
		var row DoctorRow
		if err := rows.Scan(&row.DoctorID, &row.DoctorName, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repoPG) countRows(ctx context.Context, query string, args ...interface{}) ([]CountRow, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CountRow
	for rows.Next() {
		var row CountRow
		if err := rows.Scan(&row.Key, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repoPG) AppointmentsByStatus(ctx context.Context, from, to string) ([]CountRow, error) {
	return r.countRows(ctx, `
		SELECT status, COUNT(*) FROM appointments
		WHERE appointment_date >= $1 AND appointment_date <= $2
		GROUP BY status ORDER BY 2 DESC`, from, to)
}

func (r *repoPG) AppointmentsByDay(ctx context.Context, from, to string) ([]CountRow, error) {
	return r.countRows(ctx, `
		SELECT to_char(appointment_date, 'YYYY-MM-DD'), COUNT(*) FROM appointments
		WHERE appointment_date >= $1 AND appointment_date <= $2
		GROUP BY appointment_date ORDER BY 1`, from, to)
}

func (r *repoPG) CustomersByStatus(ctx context.Context) ([]CountRow, error) {
	return r.countRows(ctx, `SELECT status, COUNT(*) FROM customers GROUP BY status ORDER BY 2 DESC`)
}

func (r *repoPG) ExpensesByCategory(ctx context.Context, from, to string) ([]ExpenseRow, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0) FROM expenses
		WHERE expense_date >= $1 AND expense_date <= $2
		GROUP BY category ORDER BY 3 DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExpenseRow
	for rows.Next() {
		var row ExpenseRow
		if err := rows.Scan(&row.Category, &row.Count, &row.Amount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repoPG) Dashboard(ctx context.Context, today, weekStart, monthStart string) (*Dashboard, error) {
	d := &Dashboard{}
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE appointment_date = $1`, today,
	).Scan(&d.TodayAppointments); err != nil {
		return nil, err
	}
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(paid_amount), 0) FROM payments WHERE payment_date >= $1 AND payment_date <= $2`,
		weekStart, today,
	).Scan(&d.WeekRevenue); err != nil {
		return nil, err
	}
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE created_at >= $1::date`, monthStart,
	).Scan(&d.NewCustomersMonth); err != nil {
		return nil, err
	}
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE paid_amount < amount`,
	).Scan(&d.PendingPayments); err != nil {
		return nil, err
	}
	return d, nil
}
