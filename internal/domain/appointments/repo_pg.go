package appointments

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

// InTx pins one connection to the context and opens a transaction on it, so
// every repository call fn makes through that context lands in the same
// transaction.
func (r *repoPG) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.InTx(ctx, r.pool, func(ctx context.Context, _ pgx.Tx) error {
		return fn(ctx)
	})
}

// Dates and times come back as the same canonical strings the service writes,
// so round-tripping through storage never reintroduces format drift.
const apptCols = `id, customer_id, doctor_id, branch_id, service_id,
	to_char(appointment_date, 'YYYY-MM-DD'), to_char(appointment_time, 'HH24:MI'),
	duration_minutes, status, type, notes, created_at, updated_at`

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.CustomerID, &a.DoctorID, &a.BranchID, &a.ServiceID,
		&a.Date, &a.Time, &a.DurationMinutes, &a.Status, &a.Type, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (customer_id, doctor_id, branch_id, service_id,
			appointment_date, appointment_time, duration_minutes, status, type, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`,
		a.CustomerID, a.DoctorID, a.BranchID, a.ServiceID,
		a.Date, a.Time, a.DurationMinutes, a.Status, a.Type, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return scanAppt(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET customer_id=$2, doctor_id=$3, branch_id=$4, service_id=$5,
			appointment_date=$6, appointment_time=$7, duration_minutes=$8, status=$9,
			type=$10, notes=$11, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.CustomerID, a.DoctorID, a.BranchID, a.ServiceID,
		a.Date, a.Time, a.DurationMinutes, a.Status, a.Type, a.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1
	add := func(clause string, val interface{}) {
		where += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}
	if f.From != "" {
		add(` AND appointment_date >= $%d`, f.From)
	}
	if f.To != "" {
		add(` AND appointment_date <= $%d`, f.To)
	}
	if f.DoctorID != 0 {
		add(` AND doctor_id = $%d`, f.DoctorID)
	}
	if f.BranchID != 0 {
		add(` AND branch_id = $%d`, f.BranchID)
	}
	if f.Status != "" {
		add(` AND status = $%d`, f.Status)
	}
	if f.Type != "" {
		add(` AND type = $%d`, f.Type)
	}
	if f.Search != "" {
		where += fmt.Sprintf(` AND customer_id IN (
			SELECT id FROM customers WHERE first_name ILIKE $%d OR last_name ILIKE $%d OR phone LIKE $%d)`,
			idx, idx, idx)
		args = append(args, "%"+f.Search+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + apptCols + ` FROM appointments` + where +
		fmt.Sprintf(` ORDER BY appointment_date DESC, appointment_time DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)
	return r.queryMany(ctx, query, args, total)
}

func (r *repoPG) queryMany(ctx context.Context, query string, args []interface{}, total int) ([]*Appointment, int, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListRange(ctx context.Context, from, to string, doctorID, branchID int64) ([]*Appointment, error) {
	where := ` WHERE appointment_date >= $1 AND appointment_date <= $2`
	args := []interface{}{from, to}
	idx := 3
	if doctorID != 0 {
		where += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		args = append(args, doctorID)
		idx++
	}
	if branchID != 0 {
		where += fmt.Sprintf(` AND branch_id = $%d`, idx)
		args = append(args, branchID)
	}
	items, _, err := r.queryMany(ctx,
		`SELECT `+apptCols+` FROM appointments`+where+` ORDER BY appointment_date, appointment_time`,
		args, 0)
	return items, err
}

func (r *repoPG) ListByDoctorDate(ctx context.Context, doctorID int64, date string) ([]*Appointment, error) {
	items, _, err := r.queryMany(ctx,
		`SELECT `+apptCols+` FROM appointments
		 WHERE doctor_id = $1 AND appointment_date = $2 ORDER BY appointment_time`,
		[]interface{}{doctorID, date}, 0)
	return items, err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) AddHistory(ctx context.Context, h *History) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment_history (appointment_id, old_status, new_status, changed_by, note)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		h.AppointmentID, h.OldStatus, h.NewStatus, h.ChangedBy, h.Note,
	).Scan(&h.ID, &h.CreatedAt)
}

func (r *repoPG) ListHistory(ctx context.Context, appointmentID int64) ([]*History, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, appointment_id, old_status, new_status, changed_by, note, created_at
		FROM appointment_history WHERE appointment_id = $1 ORDER BY created_at`,
		appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*History
	for rows.Next() {
		var h History
		if err := rows.Scan(&h.ID, &h.AppointmentID, &h.OldStatus, &h.NewStatus,
			&h.ChangedBy, &h.Note, &h.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &h)
	}
	return items, rows.Err()
}

func (r *repoPG) Stats(ctx context.Context, today string) (*Stats, error) {
	st := &Stats{ByStatus: make(map[string]int), ByType: make(map[string]int)}
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&st.Total); err != nil {
		return nil, err
	}
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE appointment_date = $1`, today,
	).Scan(&st.Today); err != nil {
		return nil, err
	}
	for _, q := range []struct {
		col  string
		dest map[string]int
	}{
		{"status", st.ByStatus},
		{"type", st.ByType},
	} {
		rows, err := r.conn(ctx).Query(ctx,
			`SELECT `+q.col+`, COUNT(*) FROM appointments GROUP BY `+q.col)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var key string
			var count int
			if err := rows.Scan(&key, &count); err != nil {
				rows.Close()
				return nil, err
			}
			q.dest[key] = count
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return st, nil
}
