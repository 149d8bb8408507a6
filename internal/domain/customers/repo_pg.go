package customers

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

const customerCols = `id, first_name, last_name, phone, email, gender, date_of_birth,
	province_code, ward_code, street, medical_history, allergies, status, branch_id,
	created_at, updated_at`

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.Gender,
		&c.DateOfBirth, &c.ProvinceCode, &c.WardCode, &c.Street, &c.MedicalHistory,
		&c.Allergies, &c.Status, &c.BranchID, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Customer) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO customers (first_name, last_name, phone, email, gender, date_of_birth,
			province_code, ward_code, street, medical_history, allergies, status, branch_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id, created_at, updated_at`,
		c.FirstName, c.LastName, c.Phone, c.Email, c.Gender, c.DateOfBirth,
		c.ProvinceCode, c.WardCode, c.Street, c.MedicalHistory, c.Allergies, c.Status, c.BranchID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Customer, error) {
	return scanCustomer(r.conn(ctx).QueryRow(ctx, `SELECT `+customerCols+` FROM customers WHERE id = $1`, id))
}

func (r *repoPG) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	return scanCustomer(r.conn(ctx).QueryRow(ctx, `SELECT `+customerCols+` FROM customers WHERE phone = $1`, phone))
}

func (r *repoPG) Update(ctx context.Context, c *Customer) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE customers SET first_name=$2, last_name=$3, phone=$4, email=$5, gender=$6,
			date_of_birth=$7, province_code=$8, ward_code=$9, street=$10,
			medical_history=$11, allergies=$12, status=$13, branch_id=$14, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Phone, c.Email, c.Gender, c.DateOfBirth,
		c.ProvinceCode, c.WardCode, c.Street, c.MedicalHistory, c.Allergies, c.Status, c.BranchID)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Customer, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1
	if f.Search != "" {
		where += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d OR phone LIKE $%d)`, idx, idx, idx)
		args = append(args, "%"+f.Search+"%")
		idx++
	}
	if f.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}
	if f.BranchID != 0 {
		where += fmt.Sprintf(` AND branch_id = $%d`, idx)
		args = append(args, f.BranchID)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerCols + ` FROM customers` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{ByStatus: make(map[string]int)}
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&st.Total); err != nil {
		return nil, err
	}
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE created_at >= date_trunc('month', NOW())`,
	).Scan(&st.NewThisMonth); err != nil {
		return nil, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT status, COUNT(*) FROM customers GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		st.ByStatus[status] = count
	}
	return st, rows.Err()
}
