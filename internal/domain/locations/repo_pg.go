package locations

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

type branchRepoPG struct{ pool *pgxpool.Pool }

func NewBranchRepoPG(pool *pgxpool.Pool) BranchRepository { return &branchRepoPG{pool: pool} }

func (r *branchRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const branchCols = `id, name, address, phone, active, created_at, updated_at`

func scanBranch(row pgx.Row) (*Branch, error) {
	var b Branch
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *branchRepoPG) Create(ctx context.Context, b *Branch) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO branches (name, address, phone, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		b.Name, b.Address, b.Phone, b.Active,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *branchRepoPG) GetByID(ctx context.Context, id int64) (*Branch, error) {
	return scanBranch(r.conn(ctx).QueryRow(ctx, `SELECT `+branchCols+` FROM branches WHERE id = $1`, id))
}

func (r *branchRepoPG) Update(ctx context.Context, b *Branch) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE branches SET name=$2, address=$3, phone=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.Name, b.Address, b.Phone, b.Active)
	return err
}

func (r *branchRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	return err
}

func (r *branchRepoPG) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Branch, int, error) {
	where := ``
	if activeOnly {
		where = ` WHERE active`
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM branches`+where).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+branchCols+` FROM branches`+where+` ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

type referenceRepoPG struct{ pool *pgxpool.Pool }

func NewReferenceRepoPG(pool *pgxpool.Pool) ReferenceRepository { return &referenceRepoPG{pool: pool} }

func (r *referenceRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *referenceRepoPG) ListProvinces(ctx context.Context) ([]*Province, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT code, name FROM provinces ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Province
	for rows.Next() {
		var p Province
		if err := rows.Scan(&p.Code, &p.Name); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}

func (r *referenceRepoPG) ListWards(ctx context.Context, provinceCode string) ([]*Ward, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT code, name, province_code FROM wards WHERE province_code = $1 ORDER BY name`, provinceCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Ward
	for rows.Next() {
		var w Ward
		if err := rows.Scan(&w.Code, &w.Name, &w.ProvinceCode); err != nil {
			return nil, err
		}
		items = append(items, &w)
	}
	return items, rows.Err()
}
