package visit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labdesk/labdesk/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const visitCols = `id, name, age, sex, mobile,
	total_amount, paid_amount, pending_amount, payment_mode,
	date, created_at, updated_at`

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.Name, &v.Age, &v.Sex, &v.Mobile,
		&v.TotalAmount, &v.PaidAmount, &v.PendingAmount, &v.PaymentMode,
		&v.Date, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		row := r.conn(ctx).QueryRow(ctx, `
			INSERT INTO visit (id, name, age, sex, mobile,
				total_amount, paid_amount, pending_amount, payment_mode, date)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING created_at, updated_at`,
			v.ID, v.Name, v.Age, v.Sex, v.Mobile,
			v.TotalAmount, v.PaidAmount, v.PendingAmount, v.PaymentMode, v.Date)
		if err := row.Scan(&v.CreatedAt, &v.UpdatedAt); err != nil {
			return err
		}
		return r.insertItems(ctx, v.ID, v.Tests)
	})
}

func (r *repoPG) insertItems(ctx context.Context, visitID uuid.UUID, tests []TestItem) error {
	for i, t := range tests {
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO visit_test_item (id, visit_id, position, test_name, price)
			VALUES ($1,$2,$3,$4,$5)`,
			uuid.New(), visitID, i, t.TestName, t.Price)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+` FROM visit WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, []*Visit{v}); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM visit`).Scan(&total); err != nil {
		return nil, 0, err
	}
	q := `SELECT ` + visitCols + ` FROM visit ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		q += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	visits, err := collectVisits(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, visits); err != nil {
		return nil, 0, err
	}
	return visits, total, nil
}

func (r *repoPG) ListByDate(ctx context.Context, start, end time.Time, endExclusive bool) ([]*Visit, error) {
	endOp := `<=`
	if endExclusive {
		endOp = `<`
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+visitCols+` FROM visit WHERE date >= $1 AND date `+endOp+` $2 ORDER BY created_at DESC`,
		start, end)
	if err != nil {
		return nil, err
	}
	visits, err := collectVisits(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, visits); err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		tag, err := r.conn(ctx).Exec(ctx, `
			UPDATE visit SET name=$2, age=$3, sex=$4, mobile=$5,
				total_amount=$6, paid_amount=$7, pending_amount=$8, payment_mode=$9,
				date=$10, updated_at=NOW()
			WHERE id = $1`,
			v.ID, v.Name, v.Age, v.Sex, v.Mobile,
			v.TotalAmount, v.PaidAmount, v.PendingAmount, v.PaymentMode, v.Date)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM visit_test_item WHERE visit_id = $1`, v.ID); err != nil {
			return err
		}
		return r.insertItems(ctx, v.ID, v.Tests)
	})
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM visit WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectVisits(rows pgx.Rows) ([]*Visit, error) {
	defer rows.Close()
	visits := []*Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// loadItems attaches line items to the given visits with a single query.
func (r *repoPG) loadItems(ctx context.Context, visits []*Visit) error {
	if len(visits) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*Visit, len(visits))
	ids := make([]uuid.UUID, 0, len(visits))
	for _, v := range visits {
		v.Tests = []TestItem{}
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT visit_id, test_name, price
		FROM visit_test_item WHERE visit_id = ANY($1) ORDER BY visit_id, position`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var visitID uuid.UUID
		var t TestItem
		if err := rows.Scan(&visitID, &t.TestName, &t.Price); err != nil {
			return err
		}
		if v, ok := byID[visitID]; ok {
			v.Tests = append(v.Tests, t)
		}
	}
	return rows.Err()
}
