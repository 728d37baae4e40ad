package memberrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Member, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Member, error)
	ByEmail(ctx context.Context, email string) (*model.Member, error)
	Insert(ctx context.Context, m model.Member) (uuid.UUID, error)
	InsertWithIDTx(ctx context.Context, tx *sql.Tx, m model.Member) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

const cols = `id, name, age, email, approved_by, join_date`

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func scanMember(row *sql.Row) (*model.Member, error) {
	var m model.Member
	err := row.Scan(&m.ID, &m.Name, &m.Age, &m.Email, &m.ApprovedBy, &m.JoinDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) List(ctx context.Context, f query.Filter) ([]model.Member, error) {
	var (
		q    string
		args []any
	)
	switch f.Kind {
	case query.ByID:
		q = `SELECT ` + cols + ` FROM members WHERE id = $1 LIMIT 1`
		args = []any{f.ID}
	case query.ByEmail:
		q = `SELECT ` + cols + ` FROM members WHERE email = $1 LIMIT 1`
		args = []any{f.Text}
	case query.ByName:
		q = `SELECT ` + cols + ` FROM members WHERE name ILIKE '%' || $1 || '%' LIMIT 20`
		args = []any{f.Text}
	default:
		q = `SELECT ` + cols + ` FROM members LIMIT 20`
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Age, &m.Email, &m.ApprovedBy, &m.JoinDate); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	const q = `SELECT ` + cols + ` FROM members WHERE id = $1`
	return scanMember(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Member, error) {
	const q = `SELECT ` + cols + ` FROM members WHERE email = $1`
	return scanMember(r.db.QueryRowContext(ctx, q, email))
}

func (r *repo) Insert(ctx context.Context, m model.Member) (uuid.UUID, error) {
	const q = `
INSERT INTO members (name, age, email, approved_by)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id uuid.UUID
	if err := r.db.QueryRowContext(ctx, q, m.Name, m.Age, m.Email, m.ApprovedBy).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// InsertWithIDTx mirrors a new employee into the members collection,
// keeping the employee's id.
func (r *repo) InsertWithIDTx(ctx context.Context, tx *sql.Tx, m model.Member) error {
	const q = `
INSERT INTO members (id, name, age, email, approved_by)
VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.ExecContext(ctx, q, m.ID, m.Name, m.Age, m.Email, m.ApprovedBy)
	return err
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM members WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
