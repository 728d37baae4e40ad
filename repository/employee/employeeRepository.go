package employeerepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
)

type Repo interface {
	ByEmail(ctx context.Context, email string) (*model.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	InsertTx(ctx context.Context, tx *sql.Tx, e model.Employee) (*model.Employee, error)
}

const cols = `id, email, password_hash, name, age, join_date`

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func scanEmployee(row *sql.Row) (*model.Employee, error) {
	var e model.Employee
	err := row.Scan(&e.ID, &e.Email, &e.PasswordHash, &e.Name, &e.Age, &e.JoinDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Employee, error) {
	const q = `SELECT ` + cols + ` FROM employees WHERE email = $1`
	return scanEmployee(r.db.QueryRowContext(ctx, q, email))
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	const q = `SELECT ` + cols + ` FROM employees WHERE id = $1`
	return scanEmployee(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) InsertTx(ctx context.Context, tx *sql.Tx, e model.Employee) (*model.Employee, error) {
	const q = `
INSERT INTO employees (email, password_hash, name, age)
VALUES ($1, $2, $3, $4)
RETURNING ` + cols
	return scanEmployee(tx.QueryRowContext(ctx, q, e.Email, e.PasswordHash, e.Name, e.Age))
}
