package borrowrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Borrow, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Borrow, error)
	InsertTx(ctx context.Context, tx *sql.Tx, b model.Borrow) (uuid.UUID, error)

	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, id uuid.UUID) error

	CountOverdue(ctx context.Context) (int64, error)
}

const cols = `id, book_id, title, borrower, approved_by, date, promised_return_date, is_returned`

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func scanBorrow(row *sql.Row) (*model.Borrow, error) {
	var b model.Borrow
	err := row.Scan(&b.ID, &b.BookID, &b.Title, &b.Borrower, &b.ApprovedBy,
		&b.Date, &b.PromisedReturnDate, &b.IsReturned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) List(ctx context.Context, f query.Filter) ([]model.Borrow, error) {
	var (
		q    string
		args []any
	)
	switch f.Kind {
	case query.ByID:
		q = `SELECT ` + cols + ` FROM borrows WHERE id = $1 LIMIT 1`
		args = []any{f.ID}
	case query.ByBookID:
		q = `SELECT ` + cols + ` FROM borrows WHERE book_id = $1 LIMIT 20`
		args = []any{f.ID}
	case query.ByBorrower:
		q = `SELECT ` + cols + ` FROM borrows WHERE borrower = $1 LIMIT 20`
		args = []any{f.ID}
	case query.ByApprovedBy:
		q = `SELECT ` + cols + ` FROM borrows WHERE approved_by = $1 LIMIT 20`
		args = []any{f.ID}
	case query.ByTitle:
		q = `SELECT ` + cols + ` FROM borrows WHERE title ILIKE '%' || $1 || '%' LIMIT 20`
		args = []any{f.Text}
	default:
		q = `SELECT ` + cols + ` FROM borrows LIMIT 20`
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Borrow
	for rows.Next() {
		var b model.Borrow
		if err := rows.Scan(&b.ID, &b.BookID, &b.Title, &b.Borrower, &b.ApprovedBy,
			&b.Date, &b.PromisedReturnDate, &b.IsReturned); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*model.Borrow, error) {
	const q = `SELECT ` + cols + ` FROM borrows WHERE id = $1`
	return scanBorrow(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) InsertTx(ctx context.Context, tx *sql.Tx, b model.Borrow) (uuid.UUID, error) {
	const q = `
INSERT INTO borrows (book_id, title, borrower, approved_by, date, promised_return_date, is_returned)
VALUES ($1, $2, $3, $4, $5, $6, false)
RETURNING id`
	var id uuid.UUID
	if err := tx.QueryRowContext(ctx, q, b.BookID, b.Title, b.Borrower, b.ApprovedBy,
		b.Date, b.PromisedReturnDate).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
	const q = `SELECT ` + cols + ` FROM borrows WHERE id = $1 FOR UPDATE`
	return scanBorrow(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	const q = `UPDATE borrows SET is_returned = true WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

// CountOverdue counts open borrows whose promise has lapsed.
func (r *repo) CountOverdue(ctx context.Context) (int64, error) {
	const q = `
SELECT COUNT(*)
FROM borrows
WHERE is_returned = false
  AND promised_return_date < now()`
	var n int64
	err := r.db.QueryRowContext(ctx, q).Scan(&n)
	return n, err
}
