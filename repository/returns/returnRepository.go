package returnrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Return, error)
	Get(ctx context.Context, borrowID uuid.UUID) (*model.Return, error)
	InsertTx(ctx context.Context, tx *sql.Tx, ret model.Return) error
}

const cols = `borrow_id, book_id, title, borrower, approved_by, borrow_date, return_date`

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) List(ctx context.Context, f query.Filter) ([]model.Return, error) {
	var (
		q    string
		args []any
	)
	switch f.Kind {
	case query.ByID:
		q = `SELECT ` + cols + ` FROM returns WHERE borrow_id = $1 LIMIT 1`
		args = []any{f.ID}
	case query.ByBookID:
		q = `SELECT ` + cols + ` FROM returns WHERE book_id = $1 LIMIT 20`
		args = []any{f.ID}
	case query.ByBorrower:
		q = `SELECT ` + cols + ` FROM returns WHERE borrower = $1 LIMIT 20`
		args = []any{f.ID}
	case query.ByApprovedBy:
		q = `SELECT ` + cols + ` FROM returns WHERE approved_by = $1 LIMIT 20`
		args = []any{f.ID}
	default:
		q = `SELECT ` + cols + ` FROM returns ORDER BY return_date DESC LIMIT 20`
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Return
	for rows.Next() {
		var ret model.Return
		if err := rows.Scan(&ret.BorrowID, &ret.BookID, &ret.Title, &ret.Borrower,
			&ret.ApprovedBy, &ret.BorrowDate, &ret.ReturnDate); err != nil {
			return nil, err
		}
		out = append(out, ret)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, borrowID uuid.UUID) (*model.Return, error) {
	const q = `SELECT ` + cols + ` FROM returns WHERE borrow_id = $1`
	var ret model.Return
	err := r.db.QueryRowContext(ctx, q, borrowID).
		Scan(&ret.BorrowID, &ret.BookID, &ret.Title, &ret.Borrower,
			&ret.ApprovedBy, &ret.BorrowDate, &ret.ReturnDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *repo) InsertTx(ctx context.Context, tx *sql.Tx, ret model.Return) error {
	const q = `
INSERT INTO returns (borrow_id, book_id, title, borrower, approved_by, borrow_date, return_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := tx.ExecContext(ctx, q, ret.BorrowID, ret.BookID, ret.Title, ret.Borrower,
		ret.ApprovedBy, ret.BorrowDate, ret.ReturnDate)
	return err
}
