package penaltyrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Penalty, error)
	Get(ctx context.Context, borrowID uuid.UUID) (*model.Penalty, error)
	Insert(ctx context.Context, p model.Penalty) error
	InsertTx(ctx context.Context, tx *sql.Tx, p model.Penalty) error
}

const cols = `borrow_id, book_id, title, borrower, approved_by, penalty`

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) List(ctx context.Context, f query.Filter) ([]model.Penalty, error) {
	var (
		q    string
		args []any
	)
	switch f.Kind {
	case query.ByID:
		q = `SELECT ` + cols + ` FROM penalties WHERE borrow_id = $1 LIMIT 1`
		args = []any{f.ID}
	case query.ByBookID:
		q = `SELECT ` + cols + ` FROM penalties WHERE book_id = $1 LIMIT 20`
		args = []any{f.ID}
	case query.ByBorrower:
		q = `SELECT ` + cols + ` FROM penalties WHERE borrower = $1 LIMIT 20`
		args = []any{f.ID}
	case query.ByApprovedBy:
		q = `SELECT ` + cols + ` FROM penalties WHERE approved_by = $1 LIMIT 20`
		args = []any{f.ID}
	default:
		q = `SELECT ` + cols + ` FROM penalties LIMIT 20`
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Penalty
	for rows.Next() {
		var p model.Penalty
		if err := rows.Scan(&p.BorrowID, &p.BookID, &p.Title, &p.Borrower,
			&p.ApprovedBy, &p.Penalty); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, borrowID uuid.UUID) (*model.Penalty, error) {
	const q = `SELECT ` + cols + ` FROM penalties WHERE borrow_id = $1`
	var p model.Penalty
	err := r.db.QueryRowContext(ctx, q, borrowID).
		Scan(&p.BorrowID, &p.BookID, &p.Title, &p.Borrower, &p.ApprovedBy, &p.Penalty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const insertQ = `
INSERT INTO penalties (borrow_id, book_id, title, borrower, approved_by, penalty)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *repo) Insert(ctx context.Context, p model.Penalty) error {
	_, err := r.db.ExecContext(ctx, insertQ, p.BorrowID, p.BookID, p.Title, p.Borrower, p.ApprovedBy, p.Penalty)
	return err
}

func (r *repo) InsertTx(ctx context.Context, tx *sql.Tx, p model.Penalty) error {
	_, err := tx.ExecContext(ctx, insertQ, p.BorrowID, p.BookID, p.Title, p.Borrower, p.ApprovedBy, p.Penalty)
	return err
}
