package inventoryrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Inventory, error)
	Get(ctx context.Context, bookID uuid.UUID) (*model.Inventory, error)
	Insert(ctx context.Context, inv model.Inventory) error
	InsertTx(ctx context.Context, tx *sql.Tx, inv model.Inventory) error

	// Workflow helpers, always inside the caller's transaction.
	GetForUpdate(ctx context.Context, tx *sql.Tx, bookID uuid.UUID) (*model.Inventory, error)
	Adjust(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dAvailable, dBorrowed int64) (*model.Inventory, error)
	Override(ctx context.Context, tx *sql.Tx, inv model.Inventory) error
	UpdateTitleTx(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, title string) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const cols = `book_id, title, total, available, borrowed`

func (r *repo) List(ctx context.Context, f query.Filter) ([]model.Inventory, error) {
	var (
		q    string
		args []any
	)
	switch f.Kind {
	case query.ByID:
		q = `SELECT ` + cols + ` FROM inventory WHERE book_id = $1 LIMIT 1`
		args = []any{f.ID}
	case query.ByTitle:
		q = `SELECT ` + cols + ` FROM inventory WHERE title ILIKE '%' || $1 || '%' LIMIT 20`
		args = []any{f.Text}
	default:
		q = `SELECT ` + cols + ` FROM inventory LIMIT 20`
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Inventory
	for rows.Next() {
		var inv model.Inventory
		if err := rows.Scan(&inv.BookID, &inv.Title, &inv.Total, &inv.Available, &inv.Borrowed); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, bookID uuid.UUID) (*model.Inventory, error) {
	const q = `SELECT ` + cols + ` FROM inventory WHERE book_id = $1`
	var inv model.Inventory
	err := r.db.QueryRowContext(ctx, q, bookID).
		Scan(&inv.BookID, &inv.Title, &inv.Total, &inv.Available, &inv.Borrowed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repo) Insert(ctx context.Context, inv model.Inventory) error {
	const q = `
INSERT INTO inventory (book_id, title, total, available, borrowed)
VALUES ($1, $2, $3, $3, 0)`
	_, err := r.db.ExecContext(ctx, q, inv.BookID, inv.Title, inv.Total)
	return err
}

func (r *repo) InsertTx(ctx context.Context, tx *sql.Tx, inv model.Inventory) error {
	const q = `
INSERT INTO inventory (book_id, title, total, available, borrowed)
VALUES ($1, $2, $3, $3, 0)`
	_, err := tx.ExecContext(ctx, q, inv.BookID, inv.Title, inv.Total)
	return err
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, bookID uuid.UUID) (*model.Inventory, error) {
	const q = `
SELECT ` + cols + `
FROM inventory
WHERE book_id = $1
FOR UPDATE`
	var inv model.Inventory
	err := tx.QueryRowContext(ctx, q, bookID).
		Scan(&inv.BookID, &inv.Title, &inv.Total, &inv.Available, &inv.Borrowed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Adjust applies signed increments to both counters and returns the new
// state so callers can verify the at-rest invariant before committing.
func (r *repo) Adjust(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dAvailable, dBorrowed int64) (*model.Inventory, error) {
	const q = `
UPDATE inventory
SET available = available + $2,
    borrowed  = borrowed + $3
WHERE book_id = $1
RETURNING ` + cols
	var inv model.Inventory
	err := tx.QueryRowContext(ctx, q, bookID, dAvailable, dBorrowed).
		Scan(&inv.BookID, &inv.Title, &inv.Total, &inv.Available, &inv.Borrowed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repo) Override(ctx context.Context, tx *sql.Tx, inv model.Inventory) error {
	const q = `
UPDATE inventory
SET title = $2, total = $3, available = $4, borrowed = $5
WHERE book_id = $1`
	_, err := tx.ExecContext(ctx, q, inv.BookID, inv.Title, inv.Total, inv.Available, inv.Borrowed)
	return err
}

func (r *repo) UpdateTitleTx(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, title string) error {
	const q = `UPDATE inventory SET title = $2 WHERE book_id = $1`
	_, err := tx.ExecContext(ctx, q, bookID, title)
	return err
}
