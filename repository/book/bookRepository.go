package bookrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	InsertTx(ctx context.Context, tx *sql.Tx, b model.Book) (uuid.UUID, error)
	UpdateTx(ctx context.Context, tx *sql.Tx, b model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

const cols = `id, title, authors, year_published, date_added`

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func scanBook(row *sql.Row) (*model.Book, error) {
	var (
		b   model.Book
		raw []byte
	)
	err := row.Scan(&b.ID, &b.Title, &raw, &b.YearPublished, &b.DateAdded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &b.Authors); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) List(ctx context.Context, f query.Filter) ([]model.Book, error) {
	var (
		q    string
		args []any
	)
	switch f.Kind {
	case query.ByID:
		q = `SELECT ` + cols + ` FROM books WHERE id = $1 LIMIT 1`
		args = []any{f.ID}
	case query.ByTitle:
		q = `SELECT ` + cols + ` FROM books WHERE title ILIKE '%' || $1 || '%' LIMIT 20`
		args = []any{f.Text}
	default:
		q = `SELECT ` + cols + ` FROM books ORDER BY date_added DESC LIMIT 20`
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var (
			b   model.Book
			raw []byte
		)
		if err := rows.Scan(&b.ID, &b.Title, &raw, &b.YearPublished, &b.DateAdded); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &b.Authors); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	const q = `SELECT ` + cols + ` FROM books WHERE id = $1`
	return scanBook(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) InsertTx(ctx context.Context, tx *sql.Tx, b model.Book) (uuid.UUID, error) {
	const q = `
INSERT INTO books (title, authors, year_published)
VALUES ($1, $2, $3)
RETURNING id`
	authors, err := json.Marshal(b.Authors)
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	if err := tx.QueryRowContext(ctx, q, b.Title, authors, b.YearPublished).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repo) UpdateTx(ctx context.Context, tx *sql.Tx, b model.Book) (*model.Book, error) {
	const q = `
UPDATE books
SET title = $2, authors = $3, year_published = $4
WHERE id = $1
RETURNING ` + cols
	authors, err := json.Marshal(b.Authors)
	if err != nil {
		return nil, err
	}
	return scanBook(tx.QueryRowContext(ctx, q, b.ID, b.Title, authors, b.YearPublished))
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM books WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
