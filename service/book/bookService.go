package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

var (
	ErrNotFound   = errors.New("book not found")
	ErrBadPayload = errors.New("invalid book payload")
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	InsertTx(ctx context.Context, tx *sql.Tx, b model.Book) (uuid.UUID, error)
	UpdateTx(ctx context.Context, tx *sql.Tx, b model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type InventoryRepo interface {
	InsertTx(ctx context.Context, tx *sql.Tx, inv model.Inventory) error
	UpdateTitleTx(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, title string) error
}

type Service interface {
	// Create adds a book; when totalCopies > 0 its inventory record is
	// created in the same transaction with available = total.
	Create(ctx context.Context, b model.Book, totalCopies int64) (*model.Book, error)

	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, f query.Filter) ([]model.Book, error)
	Update(ctx context.Context, b model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	db *sql.DB
	r  Repo
	ir InventoryRepo
}

func New(db *sql.DB, r Repo, ir InventoryRepo) Service {
	return &service{db: db, r: r, ir: ir}
}

func (s *service) Create(ctx context.Context, b model.Book, totalCopies int64) (_ *model.Book, err error) {
	if b.Title == "" || len(b.Authors) == 0 || totalCopies < 0 {
		return nil, ErrBadPayload
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id, err := s.r.InsertTx(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id

	if totalCopies > 0 {
		inv := model.Inventory{BookID: id, Title: b.Title, Total: totalCopies}
		if err = s.ir.InsertTx(ctx, tx, inv); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return s.r.Get(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.r.Get(ctx, id)
}

func (s *service) List(ctx context.Context, f query.Filter) ([]model.Book, error) {
	return s.r.List(ctx, f)
}

// Update edits a book and keeps the denormalized inventory title in sync
// within the same transaction.
func (s *service) Update(ctx context.Context, b model.Book) (_ *model.Book, err error) {
	if b.Title == "" {
		return nil, ErrBadPayload
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	updated, err := s.r.UpdateTx(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	if err = s.ir.UpdateTitleTx(ctx, tx, b.ID, b.Title); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.r.Delete(ctx, id)
}
