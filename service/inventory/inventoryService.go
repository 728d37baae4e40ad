package inventorysvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/pgtx"
	"librarymgmt/util/query"
)

var (
	ErrNotFound     = errors.New("inventory record not found")
	ErrBookMissing  = errors.New("no such book")
	ErrInconsistent = errors.New("counters must stay non-negative and sum to total")
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Inventory, error)
	Get(ctx context.Context, bookID uuid.UUID) (*model.Inventory, error)
	Insert(ctx context.Context, inv model.Inventory) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, bookID uuid.UUID) (*model.Inventory, error)
	Override(ctx context.Context, tx *sql.Tx, inv model.Inventory) error
}

// Patch is a partial administrative override of an inventory record.
type Patch struct {
	Title     *string
	Total     *int64
	Available *int64
	Borrowed  *int64
}

type Service interface {
	List(ctx context.Context, f query.Filter) ([]model.Inventory, error)
	Get(ctx context.Context, bookID uuid.UUID) (*model.Inventory, error)
	Create(ctx context.Context, bookID uuid.UUID, title string, total int64) error
	Override(ctx context.Context, bookID uuid.UUID, changes Patch) (*model.Inventory, error)
}

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

func (s *service) List(ctx context.Context, f query.Filter) ([]model.Inventory, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, bookID uuid.UUID) (*model.Inventory, error) {
	return s.r.Get(ctx, bookID)
}

func (s *service) Create(ctx context.Context, bookID uuid.UUID, title string, total int64) error {
	if title == "" || total < 0 {
		return ErrInconsistent
	}
	err := s.r.Insert(ctx, model.Inventory{BookID: bookID, Title: title, Total: total})
	if pgtx.ForeignKeyViolation(err) {
		return ErrBookMissing
	}
	return err
}

// Override applies a partial counter correction. Unlike the workflow
// paths this writes absolute values, so the at-rest invariant is checked
// here before anything is persisted.
func (s *service) Override(ctx context.Context, bookID uuid.UUID, changes Patch) (_ *model.Inventory, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	inv, err := s.r.GetForUpdate(ctx, tx, bookID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}

	if changes.Title != nil {
		inv.Title = *changes.Title
	}
	if changes.Total != nil {
		inv.Total = *changes.Total
	}
	if changes.Available != nil {
		inv.Available = *changes.Available
	}
	if changes.Borrowed != nil {
		inv.Borrowed = *changes.Borrowed
	}
	if !inv.Consistent() {
		return nil, ErrInconsistent
	}

	if err = s.r.Override(ctx, tx, *inv); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return inv, nil
}
