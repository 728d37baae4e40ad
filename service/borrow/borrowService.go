package borrowsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/pgtx"
	"librarymgmt/util/query"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrNoCopies     ErrCode = "NO_COPIES"
	ErrCounterDrift ErrCode = "COUNTER_DRIFT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, empty for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Borrow, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Borrow, error)
	InsertTx(ctx context.Context, tx *sql.Tx, b model.Borrow) (uuid.UUID, error)
}

type InventoryRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, bookID uuid.UUID) (*model.Inventory, error)
	Adjust(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dAvailable, dBorrowed int64) (*model.Inventory, error)
}

type Service interface {
	// Borrow lends one copy: creates the borrow record and decrements
	// availability in a single transaction.
	Borrow(ctx context.Context, bookID, borrower uuid.UUID, promisedReturn time.Time, approver uuid.UUID) (*model.Borrow, error)

	Get(ctx context.Context, id uuid.UUID) (*model.Borrow, error)
	List(ctx context.Context, f query.Filter) ([]model.Borrow, error)
}

// maxAttempts bounds retries on transient conflicts; unbounded retry
// risks starvation.
const maxAttempts = 3

type service struct {
	db *sql.DB
	br Repo
	ir InventoryRepo

	now func() time.Time
}

func New(db *sql.DB, br Repo, ir InventoryRepo) Service {
	return &service{db: db, br: br, ir: ir, now: time.Now}
}

func (s *service) Borrow(ctx context.Context, bookID, borrower uuid.UUID, promisedReturn time.Time, approver uuid.UUID) (*model.Borrow, error) {
	var (
		out *model.Borrow
		err error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out, err = s.borrowOnce(ctx, bookID, borrower, promisedReturn, approver)
		if err == nil || !pgtx.Retryable(err) {
			break
		}
	}
	return out, err
}

func (s *service) borrowOnce(ctx context.Context, bookID, borrower uuid.UUID, promisedReturn time.Time, approver uuid.UUID) (_ *model.Borrow, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The row lock serializes concurrent borrows of the same book, so
	// the capacity check below cannot be violated by a racing request.
	inv, err := s.ir.GetForUpdate(ctx, tx, bookID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, makeErr(ErrBookNotFound)
	}
	if inv.Available < 1 {
		return nil, makeErr(ErrNoCopies)
	}

	b := model.Borrow{
		BookID:             bookID,
		Title:              inv.Title,
		Borrower:           borrower,
		ApprovedBy:         approver,
		Date:               s.now().UTC(),
		PromisedReturnDate: promisedReturn.UTC(),
	}
	id, err := s.br.InsertTx(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id

	after, err := s.ir.Adjust(ctx, tx, bookID, -1, +1)
	if err != nil {
		return nil, err
	}
	if after == nil || !after.Consistent() {
		return nil, makeErr(ErrCounterDrift)
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Borrow, error) {
	return s.br.Get(ctx, id)
}

func (s *service) List(ctx context.Context, f query.Filter) ([]model.Borrow, error) {
	return s.br.List(ctx, f)
}
