package returnsvc

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/pgtx"
	"librarymgmt/util/query"
)

type ErrCode string

const (
	ErrBorrowNotFound   ErrCode = "BORROW_NOT_FOUND"
	ErrAlreadyReturned  ErrCode = "ALREADY_RETURNED"
	ErrInventoryMissing ErrCode = "INVENTORY_MISSING"
	ErrInvalidPenalty   ErrCode = "INVALID_PENALTY"
	ErrCounterDrift     ErrCode = "COUNTER_DRIFT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const oneDayMs = 86_400_000

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Return, error)
	Get(ctx context.Context, borrowID uuid.UUID) (*model.Return, error)
	InsertTx(ctx context.Context, tx *sql.Tx, ret model.Return) error
}

type BorrowRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}

type InventoryRepo interface {
	Adjust(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dAvailable, dBorrowed int64) (*model.Inventory, error)
}

type PenaltyRepo interface {
	InsertTx(ctx context.Context, tx *sql.Tx, p model.Penalty) error
}

type Service interface {
	// Return closes a borrow record: flags it returned, writes the
	// return record, restores inventory and assesses a penalty when the
	// promise was missed. One transaction, all or nothing.
	Return(ctx context.Context, borrowID, approver uuid.UUID) (*model.Return, error)

	Get(ctx context.Context, borrowID uuid.UUID) (*model.Return, error)
	List(ctx context.Context, f query.Filter) ([]model.Return, error)
}

const maxAttempts = 3

type service struct {
	db   *sql.DB
	rr   Repo
	br   BorrowRepo
	ir   InventoryRepo
	pr   PenaltyRepo
	rate float64

	now func() time.Time
}

func New(db *sql.DB, rr Repo, br BorrowRepo, ir InventoryRepo, pr PenaltyRepo, ratePerDay float64) Service {
	return &service{db: db, rr: rr, br: br, ir: ir, pr: pr, rate: ratePerDay, now: time.Now}
}

func (s *service) Return(ctx context.Context, borrowID, approver uuid.UUID) (*model.Return, error) {
	var (
		out *model.Return
		err error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out, err = s.returnOnce(ctx, borrowID, approver)
		if err == nil || !pgtx.Retryable(err) {
			break
		}
	}
	return out, err
}

func (s *service) returnOnce(ctx context.Context, borrowID, approver uuid.UUID) (_ *model.Return, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	borrow, err := s.br.GetForUpdate(ctx, tx, borrowID)
	if err != nil {
		return nil, err
	}
	if borrow == nil {
		return nil, makeErr(ErrBorrowNotFound)
	}
	if borrow.IsReturned {
		return nil, makeErr(ErrAlreadyReturned)
	}

	if err = s.br.MarkReturned(ctx, tx, borrowID); err != nil {
		return nil, err
	}

	ret := model.Return{
		BorrowID:   borrowID,
		BookID:     borrow.BookID,
		Title:      borrow.Title,
		Borrower:   borrow.Borrower,
		ApprovedBy: approver,
		BorrowDate: borrow.Date,
		ReturnDate: s.now().UTC(),
	}
	if err = s.rr.InsertTx(ctx, tx, ret); err != nil {
		return nil, err
	}

	after, err := s.ir.Adjust(ctx, tx, borrow.BookID, +1, -1)
	if err != nil {
		return nil, err
	}
	if after == nil {
		// a borrow cannot exist for a book with no inventory record
		return nil, makeErr(ErrInventoryMissing)
	}
	if !after.Consistent() {
		return nil, makeErr(ErrCounterDrift)
	}

	// on time, the promised instant itself included
	if !ret.ReturnDate.After(borrow.PromisedReturnDate) {
		if err = tx.Commit(); err != nil {
			return nil, err
		}
		return &ret, nil
	}

	amount := s.penaltyFor(ret.ReturnDate.Sub(borrow.PromisedReturnDate))
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return nil, makeErr(ErrInvalidPenalty)
	}
	p := model.Penalty{
		BorrowID:   borrowID,
		BookID:     borrow.BookID,
		Title:      borrow.Title,
		Borrower:   borrow.Borrower,
		ApprovedBy: approver,
		Penalty:    amount,
	}
	if err = s.pr.InsertTx(ctx, tx, p); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &ret, nil
}

// penaltyFor charges the per-day rate for every started day of lateness.
func (s *service) penaltyFor(late time.Duration) float64 {
	ms := late.Milliseconds()
	units := ms / oneDayMs
	if ms%oneDayMs != 0 || units == 0 {
		units++
	}
	return float64(units) * s.rate
}

func (s *service) Get(ctx context.Context, borrowID uuid.UUID) (*model.Return, error) {
	return s.rr.Get(ctx, borrowID)
}

func (s *service) List(ctx context.Context, f query.Filter) ([]model.Return, error) {
	return s.rr.List(ctx, f)
}
