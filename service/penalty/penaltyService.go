package penaltysvc

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/pgtx"
	"librarymgmt/util/query"
)

var (
	ErrDuplicate  = errors.New("penalty already recorded for this borrow")
	ErrBadPayload = errors.New("invalid penalty entry")
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Penalty, error)
	Get(ctx context.Context, borrowID uuid.UUID) (*model.Penalty, error)
	Insert(ctx context.Context, p model.Penalty) error
}

type Service interface {
	List(ctx context.Context, f query.Filter) ([]model.Penalty, error)
	Get(ctx context.Context, borrowID uuid.UUID) (*model.Penalty, error)

	// AddEntry records an administrative correction outside the return
	// workflow.
	AddEntry(ctx context.Context, entry model.Penalty, approver uuid.UUID) (*model.Penalty, error)

	// Rate is the configured per-day fine.
	Rate() float64
}

type service struct {
	r    Repo
	rate float64
}

func New(r Repo, ratePerDay float64) Service { return &service{r: r, rate: ratePerDay} }

func (s *service) List(ctx context.Context, f query.Filter) ([]model.Penalty, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, borrowID uuid.UUID) (*model.Penalty, error) {
	return s.r.Get(ctx, borrowID)
}

func (s *service) AddEntry(ctx context.Context, entry model.Penalty, approver uuid.UUID) (*model.Penalty, error) {
	if entry.Penalty < 0 || entry.BorrowID == uuid.Nil {
		return nil, ErrBadPayload
	}
	entry.ApprovedBy = approver
	err := s.r.Insert(ctx, entry)
	if pgtx.UniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *service) Rate() float64 { return s.rate }
