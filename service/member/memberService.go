package membersvc

import (
	"context"
	"errors"
	"net/mail"

	"github.com/google/uuid"

	"librarymgmt/model"
	"librarymgmt/util/pgtx"
	"librarymgmt/util/query"
)

var (
	ErrNotFound   = errors.New("member not found")
	ErrEmailTaken = errors.New("member already exists")
)

type Repo interface {
	List(ctx context.Context, f query.Filter) ([]model.Member, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Member, error)
	ByEmail(ctx context.Context, email string) (*model.Member, error)
	Insert(ctx context.Context, m model.Member) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service interface {
	List(ctx context.Context, f query.Filter) ([]model.Member, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Member, error)
	Add(ctx context.Context, m model.Member, approver uuid.UUID) (*model.Member, error)
	Remove(ctx context.Context, id uuid.UUID) error

	// Search resolves free text to members: a uuid looks up by id, an
	// email address by email, anything else matches names.
	Search(ctx context.Context, text string) ([]model.MemberSummary, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, f query.Filter) ([]model.Member, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	return s.r.Get(ctx, id)
}

func (s *service) Add(ctx context.Context, m model.Member, approver uuid.UUID) (*model.Member, error) {
	existing, err := s.r.ByEmail(ctx, m.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	m.ApprovedBy = approver
	id, err := s.r.Insert(ctx, m)
	if pgtx.UniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, id)
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *service) Search(ctx context.Context, text string) ([]model.MemberSummary, error) {
	f := query.Filter{Kind: query.All}
	switch {
	case text == "":
		// default listing
	default:
		if id, err := uuid.Parse(text); err == nil {
			f = query.Filter{Kind: query.ByID, ID: id}
		} else if _, err := mail.ParseAddress(text); err == nil {
			f = query.Filter{Kind: query.ByEmail, Text: text}
		} else {
			f = query.Filter{Kind: query.ByName, Text: text}
		}
	}

	members, err := s.r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]model.MemberSummary, 0, len(members))
	for _, m := range members {
		out = append(out, model.MemberSummary{ID: m.ID, Name: m.Name, Email: m.Email})
	}
	return out, nil
}
