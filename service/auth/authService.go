package authsvc

import (
	"context"
	"database/sql"
	"errors"

	"librarymgmt/model"
	"librarymgmt/util/hash"
	jwtutil "librarymgmt/util/jwt"
	"librarymgmt/util/pgtx"
)

var (
	ErrBadSecret    = errors.New("signup secret incorrect")
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("no such employee")
	ErrInvalidCreds = errors.New("invalid credentials")
)

const tokenTTLHours = 7 * 24

type EmployeeRepo interface {
	ByEmail(ctx context.Context, email string) (*model.Employee, error)
	InsertTx(ctx context.Context, tx *sql.Tx, e model.Employee) (*model.Employee, error)
}

type MemberRepo interface {
	InsertWithIDTx(ctx context.Context, tx *sql.Tx, m model.Member) error
}

type Service interface {
	// Signup registers a staff account and mirrors it into the members
	// collection in one transaction. Guarded by the shared signup secret.
	Signup(ctx context.Context, name string, age int, email, password, secret string) (*model.Employee, error)

	// Signin checks credentials and issues a bearer token.
	Signin(ctx context.Context, email, password string) (*model.Employee, string, error)
}

type service struct {
	db           *sql.DB
	er           EmployeeRepo
	mr           MemberRepo
	jwtSecret    string
	signupSecret string
}

func New(db *sql.DB, er EmployeeRepo, mr MemberRepo, jwtSecret, signupSecret string) Service {
	return &service{db: db, er: er, mr: mr, jwtSecret: jwtSecret, signupSecret: signupSecret}
}

func (s *service) Signup(ctx context.Context, name string, age int, email, password, secret string) (_ *model.Employee, err error) {
	if secret != s.signupSecret {
		return nil, ErrBadSecret
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
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

	emp, err := s.er.InsertTx(ctx, tx, model.Employee{
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		Age:          age,
	})
	if pgtx.UniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	// every employee is also a member, sharing the same id
	err = s.mr.InsertWithIDTx(ctx, tx, model.Member{
		ID:         emp.ID,
		Name:       name,
		Age:        age,
		Email:      email,
		ApprovedBy: emp.ID,
	})
	if pgtx.UniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *service) Signin(ctx context.Context, email, password string) (*model.Employee, string, error) {
	emp, err := s.er.ByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if emp == nil {
		return nil, "", ErrUserNotFound
	}
	if !hash.Check(emp.PasswordHash, password) {
		return nil, "", ErrInvalidCreds
	}

	token, err := jwtutil.Issue(s.jwtSecret, emp.ID, emp.Email, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return emp, token, nil
}
