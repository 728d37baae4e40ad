// service/returns/return_service_test.go
package returnsvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

type mockReturnRepo struct {
	insertTxFn func(ctx context.Context, tx *sql.Tx, ret model.Return) error
}

var _ Repo = (*mockReturnRepo)(nil)

func (m *mockReturnRepo) List(ctx context.Context, f query.Filter) ([]model.Return, error) {
	return nil, nil
}

func (m *mockReturnRepo) Get(ctx context.Context, borrowID uuid.UUID) (*model.Return, error) {
	return nil, nil
}

func (m *mockReturnRepo) InsertTx(ctx context.Context, tx *sql.Tx, ret model.Return) error {
	if m.insertTxFn == nil {
		return nil
	}
	return m.insertTxFn(ctx, tx, ret)
}

type mockBorrowRepo struct {
	getForUpdateFn func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error)
	markReturnedFn func(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}

var _ BorrowRepo = (*mockBorrowRepo)(nil)

func (m *mockBorrowRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
	if m.getForUpdateFn == nil {
		return nil, nil
	}
	return m.getForUpdateFn(ctx, tx, id)
}

func (m *mockBorrowRepo) MarkReturned(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	if m.markReturnedFn == nil {
		return nil
	}
	return m.markReturnedFn(ctx, tx, id)
}

type mockInventoryRepo struct {
	adjustFn func(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dAvailable, dBorrowed int64) (*model.Inventory, error)
}

var _ InventoryRepo = (*mockInventoryRepo)(nil)

func (m *mockInventoryRepo) Adjust(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dAvailable, dBorrowed int64) (*model.Inventory, error) {
	if m.adjustFn == nil {
		return &model.Inventory{BookID: bookID, Total: 1, Available: 1, Borrowed: 0}, nil
	}
	return m.adjustFn(ctx, tx, bookID, dAvailable, dBorrowed)
}

type mockPenaltyRepo struct {
	insertTxFn func(ctx context.Context, tx *sql.Tx, p model.Penalty) error
}

var _ PenaltyRepo = (*mockPenaltyRepo)(nil)

func (m *mockPenaltyRepo) InsertTx(ctx context.Context, tx *sql.Tx, p model.Penalty) error {
	if m.insertTxFn == nil {
		return nil
	}
	return m.insertTxFn(ctx, tx, p)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func openBorrow(borrowID uuid.UUID, promised time.Time) *model.Borrow {
	return &model.Borrow{
		ID:                 borrowID,
		BookID:             uuid.New(),
		Title:              "Dune",
		Borrower:           uuid.New(),
		Date:               promised.Add(-7 * 24 * time.Hour),
		PromisedReturnDate: promised,
	}
}

// --- tests ---

func TestReturn_OnTime_NoPenalty(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	borrowID := uuid.New()
	approver := uuid.New()
	promised := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	br := &mockBorrowRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
			return openBorrow(id, promised), nil
		},
	}
	penalized := false
	pr := &mockPenaltyRepo{
		insertTxFn: func(ctx context.Context, tx *sql.Tx, p model.Penalty) error {
			penalized = true
			return nil
		},
	}

	svc := New(db, &mockReturnRepo{}, br, &mockInventoryRepo{}, pr, 5).(*service)
	svc.now = func() time.Time { return promised.Add(-time.Hour) }

	ret, err := svc.Return(ctx, borrowID, approver)
	require.NoError(t, err)
	require.NotNil(t, ret)
	require.Equal(t, borrowID, ret.BorrowID)
	require.Equal(t, approver, ret.ApprovedBy)
	require.False(t, penalized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturn_PromisedInstant_StillOnTime(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	promised := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	br := &mockBorrowRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
			return openBorrow(id, promised), nil
		},
	}
	penalized := false
	pr := &mockPenaltyRepo{
		insertTxFn: func(ctx context.Context, tx *sql.Tx, p model.Penalty) error {
			penalized = true
			return nil
		},
	}

	svc := New(db, &mockReturnRepo{}, br, &mockInventoryRepo{}, pr, 5).(*service)
	svc.now = func() time.Time { return promised }

	_, err := svc.Return(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	require.False(t, penalized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturn_BarelyLate_OneUnit(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	promised := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	br := &mockBorrowRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
			return openBorrow(id, promised), nil
		},
	}
	var got *model.Penalty
	pr := &mockPenaltyRepo{
		insertTxFn: func(ctx context.Context, tx *sql.Tx, p model.Penalty) error {
			got = &p
			return nil
		},
	}

	svc := New(db, &mockReturnRepo{}, br, &mockInventoryRepo{}, pr, 5).(*service)
	svc.now = func() time.Time { return promised.Add(time.Millisecond) }

	_, err := svc.Return(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, float64(5), got.Penalty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturn_ThreeDaysLate(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	promised := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	br := &mockBorrowRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
			return openBorrow(id, promised), nil
		},
	}
	var got *model.Penalty
	pr := &mockPenaltyRepo{
		insertTxFn: func(ctx context.Context, tx *sql.Tx, p model.Penalty) error {
			got = &p
			return nil
		},
	}

	svc := New(db, &mockReturnRepo{}, br, &mockInventoryRepo{}, pr, 5).(*service)
	svc.now = func() time.Time { return promised.Add(3 * 24 * time.Hour) }

	_, err := svc.Return(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, float64(15), got.Penalty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturn_BorrowNotFound(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	br := &mockBorrowRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
			return nil, nil
		},
	}

	svc := New(db, &mockReturnRepo{}, br, &mockInventoryRepo{}, &mockPenaltyRepo{}, 5)
	_, err := svc.Return(ctx, uuid.New(), uuid.New())
	require.Error(t, err)
	require.Equal(t, ErrBorrowNotFound, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturn_AlreadyReturned(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	promised := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	br := &mockBorrowRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
			b := openBorrow(id, promised)
			b.IsReturned = true
			return b, nil
		},
	}
	restocked := false
	ir := &mockInventoryRepo{
		adjustFn: func(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dA, dB int64) (*model.Inventory, error) {
			restocked = true
			return nil, nil
		},
	}

	svc := New(db, &mockReturnRepo{}, br, ir, &mockPenaltyRepo{}, 5)
	_, err := svc.Return(ctx, uuid.New(), uuid.New())
	require.Error(t, err)
	require.Equal(t, ErrAlreadyReturned, Code(err))
	require.False(t, restocked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturn_InventoryMissing(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	promised := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	br := &mockBorrowRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Borrow, error) {
			return openBorrow(id, promised), nil
		},
	}
	ir := &mockInventoryRepo{
		adjustFn: func(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dA, dB int64) (*model.Inventory, error) {
			return nil, nil
		},
	}

	svc := New(db, &mockReturnRepo{}, br, ir, &mockPenaltyRepo{}, 5)
	_, err := svc.Return(ctx, uuid.New(), uuid.New())
	require.Error(t, err)
	require.Equal(t, ErrInventoryMissing, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPenaltyFor(t *testing.T) {
	s := &service{rate: 5}

	cases := []struct {
		name string
		late time.Duration
		want float64
	}{
		{"one millisecond", time.Millisecond, 5},
		{"under a day", 23 * time.Hour, 5},
		{"exactly one day", 24 * time.Hour, 5},
		{"a day and a second", 24*time.Hour + time.Second, 10},
		{"three days", 72 * time.Hour, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, s.penaltyFor(tc.late))
		})
	}
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrAlreadyReturned, Code(makeErr(ErrAlreadyReturned)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
