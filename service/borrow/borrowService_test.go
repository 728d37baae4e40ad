// service/borrow/borrow_service_test.go
package borrowsvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"librarymgmt/model"
	"librarymgmt/util/query"
)

type mockBorrowRepo struct {
	listFn     func(ctx context.Context, f query.Filter) ([]model.Borrow, error)
	getFn      func(ctx context.Context, id uuid.UUID) (*model.Borrow, error)
	insertTxFn func(ctx context.Context, tx *sql.Tx, b model.Borrow) (uuid.UUID, error)
}

var _ Repo = (*mockBorrowRepo)(nil)

func (m *mockBorrowRepo) List(ctx context.Context, f query.Filter) ([]model.Borrow, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, f)
}

func (m *mockBorrowRepo) Get(ctx context.Context, id uuid.UUID) (*model.Borrow, error) {
	if m.getFn == nil {
		return nil, nil
	}
	return m.getFn(ctx, id)
}

func (m *mockBorrowRepo) InsertTx(ctx context.Context, tx *sql.Tx, b model.Borrow) (uuid.UUID, error) {
	if m.insertTxFn == nil {
		return uuid.New(), nil
	}
	return m.insertTxFn(ctx, tx, b)
}

type mockInventoryRepo struct {
	getForUpdateFn func(ctx context.Context, tx *sql.Tx, bookID uuid.UUID) (*model.Inventory, error)
	adjustFn       func(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dAvailable, dBorrowed int64) (*model.Inventory, error)
}

var _ InventoryRepo = (*mockInventoryRepo)(nil)

func (m *mockInventoryRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, bookID uuid.UUID) (*model.Inventory, error) {
	if m.getForUpdateFn == nil {
		return nil, nil
	}
	return m.getForUpdateFn(ctx, tx, bookID)
}

func (m *mockInventoryRepo) Adjust(ctx context.Context, tx *sql.Tx, bookID uuid.UUID, dAvailable, dBorrowed int64) (*model.Inventory, error) {
	if m.adjustFn == nil {
		return nil, nil
	}
	return m.adjustFn(ctx, tx, bookID, dAvailable, dBorrowed)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// --- tests ---

func TestBorrow_Success(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	bookID := uuid.New()
	borrower := uuid.New()
	approver := uuid.New()
	borrowID := uuid.New()

	ir := &mockInventoryRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Inventory, error) {
			require.Equal(t, bookID, id)
			return &model.Inventory{BookID: id, Title: "Dune", Total: 3, Available: 1, Borrowed: 2}, nil
		},
		adjustFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID, dA, dB int64) (*model.Inventory, error) {
			require.Equal(t, int64(-1), dA)
			require.Equal(t, int64(+1), dB)
			return &model.Inventory{BookID: id, Title: "Dune", Total: 3, Available: 0, Borrowed: 3}, nil
		},
	}
	br := &mockBorrowRepo{
		insertTxFn: func(ctx context.Context, tx *sql.Tx, b model.Borrow) (uuid.UUID, error) {
			require.Equal(t, "Dune", b.Title)
			require.Equal(t, borrower, b.Borrower)
			require.Equal(t, approver, b.ApprovedBy)
			return borrowID, nil
		},
	}

	svc := New(db, br, ir).(*service)
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	promised := fixed.Add(7 * 24 * time.Hour)
	b, err := svc.Borrow(ctx, bookID, borrower, promised, approver)
	require.NoError(t, err)
	require.NotNil(t, b)
	require.Equal(t, borrowID, b.ID)
	require.Equal(t, fixed, b.Date)
	require.Equal(t, promised, b.PromisedReturnDate)
	require.False(t, b.IsReturned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrow_BookNotFound(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	ir := &mockInventoryRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Inventory, error) {
			return nil, nil
		},
	}
	inserted := false
	br := &mockBorrowRepo{
		insertTxFn: func(ctx context.Context, tx *sql.Tx, b model.Borrow) (uuid.UUID, error) {
			inserted = true
			return uuid.Nil, nil
		},
	}

	svc := New(db, br, ir)
	_, err := svc.Borrow(ctx, uuid.New(), uuid.New(), time.Now().Add(time.Hour), uuid.New())
	require.Error(t, err)
	require.Equal(t, ErrBookNotFound, Code(err))
	require.False(t, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrow_NoCopies(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	ir := &mockInventoryRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Inventory, error) {
			return &model.Inventory{BookID: id, Title: "Dune", Total: 2, Available: 0, Borrowed: 2}, nil
		},
	}
	inserted := false
	br := &mockBorrowRepo{
		insertTxFn: func(ctx context.Context, tx *sql.Tx, b model.Borrow) (uuid.UUID, error) {
			inserted = true
			return uuid.Nil, nil
		},
	}

	svc := New(db, br, ir)
	_, err := svc.Borrow(ctx, uuid.New(), uuid.New(), time.Now().Add(time.Hour), uuid.New())
	require.Error(t, err)
	require.Equal(t, ErrNoCopies, Code(err))
	require.False(t, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrow_CounterDriftAborts(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	ir := &mockInventoryRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Inventory, error) {
			return &model.Inventory{BookID: id, Title: "Dune", Total: 3, Available: 1, Borrowed: 2}, nil
		},
		adjustFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID, dA, dB int64) (*model.Inventory, error) {
			// counters out of balance after the update
			return &model.Inventory{BookID: id, Title: "Dune", Total: 3, Available: 1, Borrowed: 3}, nil
		},
	}
	br := &mockBorrowRepo{}

	svc := New(db, br, ir)
	_, err := svc.Borrow(ctx, uuid.New(), uuid.New(), time.Now().Add(time.Hour), uuid.New())
	require.Error(t, err)
	require.Equal(t, ErrCounterDrift, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrow_RepoErrorPassesThrough(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("db down")
	ir := &mockInventoryRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Inventory, error) {
			return nil, boom
		},
	}

	svc := New(db, &mockBorrowRepo{}, ir)
	_, err := svc.Borrow(ctx, uuid.New(), uuid.New(), time.Now().Add(time.Hour), uuid.New())
	require.ErrorIs(t, err, boom)
	require.Equal(t, ErrCode(""), Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrow_RetryStopsAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	for i := 0; i < maxAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	attempts := 0
	serialization := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	ir := &mockInventoryRepo{
		getForUpdateFn: func(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Inventory, error) {
			attempts++
			return nil, serialization
		},
	}

	svc := New(db, &mockBorrowRepo{}, ir)
	_, err := svc.Borrow(ctx, uuid.New(), uuid.New(), time.Now().Add(time.Hour), uuid.New())
	require.ErrorIs(t, err, serialization)
	require.Equal(t, maxAttempts, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrNoCopies, Code(makeErr(ErrNoCopies)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
