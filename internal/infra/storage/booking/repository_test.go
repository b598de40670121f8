package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
)

var bookingDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func addBookingRow(rows *sqlmock.Rows, id int64, status domain.BookingStatus) *sqlmock.Rows {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, int64(7), int64(42), "business", bookingDate, "10:00:00", 90, "120.00",
		string(status), "transfer", "none", "TRX-1", "pending", nil, "Desinfección", nil,
		nil, nil, now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	newBooking := func() *domain.Booking {
		return &domain.Booking{
			ServiceID:       7,
			ClientID:        42,
			ClientType:      domain.ClientBusiness,
			BookingDate:     bookingDate,
			StartTime:       "10:00",
			DurationMinutes: 90,
			TotalPrice:      decimal.NewFromInt(120),
			Status:          domain.StatusPending,
			Payment: domain.Payment{
				Method:   domain.PaymentTransfer,
				CardKind: domain.CardNone,
				ProofRef: ptr.Ptr("TRX-1"),
				Status:   domain.PaymentPending,
			},
			ServiceName: "Desinfección",
		}
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

		created, err := NewRepository(db).Create(context.Background(), newBooking())
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, now, created.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := NewRepository(db).Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("exec error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(sql.ErrConnDone)

		_, err := NewRepository(db).Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1$`).
			WithArgs(int64(1)).
			WillReturnRows(addBookingRow(bookingRows(), 1, domain.StatusPending))

		b, err := NewRepository(db).GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), b.ID)
		assert.Equal(t, domain.ClientBusiness, b.ClientType)
		assert.Equal(t, "10:00", b.StartTime.String())
		assert.True(t, b.TotalPrice.Equal(decimal.NewFromInt(120)))
		assert.Equal(t, domain.PaymentTransfer, b.Payment.Method)
		require.NotNil(t, b.Payment.ProofRef)
		assert.Equal(t, "TRX-1", *b.Payment.ProofRef)
		assert.Nil(t, b.TechnicianID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).WillReturnRows(bookingRows())

		_, err := NewRepository(db).GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("locks row in transaction", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1 FOR UPDATE`).
			WillReturnRows(addBookingRow(bookingRows(), 1, domain.StatusConfirmed))
		mock.ExpectCommit()

		tx, err := dbmetrics.Wrap(db, nil, "test").BeginTx(context.Background(), nil)
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), tx)

		b, err := NewRepository(db).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, b.Status)
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_List(t *testing.T) {
	t.Run("active bookings of a service", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`FROM bookings WHERE service_id = \$1 AND booking_date >= \$2 AND status <> \$3 ORDER BY booking_date ASC, start_time ASC`).
			WithArgs(int64(7), bookingDate, domain.StatusCancelled).
			WillReturnRows(addBookingRow(addBookingRow(bookingRows(), 1, domain.StatusPending), 2, domain.StatusConfirmed))

		list, err := NewRepository(db).List(context.Background(), domain.BookingsFilter{
			ServiceID: ptr.Ptr(int64(7)),
			StartDate: &bookingDate,
		})
		require.NoError(t, err)
		assert.Len(t, list, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pending transfers oldest first", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`WHERE status <> \$1 AND payment_method = \$2 AND payment_status = \$3 ORDER BY created_at ASC, id ASC`).
			WillReturnRows(addBookingRow(bookingRows(), 3, domain.StatusPending))

		list, err := NewRepository(db).List(context.Background(), domain.BookingsFilter{
			PaymentMethod: ptr.Ptr(domain.PaymentTransfer),
			PaymentStatus: ptr.Ptr(domain.PaymentPending),
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].IsPendingTransfer())
	})

	t.Run("client history with status", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`WHERE client_id = \$1 AND status = \$2 ORDER BY booking_date DESC, start_time DESC`).
			WillReturnRows(bookingRows())

		list, err := NewRepository(db).List(context.Background(), domain.BookingsFilter{
			ClientID: ptr.Ptr(int64(42)),
			Status:   ptr.Ptr(domain.StatusCancelled),
		})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`FROM bookings`).WillReturnError(sql.ErrConnDone)

		_, err := NewRepository(db).List(context.Background(), domain.BookingsFilter{})
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}

func TestRepository_Update(t *testing.T) {
	b := &domain.Booking{
		ID:          1,
		ServiceID:   7,
		BookingDate: bookingDate,
		StartTime:   "11:00",
		Status:      domain.StatusPending,
		Payment:     domain.Payment{Status: domain.PaymentApproved},
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`UPDATE bookings SET (.+), updated_at = NOW\(\) WHERE id = \$8`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewRepository(db).Update(context.Background(), b))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, NewRepository(db).Update(context.Background(), b), ErrBookingNotFound)
	})

	t.Run("slot taken", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`UPDATE bookings`).WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, NewRepository(db).Update(context.Background(), b), ErrSlotNotAvailable)
	})
}
