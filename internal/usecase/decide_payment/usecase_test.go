package decide_payment

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	"github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SanitationBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingPublisher struct {
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.BookingEvent) error {
	p.events = append(p.events, e)
	return nil
}

var now = time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	repo      *memory.BookingRepository
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	publisher := &recordingPublisher{}
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	uc := NewUseCase(store.Bookings(), store.TxManager(), publisher, m, nopLogger{})
	uc.timeProvider = fixedTime{now: now}

	return &fixture{uc: uc, repo: store.Bookings(), publisher: publisher, metrics: m}
}

func (f *fixture) create(t *testing.T, start string, status domain.BookingStatus, payment domain.Payment) *domain.Booking {
	t.Helper()
	b, err := f.repo.Create(context.Background(), &domain.Booking{
		ServiceID:   1,
		ClientID:    42,
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString(start),
		Status:      status,
		Payment:     payment,
	})
	require.NoError(t, err)
	return b
}

func pendingTransfer() domain.Payment {
	return domain.Payment{Method: domain.PaymentTransfer, CardKind: domain.CardNone, ProofRef: ptr.Ptr("TRX"), Status: domain.PaymentPending}
}

func TestUseCase_Execute_Approve(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "10:00", domain.StatusPending, pendingTransfer())

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, Decision: DecisionApprove})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "approved", resp.Payment.Status)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.RKPaymentApproved, f.publisher.events[0].RoutingKey)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AdminDecisions.WithLabelValues("test", DecisionApprove)))

	// повторное решение недопустимо
	_, err = f.uc.Execute(context.Background(), &Request{BookingID: b.ID, Decision: DecisionReject})
	assert.ErrorIs(t, err, ErrNotPendingTransfer)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUseCase_Execute_RejectTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, "10:00", domain.StatusPending, pendingTransfer())

	resp, err := f.uc.Execute(ctx, &Request{BookingID: b.ID, Decision: DecisionReject})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "rejected", resp.Payment.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, ptr.Ptr(rejectionReason), resp.CancellationReason)

	before, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{BookingID: b.ID, Decision: DecisionReject})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	after, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, f.publisher.events, 1)

	// отклонённый перевод освобождает слот
	f.create(t, "10:00", domain.StatusPending, pendingTransfer())
}

func TestUseCase_Execute_NotPendingTransfer(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		payment domain.Payment
	}{
		{
			name:    "card payment",
			status:  domain.StatusConfirmed,
			payment: domain.Payment{Method: domain.PaymentCard, CardKind: domain.CardDebit, Status: domain.PaymentApproved},
		},
		{
			name:    "transfer already approved and rescheduled",
			status:  domain.StatusPending,
			payment: domain.Payment{Method: domain.PaymentTransfer, CardKind: domain.CardNone, Status: domain.PaymentApproved},
		},
		{
			name:    "cancelled with pending transfer",
			status:  domain.StatusCancelled,
			payment: pendingTransfer(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := f.create(t, "10:00", tt.status, tt.payment)

			_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, Decision: DecisionApprove})
			assert.ErrorIs(t, err, ErrNotPendingTransfer)
		})
	}
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{BookingID: 1, Decision: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{BookingID: 0, Decision: DecisionApprove})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(ctx, &Request{BookingID: 404, Decision: DecisionApprove})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
