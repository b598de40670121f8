package confirm_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	"github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SanitationBookingService/internal/integrations/events"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingPublisher struct {
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.BookingEvent) error {
	p.events = append(p.events, e)
	return nil
}

func TestUseCase_Execute(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		payment domain.PaymentStatus
		wantErr error
	}{
		{name: "approved awaiting admin", status: domain.StatusPending, payment: domain.PaymentApproved},
		{name: "pending transfer", status: domain.StatusPending, payment: domain.PaymentPending, wantErr: ErrNotAwaitingConfirmation},
		{name: "already confirmed", status: domain.StatusConfirmed, payment: domain.PaymentApproved, wantErr: ErrNotAwaitingConfirmation},
		{name: "cancelled", status: domain.StatusCancelled, payment: domain.PaymentApproved, wantErr: ErrNotAwaitingConfirmation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			publisher := &recordingPublisher{}
			uc := NewUseCase(store.Bookings(), store.TxManager(), publisher, nopLogger{})

			b, err := store.Bookings().Create(context.Background(), &domain.Booking{
				ServiceID:   1,
				ClientID:    42,
				BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				StartTime:   "10:00",
				Status:      tt.status,
				Payment:     domain.Payment{Method: domain.PaymentCard, CardKind: domain.CardDebit, Status: tt.payment},
			})
			require.NoError(t, err)

			resp, err := uc.Execute(context.Background(), b.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrInvalidState)
				assert.Empty(t, publisher.events)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "confirmed", resp.Status)
			assert.Equal(t, "approved", resp.Payment.Status)
			require.Len(t, publisher.events, 1)
			assert.Equal(t, events.RKBookingConfirmed, publisher.events[0].RoutingKey)
		})
	}
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store.Bookings(), store.TxManager(), &recordingPublisher{}, nopLogger{})

	_, err := uc.Execute(context.Background(), 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
