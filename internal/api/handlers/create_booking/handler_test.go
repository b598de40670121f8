package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SanitationBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	"github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	got    *createBooking.Request
	result *models.BookingResponse
	err    error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*models.BookingResponse, error) {
	s.got = req
	return s.result, s.err
}

func serve(t *testing.T, uc CreateBookingUseCase, clientID int64, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if clientID > 0 {
		req = req.WithContext(middleware.WithClientID(req.Context(), clientID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

const validBody = `{"serviceId":1,"bookingDate":"2025-03-11","startTime":"10:00","payment":{"method":"transfer","proofRef":"TRX-1"}}`

func TestHandler_Created(t *testing.T) {
	uc := &stubUseCase{result: &models.BookingResponse{ID: 7, Status: "pending"}}

	rec := serve(t, uc, 42, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.ClientID)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.Equal(t, types.TimeString("10:00"), uc.got.StartTime)
	assert.Equal(t, createBooking.MethodTransfer, uc.got.Payment.Method)
	require.NotNil(t, uc.got.Payment.ProofRef)
	assert.Equal(t, "TRX-1", *uc.got.Payment.ProofRef)
}

func TestHandler_RequestErrors(t *testing.T) {
	tests := []struct {
		name     string
		clientID int64
		body     string
		want     int
		field    string
	}{
		{name: "no client", clientID: 0, body: validBody, want: http.StatusUnauthorized},
		{name: "broken json", clientID: 1, body: `{"serviceId":`, want: http.StatusBadRequest},
		{name: "unknown field", clientID: 1, body: `{"serviceId":1,"extra":true}`, want: http.StatusBadRequest},
		{
			name: "bad date", clientID: 1, want: http.StatusBadRequest, field: "bookingDate",
			body: `{"serviceId":1,"bookingDate":"11.03.2025","startTime":"10:00","payment":{"method":"debit"}}`,
		},
		{
			name: "bad time", clientID: 1, want: http.StatusBadRequest, field: "startTime",
			body: `{"serviceId":1,"bookingDate":"2025-03-11","startTime":"10am","payment":{"method":"debit"}}`,
		},
		{
			name: "unknown method", clientID: 1, want: http.StatusBadRequest, field: "method",
			body: `{"serviceId":1,"bookingDate":"2025-03-11","startTime":"10:00","payment":{"method":"cash"}}`,
		},
		{
			name: "missing service", clientID: 1, want: http.StatusBadRequest, field: "serviceId",
			body: `{"bookingDate":"2025-03-11","startTime":"10:00","payment":{"method":"debit"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := serve(t, uc, tt.clientID, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Nil(t, uc.got)

			if tt.field != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Contains(t, resp.Details, tt.field)
			}
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "slot taken", err: createBooking.ErrSlotNotAvailable, want: http.StatusConflict},
		{name: "slot locked", err: createBooking.ErrSlotLocked, want: http.StatusConflict},
		{name: "client not found", err: createBooking.ErrClientNotFound, want: http.StatusNotFound},
		{name: "service not found", err: createBooking.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "not eligible", err: createBooking.ErrServiceNotEligible, want: http.StatusBadRequest},
		{name: "invalid payment", err: createBooking.ErrInvalidPayment, want: http.StatusBadRequest},
		{name: "slot in past", err: domain.ErrSlotInPast, want: http.StatusBadRequest},
		{name: "internal", err: errors.New("db is down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubUseCase{err: tt.err}, 1, validBody)
			assert.Equal(t, tt.want, rec.Code)
			assert.NotContains(t, rec.Body.String(), "db is down")
		})
	}
}
