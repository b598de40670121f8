package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования.
// ClientID пустой, когда отменяет администратор
type CancelBookingRequest struct {
	ClientID           *int64 `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// AssignTechnicianRequest запрос на назначение техника
type AssignTechnicianRequest struct {
	TechnicianID int64 `json:"technicianId"`
}

// Response модели

// PaymentResponse данные оплаты бронирования
type PaymentResponse struct {
	Method   string  `json:"method"`   // card | transfer
	CardKind string  `json:"cardKind"` // none | debit | credit
	ProofRef *string `json:"proofRef,omitempty"`
	Status   string  `json:"status"` // pending | approved | rejected
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64           `json:"id"`
	ServiceID       int64           `json:"serviceId"`
	ClientID        int64           `json:"clientId"`
	ClientType      string          `json:"clientType"`
	BookingDate     string          `json:"bookingDate"` // "2025-03-10"
	StartTime       string          `json:"startTime"`   // "10:00"
	DurationMinutes int             `json:"durationMinutes"`
	TotalPrice      string          `json:"totalPrice"` // "120.00"
	Status          string          `json:"status"`
	Payment         PaymentResponse `json:"payment"`
	TechnicianID    *int64          `json:"technicianId,omitempty"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		ClientID:        b.ClientID,
		ClientType:      string(b.ClientType),
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		TotalPrice:      b.TotalPrice.StringFixed(2),
		Status:          string(b.Status),
		Payment: PaymentResponse{
			Method:   string(b.Payment.Method),
			CardKind: string(b.Payment.CardKind),
			ProofRef: b.Payment.ProofRef,
			Status:   string(b.Payment.Status),
		},
		TechnicianID:       b.TechnicianID,
		ServiceName:        b.ServiceName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
