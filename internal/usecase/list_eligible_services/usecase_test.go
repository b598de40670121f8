package list_eligible_services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	"github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase() *UseCase {
	store := memory.NewStore()
	for _, s := range []*domain.Service{
		{ID: 1, Country: "Ecuador", CoverageRegions: []string{"Pichincha"}, Name: "Fumigación", Price: decimal.NewFromInt(100), DurationMinutes: 60, Available: true},
		{ID: 2, Country: "Ecuador", CoverageRegions: []string{"Guayas"}, Name: "Desratización", Price: decimal.NewFromInt(80), DurationMinutes: 45, Available: true},
		{ID: 3, Country: "Peru", Name: "Control de plagas", Price: decimal.NewFromInt(90), DurationMinutes: 60, Available: true},
		{ID: 4, Country: "Ecuador", Name: "Limpieza de tanques", Price: decimal.NewFromInt(70), DurationMinutes: 30, Available: false},
	} {
		store.AddService(s)
	}
	store.AddClient(&domain.Client{ID: 42, Country: "Ecuador", Region: ptr.Ptr("Pichincha"), ClientType: domain.ClientIndividual})
	store.AddClient(&domain.Client{ID: 43, Country: "Ecuador", Region: ptr.Ptr("-"), ClientType: domain.ClientBusiness})

	return NewUseCase(store.Services(), store.Clients(), nopLogger{})
}

func serviceIDs(resp *Response) []int64 {
	out := make([]int64, 0, len(resp.Services))
	for _, s := range resp.Services {
		out = append(out, s.ID)
	}
	return out
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	tests := []struct {
		name string
		req  *Request
		want []int64
	}{
		{"public browse across countries", &Request{}, []int64{2, 1, 3}},
		{"registered client with region", &Request{ClientID: ptr.Ptr(int64(42))}, []int64{1}},
		{"registered client with placeholder region", &Request{ClientID: ptr.Ptr(int64(43))}, []int64{2, 1}},
		{"country and region", &Request{Country: "Ecuador", Region: ptr.Ptr("Guayas")}, []int64{2}},
		{"country only", &Request{Country: "Peru"}, []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, serviceIDs(resp))
		})
	}
}

func TestUseCase_Execute_ResponseFields(t *testing.T) {
	resp, err := newUseCase().Execute(context.Background(), &Request{Country: "Peru"})
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "90.00", resp.Services[0].Price)
	assert.Equal(t, []string{}, resp.Services[0].CoverageRegions)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	_, err := uc.Execute(ctx, &Request{ClientID: ptr.Ptr(int64(999))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(ctx, &Request{ClientID: ptr.Ptr(int64(0))})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(ctx, &Request{Region: ptr.Ptr("Pichincha")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
