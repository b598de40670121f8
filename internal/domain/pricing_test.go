package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPricing_BusinessMultipliersAreIndependent(t *testing.T) {
	p := DefaultPricing()
	price := decimal.NewFromInt(100)

	assert.True(t, p.TotalPrice(price, ClientBusiness).Equal(decimal.NewFromInt(120)))
	assert.True(t, p.TotalPrice(price, ClientIndividual).Equal(price))

	assert.Equal(t, 90, p.DurationMinutes(60, ClientBusiness))
	assert.Equal(t, 60, p.DurationMinutes(60, ClientIndividual))
	assert.Equal(t, 68, p.DurationMinutes(45, ClientBusiness))
}

func TestPricing_Custom(t *testing.T) {
	p := Pricing{
		BusinessPriceMultiplier:    decimal.RequireFromString("1.5"),
		BusinessDurationMultiplier: 1.2,
	}

	assert.True(t, p.TotalPrice(decimal.RequireFromString("80.10"), ClientBusiness).Equal(decimal.RequireFromString("120.15")))
	assert.Equal(t, 72, p.DurationMinutes(60, ClientBusiness))
}
