package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxRatePercentStorage(t *testing.T) {
	var rate IncomeTaxRate
	rate.SetPercent(decimal.NewFromInt(23))

	// Stored as a fraction, surfaced as a percentage.
	assert.Equal(t, "0.23", rate.Rate.String())
	assert.Equal(t, "23", rate.Percent().String())
}

func TestServiceGrossPriceDerivation(t *testing.T) {
	rate := &IncomeTaxRate{}
	rate.SetPercent(decimal.NewFromInt(23))

	svc := &Service{NetPrice: decimal.NewFromInt(100), TaxRate: rate}
	svc.DeriveGrossPrice()

	require.NotNil(t, svc.GrossPrice)
	assert.Equal(t, "123.00", svc.GrossPrice.StringFixed(2))

	// Further derivations are no-ops once set.
	svc.NetPrice = decimal.NewFromInt(999)
	svc.DeriveGrossPrice()
	assert.Equal(t, "123.00", svc.GrossPrice.StringFixed(2))
}
