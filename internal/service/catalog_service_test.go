package service

import (
	"context"
	"testing"

	"anoa.com/hrpayroll/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceGrossPriceDerivedOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rate := seedTaxRate(t, db, "Standard", 23)

	svc := NewCatalogService(
		repository.NewCatalogRepository(db),
		repository.NewTaxRateRepository(db),
		newTestStorage(t),
	)

	created, err := svc.Create(ctx, CreateServiceInput{
		Name:      "Payroll processing",
		NetPrice:  decimal.NewFromInt(100),
		TaxRateID: rate.ID.String(),
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, created.GrossPrice)
	assert.Equal(t, "123.00", created.GrossPrice.StringFixed(2))

	// A later net price change must not touch the stored gross price.
	newNet := decimal.NewFromInt(200)
	updated, err := svc.Update(ctx, created.ID.String(), UpdateServiceInput{
		NetPrice: &newNet,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "200.00", updated.NetPrice.StringFixed(2))
	require.NotNil(t, updated.GrossPrice)
	assert.Equal(t, "123.00", updated.GrossPrice.StringFixed(2))
}

func TestServiceTaxRateChangeKeepsGrossPrice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	standard := seedTaxRate(t, db, "Standard", 23)
	reduced := seedTaxRate(t, db, "Reduced", 8)

	svc := NewCatalogService(
		repository.NewCatalogRepository(db),
		repository.NewTaxRateRepository(db),
		newTestStorage(t),
	)

	created, err := svc.Create(ctx, CreateServiceInput{
		Name:      "Consulting",
		NetPrice:  decimal.NewFromInt(500),
		TaxRateID: standard.ID.String(),
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, created.GrossPrice)
	assert.Equal(t, "615.00", created.GrossPrice.StringFixed(2))

	reducedID := reduced.ID.String()
	updated, err := svc.Update(ctx, created.ID.String(), UpdateServiceInput{
		TaxRateID: &reducedID,
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, updated.GrossPrice)
	assert.Equal(t, "615.00", updated.GrossPrice.StringFixed(2))
}
