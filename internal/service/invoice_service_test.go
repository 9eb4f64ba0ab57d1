package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueInvoice(t *testing.T) {
	db := newTestDB(t)
	files := newTestStorage(t)
	ctx := context.Background()

	user, contract := seedEmployee(t, db, "jkowalski", decimal.NewFromInt(1000), model.ContractEmployment)
	rate := seedTaxRate(t, db, "Standard", 23)

	contracts := repository.NewContractRepository(db)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		contracts,
		repository.NewUserRepository(db),
		repository.NewTaxRateRepository(db),
		files,
	)

	issueDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	invoice, err := svc.Issue(ctx, IssueInvoiceInput{
		ContractID: contract.ID.String(),
		TaxRateID:  rate.ID.String(),
		IssueDate:  &issueDate,
	}, nil)
	require.NoError(t, err)

	t.Run("amounts split at 23 percent", func(t *testing.T) {
		assert.True(t, invoice.GrossAmount.Equal(decimal.NewFromInt(1000)))
		require.NotNil(t, invoice.NetAmount)
		require.NotNil(t, invoice.TaxAmount)
		assert.Equal(t, "813.01", invoice.NetAmount.StringFixed(2))
		assert.Equal(t, "186.99", invoice.TaxAmount.StringFixed(2))
	})

	t.Run("number uses the pre-increment counter", func(t *testing.T) {
		assert.Equal(t, fmt.Sprintf("%s/2026/1", user.Username), invoice.Number)
	})

	t.Run("due date is a week after issue", func(t *testing.T) {
		assert.Equal(t, issueDate.AddDate(0, 0, 7), invoice.PaymentDueDate)
	})

	t.Run("contract totals advanced", func(t *testing.T) {
		updated, err := contracts.FindByID(ctx, contract.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 1, updated.TotalInvoices)
		assert.Equal(t, "1000.00", updated.TotalEarningsGross.StringFixed(2))
		assert.Equal(t, "813.01", updated.TotalEarningsNet.StringFixed(2))
	})

	t.Run("generated pdf stored under a human readable name", func(t *testing.T) {
		require.NotEmpty(t, invoice.FilePath)
		// The file name sequence reads the counter after the increment, so
		// the first invoice is stored as number 2.
		assert.True(t, strings.HasSuffix(invoice.FilePath, "Jan Kowalski 2026 invoice 2.pdf"),
			"got %s", invoice.FilePath)
		_, err := os.Stat(files.AbsPath(invoice.FilePath))
		assert.NoError(t, err)
	})
}

func TestIssueInvoiceB2B(t *testing.T) {
	db := newTestDB(t)
	files := newTestStorage(t)
	ctx := context.Background()

	_, contract := seedEmployee(t, db, "contractor", decimal.NewFromInt(5000), model.ContractB2B)
	rate := seedTaxRate(t, db, "Standard", 23)

	contracts := repository.NewContractRepository(db)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		contracts,
		repository.NewUserRepository(db),
		repository.NewTaxRateRepository(db),
		files,
	)

	invoice, err := svc.Issue(ctx, IssueInvoiceInput{
		ContractID: contract.ID.String(),
		TaxRateID:  rate.ID.String(),
	}, nil)
	require.NoError(t, err)

	assert.True(t, invoice.GrossAmount.Equal(decimal.NewFromInt(5000)))
	assert.Nil(t, invoice.NetAmount)
	assert.Nil(t, invoice.TaxAmount)

	updated, err := contracts.FindByID(ctx, contract.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "0.00", updated.TotalEarningsNet.StringFixed(2))
}
