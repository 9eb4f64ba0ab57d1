package pdfgen

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContract(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	err := RenderContract(&buf, ContractData{
		EmployeeName: "Jan Kowalski",
		Email:        "jan@example.com",
		ContractType: "employment",
		StartDate:    &start,
		Salary:       decimal.NewFromInt(9000),
		Currency:     "EUR",
		Benefits:     []string{"Private healthcare", "Gym membership"},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderInvoice(t *testing.T) {
	net := decimal.RequireFromString("813.01")
	tax := decimal.RequireFromString("186.99")
	issue := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	err := RenderInvoice(&buf, InvoiceData{
		Number:         "jkowalski/2026/1",
		BuyerName:      "Jan Kowalski",
		IssueDate:      issue,
		PaymentDueDate: issue.AddDate(0, 0, 7),
		GrossAmount:    decimal.NewFromInt(1000),
		NetAmount:      &net,
		TaxAmount:      &tax,
		Currency:       "EUR",
		PaymentDetails: "Bank transfer, IBAN PL61109010140000071219812874",
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
