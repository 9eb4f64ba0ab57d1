package service

import (
	"context"
	"testing"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentMethod(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(repository.NewPaymentRepository(db))

	user, _ := seedEmployee(t, db, "payee", decimal.NewFromInt(1000), model.ContractEmployment)

	t.Run("bank transfer", func(t *testing.T) {
		iban := "PL61109010140000071219812874"
		method, err := svc.Create(ctx, user.ID.String(), PaymentMethodInput{
			Kind: "bank_transfer",
			IBAN: &iban,
		})
		require.NoError(t, err)
		assert.Equal(t, model.PaymentBankTransfer, method.Kind)
	})

	t.Run("bank transfer without account details rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID.String(), PaymentMethodInput{Kind: "bank_transfer"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("valid ETH wallet", func(t *testing.T) {
		network := "ETH"
		wallet := "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
		method, err := svc.Create(ctx, user.ID.String(), PaymentMethodInput{
			Kind:          "crypto",
			Network:       &network,
			WalletAddress: &wallet,
		})
		require.NoError(t, err)
		require.NotNil(t, method.Network)
		assert.Equal(t, model.NetworkETH, *method.Network)
	})

	t.Run("malformed BTC wallet rejected", func(t *testing.T) {
		network := "BTC"
		wallet := "nonsense"
		_, err := svc.Create(ctx, user.ID.String(), PaymentMethodInput{
			Kind:          "crypto",
			Network:       &network,
			WalletAddress: &wallet,
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}

func TestDeletePaymentMethodOwnership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPaymentService(repository.NewPaymentRepository(db))

	owner, _ := seedEmployee(t, db, "owner", decimal.NewFromInt(1000), model.ContractEmployment)
	other, _ := seedEmployee(t, db, "other", decimal.NewFromInt(1000), model.ContractEmployment)

	email := "owner@paypal.example"
	method, err := svc.Create(ctx, owner.ID.String(), PaymentMethodInput{
		Kind:        "paypal",
		PayPalEmail: &email,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, other.ID.String(), method.ID.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner.ID.String(), method.ID.String()))

	methods, err := svc.List(ctx, owner.ID.String())
	require.NoError(t, err)
	assert.Empty(t, methods)
}
