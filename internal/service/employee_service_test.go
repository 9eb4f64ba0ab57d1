package service

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEmployeeService(t *testing.T, db *gorm.DB) (EmployeeService, repository.UserRepository) {
	t.Helper()

	users := repository.NewUserRepository(db)
	contracts := repository.NewContractRepository(db)
	benefits := repository.NewBenefitRepository(db)
	payments := repository.NewPaymentRepository(db)
	contractService := NewContractService(contracts, benefits, payments)

	svc := NewEmployeeService(users, contracts, benefits, contractService, newTestStorage(t), EmployeeOpts{})
	return svc, users
}

func TestCreateEmployee(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc, _ := newEmployeeService(t, db)

	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 11, 0)

	user, err := svc.Create(ctx, CreateEmployeeInput{
		Username:     "anowak",
		Email:        "anowak@example.com",
		Password:     "s3cret-pass",
		FirstName:    "Anna",
		LastName:     "Nowak",
		ContractType: "employment",
		StartDate:    &start,
		EndDate:      &end,
		Salary:       decimal.NewFromInt(8000),
	})
	require.NoError(t, err)

	require.NotNil(t, user.Profile)
	require.NotNil(t, user.Profile.BasicInformation)
	assert.Equal(t, "Anna Nowak", user.Profile.BasicInformation.FullName())

	require.NotNil(t, user.Profile.Image)
	assert.True(t, strings.HasSuffix(user.Profile.Image.FilePath, "default.jpg"))

	require.NotNil(t, user.Contract)
	require.NotNil(t, user.Contract.Status)
	assert.Equal(t, model.StatusActive, user.Contract.Status.Name)
	require.NotNil(t, user.Contract.TimeRemaining)
	assert.Greater(t, *user.Contract.TimeRemaining, 0)
}

func TestDeleteEmployeeCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	contracts := repository.NewContractRepository(db)
	benefits := repository.NewBenefitRepository(db)
	payments := repository.NewPaymentRepository(db)
	contractService := NewContractService(contracts, benefits, payments)
	files := newTestStorage(t)

	svc := NewEmployeeService(users, contracts, benefits, contractService, files, EmployeeOpts{})

	user, contract := seedEmployee(t, db, "leaver", decimal.NewFromInt(4000), model.ContractEmployment)

	// A payment method and an invoice hang off the account.
	wallet := "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
	network := model.NetworkETH
	method := &model.PaymentMethod{
		UserID:        user.ID,
		Kind:          model.PaymentCrypto,
		Network:       &network,
		WalletAddress: &wallet,
	}
	require.NoError(t, payments.Create(ctx, method))

	invoices := repository.NewInvoiceRepository(db)
	require.NoError(t, invoices.Create(ctx, &model.Invoice{
		ContractID: contract.ID,
		IssueDate:  time.Now(),
	}))

	// Shared default image file on disk.
	_, err := files.Save(strings.NewReader("x"), "profiles", "default.jpg")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID.String()))

	t.Run("rows are gone", func(t *testing.T) {
		_, err := users.FindByID(ctx, user.ID.String())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		_, err = contracts.FindByID(ctx, contract.ID.String())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		methods, err := payments.FindByUserID(ctx, user.ID.String())
		require.NoError(t, err)
		assert.Empty(t, methods)
	})

	t.Run("default image file survives", func(t *testing.T) {
		_, err := os.Stat(files.AbsPath("profiles/default.jpg"))
		assert.NoError(t, err)
	})
}

func TestDeleteEmployeeRemovesOwnImage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	contracts := repository.NewContractRepository(db)
	benefits := repository.NewBenefitRepository(db)
	payments := repository.NewPaymentRepository(db)
	contractService := NewContractService(contracts, benefits, payments)
	files := newTestStorage(t)

	svc := NewEmployeeService(users, contracts, benefits, contractService, files, EmployeeOpts{})

	user, _ := seedEmployee(t, db, "painter", decimal.NewFromInt(4000), model.ContractEmployment)

	path, err := files.Save(strings.NewReader("img"), "profiles", user.ID.String()+".jpg")
	require.NoError(t, err)

	fetched, err := users.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	fetched.Profile.Image.FilePath = path
	require.NoError(t, users.SaveProfileImage(ctx, fetched.Profile.Image))

	require.NoError(t, svc.Delete(ctx, user.ID.String()))

	_, err = os.Stat(files.AbsPath(path))
	assert.True(t, os.IsNotExist(err))
}
