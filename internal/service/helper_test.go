package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/hrpayroll/internal/bootstrap"
	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedRoles(db))
	require.NoError(t, bootstrap.SeedEmploymentStatuses(db))

	return db
}

func newTestStorage(t *testing.T) storage.FileStorage {
	t.Helper()

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return files
}

// seedEmployee creates a user with a profile and a contract, returning both.
func seedEmployee(t *testing.T, db *gorm.DB, username string, salary decimal.Decimal, contractType model.ContractType) (*model.User, *model.Contract) {
	t.Helper()
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	contracts := repository.NewContractRepository(db)

	role, err := users.FindRoleByName(ctx, "employee")
	require.NoError(t, err)

	roleID := role.ID
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		RoleID:       &roleID,
		IsActive:     true,
	}
	profile := &model.Profile{
		BasicInformation: &model.BasicInformation{
			FirstName: "Jan",
			LastName:  "Kowalski",
		},
		ContactInformation: &model.ContactInformation{},
		Image: &model.ProfileImage{
			FilePath: "profiles/default.jpg",
		},
	}
	require.NoError(t, users.Create(ctx, user, profile))

	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(1, 0, 0)
	contract := &model.Contract{
		UserID:    user.ID,
		Type:      contractType,
		StartDate: &start,
		EndDate:   &end,
		Salary:    salary,
		Currency:  "EUR",
	}
	require.NoError(t, contracts.Create(ctx, contract))

	return user, contract
}

func seedTaxRate(t *testing.T, db *gorm.DB, name string, percent int64) *model.IncomeTaxRate {
	t.Helper()

	rate := &model.IncomeTaxRate{Name: name}
	rate.SetPercent(decimal.NewFromInt(percent))
	require.NoError(t, db.Create(rate).Error)
	return rate
}
