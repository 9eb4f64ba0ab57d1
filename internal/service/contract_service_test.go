package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContractService(db *gorm.DB) ContractService {
	return NewContractService(
		repository.NewContractRepository(db),
		repository.NewBenefitRepository(db),
		repository.NewPaymentRepository(db),
	)
}

func TestContractUpdateDerivesStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newContractService(db)

	_, contract := seedEmployee(t, db, "deriver", decimal.NewFromInt(1000), model.ContractEmployment)

	t.Run("running contract becomes active", func(t *testing.T) {
		updated, err := svc.Update(ctx, contract.ID.String(), UpdateContractInput{})
		require.NoError(t, err)

		require.NotNil(t, updated.Status)
		assert.Equal(t, model.StatusActive, updated.Status.Name)
		require.NotNil(t, updated.TimeRemaining)
	})

	t.Run("expired contract becomes inactive", func(t *testing.T) {
		end := time.Now().AddDate(-2, 0, 0)
		start := time.Now().AddDate(-3, 0, 0)
		updated, err := svc.Update(ctx, contract.ID.String(), UpdateContractInput{
			StartDate: &start,
			EndDate:   &end,
		})
		require.NoError(t, err)

		require.NotNil(t, updated.Status)
		assert.Equal(t, model.StatusInactive, updated.Status.Name)
	})

	t.Run("clearing the end date keeps the last status", func(t *testing.T) {
		updated, err := svc.Update(ctx, contract.ID.String(), UpdateContractInput{ClearEnd: true})
		require.NoError(t, err)

		assert.Nil(t, updated.TimeRemaining)
		require.NotNil(t, updated.Status)
		assert.Equal(t, model.StatusInactive, updated.Status.Name)
	})
}

func TestSetBenefits(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newContractService(db)

	require.NoError(t, db.Create(&model.Benefit{Name: "Gym", Category: model.BenefitSport}).Error)
	require.NoError(t, db.Create(&model.Benefit{Name: "Healthcare", Category: model.BenefitHealth}).Error)

	var gym, health model.Benefit
	require.NoError(t, db.Where("name = ?", "Gym").First(&gym).Error)
	require.NoError(t, db.Where("name = ?", "Healthcare").First(&health).Error)

	_, contract := seedEmployee(t, db, "perks", decimal.NewFromInt(1000), model.ContractEmployment)

	updated, err := svc.SetBenefits(ctx, contract.ID.String(), SetBenefitsInput{
		BenefitIDs: []string{gym.ID.String(), health.ID.String()},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Benefits, 2)

	// Replacement, not accumulation.
	updated, err = svc.SetBenefits(ctx, contract.ID.String(), SetBenefitsInput{
		BenefitIDs: []string{gym.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, updated.Benefits, 1)
	assert.Equal(t, "Gym", updated.Benefits[0].Name)
}

func TestRefreshAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newContractService(db)

	_, running := seedEmployee(t, db, "runner", decimal.NewFromInt(1000), model.ContractEmployment)

	_, expired := seedEmployee(t, db, "expired", decimal.NewFromInt(1000), model.ContractEmployment)
	end := time.Now().AddDate(-1, 0, 0)
	start := time.Now().AddDate(-2, 0, 0)
	require.NoError(t, db.Model(&model.Contract{}).Where("id = ?", expired.ID).
		Updates(map[string]any{"start_date": start, "end_date": end}).Error)

	require.NoError(t, svc.RefreshAll(ctx))

	got, err := svc.Get(ctx, running.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.Status)
	assert.Equal(t, model.StatusActive, got.Status.Name)

	got, err = svc.Get(ctx, expired.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.Status)
	assert.Equal(t, model.StatusInactive, got.Status.Name)
}
