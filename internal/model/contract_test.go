package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractRefresh(t *testing.T) {
	active := &EmploymentStatus{ID: 1, Name: StatusActive}
	inactive := &EmploymentStatus{ID: 2, Name: StatusInactive}

	date := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	t.Run("running contract is active", func(t *testing.T) {
		c := &Contract{StartDate: date(2026, 1, 1), EndDate: date(2026, 12, 31)}
		c.Refresh(active, inactive)

		require.NotNil(t, c.TimeRemaining)
		assert.Equal(t, 364, *c.TimeRemaining)
		require.NotNil(t, c.StatusID)
		assert.Equal(t, active.ID, *c.StatusID)
	})

	t.Run("end before start is inactive", func(t *testing.T) {
		c := &Contract{StartDate: date(2026, 6, 1), EndDate: date(2026, 1, 1)}
		c.Refresh(active, inactive)

		require.NotNil(t, c.TimeRemaining)
		assert.Negative(t, *c.TimeRemaining)
		require.NotNil(t, c.StatusID)
		assert.Equal(t, inactive.ID, *c.StatusID)
	})

	t.Run("missing end date clears time remaining and keeps status", func(t *testing.T) {
		days := 10
		c := &Contract{
			StartDate:     date(2026, 1, 1),
			TimeRemaining: &days,
			StatusID:      &active.ID,
		}
		c.Refresh(active, inactive)

		assert.Nil(t, c.TimeRemaining)
		require.NotNil(t, c.StatusID)
		assert.Equal(t, active.ID, *c.StatusID)
	})

	t.Run("missing start date is tolerated", func(t *testing.T) {
		c := &Contract{EndDate: date(2026, 1, 1)}
		c.Refresh(nil, nil)

		assert.Nil(t, c.TimeRemaining)
		assert.Nil(t, c.StatusID)
	})
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "jkowalski/2026/1", InvoiceNumber("jkowalski", 2026, 1))
	assert.Equal(t, "anna/2025/42", InvoiceNumber("anna", 2025, 42))
}
