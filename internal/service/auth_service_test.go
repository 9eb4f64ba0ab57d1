package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/apperror"
	"anoa.com/hrpayroll/pkg/mailer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()

	mail, err := mailer.New(mailer.Opts{})
	require.NoError(t, err)

	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewOTPRepository(db),
		mail,
		AuthOpts{Secret: "test-secret"},
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newAuthService(t, db)

	user, err := svc.Register(ctx, RegisterInput{
		Username:  "jsmith",
		Email:     "jsmith@example.com",
		Password:  "hunter2hunter2",
		FirstName: "John",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.Empty(t, user.PasswordHash)

	t.Run("inactive account cannot log in", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Email: "jsmith@example.com", Password: "hunter2hunter2"})
		assert.Error(t, err)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{
			Username:  "other",
			Email:     "jsmith@example.com",
			Password:  "hunter2hunter2",
			FirstName: "Jane",
			LastName:  "Smith",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	// Flip the flag the way Activate would and log in.
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", true).Error)

	res, err := svc.Login(ctx, LoginInput{Email: "jsmith@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "Bearer", res.TokenType)

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Email: "jsmith@example.com", Password: "wrong"})
		assert.Error(t, err)
	})
}

func TestLoginFailuresMapToUnauthorized(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newAuthService(t, db)

	_, err := svc.Register(ctx, RegisterInput{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	cases := map[string]LoginInput{
		"unknown email":    {Email: "nobody@example.com", Password: "hunter2hunter2"},
		"wrong password":   {Email: "jdoe@example.com", Password: "wrong-password"},
		"inactive account": {Email: "jdoe@example.com", Password: "hunter2hunter2"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, input)
			assert.ErrorIs(t, err, apperror.ErrUnauthorized)
			assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))
		})
	}
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newAuthService(t, db)

	user, _ := seedEmployee(t, db, "forgetful", decimal.NewFromInt(1000), model.ContractEmployment)

	require.NoError(t, svc.RequestPasswordReset(ctx, PasswordResetInput{Email: user.Email}))

	var otp model.OneTimePassword
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&otp).Error)
	assert.Len(t, otp.Code, 6)
	assert.True(t, otp.ExpiresAt.After(time.Now()))

	t.Run("wrong code rejected", func(t *testing.T) {
		bad := "000000"
		if otp.Code == bad {
			bad = "000001"
		}
		err := svc.ConfirmPasswordReset(ctx, PasswordResetConfirmInput{
			Email:       user.Email,
			Code:        bad,
			NewPassword: "brand-new-pass",
		})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	require.NoError(t, svc.ConfirmPasswordReset(ctx, PasswordResetConfirmInput{
		Email:       user.Email,
		Code:        otp.Code,
		NewPassword: "brand-new-pass",
	}))

	res, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "brand-new-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	t.Run("code is single use", func(t *testing.T) {
		err := svc.ConfirmPasswordReset(ctx, PasswordResetConfirmInput{
			Email:       user.Email,
			Code:        otp.Code,
			NewPassword: "another-pass",
		})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	assert.NoError(t, svc.RequestPasswordReset(context.Background(), PasswordResetInput{
		Email: "nobody@example.com",
	}))
}
