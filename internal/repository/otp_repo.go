package repository

import (
	"context"

	"anoa.com/hrpayroll/internal/model"
	"gorm.io/gorm"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *model.OneTimePassword) error
	// FindActive returns the newest unused OTP matching the user and code.
	FindActive(ctx context.Context, userID, code string) (*model.OneTimePassword, error)
	MarkUsed(ctx context.Context, otp *model.OneTimePassword) error
	DeleteForUser(ctx context.Context, userID string) error
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, otp *model.OneTimePassword) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

func (r *otpRepository) FindActive(ctx context.Context, userID, code string) (*model.OneTimePassword, error) {
	var otp model.OneTimePassword
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND used = ?", userID, code, false).
		Order("created_at DESC").
		First(&otp).Error; err != nil {
		return nil, err
	}

	return &otp, nil
}

func (r *otpRepository) MarkUsed(ctx context.Context, otp *model.OneTimePassword) error {
	otp.Used = true
	return r.db.WithContext(ctx).Save(otp).Error
}

func (r *otpRepository) DeleteForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&model.OneTimePassword{}, "user_id = ?", userID).Error
}
