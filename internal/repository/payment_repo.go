package repository

import (
	"context"

	"anoa.com/hrpayroll/internal/model"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, method *model.PaymentMethod) error
	Save(ctx context.Context, method *model.PaymentMethod) error
	FindByID(ctx context.Context, id string) (*model.PaymentMethod, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.PaymentMethod, error)
	Delete(ctx context.Context, id string) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, method *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *paymentRepository) Save(ctx context.Context, method *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id string) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&method).Error; err != nil {
		return nil, err
	}

	return &method, nil
}

func (r *paymentRepository) FindByUserID(ctx context.Context, userID string) ([]*model.PaymentMethod, error) {
	var methods []*model.PaymentMethod
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&methods).Error; err != nil {
		return nil, err
	}

	return methods, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.PaymentMethod{}, "id = ?", id).Error
}
