package repository

import (
	"context"

	"anoa.com/hrpayroll/internal/model"
	"gorm.io/gorm"
)

type BenefitRepository interface {
	Create(ctx context.Context, benefit *model.Benefit) error
	FindByIDs(ctx context.Context, ids []string) ([]model.Benefit, error)
	FindAll(ctx context.Context) ([]*model.Benefit, error)
}

type benefitRepository struct {
	db *gorm.DB
}

func NewBenefitRepository(db *gorm.DB) BenefitRepository {
	return &benefitRepository{db: db}
}

func (r *benefitRepository) Create(ctx context.Context, benefit *model.Benefit) error {
	return r.db.WithContext(ctx).Create(benefit).Error
}

func (r *benefitRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Benefit, error) {
	var benefits []model.Benefit
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&benefits).Error; err != nil {
		return nil, err
	}

	return benefits, nil
}

func (r *benefitRepository) FindAll(ctx context.Context) ([]*model.Benefit, error) {
	var benefits []*model.Benefit
	if err := r.db.WithContext(ctx).Order("category, name").Find(&benefits).Error; err != nil {
		return nil, err
	}

	return benefits, nil
}
