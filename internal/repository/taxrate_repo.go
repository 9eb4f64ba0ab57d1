package repository

import (
	"context"

	"anoa.com/hrpayroll/internal/model"
	"gorm.io/gorm"
)

type TaxRateRepository interface {
	Create(ctx context.Context, rate *model.IncomeTaxRate) error
	Save(ctx context.Context, rate *model.IncomeTaxRate) error
	FindByID(ctx context.Context, id string) (*model.IncomeTaxRate, error)
	FindByName(ctx context.Context, name string) (*model.IncomeTaxRate, error)
	FindAll(ctx context.Context) ([]*model.IncomeTaxRate, error)
	Delete(ctx context.Context, id string) error
}

type taxRateRepository struct {
	db *gorm.DB
}

func NewTaxRateRepository(db *gorm.DB) TaxRateRepository {
	return &taxRateRepository{db: db}
}

func (r *taxRateRepository) Create(ctx context.Context, rate *model.IncomeTaxRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *taxRateRepository) Save(ctx context.Context, rate *model.IncomeTaxRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *taxRateRepository) FindByID(ctx context.Context, id string) (*model.IncomeTaxRate, error) {
	var rate model.IncomeTaxRate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rate).Error; err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *taxRateRepository) FindByName(ctx context.Context, name string) (*model.IncomeTaxRate, error) {
	var rate model.IncomeTaxRate
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&rate).Error; err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *taxRateRepository) FindAll(ctx context.Context) ([]*model.IncomeTaxRate, error) {
	var rates []*model.IncomeTaxRate
	if err := r.db.WithContext(ctx).Order("name").Find(&rates).Error; err != nil {
		return nil, err
	}

	return rates, nil
}

func (r *taxRateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.IncomeTaxRate{}, "id = ?", id).Error
}
