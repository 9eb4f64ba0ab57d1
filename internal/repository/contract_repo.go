package repository

import (
	"context"

	"anoa.com/hrpayroll/internal/model"
	"gorm.io/gorm"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *model.Contract) error
	Save(ctx context.Context, contract *model.Contract) error
	FindByID(ctx context.Context, id string) (*model.Contract, error)
	FindByUserID(ctx context.Context, userID string) (*model.Contract, error)
	FindAll(ctx context.Context) ([]*model.Contract, error)
	FindStatusByName(ctx context.Context, name string) (*model.EmploymentStatus, error)
	ReplaceBenefits(ctx context.Context, contract *model.Contract, benefits []model.Benefit) error
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Status").
		Preload("Benefits").
		Preload("PaymentMethod")
}

func (r *contractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *contractRepository) Save(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *contractRepository) FindByID(ctx context.Context, id string) (*model.Contract, error) {
	var contract model.Contract
	if err := r.preloaded(ctx).Where("id = ?", id).First(&contract).Error; err != nil {
		return nil, err
	}

	return &contract, nil
}

func (r *contractRepository) FindByUserID(ctx context.Context, userID string) (*model.Contract, error) {
	var contract model.Contract
	if err := r.preloaded(ctx).Where("user_id = ?", userID).First(&contract).Error; err != nil {
		return nil, err
	}

	return &contract, nil
}

func (r *contractRepository) FindAll(ctx context.Context) ([]*model.Contract, error) {
	var contracts []*model.Contract
	if err := r.preloaded(ctx).Find(&contracts).Error; err != nil {
		return nil, err
	}

	return contracts, nil
}

func (r *contractRepository) FindStatusByName(ctx context.Context, name string) (*model.EmploymentStatus, error) {
	var status model.EmploymentStatus
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&status).Error; err != nil {
		return nil, err
	}

	return &status, nil
}

func (r *contractRepository) ReplaceBenefits(ctx context.Context, contract *model.Contract, benefits []model.Benefit) error {
	return r.db.WithContext(ctx).Model(contract).Association("Benefits").Replace(benefits)
}
