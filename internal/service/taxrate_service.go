package service

import (
	"context"
	"errors"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TaxRateInput struct {
	Name string `json:"name" binding:"required,max=100"`
	// Percent is the rate as entered (23 for 23%); it is stored divided by 100.
	Percent decimal.Decimal `json:"percent" binding:"required"`
}

type TaxRateService interface {
	Create(ctx context.Context, input TaxRateInput) (*model.IncomeTaxRate, error)
	Update(ctx context.Context, id string, input TaxRateInput) (*model.IncomeTaxRate, error)
	List(ctx context.Context) ([]*model.IncomeTaxRate, error)
	Delete(ctx context.Context, id string) error
}

type taxRateService struct {
	rates repository.TaxRateRepository
}

func NewTaxRateService(rates repository.TaxRateRepository) TaxRateService {
	return &taxRateService{rates: rates}
}

func (s *taxRateService) Create(ctx context.Context, input TaxRateInput) (*model.IncomeTaxRate, error) {
	rate := &model.IncomeTaxRate{Name: input.Name}
	rate.SetPercent(input.Percent)

	if err := s.rates.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *taxRateService) Update(ctx context.Context, id string, input TaxRateInput) (*model.IncomeTaxRate, error) {
	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	rate.Name = input.Name
	rate.SetPercent(input.Percent)

	if err := s.rates.Save(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *taxRateService) List(ctx context.Context) ([]*model.IncomeTaxRate, error) {
	return s.rates.FindAll(ctx)
}

func (s *taxRateService) Delete(ctx context.Context, id string) error {
	return s.rates.Delete(ctx, id)
}
