package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UpdateContractInput struct {
	Type            *string          `json:"type" binding:"omitempty,oneof=employment b2b mandate"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
	ClearEnd        bool             `json:"clear_end_date"`
	Salary          *decimal.Decimal `json:"salary"`
	Currency        *string          `json:"currency" binding:"omitempty,len=3"`
	PaymentMethodID *string          `json:"payment_method_id" binding:"omitempty,uuid"`
}

type SetBenefitsInput struct {
	BenefitIDs []string `json:"benefit_ids" binding:"required,dive,uuid"`
}

type ContractService interface {
	Get(ctx context.Context, id string) (*model.Contract, error)
	GetByUser(ctx context.Context, userID string) (*model.Contract, error)
	Update(ctx context.Context, id string, input UpdateContractInput) (*model.Contract, error)
	SetBenefits(ctx context.Context, id string, input SetBenefitsInput) (*model.Contract, error)
	ListBenefits(ctx context.Context) ([]*model.Benefit, error)
	// RefreshAll re-derives status and time remaining for every contract.
	// Used by the housekeeping job; safe to re-run.
	RefreshAll(ctx context.Context) error
}

type contractService struct {
	contracts repository.ContractRepository
	benefits  repository.BenefitRepository
	payments  repository.PaymentRepository
}

func NewContractService(contracts repository.ContractRepository, benefits repository.BenefitRepository, payments repository.PaymentRepository) ContractService {
	return &contractService{
		contracts: contracts,
		benefits:  benefits,
		payments:  payments,
	}
}

func (s *contractService) ListBenefits(ctx context.Context) ([]*model.Benefit, error) {
	return s.benefits.FindAll(ctx)
}

func (s *contractService) Get(ctx context.Context, id string) (*model.Contract, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *contractService) GetByUser(ctx context.Context, userID string) (*model.Contract, error) {
	contract, err := s.contracts.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *contractService) Update(ctx context.Context, id string, input UpdateContractInput) (*model.Contract, error) {
	contract, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		contract.Type = model.ContractType(*input.Type)
	}
	if input.StartDate != nil {
		contract.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		contract.EndDate = input.EndDate
	} else if input.ClearEnd {
		contract.EndDate = nil
	}
	if input.Salary != nil {
		contract.Salary = *input.Salary
	}
	if input.Currency != nil {
		contract.Currency = *input.Currency
	}
	if input.PaymentMethodID != nil {
		method, err := s.payments.FindByID(ctx, *input.PaymentMethodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("payment method: %w", apperror.ErrNotFound)
			}
			return nil, err
		}
		contract.PaymentMethodID = &method.ID
		contract.PaymentMethod = method
	}

	if err := s.refresh(ctx, contract); err != nil {
		return nil, err
	}

	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}

	return contract, nil
}

func (s *contractService) SetBenefits(ctx context.Context, id string, input SetBenefitsInput) (*model.Contract, error) {
	contract, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	benefits, err := s.benefits.FindByIDs(ctx, input.BenefitIDs)
	if err != nil {
		return nil, err
	}
	if len(benefits) != len(input.BenefitIDs) {
		return nil, fmt.Errorf("benefit: %w", apperror.ErrNotFound)
	}

	if err := s.contracts.ReplaceBenefits(ctx, contract, benefits); err != nil {
		return nil, err
	}

	contract.Benefits = benefits
	return contract, nil
}

func (s *contractService) RefreshAll(ctx context.Context) error {
	contracts, err := s.contracts.FindAll(ctx)
	if err != nil {
		return err
	}

	for _, contract := range contracts {
		if err := s.refresh(ctx, contract); err != nil {
			return err
		}
		if err := s.contracts.Save(ctx, contract); err != nil {
			return err
		}
	}

	zap.L().Info("contract statuses refreshed", zap.Int("count", len(contracts)))
	return nil
}

// refresh applies the status/time-remaining rule, resolving the employment
// status rows. A missing status row is surfaced to the caller.
func (s *contractService) refresh(ctx context.Context, contract *model.Contract) error {
	if contract.StartDate == nil || contract.EndDate == nil {
		contract.Refresh(nil, nil)
		return nil
	}

	active, err := s.contracts.FindStatusByName(ctx, model.StatusActive)
	if err != nil {
		return fmt.Errorf("employment status %q: %w", model.StatusActive, err)
	}
	inactive, err := s.contracts.FindStatusByName(ctx, model.StatusInactive)
	if err != nil {
		return fmt.Errorf("employment status %q: %w", model.StatusInactive, err)
	}

	contract.Refresh(active, inactive)
	return nil
}
