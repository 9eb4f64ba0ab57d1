package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/apperror"
	"anoa.com/hrpayroll/pkg/validator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethodInput struct {
	Kind string `json:"kind" binding:"required,oneof=bank_transfer prepaid_card paypal crypto"`

	BankName      *string `json:"bank_name"`
	IBAN          *string `json:"iban" binding:"omitempty,min=15,max=34"`
	AccountNumber *string `json:"account_number"`

	CardNumber *string `json:"card_number" binding:"omitempty,min=12,max=19"`
	CardHolder *string `json:"card_holder"`

	PayPalEmail *string `json:"paypal_email" binding:"omitempty,email"`

	Network       *string `json:"network" binding:"omitempty,oneof=BTC ETH"`
	WalletAddress *string `json:"wallet_address"`
}

type PaymentService interface {
	Create(ctx context.Context, userID string, input PaymentMethodInput) (*model.PaymentMethod, error)
	List(ctx context.Context, userID string) ([]*model.PaymentMethod, error)
	Delete(ctx context.Context, userID, id string) error
}

type paymentService struct {
	payments repository.PaymentRepository
}

func NewPaymentService(payments repository.PaymentRepository) PaymentService {
	return &paymentService{payments: payments}
}

func (s *paymentService) Create(ctx context.Context, userID string, input PaymentMethodInput) (*model.PaymentMethod, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	method := &model.PaymentMethod{
		UserID: uid,
		Kind:   model.PaymentKind(input.Kind),
	}

	switch method.Kind {
	case model.PaymentBankTransfer:
		if input.IBAN == nil && input.AccountNumber == nil {
			return nil, fmt.Errorf("%w: bank transfer requires an IBAN or account number", apperror.ErrInvalidInput)
		}
		method.BankName = input.BankName
		method.IBAN = input.IBAN
		method.AccountNumber = input.AccountNumber

	case model.PaymentPrepaidCard:
		if input.CardNumber == nil {
			return nil, fmt.Errorf("%w: prepaid card requires a card number", apperror.ErrInvalidInput)
		}
		method.CardNumber = input.CardNumber
		method.CardHolder = input.CardHolder

	case model.PaymentPayPal:
		if input.PayPalEmail == nil {
			return nil, fmt.Errorf("%w: paypal requires an email address", apperror.ErrInvalidInput)
		}
		method.PayPalEmail = input.PayPalEmail

	case model.PaymentCrypto:
		if input.Network == nil || input.WalletAddress == nil {
			return nil, fmt.Errorf("%w: crypto requires a network and wallet address", apperror.ErrInvalidInput)
		}
		if err := validateWallet(*input.Network, *input.WalletAddress); err != nil {
			return nil, err
		}
		network := model.CryptoNetwork(*input.Network)
		method.Network = &network
		method.WalletAddress = input.WalletAddress
	}

	if err := s.payments.Create(ctx, method); err != nil {
		return nil, err
	}

	return method, nil
}

func (s *paymentService) List(ctx context.Context, userID string) ([]*model.PaymentMethod, error) {
	return s.payments.FindByUserID(ctx, userID)
}

func (s *paymentService) Delete(ctx context.Context, userID, id string) error {
	method, err := s.payments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if method.UserID.String() != userID {
		return apperror.ErrForbidden
	}

	return s.payments.Delete(ctx, id)
}

// validateWallet applies the per-network address format rules.
func validateWallet(network, address string) error {
	switch model.CryptoNetwork(network) {
	case model.NetworkBTC:
		if !validator.ValidBTCAddress(address) {
			return fmt.Errorf("%w: invalid BTC wallet address", apperror.ErrInvalidInput)
		}
	case model.NetworkETH:
		if !validator.ValidETHAddress(address) {
			return fmt.Errorf("%w: invalid ETH wallet address", apperror.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unsupported crypto network", apperror.ErrInvalidInput)
	}
	return nil
}
