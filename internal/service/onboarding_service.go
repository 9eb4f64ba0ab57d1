package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/internal/session"
	"anoa.com/hrpayroll/pkg/apperror"
	"anoa.com/hrpayroll/pkg/mailer"
	"anoa.com/hrpayroll/pkg/pdfgen"
	"anoa.com/hrpayroll/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const contractFolder = "contracts"

type WizardEmailInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

type WizardBasicInput struct {
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	TaxID       *string    `json:"tax_id"`
}

type WizardContactInput struct {
	Phone      string `json:"phone" binding:"required,phone"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type WizardContractInput struct {
	ContractType string          `json:"contract_type" binding:"required,oneof=employment b2b mandate"`
	StartDate    *time.Time      `json:"start_date" binding:"required"`
	EndDate      *time.Time      `json:"end_date"`
	Salary       decimal.Decimal `json:"salary" binding:"required"`
	Currency     string          `json:"currency" binding:"omitempty,len=3"`
}

type WizardBenefitsInput struct {
	BenefitIDs []string `json:"benefit_ids" binding:"omitempty,dive,uuid"`
}

type OnboardingService interface {
	// Start allocates a wizard id. State lives in the session store until
	// Complete or expiry.
	Start(ctx context.Context) (string, error)
	SaveEmail(ctx context.Context, wizardID string, input WizardEmailInput) error
	SaveBasic(ctx context.Context, wizardID string, input WizardBasicInput) error
	SaveContact(ctx context.Context, wizardID string, input WizardContactInput) error
	SaveContract(ctx context.Context, wizardID string, input WizardContractInput) error
	SaveBenefits(ctx context.Context, wizardID string, input WizardBenefitsInput) error
	SavePayment(ctx context.Context, wizardID string, input PaymentMethodInput) error
	// Complete materializes the user with every linked record in one pass,
	// emails the generated contract PDF and clears the wizard state.
	Complete(ctx context.Context, wizardID string) (*model.User, error)
}

type onboardingService struct {
	store     session.WizardStore
	users     repository.UserRepository
	contracts repository.ContractRepository
	benefits  repository.BenefitRepository
	payments  repository.PaymentRepository
	contract  ContractService
	files     storage.FileStorage
	mail      mailer.Mailer

	defaultRole      string
	defaultImageName string
}

func NewOnboardingService(
	store session.WizardStore,
	users repository.UserRepository,
	contracts repository.ContractRepository,
	benefits repository.BenefitRepository,
	payments repository.PaymentRepository,
	contractService ContractService,
	files storage.FileStorage,
	mail mailer.Mailer,
	opts EmployeeOpts,
) OnboardingService {
	if opts.DefaultRole == "" {
		opts.DefaultRole = "employee"
	}
	if opts.DefaultImageName == "" {
		opts.DefaultImageName = "default.jpg"
	}

	return &onboardingService{
		store:            store,
		users:            users,
		contracts:        contracts,
		benefits:         benefits,
		payments:         payments,
		contract:         contractService,
		files:            files,
		mail:             mail,
		defaultRole:      opts.DefaultRole,
		defaultImageName: opts.DefaultImageName,
	}
}

func (s *onboardingService) Start(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *onboardingService) SaveEmail(ctx context.Context, wizardID string, input WizardEmailInput) error {
	// Uniqueness is checked up front so the applicant learns about a clash
	// on the first step, and re-checked on Complete.
	if err := s.ensureUnique(ctx, input.Email, input.Username); err != nil {
		return err
	}
	return s.store.Put(ctx, wizardID, session.StepEmail, input)
}

func (s *onboardingService) SaveBasic(ctx context.Context, wizardID string, input WizardBasicInput) error {
	return s.store.Put(ctx, wizardID, session.StepBasic, input)
}

func (s *onboardingService) SaveContact(ctx context.Context, wizardID string, input WizardContactInput) error {
	return s.store.Put(ctx, wizardID, session.StepContact, input)
}

func (s *onboardingService) SaveContract(ctx context.Context, wizardID string, input WizardContractInput) error {
	return s.store.Put(ctx, wizardID, session.StepContract, input)
}

func (s *onboardingService) SaveBenefits(ctx context.Context, wizardID string, input WizardBenefitsInput) error {
	return s.store.Put(ctx, wizardID, session.StepBenefits, input)
}

func (s *onboardingService) SavePayment(ctx context.Context, wizardID string, input PaymentMethodInput) error {
	if input.Kind == string(model.PaymentCrypto) {
		if input.Network == nil || input.WalletAddress == nil {
			return fmt.Errorf("%w: crypto requires a network and wallet address", apperror.ErrInvalidInput)
		}
		if err := validateWallet(*input.Network, *input.WalletAddress); err != nil {
			return err
		}
	}
	return s.store.Put(ctx, wizardID, session.StepPayment, input)
}

type wizardData struct {
	email    WizardEmailInput
	basic    WizardBasicInput
	contact  WizardContactInput
	contract WizardContractInput
	benefits WizardBenefitsInput
	payment  PaymentMethodInput
}

func (s *onboardingService) Complete(ctx context.Context, wizardID string) (*model.User, error) {
	state, err := s.store.Get(ctx, wizardID)
	if err != nil {
		return nil, err
	}

	data, err := decodeWizardState(state)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, data.email.Email, data.email.Username); err != nil {
		return nil, err
	}

	role, err := s.users.FindRoleByName(ctx, s.defaultRole)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %s not found", s.defaultRole)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.email.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := role.ID
	user := &model.User{
		Username:     data.email.Username,
		Email:        data.email.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       &roleID,
		IsActive:     true,
	}

	profile := &model.Profile{
		BasicInformation: &model.BasicInformation{
			FirstName:   data.basic.FirstName,
			LastName:    data.basic.LastName,
			DateOfBirth: data.basic.DateOfBirth,
			TaxID:       data.basic.TaxID,
		},
		ContactInformation: &model.ContactInformation{
			Phone:      data.contact.Phone,
			Street:     data.contact.Street,
			City:       data.contact.City,
			PostalCode: data.contact.PostalCode,
			Country:    data.contact.Country,
		},
		Image: &model.ProfileImage{
			FilePath: filepath.Join(profileImageFolder, s.defaultImageName),
		},
	}

	if err := s.users.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	currency := data.contract.Currency
	if currency == "" {
		currency = "EUR"
	}
	contract := &model.Contract{
		UserID:    user.ID,
		Type:      model.ContractType(data.contract.ContractType),
		StartDate: data.contract.StartDate,
		EndDate:   data.contract.EndDate,
		Salary:    data.contract.Salary,
		Currency:  currency,
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}

	var benefitNames []string
	if len(data.benefits.BenefitIDs) > 0 {
		found, err := s.benefits.FindByIDs(ctx, data.benefits.BenefitIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(data.benefits.BenefitIDs) {
			return nil, fmt.Errorf("benefit: %w", apperror.ErrNotFound)
		}
		if err := s.contracts.ReplaceBenefits(ctx, contract, found); err != nil {
			return nil, err
		}
		for _, b := range found {
			benefitNames = append(benefitNames, b.Name)
		}
	}

	method := buildPaymentMethod(user.ID, data.payment)
	if err := s.payments.Create(ctx, method); err != nil {
		return nil, err
	}
	methodID := method.ID.String()
	if _, err := s.contract.Update(ctx, contract.ID.String(), UpdateContractInput{PaymentMethodID: &methodID}); err != nil {
		return nil, err
	}

	if err := s.deliverContract(user, profile, contract, benefitNames); err != nil {
		// The account already exists at this point, so a retry of the
		// wizard would only hit the uniqueness check. Clear the state and
		// report the delivery failure.
		s.clearState(ctx, wizardID)
		return nil, fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}

	s.clearState(ctx, wizardID)

	return s.users.FindByID(ctx, user.ID.String())
}

func (s *onboardingService) clearState(ctx context.Context, wizardID string) {
	if err := s.store.Delete(ctx, wizardID); err != nil {
		zap.L().Warn("failed to clear wizard state", zap.String("wizard_id", wizardID), zap.Error(err))
	}
}

func decodeWizardState(state map[string]json.RawMessage) (*wizardData, error) {
	var missing []string
	for _, step := range session.Steps {
		if _, ok := state[step]; !ok {
			missing = append(missing, step)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: incomplete wizard, missing steps %v", apperror.ErrBadRequest, missing)
	}

	var data wizardData
	steps := map[string]any{
		session.StepEmail:    &data.email,
		session.StepBasic:    &data.basic,
		session.StepContact:  &data.contact,
		session.StepContract: &data.contract,
		session.StepBenefits: &data.benefits,
		session.StepPayment:  &data.payment,
	}
	for step, dst := range steps {
		if err := json.Unmarshal(state[step], dst); err != nil {
			return nil, fmt.Errorf("corrupt wizard step %s: %w", step, err)
		}
	}

	return &data, nil
}

func buildPaymentMethod(userID uuid.UUID, input PaymentMethodInput) *model.PaymentMethod {
	method := &model.PaymentMethod{
		UserID:        userID,
		Kind:          model.PaymentKind(input.Kind),
		BankName:      input.BankName,
		IBAN:          input.IBAN,
		AccountNumber: input.AccountNumber,
		CardNumber:    input.CardNumber,
		CardHolder:    input.CardHolder,
		PayPalEmail:   input.PayPalEmail,
		WalletAddress: input.WalletAddress,
	}
	if input.Network != nil {
		network := model.CryptoNetwork(*input.Network)
		method.Network = &network
	}
	return method
}

// deliverContract renders the contract PDF into the file store and mails it
// to the new employee.
func (s *onboardingService) deliverContract(user *model.User, profile *model.Profile, contract *model.Contract, benefits []string) error {
	var buf bytes.Buffer
	err := pdfgen.RenderContract(&buf, pdfgen.ContractData{
		EmployeeName: profile.BasicInformation.FullName(),
		Email:        user.Email,
		ContractType: string(contract.Type),
		StartDate:    contract.StartDate,
		EndDate:      contract.EndDate,
		Salary:       contract.Salary,
		Currency:     contract.Currency,
		Benefits:     benefits,
	})
	if err != nil {
		return fmt.Errorf("failed to render contract pdf: %w", err)
	}

	path, err := s.files.Save(&buf, contractFolder, fmt.Sprintf("%s.pdf", contract.ID))
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Welcome aboard, %s! Your employment contract is attached.", profile.BasicInformation.FirstName)
	html := fmt.Sprintf("<p>Welcome aboard, %s!</p><p>Your employment contract is attached.</p>", profile.BasicInformation.FirstName)

	return s.mail.Send([]string{user.Email}, "Your employment contract", text, html, s.files.AbsPath(path))
}

func (s *onboardingService) ensureUnique(ctx context.Context, email, username string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("email %w", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return fmt.Errorf("username %w", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}
