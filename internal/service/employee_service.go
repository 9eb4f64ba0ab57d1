package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/apperror"
	"anoa.com/hrpayroll/pkg/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateEmployeeInput struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`

	ContractType string           `json:"contract_type" binding:"required,oneof=employment b2b mandate"`
	StartDate    *time.Time       `json:"start_date"`
	EndDate      *time.Time       `json:"end_date"`
	Salary       decimal.Decimal  `json:"salary" binding:"required"`
	Currency     string           `json:"currency" binding:"omitempty,len=3"`
	BenefitIDs   []string         `json:"benefit_ids" binding:"omitempty,dive,uuid"`
}

type UpdateEmployeeInput struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
	Role     *string `json:"role"`
}

type EmployeeService interface {
	// Create materializes a user together with its profile, contract and
	// benefit links in one pass. The related rows are constructed explicitly
	// here, once, at creation time.
	Create(ctx context.Context, input CreateEmployeeInput) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput) (*model.User, error)
	// Delete walks the manual cascade: nested profile records, the contract
	// with its benefit links, payment methods, and the profile image file —
	// unless the image is the shared default file.
	Delete(ctx context.Context, id string) error
}

type EmployeeOpts struct {
	DefaultRole      string
	DefaultImageName string
}

type employeeService struct {
	users     repository.UserRepository
	contracts repository.ContractRepository
	benefits  repository.BenefitRepository
	statuses  ContractService
	files     storage.FileStorage
	opts      EmployeeOpts
}

func NewEmployeeService(
	users repository.UserRepository,
	contracts repository.ContractRepository,
	benefits repository.BenefitRepository,
	contractService ContractService,
	files storage.FileStorage,
	opts EmployeeOpts,
) EmployeeService {
	if opts.DefaultRole == "" {
		opts.DefaultRole = "employee"
	}
	if opts.DefaultImageName == "" {
		opts.DefaultImageName = "default.jpg"
	}

	return &employeeService{
		users:     users,
		contracts: contracts,
		benefits:  benefits,
		statuses:  contractService,
		files:     files,
		opts:      opts,
	}
}

func (s *employeeService) Create(ctx context.Context, input CreateEmployeeInput) (*model.User, error) {
	role, err := s.users.FindRoleByName(ctx, s.opts.DefaultRole)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %s not found", s.opts.DefaultRole)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := role.ID
	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       &roleID,
		IsActive:     true,
	}

	profile := &model.Profile{
		BasicInformation: &model.BasicInformation{
			FirstName: input.FirstName,
			LastName:  input.LastName,
		},
		ContactInformation: &model.ContactInformation{},
		Image: &model.ProfileImage{
			FilePath: filepath.Join(profileImageFolder, s.opts.DefaultImageName),
		},
	}

	if err := s.users.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	contract := &model.Contract{
		UserID:    user.ID,
		Type:      model.ContractType(input.ContractType),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Salary:    input.Salary,
		Currency:  currency,
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}

	if len(input.BenefitIDs) > 0 {
		benefits, err := s.benefits.FindByIDs(ctx, input.BenefitIDs)
		if err != nil {
			return nil, err
		}
		if err := s.contracts.ReplaceBenefits(ctx, contract, benefits); err != nil {
			return nil, err
		}
	}

	// Derive status/time remaining on first save as on every later one.
	if _, err := s.statuses.Update(ctx, contract.ID.String(), UpdateContractInput{}); err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, user.ID.String())
}

func (s *employeeService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *employeeService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

func (s *employeeService) Update(ctx context.Context, id string, input UpdateEmployeeInput) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Role != nil {
		role, err := s.users.FindRoleByName(ctx, *input.Role)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("role: %w", apperror.ErrNotFound)
			}
			return nil, err
		}
		roleID := role.ID
		user.RoleID = &roleID
		user.Role = *role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	// The shared default image file must survive user deletion.
	if user.Profile != nil && user.Profile.Image != nil {
		image := user.Profile.Image
		if filepath.Base(image.FilePath) != s.opts.DefaultImageName {
			if err := s.files.Delete(image.FilePath); err != nil {
				return err
			}
		}
	}

	return s.users.DeleteCascade(ctx, user)
}
