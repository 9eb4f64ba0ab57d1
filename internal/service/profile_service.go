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
	"anoa.com/hrpayroll/pkg/images"
	"anoa.com/hrpayroll/pkg/storage"
	"gorm.io/gorm"
)

const profileImageFolder = "profiles"

type UpdateProfileInput struct {
	FirstName   *string    `form:"first_name"`
	LastName    *string    `form:"last_name"`
	DateOfBirth *time.Time `form:"date_of_birth" time_format:"2006-01-02"`
	TaxID       *string    `form:"tax_id"`
	Phone       *string    `form:"phone" binding:"omitempty,phone"`
	Street      *string    `form:"street"`
	City        *string    `form:"city"`
	PostalCode  *string    `form:"postal_code"`
	Country     *string    `form:"country"`
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	Update(ctx context.Context, userID string, input UpdateProfileInput, image *ImageFile) (*model.User, error)
}

type profileService struct {
	users repository.UserRepository
	files storage.FileStorage

	defaultImageName string
}

func NewProfileService(users repository.UserRepository, files storage.FileStorage, defaultImageName string) ProfileService {
	if defaultImageName == "" {
		defaultImageName = "default.jpg"
	}
	return &profileService{
		users:            users,
		files:            files,
		defaultImageName: defaultImageName,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) Update(ctx context.Context, userID string, input UpdateProfileInput, image *ImageFile) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if user.Profile == nil {
		return nil, apperror.ErrNotFound
	}

	basic := user.Profile.BasicInformation
	if basic == nil {
		basic = &model.BasicInformation{ProfileID: user.Profile.UserID}
		user.Profile.BasicInformation = basic
	}
	if input.FirstName != nil {
		basic.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		basic.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		basic.DateOfBirth = input.DateOfBirth
	}
	if input.TaxID != nil {
		basic.TaxID = input.TaxID
	}
	if err := s.users.SaveBasicInformation(ctx, basic); err != nil {
		return nil, err
	}

	contact := user.Profile.ContactInformation
	if contact == nil {
		contact = &model.ContactInformation{ProfileID: user.Profile.UserID}
		user.Profile.ContactInformation = contact
	}
	if input.Phone != nil {
		contact.Phone = *input.Phone
	}
	if input.Street != nil {
		contact.Street = *input.Street
	}
	if input.City != nil {
		contact.City = *input.City
	}
	if input.PostalCode != nil {
		contact.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		contact.Country = *input.Country
	}
	if err := s.users.SaveContactInformation(ctx, contact); err != nil {
		return nil, err
	}

	if image != nil && image.Reader != nil {
		if err := s.attachImage(ctx, user, image); err != nil {
			return nil, err
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) attachImage(ctx context.Context, user *model.User, image *ImageFile) error {
	current := user.Profile.Image

	// Never delete the shared default file.
	if current != nil && filepath.Base(current.FilePath) != s.defaultImageName {
		if err := s.files.Delete(current.FilePath); err != nil {
			return err
		}
	}

	fileName := fmt.Sprintf("%s%s", user.ID, storageExt(image.FileName))
	path, err := s.files.Save(image.Reader, profileImageFolder, fileName)
	if err != nil {
		return err
	}

	meta, err := images.NormalizeProfile(s.files, path)
	if err != nil {
		return err
	}

	if current == nil {
		current = &model.ProfileImage{ProfileID: user.Profile.UserID}
		user.Profile.Image = current
	}
	current.FilePath = path
	current.Size = meta.Size
	current.Width = meta.Width
	current.Height = meta.Height
	current.Format = meta.Format

	return s.users.SaveProfileImage(ctx, current)
}
