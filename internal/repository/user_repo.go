package repository

import (
	"context"

	"anoa.com/hrpayroll/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User, profile *model.Profile) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	Update(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context) ([]*model.User, error)
	SaveProfileImage(ctx context.Context, image *model.ProfileImage) error
	SaveBasicInformation(ctx context.Context, info *model.BasicInformation) error
	SaveContactInformation(ctx context.Context, info *model.ContactInformation) error
	// DeleteCascade removes the user and every owned record in one
	// transaction: profile, basic and contact information, profile image row,
	// contract with its benefit links and invoices, payment methods and OTPs.
	// File removal is the caller's responsibility.
	DeleteCascade(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User, profile *model.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if profile != nil {
			profile.UserID = user.ID
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Role").
		Preload("Profile").
		Preload("Profile.BasicInformation").
		Preload("Profile.ContactInformation").
		Preload("Profile.Image").
		Preload("Contract").
		Preload("Contract.Status").
		Preload("Contract.Benefits").
		Preload("Contract.PaymentMethod")
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.preloaded(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.preloaded(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.preloaded(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.preloaded(ctx).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) SaveProfileImage(ctx context.Context, image *model.ProfileImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *userRepository) SaveBasicInformation(ctx context.Context, info *model.BasicInformation) error {
	return r.db.WithContext(ctx).Save(info).Error
}

func (r *userRepository) SaveContactInformation(ctx context.Context, info *model.ContactInformation) error {
	return r.db.WithContext(ctx).Save(info).Error
}

func (r *userRepository) DeleteCascade(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.Profile != nil {
			profileID := user.Profile.UserID
			if err := tx.Where("profile_id = ?", profileID).Delete(&model.BasicInformation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profileID).Delete(&model.ContactInformation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profileID).Delete(&model.ProfileImage{}).Error; err != nil {
				return err
			}
		}

		if user.Contract != nil {
			if err := tx.Model(user.Contract).Association("Benefits").Clear(); err != nil {
				return err
			}
			if err := tx.Where("contract_id = ?", user.Contract.ID).Delete(&model.Invoice{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(user.Contract).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&model.PaymentMethod{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.OneTimePassword{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Profile{}).Error; err != nil {
			return err
		}

		return tx.Delete(user).Error
	})
}
