package bootstrap

import (
	"anoa.com/hrpayroll/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Profile{},
		&model.BasicInformation{},
		&model.ContactInformation{},
		&model.ProfileImage{},
		&model.EmploymentStatus{},
		&model.Benefit{},
		&model.Contract{},
		&model.IncomeTaxRate{},
		&model.Invoice{},
		&model.PaymentMethod{},
		&model.Service{},
		&model.ServiceImage{},
		&model.OneTimePassword{},
		&model.ContactMessage{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: "admin", Description: "Administrator"},
		{Name: "employee", Description: "Employee"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedEmploymentStatuses inserts the two reference rows contract derivation
// depends on.
func SeedEmploymentStatuses(db *gorm.DB) error {
	for _, name := range []string{model.StatusActive, model.StatusInactive} {
		var count int64
		if err := db.Model(&model.EmploymentStatus{}).
			Where("name = ?", name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&model.EmploymentStatus{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedBenefits(db *gorm.DB) error {
	defaults := []model.Benefit{
		{Name: "Base salary", Category: model.BenefitSalary},
		{Name: "Gym membership", Category: model.BenefitSport},
		{Name: "Private healthcare", Category: model.BenefitHealth},
		{Name: "Life insurance", Category: model.BenefitInsurance},
		{Name: "Training budget", Category: model.BenefitDevelopment},
	}

	for _, benefit := range defaults {
		var count int64
		if err := db.Model(&model.Benefit{}).
			Where("name = ?", benefit.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&benefit).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedTaxRates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.IncomeTaxRate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rate := model.IncomeTaxRate{Name: "Standard"}
	rate.SetPercent(decimal.NewFromInt(23))
	return db.Create(&rate).Error
}

// SeedAdminUser creates a bootstrap administrator when none exists. Intended
// for development and first deployment; credentials should be rotated
// immediately.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var adminRole model.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hashedPassword),
		RoleID:       &adminRole.ID,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	profile := model.Profile{
		UserID: admin.ID,
		BasicInformation: &model.BasicInformation{
			FirstName: "System",
			LastName:  "Administrator",
		},
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}

	zap.L().Info("admin user seeded", zap.String("email", email))
	return nil
}
