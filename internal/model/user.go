package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       *uint     `json:"role_id"`
	Role         Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	IsActive     bool      `gorm:"default:false" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Contract     *Contract `gorm:"foreignKey:UserID" json:"contract,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Profile struct {
	UserID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"user_id"`
	BasicInformation   *BasicInformation   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"basic_information,omitempty"`
	ContactInformation *ContactInformation `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"contact_information,omitempty"`
	Image              *ProfileImage       `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"image,omitempty"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

type BasicInformation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"profile_id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	TaxID       *string    `gorm:"size:50" json:"tax_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (b *BasicInformation) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// FullName joins first and last name for invoice file names and PDFs.
func (b *BasicInformation) FullName() string {
	return b.FirstName + " " + b.LastName
}

type ContactInformation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"profile_id"`
	Phone      string    `gorm:"size:30" json:"phone"`
	Street     string    `gorm:"size:150" json:"street"`
	City       string    `gorm:"size:100" json:"city"`
	PostalCode string    `gorm:"size:20" json:"postal_code"`
	Country    string    `gorm:"size:100" json:"country"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ci *ContactInformation) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

type ProfileImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"profile_id"`
	FilePath  string    `gorm:"size:255;not null" json:"file_path"`
	Size      int64     `json:"size"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Format    string    `gorm:"size:10" json:"format"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (pi *ProfileImage) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}
