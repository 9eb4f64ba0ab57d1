package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a billable company offering. GrossPrice is derived once from
// NetPrice and the linked tax rate; later price edits never recompute it.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	NetPrice   decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"net_price"`
	GrossPrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"gross_price,omitempty"`

	TaxRateID *uuid.UUID     `gorm:"type:uuid" json:"tax_rate_id,omitempty"`
	TaxRate   *IncomeTaxRate `gorm:"constraint:OnDelete:SET NULL" json:"tax_rate,omitempty"`

	Image *ServiceImage `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"image,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DeriveGrossPrice sets gross = net * (1 + rate), but only while gross is
// still unset.
func (s *Service) DeriveGrossPrice() {
	if s.GrossPrice != nil || s.TaxRate == nil {
		return
	}
	gross := s.NetPrice.Mul(decimal.NewFromInt(1).Add(s.TaxRate.Rate)).Round(2)
	s.GrossPrice = &gross
}

type ServiceImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"service_id"`
	FilePath  string    `gorm:"size:255;not null" json:"file_path"`
	Size      int64     `json:"size"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Format    string    `gorm:"size:10" json:"format"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (si *ServiceImage) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}
