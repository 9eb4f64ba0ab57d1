package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeTaxRate stores the rate as a fraction (0.23 = 23%). Input is always
// taken as a percentage and converted through SetPercent.
type IncomeTaxRate struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Rate      decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"rate"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *IncomeTaxRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SetPercent stores percent/100 as the rate.
func (r *IncomeTaxRate) SetPercent(percent decimal.Decimal) {
	r.Rate = percent.Div(decimal.NewFromInt(100))
}

// Percent returns the rate as a percentage value.
func (r *IncomeTaxRate) Percent() decimal.Decimal {
	return r.Rate.Mul(decimal.NewFromInt(100))
}
