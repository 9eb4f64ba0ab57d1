package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// EmploymentStatus is reference data seeded at startup (active / inactive).
type EmploymentStatus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:30;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ContractType string

const (
	ContractEmployment ContractType = "employment"
	ContractB2B        ContractType = "b2b"
	ContractMandate    ContractType = "mandate"
)

const (
	BenefitSalary      = "salary"
	BenefitSport       = "sport"
	BenefitHealth      = "health"
	BenefitInsurance   = "insurance"
	BenefitDevelopment = "development"
)

type Benefit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Category  string    `gorm:"size:30;not null" json:"category"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *Benefit) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Contract struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	Type      ContractType `gorm:"size:20;not null;default:'employment'" json:"type"`
	StartDate *time.Time   `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time   `gorm:"type:date" json:"end_date,omitempty"`

	Salary   decimal.Decimal `gorm:"type:decimal(12,2)" json:"salary"`
	Currency string          `gorm:"size:3;default:'EUR'" json:"currency"`

	StatusID *uint             `json:"status_id"`
	Status   *EmploymentStatus `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"status,omitempty"`

	PaymentMethodID *uuid.UUID     `gorm:"type:uuid" json:"payment_method_id,omitempty"`
	PaymentMethod   *PaymentMethod `gorm:"constraint:OnDelete:SET NULL" json:"payment_method,omitempty"`

	// Days between start and end date; nil when either date is missing.
	TimeRemaining *int `json:"time_remaining,omitempty"`

	TotalInvoices      int             `gorm:"default:0" json:"total_invoices"`
	TotalEarningsGross decimal.Decimal `gorm:"type:decimal(14,2)" json:"total_earnings_gross"`
	TotalEarningsNet   decimal.Decimal `gorm:"type:decimal(14,2)" json:"total_earnings_net"`

	Benefits []Benefit `gorm:"many2many:contract_benefits;constraint:OnDelete:CASCADE" json:"benefits,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:ContractID" json:"invoices,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Refresh recomputes TimeRemaining and the employment status from the
// contract dates. When either date is absent TimeRemaining is cleared and
// the status is left as-is.
func (c *Contract) Refresh(active, inactive *EmploymentStatus) {
	if c.StartDate == nil || c.EndDate == nil {
		c.TimeRemaining = nil
		return
	}

	days := int(c.EndDate.Sub(*c.StartDate).Hours() / 24)
	c.TimeRemaining = &days

	if days < 0 {
		c.StatusID = &inactive.ID
		c.Status = inactive
	} else {
		c.StatusID = &active.ID
		c.Status = active
	}
}
