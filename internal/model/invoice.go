package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;index;not null" json:"contract_id"`
	Contract   *Contract `gorm:"constraint:OnDelete:CASCADE" json:"contract,omitempty"`

	Number string `gorm:"size:100;index" json:"number"`

	IssueDate      time.Time `gorm:"type:date;not null" json:"issue_date"`
	PaymentDueDate time.Time `gorm:"type:date" json:"payment_due_date"`

	GrossAmount decimal.Decimal  `gorm:"type:decimal(12,2)" json:"gross_amount"`
	NetAmount   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"net_amount,omitempty"`
	TaxAmount   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_amount,omitempty"`

	// Snapshot of the contract's payment method at issue time.
	PaymentMethodID *uuid.UUID     `gorm:"type:uuid" json:"payment_method_id,omitempty"`
	PaymentMethod   *PaymentMethod `gorm:"constraint:OnDelete:SET NULL" json:"payment_method,omitempty"`

	FilePath string `gorm:"size:255" json:"file_path,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// InvoiceNumber builds the invoice number from the buyer's username, the
// issue year and the contract's next sequence number.
// Format: {username}/{year}/{seq} (e.g. jdoe/2026/12).
func InvoiceNumber(username string, year int, seq int) string {
	return fmt.Sprintf("%s/%d/%d", username, year, seq)
}
