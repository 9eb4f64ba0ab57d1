package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentKind string

const (
	PaymentBankTransfer PaymentKind = "bank_transfer"
	PaymentPrepaidCard  PaymentKind = "prepaid_card"
	PaymentPayPal       PaymentKind = "paypal"
	PaymentCrypto       PaymentKind = "crypto"
)

type CryptoNetwork string

const (
	NetworkBTC CryptoNetwork = "BTC"
	NetworkETH CryptoNetwork = "ETH"
)

// PaymentMethod is a single table holding every payout variant; Kind decides
// which of the optional columns are meaningful.
type PaymentMethod struct {
	ID     uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	Kind   PaymentKind `gorm:"size:20;not null" json:"kind"`

	// bank_transfer
	BankName      *string `gorm:"size:100" json:"bank_name,omitempty"`
	IBAN          *string `gorm:"size:34" json:"iban,omitempty"`
	AccountNumber *string `gorm:"size:34" json:"account_number,omitempty"`

	// prepaid_card
	CardNumber *string `gorm:"size:19" json:"card_number,omitempty"`
	CardHolder *string `gorm:"size:100" json:"card_holder,omitempty"`

	// paypal
	PayPalEmail *string `gorm:"size:100" json:"paypal_email,omitempty"`

	// crypto
	Network       *CryptoNetwork `gorm:"size:10" json:"network,omitempty"`
	WalletAddress *string        `gorm:"size:100" json:"wallet_address,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
