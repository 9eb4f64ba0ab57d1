package repository

import (
	"context"

	"anoa.com/hrpayroll/internal/model"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Save(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id string) (*model.Invoice, error)
	FindByContractID(ctx context.Context, contractID string) ([]*model.Invoice, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) Save(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).
		Preload("PaymentMethod").
		Where("id = ?", id).
		First(&invoice).Error; err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) FindByContractID(ctx context.Context, contractID string) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	if err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("issue_date DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}

	return invoices, nil
}
