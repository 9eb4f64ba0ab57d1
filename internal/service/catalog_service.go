package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/apperror"
	"anoa.com/hrpayroll/pkg/images"
	"anoa.com/hrpayroll/pkg/storage"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const serviceImageFolder = "services"

type ImageFile struct {
	Reader   io.Reader
	FileName string
}

type CreateServiceInput struct {
	Name        string          `form:"name" binding:"required,max=150"`
	Description string          `form:"description"`
	NetPrice    decimal.Decimal `form:"net_price" binding:"required"`
	TaxRateID   string          `form:"tax_rate_id" binding:"required,uuid"`
}

type UpdateServiceInput struct {
	Name        *string          `form:"name" binding:"omitempty,max=150"`
	Description *string          `form:"description"`
	NetPrice    *decimal.Decimal `form:"net_price"`
	TaxRateID   *string          `form:"tax_rate_id" binding:"omitempty,uuid"`
}

type CatalogService interface {
	Create(ctx context.Context, input CreateServiceInput, image *ImageFile) (*model.Service, error)
	Update(ctx context.Context, id string, input UpdateServiceInput, image *ImageFile) (*model.Service, error)
	Get(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]*model.Service, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	catalog  repository.CatalogRepository
	taxRates repository.TaxRateRepository
	files    storage.FileStorage
}

func NewCatalogService(catalog repository.CatalogRepository, taxRates repository.TaxRateRepository, files storage.FileStorage) CatalogService {
	return &catalogService{
		catalog:  catalog,
		taxRates: taxRates,
		files:    files,
	}
}

func (s *catalogService) Create(ctx context.Context, input CreateServiceInput, image *ImageFile) (*model.Service, error) {
	taxRate, err := s.taxRates.FindByID(ctx, input.TaxRateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tax rate: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	service := &model.Service{
		Name:        input.Name,
		Description: input.Description,
		NetPrice:    input.NetPrice,
		TaxRateID:   &taxRate.ID,
		TaxRate:     taxRate,
	}
	service.DeriveGrossPrice()

	if err := s.catalog.Create(ctx, service); err != nil {
		return nil, err
	}

	if image != nil && image.Reader != nil {
		if err := s.attachImage(ctx, service, image); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (s *catalogService) Update(ctx context.Context, id string, input UpdateServiceInput, image *ImageFile) (*model.Service, error) {
	service, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.NetPrice != nil {
		// Gross price is a one-time derivation; net price edits leave it be.
		service.NetPrice = *input.NetPrice
	}
	if input.TaxRateID != nil {
		taxRate, err := s.taxRates.FindByID(ctx, *input.TaxRateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("tax rate: %w", apperror.ErrNotFound)
			}
			return nil, err
		}
		service.TaxRateID = &taxRate.ID
		service.TaxRate = taxRate
	}

	service.DeriveGrossPrice()

	if err := s.catalog.Save(ctx, service); err != nil {
		return nil, err
	}

	if image != nil && image.Reader != nil {
		if err := s.attachImage(ctx, service, image); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*model.Service, error) {
	service, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return service, nil
}

func (s *catalogService) List(ctx context.Context) ([]*model.Service, error) {
	return s.catalog.FindAll(ctx)
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	service, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if service.Image != nil {
		if err := s.files.Delete(service.Image.FilePath); err != nil {
			return err
		}
	}

	return s.catalog.Delete(ctx, service)
}

func (s *catalogService) attachImage(ctx context.Context, service *model.Service, image *ImageFile) error {
	if service.Image != nil {
		if err := s.files.Delete(service.Image.FilePath); err != nil {
			return err
		}
	}

	fileName := fmt.Sprintf("%s%s", service.ID, storageExt(image.FileName))
	path, err := s.files.Save(image.Reader, serviceImageFolder, fileName)
	if err != nil {
		return err
	}

	meta, err := images.NormalizeService(s.files, path)
	if err != nil {
		return err
	}

	if service.Image == nil {
		service.Image = &model.ServiceImage{ServiceID: service.ID}
	}
	service.Image.FilePath = path
	service.Image.Size = meta.Size
	service.Image.Width = meta.Width
	service.Image.Height = meta.Height
	service.Image.Format = meta.Format

	return s.catalog.SaveImage(ctx, service.Image)
}
