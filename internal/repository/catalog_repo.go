package repository

import (
	"context"

	"anoa.com/hrpayroll/internal/model"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	Create(ctx context.Context, service *model.Service) error
	Save(ctx context.Context, service *model.Service) error
	FindByID(ctx context.Context, id string) (*model.Service, error)
	FindAll(ctx context.Context) ([]*model.Service, error)
	SaveImage(ctx context.Context, image *model.ServiceImage) error
	Delete(ctx context.Context, service *model.Service) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("TaxRate").
		Preload("Image")
}

func (r *catalogRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *catalogRepository) Save(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *catalogRepository) FindByID(ctx context.Context, id string) (*model.Service, error) {
	var service model.Service
	if err := r.preloaded(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		return nil, err
	}

	return &service, nil
}

func (r *catalogRepository) FindAll(ctx context.Context) ([]*model.Service, error) {
	var services []*model.Service
	if err := r.preloaded(ctx).Order("name").Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

func (r *catalogRepository) SaveImage(ctx context.Context, image *model.ServiceImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *catalogRepository) Delete(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if service.Image != nil {
			if err := tx.Delete(service.Image).Error; err != nil {
				return err
			}
		}
		return tx.Delete(service).Error
	})
}
