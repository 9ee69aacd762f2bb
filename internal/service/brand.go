package service

import (
	"context"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

type brandService struct {
	brandRepo repository.BrandRepository
}

func NewBrandService(brandRepo repository.BrandRepository) BrandService {
	return &brandService{brandRepo: brandRepo}
}

func (s *brandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	logger.EnterMethod("brandService.ListBrands")
	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		return nil, exitWithError("brandService.ListBrands", translateStoreError(err))
	}
	logger.ExitMethod("brandService.ListBrands", "count", len(brands))
	return brands, nil
}

func (s *brandService) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	logger.EnterMethod("brandService.GetBrand", "brandID", id)
	if err := checkID(id); err != nil {
		return nil, exitWithError("brandService.GetBrand", err, "brandID", id)
	}
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, exitWithError("brandService.GetBrand", translateStoreError(err), "brandID", id)
	}
	if brand == nil {
		return nil, exitWithError("brandService.GetBrand", domain.NotFound("brand %d not found", id), "brandID", id)
	}
	logger.ExitMethod("brandService.GetBrand", "brandID", id)
	return brand, nil
}

type carFeatureService struct {
	featureRepo repository.CarFeatureRepository
}

func NewCarFeatureService(featureRepo repository.CarFeatureRepository) CarFeatureService {
	return &carFeatureService{featureRepo: featureRepo}
}

func (s *carFeatureService) ListCarFeatures(ctx context.Context) ([]domain.CarFeature, error) {
	features, err := s.featureRepo.List(ctx)
	if err != nil {
		return nil, exitWithError("carFeatureService.ListCarFeatures", translateStoreError(err))
	}
	return features, nil
}

func (s *carFeatureService) GetCarFeature(ctx context.Context, id int64) (*domain.CarFeature, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	feature, err := s.featureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, exitWithError("carFeatureService.GetCarFeature", translateStoreError(err), "featureID", id)
	}
	if feature == nil {
		return nil, domain.NotFound("car feature %d not found", id)
	}
	return feature, nil
}
