package service

import (
	"context"
	"errors"

	"moviehub/internal/dto"
	"moviehub/internal/models"
	"moviehub/internal/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.categoryRepo.Search(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error) {
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
