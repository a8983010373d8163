package service

import (
	"context"
	"errors"

	"moviehub/internal/dto"
	"moviehub/internal/models"
	"moviehub/internal/repository"

	"gorm.io/gorm"
)

var ErrSlugInUse = errors.New("slug already in use")

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*models.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.genreRepo.Search(ctx, search, page, pageSize)
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*models.Genre, error) {
	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	return genre, nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
