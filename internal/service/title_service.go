package service

import (
	"context"
	"errors"
	"time"

	"moviehub/internal/dto"
	"moviehub/internal/models"
	"moviehub/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrTitleNotFound    = errors.New("title not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrYearOutOfRange   = errors.New("year out of range")
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req dto.CreateTitleDTO) (*models.Title, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	genreRepo    repository.GenreRepository
	categoryRepo repository.CategoryRepository
	minYear      int
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	genreRepo repository.GenreRepository,
	categoryRepo repository.CategoryRepository,
	minYear int,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		genreRepo:    genreRepo,
		categoryRepo: categoryRepo,
		minYear:      minYear,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, page, pageSize)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return title, nil
}

func (s *titleService) validateYear(year int) error {
	if year < s.minYear || year > time.Now().Year() {
		return ErrYearOutOfRange
	}
	return nil
}

// resolveGenres maps slugs to genres, rejecting unknown slugs. The same
// strict policy applies on create and update.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	seen := make(map[string]bool, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}

	genres, err := s.genreRepo.FindBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*models.Title, error) {
	if err := s.validateYear(req.Year); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Genres:      genres,
	}
	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	// reload with associations and the computed rating
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := s.validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	var genres []models.Genre
	if req.Genre != nil {
		genres, err = s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
	}

	// associations are detached before Save; ReplaceGenres handles them
	title.Genres = nil
	title.Category = nil
	if err := s.titleRepo.Save(ctx, title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}
