package service

import (
	"context"
	"errors"

	"moviehub/internal/dto"
	"moviehub/internal/models"
	"moviehub/internal/permission"
	"moviehub/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("only one review allowed")
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]dto.ReviewResponse, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, titleID int64, authorID string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, titleID, reviewID int64, requester *Claims, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, titleID, reviewID int64, requester *Claims) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) getTitle(ctx context.Context, titleID int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return title, nil
}

// getReview resolves a review within its title; a review id that exists
// under a different title is still a 404.
func (s *reviewService) getReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]dto.ReviewResponse, int64, error) {
	title, err := s.getTitle(ctx, titleID)
	if err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, dto.FromModelToReviewResponse(&reviews[i], title))
	}
	return responses, total, nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	title, err := s.getTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}
	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToReviewResponse(review, title)
	return &resp, nil
}

func (s *reviewService) Create(ctx context.Context, titleID int64, authorID string, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if _, err := s.getTitle(ctx, titleID); err != nil {
		return nil, err
	}

	// pre-check for a friendly error; the unique index still decides
	// under concurrency
	if _, err := s.reviewRepo.GetByTitleAndAuthor(ctx, titleID, authorID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	// reload the author association and the title's fresh rating
	review, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	title, err := s.getTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToReviewResponse(review, title)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, requester *Claims, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	isOwner := review.AuthorID == requester.UserID
	if !permission.Can(permission.Role(requester.Role), permission.ActionWrite, permission.ResourceReview, isOwner) {
		return nil, ErrPermissionDenied
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	title, err := s.getTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToReviewResponse(review, title)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64, requester *Claims) error {
	review, err := s.getReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	isOwner := review.AuthorID == requester.UserID
	if !permission.Can(permission.Role(requester.Role), permission.ActionWrite, permission.ResourceReview, isOwner) {
		return ErrPermissionDenied
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}
