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

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]dto.CommentResponse, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, titleID, reviewID int64, authorID string, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, requester *Claims, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64, requester *Claims) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// checkReview resolves the review through its title path segment.
func (s *commentService) checkReview(ctx context.Context, titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.TitleID != titleID {
		return ErrReviewNotFound
	}
	return nil
}

func (s *commentService) getComment(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]dto.CommentResponse, int64, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, dto.FromModelToCommentResponse(&comments[i]))
	}
	return responses, total, nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.getComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, authorID string, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	// author and pub_date are server-assigned, never client input
	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, requester *Claims, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.getComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	isOwner := comment.AuthorID == requester.UserID
	if !permission.Can(permission.Role(requester.Role), permission.ActionWrite, permission.ResourceComment, isOwner) {
		return nil, ErrPermissionDenied
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64, requester *Claims) error {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	comment, err := s.getComment(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	isOwner := comment.AuthorID == requester.UserID
	if !permission.Can(permission.Role(requester.Role), permission.ActionWrite, permission.ResourceComment, isOwner) {
		return ErrPermissionDenied
	}

	return s.commentRepo.Delete(ctx, commentID)
}
