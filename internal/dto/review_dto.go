package dto

import (
	"time"

	"moviehub/internal/models"
)

// CreateReviewDTO for posting a review to a title
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO for partial review updates
type UpdateReviewDTO struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse embeds the full title representation
type ReviewResponse struct {
	ID      int64         `json:"id"`
	Text    string        `json:"text"`
	Author  string        `json:"author"`
	Score   int           `json:"score"`
	Title   TitleResponse `json:"title"`
	PubDate time.Time     `json:"pub_date"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO.
// The title is passed separately so its computed rating is present.
func FromModelToReviewResponse(review *models.Review, title *models.Title) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  review.Author.Username,
		Score:   review.Score,
		Title:   FromModelToTitleResponse(title),
		PubDate: review.PubDate,
	}
}
