package dto

import "moviehub/internal/models"

// CreateTitleDTO used for POST /api/v1/titles. Genres and category are
// addressed by slug; the service resolves them and rejects unknown slugs.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=140"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"`
	Category    string   `json:"category" binding:"required"`
}

// UpdateTitleDTO used for PUT/PATCH /api/v1/titles/:title_id (partial
// updates allowed). A supplied genre list or category slug replaces the
// whole association.
type UpdateTitleDTO struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,max=140"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Genre       *[]string `json:"genre,omitempty"`
	Category    *string   `json:"category,omitempty"`
}

// TitleResponse embeds the resolved category and genres plus the computed
// average rating (null until the first review lands).
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func FromModelToTitleResponse(t *models.Title) TitleResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, FromModelToGenreResponse(g))
	}

	var category *CategoryResponse
	if t.Category != nil {
		c := FromModelToCategoryResponse(*t.Category)
		category = &c
	}

	return TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       genres,
		Category:    category,
	}
}
