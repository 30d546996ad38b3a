package dto

import (
	"strconv"
	"strings"
	"time"

	"antiquefinder/internal/models"
)

// DefaultReviewRating is stored when a submission carries no usable
// rating tag. A deliberate UX default, not a validation gap.
const DefaultReviewRating = 5

// CreateReviewDTO used for POST /api/shops/:shop_id/reviews.
// Rating arrives as the raw tag string from the picker.
type CreateReviewDTO struct {
	UserName string `json:"user_name"`
	Rating   string `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// ParseRating resolves the rating tag: absent or unparsable falls back
// to DefaultReviewRating. Out-of-range integers pass through untouched.
func (d CreateReviewDTO) ParseRating() int {
	tag := strings.TrimSpace(d.Rating)
	if tag == "" {
		return DefaultReviewRating
	}
	parsed, err := strconv.Atoi(tag)
	if err != nil {
		return DefaultReviewRating
	}
	return parsed
}

// ReviewResponse DTO for responses
type ReviewResponse struct {
	ID         int64     `json:"id"`
	ShopID     int64     `json:"shop_id"`
	UserName   string    `json:"user_name"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	ReviewDate time.Time `json:"review_date"`
}

// SubmitReviewResponse returns everything the detail view needs to
// re-render without a second fetch: the stored review, the refreshed
// newest-first list and the recomputed aggregate.
type SubmitReviewResponse struct {
	Review  ReviewResponse   `json:"review"`
	Rating  float64          `json:"rating"`
	Reviews []ReviewResponse `json:"reviews"`
}

func FromModelToReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ShopID:     r.ShopID,
		UserName:   r.UserName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewDate: r.ReviewDate,
	}
}

func FromModelToReviewResponses(reviews []models.Review) []ReviewResponse {
	resp := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, FromModelToReviewResponse(r))
	}
	return resp
}
