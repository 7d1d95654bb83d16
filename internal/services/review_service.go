package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"nimko_store/internal/models"
	"nimko_store/internal/repository"
)

// Review validation rule, enforced here and nowhere else: rating is an
// integer in [1,5], name is at least 2 characters, comment is between 10
// and 500 characters.
const (
	minReviewNameLen    = 2
	minReviewCommentLen = 10
	maxReviewCommentLen = 500
)

type ReviewInput struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type ReviewService interface {
	SubmitReview(ctx context.Context, input ReviewInput) (*models.Review, error)
	GetReviewsForProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type reviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) SubmitReview(ctx context.Context, input ReviewInput) (*models.Review, error) {
	if err := validateReview(input); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:        generateReviewID(),
		ProductID: strings.TrimSpace(input.ProductID),
		Name:      strings.TrimSpace(input.Name),
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		Date:      time.Now(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, &PersistenceError{Op: "submit review", Err: err}
	}
	return review, nil
}

// GetReviewsForProduct returns all reviews for a product, newest first.
// Backend failure surfaces as an explicit error rather than a canned demo
// dataset.
func (s *reviewService) GetReviewsForProduct(ctx context.Context, productID string) ([]models.Review, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, &ValidationError{Field: "productId", Message: "is required"}
	}

	reviews, err := s.repo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, &PersistenceError{Op: "get reviews", Err: err}
	}
	return reviews, nil
}

// AverageRating is the arithmetic mean of the ratings, 0 for an empty list.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func validateReview(input ReviewInput) error {
	if strings.TrimSpace(input.ProductID) == "" {
		return &ValidationError{Field: "productId", Message: "is required"}
	}
	if input.Rating < 1 || input.Rating > 5 {
		return &ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	name := strings.TrimSpace(input.Name)
	if len(name) < minReviewNameLen {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("must be at least %d characters", minReviewNameLen)}
	}
	comment := strings.TrimSpace(input.Comment)
	if len(comment) < minReviewCommentLen {
		return &ValidationError{Field: "comment", Message: fmt.Sprintf("must be at least %d characters", minReviewCommentLen)}
	}
	if len(comment) > maxReviewCommentLen {
		return &ValidationError{Field: "comment", Message: fmt.Sprintf("must be at most %d characters", maxReviewCommentLen)}
	}
	return nil
}

func generateReviewID() string {
	return fmt.Sprintf("REV-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
