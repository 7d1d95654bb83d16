package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimko_store/internal/models"
	"nimko_store/internal/repository"
)

func validReview() ReviewInput {
	return ReviewInput{
		ProductID: "1",
		Name:      "Ayesha",
		Rating:    5,
		Comment:   "Crunchy and fresh, arrived well packed.",
	}
}

func TestSubmitReviewAssignsIDAndDate(t *testing.T) {
	repo := repository.NewMemoryReviewRepository()
	svc := NewReviewService(repo)

	review, err := svc.SubmitReview(context.Background(), validReview())
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.False(t, review.Date.IsZero())
	assert.Equal(t, "1", review.ProductID)
}

func TestSubmitReviewRejectsOutOfRangeRating(t *testing.T) {
	repo := repository.NewMemoryReviewRepository()
	svc := NewReviewService(repo)

	for _, rating := range []int{-1, 0, 6, 100} {
		input := validReview()
		input.Rating = rating

		_, err := svc.SubmitReview(context.Background(), input)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation, "rating %d should be rejected", rating)
	}

	// No write happened for any rejected submission
	assert.Equal(t, 0, repo.Count())
}

func TestSubmitReviewValidationThresholds(t *testing.T) {
	repo := repository.NewMemoryReviewRepository()
	svc := NewReviewService(repo)

	tests := []struct {
		name  string
		mut   func(*ReviewInput)
		valid bool
	}{
		{"single char name", func(in *ReviewInput) { in.Name = "A" }, false},
		{"two char name", func(in *ReviewInput) { in.Name = "Al" }, true},
		{"short comment", func(in *ReviewInput) { in.Comment = "too short" }, false},
		{"ten char comment", func(in *ReviewInput) { in.Comment = "just right" }, true},
		{"overlong comment", func(in *ReviewInput) { in.Comment = strings.Repeat("x", 501) }, false},
		{"max length comment", func(in *ReviewInput) { in.Comment = strings.Repeat("x", 500) }, true},
		{"missing product", func(in *ReviewInput) { in.ProductID = "" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validReview()
			tc.mut(&input)
			_, err := svc.SubmitReview(context.Background(), input)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				var validation *ValidationError
				assert.ErrorAs(t, err, &validation)
			}
		})
	}
}

func TestGetReviewsNewestFirst(t *testing.T) {
	repo := repository.NewMemoryReviewRepository()
	svc := NewReviewService(repo)

	for _, name := range []string{"First Reviewer", "Second Reviewer", "Third Reviewer"} {
		input := validReview()
		input.Name = name
		_, err := svc.SubmitReview(context.Background(), input)
		require.NoError(t, err)
	}

	reviews, err := svc.GetReviewsForProduct(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	for i := 1; i < len(reviews); i++ {
		assert.False(t, reviews[i].Date.After(reviews[i-1].Date))
	}
}

func TestGetReviewsBackendFailureIsExplicit(t *testing.T) {
	repo := repository.NewMemoryReviewRepository()
	repo.FailReads = true
	svc := NewReviewService(repo)

	_, err := svc.GetReviewsForProduct(context.Background(), "1")
	var persistence *PersistenceError
	assert.ErrorAs(t, err, &persistence)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))

	reviews := []models.Review{
		{Rating: 5},
		{Rating: 4},
		{Rating: 3},
	}
	assert.InDelta(t, 4.0, AverageRating(reviews), 1e-9)

	assert.InDelta(t, 4.5, AverageRating([]models.Review{{Rating: 4}, {Rating: 5}}), 1e-9)
}
