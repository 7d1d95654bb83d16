package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"nimko_store/internal/services"
)

type ReviewHandler struct {
	reviews services.ReviewService
}

func NewReviewHandler(reviews services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "productId is required"})
		return
	}

	reviews, err := h.reviews.GetReviewsForProduct(c.Request.Context(), productID)
	if err != nil {
		log.Printf("Failed to get reviews for %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Reviews are temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"reviews":       reviews,
		"totalReviews":  len(reviews),
		"averageRating": services.AverageRating(reviews),
	})
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var input services.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid review payload"})
		return
	}

	review, err := h.reviews.SubmitReview(c.Request.Context(), input)
	if err != nil {
		status, msg := errorReply(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Failed to submit review: %v", err)
		}
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review submitted successfully",
		"review":  review,
	})
}
