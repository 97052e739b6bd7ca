package http

import (
	"net/http"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/service"
	"github.com/gin-gonic/gin"
)

// ReviewHandlers contains HTTP handlers for review endpoints
type ReviewHandlers struct {
	reviews *service.ReviewService
	auth    *service.AuthService
}

// NewReviewHandlers creates new review handlers
func NewReviewHandlers(reviews *service.ReviewService, auth *service.AuthService) *ReviewHandlers {
	return &ReviewHandlers{reviews: reviews, auth: auth}
}

// ReviewRequest represents a review submission
type ReviewRequest struct {
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	ReviewText string `json:"review_text" binding:"required"`
}

// AddReview attaches a review to a book. Reviews record the full user, so
// the claims are resolved to the identity record first.
func (h *ReviewHandlers) AddReview(c *gin.Context) {
	claims, ok := tokenClaims(c)
	if !ok {
		abortWithError(c, core.ErrMissingToken)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), claims)
	if err != nil {
		abortWithError(c, err)
		return
	}

	review, err := h.reviews.AddReview(c.Request.Context(), user, c.Param("uid"), req.Rating, req.ReviewText)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
