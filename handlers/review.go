package handlers

import (
	"net/http"

	"flupp/models"
	"flupp/services/review"
	"flupp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes review creation and listing.
type ReviewHandler struct {
	Service review.ReviewService
	Logger  *zap.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc review.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Service: svc, Logger: logger}
}

// CreateReview handles POST /api/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "Invalid request body")
		return
	}

	created, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListReviewsForBooking handles GET /api/reviews/for-booking/:id.
func (h *ReviewHandler) ListReviewsForBooking(c *gin.Context) {
	reviews, err := h.Service.ListForBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
