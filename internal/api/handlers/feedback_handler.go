package handlers

import (
	"prompt-insights/internal/dto"
	"prompt-insights/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	logger          *zap.Logger
}

func NewFeedbackHandler(feedbackService *service.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// Submit godoc
// @Summary Rate an answer
// @Description Records a thumbs up or down; thumbs down land in the admin review queue
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} map[string]string
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.feedbackService.Submit(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save feedback")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
