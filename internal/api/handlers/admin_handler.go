package handlers

import (
	"prompt-insights/internal/dto"
	"prompt-insights/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminService    *service.AdminService
	feedbackService *service.FeedbackService
	logger          *zap.Logger
}

func NewAdminHandler(adminService *service.AdminService, feedbackService *service.FeedbackService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// Login godoc
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Admin password"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.adminService.Login(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Login failed")
	}
	return c.JSON(resp)
}

// ListFeedback godoc
// @Summary List all feedback
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.FeedbackResponse
// @Failure 401 {object} map[string]string
// @Router /admin/feedback [get]
func (h *AdminHandler) ListFeedback(c *fiber.Ctx) error {
	items, err := h.feedbackService.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list feedback")
	}
	return c.JSON(items)
}

// PendingFeedback godoc
// @Summary List thumbs-down feedback awaiting review
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.FeedbackResponse
// @Failure 401 {object} map[string]string
// @Router /admin/feedback/pending [get]
func (h *AdminHandler) PendingFeedback(c *fiber.Ctx) error {
	items, err := h.feedbackService.ListPending(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list pending feedback")
	}
	return c.JSON(items)
}

// CreateFeedback godoc
// @Summary Add feedback by hand
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} map[string]string
// @Router /admin/feedback [post]
func (h *AdminHandler) CreateFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.feedbackService.CreateAsAdmin(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create feedback")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateFeedback godoc
// @Summary Edit feedback
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Feedback ID"
// @Param request body dto.FeedbackUpdateRequest true "Fields to change"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/feedback/{id} [put]
func (h *AdminHandler) UpdateFeedback(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidID(c)
	}

	var req dto.FeedbackUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.feedbackService.Update(c.UserContext(), int64(id), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update feedback")
	}
	return c.JSON(resp)
}

// DeleteFeedback godoc
// @Summary Delete feedback
// @Tags admin
// @Security Bearer
// @Param id path int true "Feedback ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/feedback/{id} [delete]
func (h *AdminHandler) DeleteFeedback(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidID(c)
	}

	if err := h.feedbackService.Delete(c.UserContext(), int64(id)); err != nil {
		return respondError(c, h.logger, err, "Failed to delete feedback")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ApproveFeedback godoc
// @Summary Approve feedback into training data
// @Description Inserts a training example and marks the feedback approved in one transaction
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Feedback ID"
// @Success 200 {object} dto.TrainingResponse
// @Failure 404 {object} map[string]string
// @Router /admin/feedback/{id}/approve [post]
func (h *AdminHandler) ApproveFeedback(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidID(c)
	}

	resp, err := h.feedbackService.Approve(c.UserContext(), int64(id), adminName(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to approve feedback")
	}
	return c.JSON(resp)
}

// RejectFeedback godoc
// @Summary Reject feedback
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Feedback ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/feedback/{id}/reject [post]
func (h *AdminHandler) RejectFeedback(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidID(c)
	}

	if err := h.feedbackService.Reject(c.UserContext(), int64(id)); err != nil {
		return respondError(c, h.logger, err, "Failed to reject feedback")
	}
	return c.JSON(fiber.Map{
		"message": "Feedback rejected",
	})
}

// ListTraining godoc
// @Summary List training examples
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TrainingResponse
// @Router /admin/training [get]
func (h *AdminHandler) ListTraining(c *fiber.Ctx) error {
	items, err := h.feedbackService.Training(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list training data")
	}
	return c.JSON(items)
}

// AddTraining godoc
// @Summary Add a training example
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.TrainingRequest true "Question and answer"
// @Success 201 {object} dto.TrainingResponse
// @Failure 400 {object} map[string]string
// @Router /admin/training [post]
func (h *AdminHandler) AddTraining(c *fiber.Ctx) error {
	var req dto.TrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.feedbackService.AddTraining(c.UserContext(), &req, adminName(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to add training example")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func adminName(c *fiber.Ctx) string {
	if name, ok := c.Locals("admin").(string); ok && name != "" {
		return name
	}
	return service.AdminSubject
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid id",
	})
}
