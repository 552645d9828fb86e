package handlers

import (
	"prompt-insights/internal/dto"
	"prompt-insights/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask a question
// @Description Interprets the question and stores it until the user confirms it
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.chatService.Chat(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to process question")
	}
	return c.JSON(resp)
}

// Confirm godoc
// @Summary Confirm or decline the pending question
// @Description A confirmed question is turned into SQL, executed and summarized
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ConfirmRequest true "Confirmation"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /confirm [post]
func (h *ChatHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.chatService.Confirm(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to answer question")
	}
	return c.JSON(resp)
}

// Refine godoc
// @Summary Refine a question
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.RefineRequest true "Original question and clarification"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /refine [post]
func (h *ChatHandler) Refine(c *fiber.Ctx) error {
	var req dto.RefineRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.chatService.Refine(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to refine question")
	}
	return c.JSON(resp)
}

// ApplyFix godoc
// @Summary Run or discard the suggested fix
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.FixRequest true "Decision"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/fix [post]
func (h *ChatHandler) ApplyFix(c *fiber.Ctx) error {
	var req dto.FixRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.chatService.ApplyFix(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to apply fix")
	}
	return c.JSON(resp)
}

// History godoc
// @Summary Conversation history
// @Tags chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} dto.HistoryMessage
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/history [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	history, err := h.chatService.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load history")
	}
	return c.JSON(history)
}
