package handlers

import (
	"prompt-insights/internal/dto"
	"prompt-insights/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GenerateReport godoc
// @Summary Generate an executive report
// @Description Writes an executive report over query rows; set save to keep a copy on the server
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.ReportRequest true "Question, SQL and rows"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /generate-report [post]
func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.reportService.Generate(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate report")
	}
	return c.JSON(resp)
}
