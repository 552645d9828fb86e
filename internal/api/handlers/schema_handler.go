package handlers

import (
	"context"
	"time"

	"prompt-insights/internal/dto"
	"prompt-insights/internal/schema"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SchemaManager interface {
	Refresh(ctx context.Context) (*schema.Snapshot, error)
	Info() (*schema.Info, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type SchemaHandler struct {
	schema SchemaManager
	db     Pinger
	logger *zap.Logger
}

func NewSchemaHandler(schema SchemaManager, db Pinger, logger *zap.Logger) *SchemaHandler {
	return &SchemaHandler{
		schema: schema,
		db:     db,
		logger: logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SchemaHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if err := h.db.Ping(c.UserContext()); err != nil {
		h.logger.Warn("Database ping failed", zap.Error(err))
		resp.Database = "unreachable"
	}
	return c.JSON(resp)
}

// Refresh godoc
// @Summary Refresh the schema cache
// @Description Re-reads table and column metadata and rewrites the cache file
// @Tags schema
// @Produce json
// @Success 200 {object} dto.SchemaInfoResponse
// @Failure 503 {object} map[string]string
// @Router /schema/refresh [post]
func (h *SchemaHandler) Refresh(c *fiber.Ctx) error {
	snap, err := h.schema.Refresh(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to refresh schema")
	}

	h.logger.Info("Schema refreshed", zap.Int("tables", snap.TableCount))
	return c.JSON(fiber.Map{
		"message":      "Schema refreshed successfully",
		"database":     snap.Database,
		"table_count":  snap.TableCount,
		"generated_at": snap.GeneratedAt.Format(time.RFC3339),
	})
}

// Info godoc
// @Summary Schema cache information
// @Tags schema
// @Produce json
// @Success 200 {object} dto.SchemaInfoResponse
// @Failure 404 {object} map[string]string
// @Router /schema/info [get]
func (h *SchemaHandler) Info(c *fiber.Ctx) error {
	info, err := h.schema.Info()
	if err != nil {
		return respondError(c, h.logger, err, "Failed to read schema info")
	}

	return c.JSON(dto.SchemaInfoResponse{
		Database:    info.Database,
		TableCount:  info.TableCount,
		GeneratedAt: info.GeneratedAt.Format(time.RFC3339),
		FileSize:    info.FileSize,
	})
}
