package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"bizledger/internal/domain"
	applog "bizledger/internal/log"
	"bizledger/internal/services"
)

type ReportHandler struct {
	Summaries *services.SummaryService
}

// GET /api/v1/businesses/:id/report?period=week
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	p := domain.ParsePeriod(c.Query("period"))

	sum, err := h.Summaries.Report(c.UserContext(), id, p)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "business not found"})
	}
	if err != nil {
		applog.Error(c, "report.fail", err, map[string]any{"business_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not build report"})
	}
	return c.JSON(fiber.Map{
		"summary": sum,
		"tips":    services.Insights(sum),
		"text":    services.SummaryText(sum, nil),
	})
}
