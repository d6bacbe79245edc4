package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/nagmanijha/ResumeRev.ai/internal/services"
)

type ReportHandler struct {
	analyzer services.AnalyzerService
	reports  services.ReportService
}

func NewReportHandler(analyzer services.AnalyzerService, reports services.ReportService) *ReportHandler {
	return &ReportHandler{
		analyzer: analyzer,
		reports:  reports,
	}
}

// HandleReport handles POST /api/v1/report. Same inputs as /analyze,
// but the response is a rendered PDF instead of JSON.
func (h *ReportHandler) HandleReport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	jobDescription := c.FormValue("job_description")
	if err := validateJobDescription(jobDescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	report, err := h.analyzer.Analyze(c.Context(), content, fileHeader.Filename, jobDescription)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	pdfBytes, err := h.reports.GeneratePDF(report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate PDF report",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+services.ReportFilename(report)+`"`)
	return c.Send(pdfBytes)
}
