package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
	"github.com/nagmanijha/ResumeRev.ai/internal/repositories"
	"github.com/nagmanijha/ResumeRev.ai/internal/services"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
	analyzer     services.AnalyzerService
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository, analyzer services.AnalyzerService) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
	}
}

type resultSummary struct {
	ID         string   `json:"id"`
	Filename   string   `json:"filename"`
	Name       string   `json:"name"`
	Email      string   `json:"email,omitempty"`
	TotalScore float64  `json:"total_score"`
	Timestamp  string   `json:"timestamp"`
	Skills     []string `json:"skills"`
}

// HandleListResults handles GET /api/v1/results
func (h *ResultHandler) HandleListResults(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 20)
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	analyses, err := h.analysisRepo.FindAll(skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list analyses",
		})
	}

	summaries := make([]resultSummary, 0, len(analyses))
	for _, a := range analyses {
		skills := make([]string, 0, len(a.Skills))
		for _, s := range a.Skills {
			skills = append(skills, s.Name)
		}
		summaries = append(summaries, resultSummary{
			ID:         a.ID.String(),
			Filename:   a.Filename,
			Name:       a.Name,
			Email:      a.Email,
			TotalScore: a.TotalScore,
			Timestamp:  a.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			Skills:     skills,
		})
	}

	return c.JSON(fiber.Map{
		"results": summaries,
		"skip":    skip,
		"limit":   limit,
	})
}

// HandleGetResult handles GET /api/v1/results/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	var report models.AnalysisReport
	if err := json.Unmarshal(analysis.Details, &report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Stored analysis is corrupted",
		})
	}
	report.AnalysisID = analysis.ID.String()

	return c.JSON(report)
}

// HandleGetSimilar handles GET /api/v1/results/:id/similar
func (h *ResultHandler) HandleGetSimilar(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 20 {
		limit = 5
	}

	similar, err := h.analyzer.FindSimilar(c.Context(), analysisID, limit)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if similar == nil {
		similar = []models.SimilarCandidate{}
	}

	return c.JSON(fiber.Map{
		"analysis_id": analysisID.String(),
		"similar":     similar,
	})
}
