package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
	"github.com/nagmanijha/ResumeRev.ai/internal/repositories"
	"github.com/nagmanijha/ResumeRev.ai/internal/services"
)

type BatchHandler struct {
	batchRepo repositories.BatchRepository
	storage   services.StorageService
	worker    services.Worker
	maxFiles  int
}

func NewBatchHandler(
	batchRepo repositories.BatchRepository,
	storage services.StorageService,
	worker services.Worker,
	maxFiles int,
) *BatchHandler {
	return &BatchHandler{
		batchRepo: batchRepo,
		storage:   storage,
		worker:    worker,
		maxFiles:  maxFiles,
	}
}

// HandleCreateBatch handles POST /api/v1/batch. Files are stored on
// disk and the batch is queued; scoring happens in the worker.
func (h *BatchHandler) HandleCreateBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid multipart form",
		})
	}

	jobDescription := c.FormValue("job_description")
	if err := validateJobDescription(jobDescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one resume file is required",
		})
	}
	if len(files) > h.maxFiles {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "too many files in one batch",
		})
	}

	batch := &models.Batch{
		JobDescription: jobDescription,
		Status:         models.BatchQueued,
	}

	skipped := 0
	for _, fileHeader := range files {
		filename, path, err := h.storage.SaveFile(fileHeader)
		if err != nil {
			log.Printf("⚠️ Skipping %s: %v", fileHeader.Filename, err)
			skipped++
			continue
		}
		batch.Items = append(batch.Items, models.BatchItem{
			Filename: filename,
			FilePath: path,
			Status:   models.CandidateNeutral,
		})
	}

	if len(batch.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no resume file in the batch could be accepted",
		})
	}

	if err := h.batchRepo.Create(batch); err != nil {
		log.Printf("❌ Failed to create batch: %v", err)
		h.removeSavedFiles(batch.Items)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create batch",
		})
	}

	h.worker.EnqueueBatch(batch.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.BatchAcceptedResponse{
		BatchID:      batch.ID.String(),
		Status:       string(batch.Status),
		FileCount:    len(batch.Items),
		SkippedCount: skipped,
	})
}

// removeSavedFiles drops uploads that no batch row ended up referencing.
func (h *BatchHandler) removeSavedFiles(items []models.BatchItem) {
	for _, item := range items {
		if err := h.storage.DeleteFile(item.FilePath); err != nil {
			log.Printf("⚠️ Failed to remove orphaned upload %s: %v", item.FilePath, err)
		}
	}
}

// HandleGetBatch handles GET /api/v1/batch/:id
func (h *BatchHandler) HandleGetBatch(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID format",
		})
	}

	batch, err := h.batchRepo.FindByID(batchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	response := models.BatchResponse{
		BatchID: batch.ID.String(),
		Status:  string(batch.Status),
	}
	if batch.ErrorMessage != nil {
		response.ErrorMessage = *batch.ErrorMessage
	}

	if batch.Status == models.BatchCompleted {
		response.ProcessedCount = len(batch.Items)
		for _, item := range batch.Items {
			var missing []string
			if len(item.MissingSkills) > 0 {
				if err := json.Unmarshal(item.MissingSkills, &missing); err != nil {
					missing = nil
				}
			}
			response.Results = append(response.Results, models.BatchItemResult{
				ItemID:        item.ID.String(),
				Filename:      item.Filename,
				Rank:          item.Rank,
				TotalScore:    item.TotalScore,
				SkillScore:    item.SkillScore,
				ExpScore:      item.ExpScore,
				MissingSkills: missing,
				Status:        string(item.Status),
				ErrorMessage:  item.ErrorMessage,
			})
		}
	}

	return c.JSON(response)
}

type candidateStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateCandidateStatus handles
// PATCH /api/v1/batch/:id/candidates/:itemID
func (h *BatchHandler) HandleUpdateCandidateStatus(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID format",
		})
	}

	itemID, err := uuid.Parse(c.Params("itemID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	var req candidateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if !models.ValidCandidateStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be one of: neutral, approved, rejected",
		})
	}

	if err := h.batchRepo.UpdateItemStatus(batchID, itemID, models.CandidateStatus(req.Status)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found in batch",
		})
	}

	return c.JSON(fiber.Map{
		"item_id": itemID.String(),
		"status":  req.Status,
	})
}
