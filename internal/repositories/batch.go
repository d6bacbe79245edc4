package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

type BatchRepository interface {
	Create(batch *models.Batch) error
	FindByID(id uuid.UUID) (*models.Batch, error)
	UpdateStatus(id uuid.UUID, status models.BatchStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	UpdateItem(item *models.BatchItem) error
	UpdateItemStatus(batchID, itemID uuid.UUID, status models.CandidateStatus) error
	FindPendingBatches(limit int) ([]models.Batch, error)
}

type batchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(batch *models.Batch) error {
	if err := r.db.Create(batch).Error; err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

func (r *batchRepository) FindByID(id uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("batch_items.rank ASC")
		}).
		Where("id = ?", id).
		First(&batch).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("batch not found")
		}
		return nil, fmt.Errorf("failed to find batch: %w", err)
	}
	return &batch, nil
}

func (r *batchRepository) UpdateStatus(id uuid.UUID, status models.BatchStatus) error {
	result := r.db.Model(&models.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update batch status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("batch not found")
	}
	return nil
}

func (r *batchRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.BatchFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update batch error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("batch not found")
	}
	return nil
}

func (r *batchRepository) UpdateItem(item *models.BatchItem) error {
	item.UpdatedAt = time.Now()
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update batch item: %w", err)
	}
	return nil
}

func (r *batchRepository) UpdateItemStatus(batchID, itemID uuid.UUID, status models.CandidateStatus) error {
	result := r.db.Model(&models.BatchItem{}).
		Where("id = ? AND batch_id = ?", itemID, batchID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update candidate status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("batch item not found")
	}
	return nil
}

// FindPendingBatches returns queued batches oldest first, for the worker
// poller to pick up after restarts.
func (r *batchRepository) FindPendingBatches(limit int) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.
		Where("status = ?", models.BatchQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending batches: %w", err)
	}
	return batches, nil
}
