package repositories

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.Analysis, skillNames []string) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	FindAll(skip, limit int) ([]models.Analysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create implements AnalysisRepository. Skills are deduplicated by lowercase
// name and created on first use, in one transaction with the analysis row.
func (r *analysisRepository) Create(analysis *models.Analysis, skillNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range skillNames {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}

			var skill models.Skill
			err := tx.Where("name = ?", name).First(&skill).Error
			if err == gorm.ErrRecordNotFound {
				skill = models.Skill{Name: name}
				if err := tx.Create(&skill).Error; err != nil {
					return fmt.Errorf("failed to create skill %q: %w", name, err)
				}
			} else if err != nil {
				return fmt.Errorf("failed to look up skill %q: %w", name, err)
			}

			analysis.Skills = append(analysis.Skills, skill)
		}

		if err := tx.Create(analysis).Error; err != nil {
			return fmt.Errorf("failed to create analysis: %w", err)
		}
		return nil
	})
}

// FindByID implements AnalysisRepository.
func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Preload("Skills").Where("id = ?", id).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

// FindAll implements AnalysisRepository. Results are newest first.
func (r *analysisRepository) FindAll(skip, limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Preload("Skills").
		Order("timestamp DESC").
		Offset(skip).
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}
