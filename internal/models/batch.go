package models

import (
	"time"

	"github.com/google/uuid"
)

type BatchStatus string

const (
	BatchQueued     BatchStatus = "queued"
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
)

// CandidateStatus is the recruiter decision on a ranked batch item.
type CandidateStatus string

const (
	CandidateNeutral  CandidateStatus = "neutral"
	CandidateApproved CandidateStatus = "approved"
	CandidateRejected CandidateStatus = "rejected"
)

func ValidCandidateStatus(s string) bool {
	switch CandidateStatus(s) {
	case CandidateNeutral, CandidateApproved, CandidateRejected:
		return true
	}
	return false
}

// Batch is one recruiter-mode ranking job: many resumes against one job
// description, processed asynchronously.
type Batch struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobDescription string      `gorm:"type:text;not null" json:"job_description"`
	Status         BatchStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage   *string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []BatchItem `gorm:"foreignKey:BatchID" json:"items,omitempty"`
}

func (Batch) TableName() string {
	return "batches"
}

// BatchItem is one uploaded resume within a batch. Rank is zero until the
// batch completes; failed items keep rank zero and record an error message.
type BatchItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BatchID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"batch_id"`
	Filename      string          `gorm:"type:text" json:"filename"`
	FilePath      string          `gorm:"type:text" json:"-"`
	Rank          int             `json:"rank"`
	TotalScore    int             `json:"total_score"`
	SkillScore    int             `json:"skill_score"`
	ExpScore      int             `json:"experience_score"`
	MissingSkills JSONB           `gorm:"type:jsonb" json:"missing_skills,omitempty"`
	Status        CandidateStatus `gorm:"not null;default:'neutral'" json:"status"`
	ErrorMessage  string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BatchItem) TableName() string {
	return "batch_items"
}
