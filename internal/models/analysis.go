package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JSONB stores raw JSON in a postgres jsonb column.
type JSONB []byte

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	return nil
}

type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:text;uniqueIndex;not null" json:"name"`
}

func (Skill) TableName() string {
	return "skills"
}

// Analysis is one stored resume analysis. Details holds the full
// AnalysisReport payload so history lookups can replay the original response.
type Analysis struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename   string    `gorm:"type:text;index" json:"filename"`
	Name       string    `gorm:"type:text" json:"name"`
	Email      string    `gorm:"type:text;index" json:"email,omitempty"`
	Phone      string    `gorm:"type:text" json:"phone,omitempty"`
	TotalScore float64   `gorm:"not null" json:"total_score"`
	Details    JSONB     `gorm:"type:jsonb" json:"details,omitempty"`
	Timestamp  time.Time `gorm:"index;default:CURRENT_TIMESTAMP" json:"timestamp"`

	Skills []Skill `gorm:"many2many:analysis_skills;" json:"skills"`
}

func (Analysis) TableName() string {
	return "analyses"
}
