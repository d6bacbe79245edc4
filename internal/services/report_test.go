package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

func sampleReport() *models.AnalysisReport {
	return &models.AnalysisReport{
		ParsedData: &models.ParsedResume{
			Name:     "John Carter",
			Filename: "resume.pdf",
		},
		AtsScore: &models.AtsScore{
			TotalScore: 72,
			Breakdown: models.ScoreBreakdown{
				SemanticMatch:   70,
				SkillMatch:      80,
				ExperienceMatch: 65,
				ProjectMatch:    60,
			},
			SkillGap: models.SkillGap{
				Matched: []string{"Go", "Docker"},
				Missing: []string{"Kubernetes"},
			},
		},
		SkillLevels:    map[string]string{"Go": "Expert", "Docker": "Advanced"},
		Suggestions:    []string{"Add metrics to bullets", "Mention Kubernetes exposure"},
		DetectedRole:   "backend",
		IndustryFit:    "fintech",
		SeniorityLevel: "Mid-Level/Senior",
	}
}

func TestGeneratePDF(t *testing.T) {
	svc := NewReportService()

	pdfBytes, err := svc.GeneratePDF(sampleReport())

	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGeneratePDFMinimalReport(t *testing.T) {
	svc := NewReportService()

	report := &models.AnalysisReport{
		AtsScore: &models.AtsScore{},
	}

	pdfBytes, err := svc.GeneratePDF(report)

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "resume_report_john_carter.pdf", ReportFilename(sampleReport()))

	anonymous := &models.AnalysisReport{
		ParsedData: &models.ParsedResume{Name: "Name Not Found"},
	}
	assert.Equal(t, "resume_report_candidate.pdf", ReportFilename(anonymous))
}
