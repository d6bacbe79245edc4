package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// ReportService renders an analysis into a downloadable PDF.
type ReportService interface {
	GeneratePDF(report *models.AnalysisReport) ([]byte, error)
}

type reportService struct{}

func NewReportService() ReportService {
	return &reportService{}
}

const (
	pageMargin = 15.0
	barWidth   = 120.0
	barHeight  = 6.0
)

// GeneratePDF implements ReportService.
func (r *reportService) GeneratePDF(report *models.AnalysisReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(130, 130, 130)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	r.writeHeader(pdf, report)
	r.writeScoreSection(pdf, report.AtsScore)
	r.writeSkillGap(pdf, report.AtsScore.SkillGap)
	r.writeSuggestions(pdf, report.Suggestions)
	r.writeSkillLevels(pdf, report.SkillLevels)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *reportService) writeHeader(pdf *fpdf.Fpdf, report *models.AnalysisReport) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 10, "Resume Analysis Report", "", 1, "L", false, 0, "")

	name := "Unknown Candidate"
	if report.ParsedData != nil && report.ParsedData.Name != "" {
		name = report.ParsedData.Name
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 7, name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7,
		fmt.Sprintf("Detected role: %s  |  Seniority: %s  |  Industry: %s",
			report.DetectedRole, report.SeniorityLevel, report.IndustryFit),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (r *reportService) writeScoreSection(pdf *fpdf.Fpdf, score *models.AtsScore) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 9, fmt.Sprintf("Overall Score: %d / 100", score.TotalScore), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	bars := []struct {
		label string
		value int
	}{
		{"Overall", score.TotalScore},
		{"Semantic Match", score.Breakdown.SemanticMatch},
		{"Skill Match", score.Breakdown.SkillMatch},
		{"Experience Match", score.Breakdown.ExperienceMatch},
		{"Project Match", score.Breakdown.ProjectMatch},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, bar := range bars {
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(45, barHeight+2, bar.label, "", 0, "L", false, 0, "")

		x, y := pdf.GetXY()
		pdf.SetFillColor(230, 230, 230)
		pdf.Rect(x, y+1, barWidth, barHeight, "F")

		cr, cg, cb := scoreColor(bar.value)
		pdf.SetFillColor(cr, cg, cb)
		pdf.Rect(x, y+1, barWidth*float64(bar.value)/100, barHeight, "F")

		pdf.SetXY(x+barWidth+3, y)
		pdf.CellFormat(12, barHeight+2, fmt.Sprintf("%d", bar.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func scoreColor(v int) (int, int, int) {
	switch {
	case v >= 75:
		return 40, 167, 69
	case v >= 50:
		return 255, 193, 7
	default:
		return 220, 53, 69
	}
}

func (r *reportService) writeSkillGap(pdf *fpdf.Fpdf, gap models.SkillGap) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 9, "Skill Gap", "", 1, "L", false, 0, "")

	r.writeSkillPills(pdf, "Matched", gap.Matched, 212, 237, 218)
	r.writeSkillPills(pdf, "Missing", gap.Missing, 248, 215, 218)
	pdf.Ln(4)
}

func (r *reportService) writeSkillPills(pdf *fpdf.Fpdf, label string, skills []string, cr, cg, cb int) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 7, label+":", "", 1, "L", false, 0, "")

	if len(skills) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, "none", "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(cr, cg, cb)

	pageWidth, _ := pdf.GetPageSize()
	maxX := pageWidth - pageMargin

	for _, skill := range skills {
		w := pdf.GetStringWidth(skill) + 6
		if pdf.GetX()+w > maxX {
			pdf.Ln(8)
		}
		pdf.CellFormat(w, 6, skill, "", 0, "C", true, 0, "")
		pdf.SetX(pdf.GetX() + 2)
	}
	pdf.Ln(9)
}

func (r *reportService) writeSuggestions(pdf *fpdf.Fpdf, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 9, "Suggestions", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for i, s := range suggestions {
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, s), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(3)
}

func (r *reportService) writeSkillLevels(pdf *fpdf.Fpdf, levels map[string]string) {
	if len(levels) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 9, "Skill Proficiency", "", 1, "L", false, 0, "")

	skills := make([]string, 0, len(levels))
	for skill := range levels {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 7, "Skill", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Level", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, skill := range skills {
		pdf.CellFormat(90, 7, skill, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, levels[skill], "1", 1, "L", false, 0, "")
	}
}

// ReportFilename builds a safe download name from the candidate name.
func ReportFilename(report *models.AnalysisReport) string {
	name := "candidate"
	if report.ParsedData != nil && report.ParsedData.Name != "" && report.ParsedData.Name != "Name Not Found" {
		name = strings.ToLower(strings.ReplaceAll(report.ParsedData.Name, " ", "_"))
	}
	return fmt.Sprintf("resume_report_%s.pdf", name)
}
