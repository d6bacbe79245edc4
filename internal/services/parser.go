package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// ResumeParser turns an uploaded resume file into structured data.
type ResumeParser interface {
	Parse(content []byte, filename string) (*models.ParsedResume, error)
}

type resumeParser struct {
	extractor TextExtractor
}

func NewResumeParser(extractor TextExtractor) ResumeParser {
	return &resumeParser{extractor: extractor}
}

var (
	emailRe = regexp.MustCompile(`[\w.\-+]+@[\w.\-]+\.\w+`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?(?:\(?\d{2,4}\)?[-.\s]?)?\d{3,4}[-.\s]?\d{3,4}`)

	headingRe     = regexp.MustCompile(`(?i)\b(resume|cv|curriculum|profile|contact)\b`)
	companyWordRe = regexp.MustCompile(`(?i)\b(inc|llc|ltd|technologies|solutions|systems|corp|company|labs|pvt|private|llp)\b`)
	roleWordRe    = regexp.MustCompile(`(?i)\b(engineer|developer|manager|director|intern|consultant|analyst|lead|sde)\b`)

	experienceHeaderRe = regexp.MustCompile(`(?im)^\s*(?:EXPERIENCE|WORK HISTORY|EMPLOYMENT|PROFESSIONAL EXPERIENCE)\s*$`)
	projectHeaderRe    = regexp.MustCompile(`(?im)^\s*(?:PROJECTS?|PERSONAL PROJECTS|PROJECT HIGHLIGHTS)\s*$`)
	educationHeaderRe  = regexp.MustCompile(`(?im)^\s*(?:EDUCATION|ACADEMIC|QUALIFICATIONS|EDUCATION & CREDENTIALS)\s*$`)
	blankLineRe        = regexp.MustCompile(`\n\s*\n`)

	monthAlt    = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|January|February|March|April|May|June|July|August|September|October|November|December)`
	dateRangeRe = regexp.MustCompile(`(?i)((?:` + monthAlt + `\s*,?\s*\d{4})|\d{4})\s*[-–—]\s*(Present|Current|(?:` + monthAlt + `\s*,?\s*\d{4})|\d{4})`)

	techLineRe = regexp.MustCompile(`(?i)(?:Technologies|Stack|Tools Used|Tech Stack)[:\s]+(.+)`)
	linkRe     = regexp.MustCompile(`https?://[^\s)\]]+`)

	degreeRe = regexp.MustCompile(`(?i)(Bachelor|B\.Tech|BTech|B\.E|B\.S|Master|M\.Tech|MTech|M\.S|Bachelors|Masters|PhD|Graduat\w*)`)
	yearRe   = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	gradeRe  = regexp.MustCompile(`(?i)(\bGPA[:\s]*[0-9]\.?[0-9]?\b|\b\d{1,2}\.\d{1,2}/10\b|\b\d{1,3}%\b)`)
)

// Parse implements ResumeParser.
func (p *resumeParser) Parse(content []byte, filename string) (*models.ParsedResume, error) {
	text, err := p.extractor.ExtractText(content, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume text: %w", err)
	}

	parsed := &models.ParsedResume{
		Name:       extractName(text),
		Contact:    extractContact(text),
		Skills:     ExtractSkills(text),
		Experience: extractExperience(text),
		Projects:   extractProjects(text),
		Education:  extractEducation(text),
		FullText:   text,
		Filename:   filename,
	}

	if parsed.Name == "" {
		parsed.Name = "Name Not Found"
	}
	if parsed.Skills == nil {
		parsed.Skills = []string{}
	}
	if parsed.Experience == nil {
		parsed.Experience = []models.Experience{}
	}
	if parsed.Projects == nil {
		parsed.Projects = []models.Project{}
	}
	if parsed.Education == nil {
		parsed.Education = []models.Education{}
	}

	return parsed, nil
}

func extractContact(text string) models.Contact {
	contact := models.Contact{}
	if m := emailRe.FindString(text); m != "" {
		contact.Email = m
	}
	if m := phoneRe.FindString(text); strings.TrimSpace(m) != "" {
		contact.Phone = strings.TrimSpace(m)
	}
	return contact
}

// extractName checks the first few non-empty lines for a 2-4 word
// capitalized line that is neither a heading nor a company name.
func extractName(text string) string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}

	limit := 6
	if len(lines) < limit {
		limit = len(lines)
	}

	for _, line := range lines[:limit] {
		if headingRe.MatchString(line) || companyWordRe.MatchString(line) {
			continue
		}
		if emailRe.MatchString(line) || linkRe.MatchString(line) {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 2 || len(tokens) > 4 {
			continue
		}

		capitalized := true
		for _, tok := range tokens {
			r := rune(tok[0])
			if !(r >= 'A' && r <= 'Z') {
				capitalized = false
				break
			}
		}
		if capitalized {
			return line
		}
	}
	return ""
}

func splitSection(text string, header *regexp.Regexp) (string, bool) {
	loc := header.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	section := text[loc[1]:]

	// Stop at the next major section header so entries from later sections
	// do not bleed in.
	for _, next := range []*regexp.Regexp{experienceHeaderRe, projectHeaderRe, educationHeaderRe} {
		if next == header {
			continue
		}
		if nextLoc := next.FindStringIndex(section); nextLoc != nil {
			section = section[:nextLoc[0]]
		}
	}
	return section, true
}

func extractExperience(text string) []models.Experience {
	section, ok := splitSection(text, experienceHeaderRe)
	if !ok {
		section = text
	}

	var experiences []models.Experience
	for _, chunk := range blankLineRe.Split(section, -1) {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) < 30 {
			continue
		}

		var lines []string
		for _, ln := range strings.Split(chunk, "\n") {
			if ln = strings.TrimSpace(ln); ln != "" {
				lines = append(lines, ln)
			}
		}
		if len(lines) == 0 {
			continue
		}

		title, company := splitTitleCompany(lines[0])
		start, end := parseDateRange(chunk)

		description := chunk
		if len(lines) > 1 {
			description = strings.Join(lines[1:], "\n")
		}

		if title == "" {
			title = "Role Not Specified"
		}
		if company == "" {
			company = "Company Not Specified"
		}

		experiences = append(experiences, models.Experience{
			Title:        title,
			Company:      company,
			StartDate:    start,
			EndDate:      end,
			Description:  strings.TrimSpace(description),
			Technologies: ExtractSkills(chunk),
		})
	}
	return experiences
}

// splitTitleCompany handles first lines like "Senior Backend Engineer, ACME
// Corp" or "ACME Corp — Senior Backend Engineer".
func splitTitleCompany(first string) (title, company string) {
	parts := regexp.MustCompile(`[,–—|]|\s-\s`).Split(first, -1)
	if len(parts) >= 2 {
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if companyWordRe.MatchString(part) {
				if company == "" {
					company = part
				}
			} else if title == "" {
				title = part
			}
		}
		return title, company
	}

	first = strings.TrimSpace(first)
	if roleWordRe.MatchString(first) {
		return first, ""
	}
	if companyWordRe.MatchString(first) {
		return "", first
	}
	return first, ""
}

func parseDateRange(chunk string) (start, end string) {
	m := dateRangeRe.FindStringSubmatch(chunk)
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

func extractProjects(text string) []models.Project {
	section, ok := splitSection(text, projectHeaderRe)
	if !ok {
		return nil
	}

	var projects []models.Project
	for _, chunk := range blankLineRe.Split(section, -1) {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) < 20 {
			continue
		}

		var lines []string
		for _, ln := range strings.Split(chunk, "\n") {
			if ln = strings.TrimSpace(ln); ln != "" {
				lines = append(lines, ln)
			}
		}
		if len(lines) == 0 {
			continue
		}

		title := lines[0]
		description := ""
		if len(lines) > 1 {
			description = strings.Join(lines[1:], " ")
		}

		var technologies []string
		if m := techLineRe.FindStringSubmatch(chunk); m != nil {
			for _, t := range regexp.MustCompile(`[,|;]`).Split(m[1], -1) {
				if t = strings.TrimSpace(t); t != "" {
					technologies = append(technologies, NormalizeSkill(t))
				}
			}
			description = strings.TrimSpace(strings.Replace(description, m[0], "", 1))
		} else {
			technologies = ExtractSkills(chunk)
		}

		projects = append(projects, models.Project{
			Title:        title,
			Description:  description,
			Technologies: technologies,
			Link:         linkRe.FindString(chunk),
		})
	}
	return projects
}

func extractEducation(text string) []models.Education {
	section, ok := splitSection(text, educationHeaderRe)
	if !ok {
		return nil
	}

	var edus []models.Education
	for _, chunk := range blankLineRe.Split(section, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		edu := models.Education{Description: chunk}
		if m := degreeRe.FindString(chunk); m != "" {
			edu.Degree = m
		}
		if m := yearRe.FindString(chunk); m != "" {
			edu.Year = m
		}
		if m := gradeRe.FindString(chunk); m != "" {
			edu.Grade = m
		}

		// First line that is not the degree itself doubles as institution.
		for _, ln := range strings.Split(chunk, "\n") {
			ln = strings.TrimSpace(ln)
			if ln == "" || degreeRe.MatchString(ln) {
				continue
			}
			edu.Institution = ln
			break
		}

		edus = append(edus, edu)
	}
	return edus
}
