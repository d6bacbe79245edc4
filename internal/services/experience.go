package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

var actionVerbs = map[string]bool{
	"led": true, "built": true, "designed": true, "developed": true,
	"launched": true, "improved": true, "reduced": true, "increased": true,
	"optimized": true, "implemented": true, "migrated": true, "automated": true,
	"delivered": true, "architected": true, "scaled": true, "created": true,
	"shipped": true, "refactored": true, "mentored": true, "drove": true,
}

var leadershipTerms = []string{
	"lead", "led", "managed", "mentored", "supervised", "head of",
	"principal", "architect", "director", "owner",
}

var (
	metricRe    = regexp.MustCompile(`\d+(?:\.\d+)?\s*(?:%|percent|x\b|ms\b|qps\b|rps\b|users\b|requests\b|k\b|m\b|million\b|hours\b|days\b)`)
	yearTokenRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

// TotalExperienceYears sums the span of each dated role. Ranges ending
// in "Present" run to the current year.
func TotalExperienceYears(experiences []models.Experience) float64 {
	currentYear := time.Now().Year()
	total := 0.0

	for _, exp := range experiences {
		start := firstYear(exp.StartDate)
		if start == 0 {
			continue
		}

		end := firstYear(exp.EndDate)
		if end == 0 {
			if strings.Contains(strings.ToLower(exp.EndDate), "present") ||
				strings.Contains(strings.ToLower(exp.EndDate), "current") {
				end = currentYear
			} else {
				end = start
			}
		}

		if end >= start {
			total += float64(end - start)
		}
	}
	return total
}

func firstYear(s string) int {
	m := yearTokenRe.FindString(s)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}

// AchievementsScore rewards bullet points that open with an action verb
// and bullet points that quantify an outcome.
func AchievementsScore(experiences []models.Experience) float64 {
	points := 0
	for _, exp := range experiences {
		for _, line := range strings.Split(exp.Description, "\n") {
			line = strings.TrimLeft(strings.TrimSpace(line), "-•* ")
			if line == "" {
				continue
			}

			fields := strings.Fields(strings.ToLower(line))
			if len(fields) > 0 && actionVerbs[strings.Trim(fields[0], ".,:;")] {
				points += 4
			}
			if metricRe.MatchString(strings.ToLower(line)) {
				points += 6
			}
		}
	}

	score := float64(points)
	if score > 100 {
		score = 100
	}
	if score < 30 {
		score = 30
	}
	return score
}

var essentialSections = []string{"experience", "education", "skills"}
var optionalSections = []string{"projects", "certifications", "summary", "achievements", "awards"}

// ContentQualityScore blends section completeness with resume length.
func ContentQualityScore(fullText string) float64 {
	lower := strings.ToLower(fullText)

	essentialHits := 0
	for _, sec := range essentialSections {
		if strings.Contains(lower, sec) {
			essentialHits++
		}
	}
	optionalHits := 0
	for _, sec := range optionalSections {
		if strings.Contains(lower, sec) {
			optionalHits++
		}
	}

	sectionScore := float64(essentialHits)/float64(len(essentialSections))*70 +
		float64(optionalHits)/float64(len(optionalSections))*30

	words := float64(len(strings.Fields(fullText)))
	lengthScore := words / 500 * 100
	if lengthScore > 100 {
		lengthScore = 100
	}

	score := sectionScore*0.7 + lengthScore*0.3
	if score > 100 {
		score = 100
	}
	return score
}

// SkillLevels estimates proficiency from how often a skill shows up in
// work history versus merely appearing in the skills list.
func SkillLevels(parsed *models.ParsedResume) map[string]string {
	weights := make(map[string]float64)

	for _, skill := range parsed.Skills {
		weights[skill] += 0.5
	}
	for _, exp := range parsed.Experience {
		for _, tech := range exp.Technologies {
			weights[tech] += 1.0
		}
	}
	for _, proj := range parsed.Projects {
		for _, tech := range proj.Technologies {
			weights[tech] += 0.5
		}
	}

	levels := make(map[string]string, len(weights))
	for skill, w := range weights {
		switch {
		case w >= 3:
			levels[skill] = "Expert"
		case w >= 1.5:
			levels[skill] = "Advanced"
		case w > 0:
			levels[skill] = "Intermediate"
		default:
			levels[skill] = "Beginner"
		}
	}
	return levels
}

// SeniorityLevel combines years of experience with leadership language.
func SeniorityLevel(experiences []models.Experience, fullText string) string {
	years := TotalExperienceYears(experiences)

	lower := strings.ToLower(fullText)
	leadershipHits := 0
	for _, term := range leadershipTerms {
		if strings.Contains(lower, term) {
			leadershipHits++
		}
	}

	switch {
	case years >= 8 || leadershipHits >= 3:
		return "Senior/Principal"
	case years >= 5:
		return "Mid-Level/Senior"
	case years >= 2:
		return "Mid-Level"
	default:
		return "Entry-Level/Junior"
	}
}
