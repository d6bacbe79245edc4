package services

import (
	"regexp"
	"sort"
	"strings"
)

// Canonical skill dictionary. Matching is case-insensitive and
// alphanumeric-boundary aware so punctuated names like "C++" and "Node.js"
// are found inside running text.
var skillsList = []string{
	"python", "java", "c++", "c#", "go", "rust", "javascript", "typescript",
	"html", "css", "sql", "nosql", "postgresql", "mongodb", "redis",
	"git", "docker", "kubernetes", "aws", "azure", "gcp", "terraform",
	"react", "angular", "vue", "svelte", "node.js", "django", "flask",
	"fastapi", "spring boot", "machine learning", "deep learning",
	"data analysis", "pandas", "numpy", "scikit-learn", "tensorflow",
	"pytorch", "nlp", "computer vision", "agile", "scrum", "jira",
	"rest api", "graphql", "microservices", "cicd", "jenkins",
	"github actions", "etl", "data warehousing", "apache spark",
}

// Alternate spellings and punctuation variants per canonical skill.
var skillAliases = map[string][]string{
	"node.js":          {"nodejs", "node"},
	"c++":              {"cpp"},
	"c#":               {"csharp"},
	"github actions":   {"github-actions", "githubactions"},
	"rest api":         {"rest", "restapi"},
	"spring boot":      {"springboot"},
	"machine learning": {"ml", "machine-learning"},
	"deep learning":    {"deep-learning", "dl"},
	"apache spark":     {"spark"},
	"sql":              {"structured query language"},
}

// Display casing for tokens that plain capitalization would mangle.
var skillDisplay = map[string]string{
	"c++":            "C++",
	"c#":             "C#",
	"node.js":        "Node.js",
	"aws":            "AWS",
	"gcp":            "GCP",
	"cicd":           "CI/CD",
	"github actions": "GitHub Actions",
	"nlp":            "NLP",
	"sql":            "SQL",
	"nosql":          "NoSQL",
	"postgresql":     "PostgreSQL",
	"mongodb":        "MongoDB",
	"docker":         "Docker",
	"kubernetes":     "Kubernetes",
	"tensorflow":     "TensorFlow",
	"pytorch":        "PyTorch",
	"fastapi":        "FastAPI",
	"graphql":        "GraphQL",
	"javascript":     "JavaScript",
	"typescript":     "TypeScript",
	"spring boot":    "Spring Boot",
	"etl":            "ETL",
	"html":           "HTML",
	"css":            "CSS",
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	skillPatterns map[string][]*regexp.Regexp
)

func init() {
	skillPatterns = make(map[string][]*regexp.Regexp, len(skillsList))
	for _, skill := range skillsList {
		candidates := append([]string{skill}, skillAliases[skill]...)
		patterns := make([]*regexp.Regexp, 0, len(candidates))
		for _, cand := range candidates {
			// Alphanumeric lookaround boundaries instead of \b so that
			// punctuation inside the skill name does not break matching.
			p := regexp.MustCompile(`(?i)(^|[^A-Za-z0-9_])` + regexp.QuoteMeta(cand) + `($|[^A-Za-z0-9_])`)
			patterns = append(patterns, p)
		}
		skillPatterns[skill] = patterns
	}
}

// NormalizeSkill returns the display form of a skill name.
func NormalizeSkill(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if display, ok := skillDisplay[key]; ok {
		return display
	}

	words := strings.Fields(key)
	for i, w := range words {
		if len(w) > 1 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ExtractSkills finds dictionary skills in free text and returns their
// normalized display names, sorted.
func ExtractSkills(text string) []string {
	if text == "" {
		return nil
	}

	cleanText := whitespaceRe.ReplaceAllString(text, " ")

	found := make([]string, 0, 8)
	for _, skill := range skillsList {
		for _, p := range skillPatterns[skill] {
			if p.MatchString(cleanText) {
				found = append(found, skill)
				break
			}
		}
	}

	sort.Strings(found)
	out := make([]string, len(found))
	for i, s := range found {
		out[i] = NormalizeSkill(s)
	}
	return out
}
