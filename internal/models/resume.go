package models

// ParsedResume is the structured view of an uploaded resume as extracted by
// the parser. FullText keeps the raw extraction for downstream scoring.
type ParsedResume struct {
	Name       string       `json:"name"`
	Contact    Contact      `json:"contact"`
	Skills     []string     `json:"skills"`
	Education  []Education  `json:"education"`
	Projects   []Project    `json:"projects"`
	Experience []Experience `json:"experience"`
	FullText   string       `json:"full_text"`
	Filename   string       `json:"filename"`
}

type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type Project struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Technologies   []string `json:"technologies"`
	Link           string   `json:"link,omitempty"`
	RelevanceScore int      `json:"relevance_score"`
}

type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Description string `json:"description"`
}
