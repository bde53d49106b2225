// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeDocument is the assembled, point-in-time snapshot of every section.
// It is the persisted interchange artifact; field names and order are stable.
type ResumeDocument struct {
	Contact  Contact  `json:"contact"`
	Sections Sections `json:"sections"`
}

// Contact is the fixed contact record
type Contact struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Sections holds the summary, the seven repeatable lists and interests in document order
type Sections struct {
	Summary    string            `json:"summary"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []SkillEntry      `json:"skills"`
	Projects   []ProjectEntry    `json:"projects"`
	Awards     []AwardEntry      `json:"awards"`
	References []ReferenceEntry  `json:"references"`
	Languages  []LanguageEntry   `json:"languages"`
	Interests  string            `json:"interests"`
}

// EducationEntry represents one education record
type EducationEntry struct {
	Date        string `json:"date"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Highlights  string `json:"highlights"` // comma-separated, free text
}

// ExperienceEntry represents one position held
type ExperienceEntry struct {
	Date       string `json:"date"`
	Position   string `json:"position"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Highlights string `json:"highlights"` // comma-separated, free text
}

// SkillEntry groups skill items under a name (e.g. "Languages": "Go, SQL")
type SkillEntry struct {
	Name  string `json:"name"`
	Items string `json:"items"`
}

// ProjectEntry represents one project
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Highlights  string `json:"highlights"` // comma-separated, free text
}

// AwardEntry represents one award or certification
type AwardEntry struct {
	Name         string `json:"name"`
	Date         string `json:"date"`
	Organization string `json:"organization"`
	Credentials  string `json:"credentials"`
	Description  string `json:"description"`
}

// ReferenceEntry represents one reference
type ReferenceEntry struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// LanguageEntry represents one spoken language
type LanguageEntry struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// NewResumeDocument returns a document with every list initialized to an empty, non-nil slice
// so that it serializes with [] rather than null.
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		Sections: Sections{
			Education:  []EducationEntry{},
			Experience: []ExperienceEntry{},
			Skills:     []SkillEntry{},
			Projects:   []ProjectEntry{},
			Awards:     []AwardEntry{},
			References: []ReferenceEntry{},
			Languages:  []LanguageEntry{},
		},
	}
}
