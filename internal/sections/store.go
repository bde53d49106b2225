package sections

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Section names one of the repeatable list sections
type Section string

// List section names, in document order
const (
	Education  Section = "education"
	Experience Section = "experience"
	Skills     Section = "skills"
	Projects   Section = "projects"
	Awards     Section = "awards"
	References Section = "references"
	Languages  Section = "languages"
)

// Store holds the editable state of one editing session.
// It is not safe for concurrent use; hosts serialize access.
type Store struct {
	contact   types.Contact
	summary   string
	interests string

	education  *entryList[types.EducationEntry]
	experience *entryList[types.ExperienceEntry]
	skills     *entryList[types.SkillEntry]
	projects   *entryList[types.ProjectEntry]
	awards     *entryList[types.AwardEntry]
	references *entryList[types.ReferenceEntry]
	languages  *entryList[types.LanguageEntry]

	lists map[Section]list
}

// New creates an empty store: blank fixed fields and empty lists
func New() *Store {
	s := &Store{
		education:  newEntryList(Education, educationFields),
		experience: newEntryList(Experience, experienceFields),
		skills:     newEntryList(Skills, skillFields),
		projects:   newEntryList(Projects, projectFields),
		awards:     newEntryList(Awards, awardFields),
		references: newEntryList(References, referenceFields),
		languages:  newEntryList(Languages, languageFields),
	}
	s.lists = map[Section]list{
		Education:  s.education,
		Experience: s.experience,
		Skills:     s.skills,
		Projects:   s.projects,
		Awards:     s.awards,
		References: s.references,
		Languages:  s.languages,
	}
	return s
}

// Sections returns the list section names in document order
func Sections() []Section {
	return []Section{Education, Experience, Skills, Projects, Awards, References, Languages}
}

// FixedFields returns the names accepted by SetFixedField, in document order
func FixedFields() []string {
	names := make([]string, len(fixedFields))
	for i, f := range fixedFields {
		names[i] = f.name
	}
	return names
}

func (s *Store) list(section Section) (list, error) {
	l, ok := s.lists[section]
	if !ok {
		return nil, &UnknownSectionError{Section: section}
	}
	return l, nil
}

// AddEntry appends one blank entry to the section and returns its index
func (s *Store) AddEntry(section Section) (int, error) {
	l, err := s.list(section)
	if err != nil {
		return 0, err
	}
	return l.add(), nil
}

// UpdateEntryField replaces one field of the entry at index.
// On error the store is left exactly as it was.
func (s *Store) UpdateEntryField(section Section, index int, field, value string) error {
	l, err := s.list(section)
	if err != nil {
		return err
	}
	return l.update(index, field, value)
}

// SetFixedField replaces a contact field ("contact.<name>"), the summary or the interests
func (s *Store) SetFixedField(name, value string) error {
	for _, f := range fixedFields {
		if f.name == name {
			*f.ref(s) = value
			return nil
		}
	}
	return &InvalidFieldError{Field: name}
}

// FixedField returns the current value of a fixed field
func (s *Store) FixedField(name string) (string, error) {
	for _, f := range fixedFields {
		if f.name == name {
			return *f.ref(s), nil
		}
	}
	return "", &InvalidFieldError{Field: name}
}

// Len returns the number of entries in a section
func (s *Store) Len(section Section) (int, error) {
	l, err := s.list(section)
	if err != nil {
		return 0, err
	}
	return l.len(), nil
}

// Fields returns the field names of a section's entry type, in document order
func (s *Store) Fields(section Section) ([]string, error) {
	l, err := s.list(section)
	if err != nil {
		return nil, err
	}
	return l.fieldNames(), nil
}

// Entry returns a copy of the entry at index keyed by field name
func (s *Store) Entry(section Section, index int) (map[string]string, error) {
	l, err := s.list(section)
	if err != nil {
		return nil, err
	}
	return l.values(index)
}

// Contact returns a copy of the contact record
func (s *Store) Contact() types.Contact { return s.contact }

// Summary returns the summary text
func (s *Store) Summary() string { return s.summary }

// Interests returns the interests text
func (s *Store) Interests() string { return s.interests }

// Education returns a copy of the education entries
func (s *Store) Education() []types.EducationEntry { return s.education.snapshot() }

// Experience returns a copy of the experience entries
func (s *Store) Experience() []types.ExperienceEntry { return s.experience.snapshot() }

// Skills returns a copy of the skill entries
func (s *Store) Skills() []types.SkillEntry { return s.skills.snapshot() }

// Projects returns a copy of the project entries
func (s *Store) Projects() []types.ProjectEntry { return s.projects.snapshot() }

// Awards returns a copy of the award entries
func (s *Store) Awards() []types.AwardEntry { return s.awards.snapshot() }

// References returns a copy of the reference entries
func (s *Store) References() []types.ReferenceEntry { return s.references.snapshot() }

// Languages returns a copy of the language entries
func (s *Store) Languages() []types.LanguageEntry { return s.languages.snapshot() }
