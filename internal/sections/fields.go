package sections

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// fieldRef maps a field name to the address of that field on an entry
type fieldRef[T any] struct {
	name string
	ref  func(*T) *string
}

// entryList is an ordered, append-only sequence of entries of one type.
// Entries are plain values, so copying the slice copies every entry.
type entryList[T any] struct {
	name    Section
	entries []T
	fields  []fieldRef[T]
}

func newEntryList[T any](name Section, fields []fieldRef[T]) *entryList[T] {
	return &entryList[T]{name: name, entries: []T{}, fields: fields}
}

func (l *entryList[T]) add() int {
	var blank T
	l.entries = append(l.entries, blank)
	return len(l.entries) - 1
}

// update validates both index and field before writing, so a rejected call changes nothing.
func (l *entryList[T]) update(index int, field, value string) error {
	if index < 0 || index >= len(l.entries) {
		return &InvalidIndexError{Section: l.name, Index: index, Len: len(l.entries)}
	}
	ref := l.lookup(field)
	if ref == nil {
		return &InvalidFieldError{Section: l.name, Field: field}
	}
	entry := l.entries[index]
	*ref(&entry) = value
	l.entries[index] = entry
	return nil
}

func (l *entryList[T]) lookup(field string) func(*T) *string {
	for _, f := range l.fields {
		if f.name == field {
			return f.ref
		}
	}
	return nil
}

func (l *entryList[T]) len() int {
	return len(l.entries)
}

func (l *entryList[T]) fieldNames() []string {
	names := make([]string, len(l.fields))
	for i, f := range l.fields {
		names[i] = f.name
	}
	return names
}

func (l *entryList[T]) values(index int) (map[string]string, error) {
	if index < 0 || index >= len(l.entries) {
		return nil, &InvalidIndexError{Section: l.name, Index: index, Len: len(l.entries)}
	}
	entry := l.entries[index]
	out := make(map[string]string, len(l.fields))
	for _, f := range l.fields {
		out[f.name] = *f.ref(&entry)
	}
	return out, nil
}

func (l *entryList[T]) snapshot() []T {
	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

// list is the type-erased view the Store dispatches section names through
type list interface {
	add() int
	update(index int, field, value string) error
	len() int
	fieldNames() []string
	values(index int) (map[string]string, error)
}

var educationFields = []fieldRef[types.EducationEntry]{
	{"date", func(e *types.EducationEntry) *string { return &e.Date }},
	{"institution", func(e *types.EducationEntry) *string { return &e.Institution }},
	{"degree", func(e *types.EducationEntry) *string { return &e.Degree }},
	{"highlights", func(e *types.EducationEntry) *string { return &e.Highlights }},
}

var experienceFields = []fieldRef[types.ExperienceEntry]{
	{"date", func(e *types.ExperienceEntry) *string { return &e.Date }},
	{"position", func(e *types.ExperienceEntry) *string { return &e.Position }},
	{"company", func(e *types.ExperienceEntry) *string { return &e.Company }},
	{"location", func(e *types.ExperienceEntry) *string { return &e.Location }},
	{"highlights", func(e *types.ExperienceEntry) *string { return &e.Highlights }},
}

var skillFields = []fieldRef[types.SkillEntry]{
	{"name", func(e *types.SkillEntry) *string { return &e.Name }},
	{"items", func(e *types.SkillEntry) *string { return &e.Items }},
}

var projectFields = []fieldRef[types.ProjectEntry]{
	{"name", func(e *types.ProjectEntry) *string { return &e.Name }},
	{"description", func(e *types.ProjectEntry) *string { return &e.Description }},
	{"highlights", func(e *types.ProjectEntry) *string { return &e.Highlights }},
}

var awardFields = []fieldRef[types.AwardEntry]{
	{"name", func(e *types.AwardEntry) *string { return &e.Name }},
	{"date", func(e *types.AwardEntry) *string { return &e.Date }},
	{"organization", func(e *types.AwardEntry) *string { return &e.Organization }},
	{"credentials", func(e *types.AwardEntry) *string { return &e.Credentials }},
	{"description", func(e *types.AwardEntry) *string { return &e.Description }},
}

var referenceFields = []fieldRef[types.ReferenceEntry]{
	{"name", func(e *types.ReferenceEntry) *string { return &e.Name }},
	{"contact", func(e *types.ReferenceEntry) *string { return &e.Contact }},
}

var languageFields = []fieldRef[types.LanguageEntry]{
	{"name", func(e *types.LanguageEntry) *string { return &e.Name }},
	{"proficiency", func(e *types.LanguageEntry) *string { return &e.Proficiency }},
}

// fixedFields lists the scalar fields in document order
var fixedFields = []fieldRef[Store]{
	{"contact.name", func(s *Store) *string { return &s.contact.Name }},
	{"contact.location", func(s *Store) *string { return &s.contact.Location }},
	{"contact.email", func(s *Store) *string { return &s.contact.Email }},
	{"contact.phone", func(s *Store) *string { return &s.contact.Phone }},
	{"contact.website", func(s *Store) *string { return &s.contact.Website }},
	{"contact.linkedin", func(s *Store) *string { return &s.contact.LinkedIn }},
	{"contact.github", func(s *Store) *string { return &s.contact.GitHub }},
	{"summary", func(s *Store) *string { return &s.summary }},
	{"interests", func(s *Store) *string { return &s.interests }},
}
