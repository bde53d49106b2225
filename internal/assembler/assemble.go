package assembler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Source is the read side of a section store. Every accessor must return a copy.
type Source interface {
	Contact() types.Contact
	Summary() string
	Interests() string
	Education() []types.EducationEntry
	Experience() []types.ExperienceEntry
	Skills() []types.SkillEntry
	Projects() []types.ProjectEntry
	Awards() []types.AwardEntry
	References() []types.ReferenceEntry
	Languages() []types.LanguageEntry
}

// Assemble copies the current state of src into a new document.
// The result shares no storage with src. Invalid UTF-8 in any value is replaced
// with U+FFFD so the document survives Serialize and Deserialize unchanged.
func Assemble(src Source) types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.Contact = src.Contact()
	doc.Sections.Summary = src.Summary()
	doc.Sections.Interests = src.Interests()
	doc.Sections.Education = append(doc.Sections.Education, src.Education()...)
	doc.Sections.Experience = append(doc.Sections.Experience, src.Experience()...)
	doc.Sections.Skills = append(doc.Sections.Skills, src.Skills()...)
	doc.Sections.Projects = append(doc.Sections.Projects, src.Projects()...)
	doc.Sections.Awards = append(doc.Sections.Awards, src.Awards()...)
	doc.Sections.References = append(doc.Sections.References, src.References()...)
	doc.Sections.Languages = append(doc.Sections.Languages, src.Languages()...)
	return validUTF8(doc)
}

// Serialize encodes doc as two-space indented JSON with keys in document order.
// HTML characters and U+2028/U+2029 are written unescaped and there is no trailing newline.
func Serialize(doc types.ResumeDocument) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(doc)); err != nil {
		return "", fmt.Errorf("failed to encode resume document: %w", err)
	}
	return unescapeLineSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

// unescapeLineSeparators turns the encoder's \u2028 and \u2029 escapes back into raw runes.
// Escaped backslashes are copied as pairs so a literal "\\u2028" in a value is left alone.
func unescapeLineSeparators(text string) string {
	if !strings.Contains(text, `\u202`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' {
			b.WriteByte(text[i])
			continue
		}
		rest := text[i:]
		switch {
		case strings.HasPrefix(rest, `\\`):
			b.WriteString(`\\`)
			i++
		case strings.HasPrefix(rest, `\u2028`):
			b.WriteRune('\u2028')
			i += len(`\u2028`) - 1
		case strings.HasPrefix(rest, `\u2029`):
			b.WriteRune('\u2029')
			i += len(`\u2029`) - 1
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

// Deserialize validates text against the resume document schema and decodes it
func Deserialize(text string) (types.ResumeDocument, error) {
	if err := schemas.ValidateDocument(text); err != nil {
		return types.ResumeDocument{}, &DecodeError{Message: "document does not match schema", Cause: err}
	}

	var doc types.ResumeDocument
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return types.ResumeDocument{}, &DecodeError{Message: "failed to unmarshal JSON", Cause: err}
	}
	return normalize(doc), nil
}

// normalize replaces nil lists with empty ones so a document never serializes a list as null
func normalize(doc types.ResumeDocument) types.ResumeDocument {
	if doc.Sections.Education == nil {
		doc.Sections.Education = []types.EducationEntry{}
	}
	if doc.Sections.Experience == nil {
		doc.Sections.Experience = []types.ExperienceEntry{}
	}
	if doc.Sections.Skills == nil {
		doc.Sections.Skills = []types.SkillEntry{}
	}
	if doc.Sections.Projects == nil {
		doc.Sections.Projects = []types.ProjectEntry{}
	}
	if doc.Sections.Awards == nil {
		doc.Sections.Awards = []types.AwardEntry{}
	}
	if doc.Sections.References == nil {
		doc.Sections.References = []types.ReferenceEntry{}
	}
	if doc.Sections.Languages == nil {
		doc.Sections.Languages = []types.LanguageEntry{}
	}
	return doc
}

// validUTF8 rewrites every string in doc with invalid byte sequences replaced by U+FFFD
func validUTF8(doc types.ResumeDocument) types.ResumeDocument {
	fix := func(v *string) {
		*v = strings.ToValidUTF8(*v, "\uFFFD")
	}

	c := &doc.Contact
	for _, v := range []*string{&c.Name, &c.Location, &c.Email, &c.Phone, &c.Website, &c.LinkedIn, &c.GitHub} {
		fix(v)
	}
	fix(&doc.Sections.Summary)
	fix(&doc.Sections.Interests)

	for i := range doc.Sections.Education {
		e := &doc.Sections.Education[i]
		for _, v := range []*string{&e.Date, &e.Institution, &e.Degree, &e.Highlights} {
			fix(v)
		}
	}
	for i := range doc.Sections.Experience {
		e := &doc.Sections.Experience[i]
		for _, v := range []*string{&e.Date, &e.Position, &e.Company, &e.Location, &e.Highlights} {
			fix(v)
		}
	}
	for i := range doc.Sections.Skills {
		e := &doc.Sections.Skills[i]
		fix(&e.Name)
		fix(&e.Items)
	}
	for i := range doc.Sections.Projects {
		e := &doc.Sections.Projects[i]
		for _, v := range []*string{&e.Name, &e.Description, &e.Highlights} {
			fix(v)
		}
	}
	for i := range doc.Sections.Awards {
		e := &doc.Sections.Awards[i]
		for _, v := range []*string{&e.Name, &e.Date, &e.Organization, &e.Credentials, &e.Description} {
			fix(v)
		}
	}
	for i := range doc.Sections.References {
		e := &doc.Sections.References[i]
		fix(&e.Name)
		fix(&e.Contact)
	}
	for i := range doc.Sections.Languages {
		e := &doc.Sections.Languages[i]
		fix(&e.Name)
		fix(&e.Proficiency)
	}
	return doc
}
