package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// SectionFields names a list section and its entry fields
type SectionFields struct {
	Name   string
	Fields []string
}

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFieldCatalog outputs the list sections with their entry fields, then the fixed fields.
func (p *Printer) PrintFieldCatalog(sections []SectionFields, fixed []string) {
	var sb strings.Builder

	for _, s := range sections {
		sb.WriteString(fmt.Sprintf("%-12s %s\n", s.Name, strings.Join(s.Fields, ", ")))
	}
	sb.WriteString("\nFixed fields:\n")
	for _, f := range fixed {
		sb.WriteString(fmt.Sprintf("  • %s\n", f))
	}

	p.printBox("SECTIONS AND FIELDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocumentSummary outputs where a document was saved and how many entries each section holds.
func (p *Printer) PrintDocumentSummary(key string, doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Key:      %s\n", key))
	if doc.Contact.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Contact.Name))
	}
	if doc.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Contact.Email))
	}
	sb.WriteString("\n")

	counts := []struct {
		name string
		n    int
	}{
		{"education", len(doc.Sections.Education)},
		{"experience", len(doc.Sections.Experience)},
		{"skills", len(doc.Sections.Skills)},
		{"projects", len(doc.Sections.Projects)},
		{"awards", len(doc.Sections.Awards)},
		{"references", len(doc.Sections.References)},
		{"languages", len(doc.Sections.Languages)},
	}
	for _, c := range counts {
		sb.WriteString(fmt.Sprintf("  %-12s %d\n", c.name, c.n))
	}

	// Experience is the section most worth a glance
	if len(doc.Sections.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(doc.Sections.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := doc.Sections.Experience[i]
			line := strings.TrimSpace(strings.Join(nonEmpty(e.Position, e.Company), " @ "))
			if line == "" {
				line = "(blank entry)"
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", line))
		}
		if len(doc.Sections.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Sections.Experience)-maxItemsToShow))
		}
	}

	p.printBox("SAVED RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
