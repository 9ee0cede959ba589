package document

import "strings"

// Document is the plain-text form of an uploaded file.
type Document struct {
	Title    string     // From metadata or filename
	Format   string     // Parser that produced it: pdf, txt, md, html, docx, csv
	Sections []*Section // In source order
}

// Section is a run of text from the source document.
type Section struct {
	Heading string // Section heading (empty for PDF pages and plain paragraphs)
	Text    string
	Page    int // Source page (0 if N/A)
}

// Text concatenates every section in order, heading before body.
func (d *Document) Text() string {
	var buf strings.Builder
	for _, s := range d.Sections {
		if s.Heading != "" {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(s.Heading)
		}
		if s.Text != "" {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(s.Text)
		}
	}
	return buf.String()
}

// Pages returns the highest page number seen, or the section count for
// formats without pages.
func (d *Document) Pages() int {
	max := 0
	for _, s := range d.Sections {
		if s.Page > max {
			max = s.Page
		}
	}
	if max == 0 {
		return len(d.Sections)
	}
	return max
}

// Append adds a section, skipping ones with no heading and no text.
func (d *Document) Append(s *Section) {
	if s == nil || (strings.TrimSpace(s.Heading) == "" && strings.TrimSpace(s.Text) == "") {
		return
	}
	d.Sections = append(d.Sections, s)
}
