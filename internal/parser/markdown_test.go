package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsBecomeSections(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content with *emphasis*.

## Section B

- first item
- second item
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}

	wantHeadings := []string{"Title", "Section A", "Section B"}
	for i, h := range wantHeadings {
		if doc.Sections[i].Heading != h {
			t.Errorf("section[%d]: expected heading %q, got %q", i, h, doc.Sections[i].Heading)
		}
	}
	if doc.Sections[0].Text != "Intro text." {
		t.Errorf("expected intro text exactly once, got %q", doc.Sections[0].Text)
	}
	if doc.Sections[1].Text != "Section A content with emphasis." {
		t.Errorf("expected inline emphasis flattened, got %q", doc.Sections[1].Text)
	}
	if !strings.Contains(doc.Sections[2].Text, "first item") || !strings.Contains(doc.Sections[2].Text, "second item") {
		t.Errorf("expected list items in section B, got %q", doc.Sections[2].Text)
	}
}

func TestMarkdownParser_CodeBlocksKept(t *testing.T) {
	input := "# API\n\n```\nGET /api/users\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := doc.Text()
	if !strings.Contains(text, "GET /api/users") {
		t.Errorf("expected code block content in text, got %q", text)
	}
	if !strings.Contains(text, "More text after code.") {
		t.Errorf("expected post-code text, got %q", text)
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"UPPER.MD", "UPPER"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
