package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if doc.Format != "txt" {
		t.Errorf("expected format %q, got %q", "txt", doc.Format)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if doc.Sections[i].Text != w {
			t.Errorf("section[%d]: expected %q, got %q", i, w, doc.Sections[i].Text)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 0 {
		t.Errorf("expected 0 sections for empty input, got %d", len(doc.Sections))
	}
	if doc.Text() != "" {
		t.Errorf("expected empty text, got %q", doc.Text())
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Runs of blank or whitespace-only lines should not produce empty sections.
	input := "Para one.\n\n   \n\nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
}

func TestTextParser_InvalidUTF8(t *testing.T) {
	p := &TextParser{}
	_, err := p.Parse(strings.NewReader("ok line\n\xff\xfe broken"), "bin.txt")
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestTextParser_VeryLongLine(t *testing.T) {
	// A single line well past 1 MiB, as in minified or single-line exports.
	line := strings.Repeat("word ", 300_000)
	input := line + "\r\n\r\nclosing paragraph"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "minified.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Text != line {
		t.Errorf("expected first section of %d bytes, got %d", len(line), len(doc.Sections[0].Text))
	}
	if doc.Sections[1].Text != "closing paragraph" {
		t.Errorf("expected %q, got %q", "closing paragraph", doc.Sections[1].Text)
	}
}
