package parser

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestCSVParser_RowsBecomeSections(t *testing.T) {
	input := "name,comment\nalice,likes cats\nbob,\"likes dogs, too\"\n"
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(input), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "people" {
		t.Errorf("expected title %q, got %q", "people", doc.Title)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[2].Text != "bob likes dogs, too" {
		t.Errorf("expected quoted cell joined, got %q", doc.Sections[2].Text)
	}
}

func TestCSVParser_RaggedRowsAllowed(t *testing.T) {
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader("a,b,c\nd\n"), "ragged.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
}

func TestCSVParser_ReadErrorIsMalformed(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(iotest.ErrReader(errors.New("disk gone")), "bad.csv")
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}
