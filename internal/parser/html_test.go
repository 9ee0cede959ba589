package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_ExtractsBodyText(t *testing.T) {
	input := `<html><head><title>Quarterly Notes</title><style>p{color:red}</style></head>
<body>
<nav>Home | About</nav>
<h1>Overview</h1>
<p>Revenue grew <b>strongly</b>.</p>
<script>var x = "hidden";</script>
<h2>Details</h2>
<ul><li>North region</li><li>South region</li></ul>
<div>Loose text</div>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Quarterly Notes" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Heading != "Overview" {
		t.Errorf("expected heading %q, got %q", "Overview", doc.Sections[0].Heading)
	}

	text := doc.Text()
	for _, want := range []string{"Revenue grew strongly", "North region", "South region", "Loose text"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text to contain %q, got %q", want, text)
		}
	}
	for _, unwanted := range []string{"hidden", "Home", "color"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("expected %q to be skipped, got %q", unwanted, text)
		}
	}
}

func TestHTMLParser_FilenameTitleFallback(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader("<p>hi</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", doc.Title)
	}
}
