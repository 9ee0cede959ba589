package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docfreq/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// go-docx needs a ReaderAt+size; uploads are already bounded in memory.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, malformed("docx", err)
	}

	parsed, err := parseDOCX(data)
	if err != nil {
		return nil, malformed("docx", err)
	}

	doc := &document.Document{
		Title:  trimExt(filename, ".docx"),
		Format: "docx",
	}

	current := &document.Section{}
	var body strings.Builder
	flush := func() {
		current.Text = strings.TrimSpace(body.String())
		doc.Append(current)
		body.Reset()
	}

	for _, item := range parsed.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := docxParagraphText(it)
			if text == "" {
				continue
			}
			if docxHeadingLevel(it) > 0 {
				flush()
				current = &document.Section{Heading: text}
				continue
			}
			if body.Len() > 0 {
				body.WriteString("\n\n")
			}
			body.WriteString(text)
		case *docx.Table:
			if text := docxTableText(it); text != "" {
				if body.Len() > 0 {
					body.WriteString("\n\n")
				}
				body.WriteString(text)
			}
		}
	}
	flush()

	return doc, nil
}

// parseDOCX guards against panics in the zip/xml walk on hostile input.
func parseDOCX(data []byte) (d *docx.Docx, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, fmt.Errorf("docx reader panic: %v", r)
		}
	}()
	return docx.Parse(bytes.NewReader(data), int64(len(data)))
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		if style == "title" {
			return 1
		}
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		var run *docx.Run
		switch c := child.(type) {
		case *docx.Run:
			run = c
		case *docx.Hyperlink:
			run = &c.Run
		default:
			continue
		}
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				buf.WriteString(t.Text)
			case *docx.Tab:
				buf.WriteString(" ")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func docxTableText(tbl *docx.Table) string {
	var rows []string
	for _, row := range tbl.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			for _, para := range cell.Paragraphs {
				if t := docxParagraphText(para); t != "" {
					cells = append(cells, t)
				}
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " "))
		}
	}
	return strings.Join(rows, "\n")
}
