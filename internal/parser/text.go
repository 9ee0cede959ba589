package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docfreq/internal/document"
)

// TextParser handles plain text files.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	br := bufio.NewReader(r)

	doc := &document.Document{
		Title:  trimExt(filename, ".txt"),
		Format: "txt",
	}

	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			doc.Append(&document.Section{Text: current.String()})
			current.Reset()
		}
	}

	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, malformed("txt", err)
		}
		if line == "" && err == io.EOF {
			break
		}
		lineNo++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if !utf8.ValidString(line) {
			return nil, malformed("txt", fmt.Errorf("invalid UTF-8 on line %d", lineNo))
		}
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
		if err == io.EOF {
			break
		}
	}
	flush()

	return doc, nil
}
