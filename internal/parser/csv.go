package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docfreq/internal/document"
)

// CSVParser handles CSV files. Header and data cells are all treated as text.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	doc := &document.Document{
		Title:  trimExt(filename, ".csv"),
		Format: "csv",
	}

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed("csv", fmt.Errorf("row %d: %w", row, err))
		}
		doc.Append(&document.Section{Text: strings.Join(record, " ")})
	}

	return doc, nil
}
