package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docfreq/internal/freq"
	"github.com/dgallion1/docfreq/internal/pipeline"
	"github.com/dgallion1/docfreq/internal/report"
	"github.com/stretchr/testify/require"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		ID:          "0b7c1e9a-2f51-4b4e-9d8e-3a8f0d0d6c11",
		ContentHash: "abc123",
		Filename:    "pets|v2.pdf",
		Title:       "Pets",
		Format:      "pdf",
		Pages:       2,
		Characters:  64,
		Tokens:      6,
		Distinct:    3,
		TopN:        5,
		Top:         []freq.Entry{{Word: "cat", Count: 3}, {Word: "dog", Count: 2}, {Word: "bird", Count: 1}},
		Table:       []freq.Entry{{Word: "cat", Count: 3}, {Word: "dog", Count: 2}, {Word: "bird", Count: 1}},
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMarkdown_Sections(t *testing.T) {
	out, err := report.Markdown(sampleResult(), report.Options{FullTable: true, ChartURL: "chart.png", CloudURL: "cloud.png"})
	require.NoError(t, err)

	require.Contains(t, out, "# Word frequency: Pets")
	require.Contains(t, out, `| File | pets\|v2.pdf |`)
	require.Contains(t, out, "## Top 5 words")
	require.Contains(t, out, "| 1 | cat | 3 | 50.0% |")
	require.Contains(t, out, "| 3 | bird | 1 | 16.7% |")
	require.Contains(t, out, "![Top words bar chart](chart.png)")
	require.Contains(t, out, "![Word cloud](cloud.png)")
	require.Contains(t, out, "## Word frequency table")
	require.Contains(t, out, "| dog | 2 |")

	// chart, then cloud, then the full table
	chart := strings.Index(out, "## Bar chart")
	cloud := strings.Index(out, "## Word cloud")
	table := strings.Index(out, "## Word frequency table")
	require.True(t, chart < cloud && cloud < table, "unexpected section order")
}

func TestMarkdown_OmitsOptionalSections(t *testing.T) {
	out, err := report.Markdown(sampleResult(), report.Options{})
	require.NoError(t, err)
	require.NotContains(t, out, "## Bar chart")
	require.NotContains(t, out, "## Word cloud")
	require.NotContains(t, out, "## Word frequency table")
}

func TestMarkdown_NoWords(t *testing.T) {
	res := sampleResult()
	res.Top, res.Table, res.Tokens, res.Distinct = []freq.Entry{}, nil, 0, 0
	out, err := report.Markdown(res, report.Options{FullTable: true})
	require.NoError(t, err)
	require.Contains(t, out, "No words left after stopword filtering.")
	require.NotContains(t, out, "| Rank |")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteMarkdown(&buf, sampleResult(), report.Options{}))
	want, err := report.Markdown(sampleResult(), report.Options{})
	require.NoError(t, err)
	require.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, sampleResult(), false, false))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "pdf", got["format"])
	require.Equal(t, float64(6), got["tokens"])
	require.NotContains(t, got, "table")
	require.Len(t, got["top"], 3)

	buf.Reset()
	require.NoError(t, report.WriteJSON(&buf, sampleResult(), true, true))
	require.Contains(t, buf.String(), "\n  \"table\": [")
}

func TestWriteJSON_DoesNotMutateResult(t *testing.T) {
	res := sampleResult()
	require.NoError(t, report.WriteJSON(&bytes.Buffer{}, res, false, false))
	require.Len(t, res.Table, 3)
}

func TestHTMLFragment(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	frag, err := report.HTMLFragment(sampleResult(), report.Options{CloudURL: report.DataURI(png)})
	require.NoError(t, err)

	html := string(frag)
	require.Contains(t, html, "<h1>Word frequency: Pets</h1>")
	require.Contains(t, html, "<table>")
	require.Contains(t, html, ">cat</td>")
	require.Contains(t, html, `src="data:image/png;base64,iVBORw=="`)
}

func TestHTMLFragment_EscapesTitle(t *testing.T) {
	res := sampleResult()
	res.Title = "<script>alert(1)</script>"
	frag, err := report.HTMLFragment(res, report.Options{})
	require.NoError(t, err)
	require.NotContains(t, string(frag), "<script>")
}

func TestWritePage(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewPage(0)
	p.Error = "unsupported file format: .exe"
	require.NoError(t, report.WritePage(&buf, p))

	out := buf.String()
	require.Contains(t, out, `name="file"`)
	require.Contains(t, out, `name="top_n" min="5" max="50" value="20"`)
	require.Contains(t, out, "unsupported file format: .exe")
}

func TestNewPage_Clamps(t *testing.T) {
	require.Equal(t, 50, report.NewPage(99).TopN)
	require.Equal(t, 5, report.NewPage(1).TopN)
}
