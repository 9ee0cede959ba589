package report

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/dgallion1/docfreq/internal/pipeline"
)

// Options selects optional report sections.
type Options struct {
	// FullTable appends every counted word, not just the top N.
	FullTable bool
	// ChartURL and CloudURL are image references, either file paths or
	// data URIs from DataURI. Empty omits the section.
	ChartURL string
	CloudURL string
}

// DataURI embeds PNG bytes as a data URI.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// WriteMarkdown writes res as a Markdown report.
func WriteMarkdown(w io.Writer, res *pipeline.Result, opts Options) error {
	md := markdown.NewMarkdown(w)
	buildMarkdown(md, res, opts)
	if err := md.Build(); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// Markdown renders res as a Markdown string.
func Markdown(res *pipeline.Result, opts Options) (string, error) {
	md := markdown.NewMarkdown(io.Discard)
	buildMarkdown(md, res, opts)
	if err := md.Error(); err != nil {
		return "", fmt.Errorf("build markdown report: %w", err)
	}
	return md.String(), nil
}

func buildMarkdown(md *markdown.Markdown, res *pipeline.Result, opts Options) {
	title := res.Title
	if title == "" {
		title = res.Filename
	}
	md.H1("Word frequency: " + escape(title))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", escape(res.Filename)},
			{"Format", res.Format},
			{"Pages", strconv.Itoa(res.Pages)},
			{"Characters", strconv.Itoa(res.Characters)},
			{"Tokens", strconv.Itoa(res.Tokens)},
			{"Distinct words", strconv.Itoa(res.Distinct)},
			{"Analysis ID", markdown.Code(res.ID)},
			{"SHA-256", markdown.Code(res.ContentHash)},
		},
	})
	md.PlainText("")

	md.H2f("Top %d words", res.TopN)
	md.PlainText("")
	if len(res.Top) == 0 {
		md.PlainText(markdown.Italic("No words left after stopword filtering."))
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(res.Top))
		for i, e := range res.Top {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				e.Word,
				strconv.Itoa(e.Count),
				share(e.Count, res.Tokens),
			})
		}
		md.Table(markdown.TableSet{
			Header:    []string{"Rank", "Word", "Count", "Share"},
			Rows:      rows,
			Alignment: []markdown.TableAlignment{markdown.AlignRight, markdown.AlignLeft, markdown.AlignRight, markdown.AlignRight},
		})
		md.PlainText("")
	}

	if opts.ChartURL != "" {
		md.H2("Bar chart")
		md.PlainText("")
		md.PlainText(markdown.Image("Top words bar chart", opts.ChartURL))
		md.PlainText("")
	}
	if opts.CloudURL != "" {
		md.H2("Word cloud")
		md.PlainText("")
		md.PlainText(markdown.Image("Word cloud", opts.CloudURL))
		md.PlainText("")
	}

	if opts.FullTable && len(res.Table) > 0 {
		md.H2("Word frequency table")
		md.PlainText("")
		rows := make([][]string, 0, len(res.Table))
		for _, e := range res.Table {
			rows = append(rows, []string{e.Word, strconv.Itoa(e.Count)})
		}
		md.Table(markdown.TableSet{
			Header:    []string{"Word", "Frequency"},
			Rows:      rows,
			Alignment: []markdown.TableAlignment{markdown.AlignLeft, markdown.AlignRight},
		})
	}
}

func share(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return strconv.FormatFloat(100*float64(count)/float64(total), 'f', 1, 64) + "%"
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;", "\n", " ", "\r", " ",
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}
