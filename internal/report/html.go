package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dgallion1/docfreq/internal/freq"
	"github.com/dgallion1/docfreq/internal/pipeline"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTMLFragment renders the Markdown report to HTML.
func HTMLFragment(res *pipeline.Result, opts Options) (template.HTML, error) {
	src, err := Markdown(res, opts)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	// goldmark escapes raw HTML and drops unsafe URLs by default.
	return template.HTML(buf.String()), nil //nolint:gosec
}

// Page is the data behind the upload page.
type Page struct {
	TopN   int
	MinTop int
	MaxTop int
	Error  string
	Report template.HTML
}

// NewPage returns an upload page with the form preset to topN.
func NewPage(topN int) Page {
	return Page{TopN: freq.ClampTopN(topN), MinTop: freq.MinTopN, MaxTop: freq.MaxTopN}
}

// WritePage renders the upload form followed by the report, if any.
func WritePage(w io.Writer, p Page) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Document word frequency</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; padding: 0 1em; color: #222; }
form { padding: 1em; border: 1px solid #ccc; border-radius: 6px; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ddd; padding: 4px 10px; }
img { max-width: 100%; }
.error { color: #a00; font-weight: bold; }
</style>
</head>
<body>
<h1>Document word frequency</h1>
<form method="post" action="/" enctype="multipart/form-data">
<p><input type="file" name="file" accept=".pdf,.txt,.md,.markdown,.html,.htm,.docx,.csv" required></p>
<p><label>Top words: <input type="number" name="top_n" min="{{.MinTop}}" max="{{.MaxTop}}" value="{{.TopN}}"></label></p>
<p><button type="submit">Analyze</button></p>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{.Report}}
</body>
</html>
`))
