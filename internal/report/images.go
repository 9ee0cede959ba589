package report

import (
	"bytes"
	"strconv"

	"github.com/dgallion1/docfreq/internal/pipeline"
	"github.com/dgallion1/docfreq/internal/render"
)

// Images holds PNG renderings of a result. Both are nil when the document
// has no countable words.
type Images struct {
	Chart []byte
	Cloud []byte
}

// CloudPNG renders the word cloud of every counted word. A zero seed is
// derived from the content hash so the same document always renders the
// same cloud.
func CloudPNG(res *pipeline.Result, opts render.CloudOptions) ([]byte, error) {
	if opts.Seed == 0 {
		opts.Seed = seedFromHash(res.ContentHash)
	}
	entries := res.Table
	if len(entries) == 0 {
		entries = res.Top
	}
	img, err := render.WordCloud(entries, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChartPNG renders the top-N bar chart.
func ChartPNG(res *pipeline.Result, opts render.ChartOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Top " + strconv.Itoa(len(res.Top)) + " words"
	}
	img, err := render.BarChart(res.Top, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderImages renders both images, or none when there is nothing to draw.
func RenderImages(res *pipeline.Result, cloud render.CloudOptions, chart render.ChartOptions) (Images, error) {
	if len(res.Top) == 0 {
		return Images{}, nil
	}
	chartPNG, err := ChartPNG(res, chart)
	if err != nil {
		return Images{}, err
	}
	cloudPNG, err := CloudPNG(res, cloud)
	if err != nil {
		return Images{}, err
	}
	return Images{Chart: chartPNG, Cloud: cloudPNG}, nil
}

// DataURIs returns Options that embed imgs inline.
func (imgs Images) DataURIs(fullTable bool) Options {
	opts := Options{FullTable: fullTable}
	if imgs.Chart != nil {
		opts.ChartURL = DataURI(imgs.Chart)
	}
	if imgs.Cloud != nil {
		opts.CloudURL = DataURI(imgs.Cloud)
	}
	return opts
}

func seedFromHash(hash string) uint64 {
	if len(hash) >= 16 {
		if v, err := strconv.ParseUint(hash[:16], 16, 64); err == nil && v != 0 {
			return v
		}
	}
	return 1
}
