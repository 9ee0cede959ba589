package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/dgallion1/docfreq/internal/freq"
)

// ChartOptions controls the bar chart. Zero values take defaults.
type ChartOptions struct {
	Width int
	// BarHeight is the height of one bar row; the image height follows
	// from the number of entries.
	BarHeight int
	FontSize  int
	Title     string

	Background color.Color
	Foreground color.Color
}

const (
	DefaultChartWidth = 800

	chartMargin = 16
	chartGap    = 4
)

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width <= 0 {
		o.Width = DefaultChartWidth
	}
	if o.BarHeight <= 0 {
		o.BarHeight = 22
	}
	if o.FontSize <= 0 {
		o.FontSize = 13
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Foreground == nil {
		o.Foreground = color.Black
	}
	return o
}

// BarChart draws one horizontal bar per entry, longest first, with the word
// on the left and the count at the end of the bar.
func BarChart(entries []freq.Entry, opts ChartOptions) (image.Image, error) {
	opts = opts.withDefaults()
	if len(entries) == 0 {
		return nil, ErrNoWords
	}

	faces, err := newFaceCache()
	if err != nil {
		return nil, err
	}
	defer faces.Close()
	face := faces.face(opts.FontSize)

	titleRows := 0
	if opts.Title != "" {
		titleRows = 1
	}
	height := 2*chartMargin + (len(entries)+titleRows)*(opts.BarHeight+chartGap)

	dc := gg.NewContext(opts.Width, height)
	dc.SetColor(opts.Background)
	dc.Clear()
	dc.SetFontFace(face)

	maxCount := 0
	labelW := 0.0
	countW := 0.0
	for _, e := range entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
		w, _ := dc.MeasureString(e.Word)
		if w > labelW {
			labelW = w
		}
		cw, _ := dc.MeasureString(strconv.Itoa(e.Count))
		if cw > countW {
			countW = cw
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	y := float64(chartMargin)
	if opts.Title != "" {
		dc.SetColor(opts.Foreground)
		dc.DrawStringAnchored(opts.Title, float64(opts.Width)/2, y+float64(opts.BarHeight)/2, 0.5, 0.5)
		y += float64(opts.BarHeight + chartGap)
	}

	barX := chartMargin + labelW + 8
	barMax := float64(opts.Width) - barX - countW - 8 - chartMargin
	if barMax < 1 {
		barMax = 1
	}

	for i, e := range entries {
		mid := y + float64(opts.BarHeight)/2
		dc.SetColor(opts.Foreground)
		dc.DrawStringAnchored(e.Word, barX-8, mid, 1, 0.5)

		w := barMax * float64(e.Count) / float64(maxCount)
		t := 0.0
		if len(entries) > 1 {
			t = float64(i) / float64(len(entries)-1)
		}
		dc.SetColor(Viridis(t))
		dc.DrawRectangle(barX, y, w, float64(opts.BarHeight))
		dc.Fill()

		dc.SetColor(opts.Foreground)
		dc.DrawStringAnchored(strconv.Itoa(e.Count), barX+w+4, mid, 0, 0.5)
		y += float64(opts.BarHeight + chartGap)
	}
	return dc.Image(), nil
}
