package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/dgallion1/docfreq/internal/freq"
)

// ErrNoWords is returned when there is nothing to draw.
var ErrNoWords = errors.New("render: no words to draw")

// CloudOptions controls word cloud layout. Zero values take defaults.
type CloudOptions struct {
	Width  int
	Height int

	// MaxWords caps how many entries are considered, most frequent first.
	MaxWords int

	MinFontSize int
	// MaxFontSize is the size of the most frequent word before shrinking.
	// Defaults to two fifths of the canvas height.
	MaxFontSize int

	// RelativeScaling in (0,1] weighs frequency against rank when sizing
	// words; 1 sizes proportionally to frequency. Defaults to 0.5.
	RelativeScaling float64

	// VerticalRatio is the share of words drawn rotated by 90 degrees.
	// Unlike the other fields zero is honored; use DefaultVerticalRatio.
	VerticalRatio float64

	Background color.Color
	Seed       uint64
}

const (
	DefaultCloudWidth    = 800
	DefaultCloudHeight   = 400
	DefaultCloudMaxWords = 200
	DefaultVerticalRatio = 0.1

	cloudCell    = 4
	cloudPadding = 1
)

func (o CloudOptions) withDefaults() CloudOptions {
	if o.Width <= 0 {
		o.Width = DefaultCloudWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultCloudHeight
	}
	if o.MaxWords <= 0 {
		o.MaxWords = DefaultCloudMaxWords
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = 4
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = o.Height * 2 / 5
	}
	if o.MaxFontSize < o.MinFontSize {
		o.MaxFontSize = o.MinFontSize
	}
	if o.RelativeScaling <= 0 || o.RelativeScaling > 1 {
		o.RelativeScaling = 0.5
	}
	if o.VerticalRatio < 0 || o.VerticalRatio > 1 {
		o.VerticalRatio = DefaultVerticalRatio
	}
	if o.Background == nil {
		o.Background = color.Black
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	return o
}

// Placement is one word positioned on the canvas.
type Placement struct {
	Word     string
	Count    int
	FontSize int
	// X, Y is the center of the rendered text.
	X, Y     float64
	Vertical bool
	Color    color.RGBA
	Bounds   image.Rectangle
}

// Layout positions up to MaxWords entries without overlap. Words that do not
// fit even at MinFontSize are left out. The result is deterministic for a
// given Seed.
func Layout(entries []freq.Entry, opts CloudOptions) ([]Placement, error) {
	opts = opts.withDefaults()
	words := cloudWords(entries, opts.MaxWords)
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	faces, err := newFaceCache()
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	grid := newOccupancy(opts.Width, opts.Height, cloudCell)

	maxCount := float64(words[0].Count)
	lastFreq := 1.0
	size := opts.MaxFontSize
	var out []Placement

	for i, e := range words {
		f := float64(e.Count) / maxCount
		if i > 0 {
			size = int(math.Round((opts.RelativeScaling*(f/lastFreq) + (1 - opts.RelativeScaling)) * float64(size)))
		}
		if size < opts.MinFontSize {
			break
		}
		vertical := rng.Float64() < opts.VerticalRatio
		start := rng.Float64() * 2 * math.Pi

		p, ok := placeWord(grid, faces, e.Word, size, vertical, start, opts)
		if !ok {
			// the canvas is full at the minimum size
			break
		}
		size = p.FontSize
		lastFreq = f
		p.Count = e.Count
		p.Color = Viridis(rng.Float64())
		grid.mark(p.box())
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoWords
	}
	return out, nil
}

// WordCloud renders entries as a word cloud image.
func WordCloud(entries []freq.Entry, opts CloudOptions) (image.Image, error) {
	opts = opts.withDefaults()
	placements, err := Layout(entries, opts)
	if err != nil {
		return nil, err
	}

	faces, err := newFaceCache()
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()
	for _, p := range placements {
		dc.SetFontFace(faces.face(p.FontSize))
		dc.SetColor(p.Color)
		if p.Vertical {
			dc.Push()
			dc.RotateAbout(gg.Radians(-90), p.X, p.Y)
			dc.DrawStringAnchored(p.Word, p.X, p.Y, 0.5, 0.5)
			dc.Pop()
			continue
		}
		dc.DrawStringAnchored(p.Word, p.X, p.Y, 0.5, 0.5)
	}
	return dc.Image(), nil
}

func cloudWords(entries []freq.Entry, max int) []freq.Entry {
	words := make([]freq.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Word != "" && e.Count > 0 {
			words = append(words, e)
		}
	}
	sort.SliceStable(words, func(i, j int) bool { return words[i].Count > words[j].Count })
	if len(words) > max {
		words = words[:max]
	}
	return words
}

// placeWord tries the preferred orientation, then the other one, shrinking
// the font until the word fits or drops below the minimum size.
func placeWord(grid *occupancy, faces *faceCache, word string, size int, vertical bool, start float64, opts CloudOptions) (Placement, bool) {
	for ; size >= opts.MinFontSize; size = shrink(size) {
		face := faces.face(size)
		for _, v := range []bool{vertical, !vertical} {
			rel := textBox(face, word, v)
			if cx, cy, ok := spiralSearch(grid, rel, opts.Width, opts.Height, start); ok {
				return Placement{
					Word:     word,
					FontSize: size,
					X:        cx,
					Y:        cy,
					Vertical: v,
					Bounds:   rectOf(rel.shift(cx, cy)),
				}, true
			}
		}
	}
	return Placement{}, false
}

func shrink(size int) int {
	step := size / 10
	if step < 1 {
		step = 1
	}
	return size - step
}

// textBox is the ink box of word drawn centered on the origin, matching how
// gg anchors text: the baseline sits half the line height below the anchor.
func textBox(face font.Face, word string, vertical bool) box {
	w := float64(font.MeasureString(face, word)) / 64
	m := face.Metrics()
	h := float64(m.Height) / 64
	top := h/2 - float64(m.Ascent.Ceil()) - cloudPadding
	bottom := h/2 + float64(m.Descent.Ceil()) + cloudPadding
	half := w/2 + cloudPadding
	if vertical {
		// rotating by -90 degrees maps (dx, dy) to (dy, -dx)
		return box{top, -half, bottom, half}
	}
	return box{-half, top, half, bottom}
}

// spiralSearch walks an elliptical archimedean spiral out from the canvas
// center in cell-sized steps and returns the first center where rel fits.
func spiralSearch(grid *occupancy, rel box, width, height int, start float64) (float64, float64, bool) {
	if rel.x1-rel.x0 > float64(width) || rel.y1-rel.y0 > float64(height) {
		return 0, 0, false
	}
	cx, cy := float64(width)/2, float64(height)/2
	aspect := float64(width) / float64(height)
	step := float64(grid.cell)
	spacing := step / (2 * math.Pi)
	maxR := math.Hypot(cx/aspect, cy)

	for theta := 0.0; ; {
		r := spacing * theta
		if r > maxR {
			return 0, 0, false
		}
		x := math.Round(cx + r*math.Cos(theta+start)*aspect)
		y := math.Round(cy + r*math.Sin(theta+start))
		if grid.free(rel.shift(x, y)) {
			return x, y, true
		}
		theta += step / math.Max(r*aspect, step)
	}
}

func (p Placement) box() box {
	return box{float64(p.Bounds.Min.X), float64(p.Bounds.Min.Y), float64(p.Bounds.Max.X), float64(p.Bounds.Max.Y)}
}

func rectOf(b box) image.Rectangle {
	return image.Rect(int(math.Floor(b.x0)), int(math.Floor(b.y0)), int(math.Ceil(b.x1)), int(math.Ceil(b.y1)))
}
