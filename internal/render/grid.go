package render

import "math"

// occupancy tracks filled canvas cells and answers "is this box empty" in
// constant time through a summed-area table.
type occupancy struct {
	cell          int
	width, height float64
	gw, gh        int
	filled        []bool
	sat           []int32 // (gw+1)*(gh+1)
	used          int
}

func newOccupancy(width, height, cell int) *occupancy {
	if cell < 1 {
		cell = 1
	}
	gw := (width + cell - 1) / cell
	gh := (height + cell - 1) / cell
	return &occupancy{
		cell:   cell,
		width:  float64(width),
		height: float64(height),
		gw:     gw,
		gh:     gh,
		filled: make([]bool, gw*gh),
		sat:    make([]int32, (gw+1)*(gh+1)),
	}
}

// cells converts a pixel box to an inclusive-exclusive cell range. ok is
// false when the box leaves the canvas.
func (o *occupancy) cells(b box) (x0, y0, x1, y1 int, ok bool) {
	if b.x0 < 0 || b.y0 < 0 || b.x1 > o.width || b.y1 > o.height {
		return 0, 0, 0, 0, false
	}
	x0 = int(math.Floor(b.x0 / float64(o.cell)))
	y0 = int(math.Floor(b.y0 / float64(o.cell)))
	x1 = int(math.Ceil(b.x1 / float64(o.cell)))
	y1 = int(math.Ceil(b.y1 / float64(o.cell)))
	if x1 > o.gw || y1 > o.gh || x1 <= x0 || y1 <= y0 {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1, y1, true
}

func (o *occupancy) free(b box) bool {
	x0, y0, x1, y1, ok := o.cells(b)
	if !ok {
		return false
	}
	if (x1-x0)*(y1-y0) > len(o.filled)-o.used {
		return false
	}
	w := o.gw + 1
	sum := o.sat[y1*w+x1] - o.sat[y0*w+x1] - o.sat[y1*w+x0] + o.sat[y0*w+x0]
	return sum == 0
}

func (o *occupancy) mark(b box) {
	x0, y0, x1, y1, ok := o.cells(b)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := y*o.gw + x
			if !o.filled[i] {
				o.filled[i] = true
				o.used++
			}
		}
	}
	o.rebuild()
}

func (o *occupancy) rebuild() {
	w := o.gw + 1
	for y := 1; y <= o.gh; y++ {
		var row int32
		for x := 1; x <= o.gw; x++ {
			if o.filled[(y-1)*o.gw+(x-1)] {
				row++
			}
			o.sat[y*w+x] = o.sat[(y-1)*w+x] + row
		}
	}
}

// box is an axis-aligned pixel rectangle, x1/y1 exclusive.
type box struct {
	x0, y0, x1, y1 float64
}

func (b box) shift(dx, dy float64) box {
	return box{b.x0 + dx, b.y0 + dy, b.x1 + dx, b.y1 + dy}
}
