// Package render draws normalized nets as black and white images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
)

var ErrBadOptions = errors.New("render: bad options")

// Options sizes the picture. A tree of the given depth has 1<<Depth leaves,
// painted left to right, top to bottom.
type Options struct {
	Width  int `yaml:"width" validate:"gte=1,lte=8192"`
	Height int `yaml:"height" validate:"gte=1,lte=8192"`
	Depth  int `yaml:"depth" validate:"gte=0,lte=26"`
}

// DefaultOptions paints a depth 16 tree on 256x256 pixels.
var DefaultOptions = Options{Width: 256, Height: 256, Depth: 16}

func (o Options) validate() error {
	if o.Width < 1 || o.Height < 1 || o.Depth < 0 || o.Depth > 26 {
		return fmt.Errorf("%w: %dx%d depth %d", ErrBadOptions, o.Width, o.Height, o.Depth)
	}
	return nil
}

// Tree walks the binary tree hanging from the root of g down to opts.Depth
// and paints one pixel per leaf. A leaf whose first auxiliary port holds an
// eraser is black; any other leaf is white. A subtree that ends before the
// leaf depth paints all of its leaves with the color of its end. Pixels past
// the last leaf stay white.
func Tree(g lang.Graph, opts Options) (*image.Gray, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	img := blank(opts)
	t := &treePainter{g: g, img: img, depth: opts.Depth, limit: opts.Width * opts.Height}
	t.walk(g.Root(), 0)
	return img, nil
}

type treePainter struct {
	g     lang.Graph
	img   *image.Gray
	depth int
	limit int
	pixel int
}

func (t *treePainter) walk(p inet.Ptr, depth int) {
	if t.pixel >= t.limit {
		return
	}
	nd, ok := t.node(p)
	if !ok {
		t.paint(p.IsEra(), 1<<(t.depth-depth))
		return
	}
	if depth == t.depth {
		t.paint(nd.Port[1].IsEra(), 1)
		return
	}
	t.walk(nd.Port[1], depth+1)
	t.walk(nd.Port[2], depth+1)
}

func (t *treePainter) node(p inet.Ptr) (inet.Node, bool) {
	if !p.IsNode() {
		return inet.Node{}, false
	}
	return t.g.NodeAt(p.Addr())
}

func (t *treePainter) paint(black bool, n int) {
	w := t.img.Rect.Dx()
	for ; n > 0 && t.pixel < t.limit; n-- {
		if black {
			t.img.SetGray(t.pixel%w, t.pixel/w, color.Gray{Y: 0x00})
		}
		t.pixel++
	}
}

// List reads the root as a list of rows, each a list of cells, in the
// (0 head tail) encoding. A cell is white unless the first auxiliary port of
// its head holds an eraser. Rendering stops at the end of either list.
func List(g lang.Graph, opts Options) (*image.Gray, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	img := blank(opts)
	cons := func(p inet.Ptr) (inet.Node, bool) {
		if !p.IsNode() {
			return inet.Node{}, false
		}
		return g.NodeAt(p.Addr())
	}
	rows := g.Root()
	for y := 0; y < opts.Height; y++ {
		row, ok := cons(rows)
		if !ok {
			break
		}
		cells := row.Port[1]
		for x := 0; x < opts.Width; x++ {
			cell, ok := cons(cells)
			if !ok {
				break
			}
			if head, ok := cons(cell.Port[1]); ok && head.Port[1].IsEra() {
				img.SetGray(x, y, color.Gray{Y: 0x00})
			}
			cells = cell.Port[2]
		}
		rows = row.Port[2]
	}
	return img, nil
}

func blank(opts Options) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, opts.Width, opts.Height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
