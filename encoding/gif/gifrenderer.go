// Package gif renders training snapshots of a two-input gate as an animated
// gif of its decision surface.
package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/xorgate"
	"github.com/gorgonia/xorgate/gate"
	"github.com/gorgonia/xorgate/matrix"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
	"gorgonia.org/vecf32"
)

var regular *truetype.Font

const (
	dpi        = 72.0
	fontsize   = 10.0
	lineheight = 1.2
	captions   = 2 // name, then iteration and loss
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// globPalette maps index i to gray level i, so a surface value maps straight
// to a palette index.
var globPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return p
}()

// Encoder is a structure that encodes training snapshots according to the
// xorgate.OutputEncoder interface.
//
// Each frame is an H×W plot of the gate's first output over [0,1]², with the
// first input along the x axis and the second input growing downwards,
// followed by a caption.
type Encoder struct {
	H, W int
	font.Drawer

	out *gif.GIF
	io.Writer
	face font.Face

	padH, padW  int // padding so everything don't start at the topleft
	delay       int // per frame, in 100ths of a second
	surface     []float32
	initialized bool
}

// NewGifEncoder with height and width of the plot
func NewGifEncoder(h, w int, wr io.Writer) *Encoder {
	return &Encoder{
		H:      h,
		W:      w,
		Writer: wr,
		padH:   10,
		padW:   10,
		delay:  10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: 0},
	}
}

// Encode a snapshot
func (enc *Encoder) Encode(s xorgate.Snapshot) error {
	g := s.Gate
	if g.Inputs != 2 {
		return errors.Errorf("gif: can only plot a gate with 2 inputs, got %d", g.Inputs)
	}
	if !enc.initialized {
		enc.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.Drawer.Face = enc.face
		enc.surface = make([]float32, enc.H*enc.W)
		enc.initialized = true
	}

	if err := enc.sample(g); err != nil {
		return err
	}

	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	w := enc.W + 2*enc.padW
	h := enc.H + 2*enc.padH + captions*dy
	im := image.NewPaletted(image.Rect(0, 0, w, h), globPalette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	// surface values are in (0, 1); scale them to gray levels
	vecf32.Scale(enc.surface, 255)
	for y := 0; y < enc.H; y++ {
		for x := 0; x < enc.W; x++ {
			v := enc.surface[y*enc.W+x]
			v = math32.Floor(math32.Min(math32.Max(v, 0), 255) + 0.5)
			im.SetColorIndex(enc.padW+x, enc.padH+y, uint8(v))
		}
	}

	enc.Dst = im
	y := enc.padH + enc.H + dy
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(s.Name)
	y += dy
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(fmt.Sprintf("Iteration %d, loss %.4f", s.Iteration, s.Loss))

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, enc.delay)
	return nil
}

// sample runs the gate forward at every plot position. It only touches the
// gate's transient state.
func (enc *Encoder) sample(g *gate.Gate) error {
	saved := g.X.Clone()
	defer matrix.Copy(g.X, saved)

	for y := 0; y < enc.H; y++ {
		for x := 0; x < enc.W; x++ {
			g.X.Set(0, 0, coord(x, enc.W))
			g.X.Set(0, 1, coord(y, enc.H))
			if err := g.Forward(); err != nil {
				return errors.WithMessage(err, "gif")
			}
			enc.surface[y*enc.W+x] = float32(g.A2.At(0, 0))
		}
	}
	return nil
}

// coord maps pixel i of n onto [0, 1].
func coord(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Frames is the number of encoded frames.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("gif: no writer")
	}
	if len(enc.out.Image) == 0 {
		return errors.New("gif: no frames to write")
	}
	// hold the final frame
	enc.out.Delay[len(enc.out.Delay)-1] = 300
	return gif.EncodeAll(enc.Writer, enc.out)
}
