package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/pthm-cable/glkernel/kernel"
)

// PNGOptions controls PNG encoding.
type PNGOptions struct {
	// Scale is the nearest-neighbour upscale factor. Values below 2 write
	// one pixel per slot.
	Scale int
}

// PNG writes depth layer 0 of v as a 16-bit image. Each component is
// rescaled from its min/max over all values to [0, 65535]; a constant
// component maps to 0.
//
// Component layout: 1 gray, 2 gray+alpha, 3 RGB, 4 RGBA.
func PNG(w io.Writer, v kernel.Variant[float32], opts PNGOptions) error {
	t, err := flatten(v)
	if err != nil {
		return err
	}

	lo, hi := t.ranges()
	Logger().Info("png scaling", "components", t.n, "min", lo, "max", hi)

	var img image.Image
	rect := image.Rect(0, 0, t.width, t.height)
	if t.n == 1 {
		g := image.NewGray16(rect)
		for i := 0; i < t.width*t.height; i++ {
			g.SetGray16(i%t.width, i/t.width, color.Gray16{Y: scale16(t.slot(i)[0], lo[0], hi[0])})
		}
		img = g
	} else {
		m := image.NewNRGBA64(rect)
		for i := 0; i < t.width*t.height; i++ {
			s := t.slot(i)
			var c [4]uint16
			for j := range s {
				c[j] = scale16(s[j], lo[j], hi[j])
			}
			var px color.NRGBA64
			switch t.n {
			case 2:
				px = color.NRGBA64{R: c[0], G: c[0], B: c[0], A: c[1]}
			case 3:
				px = color.NRGBA64{R: c[0], G: c[1], B: c[2], A: math.MaxUint16}
			default:
				px = color.NRGBA64{R: c[0], G: c[1], B: c[2], A: c[3]}
			}
			m.SetNRGBA64(i%t.width, i/t.width, px)
		}
		img = m
	}

	if opts.Scale > 1 {
		img = upscale(img, opts.Scale)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WritePNGFile writes v to path. A partially written file is removed on
// failure.
func WritePNGFile(path string, v kernel.Variant[float32], opts PNGOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing png: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return PNG(f, v, opts)
}

// ranges returns the per-component min and max over all slots.
func (t *table) ranges() (lo, hi []float32) {
	lo = make([]float32, t.n)
	hi = make([]float32, t.n)
	for j := 0; j < t.n; j++ {
		lo[j] = float32(math.Inf(1))
		hi[j] = float32(math.Inf(-1))
	}
	for i := 0; i < t.slots(); i++ {
		for j, c := range t.slot(i) {
			lo[j] = min(lo[j], c)
			hi[j] = max(hi[j], c)
		}
	}
	return lo, hi
}

func scale16(c, lo, hi float32) uint16 {
	if !(hi > lo) {
		return 0
	}
	f := (float64(c) - float64(lo)) / (float64(hi) - float64(lo))
	return uint16(math.Round(min(max(f, 0), 1) * math.MaxUint16))
}

// upscale enlarges img by factor with nearest-neighbour sampling. NRGBA64
// is scaled one channel at a time as Gray16 planes so that transparent
// pixels keep their colour.
func upscale(img image.Image, factor int) image.Image {
	switch src := img.(type) {
	case *image.Gray16:
		return scalePlane(src, factor)
	case *image.NRGBA64:
		b := src.Bounds()
		var planes [4]*image.Gray16
		for ch := range planes {
			p := image.NewGray16(b)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					c := src.NRGBA64At(x, y)
					p.SetGray16(x, y, color.Gray16{Y: [4]uint16{c.R, c.G, c.B, c.A}[ch]})
				}
			}
			planes[ch] = scalePlane(p, factor)
		}
		dst := image.NewNRGBA64(planes[0].Bounds())
		for i := 0; i < len(dst.Pix)/8; i++ {
			x, y := i%dst.Rect.Dx(), i/dst.Rect.Dx()
			dst.SetNRGBA64(x, y, color.NRGBA64{
				R: planes[0].Gray16At(x, y).Y,
				G: planes[1].Gray16At(x, y).Y,
				B: planes[2].Gray16At(x, y).Y,
				A: planes[3].Gray16At(x, y).Y,
			})
		}
		return dst
	}
	return img
}

func scalePlane(src *image.Gray16, factor int) *image.Gray16 {
	b := src.Bounds()
	dst := image.NewGray16(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
