package export

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/glkernel/kernel"
)

func ramp1(t *testing.T, w, h int) kernel.Variant[float32] {
	t.Helper()
	k, err := kernel.New[float32, kernel.Vec1[float32]](w, h, 1)
	require.NoError(t, err)
	for i := 0; i < k.Size(); i++ {
		require.NoError(t, k.SetAt(i, kernel.Vec1[float32]{float32(i)}))
	}
	return kernel.Wrap1(k)
}

func points2(t *testing.T) kernel.Variant[float32] {
	t.Helper()
	k, err := kernel.New[float32, kernel.Vec2[float32]](2, 2, 1)
	require.NoError(t, err)
	pts := []kernel.Vec2[float32]{{0, 0}, {0.5, 1}, {1, 0.5}, {0.25, 0.75}}
	for i, p := range pts {
		require.NoError(t, k.SetAt(i, p))
	}
	return kernel.Wrap2(k)
}

func TestPNGGray16(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, ramp1(t, 2, 2), PNGOptions{}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	g, ok := img.(*image.Gray16)
	require.True(t, ok, "got %T", img)
	require.Equal(t, image.Rect(0, 0, 2, 2), g.Bounds())

	require.Equal(t, uint16(0), g.Gray16At(0, 0).Y)
	require.Equal(t, uint16(21845), g.Gray16At(1, 0).Y)
	require.Equal(t, uint16(43690), g.Gray16At(0, 1).Y)
	require.Equal(t, uint16(65535), g.Gray16At(1, 1).Y)
}

func TestPNGTwoComponents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, points2(t), PNGOptions{}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	m, ok := img.(*image.NRGBA64)
	require.True(t, ok, "got %T", img)

	c := m.NRGBA64At(1, 0) // (0.5, 1)
	require.Equal(t, uint16(32768), c.R)
	require.Equal(t, c.R, c.G)
	require.Equal(t, c.R, c.B)
	require.Equal(t, uint16(65535), c.A)

	c = m.NRGBA64At(0, 0)
	require.Equal(t, uint16(0), c.R)
	require.Equal(t, uint16(0), c.A)
}

func TestPNGConstantComponent(t *testing.T) {
	k, err := kernel.New[float32, kernel.Vec3[float32]](2, 1, 1)
	require.NoError(t, err)
	require.NoError(t, k.SetAt(0, kernel.Vec3[float32]{1, 7, 0}))
	require.NoError(t, k.SetAt(1, kernel.Vec3[float32]{2, 7, 1}))

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, kernel.Wrap3(k), PNGOptions{}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	r, g, b, a := img.At(1, 0).RGBA()
	require.Equal(t, uint32(65535), r)
	require.Equal(t, uint32(0), g, "constant component maps to 0")
	require.Equal(t, uint32(65535), b)
	require.Equal(t, uint32(65535), a, "three components are opaque")
}

func TestPNGOnlyFirstLayer(t *testing.T) {
	k, err := kernel.New[float32, kernel.Vec4[float32]](3, 2, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, kernel.Wrap4(k), PNGOptions{}))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Width)
	require.Equal(t, 2, cfg.Height)
}

func TestPNGScale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, points2(t), PNGOptions{Scale: 3}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	m := img.(*image.NRGBA64)
	require.Equal(t, image.Rect(0, 0, 6, 6), m.Bounds())

	// transparent source pixel keeps its colour
	for y := 3; y < 6; y++ {
		for x := 3; x < 6; x++ {
			c := m.NRGBA64At(x, y)
			require.Equal(t, uint16(16384), c.R)
			require.Equal(t, uint16(49151), c.A)
		}
	}

	buf.Reset()
	require.NoError(t, PNG(&buf, ramp1(t, 2, 2), PNGOptions{Scale: 2}))
	img, err = png.Decode(&buf)
	require.NoError(t, err)
	g := img.(*image.Gray16)
	require.Equal(t, uint16(65535), g.Gray16At(3, 3).Y)
	require.Equal(t, uint16(21845), g.Gray16At(2, 1).Y)
}

func TestEmptyVariant(t *testing.T) {
	var empty kernel.Variant[float32]
	var buf bytes.Buffer
	require.ErrorIs(t, PNG(&buf, empty, PNGOptions{}), kernel.ErrEmptyVariant)
	require.ErrorIs(t, CSV(&buf, empty, -1), kernel.ErrEmptyVariant)
	require.ErrorIs(t, JSON(&buf, empty, -1), kernel.ErrEmptyVariant)
	require.Zero(t, buf.Len())
}

func TestWritePNGFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "k.png")
	require.NoError(t, WritePNGFile(path, points2(t), PNGOptions{}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)

	bad := filepath.Join(dir, "empty.png")
	require.ErrorIs(t, WritePNGFile(bad, kernel.Variant[float32]{}, PNGOptions{}), kernel.ErrEmptyVariant)
	_, err = os.Stat(bad)
	require.True(t, os.IsNotExist(err), "partial file removed")

	require.Error(t, WritePNGFile(filepath.Join(dir, "missing", "k.png"), points2(t), PNGOptions{}))
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, points2(t), 3))

	header, _, _ := strings.Cut(buf.String(), "\n")
	require.Equal(t, "index,x,y,z,c0,c1,c2,c3", header)

	var rows []PointRecord
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &rows))
	require.Len(t, rows, 3)

	r := rows[2]
	require.Equal(t, 2, r.Index)
	require.Equal(t, 0, r.X)
	require.Equal(t, 1, r.Y)
	require.Equal(t, 0, r.Z)
	require.NotNil(t, r.C0)
	require.NotNil(t, r.C1)
	require.Equal(t, float32(1), *r.C0)
	require.Equal(t, float32(0.5), *r.C1)
	require.Nil(t, r.C2)
	require.Nil(t, r.C3)
}

func TestCSVAllSlots(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, ramp1(t, 3, 2), -1))
	var rows []PointRecord
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &rows))
	require.Len(t, rows, 6)
	require.Equal(t, float32(5), *rows[5].C0)
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, points2(t), 2))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, 2, doc.Width)
	require.Equal(t, 2, doc.Height)
	require.Equal(t, 1, doc.Depth)
	require.Equal(t, 2, doc.Components)
	require.Equal(t, 2, doc.Count)
	require.Equal(t, [][]float32{{0, 0}, {0.5, 1}}, doc.Kernel)

	buf.Reset()
	require.NoError(t, JSON(&buf, points2(t), 100))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, 4, doc.Count)
}

func TestWriteFormats(t *testing.T) {
	for _, format := range []string{"png", "CSV", " json "} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, format, points2(t), -1, PNGOptions{}))
			require.NotZero(t, buf.Len())
		})
	}

	var buf bytes.Buffer
	require.ErrorIs(t, Write(&buf, "exr", points2(t), -1, PNGOptions{}), ErrUnknownFormat)
}

func TestScale16(t *testing.T) {
	require.Equal(t, uint16(0), scale16(3, 3, 3))
	require.Equal(t, uint16(0), scale16(-1, 0, 1))
	require.Equal(t, uint16(math.MaxUint16), scale16(2, 0, 1))
	require.Equal(t, uint16(32768), scale16(0.5, 0, 1))
}

func TestLoggerReportsScaling(t *testing.T) {
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError), "silent by default")

	var out bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&out, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	require.NoError(t, PNG(io.Discard, points2(t), PNGOptions{}))
	require.Contains(t, out.String(), `"msg":"png scaling"`)
	require.Contains(t, out.String(), `"components":2`)

	SetLogger(nil)
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
