// Package export writes kernels to PNG, CSV and JSON.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pthm-cable/glkernel/kernel"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format names accepted by Write.
const (
	FormatPNG  = "png"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ParseFormat normalises a format name.
func ParseFormat(name string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(name))
	switch f {
	case FormatPNG, FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Write encodes v in the named format. count limits CSV and JSON output to
// the first count slots; a negative count writes every slot.
func Write(w io.Writer, format string, v kernel.Variant[float32], count int, opts PNGOptions) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case FormatPNG:
		return PNG(w, v, opts)
	case FormatCSV:
		return CSV(w, v, count)
	default:
		return JSON(w, v, count)
	}
}

// table is a flattened view of a variant: n components per slot in linear
// slot order.
type table struct {
	width, height, depth int
	n                    int
	values               []float32
}

func (t *table) slots() int { return t.width * t.height * t.depth }

func (t *table) slot(i int) []float32 { return t.values[i*t.n : (i+1)*t.n] }

func flatten(v kernel.Variant[float32]) (*table, error) {
	if v.Empty() {
		return nil, kernel.ErrEmptyVariant
	}
	t := &table{
		width:  v.Width(),
		height: v.Height(),
		depth:  v.Depth(),
		n:      v.ComponentCount(),
	}
	t.values = make([]float32, 0, t.slots()*t.n)

	var buf []float32
	var err error
	for z := 0; z < t.depth; z++ {
		for y := 0; y < t.height; y++ {
			for x := 0; x < t.width; x++ {
				buf, err = v.Components(x, y, z, buf)
				if err != nil {
					return nil, err
				}
				t.values = append(t.values, buf...)
			}
		}
	}
	return t, nil
}

// limit clamps a requested slot count to the table.
func (t *table) limit(count int) int {
	if count < 0 || count > t.slots() {
		return t.slots()
	}
	return count
}
