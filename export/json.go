package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pthm-cable/glkernel/kernel"
)

// Document is the JSON layout of an exported kernel.
type Document struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Depth      int         `json:"depth"`
	Components int         `json:"components"`
	Count      int         `json:"count"`
	Kernel     [][]float32 `json:"kernel"`
}

// JSON writes the first count slots of v as a Document.
func JSON(w io.Writer, v kernel.Variant[float32], count int) error {
	t, err := flatten(v)
	if err != nil {
		return err
	}

	n := t.limit(count)
	doc := Document{
		Width:      t.width,
		Height:     t.height,
		Depth:      t.depth,
		Components: t.n,
		Count:      n,
		Kernel:     make([][]float32, n),
	}
	for i := range doc.Kernel {
		doc.Kernel[i] = t.slot(i)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}
