package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/glkernel/kernel"
)

// PointRecord is one CSV row. Components beyond the kernel's count are
// left empty.
type PointRecord struct {
	Index int      `csv:"index"`
	X     int      `csv:"x"`
	Y     int      `csv:"y"`
	Z     int      `csv:"z"`
	C0    *float32 `csv:"c0,omitempty"`
	C1    *float32 `csv:"c1,omitempty"`
	C2    *float32 `csv:"c2,omitempty"`
	C3    *float32 `csv:"c3,omitempty"`
}

// CSV writes one row per slot.
func CSV(w io.Writer, v kernel.Variant[float32], count int) error {
	t, err := flatten(v)
	if err != nil {
		return err
	}

	n := t.limit(count)
	records := make([]PointRecord, n)
	for i := range records {
		s := t.slot(i)
		rec := PointRecord{
			Index: i,
			X:     i % t.width,
			Y:     (i / t.width) % t.height,
			Z:     i / (t.width * t.height),
		}
		cs := []**float32{&rec.C0, &rec.C1, &rec.C2, &rec.C3}
		for j := range s {
			c := s[j]
			*cs[j] = &c
		}
		records[i] = rec
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
