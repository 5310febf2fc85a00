// Package kernel provides the dense storage that sampling patterns are
// written into.
//
// A Kernel holds width*height*depth slots of fixed-width tuples (Vec1..Vec4)
// in row-major (z, y, x) order. It is pure storage with bounds-checked
// indexing; filling it is the job of the sample and noise packages.
package kernel

import "fmt"

// Kernel is a resizable grid of N-component tuples. The component count is
// fixed by V and the precision by T.
type Kernel[T Float, V Tuple[T]] struct {
	width  int
	height int
	depth  int
	data   []V
}

// Single-precision instantiations, one per component count.
type (
	Kernel1 = Kernel[float32, Vec1[float32]]
	Kernel2 = Kernel[float32, Vec2[float32]]
	Kernel3 = Kernel[float32, Vec3[float32]]
	Kernel4 = Kernel[float32, Vec4[float32]]
)

// New allocates a zeroed kernel. Use depth 1 for 2D kernels.
func New[T Float, V Tuple[T]](width, height, depth int) (*Kernel[T, V], error) {
	k := &Kernel[T, V]{}
	if err := k.Resize(width, height, depth); err != nil {
		return nil, err
	}
	return k, nil
}

// Resize reallocates storage for the new dimensions. Prior contents are
// discarded even if the capacity does not change.
func (k *Kernel[T, V]) Resize(width, height, depth int) error {
	if width < 1 || height < 1 || depth < 1 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, depth)
	}
	k.width = width
	k.height = height
	k.depth = depth
	k.data = make([]V, width*height*depth)
	return nil
}

// Width returns the extent along x.
func (k *Kernel[T, V]) Width() int { return k.width }

// Height returns the extent along y.
func (k *Kernel[T, V]) Height() int { return k.height }

// Depth returns the extent along z (1 for 2D kernels).
func (k *Kernel[T, V]) Depth() int { return k.depth }

// Size returns the capacity, width*height*depth.
func (k *Kernel[T, V]) Size() int { return len(k.data) }

// ComponentCount returns the number of components per slot.
func (k *Kernel[T, V]) ComponentCount() int { return Len[T, V]() }

// Index returns the linear slot index of (x, y, z).
func (k *Kernel[T, V]) Index(x, y, z int) (int, error) {
	if x < 0 || x >= k.width || y < 0 || y >= k.height || z < 0 || z >= k.depth {
		return 0, fmt.Errorf("%w: (%d, %d, %d) not in %dx%dx%d",
			ErrOutOfRange, x, y, z, k.width, k.height, k.depth)
	}
	return (z*k.height+y)*k.width + x, nil
}

// Value returns the tuple stored at (x, y, z).
func (k *Kernel[T, V]) Value(x, y, z int) (V, error) {
	i, err := k.Index(x, y, z)
	if err != nil {
		var zero V
		return zero, err
	}
	return k.data[i], nil
}

// Set stores v at (x, y, z).
func (k *Kernel[T, V]) Set(x, y, z int, v V) error {
	i, err := k.Index(x, y, z)
	if err != nil {
		return err
	}
	k.data[i] = v
	return nil
}

// At returns the tuple at linear index i.
func (k *Kernel[T, V]) At(i int) (V, error) {
	if i < 0 || i >= len(k.data) {
		var zero V
		return zero, fmt.Errorf("%w: slot %d of %d", ErrOutOfRange, i, len(k.data))
	}
	return k.data[i], nil
}

// SetAt stores v at linear index i.
func (k *Kernel[T, V]) SetAt(i int, v V) error {
	if i < 0 || i >= len(k.data) {
		return fmt.Errorf("%w: slot %d of %d", ErrOutOfRange, i, len(k.data))
	}
	k.data[i] = v
	return nil
}

// Clear zeroes every slot without changing the dimensions.
func (k *Kernel[T, V]) Clear() {
	clear(k.data)
}

// Values returns a copy of the slots in linear order.
func (k *Kernel[T, V]) Values() []V {
	out := make([]V, len(k.data))
	copy(out, k.data)
	return out
}
