package kernel

// Variant holds exactly one kernel of component count 1..4 and tags which.
// The zero Variant is empty.
type Variant[T Float] struct {
	n  int
	k1 *Kernel[T, Vec1[T]]
	k2 *Kernel[T, Vec2[T]]
	k3 *Kernel[T, Vec3[T]]
	k4 *Kernel[T, Vec4[T]]
}

// Wrap1 tags a one-component kernel. A nil kernel yields an empty Variant.
func Wrap1[T Float](k *Kernel[T, Vec1[T]]) Variant[T] {
	if k == nil {
		return Variant[T]{}
	}
	return Variant[T]{n: 1, k1: k}
}

// Wrap2 tags a two-component kernel.
func Wrap2[T Float](k *Kernel[T, Vec2[T]]) Variant[T] {
	if k == nil {
		return Variant[T]{}
	}
	return Variant[T]{n: 2, k2: k}
}

// Wrap3 tags a three-component kernel.
func Wrap3[T Float](k *Kernel[T, Vec3[T]]) Variant[T] {
	if k == nil {
		return Variant[T]{}
	}
	return Variant[T]{n: 3, k3: k}
}

// Wrap4 tags a four-component kernel.
func Wrap4[T Float](k *Kernel[T, Vec4[T]]) Variant[T] {
	if k == nil {
		return Variant[T]{}
	}
	return Variant[T]{n: 4, k4: k}
}

// ComponentCount returns the tag, or 0 for an empty Variant.
func (v Variant[T]) ComponentCount() int { return v.n }

// Has reports whether the held kernel has n components.
func (v Variant[T]) Has(n int) bool { return v.n != 0 && v.n == n }

// Empty reports whether no kernel is held.
func (v Variant[T]) Empty() bool { return v.n == 0 }

// Kernel1 returns the held kernel if it has one component.
func (v Variant[T]) Kernel1() (*Kernel[T, Vec1[T]], bool) { return v.k1, v.n == 1 }

// Kernel2 returns the held kernel if it has two components.
func (v Variant[T]) Kernel2() (*Kernel[T, Vec2[T]], bool) { return v.k2, v.n == 2 }

// Kernel3 returns the held kernel if it has three components.
func (v Variant[T]) Kernel3() (*Kernel[T, Vec3[T]], bool) { return v.k3, v.n == 3 }

// Kernel4 returns the held kernel if it has four components.
func (v Variant[T]) Kernel4() (*Kernel[T, Vec4[T]], bool) { return v.k4, v.n == 4 }

// Width returns the held kernel's width, or 0 when empty.
func (v Variant[T]) Width() int {
	w, _, _ := v.dims()
	return w
}

// Height returns the held kernel's height, or 0 when empty.
func (v Variant[T]) Height() int {
	_, h, _ := v.dims()
	return h
}

// Depth returns the held kernel's depth, or 0 when empty.
func (v Variant[T]) Depth() int {
	_, _, d := v.dims()
	return d
}

// Components copies the components of slot (x, y, z) into dst and returns
// the filled prefix. dst is reallocated if it is too short.
func (v Variant[T]) Components(x, y, z int, dst []T) ([]T, error) {
	switch v.n {
	case 1:
		return components(v.k1, x, y, z, dst)
	case 2:
		return components(v.k2, x, y, z, dst)
	case 3:
		return components(v.k3, x, y, z, dst)
	case 4:
		return components(v.k4, x, y, z, dst)
	}
	return dst[:0], ErrEmptyVariant
}

func (v Variant[T]) dims() (int, int, int) {
	switch v.n {
	case 1:
		return v.k1.width, v.k1.height, v.k1.depth
	case 2:
		return v.k2.width, v.k2.height, v.k2.depth
	case 3:
		return v.k3.width, v.k3.height, v.k3.depth
	case 4:
		return v.k4.width, v.k4.height, v.k4.depth
	}
	return 0, 0, 0
}

func components[T Float, V Tuple[T]](k *Kernel[T, V], x, y, z int, dst []T) ([]T, error) {
	val, err := k.Value(x, y, z)
	if err != nil {
		return dst[:0], err
	}
	if cap(dst) < len(val) {
		dst = make([]T, len(val))
	}
	dst = dst[:len(val)]
	for i := 0; i < len(val); i++ {
		dst[i] = val[i]
	}
	return dst, nil
}
