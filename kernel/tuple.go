package kernel

// Float is the scalar precision a kernel stores.
type Float interface {
	~float32 | ~float64
}

// Vec1 through Vec4 are the fixed-width tuples a kernel slot can hold.
type (
	Vec1[T Float] [1]T
	Vec2[T Float] [2]T
	Vec3[T Float] [3]T
	Vec4[T Float] [4]T
)

// Tuple is the set of slot types with component count 1..4.
type Tuple[T Float] interface {
	Vec1[T] | Vec2[T] | Vec3[T] | Vec4[T]
}

// X returns the first component.
func (v Vec2[T]) X() T { return v[0] }

// Y returns the second component.
func (v Vec2[T]) Y() T { return v[1] }

// Len returns the component count of V.
func Len[T Float, V Tuple[T]]() int {
	var v V
	return len(v)
}

// Component returns component i of v. It panics if i is out of range,
// like indexing an array would.
func Component[T Float, V Tuple[T]](v V, i int) T {
	return v[i]
}

// WithComponent returns a copy of v with component i set to c.
func WithComponent[T Float, V Tuple[T]](v V, i int, c T) V {
	v[i] = c
	return v
}

// Fill returns a tuple with every component set to c.
func Fill[T Float, V Tuple[T]](c T) V {
	var v V
	for i := 0; i < len(v); i++ {
		v[i] = c
	}
	return v
}
