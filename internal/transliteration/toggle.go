package transliteration

// toggle holds two values and exposes one of them at a time.
type toggle[T any] struct {
	data  [2]T
	index int
}

func newToggle[T any](first, second T) toggle[T] {
	return toggle[T]{data: [2]T{first, second}}
}

func (t toggle[T]) current() T {
	return t.data[t.index]
}

func (t *toggle[T]) flip() {
	t.index = 1 - t.index
}
