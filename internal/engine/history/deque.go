package history

// deque is a growable ring buffer with O(1) push and pop at both ends.
type deque[T any] struct {
	buf  []T
	head int
	n    int
}

func (d *deque[T]) len() int {
	return d.n
}

func (d *deque[T]) grow() {
	size := len(d.buf) * 2
	if size == 0 {
		size = 8
	}
	buf := make([]T, size)
	for i := 0; i < d.n; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}

// pushBack appends v as the newest entry.
func (d *deque[T]) pushBack(v T) {
	if d.n == len(d.buf) {
		d.grow()
	}
	d.buf[(d.head+d.n)%len(d.buf)] = v
	d.n++
}

// popBack removes and returns the newest entry.
func (d *deque[T]) popBack() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}
	i := (d.head + d.n - 1) % len(d.buf)
	v := d.buf[i]
	d.buf[i] = zero
	d.n--
	return v, true
}

// popFront removes and returns the oldest entry.
func (d *deque[T]) popFront() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.n--
	return v, true
}

// back returns the newest entry without removing it.
func (d *deque[T]) back() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}
	return d.buf[(d.head+d.n-1)%len(d.buf)], true
}

// at returns the i-th entry counting from the oldest.
func (d *deque[T]) at(i int) T {
	return d.buf[(d.head+i)%len(d.buf)]
}

// clear drops every entry and releases the backing array.
func (d *deque[T]) clear() {
	d.buf = nil
	d.head = 0
	d.n = 0
}
