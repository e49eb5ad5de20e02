package buffer

// LossHistory is the capacity of the running loss series.
const LossHistory = 1000

// Buffer defines a simple float buffer that acts like a constant size queue
type Buffer struct {
	size   int
	values []float64
}

// NewBuffer creates a new buffer.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		size:   size,
		values: make([]float64, 0, 2*size+1),
	}
}

// Push adds an element to the buffer.
// If the buffer is full the oldest element is evicted and returned.
func (b *Buffer) Push(x float64) (float64, bool) {
	if len(b.values) == cap(b.values) {
		// move the live window to a fresh array once the evicted prefix used up the capacity
		vv := make([]float64, len(b.values), 2*b.size+1)
		copy(vv, b.values)
		b.values = vv
	}
	b.values = append(b.values, x)
	if len(b.values) > b.size {
		value := b.values[0]
		b.values = b.values[1:]
		return value, true
	}
	return 0, false
}

// Get returns the buffer elements in the order they were added.
func (b *Buffer) Get() []float64 {
	vv := make([]float64, len(b.values))
	copy(vv, b.values)
	return vv
}

// Last returns the most recent element of the buffer.
func (b *Buffer) Last() (float64, bool) {
	size := len(b.values)
	if size > 0 {
		return b.values[size-1], true
	}
	return 0, false
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int {
	return len(b.values)
}

// Size returns the capacity of the buffer.
func (b *Buffer) Size() int {
	return b.size
}

// Clear removes all elements from the buffer.
func (b *Buffer) Clear() {
	b.values = make([]float64, 0, 2*b.size+1)
}
