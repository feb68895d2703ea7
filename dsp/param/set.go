package param

// MaxCells is the largest number of cells a [Set] can hold.
const MaxCells = 64

// Mask has bit i set when cell i changed.
type Mask uint64

// Has reports whether bit i is set.
func (m Mask) Has(i int) bool { return m&(1<<uint(i)) != 0 }

// HasAny reports whether any of the given bits is set.
func (m Mask) HasAny(idx ...int) bool {
	for _, i := range idx {
		if m.Has(i) {
			return true
		}
	}
	return false
}

// All returns a mask with the low n bits set.
func All(n int) Mask {
	if n >= MaxCells {
		return ^Mask(0)
	}
	return Mask(1)<<uint(n) - 1
}

// Set is an ordered collection of smoothed cells addressed by index or
// name. The index order is the descriptor order passed to NewSet.
type Set struct {
	cells []Smoothed
	index map[string]int
}

// NewSet allocates one cell per descriptor, each settled at its default.
// It panics when given more than [MaxCells] descriptors.
func NewSet(descs []Descriptor, smoothingTime, sampleRate float64) *Set {
	if len(descs) > MaxCells {
		panic("param: too many descriptors")
	}
	s := &Set{
		cells: make([]Smoothed, len(descs)),
		index: make(map[string]int, len(descs)),
	}
	for i, d := range descs {
		s.cells[i].Init(d, smoothingTime, sampleRate)
		s.index[d.Name] = i
	}
	return s
}

// Len returns the number of cells.
func (s *Set) Len() int { return len(s.cells) }

// Lookup returns the index of the named parameter.
func (s *Set) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Cell returns the i-th cell.
func (s *Set) Cell(i int) *Smoothed { return &s.cells[i] }

// Set publishes a new target for the named parameter. It reports false for
// unknown names.
func (s *Set) Set(name string, v float64) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.cells[i].Set(v)
	return true
}

// Advance steps every cell by one sample, writes the values to dst and
// returns the cells whose value differs from what dst held before.
// dst must have Len() elements.
func (s *Set) Advance(dst []float64) Mask {
	var changed Mask
	for i := range s.cells {
		v := s.cells[i].Next()
		if v != dst[i] {
			dst[i] = v
			changed |= 1 << uint(i)
		}
	}
	return changed
}

// Settled reports whether every cell has reached its target.
func (s *Set) Settled() bool {
	for i := range s.cells {
		if !s.cells[i].Settled() {
			return false
		}
	}
	return true
}

// Snap jumps every cell to its target and writes the values to dst.
func (s *Set) Snap(dst []float64) {
	for i := range s.cells {
		s.cells[i].Snap()
		dst[i] = s.cells[i].Current()
	}
}

// Targets returns name→target for every cell.
func (s *Set) Targets() map[string]float64 {
	out := make(map[string]float64, len(s.cells))
	for i := range s.cells {
		out[s.cells[i].desc.Name] = s.cells[i].Target()
	}
	return out
}
