package effectchain

// arena owns the live nodes. Slots are reused after removal; the index maps
// a module id to its slot so lookups stay O(1) across edits.
type arena struct {
	slots []*node
	free  []int
	index map[string]int
}

func newArena() arena {
	return arena{index: make(map[string]int)}
}

func (a *arena) get(id string) (*node, bool) {
	i, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return a.slots[i], true
}

func (a *arena) put(n *node) {
	if i, ok := a.index[n.id]; ok {
		a.slots[i] = n
		return
	}

	if k := len(a.free); k > 0 {
		i := a.free[k-1]
		a.free = a.free[:k-1]
		a.slots[i] = n
		a.index[n.id] = i
		return
	}

	a.index[n.id] = len(a.slots)
	a.slots = append(a.slots, n)
}

func (a *arena) remove(id string) *node {
	i, ok := a.index[id]
	if !ok {
		return nil
	}
	n := a.slots[i]
	a.slots[i] = nil
	a.free = append(a.free, i)
	delete(a.index, id)
	return n
}

func (a *arena) len() int { return len(a.index) }

// each visits live nodes in slot order.
func (a *arena) each(fn func(*node)) {
	for _, n := range a.slots {
		if n != nil {
			fn(n)
		}
	}
}
