package qcolor

/*
EdgeChecker decides whether the two color registers of one edge differ
inside a basis index. It only needs the register layout, never the vertex
count or any global state.
*/
type EdgeChecker struct {
	shiftU uint
	shiftV uint
	mask   uint64
}

func NewEdgeChecker(enc Encoding, e Edge) EdgeChecker {
	return EdgeChecker{
		shiftU: enc.shift(e.U),
		shiftV: enc.shift(e.V),
		mask:   enc.mask,
	}
}

// Inequal reports whether the registers differ: any set bit in their XOR.
func (c EdgeChecker) Inequal(index uint64) bool {
	return ((index>>c.shiftU)^(index>>c.shiftV))&c.mask != 0
}

// Toggle flips flag when the registers differ. Toggle is its own inverse,
// applying it twice to the same index restores the flag.
func (c EdgeChecker) Toggle(index uint64, flag bool) bool {
	return flag != c.Inequal(index)
}
