package qcolor

// Verify reports whether coloring gives every edge two different colors.
// A coloring that does not cover an edge's endpoints is rejected.
func Verify(coloring Coloring, edges []Edge) bool {
	for _, e := range edges {
		if e.U < 0 || e.V < 0 || e.U >= len(coloring) || e.V >= len(coloring) {
			return false
		}
		if coloring[e.U] == coloring[e.V] {
			return false
		}
	}
	return true
}
