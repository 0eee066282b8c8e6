// Package modular provides plain modular arithmetic on unsigned integers.
//
// All functions here work on ordinary (non-Montgomery) residues. Unless
// documented otherwise, operands must be fully reduced, i.e. < n. These
// preconditions are not checked; violating them is a bug in the caller.
//
// The functions are careful to be correct for every modulus up to the
// maximum value of the type, so intermediate computations never rely on
// headroom that is not actually there.
package modular

// Uint is the type constraint for all word sizes supported by this package.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Add computes (a + b) % n for a, b < n.
//
// The naive a+b can wrap around for large n, so we rearrange: n-b cannot
// underflow (b < n) and a < n-b holds exactly when a+b < n.
func Add[T Uint](a, b, n T) T {
	tmp := n - b
	if a < tmp {
		return a + b
	}
	return a - tmp
}

// Sub computes (a - b) % n for a, b < n.
func Sub[T Uint](a, b, n T) T {
	if a >= b {
		return a - b
	}
	return a + (n - b)
}

// subAlt is an equivalent arrangement of Sub that computes both candidates
// up front and selects; kept for differential testing against Sub.
func subAlt[T Uint](a, b, n T) T {
	tmp := a + (n - b)
	if a >= b {
		tmp = a - b
	}
	return tmp
}

// AbsDiff returns |a - b|.
func AbsDiff[T Uint](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}
