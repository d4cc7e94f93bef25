package ratmath

import "math/big"

// StepDir is one move in a Stern-Brocot path.
type StepDir byte

const (
	StepLeft  StepDir = 'L'
	StepRight StepDir = 'R'
)

// StatePathCap is the hard depth cap on Stern-Brocot path construction
//; exceeding it signals a bug in the caller's input rather than a
// legitimate deep path.
const StatePathCap = 500

// Path encodes f (a reduced positive fraction in lowest terms) as the
// sequence of L/R moves from the root 1/1, which sits between 0/1 and +1/0.
// A negative fraction gets the same path as its absolute value.
// Path fails with KindBoundsExceeded if the walk exceeds StatePathCap
// steps.
func Path(f Fraction) ([]StepDir, error) {
	neg := f.n.Sign() < 0
	target := f
	if neg {
		target = Fraction{n: new(big.Int).Neg(f.n), d: new(big.Int).Set(f.d)}
	}
	target = target.Reduce()

	lo := Fraction{n: big.NewInt(0), d: big.NewInt(1)}
	hi := PositiveInfinity()

	var path []StepDir
	cur := Mediant(lo, hi)
	for steps := 0; !cur.Reduce().Equal(target.Reduce()); steps++ {
		if steps >= StatePathCap {
			return nil, newErr(KindBoundsExceeded, "Path: exceeded StatePathCap (%d) looking for %s", StatePathCap, f)
		}
		if target.Cmp(cur) < 0 {
			hi = cur
			path = append(path, StepLeft)
		} else {
			lo = cur
			path = append(path, StepRight)
		}
		cur = Mediant(lo, hi)
	}
	return path, nil
}

// FromPath reverses Path: applying the moves from the root 1/1 between 0/1
// and +1/0 recovers the reduced fraction at the end of the walk. The result
// is always positive.
func FromPath(path []StepDir) (Fraction, error) {
	if len(path) > StatePathCap {
		return Fraction{}, newErr(KindBoundsExceeded, "FromPath: path length %d exceeds StatePathCap (%d)", len(path), StatePathCap)
	}
	lo := Fraction{n: big.NewInt(0), d: big.NewInt(1)}
	hi := PositiveInfinity()
	cur := Mediant(lo, hi)
	for _, step := range path {
		switch step {
		case StepLeft:
			hi = cur
		case StepRight:
			lo = cur
		default:
			return Fraction{}, newErr(KindInvalidLiteral, "FromPath: unknown step %q", step)
		}
		cur = Mediant(lo, hi)
	}
	return cur.Reduce(), nil
}

// Parent returns the Stern-Brocot parent of f (the node one step back along
// f's path), or an error if f is the root 1/1.
func Parent(f Fraction) (Fraction, error) {
	path, err := Path(f)
	if err != nil {
		return Fraction{}, err
	}
	if len(path) == 0 {
		return Fraction{}, newErr(KindDomainError, "Parent: %s is the Stern-Brocot root, it has no parent", f)
	}
	return FromPath(path[:len(path)-1])
}

// Children returns f's two Stern-Brocot children (append L then R to f's path).
func Children(f Fraction) (left, right Fraction, err error) {
	path, err := Path(f)
	if err != nil {
		return Fraction{}, Fraction{}, err
	}
	if len(path) >= StatePathCap {
		return Fraction{}, Fraction{}, newErr(KindBoundsExceeded, "Children: %s is already at StatePathCap depth", f)
	}
	leftPath := append(append([]StepDir{}, path...), StepLeft)
	rightPath := append(append([]StepDir{}, path...), StepRight)
	left, err = FromPath(leftPath)
	if err != nil {
		return Fraction{}, Fraction{}, err
	}
	right, err = FromPath(rightPath)
	if err != nil {
		return Fraction{}, Fraction{}, err
	}
	return left, right, nil
}

// Depth returns the length of f's Stern-Brocot path (0 for the root).
func Depth(f Fraction) (int, error) {
	path, err := Path(f)
	if err != nil {
		return 0, err
	}
	return len(path), nil
}

// Ancestors returns every proper ancestor of f, root first.
func Ancestors(f Fraction) ([]Fraction, error) {
	path, err := Path(f)
	if err != nil {
		return nil, err
	}
	out := make([]Fraction, 0, len(path))
	for i := 0; i < len(path); i++ {
		anc, err := FromPath(path[:i])
		if err != nil {
			return nil, err
		}
		out = append(out, anc)
	}
	return out, nil
}
