package ratmath

import "sort"

// FractionInterval is an ordered pair (lo, hi) of Fractions with
// lo <= hi under cross-multiplied comparison. Unlike RationalInterval its
// endpoints are unreduced Fractions, matching the Stern-Brocot/Farey
// subsystem's non-reducing contract.
type FractionInterval struct {
	lo, hi Fraction
}

// NewFractionInterval orders a and b by Fraction.Cmp.
func NewFractionInterval(a, b Fraction) FractionInterval {
	if a.Cmp(b) > 0 {
		a, b = b, a
	}
	return FractionInterval{lo: a, hi: b}
}

func (fi FractionInterval) Lo() Fraction { return fi.lo }
func (fi FractionInterval) Hi() Fraction { return fi.hi }

func (fi FractionInterval) String() string { return fi.lo.String() + ":" + fi.hi.String() }

// MediantSplit inserts the Stern-Brocot mediant of (lo, hi) and returns the
// two child intervals [lo, mediant] and [mediant, hi].
func (fi FractionInterval) MediantSplit() (left, right FractionInterval) {
	m := Mediant(fi.lo, fi.hi)
	return NewFractionInterval(fi.lo, m), NewFractionInterval(m, fi.hi)
}

// PartitionWithMediants recursively applies MediantSplit n times, producing
// 2^n child intervals in left-to-right order.
func (fi FractionInterval) PartitionWithMediants(n int) []FractionInterval {
	intervals := []FractionInterval{fi}
	for i := 0; i < n; i++ {
		next := make([]FractionInterval, 0, len(intervals)*2)
		for _, iv := range intervals {
			l, r := iv.MediantSplit()
			next = append(next, l, r)
		}
		intervals = next
	}
	return intervals
}

// PartitionWith accepts an arbitrary partition function returning interior
// Fractions; points are sorted and uniquified, and any point not strictly
// inside (lo, hi) is rejected with KindInvalidLiteral.
func (fi FractionInterval) PartitionWith(fn func(FractionInterval) []Fraction) ([]FractionInterval, error) {
	points := fn(fi)
	sort.Slice(points, func(i, j int) bool { return points[i].Cmp(points[j]) < 0 })
	var uniq []Fraction
	for _, p := range points {
		if fi.lo.Cmp(p) >= 0 || p.Cmp(fi.hi) >= 0 {
			return nil, newErr(KindInvalidLiteral, "PartitionWith: point %s is not strictly inside %s", p, fi)
		}
		if len(uniq) == 0 || !uniq[len(uniq)-1].Equal(p) {
			uniq = append(uniq, p)
		}
	}
	bounds := append([]Fraction{fi.lo}, append(uniq, fi.hi)...)
	out := make([]FractionInterval, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		out = append(out, NewFractionInterval(bounds[i], bounds[i+1]))
	}
	return out, nil
}
