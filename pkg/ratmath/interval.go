package ratmath

import (
	"math/big"
	"math/rand"
)

// RationalInterval is a closed interval [lo, hi] of canonical Rationals
// with lo <= hi (the constructor sorts). explicitInterval marks a literal
// written as "a:b" (kept even when degenerate); skipPromotion marks the
// result of mpow or certain root operations, which must not demote to a
// point value. Both flags are set only by the parser or by operations that
// must propagate them.
type RationalInterval struct {
	lo, hi           Rational
	explicitInterval bool
	skipPromotion    bool
}

func (RationalInterval) isValue() {}

// Kind reports this Value's promotion level (2 = Interval).
func (RationalInterval) Kind() Kind { return KindInterval }

// NewRationalInterval builds [min(a,b), max(a,b)].
func NewRationalInterval(a, b Rational) RationalInterval {
	if a.Cmp(b) > 0 {
		a, b = b, a
	}
	return RationalInterval{lo: a, hi: b}
}

// NewExplicitInterval is like NewRationalInterval but sets explicitInterval,
// for literal "a:b" syntax (kept even when a == b).
func NewExplicitInterval(a, b Rational) RationalInterval {
	iv := NewRationalInterval(a, b)
	iv.explicitInterval = true
	return iv
}

func (iv RationalInterval) String() string {
	return iv.lo.String() + ":" + iv.hi.String()
}

// Lo and Hi return the canonical endpoints.
func (iv RationalInterval) Lo() Rational { return iv.lo }
func (iv RationalInterval) Hi() Rational { return iv.hi }

// ContainsZero reports whether 0 is in [lo, hi].
func (iv RationalInterval) ContainsZero() bool {
	return iv.lo.Sign() <= 0 && iv.hi.Sign() >= 0
}

// Equal reports whether both endpoints are equal.
func (iv RationalInterval) Equal(o RationalInterval) bool {
	return iv.lo.Equal(o.lo) && iv.hi.Equal(o.hi)
}

// Add returns [a+c, b+d] for iv=[a,b], o=[c,d].
func (iv RationalInterval) Add(o RationalInterval) RationalInterval {
	return NewRationalInterval(iv.lo.Add(o.lo), iv.hi.Add(o.hi))
}

// Subtract returns [a-d, b-c] for iv=[a,b], o=[c,d].
func (iv RationalInterval) Subtract(o RationalInterval) RationalInterval {
	return NewRationalInterval(iv.lo.Subtract(o.hi), iv.hi.Subtract(o.lo))
}

// Multiply computes the four corner products and returns [min,max].
func (iv RationalInterval) Multiply(o RationalInterval) RationalInterval {
	corners := []Rational{
		iv.lo.Multiply(o.lo), iv.lo.Multiply(o.hi),
		iv.hi.Multiply(o.lo), iv.hi.Multiply(o.hi),
	}
	return minMaxInterval(corners)
}

// Divide computes the four corner quotients and returns [min,max]; fails
// with KindDomainError if o contains zero.
func (iv RationalInterval) Divide(o RationalInterval) (RationalInterval, error) {
	if o.ContainsZero() {
		return RationalInterval{}, newErr(KindDomainError, "RationalInterval.Divide: divisor interval contains zero")
	}
	q1, err := iv.lo.Divide(o.lo)
	if err != nil {
		return RationalInterval{}, err
	}
	q2, err := iv.lo.Divide(o.hi)
	if err != nil {
		return RationalInterval{}, err
	}
	q3, err := iv.hi.Divide(o.lo)
	if err != nil {
		return RationalInterval{}, err
	}
	q4, err := iv.hi.Divide(o.hi)
	if err != nil {
		return RationalInterval{}, err
	}
	return minMaxInterval([]Rational{q1, q2, q3, q4}), nil
}

// Reciprocal returns [1/b, 1/a] for iv=[a,b]; fails with KindDomainError if
// 0 is in iv.
func (iv RationalInterval) Reciprocal() (RationalInterval, error) {
	if iv.ContainsZero() {
		return RationalInterval{}, newErr(KindDomainError, "RationalInterval.Reciprocal: interval contains zero")
	}
	rl, _ := iv.hi.Reciprocal()
	rh, _ := iv.lo.Reciprocal()
	return NewRationalInterval(rl, rh), nil
}

// Negate returns [-b, -a] for iv=[a,b].
func (iv RationalInterval) Negate() RationalInterval {
	return NewRationalInterval(iv.hi.Negate(), iv.lo.Negate())
}

func minMaxInterval(vals []Rational) RationalInterval {
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v.Cmp(min) < 0 {
			min = v
		}
		if v.Cmp(max) > 0 {
			max = v
		}
	}
	return RationalInterval{lo: min, hi: max}
}

// Pow raises iv to the integer power k using sign-aware monotone rules
//. k=0 on an interval containing zero fails with KindDomainError.
func (iv RationalInterval) Pow(k int64) (RationalInterval, error) {
	if k == 0 {
		if iv.ContainsZero() {
			return RationalInterval{}, newErr(KindDomainError, "RationalInterval.Pow: 0^0 is undefined")
		}
		one, _ := RationalFromInt64(1, 1)
		return NewRationalInterval(one, one), nil
	}
	if k < 0 {
		pos, err := iv.Pow(-k)
		if err != nil {
			return RationalInterval{}, err
		}
		return pos.Reciprocal()
	}
	if k%2 == 1 {
		lo, err := iv.lo.Pow(k)
		if err != nil {
			return RationalInterval{}, err
		}
		hi, err := iv.hi.Pow(k)
		if err != nil {
			return RationalInterval{}, err
		}
		return NewRationalInterval(lo, hi), nil
	}
	// even k
	switch {
	case iv.lo.Sign() >= 0:
		lo, err := iv.lo.Pow(k)
		if err != nil {
			return RationalInterval{}, err
		}
		hi, err := iv.hi.Pow(k)
		if err != nil {
			return RationalInterval{}, err
		}
		return NewRationalInterval(lo, hi), nil
	case iv.hi.Sign() <= 0:
		lo, err := iv.hi.Pow(k)
		if err != nil {
			return RationalInterval{}, err
		}
		hi, err := iv.lo.Pow(k)
		if err != nil {
			return RationalInterval{}, err
		}
		return NewRationalInterval(lo, hi), nil
	default:
		aPow, err := iv.lo.Abs().Pow(k)
		if err != nil {
			return RationalInterval{}, err
		}
		bPow, err := iv.hi.Abs().Pow(k)
		if err != nil {
			return RationalInterval{}, err
		}
		max := aPow
		if bPow.Cmp(max) > 0 {
			max = bPow
		}
		zero, _ := RationalFromInt64(0, 1)
		return NewRationalInterval(zero, max), nil
	}
}

// MPow is the multiplicative power: repeated interval self-multiplication,
// distinct from Pow. MPow(0) fails with KindMultPowZero. The result
// always carries skipPromotion.
func (iv RationalInterval) MPow(k int64) (RationalInterval, error) {
	if k == 0 {
		return RationalInterval{}, newErr(KindMultPowZero, "RationalInterval.MPow: x ** 0 is undefined")
	}
	if k < 0 {
		recip, err := iv.Reciprocal()
		if err != nil {
			return RationalInterval{}, err
		}
		return recip.MPow(-k)
	}
	result := iv
	for i := int64(1); i < k; i++ {
		result = result.Multiply(iv)
	}
	result.skipPromotion = true
	return result, nil
}

// Overlaps reports whether iv and o share at least one point.
func (iv RationalInterval) Overlaps(o RationalInterval) bool {
	return !(iv.hi.Cmp(o.lo) < 0 || o.hi.Cmp(iv.lo) < 0)
}

// Contains reports whether o is entirely within iv.
func (iv RationalInterval) Contains(o RationalInterval) bool {
	return iv.lo.Cmp(o.lo) <= 0 && o.hi.Cmp(iv.hi) <= 0
}

// ContainsRational reports whether r lies within [lo, hi].
func (iv RationalInterval) ContainsRational(r Rational) bool {
	return iv.lo.Cmp(r) <= 0 && r.Cmp(iv.hi) <= 0
}

// Intersection returns the overlap of iv and o, or (zero, false) if disjoint.
func (iv RationalInterval) Intersection(o RationalInterval) (RationalInterval, bool) {
	lo := iv.lo
	if o.lo.Cmp(lo) > 0 {
		lo = o.lo
	}
	hi := iv.hi
	if o.hi.Cmp(hi) < 0 {
		hi = o.hi
	}
	if lo.Cmp(hi) > 0 {
		return RationalInterval{}, false
	}
	return NewRationalInterval(lo, hi), true
}

// Union returns the convex union of iv and o when they overlap or touch, or
// (zero, false) otherwise.
func (iv RationalInterval) Union(o RationalInterval) (RationalInterval, bool) {
	touching := iv.hi.Equal(o.lo) || o.hi.Equal(iv.lo)
	if !iv.Overlaps(o) && !touching {
		return RationalInterval{}, false
	}
	lo := iv.lo
	if o.lo.Cmp(lo) < 0 {
		lo = o.lo
	}
	hi := iv.hi
	if o.hi.Cmp(hi) > 0 {
		hi = o.hi
	}
	return NewRationalInterval(lo, hi), true
}

// Mediant returns (n_a + n_b) / (d_a + d_b) for the endpoints of iv.
func (iv RationalInterval) Mediant() Rational {
	n := new(big.Int).Add(iv.lo.n, iv.hi.n)
	d := new(big.Int).Add(iv.lo.d, iv.hi.d)
	return newRational(n, d)
}

// Midpoint returns (a+b)/2.
func (iv RationalInterval) Midpoint() Rational {
	two, _ := RationalFromInt64(2, 1)
	return iv.lo.Add(iv.hi).Divide2(two)
}

// Divide2 is a convenience wrapping Divide without its error
// return for call sites that already know the divisor is nonzero.
func (r Rational) Divide2(o Rational) Rational {
	q, _ := r.Divide(o)
	return q
}

// ShortestDecimal finds the Rational of the form m/base^k, smallest k, that
// lies in [lo, hi]. It fails with KindBoundsExceeded if no such
// representative is found within the margin-padded search bound.
func (iv RationalInterval) ShortestDecimal(base *BaseSystem) (Rational, error) {
	if base == nil {
		base = Decimal
	}
	b := big.NewInt(int64(base.Base()))
	// maxK bounds the search by log_2(1/length), which is never less than
	// log_b(1/length), plus a margin, read off the bit length of the width's
	// denominator. For a point interval the endpoint's denominator gives the
	// bound instead, since it caps the length of a terminating expansion.
	maxK := iv.hi.Subtract(iv.lo).d.BitLen() + 2
	if pk := iv.lo.d.BitLen() + 2; pk > maxK {
		maxK = pk
	}
	bk := big.NewInt(1)
	for k := 0; k <= maxK; k++ {
		lowBound := ceilDiv(iv.lo.n, iv.lo.d, bk)
		highBound := floorDivProduct(iv.hi.n, iv.hi.d, bk)
		if lowBound.Cmp(highBound) <= 0 {
			return newRational(lowBound, bk), nil
		}
		bk = bk.Mul(bk, b)
	}
	return Rational{}, newErr(KindBoundsExceeded, "RationalInterval.ShortestDecimal: no representative found within search bound")
}

// ceilDiv returns ceil((n/d) * k) for positive d, k.
func ceilDiv(n, d, k *big.Int) *big.Int {
	num := new(big.Int).Mul(n, k)
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(num, d, r)
	if r.Sign() > 0 {
		q.Add(q, bigOne)
	} else if r.Sign() < 0 {
		// negative numerator, round toward +inf means no adjustment needed for negative remainder with Quo truncation toward zero
	}
	return q
}

// floorDivProduct returns floor((n/d) * k) for positive d, k.
func floorDivProduct(n, d, k *big.Int) *big.Int {
	num := new(big.Int).Mul(n, k)
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(num, d, r)
	if r.Sign() < 0 {
		q.Sub(q, bigOne)
	}
	return q
}

// RelativeDecimal finds the shortest-decimal representative m in [lo, hi]
// and returns it along with the "+hi-offset" / "-lo-offset" pair scaled to
// the unit of m's last displayed decimal place's relative-decimal
// presentation. The 1e-6 symmetry tolerance is a documented fixed
// threshold (see DESIGN.md's Open Question (b)), not a derived quantity.
func (iv RationalInterval) RelativeDecimal(base *BaseSystem) (m Rational, plusOffset, minusOffset *big.Int, symmetric bool, err error) {
	m, err = iv.ShortestDecimal(base)
	if err != nil {
		return Rational{}, nil, nil, false, err
	}
	places := decimalPlaces(m)
	scale := new(big.Int).Exp(bigTen, big.NewInt(int64(places+1)), nil)
	plus := iv.hi.Subtract(m).Multiply(newRational(scale, bigOne))
	minus := m.Subtract(iv.lo).Multiply(newRational(scale, bigOne))
	plusOffset = plus.IntegerPart()
	minusOffset = minus.IntegerPart()
	tol, _ := RationalFromInt64(1, 1_000_000)
	diff := plus.Subtract(minus).Abs()
	symmetric = diff.Cmp(tol) <= 0
	return m, plusOffset, minusOffset, symmetric, nil
}

func decimalPlaces(r Rational) int {
	exp, err := r.Expand(Decimal, 64)
	if err != nil {
		return 0
	}
	return len(exp.PrePeriod)
}

// RandomRational enumerates every canonical p/q in [lo, hi] with
// q <= maxDenominator and returns one uniformly at random using rnd
// (pass nil to use the package-level default source). If none exist, the
// midpoint is returned instead. This is O(maxDenominator^2) in the worst
// case).
func (iv RationalInterval) RandomRational(maxDenominator int64, rnd *rand.Rand) Rational {
	pick := rand.Intn
	if rnd != nil {
		pick = rnd.Intn
	}
	var candidates []Rational
	for q := int64(1); q <= maxDenominator; q++ {
		qBig := big.NewInt(q)
		lowN := ceilDiv(iv.lo.n, iv.lo.d, qBig)
		highN := floorDivProduct(iv.hi.n, iv.hi.d, qBig)
		for n := new(big.Int).Set(lowN); n.Cmp(highN) <= 0; n.Add(n, bigOne) {
			cand := newRational(n, qBig)
			if cand.d.Int64() == q { // only count canonical reps at this denominator to avoid duplicate enumeration
				candidates = append(candidates, cand)
			}
		}
	}
	if len(candidates) == 0 {
		return iv.Midpoint()
	}
	return candidates[pick(len(candidates))]
}
