package ratmath

import "math/big"

// Fraction is an unreduced numerator/denominator pair. d == 0 is permitted
// only when n is +1 or -1 and allowInfinite is set, modeling the +-inf
// sentinels at the ends of the Stern-Brocot mediant lattice.
// Arithmetic preserves non-reduction: Add/Subtract require equal
// denominators; Multiply/Divide multiply componentwise without reducing.
type Fraction struct {
	n, d *big.Int
}

// NewFraction builds an unreduced Fraction. d == 0 fails with
// KindDivisionByZero unless allowInfinite is true and |n| == 1.
func NewFraction(n, d *big.Int, allowInfinite bool) (Fraction, error) {
	if d.Sign() == 0 {
		abs := new(big.Int).Abs(n)
		if !allowInfinite || abs.Cmp(bigOne) != 0 {
			return Fraction{}, divisionByZero("NewFraction: zero denominator")
		}
	}
	return Fraction{n: new(big.Int).Set(n), d: new(big.Int).Set(d)}, nil
}

// PositiveInfinity and NegativeInfinity are the Stern-Brocot sentinels 1/0
// and -1/0.
func PositiveInfinity() Fraction { f, _ := NewFraction(bigOne, bigZero, true); return f }
func NegativeInfinity() Fraction {
	f, _ := NewFraction(new(big.Int).Neg(bigOne), bigZero, true)
	return f
}

func (f Fraction) String() string { return f.n.String() + "/" + f.d.String() }

// IsInfinite reports whether f is one of the Stern-Brocot sentinels.
func (f Fraction) IsInfinite() bool { return f.d.Sign() == 0 }

// Numerator and Denominator return defensive copies.
func (f Fraction) Numerator() *big.Int   { return new(big.Int).Set(f.n) }
func (f Fraction) Denominator() *big.Int { return new(big.Int).Set(f.d) }

// Cmp orders f against o by cross-multiplication, treating the infinite
// sentinels as larger/smaller than every finite fraction.
func (f Fraction) Cmp(o Fraction) int {
	if f.IsInfinite() || o.IsInfinite() {
		fv, ov := f.infSign(), o.infSign()
		if fv != ov {
			if fv < ov {
				return -1
			}
			return 1
		}
		return 0
	}
	lhs := new(big.Int).Mul(f.n, o.d)
	rhs := new(big.Int).Mul(o.n, f.d)
	return lhs.Cmp(rhs)
}

// infSign returns -2/+2 for the infinite sentinels (outside the [-1,1]
// finite sign range) and the ordinary sign otherwise, so Cmp can order
// finite values against sentinels uniformly.
func (f Fraction) infSign() int {
	if f.IsInfinite() {
		if f.n.Sign() > 0 {
			return 2
		}
		return -2
	}
	return f.n.Sign()
}

// Equal reports exact (unreduced) equality of the stored pair.
func (f Fraction) Equal(o Fraction) bool { return f.n.Cmp(o.n) == 0 && f.d.Cmp(o.d) == 0 }

// Reduce returns a new Fraction with n/d divided by gcd(|n|,d), d's sign
// normalized positive. Reducing an infinite sentinel returns it unchanged.
func (f Fraction) Reduce() Fraction {
	if f.IsInfinite() {
		return f
	}
	if f.n.Sign() == 0 {
		return Fraction{n: big.NewInt(0), d: big.NewInt(1)}
	}
	n, d := new(big.Int).Set(f.n), new(big.Int).Set(f.d)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(bigOne) != 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	return Fraction{n: n, d: d}
}

// ToRational reduces f and converts it to a canonical Rational; fails on an
// infinite sentinel.
func (f Fraction) ToRational() (Rational, error) {
	if f.IsInfinite() {
		return Rational{}, newErr(KindDomainError, "Fraction.ToRational: cannot convert infinite sentinel")
	}
	return newRational(f.n, f.d), nil
}

// Add requires f and o to share a denominator (non-reducing contract).
func (f Fraction) Add(o Fraction) (Fraction, error) {
	if f.d.Cmp(o.d) != 0 {
		return Fraction{}, newErr(KindTypeMismatch, "Fraction.Add: denominators %s and %s differ; Fraction arithmetic does not auto-common-denominator", f.d, o.d)
	}
	return Fraction{n: new(big.Int).Add(f.n, o.n), d: new(big.Int).Set(f.d)}, nil
}

// Subtract requires f and o to share a denominator.
func (f Fraction) Subtract(o Fraction) (Fraction, error) {
	if f.d.Cmp(o.d) != 0 {
		return Fraction{}, newErr(KindTypeMismatch, "Fraction.Subtract: denominators %s and %s differ", f.d, o.d)
	}
	return Fraction{n: new(big.Int).Sub(f.n, o.n), d: new(big.Int).Set(f.d)}, nil
}

// Multiply multiplies componentwise without reducing.
func (f Fraction) Multiply(o Fraction) Fraction {
	return Fraction{n: new(big.Int).Mul(f.n, o.n), d: new(big.Int).Mul(f.d, o.d)}
}

// Divide multiplies by o's reciprocal componentwise without reducing.
func (f Fraction) Divide(o Fraction) (Fraction, error) {
	if o.n.Sign() == 0 {
		return Fraction{}, divisionByZero("Fraction.Divide: division by zero")
	}
	return Fraction{n: new(big.Int).Mul(f.n, o.d), d: new(big.Int).Mul(f.d, o.n)}, nil
}

// Mediant returns (n_a+n_b)/(d_a+d_b); an infinite operand's zero
// denominator adds nothing to the denominator sum while its +-1 numerator
// is added as usual, matching the Stern-Brocot sentinel rule.
func Mediant(a, b Fraction) Fraction {
	an, ad := a.n, a.d
	if a.IsInfinite() {
		ad = bigZero
	}
	bn, bd := b.n, b.d
	if b.IsInfinite() {
		bd = bigZero
	}
	return Fraction{n: new(big.Int).Add(an, bn), d: new(big.Int).Add(ad, bd)}
}

// MediantPartner recovers the other parent given one endpoint and the
// mediant: if mediant = (endpoint.n + x.n)/(endpoint.d + x.d), this returns
// x = (mediant.n - endpoint.n)/(mediant.d - endpoint.d), subtracting
// componentwise as in Stern-Brocot construction.
func MediantPartner(endpoint, mediant Fraction) Fraction {
	en, ed := endpoint.n, endpoint.d
	if endpoint.IsInfinite() {
		ed = bigZero
	}
	return Fraction{n: new(big.Int).Sub(mediant.n, en), d: new(big.Int).Sub(mediant.d, ed)}
}
