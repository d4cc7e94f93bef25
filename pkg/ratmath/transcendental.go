package ratmath

import (
	"math/big"
	"strings"
)

// TranscendentalFunc computes an interval enclosure of a transcendental
// function at x to the given epsilon, returning a RationalInterval flagged
// explicitInterval. A full Taylor/range-reduction driver (EXP, LN, SIN,
// ...) can register itself here as an external collaborator; this registry
// exists so the parser's call-syntax and precision-parameter handling are
// fully exercised even though only PI (which needs no range reduction) is
// implemented in the core.
type TranscendentalFunc func(args []Value, eps Rational) (RationalInterval, error)

var transcendentalRegistry = map[string]TranscendentalFunc{}

// RegisterTranscendental installs fn under name, stored uppercased,
// replacing any previous registration; since LookupTranscendental uppercases
// its argument too, names match case-insensitively. Intended for the
// out-of-core transcendental layer to plug itself into the parser.
func RegisterTranscendental(name string, fn TranscendentalFunc) {
	transcendentalRegistry[strings.ToUpper(name)] = fn
}

// LookupTranscendental returns the registered function for name, if any.
func LookupTranscendental(name string) (TranscendentalFunc, bool) {
	fn, ok := transcendentalRegistry[strings.ToUpper(name)]
	return fn, ok
}

// EpsilonFromPrecision maps a Parser precision parameter k to epsilon =
// 10^-k when k < 0, else epsilon = 1/k; the zero value means "use the
// default" (10^-6)
func EpsilonFromPrecision(k int) Rational {
	if k == 0 {
		eps, _ := RationalFromInt64(1, 1_000_000)
		return eps
	}
	if k < 0 {
		d := new(big.Int).Exp(bigTen, big.NewInt(int64(-k)), nil)
		return newRational(bigOne, d)
	}
	eps, _ := RationalFromInt64(1, int64(k))
	return eps
}

func init() {
	RegisterTranscendental("PI", piTranscendental)
}

// piTranscendental computes a rational interval enclosing pi to within eps
// using Machin's formula pi/4 = 4*arctan(1/5) - arctan(1/239), each arctan
// evaluated by its alternating Taylor series (so the partial sums bracket
// the true value from both sides, giving an exact rational enclosure
// without any floating point).
func piTranscendental(args []Value, eps Rational) (RationalInterval, error) {
	if len(args) != 0 {
		return RationalInterval{}, newErr(KindTypeMismatch, "PI: takes no arguments")
	}
	lo4, hi4 := arctanReciprocalBounds(5, eps)
	lo239, hi239 := arctanReciprocalBounds(239, eps)

	four, _ := RationalFromInt64(4, 1)
	// pi = 16*arctan(1/5) - 4*arctan(1/239)
	sixteen, _ := RationalFromInt64(16, 1)
	loPi := sixteen.Multiply(lo4).Subtract(four.Multiply(hi239))
	hiPi := sixteen.Multiply(hi4).Subtract(four.Multiply(lo239))
	iv := NewRationalInterval(loPi, hiPi)
	iv.explicitInterval = true
	return iv, nil
}

// arctanReciprocalBounds brackets arctan(1/m) between two consecutive
// partial sums of its alternating Taylor series, each within eps of the
// true value.
func arctanReciprocalBounds(m int64, eps Rational) (lo, hi Rational) {
	sum, _ := RationalFromInt64(0, 1)
	mBig := big.NewInt(m)
	var prevSign = 1
	for k := int64(0); k < 1000; k++ {
		denomPow := new(big.Int).Exp(mBig, big.NewInt(2*k+1), nil)
		denom := new(big.Int).Mul(denomPow, big.NewInt(2*k+1))
		t := newRational(bigOne, denom)
		if k%2 == 1 {
			sum = sum.Subtract(t)
			prevSign = -1
		} else {
			sum = sum.Add(t)
			prevSign = 1
		}
		if t.Cmp(eps) < 0 {
			if prevSign > 0 {
				return sum.Subtract(t), sum
			}
			return sum, sum.Add(t)
		}
	}
	return sum, sum
}
