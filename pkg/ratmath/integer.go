package ratmath

import "math/big"

// Integer is a thin wrapper around an arbitrary-precision signed integer.
// It satisfies Value; its denominator is always conceptually 1.
type Integer struct {
	v *big.Int
}

// NewInteger wraps a copy of n, so later changes to n do not affect the
// returned Integer.
func NewInteger(n *big.Int) Integer {
	return Integer{v: new(big.Int).Set(n)}
}

// IntegerFromInt64 is a convenience constructor for small literals and tests.
func IntegerFromInt64(n int64) Integer {
	return Integer{v: big.NewInt(n)}
}

// BigInt returns a defensive copy of the underlying value.
func (a Integer) BigInt() *big.Int { return new(big.Int).Set(a.v) }

func (a Integer) isValue() {}

// Kind reports this Value's promotion level (0 = Integer).
func (Integer) Kind() Kind { return KindInteger }

func (a Integer) String() string { return a.v.String() }

// Sign returns -1, 0, or 1.
func (a Integer) Sign() int { return a.v.Sign() }

// Equal reports exact equality.
func (a Integer) Equal(b Integer) bool { return a.v.Cmp(b.v) == 0 }

// Cmp returns -1, 0, or 1 comparing a to b.
func (a Integer) Cmp(b Integer) int { return a.v.Cmp(b.v) }

// Add returns a + b.
func (a Integer) Add(b Integer) Integer { return Integer{new(big.Int).Add(a.v, b.v)} }

// Subtract returns a - b.
func (a Integer) Subtract(b Integer) Integer { return Integer{new(big.Int).Sub(a.v, b.v)} }

// Multiply returns a * b.
func (a Integer) Multiply(b Integer) Integer { return Integer{new(big.Int).Mul(a.v, b.v)} }

// Negate returns -a.
func (a Integer) Negate() Integer { return Integer{new(big.Int).Neg(a.v)} }

// Abs returns |a|.
func (a Integer) Abs() Integer { return Integer{new(big.Int).Abs(a.v)} }

// Pow returns a^n for n >= 0; 0^0 fails with KindDomainError.
func (a Integer) Pow(n int64) (Integer, error) {
	if n < 0 {
		return Integer{}, newErr(KindDomainError, "Integer.Pow: negative exponent %d; use Rational for reciprocal powers", n)
	}
	if n == 0 {
		if a.v.Sign() == 0 {
			return Integer{}, newErr(KindDomainError, "0^0 is undefined")
		}
		return IntegerFromInt64(1), nil
	}
	return Integer{new(big.Int).Exp(a.v, big.NewInt(n), nil)}, nil
}

// Divide returns an Integer when b divides a exactly, otherwise a Rational.
// This is the sole place in the system where division changes result type.
func (a Integer) Divide(b Integer) (Value, error) {
	if b.v.Sign() == 0 {
		return nil, divisionByZero("Integer.Divide: division by zero")
	}
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a.v, b.v, r)
	if r.Sign() == 0 {
		return Integer{q}, nil
	}
	return newRational(a.v, b.v), nil
}

// Modulo returns the BigInt remainder of a / b; its sign follows the
// dividend, matching math/big.Int.Rem.
func (a Integer) Modulo(b Integer) (Integer, error) {
	if b.v.Sign() == 0 {
		return Integer{}, divisionByZero("Integer.Modulo: division by zero")
	}
	return Integer{new(big.Int).Rem(a.v, b.v)}, nil
}

// Factorial computes n! for n >= 0.
func (a Integer) Factorial() (Integer, error) {
	if a.v.Sign() < 0 {
		return Integer{}, newErr(KindDomainError, "Factorial: negative argument %s", a.v)
	}
	if a.v.Cmp(big.NewInt(1)) <= 0 {
		return IntegerFromInt64(1), nil
	}
	acc := big.NewInt(1)
	i := big.NewInt(2)
	one := big.NewInt(1)
	for i.Cmp(a.v) <= 0 {
		acc.Mul(acc, i)
		i.Add(i, one)
	}
	return Integer{acc}, nil
}

// DoubleFactorial computes n!! for n >= 0, stepping by 2.
func (a Integer) DoubleFactorial() (Integer, error) {
	if a.v.Sign() < 0 {
		return Integer{}, newErr(KindDomainError, "DoubleFactorial: negative argument %s", a.v)
	}
	if a.v.Cmp(big.NewInt(1)) <= 0 {
		return IntegerFromInt64(1), nil
	}
	acc := big.NewInt(1)
	i := new(big.Int).Set(a.v)
	two := big.NewInt(2)
	for i.Sign() > 0 {
		acc.Mul(acc, i)
		i.Sub(i, two)
	}
	return Integer{acc}, nil
}

// GCD returns the non-negative greatest common divisor of a and b.
func (a Integer) GCD(b Integer) Integer {
	return Integer{new(big.Int).GCD(nil, nil, new(big.Int).Abs(a.v), new(big.Int).Abs(b.v))}
}

// LCM returns the non-negative least common multiple of a and b; lcm(0,*)=0.
func (a Integer) LCM(b Integer) Integer {
	if a.v.Sign() == 0 || b.v.Sign() == 0 {
		return IntegerFromInt64(0)
	}
	g := a.GCD(b)
	prod := new(big.Int).Mul(new(big.Int).Abs(a.v), new(big.Int).Abs(b.v))
	return Integer{prod.Quo(prod, g.v)}
}

// E scales a by 10^k: for k >= 0 returns Integer a*10^k, for k < 0 returns
// Rational a/10^(-k).
func (a Integer) E(k int64) Value {
	if k >= 0 {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(k), nil)
		return Integer{new(big.Int).Mul(a.v, scale)}
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(-k), nil)
	return newRational(a.v, scale)
}

// ToRational promotes a to a Rational a/1.
func (a Integer) ToRational() Rational { return newRational(a.v, big.NewInt(1)) }
