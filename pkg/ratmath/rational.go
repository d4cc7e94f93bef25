package ratmath

import (
	"math/big"
	"strconv"
	"strings"
)

// Rational is a canonical fraction n/d with d > 0 and gcd(|n|, d) = 1; zero
// is uniquely represented as 0/1. Rational is immutable once constructed;
// all arithmetic returns a freshly canonicalized value.
//
// Decimal-expansion metadata (pre-period, period, etc.) is not stored on
// Rational itself -- it is memoized at package level in
// rational_expansion.go, keyed by (n, d, base, limit), so Rational stays a
// plain comparable-by-value immutable struct rather than carrying interior
// mutable state. Concurrent first reads of the same key may duplicate the
// computation; they always agree on the result.
type Rational struct {
	n, d *big.Int

	// explicitFraction marks a value written by the literal parser with an
	// explicit '/' fraction syntax; such a value never demotes to Integer
	// even when d=1. The parser is the sole legitimate setter.
	explicitFraction bool
}

func (Rational) isValue() {}

// Kind reports this Value's promotion level (1 = Rational).
func (Rational) Kind() Kind { return KindRational }

// newRational canonicalizes (n, d) with d != 0: moves sign to n, reduces by
// gcd. It never fails; callers must check d for zero beforehand.
func newRational(n, d *big.Int) Rational {
	n = new(big.Int).Set(n)
	d = new(big.Int).Set(d)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.Sign() == 0 {
		return Rational{n: big.NewInt(0), d: big.NewInt(1)}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(bigOne) != 0 {
		n = new(big.Int).Quo(n, g)
		d = new(big.Int).Quo(d, g)
	}
	return Rational{n: n, d: d}
}

// NewRational builds a canonical Rational from BigInt numerator and
// denominator. It fails with KindDivisionByZero if d is zero.
func NewRational(n, d *big.Int) (Rational, error) {
	if d.Sign() == 0 {
		return Rational{}, divisionByZero("Rational: zero denominator")
	}
	return newRational(n, d), nil
}

// RationalFromInt64 is a convenience constructor for small literals and tests.
func RationalFromInt64(n, d int64) (Rational, error) {
	return NewRational(big.NewInt(n), big.NewInt(d))
}

// RationalFromInteger promotes an Integer to a Rational n/1.
func RationalFromInteger(i Integer) Rational { return newRational(i.v, bigOne) }

// ParseRational parses one of the literal string shapes of :
// "a", "a/b", "a.bcd" (finite decimal), or "w..n/d" (mixed number). Any
// run-length markers "{c~k}" are expanded first.
func ParseRational(s string) (Rational, error) {
	s = expandRunLength(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRational: empty literal")
	}

	if idx := strings.Index(s, ".."); idx >= 0 {
		return parseMixedNumber(s, idx)
	}
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		return parseFractionLiteral(s, idx)
	}
	if strings.ContainsRune(s, '.') {
		return parseFiniteDecimal(s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRational: %q is not a valid integer literal", s)
	}
	return newRational(n, bigOne), nil
}

func parseFractionLiteral(s string, slash int) (Rational, error) {
	numStr, denStr := s[:slash], s[slash+1:]
	n, ok := new(big.Int).SetString(numStr, 10)
	if !ok {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRational: bad numerator %q", numStr)
	}
	d, ok := new(big.Int).SetString(denStr, 10)
	if !ok {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRational: bad denominator %q", denStr)
	}
	if d.Sign() == 0 {
		return Rational{}, divisionByZero("ParseRational: zero denominator in %q", s)
	}
	r := newRational(n, d)
	r.explicitFraction = true
	return r, nil
}

func parseMixedNumber(s string, dotdot int) (Rational, error) {
	wholeStr := s[:dotdot]
	rest := s[dotdot+2:]
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRational: mixed number %q missing fraction part", s)
	}
	whole, ok := new(big.Int).SetString(wholeStr, 10)
	if !ok {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRational: bad whole part %q", wholeStr)
	}
	num, ok := new(big.Int).SetString(rest[:slash], 10)
	if !ok {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRational: bad mixed numerator %q", rest[:slash])
	}
	den, ok := new(big.Int).SetString(rest[slash+1:], 10)
	if !ok {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRational: bad mixed denominator %q", rest[slash+1:])
	}
	if den.Sign() == 0 {
		return Rational{}, divisionByZero("ParseRational: zero denominator in mixed number %q", s)
	}
	neg := whole.Sign() < 0
	absWhole := new(big.Int).Abs(whole)
	totalNum := new(big.Int).Mul(absWhole, den)
	totalNum.Add(totalNum, new(big.Int).Abs(num))
	if neg {
		totalNum.Neg(totalNum)
	}
	r := newRational(totalNum, den)
	r.explicitFraction = true
	return r, nil
}

func parseFiniteDecimal(s string) (Rational, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return Rational{}, newErr(KindInvalidLiteral, "parseFiniteDecimal: %q has no decimal point", s)
	}
	intPart := s[:dot]
	fracPart := s[dot+1:]
	if strings.ContainsRune(fracPart, '.') {
		return Rational{}, newErr(KindInvalidLiteral, "parseFiniteDecimal: multiple decimal points in %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	digits := intPart + fracPart
	if digits == "" || !isAllDigits(digits) {
		return Rational{}, newErr(KindInvalidLiteral, "parseFiniteDecimal: %q is not a valid decimal", s)
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Rational{}, newErr(KindInvalidLiteral, "parseFiniteDecimal: %q is not a valid decimal", s)
	}
	d := new(big.Int).Exp(bigTen, big.NewInt(int64(len(fracPart))), nil)
	if neg {
		n.Neg(n)
	}
	return newRational(n, d), nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// expandRunLength expands every "{c~k}" marker in s into k copies of c. It
// is used both directions: by literal parsing before numeric
// interpretation, and available to formatters that want to undo their own
// compression when round-tripping.
func expandRunLength(s string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				sb.WriteByte(s[i])
				continue
			}
			body := s[i+1 : i+end]
			tilde := strings.IndexByte(body, '~')
			if tilde < 0 {
				sb.WriteByte(s[i])
				continue
			}
			c := body[:tilde]
			k, err := strconv.Atoi(body[tilde+1:])
			if err != nil || k < 1 {
				sb.WriteByte(s[i])
				continue
			}
			sb.WriteString(strings.Repeat(c, k))
			i += end
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// compressRunLength collapses any run of a single repeated character of
// length >= threshold into "{c~k}". Used by formatters (run-length
// compression).
func compressRunLength(s string, threshold int) string {
	if threshold < 1 {
		threshold = 1
	}
	var sb strings.Builder
	i := 0
	for i < len(s) {
		j := i + 1
		for j < len(s) && s[j] == s[i] {
			j++
		}
		runLen := j - i
		if runLen >= threshold {
			sb.WriteByte('{')
			sb.WriteByte(s[i])
			sb.WriteByte('~')
			sb.WriteString(strconv.Itoa(runLen))
			sb.WriteByte('}')
		} else {
			sb.WriteString(s[i:j])
		}
		i = j
	}
	return sb.String()
}

// Numerator and Denominator return defensive copies of the canonical pair.
func (r Rational) Numerator() *big.Int   { return new(big.Int).Set(r.n) }
func (r Rational) Denominator() *big.Int { return new(big.Int).Set(r.d) }

func (r Rational) String() string {
	if r.d.Cmp(bigOne) == 0 {
		return r.n.String()
	}
	return r.n.String() + "/" + r.d.String()
}

// Sign returns -1, 0, or 1.
func (r Rational) Sign() int { return r.n.Sign() }

// IsZero reports whether r is exactly zero.
func (r Rational) IsZero() bool { return r.n.Sign() == 0 }

// IsInteger reports whether r's denominator is 1.
func (r Rational) IsInteger() bool { return r.d.Cmp(bigOne) == 0 }

// Equal reports exact equality of canonical (n, d) pairs.
func (r Rational) Equal(o Rational) bool { return r.n.Cmp(o.n) == 0 && r.d.Cmp(o.d) == 0 }

// Cmp orders r against o by cross-multiplying the signed numerators (no
// division), returning -1, 0, or 1.
func (r Rational) Cmp(o Rational) int {
	lhs := new(big.Int).Mul(r.n, o.d)
	rhs := new(big.Int).Mul(o.n, r.d)
	return lhs.Cmp(rhs)
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	n := new(big.Int).Add(new(big.Int).Mul(r.n, o.d), new(big.Int).Mul(o.n, r.d))
	d := new(big.Int).Mul(r.d, o.d)
	return newRational(n, d)
}

// Subtract returns r - o.
func (r Rational) Subtract(o Rational) Rational {
	n := new(big.Int).Sub(new(big.Int).Mul(r.n, o.d), new(big.Int).Mul(o.n, r.d))
	d := new(big.Int).Mul(r.d, o.d)
	return newRational(n, d)
}

// Multiply returns r * o.
func (r Rational) Multiply(o Rational) Rational {
	return newRational(new(big.Int).Mul(r.n, o.n), new(big.Int).Mul(r.d, o.d))
}

// Divide returns r / o; fails with KindDivisionByZero if o is zero.
func (r Rational) Divide(o Rational) (Rational, error) {
	if o.n.Sign() == 0 {
		return Rational{}, divisionByZero("Rational.Divide: division by zero")
	}
	return newRational(new(big.Int).Mul(r.n, o.d), new(big.Int).Mul(r.d, o.n)), nil
}

// Negate returns -r.
func (r Rational) Negate() Rational { return Rational{n: new(big.Int).Neg(r.n), d: new(big.Int).Set(r.d)} }

// Abs returns |r|.
func (r Rational) Abs() Rational { return Rational{n: new(big.Int).Abs(r.n), d: new(big.Int).Set(r.d)} }

// Reciprocal returns 1/r; fails with KindDivisionByZero if r is zero.
func (r Rational) Reciprocal() (Rational, error) {
	if r.n.Sign() == 0 {
		return Rational{}, divisionByZero("Rational.Reciprocal: reciprocal of zero")
	}
	return newRational(r.d, r.n), nil
}

// Pow raises r to the integer power k using binary exponentiation; negative
// k takes the reciprocal of the positive power. 0^0 and 0^(k<0) fail with
// KindDomainError.
func (r Rational) Pow(k int64) (Rational, error) {
	if r.n.Sign() == 0 {
		if k == 0 {
			return Rational{}, newErr(KindDomainError, "0^0 is undefined")
		}
		if k < 0 {
			return Rational{}, newErr(KindDomainError, "0 to a negative power is undefined")
		}
	}
	if k == 0 {
		return RationalFromInt64(1, 1)
	}
	neg := k < 0
	if neg {
		k = -k
	}
	n := new(big.Int).Exp(r.n, big.NewInt(k), nil)
	d := new(big.Int).Exp(r.d, big.NewInt(k), nil)
	if neg {
		n, d = d, n
	}
	return newRational(n, d), nil
}

// IntegerPart returns floor(r) toward negative infinity for negatives
// (Euclidean floor), the convention continued-fraction expansion relies on.
func (r Rational) IntegerPart() *big.Int {
	q, rem := new(big.Int), new(big.Int)
	q.QuoRem(r.n, r.d, rem)
	if rem.Sign() != 0 && (rem.Sign() < 0) != (r.d.Sign() < 0) {
		q.Sub(q, bigOne)
	}
	return q
}

// Remainder returns r - IntegerPart(r), a Rational in [0, 1).
func (r Rational) Remainder() Rational {
	ip := r.IntegerPart()
	return r.Subtract(newRational(ip, bigOne))
}

