package ratmath

import (
	"math/big"
	"strings"
)

var romanValues = []struct {
	sym string
	val int64
}{
	{"M", 1000}, {"CM", 900}, {"D", 500}, {"CD", 400},
	{"C", 100}, {"XC", 90}, {"L", 50}, {"XL", 40},
	{"X", 10}, {"IX", 9}, {"V", 5}, {"IV", 4}, {"I", 1},
}

// newRomanSystem builds the *BaseSystem exposed as Roman. digits/valueOf are
// unused by ToInteger/FromInteger (overridden below with the subtractive
// algorithm) but stay populated so IsValid's digit check and Base() remain
// meaningful.
func newRomanSystem() *BaseSystem {
	return &BaseSystem{
		name:   "roman",
		digits: []string{"I", "V", "X", "L", "C", "D", "M"},
		valueOf: map[string]int64{
			"I": 1, "V": 5, "X": 10, "L": 50, "C": 100, "D": 500, "M": 1000,
		},
		toInteger:   RomanToInteger,
		fromInteger: RomanFromInteger,
	}
}

// RomanToInteger parses a Roman numeral string (no leading '-': classical
// Roman numerals have no sign) into a big.Int.
func RomanToInteger(s string) (*big.Int, error) {
	s = strings.ToUpper(s)
	if s == "" {
		return nil, newErr(KindInvalidLiteral, "Roman: empty numeral")
	}
	acc := big.NewInt(0)
	i := 0
	for i < len(s) {
		matched := false
		for _, rv := range romanValues {
			if strings.HasPrefix(s[i:], rv.sym) {
				acc.Add(acc, big.NewInt(rv.val))
				i += len(rv.sym)
				matched = true
				break
			}
		}
		if !matched {
			return nil, newErr(KindInvalidDigit, "character %q is not a valid Roman numeral digit", s[i])
		}
	}
	return acc, nil
}

// RomanFromInteger renders n (which must satisfy 0 < n < 4000) as a Roman
// numeral using the standard subtractive algorithm.
func RomanFromInteger(n *big.Int) (string, error) {
	if n.Sign() <= 0 || n.Cmp(big.NewInt(3999)) > 0 {
		return "", newErr(KindDomainError, "Roman: %s outside representable range [1,3999]", n.String())
	}
	v := n.Int64()
	var sb strings.Builder
	for _, rv := range romanValues {
		for v >= rv.val {
			sb.WriteString(rv.sym)
			v -= rv.val
		}
	}
	return sb.String(), nil
}
