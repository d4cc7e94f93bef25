package ratmath

import (
	"math/big"
	"strings"
	"sync"
)

// reservedBaseChars are operator/grouping characters a BaseSystem digit may
// never use, since the parser relies on them to delimit numeric literals.
const reservedBaseChars = "+-*/^!()[]:.#~"

// BaseSystem is an ordered sequence of b >= 2 distinct single-character
// digits; index i is the digit of value i. A BaseSystem is built once and
// is immutable thereafter.
type BaseSystem struct {
	name    string
	digits  []string
	valueOf map[string]int64

	// toInteger/fromInteger override the default Horner evaluation below,
	// for systems (Roman numerals) whose digit contribution depends on
	// surrounding symbols rather than position. nil for every positional
	// system built through NewBaseSystem/FromBase.
	toInteger   func(string) (*big.Int, error)
	fromInteger func(*big.Int) (string, error)
}

// NewBaseSystem validates digits and builds a BaseSystem named name.
// digits[0] is the "zero" digit. NewBaseSystem fails with KindInvalidLiteral
// if there are fewer than two digits, if any digit repeats, or if any digit
// uses a reserved character.
func NewBaseSystem(name string, digits []string) (*BaseSystem, error) {
	if len(digits) < 2 {
		return nil, newErr(KindInvalidLiteral, "BaseSystem %q: need at least 2 digits, got %d", name, len(digits))
	}
	valueOf := make(map[string]int64, len(digits))
	for i, d := range digits {
		if d == "" || len([]rune(d)) != 1 {
			return nil, newErr(KindInvalidLiteral, "BaseSystem %q: digit %d (%q) must be exactly one character", name, i, d)
		}
		if strings.ContainsAny(d, reservedBaseChars) {
			return nil, newErr(KindInvalidLiteral, "BaseSystem %q: digit %q uses a reserved character", name, d)
		}
		if _, dup := valueOf[d]; dup {
			return nil, newErr(KindInvalidLiteral, "BaseSystem %q: digit %q is duplicated", name, d)
		}
		valueOf[d] = int64(i)
	}
	cp := make([]string, len(digits))
	copy(cp, digits)
	return &BaseSystem{name: name, digits: cp, valueOf: valueOf}, nil
}

// Name returns the human-readable name this system was constructed with.
func (b *BaseSystem) Name() string { return b.name }

// Base returns the number of distinct digits, i.e. the radix.
func (b *BaseSystem) Base() int { return len(b.digits) }

// ToInteger parses s, a string of digits in this system optionally prefixed
// by '-', into a big.Int using Horner evaluation. Non-positional systems
// (Roman) override this with their own algorithm.
func (b *BaseSystem) ToInteger(s string) (*big.Int, error) {
	if b.toInteger != nil {
		return b.toInteger(s)
	}
	if s == "" {
		return nil, newErr(KindInvalidLiteral, "BaseSystem %q: empty digit string", b.name)
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return nil, newErr(KindInvalidLiteral, "BaseSystem %q: no digits after sign", b.name)
	}
	base := big.NewInt(int64(len(b.digits)))
	acc := big.NewInt(0)
	for _, r := range s {
		ch := string(r)
		v, ok := b.valueOf[ch]
		if !ok {
			return nil, newErr(KindInvalidDigit, "character %q is not a valid digit in base system %q", ch, b.name)
		}
		acc.Mul(acc, base)
		acc.Add(acc, big.NewInt(v))
	}
	if neg {
		acc.Neg(acc)
	}
	return acc, nil
}

// FromInteger renders n as a digit string in this system, "0" for zero and
// a leading '-' for negative values. Non-positional systems (Roman) override
// this with their own algorithm; if n falls outside that system's
// representable range, the error text is returned in place of digits.
func (b *BaseSystem) FromInteger(n *big.Int) string {
	if b.fromInteger != nil {
		s, err := b.fromInteger(n)
		if err != nil {
			return err.Error()
		}
		return s
	}
	if n.Sign() == 0 {
		return b.digits[0]
	}
	neg := n.Sign() < 0
	v := new(big.Int).Abs(n)
	base := big.NewInt(int64(len(b.digits)))
	var out []string
	rem := new(big.Int)
	quo := new(big.Int).Set(v)
	for quo.Sign() != 0 {
		quo.QuoRem(quo, base, rem)
		out = append([]string{b.digits[rem.Int64()]}, out...)
	}
	s := strings.Join(out, "")
	if neg {
		s = "-" + s
	}
	return s
}

// IsValid reports whether every character of s (after an optional leading
// '-') is a recognized digit of this system.
func (b *BaseSystem) IsValid(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if _, ok := b.valueOf[string(r)]; !ok {
			return false
		}
	}
	return true
}

// WithCaseInsensitivity returns a new BaseSystem whose digit characters are
// all lowercased. If lowercasing collapses two distinct digits into the
// same character, the resulting ambiguous system is still returned (the
// caller is expected to reject it).
func (b *BaseSystem) WithCaseInsensitivity() *BaseSystem {
	digits := make([]string, len(b.digits))
	for i, d := range b.digits {
		digits[i] = strings.ToLower(d)
	}
	valueOf := make(map[string]int64, len(digits))
	for i, d := range digits {
		valueOf[d] = int64(i) // last index wins on collision, same as the caller would observe
	}
	return &BaseSystem{name: b.name + "-ci", digits: digits, valueOf: valueOf}
}

const base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// FromBase builds the canonical base-b system (2 <= b <= 62) using 0-9, then
// a-z, then A-Z, named name.
func FromBase(b int, name string) (*BaseSystem, error) {
	if b < 2 || b > len(base62Alphabet) {
		return nil, newErr(KindInvalidLiteral, "FromBase: base %d out of range [2,%d]", b, len(base62Alphabet))
	}
	digits := make([]string, b)
	for i := 0; i < b; i++ {
		digits[i] = string(base62Alphabet[i])
	}
	return NewBaseSystem(name, digits)
}

// PatternKind selects a convenience digit-set shape for CreatePattern.
type PatternKind int

const (
	PatternAlphanumeric PatternKind = iota
	PatternDigitsOnly
	PatternLettersOnly
	PatternUppercaseOnly
)

// CreatePattern builds a BaseSystem of the given size from a documented
// character pool:
//
//	PatternDigitsOnly:    '0'-'9'                (size <= 10)
//	PatternLettersOnly:   'a'-'z'                (size <= 26)
//	PatternUppercaseOnly: 'A'-'Z'                (size <= 26)
//	PatternAlphanumeric:  '0'-'9','a'-'z','A'-'Z' (size <= 62)
func CreatePattern(kind PatternKind, size int) (*BaseSystem, error) {
	var pool string
	var name string
	switch kind {
	case PatternDigitsOnly:
		pool, name = "0123456789", "digits-only"
	case PatternLettersOnly:
		pool, name = "abcdefghijklmnopqrstuvwxyz", "letters-only"
	case PatternUppercaseOnly:
		pool, name = "ABCDEFGHIJKLMNOPQRSTUVWXYZ", "uppercase-only"
	case PatternAlphanumeric:
		pool, name = base62Alphabet, "alphanumeric"
	default:
		return nil, newErr(KindInvalidLiteral, "CreatePattern: unknown kind %d", int(kind))
	}
	if size < 2 || size > len(pool) {
		return nil, newErr(KindInvalidLiteral, "CreatePattern: size %d out of range [2,%d] for %s", size, len(pool), name)
	}
	digits := make([]string, size)
	for i := 0; i < size; i++ {
		digits[i] = string(pool[i])
	}
	return NewBaseSystem(name, digits)
}

func mustBase(b *BaseSystem, err error) *BaseSystem {
	if err != nil {
		panic(err)
	}
	return b
}

// Common positional numeral systems, ready to use without construction.
var (
	Binary      = mustBase(FromBase(2, "binary"))
	Octal       = mustBase(FromBase(8, "octal"))
	Decimal     = mustBase(FromBase(10, "decimal"))
	Hexadecimal = mustBase(FromBase(16, "hexadecimal"))
	Base36      = mustBase(FromBase(36, "base36"))
	Base60      = mustBase(sexagesimalDigits())
	Base62      = mustBase(FromBase(62, "base62"))
	// Roman is not a positional system; its ToInteger/FromInteger are
	// overridden (see newRomanSystem in roman.go) to use the standard
	// subtractive Roman-numeral algorithm rather than Horner evaluation.
	Roman = newRomanSystem()
)

// sexagesimalDigits builds base 60 from the first 60 symbols of the 0-61
// alphanumeric convention: 0-9, then a-z, then A-X.
func sexagesimalDigits() (*BaseSystem, error) {
	digits := make([]string, 60)
	for i := 0; i < 60; i++ {
		digits[i] = string(base62Alphabet[i])
	}
	return NewBaseSystem("base60", digits)
}

// prefixRegistry is the process-wide single-letter-prefix -> BaseSystem
// table consulted by the parser's base-prefixed literal syntax. Readers
// hold the mutex only long enough to take the current map; writers publish
// a brand new map under the mutex and never modify a published one, so
// concurrent readers never observe a partially updated map.
type prefixRegistry struct {
	mu  sync.Mutex
	tbl map[byte]*BaseSystem
}

func newPrefixRegistry() *prefixRegistry {
	return &prefixRegistry{tbl: map[byte]*BaseSystem{
		'x': Hexadecimal,
		'b': Binary,
		'o': Octal,
		'd': Decimal,
	}}
}

var globalPrefixRegistry = newPrefixRegistry()

// RegisterPrefix associates the single ASCII letter c with sys in the
// process-wide prefix table, replacing any previous association.
func RegisterPrefix(c byte, sys *BaseSystem) error {
	if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return newErr(KindInvalidLiteral, "RegisterPrefix: %q is not a single ASCII letter", c)
	}
	globalPrefixRegistry.mu.Lock()
	defer globalPrefixRegistry.mu.Unlock()
	next := make(map[byte]*BaseSystem, len(globalPrefixRegistry.tbl)+1)
	for k, v := range globalPrefixRegistry.tbl {
		next[k] = v
	}
	next[c] = sys
	globalPrefixRegistry.tbl = next
	return nil
}

// GetSystemForPrefix returns the BaseSystem registered for prefix letter c,
// and false if none is registered.
func GetSystemForPrefix(c byte) (*BaseSystem, bool) {
	globalPrefixRegistry.mu.Lock()
	tbl := globalPrefixRegistry.tbl
	globalPrefixRegistry.mu.Unlock()
	sys, ok := tbl[c]
	return sys, ok
}

// GetPrefixForSystem scans the prefix table by value-equality (pointer
// identity) and returns the first matching prefix letter.
func GetPrefixForSystem(sys *BaseSystem) (byte, bool) {
	globalPrefixRegistry.mu.Lock()
	tbl := globalPrefixRegistry.tbl
	globalPrefixRegistry.mu.Unlock()
	for k, v := range tbl {
		if v == sys {
			return k, true
		}
	}
	return 0, false
}

// ResetPrefixRegistry restores the default x/b/o/d prefix table. Exposed
// for tests that register custom prefixes and must not leak state across
// test cases.
func ResetPrefixRegistry() {
	globalPrefixRegistry.mu.Lock()
	defer globalPrefixRegistry.mu.Unlock()
	globalPrefixRegistry.tbl = newPrefixRegistry().tbl
}
