package ratmath

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// ParseOptions configures a Parser. The zero value is not
// directly usable; build one with NewParser's functional options, which
// apply sane defaults (decimal input base, type-aware demotion on,
// scientific notation enabled).
type ParseOptions struct {
	TypeAware        bool
	InputBase        *BaseSystem
	Precision        int
	DisableENotation bool
}

// ParserOption configures a Parser, in the functional-options style.
type ParserOption func(*ParseOptions)

// WithInputBase sets the BaseSystem plain digit runs (and the base-aware
// "_^" scientific form) are interpreted in. Base-prefixed literals
// ("0xff") always force their own base regardless of this setting.
func WithInputBase(b *BaseSystem) ParserOption {
	return func(o *ParseOptions) { o.InputBase = b }
}

// WithPrecision sets the default precision parameter k passed to
// transcendental function calls that omit their own "[k]".
func WithPrecision(k int) ParserOption {
	return func(o *ParseOptions) { o.Precision = k }
}

// WithoutENotation disables scientific-notation ("3E2") recognition,
// matching an input format where 'E' has no special meaning.
func WithoutENotation() ParserOption {
	return func(o *ParseOptions) { o.DisableENotation = true }
}

// WithTypeAware controls whether a plain finite-decimal literal with no
// explicit uncertainty syntax stays a Rational (true, the default) or is
// read as an implicit +-half-unit-in-the-last-place Interval (false).
func WithTypeAware(v bool) ParserOption {
	return func(o *ParseOptions) { o.TypeAware = v }
}

// Parser evaluates ratmath expressions under a fixed ParseOptions.
type Parser struct {
	opts ParseOptions
}

// NewParser builds a Parser with defaults (decimal base, type-aware,
// E-notation enabled) overridden by opts in order.
func NewParser(opts ...ParserOption) *Parser {
	o := ParseOptions{TypeAware: true, InputBase: Decimal}
	for _, fn := range opts {
		fn(&o)
	}
	if o.InputBase == nil {
		o.InputBase = Decimal
	}
	return &Parser{opts: o}
}

// Parse evaluates expr to a single Value, fully promoted/demoted
func (p *Parser) Parse(expr string) (Value, error) {
	pc := &parseCtx{s: expr, opts: p.opts}
	pc.skipSpace()
	if pc.eof() {
		return nil, newErr(KindInvalidLiteral, "EmptyExpression: nothing to parse")
	}
	val, err := pc.parseIntervalExpr()
	if err != nil {
		return nil, err
	}
	pc.skipSpace()
	if !pc.eof() {
		return nil, newErr(KindInvalidLiteral, "UnexpectedToken: unconsumed input %q", pc.s[pc.pos:])
	}
	return val, nil
}

// Parse is the package-level one-shot entry point: NewParser(opts...).Parse(expr).
func Parse(expr string, opts ...ParserOption) (Value, error) {
	return NewParser(opts...).Parse(expr)
}

// R parses expr with default (type-aware) options. It is the primary
// evaluation shortcut.
func R(expr string) (Value, error) {
	return Parse(expr)
}

// F parses expr as a single Fraction literal ("n", "n/d", or "w..n/d"), the
// Fraction-preferred shortcut. "n/d" keeps its numerator and denominator as
// written; a mixed number "w..n/d" comes back reduced to lowest terms. It
// does not accept general expressions.
func F(expr string) (Fraction, error) {
	expr = strings.TrimSpace(expandRunLength(expr))
	neg := false
	if strings.HasPrefix(expr, "-") {
		neg = true
		expr = expr[1:]
	}
	if idx := strings.Index(expr, ".."); idx >= 0 {
		r, err := parseMixedNumberPublic(expr)
		if err != nil {
			return Fraction{}, err
		}
		if neg {
			r = r.Negate()
		}
		return NewFraction(r.n, r.d, false)
	}
	if idx := strings.IndexByte(expr, '/'); idx >= 0 {
		n, ok := new(big.Int).SetString(expr[:idx], 10)
		if !ok {
			return Fraction{}, newErr(KindInvalidLiteral, "F: bad numerator in %q", expr)
		}
		d, ok := new(big.Int).SetString(expr[idx+1:], 10)
		if !ok {
			return Fraction{}, newErr(KindInvalidLiteral, "F: bad denominator in %q", expr)
		}
		if neg {
			n.Neg(n)
		}
		return NewFraction(n, d, true)
	}
	n, ok := new(big.Int).SetString(expr, 10)
	if !ok {
		return Fraction{}, newErr(KindInvalidLiteral, "F: %q is not a valid fraction literal", expr)
	}
	if neg {
		n.Neg(n)
	}
	return NewFraction(n, big.NewInt(1), false)
}

func parseMixedNumberPublic(s string) (Rational, error) {
	return parseMixedNumber(s, strings.Index(s, ".."))
}

// parseCtx is the mutable cursor driving the recursive-descent grammar.
type parseCtx struct {
	s    string
	pos  int
	opts ParseOptions
}

func (pc *parseCtx) eof() bool { return pc.pos >= len(pc.s) }

func (pc *parseCtx) peek() byte {
	if pc.eof() {
		return 0
	}
	return pc.s[pc.pos]
}

func (pc *parseCtx) peekAt(off int) byte {
	if pc.pos+off >= len(pc.s) {
		return 0
	}
	return pc.s[pc.pos+off]
}

func (pc *parseCtx) hasPrefix(p string) bool {
	return strings.HasPrefix(pc.s[pc.pos:], p)
}

func (pc *parseCtx) skipSpace() {
	for !pc.eof() && (pc.peek() == ' ' || pc.peek() == '\t' || pc.peek() == '\n' || pc.peek() == '\r') {
		pc.pos++
	}
}

// parseIntervalExpr handles the lowest-precedence explicit interval
// notation "lo:hi", falling through to parseExpr when absent.
func (pc *parseCtx) parseIntervalExpr() (Value, error) {
	lo, err := pc.parseExpr()
	if err != nil {
		return nil, err
	}
	pc.skipSpace()
	if pc.peek() == ':' {
		pc.pos++
		hi, err := pc.parseExpr()
		if err != nil {
			return nil, err
		}
		loR, err := toRational(lo)
		if err != nil {
			return nil, err
		}
		hiR, err := toRational(hi)
		if err != nil {
			return nil, err
		}
		return NewExplicitInterval(loR, hiR), nil
	}
	return lo, nil
}

func toRational(v Value) (Rational, error) {
	switch t := v.(type) {
	case Integer:
		return t.ToRational(), nil
	case Rational:
		return t, nil
	default:
		return Rational{}, newErr(KindTypeMismatch, "interval endpoints must be Integer or Rational, got %s", v.Kind())
	}
}

// parseExpr: Term (('+'|'-') Term)*
func (pc *parseCtx) parseExpr() (Value, error) {
	val, err := pc.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		pc.skipSpace()
		switch pc.peek() {
		case '+':
			pc.pos++
			rhs, err := pc.parseTerm()
			if err != nil {
				return nil, err
			}
			val, err = applyBinary('+', val, rhs)
			if err != nil {
				return nil, err
			}
		case '-':
			pc.pos++
			rhs, err := pc.parseTerm()
			if err != nil {
				return nil, err
			}
			val, err = applyBinary('-', val, rhs)
			if err != nil {
				return nil, err
			}
		default:
			return val, nil
		}
	}
}

// parseTerm: Factor (('*'|'/'|E) Factor)*. The 'E' infix operator (only
// recognized with a space separating it from a preceding literal -- a
// space-free "3E2" is consumed as part of the literal itself by
// parseNumericLiteral) multiplies the left operand by 10^exponent.
func (pc *parseCtx) parseTerm() (Value, error) {
	val, err := pc.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		pc.skipSpace()
		switch {
		case pc.peek() == '*' && pc.peekAt(1) != '*':
			pc.pos++
			rhs, err := pc.parseFactor()
			if err != nil {
				return nil, err
			}
			val, err = applyBinary('*', val, rhs)
			if err != nil {
				return nil, err
			}
		case pc.peek() == '/':
			pc.pos++
			rhs, err := pc.parseFactor()
			if err != nil {
				return nil, err
			}
			val, err = applyBinary('/', val, rhs)
			if err != nil {
				return nil, err
			}
		case !pc.opts.DisableENotation && (pc.peek() == 'E' || pc.peek() == 'e'):
			pc.pos++
			pc.skipSpace()
			expStr, ok := pc.readSignedDecimalInt()
			if !ok {
				return nil, newErr(KindInvalidLiteral, "UnexpectedToken: expected exponent after 'E'")
			}
			k := mustParseInt64(expStr)
			val, err = applyE(val, k)
			if err != nil {
				return nil, err
			}
		default:
			return val, nil
		}
	}
}

func (pc *parseCtx) readSignedDecimalInt() (string, bool) {
	start := pc.pos
	if pc.peek() == '+' || pc.peek() == '-' {
		pc.pos++
	}
	digitStart := pc.pos
	for !pc.eof() && pc.peek() >= '0' && pc.peek() <= '9' {
		pc.pos++
	}
	if pc.pos == digitStart {
		pc.pos = start
		return "", false
	}
	return pc.s[start:pc.pos], true
}

// parseFactor: ('-'|'+')* Postfix
func (pc *parseCtx) parseFactor() (Value, error) {
	pc.skipSpace()
	neg := false
	for {
		if pc.peek() == '-' {
			neg = !neg
			pc.pos++
			pc.skipSpace()
			continue
		}
		if pc.peek() == '+' {
			pc.pos++
			pc.skipSpace()
			continue
		}
		break
	}
	val, err := pc.parsePostfixPrimary()
	if err != nil {
		return nil, err
	}
	if neg {
		val = negateValue(val)
	}
	return val, nil
}

// parsePostfixPrimary: Primary ( '**' Exponent | '^' Exponent | '!!' | '!' )*
func (pc *parseCtx) parsePostfixPrimary() (Value, error) {
	val, err := pc.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		pc.skipSpace()
		switch {
		case pc.hasPrefix("**"):
			pc.pos += 2
			p, q, err := pc.parseExponentOperand()
			if err != nil {
				return nil, err
			}
			val, err = applyPow(val, p, q, true)
			if err != nil {
				return nil, err
			}
		case pc.peek() == '^':
			pc.pos++
			p, q, err := pc.parseExponentOperand()
			if err != nil {
				return nil, err
			}
			val, err = applyPow(val, p, q, false)
			if err != nil {
				return nil, err
			}
		case pc.hasPrefix("!!"):
			pc.pos += 2
			val, err = applyDoubleFactorial(val)
			if err != nil {
				return nil, err
			}
		case pc.peek() == '!':
			pc.pos++
			val, err = applyFactorial(val)
			if err != nil {
				return nil, err
			}
		default:
			return val, nil
		}
	}
}

// parseExponentOperand reads either a parenthesized expression (evaluated
// then decomposed into p/q) or a bare signed integer (q=1).
func (pc *parseCtx) parseExponentOperand() (p, q int64, err error) {
	pc.skipSpace()
	if pc.peek() == '(' {
		pc.pos++
		val, err := pc.parseExpr()
		if err != nil {
			return 0, 0, err
		}
		pc.skipSpace()
		if pc.peek() != ')' {
			return 0, 0, newErr(KindInvalidLiteral, "MissingParenthesis: expected ')' closing exponent")
		}
		pc.pos++
		return valueToPQ(val)
	}
	expStr, ok := pc.readSignedDecimalInt()
	if !ok {
		return 0, 0, newErr(KindInvalidLiteral, "UnexpectedToken: expected an exponent")
	}
	return mustParseInt64(expStr), 1, nil
}

func valueToPQ(v Value) (int64, int64, error) {
	switch t := v.(type) {
	case Integer:
		return t.v.Int64(), 1, nil
	case Rational:
		return t.n.Int64(), t.d.Int64(), nil
	default:
		return 0, 0, newErr(KindTypeMismatch, "an exponent must be Integer or Rational, got %s", v.Kind())
	}
}

// parsePrimary: '(' IntervalExpr ')' | Function '(' Expr (',' Expr)? ')' | Number
func (pc *parseCtx) parsePrimary() (Value, error) {
	pc.skipSpace()
	if pc.eof() {
		return nil, newErr(KindInvalidLiteral, "UnexpectedToken: expected a value, found end of input")
	}
	if pc.peek() == '(' {
		pc.pos++
		val, err := pc.parseIntervalExpr()
		if err != nil {
			return nil, err
		}
		pc.skipSpace()
		if pc.peek() != ')' {
			return nil, newErr(KindInvalidLiteral, "MissingParenthesis: expected ')'")
		}
		pc.pos++
		return val, nil
	}
	if isUpperLetter(pc.peek()) {
		return pc.parseFunctionCall()
	}
	lit, err := parseNumericLiteral(pc.s[pc.pos:], pc.opts)
	if err != nil {
		return nil, err
	}
	pc.pos += lit.n
	return lit.value, nil
}

func isUpperLetter(b byte) bool { return b >= 'A' && b <= 'Z' }

// parseFunctionCall: Name ('[' precision ']')? '(' Expr (',' Expr)* ')'
func (pc *parseCtx) parseFunctionCall() (Value, error) {
	start := pc.pos
	for !pc.eof() && isUpperLetter(pc.peek()) {
		pc.pos++
	}
	name := pc.s[start:pc.pos]

	precision := pc.opts.Precision
	if pc.peek() == '[' {
		bodyStart := pc.pos + 1
		end := strings.IndexByte(pc.s[bodyStart:], ']')
		if end < 0 {
			return nil, newErr(KindInvalidLiteral, "MissingParenthesis: unterminated '[' precision on %s", name)
		}
		precision = int(mustParseInt64(pc.s[bodyStart : bodyStart+end]))
		pc.pos = bodyStart + end + 1
	}

	if pc.peek() != '(' {
		return nil, newErr(KindInvalidLiteral, "UnexpectedToken: expected '(' after function name %s", name)
	}
	pc.pos++

	var args []Value
	pc.skipSpace()
	if pc.peek() != ')' {
		v, err := pc.parseIntervalExpr()
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("argument 1 to %s", name))
		}
		args = append(args, v)
		pc.skipSpace()
		for pc.peek() == ',' {
			pc.pos++
			v, err := pc.parseIntervalExpr()
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("argument %d to %s", len(args)+1, name))
			}
			args = append(args, v)
			pc.skipSpace()
		}
	}
	if pc.peek() != ')' {
		return nil, newErr(KindInvalidLiteral, "MissingParenthesis: expected ')' closing call to %s", name)
	}
	pc.pos++

	fn, ok := LookupTranscendental(name)
	if !ok {
		return nil, newErr(KindInvalidLiteral, "UnexpectedToken: %s is not a recognized function", name)
	}
	eps := EpsilonFromPrecision(precision)
	iv, err := fn(args, eps)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("evaluating %s", name))
	}
	return demoteInterval(iv), nil
}

// applyBinary dispatches +, -, *, / across the common promoted Kind of a
// and b. Division through Integer.Divide already yields the most
// reduced representation; the Rational and Interval branches run demotion
// explicitly since their own Divide/Multiply/etc. never demote themselves.
func applyBinary(op byte, a, b Value) (Value, error) {
	ap, bp := promotePair(a, b)
	switch av := ap.(type) {
	case Integer:
		bv := bp.(Integer)
		switch op {
		case '+':
			return av.Add(bv), nil
		case '-':
			return av.Subtract(bv), nil
		case '*':
			return av.Multiply(bv), nil
		case '/':
			return av.Divide(bv)
		}
	case Rational:
		bv := bp.(Rational)
		switch op {
		case '+':
			return demoteRational(av.Add(bv)), nil
		case '-':
			return demoteRational(av.Subtract(bv)), nil
		case '*':
			return demoteRational(av.Multiply(bv)), nil
		case '/':
			q, err := av.Divide(bv)
			if err != nil {
				return nil, err
			}
			return demoteRational(q), nil
		}
	case RationalInterval:
		bv := bp.(RationalInterval)
		switch op {
		case '+':
			return demoteInterval(av.Add(bv)), nil
		case '-':
			return demoteInterval(av.Subtract(bv)), nil
		case '*':
			return demoteInterval(av.Multiply(bv)), nil
		case '/':
			q, err := av.Divide(bv)
			if err != nil {
				return nil, err
			}
			return demoteInterval(q), nil
		}
	}
	panic("ratmath: applyBinary: unreachable")
}

// scaleByPowTen returns r * 10^k without demotion, for internal use by
// applyE (which demotes at its own boundary).
func scaleByPowTen(r Rational, k int64) Rational {
	scale := new(big.Int).Exp(bigTen, big.NewInt(absInt64(k)), nil)
	if k >= 0 {
		return newRational(new(big.Int).Mul(r.n, scale), r.d)
	}
	return newRational(r.n, new(big.Int).Mul(r.d, scale))
}

// applyE implements the 'E' scientific-notation infix operator: multiply by
// 10^k, preserving the operand's Kind and only demoting at the boundary.
func applyE(base Value, k int64) (Value, error) {
	switch v := base.(type) {
	case Integer:
		return v.E(k), nil
	case Rational:
		return demoteRational(scaleByPowTen(v, k)), nil
	case RationalInterval:
		lo := scaleByPowTen(v.lo, k)
		hi := scaleByPowTen(v.hi, k)
		iv := RationalInterval{lo: lo, hi: hi, explicitInterval: v.explicitInterval, skipPromotion: v.skipPromotion}
		return demoteInterval(iv), nil
	default:
		return nil, newErr(KindTypeMismatch, "E: unsupported operand kind")
	}
}

func negateValue(v Value) Value {
	switch t := v.(type) {
	case Integer:
		return t.Negate()
	case Rational:
		return demoteRational(t.Negate())
	case RationalInterval:
		return demoteInterval(t.Negate())
	default:
		panic("ratmath: negateValue: unknown Value implementation")
	}
}

func applyFactorial(v Value) (Value, error) {
	i, ok := v.(Integer)
	if !ok {
		return nil, newErr(KindTypeMismatch, "!: factorial requires an Integer operand, got %s", v.Kind())
	}
	r, err := i.Factorial()
	if err != nil {
		return nil, err
	}
	return r, nil
}

func applyDoubleFactorial(v Value) (Value, error) {
	i, ok := v.(Integer)
	if !ok {
		return nil, newErr(KindTypeMismatch, "!!: double factorial requires an Integer operand, got %s", v.Kind())
	}
	r, err := i.DoubleFactorial()
	if err != nil {
		return nil, err
	}
	return r, nil
}

// applyPow dispatches '^' (multiplicative=false) and '**'
// (multiplicative=true) for an exponent p/q. Integer q (q==1) uses the
// ordinary/multiplicative power methods directly; q != 1 attempts exact
// integer q-th root extraction on the base before raising to p, since this
// package stores only exact rationals (no irrational results) -- a base
// that is not a perfect q-th power fails with KindDomainError rather than
// producing an inexact value.
func applyPow(base Value, p, q int64, multiplicative bool) (Value, error) {
	if q == 1 {
		return applyIntPow(base, p, multiplicative)
	}
	if q < 0 {
		q, p = -q, -p
	}
	switch b := base.(type) {
	case Integer:
		root, ok := nthRootExact(b.v, q)
		if !ok {
			return nil, newErr(KindDomainError, "^: %s is not a perfect %d-th power", b, q)
		}
		return applyIntPow(Integer{root}, p, multiplicative)
	case Rational:
		nRoot, okN := nthRootExact(b.n, q)
		dRoot, okD := nthRootExact(b.d, q)
		if !okN || !okD {
			return nil, newErr(KindDomainError, "^: %s is not a perfect %d-th power", b, q)
		}
		return applyIntPow(newRational(nRoot, dRoot), p, multiplicative)
	default:
		return nil, newErr(KindTypeMismatch, "^: rational exponents are not supported on Interval operands")
	}
}

func applyIntPow(v Value, k int64, multiplicative bool) (Value, error) {
	switch t := v.(type) {
	case Integer:
		if k < 0 {
			r, err := t.ToRational().Pow(k)
			if err != nil {
				return nil, err
			}
			return demoteRational(r), nil
		}
		r, err := t.Pow(k)
		if err != nil {
			return nil, err
		}
		return r, nil
	case Rational:
		r, err := t.Pow(k)
		if err != nil {
			return nil, err
		}
		return demoteRational(r), nil
	case RationalInterval:
		var r RationalInterval
		var err error
		if multiplicative {
			r, err = t.MPow(k)
		} else {
			r, err = t.Pow(k)
		}
		if err != nil {
			return nil, err
		}
		return demoteInterval(r), nil
	default:
		return nil, newErr(KindTypeMismatch, "^: unsupported operand kind")
	}
}

// nthRootExact finds x with x^k == |n| (exact), returning (x or -x, true),
// or (nil, false) if |n| is not a perfect k-th power. Negative n requires
// odd k. Computed by Newton's method on integers followed by a linear
// exactness adjustment, since math/big has no general integer root.
func nthRootExact(n *big.Int, k int64) (*big.Int, bool) {
	if k <= 0 {
		return nil, false
	}
	neg := n.Sign() < 0
	if neg && k%2 == 0 {
		return nil, false
	}
	absN := new(big.Int).Abs(n)
	if absN.Sign() == 0 {
		return big.NewInt(0), true
	}
	if k == 1 {
		r := new(big.Int).Set(absN)
		if neg {
			r.Neg(r)
		}
		return r, true
	}
	kBig := big.NewInt(k)
	km1 := big.NewInt(k - 1)
	guessBits := absN.BitLen()/int(k) + 1
	x := new(big.Int).Lsh(bigOne, uint(guessBits))
	for i := 0; i < 200; i++ {
		xkm1 := new(big.Int).Exp(x, km1, nil)
		if xkm1.Sign() == 0 {
			xkm1 = big.NewInt(1)
		}
		next := new(big.Int).Mul(km1, x)
		next.Add(next, new(big.Int).Quo(absN, xkm1))
		next.Quo(next, kBig)
		if next.Sign() <= 0 {
			next = big.NewInt(1)
		}
		if next.Cmp(x) == 0 {
			break
		}
		x = next
	}
	for new(big.Int).Exp(x, kBig, nil).Cmp(absN) > 0 {
		x.Sub(x, bigOne)
	}
	for new(big.Int).Exp(new(big.Int).Add(x, bigOne), kBig, nil).Cmp(absN) <= 0 {
		x.Add(x, bigOne)
	}
	if new(big.Int).Exp(x, kBig, nil).Cmp(absN) != 0 {
		return nil, false
	}
	if neg {
		x.Neg(x)
	}
	return x, true
}
