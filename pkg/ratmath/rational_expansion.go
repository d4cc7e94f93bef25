package ratmath

import (
	"math/big"
	"strconv"
	"strings"
	"sync"
)

// Iteration caps on expansion and continued-fraction work.
const (
	// MaxPeriodCheck bounds the multiplicative-order search for period
	// length. Exceeding it reports period length -1 ("unknown / exceeds limit").
	MaxPeriodCheck = 2_000_000
	// DefaultCFLimit bounds continued-fraction term extraction when the
	// caller does not specify one.
	DefaultCFLimit = 1000
	// DefaultDigitLimit bounds to_repeating_base digit emission when the
	// caller does not specify one.
	DefaultDigitLimit = 1000
)

// Expansion is the decimal/base-expansion analysis of a non-negative
// Rational in a given base.
type Expansion struct {
	Negative     bool
	IntegerPart  string // digit string of the integer part, in base
	PrePeriod    string // digits of the non-repeating fractional prefix
	Period       string // digits of the repeating suffix ("" if terminating)
	Terminating  bool   // true iff the expansion has no repeating part
	Truncated    bool   // true iff digit emission hit the caller's limit before a cycle was confirmed
	PeriodLength int    // multiplicative order of base mod d'; -1 if it exceeded MaxPeriodCheck

	PrePeriodLeadingZeros int
	PrePeriodRest         string
	PeriodLeadingZeros    int
	PeriodRest            string
}

type expansionKey struct {
	n, d  string
	base  int
	limit int
}

var expansionCache sync.Map // expansionKey -> *Expansion

// Expand analyzes r in base (default Decimal if nil), extracting at most
// limit fractional digits (DefaultDigitLimit if limit <= 0). Results are
// memoized per (numerator, denominator, base, limit) key: concurrent first
// calls may recompute, but always agree.
func (r Rational) Expand(base *BaseSystem, limit int) (*Expansion, error) {
	if base == nil {
		base = Decimal
	}
	if limit <= 0 {
		limit = DefaultDigitLimit
	}
	key := expansionKey{n: r.n.String(), d: r.d.String(), base: base.Base(), limit: limit}
	if v, ok := expansionCache.Load(key); ok {
		return v.(*Expansion), nil
	}
	exp, err := computeExpansion(r, base, limit)
	if err != nil {
		return nil, err
	}
	actual, _ := expansionCache.LoadOrStore(key, exp)
	return actual.(*Expansion), nil
}

func computeExpansion(r Rational, base *BaseSystem, limit int) (*Expansion, error) {
	b := int64(base.Base())
	nAbs := new(big.Int).Abs(r.n)
	d := new(big.Int).Set(r.d)

	intPart := new(big.Int).Quo(nAbs, d)
	remainder := new(big.Int).Rem(nAbs, d)

	// Pre-period length L = max valuation of d over the distinct prime
	// factors of the base step 1.
	primes := primeFactors(b)
	dPrime := new(big.Int).Set(d)
	for _, p := range primes {
		pb := big.NewInt(p)
		v := valuation(dPrime, pb)
		for i := 0; i < v; i++ {
			dPrime.Quo(dPrime, pb)
		}
	}

	periodLength := 0
	terminating := dPrime.Cmp(bigOne) == 0
	if !terminating {
		ord, err := multiplicativeOrder(big.NewInt(b), dPrime)
		if err != nil {
			return nil, err
		}
		periodLength = ord
	}

	// Digit extraction via long division with cycle detection, capped at
	// limit digits.
	bBig := big.NewInt(b)
	seen := make(map[string]int)
	var digitVals []int64
	rem := new(big.Int).Set(remainder)
	periodStart := -1
	truncated := false
	for len(digitVals) < limit {
		if rem.Sign() == 0 {
			break
		}
		key := rem.String()
		if p, ok := seen[key]; ok {
			periodStart = p
			break
		}
		seen[key] = len(digitVals)
		rem.Mul(rem, bBig)
		digit := new(big.Int).Quo(rem, d)
		rem.Mod(rem, d)
		digitVals = append(digitVals, digit.Int64())
	}
	if rem.Sign() != 0 && periodStart < 0 && len(digitVals) == limit {
		truncated = true
	}

	var preDigits, perDigits []int64
	if periodStart >= 0 {
		preDigits = digitVals[:periodStart]
		perDigits = digitVals[periodStart:]
	} else {
		preDigits = digitVals
	}

	toDigitString := func(vals []int64) string {
		var sb strings.Builder
		for _, v := range vals {
			sb.WriteString(base.digits[v])
		}
		return sb.String()
	}

	prePeriodStr := toDigitString(preDigits)
	periodStr := toDigitString(perDigits)

	preLead, preRest := countLeadingZeros(prePeriodStr, base.digits[0])
	perLead, perRest := countLeadingZeros(periodStr, base.digits[0])

	return &Expansion{
		Negative:              r.n.Sign() < 0,
		IntegerPart:           base.FromInteger(intPart),
		PrePeriod:             prePeriodStr,
		Period:                periodStr,
		Terminating:           terminating && !truncated,
		Truncated:             truncated,
		PeriodLength:          periodLength,
		PrePeriodLeadingZeros: preLead,
		PrePeriodRest:         preRest,
		PeriodLeadingZeros:    perLead,
		PeriodRest:            perRest,
	}, nil
}

func countLeadingZeros(s, zeroDigit string) (int, string) {
	count := 0
	for strings.HasPrefix(s[count*len(zeroDigit):], zeroDigit) && count*len(zeroDigit) < len(s) {
		count++
	}
	return count, s[count*len(zeroDigit):]
}

// multiplicativeOrder finds the smallest k >= 1 with base^k == 1 (mod mod),
// capped at MaxPeriodCheck. Returns -1 (not an error) if the cap is hit,
// matching "report period unknown / exceeds limit".
func multiplicativeOrder(base, mod *big.Int) (int, error) {
	if mod.Cmp(bigOne) <= 0 {
		return 0, nil
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Mod(base, mod), mod)
	if g.Cmp(bigOne) != 0 {
		return 0, newErr(KindDomainError, "multiplicativeOrder: base and modulus are not coprime")
	}
	cur := new(big.Int).Mod(base, mod)
	for k := 1; k <= MaxPeriodCheck; k++ {
		if cur.Cmp(bigOne) == 0 {
			return k, nil
		}
		cur.Mul(cur, base)
		cur.Mod(cur, mod)
	}
	return -1, nil
}

// Format renders r's decimal/base expansion as
// "[-]intpart.preperiod#period", with a terminating expansion written
// "...#0" and a truncated one ending "...".
func (r Rational) Format(base *BaseSystem) (string, error) {
	if base == nil {
		base = Decimal
	}
	exp, err := r.Expand(base, DefaultDigitLimit)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if exp.Negative {
		sb.WriteByte('-')
	}
	sb.WriteString(exp.IntegerPart)
	sb.WriteByte('.')
	sb.WriteString(exp.PrePeriod)
	sb.WriteByte('#')
	switch {
	case exp.Truncated:
		sb.WriteString(exp.Period)
		sb.WriteString("...")
	case exp.Terminating:
		sb.WriteString("0")
	default:
		sb.WriteString(exp.Period)
	}
	return sb.String(), nil
}

// ParseRepeatingDecimal parses a literal of the shape
// "[-]int.preperiod#period" (period "0" means terminating) back into a
// Rational, inverting Format. Run-length markers are expanded first.
func ParseRepeatingDecimal(s string) (Rational, error) {
	s = expandRunLength(strings.TrimSpace(s))
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	hash := strings.IndexByte(s, '#')
	if hash < 0 {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRepeatingDecimal: %q has no '#' period marker", s)
	}
	body := s[:hash]
	period := strings.TrimSuffix(s[hash+1:], "...")
	dot := strings.IndexByte(body, '.')
	if dot < 0 {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRepeatingDecimal: %q has no decimal point", s)
	}
	intPart := body[:dot]
	prePeriod := body[dot+1:]
	if intPart == "" {
		intPart = "0"
	}
	if !isAllDigits(intPart) {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRepeatingDecimal: bad integer part %q", intPart)
	}
	whole, _ := new(big.Int).SetString(intPart, 10)

	if period == "0" || period == "" {
		fracDigits := prePeriod
		if fracDigits == "" {
			return newRational(applySign(whole, neg), bigOne), nil
		}
		if !isAllDigits(fracDigits) {
			return Rational{}, newErr(KindInvalidLiteral, "ParseRepeatingDecimal: bad fraction digits %q", fracDigits)
		}
		fracVal, _ := new(big.Int).SetString(fracDigits, 10)
		scale := new(big.Int).Exp(bigTen, big.NewInt(int64(len(fracDigits))), nil)
		n := new(big.Int).Add(new(big.Int).Mul(whole, scale), fracVal)
		return newRational(applySign(n, neg), scale), nil
	}

	if !isAllDigits(period) {
		return Rational{}, newErr(KindInvalidLiteral, "ParseRepeatingDecimal: bad period digits %q", period)
	}
	preLen := len(prePeriod)
	perLen := len(period)
	preVal := big.NewInt(0)
	if prePeriod != "" {
		if !isAllDigits(prePeriod) {
			return Rational{}, newErr(KindInvalidLiteral, "ParseRepeatingDecimal: bad pre-period digits %q", prePeriod)
		}
		preVal, _ = new(big.Int).SetString(prePeriod, 10)
	}
	perVal, _ := new(big.Int).SetString(period, 10)

	// value = whole + 0.preperiod + 0.000..period-repeated
	//       = (whole * 10^preLen + preVal) / 10^preLen   [integer+preperiod part]
	//         plus perVal / (10^preLen * (10^perLen - 1))
	tenPre := new(big.Int).Exp(bigTen, big.NewInt(int64(preLen)), nil)
	tenPer := new(big.Int).Exp(bigTen, big.NewInt(int64(perLen)), nil)
	nines := new(big.Int).Sub(tenPer, bigOne)

	numA := new(big.Int).Add(new(big.Int).Mul(whole, tenPre), preVal)
	denA := tenPre

	denB := new(big.Int).Mul(tenPre, nines)
	numB := perVal

	// combine numA/denA + numB/denB
	n := new(big.Int).Add(new(big.Int).Mul(numA, nines), numB)
	d := denB
	_ = denA
	return newRational(applySign(n, neg), d), nil
}

func applySign(n *big.Int, neg bool) *big.Int {
	if neg {
		return new(big.Int).Neg(n)
	}
	return n
}

// ToScientific normalizes r as m x base^e, where m has exactly one digit
// before the decimal point. precision bounds the digits shown after the
// point; showPeriodInfo includes a '#'-marked repeating tail when present.
func (r Rational) ToScientific(base *BaseSystem, precision int, showPeriodInfo bool) (string, error) {
	if base == nil {
		base = Decimal
	}
	if r.IsZero() {
		return "0E0", nil
	}
	exp, err := r.Expand(base, DefaultDigitLimit)
	if err != nil {
		return "", err
	}

	var e int
	var mantissaDigits string
	var mantissaPeriod string
	var terminating = exp.Terminating

	wholeNonZero := exp.IntegerPart != base.digits[0]
	if wholeNonZero {
		e = len(exp.IntegerPart) - 1
		mantissaDigits = exp.IntegerPart + exp.PrePeriod
		mantissaPeriod = exp.Period
	} else if exp.PrePeriodRest != "" {
		e = -(exp.PrePeriodLeadingZeros + 1)
		mantissaDigits = exp.PrePeriodRest
		mantissaPeriod = exp.Period
	} else {
		e = -(exp.PrePeriodLeadingZeros + exp.PeriodLeadingZeros + 1)
		mantissaDigits = exp.PeriodRest
		mantissaPeriod = exp.Period // after PeriodRest the full period, leading zeros included, repeats
	}

	if mantissaDigits == "" {
		mantissaDigits = base.digits[0]
	}
	lead := mantissaDigits[:len(base.digits[0])]
	rest := mantissaDigits[len(base.digits[0]):]

	if precision >= 0 && len(rest) > precision {
		rest = rest[:precision]
	}

	var sb strings.Builder
	if exp.Negative {
		sb.WriteByte('-')
	}
	sb.WriteString(lead)
	sb.WriteByte('.')
	sb.WriteString(compressRunLength(rest, 6))
	if showPeriodInfo && !terminating && mantissaPeriod != "" {
		sb.WriteByte('#')
		sb.WriteString(compressRunLength(mantissaPeriod, 6))
	}
	sb.WriteByte('E')
	sb.WriteString(strconv.Itoa(e))
	return sb.String(), nil
}

// ToCF converts r to its canonical continued-fraction sequence, stopping
// after at most maxTerms terms (DefaultCFLimit if maxTerms <= 0). The first
// term may be negative; all subsequent terms are positive. A trailing term
// of 1 is folded into the previous term when the sequence terminates
// naturally (not when truncated by maxTerms).
func (r Rational) ToCF(maxTerms int) []*big.Int {
	if maxTerms <= 0 {
		maxTerms = DefaultCFLimit
	}
	p := new(big.Int).Set(r.n)
	q := new(big.Int).Set(r.d)
	var terms []*big.Int
	truncated := false
	for {
		a := floorDivBig(p, q)
		terms = append(terms, a)
		rem := new(big.Int).Sub(p, new(big.Int).Mul(a, q))
		p, q = q, rem
		if q.Sign() == 0 {
			break
		}
		if len(terms) >= maxTerms {
			truncated = true
			break
		}
	}
	if !truncated && len(terms) >= 2 && terms[len(terms)-1].Cmp(bigOne) == 0 {
		terms = terms[:len(terms)-1]
		terms[len(terms)-1].Add(terms[len(terms)-1], bigOne)
	}
	return terms
}

func floorDivBig(p, q *big.Int) *big.Int {
	a, r := new(big.Int), new(big.Int)
	a.QuoRem(p, q, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (q.Sign() < 0) {
		a.Sub(a, bigOne)
	}
	return a
}

// RationalFromCF evaluates a continued fraction sequence by the standard
// convergent recurrence, returning the final convergent. It fails with
// KindInvalidLiteral on an empty sequence.
func RationalFromCF(seq []*big.Int) (Rational, error) {
	convs, err := ConvergentsFromCF(seq)
	if err != nil {
		return Rational{}, err
	}
	return convs[len(convs)-1], nil
}

// ConvergentsFromCF returns every prefix convergent p_k/q_k of seq, per the
// recurrence p_i = a_i p_{i-1} + p_{i-2}, q_i = a_i q_{i-1} + q_{i-2}, with
// p_-1=1, p_-2=0, q_-1=0, q_-2=1.
func ConvergentsFromCF(seq []*big.Int) ([]Rational, error) {
	if len(seq) == 0 {
		return nil, newErr(KindInvalidLiteral, "ConvergentsFromCF: empty continued fraction")
	}
	pPrev2, pPrev1 := big.NewInt(0), big.NewInt(1)
	qPrev2, qPrev1 := big.NewInt(1), big.NewInt(0)
	convs := make([]Rational, 0, len(seq))
	for _, a := range seq {
		p := new(big.Int).Add(new(big.Int).Mul(a, pPrev1), pPrev2)
		q := new(big.Int).Add(new(big.Int).Mul(a, qPrev1), qPrev2)
		convs = append(convs, newRational(p, q))
		pPrev2, pPrev1 = pPrev1, p
		qPrev2, qPrev1 = qPrev1, q
	}
	return convs, nil
}

// BestApproximation walks the convergents of r's continued fraction and
// returns the last one whose denominator does not exceed maxDenominator.
func (r Rational) BestApproximation(maxDenominator *big.Int) (Rational, error) {
	terms := r.ToCF(DefaultCFLimit)
	convs, err := ConvergentsFromCF(terms)
	if err != nil {
		return Rational{}, err
	}
	best := convs[0]
	for _, c := range convs {
		if c.d.Cmp(maxDenominator) > 0 {
			break
		}
		best = c
	}
	return best, nil
}
