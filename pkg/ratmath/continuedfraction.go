package ratmath

import (
	"math/big"
	"strings"
)

// ContinuedFraction is the finite sequence [a0; a1, a2, ..., ak]: a0 may be
// any integer, every subsequent term is positive.
type ContinuedFraction struct {
	terms []*big.Int
}

// validateCFTerms checks seq is non-empty with every term after a0
// positive, and returns a defensive copy. It performs no canonicalization.
func validateCFTerms(seq []*big.Int) ([]*big.Int, error) {
	if len(seq) == 0 {
		return nil, newErr(KindInvalidLiteral, "continued fraction: empty sequence")
	}
	for i := 1; i < len(seq); i++ {
		if seq[i].Sign() <= 0 {
			return nil, newErr(KindInvalidLiteral, "continued fraction: term %d (%s) must be positive", i, seq[i])
		}
	}
	terms := make([]*big.Int, len(seq))
	for i, t := range seq {
		terms[i] = new(big.Int).Set(t)
	}
	return terms, nil
}

// foldTrailingOne merges a trailing term of 1 into the previous term, the
// standard continued-fraction canonicalization ([...,a,1] == [...,a+1]).
// It is not applied to literals a user wrote out explicitly: folding would
// silently drop a convergent (ParseCFLiteral).
func foldTrailingOne(terms []*big.Int) []*big.Int {
	if len(terms) >= 2 && terms[len(terms)-1].Cmp(bigOne) == 0 {
		terms = terms[:len(terms)-1]
		terms[len(terms)-1] = new(big.Int).Add(terms[len(terms)-1], bigOne)
	}
	return terms
}

// NewContinuedFraction validates seq and canonicalizes it by folding a
// trailing 1 into the previous term.
func NewContinuedFraction(seq []*big.Int) (ContinuedFraction, error) {
	terms, err := validateCFTerms(seq)
	if err != nil {
		return ContinuedFraction{}, err
	}
	return ContinuedFraction{terms: foldTrailingOne(terms)}, nil
}

// FromRational converts r to its canonical continued fraction, capped at
// maxTerms (DefaultCFLimit if <= 0).
func FromRational(r Rational, maxTerms int) ContinuedFraction {
	return ContinuedFraction{terms: r.ToCF(maxTerms)}
}

// Terms returns a defensive copy of the sequence.
func (cf ContinuedFraction) Terms() []*big.Int {
	out := make([]*big.Int, len(cf.terms))
	for i, t := range cf.terms {
		out[i] = new(big.Int).Set(t)
	}
	return out
}

// Len returns the number of terms.
func (cf ContinuedFraction) Len() int { return len(cf.terms) }

// ToRational evaluates cf to its represented Rational.
func (cf ContinuedFraction) ToRational() (Rational, error) {
	return RationalFromCF(cf.terms)
}

// Convergents returns every prefix convergent p_k/q_k.
func (cf ContinuedFraction) Convergents() ([]Rational, error) {
	return ConvergentsFromCF(cf.terms)
}

func (cf ContinuedFraction) String() string {
	parts := make([]string, len(cf.terms))
	for i, t := range cf.terms {
		parts[i] = t.String()
	}
	if len(parts) == 1 {
		return "[" + parts[0] + "]"
	}
	return "[" + parts[0] + "; " + strings.Join(parts[1:], ", ") + "]"
}

// ParseCFLiteral parses the surface syntax "a0.~a1~a2~...~ak", where
// ".~0" with no further terms denotes the single-term CF [a0]. Run-length
// markers are expanded first. Unlike NewContinuedFraction, the parsed
// terms are kept exactly as written: a literal's trailing term is never
// folded into the one before it, so Convergents() reports every convergent
// the user's term sequence implies, including the one the fold would drop.
func ParseCFLiteral(s string) (ContinuedFraction, error) {
	s = expandRunLength(strings.TrimSpace(s))
	idx := strings.Index(s, ".~")
	if idx < 0 {
		return ContinuedFraction{}, newErr(KindInvalidLiteral, "ParseCFLiteral: %q has no '.~' continued-fraction marker", s)
	}
	a0Str := s[:idx]
	a0, ok := new(big.Int).SetString(a0Str, 10)
	if !ok {
		return ContinuedFraction{}, newErr(KindInvalidLiteral, "ParseCFLiteral: bad leading term %q", a0Str)
	}
	rest := s[idx+2:]
	if rest == "0" || rest == "" {
		terms, err := validateCFTerms([]*big.Int{a0})
		if err != nil {
			return ContinuedFraction{}, err
		}
		return ContinuedFraction{terms: terms}, nil
	}
	if strings.HasSuffix(rest, "~") {
		return ContinuedFraction{}, newErr(KindInvalidLiteral, "ParseCFLiteral: trailing '~' in %q", s)
	}
	parts := strings.Split(rest, "~")
	terms := make([]*big.Int, 0, len(parts)+1)
	terms = append(terms, a0)
	for _, p := range parts {
		if p == "" {
			return ContinuedFraction{}, newErr(KindInvalidLiteral, "ParseCFLiteral: empty term in %q", s)
		}
		t, ok := new(big.Int).SetString(p, 10)
		if !ok {
			return ContinuedFraction{}, newErr(KindInvalidLiteral, "ParseCFLiteral: bad term %q in %q", p, s)
		}
		terms = append(terms, t)
	}
	validated, err := validateCFTerms(terms)
	if err != nil {
		return ContinuedFraction{}, err
	}
	return ContinuedFraction{terms: validated}, nil
}
