package ratmath

import "math/big"

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
	bigTen  = big.NewInt(10)
)

func newBig(n int64) *big.Int { return big.NewInt(n) }

// valuation returns the largest k such that p^k divides n (n > 0, p > 1).
func valuation(n, p *big.Int) int {
	n = new(big.Int).Set(n)
	count := 0
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(n, p, r)
		if r.Sign() != 0 {
			return count
		}
		n.Set(q)
		count++
	}
}

// primeFactors returns the distinct prime factors of n (n > 0) by trial
// division. Adequate for the small bases (<=62) the parser ever constructs
// a BaseSystem from; not intended for factoring arbitrary large integers.
func primeFactors(n int64) []int64 {
	var factors []int64
	m := n
	for p := int64(2); p*p <= m; p++ {
		if m%p == 0 {
			factors = append(factors, p)
			for m%p == 0 {
				m /= p
			}
		}
	}
	if m > 1 {
		factors = append(factors, m)
	}
	return factors
}
