package searcher

import "math"

// uct scores the children of a node visited N times
type uct struct {
	exploration float64 // c^2 * ln(N)
}

func newUCT(cSquared float64, parentVisits float64) uct {
	if parentVisits <= 0 {
		panic("parent visits must be positive")
	}
	return uct{exploration: cSquared * math.Log(parentVisits)}
}

// evaluate scores a child whose rewards were summed over visits, virtual
// losses included
func (u uct) evaluate(rewards float64, visits float64) float64 {
	if visits <= 0 {
		panic("child visits must be positive")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return rewards/visits + math.Sqrt(u.exploration/visits)
}
