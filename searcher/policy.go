package searcher

import "math"

// uct scores children for selection:
// UCT = q/n + sqrt(c^2*ln(N)/n)
// where N is the visit count of all siblings together.
type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	return q/n + math.Sqrt(u.numerator/n)
}

// argmax returns the index of the child with the highest UCT value, the first
// one on ties. Each child is read under its own lock.
func argmax(children []*decision) int {
	N := 0.0
	for _, child := range children {
		N += child.Visits()
	}
	policy := newUCT(CSquared, N)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range children {
		child.RLock()
		score := policy.evaluate(child.rewards, child.visits)
		child.RUnlock()
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}
