package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DecayFactor is the geometric decay applied to successive WL rounds. Later
// rounds encode larger neighborhoods; the decay keeps coarse label-frequency
// agreement dominant so the score stays stable across graph sizes.
const DecayFactor = 0.8

// leafLabel marks a node with no outgoing neighbors during relabeling
const leafLabel = "LEAF"

// WLKernel computes Weisfeiler-Lehman similarity between labeled directed
// graphs. It is generic over any PDG-shaped graph and keeps no state between
// calls.
type WLKernel struct{}

// NewWLKernel creates a new WL kernel scorer
func NewWLKernel() *WLKernel {
	return &WLKernel{}
}

// Similarity computes the decayed multi-round weighted-Jaccard similarity
// between two graphs, returning a score in [0, 1].
//
// Both graphs' WLLabel fields are overwritten in place across rounds and
// re-initialized from Kind at the start of each call, so repeated scoring of
// the same graph instances is safe as long as calls do not overlap.
func (k *WLKernel) Similarity(g1, g2 *PDG, rounds int) (float64, error) {
	if g1 == nil || g2 == nil {
		return 0, fmt.Errorf("similarity requires two non-nil graphs")
	}
	if rounds < 0 {
		return 0, fmt.Errorf("rounds must be >= 0, got %d", rounds)
	}
	if err := g1.Validate(); err != nil {
		return 0, fmt.Errorf("first graph is malformed: %w", err)
	}
	if err := g2.Validate(); err != nil {
		return 0, fmt.Errorf("second graph is malformed: %w", err)
	}

	for _, g := range []*PDG{g1, g2} {
		for _, n := range g.Nodes() {
			n.WLLabel = string(n.Kind)
		}
	}

	hists1 := []map[string]int{labelHistogram(g1)}
	hists2 := []map[string]int{labelHistogram(g2)}

	for i := 0; i < rounds; i++ {
		relabel(g1)
		relabel(g2)
		hists1 = append(hists1, labelHistogram(g1))
		hists2 = append(hists2, labelHistogram(g2))
	}

	weights := RoundWeights(rounds)

	score := 0.0
	for i := 0; i <= rounds; i++ {
		score += weights[i] * weightedJaccard(hists1[i], hists2[i])
	}
	return score, nil
}

// RoundWeights returns the normalized per-round weights for rounds+1 rounds:
// DecayFactor^i for round i, scaled so the weights sum to 1.
func RoundWeights(rounds int) []float64 {
	weights := make([]float64, rounds+1)
	total := 0.0
	for i := range weights {
		weights[i] = math.Pow(DecayFactor, float64(i))
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// relabel performs one synchronous WL relabeling round: every node's new
// label is computed from the previous round's labels before any are applied.
func relabel(g *PDG) {
	nodes := g.Nodes()
	newLabels := make([]string, len(nodes))

	for i, n := range nodes {
		out := g.Outgoing(n.ID)
		if len(out) == 0 {
			newLabels[i] = n.WLLabel + "|" + leafLabel
			continue
		}

		neighborLabels := make([]string, len(out))
		for j, e := range out {
			neighborLabels[j] = g.Node(e.To).WLLabel + "_" + string(e.Kind)
		}
		sort.Strings(neighborLabels)
		newLabels[i] = n.WLLabel + "|" + strings.Join(neighborLabels, "-")
	}

	for i, n := range nodes {
		n.WLLabel = newLabels[i]
	}
}

// labelHistogram counts occurrences of each distinct WL label in the graph
func labelHistogram(g *PDG) map[string]int {
	hist := make(map[string]int)
	for _, n := range g.Nodes() {
		hist[n.WLLabel]++
	}
	return hist
}

// weightedJaccard compares two label histograms: sum of per-label minimum
// counts over sum of per-label maximum counts, or 0 when both are empty.
func weightedJaccard(h1, h2 map[string]int) float64 {
	intersection, union := 0, 0

	for label, c1 := range h1 {
		c2 := h2[label]
		intersection += min(c1, c2)
		union += max(c1, c2)
	}
	for label, c2 := range h2 {
		if _, seen := h1[label]; !seen {
			union += c2
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
