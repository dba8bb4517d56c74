package snap

import "github.com/1broseidon/quadsnap/internal/geom"

// DefaultSimilarityFactor is the share of a region's area a window must cover
// to count as occupying it.
const DefaultSimilarityFactor = 0.85

// gateEpsilon is the relative slack on the required overlap. It absorbs float
// rounding of regionArea*factor when the overlap sits exactly on the boundary.
const gateEpsilon = 1e-9

// Match is the score of one candidate region against a window.
type Match struct {
	Region           Region    `json:"region"`
	Overlap          geom.Rect `json:"-"`
	OverlapArea      float64   `json:"overlap_area"`
	CoverageOfRegion float64   `json:"coverage_of_region"`
	CoverageOfWindow float64   `json:"coverage_of_window"`
	Score            float64   `json:"score"`
}

// Classifier decides which region a window currently occupies.
type Classifier struct {
	SimilarityFactor float64
}

// DefaultClassifier returns a classifier with DefaultSimilarityFactor.
func DefaultClassifier() Classifier {
	return Classifier{SimilarityFactor: DefaultSimilarityFactor}
}

// Score rates every placed region of layout against window, in enumeration
// order.
func (c Classifier) Score(window geom.Rect, layout *Layout) []Match {
	windowArea := window.Area()
	matches := make([]Match, 0, len(placed))
	for _, r := range placed {
		target, _ := layout.Rect(r)
		overlap := window.Intersect(target)
		area := overlap.Area()
		m := Match{
			Region:           r,
			Overlap:          overlap,
			OverlapArea:      area,
			CoverageOfRegion: ratio(area, target.Area()),
			CoverageOfWindow: ratio(area, windowArea),
		}
		m.Score = m.CoverageOfRegion + m.CoverageOfWindow
		matches = append(matches, m)
	}
	return matches
}

// Best returns the highest scoring match. The first of equal scores wins. ok
// is false when nothing overlaps the window.
func (c Classifier) Best(window geom.Rect, layout *Layout) (Match, bool) {
	var best Match
	found := false
	for _, m := range c.Score(window, layout) {
		if m.Score <= 0 {
			continue
		}
		if !found || m.Score > best.Score {
			best = m
			found = true
		}
	}
	return best, found
}

// Classify returns the region window occupies, or None when the best scoring
// region is not covered by at least SimilarityFactor of its area.
func (c Classifier) Classify(window geom.Rect, layout *Layout) Region {
	best, ok := c.Best(window, layout)
	if !ok {
		return None
	}
	target, _ := layout.Rect(best.Region)
	if !c.accepts(target.Area(), best.OverlapArea) {
		return None
	}
	return best.Region
}

func (c Classifier) accepts(regionArea, overlapArea float64) bool {
	required := regionArea * c.SimilarityFactor
	return required-overlapArea <= gateEpsilon*required
}

// ratio is num/den, treating a non-positive denominator as no coverage.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
