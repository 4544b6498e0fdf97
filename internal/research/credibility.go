package research

import "math"

// Credibility computes a deterministic 0-10 score for an event given the
// articles that fed the extraction. The weights and caps are fixed:
// downstream ranking and verification triage depend on their exact values,
// so do not tune them without recalibrating both.
//
//	base 5.0
//	+ min(0.5 x |source_urls|, 2.0)   corroboration breadth
//	+ min(0.4 x |key_facts|,   2.0)   specificity
//	+ 1.0 if dated
//	+ 0.5 if quoted
//	+ min(0.33 x |actors|, 1.0)       named-actor density
//	+ 1.5 x avg relevance of sources  upstream source quality
//
// clamped to [0,10] and rounded to one decimal.
func Credibility(event *Event, sources []*Article) float64 {
	score := 5.0

	score += math.Min(0.5*float64(len(event.SourceURLs)), 2.0)
	score += math.Min(0.4*float64(len(event.KeyFacts)), 2.0)
	if event.Date != "" {
		score += 1.0
	}
	if event.Quote != "" {
		score += 0.5
	}
	score += math.Min(0.33*float64(len(event.Actors)), 1.0)

	if len(sources) > 0 {
		var sum float64
		for _, s := range sources {
			sum += s.Relevance
		}
		score += 1.5 * (sum / float64(len(sources)))
	}

	score = math.Min(math.Max(score, 0.0), 10.0)
	return math.Round(score*10) / 10
}
