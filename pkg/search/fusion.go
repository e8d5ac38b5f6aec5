package search

import "sort"

// NormalizeWeights scales a pair of branch weights so they sum to 1,
// preserving their ratio. It is a pure pre-step to fusion: callers can
// pass (3, 1) or (0.75, 0.25) and get identical rankings.
//
// Both weights must be non-negative and at least one positive;
// otherwise there is no search signal at all and the query is
// misconfigured.
func NormalizeWeights(semantic, keyword float64) (float64, float64, error) {
	if semantic < 0 || keyword < 0 {
		return 0, 0, ErrNegativeWeight
	}
	sum := semantic + keyword
	if sum == 0 {
		return 0, 0, ErrZeroWeights
	}
	return semantic / sum, keyword / sum, nil
}

// FuseHits merges the semantic and keyword result sets for one
// collection into a single ranked list.
//
// Each document's fused score is semanticScore*ws + keywordScore*wk,
// with a missing branch contributing zero. A document surfaced by both
// branches appears once, marked SourceHybrid, and its payload is taken
// from the semantic hit. Ties break on id so the order is
// deterministic.
func FuseHits(semantic, keyword []Hit, ws, wk float64) []Hit {
	type entry struct {
		hit          Hit
		fromSemantic bool
		fromKeyword  bool
	}

	merged := make(map[string]*entry, len(semantic)+len(keyword))
	for _, h := range semantic {
		h.Score *= ws
		merged[h.ID] = &entry{hit: h, fromSemantic: true}
	}
	for _, h := range keyword {
		if e, ok := merged[h.ID]; ok {
			e.hit.Score += h.Score * wk
			e.fromKeyword = true
			continue
		}
		h.Score *= wk
		merged[h.ID] = &entry{hit: h, fromKeyword: true}
	}

	fused := make([]Hit, 0, len(merged))
	for _, e := range merged {
		if e.fromSemantic && e.fromKeyword {
			e.hit.Source = SourceHybrid
		}
		fused = append(fused, e.hit)
	}
	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].ID < fused[j].ID
	})
	return fused
}
