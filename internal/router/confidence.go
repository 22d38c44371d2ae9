package router

import "workspace-query/internal/model"

// adjustConfidence raises confidence for every entity resolved to a real resource and lowers it for
// every resolvable entity that was not. Date ranges and metrics never resolve and are ignored.
// Each step moves a fixed fraction of the remaining distance, so the result stays in [0,1].
func adjustConfidence(base float64, entities []model.ContextEntity) float64 {
	c := clamp(base)
	for _, e := range entities {
		if e.Type == model.EntityDateRange || e.Type == model.EntityMetric {
			continue
		}
		if e.Matched() {
			c += (1 - c) * MatchedEntityBoost
		} else {
			c -= c * UnmatchedEntityPenalty
		}
	}
	return clamp(c)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
