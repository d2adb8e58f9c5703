package hierarchy

import (
	"fmt"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"jaytaylor.com/acaana/domain"
)

// KeywordMetric computes the weight of a keyword from the length of its path
// to root and how widely it is used:
//
//                L
//     W = ---------------
//          ln(U) / ln(M)
//
// where L is the path length, U the number of authors using the keyword, and M
// the median usage over all keywords.  Returns 0 when the ratio is undefined.
func KeywordMetric(pathLen int, usage int, median float64) float64 {
	if usage <= 1 || median <= 1 {
		return 0
	}
	ratio := math.Log(float64(usage)) / math.Log(median)
	if ratio == 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return float64(pathLen) / ratio
}

// MedianUsage returns the median of the usage counts.
func MedianUsage(usage map[string]int) float64 {
	if len(usage) == 0 {
		return 0
	}
	counts := make([]int, 0, len(usage))
	for _, n := range usage {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	mid := len(counts) / 2
	if len(counts)%2 == 0 {
		return float64(counts[mid-1]+counts[mid]) / 2.0
	}
	return float64(counts[mid])
}

// Annotate assigns a weight and topic path to every keyword used by more than
// one author.
//
// Each keyword is resolved through its entry in subheadings when present,
// otherwise through the keyword text itself.  Keywords which cannot be
// resolved are returned separately so they can be annotated by hand.
func (h *Hierarchy) Annotate(usage map[string]int, subheadings map[string]string) ([]domain.Keyword, []string, error) {
	median := MedianUsage(usage)
	if median <= 1 {
		return nil, nil, fmt.Errorf("annotate: median keyword usage must exceed 1 but was %v", median)
	}
	log.WithField("median", median).Debug("Keyword usage statistics computed")

	kws := make([]string, 0, len(usage))
	for kw, n := range usage {
		if n <= 1 {
			continue
		}
		kws = append(kws, kw)
	}
	sort.Strings(kws)

	var (
		annotated  = make([]domain.Keyword, 0, len(kws))
		unresolved = []string{}
	)
	for _, kw := range kws {
		name := kw
		if sub, ok := subheadings[kw]; ok && len(sub) > 0 {
			name = sub
		}
		heading, ok := h.Resolve(name)
		if !ok {
			unresolved = append(unresolved, kw)
			continue
		}
		path := h.PathToRoot(heading)
		annotated = append(annotated, domain.Keyword{
			Text:      kw,
			Weight:    KeywordMetric(len(path), usage[kw], median),
			TopicPath: h.PathString(heading),
		})
	}
	return annotated, unresolved, nil
}
