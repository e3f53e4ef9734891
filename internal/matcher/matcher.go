// Package matcher scores how well a free-text label (typically an uploaded
// image filename with its extension stripped) corresponds to catalog
// products, and returns a confidence-ranked candidate list for
// semi-automated reconciliation.
//
// Matching is a pure function of its inputs: no I/O, no shared mutable
// state, and no error paths. Malformed or empty input degrades to low or
// absent scores, never to a panic.
package matcher

import (
	"sort"
	"strings"
)

// Confidence is a coarse bucket derived from a match score, used by callers
// to drive auto-accept versus manual-review policy.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// Method identifies which stage of the cascade produced a result.
type Method string

const (
	MethodExact       Method = "exact"
	MethodContains    Method = "contains"
	MethodDice        Method = "dice"
	MethodLevenshtein Method = "levenshtein"
)

// Candidate is one product to score the query against. Payload is an opaque
// caller-supplied value threaded through untouched so results can be
// correlated back to the original record.
type Candidate[T any] struct {
	SKU     string
	Name    string
	Payload T
}

// Result is one scored candidate. Score is in [0, 1].
type Result[T any] struct {
	Candidate  Candidate[T]
	Score      float64
	Confidence Confidence
	Method     Method
}

// Matcher scores queries against candidate lists using a fixed configuration.
// It holds no mutable state; a single value is safe for concurrent use.
type Matcher[T any] struct {
	cfg Config
}

// New creates a matcher with the given configuration.
func New[T any](cfg Config) *Matcher[T] {
	return &Matcher[T]{cfg: cfg}
}

// Match scores the query against every candidate and returns the results
// sorted by score descending. Candidates below the fuzzy floor are omitted
// unless they matched via the exact or contains stages. Inputs are never
// mutated and the call never fails.
func (m *Matcher[T]) Match(query string, candidates []Candidate[T]) []Result[T] {
	nq := Normalize(query)
	eq := expandAbbreviations(nq)

	results := make([]Result[T], 0, len(candidates))

	for _, c := range candidates {
		ns := Normalize(c.SKU)
		nn := Normalize(c.Name)

		// Stage A: exact SKU match
		if nq == ns {
			results = append(results, Result[T]{
				Candidate:  c,
				Score:      1.0,
				Confidence: ConfidenceHigh,
				Method:     MethodExact,
			})
			continue
		}

		// Stage B: substring containment, either direction. Empty strings
		// are trivially contained everywhere, so both sides must be
		// non-empty for the stage to fire.
		if nq != "" && ns != "" && (strings.Contains(nq, ns) || strings.Contains(ns, nq)) {
			results = append(results, Result[T]{
				Candidate:  c,
				Score:      m.cfg.SKUContainsScore,
				Confidence: ConfidenceHigh,
				Method:     MethodContains,
			})
			continue
		}
		if nq != "" && nn != "" && (strings.Contains(nq, nn) || strings.Contains(nn, nq)) {
			results = append(results, Result[T]{
				Candidate:  c,
				Score:      m.cfg.NameContainsScore,
				Confidence: ConfidenceMedium,
				Method:     MethodContains,
			})
			continue
		}

		// Stage C: weighted fuzzy score
		score := m.fuzzyScore(nq, eq, ns, nn)
		if score < m.cfg.MinScore {
			continue
		}

		method := MethodLevenshtein
		if score >= m.cfg.DiceMethodThreshold {
			method = MethodDice
		}

		results = append(results, Result[T]{
			Candidate:  c,
			Score:      score,
			Confidence: m.tier(score),
			Method:     method,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// fuzzyScore combines three weighted sub-scores: query vs SKU, query vs name,
// and query vs "SKU name" concatenated. Dice comparisons run on
// abbreviation-expanded text; Levenshtein runs on the plain normalized text.
func (m *Matcher[T]) fuzzyScore(nq, eq, ns, nn string) float64 {
	es := expandAbbreviations(ns)
	en := expandAbbreviations(nn)

	skuScore := m.cfg.DiceWeight*DiceCoefficient(eq, es) +
		m.cfg.LevenshteinWeight*LevenshteinSimilarity(nq, ns)

	nameScore := m.cfg.DiceWeight*DiceCoefficient(eq, en) +
		m.cfg.LevenshteinWeight*LevenshteinSimilarity(nq, nn)

	combinedScore := DiceCoefficient(eq, strings.TrimSpace(es+" "+en))

	totalWeight := m.cfg.SKUWeight + m.cfg.NameWeight + m.cfg.CombinedWeight
	if totalWeight == 0 {
		return 0.0
	}

	return (m.cfg.SKUWeight*skuScore +
		m.cfg.NameWeight*nameScore +
		m.cfg.CombinedWeight*combinedScore) / totalWeight
}

// tier buckets a fuzzy score into a confidence level.
func (m *Matcher[T]) tier(score float64) Confidence {
	switch {
	case score >= m.cfg.HighConfidence:
		return ConfidenceHigh
	case score >= m.cfg.MediumConfidence:
		return ConfidenceMedium
	case score >= m.cfg.MinScore:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}
