package matcher

// DiceCoefficient computes the bigram-based Sørensen–Dice similarity between
// two strings, in [0, 1]. Strings shorter than two runes have no bigrams, so
// the comparison falls back to exact equality (1.0 if equal, 0.0 otherwise).
func DiceCoefficient(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) < 2 || len(rb) < 2 {
		if a == b {
			return 1.0
		}
		return 0.0
	}

	bigrams := make(map[string]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[string(ra[i:i+2])]++
	}

	intersections := 0
	for i := 0; i < len(rb)-1; i++ {
		pair := string(rb[i : i+2])
		if bigrams[pair] > 0 {
			intersections++
			bigrams[pair]--
		}
	}

	return float64(2*intersections) / float64(len(ra)-1+len(rb)-1)
}

// LevenshteinSimilarity converts edit distance to a similarity in [0, 1]:
// 1 - distance/max(len). Two empty strings score 0, not 1; callers rely on
// empty input scoring low rather than looking identical.
func LevenshteinSimilarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 0.0
	}

	sim := 1.0 - float64(LevenshteinDistance(a, b))/float64(maxLen)
	if sim < 0 {
		return 0.0
	}
	if sim > 1 {
		return 1.0
	}
	return sim
}

// LevenshteinDistance calculates the edit distance between two strings
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
