package fuzzy

import "strings"

// similarityFloor is the minimum Jaro-Winkler value at which two tokens
// are considered a hit. Below it the pair contributes nothing, which
// keeps unrelated descriptive strings from accumulating noise credit.
const similarityFloor = 0.85

// tokenSimilarity scores one query token against one document token.
// Exact equality is 1.0; a query token contained inside a longer
// document token scores by coverage; otherwise Jaro-Winkler applies,
// zeroed below the floor.
func tokenSimilarity(query, doc string) float64 {
	if query == doc {
		return 1.0
	}
	if len(query) >= 3 && strings.Contains(doc, query) {
		return 0.9 + 0.1*float64(len(query))/float64(len(doc))
	}
	if jw := jaroWinkler(query, doc); jw >= similarityFloor {
		return jw
	}
	return 0
}

// jaroWinkler computes the Jaro-Winkler similarity between two
// normalized tokens, in [0,1].
func jaroWinkler(s1, s2 string) float64 {
	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}
	if s1 == s2 {
		return 1.0
	}

	s1Len := len(s1)
	s2Len := len(s2)

	maxDist := s1Len
	if s2Len > s1Len {
		maxDist = s2Len
	}
	maxDist = maxDist/2 - 1
	if maxDist < 0 {
		maxDist = 0
	}

	s1Matches := make([]bool, s1Len)
	s2Matches := make([]bool, s2Len)

	matches := 0
	transpositions := 0

	for i := 0; i < s1Len; i++ {
		start := i - maxDist
		if start < 0 {
			start = 0
		}
		end := i + maxDist + 1
		if end > s2Len {
			end = s2Len
		}

		for j := start; j < end; j++ {
			if s2Matches[j] || s1[i] != s2[j] {
				continue
			}
			s1Matches[i] = true
			s2Matches[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	k := 0
	for i := 0; i < s1Len; i++ {
		if !s1Matches[i] {
			continue
		}
		for !s2Matches[k] {
			k++
		}
		if s1[i] != s2[k] {
			transpositions++
		}
		k++
	}

	jaro := (float64(matches)/float64(s1Len) +
		float64(matches)/float64(s2Len) +
		float64(matches-transpositions/2)/float64(matches)) / 3.0

	// Winkler adjustment: boost for common prefix (up to 4 chars).
	prefixLen := 0
	maxPrefix := 4
	if s1Len < maxPrefix {
		maxPrefix = s1Len
	}
	if s2Len < maxPrefix {
		maxPrefix = s2Len
	}
	for i := 0; i < maxPrefix; i++ {
		if s1[i] == s2[i] {
			prefixLen++
		} else {
			break
		}
	}

	return jaro + float64(prefixLen)*0.1*(1.0-jaro)
}
