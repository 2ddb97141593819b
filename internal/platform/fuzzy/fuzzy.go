// Package fuzzy implements the approximate string-search engine behind
// catalog term matching: a weighted multi-field in-memory index over
// catalog entries and a token-aware scorer that is case-, accent- and
// position-insensitive.
package fuzzy

import (
	"math"
	"sort"
)

// Entry is one canonical catalog record fed to the index builder.
type Entry struct {
	Code    string
	Label   string
	Aliases []string
}

// FieldWeights scales the score contribution of each searchable field.
type FieldWeights struct {
	Label float64
	Alias float64
	Code  float64
}

// DefaultFieldWeights returns the standard catalog weighting: primary
// label strongest, synonyms slightly below, the code string weakest.
func DefaultFieldWeights() FieldWeights {
	return FieldWeights{Label: 1.0, Alias: 0.9, Code: 0.6}
}

// Options tunes index-wide matching behavior.
type Options struct {
	// MinQueryLength is the shortest query that produces any result.
	MinQueryLength int
	// MinScore is the engine's internal difference threshold: candidates
	// scoring below it are not returned at all.
	MinScore float64
}

// DefaultOptions returns the tuning used by all catalogs.
func DefaultOptions() Options {
	return Options{MinQueryLength: 3, MinScore: 0.25}
}

// Candidate is one ranked match.
type Candidate struct {
	Entry Entry
	Score float64
}

// document is one searchable text belonging to an entry. Alias
// expansion means several documents can point at the same entry.
type document struct {
	entryIdx int
	tokens   []string
	text     string
	weight   float64
}

// Index is a process-lifetime, read-only search structure. Build it
// once at startup; Search is safe for any number of concurrent callers.
type Index struct {
	entries []Entry
	docs    []document
	opts    Options
}

// BuildIndex constructs an index over the given entries. Every entry
// contributes one document for its primary label, one per alias and one
// for its code string, all resolving back to the canonical entry. An
// empty entry slice yields a valid index that matches nothing.
func BuildIndex(entries []Entry, weights FieldWeights, opts Options) *Index {
	ix := &Index{
		entries: entries,
		docs:    make([]document, 0, len(entries)*2),
		opts:    opts,
	}
	for i, e := range entries {
		ix.addDoc(i, e.Label, weights.Label)
		for _, alias := range e.Aliases {
			ix.addDoc(i, alias, weights.Alias)
		}
		ix.addDoc(i, e.Code, weights.Code)
	}
	return ix
}

func (ix *Index) addDoc(entryIdx int, text string, weight float64) {
	normalized := Normalize(text)
	if normalized == "" || weight <= 0 {
		return
	}
	ix.docs = append(ix.docs, document{
		entryIdx: entryIdx,
		tokens:   Tokenize(normalized),
		text:     normalized,
		weight:   weight,
	})
}

// Len reports how many entries the index covers.
func (ix *Index) Len() int { return len(ix.entries) }

// Search returns up to limit candidates ranked by descending score.
// Queries shorter than the minimum length return nothing, as do queries
// where no document clears the score threshold; neither is an error.
// Entries producing identical scores keep catalog insertion order.
func (ix *Index) Search(query string, limit int) []Candidate {
	normalized := Normalize(query)
	if len(normalized) < ix.opts.MinQueryLength || limit <= 0 {
		return nil
	}
	queryTokens := Tokenize(normalized)
	if len(queryTokens) == 0 {
		return nil
	}

	// Best document score per entry; -1 means unseen.
	best := make([]float64, len(ix.entries))
	for i := range best {
		best[i] = -1
	}

	for _, doc := range ix.docs {
		score := scoreDocument(normalized, queryTokens, doc)
		if score > best[doc.entryIdx] {
			best[doc.entryIdx] = score
		}
	}

	// Collecting in entry order keeps ties stable under SliceStable.
	candidates := make([]Candidate, 0, limit)
	for i, score := range best {
		if score < ix.opts.MinScore {
			continue
		}
		candidates = append(candidates, Candidate{
			Entry: ix.entries[i],
			Score: math.Round(score*1000) / 1000,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// scoreDocument rates one document against the query. Each query token
// takes its best similarity against any document token and contributes
// proportionally to its length, so a hit anywhere in a long synonym
// string scores the same as a hit at the start. An exact whole-string
// match is a perfect score; everything else is capped just below it so
// the exact entry always ranks first.
func scoreDocument(query string, queryTokens []string, doc document) float64 {
	if query == doc.text {
		return doc.weight
	}

	var total, matched float64
	for _, qt := range queryTokens {
		bestSim := 0.0
		for _, dt := range doc.tokens {
			if sim := tokenSimilarity(qt, dt); sim > bestSim {
				bestSim = sim
			}
			if bestSim == 1.0 {
				break
			}
		}
		weight := float64(len(qt))
		total += weight
		matched += weight * bestSim
	}
	if total == 0 {
		return 0
	}

	score := matched / total * doc.weight
	if partialCap := doc.weight * 0.99; score > partialCap {
		score = partialCap
	}
	return score
}
