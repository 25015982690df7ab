package kb

import (
	"math"
	"sort"
	"strings"
)

const (
	minNGram    = 3
	maxNGram    = 5
	maxFeatures = 5000

	// SimilarityThreshold is the minimum cosine score for a fuzzy match.
	SimilarityThreshold = 0.3
)

// Match pairs an indexed entity with its cosine similarity to a query.
type Match struct {
	Entity string
	Score  float64
}

// Vectorizer is a character n-gram TF-IDF model over the entity vocabulary.
// The n-gram vocabulary is fixed after Build; query projection ignores
// n-grams the vocabulary does not contain.
type Vectorizer struct {
	vocab    map[string]int
	idf      []float64
	entities []string
	vectors  []map[int]float64 // l2-normalized, parallel to entities
}

// NewVectorizer fits the model on the given entity names in order. The order
// is preserved and used to break score ties in TopK.
func NewVectorizer(entities []string) *Vectorizer {
	v := &Vectorizer{
		vocab:    make(map[string]int),
		entities: entities,
	}
	v.fit()
	return v
}

func (v *Vectorizer) fit() {
	// Corpus pass: term and document frequency per n-gram.
	type stat struct {
		tf    int
		df    int
		first int
	}
	stats := make(map[string]*stat)
	docs := make([][]string, len(v.entities))
	order := 0
	for i, e := range v.entities {
		grams := charNGrams(normalizeEntity(e))
		docs[i] = grams
		seen := make(map[string]bool, len(grams))
		for _, g := range grams {
			st := stats[g]
			if st == nil {
				st = &stat{first: order}
				order++
				stats[g] = st
			}
			st.tf++
			if !seen[g] {
				st.df++
				seen[g] = true
			}
		}
	}

	// Cap the vocabulary: keep the most frequent n-grams, ties broken by
	// first appearance so the model is deterministic.
	grams := make([]string, 0, len(stats))
	for g := range stats {
		grams = append(grams, g)
	}
	sort.Slice(grams, func(a, b int) bool {
		sa, sb := stats[grams[a]], stats[grams[b]]
		if sa.tf != sb.tf {
			return sa.tf > sb.tf
		}
		return sa.first < sb.first
	})
	if len(grams) > maxFeatures {
		grams = grams[:maxFeatures]
	}

	n := len(v.entities)
	v.idf = make([]float64, len(grams))
	for col, g := range grams {
		v.vocab[g] = col
		v.idf[col] = math.Log(float64(1+n)/float64(1+stats[g].df)) + 1
	}

	v.vectors = make([]map[int]float64, n)
	for i, grams := range docs {
		v.vectors[i] = v.project(grams)
	}
}

// project turns a bag of n-grams into an l2-normalized TF-IDF vector.
// Out-of-vocabulary n-grams are dropped.
func (v *Vectorizer) project(grams []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, g := range grams {
		if col, ok := v.vocab[g]; ok {
			vec[col]++
		}
	}
	var norm float64
	for col, tf := range vec {
		w := tf * v.idf[col]
		vec[col] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for col := range vec {
			vec[col] /= norm
		}
	}
	return vec
}

// TopK returns up to k entities whose cosine similarity to the query exceeds
// SimilarityThreshold, ordered by descending score. Ties keep construction
// order. An empty result is a valid outcome, not an error.
func (v *Vectorizer) TopK(query string, k int) []Match {
	if k <= 0 || len(v.entities) == 0 {
		return nil
	}
	qv := v.project(charNGrams(normalizeEntity(query)))
	if len(qv) == 0 {
		return nil
	}

	matches := make([]Match, 0, k)
	for i, ev := range v.vectors {
		score := dot(qv, ev)
		if score > SimilarityThreshold {
			matches = append(matches, Match{Entity: v.entities[i], Score: score})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for col, w := range a {
		sum += w * b[col]
	}
	return sum
}

// normalizeEntity lower-cases and replaces the ':' and '_' separators used in
// composite entity names with spaces.
func normalizeEntity(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ":", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return s
}

// charNGrams emits character n-grams of length 3 to 5 per word, each word
// padded with a boundary space on both sides. Words shorter than the n-gram
// size are emitted whole, once.
func charNGrams(text string) []string {
	var grams []string
	for _, w := range strings.Fields(text) {
		w = " " + w + " "
		r := []rune(w)
		for n := minNGram; n <= maxNGram; n++ {
			offset := 0
			grams = append(grams, string(r[offset:min(offset+n, len(r))]))
			for offset+n < len(r) {
				offset++
				grams = append(grams, string(r[offset:offset+n]))
			}
			if offset == 0 {
				break
			}
		}
	}
	return grams
}
