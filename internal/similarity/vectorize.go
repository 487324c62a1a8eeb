// Package similarity computes lexical similarity between normalized documents.
package similarity

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vectorizer settings for the two lexical signals
const (
	TFIDFMinN        = 1
	TFIDFMaxN        = 3
	TFIDFMaxFeatures = 5000
	CountMinN        = 1
	CountMaxN        = 2
	CountMaxFeatures = 3000
)

// Weighting selects how term counts become vector components
type Weighting int

const (
	// WeightCount uses raw term counts
	WeightCount Weighting = iota
	// WeightTFIDF scales counts by smoothed inverse document frequency
	WeightTFIDF
)

// Vectorizer turns a pair of documents into aligned term vectors
type Vectorizer struct {
	MinN        int
	MaxN        int
	MaxFeatures int
	Weighting   Weighting
}

// NGrams returns the space-joined n-grams of tokens for every n in [minN, maxN]
func NGrams(tokens []string, minN, maxN int) []string {
	if minN < 1 {
		minN = 1
	}
	var grams []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

// Similarity returns the cosine similarity of a and b, in [0, 1].
// Inputs are normalized token streams; an empty side scores 0.
func (v Vectorizer) Similarity(a, b string) float64 {
	va, vb := v.Vectors(a, b)
	return Cosine(va, vb)
}

// Vectors fits a vocabulary on the pair and returns both documents' vectors over it
func (v Vectorizer) Vectors(a, b string) ([]float64, []float64) {
	countsA := termCounts(NGrams(strings.Fields(a), v.MinN, v.MaxN))
	countsB := termCounts(NGrams(strings.Fields(b), v.MinN, v.MaxN))
	if len(countsA) == 0 || len(countsB) == 0 {
		return nil, nil
	}

	vocab := v.vocabulary(countsA, countsB)
	va := make([]float64, len(vocab))
	vb := make([]float64, len(vocab))
	for i, term := range vocab {
		ca, cb := float64(countsA[term]), float64(countsB[term])
		if v.Weighting == WeightTFIDF {
			df := 0
			if ca > 0 {
				df++
			}
			if cb > 0 {
				df++
			}
			idf := smoothIDF(2, df)
			ca *= idf
			cb *= idf
		}
		va[i], vb[i] = ca, cb
	}
	return va, vb
}

// vocabulary returns the union of terms, capped at MaxFeatures by total
// frequency with lexical order breaking ties
func (v Vectorizer) vocabulary(countsA, countsB map[string]int) []string {
	totals := make(map[string]int, len(countsA)+len(countsB))
	for t, c := range countsA {
		totals[t] += c
	}
	for t, c := range countsB {
		totals[t] += c
	}

	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}
	if v.MaxFeatures <= 0 || len(terms) <= v.MaxFeatures {
		sort.Strings(terms)
		return terms
	}

	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	terms = terms[:v.MaxFeatures]
	sort.Strings(terms)
	return terms
}

// smoothIDF is ln((1+n)/(1+df)) + 1
func smoothIDF(n, df int) float64 {
	return math.Log(float64(1+n)/float64(1+df)) + 1
}

func termCounts(grams []string) map[string]int {
	counts := make(map[string]int, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	return counts
}

// Cosine returns the cosine of the angle between a and b clamped to [0, 1].
// Mismatched lengths and zero vectors score 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	c := floats.Dot(a, b) / (na * nb)
	if math.IsNaN(c) {
		return 0
	}
	return math.Max(0, math.Min(1, c))
}

// TFIDF is the tf-idf cosine over 1 to 3 word n-grams
func TFIDF(a, b string) float64 {
	return Vectorizer{MinN: TFIDFMinN, MaxN: TFIDFMaxN, MaxFeatures: TFIDFMaxFeatures, Weighting: WeightTFIDF}.Similarity(a, b)
}

// Count is the raw count cosine over 1 and 2 word n-grams
func Count(a, b string) float64 {
	return Vectorizer{MinN: CountMinN, MaxN: CountMaxN, MaxFeatures: CountMaxFeatures, Weighting: WeightCount}.Similarity(a, b)
}
