// Package classifier implements a bag-of-words multinomial naive Bayes
// text classifier. A Model is trained from scratch on every call to Train
// and is immutable afterwards.
package classifier

import (
	"regexp"
	"slices"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text, splits it into word tokens of length two or
// more, and drops English stop words.
func Tokenize(text string) []string {
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// vocabulary maps each retained term to its column index. Terms are sorted
// so the column layout is deterministic.
type vocabulary map[string]int

// buildVocabulary keeps terms whose document frequency is at least minDF.
func buildVocabulary(docs [][]string, minDF int) vocabulary {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= minDF {
			terms = append(terms, term)
		}
	}
	slices.Sort(terms)

	vocab := make(vocabulary, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

// counts returns the sparse term-count vector of doc. Out-of-vocabulary
// tokens are ignored.
func (v vocabulary) counts(doc []string) map[int]float64 {
	out := make(map[int]float64, len(doc))
	for _, tok := range doc {
		if idx, ok := v[tok]; ok {
			out[idx]++
		}
	}
	return out
}
