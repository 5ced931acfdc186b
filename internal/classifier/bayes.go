package classifier

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrNoSamples is returned when Train is given no training data.
	ErrNoSamples = errors.New("classifier: no training samples")

	// ErrEmptyVocabulary is returned when no term survives tokenization,
	// for example when every description consists of stop words.
	ErrEmptyVocabulary = errors.New("classifier: empty vocabulary; documents may only contain stop words")
)

// Sample is one labelled training document.
type Sample struct {
	Text  string
	Label string
}

// Options are the pipeline hyper-parameters.
type Options struct {
	// Alpha is the additive (Laplace) smoothing parameter.
	Alpha float64
	// MinDF drops terms that appear in fewer documents than this.
	MinDF int
}

// DefaultOptions returns alpha 1 and a minimum document frequency of 1.
func DefaultOptions() Options {
	return Options{Alpha: 1.0, MinDF: 1}
}

func (o Options) validate() error {
	if o.Alpha <= 0 {
		return fmt.Errorf("classifier: alpha must be positive, got %v", o.Alpha)
	}
	if o.MinDF < 1 {
		return fmt.Errorf("classifier: min_df must be at least 1, got %d", o.MinDF)
	}
	return nil
}

// Model is a trained vectorizer and multinomial naive Bayes pair.
type Model struct {
	vocab    vocabulary
	classes  []string    // sorted
	logPrior []float64   // per class
	logProb  [][]float64 // [class][term]
	samples  int
}

// Train fits a new Model on samples.
func Train(samples []Sample, opts Options) (*Model, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	docs := make([][]string, len(samples))
	for i, s := range samples {
		docs[i] = Tokenize(s.Text)
	}
	vocab := buildVocabulary(docs, opts.MinDF)
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	classes := make([]string, 0, 3)
	for _, s := range samples {
		if !slices.Contains(classes, s.Label) {
			classes = append(classes, s.Label)
		}
	}
	slices.Sort(classes)

	n := len(vocab)
	classCount := make([]float64, len(classes))
	featureCount := make([][]float64, len(classes))
	for c := range classes {
		featureCount[c] = make([]float64, n)
	}
	for i, s := range samples {
		c, _ := slices.BinarySearch(classes, s.Label)
		classCount[c]++
		for idx, cnt := range vocab.counts(docs[i]) {
			featureCount[c][idx] += cnt
		}
	}

	m := &Model{
		vocab:    vocab,
		classes:  classes,
		logPrior: make([]float64, len(classes)),
		logProb:  make([][]float64, len(classes)),
		samples:  len(samples),
	}
	total := float64(len(samples))
	for c := range classes {
		m.logPrior[c] = math.Log(classCount[c] / total)

		var rowSum float64
		for _, v := range featureCount[c] {
			rowSum += v
		}
		denom := math.Log(rowSum + opts.Alpha*float64(n))
		m.logProb[c] = make([]float64, n)
		for j, v := range featureCount[c] {
			m.logProb[c][j] = math.Log(v+opts.Alpha) - denom
		}
	}
	return m, nil
}

// Predict returns the most likely label for text. Ties go to the label
// that sorts first.
func (m *Model) Predict(text string) string {
	var terms []int
	for _, tok := range Tokenize(text) {
		if idx, ok := m.vocab[tok]; ok {
			terms = append(terms, idx)
		}
	}

	best, bestScore := 0, math.Inf(-1)
	for c := range m.classes {
		score := m.logPrior[c]
		for _, idx := range terms {
			score += m.logProb[c][idx]
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return m.classes[best]
}

// PredictAll predicts a label for each text.
func (m *Model) PredictAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = m.Predict(t)
	}
	return out
}

// Classes returns the labels seen during training, sorted.
func (m *Model) Classes() []string { return slices.Clone(m.classes) }

// VocabularySize returns the number of retained terms.
func (m *Model) VocabularySize() int { return len(m.vocab) }

// Samples returns the number of training documents.
func (m *Model) Samples() int { return m.samples }
