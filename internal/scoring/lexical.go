package scoring

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"
)

// maxFeatures caps the vocabulary size of the lexical embedder.
const maxFeatures = 1000

// englishStopWords are excluded from the lexical vocabulary.
var englishStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true,
	"he": true, "in": true, "is": true, "it": true, "its": true, "of": true,
	"on": true, "or": true, "that": true, "the": true, "to": true,
	"was": true, "were": true, "will": true, "with": true, "this": true,
	"we": true, "our": true, "you": true, "your": true,
}

// LexicalEmbedder is the TF-IDF fallback backend. It builds a shared
// unigram+bigram vocabulary from the texts of each call, so the vectors of
// one call are mutually comparable. Fully deterministic: the vocabulary is
// sorted before vectors are built.
type LexicalEmbedder struct{}

// NewLexicalEmbedder returns the TF-IDF fallback embedder.
func NewLexicalEmbedder() *LexicalEmbedder { return &LexicalEmbedder{} }

// Mode reports ModeLexical.
func (e *LexicalEmbedder) Mode() Mode { return ModeLexical }

// Embed builds TF-IDF vectors over a vocabulary shared by all input texts.
func (e *LexicalEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	tokenized := make([][]string, len(texts))
	for i, text := range texts {
		tokenized[i] = tokenize(text)
	}

	// Document frequency per term.
	df := make(map[string]int)
	for _, tokens := range tokenized {
		seen := make(map[string]bool, len(tokens))
		for _, token := range tokens {
			if !seen[token] {
				seen[token] = true
				df[token]++
			}
		}
	}

	// Deterministic vocabulary: terms sorted, capped by document frequency.
	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	if len(vocab) > maxFeatures {
		sort.SliceStable(vocab, func(i, j int) bool {
			if df[vocab[i]] != df[vocab[j]] {
				return df[vocab[i]] > df[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:maxFeatures]
		sort.Strings(vocab)
	}
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	// Smoothed IDF, matching the scikit-learn formulation the original used.
	n := float64(len(texts))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(texts))
	for i, tokens := range tokenized {
		vec := make([]float64, len(vocab))
		for _, token := range tokens {
			if j, ok := index[token]; ok {
				vec[j] += idf[j]
			}
		}
		vectors[i] = vec
	}

	return vectors, nil
}

// tokenize lowercases, strips punctuation, drops stop words, and emits
// unigrams plus bigrams.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if !englishStopWords[field] {
			words = append(words, field)
		}
	}

	tokens := make([]string, 0, 2*len(words))
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}
