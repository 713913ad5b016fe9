package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens := tokenize("Built the Payments-System in Go!")

	// Stop words are dropped; unigrams plus adjacent bigrams remain.
	assert.Contains(t, tokens, "built")
	assert.Contains(t, tokens, "payments")
	assert.Contains(t, tokens, "system")
	assert.Contains(t, tokens, "go")
	assert.Contains(t, tokens, "payments system")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "in")
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, tokenize(""))
	assert.Empty(t, tokenize("!!! ... ---"))
}

func TestLexicalEmbedSharedSpace(t *testing.T) {
	embedder := NewLexicalEmbedder()

	vectors, err := embedder.Embed(context.Background(), []string{
		"kubernetes deployment pipelines",
		"kubernetes deployment pipelines",
		"watercolor painting techniques",
	})
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	// All vectors share one vocabulary, so lengths match.
	assert.Equal(t, len(vectors[0]), len(vectors[1]))
	assert.Equal(t, len(vectors[0]), len(vectors[2]))

	// Identical texts are identical vectors; unrelated texts are orthogonal.
	assert.InDelta(t, 1.0, cosineSimilarity(vectors[0], vectors[1]), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity(vectors[0], vectors[2]))
}

func TestLexicalEmbedDeterministic(t *testing.T) {
	embedder := NewLexicalEmbedder()
	texts := []string{
		"led a team of 8 engineers",
		"reduced infrastructure cost by 30%",
		"maintained legacy billing systems",
	}

	first, err := embedder.Embed(context.Background(), texts)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := embedder.Embed(context.Background(), texts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLexicalEmbedMode(t *testing.T) {
	assert.Equal(t, ModeLexical, NewLexicalEmbedder().Mode())
}
