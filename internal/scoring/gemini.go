package scoring

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

const (
	// defaultEmbeddingModel is the Gemini embedding model used when none is
	// configured.
	defaultEmbeddingModel = "text-embedding-004"
	// embedBatchSize is the maximum number of texts per batch request.
	embedBatchSize = 100
	// defaultEmbedWorkers bounds concurrent batch requests unless configured.
	defaultEmbedWorkers = 4
)

// GeminiEmbedder embeds texts with the Gemini embedding API.
type GeminiEmbedder struct {
	client  *genai.Client
	model   string
	workers int
}

// NewGeminiEmbedder creates a Gemini-backed embedder. The caller owns Close.
// workers bounds concurrent batch requests; non-positive uses the default.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, workers int) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultEmbeddingModel
	}
	if workers <= 0 {
		workers = defaultEmbedWorkers
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: model, workers: workers}, nil
}

// Mode reports ModeEmbedding.
func (e *GeminiEmbedder) Mode() Mode { return ModeEmbedding }

// Close releases the underlying client.
func (e *GeminiEmbedder) Close() error { return e.client.Close() }

// Embed requests embeddings in batches, batches running concurrently. Each
// batch writes to a fixed slice range, so the output order is stable
// regardless of completion order.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := e.client.EmbeddingModel(e.model)
	vectors := make([][]float64, len(texts))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		start, end := start, end

		g.Go(func() error {
			batch := em.NewBatch()
			for _, text := range texts[start:end] {
				batch.AddContent(genai.Text(text))
			}

			resp, err := em.BatchEmbedContents(gCtx, batch)
			if err != nil {
				return fmt.Errorf("batch embed [%d:%d] failed: %w", start, end, err)
			}
			if len(resp.Embeddings) != end-start {
				return fmt.Errorf("batch embed [%d:%d]: got %d embeddings", start, end, len(resp.Embeddings))
			}

			for i, emb := range resp.Embeddings {
				vec := make([]float64, len(emb.Values))
				for j, v := range emb.Values {
					vec[j] = float64(v)
				}
				vectors[start+i] = vec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
