package retrieval

import (
	"context"
	"log"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/embedding"
	"aqua-support-be/pkg/store"
)

// Searcher is the nearest-neighbor backend. Implementations must return
// all topK candidates in ranked order without any score-based filtering;
// adequacy judgment belongs to the scorer, not this layer.
type Searcher interface {
	Search(ctx context.Context, vector []float32, topK int) ([]store.Document, error)
}

// Gateway embeds a query and fans it out to the search backend. Any
// transport or service failure yields an empty result set; the loop
// treats that as a valid low-confidence outcome.
type Gateway struct {
	embedder embedding.EmbeddingProvider
	searcher Searcher
	baseTopK int
	stepTopK int
	logger   *log.Logger
}

func NewGateway(embedder embedding.EmbeddingProvider, searcher Searcher, baseTopK, stepTopK int, logger *log.Logger) *Gateway {
	if baseTopK <= 0 {
		baseTopK = constant.RetrievalBaseTopK
	}
	if stepTopK <= 0 {
		stepTopK = constant.RetrievalStepTopK
	}
	return &Gateway{
		embedder: embedder,
		searcher: searcher,
		baseTopK: baseTopK,
		stepTopK: stepTopK,
		logger:   logger,
	}
}

// TopKForAttempt widens the candidate window per attempt (8, 12, 16 with
// default knobs) to compensate for broader late-attempt queries.
func (g *Gateway) TopKForAttempt(attempt int) int {
	if attempt < 1 {
		attempt = 1
	}
	return g.baseTopK + (attempt-1)*g.stepTopK
}

// Retrieve returns ranked candidates for a query. Never returns an error;
// failures are logged and produce an empty list.
func (g *Gateway) Retrieve(ctx context.Context, query string, attempt int) []store.Document {
	topK := g.TopKForAttempt(attempt)

	resp, err := g.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		g.logger.Printf("[ERROR] Query embedding failed: %v", err)
		return nil
	}

	docs, err := g.searcher.Search(ctx, resp.Embedding.Values, topK)
	if err != nil {
		g.logger.Printf("[ERROR] Knowledge search failed: %v", err)
		return nil
	}

	g.logger.Printf("[RETRIEVAL] Attempt %d (top_k=%d): %d results", attempt, topK, len(docs))
	return docs
}
