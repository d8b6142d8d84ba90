package store

// Document represents a knowledge base entry as seen by the support agent.
// Score carries the raw vector similarity for reference/logging only; the
// quality judgement is model-based and must never read it.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	ContentType string   `json:"content_type"` // "product" | "guide" | "faq" | "article"
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Score       float32  `json:"score"`
}

// Content type constants
const (
	ContentTypeProduct = "product"
	ContentTypeGuide   = "guide"
	ContentTypeFAQ     = "faq"
	ContentTypeArticle = "article"
)
