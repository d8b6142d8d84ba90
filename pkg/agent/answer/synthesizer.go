package answer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/llm"
	"aqua-support-be/pkg/store"
)

// Synthesizer renders the final user-facing answer from an accepted
// document set. Canned outcomes (direct responses, dosage fallback,
// augmented answers, escalations) are already final and bypass it.
type Synthesizer struct {
	llmProvider llm.LLMProvider
	phone       string
	email       string
	logger      *log.Logger
}

func NewSynthesizer(llmProvider llm.LLMProvider, phone, email string, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		llmProvider: llmProvider,
		phone:       phone,
		email:       email,
		logger:      logger,
	}
}

// Synthesize generates the answer grounded in the accepted attempt's
// documents. Oracle failure yields a generic failure message, never an
// error.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, docs []store.Document, attempts int, confidence float64, intent string, evalLog []string) string {
	if len(docs) == 0 {
		return constant.NoResultsMessage
	}

	docContext, productLinks := buildAnswerContext(docs)

	prompt := fmt.Sprintf(constant.AnswerPromptTemplate,
		constant.AquaExpertSystemPrompt,
		attempts, confidence, intent,
		strings.Join(evalLog, "\n"),
		docContext, query)

	generated, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		s.logger.Printf("[ERROR] Answer generation failed: %v", err)
		return constant.GenericFailureMessage
	}

	answer := strings.TrimSpace(generated)
	if len(productLinks) > 0 && len(productLinks) <= constant.AnswerMaxProductLinks {
		answer += "\n\n**RELATED PRODUCTS:**\n" + strings.Join(productLinks, "\n")
	}

	if !s.hasContactReference(answer) {
		answer += fmt.Sprintf(constant.ContactFooterTemplate, s.phone, s.email)
	}

	return answer
}

func buildAnswerContext(docs []store.Document) (string, []string) {
	var sb strings.Builder
	var productLinks []string

	for i, doc := range docs {
		if i >= constant.AnswerContextMaxDocuments {
			break
		}
		sb.WriteString(fmt.Sprintf("\n--- SOURCE %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Title: %s\n", doc.Title))
		sb.WriteString(fmt.Sprintf("Type: %s\n", doc.ContentType))
		sb.WriteString(fmt.Sprintf("Content: %s\n", doc.Content))

		if doc.ContentType == store.ContentTypeProduct && doc.URL != "" {
			productLinks = append(productLinks, fmt.Sprintf("- %s: %s", doc.Title, doc.URL))
		}
	}
	return sb.String(), productLinks
}

func (s *Synthesizer) hasContactReference(answer string) bool {
	lower := strings.ToLower(answer)
	return strings.Contains(answer, s.phone) ||
		strings.Contains(lower, strings.ToLower(s.email)) ||
		strings.Contains(lower, "contact")
}
