package eval

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/llm"
	"aqua-support-be/pkg/store"
	"aqua-support-be/pkg/utils"
)

// Scorer judges whether a retrieved document set is adequate to answer a
// question. It deliberately never sees retrieval similarity scores; only
// title, type and a body excerpt reach the oracle.
type Scorer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewScorer(llmProvider llm.LLMProvider, logger *log.Logger) *Scorer {
	return &Scorer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Score returns a confidence in [0,10] and a short rationale. Empty input
// scores 0.0 without an oracle call; oracle failure scores a fixed low
// confidence. Never returns an error.
func (s *Scorer) Score(ctx context.Context, query string, docs []store.Document) (float64, string) {
	if len(docs) == 0 {
		return 0.0, "No search results to evaluate"
	}

	prompt := fmt.Sprintf(constant.EvaluationPromptTemplate,
		constant.AquaExpertSystemPrompt, query, BuildEvaluationContext(docs))

	response, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		s.logger.Printf("[ERROR] Content evaluation failed: %v", err)
		return constant.OracleFailureConfidence, fmt.Sprintf("Evaluation failed: %v", err)
	}

	confidence, reasoning := ParseConfidence(response)
	s.logger.Printf("[EVAL] Confidence %.1f/10: %.80s", confidence, reasoning)
	return confidence, reasoning
}

// BuildEvaluationContext renders the top documents for the oracle,
// excluding any ranking signal.
func BuildEvaluationContext(docs []store.Document) string {
	var sb strings.Builder
	for i, doc := range docs {
		if i >= constant.EvaluationMaxDocuments {
			break
		}
		excerpt := utils.TruncateRunes(doc.Content, constant.EvaluationExcerptMaxChars)
		sb.WriteString(fmt.Sprintf("\n--- RESULT %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Title: %s\n", doc.Title))
		sb.WriteString(fmt.Sprintf("Type: %s\n", doc.ContentType))
		sb.WriteString(fmt.Sprintf("Content: %s\n", excerpt))
	}
	return sb.String()
}

var (
	confidenceRe = regexp.MustCompile(`CONFIDENCE:\s*(10(?:\.0+)?|[0-9](?:\.[0-9]+)?)`)
	reasoningRe  = regexp.MustCompile(`(?s)REASONING:\s*(.+)`)
)

// ParseConfidence extracts the CONFIDENCE/REASONING pair from oracle
// output. A missing confidence defaults to a conservative mid score.
func ParseConfidence(text string) (float64, string) {
	confidence := constant.UnparsableConfidenceDefault
	if m := confidenceRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			confidence = v
		}
	}

	reasoning := "No reasoning provided"
	if m := reasoningRe.FindStringSubmatch(text); m != nil {
		reasoning = strings.TrimSpace(m[1])
	}

	if confidence < 0 {
		confidence = 0
	} else if confidence > 10 {
		confidence = 10
	}
	return confidence, reasoning
}
