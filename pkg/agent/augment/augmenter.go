package augment

import (
	"context"
	"fmt"
	"log"
	"strings"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/agent/eval"
	"aqua-support-be/pkg/llm"
	"aqua-support-be/pkg/store"
)

// Outcome is the result of one augmentation pass.
type Outcome struct {
	Answer     string
	Confidence float64
	Promoted   bool
	Reason     string
}

// Augmenter is the repair stage entered when the loop exhausts attempts
// while holding a usable partial. It generates a grounded extension of
// the partial, re-evaluates the generated text itself and runs a static
// safety gate before promoting the result to a final answer.
type Augmenter struct {
	llmProvider llm.LLMProvider
	phone       string
	email       string
	logger      *log.Logger
}

func NewAugmenter(llmProvider llm.LLMProvider, phone, email string, logger *log.Logger) *Augmenter {
	return &Augmenter{
		llmProvider: llmProvider,
		phone:       phone,
		email:       email,
		logger:      logger,
	}
}

// protectedIntents already have deterministic handling paths and must
// never be augmented.
var protectedIntents = map[string]bool{
	constant.IntentBusiness:   true,
	constant.IntentDosage:     true,
	constant.IntentProduction: true,
}

// Eligible reports whether the session qualifies for augmentation.
func Eligible(partialConfidence float64, intentName string) bool {
	return partialConfidence >= constant.PartialUsabilityFloor && !protectedIntents[intentName]
}

// Augment runs the full repair pass. Never returns an error; any oracle
// failure produces a non-promoted outcome and the caller escalates.
func (a *Augmenter) Augment(ctx context.Context, query string, docs []store.Document, partialConfidence float64) Outcome {
	docContext := eval.BuildEvaluationContext(docs)

	prompt := fmt.Sprintf(constant.AugmentationPromptTemplate,
		constant.AquaExpertSystemPrompt, query, partialConfidence,
		docContext, a.phone, a.email)

	generated, err := a.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		a.logger.Printf("[ERROR] Augmentation generation failed: %v", err)
		return Outcome{Reason: "augmentation generation failed"}
	}
	generated = strings.TrimSpace(generated)

	confidence, reasoning := a.evaluateGenerated(ctx, query, docContext, generated)
	a.logger.Printf("[AUGMENT] Second-pass confidence %.1f/10: %.80s", confidence, reasoning)

	if gate := a.safetyGateFailure(generated); gate != "" {
		a.logger.Printf("[AUGMENT] Safety gate failed: %s", gate)
		return Outcome{Answer: generated, Confidence: confidence, Reason: "safety gate failed: " + gate}
	}

	if confidence < constant.AugmentationAcceptThreshold {
		return Outcome{
			Answer:     generated,
			Confidence: confidence,
			Reason:     fmt.Sprintf("second-pass confidence %.1f below %.1f", confidence, constant.AugmentationAcceptThreshold),
		}
	}

	return Outcome{Answer: generated, Confidence: confidence, Promoted: true}
}

// evaluateGenerated scores the generated answer itself, not the source
// documents.
func (a *Augmenter) evaluateGenerated(ctx context.Context, query, docContext, generated string) (float64, string) {
	prompt := fmt.Sprintf(constant.AugmentationEvaluationPromptTemplate, query, docContext, generated)

	response, err := a.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		a.logger.Printf("[ERROR] Augmentation evaluation failed: %v", err)
		return constant.OracleFailureConfidence, fmt.Sprintf("Evaluation failed: %v", err)
	}
	return eval.ParseConfidence(response)
}

// safetyGateFailure returns the name of the first failed static check,
// or empty when all pass. These checks are independent of the second
// confidence score.
func (a *Augmenter) safetyGateFailure(generated string) string {
	if len(generated) < constant.AugmentationMinLength {
		return "response too short"
	}
	if len(generated) > constant.AugmentationMaxLength {
		return "response too long"
	}

	lower := strings.ToLower(generated)
	if !strings.Contains(generated, a.phone) &&
		!strings.Contains(lower, strings.ToLower(a.email)) &&
		!strings.Contains(lower, "contact") {
		return "missing expert contact reference"
	}

	if !strings.Contains(lower, strings.ToLower(constant.GroundingPhrase)) {
		return "missing grounding reference"
	}

	if countBlocks(generated) < constant.AugmentationMinBlocks {
		return "insufficient structure"
	}

	return ""
}

func countBlocks(text string) int {
	blocks := 0
	for _, b := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(b) != "" {
			blocks++
		}
	}
	return blocks
}
