package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/agent/augment"
	"aqua-support-be/pkg/agent/intent"
	"aqua-support-be/pkg/agent/query"
	"aqua-support-be/pkg/store"
)

// Collaborator contracts. The concrete implementations live in the
// subpackages; the loop only depends on these so tests can stub every
// oracle deterministically.
type (
	IntentClassifier interface {
		Classify(ctx context.Context, rawQuery string) intent.Classification
	}

	DirectResponder interface {
		Respond(cls intent.Classification) (answer string, confidence float64, handled bool)
		DosageFallback() (string, float64)
		Escalation() string
	}

	QueryReformulator interface {
		Reformulate(ctx context.Context, originalQuery, intentName string, attempt int, prior []query.PriorAttempt) string
	}

	Retriever interface {
		Retrieve(ctx context.Context, query string, attempt int) []store.Document
	}

	AdequacyScorer interface {
		Score(ctx context.Context, query string, docs []store.Document) (float64, string)
	}

	RepairAugmenter interface {
		Augment(ctx context.Context, query string, docs []store.Document, partialConfidence float64) augment.Outcome
	}

	AnswerSynthesizer interface {
		Synthesize(ctx context.Context, query string, docs []store.Document, attempts int, confidence float64, intentName string, evalLog []string) string
	}
)

// Result is the only externally observable contract of one ask call.
type Result struct {
	Query              string   `json:"query"`
	Answer             string   `json:"answer"`
	Attempts           int      `json:"attempts"`
	Confidence         float64  `json:"confidence"`
	Escalated          bool     `json:"escalated"`
	Intent             string   `json:"intent"`
	BusinessSubtype    string   `json:"business_subtype"`
	TradeSecretHandled bool     `json:"trade_secret_handled"`
	AugmentationUsed   bool     `json:"augmentation_used"`
	Resolution         string   `json:"resolution"`
	EvaluationTrace    []string `json:"evaluation_trace"`
}

// Agent runs the bounded retrieval-evaluation-escalation loop. One Agent
// serves many concurrent sessions; all per-session state lives in the
// SessionState value local to each Ask call.
type Agent struct {
	classifier    IntentClassifier
	responder     DirectResponder
	reformulator  QueryReformulator
	retriever     Retriever
	scorer        AdequacyScorer
	augmenter     RepairAugmenter
	synthesizer   AnswerSynthesizer
	maxAttempts   int
	oracleTimeout time.Duration
	logger        *log.Logger
}

func NewAgent(
	classifier IntentClassifier,
	responder DirectResponder,
	reformulator QueryReformulator,
	retriever Retriever,
	scorer AdequacyScorer,
	augmenter RepairAugmenter,
	synthesizer AnswerSynthesizer,
	maxAttempts int,
	oracleTimeout time.Duration,
	logger *log.Logger,
) *Agent {
	if maxAttempts <= 0 {
		maxAttempts = constant.MaxReasoningAttempts
	}
	if oracleTimeout <= 0 {
		oracleTimeout = 30 * time.Second
	}
	return &Agent{
		classifier:    classifier,
		responder:     responder,
		reformulator:  reformulator,
		retriever:     retriever,
		scorer:        scorer,
		augmenter:     augmenter,
		synthesizer:   synthesizer,
		maxAttempts:   maxAttempts,
		oracleTimeout: oracleTimeout,
		logger:        logger,
	}
}

// Ask answers one user query. It always returns a complete, well-formed
// result; internal failures degrade to an escalated answer rather than
// surfacing as errors.
func (a *Agent) Ask(ctx context.Context, userQuery string) (result *Result) {
	userQuery = strings.TrimSpace(userQuery)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Printf("[ERROR] Agent panic recovered: %v", r)
			result = &Result{
				Query:           userQuery,
				Answer:          a.responder.Escalation(),
				Escalated:       true,
				Intent:          constant.IntentGeneral,
				BusinessSubtype: constant.BusinessSubtypeNone,
				Resolution:      ResolutionEscalated,
				EvaluationTrace: []string{fmt.Sprintf("System error: %v", r)},
			}
		}
	}()

	state := NewSessionState(userQuery)

	clsCtx, cancel := context.WithTimeout(ctx, a.oracleTimeout)
	cls := a.classifier.Classify(clsCtx, userQuery)
	cancel()
	state = state.WithClassification(cls.Intent, cls.BusinessSubtype, cls.TradeSecret, cls.Threshold)

	// Business and trade-secret sessions never reach the loop.
	if answer, confidence, handled := a.responder.Respond(cls); handled {
		resolution := ResolutionBusinessDirect
		if cls.TradeSecret && cls.BusinessSubtype == constant.BusinessSubtypeNone {
			resolution = ResolutionTradeSecret
		}
		state = state.WithTerminal(resolution, answer, confidence, "Direct response served")
		return a.toResult(state)
	}

	state = a.runLoop(ctx, state)
	return a.toResult(state)
}

// runLoop executes up to maxAttempts retrieval+evaluation cycles and
// resolves the terminal outcome.
func (a *Agent) runLoop(ctx context.Context, state SessionState) SessionState {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		stageCtx, cancel := context.WithTimeout(ctx, a.oracleTimeout)
		optimized := a.reformulator.Reformulate(
			stageCtx, state.OriginalQuery, state.Intent, attempt, priorAttempts(state))
		cancel()

		stageCtx, cancel = context.WithTimeout(ctx, a.oracleTimeout)
		docs := a.retriever.Retrieve(stageCtx, optimized, attempt)
		cancel()
		state = state.WithAttempt(optimized, docs)

		stageCtx, cancel = context.WithTimeout(ctx, a.oracleTimeout)
		confidence, reasoning := a.scorer.Score(stageCtx, state.OriginalQuery, docs)
		cancel()
		state = state.WithEvaluation(confidence, reasoning)

		// Dosage sessions degrade to packaging instructions instead of
		// the generic exhaustion path.
		if state.Intent == constant.IntentDosage &&
			confidence < state.ConfidenceThreshold &&
			attempt == a.maxAttempts {
			answer, fallbackConfidence := a.responder.DosageFallback()
			return state.WithTerminal(ResolutionDosageFallback, answer, fallbackConfidence, "Dosage fallback used")
		}

		if confidence >= state.ConfidenceThreshold {
			a.logger.Printf("[LOOP] Accepted at attempt %d (%.1f >= %.1f)", attempt, confidence, state.ConfidenceThreshold)
			synthCtx, synthCancel := context.WithTimeout(ctx, a.oracleTimeout)
			answer := a.synthesizer.Synthesize(
				synthCtx, state.OriginalQuery, state.SearchResults,
				state.AttemptCount, confidence, state.Intent, state.EvaluationLog)
			synthCancel()
			return state.WithTerminal(ResolutionAnswered, answer, confidence, "")
		}

		if attempt == a.maxAttempts {
			a.logger.Printf("[LOOP] Max attempts reached (%d), entering exhaustion path", attempt)
			return a.resolveExhaustion(ctx, state)
		}

		a.logger.Printf("[LOOP] Attempt %d insufficient (%.1f < %.1f), continuing",
			attempt, confidence, state.ConfidenceThreshold)
	}

	return a.escalate(state, "Loop ended without terminal state")
}

// resolveExhaustion tries the augmentation repair path; anything short of
// a promoted augmentation escalates.
func (a *Agent) resolveExhaustion(ctx context.Context, state SessionState) SessionState {
	partial := state.BestPartial
	if partial == nil || !augment.Eligible(partial.Confidence, state.Intent) {
		return a.escalate(state, "No usable partial for augmentation")
	}

	// Augmentation runs two oracle calls; give it a doubled window.
	augCtx, cancel := context.WithTimeout(ctx, 2*a.oracleTimeout)
	defer cancel()

	outcome := a.augmenter.Augment(augCtx, state.OriginalQuery, partial.Documents, partial.Confidence)
	if !outcome.Promoted {
		return a.escalate(state, "Augmentation rejected: "+outcome.Reason)
	}

	return state.WithTerminal(ResolutionAugmented, outcome.Answer, outcome.Confidence,
		fmt.Sprintf("Augmentation promoted with confidence %.1f", outcome.Confidence))
}

func (a *Agent) escalate(state SessionState, note string) SessionState {
	return state.WithTerminal(ResolutionEscalated, a.responder.Escalation(), state.ModelConfidence, note)
}

func priorAttempts(state SessionState) []query.PriorAttempt {
	prior := make([]query.PriorAttempt, 0, len(state.AttemptHistory))
	for i, rec := range state.AttemptHistory {
		p := query.PriorAttempt{Attempt: rec.Attempt, Query: rec.Query}
		if i < len(state.AttemptConfidences) {
			p.Confidence = state.AttemptConfidences[i]
		}
		if i < len(state.AttemptReasonings) {
			p.Reasoning = state.AttemptReasonings[i]
		}
		prior = append(prior, p)
	}
	return prior
}

func (a *Agent) toResult(state SessionState) *Result {
	return &Result{
		Query:              state.OriginalQuery,
		Answer:             state.FinalAnswer,
		Attempts:           state.AttemptCount,
		Confidence:         state.ModelConfidence,
		Escalated:          state.Escalated,
		Intent:             state.Intent,
		BusinessSubtype:    state.BusinessSubtype,
		TradeSecretHandled: state.TradeSecret,
		AugmentationUsed:   state.AugmentationUsed,
		Resolution:         state.Resolution,
		EvaluationTrace:    state.EvaluationLog,
	}
}
