package constant

// Query intents recognized by the support agent.
const (
	IntentGeneral         = "general"
	IntentDosage          = "dosage"
	IntentBusiness        = "business"
	IntentProduction      = "production"
	IntentTroubleshooting = "troubleshooting"
	IntentSupport         = "support"
	IntentTechnical       = "technical"
	IntentProductInfo     = "product_info"
	IntentSetup           = "setup"
	IntentMaintenance     = "maintenance"
	IntentLearning        = "learning"
)

// Business subtypes routed to canned handlers before the retrieval loop.
const (
	BusinessSubtypeNone             = "none"
	BusinessSubtypePartnership      = "partnership"
	BusinessSubtypeTechnicalSupport = "technical_support"
)

// Retrieval loop tuning.
const (
	MaxReasoningAttempts = 3

	// top_k widens per attempt: 8, 12, 16
	RetrievalBaseTopK = 8
	RetrievalStepTopK = 4

	// Reformulated queries are capped to keep retrieval precision.
	ReformulatedQueryMaxWords = 10
	ReformulatedQueryMinWords = 2

	// Documents shown to the adequacy scorer.
	EvaluationMaxDocuments     = 4
	EvaluationExcerptMaxChars  = 400
	AnswerContextMaxDocuments  = 3
	AnswerMaxProductLinks      = 3

	// Usability floor for retaining a partial result across attempts.
	PartialUsabilityFloor = 5.0

	// Fixed confidences for deterministic outcomes.
	PartnershipConfidence    = 10.0
	TechSupportConfidence    = 9.0
	TradeSecretConfidence    = 9.0
	DosageFallbackConfidence = 7.0

	// Conservative scores when the oracle misbehaves.
	UnparsableConfidenceDefault = 5.0
	OracleFailureConfidence     = 3.0

	// Augmentation acceptance.
	AugmentationAcceptThreshold = 7.0
	AugmentationMinLength       = 200
	AugmentationMaxLength       = 4000
	AugmentationMinBlocks       = 2
)

// ConfidenceThresholds maps each intent to its acceptance threshold.
var ConfidenceThresholds = map[string]float64{
	IntentGeneral:         7.0,
	IntentDosage:          6.0,
	IntentTroubleshooting: 6.5,
	IntentSupport:         6.5,
	IntentBusiness:        9.0,
	IntentProduction:      5.0,
	IntentTechnical:       6.5,
	IntentProductInfo:     6.5,
	IntentSetup:           6.0,
	IntentMaintenance:     6.5,
	IntentLearning:        7.0,
}

// DefaultConfidenceThreshold applies when an intent is unknown.
const DefaultConfidenceThreshold = 7.0

// ThresholdFor returns the acceptance threshold for an intent.
func ThresholdFor(intent string) float64 {
	if t, ok := ConfidenceThresholds[intent]; ok {
		return t
	}
	return DefaultConfidenceThreshold
}
