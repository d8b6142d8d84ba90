package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/llm"
)

// Classification is the resolved intent for one session. It is computed
// once before the retrieval loop and read-only afterwards.
type Classification struct {
	Intent          string
	BusinessSubtype string
	TradeSecret     bool
	Threshold       float64
	Source          string // "rules" or "llm"
}

// rule is one keyword matcher. Rules are evaluated by precedence rank,
// highest first; the first matching rule wins.
type rule struct {
	Intent          string
	BusinessSubtype string
	TradeSecret     bool
	Phrases         []string
}

var defaultRules = map[string]rule{
	constant.IntentBusiness: {
		Intent:          constant.IntentBusiness,
		BusinessSubtype: constant.BusinessSubtypePartnership,
		Phrases: []string{
			"partnership", "distribution", "distributor", "become a dealer",
			"dealer", "wholesale", "reseller", "represent your brand",
			"business cooperation", "cooperate with", "sell your products",
			"stock your products", "b2b",
		},
	},
	constant.IntentProduction: {
		Intent:      constant.IntentProduction,
		TradeSecret: true,
		Phrases: []string{
			"how is it made", "how is it produced", "how do you make",
			"how do you produce", "production process", "manufacturing process",
			"recipe", "formula", "exact ingredients", "exact composition",
			"production method", "manufacturing method", "how it's manufactured",
		},
	},
	constant.IntentDosage: {
		Intent: constant.IntentDosage,
		Phrases: []string{
			"dosage", "dose", "dosing", "how much", "how many ml",
			"how to apply", "how to use", "how often", "frequency",
			"proportion", "ratio", "per liter", "per 100l", "amount",
		},
	},
	constant.IntentTroubleshooting: {
		Intent: constant.IntentTroubleshooting,
		Phrases: []string{
			"problem", "how to get rid", "how to remove", "how to lower",
			"how to reduce", "what to do", "solution", "how to fight",
			"how to prevent", "how to treat", "how to cure", "dying",
			"algae outbreak", "cyanobacteria",
		},
	},
	constant.IntentSupport: {
		Intent:          constant.IntentSupport,
		BusinessSubtype: constant.BusinessSubtypeTechnicalSupport,
		Phrases: []string{
			"help", "support", "not working", "doesn't work", "error",
			"broken", "i don't know", "how to start", "instructions",
			"manual", "need assistance",
		},
	},
}

// Classifier maps a raw query to an intent and threshold. Keyword rules
// handle the common cases; ambiguous queries fall back to an LLM call
// constrained to a fixed enum.
type Classifier struct {
	llmProvider llm.LLMProvider
	precedence  []string
	logger      *log.Logger
}

// NewClassifier creates a classifier. precedence lists rule names highest
// priority first; empty entries and unknown names are ignored. A nil or
// empty precedence uses the built-in order.
func NewClassifier(llmProvider llm.LLMProvider, precedence []string, logger *log.Logger) *Classifier {
	ranked := normalizePrecedence(precedence)
	return &Classifier{
		llmProvider: llmProvider,
		precedence:  ranked,
		logger:      logger,
	}
}

func normalizePrecedence(precedence []string) []string {
	var ranked []string
	seen := map[string]bool{}
	for _, name := range precedence {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" || seen[name] {
			continue
		}
		if _, ok := defaultRules[name]; !ok {
			continue
		}
		ranked = append(ranked, name)
		seen[name] = true
	}
	if len(ranked) == 0 {
		ranked = []string{
			constant.IntentProduction,
			constant.IntentBusiness,
			constant.IntentDosage,
			constant.IntentTroubleshooting,
			constant.IntentSupport,
		}
	}
	return ranked
}

// Classify resolves the intent for a raw query. It never returns an
// error; oracle failures degrade to the general intent.
func (c *Classifier) Classify(ctx context.Context, rawQuery string) Classification {
	query := strings.ToLower(rawQuery)

	for _, name := range c.precedence {
		r := defaultRules[name]
		if matchesAny(query, r.Phrases) {
			cls := Classification{
				Intent:          r.Intent,
				BusinessSubtype: r.BusinessSubtype,
				TradeSecret:     r.TradeSecret,
				Threshold:       constant.ThresholdFor(r.Intent),
				Source:          "rules",
			}
			if cls.BusinessSubtype == "" {
				cls.BusinessSubtype = constant.BusinessSubtypeNone
			}
			c.logger.Printf("[INTENT] Rule match: %s (subtype=%s, trade_secret=%v, threshold=%.1f)",
				cls.Intent, cls.BusinessSubtype, cls.TradeSecret, cls.Threshold)
			return cls
		}
	}

	return c.classifyWithLLM(ctx, rawQuery)
}

func matchesAny(query string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(query, p) {
			return true
		}
	}
	return false
}

// llmIntentMapping maps the enum the oracle is allowed to return onto
// system intents.
var llmIntentMapping = map[string]string{
	"technical":       constant.IntentTechnical,
	"product":         constant.IntentProductInfo,
	"troubleshooting": constant.IntentTroubleshooting,
	"setup":           constant.IntentSetup,
	"maintenance":     constant.IntentMaintenance,
	"general":         constant.IntentGeneral,
}

func (c *Classifier) classifyWithLLM(ctx context.Context, rawQuery string) Classification {
	general := Classification{
		Intent:          constant.IntentGeneral,
		BusinessSubtype: constant.BusinessSubtypeNone,
		Threshold:       constant.DefaultConfidenceThreshold,
		Source:          "llm",
	}

	if c.llmProvider == nil {
		return general
	}

	prompt := fmt.Sprintf(constant.IntentDetectionPromptTemplate, rawQuery)
	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[WARN] LLM intent detection failed: %v", err)
		return general
	}

	detected := strings.ToLower(strings.TrimSpace(response))
	// Models sometimes decorate the enum; keep the first word only.
	if fields := strings.Fields(detected); len(fields) > 0 {
		detected = strings.Trim(fields[0], "*\"'.,:")
	}

	mapped, ok := llmIntentMapping[detected]
	if !ok {
		c.logger.Printf("[WARN] LLM returned unknown intent %q, defaulting to general", detected)
		return general
	}

	c.logger.Printf("[INTENT] LLM detected intent: %s -> %s", detected, mapped)
	return Classification{
		Intent:          mapped,
		BusinessSubtype: constant.BusinessSubtypeNone,
		Threshold:       constant.ThresholdFor(mapped),
		Source:          "llm",
	}
}
