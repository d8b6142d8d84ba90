package query

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/llm"
	"aqua-support-be/pkg/utils"
)

// PriorAttempt summarizes one finished attempt for reformulation context.
type PriorAttempt struct {
	Attempt    int
	Query      string
	Confidence float64
	Reasoning  string
}

// Reformulator produces the search query for each attempt. Attempt 1
// stays close to the user's wording, attempt 2 adds synonyms and related
// domain terms, attempt 3 broadens to domain-level keywords. The LLM path
// is preferred; any oracle failure falls back to deterministic rules.
type Reformulator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewReformulator(llmProvider llm.LLMProvider, logger *log.Logger) *Reformulator {
	return &Reformulator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

var attemptStrategies = map[int]string{
	1: "FOCUSED SEARCH - Use specific keywords related to the exact user question",
	2: "EXPANDED SEARCH - Add synonyms, related terms and broader domain concepts",
	3: "BROAD SEARCH - Use high-level terms and general domain keywords",
}

// Reformulate returns the optimized query for one attempt. It never
// fails; reformulation errors degrade to rule-based extraction.
func (r *Reformulator) Reformulate(ctx context.Context, originalQuery, intent string, attempt int, prior []PriorAttempt) string {
	strategy, ok := attemptStrategies[attempt]
	if !ok {
		strategy = attemptStrategies[3]
	}

	if r.llmProvider == nil {
		return r.fallbackReformulation(originalQuery, attempt, prior)
	}

	prompt := fmt.Sprintf(constant.ReformulationPromptTemplate,
		originalQuery, intent, attempt, constant.MaxReasoningAttempts,
		strategy, buildAttemptsContext(prior, attempt))

	response, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		r.logger.Printf("[WARN] Query reformulation failed, using fallback: %v", err)
		return r.fallbackReformulation(originalQuery, attempt, prior)
	}

	optimized := cleanOptimizedQuery(response)
	if repeatsPrior(optimized, prior) {
		// Best-effort no-repeat: degrade to the rule path which keys
		// broadening on the attempt index.
		optimized = r.fallbackReformulation(originalQuery, attempt, prior)
	}

	r.logger.Printf("[QUERY] Attempt %d (%s): %q -> %q", attempt, intent, originalQuery, optimized)
	return optimized
}

func buildAttemptsContext(prior []PriorAttempt, currentAttempt int) string {
	if len(prior) == 0 || currentAttempt == 1 {
		return "**FIRST ATTEMPT**: No previous attempts to consider."
	}

	var sb strings.Builder
	sb.WriteString("**PREVIOUS ATTEMPTS ANALYSIS:**\n")
	for _, p := range prior {
		if p.Attempt >= currentAttempt {
			break
		}
		reasoning := utils.TruncateRunes(p.Reasoning, 100)
		sb.WriteString(fmt.Sprintf("- Attempt %d: '%s' -> Confidence: %.1f/10\n", p.Attempt, p.Query, p.Confidence))
		sb.WriteString(fmt.Sprintf("  Reasoning: %s\n", reasoning))
	}
	sb.WriteString(fmt.Sprintf("\n**NEEDED IMPROVEMENT**: Previous attempts didn't find sufficient quality content. Try a different semantic approach for attempt %d.", currentAttempt))
	return sb.String()
}

var (
	artifactPrefixRe = regexp.MustCompile(`(?i)^(keywords:?|search:?|query:?)\s*`)
	quotedRe         = regexp.MustCompile(`"([^"]*)"`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// cleanOptimizedQuery strips LLM artifacts and bounds the keyword count.
func cleanOptimizedQuery(raw string) string {
	cleaned := artifactPrefixRe.ReplaceAllString(strings.TrimSpace(raw), "")
	cleaned = quotedRe.ReplaceAllString(cleaned, "$1")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	words := strings.Fields(cleaned)
	if len(words) > constant.ReformulatedQueryMaxWords {
		cleaned = strings.Join(words[:constant.ReformulatedQueryMaxWords], " ")
	} else if len(words) < constant.ReformulatedQueryMinWords {
		cleaned = strings.TrimSpace("aquarium AquaReef " + cleaned)
	}
	return cleaned
}

func repeatsPrior(query string, prior []PriorAttempt) bool {
	for _, p := range prior {
		if strings.EqualFold(strings.TrimSpace(p.Query), strings.TrimSpace(query)) {
			return true
		}
	}
	return false
}

// Topic detection for the deterministic fallback path.
type topicMatcher struct {
	name  string
	terms []string
}

var topicMatchers = []topicMatcher{
	{"salt", []string{"salt", "salinity", "hybrid", "reef salt", "ppt"}},
	{"dosage", []string{"dosage", "dose", "dosing", "how much", "ml", "application"}},
	{"coral", []string{"coral", "sps", "lps", "polyp", "frags"}},
	{"problem", []string{"problem", "get rid", "cyano", "algae", "high", "low"}},
	{"fish", []string{"fish", "anthias", "quarantine", "acclimat"}},
	{"water", []string{"water", "parameters", "ph", "alkalinity", "calcium", "magnesium", "kh"}},
	{"startup", []string{"start", "starting", "new tank", "first", "cycle", "cycling"}},
}

var fallbackKeywords = map[string][3]string{
	"salt": {
		"marine salt seawater reef blend hybrid pro",
		"marine salt seawater hybrid probiotic bacteria amino acids vitamins",
		"marine aquaristics seawater coral reef salt",
	},
	"dosage": {
		"dosage dose ml application instructions",
		"dosage dose dosing application ml instructions label",
		"aquarium products dosing AquaReef guide",
	},
	"coral": {
		"corals SPS LPS soft hard coral polyp",
		"corals coral SPS LPS growth coloration polyp extension",
		"marine aquaristics seawater coral reef care",
	},
	"problem": {
		"problem cyanobacteria algae nitrates phosphates",
		"problem solution cyano algae nitrates phosphates clarity",
		"aquarium problems water quality AquaReef help",
	},
	"fish": {
		"fish acclimatization quarantine disease",
		"fish acclimatization disease quarantine treatment",
		"fish aquarium husbandry marine care",
	},
	"water": {
		"water parameters pH alkalinity calcium magnesium",
		"water chemistry parameters pH KH calcium magnesium test",
		"aquarium water parameters testing AquaReef",
	},
	"startup": {
		"aquarium start setup nitrogen cycle new",
		"aquarium setup cycling bacteria maturation start",
		"aquarium start parameters water bacteria AquaReef",
	},
}

func detectTopic(query string) string {
	lower := strings.ToLower(query)
	for _, m := range topicMatchers {
		for _, t := range m.terms {
			if strings.Contains(lower, t) {
				return m.name
			}
		}
	}
	return ""
}

// fallbackReformulation is the deterministic path: table lookups keyed by
// detected topic, broadening with the attempt index.
func (r *Reformulator) fallbackReformulation(originalQuery string, attempt int, prior []PriorAttempt) string {
	if attempt < 1 {
		attempt = 1
	} else if attempt > constant.MaxReasoningAttempts {
		attempt = constant.MaxReasoningAttempts
	}

	if topic := detectTopic(originalQuery); topic != "" {
		keywords := fallbackKeywords[topic][attempt-1]
		r.logger.Printf("[QUERY] Fallback attempt %d topic=%s: %q", attempt, topic, keywords)
		return keywords
	}

	// No topic detected: extract significant words and append widening
	// domain terms per attempt.
	var words []string
	for _, w := range strings.Fields(strings.ToLower(originalQuery)) {
		w = strings.Trim(w, ".,?!:;\"'")
		if len(w) > 3 {
			words = append(words, w)
		}
	}

	var keywords string
	switch attempt {
	case 1:
		keywords = strings.Join(words, " ") + " aquarium"
	case 2:
		keywords = strings.Join(words, " ") + " AquaReef products"
	default:
		keywords = "aquaristics seawater freshwater AquaReef"
	}

	keywords = cleanOptimizedQuery(keywords)
	r.logger.Printf("[QUERY] Fallback attempt %d: %q", attempt, keywords)
	return keywords
}
