package direct

import (
	"fmt"
	"log"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/agent/intent"
)

// Responder serves the deterministic short-circuit paths that never touch
// the retrieval loop: business routing and trade-secret refusals.
type Responder struct {
	brand  string
	phone  string
	email  string
	logger *log.Logger
}

func NewResponder(brand, phone, email string, logger *log.Logger) *Responder {
	return &Responder{
		brand:  brand,
		phone:  phone,
		email:  email,
		logger: logger,
	}
}

// Respond returns a canned answer with a fixed confidence when the
// classification matches a short-circuit path. handled is false when the
// session should proceed to the retrieval loop.
func (r *Responder) Respond(cls intent.Classification) (answer string, confidence float64, handled bool) {
	switch {
	case cls.BusinessSubtype == constant.BusinessSubtypePartnership:
		r.logger.Printf("[DIRECT] Partnership inquiry, serving business template")
		return fmt.Sprintf(constant.PartnershipResponseTemplate, r.brand, r.phone, r.email),
			constant.PartnershipConfidence, true

	case cls.BusinessSubtype == constant.BusinessSubtypeTechnicalSupport:
		r.logger.Printf("[DIRECT] Technical support inquiry, serving support template")
		return fmt.Sprintf(constant.TechnicalSupportResponseTemplate, r.brand, r.phone, r.email),
			constant.TechSupportConfidence, true

	case cls.TradeSecret:
		r.logger.Printf("[DIRECT] Trade secret query, serving refusal template")
		return fmt.Sprintf(constant.TradeSecretResponseTemplate, r.brand, r.phone, r.email),
			constant.TradeSecretConfidence, true
	}

	return "", 0, false
}

// DosageFallback renders the packaging-instructions answer used when the
// dosage intent exhausts its attempts below threshold.
func (r *Responder) DosageFallback() (string, float64) {
	return fmt.Sprintf(constant.DosageFallbackTemplate, r.brand, r.phone, r.email),
		constant.DosageFallbackConfidence
}

// Escalation renders the human-handoff answer.
func (r *Responder) Escalation() string {
	return fmt.Sprintf(constant.EscalationResponseTemplate, r.brand, r.phone, r.email)
}
