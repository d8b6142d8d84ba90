package direct

import (
	"io"
	"log"
	"strings"
	"testing"

	"aqua-support-be/internal/constant"
	"aqua-support-be/pkg/agent/intent"
)

const (
	testBrand = "AquaReef"
	testPhone = "+1-800-555-0199"
	testEmail = "support@aquareef.example.com"
)

func newTestResponder() *Responder {
	return NewResponder(testBrand, testPhone, testEmail, log.New(io.Discard, "", 0))
}

func TestRespondShortCircuits(t *testing.T) {
	tests := []struct {
		name           string
		cls            intent.Classification
		wantHandled    bool
		wantConfidence float64
		wantContains   string
	}{
		{
			name: "partnership",
			cls: intent.Classification{
				Intent:          constant.IntentBusiness,
				BusinessSubtype: constant.BusinessSubtypePartnership,
			},
			wantHandled:    true,
			wantConfidence: constant.PartnershipConfidence,
			wantContains:   "BUSINESS PARTNERSHIP",
		},
		{
			name: "technical support",
			cls: intent.Classification{
				Intent:          constant.IntentSupport,
				BusinessSubtype: constant.BusinessSubtypeTechnicalSupport,
			},
			wantHandled:    true,
			wantConfidence: constant.TechSupportConfidence,
			wantContains:   "TECHNICAL SUPPORT",
		},
		{
			name: "trade secret",
			cls: intent.Classification{
				Intent:          constant.IntentProduction,
				BusinessSubtype: constant.BusinessSubtypeNone,
				TradeSecret:     true,
			},
			wantHandled:    true,
			wantConfidence: constant.TradeSecretConfidence,
			wantContains:   "trade secret",
		},
		{
			name: "ordinary query passes through",
			cls: intent.Classification{
				Intent:          constant.IntentGeneral,
				BusinessSubtype: constant.BusinessSubtypeNone,
			},
			wantHandled: false,
		},
	}

	r := newTestResponder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, confidence, handled := r.Respond(tt.cls)
			if handled != tt.wantHandled {
				t.Fatalf("handled = %v, want %v", handled, tt.wantHandled)
			}
			if !handled {
				if answer != "" || confidence != 0 {
					t.Errorf("pass-through must return empty answer, got %q / %.1f", answer, confidence)
				}
				return
			}
			if confidence != tt.wantConfidence {
				t.Errorf("confidence = %.1f, want %.1f", confidence, tt.wantConfidence)
			}
			if !strings.Contains(answer, tt.wantContains) {
				t.Errorf("answer missing %q:\n%s", tt.wantContains, answer)
			}
			for _, field := range []string{testBrand, testPhone, testEmail} {
				if !strings.Contains(answer, field) {
					t.Errorf("answer missing contact field %q", field)
				}
			}
		})
	}
}

func TestDosageFallback(t *testing.T) {
	r := newTestResponder()
	answer, confidence := r.DosageFallback()

	if confidence != constant.DosageFallbackConfidence {
		t.Errorf("confidence = %.1f, want %.1f", confidence, constant.DosageFallbackConfidence)
	}
	if !strings.Contains(answer, "packaging") {
		t.Errorf("fallback must point to packaging instructions:\n%s", answer)
	}
	if !strings.Contains(answer, testPhone) {
		t.Error("fallback missing helpline number")
	}
}

func TestEscalation(t *testing.T) {
	r := newTestResponder()
	answer := r.Escalation()

	if !strings.Contains(answer, testBrand) {
		t.Error("escalation missing brand name")
	}
	if !strings.Contains(answer, testPhone) || !strings.Contains(answer, testEmail) {
		t.Error("escalation missing contact details")
	}
}
