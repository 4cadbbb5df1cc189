package assistant

import (
	"context"
	"log/slog"
	"strings"

	"triage-assistant/internal/llm"
	"triage-assistant/internal/patient"
)

// Terms that mark a message or reply as health guidance. When any of them
// is present the localized disclaimer is appended to the final reply.
var disclaimerTerms = []string{
	"pain", "medication", "treatment", "symptom", "doctor", "sick", "hurt",
	"douleur", "médicament", "traitement", "symptôme", "médecin", "malade",
	"ألم", "دواء", "علاج", "أعراض", "طبيب", "مريض",
}

var disclaimers = localized{
	en: "Note: this is AI-generated guidance, not a medical diagnosis. Please consult a healthcare professional for medical advice.",
	fr: "Remarque : il s'agit de conseils générés par IA, pas d'un diagnostic médical. Veuillez consulter un professionnel de santé.",
	ar: "ملاحظة: هذا إرشاد مُولّد بالذكاء الاصطناعي وليس تشخيصاً طبياً. يرجى استشارة مختص في الرعاية الصحية.",
}

// Generator produces the assistant reply for a patient message. It tries
// the remote model first and degrades through local strategies, so it
// always returns usable text and never an error.
type Generator struct {
	client llm.Client
	params llm.GenerationParams
}

func NewGenerator(client llm.Client, params llm.GenerationParams) *Generator {
	return &Generator{client: client, params: params}
}

// Generate runs the reply cascade: remote completion, then the ordered
// intent patterns, then the generic acknowledgment. Remote errors,
// timeouts and empty output all just advance the cascade; nothing is
// retried and nothing is surfaced to the caller. The disclaimer rule is
// evaluated once, after the cascade resolves.
func (g *Generator) Generate(ctx context.Context, message string, pctx patient.Context, history []patient.ConversationMessage) string {
	reply := g.remoteReply(ctx, message, pctx, history)
	if reply == "" {
		reply = patternReply(message, pctx)
	}
	if reply == "" {
		reply = genericReply(pctx)
	}

	if needsDisclaimer(message, reply) {
		reply += "\n\n" + disclaimers.in(pctx.Language)
	}
	return reply
}

func (g *Generator) remoteReply(ctx context.Context, message string, pctx patient.Context, history []patient.ConversationMessage) string {
	if g.client == nil {
		return ""
	}
	prompt := ComposePrompt(message, pctx, history)
	out, err := g.client.Complete(ctx, prompt, g.params)
	if err != nil {
		slog.Warn("remote generation failed, using local fallback", "patient_id", pctx.PatientID, "error", err)
		return ""
	}
	return cleanRemoteOutput(out)
}

// cleanRemoteOutput trims the completion and strips any echoed persona
// label. Models occasionally repeat the trailing "Assistant:" marker from
// the prompt.
func cleanRemoteOutput(out string) string {
	out = strings.TrimSpace(out)
	for {
		lower := strings.ToLower(out)
		if !strings.HasPrefix(lower, "assistant:") {
			break
		}
		out = strings.TrimSpace(out[len("assistant:"):])
	}
	return out
}

func needsDisclaimer(message, reply string) bool {
	combined := strings.ToLower(message) + " " + strings.ToLower(reply)
	for _, term := range disclaimerTerms {
		if strings.Contains(combined, term) {
			return true
		}
	}
	return false
}
