package assistant

import (
	"fmt"
	"strings"
	"time"

	"triage-assistant/internal/patient"
)

const (
	// historyWindow bounds how many conversation turns the prompt carries.
	historyWindow = 6
	// promptEntryLimit bounds how many symptom entries the prompt carries.
	promptEntryLimit = 5

	notSpecified = "not specified"
)

var languageNames = map[string]string{
	"en": "English",
	"fr": "French",
	"ar": "Arabic",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "English"
}

// ComposePrompt assembles the full context block sent to the remote model:
// persona preamble, patient profile, recent symptom history, a bounded
// window of recent conversation turns, then the new message. Missing
// optional fields are rendered as "not specified"; the function never fails.
func ComposePrompt(message string, pctx patient.Context, history []patient.ConversationMessage) string {
	var b strings.Builder

	b.WriteString("You are a careful medical guidance assistant for a symptom-tracking service. ")
	b.WriteString("Provide general health information and practical guidance. Never give a definitive diagnosis. ")
	b.WriteString("Encourage seeing a doctor when symptoms are serious. ")
	fmt.Fprintf(&b, "Respond in %s.\n\n", languageName(pctx.Language))

	writeProfile(&b, pctx.Profile)
	writeSymptomHistory(&b, pctx.Entries)
	writeConversation(&b, history)

	fmt.Fprintf(&b, "Patient: %s\nAssistant:", message)
	return b.String()
}

func writeProfile(b *strings.Builder, p *patient.Profile) {
	b.WriteString("Patient profile:\n")
	if p == nil {
		p = &patient.Profile{}
	}
	if p.Age > 0 {
		fmt.Fprintf(b, "- Age: %d\n", p.Age)
	} else {
		fmt.Fprintf(b, "- Age: %s\n", notSpecified)
	}
	fmt.Fprintf(b, "- Gender: %s\n", orNotSpecified(p.Gender))
	fmt.Fprintf(b, "- Known conditions: %s\n", joinOrNotSpecified(p.Conditions))
	fmt.Fprintf(b, "- Allergies: %s\n", joinOrNotSpecified(p.Allergies))
	fmt.Fprintf(b, "- Current medications: %s\n", joinOrNotSpecified(p.Medications))
	b.WriteString("\n")
}

func writeSymptomHistory(b *strings.Builder, entries []patient.SymptomEntry) {
	b.WriteString("Recent symptom reports (most recent first):\n")
	if len(entries) == 0 {
		b.WriteString("- none recorded\n\n")
		return
	}
	limit := len(entries)
	if limit > promptEntryLimit {
		limit = promptEntryLimit
	}
	for _, e := range entries[:limit] {
		fmt.Fprintf(b, "- %s (level: %s, %s)\n", e.Text, e.TriageLevel, recency(e.CreatedAt))
	}
	b.WriteString("\n")
}

func writeConversation(b *strings.Builder, history []patient.ConversationMessage) {
	if len(history) == 0 {
		return
	}
	b.WriteString("Recent conversation:\n")
	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, m := range history[start:] {
		label := "Patient"
		if m.Role == patient.RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(b, "%s: %s\n", label, m.Text)
	}
	b.WriteString("\n")
}

func recency(t time.Time) string {
	if t.IsZero() {
		return "date unknown"
	}
	days := int(time.Since(t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func joinOrNotSpecified(items []string) string {
	if len(items) == 0 {
		return notSpecified
	}
	return strings.Join(items, ", ")
}
