package report

import (
	"fmt"
	"sort"
	"strings"

	"triage-assistant/internal/patient"
	"triage-assistant/internal/triage"
)

const fallbackEntryLimit = 5

// Recognized symptom categories for the offline aggregation, scanned by
// substring against the lowercased entry text.
var symptomVocabulary = []struct {
	name  string
	terms []string
}{
	{"back pain", []string{"back pain", "mal de dos", "ألم في الظهر", "ظهري"}},
	{"limb pain", []string{"leg pain", "arm pain", "knee pain", "shoulder pain", "jambe", "bras", "ساقي", "ذراعي"}},
	{"abdominal pain", []string{"stomach", "abdominal", "belly", "ventre", "estomac", "بطن", "معدة"}},
	{"headache", []string{"headache", "head pain", "migraine", "mal de tête", "صداع"}},
	{"nausea", []string{"nausea", "nauseous", "nausée", "غثيان"}},
	{"fever", []string{"fever", "fièvre", "حمى"}},
	{"fatigue", []string{"fatigue", "tired", "exhausted", "épuisé", "تعب", "إرهاق"}},
	{"concentration difficulty", []string{"concentrat", "can't focus", "cannot focus", "تركيز"}},
	{"eye strain", []string{"eye strain", "eyes hurt", "yeux fatigués", "إجهاد العين"}},
}

var fallbackRecommendations = map[string]string{
	"HIGH":     "Arrange a clinical assessment as soon as possible and advise the patient to seek urgent care if symptoms persist or escalate.",
	"MODERATE": "Schedule a follow-up consultation and advise the patient to track symptom changes daily.",
	"LOW":      "No immediate action required. Encourage healthy habits and routine check-ups.",
}

// fallbackReport aggregates the entry list deterministically. Identical
// input always produces identical output, so the whole path is unit
// testable without a network.
func fallbackReport(data PatientData) (summary, timeline, risk, recs string) {
	var safeCount, monitorCount, urgentCount int
	for _, e := range data.Entries {
		switch e.TriageLevel {
		case triage.LevelUrgent:
			urgentCount++
		case triage.LevelMonitor:
			monitorCount++
		default:
			safeCount++
		}
	}

	categories := topCategories(data.Entries, 3)

	switch {
	case urgentCount > 0:
		risk = "HIGH — urgent-level symptoms were reported; prompt clinical review is recommended."
	case monitorCount > 1:
		risk = "MODERATE — multiple monitor-level symptoms were reported over the period."
	case monitorCount == 1:
		risk = "MODERATE — a single monitor-level symptom was reported."
	default:
		risk = "LOW — no warning signs in the reported period."
	}

	tier := strings.SplitN(risk, " ", 2)[0]
	recs = fallbackRecommendations[tier]
	if len(categories) > 0 {
		recs += fmt.Sprintf(" Focus area: %s.", categories[0])
	}

	if len(data.Entries) == 0 {
		summary = "No symptoms were reported during this period."
		timeline = "No symptoms were reported during this period."
		return summary, timeline, risk, recs
	}

	summary = fmt.Sprintf("Patient submitted %d symptom report(s): %d urgent, %d monitor, %d safe.",
		len(data.Entries), urgentCount, monitorCount, safeCount)
	if len(categories) > 0 {
		summary += fmt.Sprintf(" Most frequent symptom categories: %s.", strings.Join(categories, ", "))
	}

	var lines []string
	limit := len(data.Entries)
	if limit > fallbackEntryLimit {
		limit = fallbackEntryLimit
	}
	for _, e := range data.Entries[:limit] {
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", e.CreatedAt.Format("2006-01-02"), e.Text, e.TriageLevel))
	}
	timeline = strings.Join(lines, "\n")

	return summary, timeline, risk, recs
}

// topCategories returns up to max recognized categories ordered by
// descending frequency, ties broken by first occurrence in the scan.
func topCategories(entries []patient.SymptomEntry, max int) []string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0

	for _, e := range entries {
		text := strings.ToLower(e.Text)
		for _, cat := range symptomVocabulary {
			for _, term := range cat.terms {
				if strings.Contains(text, term) {
					counts[cat.name]++
					if _, seen := firstSeen[cat.name]; !seen {
						firstSeen[cat.name] = order
						order++
					}
					break
				}
			}
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return firstSeen[names[i]] < firstSeen[names[j]]
	})

	if len(names) > max {
		names = names[:max]
	}
	return names
}
