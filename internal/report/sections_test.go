package report

import "testing"

func TestParseSections(t *testing.T) {
	body := `SUMMARY: Patient is recovering well.

TIMELINE ANALYSIS
Symptoms started two weeks ago and improved gradually.

risk assessment: Low overall risk.

RECOMMENDATIONS
- rest
- hydration`

	sections := parseSections(body, reportHeaders)

	tests := []struct {
		header string
		want   string
	}{
		{headerSummary, "Patient is recovering well."},
		{headerTimeline, "Symptoms started two weeks ago and improved gradually."},
		{headerRisk, "Low overall risk."},
		{headerRecommendations, "- rest\n- hydration"},
	}
	for _, tt := range tests {
		if got := sections[tt.header]; got != tt.want {
			t.Errorf("section %s = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestParseSections_MissingHeader(t *testing.T) {
	body := "SUMMARY: fine.\nRECOMMENDATIONS: rest."

	sections := parseSections(body, reportHeaders)

	if _, ok := sections[headerTimeline]; ok {
		t.Error("missing header should be absent from the result")
	}
	if _, ok := sections[headerRisk]; ok {
		t.Error("missing header should be absent from the result")
	}
	if sections[headerSummary] != "fine." {
		t.Errorf("summary = %q", sections[headerSummary])
	}
	if sections[headerRecommendations] != "rest." {
		t.Errorf("recommendations = %q", sections[headerRecommendations])
	}
}

func TestParseSections_Empty(t *testing.T) {
	if got := parseSections("", reportHeaders); len(got) != 0 {
		t.Errorf("empty body should produce no sections, got %v", got)
	}
}
