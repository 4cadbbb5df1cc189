package report

import "strings"

// Section headers the remote model is asked to emit, in order.
const (
	headerSummary         = "SUMMARY"
	headerTimeline        = "TIMELINE ANALYSIS"
	headerRisk            = "RISK ASSESSMENT"
	headerRecommendations = "RECOMMENDATIONS"
)

var reportHeaders = []string{headerSummary, headerTimeline, headerRisk, headerRecommendations}

type sectionMark struct {
	name      string
	headerAt  int
	contentAt int
}

// parseSections slices body into the text between successive headers.
// Headers are matched case-insensitively, each searched after the previous
// one. A header that is not found is simply absent from the result; the
// caller decides the default.
func parseSections(body string, headers []string) map[string]string {
	lower := strings.ToLower(body)

	var marks []sectionMark
	pos := 0
	for _, h := range headers {
		idx := strings.Index(lower[pos:], strings.ToLower(h))
		if idx < 0 {
			continue
		}
		headerAt := pos + idx
		contentAt := headerAt + len(h)
		marks = append(marks, sectionMark{name: h, headerAt: headerAt, contentAt: contentAt})
		pos = contentAt
	}

	sections := make(map[string]string, len(marks))
	for i, m := range marks {
		end := len(body)
		if i+1 < len(marks) {
			end = marks[i+1].headerAt
		}
		content := strings.TrimLeft(body[m.contentAt:end], ":#* \t")
		sections[m.name] = strings.TrimSpace(content)
	}
	return sections
}
