package triage

import "strings"

// Level ranks the urgency of a symptom report.
type Level string

const (
	LevelSafe    Level = "safe"
	LevelMonitor Level = "monitor"
	LevelUrgent  Level = "urgent"
)

// Color returns the display color locked to the level.
func (l Level) Color() string {
	switch l {
	case LevelUrgent:
		return "red"
	case LevelMonitor:
		return "yellow"
	default:
		return "green"
	}
}

// Result is the classification outcome. Level and Color are always in
// lock-step; Title, Description and Advice are localized to the requested
// language, falling back to English.
type Result struct {
	Level       Level  `json:"level"`
	Color       string `json:"color"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Advice      string `json:"advice"`
}

// Patients mix languages in practice, so every keyword variant is checked
// against the input regardless of the declared language. Matching is
// case-insensitive substring containment; diacritics must match as written.
var urgentKeywords = []string{
	// English
	"chest pain",
	"difficulty breathing",
	"shortness of breath",
	"can't breathe",
	"cannot breathe",
	"severe bleeding",
	"bleeding",
	"unconscious",
	"fainted",
	"seizure",
	"stroke",
	"heart attack",
	"choking",
	"overdose",
	"suicid",
	// French
	"douleur thoracique",
	"douleur à la poitrine",
	"difficulté à respirer",
	"essoufflement",
	"saignement",
	"inconscient",
	"évanoui",
	"convulsion",
	"crise cardiaque",
	"étouffe",
	// Arabic
	"ألم في الصدر",
	"ألم الصدر",
	"صعوبة في التنفس",
	"ضيق التنفس",
	"نزيف",
	"فقدان الوعي",
	"إغماء",
	"تشنج",
	"سكتة",
	"نوبة قلبية",
	"اختناق",
}

var monitorKeywords = []string{
	// English
	"headache",
	"migraine",
	"pain",
	"fever",
	"dizzy",
	"dizziness",
	"nausea",
	"vomit",
	"fatigue",
	"exhausted",
	"cough",
	"rash",
	"swelling",
	"numb",
	"sore throat",
	"diarrhea",
	"insomnia",
	"anxiety",
	// French
	"mal de tête",
	"douleur",
	"fièvre",
	"vertige",
	"nausée",
	"vomissement",
	"toux",
	"éruption",
	"gonflement",
	"engourdissement",
	"mal de gorge",
	"diarrhée",
	"insomnie",
	"anxiété",
	// Arabic
	"صداع",
	"ألم",
	"حمى",
	"دوخة",
	"دوار",
	"غثيان",
	"قيء",
	"تعب",
	"إرهاق",
	"سعال",
	"طفح",
	"تورم",
	"خدر",
	"التهاب الحلق",
	"إسهال",
	"أرق",
	"قلق",
}

// Classify maps a free-text symptom description to a triage result. Urgent
// keywords take precedence over monitor keywords; text matching neither is
// safe. The function is pure and performs no I/O. Minimum-length validation
// is the caller's concern: empty text classifies as safe.
func Classify(text, language string) Result {
	normalized := strings.ToLower(text)

	level := LevelSafe
	switch {
	case containsAny(normalized, urgentKeywords):
		level = LevelUrgent
	case containsAny(normalized, monitorKeywords):
		level = LevelMonitor
	}

	msg := messageFor(level, language)
	return Result{
		Level:       level,
		Color:       level.Color(),
		Title:       msg.Title,
		Description: msg.Description,
		Advice:      msg.Advice,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
