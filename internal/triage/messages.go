package triage

// levelMessage carries the patient-facing text for one (level, language)
// combination. Advice strings are domain content reviewed separately from
// the classification logic.
type levelMessage struct {
	Title       string
	Description string
	Advice      string
}

var levelMessages = map[Level]map[string]levelMessage{
	LevelUrgent: {
		"en": {
			Title:       "Urgent attention recommended",
			Description: "Your description mentions symptoms that can indicate a serious condition.",
			Advice:      "Please seek medical care immediately or call your local emergency number.",
		},
		"fr": {
			Title:       "Attention urgente recommandée",
			Description: "Votre description mentionne des symptômes pouvant indiquer un état grave.",
			Advice:      "Veuillez consulter immédiatement un médecin ou appeler le numéro d'urgence local.",
		},
		"ar": {
			Title:       "يُنصح بعناية عاجلة",
			Description: "يذكر وصفك أعراضاً قد تشير إلى حالة خطيرة.",
			Advice:      "يرجى طلب الرعاية الطبية فوراً أو الاتصال برقم الطوارئ المحلي.",
		},
	},
	LevelMonitor: {
		"en": {
			Title:       "Keep monitoring",
			Description: "Your symptoms are worth keeping an eye on.",
			Advice:      "Track how you feel over the next days and consult a doctor if things worsen.",
		},
		"fr": {
			Title:       "À surveiller",
			Description: "Vos symptômes méritent d'être suivis.",
			Advice:      "Suivez votre état dans les prochains jours et consultez un médecin si cela s'aggrave.",
		},
		"ar": {
			Title:       "تحت المراقبة",
			Description: "أعراضك تستحق المتابعة.",
			Advice:      "راقب حالتك خلال الأيام القادمة واستشر طبيباً إذا ساءت الأعراض.",
		},
	},
	LevelSafe: {
		"en": {
			Title:       "No warning signs detected",
			Description: "Your description does not mention warning signs.",
			Advice:      "Keep healthy habits and reach out to a doctor if new symptoms appear.",
		},
		"fr": {
			Title:       "Aucun signe d'alerte détecté",
			Description: "Votre description ne mentionne pas de signes d'alerte.",
			Advice:      "Gardez de bonnes habitudes et consultez un médecin si de nouveaux symptômes apparaissent.",
		},
		"ar": {
			Title:       "لا توجد علامات تحذيرية",
			Description: "وصفك لا يذكر علامات تحذيرية.",
			Advice:      "حافظ على عاداتك الصحية وراجع طبيباً إذا ظهرت أعراض جديدة.",
		},
	},
}

func messageFor(level Level, language string) levelMessage {
	byLang := levelMessages[level]
	if msg, ok := byLang[language]; ok {
		return msg
	}
	return byLang["en"]
}
