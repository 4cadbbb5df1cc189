package assistant

import (
	"fmt"
	"strings"

	"triage-assistant/internal/patient"
	"triage-assistant/internal/triage"
)

// localized is a short reply template in the supported languages.
type localized struct {
	en, fr, ar string
}

func (l localized) in(lang string) string {
	switch lang {
	case "fr":
		return l.fr
	case "ar":
		return l.ar
	default:
		return l.en
	}
}

// intent is one entry of the offline fallback cascade. Intents are
// evaluated in declaration order and the first match wins.
type intent struct {
	name  string
	match func(msg string) bool
	reply func(lang string, pctx patient.Context) string
}

var intents = []intent{
	{
		name:  "greeting",
		match: hasGreetingPrefix,
		reply: func(lang string, pctx patient.Context) string {
			return localized{
				en: "Hello! How are you feeling today? I'm here to help with your health questions.",
				fr: "Bonjour ! Comment vous sentez-vous aujourd'hui ? Je suis là pour répondre à vos questions de santé.",
				ar: "مرحباً! كيف تشعر اليوم؟ أنا هنا لمساعدتك في أسئلتك الصحية.",
			}.in(lang)
		},
	},
	{
		name:  "pain",
		match: containsAnyOf("pain", "hurt", "ache", "douleur", "mal de", "ألم", "وجع"),
		reply: func(lang string, pctx patient.Context) string {
			base := localized{
				en: "I'm sorry you're dealing with pain. Rest, hydration and avoiding strain often help with mild pain; if it is intense, sudden or persistent, please see a doctor.",
				fr: "Je suis désolé que vous ayez mal. Le repos, l'hydratation et éviter les efforts aident souvent pour une douleur légère ; si elle est intense, soudaine ou persistante, consultez un médecin.",
				ar: "يؤسفني أنك تعاني من الألم. الراحة وشرب الماء وتجنب الإجهاد تساعد غالباً مع الألم الخفيف؛ إذا كان شديداً أو مفاجئاً أو مستمراً فيرجى مراجعة طبيب.",
			}.in(lang)
			return base + latestEntryNote(lang, pctx)
		},
	},
	{
		name:  "medication",
		match: containsAnyOf("medication", "medicine", "drug", "pill", "médicament", "دواء"),
		reply: func(lang string, pctx patient.Context) string {
			base := localized{
				en: "I can't prescribe medication, but I can share general information. Always follow dosage instructions and ask a pharmacist about interactions.",
				fr: "Je ne peux pas prescrire de médicament, mais je peux donner des informations générales. Respectez toujours la posologie et demandez au pharmacien pour les interactions.",
				ar: "لا يمكنني وصف دواء، لكن يمكنني مشاركة معلومات عامة. التزم دائماً بتعليمات الجرعة واسأل الصيدلي عن التداخلات الدوائية.",
			}.in(lang)
			return base + conditionsNote(lang, pctx)
		},
	},
	{
		name:  "worsening",
		match: containsAnyOf("worse", "worsening", "getting bad", "aggrav", "empire", "أسوأ", "يزداد سوء"),
		reply: func(lang string, pctx patient.Context) string {
			base := localized{
				en: "Symptoms that keep getting worse deserve attention. Please arrange to see a doctor soon, and seek urgent care if they escalate quickly.",
				fr: "Des symptômes qui s'aggravent méritent de l'attention. Prenez rendez-vous avec un médecin rapidement, et consultez en urgence si cela empire vite.",
				ar: "الأعراض التي تزداد سوءاً تستحق الانتباه. يرجى ترتيب زيارة طبيب قريباً، وطلب رعاية عاجلة إذا تفاقمت بسرعة.",
			}.in(lang)
			return base + latestEntryNote(lang, pctx)
		},
	},
	{
		name:  "care-seeking",
		match: containsAnyOf("should i see", "doctor", "hospital", "clinic", "emergency", "médecin", "hôpital", "urgence", "طبيب", "مستشفى"),
		reply: func(lang string, pctx patient.Context) string {
			base := localized{
				en: "If your symptoms are severe, sudden, or worsening quickly, seek care right away. For mild ongoing symptoms, a routine appointment with your doctor is usually enough.",
				fr: "Si vos symptômes sont sévères, soudains ou s'aggravent rapidement, consultez immédiatement. Pour des symptômes légers, un rendez-vous de routine avec votre médecin suffit généralement.",
				ar: "إذا كانت أعراضك شديدة أو مفاجئة أو تزداد سوءاً بسرعة، فاطلب الرعاية فوراً. أما الأعراض الخفيفة المستمرة فيكفي عادةً موعد اعتيادي مع طبيبك.",
			}.in(lang)
			return base + latestEntryNote(lang, pctx)
		},
	},
	{
		name:  "stress",
		match: containsAnyOf("stress", "anxious", "anxiety", "worried", "anxieux", "stressé", "inquiet", "قلق", "توتر"),
		reply: func(lang string, pctx patient.Context) string {
			return localized{
				en: "Stress and anxiety can affect how you feel physically. Slow breathing, regular sleep and light exercise help many people; if it interferes with daily life, a doctor or counsellor can support you.",
				fr: "Le stress et l'anxiété peuvent avoir des effets physiques. La respiration lente, un sommeil régulier et un exercice léger aident beaucoup de personnes ; si cela perturbe votre quotidien, un médecin ou un psychologue peut vous aider.",
				ar: "التوتر والقلق قد يؤثران على شعورك الجسدي. التنفس البطيء والنوم المنتظم والتمارين الخفيفة تساعد كثيرين؛ إذا أثّر ذلك على حياتك اليومية فيمكن لطبيب أو مختص دعمك.",
			}.in(lang)
		},
	},
	{
		name:  "gratitude",
		match: containsAnyOf("thank", "merci", "شكرا", "شكراً"),
		reply: func(lang string, pctx patient.Context) string {
			return localized{
				en: "You're welcome! Take care of yourself, and come back anytime you have a question.",
				fr: "Avec plaisir ! Prenez soin de vous et revenez quand vous avez une question.",
				ar: "على الرحب والسعة! اعتنِ بنفسك وعد في أي وقت لديك سؤال.",
			}.in(lang)
		},
	},
	{
		name:  "capabilities",
		match: containsAnyOf("what can you do", "how can you help", "que peux-tu faire", "que pouvez-vous faire", "ماذا يمكنك"),
		reply: func(lang string, pctx patient.Context) string {
			return localized{
				en: "I can help you record and track symptoms, explain general information about medications and treatments, and suggest when it makes sense to see a doctor.",
				fr: "Je peux vous aider à enregistrer et suivre vos symptômes, expliquer des informations générales sur les médicaments et traitements, et indiquer quand il est raisonnable de consulter un médecin.",
				ar: "يمكنني مساعدتك في تسجيل الأعراض ومتابعتها، وشرح معلومات عامة عن الأدوية والعلاجات، واقتراح متى يكون من المناسب مراجعة طبيب.",
			}.in(lang)
		},
	},
}

// patternReply scans the message against the ordered intent list. It
// returns an empty string when no intent matches.
func patternReply(message string, pctx patient.Context) string {
	msg := strings.ToLower(message)
	for _, it := range intents {
		if it.match(msg) {
			return it.reply(pctx.Language, pctx)
		}
	}
	return ""
}

// genericReply is the last stage of the cascade and always produces text.
func genericReply(pctx patient.Context) string {
	base := localized{
		en: "Thank you for your message. I can answer general questions about medications, treatments, or prevention — what would you like to know?",
		fr: "Merci pour votre message. Je peux répondre à des questions générales sur les médicaments, les traitements ou la prévention — que souhaitez-vous savoir ?",
		ar: "شكراً لرسالتك. يمكنني الإجابة عن أسئلة عامة حول الأدوية أو العلاجات أو الوقاية — ماذا تود أن تعرف؟",
	}.in(pctx.Language)
	return base + latestEntryNote(pctx.Language, pctx)
}

func hasGreetingPrefix(msg string) bool {
	trimmed := strings.TrimSpace(msg)
	for _, g := range []string{"hello", "hi", "hey", "good morning", "good evening", "bonjour", "salut", "مرحبا", "مرحباً", "السلام عليكم", "أهلا"} {
		if trimmed == g || strings.HasPrefix(trimmed, g+" ") || strings.HasPrefix(trimmed, g+",") || strings.HasPrefix(trimmed, g+"!") {
			return true
		}
	}
	return false
}

func containsAnyOf(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, kw := range keywords {
			if strings.Contains(msg, kw) {
				return true
			}
		}
		return false
	}
}

func latestEntryNote(lang string, pctx patient.Context) string {
	entry := pctx.LatestEntry()
	if entry == nil {
		return ""
	}
	if entry.TriageLevel == triage.LevelUrgent {
		return localized{
			en: fmt.Sprintf(" Your most recent report (%q) was flagged as urgent — please do not wait to get care.", entry.Text),
			fr: fmt.Sprintf(" Votre dernier signalement (« %s ») a été marqué urgent — ne tardez pas à consulter.", entry.Text),
			ar: fmt.Sprintf(" آخر بلاغ لك («%s») صُنِّف عاجلاً — يرجى عدم تأخير طلب الرعاية.", entry.Text),
		}.in(lang)
	}
	return localized{
		en: fmt.Sprintf(" I see your most recent report was %q (%s level).", entry.Text, entry.TriageLevel),
		fr: fmt.Sprintf(" Je vois que votre dernier signalement était « %s » (niveau %s).", entry.Text, entry.TriageLevel),
		ar: fmt.Sprintf(" أرى أن آخر بلاغ لك كان «%s» (مستوى %s).", entry.Text, entry.TriageLevel),
	}.in(lang)
}

func conditionsNote(lang string, pctx patient.Context) string {
	if pctx.Profile == nil || len(pctx.Profile.Conditions) == 0 {
		return ""
	}
	conditions := strings.Join(pctx.Profile.Conditions, ", ")
	return localized{
		en: fmt.Sprintf(" Since your profile lists %s, check with your doctor before starting anything new.", conditions),
		fr: fmt.Sprintf(" Comme votre profil mentionne %s, vérifiez avec votre médecin avant de commencer un nouveau traitement.", conditions),
		ar: fmt.Sprintf(" بما أن ملفك يذكر %s، راجع طبيبك قبل البدء بأي علاج جديد.", conditions),
	}.in(lang)
}
