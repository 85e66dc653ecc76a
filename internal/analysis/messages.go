package analysis

import "github.com/healthlens/backend/pkg/model"

// Chat failures must never surface bare error codes: the chat surface handles
// sensitive topics, so every failure turns into a supportive, localized
// message. Translations exist for en/es/fr/de/hi; other supported languages
// fall back to English.
var failureMessages = map[model.Category]map[string]string{
	model.CategoryPosture: {
		"en": "I'm sorry, I encountered an error analyzing your posture. Please try again or consult with a healthcare professional.",
		"es": "Lo siento, encontré un error al analizar tu postura. Inténtalo de nuevo o consulta con un profesional de la salud.",
		"fr": "Je suis désolé, j'ai rencontré une erreur lors de l'analyse de votre posture. Veuillez réessayer ou consulter un professionnel de la santé.",
		"de": "Es tut mir leid, ich bin auf einen Fehler bei der Analyse Ihrer Haltung gestoßen. Bitte versuchen Sie es erneut oder konsultieren Sie einen Arzt.",
		"hi": "मुझे खेद है, मुझे आपकी मुद्रा का विश्लेषण करने में त्रुटि का सामना करना पड़ा। कृपया पुनः प्रयास करें या स्वास्थ्य पेशेवर से सलाह लें।",
	},
	model.CategorySkin: {
		"en": "I'm sorry, I encountered an error analyzing your skin. Please try again or consult with a dermatologist.",
		"es": "Lo siento, encontré un error al analizar tu piel. Inténtalo de nuevo o consulta con un dermatólogo.",
		"fr": "Je suis désolé, j'ai rencontré une erreur lors de l'analyse de votre peau. Veuillez réessayer ou consulter un dermatologue.",
		"de": "Es tut mir leid, ich bin auf einen Fehler bei der Analyse Ihrer Haut gestoßen. Bitte versuchen Sie es erneut oder konsultieren Sie einen Dermatologen.",
		"hi": "मुझे खेद है, मुझे आपकी त्वचा का विश्लेषण करने में त्रुटि का सामना करना पड़ा। कृपया पुनः प्रयास करें या त्वचा विशेषज्ञ से सलाह लें।",
	},
	model.CategoryEye: {
		"en": "I'm sorry, I encountered an error analyzing your eye health. Please try again or consult with an eye care professional.",
		"es": "Lo siento, encontré un error al analizar la salud de tus ojos. Inténtalo de nuevo o consulta con un profesional del cuidado ocular.",
		"fr": "Je suis désolé, j'ai rencontré une erreur lors de l'analyse de la santé de vos yeux. Veuillez réessayer ou consulter un professionnel des soins oculaires.",
		"de": "Es tut mir leid, ich bin auf einen Fehler bei der Analyse Ihrer Augengesundheit gestoßen. Bitte versuchen Sie es erneut oder konsultieren Sie einen Augenarzt.",
		"hi": "मुझे खेद है, मुझे आपकी आंखों के स्वास्थ्य का विश्लेषण करने में त्रुटि का सामना करना पड़ा। कृपया पुनः प्रयास करें या नेत्र देखभाल पेशेवर से सलाह लें।",
	},
	model.CategoryMental: {
		"en": "I'm here to support you. If you're experiencing a mental health crisis, please contact a mental health professional or crisis hotline immediately. For general wellness, I'm happy to help with stress management and coping strategies.",
		"es": "Estoy aquí para apoyarte. Si estás experimentando una crisis de salud mental, por favor contacta a un profesional de salud mental o línea de crisis inmediatamente. Para bienestar general, estoy feliz de ayudar con manejo del estrés y estrategias de afrontamiento.",
		"fr": "Je suis là pour vous soutenir. Si vous traversez une crise de santé mentale, veuillez contacter immédiatement un professionnel de la santé mentale ou une ligne de crise. Pour le bien-être général, je suis heureux d'aider avec la gestion du stress et les stratégies d'adaptation.",
		"de": "Ich bin hier, um Sie zu unterstützen. Wenn Sie eine psychische Krise erleben, wenden Sie sich bitte sofort an einen Fachmann für psychische Gesundheit oder eine Krisenhotline. Für allgemeines Wohlbefinden helfe ich gerne bei Stressmanagement und Bewältigungsstrategien.",
		"hi": "मैं आपका समर्थन करने के लिए यहाँ हूँ। यदि आप मानसिक स्वास्थ्य संकट का सामना कर रहे हैं, तो कृपया तुरंत मानसिक स्वास्थ्य पेशेवर या संकट हॉटलाइन से संपर्क करें। सामान्य कल्याण के लिए, मैं तनाव प्रबंधन और मुकाबला रणनीतियों में मदद करने में खुश हूँ।",
	},
}

var genericFailureMessages = map[string]string{
	"en": "I'm having trouble processing your request. Please try again or consult a healthcare professional.",
	"es": "Tengo problemas para procesar tu solicitud. Inténtalo de nuevo o consulta a un profesional de la salud.",
	"fr": "J'ai des difficultés à traiter votre demande. Veuillez réessayer ou consulter un professionnel de la santé.",
	"de": "Ich habe Probleme bei der Bearbeitung Ihrer Anfrage. Bitte versuchen Sie es erneut oder konsultieren Sie einen Arzt.",
	"hi": "मुझे आपके अनुरोध को संसाधित करने में समस्या हो रही है। कृपया पुनः प्रयास करें या स्वास्थ्य पेशेवर से सलाह लें।",
}

// FailureMessage returns the localized supportive message shown when the chat
// pipeline fails for category in language.
func FailureMessage(category model.Category, language string) string {
	messages, ok := failureMessages[category]
	if !ok {
		messages = genericFailureMessages
	}
	if msg, ok := messages[language]; ok {
		return msg
	}
	return messages["en"]
}
