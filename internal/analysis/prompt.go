package analysis

import (
	"fmt"
	"strings"

	"github.com/healthlens/backend/pkg/model"
)

// DefaultLanguage is used when the caller supplies no or an unknown language code
const DefaultLanguage = "en"

// SupportedLanguages maps supported language codes to their display names
var SupportedLanguages = map[string]string{
	"en": "English",
	"es": "Español",
	"fr": "Français",
	"de": "Deutsch",
	"it": "Italiano",
	"pt": "Português",
	"hi": "हिन्दी",
	"zh": "中文",
	"ja": "日本語",
	"ar": "العربية",
}

// languageInstructions holds the per-language response instruction.
// English needs none; unknown codes are treated as English.
var languageInstructions = map[string]string{
	"es": "Responde en español de manera clara y concisa.",
	"fr": "Répondez en français de manière claire et concise.",
	"de": "Antworten Sie auf Deutsch klar und prägnant.",
	"it": "Rispondi in italiano in modo chiaro e conciso.",
	"pt": "Responda em português de forma clara e concisa.",
	"hi": "हिंदी में स्पष्ट और संक्षिप्त उत्तर दें।",
	"zh": "请用中文简洁明了地回答。",
	"ja": "日本語で明確かつ簡潔に答えてください。",
	"ar": "أجب باللغة العربية بوضوح وإيجاز.",
}

// LanguageInstruction returns the response-language instruction for code.
// English and unknown codes produce an empty instruction.
func LanguageInstruction(code string) string {
	return languageInstructions[code]
}

const genericGuidelines = "Provide comprehensive health analysis with evidence-based recommendations."

var categoryGuidelines = map[model.Category]string{
	model.CategoryPosture: `For posture analysis:
- Assess spinal alignment, shoulder position, head posture
- Reference ergonomic standards and physical therapy guidelines
- Include specific exercises from established rehabilitation protocols
- Consider workplace ergonomics and daily activity modifications
- Reference American Physical Therapy Association guidelines`,
	model.CategorySkin: `For skin analysis:
- Evaluate texture, pigmentation, lesions, and overall skin health
- Reference dermatological classification systems
- Include skincare routines based on dermatological evidence
- Consider environmental factors and lifestyle impacts
- Reference American Academy of Dermatology guidelines`,
	model.CategoryEye: `For eye health analysis:
- Assess visual indicators, eye strain signs, and general eye health
- Reference ophthalmological standards and vision care guidelines
- Include eye exercises and vision protection strategies
- Consider digital eye strain and environmental factors
- Reference American Optometric Association recommendations`,
	model.CategoryMental: `For mental health analysis:
- Evaluate stress indicators, mood patterns, and psychological well-being
- Reference established psychological assessment frameworks
- Include evidence-based stress management and mental wellness techniques
- Consider lifestyle factors affecting mental health
- Reference WHO mental health guidelines and clinical psychology practices`,
}

// CategoryGuidelines returns the domain assessment guidelines for category.
// An unsupported category yields the generic guideline text, never an error.
func CategoryGuidelines(category model.Category) string {
	if g, ok := categoryGuidelines[category]; ok {
		return g
	}
	return genericGuidelines
}

const genericChatContext = "You are a helpful AI health assistant. Provide supportive, evidence-based health guidance."

var chatContexts = map[model.Category]string{
	model.CategoryPosture: `You are a specialized AI assistant focused on spine and posture health. You have expertise in:
- Biomechanics and spinal alignment
- Ergonomic assessments and workplace setup
- Postural correction exercises and techniques
- Physical therapy principles for posture improvement
- Prevention of musculoskeletal disorders

When analyzing images, look for:
- Head and neck positioning
- Shoulder alignment and symmetry
- Spinal curvature and alignment
- Hip and pelvic positioning
- Overall body mechanics

Provide specific, actionable advice for posture improvement, ergonomic modifications, and exercises.`,
	model.CategorySkin: `You are a specialized AI assistant focused on dermatological health and skincare. You have expertise in:
- Skin condition identification and assessment
- Skincare routines and product recommendations
- Environmental factors affecting skin health
- Preventive dermatology and skin protection
- Common skin concerns and their management

When analyzing images, look for:
- Skin texture, tone, and pigmentation
- Signs of irritation, inflammation, or lesions
- Hydration levels and skin barrier health
- Age-related changes and sun damage
- Overall skin health indicators

Provide evidence-based skincare advice, lifestyle recommendations, and when to seek professional dermatological care.`,
	model.CategoryEye: `You are a specialized AI assistant focused on eye health and vision care. You have expertise in:
- Vision assessment and eye health evaluation
- Digital eye strain and computer vision syndrome
- Eye exercises and vision therapy techniques
- Preventive eye care and protection strategies
- Common eye conditions and their management

When analyzing images, look for:
- Eye alignment and symmetry
- Signs of strain, fatigue, or irritation
- Pupil response and eye movement
- Eyelid position and eye surface health
- Overall ocular health indicators

Provide practical advice for eye health maintenance, vision protection, and when to seek professional eye care.`,
	model.CategoryMental: `You are a specialized AI assistant focused on mental health and psychological well-being. You have expertise in:
- Stress management and coping strategies
- Mental wellness techniques and practices
- Mood assessment and emotional regulation
- Lifestyle factors affecting mental health
- Preventive mental health and resilience building

Focus on:
- Active listening and empathetic responses
- Evidence-based mental wellness strategies
- Stress reduction techniques and mindfulness
- Lifestyle modifications for mental health
- Building healthy coping mechanisms

Provide supportive, non-judgmental guidance while emphasizing the importance of professional mental health care when needed.`,
}

// ChatContext returns the assistant persona block for category chat sessions.
// An unsupported category yields a generic assistant persona.
func ChatContext(category model.Category) string {
	if c, ok := chatContexts[category]; ok {
		return c
	}
	return genericChatContext
}

var analysisInputs = map[model.Category]string{
	model.CategoryPosture: `Analyze posture data for health assessment. Consider the following factors:
- Head and neck alignment
- Shoulder positioning and balance
- Spinal curvature and alignment
- Overall postural stability
- Risk factors for musculoskeletal issues

Provide specific recommendations for posture improvement and preventive care.`,
	model.CategorySkin: `Analyze skin health data for dermatological assessment. Consider:
- Skin texture, color, and pigmentation
- Presence of lesions, moles, or abnormalities
- Signs of aging, sun damage, or environmental effects
- Acne, inflammation, or other skin conditions
- Overall skin health indicators

Provide specific skincare recommendations and monitoring advice.`,
	model.CategoryEye: `Analyze eye health data for comprehensive assessment. Consider:
- Visual acuity and clarity indicators
- Eye strain and fatigue symptoms
- Tear film stability and dry eye signs
- Digital eye strain from screen exposure
- Overall eye health and comfort

Provide specific eye care recommendations and preventive measures.`,
	model.CategoryMental: `Analyze mental health indicators for wellness assessment. Consider:
- Stress levels and anxiety markers
- Mood stability and emotional regulation
- Sleep quality and patterns
- Coping mechanisms and resilience
- Overall mental wellness indicators

Provide supportive recommendations for mental health maintenance and improvement.
Important: This is for wellness support only, not clinical diagnosis.`,
}

// AnalysisInput composes the category assessment request, appending optional
// caller-supplied context (already serialized) when present.
func AnalysisInput(category model.Category, additionalContext string) string {
	input, ok := analysisInputs[category]
	if !ok {
		input = fmt.Sprintf("Analyze %s data for health assessment and provide specific recommendations.", category)
	}
	if additionalContext != "" {
		input += fmt.Sprintf("\nAdditional context: %s", additionalContext)
	}
	return input
}

// analysisSchema instructs the model to answer with the canonical result shape
// only, with tight per-field verbosity caps.
const analysisSchema = `{
  "condition": "Brief primary finding",
  "confidence": "Percentage (e.g., '85%')",
  "severity": "low|medium|high",
  "detailedDescription": "2-3 sentence summary",
  "specificRemedies": [
    {
      "remedy": "Remedy name",
      "instructions": "Brief steps",
      "frequency": "How often",
      "duration": "Timeline"
    }
  ],
  "recommendations": [
    {
      "action": "Specific action",
      "priority": "high|medium|low",
      "timeframe": "When"
    }
  ],
  "warningSignsToWatch": ["Critical symptoms requiring attention"]
}`

// BuildAnalysisPrompt composes the single-shot analysis prompt: language
// instruction, category role and guidelines, the strict JSON output schema,
// and the assessment input. Never fails for any category or language.
func BuildAnalysisPrompt(category model.Category, input, language string) string {
	var b strings.Builder

	if instruction := LanguageInstruction(language); instruction != "" {
		b.WriteString(instruction)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "You are a medical AI assistant specializing in %s health. Provide a CONCISE analysis in JSON format:\n\n", category)
	b.WriteString(analysisSchema)
	b.WriteString("\n\n")
	b.WriteString(CategoryGuidelines(category))
	b.WriteString("\n\nAnalysis: ")
	b.WriteString(input)
	b.WriteString(`

IMPORTANT:
- Keep responses SHORT and ACTIONABLE
- Maximum 2-3 sentences per field
- Focus on most important information only
- Maintain medical accuracy and safety

Respond with valid JSON only.`)

	return b.String()
}

// historyWindow is how many trailing chat turns are included in the prompt
const historyWindow = 3

// BuildChatPrompt composes the multi-turn chat prompt: category persona,
// language instruction, the last three history turns as "sender: content"
// lines, and the current user message with reply constraints.
func BuildChatPrompt(category model.Category, message string, history []model.ChatMessage, language string) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Sender, msg.Content))
	}

	var b strings.Builder
	b.WriteString(ChatContext(category))
	b.WriteString("\n\n")

	if instruction := LanguageInstruction(language); instruction != "" {
		b.WriteString(instruction)
		b.WriteString("\n\n")
	}

	b.WriteString("Previous conversation (last 3 messages):\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nUser: ")
	b.WriteString(message)
	b.WriteString(`

Provide a helpful, CONCISE response (2-3 sentences max) that:
1. Directly addresses the user's question
2. Offers specific, actionable advice
3. Maintains a supportive tone
4. Suggests next steps if needed

Keep it brief and focused on the most important information.`)

	return b.String()
}
