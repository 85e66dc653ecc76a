package model

// Category identifies one of the four supported health domains.
type Category string

const (
	CategoryPosture Category = "posture"
	CategorySkin    Category = "skin"
	CategoryEye     Category = "eye"
	CategoryMental  Category = "mental"
)

// Categories returns all supported categories in a stable order.
func Categories() []Category {
	return []Category{CategoryPosture, CategorySkin, CategoryEye, CategoryMental}
}

// IsValid reports whether c is one of the supported categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPosture, CategorySkin, CategoryEye, CategoryMental:
		return true
	}
	return false
}

// Severity levels used in analysis results
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Remedy is a single remedy entry in an analysis result
type Remedy struct {
	Remedy       string `json:"remedy"`
	Instructions string `json:"instructions"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
}

// Recommendation is a single recommended action in an analysis result
type Recommendation struct {
	Action    string `json:"action"`
	Priority  string `json:"priority"` // high, medium, low
	Timeframe string `json:"timeframe"`
}

// AnalysisResult is the canonical structured output of an analysis run.
// Every completed pipeline run produces this shape, whether it came from
// direct structured parsing of the model output or from fallback synthesis.
type AnalysisResult struct {
	Condition           string           `json:"condition"`
	Confidence          string           `json:"confidence"` // percentage string, e.g. "85%"
	Severity            string           `json:"severity"`   // low, medium, high
	DetailedDescription string           `json:"detailedDescription"`
	SpecificRemedies    []Remedy         `json:"specificRemedies"`
	Recommendations     []Recommendation `json:"recommendations"`
	WarningSignsToWatch []string         `json:"warningSignsToWatch"`
}

// ChatMessage is a single prior turn in a chat conversation
type ChatMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// Chat result types
const (
	ChatTypeText     = "text"
	ChatTypeAnalysis = "analysis"
)

// ChatResult is the response shape of the chat pipeline
type ChatResult struct {
	Response string `json:"response"`
	Type     string `json:"type"` // text or analysis
}

// FileInfo describes the uploaded file attached to a health record
type FileInfo struct {
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}

// HealthRecord is a completed analysis persisted in the record store.
// Records are append-only; they are never mutated after creation.
type HealthRecord struct {
	ID        string         `json:"id"` // {category}_{unix millis}
	UserID    string         `json:"userId"`
	Category  Category       `json:"category"`
	Analysis  AnalysisResult `json:"analysis"`
	Timestamp string         `json:"timestamp"` // RFC 3339
	FileInfo  *FileInfo      `json:"fileInfo,omitempty"`
}

// UserProfile represents a user in the persisted store
type UserProfile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// Summary holds rolling per-category and overall scores
type Summary struct {
	LastUpdated    string             `json:"lastUpdated"`
	OverallScore   float64            `json:"overallScore"`
	CategoryScores map[string]float64 `json:"categoryScores"`
}

// UserData is the whole persisted document: user profiles, the append-only
// record sequence, and the rolling summary.
type UserData struct {
	Users         map[string]UserProfile `json:"users"`
	HealthRecords []HealthRecord         `json:"healthRecords"`
	Summary       Summary                `json:"summary"`
}

// NewUserData returns an empty-initialized store document
func NewUserData(lastUpdated string) *UserData {
	return &UserData{
		Users:         make(map[string]UserProfile),
		HealthRecords: []HealthRecord{},
		Summary: Summary{
			LastUpdated:    lastUpdated,
			OverallScore:   0,
			CategoryScores: make(map[string]float64),
		},
	}
}
