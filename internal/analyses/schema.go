package analyses

// ErrorItem is a single flagged passage in a student record.
// Type is either "금지" (prohibited, hard violation) or "주의" (caution).
type ErrorItem struct {
	Type       string `json:"type"`
	Content    string `json:"content"`
	Reason     string `json:"reason"`
	Page       int    `json:"page"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CareerAlignment scores how well the record matches the stated career direction.
type CareerAlignment struct {
	Percentage   int      `json:"percentage"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// AnalysisResult is the normalized compliance report returned by the API.
// The id and analyzedAt fields are assigned at normalization time and are
// never taken from the model output.
type AnalysisResult struct {
	ID              string           `json:"id"`
	OverallScore    int              `json:"overallScore"`
	StudentProfile  string           `json:"studentProfile"`
	CareerDirection string           `json:"careerDirection"`
	CareerAlignment *CareerAlignment `json:"careerAlignment,omitempty"`
	Errors          []ErrorItem      `json:"errors"`
	Strengths       []string         `json:"strengths"`
	Improvements    []string         `json:"improvements"`
	Suggestions     []string         `json:"suggestions"`
	OriginalText    string           `json:"originalText"`
	AnalyzedAt      string           `json:"analyzedAt"`
}

// UniversityTier groups 2-3 reachable universities under one selectivity band.
type UniversityTier struct {
	Tier         string   `json:"tier"`
	Universities []string `json:"universities"`
	Probability  string   `json:"probability"`
}

// UniversityPrediction estimates where the student stands nationally and
// which universities are within reach.
type UniversityPrediction struct {
	NationalPercentile    int              `json:"nationalPercentile"`
	AcademicLevel         string           `json:"academicLevel"`
	ReachableUniversities []UniversityTier `json:"reachableUniversities"`
	StrengthAnalysis      string           `json:"strengthAnalysis"`
	ImprovementNeeded     string           `json:"improvementNeeded"`
	Recommendations       []string         `json:"recommendations"`
}

// ProjectItem describes one recommended in-school project.
type ProjectItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Reason      string   `json:"reason"`
	Difficulty  string   `json:"difficulty"`
	Duration    string   `json:"duration"`
	Benefits    []string `json:"benefits"`
}

// ProjectRecommendations is the normalized project-recommendation response.
type ProjectRecommendations struct {
	Career      string        `json:"career"`
	BestProject ProjectItem   `json:"bestProject"`
	Projects    []ProjectItem `json:"projects"`
	Tips        []string      `json:"tips"`
}

// DetectedSection is a passage suspected of being machine written.
type DetectedSection struct {
	Section       string `json:"section"`
	AIProbability int    `json:"aiProbability"`
	Reason        string `json:"reason"`
}

// AIWritingDetection is the normalized AI-writing detection response.
type AIWritingDetection struct {
	OverallAIProbability int               `json:"overallAIProbability"`
	RiskAssessment       string            `json:"riskAssessment"`
	DetectedSections     []DetectedSection `json:"detectedSections"`
	Recommendations      []string          `json:"recommendations"`
}

// Enum members accepted after normalization.
const (
	ErrorTypeProhibited = "금지"
	ErrorTypeCaution    = "주의"

	ProbabilityChallenge = "도전"
	ProbabilityFit       = "적정"
	ProbabilitySafe      = "안정"

	RiskSafe    = "안전"
	RiskCaution = "주의"
	RiskDanger  = "위험"
)
