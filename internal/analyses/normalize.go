package analyses

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field defaults substituted when the model output is missing or malformed.
const (
	defaultOverallScore        = 75
	defaultAlignmentPercentage = 50
	defaultCareerDirection     = "미지정"
	defaultDifficulty          = "중"
)

var (
	defaultStrengths    = []string{"생기부가 전반적으로 잘 작성되었습니다"}
	defaultImprovements = []string{"지속적인 개선이 필요합니다"}
	defaultSuggestions  = []string{"구체적인 사례를 더 추가하면 좋습니다"}
	defaultBenefits     = []string{"전공 역량 강화"}
	defaultTips         = []string{
		"프로젝트는 구체적인 결과물을 남겨야 합니다.",
		"진로와의 연계성을 명확히 하세요.",
		"과정을 꼼꼼히 기록하세요.",
	}
)

// Per-violation score penalties from the review guideline.
const (
	penaltyProhibited = 15
	penaltyCaution    = 5
)

// NormalizeAnalysis coerces a decoded model payload into the strict
// AnalysisResult schema. Every field has a defined default; the function
// never fails. A fresh id and timestamp are assigned here, and the original
// input text is attached from the caller, never from the model.
func NormalizeAnalysis(raw map[string]any, careerDirection, originalText string) AnalysisResult {
	result := AnalysisResult{
		ID:              uuid.NewString(),
		OverallScore:    clampInt(toInt(raw["overallScore"], defaultOverallScore), 0, 100),
		StudentProfile:  toTrimmedString(raw["studentProfile"]),
		CareerDirection: fallbackString(careerDirection, defaultCareerDirection),
		CareerAlignment: normalizeCareerAlignment(raw["careerAlignment"]),
		Errors:          normalizeErrorItems(raw["errors"]),
		Strengths:       toStringList(raw["strengths"], defaultStrengths),
		Improvements:    toStringList(raw["improvements"], defaultImprovements),
		Suggestions:     toStringList(raw["suggestions"], defaultSuggestions),
		OriginalText:    originalText,
		AnalyzedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	// The guideline deducts 15 points per prohibited item and 5 per caution.
	// Enforce that as a ceiling so a flagged record can never keep a clean
	// score when the model forgot to deduct.
	ceiling := 100
	for _, item := range result.Errors {
		if item.Type == ErrorTypeProhibited {
			ceiling -= penaltyProhibited
		} else {
			ceiling -= penaltyCaution
		}
	}
	if ceiling < 0 {
		ceiling = 0
	}
	if result.OverallScore > ceiling {
		result.OverallScore = ceiling
	}

	return result
}

func normalizeCareerAlignment(value any) *CareerAlignment {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return &CareerAlignment{
		Percentage:   clampInt(toInt(obj["percentage"], defaultAlignmentPercentage), 0, 100),
		Summary:      toTrimmedString(obj["summary"]),
		Strengths:    toStringList(obj["strengths"], nil),
		Improvements: toStringList(obj["improvements"], nil),
	}
}

func normalizeErrorItems(value any) []ErrorItem {
	list, ok := value.([]any)
	if !ok {
		return []ErrorItem{}
	}
	items := make([]ErrorItem, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := ErrorItem{
			Type:       normalizeErrorType(obj["type"]),
			Content:    toTrimmedString(obj["content"]),
			Reason:     toTrimmedString(obj["reason"]),
			Page:       normalizePage(obj["page"]),
			Suggestion: toTrimmedString(obj["suggestion"]),
		}
		if item.Content == "" && item.Reason == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// normalizeErrorType maps to "금지" only when the raw value is a string
// containing that substring; everything else is the advisory "주의".
func normalizeErrorType(value any) string {
	if s, ok := value.(string); ok && strings.Contains(s, ErrorTypeProhibited) {
		return ErrorTypeProhibited
	}
	return ErrorTypeCaution
}

func normalizePage(value any) int {
	f, ok := toFloat(value)
	if !ok || f <= 0 {
		return 1
	}
	return int(math.Floor(f))
}

// NormalizeUniversity coerces a decoded model payload into the strict
// UniversityPrediction schema. An unrecognized academic level is derived
// from the percentile rather than rejected.
func NormalizeUniversity(raw map[string]any) UniversityPrediction {
	percentile := clampInt(toInt(raw["nationalPercentile"], 50), 1, 100)
	return UniversityPrediction{
		NationalPercentile:    percentile,
		AcademicLevel:         normalizeAcademicLevel(raw["academicLevel"], percentile),
		ReachableUniversities: normalizeTiers(raw["reachableUniversities"]),
		StrengthAnalysis:      toTrimmedString(raw["strengthAnalysis"]),
		ImprovementNeeded:     toTrimmedString(raw["improvementNeeded"]),
		Recommendations:       toStringList(raw["recommendations"], fallbackRecommendations()),
	}
}

func normalizeAcademicLevel(value any, percentile int) string {
	s := toTrimmedString(value)
	for _, level := range academicLevels {
		if s == level {
			return level
		}
	}
	return academicLevelFor(percentile)
}

func normalizeTiers(value any) []UniversityTier {
	list, ok := value.([]any)
	if !ok {
		return []UniversityTier{}
	}
	tiers := make([]UniversityTier, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		tier := UniversityTier{
			Tier:         toTrimmedString(obj["tier"]),
			Universities: toStringList(obj["universities"], nil),
			Probability:  normalizeProbability(obj["probability"]),
		}
		if tier.Tier == "" || len(tier.Universities) == 0 {
			continue
		}
		if len(tier.Universities) > 3 {
			tier.Universities = tier.Universities[:3]
		}
		tiers = append(tiers, tier)
	}
	if len(tiers) > 4 {
		tiers = tiers[:4]
	}
	return tiers
}

func normalizeProbability(value any) string {
	switch toTrimmedString(value) {
	case ProbabilityChallenge:
		return ProbabilityChallenge
	case ProbabilitySafe:
		return ProbabilitySafe
	default:
		return ProbabilityFit
	}
}

// NormalizeProjects coerces a decoded model payload into the strict
// ProjectRecommendations schema.
func NormalizeProjects(raw map[string]any, careerDirection string) ProjectRecommendations {
	out := ProjectRecommendations{
		Career:      fallbackString(toTrimmedString(raw["career"]), fallbackString(careerDirection, "생기부 내용 기반 분석")),
		BestProject: normalizeProjectItem(raw["bestProject"]),
		Projects:    normalizeProjectItems(raw["projects"]),
		Tips:        toStringList(raw["tips"], defaultTips),
	}
	return out
}

func normalizeProjectItems(value any) []ProjectItem {
	list, ok := value.([]any)
	if !ok {
		return []ProjectItem{}
	}
	items := make([]ProjectItem, 0, len(list))
	for _, entry := range list {
		if _, ok := entry.(map[string]any); !ok {
			continue
		}
		item := normalizeProjectItem(entry)
		if item.Title == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func normalizeProjectItem(value any) ProjectItem {
	obj, _ := value.(map[string]any)
	return ProjectItem{
		Title:       toTrimmedString(obj["title"]),
		Description: toTrimmedString(obj["description"]),
		Reason:      toTrimmedString(obj["reason"]),
		Difficulty:  normalizeDifficulty(obj["difficulty"]),
		Duration:    toTrimmedString(obj["duration"]),
		Benefits:    toStringList(obj["benefits"], defaultBenefits),
	}
}

func normalizeDifficulty(value any) string {
	switch toTrimmedString(value) {
	case "하", "중", "중상", "상":
		return toTrimmedString(value)
	default:
		return defaultDifficulty
	}
}

// NormalizeDetection coerces a decoded model payload into the strict
// AIWritingDetection schema.
func NormalizeDetection(raw map[string]any) AIWritingDetection {
	return AIWritingDetection{
		OverallAIProbability: clampInt(toInt(raw["overallAIProbability"], 0), 0, 100),
		RiskAssessment:       normalizeRisk(raw["riskAssessment"]),
		DetectedSections:     normalizeDetectedSections(raw["detectedSections"]),
		Recommendations:      toStringList(raw["recommendations"], detectionDefaultRecommendations()),
	}
}

func normalizeRisk(value any) string {
	switch toTrimmedString(value) {
	case RiskCaution:
		return RiskCaution
	case RiskDanger:
		return RiskDanger
	default:
		return RiskSafe
	}
}

func normalizeDetectedSections(value any) []DetectedSection {
	list, ok := value.([]any)
	if !ok {
		return []DetectedSection{}
	}
	sections := make([]DetectedSection, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		section := DetectedSection{
			Section:       toTrimmedString(obj["section"]),
			AIProbability: clampInt(toInt(obj["aiProbability"], 0), 0, 100),
			Reason:        toTrimmedString(obj["reason"]),
		}
		if section.Section == "" && section.Reason == "" {
			continue
		}
		sections = append(sections, section)
	}
	return sections
}

// toFloat accepts a JSON number or a numeric string. The string parse is
// locale-invariant; anything else, and non-finite values, report failure.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func toInt(value any, fallback int) int {
	f, ok := toFloat(value)
	if !ok {
		return fallback
	}
	return int(math.Round(f))
}

func toTrimmedString(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// toStringList keeps only non-empty trimmed strings. A non-array input, or
// an empty result, yields the supplied default (copied so callers cannot
// mutate the shared slice).
func toStringList(value any, defaults []string) []string {
	var out []string
	if list, ok := value.([]any); ok {
		out = make([]string, 0, len(list))
		for _, item := range list {
			if s := toTrimmedString(item); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		if defaults == nil {
			return []string{}
		}
		return append([]string(nil), defaults...)
	}
	return out
}

func fallbackString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
