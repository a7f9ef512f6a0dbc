package analyses

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodePayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return out
}

func TestNormalizeAnalysisDefaults(t *testing.T) {
	result := NormalizeAnalysis(map[string]any{}, "", "원문")

	if result.ID == "" {
		t.Fatal("expected generated id")
	}
	if result.OverallScore != 75 {
		t.Fatalf("overallScore = %d, want 75", result.OverallScore)
	}
	if result.CareerDirection != "미지정" {
		t.Fatalf("careerDirection = %q", result.CareerDirection)
	}
	if result.CareerAlignment != nil {
		t.Fatal("careerAlignment should stay nil without payload")
	}
	if len(result.Errors) != 0 {
		t.Fatalf("errors = %v, want empty", result.Errors)
	}
	if len(result.Strengths) == 0 || len(result.Improvements) == 0 || len(result.Suggestions) == 0 {
		t.Fatal("expected default list fields")
	}
	if result.OriginalText != "원문" {
		t.Fatalf("originalText = %q", result.OriginalText)
	}
	if result.AnalyzedAt == "" {
		t.Fatal("expected analyzedAt timestamp")
	}
}

func TestNormalizeAnalysisErrorItems(t *testing.T) {
	raw := decodePayload(t, `{
		"errors": [
			{"type": "절대 금지 사항", "content": "서울대학교 언급", "reason": "대학명", "page": 2.9, "suggestion": "삭제"},
			{"type": "warning", "content": "모호한 칭찬", "reason": "근거 부족", "page": -3},
			{"type": "금지", "content": "", "reason": ""},
			"not an object"
		]
	}`)
	result := NormalizeAnalysis(raw, "의학", "")

	if len(result.Errors) != 2 {
		t.Fatalf("errors len = %d, want 2", len(result.Errors))
	}
	first := result.Errors[0]
	if first.Type != ErrorTypeProhibited {
		t.Fatalf("first type = %q", first.Type)
	}
	if first.Page != 2 {
		t.Fatalf("first page = %d, want 2 (floored)", first.Page)
	}
	second := result.Errors[1]
	if second.Type != ErrorTypeCaution {
		t.Fatalf("second type = %q", second.Type)
	}
	if second.Page != 1 {
		t.Fatalf("second page = %d, want 1", second.Page)
	}
}

func TestNormalizeAnalysisPenaltyCeiling(t *testing.T) {
	raw := decodePayload(t, `{
		"overallScore": 95,
		"errors": [
			{"type": "금지", "content": "대학명", "reason": "1항"},
			{"type": "주의", "content": "모호", "reason": "3항"}
		]
	}`)
	result := NormalizeAnalysis(raw, "", "")

	// 100 - 15 - 5 = 80
	if result.OverallScore != 80 {
		t.Fatalf("overallScore = %d, want 80", result.OverallScore)
	}
}

func TestNormalizeAnalysisScoreCoercion(t *testing.T) {
	cases := []struct {
		value any
		want  int
	}{
		{"88", 88},
		{88.6, 89},
		{150.0, 100},
		{-3.0, 0},
		{"abc", 75},
		{nil, 75},
	}
	for _, tc := range cases {
		result := NormalizeAnalysis(map[string]any{"overallScore": tc.value}, "", "")
		if result.OverallScore != tc.want {
			t.Fatalf("overallScore(%v) = %d, want %d", tc.value, result.OverallScore, tc.want)
		}
	}
}

func TestNormalizeAnalysisCareerAlignment(t *testing.T) {
	raw := decodePayload(t, `{
		"careerAlignment": {"percentage": "130", "summary": " 연계성 우수 "}
	}`)
	result := NormalizeAnalysis(raw, "", "")

	if result.CareerAlignment == nil {
		t.Fatal("expected careerAlignment")
	}
	if result.CareerAlignment.Percentage != 100 {
		t.Fatalf("percentage = %d, want 100", result.CareerAlignment.Percentage)
	}
	if result.CareerAlignment.Summary != "연계성 우수" {
		t.Fatalf("summary = %q", result.CareerAlignment.Summary)
	}
}

func TestNormalizeAnalysisDropsNonStringListEntries(t *testing.T) {
	raw := decodePayload(t, `{"strengths": ["깊이 있는 탐구", 42, "", null, "지속성"]}`)
	result := NormalizeAnalysis(raw, "", "")

	if len(result.Strengths) != 2 {
		t.Fatalf("strengths = %v", result.Strengths)
	}
}

func TestNormalizeUniversity(t *testing.T) {
	raw := decodePayload(t, `{
		"nationalPercentile": 7,
		"academicLevel": "엉뚱한 값",
		"reachableUniversities": [
			{"tier": "최상위권", "universities": ["서울대", "연세대", "고려대", "KAIST"], "probability": "도전"},
			{"tier": "", "universities": ["어딘가"]},
			{"tier": "상위권", "universities": [], "probability": "안정"}
		]
	}`)
	pred := NormalizeUniversity(raw)

	if pred.NationalPercentile != 7 {
		t.Fatalf("percentile = %d", pred.NationalPercentile)
	}
	if pred.AcademicLevel != "최상위권" {
		t.Fatalf("academicLevel = %q, want derived 최상위권", pred.AcademicLevel)
	}
	if len(pred.ReachableUniversities) != 1 {
		t.Fatalf("tiers = %v", pred.ReachableUniversities)
	}
	if got := len(pred.ReachableUniversities[0].Universities); got != 3 {
		t.Fatalf("universities len = %d, want 3", got)
	}
	if pred.ReachableUniversities[0].Probability != ProbabilityChallenge {
		t.Fatalf("probability = %q", pred.ReachableUniversities[0].Probability)
	}
}

func TestNormalizeUniversityProbabilityDefault(t *testing.T) {
	raw := decodePayload(t, `{
		"reachableUniversities": [
			{"tier": "중위권", "universities": ["단국대"], "probability": "maybe"}
		]
	}`)
	pred := NormalizeUniversity(raw)
	if pred.ReachableUniversities[0].Probability != ProbabilityFit {
		t.Fatalf("probability = %q, want 적정", pred.ReachableUniversities[0].Probability)
	}
}

func TestNormalizeProjects(t *testing.T) {
	raw := decodePayload(t, `{
		"career": "",
		"bestProject": {"title": "탐구 프로젝트", "difficulty": "극악"},
		"projects": [{"title": "속진 과제", "difficulty": "중상"}, {"title": ""}],
		"tips": []
	}`)
	rec := NormalizeProjects(raw, "공학")

	if rec.Career != "공학" {
		t.Fatalf("career = %q", rec.Career)
	}
	if rec.BestProject.Difficulty != "중" {
		t.Fatalf("difficulty = %q, want default 중", rec.BestProject.Difficulty)
	}
	if len(rec.Projects) != 1 || rec.Projects[0].Difficulty != "중상" {
		t.Fatalf("projects = %v", rec.Projects)
	}
	if len(rec.Tips) == 0 {
		t.Fatal("expected default tips")
	}
}

func TestNormalizeDetection(t *testing.T) {
	raw := decodePayload(t, `{
		"overallAIProbability": 130,
		"riskAssessment": "위험",
		"detectedSections": [
			{"section": "매끄러운 문단", "aiProbability": -5, "reason": "반복 문형"},
			{"section": "", "reason": ""}
		]
	}`)
	det := NormalizeDetection(raw)

	if det.OverallAIProbability != 100 {
		t.Fatalf("probability = %d", det.OverallAIProbability)
	}
	if det.RiskAssessment != RiskDanger {
		t.Fatalf("risk = %q", det.RiskAssessment)
	}
	if len(det.DetectedSections) != 1 {
		t.Fatalf("sections = %v", det.DetectedSections)
	}
	if det.DetectedSections[0].AIProbability != 0 {
		t.Fatalf("section probability = %d", det.DetectedSections[0].AIProbability)
	}
}

func TestNormalizeDetectionRiskDefault(t *testing.T) {
	det := NormalizeDetection(map[string]any{"riskAssessment": "unknown"})
	if det.RiskAssessment != RiskSafe {
		t.Fatalf("risk = %q, want 안전", det.RiskAssessment)
	}
}

// Feeding a normalized result back through the normalizer must not change
// it: every default and clamp has to be a fixed point.
func TestNormalizeAnalysisIdempotent(t *testing.T) {
	raw := decodePayload(t, `{
		"overallScore": 97,
		"studentProfile": "  탐구형 인재  ",
		"careerAlignment": {"percentage": 88, "summary": "연계가 뚜렷함", "strengths": ["전공 연계"], "improvements": []},
		"errors": [
			{"type": "금지사항", "content": "서울대학교", "reason": "대학명 기재", "page": 3, "suggestion": "기관명으로 대체"},
			{"type": "검토", "content": "1등", "reason": "서열 표현"}
		],
		"strengths": ["탐구 깊이"],
		"improvements": [],
		"suggestions": ["사례를 추가하세요"]
	}`)

	first := NormalizeAnalysis(raw, "의학", "원문 텍스트")

	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal normalized result: %v", err)
	}
	second := NormalizeAnalysis(decodePayload(t, string(encoded)), first.CareerDirection, first.OriginalText)

	// id and analyzedAt are freshly assigned on every pass.
	first.ID, second.ID = "", ""
	first.AnalyzedAt, second.AnalyzedAt = "", ""
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-normalization changed the result:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
