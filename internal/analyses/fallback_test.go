package analyses

import (
	"strings"
	"testing"
)

func TestCalculateNationalPercentile(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{100, 1},
		{98, 1},
		{95, 3},
		{90, 10},
		{85, 15},
		{80, 23},
		{75, 30},
		{70, 40},
		{65, 50},
		{60, 58},
		{0, 100},
		{-10, 100},
		{120, 1},
	}
	for _, tc := range cases {
		if got := calculateNationalPercentile(tc.score); got != tc.want {
			t.Fatalf("calculateNationalPercentile(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestAcademicLevelFor(t *testing.T) {
	cases := []struct {
		percentile int
		want       string
	}{
		{1, "최상위권"},
		{5, "최상위권"},
		{6, "상위권"},
		{15, "상위권"},
		{16, "중상위권"},
		{30, "중상위권"},
		{31, "중위권"},
		{50, "중위권"},
		{51, "중하위권"},
		{100, "중하위권"},
	}
	for _, tc := range cases {
		if got := academicLevelFor(tc.percentile); got != tc.want {
			t.Fatalf("academicLevelFor(%d) = %q, want %q", tc.percentile, got, tc.want)
		}
	}
}

func TestReachableUniversitiesTopBand(t *testing.T) {
	tiers := reachableUniversities(2)

	if len(tiers) == 0 {
		t.Fatal("expected tiers for top percentile")
	}
	top := tiers[0]
	if !strings.Contains(top.Tier, "최상위권") {
		t.Fatalf("first tier = %q", top.Tier)
	}
	if top.Probability != ProbabilityFit {
		t.Fatalf("probability = %q, want 적정 within inner threshold", top.Probability)
	}
	if len(top.Universities) == 0 || len(top.Universities) > 3 {
		t.Fatalf("universities = %v", top.Universities)
	}
}

func TestReachableUniversitiesLimits(t *testing.T) {
	for _, percentile := range []int{1, 5, 10, 20, 30, 40, 50, 60, 80, 100} {
		tiers := reachableUniversities(percentile)
		if len(tiers) > 4 {
			t.Fatalf("percentile %d: %d tiers, want at most 4", percentile, len(tiers))
		}
		for _, tier := range tiers {
			if len(tier.Universities) > 3 {
				t.Fatalf("percentile %d tier %q: %d universities", percentile, tier.Tier, len(tier.Universities))
			}
		}
	}
}

func TestReachableUniversitiesRegionalAlwaysFit(t *testing.T) {
	tiers := reachableUniversities(37)
	for _, tier := range tiers {
		if tier.Tier == regionalTierLabel && tier.Probability != ProbabilityFit {
			t.Fatalf("regional probability = %q, want 적정", tier.Probability)
		}
	}
}

func TestFallbackUniversity(t *testing.T) {
	analysis := AnalysisResult{
		OverallScore: 85,
		Strengths:    []string{"수학 탐구", "자기주도 학습", "세 번째"},
		Improvements: []string{"독서 부족"},
	}
	pred := FallbackUniversity(analysis, "공학")

	if pred.NationalPercentile != 15 {
		t.Fatalf("percentile = %d, want 15", pred.NationalPercentile)
	}
	if pred.AcademicLevel != "상위권" {
		t.Fatalf("academicLevel = %q", pred.AcademicLevel)
	}
	if !strings.Contains(pred.StrengthAnalysis, "수학 탐구 • 자기주도 학습") {
		t.Fatalf("strengthAnalysis = %q", pred.StrengthAnalysis)
	}
	if strings.Contains(pred.StrengthAnalysis, "세 번째") {
		t.Fatalf("strengthAnalysis should keep only two strengths: %q", pred.StrengthAnalysis)
	}
	if len(pred.Recommendations) != 3 {
		t.Fatalf("recommendations = %v", pred.Recommendations)
	}
}

func TestFallbackProjectsDeterministic(t *testing.T) {
	analysis := AnalysisResult{
		Strengths:    []string{"데이터 분석 역량"},
		Improvements: []string{"발표 경험 부족"},
	}
	first := FallbackProjects(analysis, "통계학")
	second := FallbackProjects(analysis, "통계학")

	if first.BestProject.Title != second.BestProject.Title {
		t.Fatal("expected deterministic output")
	}
	if !strings.Contains(first.BestProject.Title, "통계학") {
		t.Fatalf("title = %q", first.BestProject.Title)
	}
	if !strings.Contains(first.BestProject.Description, "데이터 분석 역량") {
		t.Fatalf("description = %q", first.BestProject.Description)
	}
	if len(first.Projects) != 3 {
		t.Fatalf("projects len = %d", len(first.Projects))
	}
	if first.BestProject.Difficulty != "중상" {
		t.Fatalf("difficulty = %q", first.BestProject.Difficulty)
	}
}

func TestFallbackProjectsDefaultCareer(t *testing.T) {
	rec := FallbackProjects(AnalysisResult{}, "")
	if rec.Career != "생기부 내용 기반 분석" {
		t.Fatalf("career = %q", rec.Career)
	}
}

func TestFallbackDetection(t *testing.T) {
	det := FallbackDetection("일시적 오류")

	if det.OverallAIProbability != 0 {
		t.Fatalf("probability = %d", det.OverallAIProbability)
	}
	if det.RiskAssessment != RiskSafe {
		t.Fatalf("risk = %q", det.RiskAssessment)
	}
	if det.DetectedSections == nil || len(det.DetectedSections) != 0 {
		t.Fatalf("sections = %v", det.DetectedSections)
	}
	found := false
	for _, rec := range det.Recommendations {
		if rec == "일시적 오류" {
			found = true
		}
	}
	if !found {
		t.Fatalf("recommendations = %v", det.Recommendations)
	}
}
