package analyses

import (
	"fmt"
	"math"
	"strings"
)

// calculateNationalPercentile maps an overall record score to an estimated
// national percentile (lower is better). The piecewise formula is part of
// the compatibility contract and must not be adjusted.
func calculateNationalPercentile(overallScore int) int {
	score := float64(clampInt(overallScore, 0, 100))

	var p float64
	switch {
	case score >= 95:
		p = math.Round((100 - score) * 0.5)
	case score >= 85:
		p = math.Round(5 + (95 - score))
	case score >= 75:
		p = math.Round(15 + (85-score)*1.5)
	case score >= 65:
		p = math.Round(30 + (75-score)*2)
	default:
		p = math.Round(50 + (65-score)*1.5)
	}
	return clampInt(int(p), 1, 100)
}

func academicLevelFor(percentile int) string {
	switch {
	case percentile <= 5:
		return "최상위권"
	case percentile <= 15:
		return "상위권"
	case percentile <= 30:
		return "중상위권"
	case percentile <= 50:
		return "중위권"
	default:
		return "중하위권"
	}
}

func fallbackRecommendations() []string {
	return []string{
		"학교 생활기록부의 강점을 지속적으로 강화하세요.",
		"진로 적합성을 높일 수 있는 심화 활동을 추가하세요.",
		"구체적인 활동 사례와 성과를 기록해보세요.",
	}
}

// FallbackUniversity derives a university prediction from the normalized
// analysis alone, without any external call. It is served whenever the live
// prediction fails, so the feature is never visibly broken.
func FallbackUniversity(analysis AnalysisResult, careerDirection string) UniversityPrediction {
	percentile := calculateNationalPercentile(analysis.OverallScore)

	strengthsSummary := joinFirst(analysis.Strengths, 2, defaultStrengths[0])
	improvementsSummary := joinFirst(analysis.Improvements, 2, defaultImprovements[0])

	return UniversityPrediction{
		NationalPercentile:    percentile,
		AcademicLevel:         academicLevelFor(percentile),
		ReachableUniversities: reachableUniversities(percentile),
		StrengthAnalysis:      fmt.Sprintf("%s 방향에서 돋보이는 강점: %s", fallbackString(careerDirection, "진로 미지정"), strengthsSummary),
		ImprovementNeeded:     fmt.Sprintf("보완이 필요한 부분: %s", improvementsSummary),
		Recommendations:       fallbackRecommendations(),
	}
}

func joinFirst(values []string, n int, fallback string) string {
	if len(values) > n {
		values = values[:n]
	}
	joined := strings.Join(values, " • ")
	if joined == "" {
		return fallback
	}
	return joined
}

// FallbackProjects synthesizes project recommendations from the first two
// strengths and the first improvement of the normalized analysis. Fully
// deterministic; no randomness.
func FallbackProjects(analysis AnalysisResult, careerDirection string) ProjectRecommendations {
	career := fallbackString(careerDirection, "생기부 내용 기반 분석")
	strength1 := nth(analysis.Strengths, 0, "학생의 역량")
	strength2 := nth(analysis.Strengths, 1, "관심 분야")
	improvement := nth(analysis.Improvements, 0, "추가 개선 필요 사항")

	return ProjectRecommendations{
		Career: career,
		BestProject: ProjectItem{
			Title:       fmt.Sprintf("%s 관련 심화 탐구 프로젝트", career),
			Description: fmt.Sprintf("%s을 활용하여 %s 분야의 주제를 선정하고, 2-3개월간 심도 있는 탐구를 진행합니다. 탐구 결과를 보고서로 작성하고 발표회를 통해 공유합니다.", strength1, career),
			Reason:      fmt.Sprintf("학생의 강점인 %s과 진로 방향이 잘 맞아떨어지며, 심화 탐구를 통해 전문성을 더욱 강화할 수 있습니다.", strength1),
			Difficulty:  "중상",
			Duration:    "2-3개월",
			Benefits: []string{
				"진로 관련 전문 지식 습득",
				"탐구 역량 및 문제 해결 능력 향상",
				"생기부 세특 기재 우수 소재 확보",
			},
		},
		Projects: []ProjectItem{
			{
				Title:       "교과 연계 실험/실습 프로젝트",
				Description: fmt.Sprintf("%s를 바탕으로 교과 내용과 연계된 실험 또는 실습 활동을 설계하고 수행합니다.", strength2),
				Reason:      "이론과 실제를 결합하여 교과 이해도를 높이고 실전 역량을 기를 수 있습니다.",
				Difficulty:  "중",
				Duration:    "1-2개월",
				Benefits:    []string{"실험/실습 능력 강화", "교과 연계성 확보"},
			},
			{
				Title:       "독서 기반 비평 프로젝트",
				Description: fmt.Sprintf("%s 관련 전문 도서 3-5권을 읽고 비평문을 작성하며, 주제별로 심화 분석을 수행합니다.", career),
				Reason:      "비판적 사고력과 학문적 표현력을 동시에 기를 수 있는 효과적인 활동입니다.",
				Difficulty:  "중",
				Duration:    "2개월",
				Benefits:    []string{"비판적 사고력 향상", "독서 활동 심화"},
			},
			{
				Title:       "교내 봉사/멘토링 활동",
				Description: fmt.Sprintf("%s를 보완하기 위해 후배 또는 동급생 대상 학습 멘토링이나 봉사 활동을 기획하고 운영합니다.", improvement),
				Reason:      "리더십과 공동체 의식을 함양하며, 자신의 부족한 부분을 보완하는 계기가 됩니다.",
				Difficulty:  "중",
				Duration:    "1-2개월",
				Benefits:    []string{"리더십 개발", "공동체 의식 강화"},
			},
		},
		Tips: []string{
			"프로젝트는 구체적인 결과물(보고서, 발표 자료, 포트폴리오 등)을 남겨야 합니다.",
			"진로와의 연계성을 명확히 하고, 교과 선생님의 지도를 받으세요.",
			"과정을 꼼꼼히 기록하여 생기부 세특 기재에 활용하세요.",
			"혼자보다는 동급생과 협업하면 더 풍부한 결과를 얻을 수 있습니다.",
		},
	}
}

func nth(values []string, i int, fallback string) string {
	if i < len(values) && strings.TrimSpace(values[i]) != "" {
		return values[i]
	}
	return fallback
}

func detectionDefaultRecommendations() []string {
	return []string{
		"AI 작성 탐지를 완료할 수 없습니다.",
		"원본 생기부 텍스트를 확인한 후 다시 시도하세요.",
	}
}

// FallbackDetection reports a neutral, safe detection result. The upstream
// failure message, if any, rides along as a recommendation line for context.
func FallbackDetection(errMessage string) AIWritingDetection {
	recommendations := detectionDefaultRecommendations()
	if msg := strings.TrimSpace(errMessage); msg != "" {
		recommendations = append(recommendations, msg)
	} else {
		recommendations = append(recommendations, "추가 정보를 확인해주세요.")
	}
	return AIWritingDetection{
		OverallAIProbability: 0,
		RiskAssessment:       RiskSafe,
		DetectedSections:     []DetectedSection{},
		Recommendations:      recommendations,
	}
}
