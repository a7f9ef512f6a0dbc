package analyses

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"saenggibu-backend/internal/gemini"
	"saenggibu-backend/internal/shared/metrics"
	"saenggibu-backend/internal/shared/telemetry"
)

const (
	modelAnalysis   = "gemini-2.0-flash-exp"
	modelUniversity = "gemini-1.5-flash"
	modelProjects   = "gemini-2.0-flash-exp"
	modelDetection  = "gemini-2.0-flash-exp"
)

// Service contains the compliance analysis business logic.
type Service struct {
	Gemini gemini.Client
}

// NewService constructs a Service. A nil client is allowed; calls then
// fail with a ConfigError so the missing key surfaces per request.
func NewService(client gemini.Client) *Service {
	return &Service{Gemini: client}
}

// Analyze runs the guideline compliance analysis over the record text.
// The raw model reply is returned alongside the normalized result.
func (s *Service) Analyze(ctx context.Context, text, careerDirection string) (AnalysisResult, string, error) {
	if strings.TrimSpace(text) == "" {
		return AnalysisResult{}, "", &InputValidationError{Message: "분석할 텍스트가 없습니다."}
	}
	if s.Gemini == nil {
		return AnalysisResult{}, "", &gemini.ConfigError{Message: "GEMINI_API_KEY is required"}
	}

	metrics.IncAnalysisStarted()
	start := time.Now()

	raw, err := s.Gemini.GenerateContent(ctx, gemini.Request{
		Model:  modelAnalysis,
		Prompt: buildAnalysisPrompt(text, careerDirection),
		Config: gemini.GenerationConfig{
			Temperature:     0.4,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
		DisableSafety: true,
	})
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis generate failed", map[string]any{"error": err.Error()})
		return AnalysisResult{}, "", err
	}

	block, err := ExtractJSONBlock(raw)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis extract failed", map[string]any{"error": err.Error()})
		return AnalysisResult{}, raw, &MalformedResponseError{Reason: "no parseable JSON object", Err: err}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis parse failed", map[string]any{"error": err.Error()})
		return AnalysisResult{}, raw, &MalformedResponseError{Reason: "invalid JSON object", Err: err}
	}

	result := NormalizeAnalysis(parsed, careerDirection, text)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("analysis completed", map[string]any{
		"analysis_id":   result.ID,
		"overall_score": result.OverallScore,
		"error_count":   len(result.Errors),
	})
	return result, raw, nil
}

// PredictUniversity returns admission predictions. It never fails: any
// upstream or parse problem yields the deterministic fallback.
func (s *Service) PredictUniversity(ctx context.Context, analysis AnalysisResult, careerDirection string) UniversityPrediction {
	parsed, ok := s.generateObject(ctx, gemini.Request{
		Model:  modelUniversity,
		Prompt: buildUniversityPrompt(analysis, careerDirection),
		Config: gemini.GenerationConfig{
			Temperature:     0.3,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 4096,
		},
	}, "university")
	if !ok {
		metrics.IncFallbackServed("university")
		return FallbackUniversity(analysis, careerDirection)
	}
	return NormalizeUniversity(parsed)
}

// RecommendProjects returns project recommendations with the same
// always-succeed contract as PredictUniversity.
func (s *Service) RecommendProjects(ctx context.Context, analysis AnalysisResult, careerDirection string) ProjectRecommendations {
	parsed, ok := s.generateObject(ctx, gemini.Request{
		Model:  modelProjects,
		Prompt: buildProjectPrompt(analysis, careerDirection),
		Config: gemini.GenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
	}, "projects")
	if !ok {
		metrics.IncFallbackServed("projects")
		return FallbackProjects(analysis, careerDirection)
	}
	return NormalizeProjects(parsed, careerDirection)
}

// DetectAIWriting estimates how likely the text was machine written.
func (s *Service) DetectAIWriting(ctx context.Context, text string) AIWritingDetection {
	if strings.TrimSpace(text) == "" {
		metrics.IncFallbackServed("detect")
		return FallbackDetection("분석할 텍스트가 없습니다.")
	}
	parsed, ok := s.generateObject(ctx, gemini.Request{
		Model:  modelDetection,
		Prompt: buildDetectPrompt(text),
		Config: gemini.GenerationConfig{
			Temperature:     0.3,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 4096,
		},
	}, "detect")
	if !ok {
		metrics.IncFallbackServed("detect")
		return FallbackDetection("AI 분석을 일시적으로 사용할 수 없습니다.")
	}
	return NormalizeDetection(parsed)
}

// generateObject runs one model call and parses the first JSON object
// out of the reply. ok is false on any failure.
func (s *Service) generateObject(ctx context.Context, req gemini.Request, feature string) (map[string]any, bool) {
	if s.Gemini == nil {
		return nil, false
	}
	raw, err := s.Gemini.GenerateContent(ctx, req)
	if err != nil {
		telemetry.Warn("generate failed, serving fallback", map[string]any{"feature": feature, "error": err.Error()})
		return nil, false
	}
	block, err := ExtractJSONBlock(raw)
	if err != nil {
		telemetry.Warn("extract failed, serving fallback", map[string]any{"feature": feature, "error": err.Error()})
		return nil, false
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		telemetry.Warn("parse failed, serving fallback", map[string]any{"feature": feature, "error": err.Error()})
		return nil, false
	}
	return parsed, true
}
