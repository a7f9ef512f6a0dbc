package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"saenggibu-backend/internal/gemini"
	"saenggibu-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/university", h.university)
	rg.POST("/projects", h.projects)
	rg.POST("/detect", h.detect)
}

type analyzeRequest struct {
	Text            string `json:"text"`
	CareerDirection string `json:"careerDirection"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "요청 형식이 올바르지 않습니다.", nil)
		return
	}

	result, raw, err := h.Svc.Analyze(c.Request.Context(), req.Text, req.CareerDirection)
	if err != nil {
		h.respondAnalyzeError(c, err, raw)
		return
	}

	c.Set("analysisId", result.ID)
	respond.JSON(c, http.StatusOK, gin.H{
		"result": result,
		"raw":    raw,
	})
}

// rawExcerptLimit caps the diagnostic excerpt attached to 502 responses.
const rawExcerptLimit = 500

func rawExcerpt(s string) string {
	if len(s) > rawExcerptLimit {
		return s[:rawExcerptLimit]
	}
	return s
}

func (h *Handler) respondAnalyzeError(c *gin.Context, err error, raw string) {
	var (
		inputErr     *InputValidationError
		configErr    *gemini.ConfigError
		timeoutErr   *gemini.TimeoutError
		upstreamErr  *gemini.UpstreamError
		malformedErr *MalformedResponseError
	)
	switch {
	case errors.As(err, &inputErr):
		respond.Error(c, http.StatusBadRequest, "validation_error", inputErr.Message, nil)
	case errors.As(err, &configErr):
		respond.Error(c, http.StatusInternalServerError, "config_error", "AI 분석 서비스가 설정되지 않았습니다.", nil)
	case errors.As(err, &timeoutErr):
		respond.Error(c, http.StatusGatewayTimeout, "upstream_timeout", "AI 분석 시간이 초과되었습니다. 잠시 후 다시 시도해주세요.", nil)
	case errors.As(err, &upstreamErr):
		respond.Error(c, http.StatusBadGateway, "upstream_error", "AI 분석 서비스 호출에 실패했습니다. 잠시 후 다시 시도해주세요.", gin.H{
			"status":   upstreamErr.StatusCode,
			"upstream": rawExcerpt(upstreamErr.Message),
		})
	case errors.As(err, &malformedErr):
		respond.Error(c, http.StatusBadGateway, "malformed_response", "AI 응답을 해석하지 못했습니다. 다시 시도해주세요.", gin.H{
			"reason": malformedErr.Reason,
			"raw":    rawExcerpt(raw),
		})
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "분석 중 오류가 발생했습니다.", nil)
	}
}

type predictionRequest struct {
	AnalysisResult  *AnalysisResult `json:"analysisResult"`
	CareerDirection string          `json:"careerDirection"`
}

func (h *Handler) university(c *gin.Context) {
	var req predictionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisResult == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "분석 결과가 필요합니다.", nil)
		return
	}
	if h.Svc.Gemini == nil {
		respond.Error(c, http.StatusInternalServerError, "config_error", "AI 분석 서비스가 설정되지 않았습니다.", nil)
		return
	}

	result := h.Svc.PredictUniversity(c.Request.Context(), *req.AnalysisResult, req.CareerDirection)
	respond.JSON(c, http.StatusOK, gin.H{"result": result})
}

func (h *Handler) projects(c *gin.Context) {
	var req predictionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisResult == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "분석 결과가 필요합니다.", nil)
		return
	}
	if h.Svc.Gemini == nil {
		respond.Error(c, http.StatusInternalServerError, "config_error", "AI 분석 서비스가 설정되지 않았습니다.", nil)
		return
	}

	result := h.Svc.RecommendProjects(c.Request.Context(), *req.AnalysisResult, req.CareerDirection)
	respond.JSON(c, http.StatusOK, gin.H{"result": result})
}

type detectRequest struct {
	Text string `json:"text"`
}

func (h *Handler) detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "요청 형식이 올바르지 않습니다.", nil)
		return
	}
	if h.Svc.Gemini == nil {
		respond.Error(c, http.StatusInternalServerError, "config_error", "AI 분석 서비스가 설정되지 않았습니다.", nil)
		return
	}

	result := h.Svc.DetectAIWriting(c.Request.Context(), req.Text)
	respond.JSON(c, http.StatusOK, gin.H{"result": result})
}
