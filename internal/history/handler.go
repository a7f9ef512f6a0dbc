package history

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"saenggibu-backend/internal/analyses"
	"saenggibu-backend/internal/shared/server/middleware"
	"saenggibu-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the history service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/records", h.share)
	rg.GET("/records", h.list)
	rg.GET("/records/trending", h.trending)
	rg.GET("/records/recommended", h.recommended)
	rg.GET("/records/mine", h.mine)
	rg.POST("/records/:id/like", h.like)
	rg.POST("/records/:id/save", h.save)
	rg.DELETE("/records/:id", h.remove)
}

type shareRequest struct {
	Result    *analyses.AnalysisResult `json:"result"`
	IsPrivate bool                     `json:"isPrivate"`
}

func (h *Handler) share(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Result == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "분석 결과가 필요합니다.", nil)
		return
	}

	record, err := h.Svc.Share(c.Request.Context(), SharedRecord{
		OwnerID:   middleware.UserIDFromContext(c),
		Result:    req.Result,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "기록을 저장하지 못했습니다.", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"record": record})
}

func (h *Handler) list(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "로그인이 필요합니다.", nil)
		return
	}

	records, err := h.Svc.Viewable(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "기록을 불러오지 못했습니다.", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"records": emptyIfNil(records)})
}

func (h *Handler) trending(c *gin.Context) {
	records, err := h.Svc.Trending(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "기록을 불러오지 못했습니다.", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"records": emptyIfNil(records)})
}

func (h *Handler) recommended(c *gin.Context) {
	records, err := h.Svc.Recommended(c.Request.Context(), middleware.UserIDFromContext(c), c.Query("q"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "기록을 불러오지 못했습니다.", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"records": emptyIfNil(records)})
}

func (h *Handler) mine(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "로그인이 필요합니다.", nil)
		return
	}

	records, err := h.Svc.Mine(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "기록을 불러오지 못했습니다.", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"records": emptyIfNil(records)})
}

func (h *Handler) like(c *gin.Context) {
	count, err := h.Svc.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondCounterError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"likes": count})
}

func (h *Handler) save(c *gin.Context) {
	count, err := h.Svc.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondCounterError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"saves": count})
}

func (h *Handler) respondCounterError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "기록을 찾을 수 없습니다.", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "요청을 처리하지 못했습니다.", nil)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"), middleware.UserIDFromContext(c))
	switch {
	case err == nil:
		respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "기록을 찾을 수 없습니다.", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "본인의 기록만 삭제할 수 있습니다.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "요청을 처리하지 못했습니다.", nil)
	}
}

func emptyIfNil(records []SharedRecord) []SharedRecord {
	if records == nil {
		return []SharedRecord{}
	}
	return records
}
