package ocr

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"saenggibu-backend/internal/extract"
	"saenggibu-backend/internal/shared/metrics"
	"saenggibu-backend/internal/shared/server/middleware"
	"saenggibu-backend/internal/shared/server/respond"
	"saenggibu-backend/internal/shared/storage/object"
	"saenggibu-backend/internal/shared/telemetry"
)

const (
	maxFiles     = 2
	maxFileBytes = 5 << 20
)

// Handler wires the scan recognition endpoint.
type Handler struct {
	Client Client
	Store  object.ObjectStore
}

// NewHandler constructs a Handler. Store may be nil; scans are then not
// archived.
func NewHandler(client Client, store object.ObjectStore) *Handler {
	return &Handler{Client: client, Store: store}
}

// RegisterRoutes attaches the OCR route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ocr", h.recognize)
}

// recognize accepts up to two record scans and returns one text slot per
// file, in upload order. A failed file keeps its slot as an empty string
// so the caller can still line texts up with pages.
func (h *Handler) recognize(c *gin.Context) {
	if h.Client == nil {
		respond.Error(c, http.StatusInternalServerError, "config_error", "OCR 서비스가 설정되지 않았습니다.", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "파일 업로드 형식이 올바르지 않습니다.", nil)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "업로드된 파일이 없습니다.", nil)
		return
	}
	if len(files) > maxFiles {
		respond.Error(c, http.StatusBadRequest, "validation_error", "파일은 최대 2개까지 업로드할 수 있습니다.", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	texts := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxFileBytes {
			respond.Error(c, http.StatusBadRequest, "validation_error", "파일 크기는 5MB를 초과할 수 없습니다.", nil)
			return
		}

		data, err := readMultipartFile(fh)
		if err != nil {
			metrics.IncOCRFileFailed()
			telemetry.Warn("ocr read failed, slot left empty", map[string]any{"file": fh.Filename, "error": err.Error()})
			texts = append(texts, "")
			continue
		}

		key := h.archive(c, userID, fh.Filename, data)

		var text string
		isPDF := extract.IsPDF(fh.Header.Get("Content-Type"), fh.Filename)
		if isPDF {
			text, err = extract.Text(c.Request.Context(), data)
		} else {
			text, err = h.Client.ParseImage(c.Request.Context(), fh.Filename, data)
		}
		if err != nil {
			metrics.IncOCRFileFailed()
			telemetry.Warn("ocr recognize failed, slot left empty", map[string]any{"file": fh.Filename, "error": err.Error()})
			texts = append(texts, "")
			continue
		}

		if isPDF && key != "" {
			if err := extract.SaveExtracted(c.Request.Context(), h.Store, key, text); err != nil {
				telemetry.Error("ocr save extracted failed", map[string]any{"file": fh.Filename, "error": err.Error()})
			}
		}

		metrics.IncOCRFileProcessed()
		texts = append(texts, text)
	}

	respond.JSON(c, http.StatusOK, gin.H{"texts": texts})
}

func (h *Handler) archive(c *gin.Context, userID, fileName string, data []byte) string {
	if h.Store == nil {
		return ""
	}
	key, _, _, err := h.Store.Save(c.Request.Context(), userID, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Error("ocr archive failed", map[string]any{"file": fileName, "error": err.Error()})
		return ""
	}
	telemetry.Info("ocr archived", map[string]any{"file": fileName, "key": key})
	return key
}
