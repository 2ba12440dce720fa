package analyses

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cvscore-api/internal/cvscore"
	"cvscore-api/internal/extract"
	"cvscore-api/internal/shared/metrics"
	"cvscore-api/internal/shared/server/middleware"
	"cvscore-api/internal/shared/server/respond"
	"cvscore-api/internal/shared/util"
)

// multipartOverhead is headroom for multipart framing on top of the file limit.
const multipartOverhead = 64 << 10

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyzeText)
	rg.POST("/analyze/upload", h.analyzeUpload)
	rg.POST("/ats/score", h.atsScore)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

type analyzeRequest struct {
	Text           *string `json:"text"`
	JobDescription string  `json:"jobDescription"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	out, ok := h.analyzeJSON(c, SourceText)
	if !ok {
		return
	}
	respond.OK(c, out.Result)
}

func (h *Handler) atsScore(c *gin.Context) {
	out, ok := h.analyzeJSON(c, SourceATS)
	if !ok {
		return
	}
	respond.OK(c, ToATS(out.Result))
}

// analyzeJSON binds the JSON body and runs the analysis, writing the error response itself.
func (h *Handler) analyzeJSON(c *gin.Context, source Source) (Outcome, bool) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncValidationFailed()
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "request body must be JSON with a string text field", []map[string]string{
			{"field": "text", "issue": "invalid"},
		})
		return Outcome{}, false
	}
	if req.Text == nil {
		metrics.IncValidationFailed()
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "text is required", []map[string]string{
			{"field": "text", "issue": "required"},
		})
		return Outcome{}, false
	}
	return h.run(c, Input{Text: *req.Text, JobDescription: req.JobDescription, Source: source})
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodeTooLarge, "file is too large", gin.H{"maxBytes": h.MaxUploadBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "multipart field file is required", []map[string]string{
			{"field": "file", "issue": "required"},
		})
		return
	}
	if header.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodeTooLarge, "file is too large", gin.H{"maxBytes": h.MaxUploadBytes})
		return
	}
	fileName, err := util.SanitizeFileName(header.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid file name", []map[string]string{
			{"field": "file", "issue": "invalid_name"},
		})
		return
	}

	f, err := header.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to read upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to read upload", nil)
		return
	}

	text, err := extract.ExtractTextFromBytes(c.Request.Context(), data, header.Header.Get("Content-Type"), fileName)
	if err != nil {
		metrics.IncExtractionFailed()
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusUnsupportedMediaType, respond.CodeUnsupported, "upload a PDF, DOCX or plain text file", nil)
		case errors.Is(err, extract.ErrNoText):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "no text could be extracted from the file", []map[string]string{
				{"field": "file", "issue": "empty"},
			})
		default:
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "the file could not be read", []map[string]string{
				{"field": "file", "issue": "unreadable"},
			})
		}
		return
	}

	out, ok := h.run(c, Input{Text: text, JobDescription: c.PostForm("jobDescription"), Source: SourceUpload})
	if !ok {
		return
	}
	respond.OK(c, out.Result)
}

func (h *Handler) run(c *gin.Context, in Input) (Outcome, bool) {
	out, err := h.Svc.Analyze(c.Request.Context(), in)
	if err != nil {
		var ve *cvscore.ValidationError
		if errors.As(err, &ve) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, ve.Error(), []map[string]string{
				{"field": ve.Field, "issue": ve.Reason},
			})
			return Outcome{}, false
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to analyse CV", nil)
		return Outcome{}, false
	}
	if out.RecordID != "" {
		c.Header("X-Analysis-Id", out.RecordID)
		middleware.SetAnalysisID(c, out.RecordID)
	}
	return out, true
}

func (h *Handler) getAnalysis(c *gin.Context) {
	record, err := h.Svc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrRecordingDisabled):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to fetch analysis", nil)
		}
		return
	}
	respond.OK(c, record)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := defaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if errors.Is(err, ErrRecordingDisabled) {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis history is disabled", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list analyses", nil)
		return
	}
	respond.Page(c, items, limit, offset)
}
