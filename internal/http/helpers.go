package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/database/chapters"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

func respondInternalError(c *gin.Context, log *slog.Logger, err error, context string) {
	log.Error("internal error", "context", context, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// respondArchiveError maps archive and store errors onto HTTP statuses.
func respondArchiveError(c *gin.Context, log *slog.Logger, err error, context string) {
	switch {
	case errors.Is(err, chapters.ErrChapterNotFound):
		respondNotFound(c, "chapter")
	case errors.Is(err, archive.ErrUnknownFormat),
		errors.Is(err, archive.ErrInvalidBook),
		errors.Is(err, archive.ErrMissingChapterNumber),
		errors.Is(err, chapters.ErrInvalidChapter):
		log.Error("rejected request", "context", context, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_request"})
	default:
		respondInternalError(c, log, err, context)
	}
}

// --- Parameter Parsing ---

func parseIntParam(c *gin.Context, paramName string) (int, bool) {
	n, err := strconv.Atoi(c.Param(paramName))
	if err != nil || n <= 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return n, true
}

// parseFormats reads repeated ?format= query values. No value means every
// format.
func parseFormats(c *gin.Context) ([]archive.Format, bool) {
	formats, err := archive.ParseFormats(c.QueryArray("format"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return nil, false
	}
	return formats, true
}

func formatNames(formats []archive.Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return names
}
