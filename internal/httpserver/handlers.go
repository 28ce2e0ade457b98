package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/report"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ruleResponse struct {
	ID          string `json:"id"`
	AppliesTo   string `json:"applies_to"`
	Description string `json:"description"`
}

func (s *Server) handleRules(c *gin.Context) {
	defs := s.engines[report.ModeFull].Rules()
	rules := make([]ruleResponse, 0, len(defs))
	for _, d := range defs {
		rules = append(rules, ruleResponse{ID: d.ID, AppliesTo: string(d.AppliesTo), Description: d.Description})
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// handleValidate checks the request body. The response is the JSON report
// with status 200 when valid and 422 when not.
func (s *Server) handleValidate(c *gin.Context) {
	mode, err := report.ParseModeName(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format := document.ParseFormat(c.Query("format"))
	if format == document.FormatUnknown {
		format = formatFromContentType(c.ContentType())
	}

	res, err := s.engines[mode].CheckReader(c.Request.Context(), "<request>", c.Request.Body, format)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("X-Run-ID", res.RunID)
	if res.Version != "" {
		c.Header("X-OpenAPI-Version", res.Version)
	}
	status := http.StatusOK
	if !res.Report.Valid {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, res.Report)
}

func formatFromContentType(ct string) document.Format {
	switch ct {
	case "application/json":
		return document.FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return document.FormatYAML
	}
	return document.FormatUnknown
}

func (s *Server) writeError(c *gin.Context, err error) {
	var parseErr *oaserrors.ParseError
	switch {
	case errors.As(err, &parseErr):
		body := gin.H{"error": parseErr.Error()}
		if parseErr.Line > 0 {
			body["line"] = parseErr.Line
			body["column"] = parseErr.Column
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, oaserrors.ErrResourceLimit):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		s.logger.Error("validation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
