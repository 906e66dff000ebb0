package httpserver

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/tinytelemetry/logbook/internal/logquery"
	"github.com/tinytelemetry/logbook/internal/model"
)

const (
	errContentRequired  = "jsonData is required"
	errContentNotObject = "jsonData must be a JSON object"
	errInvalidBody      = "invalid JSON body"
	errInternal         = "Internal Server Error"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "Backend server is running!")
}

func (s *Server) handleListLogs(c *gin.Context) {
	params := model.ListParams{
		Page:     queryInt(c, "page", model.DefaultPage),
		Limit:    queryInt(c, "limit", model.DefaultLimit),
		Severity: c.Query("severity"),
	}

	page, err := s.svc.List(c.Request.Context(), params)
	if err != nil {
		s.writeError(c, "list logs", err)
		return
	}
	// PureJSON leaves <, > and & in documents unescaped.
	c.PureJSON(http.StatusOK, page)
}

// queryInt reads the leading integer of a query parameter, so "2abc" is 2.
// Missing, non-numeric or non-positive values fall back to def. Values too
// large for an int saturate.
func queryInt(c *gin.Context, key string, def int) int {
	n, ok := leadingInt(c.Query(key))
	if !ok || n < 1 {
		return def
	}
	return n
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

type createLogRequest struct {
	JSONData model.Document `json:"jsonData"`
}

func (s *Server) handleCreateLog(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	var req createLogRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := binding.JSON.BindBody(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
			return
		}
	}
	if req.JSONData.IsFalsy() {
		c.JSON(http.StatusBadRequest, gin.H{"error": errContentRequired})
		return
	}

	entry, err := s.svc.Create(c.Request.Context(), req.JSONData)
	if err != nil {
		s.writeError(c, "create log", err)
		return
	}
	s.metrics.logsCreated.WithLabelValues(model.SeverityLabel(entry.Content.Severity())).Inc()
	c.PureJSON(http.StatusCreated, entry)
}

// writeError maps a service error onto a status code. Store failures are
// logged with their cause and answered with a generic payload.
func (s *Server) writeError(c *gin.Context, op string, err error) {
	switch logquery.KindOf(err) {
	case logquery.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": errContentNotObject})
	default:
		log.Printf("httpserver: %s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
		"driver": s.opts.Driver,
	}

	if s.opts.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.opts.Health.Ping(ctx); err != nil {
			log.Printf("httpserver: health ping: %v", err)
			status = http.StatusServiceUnavailable
			body["status"] = "unavailable"
		}
	}
	c.JSON(status, body)
}
