package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Pinger checks the document store connection.
type Pinger interface {
	Ping() error
}

// RootChecker verifies that the archive root is an existing directory.
type RootChecker interface {
	CheckRoot() error
}

// HealthController reports on the document store and the archive root. A
// nil dependency is reported as "not configured" and does not fail the check.
type HealthController struct {
	db      Pinger
	root    RootChecker
	version string
}

func NewHealthController(db Pinger, root RootChecker, version string) *HealthController {
	return &HealthController{db: db, root: root, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string, 2)
	healthy := true

	record := func(name string, configured bool, check func() error) {
		if !configured {
			checks[name] = "not configured"
			return
		}
		if err := check(); err != nil {
			checks[name] = "error: " + err.Error()
			healthy = false
			return
		}
		checks[name] = "ok"
	}
	record("database", h.db != nil, func() error { return h.db.Ping() })
	record("archive_root", h.root != nil, func() error { return h.root.CheckRoot() })

	response := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}
	statusCode := http.StatusOK
	if !healthy {
		response.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}
	c.IndentedJSON(statusCode, response)
}
