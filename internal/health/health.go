// Package health reports process liveness and database reachability.
package health

import (
	"math"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GameXcalibur/LynxATS/internal/connection"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	timestampFormat = "2006-01-02T15:04:05.000Z07:00"
)

// StateReporter exposes the state of the database connection.
type StateReporter interface {
	State() connection.State
}

// Memory usage in whole megabytes.
type Memory struct {
	RSSMB      uint64 `json:"rss_mb"`
	HeapUsedMB uint64 `json:"heap_used_mb"`
}

// Response is the body of GET /api/health.
type Response struct {
	Status    string `json:"status"`
	Uptime    int64  `json:"uptime"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Memory    Memory `json:"memory"`
}

// Reporter builds health responses. It only reads state.
type Reporter struct {
	db      StateReporter
	started time.Time
	now     func() time.Time
}

func NewReporter(db StateReporter, started time.Time) *Reporter {
	return &Reporter{db: db, started: started, now: time.Now}
}

// Report returns the HTTP status code and body: 200 and "ok" only when
// the database is connected, 503 and "degraded" otherwise.
func (r *Reporter) Report() (int, Response) {
	now := r.now()
	state := r.db.State()
	healthy := state == connection.Connected

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	resp := Response{
		Status:    StatusDegraded,
		Uptime:    int64(now.Sub(r.started) / time.Second),
		Timestamp: now.UTC().Format(timestampFormat),
		DB:        "state_" + strconv.Itoa(int(state)),
		Memory: Memory{
			RSSMB:      toMB(ms.Sys),
			HeapUsedMB: toMB(ms.HeapAlloc),
		},
	}
	if healthy {
		resp.Status = StatusOK
		resp.DB = "connected"
		return http.StatusOK, resp
	}
	return http.StatusServiceUnavailable, resp
}

// Handler serves GET /api/health.
func (r *Reporter) Handler(c *gin.Context) {
	code, resp := r.Report()
	c.JSON(code, resp)
}

func toMB(b uint64) uint64 {
	return uint64(math.Round(float64(b) / 1024 / 1024))
}
