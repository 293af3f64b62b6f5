package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	db  *sql.DB
	env string
}

func NewHealthHandler(db *sql.DB, env string) *HealthHandler {
	return &HealthHandler{db: db, env: env}
}

// Check reports process liveness and database reachability.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	state := "ok"
	dbState := "connected"
	if err := h.db.Ping(); err != nil {
		status = http.StatusServiceUnavailable
		state = "error"
		dbState = "disconnected"
	}
	c.JSON(status, gin.H{
		"status":      state,
		"database":    dbState,
		"timestamp":   time.Now().Format(time.RFC3339),
		"environment": h.env,
	})
}
