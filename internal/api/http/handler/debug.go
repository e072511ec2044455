package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/userbase/userbase-server/internal/logger"
)

// Debug exposes operational test endpoints: liveness, fake-data preview and
// a direct bulk insert.
type Debug struct {
	bulkService BulkService
	generator   UserGenerator
	logger      *logger.Logger
}

// NewDebug creates a new Debug handler.
func NewDebug(bulkService BulkService, generator UserGenerator, logger *logger.Logger) *Debug {
	return &Debug{
		bulkService: bulkService,
		generator:   generator,
		logger:      logger,
	}
}

// Ping reports server liveness.
func (h *Debug) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Server is alive",
		"timestamp": time.Now().UTC(),
	})
}

// Fake returns generated users without persisting them.
func (h *Debug) Fake(w http.ResponseWriter, r *http.Request) {
	count := queryInt(r, "count", 5)
	users := h.generator.GenerateUsers(count)

	h.logger.Info("generated fake users", "count", count)

	writeJSON(w, http.StatusOK, users)
}

// InsertDirect generates users and writes them with the single bulk
// strategy, bypassing the seed endpoint's strategy selection.
func (h *Debug) InsertDirect(w http.ResponseWriter, r *http.Request) {
	count := queryInt(r, "count", 10)
	users := h.generator.GenerateUsers(count)

	result, err := h.bulkService.BulkInsert(r.Context(), users)
	if err != nil {
		h.logger.Error("Debug handler: direct insert failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("inserted users directly", "count", result.Inserted)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Inserted %d users directly.", result.Inserted),
	})
}
