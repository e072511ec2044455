package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/userbase/userbase-server/internal/logger"
	"github.com/userbase/userbase-server/internal/model"
	"github.com/userbase/userbase-server/internal/service"
)

// BulkService defines the two batch ingestion strategies.
type BulkService interface {
	BulkInsert(ctx context.Context, users []model.User) (service.BulkResult, error)
	BulkInsertLoop(ctx context.Context, users []model.User) (service.BulkResult, error)
}

// UserGenerator produces candidate users for seeding.
type UserGenerator interface {
	GenerateUsers(count int) []model.User
}

const (
	strategyBulk = "bulk"
	strategyLoop = "loop"

	defaultSeedCount = 10000
)

// Seed handles bulk user ingestion endpoints.
type Seed struct {
	bulkService BulkService
	generator   UserGenerator
	logger      *logger.Logger
}

// NewSeed creates a new Seed handler.
func NewSeed(bulkService BulkService, generator UserGenerator, logger *logger.Logger) *Seed {
	return &Seed{
		bulkService: bulkService,
		generator:   generator,
		logger:      logger,
	}
}

type seedResponse struct {
	Message       string `json:"message"`
	InsertedCount int    `json:"insertedCount"`
	FailedCount   int    `json:"failedCount"`
	ElapsedMs     int64  `json:"elapsedMs"`
}

// BulkInsertUsers generates count fake users and ingests them with the
// requested strategy ("bulk" or "loop", default loop).
func (h *Seed) BulkInsertUsers(w http.ResponseWriter, r *http.Request) {
	count := queryInt(r, "count", defaultSeedCount)
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = strategyLoop
	}

	h.logger.Info("starting bulk user insertion", "count", count, "strategy", strategy)

	users := h.generator.GenerateUsers(count)

	var result service.BulkResult
	var err error
	switch strategy {
	case strategyBulk:
		result, err = h.bulkService.BulkInsert(r.Context(), users)
	case strategyLoop:
		result, err = h.bulkService.BulkInsertLoop(r.Context(), users)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "invalid strategy",
			Detail: fmt.Sprintf("strategy must be %q or %q", strategyBulk, strategyLoop),
		})
		return
	}
	if err != nil {
		h.logger.Error("Seed handler: bulk insert failed", "strategy", strategy, "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, seedResponse{
		Message:       fmt.Sprintf("Inserted %d users.", result.Inserted),
		InsertedCount: result.Inserted,
		FailedCount:   result.Failed,
		ElapsedMs:     result.Elapsed.Milliseconds(),
	})
}
