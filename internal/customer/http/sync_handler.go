package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/customer/http/dto"
	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
	"github.com/allisson/cardwatch/internal/httputil"
	customValidation "github.com/allisson/cardwatch/internal/validation"
)

// SyncHandler handles HTTP requests that trigger and inspect merchant synchronization.
type SyncHandler struct {
	syncUseCase customerUseCase.SyncUseCase
	logger      *slog.Logger
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(syncUseCase customerUseCase.SyncUseCase, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		syncUseCase: syncUseCase,
		logger:      logger,
	}
}

// SyncHandler synchronizes one merchant account, or all of them when no currency is given.
// POST /v1/sync?currency=
// Returns 200 OK with the recorded runs. Failed runs are still recorded and listed by
// RunsHandler.
func (h *SyncHandler) SyncHandler(c *gin.Context) {
	var req dto.SyncRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if req.Currency == "" {
		runs, err := h.syncUseCase.SyncAll(c.Request.Context())
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, dto.MapSyncRunsToListResponse(runs))
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	run, err := h.syncUseCase.Sync(c.Request.Context(), currency)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSyncRunsToListResponse([]*domain.SyncRun{run}))
}

// RunsHandler lists the latest run of every merchant account.
// GET /v1/sync/runs
func (h *SyncHandler) RunsHandler(c *gin.Context) {
	runs, err := h.syncUseCase.LatestRuns(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSyncRunsToListResponse(runs))
}
