package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cardwatch/internal/customer/http/dto"
	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
	"github.com/allisson/cardwatch/internal/httputil"
	customValidation "github.com/allisson/cardwatch/internal/validation"
)

// ReportHandler handles expiration report downloads.
type ReportHandler struct {
	reportUseCase customerUseCase.ReportUseCase
	location      *time.Location
	clock         Clock
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(
	reportUseCase customerUseCase.ReportUseCase,
	loc *time.Location,
	clock Clock,
	logger *slog.Logger,
) *ReportHandler {
	if clock == nil {
		clock = time.Now
	}
	return &ReportHandler{
		reportUseCase: reportUseCase,
		location:      loc,
		clock:         clock,
		logger:        logger,
	}
}

// ExpirationPDFHandler renders the expiration report as a PDF download.
// GET /v1/reports/expiration.pdf?currency=&as_of=
func (h *ReportHandler) ExpirationPDFHandler(c *gin.Context) {
	var query dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := query.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	currency, err := query.CurrencyFilter()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	now, err := dto.ParseAsOf(query.AsOf, h.clock(), h.location)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	report, err := h.reportUseCase.Build(c.Request.Context(), now, currency)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Render fully before writing so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.reportUseCase.RenderPDF(report, &buf); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", customerUseCase.ReportFilename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
