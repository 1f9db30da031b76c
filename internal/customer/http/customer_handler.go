// Package http provides HTTP handlers for the customer expiration views, merchant
// synchronization and report downloads.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cardwatch/internal/customer/domain"
	"github.com/allisson/cardwatch/internal/customer/http/dto"
	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
	"github.com/allisson/cardwatch/internal/httputil"
	customValidation "github.com/allisson/cardwatch/internal/validation"
)

// Clock returns the current instant. Handlers take it as a dependency so tests can pin "now".
type Clock func() time.Time

// CustomerHandler handles HTTP requests for the classified customer views.
type CustomerHandler struct {
	customerUseCase customerUseCase.CustomerUseCase
	location        *time.Location
	clock           Clock
	logger          *slog.Logger
}

// NewCustomerHandler creates a new customer handler. Reference instants are resolved in loc.
func NewCustomerHandler(
	customerUseCase customerUseCase.CustomerUseCase,
	loc *time.Location,
	clock Clock,
	logger *slog.Logger,
) *CustomerHandler {
	if clock == nil {
		clock = time.Now
	}
	return &CustomerHandler{
		customerUseCase: customerUseCase,
		location:        loc,
		clock:           clock,
		logger:          logger,
	}
}

// parseQuery binds and validates the shared customer query parameters. It writes the
// error response itself and reports false when the request cannot proceed.
func (h *CustomerHandler) parseQuery(c *gin.Context) (domain.CustomerFilter, time.Time, bool) {
	var query dto.CustomerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return domain.CustomerFilter{}, time.Time{}, false
	}

	if err := query.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return domain.CustomerFilter{}, time.Time{}, false
	}

	filter, err := query.Filter()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return domain.CustomerFilter{}, time.Time{}, false
	}

	now, err := query.ReferenceTime(h.clock(), h.location)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return domain.CustomerFilter{}, time.Time{}, false
	}

	return filter, now, true
}

// ListHandler lists classified customers in last name, first name order.
// GET /v1/customers?currency=&status=&search=&as_of=&offset=&limit=
func (h *CustomerHandler) ListHandler(c *gin.Context) {
	filter, now, ok := h.parseQuery(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	customers, err := h.customerUseCase.List(c.Request.Context(), now, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCustomersToListResponse(
		httputil.Page(customers, offset, limit), len(customers), offset, limit))
}

// GetHandler retrieves one classified customer.
// GET /v1/customers/:currency/:id
func (h *CustomerHandler) GetHandler(c *gin.Context) {
	currency, err := domain.ParseCurrency(c.Param("currency"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	now, err := dto.ParseAsOf(c.Query("as_of"), h.clock(), h.location)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	customer, err := h.customerUseCase.Get(c.Request.Context(), now, currency, c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCustomerToResponse(customer))
}

// ActionRequiredHandler lists the business customers needing follow-up, most urgent first.
// GET /v1/worklist/action-required
func (h *CustomerHandler) ActionRequiredHandler(c *gin.Context) {
	filter, now, ok := h.parseQuery(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	customers, err := h.customerUseCase.ActionRequired(c.Request.Context(), now, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCustomersToListResponse(
		httputil.Page(customers, offset, limit), len(customers), offset, limit))
}

// ClientStatusHandler lists customers with their client status and priority.
// GET /v1/worklist/client-status?requires_action=true
func (h *CustomerHandler) ClientStatusHandler(c *gin.Context) {
	filter, now, ok := h.parseQuery(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	statuses, err := h.customerUseCase.ClientStatuses(c.Request.Context(), now, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientStatusesToListResponse(
		httputil.Page(statuses, offset, limit), len(statuses), offset, limit))
}

// SummaryHandler returns dashboard statistics.
// GET /v1/summary
func (h *CustomerHandler) SummaryHandler(c *gin.Context) {
	filter, now, ok := h.parseQuery(c)
	if !ok {
		return
	}

	stats, err := h.customerUseCase.Summary(c.Request.Context(), now, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummaryToResponse(stats, now))
}
