package dto

import (
	"time"

	"github.com/allisson/cardwatch/internal/customer/domain"
)

// CardResponse represents a classified card in API responses.
type CardResponse struct {
	ID                  string  `json:"id,omitempty"`
	MaskedNumber        string  `json:"masked_number"`
	CardholderFirstName string  `json:"cardholder_first_name,omitempty"`
	CardholderLastName  string  `json:"cardholder_last_name,omitempty"`
	CardType            string  `json:"card_type,omitempty"`
	ExpirationCode      *string `json:"expiration_code"`
	ExpirationDate      *string `json:"expiration_date"`
	Status              string  `json:"status"`
	DaysUntilExpiration *int    `json:"days_until_expiration"`
	WarningLevel        string  `json:"warning_level"`
}

// MapCardToResponse converts a card classification to an API response. Day counts and
// dates are null for cards without a usable expiration code.
func MapCardToResponse(e domain.ExpirationClassification) CardResponse {
	response := CardResponse{
		ID:                  e.Card.ID,
		MaskedNumber:        e.Card.MaskedNumber(),
		CardholderFirstName: e.Card.CardholderFirstName,
		CardholderLastName:  e.Card.CardholderLastName,
		CardType:            e.Card.CardType,
		ExpirationCode:      e.Card.ExpirationCode,
		Status:              string(e.Status),
		WarningLevel:        string(e.WarningLevel),
	}
	if e.ExpirationDate != nil {
		date := e.ExpirationDate.Format(DateLayout)
		days := e.DaysUntilExpiration
		response.ExpirationDate = &date
		response.DaysUntilExpiration = &days
	}
	return response
}

// CustomerResponse represents a classified customer in API responses.
type CustomerResponse struct {
	ID               string           `json:"id"`
	Currency         string           `json:"currency"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	BusinessName     string           `json:"business_name,omitempty"`
	DisplayName      string           `json:"display_name"`
	CustomerSince    *time.Time       `json:"customer_since"`
	MarketingConsent bool             `json:"marketing_consent"`
	Emails           []string         `json:"emails"`
	Phones           []string         `json:"phones"`
	Addresses        []domain.Address `json:"addresses"`
	Cards            []CardResponse   `json:"cards"`
	TotalCards       int              `json:"total_cards"`
	HasExpired       bool             `json:"has_expired"`
	HasExpiringSoon  bool             `json:"has_expiring_soon"`
	MostRelevantCard *CardResponse    `json:"most_relevant_card"`
	SyncedAt         time.Time        `json:"synced_at"`
}

// MapCustomerToResponse converts a classified customer to an API response.
func MapCustomerToResponse(c *domain.CustomerWithExpiration) CustomerResponse {
	cards := make([]CardResponse, 0, len(c.Expirations))
	for _, e := range c.Expirations {
		cards = append(cards, MapCardToResponse(e))
	}

	response := CustomerResponse{
		ID:               c.Customer.ID,
		Currency:         string(c.Customer.Currency),
		FirstName:        c.Customer.FirstName,
		LastName:         c.Customer.LastName,
		BusinessName:     c.Customer.BusinessName,
		DisplayName:      c.Customer.DisplayName(),
		CustomerSince:    c.Customer.CustomerSince,
		MarketingConsent: c.Customer.MarketingConsent,
		Emails:           nonNil(c.Customer.Emails),
		Phones:           nonNil(c.Customer.Phones),
		Addresses:        nonNil(c.Customer.Addresses),
		Cards:            cards,
		TotalCards:       c.TotalCards(),
		HasExpired:       c.HasExpired,
		HasExpiringSoon:  c.HasExpiringSoon,
		SyncedAt:         c.Customer.SyncedAt,
	}
	if card, ok := c.MostRelevantCard(); ok {
		relevant := MapCardToResponse(*card)
		response.MostRelevantCard = &relevant
	}
	return response
}

// ListCustomersResponse represents a paginated list of customers in API responses.
type ListCustomersResponse struct {
	Data   []CustomerResponse `json:"data"`
	Total  int                `json:"total"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

// MapCustomersToListResponse converts one page of classified customers to a list response.
func MapCustomersToListResponse(
	customers []*domain.CustomerWithExpiration,
	total, offset, limit int,
) ListCustomersResponse {
	data := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		data = append(data, MapCustomerToResponse(c))
	}
	return ListCustomersResponse{Data: data, Total: total, Offset: offset, Limit: limit}
}

// ClientStatusResponse is a customer annotated with its client status.
type ClientStatusResponse struct {
	CustomerResponse
	ClientStatus   string `json:"client_status"`
	Priority       string `json:"priority"`
	DaysOld        int    `json:"days_old"`
	HasCards       bool   `json:"has_cards"`
	RequiresAction bool   `json:"requires_action"`
	ActionMessage  string `json:"action_message"`
}

// ListClientStatusesResponse represents a paginated list of client statuses.
type ListClientStatusesResponse struct {
	Data   []ClientStatusResponse `json:"data"`
	Total  int                    `json:"total"`
	Offset int                    `json:"offset"`
	Limit  int                    `json:"limit"`
}

// MapClientStatusesToListResponse converts one page of client statuses to a list response.
func MapClientStatusesToListResponse(
	statuses []*domain.CustomerClientStatus,
	total, offset, limit int,
) ListClientStatusesResponse {
	data := make([]ClientStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		data = append(data, ClientStatusResponse{
			CustomerResponse: MapCustomerToResponse(s.CustomerWithExpiration),
			ClientStatus:     string(s.ActionStatus.Status),
			Priority:         string(s.ActionStatus.Priority),
			DaysOld:          s.ActionStatus.DaysOld,
			HasCards:         s.ActionStatus.HasCards,
			RequiresAction:   s.ActionStatus.RequiresAction,
			ActionMessage:    s.ActionStatus.ActionMessage,
		})
	}
	return ListClientStatusesResponse{Data: data, Total: total, Offset: offset, Limit: limit}
}

// StatusCountResponse holds the customers and cards in one status.
type StatusCountResponse struct {
	Customers int `json:"customers"`
	Cards     int `json:"cards"`
}

// SummaryResponse represents dashboard statistics in API responses.
type SummaryResponse struct {
	AsOf           string              `json:"as_of"`
	TotalCustomers int                 `json:"total_customers"`
	TotalCards     int                 `json:"total_cards"`
	Expired        StatusCountResponse `json:"expired"`
	ExpiringSoon   StatusCountResponse `json:"expiring_soon"`
	ExpiringLater  StatusCountResponse `json:"expiring_later"`
}

// MapSummaryToResponse converts summary statistics to an API response.
func MapSummaryToResponse(stats domain.SummaryStatistics, asOf time.Time) SummaryResponse {
	return SummaryResponse{
		AsOf:           asOf.Format(DateLayout),
		TotalCustomers: stats.TotalCustomers,
		TotalCards:     stats.TotalCards,
		Expired:        StatusCountResponse(stats.Expired),
		ExpiringSoon:   StatusCountResponse(stats.ExpiringSoon),
		ExpiringLater:  StatusCountResponse(stats.ExpiringLater),
	}
}

// SyncRunResponse represents a sync run in API responses.
type SyncRunResponse struct {
	ID            string    `json:"id"`
	Currency      string    `json:"currency"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	DurationMs    int64     `json:"duration_ms"`
	CustomerCount int       `json:"customer_count"`
	CardCount     int       `json:"card_count"`
	ChangedCount  int       `json:"changed_count"`
	RejectedCount int       `json:"rejected_count"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
}

// MapSyncRunToResponse converts a domain sync run to an API response.
func MapSyncRunToResponse(run *domain.SyncRun) SyncRunResponse {
	return SyncRunResponse{
		ID:            run.ID.String(),
		Currency:      string(run.Currency),
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		DurationMs:    run.Duration().Milliseconds(),
		CustomerCount: run.CustomerCount,
		CardCount:     run.CardCount,
		ChangedCount:  run.ChangedCount,
		RejectedCount: run.RejectedCount,
		Status:        string(run.Status),
		Error:         run.Error,
	}
}

// ListSyncRunsResponse represents a list of sync runs in API responses.
type ListSyncRunsResponse struct {
	Data []SyncRunResponse `json:"data"`
}

// MapSyncRunsToListResponse converts sync runs to a list API response.
func MapSyncRunsToListResponse(runs []*domain.SyncRun) ListSyncRunsResponse {
	data := make([]SyncRunResponse, 0, len(runs))
	for _, run := range runs {
		data = append(data, MapSyncRunToResponse(run))
	}
	return ListSyncRunsResponse{Data: data}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
