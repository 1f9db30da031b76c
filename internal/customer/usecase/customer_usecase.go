package usecase

import (
	"context"
	"time"

	"github.com/allisson/cardwatch/internal/customer/domain"
)

// customerUseCase implements the CustomerUseCase interface.
type customerUseCase struct {
	customerRepo CustomerRepository
	actionPolicy domain.ActionRequiredPolicy
	clientPolicy domain.ClientStatusPolicy
}

// List returns classified customers matching the filter.
func (c *customerUseCase) List(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerWithExpiration, error) {
	classified, err := c.load(ctx, now, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CustomerWithExpiration, 0, len(classified))
	for _, customer := range classified {
		if filter.Status.Matches(customer) {
			result = append(result, customer)
		}
	}
	return result, nil
}

// Get returns one classified customer.
func (c *customerUseCase) Get(
	ctx context.Context,
	now time.Time,
	currency domain.Currency,
	id string,
) (*domain.CustomerWithExpiration, error) {
	customer, err := c.customerRepo.Get(ctx, currency, id)
	if err != nil {
		return nil, err
	}
	return domain.ClassifyCustomer(customer, now), nil
}

// ActionRequired applies ActionRequiredPolicy to the customers matching the filter.
func (c *customerUseCase) ActionRequired(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerWithExpiration, error) {
	customers, err := c.List(ctx, now, filter)
	if err != nil {
		return nil, err
	}
	return c.actionPolicy.Filter(customers, now), nil
}

// ClientStatuses applies ClientStatusPolicy to the customers matching the filter.
func (c *customerUseCase) ClientStatuses(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerClientStatus, error) {
	customers, err := c.List(ctx, now, filter)
	if err != nil {
		return nil, err
	}

	statuses := c.clientPolicy.EvaluateAll(customers, now)
	if !filter.RequiresActionOnly {
		return statuses, nil
	}

	result := make([]*domain.CustomerClientStatus, 0, len(statuses))
	for _, status := range statuses {
		if status.ActionStatus.RequiresAction {
			result = append(result, status)
		}
	}
	return result, nil
}

// Summary aggregates the customers matching the filter.
func (c *customerUseCase) Summary(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) (domain.SummaryStatistics, error) {
	customers, err := c.List(ctx, now, filter)
	if err != nil {
		return domain.SummaryStatistics{}, err
	}
	return domain.Summarize(customers), nil
}

// load fetches the merchant scope, applies the search term and classifies the result.
func (c *customerUseCase) load(
	ctx context.Context,
	now time.Time,
	filter domain.CustomerFilter,
) ([]*domain.CustomerWithExpiration, error) {
	customers, err := c.customerRepo.List(ctx, filter.Currency)
	if err != nil {
		return nil, err
	}

	matching := make([]*domain.Customer, 0, len(customers))
	for _, customer := range customers {
		if domain.MatchesSearch(customer, filter.Search) {
			matching = append(matching, customer)
		}
	}
	return domain.ClassifyCustomers(matching, now), nil
}

// NewCustomerUseCase creates a new CustomerUseCase.
func NewCustomerUseCase(
	customerRepo CustomerRepository,
	actionPolicy domain.ActionRequiredPolicy,
	clientPolicy domain.ClientStatusPolicy,
) CustomerUseCase {
	return &customerUseCase{
		customerRepo: customerRepo,
		actionPolicy: actionPolicy,
		clientPolicy: clientPolicy,
	}
}
