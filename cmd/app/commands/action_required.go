package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/allisson/cardwatch/internal/customer/domain"
	customerUseCase "github.com/allisson/cardwatch/internal/customer/usecase"
)

type actionRequiredOutput struct {
	Currency            domain.Currency `json:"currency"`
	ID                  string          `json:"id"`
	DisplayName         string          `json:"display_name"`
	Card                string          `json:"card,omitempty"`
	Status              string          `json:"status"`
	DaysUntilExpiration *int            `json:"days_until_expiration,omitempty"`
}

// RunActionRequired prints the business customers needing follow-up, most urgent first.
func RunActionRequired(
	ctx context.Context,
	customerUseCase customerUseCase.CustomerUseCase,
	logger *slog.Logger,
	writer io.Writer,
	now time.Time,
	filter domain.CustomerFilter,
	format string,
) error {
	customers, err := customerUseCase.ActionRequired(ctx, now, filter)
	if err != nil {
		return fmt.Errorf("failed to list action-required customers: %w", err)
	}

	logger.Info("action-required worklist built",
		slog.Time("as_of", now),
		slog.Int("customers", len(customers)),
	)

	if format == "json" {
		output := make([]actionRequiredOutput, 0, len(customers))
		for _, customer := range customers {
			output = append(output, toActionRequiredOutput(customer))
		}
		return writeJSON(writer, output)
	}
	return outputActionRequiredText(writer, customers)
}

func toActionRequiredOutput(customer *domain.CustomerWithExpiration) actionRequiredOutput {
	output := actionRequiredOutput{
		Currency:    customer.Customer.Currency,
		ID:          customer.Customer.ID,
		DisplayName: customer.Customer.DisplayName(),
		Status:      "no-cards",
	}
	if card, ok := customer.MostRelevantCard(); ok {
		output.Card = card.Card.MaskedNumber()
		output.Status = string(card.Status)
		if card.ExpirationDate != nil {
			days := card.DaysUntilExpiration
			output.DaysUntilExpiration = &days
		}
	}
	return output
}

func outputActionRequiredText(w io.Writer, customers []*domain.CustomerWithExpiration) error {
	if len(customers) == 0 {
		_, err := fmt.Fprintln(w, "No customers require action")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CURRENCY\tID\tCUSTOMER\tCARD\tSTATUS\tDAYS")
	for _, customer := range customers {
		output := toActionRequiredOutput(customer)
		days := "-"
		if output.DaysUntilExpiration != nil {
			days = strconv.Itoa(*output.DaysUntilExpiration)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			output.Currency, output.ID, output.DisplayName, output.Card, output.Status, days)
	}
	return tw.Flush()
}
