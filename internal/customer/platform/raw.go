package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawCard is a card as returned by the platform, before normalization.
type RawCard struct {
	ID                  flexString  `json:"id"`
	First6              flexString  `json:"first6"`
	Last4               flexString  `json:"last4"`
	CardholderFirstName string      `json:"cardholderFirstName"`
	CardholderLastName  string      `json:"cardholderLastName"`
	ExpirationDate      *flexString `json:"expirationDate"`
	CardType            string      `json:"cardType"`
}

// RawAddress is a postal address as returned by the platform.
type RawAddress struct {
	Street1    string `json:"street1"`
	Street2    string `json:"street2"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// RawMetadata holds the free-form metadata the merchant attaches to a customer.
type RawMetadata struct {
	BusinessName string `json:"businessName"`
}

// RawCustomer is a customer as returned by the platform. Nested lists may arrive as
// null, a single object or an array.
type RawCustomer struct {
	ID               flexString           `json:"id"`
	FirstName        string               `json:"firstName"`
	LastName         string               `json:"lastName"`
	BusinessName     string               `json:"businessName"`
	CustomerSince    flexInt64            `json:"customerSince"`
	MarketingConsent bool                 `json:"marketingConsent"`
	Metadata         *RawMetadata         `json:"metadata"`
	Cards            flexList[RawCard]    `json:"cards"`
	Emails           flexList[string]     `json:"emails"`
	Phones           flexList[string]     `json:"phones"`
	Addresses        flexList[RawAddress] `json:"addresses"`
}

// flexList decodes null, a single value or an array of values into a slice.
type flexList[T any] []T

func (l *flexList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*l = nil
		return nil
	case data[0] == '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}
		*l = flexList[T]{item}
		return nil
	}
}

// flexString decodes a JSON string or number into a string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = flexString(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(number.String())
	return nil
}

// flexInt64 decodes a JSON number, a numeric string, an empty string or null.
type flexInt64 struct {
	Value int64
	Valid bool
}

func (n *flexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = flexInt64{}
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*n = flexInt64{}
			return nil
		}
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		floatValue, floatErr := strconv.ParseFloat(text, 64)
		if floatErr != nil {
			return fmt.Errorf("expected integer, got %s", data)
		}
		value = int64(floatValue)
	}
	*n = flexInt64{Value: value, Valid: true}
	return nil
}
