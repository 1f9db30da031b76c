package platform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawCustomer_UnmarshalJSON(t *testing.T) {
	t.Run("Success_ArrayLists", func(t *testing.T) {
		payload := `{
			"id": 1042,
			"firstName": "Ada",
			"customerSince": 1767225600,
			"cards": [{"id": "c1", "first6": 411111, "last4": "4242", "expirationDate": "1126"}],
			"emails": ["ada@example.com", "billing@example.com"]
		}`

		var raw RawCustomer
		require.NoError(t, json.Unmarshal([]byte(payload), &raw))

		assert.Equal(t, flexString("1042"), raw.ID)
		assert.Equal(t, flexInt64{Value: 1767225600, Valid: true}, raw.CustomerSince)
		require.Len(t, raw.Cards, 1)
		assert.Equal(t, flexString("411111"), raw.Cards[0].First6)
		require.NotNil(t, raw.Cards[0].ExpirationDate)
		assert.Equal(t, flexString("1126"), *raw.Cards[0].ExpirationDate)
		assert.Len(t, raw.Emails, 2)
	})

	t.Run("Success_SingleObjectLists", func(t *testing.T) {
		payload := `{
			"id": "c-1",
			"customerSince": "1767225600",
			"cards": {"last4": "0005"},
			"emails": "ada@example.com",
			"addresses": {"street1": "1 Main St", "city": "Toronto"}
		}`

		var raw RawCustomer
		require.NoError(t, json.Unmarshal([]byte(payload), &raw))

		assert.True(t, raw.CustomerSince.Valid)
		require.Len(t, raw.Cards, 1)
		assert.Equal(t, flexString("0005"), raw.Cards[0].Last4)
		assert.Nil(t, raw.Cards[0].ExpirationDate)
		assert.Equal(t, flexList[string]{"ada@example.com"}, raw.Emails)
		require.Len(t, raw.Addresses, 1)
		assert.Equal(t, "Toronto", raw.Addresses[0].City)
	})

	t.Run("Success_NullAndMissing", func(t *testing.T) {
		payload := `{"id": "c-1", "customerSince": null, "cards": null, "phones": ""}`

		var raw RawCustomer
		err := json.Unmarshal([]byte(payload), &raw)

		require.NoError(t, err)
		assert.False(t, raw.CustomerSince.Valid)
		assert.Nil(t, raw.Cards)
		assert.Nil(t, raw.Emails)
		assert.Equal(t, flexList[string]{""}, raw.Phones)
	})

	t.Run("Success_EmptyStringSince", func(t *testing.T) {
		var raw RawCustomer
		require.NoError(t, json.Unmarshal([]byte(`{"customerSince": ""}`), &raw))
		assert.False(t, raw.CustomerSince.Valid)
	})

	t.Run("Error_NonNumericSince", func(t *testing.T) {
		var raw RawCustomer
		assert.Error(t, json.Unmarshal([]byte(`{"customerSince": "yesterday"}`), &raw))
	})

	t.Run("Error_ObjectID", func(t *testing.T) {
		var raw RawCustomer
		assert.Error(t, json.Unmarshal([]byte(`{"id": {"nested": true}}`), &raw))
	})
}
