//go:build unit

package flyan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviousPrice_UnmarshalJSON(t *testing.T) {
	unmarshalRequest := func(raw string, want PreviousPrice) func(t *testing.T) {
		return func(t *testing.T) {
			var got PreviousPrice
			require.NoError(t, json.Unmarshal([]byte(raw), &got))
			assert.Equal(t, want, got)
		}
	}

	t.Run("null", unmarshalRequest(`null`, PreviousPrice{}))

	t.Run("number", unmarshalRequest(`59.99`,
		PreviousPrice{State: PreviousPriceAmount, Amount: 59.99}))

	t.Run("integer", unmarshalRequest(`60`,
		PreviousPrice{State: PreviousPriceAmount, Amount: 60}))

	t.Run("formatted_string", unmarshalRequest(`"59.99€"`,
		PreviousPrice{State: PreviousPriceDisplay, Amount: 59.99, Display: "59.99€"}))

	t.Run("prefixed_string", unmarshalRequest(`"£ 19.99"`,
		PreviousPrice{State: PreviousPriceDisplay, Amount: 19.99, Display: "£ 19.99"}))

	t.Run("opaque_string", unmarshalRequest(`"n/a"`,
		PreviousPrice{State: PreviousPriceDisplay, Display: "n/a"}))

	t.Run("unexpected_shape_is_absent", unmarshalRequest(`{"value": 1}`, PreviousPrice{}))
}

func TestPreviousPrice_AbsentWhenFieldMissing(t *testing.T) {
	var leg fareLeg
	require.NoError(t, json.Unmarshal([]byte(`{"flightKey": "FR1"}`), &leg))

	assert.Equal(t, PreviousPriceAbsent, leg.PreviousPrice.State)
}
