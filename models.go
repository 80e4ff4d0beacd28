package flyan

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Airport is an immutable reference entity keyed by its IATA code.
type Airport struct {
	IATACode        string `json:"iata_code"`
	Name            string `json:"name"`
	SEOName         string `json:"seo_name"`
	CityName        string `json:"city_name"`
	CityCode        string `json:"city_code"`
	CountryName     string `json:"country_name"`
	CityCountryCode string `json:"city_country_code"`
}

// Flight is one one-way fare as returned by the remote service.
type Flight struct {
	DepartureAirport Airport       `json:"departure_airport"`
	ArrivalAirport   Airport       `json:"arrival_airport"`
	DepartureDate    time.Time     `json:"departure_date"`
	ArrivalDate      time.Time     `json:"arrival_date"`
	Price            float64       `json:"price"`
	Currency         string        `json:"currency"`
	FlightKey        string        `json:"flight_key"`
	FlightNumber     string        `json:"flight_number"`
	PreviousPrice    PreviousPrice `json:"previous_price"`
}

// ReturnFlight pairs an outbound and an inbound fare.
type ReturnFlight struct {
	Outbound        Flight        `json:"outbound"`
	Inbound         Flight        `json:"inbound"`
	SummaryPrice    float64       `json:"summary_price"`
	SummaryCurrency string        `json:"summary_currency"`
	PreviousPrice   PreviousPrice `json:"previous_price"`
}

// PreviousPriceState tags which of the three upstream representations a
// previous-price field arrived in.
type PreviousPriceState int

const (
	// PreviousPriceAbsent means the field was missing or null.
	PreviousPriceAbsent PreviousPriceState = iota
	// PreviousPriceAmount means the field was a plain number.
	PreviousPriceAmount
	// PreviousPriceDisplay means the field was a formatted string such
	// as "59.99€". Amount is additionally set when the string parses.
	PreviousPriceDisplay
)

// PreviousPrice models the upstream previous-price field, which is observed
// to be absent, numeric, or a formatted display string depending on the
// response. Consumers switch on State to handle all three cases.
type PreviousPrice struct {
	State   PreviousPriceState `json:"state"`
	Amount  float64            `json:"amount,omitempty"`
	Display string             `json:"display,omitempty"`
}

func (p *PreviousPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = PreviousPrice{}

		return nil
	}

	var amount float64
	if err := json.Unmarshal(data, &amount); err == nil {
		*p = PreviousPrice{State: PreviousPriceAmount, Amount: amount}

		return nil
	}

	var display string
	if err := json.Unmarshal(data, &display); err == nil {
		parsed := PreviousPrice{State: PreviousPriceDisplay, Display: display}
		if amount, err := parseDisplayAmount(display); err == nil {
			parsed.Amount = amount
		}

		*p = parsed

		return nil
	}

	// Any other shape is treated the same as absent; the field is
	// advisory and must never fail a mapping.
	*p = PreviousPrice{}

	return nil
}

// parseDisplayAmount salvages a numeric amount out of a formatted price
// string such as "59.99€" or "£ 19.99".
func parseDisplayAmount(display string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}

		return -1
	}, display)

	return strconv.ParseFloat(cleaned, 64)
}
