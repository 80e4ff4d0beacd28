package flyan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/victorlane/Flyan/internal/pkg/refdata"
)

// Wire shapes of the fare-finder payload. Entries arrive under "fares";
// a return fare carries both legs plus a summary price.
type fareResponse struct {
	Fares []fareEntry `json:"fares"`
}

type fareEntry struct {
	Outbound      *fareLeg      `json:"outbound"`
	Inbound       *fareLeg      `json:"inbound"`
	Summary       *fareSummary  `json:"summary"`
	PreviousPrice PreviousPrice `json:"previousPrice"`
}

type fareLeg struct {
	DepartureAirport fareAirport   `json:"departureAirport"`
	ArrivalAirport   fareAirport   `json:"arrivalAirport"`
	DepartureDate    string        `json:"departureDate"`
	ArrivalDate      string        `json:"arrivalDate"`
	Price            *farePrice    `json:"price"`
	FlightKey        string        `json:"flightKey"`
	FlightNumber     string        `json:"flightNumber"`
	PreviousPrice    PreviousPrice `json:"previousPrice"`
}

type fareAirport struct {
	CountryName string `json:"countryName"`
	IataCode    string `json:"iataCode"`
	Name        string `json:"name"`
	SeoName     string `json:"seoName"`
	City        struct {
		Name        string `json:"name"`
		Code        string `json:"code"`
		CountryCode string `json:"countryCode"`
	} `json:"city"`
}

type farePrice struct {
	Value        float64 `json:"value"`
	CurrencyCode string  `json:"currencyCode"`
}

type fareSummary struct {
	Price *farePrice `json:"price"`
}

// mapOneways converts a one-way payload into Flights, preserving the order
// the remote service returned. Entries missing structurally required
// fields (flight key, price, parseable dates) are skipped with a warning;
// zero fares map to an empty slice.
func (c *Client) mapOneways(ctx context.Context, payload []byte) ([]Flight, error) {
	var response fareResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, fmt.Errorf("decode one-way fares: %w", err)
	}

	flights := make([]Flight, 0, len(response.Fares))

	for i, fare := range response.Fares {
		flight, err := c.mapLeg(fare.Outbound)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping malformed fare entry",
				slog.Int("index", i), slog.Any("error", err))

			continue
		}

		flights = append(flights, flight)
	}

	return flights, nil
}

// mapReturns converts a round-trip payload into ReturnFlights with the same
// tolerances as mapOneways; both legs must be structurally complete.
func (c *Client) mapReturns(ctx context.Context, payload []byte) ([]ReturnFlight, error) {
	var response fareResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, fmt.Errorf("decode round-trip fares: %w", err)
	}

	returns := make([]ReturnFlight, 0, len(response.Fares))

	for i, fare := range response.Fares {
		outbound, err := c.mapLeg(fare.Outbound)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping malformed fare entry",
				slog.Int("index", i), slog.String("leg", "outbound"), slog.Any("error", err))

			continue
		}

		inbound, err := c.mapLeg(fare.Inbound)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping malformed fare entry",
				slog.Int("index", i), slog.String("leg", "inbound"), slog.Any("error", err))

			continue
		}

		if fare.Summary == nil || fare.Summary.Price == nil {
			c.logger.WarnContext(ctx, "skipping malformed fare entry",
				slog.Int("index", i), slog.Any("error", fmt.Errorf("missing summary price")))

			continue
		}

		returns = append(returns, ReturnFlight{
			Outbound:        outbound,
			Inbound:         inbound,
			SummaryPrice:    fare.Summary.Price.Value,
			SummaryCurrency: fare.Summary.Price.CurrencyCode,
			PreviousPrice:   fare.PreviousPrice,
		})
	}

	return returns, nil
}

func (c *Client) mapLeg(leg *fareLeg) (Flight, error) {
	if leg == nil {
		return Flight{}, fmt.Errorf("missing fare leg")
	}

	if leg.FlightKey == "" {
		return Flight{}, fmt.Errorf("missing flight key")
	}

	if leg.Price == nil {
		return Flight{}, fmt.Errorf("missing price")
	}

	departure, err := parseFareTime(leg.DepartureDate)
	if err != nil {
		return Flight{}, fmt.Errorf("parse departure date: %w", err)
	}

	arrival, err := parseFareTime(leg.ArrivalDate)
	if err != nil {
		return Flight{}, fmt.Errorf("parse arrival date: %w", err)
	}

	return Flight{
		DepartureAirport: c.resolveAirport(leg.DepartureAirport),
		ArrivalAirport:   c.resolveAirport(leg.ArrivalAirport),
		DepartureDate:    departure,
		ArrivalDate:      arrival,
		Price:            leg.Price.Value,
		Currency:         leg.Price.CurrencyCode,
		FlightKey:        leg.FlightKey,
		FlightNumber:     leg.FlightNumber,
		PreviousPrice:    leg.PreviousPrice,
	}, nil
}

// resolveAirport prefers the bundled reference record, falls back to the
// fields the payload itself carries, and as a last resort keeps a
// code-only Airport. A flight is never dropped for an unknown code.
func (c *Client) resolveAirport(fa fareAirport) Airport {
	code := strings.ToUpper(fa.IataCode)

	if rec, ok := c.ref.Lookup(code); ok {
		return airportFromRef(rec)
	}

	return Airport{
		IATACode:        code,
		Name:            fa.Name,
		SEOName:         fa.SeoName,
		CityName:        fa.City.Name,
		CityCode:        fa.City.Code,
		CountryName:     fa.CountryName,
		CityCountryCode: fa.City.CountryCode,
	}
}

func airportFromRef(rec refdata.Airport) Airport {
	return Airport{
		IATACode:        rec.IATACode,
		Name:            rec.Name,
		SEOName:         rec.SEOName,
		CityName:        rec.CityName,
		CityCode:        rec.CityCode,
		CountryName:     rec.CountryName,
		CityCountryCode: rec.CityCountryCode,
	}
}

// parseFareTime accepts the API's local ISO timestamps, with or without a
// zone offset.
func parseFareTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02T15:04:05", value)
}
