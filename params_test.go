//go:build unit

package flyan

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorlane/Flyan/internal/pkg/refdata"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFlightSearchParams_Validate(t *testing.T) {
	ref, err := refdata.New()
	require.NoError(t, err)

	validParams := func() FlightSearchParams {
		return FlightSearchParams{
			FromAirport: "DUB",
			ToAirport:   "BCN",
			FromDate:    date(2025, time.August, 15),
			ToDate:      date(2025, time.August, 20),
			MaxPrice:    200,
		}
	}

	validateRequest := func(mutate func(p *FlightSearchParams), wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			params := validParams()
			mutate(&params)
			params = params.normalized()

			err := params.validate(ref)

			if wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, wantErr)
		}
	}

	t.Run("valid", validateRequest(func(p *FlightSearchParams) {}, nil))

	t.Run("valid_without_destination", validateRequest(func(p *FlightSearchParams) {
		p.ToAirport = ""
		p.MaxPrice = 0
	}, nil))

	t.Run("lowercase_codes_accepted", validateRequest(func(p *FlightSearchParams) {
		p.FromAirport = "dub"
		p.ToAirport = "bcn"
	}, nil))

	t.Run("missing_from_airport", validateRequest(func(p *FlightSearchParams) {
		p.FromAirport = ""
	}, ErrInvalidAirportCode))

	t.Run("unknown_from_airport", validateRequest(func(p *FlightSearchParams) {
		p.FromAirport = "XXX"
	}, ErrInvalidAirportCode))

	t.Run("malformed_from_airport", validateRequest(func(p *FlightSearchParams) {
		p.FromAirport = "DUBLIN"
	}, ErrInvalidAirportCode))

	t.Run("unknown_to_airport", validateRequest(func(p *FlightSearchParams) {
		p.ToAirport = "ZZZ"
	}, ErrInvalidAirportCode))

	t.Run("missing_from_date", validateRequest(func(p *FlightSearchParams) {
		p.FromDate = time.Time{}
	}, ErrInvalidDateRange))

	t.Run("inverted_dates", validateRequest(func(p *FlightSearchParams) {
		p.FromDate = date(2025, time.August, 21)
	}, ErrInvalidDateRange))

	t.Run("inverted_dates_win_over_price", validateRequest(func(p *FlightSearchParams) {
		p.FromDate = date(2025, time.August, 21)
		p.MaxPrice = -5
	}, ErrInvalidDateRange))

	t.Run("airport_error_wins_over_dates", validateRequest(func(p *FlightSearchParams) {
		p.FromAirport = "XXX"
		p.FromDate = date(2025, time.August, 21)
	}, ErrInvalidAirportCode))

	t.Run("malformed_time", validateRequest(func(p *FlightSearchParams) {
		p.DepartureTimeFrom = "9am"
	}, ErrInvalidTimeWindow))

	t.Run("out_of_range_time", validateRequest(func(p *FlightSearchParams) {
		p.DepartureTimeTo = "25:00"
	}, ErrInvalidTimeWindow))

	t.Run("inverted_time_window", validateRequest(func(p *FlightSearchParams) {
		p.DepartureTimeFrom = "18:00"
		p.DepartureTimeTo = "06:00"
	}, ErrInvalidTimeWindow))

	t.Run("negative_max_price", validateRequest(func(p *FlightSearchParams) {
		p.MaxPrice = -1
	}, ErrInvalidPrice))
}

func TestReturnFlightSearchParams_Validate(t *testing.T) {
	ref, err := refdata.New()
	require.NoError(t, err)

	validParams := func() ReturnFlightSearchParams {
		return ReturnFlightSearchParams{
			FlightSearchParams: FlightSearchParams{
				FromAirport: "DUB",
				ToAirport:   "BCN",
				FromDate:    date(2025, time.August, 15),
				ToDate:      date(2025, time.August, 20),
			},
			ReturnDateFrom: date(2025, time.August, 22),
			ReturnDateTo:   date(2025, time.August, 25),
		}
	}

	validateRequest := func(mutate func(p *ReturnFlightSearchParams), wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			params := validParams()
			mutate(&params)
			params = params.normalized()

			err := params.validate(ref)

			if wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, wantErr)
		}
	}

	t.Run("valid", validateRequest(func(p *ReturnFlightSearchParams) {}, nil))

	t.Run("missing_return_dates", validateRequest(func(p *ReturnFlightSearchParams) {
		p.ReturnDateFrom = time.Time{}
		p.ReturnDateTo = time.Time{}
	}, ErrInvalidDateRange))

	t.Run("return_before_outbound", validateRequest(func(p *ReturnFlightSearchParams) {
		p.ReturnDateFrom = date(2025, time.August, 10)
		p.ReturnDateTo = date(2025, time.August, 12)
	}, ErrInvalidDateRange))

	t.Run("inverted_return_dates", validateRequest(func(p *ReturnFlightSearchParams) {
		p.ReturnDateFrom = date(2025, time.August, 25)
		p.ReturnDateTo = date(2025, time.August, 22)
	}, ErrInvalidDateRange))

	t.Run("inverted_inbound_time_window", validateRequest(func(p *ReturnFlightSearchParams) {
		p.InboundDepartureTimeFrom = "20:00"
		p.InboundDepartureTimeTo = "08:00"
	}, ErrInvalidTimeWindow))
}

func TestFlightSearchParams_Normalized(t *testing.T) {
	params := FlightSearchParams{
		FromAirport: "dub",
		ToAirport:   "bcn",
		FromDate:    date(2025, time.August, 15),
		ToDate:      date(2025, time.August, 20),
	}

	got := params.normalized()

	assert.Equal(t, "DUB", got.FromAirport)
	assert.Equal(t, "BCN", got.ToAirport)
	assert.Equal(t, "00:00", got.DepartureTimeFrom)
	assert.Equal(t, "23:59", got.DepartureTimeTo)

	// the caller's value stays untouched
	assert.Equal(t, "dub", params.FromAirport)
	assert.Empty(t, params.DepartureTimeFrom)
}

func TestFlightSearchParams_APIQuery(t *testing.T) {
	queryRequest := func(params FlightSearchParams, want map[string]string) func(t *testing.T) {
		return func(t *testing.T) {
			query := params.normalized().apiQuery()

			got := make(map[string]string, len(query))
			for key := range query {
				got[key] = query.Get(key)
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("apiQuery() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	base := FlightSearchParams{
		FromAirport: "DUB",
		FromDate:    date(2025, time.August, 15),
		ToDate:      date(2025, time.August, 20),
	}

	t.Run("search_all_destinations", queryRequest(base, map[string]string{
		"departureAirportIataCode":  "DUB",
		"outboundDepartureDateFrom": "2025-08-15",
		"outboundDepartureDateTo":   "2025-08-20",
		"outboundDepartureTimeFrom": "00:00",
		"outboundDepartureTimeTo":   "23:59",
	}))

	withAirport := base
	withAirport.ToAirport = "BCN"
	withAirport.DestinationCountry = "es"
	withAirport.MaxPrice = 200

	t.Run("airport_wins_over_country", queryRequest(withAirport, map[string]string{
		"departureAirportIataCode":  "DUB",
		"outboundDepartureDateFrom": "2025-08-15",
		"outboundDepartureDateTo":   "2025-08-20",
		"outboundDepartureTimeFrom": "00:00",
		"outboundDepartureTimeTo":   "23:59",
		"arrivalAirportIataCode":    "BCN",
		"priceValueTo":              "200",
	}))

	withCountry := base
	withCountry.DestinationCountry = "ES"

	t.Run("country_only", queryRequest(withCountry, map[string]string{
		"departureAirportIataCode":  "DUB",
		"outboundDepartureDateFrom": "2025-08-15",
		"outboundDepartureDateTo":   "2025-08-20",
		"outboundDepartureTimeFrom": "00:00",
		"outboundDepartureTimeTo":   "23:59",
		"arrivalCountryCode":        "es",
	}))
}

func TestReturnFlightSearchParams_APIQuery(t *testing.T) {
	params := ReturnFlightSearchParams{
		FlightSearchParams: FlightSearchParams{
			FromAirport: "DUB",
			ToAirport:   "BCN",
			FromDate:    date(2025, time.August, 15),
			ToDate:      date(2025, time.August, 20),
		},
		ReturnDateFrom: date(2025, time.August, 22),
		ReturnDateTo:   date(2025, time.August, 25),
	}

	query := params.normalized().apiQuery()

	assert.Equal(t, "2025-08-22", query.Get("inboundDepartureDateFrom"))
	assert.Equal(t, "2025-08-25", query.Get("inboundDepartureDateTo"))
	assert.Equal(t, "00:00", query.Get("inboundDepartureTimeFrom"))
	assert.Equal(t, "23:59", query.Get("inboundDepartureTimeTo"))
	assert.Equal(t, "BCN", query.Get("arrivalAirportIataCode"))
}
