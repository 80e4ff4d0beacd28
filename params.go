package flyan

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/victorlane/Flyan/internal/pkg/refdata"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	dayStart = "00:00"
	dayEnd   = "23:59"
)

// FlightSearchParams describes a one-way fare search. FromAirport and the
// date range are required; everything else narrows the search. Empty time
// windows default to the full day.
type FlightSearchParams struct {
	FromAirport        string    `json:"from_airport"`
	ToAirport          string    `json:"to_airport,omitempty"`
	DestinationCountry string    `json:"destination_country,omitempty"`
	FromDate           time.Time `json:"from_date"`
	ToDate             time.Time `json:"to_date"`
	MaxPrice           int       `json:"max_price,omitempty"`
	DepartureTimeFrom  string    `json:"departure_time_from,omitempty"`
	DepartureTimeTo    string    `json:"departure_time_to,omitempty"`
}

// ReturnFlightSearchParams describes a return fare search: the embedded
// outbound criteria plus a required inbound date range.
type ReturnFlightSearchParams struct {
	FlightSearchParams

	ReturnDateFrom           time.Time `json:"return_date_from"`
	ReturnDateTo             time.Time `json:"return_date_to"`
	InboundDepartureTimeFrom string    `json:"inbound_departure_time_from,omitempty"`
	InboundDepartureTimeTo   string    `json:"inbound_departure_time_to,omitempty"`
}

// normalized returns a copy with upper-cased codes and full-day defaults
// applied, leaving the caller's value untouched.
func (p FlightSearchParams) normalized() FlightSearchParams {
	p.FromAirport = strings.ToUpper(p.FromAirport)
	p.ToAirport = strings.ToUpper(p.ToAirport)
	p.DestinationCountry = strings.ToLower(p.DestinationCountry)

	if p.DepartureTimeFrom == "" {
		p.DepartureTimeFrom = dayStart
	}

	if p.DepartureTimeTo == "" {
		p.DepartureTimeTo = dayEnd
	}

	return p
}

func (p ReturnFlightSearchParams) normalized() ReturnFlightSearchParams {
	p.FlightSearchParams = p.FlightSearchParams.normalized()

	if p.InboundDepartureTimeFrom == "" {
		p.InboundDepartureTimeFrom = dayStart
	}

	if p.InboundDepartureTimeTo == "" {
		p.InboundDepartureTimeTo = dayEnd
	}

	return p
}

// validate applies the validation rules in order; the first failure wins.
// It is deterministic and has no side effects.
func (p FlightSearchParams) validate(ref *refdata.Store) error {
	if err := p.validateRoute(ref); err != nil {
		return err
	}

	if err := validateDateRange(p.FromDate, p.ToDate, "from_date", "to_date"); err != nil {
		return err
	}

	if err := validateTimeWindow(p.DepartureTimeFrom, p.DepartureTimeTo, "departure_time"); err != nil {
		return err
	}

	return p.validatePrice()
}

func (p ReturnFlightSearchParams) validate(ref *refdata.Store) error {
	if err := p.validateRoute(ref); err != nil {
		return err
	}

	if err := validateDateRange(p.FromDate, p.ToDate, "from_date", "to_date"); err != nil {
		return err
	}

	if err := validateDateRange(p.ReturnDateFrom, p.ReturnDateTo, "return_date_from", "return_date_to"); err != nil {
		return err
	}

	if p.ReturnDateFrom.Before(p.FromDate) {
		return fmt.Errorf("%w: return_date_from must not be before from_date", ErrInvalidDateRange)
	}

	if err := validateTimeWindow(p.DepartureTimeFrom, p.DepartureTimeTo, "departure_time"); err != nil {
		return err
	}

	if err := validateTimeWindow(p.InboundDepartureTimeFrom, p.InboundDepartureTimeTo,
		"inbound_departure_time"); err != nil {
		return err
	}

	return p.validatePrice()
}

func (p FlightSearchParams) validateRoute(ref *refdata.Store) error {
	if err := checkVar(p.FromAirport, "required,len=3,alpha", ErrInvalidAirportCode, "from_airport"); err != nil {
		return err
	}

	if _, ok := ref.Lookup(p.FromAirport); !ok {
		return fmt.Errorf("%w: %q is not a known airport", ErrInvalidAirportCode, p.FromAirport)
	}

	if p.ToAirport != "" {
		if err := checkVar(p.ToAirport, "len=3,alpha", ErrInvalidAirportCode, "to_airport"); err != nil {
			return err
		}

		if _, ok := ref.Lookup(p.ToAirport); !ok {
			return fmt.Errorf("%w: %q is not a known airport", ErrInvalidAirportCode, p.ToAirport)
		}
	}

	return nil
}

func (p FlightSearchParams) validatePrice() error {
	if p.MaxPrice == 0 {
		return nil
	}

	return checkVar(p.MaxPrice, "gt=0", ErrInvalidPrice, "max_price")
}

func validateDateRange(from, to time.Time, fromField, toField string) error {
	if from.IsZero() {
		return fmt.Errorf("%w: %s is required", ErrInvalidDateRange, fromField)
	}

	if to.IsZero() {
		return fmt.Errorf("%w: %s is required", ErrInvalidDateRange, toField)
	}

	if from.After(to) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, fromField, toField)
	}

	return nil
}

func validateTimeWindow(from, to, field string) error {
	if err := checkVar(from, "datetime=15:04", ErrInvalidTimeWindow, field+"_from"); err != nil {
		return err
	}

	if err := checkVar(to, "datetime=15:04", ErrInvalidTimeWindow, field+"_to"); err != nil {
		return err
	}

	fromClock, _ := time.Parse(clockLayout, from)
	toClock, _ := time.Parse(clockLayout, to)

	if fromClock.After(toClock) {
		return fmt.Errorf("%w: %s_from is after %s_to", ErrInvalidTimeWindow, field, field)
	}

	return nil
}

// apiQuery renders the query parameters the fare-finder API expects. When
// both a destination airport and a destination country are given the
// airport wins; sending both is ambiguous upstream.
func (p FlightSearchParams) apiQuery() url.Values {
	query := url.Values{}
	query.Set("departureAirportIataCode", p.FromAirport)
	query.Set("outboundDepartureDateFrom", p.FromDate.Format(dateLayout))
	query.Set("outboundDepartureDateTo", p.ToDate.Format(dateLayout))
	query.Set("outboundDepartureTimeFrom", p.DepartureTimeFrom)
	query.Set("outboundDepartureTimeTo", p.DepartureTimeTo)

	switch {
	case p.ToAirport != "":
		query.Set("arrivalAirportIataCode", p.ToAirport)
	case p.DestinationCountry != "":
		query.Set("arrivalCountryCode", p.DestinationCountry)
	}

	if p.MaxPrice > 0 {
		query.Set("priceValueTo", strconv.Itoa(p.MaxPrice))
	}

	return query
}

func (p ReturnFlightSearchParams) apiQuery() url.Values {
	query := p.FlightSearchParams.apiQuery()
	query.Set("inboundDepartureDateFrom", p.ReturnDateFrom.Format(dateLayout))
	query.Set("inboundDepartureDateTo", p.ReturnDateTo.Format(dateLayout))
	query.Set("inboundDepartureTimeFrom", p.InboundDepartureTimeFrom)
	query.Set("inboundDepartureTimeTo", p.InboundDepartureTimeTo)

	return query
}
