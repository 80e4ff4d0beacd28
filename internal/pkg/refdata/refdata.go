// Package refdata holds the static airport and currency tables bundled
// with the library. The tables are parsed once at store construction and
// are read-only afterwards, so a Store is safe to share between goroutines.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed airports.json currencies.json
var dataFS embed.FS

// Airport is one flattened record from the bundled airport table.
type Airport struct {
	IATACode        string
	Name            string
	SEOName         string
	CityName        string
	CityCode        string
	CountryName     string
	CityCountryCode string
}

// airportRecord mirrors the nested shape the upstream aggregate feed uses,
// which is also the shape airports.json is stored in.
type airportRecord struct {
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

// Store is the immutable lookup table set.
type Store struct {
	airports   map[string]Airport
	currencies map[string]string
}

// New parses the embedded tables. A missing or corrupt table is a
// packaging error and fails construction; it never surfaces mid-search.
func New() (*Store, error) {
	airportBytes, err := dataFS.ReadFile("airports.json")
	if err != nil {
		return nil, fmt.Errorf("read bundled airport table: %w", err)
	}

	var records map[string]airportRecord
	if err := json.Unmarshal(airportBytes, &records); err != nil {
		return nil, fmt.Errorf("parse bundled airport table: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("bundled airport table is empty")
	}

	currencyBytes, err := dataFS.ReadFile("currencies.json")
	if err != nil {
		return nil, fmt.Errorf("read bundled currency table: %w", err)
	}

	var currencies map[string]string
	if err := json.Unmarshal(currencyBytes, &currencies); err != nil {
		return nil, fmt.Errorf("parse bundled currency table: %w", err)
	}

	if len(currencies) == 0 {
		return nil, fmt.Errorf("bundled currency table is empty")
	}

	airports := make(map[string]Airport, len(records))
	for code, rec := range records {
		code = strings.ToUpper(code)
		airports[code] = Airport{
			IATACode:        code,
			Name:            rec.Name,
			SEOName:         rec.SeoName,
			CityName:        rec.City.Name,
			CityCode:        rec.City.Code,
			CountryName:     rec.CountryName,
			CityCountryCode: rec.City.CountryCode,
		}
	}

	return &Store{airports: airports, currencies: currencies}, nil
}

// Lookup resolves a 3-letter IATA code, case-insensitively.
func (s *Store) Lookup(code string) (Airport, bool) {
	airport, ok := s.airports[strings.ToUpper(code)]
	return airport, ok
}

// ValidCurrency reports whether code is in the bundled currency table.
func (s *Store) ValidCurrency(code string) bool {
	_, ok := s.currencies[strings.ToUpper(code)]
	return ok
}

// CurrencySymbol returns the display symbol for a currency code.
func (s *Store) CurrencySymbol(code string) (string, bool) {
	symbol, ok := s.currencies[strings.ToUpper(code)]
	return symbol, ok
}

// AirportCount reports the number of bundled airport records.
func (s *Store) AirportCount() int {
	return len(s.airports)
}
