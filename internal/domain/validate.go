package domain

import (
	"encoding/json"
	"math"
	"strings"
)

// DefaultCurrency is applied when the client omits the currency field.
// The data layer does not validate the code against an enumeration; the UI
// constrains the choices.
const DefaultCurrency = "USD"

// ValidateNewEntry checks a candidate entry before persistence and normalizes
// its optional fields in place. OwnerEmail, Title and Content must be
// non-empty; everything else is optional. Currency defaults to USD and
// Expenses to an empty list.
func ValidateNewEntry(e *Entry) error {
	e.OwnerEmail = strings.TrimSpace(e.OwnerEmail)
	e.Title = strings.TrimSpace(e.Title)
	e.Content = strings.TrimSpace(e.Content)
	if e.OwnerEmail == "" || e.Title == "" || e.Content == "" {
		return Validationf("required fields missing: userEmail, title, and content")
	}
	if e.Currency == "" {
		e.Currency = DefaultCurrency
	}
	if e.Expenses == nil {
		e.Expenses = []ExpenseLine{}
	}
	for i, line := range e.Expenses {
		if strings.TrimSpace(line.Category) == "" {
			return Validationf("expense line %d: category is required", i)
		}
		if line.Amount < 0 || math.IsNaN(line.Amount) || math.IsInf(line.Amount, 0) {
			return Validationf("expense line %d: amount must be a non-negative number", i)
		}
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	if e.Location != nil {
		if err := validateLocation(e.Location); err != nil {
			return err
		}
	}
	return nil
}

// validateLocation enforces the shape downstream map rendering assumes:
// a "Point" with exactly two finite coordinates in longitude/latitude order.
func validateLocation(loc *Location) error {
	if loc.Kind != "Point" {
		return Validationf("malformed location payload: type must be \"Point\"")
	}
	if len(loc.Coordinates) != 2 {
		return Validationf("malformed location payload: coordinates must be [longitude, latitude]")
	}
	lon, lat := loc.Coordinates[0], loc.Coordinates[1]
	for _, v := range loc.Coordinates {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Validationf("malformed location payload: coordinates must be finite")
		}
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return Validationf("malformed location payload: coordinates out of range")
	}
	return nil
}

// ParseLocation deserializes the location form field. Multipart submissions
// carry it as a JSON string; an empty string means no location was tagged.
func ParseLocation(raw string) (*Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var loc Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return nil, Validationf("malformed location payload")
	}
	if err := validateLocation(&loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// ParseExpenses deserializes the expenses form field; an empty string means
// no expense lines were entered.
func ParseExpenses(raw string) ([]ExpenseLine, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []ExpenseLine{}, nil
	}
	var lines []ExpenseLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, Validationf("malformed expenses payload")
	}
	return lines, nil
}
