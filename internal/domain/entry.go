package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Entry is a single journal record authored by a user, optionally geo-tagged,
// photographed, and expense-tracked. Entries are immutable after creation;
// the backend supports create, list and delete only.
type Entry struct {
	ID         uint          `gorm:"primaryKey" json:"id"`                      // Primary key
	OwnerEmail string        `gorm:"index;not null" json:"userEmail"`           // Owner lookup key (email, not a FK)
	Title      string        `gorm:"not null" json:"title"`                     // Entry title
	Content    string        `gorm:"not null" json:"content"`                   // Free-form story body
	Location   *Location     `gorm:"serializer:json" json:"location,omitempty"` // Optional geo tag
	Country    string        `json:"country,omitempty"`                         // Optional, free-form or reverse-geocoded
	Currency   string        `gorm:"default:USD" json:"currency"`               // 3-letter code, defaults to USD
	Expenses   []ExpenseLine `gorm:"serializer:json" json:"expenses"`           // Ordered expense lines
	Images     []string      `gorm:"serializer:json" json:"images"`             // Upload paths, stored verbatim
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"createdAt"`           // Server-set, immutable
}

// Location is a GeoJSON point as submitted by the map widget:
// coordinates are [longitude, latitude].
type Location struct {
	Kind        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Name        string    `json:"name,omitempty"`
}

// ExpenseLine is one category/amount pair within an entry's expense list.
type ExpenseLine struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// UnmarshalJSON accepts the amount as a JSON number, a numeric string (the
// form serializes everything to strings), or null/absent, which counts as 0.
// Anything else is a malformed line.
func (l *ExpenseLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		Category string          `json:"category"`
		Amount   json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Category = raw.Category
	l.Amount = 0
	if len(raw.Amount) == 0 || string(raw.Amount) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw.Amount, &l.Amount); err == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Amount, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("non-numeric amount %q", s)
		}
		l.Amount = v
		return nil
	}
	return fmt.Errorf("non-numeric amount %s", raw.Amount)
}
