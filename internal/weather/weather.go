// Package weather provides current conditions and hazard alerts for a
// location. Only a fixed stub provider exists today.
package weather

import (
	"context"
	"fmt"
)

// Location is a point given in decimal degrees.
type Location struct {
	Lat float64
	Lng float64
}

// String formats the location as "lat,lng".
func (l Location) String() string {
	return fmt.Sprintf("%.4f,%.4f", l.Lat, l.Lng)
}

// Valid reports whether the coordinates are within range.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Weather is the current weather at a location.
type Weather struct {
	TemperatureCelsius float64
	Conditions         string // e.g. Sunny, Cloudy, Rainy
	Humidity           int    // percent
}

// RiskLevel grades a hazard alert.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// Alert is the current hazard alert for a location.
type Alert struct {
	RiskLevel   RiskLevel
	Description string
}

// Provider fetches weather and alerts.
type Provider interface {
	Weather(ctx context.Context, loc Location) (Weather, error)
	Alert(ctx context.Context, loc Location) (Alert, error)
}
