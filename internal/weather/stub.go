package weather

import (
	"context"
	"fmt"
)

// Stub is a Provider that returns the same values for every location.
type Stub struct{}

var _ Provider = Stub{}

func (Stub) Weather(ctx context.Context, loc Location) (Weather, error) {
	if err := check(ctx, loc); err != nil {
		return Weather{}, err
	}
	return Weather{
		TemperatureCelsius: 25,
		Conditions:         "Sunny",
		Humidity:           60,
	}, nil
}

func (Stub) Alert(ctx context.Context, loc Location) (Alert, error) {
	if err := check(ctx, loc); err != nil {
		return Alert{}, err
	}
	return Alert{
		RiskLevel:   RiskLow,
		Description: "No current alerts for this location.",
	}, nil
}

func check(ctx context.Context, loc Location) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !loc.Valid() {
		return fmt.Errorf("invalid location %s", loc)
	}
	return nil
}
