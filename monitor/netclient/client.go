// Package netclient talks to the assistant backend. The device sends plain
// text queries and receives either free-form replies or trip directions.
package netclient

import (
	"context"
	"errors"
)

// TripDirections is one navigation answer from the backend.
type TripDirections struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	Duration     string   `json:"duration"`
	Distance     string   `json:"distance"`
	Instructions []string `json:"instructions"`
}

// Client is the backend collaborator. Implementations do not retry; callers
// decide what a failed query means for the UI.
type Client interface {
	Query(ctx context.Context, text string) (string, error)
	Directions(ctx context.Context, from, to string) (TripDirections, error)
}

// ErrUnavailable is returned when the platform has no network stack.
var ErrUnavailable = errors.New("netclient: backend unavailable")

// Unavailable is the Client for builds without a usable network stack.
// Every call fails with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Query(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Directions(context.Context, string, string) (TripDirections, error) {
	return TripDirections{}, ErrUnavailable
}
