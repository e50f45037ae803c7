// Package telemetry provides mood tracking, bookmarking, and snapshots for
// the pet simulation.
package telemetry

import (
	"context"
	"log/slog"
)

// EventType identifies game events.
type EventType string

const (
	EventStart       EventType = "start"
	EventFeed        EventType = "feed"
	EventPlay        EventType = "play"
	EventEat         EventType = "eat"
	EventBounce      EventType = "bounce"
	EventKick        EventType = "kick"
	EventBallExpired EventType = "ball_expired"
	EventPrompt      EventType = "prompt"
	EventDeath       EventType = "death"
)

// Event is a single game event with the mood at the time it happened.
type Event struct {
	Type      EventType `csv:"type"`
	Tick      int32     `csv:"tick"`
	SimTime   float64   `csv:"sim_time"`
	Fullness  float64   `csv:"fullness"`
	Happiness float64   `csv:"happiness"`
	Detail    string    `csv:"detail"`
}

// NewEvent creates an event stamped with the current tick and mood.
func NewEvent(typ EventType, tick int32, simTime, fullness, happiness float64) Event {
	return Event{
		Type:      typ,
		Tick:      tick,
		SimTime:   simTime,
		Fullness:  fullness,
		Happiness: happiness,
	}
}

// WithDetail returns a copy of the event carrying extra text.
func (e Event) WithDetail(detail string) Event {
	e.Detail = detail
	return e
}

// LogEvent logs the event using slog.
func (e Event) LogEvent() {
	attrs := []any{
		"type", string(e.Type),
		"tick", e.Tick,
		"sim_time", e.SimTime,
		"fullness", e.Fullness,
		"happiness", e.Happiness,
	}
	if e.Detail != "" {
		attrs = append(attrs, "detail", e.Detail)
	}
	level := slog.LevelInfo
	if e.Type == EventBounce {
		level = slog.LevelDebug // fires on every touch before the apple ripens
	}
	slog.Log(context.Background(), level, "event", attrs...)
}
