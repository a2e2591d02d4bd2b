package timer

import (
	"time"

	"fitbuddy/internal/core/model"
)

// EventType defines the type of Session event.
type EventType string

const (
	EventState           EventType = "state"
	EventAlert           EventType = "alert"
	EventSettingsChanged EventType = "settings_changed"
)

// Event represents a Session update for observers.
type Event struct {
	Type   EventType
	Action string
	State  State
	Alerts []Alert
	Config model.TimerConfig
	At     time.Time
}
