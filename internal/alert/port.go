package alert

import (
	"errors"
	"time"
)

// ErrAudioUnavailable reports that no audio output could be opened.
var ErrAudioUnavailable = errors.New("audio output unavailable")

// ToneKind selects one of the built-in tones.
type ToneKind string

const (
	ToneComplete ToneKind = "complete"
	ToneWarning  ToneKind = "warning"
)

// Port delivers alerts to the user. Both calls are best effort: they must
// return quickly and silently do nothing when the capability is missing.
type Port interface {
	Vibrate(pattern []time.Duration)
	PlayTone(kind ToneKind)
}

// Vibrator is the vibration half of a Port.
type Vibrator interface {
	Vibrate(pattern []time.Duration)
}

// TonePlayer is the sound half of a Port.
type TonePlayer interface {
	PlayTone(kind ToneKind)
}

// Combine joins a vibrator and a tone player into one Port. Nil halves are
// replaced by no-ops.
func Combine(vibrator Vibrator, player TonePlayer) Port {
	if vibrator == nil {
		vibrator = NopPort{}
	}
	if player == nil {
		player = NopPort{}
	}
	return combined{vibrator: vibrator, player: player}
}

type combined struct {
	vibrator Vibrator
	player   TonePlayer
}

func (port combined) Vibrate(pattern []time.Duration) { port.vibrator.Vibrate(pattern) }
func (port combined) PlayTone(kind ToneKind)          { port.player.PlayTone(kind) }

// NopPort discards every alert.
type NopPort struct{}

func (NopPort) Vibrate([]time.Duration) {}
func (NopPort) PlayTone(ToneKind)       {}

// Vibrators fans one vibration out to several vibrators.
type Vibrators []Vibrator

func (vibrators Vibrators) Vibrate(pattern []time.Duration) {
	for _, vibrator := range vibrators {
		if vibrator != nil {
			vibrator.Vibrate(pattern)
		}
	}
}
