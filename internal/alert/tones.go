package alert

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the PCM rate used for every synthesized tone.
const SampleRate = 44100

// Tone describes a repeated sine beep.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Gap       time.Duration
	Repeat    int
	Gain      float64
}

// Tones maps each kind to its sound. The warning is lower and quieter than
// the completion beep.
var Tones = map[ToneKind]Tone{
	ToneComplete: {Frequency: 880, Duration: 150 * time.Millisecond, Gap: 100 * time.Millisecond, Repeat: 3, Gain: 0.5},
	ToneWarning:  {Frequency: 660, Duration: 120 * time.Millisecond, Repeat: 1, Gain: 0.2},
}

// fadeDuration ramps each beep in and out to avoid clicks.
const fadeDuration = 5 * time.Millisecond

// Synthesize renders tone as mono signed 16-bit little-endian PCM.
func Synthesize(tone Tone, sampleRate int) []byte {
	if tone.Repeat <= 0 {
		tone.Repeat = 1
	}
	beep := samplesFor(tone.Duration, sampleRate)
	gap := samplesFor(tone.Gap, sampleRate)
	fade := samplesFor(fadeDuration, sampleRate)
	if fade*2 > beep {
		fade = beep / 2
	}

	total := tone.Repeat*beep + (tone.Repeat-1)*gap
	pcm := make([]byte, total*2)
	offset := 0
	for r := 0; r < tone.Repeat; r++ {
		for i := 0; i < beep; i++ {
			envelope := 1.0
			if fade > 0 {
				if i < fade {
					envelope = float64(i) / float64(fade)
				} else if beep-i <= fade {
					envelope = float64(beep-i-1) / float64(fade)
				}
			}
			value := math.Sin(2*math.Pi*tone.Frequency*float64(i)/float64(sampleRate)) * tone.Gain * envelope
			sample := int16(value * math.MaxInt16)
			binary.LittleEndian.PutUint16(pcm[offset:], uint16(sample))
			offset += 2
		}
		if r < tone.Repeat-1 {
			offset += gap * 2
		}
	}
	return pcm
}

func samplesFor(duration time.Duration, sampleRate int) int {
	return int(duration * time.Duration(sampleRate) / time.Second)
}
