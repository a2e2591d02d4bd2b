package alert

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"fitbuddy/internal/safego"
)

// speaker is an opened audio output.
type speaker interface {
	Resume() error
	Play(pcm []byte) error
}

// AudioPort plays tones through a single audio context owned by one worker
// goroutine. The context is opened on the first tone, not at construction.
type AudioPort struct {
	logger *zap.Logger
	open   func() (speaker, error)
	queue  chan ToneKind
	done   chan struct{}
	wg     sync.WaitGroup

	closeOnce sync.Once
	// Touched only by the worker.
	out    speaker
	failed bool
	cache  map[ToneKind][]byte
}

// NewAudioPort starts the playback worker.
func NewAudioPort(logger *zap.Logger) *AudioPort {
	return newAudioPort(logger, openOto)
}

func newAudioPort(logger *zap.Logger, open func() (speaker, error)) *AudioPort {
	if logger == nil {
		logger = zap.NewNop()
	}
	port := &AudioPort{
		logger: logger,
		open:   open,
		queue:  make(chan ToneKind, 4),
		done:   make(chan struct{}),
		cache:  make(map[ToneKind][]byte),
	}
	port.wg.Add(1)
	safego.Go(logger, port.run)
	return port
}

// PlayTone queues kind for playback. When the queue is full the tone is
// dropped.
func (port *AudioPort) PlayTone(kind ToneKind) {
	select {
	case <-port.done:
		return
	default:
	}
	select {
	case port.queue <- kind:
	default:
		port.logger.Debug("tone dropped", zap.String("kind", string(kind)))
	}
}

// Vibrate is not supported by audio output.
func (port *AudioPort) Vibrate([]time.Duration) {}

// Close stops the worker and waits for the current tone to finish.
func (port *AudioPort) Close() {
	port.closeOnce.Do(func() {
		close(port.done)
	})
	port.wg.Wait()
}

func (port *AudioPort) run() {
	defer port.wg.Done()
	for {
		select {
		case <-port.done:
			return
		case kind := <-port.queue:
			port.play(kind)
		}
	}
}

func (port *AudioPort) play(kind ToneKind) {
	if port.failed {
		return
	}
	if port.out == nil {
		out, err := port.open()
		if err != nil {
			port.failed = true
			port.logger.Warn("audio disabled", zap.Error(err))
			return
		}
		port.out = out
	}
	if err := port.out.Resume(); err != nil {
		port.logger.Debug("audio resume failed", zap.Error(err))
		return
	}

	pcm, ok := port.cache[kind]
	if !ok {
		tone, known := Tones[kind]
		if !known {
			port.logger.Warn("unknown tone", zap.String("kind", string(kind)))
			return
		}
		pcm = Synthesize(tone, SampleRate)
		port.cache[kind] = pcm
	}
	if err := port.out.Play(pcm); err != nil {
		port.logger.Debug("tone playback failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

type otoSpeaker struct {
	context *oto.Context
}

func openOto() (speaker, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	<-ready
	return &otoSpeaker{context: context}, nil
}

func (out *otoSpeaker) Resume() error {
	return out.context.Resume()
}

func (out *otoSpeaker) Play(pcm []byte) error {
	player := out.context.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Err()
}
