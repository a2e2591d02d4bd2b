package alert

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeSpeaker struct {
	mu        sync.Mutex
	resumeErr error
	resumed   int
	played    [][]byte
}

func (s *fakeSpeaker) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumed++
	return s.resumeErr
}

func (s *fakeSpeaker) Play(pcm []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played = append(s.played, pcm)
	return nil
}

func (s *fakeSpeaker) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumed, len(s.played)
}

func TestAudioPortOpensOnceAndResumes(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := &fakeSpeaker{}
	opened := 0
	port := newAudioPort(zap.NewNop(), func() (speaker, error) {
		opened++
		return out, nil
	})

	port.PlayTone(ToneWarning)
	require.Eventually(t, func() bool { _, played := out.counts(); return played == 1 }, time.Second, time.Millisecond)
	port.PlayTone(ToneComplete)
	require.Eventually(t, func() bool { _, played := out.counts(); return played == 2 }, time.Second, time.Millisecond)
	port.Close()

	resumed, _ := out.counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 2, resumed)
}

func TestAudioPortUnavailableIsSilent(t *testing.T) {
	defer goleak.VerifyNone(t)

	attempts := 0
	port := newAudioPort(zap.NewNop(), func() (speaker, error) {
		attempts++
		return nil, ErrAudioUnavailable
	})
	port.PlayTone(ToneComplete)
	port.PlayTone(ToneComplete)
	time.Sleep(20 * time.Millisecond)
	port.Close()

	assert.LessOrEqual(t, attempts, 1)
	port.PlayTone(ToneComplete)
}

func TestAudioPortSkipsToneWhenResumeFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := &fakeSpeaker{resumeErr: errors.New("suspended")}
	port := newAudioPort(zap.NewNop(), func() (speaker, error) { return out, nil })
	port.PlayTone(ToneComplete)
	require.Eventually(t, func() bool { resumed, _ := out.counts(); return resumed == 1 }, time.Second, time.Millisecond)
	port.Close()

	_, played := out.counts()
	assert.Equal(t, 0, played)
}
