// Package bell rings the terminal bell for hosted apps. Audio output
// goes through the system speaker; when no audio device is available
// the service degrades to a visual bell (one-frame desktop flash)
// posted through the op queue.
package bell

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/parameter"
)

// Service implements service.Service around the beep speaker
type Service struct {
	ops     *event.Queue
	enabled bool
	audio   bool

	mu        sync.Mutex
	speakerOK bool
	lastRing  time.Time
}

// NewService creates a bell service posting visual bells to ops
func NewService(ops *event.Queue, enabled, audio bool) *Service {
	return &Service{ops: ops, enabled: enabled, audio: audio}
}

// Name implements service.Service
func (s *Service) Name() string { return "bell" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Init brings up the speaker. Failure is not an error: the service
// stays registered and rings visually.
func (s *Service) Init(args ...any) error {
	if !s.enabled || !s.audio {
		return nil
	}
	sampleRate := beep.SampleRate(parameter.BellSampleRate)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil
	}
	s.speakerOK = true
	return nil
}

// Start implements service.Service; the speaker runs its own goroutine
func (s *Service) Start() error { return nil }

// Stop closes the speaker
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.speakerOK {
		speaker.Close()
		s.speakerOK = false
	}
	return nil
}

// Ring plays a short sine burst, or flashes the desktop when audio is
// unavailable. Bursts inside the rate-limit window collapse into one.
func (s *Service) Ring() {
	if !s.enabled {
		return
	}

	s.mu.Lock()
	now := time.Now()
	if now.Sub(s.lastRing) < parameter.BellMinInterval {
		s.mu.Unlock()
		return
	}
	s.lastRing = now
	ok := s.speakerOK
	s.mu.Unlock()

	if !ok {
		s.ops.Push(event.Op{Kind: event.OpVisualBell})
		return
	}

	sampleRate := beep.SampleRate(parameter.BellSampleRate)
	sine, err := generators.SineTone(sampleRate, parameter.BellFrequency)
	if err != nil {
		s.ops.Push(event.Op{Kind: event.OpVisualBell})
		return
	}
	speaker.Play(beep.Take(sampleRate.N(parameter.BellDuration), sine))
}
