package laser

import (
	"sync"

	"github.com/gopxl/beep"
)

var _ beep.Streamer = (*Scanner)(nil)

// Scanner loops the most recent frame forever. Swap queues a new frame that
// takes over once the current one has been played through, so the beam
// never jumps mid-frame. Stream runs on the audio goroutine.
type Scanner struct {
	mu      sync.Mutex
	frame   []Sample
	pending []Sample
	swapped bool
	pos     int
	mirrorX bool
	loops   int
}

func NewScanner(mirrorX bool) *Scanner {
	return &Scanner{mirrorX: mirrorX}
}

func (s *Scanner) Swap(samples []Sample) {
	s.mu.Lock()
	s.pending = samples
	s.swapped = true
	if len(s.frame) == 0 {
		s.advance()
	}
	s.mu.Unlock()
}

// Loops returns how many times a frame has been played to the end.
func (s *Scanner) Loops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loops
}

// advance must be called with mu held.
func (s *Scanner) advance() {
	if s.swapped {
		s.frame = s.pending
		s.pending = nil
		s.swapped = false
	}
	s.pos = 0
}

// Stream fills samples with X on the left channel and Y on the right. With
// nothing to play it parks the beam at the origin.
func (s *Scanner) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range samples {
		if s.pos >= len(s.frame) {
			if len(s.frame) > 0 {
				s.loops++
			}
			s.advance()
		}
		if len(s.frame) == 0 {
			samples[i] = [2]float64{}
			continue
		}
		smp := s.frame[s.pos]
		x := float64(smp.X)
		if s.mirrorX {
			x = -x
		}
		samples[i] = [2]float64{x, float64(smp.Y)}
		s.pos++
	}
	return len(samples), true
}

func (s *Scanner) Err() error { return nil }
