package laser

import (
	"errors"
	"sync"

	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
)

var ErrClosed = errors.New("laser: device closed")

// Device renders frames and feeds them to a Scanner. With a nil sink it only
// renders, which is what the tests and the terminal dry run use.
type Device struct {
	mu       sync.Mutex
	renderer *Renderer
	scanner  *Scanner
	out      *Output
	logger   *game_log.Logger
	frames   int
	closed   bool
}

// Open validates p, starts the audio output and returns a ready device.
func Open(p RenderParams, logger *game_log.Logger) (*Device, error) {
	d, err := NewDevice(p, logger)
	if err != nil {
		return nil, err
	}
	out, err := OpenOutput(p.Rate, d.scanner)
	if err != nil {
		return nil, err
	}
	d.out = out
	d.logger.Infof("output open: rate=%d mirror_x=%t grayscale=%t", p.Rate, p.MirrorX, p.Grayscale)
	return d, nil
}

// NewDevice builds a device without touching the audio hardware.
func NewDevice(p RenderParams, logger *game_log.Logger) (*Device, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Device{
		renderer: NewRenderer(p),
		scanner:  NewScanner(p.MirrorX),
		logger:   logger.With("LASER"),
	}, nil
}

func (d *Device) Scanner() *Scanner { return d.scanner }

func (d *Device) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

func (d *Device) RenderFrame(f Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	samples := d.renderer.Render(f)
	d.scanner.Swap(samples)
	d.frames++
	d.logger.Debugf("frame %d: %d vertices -> %d samples", d.frames, len(f), len(samples))
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.scanner.Swap(nil)
	if d.out != nil {
		return d.out.Close()
	}
	return nil
}
