package laser

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep"
)

const bytesPerFrame = 4 // 16-bit stereo

// Output plays a streamer on the default audio device as signed 16-bit
// stereo.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
	src    beep.Streamer
	buf    [][2]float64
}

// newContext is swapped out in tests; only one oto context may exist per
// process.
var newContext = func(rate int) (*oto.Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return ctx, nil
}

func OpenOutput(rate int, src beep.Streamer) (*Output, error) {
	ctx, err := newContext(rate)
	if err != nil {
		return nil, fmt.Errorf("laser: open audio device: %w", err)
	}
	o := &Output{ctx: ctx, src: src}
	o.player = ctx.NewPlayer(o)
	o.player.SetBufferSize(beep.SampleRate(rate).N(10*time.Millisecond) * bytesPerFrame)
	o.player.Play()
	return o, nil
}

// Read implements io.Reader for oto.Player.
func (o *Output) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if cap(o.buf) < frames {
		o.buf = make([][2]float64, frames)
	}
	buf := o.buf[:frames]
	n, _ := o.src.Stream(buf)
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}
	encodeInt16LE(p, buf)
	return frames * bytesPerFrame, nil
}

func encodeInt16LE(p []byte, buf [][2]float64) {
	for i, s := range buf {
		for ch := 0; ch < 2; ch++ {
			v := s[ch]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			q := int16(v * 32767)
			j := i*bytesPerFrame + ch*2
			p[j] = byte(q)
			p[j+1] = byte(q >> 8)
		}
	}
}

func (o *Output) Close() error {
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}
