package engine

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

const previewSampleRate = 44100

// OtoContext wraps the process-wide oto audio context. There can be only one
// per process, so callers should create it once and keep it around.
type OtoContext struct {
	ctx *oto.Context
}

// NewContext opens the system audio device for stereo 16-bit output and
// blocks until it is ready to play.
func NewContext() (*OtoContext, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   previewSampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{ctx: ctx}, nil
}

// PlayPreview plays an interleaved stereo float32 buffer, as produced by
// RenderClipPreview, and blocks until it has finished.
func (c *OtoContext) PlayPreview(buffer []float32) error {
	if len(buffer) == 0 {
		return nil
	}
	b := FloatBufferTo16BitLE(buffer, nil)
	player := c.ctx.NewPlayer(bytes.NewReader(b))
	defer player.Close()
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Err()
}

// FloatBufferTo16BitLE converts a []float32 buffer to 16-bit little-endian
// bytes, appending to out. Values outside [-1, 1] are clamped.
func FloatBufferTo16BitLE(buffer []float32, out []byte) []byte {
	for _, v := range buffer {
		var uv int16
		if v < -1.0 {
			uv = -math.MaxInt16
		} else if v > 1.0 {
			uv = math.MaxInt16
		} else {
			uv = int16(v * math.MaxInt16)
		}
		out = append(out, byte(uv), byte(uv>>8))
	}
	return out
}
