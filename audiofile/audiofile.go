// Package audiofile inspects audio files for the offline engine: duration,
// raw samples and waveform overview peaks. Decoding is delegated to
// github.com/go-audio/wav; the per-bucket extrema of the overview are
// computed with vek.
package audiofile

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/viterin/vek/vek32"
)

// Info is a decoded audio file. Samples are normalized to [-1, 1] and
// interleaved when the file has more than one channel.
type Info struct {
	SampleRate int
	Channels   int
	Duration   float64
	Samples    []float32
}

// Decode reads a WAV file into an Info.
func Decode(r io.ReadSeeker) (*Info, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading PCM data: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("empty audio buffer")
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(d.BitDepth)
	}
	scale := float32(int64(1) << (bitDepth - 1))
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}
	frames := len(samples) / channels
	return &Info{
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
		Duration:   float64(frames) / float64(buf.Format.SampleRate),
		Samples:    samples,
	}, nil
}

// DecodeFile is Decode on a file path.
func DecodeFile(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Mono returns the samples mixed down to a single channel.
func (in *Info) Mono() []float32 {
	if in.Channels == 1 {
		return in.Samples
	}
	frames := len(in.Samples) / in.Channels
	mono := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < in.Channels; c++ {
			sum += in.Samples[i*in.Channels+c]
		}
		mono[i] = sum / float32(in.Channels)
	}
	return mono
}

// Peaks computes a waveform overview: resolution buckets over the samples,
// each contributing its minimum and maximum, interleaved as
// [min0, max0, min1, max1, ...]. Returns nil for empty input or
// non-positive resolution.
func Peaks(samples []float32, resolution int) []float32 {
	if len(samples) == 0 || resolution <= 0 {
		return nil
	}
	peaks := make([]float32, 0, 2*resolution)
	for b := 0; b < resolution; b++ {
		lo := b * len(samples) / resolution
		hi := (b + 1) * len(samples) / resolution
		if hi <= lo {
			hi = lo + 1
		}
		if hi > len(samples) {
			hi = len(samples)
		}
		bucket := samples[lo:hi]
		peaks = append(peaks, vek32.Min(bucket), vek32.Max(bucket))
	}
	return peaks
}
