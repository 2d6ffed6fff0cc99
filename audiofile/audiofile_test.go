package audiofile_test

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/avolans/arranger/audiofile"
)

// writeWAV writes 16-bit PCM data to a temporary WAV file and returns its
// path.
func writeWAV(t *testing.T, sampleRate, channels int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("writing WAV data: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}
	return path
}

func TestDecodeFile(t *testing.T) {
	// One second of mono audio: 4 samples at 4 Hz, full scale down to zero.
	path := writeWAV(t, 4, 1, []int{32767, -32768, 16384, 0})
	info, err := audiofile.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if info.SampleRate != 4 || info.Channels != 1 {
		t.Errorf("format = %d Hz %d ch, want 4 Hz 1 ch", info.SampleRate, info.Channels)
	}
	if info.Duration != 1 {
		t.Errorf("duration = %v, want 1", info.Duration)
	}
	if len(info.Samples) != 4 {
		t.Fatalf("got %d samples, want 4", len(info.Samples))
	}
	// Normalization divides by 2^15.
	want := []float32{32767.0 / 32768, -1, 0.5, 0}
	for i, s := range info.Samples {
		if math.Abs(float64(s-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, s, want[i])
		}
	}
}

func TestDecodeFileStereoDuration(t *testing.T) {
	// Duration counts frames, not interleaved samples.
	path := writeWAV(t, 2, 2, []int{100, -100, 200, -200})
	info, err := audiofile.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if info.Channels != 2 {
		t.Errorf("channels = %d, want 2", info.Channels)
	}
	if info.Duration != 1 {
		t.Errorf("duration = %v, want 1", info.Duration)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("not audio"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := audiofile.DecodeFile(path); err == nil {
		t.Errorf("DecodeFile should fail on non-WAV input")
	}
}

func TestMono(t *testing.T) {
	in := &audiofile.Info{Channels: 2, Samples: []float32{1, 0, 0.5, -0.5, -1, 0}}
	got := in.Mono()
	want := []float32{0.5, 0, -0.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Mono = %v, want %v", got, want)
	}
}

func TestPeaks(t *testing.T) {
	samples := []float32{0.5, -0.5, 1, -1, 0.25, -0.25, 0, 0}
	got := audiofile.Peaks(samples, 2)
	// Two buckets of four samples each, [min, max] interleaved.
	want := []float32{-1, 1, -0.25, 0.25}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Peaks = %v, want %v", got, want)
	}
}

func TestPeaksFewerSamplesThanBuckets(t *testing.T) {
	got := audiofile.Peaks([]float32{0.5, -0.5}, 4)
	if len(got) != 8 {
		t.Fatalf("got %d values, want 8", len(got))
	}
}

func TestPeaksEmptyInput(t *testing.T) {
	if got := audiofile.Peaks(nil, 4); got != nil {
		t.Errorf("Peaks(nil) = %v, want nil", got)
	}
	if got := audiofile.Peaks([]float32{1}, 0); got != nil {
		t.Errorf("Peaks with zero resolution = %v, want nil", got)
	}
}
