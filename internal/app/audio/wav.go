package audio

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Track format shared by every clip and the stitched output
const (
	SampleRate = 24000
	BitDepth   = 16
	Channels   = 1

	wavFormatPCM = 1
)

// Track is a mono 16-bit PCM sample sequence at SampleRate
type Track struct {
	samples []int
}

// NewTrack creates an empty track
func NewTrack() *Track {
	return &Track{}
}

// AppendSilence adds d worth of zero samples
func (t *Track) AppendSilence(d time.Duration) {
	t.samples = append(t.samples, Silence(d, SampleRate)...)
}

// Append adds samples to the end of the track
func (t *Track) Append(samples []int) {
	t.samples = append(t.samples, samples...)
}

// Len returns the number of samples
func (t *Track) Len() int {
	return len(t.samples)
}

// Samples returns the underlying samples
func (t *Track) Samples() []int {
	return t.samples
}

// Duration returns the playback length of the track
func (t *Track) Duration() time.Duration {
	return SamplesDuration(len(t.samples), SampleRate)
}

// Silence returns d worth of zero samples at sampleRate
func Silence(d time.Duration, sampleRate int) []int {
	n := int(d * time.Duration(sampleRate) / time.Second)
	return make([]int, n)
}

// SamplesDuration converts a sample count into a duration
func SamplesDuration(n, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(sampleRate)
}

// PCM16ToSamples decodes raw signed 16-bit little-endian mono PCM
func PCM16ToSamples(pcm []byte) []int {
	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}
	return samples
}

// WriteWav writes mono 16-bit samples to path as a PCM WAV file
func WriteWav(path string, samples []int, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create wav file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, BitDepth, Channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: Channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("failed to write wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize wav file: %w", err)
	}
	return f.Close()
}

// ReadWav decodes a PCM WAV file and returns its samples and sample rate.
// Only mono 16-bit files are accepted.
func ReadWav(path string) ([]int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open wav file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode wav: %w", err)
	}
	if int(dec.NumChans) != Channels {
		return nil, 0, fmt.Errorf("expected mono wav, got %d channels", dec.NumChans)
	}
	if int(dec.BitDepth) != BitDepth {
		return nil, 0, fmt.Errorf("expected %d-bit wav, got %d-bit", BitDepth, dec.BitDepth)
	}
	return buf.Data, int(dec.SampleRate), nil
}
