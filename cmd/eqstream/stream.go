package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/eqstream/eqstream/pkg/eq"
	"github.com/eqstream/eqstream/pkg/framework/debug"
	"github.com/eqstream/eqstream/pkg/framework/process"
)

// blockSize is the audio callback granularity.
const blockSize = 512

// source delivers deinterleaved float32 blocks. ReadBlock fills left and
// right with up to len(left) frames and returns the frame count; 0 frames
// with io.EOF ends the stream. Mono sources duplicate into both channels.
type source interface {
	ReadBlock(left, right []float32) (int, error)
	SampleRate() int
}

// --- WAV file source ---

type wavSource struct {
	file  *os.File
	dec   *wav.Decoder
	buf   *audio.IntBuffer
	scale float32
	chans int
}

func openWAV(path string) (*wavSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	chans := int(dec.NumChans)
	if chans != 1 && chans != 2 {
		f.Close()
		return nil, fmt.Errorf("%s: %d channels unsupported, need mono or stereo", path, chans)
	}

	return &wavSource{
		file: f,
		dec:  dec,
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: chans,
				SampleRate:  int(dec.SampleRate),
			},
			Data:           make([]int, blockSize*chans),
			SourceBitDepth: int(dec.BitDepth),
		},
		scale: float32(int64(1) << (dec.BitDepth - 1)),
		chans: chans,
	}, nil
}

func (s *wavSource) ReadBlock(left, right []float32) (int, error) {
	want := len(left) * s.chans
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	frames := n / s.chans
	if frames == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := 0; i < frames; i++ {
		if s.chans == 1 {
			v := float32(s.buf.Data[i]) / s.scale
			left[i] = v
			right[i] = v
		} else {
			left[i] = float32(s.buf.Data[i*2]) / s.scale
			right[i] = float32(s.buf.Data[i*2+1]) / s.scale
		}
	}
	return frames, err
}

func (s *wavSource) SampleRate() int {
	return int(s.dec.SampleRate)
}

func (s *wavSource) Close() error {
	return s.file.Close()
}

// --- Generated tone source ---

type toneSource struct {
	sampleRate int
	freq       float64
	amp        float64
	remaining  int // frames left; < 0 means endless
	n          int
}

func newToneSource(sampleRate int, freq, amp, seconds float64) *toneSource {
	remaining := -1
	if seconds > 0 {
		remaining = int(seconds * float64(sampleRate))
	}
	return &toneSource{
		sampleRate: sampleRate,
		freq:       freq,
		amp:        amp,
		remaining:  remaining,
	}
}

func (s *toneSource) ReadBlock(left, right []float32) (int, error) {
	frames := len(left)
	if s.remaining >= 0 && frames > s.remaining {
		frames = s.remaining
	}
	if frames == 0 {
		return 0, io.EOF
	}

	for i := 0; i < frames; i++ {
		v := float32(s.amp * math.Sin(2*math.Pi*s.freq*float64(s.n+i)/float64(s.sampleRate)))
		left[i] = v
		right[i] = v
	}
	s.n += frames
	if s.remaining >= 0 {
		s.remaining -= frames
	}
	return frames, nil
}

func (s *toneSource) SampleRate() int {
	return s.sampleRate
}

// --- Processed PCM stream ---

// processedStream pulls blocks from a source, runs them through the engine,
// and serves the result as interleaved 16-bit little-endian PCM. The audio
// playback goroutine drives Read; everything here stays on that goroutine.
type processedStream struct {
	engine  *eq.Engine
	src     source
	ctx     *process.Context
	in      [2][]float32
	out     [2][]float32
	pcm     []byte
	pending []byte
	verbose bool
}

func newProcessedStream(engine *eq.Engine, src source, verbose bool) *processedStream {
	s := &processedStream{
		engine:  engine,
		src:     src,
		ctx:     process.NewContext(blockSize, engine.Params()),
		pcm:     make([]byte, blockSize*2*2),
		verbose: verbose,
	}
	s.ctx.SampleRate = float64(src.SampleRate())
	for ch := 0; ch < 2; ch++ {
		s.in[ch] = make([]float32, blockSize)
		s.out[ch] = make([]float32, blockSize)
	}
	return s
}

func (s *processedStream) Read(p []byte) (int, error) {
	if len(s.pending) == 0 {
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *processedStream) fill() error {
	frames, err := s.src.ReadBlock(s.in[0], s.in[1])
	if frames == 0 {
		if err == nil {
			err = io.EOF
		}
		return err
	}

	s.ctx.Input = [][]float32{s.in[0][:frames], s.in[1][:frames]}
	s.ctx.Output = [][]float32{s.out[0][:frames], s.out[1][:frames]}
	s.engine.Process(s.ctx)

	if s.verbose {
		for ch := 0; ch < 2; ch++ {
			for _, issue := range debug.CheckBuffer(s.ctx.Output[ch], fmt.Sprintf("out[%d]", ch)) {
				debug.Warn("%s", issue)
			}
		}
	}

	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint16(s.pcm[i*4:], uint16(clampInt16(s.out[0][i])))
		binary.LittleEndian.PutUint16(s.pcm[i*4+2:], uint16(clampInt16(s.out[1][i])))
	}
	s.pending = s.pcm[:frames*4]
	return nil
}

func clampInt16(v float32) int16 {
	scaled := v * 32767
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(scaled)
}

// eofNotifier wraps a reader and closes done the first time the underlying
// stream reports EOF, so the UI can tear down when playback finishes.
type eofNotifier struct {
	r    io.Reader
	done chan struct{}
}

func newEOFNotifier(r io.Reader) *eofNotifier {
	return &eofNotifier{r: r, done: make(chan struct{})}
}

func (e *eofNotifier) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err == io.EOF {
		select {
		case <-e.done:
		default:
			close(e.done)
		}
	}
	return n, err
}

func (e *eofNotifier) Done() <-chan struct{} {
	return e.done
}
