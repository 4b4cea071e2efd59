package main

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/eqstream/eqstream/pkg/eq"
)

func TestToneSourceDuration(t *testing.T) {
	// 1000 frames at 1 kHz rate = exactly 1 second.
	src := newToneSource(1000, 100, 0.5, 1.0)

	left := make([]float32, 512)
	right := make([]float32, 512)

	total := 0
	for {
		n, err := src.ReadBlock(left, right)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadBlock error: %v", err)
		}
		if n == 0 {
			t.Fatal("ReadBlock returned 0 frames without EOF")
		}
	}

	if total != 1000 {
		t.Errorf("tone delivered %d frames, want 1000", total)
	}
}

func TestToneSourceStereoIdentical(t *testing.T) {
	src := newToneSource(48000, 440, 0.5, 0.1)

	left := make([]float32, 256)
	right := make([]float32, 256)
	n, err := src.ReadBlock(left, right)
	if err != nil || n != 256 {
		t.Fatalf("ReadBlock = %d, %v", n, err)
	}

	for i := 0; i < n; i++ {
		if left[i] != right[i] {
			t.Fatalf("channels differ at %d", i)
		}
	}
}

func TestProcessedStreamFlat(t *testing.T) {
	reg := eq.BuildRegistry()
	engine := eq.NewEngine(reg)
	if err := engine.Prepare(48000, blockSize); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	src := newToneSource(48000, 1000, 0.5, 0.5)
	stream := newProcessedStream(engine, src, false)

	buf := make([]byte, 4096)
	var peak int16
	for {
		n, err := stream.Read(buf)
		for i := 0; i+1 < n; i += 2 {
			v := int16(binary.LittleEndian.Uint16(buf[i:]))
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read error: %v", err)
		}
	}

	// A flat EQ leaves the 0.5 amplitude tone at half scale.
	want := float64(0.5 * 32767)
	if math.Abs(float64(peak)-want) > want*0.02 {
		t.Errorf("peak sample = %d, want ~%.0f", peak, want)
	}
}

func TestClampInt16(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1.0, 32767},
		{-1.0, -32767},
		{2.0, 32767},
		{-2.0, -32768},
		{0.5, 16383},
	}
	for _, test := range tests {
		if got := clampInt16(test.in); got != test.want {
			t.Errorf("clampInt16(%f) = %d, want %d", test.in, got, test.want)
		}
	}
}

func TestApplyBandSpec(t *testing.T) {
	reg := eq.BuildRegistry()

	if err := applyBandSpec(reg, "2:800:-6:2.5"); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}

	s := eq.SettingsFrom(reg)
	if math.Abs(s.Peaks[1].Freq-800) > 0.01 {
		t.Errorf("freq = %f, want 800", s.Peaks[1].Freq)
	}
	if math.Abs(s.Peaks[1].GainDb+6) > 0.01 {
		t.Errorf("gain = %f, want -6", s.Peaks[1].GainDb)
	}
	if math.Abs(s.Peaks[1].Q-2.5) > 0.01 {
		t.Errorf("q = %f, want 2.5", s.Peaks[1].Q)
	}

	bad := []string{"", "1:100", "0:100:3", "6:100:3", "1:x:3", "1:100:y", "1:100:3:z", "1:1:1:1:1"}
	for _, spec := range bad {
		if err := applyBandSpec(reg, spec); err == nil {
			t.Errorf("spec %q should be rejected", spec)
		}
	}
}

func TestSlopeChoice(t *testing.T) {
	tests := []struct {
		db      int
		want    float64
		wantErr bool
	}{
		{12, 0, false},
		{24, 1, false},
		{96, 7, false},
		{0, 0, true},
		{13, 0, true},
		{108, 0, true},
	}
	for _, test := range tests {
		got, err := slopeChoice(test.db)
		if test.wantErr {
			if err == nil {
				t.Errorf("slopeChoice(%d) should fail", test.db)
			}
			continue
		}
		if err != nil {
			t.Errorf("slopeChoice(%d) error: %v", test.db, err)
			continue
		}
		if got != test.want {
			t.Errorf("slopeChoice(%d) = %f, want %f", test.db, got, test.want)
		}
	}
}

func TestEQFlagsApply(t *testing.T) {
	reg := eq.BuildRegistry()
	flags := &eqFlags{
		LowCut:       120,
		LowCutSlope:  48,
		HighCut:      8000,
		HighCutSlope: 24,
		Band:         []string{"1:200:3", "5:4000:-9:4"},
	}

	if err := flags.apply(reg); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	s := eq.SettingsFrom(reg)
	if s.LowCutOff() {
		t.Error("low cut at 120 Hz should be active")
	}
	if s.HighCutOff() {
		t.Error("high cut at 8 kHz should be active")
	}
	if math.Abs(s.Peaks[0].GainDb-3) > 0.01 {
		t.Errorf("band 1 gain = %f, want 3", s.Peaks[0].GainDb)
	}
	if math.Abs(s.Peaks[4].Q-4) > 0.01 {
		t.Errorf("band 5 Q = %f, want 4", s.Peaks[4].Q)
	}

	flags.LowCutSlope = 13
	if err := flags.apply(reg); err == nil {
		t.Error("invalid slope should be rejected")
	}
}
