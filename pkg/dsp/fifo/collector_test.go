package fifo

import "testing"

func TestCollectorAccumulatesAcrossCallbacks(t *testing.T) {
	c := NewCollector()
	c.Prepare(8)

	// Three callbacks of 3 samples: one full block of 8 plus 1 leftover.
	for call := 0; call < 3; call++ {
		samples := make([]float32, 3)
		for i := range samples {
			samples[i] = float32(call*3 + i)
		}
		c.OnBlock(samples)
	}

	if n := c.Queue().AvailableForReading(); n != 1 {
		t.Fatalf("available = %d, want 1", n)
	}

	out := make([]float32, 8)
	c.Queue().Pull(out)
	for i, v := range out {
		if v != float32(i) {
			t.Errorf("sample %d = %v, want %d", i, v, i)
		}
	}
}

func TestCollectorOversizedCallback(t *testing.T) {
	c := NewCollector()
	c.Prepare(4)

	// A single callback larger than the block size produces several blocks.
	samples := make([]float32, 10)
	for i := range samples {
		samples[i] = float32(i)
	}
	c.OnBlock(samples)

	if n := c.Queue().AvailableForReading(); n != 2 {
		t.Fatalf("available = %d, want 2", n)
	}

	out := make([]float32, 4)
	c.Queue().Pull(out)
	if out[0] != 0 || out[3] != 3 {
		t.Errorf("first block = %v", out)
	}
	c.Queue().Pull(out)
	if out[0] != 4 || out[3] != 7 {
		t.Errorf("second block = %v", out)
	}
}

func TestCollectorRePrepareResets(t *testing.T) {
	c := NewCollector()
	c.Prepare(4)
	c.OnBlock([]float32{1, 2, 3})

	c.Prepare(6)
	if c.BlockSize() != 6 {
		t.Errorf("block size = %d, want 6", c.BlockSize())
	}
	if n := c.Queue().AvailableForReading(); n != 0 {
		t.Errorf("queue not empty after re-prepare: %d", n)
	}
}

func TestCollectorPanicsBeforePrepare(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("OnBlock before Prepare did not panic")
		}
	}()
	NewCollector().OnBlock([]float32{1})
}
