package audio

import (
	"testing"
)

// rampBuffer builds a buffer whose samples are all non-zero and distinct
func rampBuffer(sampleRate, channels int, durationMs int64) *Buffer {
	frames := int(durationMs * int64(sampleRate) / 1000)
	data := make([]int, frames*channels)
	for i := range data {
		data[i] = i + 1
	}
	return &Buffer{Data: data, SampleRate: sampleRate, NumChannels: channels, BitDepth: 16}
}

// assertSilenced checks that samples inside the spans are zero and all others match src
func assertSilenced(t *testing.T, src, got *Buffer, spans []SilenceSpan) {
	t.Helper()

	if len(got.Data) != len(src.Data) {
		t.Fatalf("buffer length = %d, want %d", len(got.Data), len(src.Data))
	}

	inside := make([]bool, len(src.Data))
	for _, s := range spans {
		s = s.Clamp()
		from := src.FrameAt(s.StartMs) * src.NumChannels
		to := src.FrameAt(s.EndMs) * src.NumChannels
		for i := from; i < to; i++ {
			inside[i] = true
		}
	}

	for i := range src.Data {
		if inside[i] && got.Data[i] != 0 {
			t.Fatalf("sample %d = %d, want 0 inside span", i, got.Data[i])
		}
		if !inside[i] && got.Data[i] != src.Data[i] {
			t.Fatalf("sample %d = %d, want unchanged %d outside spans", i, got.Data[i], src.Data[i])
		}
	}
}

func TestSilence(t *testing.T) {
	tests := []struct {
		name  string
		spans []SilenceSpan
	}{
		{"no spans", nil},
		{"single span", []SilenceSpan{{StartMs: 100, EndMs: 200}}},
		{"unsorted spans", []SilenceSpan{{StartMs: 700, EndMs: 800}, {StartMs: 100, EndMs: 150}}},
		{"overlapping spans", []SilenceSpan{{StartMs: 100, EndMs: 300}, {StartMs: 250, EndMs: 400}}},
		{"adjacent spans", []SilenceSpan{{StartMs: 100, EndMs: 200}, {StartMs: 200, EndMs: 300}}},
		{"nested spans", []SilenceSpan{{StartMs: 100, EndMs: 500}, {StartMs: 200, EndMs: 300}}},
		{"span past end", []SilenceSpan{{StartMs: 900, EndMs: 5000}}},
		{"span entirely past end", []SilenceSpan{{StartMs: 2000, EndMs: 3000}}},
		{"span at start", []SilenceSpan{{StartMs: 0, EndMs: 50}}},
		{"whole buffer", []SilenceSpan{{StartMs: 0, EndMs: 1000}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := rampBuffer(1000, 1, 1000)
			got := Silence(src, tt.spans)
			assertSilenced(t, src, got, tt.spans)
		})
	}
}

func TestSilence_DoesNotMutateSource(t *testing.T) {
	src := rampBuffer(8000, 2, 500)
	original := src.Clone()

	_ = Silence(src, []SilenceSpan{{StartMs: 0, EndMs: 500}})

	for i := range src.Data {
		if src.Data[i] != original.Data[i] {
			t.Fatalf("source sample %d changed from %d to %d", i, original.Data[i], src.Data[i])
		}
	}
}

func TestSilence_InvertedSpanIsNoOp(t *testing.T) {
	src := rampBuffer(1000, 1, 1000)

	got := Silence(src, []SilenceSpan{{StartMs: 600, EndMs: 400}})

	for i := range src.Data {
		if got.Data[i] != src.Data[i] {
			t.Fatalf("sample %d = %d, want unchanged %d", i, got.Data[i], src.Data[i])
		}
	}
}

func TestSilence_NegativeStartClampedToZero(t *testing.T) {
	src := rampBuffer(1000, 1, 1000)

	got := Silence(src, []SilenceSpan{{StartMs: -200, EndMs: 100}})

	assertSilenced(t, src, got, []SilenceSpan{{StartMs: 0, EndMs: 100}})
}

func TestSilence_Idempotent(t *testing.T) {
	src := rampBuffer(16000, 1, 2000)
	spans := []SilenceSpan{{StartMs: 300, EndMs: 450}, {StartMs: 1200, EndMs: 1900}, {StartMs: 400, EndMs: 600}}

	once := Silence(src, spans)
	twice := Silence(once, spans)

	for i := range once.Data {
		if once.Data[i] != twice.Data[i] {
			t.Fatalf("sample %d changed on re-application: %d -> %d", i, once.Data[i], twice.Data[i])
		}
	}
}

func TestSilence_OrderIndependent(t *testing.T) {
	src := rampBuffer(44100, 2, 3000)
	spans := []SilenceSpan{
		{StartMs: 100, EndMs: 200},
		{StartMs: 1500, EndMs: 1750},
		{StartMs: 2500, EndMs: 2600},
		{StartMs: 600, EndMs: 900},
	}
	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}

	want := Silence(src, spans)
	for _, order := range orders {
		permuted := make([]SilenceSpan, len(order))
		for i, idx := range order {
			permuted[i] = spans[idx]
		}

		got := Silence(src, permuted)
		for i := range want.Data {
			if got.Data[i] != want.Data[i] {
				t.Fatalf("order %v: sample %d = %d, want %d", order, i, got.Data[i], want.Data[i])
			}
		}
	}
}

func TestSilence_WordScenario(t *testing.T) {
	// 16 kHz stereo, 12 seconds; silence 10.200s to 10.800s
	src := rampBuffer(16000, 2, 12000)
	span := SilenceSpan{StartMs: 10200, EndMs: 10800}

	got := Silence(src, []SilenceSpan{span})

	first := 10200 * 16 * 2
	last := 10800*16*2 - 1
	if got.Data[first] != 0 || got.Data[last] != 0 {
		t.Errorf("span boundaries not silenced: first=%d last=%d", got.Data[first], got.Data[last])
	}
	if got.Data[first-1] != src.Data[first-1] {
		t.Errorf("sample before span changed: %d", got.Data[first-1])
	}
	if got.Data[last+1] != src.Data[last+1] {
		t.Errorf("sample after span changed: %d", got.Data[last+1])
	}
	assertSilenced(t, src, got, []SilenceSpan{span})
}
