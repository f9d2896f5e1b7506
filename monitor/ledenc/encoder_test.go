package ledenc

import (
	"testing"
	"time"

	"izzymon/hal"
)

func TestEncodeSingleByteBitTable(t *testing.T) {
	enc, err := New(1, TimingsDefault)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Green goes out first on the wire.
	raw := uint8(0xA5)
	frame := []RGB{{G: raw}}
	pulses, err := enc.Encode(frame)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(pulses) != PulseCount(1) {
		t.Fatalf("pulse count = %d, want %d", len(pulses), PulseCount(1))
	}

	want := gammaTable[raw] // brightness 255 is identity
	for bit := 0; bit < 8; bit++ {
		p := pulses[bit]
		if want>>(7-uint(bit))&1 == 1 {
			if p.High != TimingsDefault.T1H || p.Low != TimingsDefault.T1L {
				t.Fatalf("bit %d: got %v, want 1-bit timings", bit, p)
			}
		} else {
			if p.High != TimingsDefault.T0H || p.Low != TimingsDefault.T0L {
				t.Fatalf("bit %d: got %v, want 0-bit timings", bit, p)
			}
		}
	}

	// R and B channels are zero: the remaining 16 bit pairs are all zeros.
	for i := 8; i < 24; i++ {
		if pulses[i].High != TimingsDefault.T0H {
			t.Fatalf("pulse %d: expected 0-bit, got %v", i, pulses[i])
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	enc, err := New(3, TimingsAlt)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	enc.SetBrightness(77)

	frame := []RGB{Red, DimBlue, White}
	first, err := enc.Encode(frame)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	snapshot := make([]hal.PulsePair, len(first))
	copy(snapshot, first)

	second, err := enc.Encode(frame)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(second) != len(snapshot) {
		t.Fatalf("lengths differ: %d vs %d", len(second), len(snapshot))
	}
	for i := range snapshot {
		if second[i] != snapshot[i] {
			t.Fatalf("pulse %d differs: %v vs %v", i, second[i], snapshot[i])
		}
	}
}

func TestEncodeFullWhiteFrame(t *testing.T) {
	enc, err := New(1, TimingsDefault)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	enc.SetBrightness(100)

	pulses, err := enc.Encode([]RGB{White})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(pulses) != 25 {
		t.Fatalf("pulse pairs = %d, want 25", len(pulses))
	}

	reset := pulses[24]
	if reset.High != 0 {
		t.Fatalf("reset pulse has high component: %v", reset)
	}
	if reset.Low < 50*time.Microsecond {
		t.Fatalf("reset low = %v, want >= 50us", reset.Low)
	}

	// White is 255 on every channel; with gamma identity at 255 the scaled
	// byte is the same on all three, so the three channel groups match.
	for i := 0; i < 8; i++ {
		if pulses[i] != pulses[i+8] || pulses[i] != pulses[i+16] {
			t.Fatalf("channel groups differ at bit %d", i)
		}
	}
}

func TestGammaAndBrightnessOrder(t *testing.T) {
	// Gamma first, then brightness: scale(gamma(v), b), not gamma(scale(v, b)).
	v, b := uint8(200), uint8(128)
	got := scale(Gamma(v), b)
	swapped := Gamma(scale(v, b))
	if got == swapped {
		t.Skip("chosen values do not distinguish the orders")
	}

	enc, err := New(1, TimingsDefault)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	enc.SetBrightness(b)
	pulses, err := enc.Encode([]RGB{{G: v}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var encoded uint8
	for bit := 0; bit < 8; bit++ {
		encoded <<= 1
		if pulses[bit].High == TimingsDefault.T1H && pulses[bit].Low == TimingsDefault.T1L {
			encoded |= 1
		}
	}
	if encoded != got {
		t.Fatalf("encoded byte = %#x, want gamma-then-brightness %#x", encoded, got)
	}
}

func TestConstructionContracts(t *testing.T) {
	if _, err := New(0, TimingsDefault); err == nil {
		t.Fatal("expected error for zero chain length")
	}

	buf := make([]hal.PulsePair, 0, PulseCount(2)-1)
	if _, err := NewWithBuffer(buf, 2, TimingsDefault); err == nil {
		t.Fatal("expected error for undersized buffer")
	}

	bad := TimingsDefault
	bad.Reset = 0
	if _, err := New(1, bad); err == nil {
		t.Fatal("expected error for zero reset duration")
	}

	enc, err := New(2, TimingsDefault)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := enc.Encode([]RGB{White}); err == nil {
		t.Fatal("expected error for short frame")
	}
}

func TestGammaTableShape(t *testing.T) {
	if Gamma(0) != 0 || Gamma(255) != 255 {
		t.Fatalf("gamma endpoints: %d, %d", Gamma(0), Gamma(255))
	}
	prev := uint8(0)
	for i := 0; i < 256; i++ {
		g := Gamma(uint8(i))
		if g < prev {
			t.Fatalf("gamma not monotonic at %d: %d < %d", i, g, prev)
		}
		prev = g
	}
	if Gamma(128) >= 128 {
		t.Fatalf("gamma should dim midtones, Gamma(128) = %d", Gamma(128))
	}
}
